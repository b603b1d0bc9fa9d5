package exam

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/enlightiq/enlightiq/core"
)

// StatusRecommended is the only reserved Exam.Status value; it is a plain
// per-row flag, not an exclusive singleton.
const StatusRecommended = "recommended"

type Exam struct {
	ID                   uuid.UUID   `json:"id"`
	Title                string      `json:"title"`
	Date                 string      `json:"date"`
	Time                 string      `json:"time"`
	Subject              string      `json:"subject"`
	Status               null.String `json:"status"`
	RegistrationDeadline time.Time   `json:"registrationDeadline"`
	Eligibility          string      `json:"eligibility"` // e.g. "Grade 8-12 students"
	Syllabus             string      `json:"syllabus"`
	Description          string      `json:"description"`
	Duration             string      `json:"duration"`
	Image                string      `json:"image"`
}

func (e *Exam) IsRecommended() bool {
	return e.Status.Valid && core.CleanString(e.Status.String, true /* lower */) == StatusRecommended
}

// UserExam is the per-(user, exam) result record; the composite key is the
// only uniqueness guard, and the percentage is overwritten on resubmission.
type UserExam struct {
	UserID     int64     `json:"userId"`
	ExamID     uuid.UUID `json:"examId"`
	Percentage float64   `json:"percentage"`
}

// NewExam contains information needed to create an Exam.
type NewExam struct {
	Title                string    `json:"title" validate:"required"`
	Date                 string    `json:"date"`
	Time                 string    `json:"time"`
	Subject              string    `json:"subject" validate:"required"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
	Eligibility          string    `json:"eligibility" validate:"omitempty,eligibility"`
	Syllabus             string    `json:"syllabus"`
	Description          string    `json:"description"`
	Duration             string    `json:"duration"`
	Image                string    `json:"image"`
}

func (ne *NewExam) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Subject = core.CleanString(ne.Subject)
	ne.Eligibility = core.CleanString(ne.Eligibility)
	return core.Validate.Struct(ne)
}

// ExamResult is one row of the per-exam results listing.
type ExamResult struct {
	StudentName    string  `json:"studentName"`
	CertificateURL string  `json:"certificateUrl"`
	Percentage     float64 `json:"percentage"`
	ExamTitle      string  `json:"examTitle"`
}

// UserResult is one row of the per-user results listing.
type UserResult struct {
	ExamTitle      string  `json:"examTitle"`
	Subject        string  `json:"subject"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Percentage     float64 `json:"percentage"`
	CertificateURL string  `json:"certificateUrl"`
}
