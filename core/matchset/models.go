package matchset

import (
	"github.com/enlightiq/enlightiq/core"
)

// Evaluation statuses
const (
	StatusPass = "Pass"
	StatusFail = "Fail"

	// PassThreshold is the minimum percentage counted as a pass, inclusive.
	PassThreshold = 50.0
)

type Question struct {
	ID            int64    `json:"id"`
	Text          string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

type MatchSet struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	Date            string     `json:"date"`
	DurationMinutes int        `json:"durationMinutes"`
	Image           string     `json:"image"`
	Questions       []Question `json:"questions"`
}

// Summary is the listing view of a match set, without its questions.
type Summary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"durationMinutes"`
}

// NewMatchSet creates the quiz container; questions are bulk-added separately.
type NewMatchSet struct {
	Title           string `json:"title" validate:"required"`
	Subject         string `json:"subject" validate:"required"`
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DurationMinutes int    `json:"durationMinutes" validate:"omitempty,min=1"`
	Image           string `json:"image"`
}

func (nm *NewMatchSet) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	nm.Subject = core.CleanString(nm.Subject)
	return core.Validate.Struct(nm)
}

type NewQuestion struct {
	Text          string   `json:"questionText" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

func (nq *NewQuestion) Validate() error {
	nq.Text = core.CleanString(nq.Text)
	nq.CorrectAnswer = core.CleanString(nq.CorrectAnswer)
	return core.Validate.Struct(nq)
}

type Answer struct {
	QuestionID     int64  `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
}

type Submission struct {
	MatchSetID int64    `json:"matchSetId" validate:"required"`
	Answers    []Answer `json:"answers"`
}

func (s *Submission) Validate() error {
	return core.Validate.Struct(s)
}

// Result is the outcome of evaluating one submission. The denominator is the
// number of submitted answers, not the number of questions in the set.
type Result struct {
	TotalQuestions   int     `json:"totalQuestions"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	Percentage       float64 `json:"percentage"`
	ResultStatus     string  `json:"resultStatus"`
}
