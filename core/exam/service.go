package exam

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
)

// Registration outcome messages
const (
	MsgRegistered        = "Registration successful."
	MsgAlreadyRegistered = "Already registered for this exam."
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("exam not found")
	errRegistrationClosed = errors.New("registration closed, deadline passed")
	errNotEligible        = errors.New("you are not eligible for this exam")
	errEligibilityCheck   = errors.New("eligibility check failed, please contact support")
)

type (
	Repository interface {
		CreateExam(ctx context.Context, ex Exam) (Exam, error)
		GetExam(ctx context.Context, id uuid.UUID) (Exam, error)
		QueryAllExams(ctx context.Context) ([]Exam, error)
		QueryExamsByStatus(ctx context.Context, status string) ([]Exam, error)
		UpdateExam(ctx context.Context, ex Exam) (Exam, error)
		DeleteExam(ctx context.Context, id uuid.UUID) error

		// registered-users set, the many-to-many side of registration
		AddRegistration(ctx context.Context, examID uuid.UUID, userID int64) error
		IsUserRegistered(ctx context.Context, examID uuid.UUID, userID int64) (bool, error)
		QueryExamsByUser(ctx context.Context, userID int64) ([]Exam, error)

		// result records; Upsert overwrites the percentage on the composite key
		UpsertResult(ctx context.Context, ue UserExam) error
		QueryResultsByExam(ctx context.Context, examID uuid.UUID) ([]UserExam, error)
		QueryResultsByUser(ctx context.Context, userID int64) ([]UserExam, error)
	}

	// UserDirectory is the thin slice of the account service needed here.
	UserDirectory interface {
		GetUserByID(ctx context.Context, id int64) (account.User, error)
	}

	Service struct {
		repo  Repository
		users UserDirectory
		store core.FileStore
	}
)

func NewService(repo Repository, users UserDirectory, store core.FileStore) *Service {
	return &Service{repo: repo, users: users, store: store}
}

func (svc *Service) Create(ctx context.Context, ne NewExam) (Exam, error) {
	ex := Exam{
		ID:                   uuid.New(),
		Title:                ne.Title,
		Date:                 ne.Date,
		Time:                 ne.Time,
		Subject:              ne.Subject,
		RegistrationDeadline: ne.RegistrationDeadline,
		Eligibility:          ne.Eligibility,
		Syllabus:             ne.Syllabus,
		Description:          ne.Description,
		Duration:             ne.Duration,
		Image:                ne.Image,
	}
	return svc.repo.CreateExam(ctx, ex)
}

func (svc *Service) GetByID(ctx context.Context, id uuid.UUID) (Exam, error) {
	return svc.repo.GetExam(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Exam, error) {
	return svc.repo.QueryAllExams(ctx)
}

func (svc *Service) Update(ctx context.Context, id uuid.UUID, ne NewExam) (Exam, error) {
	ex, err := svc.repo.GetExam(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	ex.Title = ne.Title
	ex.Date = ne.Date
	ex.Time = ne.Time
	ex.Subject = ne.Subject
	ex.RegistrationDeadline = ne.RegistrationDeadline
	ex.Eligibility = ne.Eligibility
	ex.Syllabus = ne.Syllabus
	ex.Description = ne.Description
	ex.Duration = ne.Duration
	ex.Image = ne.Image
	return svc.repo.UpdateExam(ctx, ex)
}

func (svc *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return svc.repo.DeleteExam(ctx, id)
}

// ToggleRecommended flips the "recommended" flag on a single exam. The flag
// is per-row; recommending one exam does not clear others.
func (svc *Service) ToggleRecommended(ctx context.Context, id uuid.UUID) (Exam, error) {
	ex, err := svc.repo.GetExam(ctx, id)
	if err != nil {
		return Exam{}, err
	}
	if ex.IsRecommended() {
		ex.Status = null.String{}
	} else {
		ex.Status = null.StringFrom(StatusRecommended)
	}
	return svc.repo.UpdateExam(ctx, ex)
}

func (svc *Service) QueryRecommended(ctx context.Context) ([]Exam, error) {
	return svc.repo.QueryExamsByStatus(ctx, StatusRecommended)
}

// Register signs a user up for an exam, enforcing the deadline and the
// inclusive class-eligibility window. A repeated registration is an
// idempotent no-op reported through the returned message.
func (svc *Service) Register(ctx context.Context, userID int64, examID uuid.UUID) (string, error) {
	ex, err := svc.repo.GetExam(ctx, examID)
	if err != nil {
		return "", err
	}
	usr, err := svc.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if time.Now().After(ex.RegistrationDeadline) {
		return "", core.NewValidationError(errRegistrationClosed)
	}

	// any parse failure is swallowed and reported generically: fail closed
	minClass, maxClass, err := parseEligibility(ex.Eligibility)
	if err != nil {
		return "", core.NewValidationError(errEligibilityCheck)
	}
	userClass, err := strconv.Atoi(core.CleanString(usr.Class))
	if err != nil {
		return "", core.NewValidationError(errEligibilityCheck)
	}
	if userClass < minClass || userClass > maxClass {
		return "", core.NewValidationError(errNotEligible)
	}

	registered, err := svc.repo.IsUserRegistered(ctx, examID, userID)
	if err != nil {
		return "", errors.Wrap(err, "checking registration")
	}
	if registered {
		return MsgAlreadyRegistered, nil
	}

	if err := svc.repo.AddRegistration(ctx, examID, userID); err != nil {
		return "", errors.Wrap(err, "adding registration")
	}
	return MsgRegistered, nil
}

func (svc *Service) QueryRegisteredByUser(ctx context.Context, userID int64) ([]Exam, error) {
	return svc.repo.QueryExamsByUser(ctx, userID)
}

// SaveResult records (or silently overwrites) a user's percentage for an exam.
func (svc *Service) SaveResult(ctx context.Context, userID int64, examID uuid.UUID, percentage float64) error {
	if _, err := svc.repo.GetExam(ctx, examID); err != nil {
		return err
	}
	return svc.repo.UpsertResult(ctx, UserExam{UserID: userID, ExamID: examID, Percentage: percentage})
}

// ResultsByExam lists every student's result for one exam, with the derived
// public certificate URL.
func (svc *Service) ResultsByExam(ctx context.Context, examID uuid.UUID) ([]ExamResult, error) {
	ex, err := svc.repo.GetExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	ues, err := svc.repo.QueryResultsByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	results := make([]ExamResult, 0, len(ues))
	for _, ue := range ues {
		usr, err := svc.users.GetUserByID(ctx, ue.UserID)
		if err != nil {
			return nil, errors.Wrapf(err, "finding user %d", ue.UserID)
		}
		results = append(results, ExamResult{
			StudentName:    usr.Name,
			CertificateURL: svc.certificateURL(usr.Name, ex.Subject),
			Percentage:     ue.Percentage,
			ExamTitle:      ex.Title,
		})
	}
	return results, nil
}

// ResultsByUser lists one user's results across exams.
func (svc *Service) ResultsByUser(ctx context.Context, userID int64) ([]UserResult, error) {
	usr, err := svc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ues, err := svc.repo.QueryResultsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]UserResult, 0, len(ues))
	for _, ue := range ues {
		ex, err := svc.repo.GetExam(ctx, ue.ExamID)
		if err != nil {
			return nil, errors.Wrapf(err, "finding exam %s", ue.ExamID)
		}
		results = append(results, UserResult{
			ExamTitle:      ex.Title,
			Subject:        ex.Subject,
			Date:           ex.Date,
			Time:           ex.Time,
			Percentage:     ue.Percentage,
			CertificateURL: svc.certificateURL(usr.Name, ex.Subject),
		})
	}
	return results, nil
}

// CertificatePath is the object-store path a certificate lives under.
func CertificatePath(studentName, subject string) string {
	return "certificates/" + core.SafePathComponent(studentName) + "/" + core.SafePathComponent(subject) + ".pdf"
}

func (svc *Service) certificateURL(studentName, subject string) string {
	if svc.store == nil {
		return ""
	}
	return svc.store.PublicURL(CertificatePath(studentName, subject))
}
