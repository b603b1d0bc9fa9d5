package cert

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/exam"
)

type (
	// Request asks for one certificate: the result is recorded (overwriting
	// any prior percentage on the same (user, exam) pair), the PDF rendered
	// and uploaded to the object store.
	Request struct {
		UserID     int64     `json:"userId" validate:"required"`
		ExamID     uuid.UUID `json:"examId" validate:"required"`
		Percentage float64   `json:"percentage" validate:"min=0,max=100"`
		Subject    string    `json:"subject" validate:"required"`
		Template   string    `json:"templateName" validate:"required,oneof=template1 template2 template3"`
	}

	// Data is the variable bag handed to the renderer.
	Data struct {
		Name       string
		Email      string
		Phone      string
		Subject    string
		Percentage float64
		Date       string
	}

	// Renderer turns a template name plus a variable bag into PDF bytes.
	Renderer interface {
		Render(template string, data Data) ([]byte, error)
	}

	// UserDirectory is the thin slice of the account service needed here.
	UserDirectory interface {
		GetUserByID(ctx context.Context, id int64) (account.User, error)
	}

	// ResultWriter records percentages; exam.Service satisfies it.
	ResultWriter interface {
		SaveResult(ctx context.Context, userID int64, examID uuid.UUID, percentage float64) error
	}

	Service struct {
		users    UserDirectory
		results  ResultWriter
		renderer Renderer
		store    core.FileStore
		logger   core.Logger
	}
)

func (r *Request) Validate() error {
	r.Subject = core.CleanString(r.Subject)
	r.Template = core.CleanString(r.Template, true /* lower */)
	return core.Validate.Struct(r)
}

func NewService(users UserDirectory, results ResultWriter, renderer Renderer, store core.FileStore, logger core.Logger) *Service {
	return &Service{
		users:    users,
		results:  results,
		renderer: renderer,
		store:    store,
		logger:   logger,
	}
}

// Process handles a batch of certificate requests sequentially; the first
// failure aborts the batch and reports how many were completed before it.
func (svc *Service) Process(ctx context.Context, reqs []Request) (int, error) {
	for i, req := range reqs {
		if err := svc.processOne(ctx, req); err != nil {
			return i, errors.Wrapf(err, "processing certificate %d/%d", i+1, len(reqs))
		}
	}
	return len(reqs), nil
}

func (svc *Service) processOne(ctx context.Context, req Request) error {
	usr, err := svc.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return errors.Wrapf(err, "finding user %d", req.UserID)
	}

	if err := svc.results.SaveResult(ctx, req.UserID, req.ExamID, req.Percentage); err != nil {
		return errors.Wrap(err, "saving result")
	}

	pdf, err := svc.renderer.Render(req.Template, Data{
		Name:       usr.Name,
		Email:      usr.Email,
		Phone:      usr.Phone,
		Subject:    req.Subject,
		Percentage: req.Percentage,
		Date:       time.Now().Format("02 January 2006"),
	})
	if err != nil {
		return errors.Wrap(err, "rendering certificate")
	}

	path := exam.CertificatePath(usr.Name, req.Subject)
	url, err := svc.store.Upload(ctx, path, "application/pdf", pdf)
	if err != nil {
		return errors.Wrap(err, "uploading certificate")
	}
	svc.logger.Info("certificate uploaded", url)
	return nil
}
