package task

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("task not found")
)

type (
	Repository interface {
		CreateTask(ctx context.Context, t Task) (Task, error)
		GetTask(ctx context.Context, id int64) (Task, error)
		QueryAllTasks(ctx context.Context) ([]Task, error)
		QueryTasksBySalesMan(ctx context.Context, salesManID int64) ([]Task, error)
		UpdateTaskRemarks(ctx context.Context, id int64, remarks string) (Task, error)
	}

	// SalesManDirectory is the thin slice of the account service needed here.
	SalesManDirectory interface {
		GetSalesManByID(ctx context.Context, id int64) (account.SalesMan, error)
	}

	Service struct {
		repo     Repository
		salesmen SalesManDirectory
	}
)

func NewService(repo Repository, salesmen SalesManDirectory) *Service {
	return &Service{repo: repo, salesmen: salesmen}
}

// Assign creates a task for a salesman; 404s if the salesman does not exist.
func (svc *Service) Assign(ctx context.Context, salesManID int64, nt NewTask) (Task, error) {
	if _, err := svc.salesmen.GetSalesManByID(ctx, salesManID); err != nil {
		return Task{}, errors.Wrapf(err, "finding salesman %d", salesManID)
	}
	t := Task{
		Title:       nt.Title,
		Description: nt.Description,
		DueDate:     nt.DueDate,
		Priority:    nt.Priority,
		SalesManID:  salesManID,
	}
	return svc.repo.CreateTask(ctx, t)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Task, error) {
	return svc.repo.GetTask(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Task, error) {
	return svc.repo.QueryAllTasks(ctx)
}

func (svc *Service) QueryBySalesMan(ctx context.Context, salesManID int64) ([]Task, error) {
	return svc.repo.QueryTasksBySalesMan(ctx, salesManID)
}

// UpdateRemark overwrites the task's remarks with "<Actor> <name>: <remark>".
// Last write wins; prior remarks are not kept.
func (svc *Service) UpdateRemark(ctx context.Context, id int64, ru RemarkUpdate) (Task, error) {
	if _, err := svc.repo.GetTask(ctx, id); err != nil {
		return Task{}, err
	}
	actor := "Admin"
	if strings.EqualFold(ru.Role, account.KindSalesMan) {
		actor = "Salesman"
	}
	return svc.repo.UpdateTaskRemarks(ctx, id, actor+" "+ru.Name+": "+ru.Remark)
}
