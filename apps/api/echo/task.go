package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/task"
)

type taskApi struct {
	svc      *task.Service
	accounts *account.Service
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *task.Service, accounts *account.Service) {
	api := taskApi{svc: svc, accounts: accounts}

	tg := g.Group("/tasks")
	tg.GET("", api.query)
	tg.GET("/bysalesman/:salesmanId", api.queryBySalesMan)
	tg.PATCH("/:taskId/remark", api.updateRemark)

	// admin endpoints
	ag := tg.Group("", jwt, adminMiddleware())
	ag.POST("/assign/:salesManId", api.assign)
}

// Handlers

func (api *taskApi) assign(ctx echo.Context) error {
	salesManID, err := pathID(ctx, "salesManId")
	if err != nil {
		return err
	}
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	t, err := api.svc.Assign(ctx.Request().Context(), salesManID, data)
	if err != nil {
		return errors.Wrap(err, "assigning task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *taskApi) query(ctx echo.Context) error {
	tasks, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) queryBySalesMan(ctx echo.Context) error {
	salesManID, err := pathID(ctx, "salesmanId")
	if err != nil {
		return err
	}
	sm, err := api.accounts.GetSalesManByID(ctx.Request().Context(), salesManID)
	if err != nil {
		return errors.Wrap(err, "finding salesman by ID")
	}
	tasks, err := api.svc.QueryBySalesMan(ctx.Request().Context(), salesManID)
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate.Format("02-01-2006"),
			Priority:    t.Priority,
			Remarks:     t.Remarks,
			SalesMan: SalesManSummary{
				ID:     sm.ID,
				Name:   sm.Name,
				Email:  sm.Email,
				Status: sm.Status,
			},
		})
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *taskApi) updateRemark(ctx echo.Context) error {
	taskID, err := pathID(ctx, "taskId")
	if err != nil {
		return err
	}
	var data task.RemarkUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RemarkUpdate")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	t, err := api.svc.UpdateRemark(ctx.Request().Context(), taskID, data)
	if err != nil {
		return errors.Wrap(err, "updating task remark")
	}
	return ctx.JSON(http.StatusOK, t)
}

type (
	// TaskView is the salesman-facing task listing row; dates use the
	// dd-MM-yyyy form the frontend renders directly.
	TaskView struct {
		ID          int64           `json:"id"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		DueDate     string          `json:"dueDate"`
		Priority    string          `json:"priority"`
		Remarks     string          `json:"remarks"`
		SalesMan    SalesManSummary `json:"salesman"`
	}

	SalesManSummary struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		Status string `json:"status"`
	}
)
