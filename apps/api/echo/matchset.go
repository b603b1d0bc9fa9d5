package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/matchset"
)

type matchSetApi struct {
	svc *matchset.Service
}

func registerMatchSetAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *matchset.Service) {
	api := matchSetApi{svc: svc}

	mg := g.Group("/matchsets")
	mg.GET("", api.query)
	mg.POST("/submit", api.submit)
	mg.GET("/:id/questions", api.questions)
	mg.GET("/:id/details", api.details)

	// admin endpoints
	ag := mg.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.POST("/:id/questions/bulk", api.bulkAddQuestions)
	ag.DELETE("/:id/questions/bulk", api.bulkDeleteQuestions)
}

// Handlers

func (api *matchSetApi) create(ctx echo.Context) error {
	var data matchset.NewMatchSet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMatchSet")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ms, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating match set")
	}
	return ctx.JSON(http.StatusCreated, ms)
}

func (api *matchSetApi) query(ctx echo.Context) error {
	sets, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying match sets")
	}
	return ctx.JSON(http.StatusOK, sets)
}

func (api *matchSetApi) submit(ctx echo.Context) error {
	var data matchset.Submission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Submission")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	result, err := api.svc.Evaluate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "evaluating submission")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (api *matchSetApi) questions(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	questions, err := api.svc.Questions(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *matchSetApi) details(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	ms, err := api.svc.Details(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding match set by ID")
	}
	return ctx.JSON(http.StatusOK, ms)
}

func (api *matchSetApi) bulkAddQuestions(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data []matchset.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion list")
	}
	for i := range data {
		if err := data[i].Validate(); err != nil {
			return err
		}
	}

	if err := api.svc.BulkAddQuestions(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "adding questions")
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *matchSetApi) bulkDeleteQuestions(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data struct {
		QuestionIDs []int64 `json:"questionIds"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding question ids")
	}

	if err := api.svc.BulkDeleteQuestions(ctx.Request().Context(), id, data.QuestionIDs); err != nil {
		return errors.Wrap(err, "deleting questions")
	}
	return ctx.NoContent(http.StatusNoContent)
}
