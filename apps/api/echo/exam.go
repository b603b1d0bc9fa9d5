package echoapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/exam"
)

type examApi struct {
	svc *exam.Service
}

func registerExamAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *exam.Service) {
	api := examApi{svc: svc}

	g.GET("/exams", api.query)
	g.GET("/exams/:id", api.retrieve)
	g.GET("/recommended", api.queryRecommended)
	g.GET("/exam/:examId", api.resultsByExam)
	g.GET("/users/:id/exam-results", api.resultsByUser)
	g.POST("/user/:userId/exam/:examId", api.register)

	// admin endpoints
	ag := g.Group("", jwt, adminMiddleware())
	ag.POST("/exams", api.create)
	ag.PUT("/exams/:id", api.update)
	ag.DELETE("/exams/:id", api.destroy)
	ag.POST("/recommend", api.toggleRecommended)
}

// Handlers

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ex, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, ex)
}

func (api *examApi) query(ctx echo.Context) error {
	exams, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *examApi) retrieve(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}
	ex, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding exam by ID")
	}
	return ctx.JSON(http.StatusOK, ex)
}

func (api *examApi) update(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ex, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}
	return ctx.JSON(http.StatusOK, ex)
}

func (api *examApi) destroy(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *examApi) toggleRecommended(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.QueryParam("examId"))
	if err != nil {
		return errHTTPNotFound
	}
	ex, err := api.svc.ToggleRecommended(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "toggling recommended")
	}
	return ctx.JSON(http.StatusOK, ex)
}

func (api *examApi) queryRecommended(ctx echo.Context) error {
	exams, err := api.svc.QueryRecommended(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying recommended exams")
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *examApi) register(ctx echo.Context) error {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		return err
	}
	examID, err := pathUUID(ctx, "examId")
	if err != nil {
		return err
	}

	msg, err := api.svc.Register(ctx.Request().Context(), userID, examID)
	if err != nil {
		return errors.Wrap(err, "registering for exam")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func (api *examApi) resultsByExam(ctx echo.Context) error {
	examID, err := pathUUID(ctx, "examId")
	if err != nil {
		return err
	}
	results, err := api.svc.ResultsByExam(ctx.Request().Context(), examID)
	if err != nil {
		return errors.Wrap(err, "querying exam results")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *examApi) resultsByUser(ctx echo.Context) error {
	userID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	results, err := api.svc.ResultsByUser(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "querying user results")
	}
	return ctx.JSON(http.StatusOK, results)
}

// pathUUID parses a uuid path param; a garbled id reads as not found.
func pathUUID(ctx echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.UUID{}, errHTTPNotFound
	}
	return id, nil
}

type MessageResponse struct {
	Message string `json:"message"`
}
