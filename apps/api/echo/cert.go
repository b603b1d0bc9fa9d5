package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/cert"
)

type certApi struct {
	svc *cert.Service
}

func registerCertAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *cert.Service) {
	api := certApi{svc: svc}
	g.POST("/certificates", api.process, jwt, adminMiddleware())
}

// process handles a batch of certificate requests; partial completion is
// reported alongside the failure.
func (api *certApi) process(ctx echo.Context) error {
	var data []cert.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Request list")
	}
	for i := range data {
		if err := data[i].Validate(); err != nil {
			return err
		}
	}

	count, err := api.svc.Process(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "processing certificates")
	}
	return ctx.JSON(http.StatusOK, CertBatchResponse{Processed: count})
}

type CertBatchResponse struct {
	Processed int `json:"processed"`
}
