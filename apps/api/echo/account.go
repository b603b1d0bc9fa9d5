package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/account"
)

type accountApi struct {
	svc *account.Service
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *account.Service) {
	api := accountApi{svc: svc}

	// un-authed endpoints
	g.POST("/signup", api.signup)
	g.POST("/login", api.login)

	g.POST("/salesman/register", api.registerSalesMan)
	g.POST("/schools/register", api.registerSchool)
	g.POST("/coordinators/register", api.registerCoordinator)

	g.GET("/getallUsers", api.queryUsers)
	g.GET("/users/:id", api.retrieveUser)
	g.GET("/salesman", api.querySalesMen)
	g.GET("/schools", api.querySchools)
	g.GET("/schools/active", api.queryActiveSchools)

	// admin endpoints
	ag := g.Group("", jwt, adminMiddleware())
	ag.POST("/register", api.registerAdmin)
	ag.PUT("/salesman/status/:id", api.updateSalesManStatus)
	ag.PUT("/schools/toggle-status/:id", api.toggleSchoolStatus)
	ag.DELETE("/schools/:id", api.destroySchool)
}

// Handlers

func (api *accountApi) signup(ctx echo.Context) error {
	var data account.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.RegisterUser(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *accountApi) registerAdmin(ctx echo.Context) error {
	var data account.NewAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmin")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	adm, err := api.svc.RegisterAdmin(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering admin")
	}
	return ctx.JSON(http.StatusCreated, adm)
}

func (api *accountApi) login(ctx echo.Context) error {
	var data account.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	auth, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(GetAuthClaims(auth, data.Email))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Role: auth.Role, Data: auth.Data})
}

func (api *accountApi) queryUsers(ctx echo.Context) error {
	users, err := api.svc.QueryAllUsers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *accountApi) retrieveUser(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	usr, err := api.svc.GetUserByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *accountApi) registerSalesMan(ctx echo.Context) error {
	var data account.NewSalesMan
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSalesMan")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sm, err := api.svc.RegisterSalesMan(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering salesman")
	}
	return ctx.JSON(http.StatusCreated, sm)
}

func (api *accountApi) querySalesMen(ctx echo.Context) error {
	salesmen, err := api.svc.QueryAllSalesMen(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying salesmen")
	}
	return ctx.JSON(http.StatusOK, salesmen)
}

func (api *accountApi) updateSalesManStatus(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var data account.SalesManStatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SalesManStatusUpdate")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sm, err := api.svc.SetSalesManStatus(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating salesman status")
	}
	return ctx.JSON(http.StatusOK, sm)
}

func (api *accountApi) registerSchool(ctx echo.Context) error {
	var data account.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sch, err := api.svc.RegisterSchool(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering school")
	}
	return ctx.JSON(http.StatusCreated, sch)
}

func (api *accountApi) querySchools(ctx echo.Context) error {
	schools, err := api.svc.QueryAllSchools(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *accountApi) queryActiveSchools(ctx echo.Context) error {
	schools, err := api.svc.QueryActiveSchools(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying active schools")
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *accountApi) toggleSchoolStatus(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	sch, err := api.svc.ToggleSchoolStatus(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "toggling school status")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *accountApi) destroySchool(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.DeleteSchool(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting school")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *accountApi) registerCoordinator(ctx echo.Context) error {
	var data account.NewCoordinator
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCoordinator")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crd, err := api.svc.RegisterCoordinator(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering coordinator")
	}
	return ctx.JSON(http.StatusCreated, crd)
}

// pathID parses a numeric path param; a garbled id reads as not found.
func pathID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, errHTTPNotFound
	}
	return id, nil
}

type LoginResponse struct {
	Token string      `json:"token"`
	Role  string      `json:"role"`
	Data  interface{} `json:"data"`
}
