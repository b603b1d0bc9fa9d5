package echoapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/blog"
)

type blogApi struct {
	svc *blog.Service
}

func registerBlogAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *blog.Service) {
	api := blogApi{svc: svc}

	bg := g.Group("/blogs")
	bg.GET("", api.query)
	bg.GET("/:id", api.retrieve)
	bg.GET("/slug/:slug", api.retrieveBySlug)

	// admin endpoints
	ag := bg.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.PUT("/:id", api.update)
}

// Handlers

func (api *blogApi) create(ctx echo.Context) error {
	data, image, err := bindBlogForm(ctx)
	if err != nil {
		return err
	}

	b, err := api.svc.Create(ctx.Request().Context(), data, image)
	if err != nil {
		return errors.Wrap(err, "creating blog")
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *blogApi) update(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}
	data, image, err := bindBlogForm(ctx)
	if err != nil {
		return err
	}

	b, err := api.svc.Update(ctx.Request().Context(), id, data, image)
	if err != nil {
		return errors.Wrap(err, "updating blog")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *blogApi) query(ctx echo.Context) error {
	blogs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying blogs")
	}
	return ctx.JSON(http.StatusOK, blogs)
}

func (api *blogApi) retrieve(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}
	b, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding blog by ID")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *blogApi) retrieveBySlug(ctx echo.Context) error {
	b, err := api.svc.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return errors.Wrap(err, "finding blog by slug")
	}
	return ctx.JSON(http.StatusOK, b)
}

// bindBlogForm reads the multipart request: a "blog" JSON part plus an
// optional "image" file part.
func bindBlogForm(ctx echo.Context) (blog.NewBlog, *core.FileUpload, error) {
	var data blog.NewBlog
	if err := json.Unmarshal([]byte(ctx.FormValue("blog")), &data); err != nil {
		return blog.NewBlog{}, nil, core.NewValidationError(errors.New("invalid blog payload"))
	}
	if err := data.Validate(); err != nil {
		return blog.NewBlog{}, nil, err
	}

	fh, err := ctx.FormFile("image")
	if err != nil {
		return data, nil, nil // image is optional
	}
	src, err := fh.Open()
	if err != nil {
		return blog.NewBlog{}, nil, errors.Wrap(err, "opening image upload")
	}
	defer func() { _ = src.Close() }()

	raw, err := io.ReadAll(src)
	if err != nil {
		return blog.NewBlog{}, nil, errors.Wrap(err, "reading image upload")
	}
	return data, &core.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        raw,
	}, nil
}
