package echoapi

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
)

type uploadApi struct {
	store core.FileStore
}

func registerUploadAPI(g *echo.Group, jwt echo.MiddlewareFunc, store core.FileStore) {
	api := uploadApi{store: store}
	g.POST("/upload/image", api.uploadImage, jwt, adminMiddleware())
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func (api *uploadApi) uploadImage(ctx echo.Context) error {
	fh, err := ctx.FormFile("image")
	if err != nil {
		return core.NewValidationError(errors.New("image file is required"))
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return core.NewValidationError(errors.New("only jpg, jpeg and png images are allowed"))
	}

	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening image upload")
	}
	defer func() { _ = src.Close() }()

	raw, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrap(err, "reading image upload")
	}

	path := "images/" + uuid.New().String() + ext
	url, err := api.store.Upload(ctx.Request().Context(), path, fh.Header.Get("Content-Type"), raw)
	if err != nil {
		return errors.Wrap(err, "uploading image")
	}
	return ctx.JSON(http.StatusOK, UploadResponse{URL: url})
}

type UploadResponse struct {
	URL string `json:"url"`
}
