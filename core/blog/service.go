package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("blog not found")
)

type (
	Repository interface {
		CreateBlog(ctx context.Context, b Blog) (Blog, error)
		GetBlog(ctx context.Context, id uuid.UUID) (Blog, error)
		GetBlogBySlug(ctx context.Context, slug string) (Blog, error)
		QueryAllBlogs(ctx context.Context) ([]Blog, error)
		UpdateBlog(ctx context.Context, b Blog) (Blog, error)
	}

	Service struct {
		repo  Repository
		store core.FileStore
	}
)

func NewService(repo Repository, store core.FileStore) *Service {
	return &Service{repo: repo, store: store}
}

func (svc *Service) Create(ctx context.Context, nb NewBlog, image *core.FileUpload) (Blog, error) {
	b := Blog{
		ID:            uuid.New(),
		Title:         nb.Title,
		Slug:          slug.Make(nb.Title),
		Excerpt:       nb.Excerpt,
		Content:       nb.Content,
		Author:        nb.Author,
		Category:      nb.Category,
		Tags:          nb.Tags,
		Featured:      nb.Featured,
		ReadTime:      nb.ReadTime,
		PublishedDate: time.Now().UTC(),
	}
	if image != nil {
		url, err := svc.uploadImage(ctx, image)
		if err != nil {
			return Blog{}, err
		}
		b.ImageURL = url
	}
	return svc.repo.CreateBlog(ctx, b)
}

func (svc *Service) Update(ctx context.Context, id uuid.UUID, nb NewBlog, image *core.FileUpload) (Blog, error) {
	b, err := svc.repo.GetBlog(ctx, id)
	if err != nil {
		return Blog{}, err
	}
	b.Title = nb.Title
	b.Slug = slug.Make(nb.Title)
	b.Excerpt = nb.Excerpt
	b.Content = nb.Content
	b.Author = nb.Author
	b.Category = nb.Category
	b.Tags = nb.Tags
	b.Featured = nb.Featured
	b.ReadTime = nb.ReadTime
	if image != nil {
		url, err := svc.uploadImage(ctx, image)
		if err != nil {
			return Blog{}, err
		}
		b.ImageURL = url
	}
	return svc.repo.UpdateBlog(ctx, b)
}

func (svc *Service) uploadImage(ctx context.Context, image *core.FileUpload) (string, error) {
	path := "blog-images/" + uuid.New().String() + "-" + image.Name
	url, err := svc.store.Upload(ctx, path, image.ContentType, image.Data)
	if err != nil {
		return "", errors.Wrap(err, "uploading blog image")
	}
	return url, nil
}

func (svc *Service) GetByID(ctx context.Context, id uuid.UUID) (Blog, error) {
	return svc.repo.GetBlog(ctx, id)
}

func (svc *Service) GetBySlug(ctx context.Context, s string) (Blog, error) {
	return svc.repo.GetBlogBySlug(ctx, core.CleanString(s, true /* lower */))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Blog, error) {
	return svc.repo.QueryAllBlogs(ctx)
}
