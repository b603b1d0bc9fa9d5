package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/enlightiq/enlightiq/core/blog"
)

type blogRepository struct {
	db *DB
}

func NewBlogRepository(db *DB) blog.Repository {
	return &blogRepository{db: db}
}

func (repo *blogRepository) CreateBlog(_ context.Context, b blog.Blog) (blog.Blog, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.blogs[b.ID] = &b
	return b, nil
}

func (repo *blogRepository) GetBlog(_ context.Context, id uuid.UUID) (blog.Blog, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if b, ok := repo.db.blogs[id]; ok {
		return *b, nil
	}
	return blog.Blog{}, blog.ErrNotFound
}

func (repo *blogRepository) GetBlogBySlug(_ context.Context, slug string) (blog.Blog, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, b := range repo.db.blogs {
		if b.Slug == slug {
			return *b, nil
		}
	}
	return blog.Blog{}, blog.ErrNotFound
}

func (repo *blogRepository) QueryAllBlogs(_ context.Context) ([]blog.Blog, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	blogs := make([]blog.Blog, 0, len(repo.db.blogs))
	for _, b := range repo.db.blogs {
		blogs = append(blogs, *b)
	}
	return blogs, nil
}

func (repo *blogRepository) UpdateBlog(_ context.Context, b blog.Blog) (blog.Blog, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.blogs[b.ID]; !ok {
		return blog.Blog{}, blog.ErrNotFound
	}
	repo.db.blogs[b.ID] = &b
	return b, nil
}
