package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/blog"
)

type blogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) blog.Repository {
	return &blogRepository{db: db}
}

type blogRow struct {
	ID            uuid.UUID      `db:"id"`
	Title         string         `db:"title"`
	Slug          string         `db:"slug"`
	Excerpt       string         `db:"excerpt"`
	Content       string         `db:"content"`
	Author        string         `db:"author"`
	Category      string         `db:"category"`
	Tags          pq.StringArray `db:"tags"`
	ImageURL      string         `db:"image_url"`
	Featured      bool           `db:"featured"`
	ReadTime      string         `db:"read_time"`
	PublishedDate time.Time      `db:"published_date"`
}

func (r blogRow) toDomain() blog.Blog {
	return blog.Blog{
		ID:            r.ID,
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		Author:        r.Author,
		Category:      r.Category,
		Tags:          r.Tags,
		ImageURL:      r.ImageURL,
		Featured:      r.Featured,
		ReadTime:      r.ReadTime,
		PublishedDate: r.PublishedDate,
	}
}

const selectBlog = `
	SELECT id, title, slug, excerpt, content, author, category, tags, image_url, featured,
	       read_time, published_date
	FROM blogs`

func (repo *blogRepository) CreateBlog(ctx context.Context, b blog.Blog) (blog.Blog, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO blogs (id, title, slug, excerpt, content, author, category, tags, image_url,
		                    featured, read_time, published_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.Title, b.Slug, b.Excerpt, b.Content, b.Author, b.Category, pq.StringArray(b.Tags),
		b.ImageURL, b.Featured, b.ReadTime, b.PublishedDate)
	if err != nil {
		return blog.Blog{}, errors.Wrap(err, "creating blog")
	}
	return b, nil
}

func (repo *blogRepository) GetBlog(ctx context.Context, id uuid.UUID) (blog.Blog, error) {
	var row blogRow
	if err := repo.db.GetContext(ctx, &row, selectBlog+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return blog.Blog{}, blog.ErrNotFound
		}
		return blog.Blog{}, errors.Wrap(err, "getting blog")
	}
	return row.toDomain(), nil
}

func (repo *blogRepository) GetBlogBySlug(ctx context.Context, slug string) (blog.Blog, error) {
	var row blogRow
	if err := repo.db.GetContext(ctx, &row, selectBlog+` WHERE slug = $1`, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return blog.Blog{}, blog.ErrNotFound
		}
		return blog.Blog{}, errors.Wrap(err, "getting blog")
	}
	return row.toDomain(), nil
}

func (repo *blogRepository) QueryAllBlogs(ctx context.Context) ([]blog.Blog, error) {
	var rows []blogRow
	if err := repo.db.SelectContext(ctx, &rows, selectBlog+` ORDER BY published_date DESC`); err != nil {
		return nil, errors.Wrap(err, "querying blogs")
	}
	blogs := make([]blog.Blog, 0, len(rows))
	for _, row := range rows {
		blogs = append(blogs, row.toDomain())
	}
	return blogs, nil
}

func (repo *blogRepository) UpdateBlog(ctx context.Context, b blog.Blog) (blog.Blog, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE blogs
		 SET title = $2, slug = $3, excerpt = $4, content = $5, author = $6, category = $7,
		     tags = $8, image_url = $9, featured = $10, read_time = $11
		 WHERE id = $1`,
		b.ID, b.Title, b.Slug, b.Excerpt, b.Content, b.Author, b.Category, pq.StringArray(b.Tags),
		b.ImageURL, b.Featured, b.ReadTime)
	if err != nil {
		return blog.Blog{}, errors.Wrap(err, "updating blog")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return blog.Blog{}, blog.ErrNotFound
	}
	return b, nil
}
