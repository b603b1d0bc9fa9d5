package blog

import (
	"time"

	"github.com/google/uuid"

	"github.com/enlightiq/enlightiq/core"
)

type Blog struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	ImageURL      string    `json:"imageUrl"`
	Featured      bool      `json:"featured"`
	ReadTime      string    `json:"readTime"`
	PublishedDate time.Time `json:"publishedDate"`
}

// NewBlog is the "blog" JSON part of the multipart create/update request.
type NewBlog struct {
	Title    string   `json:"title" validate:"required"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content" validate:"required"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
	ReadTime string   `json:"readTime"`
}

func (nb *NewBlog) Validate() error {
	nb.Title = core.CleanString(nb.Title)
	nb.Author = core.CleanString(nb.Author)
	return core.Validate.Struct(nb)
}
