package blog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/blog"
	"github.com/enlightiq/enlightiq/storage/database/inmem"
)

type fakeStore struct {
	uploaded []string
}

func (s *fakeStore) Upload(_ context.Context, path, _ string, _ []byte) (string, error) {
	s.uploaded = append(s.uploaded, path)
	return "https://files.test/" + path, nil
}

func (s *fakeStore) PublicURL(path string) string {
	return "https://files.test/" + path
}

var _ core.FileStore = (*fakeStore)(nil)

func setup(t *testing.T) (*blog.Service, *fakeStore) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	store := &fakeStore{}
	return blog.NewService(inmemdb.NewBlogRepository(db), store), store
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, store := setup(t)

	b, err := svc.Create(ctx, blog.NewBlog{
		Title:   "How to Prepare for Olympiads!",
		Content: "Start early.",
		Tags:    []string{"exams", "tips"},
	}, &core.FileUpload{Name: "cover.png", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)

	assert.Equal(t, "how-to-prepare-for-olympiads", b.Slug)
	assert.False(t, b.PublishedDate.IsZero())
	require.Len(t, store.uploaded, 1)
	assert.True(t, strings.HasPrefix(store.uploaded[0], "blog-images/"))
	assert.True(t, strings.HasSuffix(store.uploaded[0], "-cover.png"))
	assert.Equal(t, "https://files.test/"+store.uploaded[0], b.ImageURL)

	got, err := svc.GetBySlug(ctx, "How-To-Prepare-For-Olympiads")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	b, err := svc.Create(ctx, blog.NewBlog{Title: "Old Title", Content: "Body"}, nil)
	require.NoError(t, err)
	assert.Empty(t, b.ImageURL)

	updated, err := svc.Update(ctx, b.ID, blog.NewBlog{Title: "New Title", Content: "Body"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)

	// old slug no longer resolves
	_, err = svc.GetBySlug(ctx, "old-title")
	assert.True(t, core.IsNotFound(err))
}
