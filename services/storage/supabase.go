// Package storagesvc implements core.FileStore on the Supabase Storage HTTP API.
package storagesvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core"
)

type supabaseStore struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

var _ core.FileStore = (*supabaseStore)(nil)

func NewSupabaseStore(conf *core.Config) core.FileStore {
	return &supabaseStore{
		baseURL: conf.SupabaseURL,
		apiKey:  conf.SupabaseAPIKey,
		bucket:  conf.SupabaseBucket,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload PUTs the object with upsert enabled, so re-uploading the same path
// overwrites the previous file. Returns the public URL.
func (s *supabaseStore) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "building upload request")
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	res, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "uploading file")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return "", errors.Errorf("uploading file: status %d: %s", res.StatusCode, body)
	}
	return s.PublicURL(path), nil
}

func (s *supabaseStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}
