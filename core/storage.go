package core

import "context"

// FileUpload is an uploaded file passed from the API layer down to services.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileStore is any object store that serves uploaded files publicly by path.
type FileStore interface {
	// Upload PUTs the object at path and returns its public URL.
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	PublicURL(path string) string
}
