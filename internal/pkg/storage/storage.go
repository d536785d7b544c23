package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage keeps exported receipts and, with the file backend, the state document.
// Paths are slash separated and relative to the storage root.
type FileStorage interface {
	// Upload writes the file at path, replacing any previous content, and returns the cleaned path.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download fails with ErrFileNotFound when nothing is stored at path.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error

	// GetURL returns the address the file is served from. Backends without
	// signed links ignore expiry.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
