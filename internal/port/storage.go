package port

import (
	"context"
	"io"
)

// ObjectStorage defines the contract for report document storage.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	PresignDownload(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
