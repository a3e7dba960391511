package ports

import (
	"context"
	"io"
)

// UploadArchive keeps a copy of uploaded import files.
type UploadArchive interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}
