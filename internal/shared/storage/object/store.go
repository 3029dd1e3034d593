package object

import (
	"context"
	"io"
)

// ObjectStore keeps raw uploaded files. Keys are opaque to callers.
type ObjectStore interface {
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
