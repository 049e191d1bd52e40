package ports

import (
	"context"
	"io"
)

// ObjectStorage persists an uploaded file and returns the public URL or
// path under which it can be fetched.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
}
