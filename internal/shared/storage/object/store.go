package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore saves and retrieves whole objects by key. Put replaces any existing object.
type ObjectStore interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
}
