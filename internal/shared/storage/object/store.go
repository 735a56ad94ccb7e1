package object

import (
	"context"
	"io"
)

// ObjectStore defines read access to keyed blobs such as catalog partition files.
type ObjectStore interface {
	// List returns the keys stored under prefix, sorted lexically.
	List(ctx context.Context, prefix string) ([]string, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
