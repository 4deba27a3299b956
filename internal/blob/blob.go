package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a content ref does not resolve.
var ErrNotFound = errors.New("blob: content not found")

// Store holds attachment bytes behind opaque content refs.
type Store interface {
	// Put stores content and returns a ref that Get will resolve.
	Put(ctx context.Context, filename, contentType string, content []byte) (string, error)

	// Get resolves a ref back to its bytes.
	Get(ctx context.Context, ref string) ([]byte, error)

	// Delete discards the content behind ref. Unknown refs are ignored.
	Delete(ctx context.Context, ref string) error
}
