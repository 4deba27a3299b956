package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a document store keyed by string. Values are marshaled to
// JSON on write and unmarshaled on read.
type Store interface {
	// Get reads the document at key into dest. Returns ErrNotFound if
	// the key has never been written.
	Get(ctx context.Context, key string, dest any) error

	// Set writes the document at key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
