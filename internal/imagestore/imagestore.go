package imagestore

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when no image is stored under a key.
	ErrNotFound = errors.New("image not found")
	// ErrInvalidKey is returned for keys that do not name a file inside the
	// store.
	ErrInvalidKey = errors.New("invalid image key")
)

// Store keeps generated images addressed by a flat key such as "ab12cd34.png".
type Store interface {
	// Put writes the image under key, replacing any existing content. Readers
	// never observe a partially written image.
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
