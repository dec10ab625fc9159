package filestorage

import (
	"context"
	"io"
)

// FileStorage keeps raw captured payloads on local durable storage. Names
// are opaque keys relative to the storage root; an artifact's StorageURI
// is such a key.
type FileStorage interface {
	Create(ctx context.Context, name string) (io.WriteCloser, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
}
