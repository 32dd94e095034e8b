package storage

import "context"

// FileStorage abstracts the object store holding entity images. Keys are
// opaque; ObjectURI turns a key into the externally resolvable location
// without any I/O.
type FileStorage interface {
	Upload(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	ObjectURI(key string) (string, error)
}
