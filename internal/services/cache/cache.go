package cache

import "errors"

var (
	ErrExists = errors.New("key exists")
)

// Cache is a set of held keys. Acquire is atomic: it either takes the key
// or reports ErrExists, which makes it usable as an in-flight marker.
type Cache interface {
	Acquire(key string) error
	Release(key string)
}
