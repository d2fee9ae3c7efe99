package kvstore

import "errors"

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a persistent string key-value store, the process-lifetime storage
// behind the session and favorites stores. Implementations must survive
// restarts; callers serialize mutating calls per store themselves.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	// Clear wipes every key in the store, not just the caller's.
	Clear() error
}
