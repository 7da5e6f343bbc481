package ports

import "context"

// KeyValueStore is the persistence boundary: whole blobs read and written by key.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written; that is not an error.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// StoreBackend is a KeyValueStore with a connection lifecycle.
type StoreBackend interface {
	KeyValueStore
	// Name identifies the backend in logs and readiness output.
	Name() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
