package port

import "context"

type KeyValueStore interface {
	// GetItem returns the raw value under key, found is false when absent
	GetItem(ctx context.Context, key string) (value string, found bool, err error)

	// SetItem overwrites the value under key
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key, removing an absent key is not an error
	RemoveItem(ctx context.Context, key string) error
}
