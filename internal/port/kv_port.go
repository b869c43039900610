package port

import (
	"context"
)

// KeyValueStore persists string blobs under string keys.
// Get reports found=false, with a nil error, for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
