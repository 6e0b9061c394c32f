// Package store provides key/value stores used by the lookup backends.
package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost", "store")

// ErrNotFound is returned when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is a string key/value store.
type Store interface {
	// Get returns the value of the key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores the value, zero ttl means no expiration.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes the key, deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns sorted keys starting with the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
