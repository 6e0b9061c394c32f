package services

import (
	"io"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// ErrCacheClosed is returned by Get after Close.
var ErrCacheClosed = errors.New("service cache is closed")

// Cache holds one lazily created instance per service kind.
// Creation is serialized, so concurrent first use creates a single instance.
// The cache is owned by the host and closed on shutdown.
type Cache struct {
	lock   sync.Mutex
	byKind map[string]any
	order  []string
	closed bool
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{
		byKind: make(map[string]any),
	}
}

// Get returns the instance of the kind, creating it with create on first use.
// A failed creation is not cached.
func (c *Cache) Get(kind string, create Factory) (any, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return nil, errors.Wrapf(ErrCacheClosed, "kind %s", kind)
	}
	if inst, ok := c.byKind[kind]; ok {
		return inst, nil
	}
	if create == nil {
		return nil, errors.Wrapf(ErrServiceNotFound, "kind %s", kind)
	}

	inst, err := create()
	if err != nil {
		return nil, errors.Wrapf(ErrServiceConstruction, "kind %s: %s", kind, err.Error())
	}
	if IsNil(inst) {
		return nil, errors.Wrapf(ErrServiceConstruction, "kind %s: returned nil", kind)
	}

	if c.byKind == nil {
		c.byKind = make(map[string]any)
	}
	c.byKind[kind] = inst
	c.order = append(c.order, kind)

	logger.KV(xlog.DEBUG, "status", "created", "kind", kind)
	return inst, nil
}

// Has returns true if the instance of the kind was created.
func (c *Cache) Has(kind string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	_, ok := c.byKind[kind]
	return ok
}

// Kinds returns sorted kinds of created instances.
func (c *Cache) Kinds() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	kinds := make([]string, 0, len(c.byKind))
	for k := range c.byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Close closes every instance that implements io.Closer,
// in reverse order of creation. The cache can not be used after Close.
func (c *Cache) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs error
	for i := len(c.order) - 1; i >= 0; i-- {
		kind := c.order[i]
		if closer, ok := c.byKind[kind].(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.KV(xlog.ERROR, "status", "close_failed", "kind", kind, "err", err.Error())
				errs = errors.CombineErrors(errs, errors.Wrapf(err, "kind %s", kind))
			}
		}
	}
	c.byKind = nil
	c.order = nil
	return errs
}

// GetAs returns the cached instance of the kind as type T.
func GetAs[T any](c *Cache, kind string, create func() (T, error)) (T, error) {
	var zero T
	inst, err := c.Get(kind, func() (any, error) {
		return create()
	})
	if err != nil {
		return zero, err
	}
	v, ok := inst.(T)
	if !ok {
		return zero, errors.Newf("kind %s: unexpected type %T", kind, inst)
	}
	return v, nil
}
