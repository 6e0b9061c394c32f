// Package kvlookup provides the key/value lookup service.
package kvlookup

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/store"
	"github.com/effective-security/toolhost/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost/backends", "kvlookup")

// ToolName is the name of the schema file served by the Service.
const ToolName = "kv_lookup"

// MethodList lists the keys by prefix.
const MethodList = "list"

// StoreKind is the kind of the shared store in the service cache.
const StoreKind = "store"

// NoKeysAnswer is returned when no keys match the prefix.
const NoKeysAnswer = "No keys found"

// Service looks up values in the store
type Service struct {
	store store.Store
}

var (
	_ tools.Service        = (*Service)(nil)
	_ tools.MethodProvider = (*Service)(nil)
)

// New returns the service
func New(st store.Store) *Service {
	return &Service{store: st}
}

// Run returns the value of the `key` argument.
func (s *Service) Run(ctx context.Context, call *tools.ToolCall) (string, error) {
	key, err := argument(call, "key")
	if err != nil {
		return "", err
	}
	v, err := s.store.Get(ctx, key)
	if err != nil {
		logger.ContextKV(ctx, xlog.DEBUG, "status", "get_failed", "key", key, "err", err.Error())
		return "", err
	}
	return v, nil
}

// List returns the keys starting with the optional `prefix` argument, one per line.
func (s *Service) List(ctx context.Context, call *tools.ToolCall) (string, error) {
	keys, err := s.store.List(ctx, call.Get("prefix"))
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return NoKeysAnswer, nil
	}
	return strings.Join(keys, "\n"), nil
}

// Method returns `run` or `list`.
func (s *Service) Method(name string) (tools.Method, bool) {
	switch strings.ToLower(name) {
	case tools.DefaultMethod:
		return s.Run, true
	case MethodList:
		return s.List, true
	}
	return nil, false
}

func argument(call *tools.ToolCall, name string) (string, error) {
	if v, ok := call.Lookup(name); ok {
		return v, nil
	}
	names := call.Names()
	if len(names) == 1 {
		return call.Get(names[0]), nil
	}
	return "", errors.Newf("%s argument is required", name)
}

// Register registers the `get_kv_lookup_service` factory.
// The store is opened once and shared through the cache,
// nil cfg means the memory store.
func Register(c *services.Catalog, cache *services.Cache, cfg *config.Redis) {
	c.RegisterFactory(ToolName, func() (any, error) {
		st, err := services.GetAs(cache, StoreKind, func() (store.Closer, error) {
			return store.Open(cfg)
		})
		if err != nil {
			return nil, err
		}
		return New(st), nil
	})
}
