package store

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// Closer is a Store that owns its connection.
type Closer interface {
	Store
	io.Closer
}

// Open returns the Redis store for the configuration,
// or the memory store if cfg is nil.
func Open(cfg *config.Redis) (Closer, error) {
	if cfg == nil || cfg.URL == "" {
		logger.KV(xlog.INFO, "status", "opened", "type", "memory")
		return nopCloser{NewMemoryStore()}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis URL")
	}
	logger.KV(xlog.INFO, "status", "opened", "type", "redis", "addr", opts.Addr, "prefix", cfg.Prefix)
	client := redis.NewClient(opts)
	return ownedRedis{
		Store:  NewRedisStore(client, cfg.Prefix),
		client: client,
	}, nil
}

type nopCloser struct {
	Store
}

func (nopCloser) Close() error {
	return nil
}
