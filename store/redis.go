package store

import (
	"context"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// The redis store keeps values under `/<prefix>/kv/<key>`.
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a Store backed by Redis.
func NewRedisStore(client *redis.Client, prefix string) Store {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (m *redisStore) root() string {
	return path.Join("/", m.prefix, "kv") + "/"
}

func (m *redisStore) redisKey(key string) string {
	return m.root() + key
}

func (m *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := m.client.Get(ctx, m.redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.Wrapf(ErrNotFound, "key %q", key)
		}
		return "", errors.Wrap(err, "failed to get value from Redis")
	}
	return val, nil
}

func (m *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return errors.New("empty key")
	}
	if err := m.client.Set(ctx, m.redisKey(key), value, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store value in Redis")
	}
	return nil
}

func (m *redisStore) Delete(ctx context.Context, key string) error {
	if err := m.client.Del(ctx, m.redisKey(key)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete value from Redis")
	}
	return nil
}

func (m *redisStore) List(ctx context.Context, prefix string) ([]string, error) {
	root := m.root()
	// Use SCAN instead of KEYS for better performance
	iter := m.client.Scan(ctx, 0, root+escapePattern(prefix)+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), root))
	}
	if err := iter.Err(); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "scan", "err", err.Error())
		return nil, errors.Wrap(err, "failed to scan keys from Redis")
	}
	sort.Strings(keys)
	return keys, nil
}

func escapePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}

// ownedRedis closes the client it was opened with.
type ownedRedis struct {
	Store
	client *redis.Client
}

func (m ownedRedis) Close() error {
	return m.client.Close()
}
