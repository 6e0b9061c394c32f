package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, st store.Store) {
	ctx := context.Background()

	_, err := st.Get(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.EqualError(t, err, `key "missing": key not found`)

	assert.EqualError(t, st.Set(ctx, "", "v", 0), "empty key")

	require.NoError(t, st.Set(ctx, "sales/2024", "42", 0))
	require.NoError(t, st.Set(ctx, "sales/2023", "40", 0))
	require.NoError(t, st.Set(ctx, "inventory/A1", "7", 0))

	v, err := st.Get(ctx, "sales/2024")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	keys, err := st.List(ctx, "sales/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sales/2023", "sales/2024"}, keys)

	keys, err = st.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory/A1", "sales/2023", "sales/2024"}, keys)

	require.NoError(t, st.Set(ctx, "sales/2024", "43", 0))
	v, err = st.Get(ctx, "sales/2024")
	require.NoError(t, err)
	assert.Equal(t, "43", v)

	require.NoError(t, st.Delete(ctx, "sales/2024"))
	require.NoError(t, st.Delete(ctx, "sales/2024"))
	_, err = st.Get(ctx, "sales/2024")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func Test_MemoryStore(t *testing.T) {
	st := store.NewMemoryStore()
	testStore(t, st)

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "short", "lived", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, err := st.Get(ctx, "short")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	keys, err := st.List(ctx, "short")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func Test_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	st := store.NewRedisStore(client, "test")
	testStore(t, st)

	// keys are namespaced
	assert.True(t, mr.Exists("/test/kv/sales/2023"))

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "short", "lived", time.Second))
	mr.FastForward(2 * time.Second)
	_, err := st.Get(ctx, "short")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	mr.Close()
	_, err = st.Get(ctx, "sales/2023")
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrNotFound))
}

func Test_Open(t *testing.T) {
	ctx := context.Background()

	st, err := store.Open(nil)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "k", "v", 0))
	require.NoError(t, st.Close())

	_, err = store.Open(&config.Redis{URL: "http://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis URL")

	mr := miniredis.RunT(t)
	st, err = store.Open(&config.Redis{URL: "redis://" + mr.Addr(), Prefix: "toolhost"})
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "sales/2024", "42", 0))
	assert.True(t, mr.Exists("/toolhost/kv/sales/2024"))

	v, err := st.Get(ctx, "sales/2024")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	require.NoError(t, st.Close())
	_, err = st.Get(ctx, "sales/2024")
	require.Error(t, err)
}
