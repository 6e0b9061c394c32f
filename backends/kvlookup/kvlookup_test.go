package kvlookup_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/effective-security/toolhost/backends/kvlookup"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/store"
	"github.com/effective-security/toolhost/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Service(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, "sales/2024", "42", 0))
	require.NoError(t, st.Set(ctx, "sales/2023", "40", 0))

	svc := kvlookup.New(st)

	res, err := svc.Run(ctx, tools.NewToolCall(kvlookup.ToolName, "key", "sales/2024"))
	require.NoError(t, err)
	assert.Equal(t, "42", res)

	// single argument with another name
	res, err = svc.Run(ctx, tools.NewToolCall(kvlookup.ToolName, "id", "sales/2023"))
	require.NoError(t, err)
	assert.Equal(t, "40", res)

	_, err = svc.Run(ctx, tools.NewToolCall(kvlookup.ToolName, "key", "missing"))
	assert.EqualError(t, err, `key "missing": key not found`)

	_, err = svc.Run(ctx, tools.NewToolCall(kvlookup.ToolName))
	assert.EqualError(t, err, "key argument is required")

	list, ok := svc.Method("LIST")
	require.True(t, ok)
	res, err = list(ctx, tools.NewToolCall(kvlookup.ToolName, "prefix", "sales/"))
	require.NoError(t, err)
	assert.Equal(t, "sales/2023\nsales/2024", res)

	res, err = list(ctx, tools.NewToolCall(kvlookup.ToolName, "prefix", "inventory/"))
	require.NoError(t, err)
	assert.Equal(t, kvlookup.NoKeysAnswer, res)

	_, ok = svc.Method("delete")
	assert.False(t, ok)
}

func Test_Register(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("/toolhost/kv/sales/2024", "42"))

	cache := services.NewCache()
	c := services.NewCatalog()
	kvlookup.Register(c, cache, &config.Redis{URL: "redis://" + mr.Addr(), Prefix: "toolhost"})
	assert.Equal(t, []string{"get_kv_lookup_service"}, c.Names())

	r := services.NewResolver(c)
	h1, err := r.Resolve(nil, kvlookup.ToolName)
	require.NoError(t, err)
	assert.Equal(t, services.OriginFactory, h1.Origin)

	h2, err := r.Resolve(nil, kvlookup.ToolName)
	require.NoError(t, err)
	// the store is shared
	assert.Equal(t, []string{kvlookup.StoreKind}, cache.Kinds())

	for _, h := range []services.Handle{h1, h2} {
		svc := h.Service.(*kvlookup.Service)
		res, err := svc.Run(ctx, tools.NewToolCall(kvlookup.ToolName, "key", "sales/2024"))
		require.NoError(t, err)
		assert.Equal(t, "42", res)
	}

	require.NoError(t, cache.Close())
	_, err = r.Resolve(nil, kvlookup.ToolName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service cache is closed")
}
