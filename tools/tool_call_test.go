package tools_test

import (
	"testing"

	"github.com/effective-security/toolhost/pkg/llmutils"
	"github.com/effective-security/toolhost/tools"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestToolCall(t *testing.T) {
	c := tools.NewToolCall("query_sales", "query", "total", "region", "west", "dangling")
	assert.Equal(t, "query_sales", c.Tool())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"query", "region"}, c.Names())
	assert.Equal(t, "total", c.Get("query"))
	assert.Equal(t, "", c.Get("missing"))

	v, ok := c.Lookup("region")
	assert.True(t, ok)
	assert.Equal(t, "west", v)
	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"query": "total", "region": "west"}, c.Map())
	assert.Equal(t, `{"query":"total","region":"west"}`, llmutils.ToJSON(c))
}

func TestToolCall_PreservesOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`), 0, 10, rapid.ID[string]).Draw(rt, "names")
		kv := make([]string, 0, len(names)*2)
		for _, n := range names {
			kv = append(kv, n, "v_"+n)
		}
		c := tools.NewToolCall("t", kv...)
		if len(names) == 0 {
			assert.Empty(rt, c.Names())
			return
		}
		assert.Equal(rt, names, c.Names())
	})
}
