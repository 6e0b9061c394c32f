package encoding_test

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Count int    `json:"count" yaml:"count" toml:"count"`
}

type stringer struct{}

func (stringer) String() string { return "as string" }

func TestMarshal(t *testing.T) {
	v := item{Name: "sales", Count: 2}

	tcases := []struct {
		format encoding.Format
		exp    string
	}{
		{encoding.FormatJSON, "{\n  \"name\": \"sales\",\n  \"count\": 2\n}"},
		{encoding.FormatYAML, "name: sales\ncount: 2\n"},
		{"YAML", "name: sales\ncount: 2\n"},
		{encoding.FormatTOML, "name = \"sales\"\ncount = 2\n"},
		{encoding.FormatText, "name: sales\ncount: 2\n"},
	}
	for _, tc := range tcases {
		t.Run(tc.format, func(t *testing.T) {
			bs, err := encoding.Marshal(tc.format, v)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, string(bs))
		})
	}

	bs, err := encoding.Marshal(encoding.FormatText, "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(bs))

	bs, err = encoding.Marshal(encoding.FormatText, stringer{})
	require.NoError(t, err)
	assert.Equal(t, "as string", string(bs))

	_, err = encoding.Marshal("xml", v)
	assert.True(t, errors.Is(err, encoding.ErrUnsupportedFormat))
	assert.EqualError(t, err, `format "xml": unsupported format`)

	_, err = encoding.Marshal(encoding.FormatTOML, []string{"a"})
	assert.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	var m map[string]string
	require.NoError(t, encoding.Unmarshal(encoding.FormatYAML, []byte("query: total\nregion: EU\n"), &m))
	assert.Equal(t, map[string]string{"query": "total", "region": "EU"}, m)

	m = nil
	require.NoError(t, encoding.Unmarshal(encoding.FormatJSON, []byte("```json\n{\"query\":\"total\"}\n```"), &m))
	assert.Equal(t, map[string]string{"query": "total"}, m)

	var it item
	require.NoError(t, encoding.Unmarshal(encoding.FormatTOML, []byte("name = \"sales\"\ncount = 2\n"), &it))
	assert.Equal(t, item{Name: "sales", Count: 2}, it)

	err := encoding.Unmarshal(encoding.FormatJSON, []byte("{"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode json")

	err = encoding.Unmarshal("xml", []byte("<a/>"), &m)
	assert.True(t, errors.Is(err, encoding.ErrUnsupportedFormat))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encoding.Write(&buf, encoding.FormatText, "line"))
	require.NoError(t, encoding.Write(&buf, encoding.FormatYAML, item{Name: "a"}))
	assert.Equal(t, "line\nname: a\ncount: 0\n", buf.String())

	assert.Error(t, encoding.Write(&buf, "xml", "line"))
	assert.ElementsMatch(t, []string{"json", "yaml", "toml", "text"}, encoding.Formats())
}
