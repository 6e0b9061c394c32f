package websearch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tavilyModels "github.com/diverged/tavily-go/models"
	"github.com/effective-security/toolhost/backends/websearch"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req tavilyModels.SearchRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)

		assert.Equal(t, "What is capital of France", req.Query)

		resp := websearch.SearchResult{
			Results: []tavilyModels.SearchResult{
				{Title: "Test Result", URL: "https://example.com", Content: "Test content", Score: 0.9},
			},
		}
		if req.IncludeAnswer {
			resp.Answer = "Paris"
		}

		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func Test_Service(t *testing.T) {
	ctx := context.Background()
	server := newServer(t)

	svc, err := websearch.New(&config.WebSearch{APIKey: "testkey"})
	require.NoError(t, err)
	svc.WithBaseURL(server.URL).WithHTTPClient(server.Client())

	resp, err := svc.Search(ctx, "What is capital of France")
	require.NoError(t, err)
	exp := `ANSWER: Paris
- URL: https://example.com
  TITLE: Test Result
  SCORE: 0.900000
  CONTENT: Test content
`
	assert.Equal(t, exp, resp.String())

	_, err = svc.Search(ctx, " ")
	assert.EqualError(t, err, "invalid request: empty query")

	call := tools.NewToolCall(websearch.ToolName, "query", "What is capital of France")
	res, err := svc.Run(ctx, call)
	require.NoError(t, err)
	assert.Equal(t, exp, res)

	m, ok := svc.Method("JSON")
	require.True(t, ok)
	res, err = m(ctx, call)
	require.NoError(t, err)
	var decoded websearch.SearchResult
	require.NoError(t, json.Unmarshal([]byte(res), &decoded))
	assert.Equal(t, "Paris", decoded.Answer)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, "https://example.com", decoded.Results[0].URL)
	assert.Equal(t, exp, decoded.String())

	_, ok = svc.Method("delete")
	assert.False(t, ok)
}

func Test_Register(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")

	c := services.NewCatalog()
	websearch.Register(c, nil)
	assert.Equal(t, []string{"WebSearchService"}, c.Names())

	_, err := services.NewResolver(c).Resolve(nil, websearch.ToolName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TAVILY_API_KEY is not set")

	t.Setenv("TAVILY_API_KEY", "testkey")
	h, err := services.NewResolver(c).Resolve(nil, websearch.ToolName)
	require.NoError(t, err)
	assert.Equal(t, services.OriginConstructed, h.Origin)

	_, err = websearch.New(&config.WebSearch{})
	assert.EqualError(t, err, "web search API key is not set")
}
