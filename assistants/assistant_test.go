package assistants_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/assistants"
	"github.com/effective-security/toolhost/backends/kvlookup"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/mocks/mockassistants"
	"github.com/effective-security/toolhost/pkg/schema"
	"github.com/effective-security/toolhost/registry"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/store"
	"github.com/effective-security/toolhost/tools"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type salesService struct {
	closed bool
}

func (s *salesService) Run(_ context.Context, call *tools.ToolCall) (string, error) {
	return fmt.Sprintf("%s in %s: 42", call.Get("query"), call.Get("region")), nil
}

func (s *salesService) Close() error {
	s.closed = true
	return nil
}

type failingTool struct{}

func (failingTool) Name() string        { return "failing" }
func (failingTool) Description() string { return "always fails" }
func (failingTool) Parameters() any     { return nil }
func (failingTool) Call(context.Context, string) (string, error) {
	return "", errors.New("boom")
}

func echoTool(t *testing.T) tools.ITool {
	echo, err := tools.NewFunc("echo", "Echo the text.",
		[]schema.Parameter{{Name: "text", Description: "Text to echo"}},
		func(_ context.Context, call *tools.ToolCall) (string, error) {
			return call.Get("text"), nil
		})
	require.NoError(t, err)
	return echo
}

func TestAssistant_MixedTools(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	cb := mockassistants.NewMockCallback(ctrl)

	sales := &salesService{}
	a := assistants.NewAssistant(nil).
		WithName("sales-assistant").
		WithCallback(cb).
		WithService("sales_service", sales).
		WithTools(echoTool(t), failingTool{})
	kvlookup.Register(a.Catalog(), a.Cache(), nil)

	gomock.InOrder(
		cb.EXPECT().OnToolRegistered(gomock.Any(), gomock.Any(), services.OriginFactory),
		cb.EXPECT().OnToolRegistered(gomock.Any(), gomock.Any(), services.OriginPreexisting),
		cb.EXPECT().OnToolSkipped(gomock.Any(), registry.Skipped{
			Tool:   "unknown",
			Stage:  registry.StageResolve,
			Reason: "tool unknown: neither get_unknown_service nor UnknownService is registered: service not found",
		}),
	)

	report := a.LoadTools(ctx, "testdata/dynamic", "")
	assert.Equal(t, 3, report.Discovered)
	assert.Equal(t, 2, report.Registered)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, []string{"echo", "failing", "kv_lookup", "query_sales"}, a.Tools().Names())
	assert.Equal(t, []string{"sales_service"}, a.ServiceNames())

	st, err := services.GetAs(a.Cache(), kvlookup.StoreKind, func() (store.Closer, error) {
		return nil, errors.New("store must be created by registration")
	})
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "sales/2024", "1000", 0))

	cb.EXPECT().OnToolStart(gomock.Any(), gomock.Any(), gomock.Any()).Times(5)
	cb.EXPECT().OnToolEnd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(4)
	cb.EXPECT().OnToolError(gomock.Any(), gomock.Any(), "{}", gomock.Any()).Times(1)
	cb.EXPECT().OnToolNotFound(gomock.Any(), a, "missing").Times(1)

	results := a.ExecuteToolCalls(ctx, []assistants.ToolCall{
		{ID: "c1", Name: "query_sales", Arguments: `{"query":"total","region":"EU"}`},
		{ID: "c2", Name: "missing", Arguments: `{}`},
		{ID: "c3", Name: "kv_lookup", Arguments: `{"key":"sales/2024"}`},
		{ID: "c4", Name: "kv_lookup", Arguments: `{"key":"sales/2023"}`},
		{Name: "echo", Arguments: "not json"},
		{ID: "c6", Name: "failing", Arguments: `{}`},
	})
	require.Len(t, results, 6)

	assert.Equal(t, assistants.ToolResult{ID: "c1", Name: "query_sales", Content: "total in EU: 42"}, results[0])
	assert.Equal(t, assistants.ToolResult{
		ID:       "c2",
		Name:     "missing",
		Content:  "Tool `missing` not found. Please check the tool name and try again with exact match. Available tools: echo, failing, kv_lookup, query_sales",
		NotFound: true,
	}, results[1])
	assert.Equal(t, "1000", results[2].Content)
	assert.Equal(t, `Error: key "sales/2023": key not found`, results[3].Content)
	assert.Equal(t, "Error: failed to unmarshal input: check the schema and try again", results[4].Content)
	_, err = uuid.Parse(results[4].ID)
	assert.NoError(t, err)
	assert.Equal(t, "Error: boom", results[5].Content)

	assert.Empty(t, a.ExecuteToolCalls(ctx, nil))

	require.NoError(t, a.Close())
	assert.True(t, sales.closed)
	assert.NoError(t, a.Close())

	// the lookup tool fails after the store is closed
	_, err = services.NewResolver(a.Catalog()).Resolve(a, kvlookup.ToolName)
	assert.True(t, errors.Is(err, services.ErrServiceConstruction))
}

func TestAssistant_NoService(t *testing.T) {
	ctx := context.Background()
	a := assistants.NewAssistant(nil)

	report := a.LoadTools(ctx, "testdata/dynamic", "run")
	assert.Equal(t, 0, report.Registered)
	assert.Len(t, report.Skipped, 3)
	assert.Equal(t, 0, a.Tools().Len())
	assert.Nil(t, a.Service("sales_service"))
}

func TestAssistant_ToolDefinitions(t *testing.T) {
	a := assistants.NewAssistant(nil).WithTools(echoTool(t))
	assert.Equal(t, "Generic Assistant", a.Name())

	js, err := json.Marshal(a.ToolDefinitions())
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"type": "function",
		"function": {
			"name": "echo",
			"description": "Echo the text.\n\nParameters:\n  text: Text to echo",
			"parameters": {
				"properties": {"text": {"type": "string", "description": "Text to echo"}},
				"type": "object",
				"required": ["text"]
			}
		}
	}]`, string(js))
}

func newDataAgent(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"answer":    "Answer to " + req["question"],
			"run_id":    "r1",
			"thread_id": "t1",
			"status":    "completed",
		})
	})
	mux.HandleFunc("GET /threads/{thread}/runs/{run}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"run_id":"r1","thread_id":"t1","status":"completed"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	server := newDataAgent(t)

	_, err := assistants.NewFromConfig(nil)
	assert.EqualError(t, err, "configuration is not provided")

	_, err = assistants.NewFromConfig(&config.Config{Fabric: &config.Fabric{}})
	assert.EqualError(t, err, "failed to create data agent service: tenant ID and data agent URL are required")

	cfg := &config.Config{
		Fabric: &config.Fabric{
			TenantID:     "tenant-1",
			DataAgentURL: server.URL,
			RetryInitial: time.Millisecond,
			RetryMax:     time.Millisecond,
		},
	}
	cfg.SetDefaults()

	a, err := assistants.NewFromConfig(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"query_fabric_data_agent"}, a.Tools().Names())
	assert.Equal(t, []string{"fabric_data_service"}, a.ServiceNames())
	assert.ElementsMatch(t, []string{"get_kv_lookup_service", "WebSearchService"}, a.Catalog().Names())

	report := a.LoadTools(ctx, "testdata/agent", cfg.Tools.ServiceMethod)
	require.Equal(t, 1, report.Registered)
	assert.Equal(t, services.OriginPreexisting, report.Tools[0].Origin)
	assert.Equal(t, []string{"query_fabric_data_agent", "fabric_data"}, a.Tools().Names())

	results := a.ExecuteToolCalls(ctx, []assistants.ToolCall{
		{ID: "1", Name: "query_fabric_data_agent", Arguments: `{"query":"revenue"}`},
		{ID: "2", Name: "fabric_data", Arguments: `{"query":"margin"}`},
		{ID: "3", Name: "query_fabric_data_agent", Arguments: `{}`},
	})
	assert.Equal(t, "Answer to revenue", results[0].Content)
	assert.Equal(t, "Answer to margin", results[1].Content)
	assert.Equal(t, `Error: missing argument "query"`, results[2].Content)
}
