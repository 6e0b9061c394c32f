// Package websearch provides the web search service.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	tavilygo "github.com/diverged/tavily-go"
	tavilyModels "github.com/diverged/tavily-go/models"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/tools"
)

// ToolName is the name of the schema file served by the Service.
const ToolName = "web_search"

// MethodJSON returns the search result as JSON.
const MethodJSON = "json"

// SearchResult represents the structure for a search response
type SearchResult struct {
	Results []tavilyModels.SearchResult `json:"results" yaml:"results"`
	Answer  string                      `json:"answer,omitempty" yaml:"answer,omitempty"`
}

func (r *SearchResult) String() string {
	var buf bytes.Buffer
	if r.Answer != "" {
		fmt.Fprintf(&buf, "ANSWER: %s\n", r.Answer)
	}

	for _, result := range r.Results {
		fmt.Fprintf(&buf, "- URL: %s\n", result.URL)
		fmt.Fprintf(&buf, "  TITLE: %s\n", result.Title)
		fmt.Fprintf(&buf, "  SCORE: %f\n", result.Score)
		fmt.Fprintf(&buf, "  CONTENT: %s\n", result.Content)
	}

	return buf.String()
}

// Service provides a web search functionality
type Service struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var (
	_ tools.Service        = (*Service)(nil)
	_ tools.MethodProvider = (*Service)(nil)
)

// New returns the service
func New(cfg *config.WebSearch) (*Service, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("web search API key is not set")
	}
	return &Service{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// NewFromEnv returns the service with TAVILY_API_KEY environment variable.
func NewFromEnv() (*Service, error) {
	apikey := os.Getenv("TAVILY_API_KEY")
	if apikey == "" {
		return nil, errors.Errorf("TAVILY_API_KEY is not set")
	}
	return New(&config.WebSearch{APIKey: apikey})
}

func (s *Service) WithBaseURL(baseURL string) *Service {
	s.baseURL = baseURL
	return s
}

func (s *Service) WithHTTPClient(client *http.Client) *Service {
	s.httpClient = client
	return s
}

// Search performs the web search
func (s *Service) Search(ctx context.Context, query string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("invalid request: empty query")
	}

	// Create a new Tavily client
	client := tavilygo.NewClient(s.apiKey)
	if s.baseURL != "" {
		client.BaseURL = s.baseURL
	}
	// Set the HTTP client if provided
	if s.httpClient != nil {
		client.HTTPClient = s.httpClient
	}

	searchReq := tavilyModels.SearchRequest{
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
	}

	searchResp, err := tavilygo.Search(client, searchReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to perform search")
	}

	return &SearchResult{
		Results: searchResp.Results,
		Answer:  searchResp.Answer,
	}, nil
}

// Run returns the search result of the `query` argument as text.
func (s *Service) Run(ctx context.Context, call *tools.ToolCall) (string, error) {
	res, err := s.Search(ctx, call.Get("query"))
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// Method returns `run`, or `json` that returns the search result as JSON.
func (s *Service) Method(name string) (tools.Method, bool) {
	switch strings.ToLower(name) {
	case tools.DefaultMethod:
		return s.Run, true
	case MethodJSON:
		return s.runJSON, true
	}
	return nil, false
}

func (s *Service) runJSON(ctx context.Context, call *tools.ToolCall) (string, error) {
	res, err := s.Search(ctx, call.Get("query"))
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(res)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output")
	}
	return string(bs), nil
}

// Register registers the Service type for the web_search tool.
// Nil cfg means the environment configuration.
func Register(c *services.Catalog, cfg *config.WebSearch) {
	c.RegisterType(services.TypeName(ToolName), func() (any, error) {
		if cfg == nil {
			return NewFromEnv()
		}
		return New(cfg)
	})
}
