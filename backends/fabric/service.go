// Package fabric provides the business data service backed by a published data agent.
package fabric

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/tools"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost/backends", "fabric")

// ToolName is the name of the schema file served by the Service.
const ToolName = "fabric_data"

// NoDataAnswer is returned when the data agent has no answer.
const NoDataAnswer = "No data returned"

// RunDetails describes how the data agent produced the answer.
type RunDetails struct {
	RunID        string `json:"run_id" yaml:"run_id"`
	ThreadID     string `json:"thread_id" yaml:"thread_id"`
	Status       string `json:"status" yaml:"status"`
	MessageCount int    `json:"message_count" yaml:"message_count"`
	StepCount    int    `json:"step_count" yaml:"step_count"`
	Steps        []Step `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// QueryResult is the result of a data agent query.
type QueryResult struct {
	Question     string      `json:"question" yaml:"question"`
	Answer       string      `json:"answer,omitempty" yaml:"answer,omitempty"`
	Success      bool        `json:"success" yaml:"success"`
	Error        string      `json:"error,omitempty" yaml:"error,omitempty"`
	RunDetails   *RunDetails `json:"run_details,omitempty" yaml:"run_details,omitempty"`
	DetailsError string      `json:"details_error,omitempty" yaml:"details_error,omitempty"`
}

// Querier queries business data.
type Querier interface {
	Query(ctx context.Context, question string, includeDetails bool) *QueryResult
}

// Service queries the data agent.
// The client is created on first query.
type Service struct {
	cfg        config.Fabric
	httpClient *http.Client

	lock   sync.Mutex
	client *Client
}

var (
	_ Querier       = (*Service)(nil)
	_ tools.Service = (*Service)(nil)
)

// New returns the service for the data agent configuration.
func New(cfg *config.Fabric) (*Service, error) {
	if cfg == nil || cfg.TenantID == "" || cfg.DataAgentURL == "" {
		return nil, errors.New("tenant ID and data agent URL are required")
	}
	fc := *cfg
	c := &config.Config{Fabric: &fc}
	c.SetDefaults()

	logger.KV(xlog.INFO,
		"status", "initialized",
		"tenant_id", cfg.TenantID,
		"data_agent_url", cfg.DataAgentURL,
	)
	return &Service{cfg: *c.Fabric}, nil
}

// NewFromEnv returns the service configured by TENANT_ID, DATA_AGENT_URL
// and optional FABRIC_TOKEN environment variables.
func NewFromEnv() (*Service, error) {
	tenantID := os.Getenv("TENANT_ID")
	agentURL := os.Getenv("DATA_AGENT_URL")
	if tenantID == "" || agentURL == "" {
		return nil, errors.New("TENANT_ID and DATA_AGENT_URL environment variables required")
	}
	return New(&config.Fabric{
		TenantID:     tenantID,
		DataAgentURL: agentURL,
		Token:        os.Getenv("FABRIC_TOKEN"),
	})
}

// WithHTTPClient sets the HTTP client used by the data agent client.
func (s *Service) WithHTTPClient(client *http.Client) *Service {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.httpClient = client
	if s.client != nil {
		s.client.WithHTTPClient(client)
	}
	return s
}

func (s *Service) ensureClient() *Client {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.client == nil {
		logger.KV(xlog.DEBUG, "status", "client_created", "data_agent_url", s.cfg.DataAgentURL)
		s.client = NewClient(&s.cfg)
		if s.httpClient != nil {
			s.client.WithHTTPClient(s.httpClient)
		}
	}
	return s.client
}

// Query asks the data agent.
// Failures are reported in QueryResult.Error, details failures in DetailsError.
func (s *Service) Query(ctx context.Context, question string, includeDetails bool) *QueryResult {
	res := &QueryResult{Question: question}

	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	client := s.ensureClient()
	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "query",
		"question", slices.StringUpto(question, 64),
		"include_details", includeDetails,
	)

	answer, err := client.Ask(ctx, question)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"status", "query_failed",
			"question", slices.StringUpto(question, 64),
			"err", err.Error(),
		)
		res.Error = err.Error()
		return res
	}
	res.Success = true
	res.Answer = answer.Answer

	if !includeDetails {
		return res
	}

	run, err := client.RunDetails(ctx, answer.ThreadID, answer.RunID)
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "run_details_failed",
			"err", err.Error(),
		)
		res.DetailsError = err.Error()
		return res
	}

	res.RunDetails = &RunDetails{
		RunID:        run.RunID,
		ThreadID:     run.ThreadID,
		Status:       run.Status,
		MessageCount: len(run.Messages.Data),
		StepCount:    len(run.RunSteps.Data),
		Steps:        run.RunSteps.Data,
	}
	return res
}

// Run implements tools.Service: the `query` argument is sent to the data agent.
func (s *Service) Run(ctx context.Context, call *tools.ToolCall) (string, error) {
	question, ok := call.Lookup("query")
	if !ok {
		// single parameter schemas may name it differently
		names := call.Names()
		if len(names) != 1 {
			return "", errors.New("query argument is required")
		}
		question = call.Get(names[0])
	}
	return Answer(s.Query(ctx, question, false))
}

// Close releases the client.
func (s *Service) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.client = nil
	logger.KV(xlog.DEBUG, "status", "closed")
	return nil
}

// Answer converts the query result to a tool result.
func Answer(res *QueryResult) (string, error) {
	if res == nil {
		return "", errors.New("no result")
	}
	if !res.Success {
		if res.Error == "" {
			return "", errors.New("unknown error")
		}
		return "", errors.New(res.Error)
	}
	if res.Answer == "" {
		return NoDataAnswer, nil
	}
	return res.Answer, nil
}

// Register registers the Service type for the fabric_data tool.
// Nil cfg means the environment configuration.
func Register(c *services.Catalog, cfg *config.Fabric) {
	c.RegisterType(services.TypeName(ToolName), func() (any, error) {
		if cfg == nil {
			return NewFromEnv()
		}
		return New(cfg)
	})
}
