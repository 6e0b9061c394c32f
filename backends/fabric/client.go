package fabric

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
)

// TenantHeader carries the tenant ID on data agent requests.
const TenantHeader = "X-Tenant-ID"

// Step of a data agent run.
type Step struct {
	ID     string `json:"id" yaml:"id"`
	Type   string `json:"type" yaml:"type"`
	Status string `json:"status" yaml:"status"`
	Error  any    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Answer is the response of the ask API.
type Answer struct {
	Answer   string `json:"answer"`
	RunID    string `json:"run_id"`
	ThreadID string `json:"thread_id"`
	Status   string `json:"status"`
}

// Run describes a data agent run.
type Run struct {
	RunID    string `json:"run_id"`
	ThreadID string `json:"thread_id"`
	Status   string `json:"status"`
	Messages struct {
		Data []json.RawMessage `json:"data"`
	} `json:"messages"`
	RunSteps struct {
		Data []Step `json:"data"`
	} `json:"run_steps"`
}

// Client of the data agent API.
type Client struct {
	baseURL    string
	tenantID   string
	token      string
	httpClient *http.Client

	attempts int
	initial  time.Duration
	max      time.Duration
}

// NewClient returns a client for the published data agent.
func NewClient(cfg *config.Fabric) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.DataAgentURL, "/"),
		tenantID:   cfg.TenantID,
		token:      cfg.Token,
		httpClient: http.DefaultClient,
		attempts:   cfg.RetryAttempts,
		initial:    cfg.RetryInitial,
		max:        cfg.RetryMax,
	}
}

// WithHTTPClient sets the HTTP client
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// Ask sends the question to the data agent and returns its answer.
func (c *Client) Ask(ctx context.Context, question string) (*Answer, error) {
	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	res := new(Answer)
	if err = c.do(ctx, http.MethodPost, "/ask", body, res); err != nil {
		return nil, err
	}
	return res, nil
}

// RunDetails returns the messages and steps of the run.
func (c *Client) RunDetails(ctx context.Context, threadID, runID string) (*Run, error) {
	if threadID == "" || runID == "" {
		return nil, errors.New("run is not identified")
	}
	p := fmt.Sprintf("/threads/%s/runs/%s", url.PathEscape(threadID), url.PathEscape(runID))
	res := new(Run)
	if err := c.do(ctx, http.MethodGet, p, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, ret any) error {
	op := func() error {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return backoff.Permanent(errors.WithStack(err))
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if c.tenantID != "" {
			req.Header.Set(TenantHeader, c.tenantID)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(errors.WithStack(ctx.Err()))
			}
			return errors.Wrap(err, "failed to call data agent")
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "failed to read response")
		}

		if resp.StatusCode >= 300 {
			err = errors.Newf("data agent returned %d: %s", resp.StatusCode, slices.StringUpto(strings.TrimSpace(string(data)), 256))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return err
			}
			return backoff.Permanent(err)
		}
		if err = json.Unmarshal(data, ret); err != nil {
			return backoff.Permanent(errors.Wrap(err, "failed to decode response"))
		}
		return nil
	}

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "retry",
			"path", path,
			"attempt", attempt,
			"wait", wait.String(),
			"err", err.Error(),
		)
	}
	return backoff.RetryNotify(op, backoff.WithContext(c.backoff(), ctx), notify)
}

func (c *Client) backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initial
	b.MaxInterval = c.max
	b.MaxElapsedTime = 0
	retries := 0
	if c.attempts > 1 {
		retries = c.attempts - 1
	}
	return backoff.WithMaxRetries(b, uint64(retries))
}
