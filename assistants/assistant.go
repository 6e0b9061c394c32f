package assistants

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/pkg/metricskey"
	"github.com/effective-security/toolhost/registry"
	"github.com/effective-security/toolhost/scanner"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/tools"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

// Assistant hosts the tools of an agent.
// Tools are added statically with WithTools,
// or dynamically from schema files with LoadTools.
type Assistant struct {
	name     string
	tools    *tools.Collection
	catalog  *services.Catalog
	cache    *services.Cache
	scanner  *scanner.Scanner
	callback Callback

	lock     sync.RWMutex
	services map[string]any
	order    []string
	closed   bool
}

var _ IToolHost = (*Assistant)(nil)

// NewAssistant returns the host resolving services with the catalog,
// nil catalog means an empty one.
func NewAssistant(catalog *services.Catalog) *Assistant {
	if catalog == nil {
		catalog = services.NewCatalog()
	}
	return &Assistant{
		name:     "Generic Assistant",
		tools:    tools.NewCollection(),
		catalog:  catalog,
		cache:    services.NewCache(),
		scanner:  scanner.New(),
		services: make(map[string]any),
	}
}

// WithName sets the name of the host.
func (a *Assistant) WithName(name string) *Assistant {
	a.name = name
	return a
}

// WithCallback sets the callback.
func (a *Assistant) WithCallback(cb Callback) *Assistant {
	a.callback = cb
	return a
}

// WithScanner sets the scanner used by LoadTools.
func (a *Assistant) WithScanner(s *scanner.Scanner) *Assistant {
	a.scanner = s
	return a
}

// WithService adds the pre-existing service under the name,
// the tool `<tool>` is bound to the service named `<tool>_service`.
// Services implementing io.Closer are closed by Close.
func (a *Assistant) WithService(name string, svc any) *Assistant {
	a.lock.Lock()
	defer a.lock.Unlock()
	if _, ok := a.services[name]; !ok {
		a.order = append(a.order, name)
	}
	a.services[name] = svc
	return a
}

// WithTools adds the tools, a tool with the same name is replaced.
func (a *Assistant) WithTools(list ...tools.ITool) *Assistant {
	for _, t := range list {
		a.tools.Add(t)
	}
	return a
}

// Name returns the name of the host.
func (a *Assistant) Name() string {
	return a.name
}

// Tools returns the tool collection.
func (a *Assistant) Tools() *tools.Collection {
	return a.tools
}

// Service returns the pre-existing service by name, or nil.
func (a *Assistant) Service(name string) any {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.services[name]
}

// ServiceNames returns sorted names of pre-existing services.
func (a *Assistant) ServiceNames() []string {
	a.lock.RLock()
	defer a.lock.RUnlock()
	names := append([]string(nil), a.order...)
	sort.Strings(names)
	return names
}

// Catalog returns the catalog of service factories and types.
func (a *Assistant) Catalog() *services.Catalog {
	return a.catalog
}

// Cache returns the cache of shared instances, closed by Close.
func (a *Assistant) Cache() *services.Cache {
	return a.cache
}

// LoadTools registers a tool for every schema in dir,
// bound to the service method.
func (a *Assistant) LoadTools(ctx context.Context, dir, method string) *registry.Report {
	loader := registry.NewLoader(a.catalog).WithScanner(a.scanner)
	if a.callback != nil {
		loader.WithCallback(a.callback)
	}
	return loader.RegisterAll(ctx, a, dir, method)
}

// ToolDefinitions returns the function definitions of the tools.
func (a *Assistant) ToolDefinitions() []tools.Definition {
	return tools.Definitions(a.tools.List()...)
}

// ExecuteToolCalls executes the calls concurrently,
// the results are in the order of the calls.
func (a *Assistant) ExecuteToolCalls(ctx context.Context, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		if call.ID == "" {
			call.ID = uuid.NewString()
		}
		wg.Add(1)
		go func(index int, tc ToolCall) {
			defer wg.Done()
			results[index] = a.executeToolCall(ctx, tc)
		}(i, call)
	}
	wg.Wait()

	return results
}

func (a *Assistant) executeToolCall(ctx context.Context, tc ToolCall) ToolResult {
	res := ToolResult{ID: tc.ID, Name: tc.Name}

	tool, ok := a.tools.Get(tc.Name)
	if !ok {
		metricskey.StatsToolCallsNotFound.IncrCounter(1, tc.Name)
		if a.callback != nil {
			a.callback.OnToolNotFound(ctx, a, tc.Name)
		}

		availableTools := strings.Join(a.tools.Names(), ", ")
		logger.ContextKV(ctx, xlog.WARNING,
			"assistant", a.name,
			"status", "tool_not_found",
			"tool_name", tc.Name,
			"available_tools", availableTools,
		)

		res.NotFound = true
		res.Content = fmt.Sprintf("Tool `%s` not found. Please check the tool name and try again with exact match. Available tools: %s", tc.Name, availableTools)
		return res
	}

	if a.callback != nil {
		a.callback.OnToolStart(ctx, tool, tc.Arguments)
	}

	out, err := safeCall(ctx, tool, tc.Arguments)
	if err != nil {
		if a.callback != nil {
			a.callback.OnToolError(ctx, tool, tc.Arguments, err)
		}
		logger.ContextKV(ctx, xlog.WARNING,
			"assistant", a.name,
			"status", "tool_call_failed",
			"tool", tc.Name,
			"err", err.Error(),
		)
		res.Content = tools.ErrorPrefix + err.Error()
		return res
	}

	if a.callback != nil {
		a.callback.OnToolEnd(ctx, tool, tc.Arguments, out)
	}
	logger.ContextKV(ctx, xlog.DEBUG,
		"assistant", a.name,
		"status", "tool_call_completed",
		"tool_call_id", tc.ID,
		"tool", tc.Name,
		"result", slices.StringUpto(out, 64),
	)
	res.Content = out
	return res
}

// safeCall protects the host from tools that are not adapters.
func safeCall(ctx context.Context, tool tools.ITool, input string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic: %v", r)
		}
	}()
	return tool.Call(ctx, input)
}

// Close closes the cached instances, then the pre-existing services
// implementing io.Closer in reverse order.
func (a *Assistant) Close() error {
	a.lock.Lock()
	if a.closed {
		a.lock.Unlock()
		return nil
	}
	a.closed = true
	order := a.order
	svcs := a.services
	a.lock.Unlock()

	errs := a.cache.Close()
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		if closer, ok := svcs[name].(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.KV(xlog.ERROR, "status", "close_failed", "service", name, "err", err.Error())
				errs = errors.CombineErrors(errs, errors.Wrapf(err, "service %s", name))
			}
		}
	}
	logger.KV(xlog.DEBUG, "status", "closed", "assistant", a.name)
	return errs
}
