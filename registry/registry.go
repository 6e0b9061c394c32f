// Package registry registers tools discovered from schema files on a host.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/pkg/metricskey"
	"github.com/effective-security/toolhost/pkg/schema"
	"github.com/effective-security/toolhost/scanner"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost", "registry")

// Stage of the registration where a tool failed.
type Stage string

// Stages
const (
	StageScan       Stage = "scan"
	StageResolve    Stage = "resolve"
	StageSynthesize Stage = "synthesize"
)

// ToolHost is implemented by hosts that accept tools.
type ToolHost interface {
	// Tools returns the collection to append tools to.
	Tools() *tools.Collection
}

// Callback receives registration events.
type Callback interface {
	OnToolRegistered(ctx context.Context, tool tools.ITool, origin services.Origin)
	OnToolSkipped(ctx context.Context, skipped Skipped)
}

// Skipped describes a tool that was not registered.
type Skipped struct {
	Tool   string `json:"tool" yaml:"tool"`
	Stage  Stage  `json:"stage" yaml:"stage"`
	Reason string `json:"reason" yaml:"reason"`
}

// Registered describes a tool that was added to the host.
type Registered struct {
	// Tool is the tool name, the schema file name.
	Tool string `json:"tool" yaml:"tool"`
	// Function is the name exposed to the LLM.
	Function string          `json:"function" yaml:"function"`
	Origin   services.Origin `json:"origin" yaml:"origin"`
	Replaced bool            `json:"replaced,omitempty" yaml:"replaced,omitempty"`
}

// Report of a registration pass.
type Report struct {
	// Registered is the number of adapters appended to the host.
	Registered int `json:"registered" yaml:"registered"`
	// Discovered is the number of schemas found by the scanner.
	Discovered int          `json:"discovered" yaml:"discovered"`
	Tools      []Registered `json:"tools,omitempty" yaml:"tools,omitempty"`
	Skipped    []Skipped    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Loader discovers schemas, resolves services and registers adapters.
type Loader struct {
	resolver *services.Resolver
	scanner  *scanner.Scanner
	callback Callback
}

// NewLoader returns a loader resolving services with the catalog.
func NewLoader(catalog *services.Catalog) *Loader {
	return &Loader{
		resolver: services.NewResolver(catalog),
		scanner:  scanner.New(),
	}
}

// WithScanner sets the schema scanner.
func (l *Loader) WithScanner(s *scanner.Scanner) *Loader {
	l.scanner = s
	return l
}

// WithCallback sets the registration callback.
func (l *Loader) WithCallback(cb Callback) *Loader {
	l.callback = cb
	return l
}

// RegisterAll registers a tool for every schema in dir, bound to the service method.
// A tool that fails to resolve or synthesize is skipped and reported,
// other tools are still registered.
// If host is not a ToolHost, nothing is registered.
func (l *Loader) RegisterAll(ctx context.Context, host any, dir, method string) *Report {
	report := &Report{}

	th, ok := host.(ToolHost)
	if !ok || services.IsNil(th) {
		logger.ContextKV(ctx, xlog.WARNING, "status", "no_tool_collection", "host", fmt.Sprintf("%T", host))
		return report
	}
	collection := th.Tools()
	if collection == nil {
		logger.ContextKV(ctx, xlog.WARNING, "status", "no_tool_collection", "host", fmt.Sprintf("%T", host))
		return report
	}

	hostName := fmt.Sprintf("%T", host)
	started := time.Now()
	defer metricskey.PerfRegistration.MeasureSince(started, hostName)

	res := l.scanner.Scan(dir)
	report.Discovered = res.Len()
	for _, s := range res.Skipped {
		l.skip(ctx, report, Skipped{Tool: s.File, Stage: StageScan, Reason: s.Reason})
	}

	for pair := res.Schemas.Oldest(); pair != nil; pair = pair.Next() {
		name, sc := pair.Key, pair.Value

		adapter, handle, stage, err := l.build(host, name, sc, method)
		if err != nil {
			l.skip(ctx, report, Skipped{Tool: name, Stage: stage, Reason: err.Error()})
			continue
		}

		replaced := collection.Add(adapter)
		report.Registered++
		report.Tools = append(report.Tools, Registered{
			Tool:     name,
			Function: adapter.Name(),
			Origin:   handle.Origin,
			Replaced: replaced,
		})

		metricskey.StatsToolsRegistered.IncrCounter(1, name)
		logger.ContextKV(ctx, xlog.DEBUG,
			"status", "registered",
			"tool", name,
			"function", adapter.Name(),
			"origin", handle.Origin,
			"replaced", replaced,
		)
		if l.callback != nil {
			l.callback.OnToolRegistered(ctx, adapter, handle.Origin)
		}
	}

	logger.ContextKV(ctx, xlog.INFO,
		"host", hostName,
		"dir", dir,
		"discovered", report.Discovered,
		"registered", report.Registered,
		"skipped", len(report.Skipped),
	)
	return report
}

// build resolves the service and synthesizes the adapter for one schema.
// A panic from the host or the service is reported as an error of the stage.
func (l *Loader) build(host any, name string, sc *schema.ToolSchema, method string) (adapter *tools.Adapter, handle services.Handle, stage Stage, err error) {
	stage = StageResolve
	defer func() {
		if rec := recover(); rec != nil {
			adapter = nil
			err = errors.Newf("tool %s: panic: %v", name, rec)
		}
	}()

	handle, err = l.resolver.Resolve(host, name)
	if err != nil {
		return nil, handle, stage, err
	}

	stage = StageSynthesize
	adapter, err = tools.Synthesize(sc, handle.Service, method)
	if err != nil {
		return nil, handle, stage, err
	}
	return adapter, handle, stage, nil
}

func (l *Loader) skip(ctx context.Context, report *Report, s Skipped) {
	report.Skipped = append(report.Skipped, s)
	metricskey.StatsToolsSkipped.IncrCounter(1, s.Tool, string(s.Stage))
	logger.ContextKV(ctx, xlog.WARNING,
		"status", "skipped",
		"tool", s.Tool,
		"stage", s.Stage,
		"reason", s.Reason,
	)
	if l.callback != nil {
		l.callback.OnToolSkipped(ctx, s)
	}
}

// RegisterAll registers tools from schemas in dir on the host,
// and returns the number of registered tools.
func RegisterAll(ctx context.Context, host any, catalog *services.Catalog, dir, method string) int {
	return NewLoader(catalog).RegisterAll(ctx, host, dir, method).Registered
}
