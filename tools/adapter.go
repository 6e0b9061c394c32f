package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/pkg/llmutils"
	"github.com/effective-security/toolhost/pkg/metricskey"
	"github.com/effective-security/toolhost/pkg/schema"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
	"github.com/invopop/jsonschema"
)

// ErrorPrefix marks a tool result that describes a failure.
const ErrorPrefix = "Error: "

var (
	// ErrFailedUnmarshalInput is reported when the tool input is not a JSON object of strings.
	ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")
	// ErrInvalidName is returned when a tool or parameter name can not be exposed to the LLM.
	ErrInvalidName = errors.New("invalid name")
)

var validName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Adapter bridges the tool calling contract of the agent to a service method.
// The Adapter is immutable, and safe for concurrent use if the bound method is.
type Adapter struct {
	name        string
	description string
	docstring   string
	params      []schema.Parameter
	funcParams  *jsonschema.Schema
	method      Method
}

var _ ITool = (*Adapter)(nil)

// Synthesize builds an adapter for the tool schema, bound to the service method.
// Empty method means DefaultMethod.
func Synthesize(s *schema.ToolSchema, service any, method string) (*Adapter, error) {
	if s == nil {
		return nil, errors.New("schema is not provided")
	}
	m, err := BindMethod(service, method)
	if err != nil {
		return nil, errors.WithMessagef(err, "tool %s", s.Name)
	}
	return NewFunc(s.FunctionName, s.Description, s.Parameters, m)
}

// NewFunc builds an adapter from a hand written function.
// The function has the same invocation and error policy as synthesized tools.
func NewFunc(name, description string, params []schema.Parameter, fn Method) (*Adapter, error) {
	if !validName.MatchString(name) {
		return nil, errors.Wrapf(ErrInvalidName, "tool %q", name)
	}
	if fn == nil {
		return nil, errors.Newf("tool %s: function is not provided", name)
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if !validName.MatchString(p.Name) || seen[p.Name] {
			return nil, errors.Wrapf(ErrInvalidName, "tool %s: parameter %q", name, p.Name)
		}
		seen[p.Name] = true
	}

	params = append([]schema.Parameter(nil), params...)
	return &Adapter{
		name:        name,
		description: description,
		docstring:   schema.Docstring(description, params),
		params:      params,
		funcParams:  schema.ParametersSchema(params),
		method:      fn,
	}, nil
}

// Name returns the function name of the tool.
func (a *Adapter) Name() string {
	return a.name
}

// Description returns the docstring: the description and one line per parameter.
func (a *Adapter) Description() string {
	return a.docstring
}

// Summary returns the description without parameters.
func (a *Adapter) Summary() string {
	return a.description
}

// Docstring is an alias for Description.
func (a *Adapter) Docstring() string {
	return a.docstring
}

// Parameters returns the JSON schema of the parameters.
func (a *Adapter) Parameters() any {
	return a.funcParams
}

// ParameterNames returns the parameter names in schema order.
func (a *Adapter) ParameterNames() []string {
	names := make([]string, 0, len(a.params))
	for _, p := range a.params {
		names = append(names, p.Name)
	}
	return names
}

// Call decodes the JSON object input and invokes the tool.
// The error is always nil, failures are reported in the result with ErrorPrefix.
func (a *Adapter) Call(ctx context.Context, input string) (string, error) {
	args, err := decodeArgs(input)
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"tool", a.name,
			"status", "invalid_input",
			"input", slices.StringUpto(input, 64),
			"err", err.Error(),
		)
		metricskey.StatsToolCallsFailed.IncrCounter(1, a.name)
		return ErrorPrefix + err.Error(), nil
	}
	return a.Invoke(ctx, args), nil
}

// Invoke calls the service with the arguments ordered by the tool schema.
// It never panics and never fails: any error is converted to a string
// starting with ErrorPrefix.
func (a *Adapter) Invoke(ctx context.Context, args map[string]string) (result string) {
	started := time.Now()
	defer metricskey.PerfToolCall.MeasureSince(started, a.name)

	call, err := a.toolCall(args)
	if err == nil {
		logger.ContextKV(ctx, xlog.DEBUG,
			"tool", a.name,
			"status", "called",
			"tool_call", llmutils.ToJSON(call),
		)
		result, err = a.safeInvoke(ctx, call)
	}
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, a.name)
		logger.ContextKV(ctx, xlog.ERROR,
			"tool", a.name,
			"status", "failed",
			"err", err.Error(),
		)
		return ErrorPrefix + err.Error()
	}

	metricskey.StatsToolCallsSucceeded.IncrCounter(1, a.name)
	logger.ContextKV(ctx, xlog.DEBUG,
		"tool", a.name,
		"status", "result",
		"result", slices.StringUpto(result, 64),
	)
	return result
}

func (a *Adapter) toolCall(args map[string]string) (*ToolCall, error) {
	for k := range args {
		if !a.hasParam(k) {
			return nil, errors.Newf("unexpected argument %q", k)
		}
	}
	call := NewToolCall(a.name)
	for _, p := range a.params {
		v, ok := args[p.Name]
		if !ok {
			return nil, errors.Newf("missing argument %q", p.Name)
		}
		call.set(p.Name, v)
	}
	return call, nil
}

func (a *Adapter) hasParam(name string) bool {
	for _, p := range a.params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (a *Adapter) safeInvoke(ctx context.Context, call *ToolCall) (res string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic: %v", r)
		}
	}()
	return a.method(ctx, call)
}

func decodeArgs(input string) (map[string]string, error) {
	clean := bytes.TrimSpace(llmutils.CleanJSON([]byte(input)))
	if len(clean) == 0 {
		return map[string]string{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(clean, &raw); err != nil {
		return nil, errors.WithStack(ErrFailedUnmarshalInput)
	}
	args := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Newf("argument %q must be a string, got %s", k, typeName(v))
		}
		args[k] = s
	}
	return args, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
