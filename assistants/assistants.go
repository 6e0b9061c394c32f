package assistants

import (
	"context"

	"github.com/effective-security/toolhost/registry"
	"github.com/effective-security/toolhost/services"
	"github.com/effective-security/toolhost/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost", "assistants")

//go:generate mockgen -source=assistants.go -destination=../mocks/mockassistants/assistants_mock.gen.go -package mockassistants

// IToolHost is the tool host of an agent.
type IToolHost interface {
	registry.ToolHost
	services.ServiceHost

	// Name returns the name of the host.
	Name() string
	// ToolDefinitions returns the function definitions of the tools, to be used in the LLM call.
	ToolDefinitions() []tools.Definition
	// ExecuteToolCalls executes the tool calls requested by the LLM.
	ExecuteToolCalls(ctx context.Context, calls []ToolCall) []ToolResult
}

// Callback receives tool and registration events.
type Callback interface {
	tools.Callback
	registry.Callback
	OnToolNotFound(ctx context.Context, host IToolHost, tool string)
}

// ToolCall is a tool invocation requested by the LLM.
type ToolCall struct {
	// ID of the call, generated if empty.
	ID string `json:"id" yaml:"id"`
	// Name is the function name of the tool.
	Name string `json:"name" yaml:"name"`
	// Arguments is the JSON object of the arguments.
	Arguments string `json:"arguments" yaml:"arguments"`
}

// ToolResult is the result of a ToolCall, to be sent back to the LLM.
type ToolResult struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Content  string `json:"content" yaml:"content"`
	NotFound bool   `json:"not_found,omitempty" yaml:"not_found,omitempty"`
}
