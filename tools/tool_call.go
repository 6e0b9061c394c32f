package tools

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ToolCall is the ordered set of string arguments passed to a service.
// Arguments keep the parameter order of the tool schema.
type ToolCall struct {
	tool string
	args *orderedmap.OrderedMap[string, string]
}

// NewToolCall returns a call for the tool, kv is a list of name, value pairs.
func NewToolCall(tool string, kv ...string) *ToolCall {
	c := &ToolCall{
		tool: tool,
		args: orderedmap.New[string, string](),
	}
	for i := 0; i+1 < len(kv); i += 2 {
		c.args.Set(kv[i], kv[i+1])
	}
	return c
}

// Tool returns the name of the called tool.
func (c *ToolCall) Tool() string {
	return c.tool
}

// Get returns the argument value, or empty string.
func (c *ToolCall) Get(name string) string {
	v, _ := c.args.Get(name)
	return v
}

// Lookup returns the argument value and whether it was provided.
func (c *ToolCall) Lookup(name string) (string, bool) {
	return c.args.Get(name)
}

// Names returns the argument names in order.
func (c *ToolCall) Names() []string {
	names := make([]string, 0, c.args.Len())
	for pair := c.args.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of arguments.
func (c *ToolCall) Len() int {
	return c.args.Len()
}

// Map returns a copy of the arguments.
func (c *ToolCall) Map() map[string]string {
	m := make(map[string]string, c.args.Len())
	for pair := c.args.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// MarshalJSON encodes the arguments as an object in order.
func (c *ToolCall) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.args)
}

func (c *ToolCall) set(name, value string) {
	c.args.Set(name, value)
}
