package tools

import (
	"sync"

	"github.com/effective-security/xlog"
)

// Collection is the ordered list of tools exposed to the agent.
// A tool added under an existing name replaces the earlier one in place.
// Names are matched exactly, function calling APIs treat them as case-sensitive.
type Collection struct {
	mu    sync.RWMutex
	list  []ITool
	index map[string]int
}

// NewCollection returns a collection with the given tools.
func NewCollection(list ...ITool) *Collection {
	c := &Collection{}
	for _, t := range list {
		c.Add(t)
	}
	return c
}

// Add appends the tool, or replaces the tool with the same name.
// Returns true if a tool was replaced.
func (c *Collection) Add(tool ITool) (replaced bool) {
	if tool == nil {
		return false
	}
	key := tool.Name()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[key]; ok {
		logger.KV(xlog.DEBUG, "status", "replaced", "tool", tool.Name())
		c.list[i] = tool
		return true
	}
	c.index[key] = len(c.list)
	c.list = append(c.list, tool)
	return false
}

// Get returns the tool by name.
func (c *Collection) Get(name string) (ITool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.list[i], true
}

// Remove deletes the tool by name and returns true if it was present.
func (c *Collection) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.list = append(c.list[:i], c.list[i+1:]...)
	delete(c.index, name)
	for k, v := range c.index {
		if v > i {
			c.index[k] = v - 1
		}
	}
	return true
}

// List returns a copy of the tools in order.
func (c *Collection) List() []ITool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ITool(nil), c.list...)
}

// Names returns the tool names in order.
func (c *Collection) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.list))
	for _, t := range c.list {
		names = append(names, t.Name())
	}
	return names
}

// Len returns the number of tools.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.list)
}
