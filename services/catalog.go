package services

import (
	"sort"
	"sync"

	"github.com/effective-security/xlog"
)

// Factory creates a service instance.
type Factory func() (any, error)

// Catalog is the explicit registry of service factories and types,
// keyed by the conventional names derived from tool names.
type Catalog struct {
	lock      sync.RWMutex
	factories map[string]Factory
	types     map[string]Factory
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
		types:     make(map[string]Factory),
	}
}

// RegisterFactory registers the factory of the tool under FactoryName(tool).
func (c *Catalog) RegisterFactory(tool string, f Factory) *Catalog {
	name := FactoryName(tool)

	c.lock.Lock()
	defer c.lock.Unlock()
	if c.factories == nil {
		c.factories = make(map[string]Factory)
	}
	if _, ok := c.factories[name]; ok {
		logger.KV(xlog.WARNING, "status", "factory_replaced", "name", name)
	}
	c.factories[name] = f
	return c
}

// RegisterType registers the zero-argument constructor of the service type.
// The typeName is expected to match TypeName of the tools it serves.
func (c *Catalog) RegisterType(typeName string, f Factory) *Catalog {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.types == nil {
		c.types = make(map[string]Factory)
	}
	if _, ok := c.types[typeName]; ok {
		logger.KV(xlog.WARNING, "status", "type_replaced", "name", typeName)
	}
	c.types[typeName] = f
	return c
}

// Factory returns the factory registered under the name.
func (c *Catalog) Factory(name string) (Factory, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	f, ok := c.factories[name]
	return f, ok && f != nil
}

// Type returns the constructor registered under the type name.
func (c *Catalog) Type(typeName string) (Factory, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	f, ok := c.types[typeName]
	return f, ok && f != nil
}

// Names returns sorted names of the registered factories and types.
func (c *Catalog) Names() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	names := make([]string, 0, len(c.factories)+len(c.types))
	for k := range c.factories {
		names = append(names, k)
	}
	for k := range c.types {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered factories and types.
func (c *Catalog) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.factories) + len(c.types)
}
