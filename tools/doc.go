// Package tools defines the ITool interface consumed by the agent runtime,
// and the Adapter that binds a declarative tool schema to a backend service.
// Adapters never fail: errors are returned to the model as strings prefixed with ErrorPrefix.
package tools
