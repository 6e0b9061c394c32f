// Package services resolves the backend service of a tool.
//
// A tool named `t` is served, in order of precedence, by a service pre-wired on
// the host as `t_service`, by a factory registered in the Catalog as
// `get_t_service`, or by a type registered as `TService`.
// Instances shared between services are kept in a host owned Cache.
package services
