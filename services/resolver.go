package services

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/pkg/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost", "services")

var (
	// ErrServiceNotFound is returned when no service is available for the tool.
	ErrServiceNotFound = errors.New("service not found")
	// ErrServiceConstruction is returned when a factory or constructor fails.
	ErrServiceConstruction = errors.New("failed to create service")
)

// Origin describes how a service was obtained.
type Origin string

// Origins
const (
	OriginPreexisting Origin = "preexisting"
	OriginFactory     Origin = "factory"
	OriginConstructed Origin = "constructed"
	OriginFailed      Origin = "failed"
)

// ServiceHost is implemented by hosts that expose pre-wired services by name.
type ServiceHost interface {
	// Service returns the service by its attribute name,
	// for example `fabric_data_service`, or nil.
	Service(name string) any
}

// Handle is a resolved service.
// The service is owned by the host, the resolver keeps no reference to it.
type Handle struct {
	Tool    string
	Service any
	Origin  Origin
}

// Resolver obtains services for tools.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a resolver backed by the catalog,
// nil catalog means only pre-wired services are resolved.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve returns the service for the tool, trying in order:
// the host service named ServiceAttr(tool),
// the catalog factory named FactoryName(tool),
// the catalog type named TypeName(tool).
// On failure the handle has OriginFailed.
func (r *Resolver) Resolve(host any, tool string) (Handle, error) {
	h, err := r.safeResolve(host, tool)
	if err != nil {
		h = Handle{Tool: tool, Origin: OriginFailed}
		logger.KV(xlog.WARNING,
			"status", "not_resolved",
			"tool", tool,
			"err", err.Error(),
		)
	} else {
		logger.KV(xlog.DEBUG,
			"status", "resolved",
			"tool", tool,
			"origin", h.Origin,
			"type", reflect.TypeOf(h.Service).String(),
		)
	}
	metricskey.StatsServicesResolved.IncrCounter(1, tool, string(h.Origin))
	return h, err
}

func (r *Resolver) safeResolve(host any, tool string) (h Handle, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			h = Handle{}
			err = errors.Wrapf(ErrServiceNotFound, "tool %s: panic: %v", tool, rec)
		}
	}()
	return r.resolve(host, tool)
}

func (r *Resolver) resolve(host any, tool string) (Handle, error) {
	if sh, ok := host.(ServiceHost); ok && !IsNil(sh) {
		if svc := sh.Service(ServiceAttr(tool)); !IsNil(svc) {
			return Handle{Tool: tool, Service: svc, Origin: OriginPreexisting}, nil
		}
	}

	if r == nil || r.catalog == nil {
		return Handle{}, errors.Wrapf(ErrServiceNotFound, "tool %s", tool)
	}

	if f, ok := r.catalog.Factory(FactoryName(tool)); ok {
		svc, err := create(f, FactoryName(tool))
		if err != nil {
			return Handle{}, err
		}
		return Handle{Tool: tool, Service: svc, Origin: OriginFactory}, nil
	}

	typeName := TypeName(tool)
	if f, ok := r.catalog.Type(typeName); ok {
		svc, err := create(f, typeName)
		if err != nil {
			return Handle{}, err
		}
		return Handle{Tool: tool, Service: svc, Origin: OriginConstructed}, nil
	}

	return Handle{}, errors.Wrapf(ErrServiceNotFound, "tool %s: neither %s nor %s is registered",
		tool, FactoryName(tool), typeName)
}

func create(f Factory, name string) (svc any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			svc = nil
			err = errors.Wrapf(ErrServiceConstruction, "%s: panic: %v", name, rec)
		}
	}()

	svc, err = f()
	if err != nil {
		return nil, errors.Wrapf(ErrServiceConstruction, "%s: %s", name, err.Error())
	}
	if IsNil(svc) {
		return nil, errors.Wrapf(ErrServiceConstruction, "%s: returned nil", name)
	}
	return svc, nil
}

// IsNil returns true if v is nil or a typed nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
