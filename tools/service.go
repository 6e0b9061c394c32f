package tools

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
)

//go:generate mockgen -source=service.go -destination=../mocks/mocktools/service_mock.gen.go -package mocktools

// DefaultMethod is the service method bound by adapters when none is specified.
const DefaultMethod = "run"

var (
	// ErrNoService is returned when an adapter is built without a service.
	ErrNoService = errors.New("service is not provided")
	// ErrMethodNotFound is returned when the service does not expose the requested method.
	ErrMethodNotFound = errors.New("service method not found")
)

// Method is a bound service invocation target.
type Method func(ctx context.Context, call *ToolCall) (string, error)

// Service is a backend exposing the default `run` method.
type Service interface {
	Run(ctx context.Context, call *ToolCall) (string, error)
}

// MethodProvider is a backend exposing named methods.
type MethodProvider interface {
	// Method returns the method by name, the name is case-insensitive.
	Method(name string) (Method, bool)
}

// BindMethod returns the named method of the service.
func BindMethod(service any, name string) (Method, error) {
	if service == nil {
		return nil, errors.WithStack(ErrNoService)
	}
	name = values.StringsCoalesce(name, DefaultMethod)

	if mp, ok := service.(MethodProvider); ok {
		if m, ok := mp.Method(name); ok && m != nil {
			return m, nil
		}
	}
	if strings.EqualFold(name, DefaultMethod) {
		switch s := service.(type) {
		case Service:
			return s.Run, nil
		case Method:
			return s, nil
		case func(context.Context, *ToolCall) (string, error):
			return s, nil
		}
	}
	return nil, errors.Wrapf(ErrMethodNotFound, "%T.%s", service, name)
}
