// Package annotation logs marked business calls at an operator configured severity.
//
// Business methods are bound once at wiring time through a Weaver, which wraps them with
// a RequestInterceptor (log before the call) and/or a ResponseInterceptor (log after a
// successful call) depending on the markers they carry. The business code itself never
// touches the logger.
package annotation

import "context"

// Handler is the uniform shape an intercepted operation is adapted to
type Handler func(ctx context.Context, args []any) (any, error)

// Interceptor wraps a handler identified by its owner type and method name
type Interceptor interface {
	// Intercept returns a handler that delegates to next
	Intercept(owner, method string, next Handler) Handler
}

// Marker tags an operation with the interceptors that apply to it
type Marker uint8

const (
	// LogRequest logs the call before it runs
	LogRequest Marker = 1 << iota
	// LogResponse logs the call and its result after it returns without error
	LogResponse
)

// None applies no interceptor
const None Marker = 0

// Has reports whether m carries every bit of other
func (m Marker) Has(other Marker) bool {
	return other != None && m&other == other
}

// String lists the markers set in m
func (m Marker) String() string {
	switch {
	case m.Has(LogRequest | LogResponse):
		return "LogRequest|LogResponse"
	case m.Has(LogRequest):
		return "LogRequest"
	case m.Has(LogResponse):
		return "LogResponse"
	default:
		return "None"
	}
}

const (
	// RequestTemplate is dispatched by the RequestInterceptor with owner, method, args
	RequestTemplate = "invoked operation {}.{} with arguments {}"
	// ResponseTemplate is dispatched by the ResponseInterceptor with owner, method, args, result
	ResponseTemplate = "operation {}.{} completed with arguments {}, result {}"
)
