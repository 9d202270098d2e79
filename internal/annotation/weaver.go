package annotation

import (
	"context"
	"reflect"
)

// Weaver applies the installed interceptors to operations according to their markers.
// A Weaver without interceptors (annotation logging disabled) returns every operation
// unwrapped.
type Weaver struct {
	request  Interceptor
	response Interceptor
}

// NewWeaver creates a weaver. Either interceptor may be nil.
func NewWeaver(request, response Interceptor) *Weaver {
	return &Weaver{request: request, response: response}
}

// Enabled reports whether any interceptor is installed
func (w *Weaver) Enabled() bool {
	return w != nil && (w.request != nil || w.response != nil)
}

func (w *Weaver) applies(markers Marker) bool {
	if !w.Enabled() {
		return false
	}
	return (markers.Has(LogRequest) && w.request != nil) ||
		(markers.Has(LogResponse) && w.response != nil)
}

// Weave wraps h with the interceptors selected by markers. The response interceptor
// sits innermost and the request interceptor outermost, so the request line is always
// written before h runs and the response line after it returns.
func (w *Weaver) Weave(owner, method string, markers Marker, h Handler) Handler {
	if !w.applies(markers) {
		return h
	}
	if markers.Has(LogResponse) && w.response != nil {
		h = w.response.Intercept(owner, method, h)
	}
	if markers.Has(LogRequest) && w.request != nil {
		h = w.request.Intercept(owner, method, h)
	}
	return h
}

// Bind0 weaves a business method without arguments
func Bind0[R any](w *Weaver, owner, method string, markers Marker, fn func(context.Context) (R, error)) func(context.Context) (R, error) {
	if !w.applies(markers) {
		return fn
	}
	h := w.Weave(owner, method, markers, func(ctx context.Context, _ []any) (any, error) {
		return fn(ctx)
	})
	return func(ctx context.Context) (R, error) {
		return typed[R](h(ctx, nil))
	}
}

// Bind1 weaves a business method with one argument
func Bind1[A, R any](w *Weaver, owner, method string, markers Marker, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	if !w.applies(markers) {
		return fn
	}
	h := w.Weave(owner, method, markers, func(ctx context.Context, args []any) (any, error) {
		a, _ := args[0].(A)
		return fn(ctx, a)
	})
	return func(ctx context.Context, a A) (R, error) {
		return typed[R](h(ctx, []any{a}))
	}
}

// Bind2 weaves a business method with two arguments
func Bind2[A, B, R any](w *Weaver, owner, method string, markers Marker, fn func(context.Context, A, B) (R, error)) func(context.Context, A, B) (R, error) {
	if !w.applies(markers) {
		return fn
	}
	h := w.Weave(owner, method, markers, func(ctx context.Context, args []any) (any, error) {
		a, _ := args[0].(A)
		b, _ := args[1].(B)
		return fn(ctx, a, b)
	})
	return func(ctx context.Context, a A, b B) (R, error) {
		return typed[R](h(ctx, []any{a, b}))
	}
}

func typed[R any](v any, err error) (R, error) {
	r, _ := v.(R)
	return r, err
}

// TypeName returns the simple type name of v, dereferencing pointers. It is meant to be
// called once at wiring time to name the owner of bound methods.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return unknownName
	}
	return t.Name()
}
