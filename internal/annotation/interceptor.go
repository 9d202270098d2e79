package annotation

import (
	"context"

	"github.com/zurustar/tasklogger/internal/metrics"
)

// RequestInterceptor logs every call attempt before delegating to the operation
type RequestInterceptor struct {
	config     *LoggingConfig
	dispatcher *Dispatcher
}

// NewRequestInterceptor creates a request interceptor
func NewRequestInterceptor(config *LoggingConfig, dispatcher *Dispatcher) *RequestInterceptor {
	return &RequestInterceptor{config: config, dispatcher: dispatcher}
}

// Intercept logs owner.method with its arguments, then calls next. The result and
// error of next are returned untouched.
func (i *RequestInterceptor) Intercept(owner, method string, next Handler) Handler {
	return func(ctx context.Context, args []any) (any, error) {
		call := NewRequestContext(owner, method, args)
		i.dispatcher.DispatchCall(i.config.CurrentSeverity(), RequestTemplate, call)
		metrics.InterceptedCalls.WithLabelValues("request", "logged").Inc()

		return next(ctx, args)
	}
}

// ResponseInterceptor logs calls that returned without error, together with the result
type ResponseInterceptor struct {
	config     *LoggingConfig
	dispatcher *Dispatcher
}

// NewResponseInterceptor creates a response interceptor
func NewResponseInterceptor(config *LoggingConfig, dispatcher *Dispatcher) *ResponseInterceptor {
	return &ResponseInterceptor{config: config, dispatcher: dispatcher}
}

// Intercept calls next and logs the result if it succeeded. A failed call is not
// logged here; its error goes back to the caller unchanged.
func (i *ResponseInterceptor) Intercept(owner, method string, next Handler) Handler {
	return func(ctx context.Context, args []any) (any, error) {
		result, err := next(ctx, args)
		if err != nil {
			metrics.InterceptedCalls.WithLabelValues("response", "skipped").Inc()
			return result, err
		}

		call := NewResponseContext(owner, method, args, result)
		i.dispatcher.DispatchCall(i.config.CurrentSeverity(), ResponseTemplate, call)
		metrics.InterceptedCalls.WithLabelValues("response", "logged").Inc()
		return result, nil
	}
}
