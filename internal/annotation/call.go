package annotation

import (
	"github.com/zurustar/tasklogger/internal/logging"
)

// unknownName replaces an empty owner or method name so the line is still written
const unknownName = "unknown"

// CallContext describes one intercepted invocation. It is built per call and owned by
// the interceptor that built it.
type CallContext struct {
	OwnerType string
	Method    string
	Args      []any
	Result    any
	HasResult bool
}

// NewRequestContext builds the context logged before a call runs
func NewRequestContext(owner, method string, args []any) CallContext {
	return CallContext{
		OwnerType: orUnknown(owner),
		Method:    orUnknown(method),
		Args:      copyArgs(args),
	}
}

// NewResponseContext builds the context logged after a call returned result
func NewResponseContext(owner, method string, args []any, result any) CallContext {
	call := NewRequestContext(owner, method, args)
	call.Result = result
	call.HasResult = true
	return call
}

// templateFields returns the positional values for RequestTemplate or ResponseTemplate
func (c CallContext) templateFields() []any {
	fields := []any{c.OwnerType, c.Method, FormatArgs(c.Args)}
	if c.HasResult {
		fields = append(fields, c.Result)
	}
	return fields
}

func (c CallContext) logFields() []logging.Field {
	fields := []logging.Field{
		logging.OwnerField(c.OwnerType),
		logging.MethodField(c.Method),
		logging.ArgsField(c.Args),
	}
	if c.HasResult {
		fields = append(fields, logging.ResultField(c.Result))
	}
	return fields
}

func orUnknown(name string) string {
	if name == "" {
		return unknownName
	}
	return name
}

func copyArgs(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)
	return out
}
