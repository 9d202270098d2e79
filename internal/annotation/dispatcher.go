package annotation

import (
	"fmt"
	"strings"

	"github.com/zurustar/tasklogger/internal/logging"
	"github.com/zurustar/tasklogger/internal/metrics"
)

const placeholder = "{}"

// Dispatcher writes a formatted message to the log channel matching a severity
type Dispatcher struct {
	logger logging.Logger
}

// NewDispatcher creates a dispatcher writing to logger
func NewDispatcher(logger logging.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Dispatch substitutes fields into the {} placeholders of template and writes one line
func (d *Dispatcher) Dispatch(level Severity, template string, fields ...any) {
	d.emit(level, FormatTemplate(template, fields...))
}

// DispatchCall writes one line for call, attaching its owner, method, args and result
// as structured fields next to the formatted message.
func (d *Dispatcher) DispatchCall(level Severity, template string, call CallContext) {
	d.emit(level, FormatTemplate(template, call.templateFields()...), call.logFields()...)
}

func (d *Dispatcher) emit(level Severity, msg string, fields ...logging.Field) {
	// level is validated by ResolveSeverity before any dispatcher is built
	switch level {
	case SeverityDebug:
		d.logger.Debug(msg, fields...)
	case SeverityInfo:
		d.logger.Info(msg, fields...)
	case SeverityWarn:
		d.logger.Warn(msg, fields...)
	case SeverityError:
		d.logger.Error(msg, fields...)
	}
	metrics.DispatchedLines.WithLabelValues(level.String()).Inc()
}

// FormatTemplate replaces each {} in template with the next field. Surplus fields are
// ignored and unmatched placeholders are left as they are.
func FormatTemplate(template string, fields ...any) string {
	var b strings.Builder
	rest := template
	for _, f := range fields {
		i := strings.Index(rest, placeholder)
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(formatValue(f))
		rest = rest[i+len(placeholder):]
	}
	b.WriteString(rest)
	return b.String()
}

// FormatArgs renders an argument list as [a, b, c]
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatValue(a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	default:
		return fmt.Sprintf("%+v", val)
	}
}
