package annotation

import (
	"fmt"
	"strings"

	"github.com/zurustar/tasklogger/internal/logging"
)

// LevelKey is the configuration key the severity is read from
const LevelKey = "annotation_logger.annotation_log_level"

// ResolveSeverity turns the raw configuration value into a Severity. A missing or
// unknown value never fails: it is replaced by defaultLevel and a single warning is
// written to logger. Matching is case-insensitive.
func ResolveSeverity(raw string, defaultLevel Severity, allowed []Severity, logger logging.Logger) Severity {
	value := strings.TrimSpace(raw)
	if value == "" {
		logger.Warn(fmt.Sprintf("No value provided for %s, using default %s", LevelKey, defaultLevel),
			logging.StringField("default", defaultLevel.String()))
		return defaultLevel
	}

	folded := strings.ToUpper(value)
	for _, s := range allowed {
		if s.String() == folded {
			return s
		}
	}

	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = s.String()
	}
	logger.Warn(fmt.Sprintf("Unknown %s %q, allowed values: [%s], using default %s",
		LevelKey, raw, strings.Join(names, ", "), defaultLevel),
		logging.StringField("value", raw),
		logging.AnyField("allowed", names),
		logging.StringField("default", defaultLevel.String()))
	return defaultLevel
}
