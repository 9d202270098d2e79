package annotation

// LoggingConfig holds the severity resolved at startup. It has no setters and is
// shared by pointer between all interceptors, so reads need no locking.
type LoggingConfig struct {
	severity Severity
}

// NewLoggingConfig freezes the resolved severity
func NewLoggingConfig(severity Severity) *LoggingConfig {
	if _, ok := severityNames[severity]; !ok {
		severity = DefaultSeverity
	}
	return &LoggingConfig{severity: severity}
}

// CurrentSeverity returns the severity intercepted calls are logged at
func (c *LoggingConfig) CurrentSeverity() Severity {
	return c.severity
}
