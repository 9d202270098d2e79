package annotation

// Severity selects the log channel an intercepted call is written to
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// DefaultSeverity is used when the configured value is missing or unknown
const DefaultSeverity = SeverityInfo

var severityNames = map[Severity]string{
	SeverityDebug: "DEBUG",
	SeverityInfo:  "INFO",
	SeverityWarn:  "WARN",
	SeverityError: "ERROR",
}

// String returns the upper-case name of the severity
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// AllSeverities returns every severity in declaration order
func AllSeverities() []Severity {
	return []Severity{SeverityDebug, SeverityInfo, SeverityWarn, SeverityError}
}
