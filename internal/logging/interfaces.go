package logging

// Field represents a structured logging field
type Field struct {
	Key   string
	Value interface{}
}

// Logger defines the interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// LoggerConfig represents logger configuration
type LoggerConfig struct {
	Level  string
	File   string
	Format string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	KafkaBrokers []string
	KafkaTopic   string
}
