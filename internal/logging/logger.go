package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the logging level
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// StructuredLogger implements the Logger interface on top of zap
type StructuredLogger struct {
	level   zap.AtomicLevel
	logger  *zap.Logger
	closers []io.Closer
}

// NewStructuredLogger creates a logger writing console encoded lines to writer
func NewStructuredLogger(level LogLevel, writer io.Writer) *StructuredLogger {
	atomic := zap.NewAtomicLevelAt(level.zapLevel())
	core := zapcore.NewCore(newEncoder("console", false), zapcore.AddSync(writer), atomic)
	return newStructuredLogger(atomic, core)
}

// NewCoreLogger creates a logger on top of an existing zap core. Tests use it with
// zaptest/observer.
func NewCoreLogger(level LogLevel, core zapcore.Core) *StructuredLogger {
	return newStructuredLogger(zap.NewAtomicLevelAt(level.zapLevel()), core)
}

func newStructuredLogger(level zap.AtomicLevel, core zapcore.Core, closers ...io.Closer) *StructuredLogger {
	return &StructuredLogger{
		level:   level,
		logger:  zap.New(core),
		closers: closers,
	}
}

// NewFileLogger creates a logger that writes to a size rotated file
func NewFileLogger(level LogLevel, filename string, maxSizeMB, maxBackups, maxAgeDays int) (*StructuredLogger, error) {
	rotator, err := openRotator(filename, maxSizeMB, maxBackups, maxAgeDays)
	if err != nil {
		return nil, err
	}
	atomic := zap.NewAtomicLevelAt(level.zapLevel())
	core := zapcore.NewCore(newEncoder("json", false), zapcore.AddSync(rotator), atomic)
	return newStructuredLogger(atomic, core, rotator), nil
}

// NewConsoleLogger creates a logger that writes to stdout
func NewConsoleLogger(level LogLevel) *StructuredLogger {
	atomic := zap.NewAtomicLevelAt(level.zapLevel())
	core := zapcore.NewCore(newEncoder("console", isatty.IsTerminal(os.Stdout.Fd())), zapcore.Lock(os.Stdout), atomic)
	return newStructuredLogger(atomic, core)
}

// Debug logs a debug message with optional fields
func (l *StructuredLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message with optional fields
func (l *StructuredLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message with optional fields
func (l *StructuredLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message with optional fields
func (l *StructuredLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, toZapFields(fields)...)
}

// SetLevel changes the logging level
func (l *StructuredLogger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// GetLevel returns the current logging level
func (l *StructuredLogger) GetLevel() LogLevel {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.WarnLevel:
		return WarnLevel
	case zapcore.ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Close flushes buffered entries and closes file and Kafka outputs
func (l *StructuredLogger) Close() error {
	_ = l.logger.Sync()
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func toZapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zf := make([]zap.Field, len(fields))
	for i, f := range fields {
		zf[i] = zap.Any(f.Key, f.Value)
	}
	return zf
}

func newEncoder(format string, color bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if strings.ToLower(format) == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func openRotator(filename string, maxSizeMB, maxBackups, maxAgeDays int) (*lumberjack.Logger, error) {
	// lumberjack opens lazily, so probe the path now to fail at startup
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filename, err)
	}
	file.Close()

	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}, nil
}

// newKafkaWriter is replaced in tests to capture the teed lines
var newKafkaWriter = NewKafkaWriter

// NewLoggerFromConfig creates a logger based on configuration
func NewLoggerFromConfig(config LoggerConfig) (*StructuredLogger, error) {
	level, err := ParseLogLevel(config.Level)
	if err != nil {
		return nil, err
	}

	atomic := zap.NewAtomicLevelAt(level.zapLevel())
	var cores []zapcore.Core
	var closers []io.Closer

	if config.File == "" || config.File == "stdout" {
		color := config.Format != "json" && isatty.IsTerminal(os.Stdout.Fd())
		cores = append(cores, zapcore.NewCore(newEncoder(config.Format, color), zapcore.Lock(os.Stdout), atomic))
	} else {
		rotator, err := openRotator(config.File, config.MaxSizeMB, config.MaxBackups, config.MaxAgeDays)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(newEncoder(config.Format, false), zapcore.AddSync(rotator), atomic))
		closers = append(closers, rotator)

		// Also log to console for important messages (warn and error)
		console := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.WarnLevel && atomic.Enabled(l)
		})
		cores = append(cores, zapcore.NewCore(newEncoder("console", false), zapcore.Lock(os.Stdout), console))
	}

	if len(config.KafkaBrokers) > 0 {
		kw := newKafkaWriter(config.KafkaBrokers, config.KafkaTopic)
		cores = append(cores, zapcore.NewCore(newEncoder("json", false), kw, atomic))
		closers = append(closers, kw)
	}

	return newStructuredLogger(atomic, zapcore.NewTee(cores...), closers...), nil
}
