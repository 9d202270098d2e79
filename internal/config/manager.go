package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envAnnotationEnabled = "ANNOTATION_LOGGER_ENABLED"
	envAnnotationLevel   = "ANNOTATION_LOGGER_ANNOTATION_LOG_LEVEL"
)

// Manager implements the ConfigManager interface
type Manager struct {
	lookupEnv func(string) (string, bool)
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{lookupEnv: os.LookupEnv}
}

// Load reads and parses the configuration file
func (m *Manager) Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	config := GetDefaultConfig()
	// the annotation logger section must reflect only what the file says
	config.AnnotationLogger = AnnotationLoggerConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := m.applyEnv(config); err != nil {
		return nil, err
	}

	if err := m.Validate(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// applyEnv overrides the annotation logger settings from the environment
func (m *Manager) applyEnv(config *Config) error {
	if v, ok := m.lookupEnv(envAnnotationEnabled); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %q", envAnnotationEnabled, v)
		}
		config.AnnotationLogger.Enabled = &enabled
	}
	if v, ok := m.lookupEnv(envAnnotationLevel); ok {
		config.AnnotationLogger.AnnotationLogLevel = v
	}
	return nil
}

// Validate checks if the configuration values are valid. The annotation log level is
// not checked here; an unknown value falls back to the default when it is resolved.
func (m *Manager) Validate(config *Config) error {
	// 0 is allowed for testing - means "use any available port"
	if config.Server.Port < 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 0-65535)", config.Server.Port)
	}
	if config.Server.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %d (must be >= 0)", config.Server.RateLimit)
	}
	if config.Server.RateLimit > 0 && config.Server.RateBurst <= 0 {
		return fmt.Errorf("invalid rate burst: %d (must be > 0 when rate limiting)", config.Server.RateBurst)
	}

	if strings.TrimSpace(config.Database.Path) == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	logLevel := strings.ToLower(config.Logging.Level)
	if !validLogLevels[logLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	switch strings.ToLower(config.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be console or json)", config.Logging.Format)
	}

	if len(config.Logging.Kafka.Brokers) > 0 && strings.TrimSpace(config.Logging.Kafka.Topic) == "" {
		return fmt.Errorf("kafka topic cannot be empty when brokers are set")
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %q (must start with /)", config.Metrics.Path)
	}

	return nil
}

// GetDefaultConfig returns a configuration with default values
func GetDefaultConfig() *Config {
	config := &Config{}

	config.Server.Port = 8080
	config.Server.RateLimit = 50
	config.Server.RateBurst = 100

	config.Database.Path = "./tasks.db"

	config.Logging.Level = "info"
	config.Logging.Format = "console"
	config.Logging.MaxSizeMB = 100
	config.Logging.MaxBackups = 5
	config.Logging.MaxAgeDays = 30
	config.Logging.Kafka.Topic = "task-logs"

	enabled := true
	config.AnnotationLogger.Enabled = &enabled
	config.AnnotationLogger.AnnotationLogLevel = "INFO"

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	return config
}
