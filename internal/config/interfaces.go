package config

// Config represents the server configuration
type Config struct {
	Server struct {
		Port      int `yaml:"port"`
		RateLimit int `yaml:"rate_limit"`
		RateBurst int `yaml:"rate_burst"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		Format     string `yaml:"format"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Kafka      struct {
			Brokers []string `yaml:"brokers"`
			Topic   string   `yaml:"topic"`
		} `yaml:"kafka"`
	} `yaml:"logging"`

	AnnotationLogger AnnotationLoggerConfig `yaml:"annotation_logger"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// AnnotationLoggerConfig holds the raw call logging settings. The level is resolved
// leniently at startup, so it is kept as the raw string here.
type AnnotationLoggerConfig struct {
	// Enabled is nil when unset, which means enabled
	Enabled            *bool  `yaml:"enabled"`
	AnnotationLogLevel string `yaml:"annotation_log_level"`
}

// IsEnabled reports whether the call logging interceptors should be installed
func (a AnnotationLoggerConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	Load(filename string) (*Config, error)
	Validate(config *Config) error
}
