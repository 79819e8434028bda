// Package config provides configuration management for the catalog server.
// Configuration can be loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rrivasl/catalog/internal/validation"
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Validation ValidationConfig `mapstructure:"validation"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Seed       SeedConfig       `mapstructure:"seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address in host:port format.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled determines if the metrics endpoint is served.
	Enabled bool `mapstructure:"enabled"`

	// Path is the URL path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// ValidationConfig holds the tunable validation settings.
type ValidationConfig struct {
	// PhonePattern is the regional phone number pattern. Defaults to an
	// 8-9 digit local number with an optional +56 country prefix.
	PhonePattern string `mapstructure:"phone_pattern"`
}

// PaginationConfig holds product listing pagination bounds.
type PaginationConfig struct {
	// DefaultPageSize is used when the caller does not specify a size.
	DefaultPageSize int `mapstructure:"default_page_size"`

	// MaxPageSize caps the caller-supplied page size.
	MaxPageSize int `mapstructure:"max_page_size"`
}

// SeedConfig controls fixture seeding at startup.
type SeedConfig struct {
	// Enabled determines whether fixture users and products are created.
	Enabled bool `mapstructure:"enabled"`

	// Products is the number of sample products to generate.
	Products int `mapstructure:"products"`
}

// Load reads configuration from the specified file and environment
// variables. Environment variables take precedence over file values and
// are prefixed with CATALOG_ using _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/catalog")
	}

	// Config file not found is acceptable; defaults and env vars apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Validation defaults
	v.SetDefault("validation.phone_pattern", validation.DefaultPhonePattern)

	// Pagination defaults
	v.SetDefault("pagination.default_page_size", 10)
	v.SetDefault("pagination.max_page_size", 100)

	// Seed defaults
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.products", 0)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging format must be console or json, got %q", c.Logging.Format)
	}

	if _, err := regexp.Compile(c.Validation.PhonePattern); err != nil {
		return fmt.Errorf("validation phone pattern: %w", err)
	}

	if c.Pagination.DefaultPageSize < 1 {
		return fmt.Errorf("pagination default page size must be positive, got %d", c.Pagination.DefaultPageSize)
	}
	if c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		return fmt.Errorf("pagination max page size must be >= default page size")
	}

	if c.Seed.Products < 0 {
		return fmt.Errorf("seed products must not be negative, got %d", c.Seed.Products)
	}

	return nil
}
