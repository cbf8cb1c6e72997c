// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/resume-wizard/internal/logging"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_WIZARD_PORT.
const EnvPrefix = "RESUME_WIZARD"

// Store backends
const (
	StoreMemory   = "memory"
	StoreHTTP     = "http"
	StorePostgres = "postgres"
)

// Defaults
const (
	DefaultPort       = 8080
	DefaultStore      = StoreMemory
	DefaultAPITimeout = 30 * time.Second
	DefaultLogLevel   = "info"
	DefaultLogFormat  = logging.FormatJSON
	DefaultResumeName = "Resume"
)

// Config represents the wizard configuration. Values come from an optional
// config file (yaml, json or toml) and RESUME_WIZARD_* environment variables,
// the environment taking precedence.
type Config struct {
	Port  int    `mapstructure:"port" json:"port,omitempty"`
	Store string `mapstructure:"store" json:"store,omitempty"` // memory, http or postgres

	DatabaseURL    string        `mapstructure:"database_url" json:"database_url,omitempty"`       // PostgreSQL connection URL
	ResumeAPIURL   string        `mapstructure:"resume_api_url" json:"resume_api_url,omitempty"`   // Base URL of the resume backend
	ResumeAPIToken string        `mapstructure:"resume_api_token" json:"resume_api_token,omitempty"` // Bearer token for the resume backend
	APITimeout     time.Duration `mapstructure:"api_timeout" json:"api_timeout,omitempty"`

	LogLevel  string `mapstructure:"log_level" json:"log_level,omitempty"`
	LogFormat string `mapstructure:"log_format" json:"log_format,omitempty"`

	DefaultResumeName string   `mapstructure:"default_resume_name" json:"default_resume_name,omitempty"`
	AllowedOrigins    []string `mapstructure:"allowed_origins" json:"allowed_origins,omitempty"`
}

// Default returns a Config populated with every default value.
func Default() Config {
	return Config{
		Port:              DefaultPort,
		Store:             DefaultStore,
		APITimeout:        DefaultAPITimeout,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
		DefaultResumeName: DefaultResumeName,
	}
}

// LoadConfig loads configuration from path, or searches for a
// resume_wizard.{yaml,json,toml} in the working directory and ./configs when
// path is empty. A missing searched file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("resume_wizard")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("port", d.Port)
	v.SetDefault("store", d.Store)
	v.SetDefault("database_url", "")
	v.SetDefault("resume_api_url", "")
	v.SetDefault("resume_api_token", "")
	v.SetDefault("api_timeout", d.APITimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("default_resume_name", d.DefaultResumeName)
	v.SetDefault("allowed_origins", []string{})
}

func (c *Config) applyDefaults() {
	*c = c.MergeWithDefaults(Default())
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.APITimeout < 0 {
		return fmt.Errorf("config error: 'api_timeout' must be non-negative")
	}

	switch c.Store {
	case "", StoreMemory:
	case StoreHTTP:
		if c.ResumeAPIURL == "" {
			return fmt.Errorf("config error: 'resume_api_url' is required for the http store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	default:
		return fmt.Errorf("config error: unknown store %q (want memory, http or postgres)", c.Store)
	}

	switch c.LogFormat {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("config error: unknown log_format %q", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ResumeAPIURL == "" {
		result.ResumeAPIURL = defaults.ResumeAPIURL
	}
	if result.ResumeAPIToken == "" {
		result.ResumeAPIToken = defaults.ResumeAPIToken
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.DefaultResumeName == "" {
		result.DefaultResumeName = defaults.DefaultResumeName
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.APITimeout == 0 {
		result.APITimeout = defaults.APITimeout
	}

	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	return result
}
