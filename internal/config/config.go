package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all CLI configuration.
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Log         LogConfig         `mapstructure:"log"`
}

// APIConfig holds the backend connection settings.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// CredentialsConfig selects where the bearer token is persisted.
type CredentialsConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "keyring"
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Format string `mapstructure:"format"` // "json" or "text"
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("credentials.backend", "file")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "warn")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "clubctl"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, using defaults
	}

	// Environment variables override, e.g. CLUBCTL_API_BASE_URL
	v.SetEnvPrefix("CLUBCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
