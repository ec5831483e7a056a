package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"replymate/internal/pkg/configutil"
	"replymate/internal/pkg/constants"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Backend BackendConfig `mapstructure:"backend"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Host        string `mapstructure:"host"`
	CORSEnabled bool   `mapstructure:"cors_enabled"`
}

// StorageConfig holds local durable storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// BackendConfig holds generation-service configuration
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8090,
			Host:        "127.0.0.1",
			CORSEnabled: true,
		},
		Storage: StorageConfig{
			Path: constants.DefaultDBPath,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:3000",
			Timeout: constants.BackendTimeout,
		},
		Logging: LoggingConfig{
			Level:  constants.LogLevelInfo,
			Format: constants.LogFormatText,
		},
	}
}

// Load loads configuration from files and environment variables
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deployments/config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Environment variable support
	v.SetEnvPrefix("REPLYMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a registered default, otherwise AutomaticEnv ignores
	// env vars for keys that never appear in a config file.
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.cors_enabled", cfg.Server.CORSEnabled)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("backend.base_url", cfg.Backend.BaseURL)
	v.SetDefault("backend.timeout", cfg.Backend.Timeout)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, we'll use defaults + env vars
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return configutil.NewValidator().
		RequiredString("server.host", c.Server.Host).
		IntRange("server.port", c.Server.Port, 1, 65535).
		ValidateFilePath("storage.path", c.Storage.Path).
		RequiredString("backend.base_url", c.Backend.BaseURL).
		ValidateURL("backend.base_url", c.Backend.BaseURL).
		RequiredDuration("backend.timeout", c.Backend.Timeout).
		OneOf("logging.level", c.Logging.Level, []string{
			constants.LogLevelDebug,
			constants.LogLevelInfo,
			constants.LogLevelWarn,
			constants.LogLevelError,
		}).
		OneOf("logging.format", c.Logging.Format, []string{
			constants.LogFormatText,
			constants.LogFormatJSON,
		}).
		Result()
}
