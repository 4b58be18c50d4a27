// Package config provides configuration management for the golocator
// application. It handles loading, validation, and access to configuration
// values from YAML files and environment variables via Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/golocator/internal/logger"
)

// Server defaults
const (
	defaultServerAddress      = ":8080"
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second
)

// Locator defaults
const (
	defaultMaxAncestorDepth = 10
	defaultTimeoutMs        = 20000
)

// Interface defines the interface for configuration management.
type Interface interface {
	// GetServerConfig returns the HTTP server configuration.
	GetServerConfig() *ServerConfig
	// GetLocatorConfig returns the locator generation configuration.
	GetLocatorConfig() *LocatorConfig
	// GetLoggerConfig returns the logger configuration.
	GetLoggerConfig() *logger.Config
	// Validate validates the configuration.
	Validate() error
}

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the application configuration.
type Config struct {
	// Server holds HTTP server configuration
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	// Locator holds locator generation configuration
	Locator LocatorConfig `yaml:"locator" mapstructure:"locator"`
	// Logger holds logger configuration
	Logger LoggerConfig `yaml:"logger" mapstructure:"logger"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Address      string        `yaml:"address" mapstructure:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// LocatorConfig holds locator generation configuration.
type LocatorConfig struct {
	// MaxAncestorDepth bounds ancestor walks during generation.
	MaxAncestorDepth int `yaml:"max_ancestor_depth" mapstructure:"max_ancestor_depth"`
	// TimeoutMs bounds one generation call, in milliseconds.
	TimeoutMs int `yaml:"timeout_ms" mapstructure:"timeout_ms"`
	// RulesFile optionally points at a YAML stability rule table that
	// replaces the built-in one.
	RulesFile string `yaml:"rules_file" mapstructure:"rules_file"`
}

// Timeout returns the generation timeout as a duration.
func (c *LocatorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
	Encoding    string `yaml:"encoding" mapstructure:"encoding"`
}

// GetServerConfig returns the HTTP server configuration.
func (c *Config) GetServerConfig() *ServerConfig {
	return &c.Server
}

// GetLocatorConfig returns the locator generation configuration.
func (c *Config) GetLocatorConfig() *LocatorConfig {
	return &c.Locator
}

// GetLoggerConfig returns the logger configuration.
func (c *Config) GetLoggerConfig() *logger.Config {
	return &logger.Config{
		Level:       logger.Level(c.Logger.Level),
		Development: c.Logger.Development,
		Encoding:    c.Logger.Encoding,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server: address is required")
	}
	if c.Locator.MaxAncestorDepth <= 0 {
		return fmt.Errorf("locator: max_ancestor_depth must be positive, got %d",
			c.Locator.MaxAncestorDepth)
	}
	if c.Locator.TimeoutMs <= 0 {
		return fmt.Errorf("locator: timeout_ms must be positive, got %d",
			c.Locator.TimeoutMs)
	}
	return nil
}
