// Package config centralizes configuration for the receipt scanning
// application: pipeline parameters, cloud credentials, server settings, and
// output preferences, loadable from files, environment variables, and flags.
package config

import (
	"errors"
	"fmt"

	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
)

// Config represents the complete configuration for the receiptscan
// application.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Pipeline pipeline.Config `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string `mapstructure:"host" yaml:"host" json:"host"`
	Port        int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin  string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec  int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// OutputConfig contains CLI output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Pipeline: pipeline.DefaultConfig(),
		Server: ServerConfig{
			Host:        "localhost",
			Port:        8080,
			CORSOrigin:  "*",
			MaxUploadMB: 50,
			TimeoutSec:  120,
		},
		Output: OutputConfig{Format: "json"},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server port must be in (0, 65535]")
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("server max_upload_mb must be positive")
	}
	if c.Server.TimeoutSec <= 0 {
		return errors.New("server timeout_sec must be positive")
	}

	switch c.Output.Format {
	case "json", "yaml", "text":
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}
