package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "receiptscan"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "FUNDORA"
)

// Loader handles loading configuration from files, environment variables,
// and bound flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader on the global viper instance so flag bindings
// made by the CLI take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load reads configuration from the first config file found on the search
// path, layered with environment variables and defaults, then validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// SetConfigFile points the loader at an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	if path != "" {
		l.v.SetConfigFile(path)
	}
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "receiptscan"))
	}
	l.v.AddConfigPath("/etc/receiptscan")
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	// FUNDORA_CLOUD_API_KEY is the expected way to supply the bearer token.
	_ = l.v.BindEnv("pipeline.cloud.api_key", EnvPrefix+"_CLOUD_API_KEY")
	_ = l.v.BindEnv("pipeline.cloud.endpoint", EnvPrefix+"_CLOUD_ENDPOINT")
}

func (l *Loader) setDefaults() {
	def := DefaultConfig()
	l.v.SetDefault("log_level", def.LogLevel)
	l.v.SetDefault("verbose", def.Verbose)

	l.v.SetDefault("pipeline.medium_confidence", def.Pipeline.MediumConfidence)
	l.v.SetDefault("pipeline.cloud_enabled", def.Pipeline.CloudEnabled)
	l.v.SetDefault("pipeline.cloud.endpoint", def.Pipeline.Cloud.Endpoint)
	l.v.SetDefault("pipeline.preprocess.analysis_width", def.Pipeline.Preprocess.AnalysisWidth)
	l.v.SetDefault("pipeline.preprocess.min_region_px", def.Pipeline.Preprocess.MinRegionPx)
	l.v.SetDefault("pipeline.preprocess.margin_frac", def.Pipeline.Preprocess.MarginFrac)
	l.v.SetDefault("pipeline.preprocess.expand_px", def.Pipeline.Preprocess.ExpandPx)
	l.v.SetDefault("pipeline.preprocess.jpeg_quality", def.Pipeline.Preprocess.JPEGQuality)

	l.v.SetDefault("server.host", def.Server.Host)
	l.v.SetDefault("server.port", def.Server.Port)
	l.v.SetDefault("server.cors_origin", def.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", def.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", def.Server.TimeoutSec)

	l.v.SetDefault("output.format", def.Output.Format)
}
