package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoader_DefaultsWithoutConfigFile(t *testing.T) {
	resetViper(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
	assert.Equal(t, def.Server.Port, cfg.Server.Port)
	assert.Equal(t, def.Pipeline.MediumConfidence, cfg.Pipeline.MediumConfidence)
	assert.Equal(t, def.Pipeline.Cloud.Endpoint, cfg.Pipeline.Cloud.Endpoint)
	assert.Equal(t, def.Output.Format, cfg.Output.Format)
}

func TestLoader_ExplicitConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "receiptscan.yaml")
	content := `log_level: debug
server:
  port: 9090
pipeline:
  medium_confidence: 0.7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	l := NewLoader()
	l.SetConfigFile(path)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.7, cfg.Pipeline.MediumConfidence, 1e-9)
	// Untouched keys fall back to defaults.
	assert.Equal(t, DefaultConfig().Server.MaxUploadMB, cfg.Server.MaxUploadMB)
}

func TestLoader_EnvOverridesAPIKey(t *testing.T) {
	resetViper(t)
	t.Setenv("FUNDORA_CLOUD_API_KEY", "env-secret")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Pipeline.Cloud.APIKey)
}

func TestLoader_InvalidConfigRejected(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "receiptscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: shout\n"), 0o600))

	l := NewLoader()
	l.SetConfigFile(path)
	_, err := l.Load()
	assert.ErrorContains(t, err, "validation failed")
}
