package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "infer-results", cfg.Batch.ResultsDir)
	assert.Equal(t, "-Xmx4g", cfg.Batch.MavenOpts)
	assert.Equal(t, Retry{MaxAttempts: 3, Delay: 2 * time.Second}, cfg.Batch.CleanupRetries)
	assert.Equal(t, Retry{MaxAttempts: 3, Delay: 1 * time.Second}, cfg.Batch.ReportRetries)
	assert.Equal(t, "21", cfg.Jdk.DefaultVersion)
	assert.Equal(t, "/usr/lib/jvm/java-%s-openjdk-amd64", cfg.Jdk.HomePattern)

	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigMissingDefaultFileUsesDefaults(t *testing.T) {
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(oldWd)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigExplicitMissingPathFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
batch:
  workers: 8
jdk:
  default_version: "17"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "17", cfg.Jdk.DefaultVersion)
	// Everything the file left out retains its default.
	assert.Equal(t, "infer-results", cfg.Batch.ResultsDir)
	assert.Equal(t, "-Xmx4g", cfg.Batch.MavenOpts)
	assert.Equal(t, 3, cfg.Batch.CleanupRetries.MaxAttempts)
	assert.Equal(t, "/usr/lib/jvm/java-%s-openjdk-amd64", cfg.Jdk.HomePattern)
}

func TestLoadConfigFullFile(t *testing.T) {
	path := writeConfigFile(t, `
logger:
  level: "DEBUG"
  json_format: true
batch:
  workers: 4
  results_dir: "out"
  maven_opts: "-Xmx8g"
  cleanup_retries:
    max_attempts: 5
    delay: 500ms
  report_retries:
    max_attempts: 2
    delay: 3s
jdk:
  default_version: "11"
  home_pattern: "/opt/jdk/%s"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logger.Level)
	assert.True(t, cfg.Logger.JSONFormat)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "out", cfg.Batch.ResultsDir)
	assert.Equal(t, "-Xmx8g", cfg.Batch.MavenOpts)
	assert.Equal(t, Retry{MaxAttempts: 5, Delay: 500 * time.Millisecond}, cfg.Batch.CleanupRetries)
	assert.Equal(t, Retry{MaxAttempts: 2, Delay: 3 * time.Second}, cfg.Batch.ReportRetries)
	assert.Equal(t, "11", cfg.Jdk.DefaultVersion)
	assert.Equal(t, "/opt/jdk/%s", cfg.Jdk.HomePattern)

	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "batch: [not a mapping")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	mutate := func(f func(cfg *Config)) *Config {
		cfg := DefaultConfig()
		f(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "nil config",
			cfg:  nil, wantErr: "configuration object is nil",
		},
		{
			name:    "zero workers",
			cfg:     mutate(func(cfg *Config) { cfg.Batch.Workers = 0 }),
			wantErr: "workers must be between 1 and 64",
		},
		{
			name:    "too many workers",
			cfg:     mutate(func(cfg *Config) { cfg.Batch.Workers = 100 }),
			wantErr: "workers must be between 1 and 64",
		},
		{
			name:    "unbounded retries",
			cfg:     mutate(func(cfg *Config) { cfg.Batch.CleanupRetries.MaxAttempts = 50 }),
			wantErr: "max_attempts must be between 1 and 10",
		},
		{
			name:    "negative delay",
			cfg:     mutate(func(cfg *Config) { cfg.Batch.ReportRetries.Delay = -time.Second }),
			wantErr: "cannot be negative",
		},
		{
			name:    "excessive delay",
			cfg:     mutate(func(cfg *Config) { cfg.Batch.ReportRetries.Delay = 2 * time.Minute }),
			wantErr: "delay is too long",
		},
		{
			name:    "empty default version",
			cfg:     mutate(func(cfg *Config) { cfg.Jdk.DefaultVersion = "" }),
			wantErr: "default_version must not be empty",
		},
		{
			name:    "home pattern without placeholder",
			cfg:     mutate(func(cfg *Config) { cfg.Jdk.HomePattern = "/usr/lib/jvm/java-21" }),
			wantErr: "must contain a %s version placeholder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, ValidateConfigPath(dir), "a directory is not a config file")

	path := writeConfigFile(t, "logger:\n  level: INFO\n")
	assert.NoError(t, ValidateConfigPath(path))
}
