package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "config.yml"

// DefaultConfig returns a configuration with every field set to its default.
// The defaults match a stock Debian/Ubuntu OpenJDK layout.
func DefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Level: "INFO",
		},
		Batch: Batch{
			Workers:        2,
			ResultsDir:     "infer-results",
			MavenOpts:      "-Xmx4g",
			CleanupRetries: Retry{MaxAttempts: 3, Delay: 2 * time.Second},
			ReportRetries:  Retry{MaxAttempts: 3, Delay: 1 * time.Second},
		},
		Jdk: Jdk{
			DefaultVersion: "21",
			HomePattern:    "/usr/lib/jvm/java-%s-openjdk-amd64",
		},
	}
}

// ValidateConfigPath checks that the given path points at a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file and fills unset fields with
// defaults. A missing default config file is not an error; the defaults are
// used as-is. An explicitly given path must exist.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file %q does not exist", configPath)
		}
		return cfg, nil
	}

	if err := LoadYAML(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills zero-valued fields after decoding a partial file.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = def.Logger.Level
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = def.Batch.Workers
	}
	if cfg.Batch.ResultsDir == "" {
		cfg.Batch.ResultsDir = def.Batch.ResultsDir
	}
	if cfg.Batch.MavenOpts == "" {
		cfg.Batch.MavenOpts = def.Batch.MavenOpts
	}
	if cfg.Batch.CleanupRetries.MaxAttempts == 0 {
		cfg.Batch.CleanupRetries = def.Batch.CleanupRetries
	}
	if cfg.Batch.ReportRetries.MaxAttempts == 0 {
		cfg.Batch.ReportRetries = def.Batch.ReportRetries
	}
	if cfg.Jdk.DefaultVersion == "" {
		cfg.Jdk.DefaultVersion = def.Jdk.DefaultVersion
	}
	if cfg.Jdk.HomePattern == "" {
		cfg.Jdk.HomePattern = def.Jdk.HomePattern
	}
}
