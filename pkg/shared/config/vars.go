package config

import (
	"fmt"
	"time"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Logger Logger `yaml:"logger"`
	Batch  Batch  `yaml:"batch"`
	Jdk    Jdk    `yaml:"jdk"`
}

// Logger holds logging settings.
type Logger struct {
	Level           string `yaml:"level"`
	JSONFormat      bool   `yaml:"json_format"`
	IncludeLocation bool   `yaml:"include_location"`
}

// Batch holds settings for batch analysis runs.
type Batch struct {
	Workers        int    `yaml:"workers"`         // Size of the per-group worker pool
	ResultsDir     string `yaml:"results_dir"`     // Directory for persisted batch summaries
	MavenOpts      string `yaml:"maven_opts"`      // MAVEN_OPTS value passed to build invocations
	CleanupRetries Retry  `yaml:"cleanup_retries"` // Retry policy for stale artifact cleanup
	ReportRetries  Retry  `yaml:"report_retries"`  // Retry policy for report regeneration
}

// Jdk holds settings for JDK selection per project group.
type Jdk struct {
	DefaultVersion string `yaml:"default_version"` // Version used when a descriptor declares none
	HomePattern    string `yaml:"home_pattern"`    // Printf pattern resolving a version to a JAVA_HOME path
}

// Retry is a bounded retry policy with a fixed delay between attempts.
type Retry struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Delay       time.Duration `yaml:"delay"`
}

// UnmarshalYAML accepts the delay in Go duration syntax, e.g. "500ms" or "2s".
func (r *Retry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		MaxAttempts int    `yaml:"max_attempts"`
		Delay       string `yaml:"delay"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	r.MaxAttempts = raw.MaxAttempts
	r.Delay = 0
	if raw.Delay != "" {
		d, err := time.ParseDuration(raw.Delay)
		if err != nil {
			return fmt.Errorf("invalid retry delay %q: %w", raw.Delay, err)
		}
		r.Delay = d
	}
	return nil
}
