package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidateConfig checks if the global configuration has valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateBatchConfig(&cfg.Batch); err != nil {
		return fmt.Errorf("YAML global config: batch directive is invalid: %w", err)
	}
	if err := validateJdkConfig(&cfg.Jdk); err != nil {
		return fmt.Errorf("YAML global config: jdk directive is invalid: %w", err)
	}
	return nil
}

// validateBatchConfig checks if the batch configuration has valid values.
func validateBatchConfig(batch *Batch) error {
	if batch == nil {
		return fmt.Errorf("batch configuration is nil")
	}
	if batch.Workers < 1 || batch.Workers > 64 {
		return fmt.Errorf("workers must be between 1 and 64: %d", batch.Workers)
	}

	retries := map[string]Retry{
		"cleanup_retries": batch.CleanupRetries,
		"report_retries":  batch.ReportRetries,
	}
	for name, retry := range retries {
		if err := validateRetry(retry, name); err != nil {
			return err
		}
	}
	return nil
}

// validateJdkConfig checks if the JDK configuration has valid values.
func validateJdkConfig(jdk *Jdk) error {
	if jdk == nil {
		return fmt.Errorf("jdk configuration is nil")
	}
	if jdk.DefaultVersion == "" {
		return fmt.Errorf("default_version must not be empty")
	}
	if !strings.Contains(jdk.HomePattern, "%s") {
		return fmt.Errorf("home_pattern %q must contain a %%s version placeholder", jdk.HomePattern)
	}
	return nil
}

// validateRetry checks that a retry policy is bounded and non-negative.
func validateRetry(r Retry, name string) error {
	if r.MaxAttempts < 1 || r.MaxAttempts > 10 {
		return fmt.Errorf("%s max_attempts must be between 1 and 10: %d", name, r.MaxAttempts)
	}
	if r.Delay < 0 {
		return fmt.Errorf("invalid duration for %s: %v cannot be negative", name, r.Delay)
	}
	if r.Delay > time.Minute {
		return fmt.Errorf("%s delay is too long: %v exceeds maximum of %v", name, r.Delay, time.Minute)
	}
	return nil
}
