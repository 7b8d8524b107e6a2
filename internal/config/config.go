// Package config loads the kiosk configuration: a small YAML file with
// defaults, overridden by environment variables where deployment needs
// it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvDatabasePath = "TIMECLOCK_DB"
	EnvExportPath   = "TIME_CLOCK_EXPORT_PATH"
)

// Config is the kiosk configuration. Load starts from Default(); keys
// absent from the file keep their default, and a zero or negative value
// set explicitly fails validation.
type Config struct {
	// DatabasePath is the SQLite file location.
	DatabasePath string `yaml:"database_path"`

	// ScanDebounceSeconds is the window within which repeated scans of
	// the same tag are dropped.
	ScanDebounceSeconds float64 `yaml:"scan_debounce_seconds"`

	// EmployeeTimeoutSeconds is how long the last-clocked employee is
	// remembered.
	EmployeeTimeoutSeconds float64 `yaml:"employee_timeout_seconds"`

	// PendingTimeoutSeconds is how long a pending badge identification
	// stays armed.
	PendingTimeoutSeconds float64 `yaml:"pending_timeout_seconds"`

	// PollIntervalMillis is the reader poll interval.
	PollIntervalMillis int `yaml:"poll_interval_millis"`

	// ExportPath overrides the export destination. Empty triggers the
	// USB discovery heuristic.
	ExportPath string `yaml:"export_path"`

	// LogFile enables the rotating log file sink when set.
	LogFile string `yaml:"log_file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DatabasePath:           "timeclock.db",
		ScanDebounceSeconds:    1.2,
		EmployeeTimeoutSeconds: 120,
		PendingTimeoutSeconds:  30,
		PollIntervalMillis:     100,
	}
}

// Load reads the configuration file at path, falling back to defaults
// when path is empty or the file does not exist, then applies
// environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv(EnvExportPath); v != "" {
		c.ExportPath = v
	}
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("config: database_path must not be empty")
	}
	if c.ScanDebounceSeconds <= 0 {
		return fmt.Errorf("config: scan_debounce_seconds must be positive, got %v", c.ScanDebounceSeconds)
	}
	if c.EmployeeTimeoutSeconds <= 0 {
		return fmt.Errorf("config: employee_timeout_seconds must be positive, got %v", c.EmployeeTimeoutSeconds)
	}
	if c.PendingTimeoutSeconds <= 0 {
		return fmt.Errorf("config: pending_timeout_seconds must be positive, got %v", c.PendingTimeoutSeconds)
	}
	if c.PollIntervalMillis <= 0 || c.PollIntervalMillis > 100 {
		return fmt.Errorf("config: poll_interval_millis must be in 1..100, got %d", c.PollIntervalMillis)
	}
	return nil
}

// ScanDebounce returns the debounce window as a duration.
func (c Config) ScanDebounce() time.Duration {
	return time.Duration(c.ScanDebounceSeconds * float64(time.Second))
}

// EmployeeTimeout returns the last-clocked expiry as a duration.
func (c Config) EmployeeTimeout() time.Duration {
	return time.Duration(c.EmployeeTimeoutSeconds * float64(time.Second))
}

// PendingTimeout returns the identification expiry as a duration.
func (c Config) PendingTimeout() time.Duration {
	return time.Duration(c.PendingTimeoutSeconds * float64(time.Second))
}

// PollInterval returns the reader poll interval as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMillis) * time.Millisecond
}
