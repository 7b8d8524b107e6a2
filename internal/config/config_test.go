package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvExportPath, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "timeclock.db", cfg.DatabasePath)
	assert.Equal(t, 1200*time.Millisecond, cfg.ScanDebounce())
	assert.Equal(t, 120*time.Second, cfg.EmployeeTimeout())
	assert.Equal(t, 30*time.Second, cfg.PendingTimeout())
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
	assert.Empty(t, cfg.ExportPath)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvExportPath, "")

	path := filepath.Join(t.TempDir(), "timeclock.yaml")
	content := `
database_path: /var/lib/timeclock/data.db
scan_debounce_seconds: 2.5
employee_timeout_seconds: 60
pending_timeout_seconds: 15
poll_interval_millis: 50
export_path: /media/usb0
log_file: /var/log/timeclock.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/timeclock/data.db", cfg.DatabasePath)
	assert.Equal(t, 2500*time.Millisecond, cfg.ScanDebounce())
	assert.Equal(t, time.Minute, cfg.EmployeeTimeout())
	assert.Equal(t, 15*time.Second, cfg.PendingTimeout())
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, "/media/usb0", cfg.ExportPath)
	assert.Equal(t, "/var/log/timeclock.log", cfg.LogFile)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvExportPath, "")

	path := filepath.Join(t.TempDir(), "timeclock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_path: custom.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom.db", cfg.DatabasePath)
	assert.Equal(t, 1200*time.Millisecond, cfg.ScanDebounce(), "unset keys keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDatabasePath, "/tmp/env.db")
	t.Setenv(EnvExportPath, "/tmp/env-exports")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/env-exports", cfg.ExportPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeclock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_path: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvExportPath, "")

	cases := []string{
		"scan_debounce_seconds: -1\n",
		"employee_timeout_seconds: 0\n",
		"pending_timeout_seconds: -5\n",
		"poll_interval_millis: 0\n",
		"poll_interval_millis: 500\n", // over the 100 ms polling contract
		"database_path: \"\"\n",
	}
	for _, content := range cases {
		path := filepath.Join(t.TempDir(), "timeclock.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := Load(path)
		assert.Error(t, err, "config %q must be rejected", content)
	}
}
