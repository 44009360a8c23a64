package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
core:
  name: "test-core"
amps:
  bus: "/dev/i2c-3"
  devices:
    - name: "i2c-MX98390:00-max98390-hda.0"
      address: 0x38
    - name: "i2c-MX98390:01-max98390-hda.1"
      address: 0x39
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Core.Name != "test-core" {
		t.Errorf("Core.Name = %q, want %q", cfg.Core.Name, "test-core")
	}

	if cfg.Amps.Bus != "/dev/i2c-3" {
		t.Errorf("Amps.Bus = %q, want %q", cfg.Amps.Bus, "/dev/i2c-3")
	}

	if len(cfg.Amps.Devices) != 2 {
		t.Fatalf("len(Amps.Devices) = %d, want 2", len(cfg.Amps.Devices))
	}
	if cfg.Amps.Devices[1].Address != 0x39 {
		t.Errorf("Amps.Devices[1].Address = %#x, want 0x39", cfg.Amps.Devices[1].Address)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty core name",
			content: `
core:
  name: ""
database:
  path: "/tmp/test.db"
`,
		},
		{
			name: "too many amp devices",
			content: `
core:
  name: "test"
database:
  path: "/tmp/test.db"
amps:
  devices:
    - {name: "a.0"}
    - {name: "a.1"}
    - {name: "a.2"}
    - {name: "a.3"}
    - {name: "a.4"}
`,
		},
		{
			name: "invalid qos",
			content: `
core:
  name: "test"
database:
  path: "/tmp/test.db"
mqtt:
  qos: 3
`,
		},
		{
			name: "influx enabled without url",
			content: `
core:
  name: "test"
database:
  path: "/tmp/test.db"
influxdb:
  enabled: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() expected validation error, got nil")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	content := `
core:
  name: "test"
database:
  path: "/tmp/test.db"
`
	t.Setenv("SIDECODEC_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("SIDECODEC_AMPS_BUS", "/dev/i2c-7")

	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Amps.Bus != "/dev/i2c-7" {
		t.Errorf("Amps.Bus = %q, want env override", cfg.Amps.Bus)
	}
}

func TestSettleDefaults(t *testing.T) {
	cfg := defaultConfig()

	if got := cfg.ResetSettle(); got != 20*time.Millisecond {
		t.Errorf("ResetSettle() = %v, want 20ms", got)
	}
	if got := cfg.EnableSettle(); got != 50*time.Millisecond {
		t.Errorf("EnableSettle() = %v, want 50ms", got)
	}

	cfg.Amps.Timing.ResetSettleMs = 1
	cfg.Amps.Timing.EnableSettleMs = 2
	if got := cfg.ResetSettle(); got != time.Millisecond {
		t.Errorf("ResetSettle() override = %v, want 1ms", got)
	}
	if got := cfg.EnableSettle(); got != 2*time.Millisecond {
		t.Errorf("EnableSettle() override = %v, want 2ms", got)
	}
}
