package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTestConfig writes YAML content to a temp file and returns its path.
func writeTestConfig(t *testing.T, content string) string {
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
database:
  path: "/tmp/test-contacts.db"
  wal_mode: true
  busy_timeout: 5
api:
  host: "127.0.0.1"
  port: 9090
logging:
  level: "debug"
  format: "text"
`
	cfg, err := Load(writeTestConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test-contacts.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test-contacts.db")
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Minimal file: everything should come from defaults
	cfg, err := Load(writeTestConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "./data/contacts.db" {
		t.Errorf("default Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.Database.WALMode {
		t.Error("default Database.WALMode should be true")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("default API.Port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Seed.Enabled {
		t.Error("default Seed.Enabled should be false")
	}
	if cfg.GetReadTimeout() != 30*time.Second {
		t.Errorf("GetReadTimeout() = %v, want 30s", cfg.GetReadTimeout())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTestConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
database:
  path: ""
api:
  port: 99999
`
	_, err := Load(writeTestConfig(t, content))
	if err == nil {
		t.Error("Load() expected validation error, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CRMCORE_DATABASE_PATH", "/tmp/env-override.db")
	t.Setenv("CRMCORE_API_PORT", "9999")
	t.Setenv("CRMCORE_SEED_ENABLED", "true")

	cfg, err := Load(writeTestConfig(t, "database:\n  path: \"/tmp/from-file.db\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/env-override.db" {
		t.Errorf("Database.Path = %q, env override not applied", cfg.Database.Path)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("API.Port = %d, env override not applied", cfg.API.Port)
	}
	if !cfg.Seed.Enabled {
		t.Error("Seed.Enabled env override not applied")
	}
}

func TestLoad_InvalidEnvPortIgnored(t *testing.T) {
	t.Setenv("CRMCORE_API_PORT", "not-a-number")

	cfg, err := Load(writeTestConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want default 8080 when env value is invalid", cfg.API.Port)
	}
}

func TestValidate_BusyTimeout(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.BusyTimeout = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for negative busy_timeout")
	}
}
