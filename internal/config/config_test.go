package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cinescout.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  api_key: "abc123"
server:
  port: 9090
app:
  log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "abc123" {
		t.Errorf("api_key = %q, want abc123", cfg.TMDb.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.App.LogLevel)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  api_key: "abc123"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Relay.URL != "http://localhost:8080" {
		t.Errorf("default relay url = %q", cfg.Relay.URL)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("default log_level = %q, want info", cfg.App.LogLevel)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing tmdb.api_key")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  api_key: "from-file"
`)

	t.Setenv("CINESCOUT_TMDB_API_KEY", "from-env")
	t.Setenv("CINESCOUT_SERVER_PORT", "7070")
	t.Setenv("CINESCOUT_RELAY_URL", "http://relay:8080")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "from-env" {
		t.Errorf("api_key = %q, want from-env", cfg.TMDb.APIKey)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Relay.URL != "http://relay:8080" {
		t.Errorf("relay url = %q, want http://relay:8080", cfg.Relay.URL)
	}
}

func TestLoad_TelegramRequiresToken(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  api_key: "abc"
telegram:
  allowed_chat_ids: [42]
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for telegram without bot_token")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
