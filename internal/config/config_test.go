package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Storage.Responses != StorageMemory || cfg.Captcha.MaxOperand != 20 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Theme.Footer.Background != "#003d6d" {
		t.Fatalf("expected default footer theme, got %q", cfg.Theme.Footer.Background)
	}
}

func TestLoadFileAndEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: "9090"
captcha:
  max_operand: 9
  ttl: 30m
storage:
  responses: sqlite
sqlite:
  path: /tmp/responses.db
theme:
  accent: "#aa0000"
  footer:
    background: "#222222"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SURVEY_SERVER_PORT", "7070")
	t.Setenv("SURVEY_REDIS_ADDR", "localhost:6379")
	t.Setenv("SURVEY_CAPTCHA_MAX_ATTEMPTS", "2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected env to win over file, got port %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Captcha.MaxAttempts != 2 {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
	if cfg.Captcha.MaxOperand != 9 || cfg.Storage.Responses != StorageSQLite || cfg.SQLite.Path != "/tmp/responses.db" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if TTLDuration(cfg.Captcha.TTL, time.Hour) != 30*time.Minute {
		t.Fatalf("expected captcha ttl 30m, got %q", cfg.Captcha.TTL)
	}
	if cfg.Theme.Accent != "#aa0000" || cfg.Theme.Footer.Background != "#222222" {
		t.Fatalf("expected themed colours, got %+v", cfg.Theme)
	}
	if cfg.Theme.Footer.ColumnMinWidth != "300px" {
		t.Fatalf("expected untouched theme fields to keep defaults, got %q", cfg.Theme.Footer.ColumnMinWidth)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = "http"
	cfg.Storage.Responses = "mongo"
	cfg.Captcha.MaxOperand = 0
	cfg.Captcha.TTL = "soon"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"server.port", "storage.responses", "captcha.max_operand", "captcha.ttl"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	cfg = Default()
	cfg.Storage.Responses = StoragePostgres
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "postgres.url") {
		t.Fatalf("expected postgres url requirement, got %v", err)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for invalid input, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}
