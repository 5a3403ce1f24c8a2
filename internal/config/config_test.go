package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
env: production
server:
  port: "9090"
  allowed_origins: ["http://localhost:3000"]
redis:
  addr: localhost:6379
  ttl: 5m
source:
  url: http://example.com/data.json
  set: animals
quiz:
  correct_delay: 500ms
  incorrect_delay: 3s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "production" || cfg.Server.Port != "9090" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Fatalf("expected one allowed origin, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.SetID() != "animals" {
		t.Fatalf("expected set animals, got %q", cfg.SetID())
	}
	if d := Duration(cfg.Quiz.IncorrectDelay, time.Second); d != 3*time.Second {
		t.Fatalf("expected 3s, got %v", d)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.SetID() != "default" {
		t.Fatalf("expected default set, got %q", cfg.SetID())
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDuration(t *testing.T) {
	if d := Duration("", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for empty, got %v", d)
	}
	if d := Duration("soon", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback for invalid, got %v", d)
	}
	if d := Duration("250ms", time.Minute); d != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", d)
	}
}
