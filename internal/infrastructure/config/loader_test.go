package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultProvider != "openai" {
		t.Errorf("default provider = %q, want openai", cfg.DefaultProvider)
	}
	if len(cfg.Providers) == 0 {
		t.Error("default config has no providers")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not written: %v", err)
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
default_provider: gemini
providers:
  - name: gemini
    model_id: gemini-1.5-flash
    max_tokens: 256
cache:
  enabled: true
  ttl_seconds: 120
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultProvider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.DefaultProvider)
	}
	if cfg.Cache.TTLSeconds != 120 {
		t.Errorf("ttl = %d, want 120", cfg.Cache.TTLSeconds)
	}
	if cfg.Cache.MaxEntries != 1000 {
		t.Errorf("max entries = %d, want hydrated default 1000", cfg.Cache.MaxEntries)
	}
	if cfg.Engine.EarlyExitConfidence != 0.8 {
		t.Errorf("early exit = %v, want hydrated default 0.8", cfg.Engine.EarlyExitConfidence)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("AIBRIDGE_DEFAULT_PROVIDER", "gemini")
	t.Setenv("AIBRIDGE_CACHE_DISABLED", "true")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultProvider != "gemini" {
		t.Errorf("default provider = %q, want env override gemini", cfg.DefaultProvider)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by env override")
	}
}
