package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.MealDBBaseURL != "https://themealdb.com/api/json/v1/1/" {
		t.Fatalf("unexpected base url %q", cfg.MealDBBaseURL)
	}
	if cfg.MealDBTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.MealDBTimeout)
	}
	if cfg.FeedInterval != time.Hour {
		t.Fatalf("unexpected feed interval %v", cfg.FeedInterval)
	}
	if cfg.StorageType != "bbolt" {
		t.Fatalf("unexpected storage type %q", cfg.StorageType)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MEALDB_BASE_URL", "http://localhost:9999/api/")
	t.Setenv("MEALDB_TIMEOUT_SECONDS", "3")
	t.Setenv("ENRICH_SOURCE_PAGES", "true")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.MealDBBaseURL != "http://localhost:9999/api/" {
		t.Fatalf("env base url not applied: %q", cfg.MealDBBaseURL)
	}
	if cfg.MealDBTimeout != 3*time.Second {
		t.Fatalf("env timeout not applied: %v", cfg.MealDBTimeout)
	}
	if !cfg.EnrichSourcePages {
		t.Fatal("env enrich flag not applied")
	}
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := LoadFrom(file)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	t.Setenv("FEED_INTERVAL", "0")
	if _, err := LoadFrom(""); err == nil {
		t.Fatal("expected error for zero feed_interval")
	}
}
