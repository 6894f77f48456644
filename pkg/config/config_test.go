package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LUMINA_APP_ENV", "development")
	t.Setenv("LUMINA_APP_PORT", "8080")
	t.Setenv("LUMINA_CATALOG_BASE_URL", "http://localhost:8000")
	t.Setenv("LUMINA_ORDER_BASE_URL", "http://localhost:8001")
	t.Setenv("LUMINA_ADMIN_BASE_URL", "http://localhost:8002")
	t.Setenv("LUMINA_REDIS_ADDR", "localhost:6379")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env")
	}
	if cfg.Session.CartTTL != 720*time.Hour {
		t.Fatalf("unexpected cart ttl %v", cfg.Session.CartTTL)
	}
	if cfg.Catalog.Upstream().Name != "catalog" {
		t.Fatalf("unexpected upstream name")
	}
	if cfg.Order.Timeout != 15*time.Second {
		t.Fatalf("unexpected order timeout %v", cfg.Order.Timeout)
	}
}

func TestLoadRequiresSnapshotBackend(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LUMINA_REDIS_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when neither redis nor sqlite is configured")
	}

	t.Setenv("LUMINA_USE_SQLITE", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("sqlite mode should satisfy the backend requirement: %v", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		t.Fatalf("expected sqlite flag set")
	}
}
