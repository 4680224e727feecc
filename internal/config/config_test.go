package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "DATABASE_DRIVER", "DATABASE_MAX_OPEN_CONNS", "REQUEST_TIMEOUT_SECONDS", "CORS_ORIGINS", "SITE_BASE_URL", "PAGESPEED_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseMaxOpenConns != 5 {
		t.Fatalf("expected pool of 5, got %d", cfg.DatabaseMaxOpenConns)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected request timeout %s", cfg.RequestTimeout)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("expected no cors origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Integrations.PageSpeedURL != "http://localhost:8080" {
		t.Fatalf("expected pagespeed url to follow site url, got %q", cfg.Integrations.PageSpeedURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.dev , ,https://b.dev ")
	t.Setenv("SITE_BASE_URL", "https://folio.dev/")

	cfg := Load()
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected :9000, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Fatalf("expected lowercase driver, got %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseMaxOpenConns != 5 {
		t.Fatalf("expected fallback pool size, got %d", cfg.DatabaseMaxOpenConns)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.dev" || cfg.CORSOrigins[1] != "https://b.dev" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if cfg.SiteBaseURL != "https://folio.dev" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.SiteBaseURL)
	}
}
