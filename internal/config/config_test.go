package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("RATE_LIMIT_REQUESTS", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Fatalf("expected sqlite default, got %q", cfg.DBDriver)
	}
	if cfg.RateLimitRequests != 100 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("unexpected rate limit defaults: %d per %s", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgresql")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/jobboard")
	t.Setenv("POSTGRES_DRIVER", "pq")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverPostgres || cfg.PostgresDriver != "postgres" {
		t.Fatalf("unexpected drivers: %q %q", cfg.DBDriver, cfg.PostgresDriver)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected unknown driver error")
	}

	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected rate limit error")
	}
}

func TestGetList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	got := getList("CORS_ALLOWED_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestNormalizeDriver(t *testing.T) {
	tests := map[string]string{
		"pg":         DriverPostgres,
		"PostgreSQL": DriverPostgres,
		"pgx":        DriverPostgres,
		" sqlite3 ":  DriverSQLite,
		"memory":     DriverMemory,
		"mongo":      "mongo",
	}
	for in, want := range tests {
		if got := NormalizeDriver(in); got != want {
			t.Fatalf("NormalizeDriver(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.5")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "192.168.1.5" {
		t.Fatalf("unexpected trusted proxies %v", cfg.TrustedProxies)
	}
}
