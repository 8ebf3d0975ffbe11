package shared_test

import (
	"testing"
	"time"

	"lightbnb/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := shared.Load()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cfg != shared.Defaults() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LIGHTBNB_APP_ENV", "dev")
	t.Setenv("LIGHTBNB_LOG_LEVEL", "DEBUG")
	t.Setenv("LIGHTBNB_DB_DRIVER", "mysql")
	t.Setenv("LIGHTBNB_DB_DSN", "root:root@tcp(localhost:3306)/lightbnb?parseTime=true")
	t.Setenv("LIGHTBNB_DB_MAX_OPEN_CONNS", "4")
	t.Setenv("LIGHTBNB_DB_MAX_IDLE_CONNS", "2")
	t.Setenv("LIGHTBNB_DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("LIGHTBNB_RATE_LIMIT_RPS", "0")
	t.Setenv("LIGHTBNB_STRICT_FILTERS", "true")
	t.Setenv("LIGHTBNB_SEED_WORKERS", "3")

	cfg, err := shared.Load()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cfg.AppEnv != "dev" || cfg.LogLevel != "debug" || cfg.DBDriver != "mysql" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DBMaxOpenConns != 4 || cfg.DBMaxIdleConns != 2 || cfg.DBConnMaxLifetime != 90*time.Second {
		t.Fatalf("unexpected pool config: %+v", cfg)
	}
	if cfg.RateLimitRPS != 0 || !cfg.StrictFilters || cfg.SeedWorkers != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unset key lost its default: %q", cfg.HTTPAddr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"LIGHTBNB_DB_DRIVER":         "sqlite",
		"LIGHTBNB_LOG_LEVEL":         "verbose",
		"LIGHTBNB_DB_MAX_IDLE_CONNS": "50",
		"LIGHTBNB_SEED_WORKERS":      "0",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := shared.Load(); err == nil {
				t.Fatalf("expected error for %s=%s", k, v)
			}
		})
	}
}
