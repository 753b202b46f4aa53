package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if !cfg.IsDev() {
		t.Error("IsDev() = false, want true")
	}
	if cfg.DBMaxConns != 10 || cfg.DBMinConns != 2 {
		t.Errorf("pool sizes = %d/%d, want 10/2", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.AuthIssuer != "cdesm" {
		t.Errorf("AuthIssuer = %q, want cdesm", cfg.AuthIssuer)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/cdesm")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/cdesm" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadRequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("ENV", "production")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when AUTH_SECRET is missing in production")
	}
	t.Setenv("AUTH_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev() = true, want false")
	}
}
