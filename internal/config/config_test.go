package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/stellarcare_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Errorf("expected development default, got %s", cfg.Env)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("expected 15m access TTL, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 24*time.Hour {
		t.Errorf("expected 24h refresh TTL, got %s", cfg.RefreshTokenTTL)
	}
	if cfg.StrictCustomFields {
		t.Error("strict custom fields must default off")
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without DATABASE_URL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/stellarcare_test")
	t.Setenv("PORT", "9000")
	t.Setenv("STRICT_CUSTOM_FIELDS", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if !cfg.StrictCustomFields {
		t.Error("expected strict custom fields enabled")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Env:             "production",
		JWTSecret:       "secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
	if err := base.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	noSecret := base
	noSecret.JWTSecret = ""
	if err := noSecret.Validate(); err == nil {
		t.Error("production without JWT_SECRET must be rejected")
	}

	devNoSecret := noSecret
	devNoSecret.Env = "development"
	if err := devNoSecret.Validate(); err != nil {
		t.Errorf("development may omit JWT_SECRET: %v", err)
	}

	badTTL := base
	badTTL.RefreshTokenTTL = time.Minute
	if err := badTTL.Validate(); err == nil {
		t.Error("refresh TTL at or below access TTL must be rejected")
	}
}
