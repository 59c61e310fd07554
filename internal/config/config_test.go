package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MARVEL_PUBLIC_KEY", "pub-123")
	t.Setenv("MARVEL_PRIVATE_KEY", "priv-456")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_MarvelKeysRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MARVEL_PUBLIC_KEY", "pub-123")
	t.Setenv("MARVEL_PRIVATE_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without MARVEL_PRIVATE_KEY")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_MarvelConfigParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MARVEL_TIMEOUT", "25s")
	t.Setenv("MARVEL_MAX_RETRIES", "3")
	t.Setenv("MARVEL_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MarvelPublicKey != "pub-123" {
		t.Fatalf("unexpected MarvelPublicKey: %q", cfg.MarvelPublicKey)
	}
	if cfg.MarvelTimeout != 25*time.Second {
		t.Fatalf("unexpected MarvelTimeout: %s", cfg.MarvelTimeout)
	}
	if cfg.MarvelMaxRetries != 3 {
		t.Fatalf("unexpected MarvelMaxRetries: %d", cfg.MarvelMaxRetries)
	}
	if cfg.MarvelCircuitFailureCount != 7 {
		t.Fatalf("unexpected MarvelCircuitFailureCount: %d", cfg.MarvelCircuitFailureCount)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DBURL by default, got %q", cfg.DBURL)
	}
	if cfg.MarvelBaseURL != "https://gateway.marvel.com/v1/public" {
		t.Fatalf("unexpected MarvelBaseURL: %q", cfg.MarvelBaseURL)
	}
	if cfg.PDFRendererBaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected PDFRendererBaseURL: %q", cfg.PDFRendererBaseURL)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
}
