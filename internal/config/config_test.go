package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	// Clear environment variables
	os.Unsetenv("PORT")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("OIDC_ISSUER")
	os.Unsetenv("OIDC_CLIENT_ID")
	os.Unsetenv("OIDC_CLIENT_SECRET")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.LogLevel)
	}

	if cfg.OIDC.Issuer != "https://token.actions.githubusercontent.com" {
		t.Errorf("expected default OIDC issuer, got %s", cfg.OIDC.Issuer)
	}

	if cfg.OIDC.ClientID != "" {
		t.Errorf("expected empty OIDC client ID, got %s", cfg.OIDC.ClientID)
	}
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	os.Setenv("PORT", "3000")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("OIDC_ISSUER", "https://example.com")
	os.Setenv("OIDC_CLIENT_ID", "test-client")
	os.Setenv("OIDC_CLIENT_SECRET", "test-secret")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("OIDC_ISSUER")
		os.Unsetenv("OIDC_CLIENT_ID")
		os.Unsetenv("OIDC_CLIENT_SECRET")
	}()

	cfg := Load()

	if cfg.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Port)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}

	if cfg.OIDC.Issuer != "https://example.com" {
		t.Errorf("expected OIDC issuer 'https://example.com', got %s", cfg.OIDC.Issuer)
	}

	if cfg.OIDC.ClientID != "test-client" {
		t.Errorf("expected OIDC client ID 'test-client', got %s", cfg.OIDC.ClientID)
	}

	if cfg.OIDC.ClientSecret != "test-secret" {
		t.Errorf("expected OIDC client secret 'test-secret', got %s", cfg.OIDC.ClientSecret)
	}
}

func TestLoadWithTickInterval(t *testing.T) {
	os.Setenv("TICK_INTERVAL", "50ms")
	defer os.Unsetenv("TICK_INTERVAL")

	cfg := Load()
	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("expected 50ms tick interval, got %v", cfg.TickInterval)
	}
}

func TestLoadWithDomainOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "domain.yaml")
	yamlBody := "worldState:\n  hp: 100\ngoapMaxNodes: 500\ndebugMTR: true\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("failed to write overlay fixture: %v", err)
	}

	os.Setenv("DOMAIN_CONFIG_PATH", path)
	defer os.Unsetenv("DOMAIN_CONFIG_PATH")

	cfg := Load()
	if cfg.Domain.GoapMaxNodes != 500 {
		t.Errorf("expected overlay goapMaxNodes 500, got %d", cfg.Domain.GoapMaxNodes)
	}
	if !cfg.Domain.DebugMTR {
		t.Error("expected overlay debugMTR true")
	}
	hp, ok := cfg.Domain.WorldState["hp"]
	if !ok || hp != 100 {
		t.Errorf("expected overlay worldState.hp=100, got %v", hp)
	}
}

func TestLoadWithInvalidPort(t *testing.T) {
	os.Setenv("PORT", "invalid")
	defer os.Unsetenv("PORT")

	cfg := Load()

	// Should fall back to default
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080 for invalid value, got %d", cfg.Port)
	}
}
