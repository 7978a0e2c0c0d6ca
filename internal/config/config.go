// Package config provides configuration management for the planning server.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the server.
type Config struct {
	// Server configuration
	Port     int
	LogLevel string

	// CORS configuration
	CORSAllowedOrigins string

	// TickInterval is how often the planner advances when run in its own
	// background loop (see cmd/server).
	TickInterval time.Duration

	// OIDC configuration, reused for bearer-token auth on the control plane.
	OIDC OIDCConfig

	// Domain is the optional on-disk overlay describing the example domain
	// the server boots with.
	Domain DomainConfig
}

// OIDCConfig holds OIDC authentication configuration.
type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
}

// DomainConfig describes the initial world-state and planner tuning loaded
// from an optional YAML overlay file (see Load and loadDomainOverlay).
type DomainConfig struct {
	// OverlayPath points at a YAML file overriding WorldState/tuning below.
	// Empty means no overlay: the built-in example domain's defaults apply.
	OverlayPath string

	WorldState       map[string]interface{} `yaml:"worldState"`
	GoapMaxNodes     int                     `yaml:"goapMaxNodes"`
	DebugMTR         bool                    `yaml:"debugMTR"`
	LogDecomposition bool                    `yaml:"logDecomposition"`
}

// Load reads configuration from environment variables with sensible
// defaults, then applies a YAML overlay if DOMAIN_CONFIG_PATH points at a
// readable file.
func Load() *Config {
	cfg := &Config{
		Port:               getEnvAsInt("PORT", 8080),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
		TickInterval:       getEnvAsDuration("TICK_INTERVAL", 200*time.Millisecond),
		OIDC: OIDCConfig{
			Issuer:       getEnv("OIDC_ISSUER", "https://token.actions.githubusercontent.com"),
			ClientID:     getEnv("OIDC_CLIENT_ID", ""),
			ClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		},
		Domain: DomainConfig{
			OverlayPath: getEnv("DOMAIN_CONFIG_PATH", ""),
		},
	}

	if cfg.Domain.OverlayPath != "" {
		if overlay, err := loadDomainOverlay(cfg.Domain.OverlayPath); err == nil {
			overlay.OverlayPath = cfg.Domain.OverlayPath
			cfg.Domain = *overlay
		}
	}

	return cfg
}

// loadDomainOverlay reads and parses a YAML domain overlay file.
func loadDomainOverlay(path string) (*DomainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overlay DomainConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, err
	}
	return &overlay, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a
// default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return d
}
