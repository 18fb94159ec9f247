// Package config provides unified configuration for the pathlight gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (PATHLIGHT_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the pathlight gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Upstream      UpstreamConfig      `yaml:"upstream"`
	Storage       StorageConfig       `yaml:"storage"`
	Auth          AuthConfig          `yaml:"auth"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
}

// UpstreamConfig holds career-intelligence backend settings.
type UpstreamConfig struct {
	// BaseURL is the backend base URL (required).
	BaseURL string `yaml:"base_url"`

	// Timeout bounds ordinary backend calls. Default: 30s.
	Timeout time.Duration `yaml:"timeout"`

	// LongTimeout bounds AI parsing and GitHub sync calls. Default: 60s.
	LongTimeout time.Duration `yaml:"long_timeout"`
}

// StorageConfig holds profile store settings.
type StorageConfig struct {
	Type     string         `yaml:"type"` // "memory" or "postgres", default: "memory"
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"` // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// AuthConfig holds session resolution settings.
type AuthConfig struct {
	// Type selects the session provider: "none", "session" (signed
	// session tokens), or "static". Default: "none".
	Type string `yaml:"type"`

	// Secret is the HMAC secret for session tokens (type=session).
	Secret     string `yaml:"secret"`
	SecretFile string `yaml:"secret_file"` // _file variant for secret

	// Issuer is the expected token issuer (type=session, optional).
	Issuer string `yaml:"issuer"`

	// Tokens lists static token entries (type=static).
	Tokens []StaticTokenConfig `yaml:"tokens"`

	// RateLimit enables per-subject request limiting when positive.
	RateLimit      float64 `yaml:"rate_limit"`       // requests per second, 0 = disabled
	RateLimitBurst int     `yaml:"rate_limit_burst"` // default: 10
}

// StaticTokenConfig describes a single static token entry.
type StaticTokenConfig struct {
	Token      string `yaml:"token"`
	TokenFile  string `yaml:"token_file"` // _file variant for token
	Subject    string `yaml:"subject"`
	Credential string `yaml:"credential"`
}

// ObservabilityConfig holds monitoring settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
		},
		Upstream: UpstreamConfig{
			Timeout:     30 * time.Second,
			LongTimeout: 60 * time.Second,
		},
		Storage: StorageConfig{
			Type: "memory",
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Auth: AuthConfig{
			Type:           "none",
			RateLimitBurst: 10,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
