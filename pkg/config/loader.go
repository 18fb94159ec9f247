package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, PATHLIGHT_CONFIG env,
//     ./config.yaml, /etc/pathlight/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. PATHLIGHT_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/pathlight/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("PATHLIGHT_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/pathlight/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps PATHLIGHT_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PATHLIGHT_BACKEND_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("PATHLIGHT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PATHLIGHT_UPSTREAM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if v := os.Getenv("PATHLIGHT_UPSTREAM_LONG_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.LongTimeout = d
		}
	}
	if v := os.Getenv("PATHLIGHT_STORAGE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("PATHLIGHT_POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("PATHLIGHT_AUTH_TYPE"); v != "" {
		cfg.Auth.Type = v
	}
	if v := os.Getenv("PATHLIGHT_SESSION_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("PATHLIGHT_SESSION_ISSUER"); v != "" {
		cfg.Auth.Issuer = v
	}
}

// resolveFileReferences loads the contents of any _file variant fields
// into their primary counterparts. The file content wins over an
// inline value.
func resolveFileReferences(cfg *Config) error {
	if cfg.Storage.Postgres.DSNFile != "" {
		v, err := readSecretFile(cfg.Storage.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("storage.postgres.dsn_file: %w", err)
		}
		cfg.Storage.Postgres.DSN = v
	}

	if cfg.Auth.SecretFile != "" {
		v, err := readSecretFile(cfg.Auth.SecretFile)
		if err != nil {
			return fmt.Errorf("auth.secret_file: %w", err)
		}
		cfg.Auth.Secret = v
	}

	for i := range cfg.Auth.Tokens {
		if cfg.Auth.Tokens[i].TokenFile != "" {
			v, err := readSecretFile(cfg.Auth.Tokens[i].TokenFile)
			if err != nil {
				return fmt.Errorf("auth.tokens[%d].token_file: %w", i, err)
			}
			cfg.Auth.Tokens[i].Token = v
		}
	}

	return nil
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
