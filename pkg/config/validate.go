package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Upstream.BaseURL == "" {
		errs = append(errs, fmt.Errorf("upstream.base_url is required"))
	}

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	if c.Upstream.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("upstream.timeout must be > 0"))
	}
	if c.Upstream.LongTimeout < c.Upstream.Timeout {
		errs = append(errs, fmt.Errorf("upstream.long_timeout must be >= upstream.timeout"))
	}

	switch c.Storage.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}

	switch c.Auth.Type {
	case "none", "session", "static":
		// valid
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\", \"session\", or \"static\", got %q", c.Auth.Type))
	}

	if c.Auth.Type == "session" && c.Auth.Secret == "" && c.Auth.SecretFile == "" {
		errs = append(errs, fmt.Errorf("auth.secret or auth.secret_file is required when auth.type is \"session\""))
	}

	if c.Auth.Type == "static" && len(c.Auth.Tokens) == 0 {
		errs = append(errs, fmt.Errorf("auth.tokens must not be empty when auth.type is \"static\""))
	}

	return errors.Join(errs...)
}
