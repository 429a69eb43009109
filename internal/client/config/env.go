package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

const envPrefix = "USERS_"

// parseEnv overlays cfg with USERS_* environment variables. Unset variables
// keep the current value.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
