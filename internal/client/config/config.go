package config

import (
	"time"

	"github.com/usershelf/usershelf/internal/common"
)

// Config holds runtime settings for the usershelf CLI.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	Endpoint       string        `env:"ENDPOINT" validate:"required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`
	StoreDriver    string        `env:"STORE_DRIVER" validate:"oneof=sqlite postgres redis memory"`
	StoreDSN       string        `env:"STORE_DSN" validate:"required_unless=StoreDriver memory"`
	Stub           bool          `env:"STUB"`
	Dedup          bool          `env:"DEDUP"`
	LogLevel       string        `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat      string        `env:"LOG_FORMAT" validate:"oneof=text json"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Endpoint = common.DefaultEndpoint
	c.RequestTimeout = 10 * time.Second
	c.StoreDriver = "sqlite"
	c.StoreDSN = "users.db"
	c.Stub = false
	c.Dedup = false
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
