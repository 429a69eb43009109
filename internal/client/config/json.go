package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/usershelf/usershelf/internal/flagx"
	"github.com/usershelf/usershelf/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" from "zero" so a partial file only overrides what it
// names.
type JSONConfig struct {
	Endpoint       *string         `json:"endpoint"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StoreDriver    *string         `json:"store_driver"`
	StoreDSN       *string         `json:"store_dsn"`
	Stub           *bool           `json:"stub"`
	Dedup          *bool           `json:"dedup"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
}

// parseJSON overlays cfg with values from the file named by -c or -config.
// Without either flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&cfg.Endpoint, jc.Endpoint)
	setIf(&cfg.StoreDriver, jc.StoreDriver)
	setIf(&cfg.StoreDSN, jc.StoreDSN)
	setIf(&cfg.Stub, jc.Stub)
	setIf(&cfg.Dedup, jc.Dedup)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
