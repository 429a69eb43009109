package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	t.Run("loads every field", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint":        "http://localhost:8080/users",
			"request_timeout": "3s",
			"store_driver":    "postgres",
			"store_dsn":       "postgres://u:p@localhost/users",
			"stub":            true,
			"dedup":           true,
			"log_level":       "debug",
			"log_format":      "json",
		})

		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, &Config{
			Endpoint:       "http://localhost:8080/users",
			RequestTimeout: 3 * time.Second,
			StoreDriver:    "postgres",
			StoreDSN:       "postgres://u:p@localhost/users",
			Stub:           true,
			Dedup:          true,
			LogLevel:       "debug",
			LogFormat:      "json",
		}, cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"request_timeout": float64(2 * time.Second)})

		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", path}))

		want := defaults()
		want.RequestTimeout = 2 * time.Second
		assert.Equal(t, want, cfg)
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		cfg := &Config{Endpoint: "keep", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJSON(cfg, []string{"-e", "other"}))

		assert.Equal(t, "keep", cfg.Endpoint)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.ErrorContains(t, err, "read config file")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJSON(defaults(), []string{"-c", bad})
		require.ErrorContains(t, err, "parse config file")
	})
}
