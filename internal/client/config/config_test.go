package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	var c Config
	c.LoadDefaults()
	return &c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "https://jsonplaceholder.typicode.com/users", c.Endpoint)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.Equal(t, "users.db", c.StoreDSN)
	assert.False(t, c.Stub)
	assert.False(t, c.Dedup)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_NoSources(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint":     "http://json.example/users",
		"store_driver": "memory",
		"log_level":    "debug",
	})
	t.Setenv("USERS_STORE_DRIVER", "redis")
	t.Setenv("USERS_STORE_DSN", "localhost:6379")
	t.Setenv("USERS_LOG_LEVEL", "warn")

	cfg, err := LoadConfig([]string{"-c", path, "-l", "error"})
	require.NoError(t, err)

	want := defaults()
	want.Endpoint = "http://json.example/users"
	want.StoreDriver = "redis"
	want.StoreDSN = "localhost:6379"
	want.LogLevel = "error"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("USERS_STORE_DRIVER", "mongo")

	cfg, err := LoadConfig([]string{"-t", "0"})
	require.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "StoreDriver must be one of")
	assert.ErrorContains(t, err, "RequestTimeout must be positive")
}

func TestLoadConfig_BadEnvValue(t *testing.T) {
	t.Setenv("USERS_REQUEST_TIMEOUT", "soon")

	_, err := LoadConfig(nil)
	require.ErrorContains(t, err, "parse environment")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "endpoint shape is not checked", mutate: func(c *Config) { c.Endpoint = "not a url" }},
		{name: "memory needs no dsn", mutate: func(c *Config) { c.StoreDriver = "memory"; c.StoreDSN = "" }},
		{name: "json format", mutate: func(c *Config) { c.LogFormat = "json" }},
		{name: "empty endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantErr: "Endpoint is required"},
		{name: "sqlite needs dsn", mutate: func(c *Config) { c.StoreDSN = "" }, wantErr: "StoreDSN is required"},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantErr: "RequestTimeout must be positive"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: `LogLevel must be one of [debug info warn error], got "trace"`},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LogFormat must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
