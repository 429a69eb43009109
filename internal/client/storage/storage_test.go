package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usershelf/usershelf/internal/client/config"
	"github.com/usershelf/usershelf/internal/client/models"
	"github.com/usershelf/usershelf/internal/client/repositories/users"
)

func cfgFor(driver, dsn string) *config.Config {
	var c config.Config
	c.LoadDefaults()
	c.StoreDriver = driver
	c.StoreDSN = dsn
	return &c
}

var batch = []models.User{
	{ID: 2, DisplayName: "Ervin Howell", Handle: "Antonette", Email: "Shanna@melissa.tv"},
	{ID: 1, DisplayName: "Leanne Graham", Handle: "Bret", Email: "Sincere@april.biz"},
}

func roundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.UpsertAndCommit(ctx, batch))
	got, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, batch, got)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Clear(ctx))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_SQLiteFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "users.db")

	s, err := Open(context.Background(), cfgFor(DriverSQLite, dsn), nil)
	require.NoError(t, err)
	roundTrip(t, s)
	require.NoError(t, s.UpsertAndCommit(context.Background(), batch))
	require.NoError(t, s.Close())

	// data and schema survive a reopen; migrations are idempotent
	s, err = Open(context.Background(), cfgFor(DriverSQLite, dsn), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.IsType(t, &users.SQLiteRepository{}, s.(closingStore).Store)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), cfgFor(DriverMemory, ""), nil)
	require.NoError(t, err)
	roundTrip(t, s)
	require.NoError(t, s.Close())
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, dsn := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		t.Run(dsn, func(t *testing.T) {
			s, err := Open(context.Background(), cfgFor(DriverRedis, dsn), nil)
			require.NoError(t, err)
			roundTrip(t, s)
			require.NoError(t, s.Close())
		})
	}
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(context.Background(), cfgFor(DriverRedis, addr), nil)
	require.ErrorContains(t, err, "failed to ping Redis")
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{name: "unknown driver", cfg: cfgFor("mongo", "x"), wantErr: `unknown store driver "mongo"`},
		{name: "bad redis url", cfg: cfgFor(DriverRedis, "redis://localhost:6379/notanumber"), wantErr: "failed to parse Redis URL"},
		{name: "empty redis address", cfg: cfgFor(DriverRedis, ""), wantErr: "redis address is empty"},
		{name: "sqlite in missing dir", cfg: cfgFor(DriverSQLite, filepath.Join(t.TempDir(), "no", "such", "users.db")), wantErr: "db ping error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(context.Background(), tt.cfg, nil)
			require.Nil(t, s)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
