// Package storage opens the local user store selected by configuration and
// brings its schema up to date.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/usershelf/usershelf/internal/client/config"
	"github.com/usershelf/usershelf/internal/client/migrations"
	"github.com/usershelf/usershelf/internal/client/repositories/users"
	"github.com/usershelf/usershelf/internal/logging"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Store is a users.Store that owns its connection.
type Store interface {
	users.Store
	Close() error
}

type closingStore struct {
	users.Store
	close func() error
}

func (s closingStore) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open connects to the store named by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (Store, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	log := logger.With("driver", cfg.StoreDriver)

	var (
		store Store
		err   error
	)
	switch cfg.StoreDriver {
	case DriverSQLite:
		store, err = openSQL(ctx, "sqlite", "sqlite3", cfg.StoreDSN, func(db *sql.DB) users.Store {
			return users.NewSQLiteRepository(db)
		})
	case DriverPostgres:
		store, err = openSQL(ctx, "pgx", "postgres", cfg.StoreDSN, func(db *sql.DB) users.Store {
			return users.NewPostgresRepository(db)
		})
	case DriverRedis:
		store, err = openRedis(ctx, cfg.StoreDSN)
	case DriverMemory:
		store = closingStore{Store: users.NewMemoryRepository()}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		log.Error(ctx, "failed to open store", "error", err)
		return nil, err
	}

	log.Debug(ctx, "store opened")
	return store, nil
}

func openSQL(ctx context.Context, driver, dialect, dsn string, build func(*sql.DB) users.Store) (Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return closingStore{Store: build(db), close: db.Close}, nil
}

func openRedis(ctx context.Context, dsn string) (Store, error) {
	opt, err := redisOptions(dsn)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return closingStore{
		Store: users.NewRedisRepository(client, users.DefaultRedisKey),
		close: client.Close,
	}, nil
}

// redisOptions accepts a redis:// or rediss:// URL or a bare host:port.
func redisOptions(dsn string) (*redis.Options, error) {
	if strings.Contains(dsn, "://") {
		opt, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opt, nil
	}
	if dsn == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	return &redis.Options{Addr: dsn}, nil
}
