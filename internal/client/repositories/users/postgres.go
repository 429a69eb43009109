package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/usershelf/usershelf/internal/client/models"
)

// PostgresRepository implements Store on PostgreSQL through database/sql
// and the pgx stdlib driver.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FetchAll(ctx context.Context) ([]models.User, error) {
	return selectAll(ctx, r.db, `SELECT id, display_name, handle, email FROM users ORDER BY id`)
}

func (r *PostgresRepository) UpsertAndCommit(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	query :=
		`INSERT INTO users (id, display_name, handle, email)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name,
			handle = EXCLUDED.handle,
			email = EXCLUDED.email
		 `
	return upsertBatch(ctx, r.db, query, users)
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db)
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}
