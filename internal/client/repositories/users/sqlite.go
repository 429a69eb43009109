package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/usershelf/usershelf/internal/client/models"
	"github.com/usershelf/usershelf/internal/dbx"
)

// SQLiteRepository implements Store on an SQLite database migrated with
// the embedded schema.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]models.User, error) {
	return selectAll(ctx, r.db, `SELECT id, display_name, handle, email FROM users ORDER BY id`)
}

// UpsertAndCommit writes the batch in one transaction.
func (r *SQLiteRepository) UpsertAndCommit(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	query := `INSERT INTO users (id, display_name, handle, email)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name,
				handle = excluded.handle,
				email = excluded.email
	`
	return upsertBatch(ctx, r.db, query, users)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

func selectAll(ctx context.Context, db dbx.DBTX, query string) ([]models.User, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.DisplayName, &u.Handle, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return result, nil
}

func upsertBatch(ctx context.Context, db *sql.DB, query string, users []models.User) error {
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, u := range users {
			if _, err := tx.ExecContext(ctx, query, u.ID, u.DisplayName, u.Handle, u.Email); err != nil {
				return fmt.Errorf("failed to upsert user %d: %w", u.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit users batch: %w", err)
	}
	return nil
}

func countRows(ctx context.Context, db dbx.DBTX) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
