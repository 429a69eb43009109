package users

import (
	"context"

	"github.com/usershelf/usershelf/internal/client/models"
)

// Repository is the local store the user service reads through.
type Repository interface {
	// FetchAll returns every persisted user, or an empty slice.
	FetchAll(ctx context.Context) ([]models.User, error)

	// UpsertAndCommit inserts unseen IDs and overwrites existing ones as a
	// single atomic batch.
	UpsertAndCommit(ctx context.Context, users []models.User) error
}

// Store is a Repository that can also be inspected and emptied.
type Store interface {
	Repository

	// Count returns the number of persisted users.
	Count(ctx context.Context) (int, error)

	// Clear removes every persisted user.
	Clear(ctx context.Context) error
}
