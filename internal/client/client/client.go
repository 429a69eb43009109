package client

import (
	"context"

	"github.com/usershelf/usershelf/internal/client/models"
)

// Fetcher retrieves the current batch of users from a remote source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.UserDTO, error)
}
