package client

import (
	"context"
	"sync/atomic"

	"github.com/usershelf/usershelf/internal/client/models"
)

// StubClient serves a fixed batch without network access. It never fails.
type StubClient struct {
	calls atomic.Int64
}

func NewStubClient() *StubClient {
	return &StubClient{}
}

func (s *StubClient) Fetch(ctx context.Context) ([]models.UserDTO, error) {
	s.calls.Add(1)
	return StubUsers(), nil
}

// Calls reports how many times Fetch ran.
func (s *StubClient) Calls() int64 {
	return s.calls.Load()
}

// StubUsers returns a fresh copy of the fixed batch.
func StubUsers() []models.UserDTO {
	return []models.UserDTO{
		{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"},
	}
}
