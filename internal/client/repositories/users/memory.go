package users

import (
	"context"
	"sync"

	"github.com/usershelf/usershelf/internal/client/models"
)

// MemoryRepository keeps users in process memory, in first-insertion
// order. Nothing survives the process.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []int64
	byID  map[int64]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[int64]models.User)}
}

func (r *MemoryRepository) FetchAll(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// UpsertAndCommit applies the whole batch under one write lock, so readers
// see either none or all of it.
func (r *MemoryRepository) UpsertAndCommit(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range users {
		if _, ok := r.byID[u.ID]; !ok {
			r.order = append(r.order, u.ID)
		}
		r.byID[u.ID] = u
	}
	return nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.byID = make(map[int64]models.User)
	return nil
}
