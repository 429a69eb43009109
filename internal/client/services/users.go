// Package services holds the user service: the read-through policy that
// answers "give me the current users" from the local store, falling back to
// the remote fetcher only when the store is empty.
package services

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/usershelf/usershelf/internal/client/client"
	"github.com/usershelf/usershelf/internal/client/models"
	"github.com/usershelf/usershelf/internal/client/repositories/users"
	"github.com/usershelf/usershelf/internal/common"
	"github.com/usershelf/usershelf/internal/logging"
)

// flightKey is the single de-duplication key: GetUsers takes no arguments.
const flightKey = "users"

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

type UserService struct {
	fetcher client.Fetcher
	store   users.Repository
	logger  logging.Logger
	group   *singleflight.Group
}

type Option func(*UserService)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(s *UserService) { s.logger = l }
}

// WithSingleflight makes concurrent GetUsers calls share one
// read/fetch/write cycle.
func WithSingleflight() Option {
	return func(s *UserService) { s.group = &singleflight.Group{} }
}

func NewUserService(fetcher client.Fetcher, store users.Repository, opts ...Option) *UserService {
	s := &UserService{fetcher: fetcher, store: store, logger: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetUsers returns the persisted users, or, when none are persisted,
// fetches them remotely, saves them and returns them.
//
// If the fetched users cannot be saved, GetUsers returns them anyway
// together with a common.ErrPersistence error. Callers that want the data
// regardless should check the slice before the error.
//
// Fetch errors are returned unchanged; store errors are reported as
// common.ErrPersistence.
//
// With WithSingleflight, a caller whose ctx ends stops waiting and gets
// ctx.Err(); the shared cycle itself is not cancelled by any single caller.
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	if s.group == nil {
		return s.load(ctx)
	}

	ch := s.group.DoChan(flightKey, func() (any, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		list, _ := res.Val.([]models.User)
		return slices.Clone(list), res.Err
	}
}

func (s *UserService) load(ctx context.Context) ([]models.User, error) {
	log := s.logger.With("call_id", uuid.NewString())

	local, err := s.store.FetchAll(ctx)
	if err != nil {
		log.Error(ctx, "failed to read local users", "error", err)
		return nil, persistenceError(err)
	}
	if len(local) > 0 {
		log.Debug(ctx, "users loaded", "source", SourceLocal, "count", len(local))
		return local, nil
	}

	log.Info(ctx, "local store is empty, fetching users", "source", SourceRemote)
	dtos, err := s.fetcher.Fetch(ctx)
	if err != nil {
		log.Error(ctx, "failed to fetch users", "kind", common.KindOf(err).String(), "error", err)
		return nil, err
	}

	fresh := models.UsersFromDTOs(dtos)
	if len(fresh) == 0 {
		log.Info(ctx, "remote returned no users", "source", SourceRemote)
		return fresh, nil
	}

	if err := s.store.UpsertAndCommit(ctx, fresh); err != nil {
		log.Warn(ctx, "users fetched but not persisted, returning them anyway",
			"source", SourceRemote, "count", len(fresh), "error", err)
		return fresh, persistenceError(err)
	}

	log.Info(ctx, "users loaded", "source", SourceRemote, "count", len(fresh))
	return fresh, nil
}

// persistenceError tags store failures as persistence failures. An error
// carrying another kind keeps it reachable as the cause.
func persistenceError(err error) error {
	if common.KindOf(err) == common.KindPersistence {
		return err
	}
	return common.NewError(common.KindPersistence, err)
}
