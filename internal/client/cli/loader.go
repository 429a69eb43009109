package cli

import (
	"context"
	"sync"

	"github.com/usershelf/usershelf/internal/client/models"
	"github.com/usershelf/usershelf/internal/common"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// State is the outcome of the latest load.
//
// In PhaseSuccess, Warning holds a persistence error when the users were
// fetched but could not be saved. In PhaseError, Err is set and Users is nil.
type State struct {
	Phase   Phase
	Users   []models.User
	Err     error
	Warning error
}

// UsersGetter is the part of the user service the front end needs.
type UsersGetter interface {
	GetUsers(ctx context.Context) ([]models.User, error)
}

// Loader runs loads and keeps the resulting State.
type Loader struct {
	svc UsersGetter

	mu    sync.Mutex
	state State
}

func NewLoader(svc UsersGetter) *Loader {
	return &Loader{svc: svc, state: State{Phase: PhaseIdle}}
}

func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load calls the service once and records the state derived from its result.
func (l *Loader) Load(ctx context.Context) State {
	l.set(State{Phase: PhaseLoading})

	users, err := l.svc.GetUsers(ctx)
	st := stateFrom(users, err)

	l.set(st)
	return st
}

// Reset returns the loader to idle.
func (l *Loader) Reset() {
	l.set(State{Phase: PhaseIdle})
}

func (l *Loader) set(st State) {
	l.mu.Lock()
	l.state = st
	l.mu.Unlock()
}

func stateFrom(users []models.User, err error) State {
	switch {
	case err == nil:
		return State{Phase: PhaseSuccess, Users: users}
	case users != nil && common.KindOf(err) == common.KindPersistence:
		return State{Phase: PhaseSuccess, Users: users, Warning: err}
	default:
		return State{Phase: PhaseError, Err: err}
	}
}
