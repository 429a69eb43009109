package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/usershelf/usershelf/internal/client/client"
	"github.com/usershelf/usershelf/internal/client/config"
	"github.com/usershelf/usershelf/internal/client/repositories/users"
	"github.com/usershelf/usershelf/internal/client/services"
	"github.com/usershelf/usershelf/internal/client/storage"
	"github.com/usershelf/usershelf/internal/logging"
)

const retryHint = "Type 'retry' to try again."

// ErrLoadFailed is returned by a one-shot Run whose load ended in error.
var ErrLoadFailed = errors.New("load failed")

// isTerminal is a test seam for term.IsTerminal on stdin.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

type App struct {
	config *config.Config
	loader *Loader
	store  users.Store
	closer io.Closer
	logger logging.Logger
	in     io.Reader
	out    io.Writer
}

// NewApp opens the configured store and builds the user service on top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing store: %w", err)
	}

	var fetcher client.Fetcher
	if c.Stub {
		fetcher = client.NewStubClient()
	} else {
		fetcher = client.NewHTTPClient(c.Endpoint, client.WithTimeout(c.RequestTimeout))
	}

	opts := []services.Option{services.WithLogger(logger)}
	if c.Dedup {
		opts = append(opts, services.WithSingleflight())
	}
	svc := services.NewUserService(fetcher, store, opts...)

	a := newApp(c, NewLoader(svc), store, logger)
	a.closer = store
	return a, nil
}

func newApp(c *config.Config, loader *Loader, store users.Store, logger logging.Logger) *App {
	return &App{
		config: c,
		loader: loader,
		store:  store,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// Run starts the REPL when stdin is a terminal, otherwise loads once and
// prints. A one-shot load that fails returns an error wrapping
// ErrLoadFailed.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if !isTerminal() {
		return a.runOnce(ctx)
	}

	fmt.Fprintln(a.out, "Welcome to usershelf (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.in))
	return nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *App) runOnce(ctx context.Context) error {
	st := a.loader.Load(ctx)
	render(a.out, st, "")
	if st.Phase == PhaseError {
		return fmt.Errorf("%w: %w", ErrLoadFailed, st.Err)
	}
	return nil
}

func (a *App) getStatus() string {
	return string(a.loader.State().Phase)
}
