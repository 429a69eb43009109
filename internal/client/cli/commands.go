package cli

import (
	"context"
	"fmt"
)

// List loads the users and prints them.
func (a *App) List(ctx context.Context) error {
	st := a.loader.Load(ctx)
	render(a.out, st, retryHint)
	return st.Err
}

// Retry repeats the load after a failure.
func (a *App) Retry(ctx context.Context) error {
	if a.loader.State().Phase != PhaseError {
		fmt.Fprintln(a.out, "Nothing to retry.")
		return nil
	}
	return a.List(ctx)
}

// Clear empties the local store so the next load goes to the remote.
func (a *App) Clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear store", "error", err)
		errorColor.Fprintf(a.out, "Error: could not clear the local store: %v\n", err)
		return err
	}
	a.loader.Reset()
	fmt.Fprintln(a.out, "Local store cleared.")
	return nil
}

// Status prints the load state and where users come from and go to.
func (a *App) Status(ctx context.Context) error {
	st := a.loader.State()
	fmt.Fprintf(a.out, "state:  %s\n", st.Phase)

	source := a.config.Endpoint
	if a.config.Stub {
		source = "built-in stub"
	}
	fmt.Fprintf(a.out, "source: %s\n", source)

	n, err := a.store.Count(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "store:  %s (count unavailable: %v)\n", a.config.StoreDriver, err)
		return err
	}
	fmt.Fprintf(a.out, "store:  %s, %d user(s)\n", a.config.StoreDriver, n)
	return nil
}
