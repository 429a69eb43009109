package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/usershelf/usershelf/internal/buildinfo"
	"github.com/usershelf/usershelf/internal/client/cli"
	"github.com/usershelf/usershelf/internal/client/config"
	"github.com/usershelf/usershelf/internal/logging"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrLoadFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stderr)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
