package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/usershelf/usershelf/internal/flagx"
)

var knownFlags = []string{
	"-e", "-t", "-s", "-d", "-stub", "-dedup", "-l",
}

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in knownFlags are considered; everything else in args
// is dropped with flagx.FilterArgs so -c/-config does not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Endpoint, "e", cfg.Endpoint, "users endpoint URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver (sqlite, postgres, redis, memory)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "store DSN")
	fs.BoolVar(&cfg.Stub, "stub", cfg.Stub, "use the built-in stub users")
	fs.BoolVar(&cfg.Dedup, "dedup", cfg.Dedup, "share one load between concurrent callers")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if isSet(fs, "t") {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
