package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gofoil/internal/app"
	"github.com/dmitrijs2005/gofoil/internal/config"
	"github.com/dmitrijs2005/gofoil/internal/drive"
	"github.com/dmitrijs2005/gofoil/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(newSlog(cfg.Verbosity))

	client, err := drive.NewClient(drive.Options{
		CredentialsPath: cfg.CredentialsPath,
		TokenPath:       cfg.TokenPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gofoil: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, logger, client).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gofoil: %v\n", err)
		os.Exit(1)
	}
}

// newSlog builds the process logger. Logs go to stderr so the generated
// index path can safely be the only stdout output in scripts.
func newSlog(verbosity int) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbosity >= 1 {
		opts.Level = slog.LevelDebug
	}
	if verbosity >= 2 {
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
