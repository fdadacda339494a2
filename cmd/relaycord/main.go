// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
	"github.com/bureau-foundation/relaycord/cmd/relaycord/commands"
	"github.com/bureau-foundation/relaycord/lib/config"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := processLogger()
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return commands.Root().Execute(ctx, os.Args[1:], logger)
}

// processLogger configures logging from $RELAYCORD_CONFIG when it is
// set, else from the defaults.
func processLogger() (*slog.Logger, error) {
	cfg := config.Default()
	if os.Getenv(config.EnvironmentVariable) != "" {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return cli.NewLogger(os.Stderr, level, cfg.Log.Format), nil
}
