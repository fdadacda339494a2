// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func execute(t *testing.T, command *Command, args ...string) (string, error) {
	t.Helper()
	var help bytes.Buffer
	err := command.execute(context.Background(), args, discardLogger(), &help)
	return help.String(), err
}

func TestExecuteDispatchesNested(t *testing.T) {
	var called string
	var received []string
	root := &Command{
		Name: "relaycord",
		Subcommands: []*Command{
			{
				Name: "catalog",
				Subcommands: []*Command{
					{
						Name: "tree",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "catalog tree"
							received = args
							return nil
						},
					},
				},
			},
		},
	}

	if _, err := execute(t, root, "catalog", "tree", "admin"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if called != "catalog tree" || len(received) != 1 || received[0] != "admin" {
		t.Errorf("called %q with %v", called, received)
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:        "relaycord",
		Subcommands: []*Command{{Name: "search"}, {Name: "payload"}},
	}
	_, err := execute(t, root, "serch")
	if err == nil || !strings.Contains(err.Error(), `did you mean "search"`) {
		t.Fatalf("error = %v, want suggestion", err)
	}

	_, err = execute(t, root, "zzzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("error = %v, want no suggestion", err)
	}
}

func TestExecuteFlags(t *testing.T) {
	var limit int
	command := &Command{
		Name: "search",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("search", pflag.ContinueOnError)
			flagSet.IntVar(&limit, "limit", 10, "maximum results")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 || args[0] != "status" {
				t.Errorf("args = %v", args)
			}
			return nil
		},
	}

	if _, err := execute(t, command, "--limit", "3", "status"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if limit != 3 {
		t.Errorf("limit = %d, want 3", limit)
	}

	_, err := execute(t, command, "--limt", "3")
	if err == nil || !strings.Contains(err.Error(), "did you mean --limit") {
		t.Fatalf("error = %v, want flag suggestion", err)
	}
}

func TestExecuteHelp(t *testing.T) {
	root := &Command{
		Name:        "relaycord",
		Description: "Inspect interactive command catalogs.",
		Subcommands: []*Command{{Name: "tree", Summary: "Print the command tree"}},
		Examples:    []Example{{Description: "Show the tree", Command: "relaycord tree"}},
	}
	help, err := execute(t, root, "--help")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"Inspect interactive command catalogs.", "tree", "Print the command tree", "# Show the tree"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}

	help, err = execute(t, root)
	if err == nil || !strings.Contains(help, "Usage:") {
		t.Errorf("bare group: err=%v help=%q", err, help)
	}
}

func TestExecuteRunReceivesScopedLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))
	root := &Command{
		Name: "relaycord",
		Subcommands: []*Command{{
			Name: "decode",
			Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
				logger.Info("decoding")
				return nil
			},
		}},
	}
	if err := root.execute(context.Background(), []string{"decode"}, logger, io.Discard); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(buffer.String(), `"command":"relaycord decode"`) {
		t.Errorf("log line missing command attribute: %s", buffer.String())
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"search", "search", 0},
		{"serch", "search", 1},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
