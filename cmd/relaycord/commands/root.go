// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
	"github.com/bureau-foundation/relaycord/lib/version"
)

// Root returns the relaycord command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "relaycord",
		Description: `relaycord: inspect interactive command catalogs offline.

Reads an application command index (JSON with comments allowed), shows
its command tree, finds commands by fuzzy path, builds the exact
invocation payload a client would send, and decodes captured gateway
traffic into dispatch events.`,
		Subcommands: []*cli.Command{
			treeCommand(),
			searchCommand(),
			payloadCommand(),
			fingerprintCommand(),
			docsCommand(),
			decodeCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(stdout, "relaycord %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Show every command in an index",
				Command:     "relaycord tree --catalog commands.jsonc",
			},
			{
				Description: "Find a nested subcommand by abbreviation",
				Command:     "relaycord search srvstat",
			},
			{
				Description: "Build the payload for a subcommand with arguments",
				Command:     "relaycord payload admin server config set --arg key=motd --arg value=hello",
			},
			{
				Description: "Decode a captured zstd-stream session",
				Command:     "relaycord decode session.bin --compression zstd-stream",
			},
		},
	}
}
