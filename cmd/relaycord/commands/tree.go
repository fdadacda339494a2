// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaycord/catalog"
	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
	"github.com/bureau-foundation/relaycord/command"
	"github.com/bureau-foundation/relaycord/lib/schema"
)

type treeParams struct {
	configFlags
	displayFlags
	cli.JSONOutput
	Type string `flag:"type" desc:"only show commands of this type: chat_input, user or message"`
}

// treeEntry is the JSON form of one tree node.
type treeEntry struct {
	Path        string `json:"path"`
	Depth       int    `json:"depth"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

func treeCommand() *cli.Command {
	var params treeParams
	return &cli.Command{
		Name:    "tree",
		Summary: "Print the command tree of an index",
		Description: `Print every command in the index with its subcommands and groups
nested beneath it. Context-menu commands (user and message) have no
children.`,
		Usage: "relaycord tree [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tree", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			cat, err := params.openCatalog(nil)
			if err != nil {
				return err
			}
			entries := cat.Entries()
			if params.Type != "" {
				commandType, err := schema.ParseCommandType(params.Type)
				if err != nil {
					return cli.Usage("--type: %v", err)
				}
				entries = filterEntries(entries, commandType)
			}
			logger.Debug("rendering command tree", "entries", len(entries))

			result := make([]treeEntry, len(entries))
			for i, entry := range entries {
				result[i] = treeEntry{
					Path:        entry.Path,
					Depth:       entry.Depth,
					Kind:        entryKind(entry),
					Description: entry.Command.Description(),
				}
			}
			if done, err := params.EmitJSON(stdout, result); done {
				return err
			}

			styles, err := params.palette(stdout)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				name := styles.name
				if entry.Command.IsGroup() {
					name = styles.group
				}
				var line strings.Builder
				line.WriteString(strings.Repeat("  ", entry.Depth))
				line.WriteString(name.Render(entry.Command.Name()))
				line.WriteString(" ")
				line.WriteString(styles.badge.Render("[" + entryKind(entry) + "]"))
				if description := entry.Command.Description(); description != "" {
					line.WriteString("  ")
					line.WriteString(styles.faint.Render(description))
				}
				styles.line(stdout, line.String())
			}
			return nil
		},
	}
}

// entryKind names what an entry is: its command type at the top level,
// else subcommand or group.
func entryKind(entry catalog.Entry) string {
	sub, ok := entry.Command.(*command.SubCommand)
	if !ok {
		return entry.Command.Type().String()
	}
	if sub.IsGroup() {
		return "group"
	}
	return "subcommand"
}

func filterEntries(entries []catalog.Entry, commandType schema.CommandType) []catalog.Entry {
	var kept []catalog.Entry
	for _, entry := range entries {
		if entry.Command.Type() == commandType {
			kept = append(kept, entry)
		}
	}
	return kept
}
