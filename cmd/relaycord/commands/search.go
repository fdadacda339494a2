// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
)

type searchParams struct {
	configFlags
	displayFlags
	cli.JSONOutput
	Limit int `flag:"limit,n" default:"10" desc:"maximum number of results (0 for all)"`
}

type searchResult struct {
	Path        string `json:"path"`
	Score       int    `json:"score"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

func searchCommand() *cli.Command {
	var params searchParams
	return &cli.Command{
		Name:    "search",
		Summary: "Fuzzy-find commands by path",
		Description: `Fuzzy-match the query against every command path ("admin server
status") and print the best matches first. Exits with status 1 when
nothing matches.`,
		Usage: "relaycord search <query> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("search", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Usage("search requires a query")
			}
			query := strings.Join(args, " ")

			cat, err := params.openCatalog(nil)
			if err != nil {
				return err
			}
			matches := cat.Search(query, params.Limit)
			logger.Debug("searched catalog", "query", query, "matches", len(matches))

			results := make([]searchResult, len(matches))
			for i, match := range matches {
				results[i] = searchResult{
					Path:        match.Path,
					Score:       match.Score,
					Kind:        entryKind(match.Entry),
					Description: match.Command.Description(),
				}
			}
			if done, err := params.EmitJSON(stdout, results); done {
				if err == nil && len(results) == 0 {
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			if len(matches) == 0 {
				fmt.Fprintf(stdout, "no commands match %q\n", query)
				return &cli.ExitError{Code: 1}
			}
			styles, err := params.palette(stdout)
			if err != nil {
				return err
			}
			for _, result := range results {
				line := fmt.Sprintf("%s  %s %s",
					styles.score.Render(fmt.Sprintf("%4d", result.Score)),
					styles.name.Render(result.Path),
					styles.badge.Render("["+result.Kind+"]"))
				if result.Description != "" {
					line += "  " + styles.faint.Render(result.Description)
				}
				styles.line(stdout, line)
			}
			return nil
		},
	}
}
