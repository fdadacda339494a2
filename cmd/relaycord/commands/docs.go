// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bureau-foundation/relaycord/catalog"
	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
	"github.com/bureau-foundation/relaycord/command"
	"github.com/bureau-foundation/relaycord/lib/schema"
)

type docsParams struct {
	configFlags
	HTML bool `flag:"html" desc:"render the reference as HTML instead of Markdown"`
}

func docsCommand() *cli.Command {
	var params docsParams
	return &cli.Command{
		Name:    "docs",
		Summary: "Generate a command reference",
		Description: `Write a reference of every command in the index: one section per
command path with its options, types and choices. Markdown by default;
--html renders the same document with GitHub-flavored tables.`,
		Usage: "relaycord docs [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("docs", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			cat, err := params.openCatalog(nil)
			if err != nil {
				return err
			}
			var reference strings.Builder
			writeReference(&reference, cat)
			logger.Debug("generated reference", "commands", cat.Len(), "bytes", reference.Len())

			if !params.HTML {
				_, err := io.WriteString(stdout, reference.String())
				return err
			}
			markdown := goldmark.New(goldmark.WithExtensions(extension.GFM))
			if err := markdown.Convert([]byte(reference.String()), stdout); err != nil {
				return fmt.Errorf("rendering HTML: %w", err)
			}
			return nil
		},
	}
}

// optionHolder is a command that declares options directly.
type optionHolder interface {
	Options() []command.Option
}

// writeReference renders the catalog as a Markdown document.
func writeReference(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintln(w, "# Command reference")
	for _, entry := range cat.Entries() {
		fmt.Fprintln(w)
		heading := "/" + entry.Path
		if entry.Command.Type() != schema.CommandChatInput {
			heading = entry.Path
		}
		fmt.Fprintf(w, "## `%s` (%s)\n", heading, entryKind(entry))
		if description := entry.Command.Description(); description != "" {
			fmt.Fprintf(w, "\n%s\n", description)
		}

		if entry.Command.IsGroup() {
			continue
		}
		holder, ok := entry.Command.(optionHolder)
		if !ok || len(holder.Options()) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Option | Type | Required | Description |")
		fmt.Fprintln(w, "| --- | --- | --- | --- |")
		for _, option := range holder.Options() {
			required := "no"
			if option.Required {
				required = "yes"
			}
			fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n",
				option.Name, option.Type, required, tableCell(optionDescription(option)))
		}
	}
}

func optionDescription(option command.Option) string {
	description := option.Description
	if len(option.Choices) > 0 {
		choices := make([]string, len(option.Choices))
		for i, choice := range option.Choices {
			choices[i] = fmt.Sprintf("%s (%v)", choice.Name, choice.Value)
		}
		description = strings.TrimSpace(description + " Choices: " + strings.Join(choices, ", ") + ".")
	}
	return description
}

func tableCell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.ReplaceAll(text, "\n", " ")
}
