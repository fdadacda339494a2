// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaycord/catalog"
	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
	"github.com/bureau-foundation/relaycord/command"
	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

type payloadParams struct {
	configFlags
	displayFlags
	Arguments []string `flag:"arg,a" desc:"option value as name=value (repeatable)"`
	Files     []string `flag:"file,f" desc:"attachment option as name=path (repeatable)"`
	Target    string   `flag:"target" desc:"target user or message ID for context-menu commands"`
	Channel   string   `flag:"channel" desc:"channel ID recorded in the envelope"`
}

// payloadEnvelope is the interaction a client would submit.
type payloadEnvelope struct {
	Type      schema.InteractionType   `json:"type"`
	ChannelID snowflake.ID             `json:"channel_id,omitempty"`
	Data      schema.CommandInvocation `json:"data"`
}

func payloadCommand() *cli.Command {
	var params payloadParams
	return &cli.Command{
		Name:    "payload",
		Summary: "Build the invocation payload for a command",
		Description: `Build the exact interaction payload a client sends to invoke a
command, without sending it. The command is named by its path; option
values given with --arg are converted to the declared option types, and
choice names are replaced by their values.`,
		Usage: "relaycord payload <command path...> [flags]",
		Examples: []cli.Example{
			{
				Description: "Slash command with a choice argument",
				Command:     "relaycord payload tune --arg level=Low",
			},
			{
				Description: "User context-menu command",
				Command:     "relaycord payload Profile --target 80351110224678912",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("payload", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Usage("payload requires a command path")
			}
			var channel interaction.Channel
			envelope := payloadEnvelope{Type: schema.InteractionApplicationCommand}
			if params.Channel != "" {
				id, err := snowflake.Parse(params.Channel)
				if err != nil {
					return cli.Usage("--channel: %v", err)
				}
				channel = interaction.ChannelRef{ID: id}
				envelope.ChannelID = id
			}

			cat, err := params.openCatalog(channel)
			if err != nil {
				return err
			}
			target, err := cat.Lookup(args...)
			if err != nil {
				return withSuggestions(err, cat, strings.Join(args, " "))
			}

			invocation, cleanup, err := params.build(target)
			defer cleanup()
			if err != nil {
				return err
			}
			envelope.Data = invocation.Data
			logger.Debug("built invocation payload",
				"command", strings.Join(args, " "),
				"options", len(invocation.Data.Options),
				"attachments", len(invocation.Files))

			encoded, err := json.MarshalIndent(envelope, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding payload: %w", err)
			}
			styles, err := params.palette(stdout)
			if err != nil {
				return err
			}
			return writeJSONText(stdout, string(encoded)+"\n", styles.colorful)
		},
	}
}

// build produces the invocation for any command variant. cleanup
// closes attachment files and is always safe to call.
func (p *payloadParams) build(target command.Command) (command.Invocation, func(), error) {
	cleanup := func() {}
	switch target := target.(type) {
	case *command.SlashCommand, *command.SubCommand:
		arguments, files, err := p.arguments()
		cleanup = func() {
			for _, file := range files {
				file.Close()
			}
		}
		if err != nil {
			return command.Invocation{}, cleanup, err
		}
		builder := target.(interface {
			Build(command.Arguments) (command.Invocation, error)
		})
		invocation, err := builder.Build(arguments)
		return invocation, cleanup, err

	case *command.UserCommand:
		id, err := p.targetID()
		if err != nil {
			return command.Invocation{}, cleanup, err
		}
		invocation, err := target.Build(id)
		return invocation, cleanup, err

	case *command.MessageCommand:
		id, err := p.targetID()
		if err != nil {
			return command.Invocation{}, cleanup, err
		}
		invocation, err := target.Build(&interaction.Message{ID: id})
		return invocation, cleanup, err

	default:
		return command.Invocation{}, cleanup, fmt.Errorf("command %q has unsupported type %s", target.Name(), target.Type())
	}
}

// arguments parses --arg and --file into command arguments. The
// returned files must be closed by the caller.
func (p *payloadParams) arguments() (command.Arguments, []*os.File, error) {
	arguments := make(command.Arguments, len(p.Arguments)+len(p.Files))
	for _, argument := range p.Arguments {
		name, value, ok := strings.Cut(argument, "=")
		if !ok || name == "" {
			return nil, nil, cli.Usage("--arg %q: want name=value", argument)
		}
		arguments[name] = value
	}

	var opened []*os.File
	for _, argument := range p.Files {
		name, path, ok := strings.Cut(argument, "=")
		if !ok || name == "" || path == "" {
			return nil, opened, cli.Usage("--file %q: want name=path", argument)
		}
		file, err := os.Open(path)
		if err != nil {
			return nil, opened, fmt.Errorf("opening attachment for %q: %w", name, err)
		}
		opened = append(opened, file)
		arguments[name] = interaction.File{Name: filepath.Base(path), Content: file}
	}
	return arguments, opened, nil
}

func (p *payloadParams) targetID() (snowflake.ID, error) {
	if p.Target == "" {
		return 0, cli.Usage("context-menu commands need --target")
	}
	id, err := snowflake.Parse(p.Target)
	if err != nil {
		return 0, cli.Usage("--target: %v", err)
	}
	return id, nil
}

// withSuggestions extends a lookup failure with the closest paths.
func withSuggestions(err error, cat *catalog.Catalog, query string) error {
	if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}
	matches := cat.Search(query, 3)
	if len(matches) == 0 {
		return err
	}
	paths := make([]string, len(matches))
	for i, match := range matches {
		paths[i] = fmt.Sprintf("%q", match.Path)
	}
	return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(paths, ", "))
}

// writeJSONText writes JSON, syntax-highlighted when colorful.
func writeJSONText(w io.Writer, text string, colorful bool) error {
	if colorful {
		if err := quick.Highlight(w, text, "json", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err := io.WriteString(w, text)
	return err
}
