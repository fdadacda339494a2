// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/relaycord/command"
	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// ErrNotFound is returned by Lookup for a path that names no command.
var ErrNotFound = errors.New("command not found")

// Load reads a command index document. The file may contain JSONC
// comments and trailing commas.
func Load(path string) (*schema.CommandIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a command index document.
func Parse(data []byte) (*schema.CommandIndex, error) {
	var index schema.CommandIndex
	if err := json.Unmarshal(jsonc.ToJSON(data), &index); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &index, nil
}

// Catalog is an immutable set of commands.
type Catalog struct {
	commands []command.Command
	raw      []schema.ApplicationCommand
}

// New builds commands from index. Commands that do not embed their
// application get the matching entry from index.Applications. engine
// and channel are passed to [command.New] and may be nil.
func New(engine *interaction.Engine, index *schema.CommandIndex, channel interaction.Channel) *Catalog {
	applications := make(map[snowflake.ID]schema.Application, len(index.Applications))
	for _, application := range index.Applications {
		applications[application.ID] = application
	}

	catalog := &Catalog{raw: index.ApplicationCommands}
	for _, raw := range index.ApplicationCommands {
		if raw.Application == nil {
			if application, ok := applications[raw.ApplicationID]; ok {
				raw.Application = &application
			}
		}
		catalog.commands = append(catalog.commands, command.New(engine, raw, channel))
	}
	return catalog
}

// Commands returns the top-level commands in index order.
func (c *Catalog) Commands() []command.Command { return c.commands }

// Len returns the number of top-level commands.
func (c *Catalog) Len() int { return len(c.commands) }

// OfType returns the top-level commands of the given type.
func (c *Catalog) OfType(commandType schema.CommandType) []command.Command {
	var matching []command.Command
	for _, cmd := range c.commands {
		if cmd.Type() == commandType {
			matching = append(matching, cmd)
		}
	}
	return matching
}

// Lookup resolves a command path. Path elements may themselves contain
// spaces: Lookup("admin", "server config") and
// Lookup("admin server config") are equivalent. Context-menu command
// names may contain spaces, so a whole-name match is tried first.
func (c *Catalog) Lookup(path ...string) (command.Command, error) {
	joined := strings.Join(path, " ")
	for _, cmd := range c.commands {
		if cmd.Name() == joined {
			return cmd, nil
		}
	}

	names := strings.Fields(joined)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}

	var current command.Command
	for _, cmd := range c.commands {
		if cmd.Name() == names[0] && cmd.Type() == schema.CommandChatInput {
			current = cmd
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, joined)
	}

	for _, name := range names[1:] {
		var child *command.SubCommand
		switch node := current.(type) {
		case *command.SlashCommand:
			child = node.Child(name)
		case *command.SubCommand:
			child = node.Child(name)
		}
		if child == nil {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, joined)
		}
		current = child
	}
	return current, nil
}

// Entry is one node of the command tree with its full path.
type Entry struct {
	Path    string
	Depth   int
	Command command.Command
}

// Entries returns every command and subcommand, depth first in index
// order.
func (c *Catalog) Entries() []Entry {
	var entries []Entry
	var walk func(prefix string, depth int, children []*command.SubCommand)
	walk = func(prefix string, depth int, children []*command.SubCommand) {
		for _, child := range children {
			path := prefix + " " + child.Name()
			entries = append(entries, Entry{Path: path, Depth: depth, Command: child})
			walk(path, depth+1, child.Children())
		}
	}
	for _, cmd := range c.commands {
		entries = append(entries, Entry{Path: cmd.Name(), Command: cmd})
		if slash, ok := cmd.(*command.SlashCommand); ok {
			walk(cmd.Name(), 1, slash.Children())
		}
	}
	return entries
}
