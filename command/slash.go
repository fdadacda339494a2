// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Arguments maps option names to values. Accepted value types depend
// on the option: strings, integers, floats and bools for scalar
// options (a string matching a choice name selects that choice),
// snowflake.Entity or an ID for mentions, and interaction.File for
// attachments.
type Arguments map[string]any

// SlashCommand is a chat-input command. It either takes options
// directly or namespaces SubCommands.
type SlashCommand struct {
	*base

	options  []Option
	children []*SubCommand
}

func newSlashCommand(b *base) *SlashCommand {
	command := &SlashCommand{base: b}
	command.options, command.children = splitOptions(b.raw.Options, command, command)
	return command
}

// splitOptions separates parameters from nested commands.
func splitOptions(raw []schema.CommandOption, parent Command, root *SlashCommand) ([]Option, []*SubCommand) {
	var options []Option
	var children []*SubCommand
	for _, option := range raw {
		if !option.Type.IsSubCommand() {
			options = append(options, newOption(option))
			continue
		}
		child := &SubCommand{
			name:        option.Name,
			description: option.Description,
			optionType:  option.Type,
			parent:      parent,
			root:        root,
		}
		child.options, child.children = splitOptions(option.Options, child, root)
		children = append(children, child)
	}
	return options, children
}

// IsGroup reports whether the command has subcommands.
func (s *SlashCommand) IsGroup() bool { return len(s.children) > 0 }

// Options returns the declared parameters.
func (s *SlashCommand) Options() []Option { return s.options }

// Option returns the parameter called name.
func (s *SlashCommand) Option(name string) (Option, bool) { return findOption(s.options, name) }

// Children returns the direct subcommands and groups.
func (s *SlashCommand) Children() []*SubCommand { return s.children }

// Child returns the direct subcommand or group called name, or nil.
func (s *SlashCommand) Child(name string) *SubCommand { return findChild(s.children, name) }

// Path returns the command name.
func (s *SlashCommand) Path() string { return s.raw.Name }

// Build returns the payload Invoke would send, without sending it.
func (s *SlashCommand) Build(arguments Arguments) (Invocation, error) {
	if s.IsGroup() {
		return Invocation{}, fmt.Errorf("%w: %q is a command group", interaction.ErrInvalidUsage, s.Path())
	}
	options, files, err := buildOptions(s.logger(), s.Path(), s.options, arguments)
	if err != nil {
		return Invocation{}, err
	}
	return s.payload(options, files), nil
}

// Invoke runs the command in channel, or in the target channel when
// channel is nil.
func (s *SlashCommand) Invoke(ctx context.Context, channel interaction.Channel, arguments Arguments) (*interaction.Interaction, error) {
	return invokeSlash(ctx, s, s.base, channel, arguments)
}

// SubCommand is a subcommand or subcommand group nested in a
// SlashCommand. Command-wide properties are read from the root.
type SubCommand struct {
	name        string
	description string
	optionType  schema.OptionType
	options     []Option
	children    []*SubCommand

	// parent is the enclosing *SlashCommand or *SubCommand.
	parent Command
	root   *SlashCommand
}

func (s *SubCommand) Name() string        { return s.name }
func (s *SubCommand) Description() string { return s.description }

// IsGroup reports whether this node is a subcommand group.
func (s *SubCommand) IsGroup() bool { return s.optionType == schema.OptionSubCommandGroup }

// OptionType is OptionSubCommand or OptionSubCommandGroup.
func (s *SubCommand) OptionType() schema.OptionType { return s.optionType }

func (s *SubCommand) Type() schema.CommandType    { return s.root.Type() }
func (s *SubCommand) ID() snowflake.ID            { return s.root.ID() }
func (s *SubCommand) ApplicationID() snowflake.ID { return s.root.ApplicationID() }
func (s *SubCommand) Version() snowflake.ID       { return s.root.Version() }
func (s *SubCommand) DefaultPermission() bool     { return s.root.DefaultPermission() }
func (s *SubCommand) DMPermission() bool          { return s.root.DMPermission() }

func (s *SubCommand) DefaultMemberPermissions() *Permissions {
	return s.root.DefaultMemberPermissions()
}

func (s *SubCommand) Application() *interaction.Application { return s.root.Application() }

// TargetChannel and SetTargetChannel act on the root command.
func (s *SubCommand) TargetChannel() interaction.Channel { return s.root.TargetChannel() }

func (s *SubCommand) SetTargetChannel(channel interaction.Channel) {
	s.root.SetTargetChannel(channel)
}

func (s *SubCommand) command() {}

// Parent returns the enclosing *SlashCommand or *SubCommand.
func (s *SubCommand) Parent() Command { return s.parent }

// Root returns the top-level command.
func (s *SubCommand) Root() *SlashCommand { return s.root }

func (s *SubCommand) Options() []Option                 { return s.options }
func (s *SubCommand) Option(name string) (Option, bool) { return findOption(s.options, name) }
func (s *SubCommand) Children() []*SubCommand           { return s.children }
func (s *SubCommand) Child(name string) *SubCommand     { return findChild(s.children, name) }

// Path returns the space-separated names from the root to this node.
func (s *SubCommand) Path() string {
	names := []string{s.name}
	for parent := s.parent; ; {
		sub, ok := parent.(*SubCommand)
		if !ok {
			break
		}
		names = append(names, sub.name)
		parent = sub.parent
	}
	names = append(names, s.root.Name())
	slices.Reverse(names)
	return strings.Join(names, " ")
}

// Build returns the payload Invoke would send: this node's options
// wrapped in one group per level, from the root's immediate child
// inwards.
func (s *SubCommand) Build(arguments Arguments) (Invocation, error) {
	if s.IsGroup() {
		return Invocation{}, fmt.Errorf("%w: %q is a command group", interaction.ErrInvalidUsage, s.Path())
	}
	options, files, err := buildOptions(s.root.logger(), s.Path(), s.options, arguments)
	if err != nil {
		return Invocation{}, err
	}

	wrapped := []schema.InvocationOption{{Type: s.optionType, Name: s.name, Options: options}}
	for parent := s.parent; ; {
		sub, ok := parent.(*SubCommand)
		if !ok {
			break
		}
		wrapped = []schema.InvocationOption{{Type: sub.optionType, Name: sub.name, Options: wrapped}}
		parent = sub.parent
	}
	return s.root.payload(wrapped, files), nil
}

// Invoke runs the subcommand in channel, or in the root's target
// channel when channel is nil.
func (s *SubCommand) Invoke(ctx context.Context, channel interaction.Channel, arguments Arguments) (*interaction.Interaction, error) {
	return invokeSlash(ctx, s, s.root.base, channel, arguments)
}

type builder interface {
	Command
	Path() string
	Build(Arguments) (Invocation, error)
}

func invokeSlash(ctx context.Context, command builder, root *base, channel interaction.Channel, arguments Arguments) (*interaction.Interaction, error) {
	if command.IsGroup() {
		return nil, fmt.Errorf("%w: %q is a command group", interaction.ErrInvalidUsage, command.Path())
	}
	channel, err := root.resolveChannel(channel)
	if err != nil {
		return nil, err
	}
	invocation, err := command.Build(arguments)
	if err != nil {
		return nil, err
	}
	return root.invoke(ctx, channel, invocation)
}

// buildOptions coerces the declared subset of arguments, in declared
// order. Undeclared arguments are dropped.
func buildOptions(logger *slog.Logger, path string, declared []Option, arguments Arguments) ([]schema.InvocationOption, []interaction.File, error) {
	var options []schema.InvocationOption
	var files []interaction.File
	for _, option := range declared {
		value, ok := arguments[option.Name]
		if !ok {
			continue
		}
		coerced, err := option.coerce(value, &files)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, schema.InvocationOption{Type: option.Type, Name: option.Name, Value: coerced})
	}

	if len(options) < len(arguments) {
		var dropped []string
		for name := range arguments {
			if _, ok := findOption(declared, name); !ok {
				dropped = append(dropped, name)
			}
		}
		slices.Sort(dropped)
		logger.Debug("dropping undeclared arguments", "command", path, "arguments", dropped)
	}
	return options, files, nil
}

func findOption(options []Option, name string) (Option, bool) {
	for _, option := range options {
		if option.Name == name {
			return option, true
		}
	}
	return Option{}, false
}

func findChild(children []*SubCommand, name string) *SubCommand {
	for _, child := range children {
		if child.name == name {
			return child
		}
	}
	return nil
}
