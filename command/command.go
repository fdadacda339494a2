// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// ErrInvalidArgument reports an argument value that cannot be coerced
// to its option's type.
var ErrInvalidArgument = errors.New("invalid argument")

// Command is the read surface shared by every variant. The set of
// implementations is closed: *BaseCommand, *UserCommand,
// *MessageCommand, *SlashCommand and *SubCommand.
type Command interface {
	Name() string
	Description() string
	Type() schema.CommandType
	ID() snowflake.ID
	ApplicationID() snowflake.ID
	Version() snowflake.ID
	DefaultPermission() bool
	DMPermission() bool

	// DefaultMemberPermissions is nil when the command has no default
	// restriction.
	DefaultMemberPermissions() *Permissions

	// Application is nil unless the payload embedded one.
	Application() *interaction.Application

	// TargetChannel is the channel used when an invocation does not
	// name one.
	TargetChannel() interaction.Channel
	SetTargetChannel(channel interaction.Channel)

	// IsGroup reports whether the command only namespaces subcommands
	// and cannot itself be invoked.
	IsGroup() bool

	command()
}

// Permissions is a permission bit set. Bit meanings are defined by the
// server.
type Permissions uint64

// Has reports whether every bit of required is set.
func (p Permissions) Has(required Permissions) bool { return p&required == required }

func (p Permissions) String() string { return strconv.FormatUint(uint64(p), 10) }

// Invocation is a fully built command invocation payload together with
// the files it uploads.
type Invocation struct {
	Data  schema.CommandInvocation
	Files []interaction.File
}

// New builds the variant selected by raw.Type. engine may be nil, in
// which case commands can Build payloads but not Invoke. channel, if
// non-nil, becomes the initial target channel.
func New(engine *interaction.Engine, raw schema.ApplicationCommand, channel interaction.Channel) Command {
	b := newBase(engine, raw, channel)
	switch raw.Type {
	case schema.CommandChatInput:
		return newSlashCommand(b)
	case schema.CommandUser:
		return &UserCommand{base: b}
	case schema.CommandMessage:
		return &MessageCommand{base: b}
	default:
		return &BaseCommand{base: b}
	}
}

// base holds the command-wide state of a top-level command.
type base struct {
	engine *interaction.Engine
	raw    schema.ApplicationCommand

	defaultPermission        bool
	dmPermission             bool
	defaultMemberPermissions *Permissions
	application              *interaction.Application
	targetChannel            interaction.Channel
}

func newBase(engine *interaction.Engine, raw schema.ApplicationCommand, channel interaction.Channel) *base {
	b := &base{
		engine:            engine,
		raw:               raw,
		defaultPermission: raw.DefaultPermission == nil || *raw.DefaultPermission,
		dmPermission:      raw.DMPermission == nil || *raw.DMPermission,
		targetChannel:     channel,
	}
	if raw.DefaultMemberPermissions != nil {
		value, err := strconv.ParseUint(*raw.DefaultMemberPermissions, 10, 64)
		if err != nil {
			b.logger().Warn("ignoring malformed default_member_permissions",
				"command", raw.Name, "value", *raw.DefaultMemberPermissions)
		} else {
			permissions := Permissions(value)
			b.defaultMemberPermissions = &permissions
		}
	}
	if raw.Application != nil {
		if engine != nil {
			b.application = engine.ResolveApplication(*raw.Application)
		} else {
			b.application = interaction.DefaultResolveApplication(*raw.Application)
		}
	}
	return b
}

func (b *base) Name() string                                 { return b.raw.Name }
func (b *base) Description() string                          { return b.raw.Description }
func (b *base) Type() schema.CommandType                     { return b.raw.Type }
func (b *base) ID() snowflake.ID                             { return b.raw.ID }
func (b *base) ApplicationID() snowflake.ID                  { return b.raw.ApplicationID }
func (b *base) Version() snowflake.ID                        { return b.raw.Version }
func (b *base) DefaultPermission() bool                      { return b.defaultPermission }
func (b *base) DMPermission() bool                           { return b.dmPermission }
func (b *base) DefaultMemberPermissions() *Permissions       { return b.defaultMemberPermissions }
func (b *base) Application() *interaction.Application        { return b.application }
func (b *base) TargetChannel() interaction.Channel           { return b.targetChannel }
func (b *base) SetTargetChannel(channel interaction.Channel) { b.targetChannel = channel }
func (b *base) IsGroup() bool                                { return false }
func (b *base) command()                                     {}

func (b *base) logger() *slog.Logger {
	if b.engine == nil {
		return slog.Default()
	}
	return b.engine.Logger()
}

// resolveChannel picks the explicit channel, then the stored target.
func (b *base) resolveChannel(explicit interaction.Channel) (interaction.Channel, error) {
	if explicit != nil {
		return explicit, nil
	}
	if b.targetChannel != nil {
		return b.targetChannel, nil
	}
	return nil, fmt.Errorf("%w: no channel given and command %q has no target channel",
		interaction.ErrMissingTarget, b.raw.Name)
}

// payload assembles the invocation envelope around options.
func (b *base) payload(options []schema.InvocationOption, files []interaction.File) Invocation {
	command := b.raw
	command.NameLocalized = command.Name
	if options == nil {
		options = []schema.InvocationOption{}
	}
	attachments := make([]schema.AttachmentMetadata, 0, len(files))
	for index, file := range files {
		attachments = append(attachments, file.Metadata(index))
	}
	return Invocation{
		Data: schema.CommandInvocation{
			ApplicationCommand: command,
			Attachments:        attachments,
			ID:                 b.raw.ID,
			Name:               b.raw.Name,
			Options:            options,
			Type:               b.raw.Type,
			Version:            b.raw.Version,
		},
		Files: files,
	}
}

func (b *base) invoke(ctx context.Context, channel interaction.Channel, invocation Invocation) (*interaction.Interaction, error) {
	if b.engine == nil {
		return nil, fmt.Errorf("%w: command %q is not bound to an engine", interaction.ErrInvalidUsage, b.raw.Name)
	}
	return b.engine.Invoke(ctx, interaction.Request{
		Type:          schema.InteractionApplicationCommand,
		Name:          b.raw.Name,
		Data:          invocation.Data,
		Channel:       channel,
		ApplicationID: b.raw.ApplicationID,
		Files:         invocation.Files,
	})
}

// BaseCommand is a command of a type this package does not model. It
// exposes the shared reads but cannot be invoked.
type BaseCommand struct {
	*base
}
