// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// UserCommand is a context-menu command that acts on a user.
type UserCommand struct {
	*base

	targetUser snowflake.Entity
}

// TargetUser returns the bound target, or nil.
func (u *UserCommand) TargetUser() snowflake.Entity { return u.targetUser }

// SetTargetUser binds the user Invoke acts on when none is given.
func (u *UserCommand) SetTargetUser(user snowflake.Entity) { u.targetUser = user }

// Build returns the payload Invoke would send for target, or the bound
// target when target is nil or has no ID.
func (u *UserCommand) Build(target snowflake.Entity) (Invocation, error) {
	id := entityID(target)
	if id.IsZero() {
		id = entityID(u.targetUser)
	}
	if id.IsZero() {
		return Invocation{}, fmt.Errorf("%w: user command %q has no target user", interaction.ErrMissingTarget, u.Name())
	}
	invocation := u.payload(nil, nil)
	invocation.Data.TargetID = id
	return invocation, nil
}

// Invoke runs the command against target in channel. Either may be nil
// to use the bound target user and target channel.
func (u *UserCommand) Invoke(ctx context.Context, target snowflake.Entity, channel interaction.Channel) (*interaction.Interaction, error) {
	channel, err := u.resolveChannel(channel)
	if err != nil {
		return nil, err
	}
	invocation, err := u.Build(target)
	if err != nil {
		return nil, err
	}
	return u.invoke(ctx, channel, invocation)
}

// MessageCommand is a context-menu command that acts on a message.
type MessageCommand struct {
	*base

	targetMessage *interaction.Message
}

// TargetMessage returns the bound target, or nil.
func (m *MessageCommand) TargetMessage() *interaction.Message { return m.targetMessage }

// SetTargetMessage binds the message Invoke acts on when none is given.
func (m *MessageCommand) SetTargetMessage(message *interaction.Message) { m.targetMessage = message }

// Build returns the payload Invoke would send for target, or the bound
// target when target is nil or has no ID.
func (m *MessageCommand) Build(target *interaction.Message) (Invocation, error) {
	if target.SnowflakeID().IsZero() {
		target = m.targetMessage
	}
	if target.SnowflakeID().IsZero() {
		return Invocation{}, fmt.Errorf("%w: message command %q has no target message", interaction.ErrMissingTarget, m.Name())
	}
	invocation := m.payload(nil, nil)
	invocation.Data.TargetID = target.ID
	return invocation, nil
}

// Invoke runs the command against target. The channel is the explicit
// one, then the command's target channel, then the target message's
// channel.
func (m *MessageCommand) Invoke(ctx context.Context, target *interaction.Message, channel interaction.Channel) (*interaction.Interaction, error) {
	if target == nil {
		target = m.targetMessage
	}
	if channel == nil && m.TargetChannel() == nil && target != nil {
		channel = target.Channel
	}
	channel, err := m.resolveChannel(channel)
	if err != nil {
		return nil, err
	}
	invocation, err := m.Build(target)
	if err != nil {
		return nil, err
	}
	return m.invoke(ctx, channel, invocation)
}

// entityID is the entity's ID, or zero for a nil entity. Typed nils
// are caught by the nil-safe SnowflakeID methods.
func entityID(entity snowflake.Entity) snowflake.ID {
	if entity == nil {
		return 0
	}
	return entity.SnowflakeID()
}
