// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "github.com/bureau-foundation/relaycord/lib/snowflake"

// User is the raw user object embedded in interaction payloads.
type User struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	Discriminator string       `json:"discriminator,omitempty"`
	GlobalName    *string      `json:"global_name,omitempty"`
	Avatar        *string      `json:"avatar,omitempty"`
	Bot           bool         `json:"bot,omitempty"`
}

// Application is the partial application object attached to commands
// and modals.
type Application struct {
	ID          snowflake.ID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Icon        *string      `json:"icon,omitempty"`
	Bot         *User        `json:"bot,omitempty"`
}

// Emoji is a partial emoji as used on buttons and select options.
// Custom emoji carry an ID; unicode emoji only a name.
type Emoji struct {
	ID       snowflake.ID `json:"id,omitempty"`
	Name     string       `json:"name,omitempty"`
	Animated bool         `json:"animated,omitempty"`
}

// MessageInteraction is the reference a message keeps to the
// interaction that produced it.
type MessageInteraction struct {
	ID   snowflake.ID    `json:"id"`
	Type InteractionType `json:"type"`
	Name string          `json:"name,omitempty"`
	User *User           `json:"user,omitempty"`
}

// Message is the subset of a message object this module reads.
type Message struct {
	ID            snowflake.ID        `json:"id"`
	ChannelID     snowflake.ID        `json:"channel_id"`
	GuildID       snowflake.ID        `json:"guild_id,omitempty"`
	Author        *User               `json:"author,omitempty"`
	ApplicationID snowflake.ID        `json:"application_id,omitempty"`
	Flags         int                 `json:"flags,omitempty"`
	Interaction   *MessageInteraction `json:"interaction,omitempty"`
	Components    []Component         `json:"components,omitempty"`
}
