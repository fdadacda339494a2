// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"io"
	"strconv"

	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// User is the actor of an interaction or the author of a message.
type User struct {
	ID            snowflake.ID
	Username      string
	Discriminator string
	DisplayName   string
	Bot           bool
}

// SnowflakeID implements snowflake.Entity so a User can be passed as a
// mention argument or a user-command target. A nil User has the zero
// ID.
func (u *User) SnowflakeID() snowflake.ID {
	if u == nil {
		return 0
	}
	return u.ID
}

func (u *User) String() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// Application owns commands and issues modals.
type Application struct {
	ID          snowflake.ID
	Name        string
	Description string
	Bot         *User
}

// SnowflakeID implements snowflake.Entity.
func (a *Application) SnowflakeID() snowflake.ID {
	if a == nil {
		return 0
	}
	return a.ID
}

// DefaultResolveUser converts a raw user payload without consulting
// any cache.
func DefaultResolveUser(raw schema.User) *User {
	user := &User{
		ID:            raw.ID,
		Username:      raw.Username,
		Discriminator: raw.Discriminator,
		Bot:           raw.Bot,
	}
	if raw.GlobalName != nil {
		user.DisplayName = *raw.GlobalName
	}
	return user
}

// DefaultResolveApplication converts a raw application payload.
func DefaultResolveApplication(raw schema.Application) *Application {
	application := &Application{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
	}
	if raw.Bot != nil {
		application.Bot = DefaultResolveUser(*raw.Bot)
	}
	return application
}

// Channel is the destination of an invocation. Implementations are
// supplied by the caller's object cache; [ChannelRef] covers the case
// where only the IDs are known.
type Channel interface {
	ChannelID() snowflake.ID
	// GuildID returns zero for private channels.
	GuildID() snowflake.ID
}

// ChannelRef is a Channel known only by its IDs.
type ChannelRef struct {
	ID    snowflake.ID
	Guild snowflake.ID
}

func (c ChannelRef) ChannelID() snowflake.ID   { return c.ID }
func (c ChannelRef) GuildID() snowflake.ID     { return c.Guild }
func (c ChannelRef) SnowflakeID() snowflake.ID { return c.ID }

// File is an attachment uploaded alongside a command invocation.
type File struct {
	Name        string
	Description string
	Content     io.Reader
}

// Metadata returns the attachment descriptor for the file at index in
// the upload list.
func (f File) Metadata(index int) schema.AttachmentMetadata {
	return schema.AttachmentMetadata{
		ID:          strconv.Itoa(index),
		Filename:    f.Name,
		Description: f.Description,
	}
}
