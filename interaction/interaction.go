// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"sync"

	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Interaction is the outcome of an invocation. The exported fields are
// fixed once Invoke returns it.
type Interaction struct {
	ID    snowflake.ID
	Nonce string
	Name  string
	Type  schema.InteractionType
	User  *User

	engine  *Engine
	channel Channel

	mu         sync.Mutex
	successful *bool
	modal      *Modal

	message *Message
}

// Successful reports whether the application acknowledged the
// interaction. Returns ErrUnresolved before the outcome event arrived.
func (i *Interaction) Successful() (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.successful == nil {
		return false, ErrUnresolved
	}
	return *i.successful, nil
}

// Modal returns the modal the application responded with, or nil.
func (i *Interaction) Modal() *Modal {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.modal
}

func (i *Interaction) setSuccessful(successful bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.successful = &successful
}

func (i *Interaction) setModal(modal *Modal) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.modal = modal
}

// Message returns the message the application posted in response,
// found by scanning the engine's message cache for a message whose
// originating interaction is this one. Once found the message is fixed;
// until then every call scans again, since the reply may reach the
// cache after the outcome event.
func (i *Interaction) Message() *Message {
	i.mu.Lock()
	message := i.message
	i.mu.Unlock()
	if message != nil {
		return message
	}

	found := i.findMessage()
	if found == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.message == nil {
		i.message = found
	}
	return i.message
}

func (i *Interaction) findMessage() *Message {
	if i.engine == nil || i.engine.messages == nil || i.ID.IsZero() {
		return nil
	}
	for _, message := range i.engine.messages.Messages() {
		if message != nil && message.InteractionID == i.ID {
			return message
		}
	}
	return nil
}

// Channel returns the channel the interaction was invoked in, falling
// back to the channel of the response message.
func (i *Interaction) Channel() Channel {
	if i.channel != nil {
		return i.channel
	}
	if message := i.Message(); message != nil {
		return message.Channel
	}
	return nil
}

// GuildID returns the guild of the interaction's channel, or zero for
// private channels and unresolvable interactions.
func (i *Interaction) GuildID() snowflake.ID {
	channel := i.Channel()
	if channel == nil {
		return 0
	}
	return channel.GuildID()
}
