// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"sync"

	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Message is a remote message that may carry components. Messages
// built with [Engine.NewMessage] can have their components invoked.
type Message struct {
	ID      snowflake.ID
	Channel Channel
	Author  *User

	// ApplicationID is the application that owns the message's
	// components: the message's application, else its author.
	ApplicationID snowflake.ID
	Flags         int

	// InteractionID is the interaction that produced this message, or
	// zero.
	InteractionID snowflake.ID
	Components    []Component

	engine *Engine
}

// SnowflakeID implements snowflake.Entity so a Message can be a
// message-command target.
func (m *Message) SnowflakeID() snowflake.ID {
	if m == nil {
		return 0
	}
	return m.ID
}

// NewMessage builds a Message bound to this engine. When channel is
// nil it is derived from the payload's channel and guild IDs.
func (e *Engine) NewMessage(raw schema.Message, channel Channel) *Message {
	if channel == nil {
		channel = ChannelRef{ID: raw.ChannelID, Guild: raw.GuildID}
	}
	message := &Message{
		ID:            raw.ID,
		Channel:       channel,
		ApplicationID: raw.ApplicationID,
		Flags:         raw.Flags,
		engine:        e,
	}
	if raw.Author != nil {
		message.Author = e.resolveUser(*raw.Author)
		if message.ApplicationID.IsZero() {
			message.ApplicationID = raw.Author.ID
		}
	}
	if raw.Interaction != nil {
		message.InteractionID = raw.Interaction.ID
	}
	for _, component := range raw.Components {
		message.Components = append(message.Components, NewComponent(component, message))
	}
	return message
}

// MessageStore is a bounded, concurrency-safe MessageCache that keeps
// the most recently added messages.
type MessageStore struct {
	limit int

	mu       sync.Mutex
	messages []*Message
}

// NewMessageStore returns a store that retains at most limit messages.
// A limit <= 0 means unbounded.
func NewMessageStore(limit int) *MessageStore {
	return &MessageStore{limit: limit}
}

// Add appends message, evicting the oldest when over the limit.
func (s *MessageStore) Add(message *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	if s.limit > 0 && len(s.messages) > s.limit {
		s.messages = append(s.messages[:0:0], s.messages[len(s.messages)-s.limit:]...)
	}
}

// Messages returns a snapshot, oldest first.
func (s *MessageStore) Messages() []*Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Message(nil), s.messages...)
}
