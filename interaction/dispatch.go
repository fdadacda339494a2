// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"encoding/json"

	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Event is one named gateway dispatch.
type Event struct {
	Name string
	Data json.RawMessage
}

// Dispatch routes a gateway event to the invocation it belongs to and
// reports whether it was consumed. Unrecognized event names, unknown
// or already-resolved nonces, and undecodable payloads are logged and
// ignored. At most one waiter is resolved per event.
func (e *Engine) Dispatch(event Event) bool {
	switch event.Name {
	case schema.EventInteractionCreate:
		var payload schema.InteractionEvent
		if !e.decode(event, &payload) {
			return false
		}
		return e.bind(payload)

	case schema.EventInteractionSuccess, schema.EventInteractionFailed:
		var payload schema.InteractionEvent
		if !e.decode(event, &payload) {
			return false
		}
		return e.resolve(payload, event.Name == schema.EventInteractionSuccess)

	case schema.EventInteractionModalCreate:
		var payload schema.ModalCreateEvent
		if !e.decode(event, &payload) {
			return false
		}
		return e.attachModal(payload)

	default:
		e.logger.Debug("ignoring event", "event", event.Name)
		return false
	}
}

func (e *Engine) decode(event Event, target any) bool {
	if err := json.Unmarshal(event.Data, target); err != nil {
		e.logger.Warn("undecodable interaction event", "event", event.Name, "error", err)
		return false
	}
	return true
}

// lookupLocked returns the pending entry for nonce. Caller holds e.mu.
func (e *Engine) lookupLocked(event, nonce string) *pendingEntry {
	if nonce == "" {
		e.logger.Debug("ignoring interaction event without nonce", "event", event)
		return nil
	}
	entry := e.pending[nonce]
	if entry == nil {
		e.logger.Debug("ignoring interaction event for unknown nonce", "event", event, "nonce", nonce)
	}
	return entry
}

// interactionLocked returns the entry's interaction, creating it from
// the pending record on first use. Caller holds e.mu.
func (e *Engine) interactionLocked(entry *pendingEntry, id snowflake.ID) *Interaction {
	if entry.interaction == nil {
		entry.interaction = &Interaction{
			ID:      id,
			Nonce:   entry.record.Nonce,
			Name:    entry.record.Name,
			Type:    entry.record.Type,
			User:    e.self,
			engine:  e,
			channel: entry.record.Channel,
		}
	} else if entry.interaction.ID.IsZero() {
		entry.interaction.ID = id
	}
	return entry.interaction
}

func (e *Engine) bind(payload schema.InteractionEvent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := e.lookupLocked(schema.EventInteractionCreate, payload.Nonce)
	if entry == nil {
		return false
	}
	e.interactionLocked(entry, payload.ID)
	e.logger.Debug("interaction created", "nonce", payload.Nonce, "interaction_id", payload.ID)
	return true
}

// resolve delivers the outcome and removes the entry, so a duplicate
// outcome finds no waiter.
func (e *Engine) resolve(payload schema.InteractionEvent, successful bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	name := schema.EventInteractionFailed
	if successful {
		name = schema.EventInteractionSuccess
	}
	entry := e.lookupLocked(name, payload.Nonce)
	if entry == nil {
		return false
	}
	delete(e.pending, payload.Nonce)

	interaction := e.interactionLocked(entry, payload.ID)
	interaction.setSuccessful(successful)
	entry.done <- interaction
	e.logger.Debug("interaction resolved",
		"nonce", payload.Nonce,
		"interaction_id", interaction.ID,
		"successful", successful,
	)
	return true
}

func (e *Engine) attachModal(payload schema.ModalCreateEvent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := e.lookupLocked(schema.EventInteractionModalCreate, payload.Nonce)
	if entry == nil {
		return false
	}
	interaction := e.interactionLocked(entry, payload.ID)
	modal := &Modal{
		ID:          payload.ID,
		Nonce:       payload.Nonce,
		Title:       payload.Title,
		CustomID:    payload.CustomID,
		Application: e.resolveApplication(payload.Application),
		Interaction: interaction,
		engine:      e,
	}
	for _, raw := range payload.Components {
		modal.Components = append(modal.Components, NewComponent(raw, nil))
	}
	interaction.setModal(modal)
	e.logger.Debug("modal attached", "nonce", payload.Nonce, "custom_id", payload.CustomID)
	return true
}
