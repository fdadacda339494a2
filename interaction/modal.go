// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Modal is a form issued by an application in response to an
// interaction. Fill its text inputs with [TextInput.Answer], then
// call Submit.
type Modal struct {
	// ID equals the triggering interaction's ID.
	ID          snowflake.ID
	Nonce       string
	Title       string
	CustomID    string
	Components  []Component
	Application *Application
	Interaction *Interaction

	engine *Engine
}

// TextInputs returns every text input in the modal, in layout order.
func (m *Modal) TextInputs() []*TextInput {
	var inputs []*TextInput
	var walk func([]Component)
	walk = func(components []Component) {
		for _, component := range components {
			switch component := component.(type) {
			case *ActionRow:
				walk(component.Children)
			case *TextInput:
				inputs = append(inputs, component)
			}
		}
	}
	walk(m.Components)
	return inputs
}

// Submission returns the payload Submit sends.
func (m *Modal) Submission() schema.ModalSubmission {
	elements := make([]schema.SubmittedElement, 0, len(m.Components))
	for _, component := range m.Components {
		elements = append(elements, component.element())
	}
	return schema.ModalSubmission{
		ID:         m.ID,
		CustomID:   m.CustomID,
		Components: elements,
	}
}

// Submit sends the current answers to the application, in the channel
// of the triggering interaction.
func (m *Modal) Submit(ctx context.Context) (*Interaction, error) {
	if m.engine == nil {
		return nil, fmt.Errorf("%w: modal %q is not bound to an engine", ErrMissingTarget, m.CustomID)
	}
	var channel Channel
	if m.Interaction != nil {
		channel = m.Interaction.Channel()
	}
	if channel == nil {
		return nil, fmt.Errorf("%w: no channel for modal %q", ErrMissingTarget, m.CustomID)
	}
	var applicationID snowflake.ID
	if m.Application != nil {
		applicationID = m.Application.ID
	}
	return m.engine.Invoke(ctx, Request{
		Type:          schema.InteractionModalSubmit,
		Data:          m.Submission(),
		Channel:       channel,
		ApplicationID: applicationID,
	})
}
