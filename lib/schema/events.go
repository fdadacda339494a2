// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Dispatch event names for the interaction lifecycle.
const (
	// EventInteractionCreate acknowledges that the server accepted an
	// invocation and assigned it an interaction ID.
	EventInteractionCreate = "INTERACTION_CREATE"

	// EventInteractionSuccess reports that the application responded.
	EventInteractionSuccess = "INTERACTION_SUCCESS"

	// EventInteractionFailed reports that the application did not
	// respond or rejected the interaction.
	EventInteractionFailed = "INTERACTION_FAILED"

	// EventInteractionModalCreate delivers a modal issued in response
	// to an invocation.
	EventInteractionModalCreate = "INTERACTION_MODAL_CREATE"
)

// InteractionEvent is the payload of INTERACTION_CREATE,
// INTERACTION_SUCCESS and INTERACTION_FAILED. Nonce echoes the value
// sent with the invocation; Nonce may be empty for interactions this
// client did not start. A nonce echoed as a JSON number decodes to its
// decimal text.
type InteractionEvent struct {
	ID    snowflake.ID `json:"id"`
	Nonce string       `json:"nonce,omitempty"`
}

func (e *InteractionEvent) UnmarshalJSON(data []byte) error {
	type plain InteractionEvent
	var decoded struct {
		plain
		Nonce json.RawMessage `json:"nonce"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nonce, err := nonceText(decoded.Nonce)
	if err != nil {
		return err
	}
	*e = InteractionEvent(decoded.plain)
	e.Nonce = nonce
	return nil
}

// ModalCreateEvent is the payload of INTERACTION_MODAL_CREATE. ID is
// the triggering interaction's ID.
type ModalCreateEvent struct {
	ID          snowflake.ID `json:"id"`
	Nonce       string       `json:"nonce,omitempty"`
	Title       string       `json:"title"`
	CustomID    string       `json:"custom_id"`
	Components  []Component  `json:"components"`
	Application Application  `json:"application"`
}

func (e *ModalCreateEvent) UnmarshalJSON(data []byte) error {
	type plain ModalCreateEvent
	var decoded struct {
		plain
		Nonce json.RawMessage `json:"nonce"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nonce, err := nonceText(decoded.Nonce)
	if err != nil {
		return err
	}
	*e = ModalCreateEvent(decoded.plain)
	e.Nonce = nonce
	return nil
}

// nonceText decodes a nonce sent as a JSON string or number. Absent and
// null nonces are empty.
func nonceText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", fmt.Errorf("nonce: %w", err)
		}
		return text, nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("nonce must be a string or number, got %s", raw)
	}
	return number.String(), nil
}
