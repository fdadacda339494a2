// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"

	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// CommandInvocation is the data payload sent to invoke an application
// command. TargetID is set only for user and message commands.
type CommandInvocation struct {
	ApplicationCommand ApplicationCommand   `json:"application_command"`
	Attachments        []AttachmentMetadata `json:"attachments"`
	ID                 snowflake.ID         `json:"id"`
	Name               string               `json:"name"`
	Options            []InvocationOption   `json:"options"`
	Type               CommandType          `json:"type"`
	Version            snowflake.ID         `json:"version"`
	TargetID           snowflake.ID         `json:"target_id,omitempty"`
}

// InvocationOption is one argument of a command invocation, or (when
// Type is a subcommand or group) a wrapper whose Options hold the next
// level of the path.
type InvocationOption struct {
	Type    OptionType         `json:"type"`
	Name    string             `json:"name"`
	Value   any                `json:"value,omitempty"`
	Options []InvocationOption `json:"options,omitempty"`
}

// MarshalJSON emits {type, name, options} for subcommand wrappers (with
// an empty list rather than null when the leaf takes no arguments) and
// {type, name, value} for everything else.
func (o InvocationOption) MarshalJSON() ([]byte, error) {
	if o.Type.IsSubCommand() {
		options := o.Options
		if options == nil {
			options = []InvocationOption{}
		}
		return json.Marshal(struct {
			Type    OptionType         `json:"type"`
			Name    string             `json:"name"`
			Options []InvocationOption `json:"options"`
		}{o.Type, o.Name, options})
	}
	return json.Marshal(struct {
		Type  OptionType `json:"type"`
		Name  string     `json:"name"`
		Value any        `json:"value"`
	}{o.Type, o.Name, o.Value})
}

// AttachmentMetadata describes one uploaded file of an invocation. ID
// is the file's index in the upload list, which attachment option
// values refer to.
type AttachmentMetadata struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
}

// ComponentInvocation is the data payload of a button click or select
// menu choice. Values is present only for select menus.
type ComponentInvocation struct {
	ComponentType ComponentType `json:"component_type"`
	CustomID      string        `json:"custom_id"`
	Values        []string      `json:"values,omitempty"`
}

// ModalSubmission is the data payload of a modal submit.
type ModalSubmission struct {
	ID         snowflake.ID       `json:"id"`
	CustomID   string             `json:"custom_id"`
	Components []SubmittedElement `json:"components"`
}

// SubmittedElement is the serialized form of a component inside a
// modal submission: action rows carry Components, text inputs carry
// CustomID and Value.
type SubmittedElement struct {
	Type       ComponentType      `json:"type"`
	Components []SubmittedElement `json:"components,omitempty"`
	CustomID   string             `json:"custom_id,omitempty"`
	Value      *string            `json:"value,omitempty"`
}
