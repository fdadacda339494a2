// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/bureau-foundation/relaycord/lib/schema"
)

// Component is a message or modal UI element. The set of
// implementations is closed: *ActionRow, *Button, *SelectMenu,
// *TextInput and *UnknownComponent.
type Component interface {
	Type() schema.ComponentType

	// Message returns the owning message, or nil for components of a
	// modal or components that were never sent.
	Message() *Message

	// element serializes the component for a modal submission.
	element() schema.SubmittedElement
}

// NewComponent builds the variant selected by raw.Type. Unrecognized
// types yield an *UnknownComponent; construction never fails.
func NewComponent(raw schema.Component, message *Message) Component {
	switch raw.Type {
	case schema.ComponentActionRow:
		row := &ActionRow{message: message}
		for _, child := range raw.Components {
			row.Children = append(row.Children, NewComponent(child, message))
		}
		return row

	case schema.ComponentButton:
		return &Button{
			Style:    schema.ButtonStyle(raw.Style),
			CustomID: raw.CustomID,
			URL:      raw.URL,
			Label:    raw.Label,
			Disabled: raw.Disabled,
			Emoji:    raw.Emoji,
			message:  message,
		}

	case schema.ComponentSelectMenu:
		menu := &SelectMenu{
			CustomID:    raw.CustomID,
			Placeholder: raw.Placeholder,
			MinValues:   intOrDefault(raw.MinValues, 1),
			MaxValues:   intOrDefault(raw.MaxValues, 1),
			Disabled:    raw.Disabled,
			Hash:        raw.Hash,
			message:     message,
		}
		for _, option := range raw.Options {
			menu.Options = append(menu.Options, SelectOption{
				Label:       option.Label,
				Value:       option.Value,
				Description: option.Description,
				Emoji:       option.Emoji,
				Default:     option.Default,
			})
		}
		return menu

	case schema.ComponentTextInput:
		input := &TextInput{
			Style:       schema.TextStyle(raw.Style),
			Label:       raw.Label,
			CustomID:    raw.CustomID,
			Placeholder: raw.Placeholder,
			Required:    raw.Required == nil || *raw.Required,
			MinLength:   raw.MinLength,
			MaxLength:   raw.MaxLength,
			message:     message,
		}
		if raw.Value != nil {
			value := *raw.Value
			input.Default = &value
			input.answer = &value
		}
		return input

	default:
		return &UnknownComponent{ComponentType: raw.Type, message: message}
	}
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

// ActionRow lays out up to five child components.
type ActionRow struct {
	Children []Component

	message *Message
}

func (r *ActionRow) Type() schema.ComponentType { return schema.ComponentActionRow }
func (r *ActionRow) Message() *Message          { return r.message }

func (r *ActionRow) element() schema.SubmittedElement {
	children := make([]schema.SubmittedElement, 0, len(r.Children))
	for _, child := range r.Children {
		children = append(children, child.element())
	}
	return schema.SubmittedElement{Type: schema.ComponentActionRow, Components: children}
}

// Button is a clickable component. A button has either a CustomID
// (clicking starts an interaction) or a URL (clicking just yields the
// link).
type Button struct {
	Style    schema.ButtonStyle
	CustomID string
	URL      string
	Label    string
	Disabled bool
	Emoji    *schema.Emoji

	message *Message
}

func (b *Button) Type() schema.ComponentType { return schema.ComponentButton }
func (b *Button) Message() *Message          { return b.message }

func (b *Button) element() schema.SubmittedElement {
	return schema.SubmittedElement{Type: schema.ComponentButton, CustomID: b.CustomID}
}

// ClickResult is the outcome of Button.Click: URL for link buttons,
// Interaction for everything else.
type ClickResult struct {
	URL         string
	Interaction *Interaction
}

// Click presses the button. Link buttons return their URL without any
// network activity.
func (b *Button) Click(ctx context.Context) (ClickResult, error) {
	if b.URL != "" {
		return ClickResult{URL: b.URL}, nil
	}
	if b.CustomID == "" {
		return ClickResult{}, fmt.Errorf("%w: button has neither a url nor a custom_id", ErrInvalidUsage)
	}
	interaction, err := invokeComponent(ctx, b.message, schema.ComponentInvocation{
		ComponentType: schema.ComponentButton,
		CustomID:      b.CustomID,
	})
	if err != nil {
		return ClickResult{}, err
	}
	return ClickResult{Interaction: interaction}, nil
}

// SelectOption is one choice of a SelectMenu.
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Emoji       *schema.Emoji
	Default     bool
}

// SelectMenu is a dropdown. MinValues and MaxValues default to 1.
type SelectMenu struct {
	CustomID    string
	Placeholder string
	MinValues   int
	MaxValues   int
	Options     []SelectOption
	Disabled    bool
	Hash        string

	message *Message
}

func (s *SelectMenu) Type() schema.ComponentType { return schema.ComponentSelectMenu }
func (s *SelectMenu) Message() *Message          { return s.message }

func (s *SelectMenu) element() schema.SubmittedElement {
	return schema.SubmittedElement{Type: schema.ComponentSelectMenu, CustomID: s.CustomID}
}

// Choose submits the given options. The count is not checked against
// MinValues/MaxValues; staying within them is the caller's job.
func (s *SelectMenu) Choose(ctx context.Context, options ...SelectOption) (*Interaction, error) {
	values := make([]string, 0, len(options))
	for _, option := range options {
		values = append(values, option.Value)
	}
	return invokeComponent(ctx, s.message, schema.ComponentInvocation{
		ComponentType: schema.ComponentSelectMenu,
		CustomID:      s.CustomID,
		Values:        values,
	})
}

func invokeComponent(ctx context.Context, message *Message, data schema.ComponentInvocation) (*Interaction, error) {
	if message == nil || message.engine == nil {
		return nil, fmt.Errorf("%w: component %q has no owning message", ErrMissingTarget, data.CustomID)
	}
	return message.engine.Invoke(ctx, Request{
		Type:          schema.InteractionComponent,
		Data:          data,
		Channel:       message.Channel,
		Message:       message,
		ApplicationID: message.ApplicationID,
	})
}

// TextInput is a modal form field. Its answer starts as Default and is
// replaced with Answer or Clear; the owning modal submits it.
type TextInput struct {
	Style       schema.TextStyle
	Label       string
	CustomID    string
	Placeholder string
	Default     *string
	Required    bool
	MinLength   *int
	MaxLength   *int

	message *Message
	answer  *string
}

func (t *TextInput) Type() schema.ComponentType { return schema.ComponentTextInput }
func (t *TextInput) Message() *Message          { return t.message }

func (t *TextInput) element() schema.SubmittedElement {
	return schema.SubmittedElement{Type: schema.ComponentTextInput, CustomID: t.CustomID, Value: t.answer}
}

// Value returns the current answer and whether one is set.
func (t *TextInput) Value() (string, bool) {
	if t.answer == nil {
		return "", false
	}
	return *t.answer, true
}

// Answer sets the answer. Returns a *ValidationError, leaving the
// previous answer in place, when the length in code points falls
// outside [MinLength, MaxLength].
func (t *TextInput) Answer(value string) error {
	return t.setAnswer(&value)
}

// Clear unsets the answer. A required input with a positive
// MinLength cannot be cleared.
func (t *TextInput) Clear() error {
	return t.setAnswer(nil)
}

func (t *TextInput) setAnswer(value *string) error {
	if t.Required || value != nil {
		length := 0
		if value != nil {
			length = utf8.RuneCountInString(*value)
		}
		if (t.MinLength != nil && length < *t.MinLength) || (t.MaxLength != nil && length > *t.MaxLength) {
			return &ValidationError{
				CustomID:  t.CustomID,
				Length:    length,
				MinLength: t.MinLength,
				MaxLength: t.MaxLength,
			}
		}
	}
	t.answer = value
	return nil
}

// UnknownComponent stands in for component types this package does not
// model.
type UnknownComponent struct {
	ComponentType schema.ComponentType

	message *Message
}

func (u *UnknownComponent) Type() schema.ComponentType { return u.ComponentType }
func (u *UnknownComponent) Message() *Message          { return u.message }

func (u *UnknownComponent) element() schema.SubmittedElement {
	return schema.SubmittedElement{Type: u.ComponentType}
}
