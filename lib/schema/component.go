// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Component is the raw component payload. It is the union of every
// variant's fields; Type selects which are meaningful.
type Component struct {
	Type ComponentType `json:"type"`

	// Action rows.
	Components []Component `json:"components,omitempty"`

	// Buttons, select menus and text inputs. Style is a ButtonStyle or
	// a TextStyle depending on Type.
	CustomID string `json:"custom_id,omitempty"`
	Style    int    `json:"style,omitempty"`
	Label    string `json:"label,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`

	// Buttons.
	URL   string `json:"url,omitempty"`
	Emoji *Emoji `json:"emoji,omitempty"`

	// Select menus. MinValues/MaxValues are nil when the server relies
	// on the default of 1.
	Placeholder string         `json:"placeholder,omitempty"`
	MinValues   *int           `json:"min_values,omitempty"`
	MaxValues   *int           `json:"max_values,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
	Hash        string         `json:"hash,omitempty"`

	// Text inputs. Required is nil when omitted, which means true.
	Value     *string `json:"value,omitempty"`
	Required  *bool   `json:"required,omitempty"`
	MinLength *int    `json:"min_length,omitempty"`
	MaxLength *int    `json:"max_length,omitempty"`
}

// SelectOption is one choice of a select menu.
type SelectOption struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Emoji       *Emoji `json:"emoji,omitempty"`
	Default     bool   `json:"default,omitempty"`
}
