// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// ApplicationCommand is a command as returned by the application
// command index. Options holds both parameters and nested
// subcommands/groups, distinguished by their option type.
type ApplicationCommand struct {
	ID            snowflake.ID    `json:"id"`
	Type          CommandType     `json:"type"`
	ApplicationID snowflake.ID    `json:"application_id"`
	Version       snowflake.ID    `json:"version"`
	Name          string          `json:"name"`
	NameLocalized string          `json:"name_localized,omitempty"`
	Description   string          `json:"description"`
	Options       []CommandOption `json:"options,omitempty"`

	// DefaultPermission is absent on newer payloads; nil means true.
	DefaultPermission *bool `json:"default_permission,omitempty"`

	// DMPermission is nil when the server omits the field or sends
	// null, which both mean the command is usable in DMs.
	DMPermission *bool `json:"dm_permission,omitempty"`

	// DefaultMemberPermissions is a decimal permission bit set, or nil
	// when the command has no default restriction.
	DefaultMemberPermissions *string `json:"default_member_permissions,omitempty"`

	// Application is embedded only when the index was requested with
	// application data.
	Application *Application `json:"application,omitempty"`

	// Raw is the object as decoded. Fields not modelled above survive
	// re-encoding through it.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the modelled fields and keeps the full object
// in Raw.
func (c *ApplicationCommand) UnmarshalJSON(data []byte) error {
	type plain ApplicationCommand
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = ApplicationCommand(decoded)
	c.Raw = keepRaw(data)
	return nil
}

// MarshalJSON emits Raw with the modelled fields written over it, so a
// decoded command is sent back with every field the server gave it.
func (c ApplicationCommand) MarshalJSON() ([]byte, error) {
	type plain ApplicationCommand
	return overlayRaw(c.Raw, plain(c))
}

// CommandOption is one entry of a command's options list: either a
// parameter or (for SubCommand/SubCommandGroup types) a nested command
// whose own Options continue the tree.
type CommandOption struct {
	Type         OptionType      `json:"type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Required     bool            `json:"required,omitempty"`
	Choices      []OptionChoice  `json:"choices,omitempty"`
	Options      []CommandOption `json:"options,omitempty"`
	ChannelTypes []ChannelType   `json:"channel_types,omitempty"`
	MinValue     *float64        `json:"min_value,omitempty"`
	MaxValue     *float64        `json:"max_value,omitempty"`
	Autocomplete bool            `json:"autocomplete,omitempty"`

	// Raw is the object as decoded; see ApplicationCommand.Raw.
	Raw json.RawMessage `json:"-"`
}

func (o *CommandOption) UnmarshalJSON(data []byte) error {
	type plain CommandOption
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*o = CommandOption(decoded)
	o.Raw = keepRaw(data)
	return nil
}

func (o CommandOption) MarshalJSON() ([]byte, error) {
	type plain CommandOption
	return overlayRaw(o.Raw, plain(o))
}

// OptionChoice is a named constant value. Value is kept raw because its
// JSON type depends on the owning option's type.
type OptionChoice struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// CommandIndex is the response shape of an application command index
// search: commands plus the applications that own them.
type CommandIndex struct {
	ApplicationCommands []ApplicationCommand `json:"application_commands"`
	Applications        []Application        `json:"applications,omitempty"`
}

// keepRaw copies data unless it is JSON null.
func keepRaw(data []byte) json.RawMessage {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	return bytes.Clone(data)
}

// overlayRaw encodes typed and writes its members over the members of
// raw. Members raw has and typed omits are kept.
func overlayRaw(raw json.RawMessage, typed any) ([]byte, error) {
	encoded, err := json.Marshal(typed)
	if err != nil || len(raw) == 0 {
		return encoded, err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("decoding raw object: %w", err)
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &overlay); err != nil {
		return nil, err
	}
	if members == nil {
		members = make(map[string]json.RawMessage, len(overlay))
	}
	maps.Copy(members, overlay)
	return json.Marshal(members)
}
