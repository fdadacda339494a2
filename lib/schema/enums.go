// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// InteractionType identifies the kind of interaction being created.
type InteractionType int

const (
	InteractionPing               InteractionType = 1
	InteractionApplicationCommand InteractionType = 2
	InteractionComponent          InteractionType = 3
	InteractionAutocomplete       InteractionType = 4
	InteractionModalSubmit        InteractionType = 5
	// InteractionModal is the client-side type recorded for a
	// server-issued modal; it is never sent.
	InteractionModal InteractionType = 9
)

func (t InteractionType) String() string {
	switch t {
	case InteractionPing:
		return "ping"
	case InteractionApplicationCommand:
		return "application_command"
	case InteractionComponent:
		return "component"
	case InteractionAutocomplete:
		return "autocomplete"
	case InteractionModalSubmit:
		return "modal_submit"
	case InteractionModal:
		return "modal"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// CommandType distinguishes slash commands from context-menu commands.
type CommandType int

const (
	CommandChatInput CommandType = 1
	CommandUser      CommandType = 2
	CommandMessage   CommandType = 3
)

func (t CommandType) String() string {
	switch t {
	case CommandChatInput:
		return "chat_input"
	case CommandUser:
		return "user"
	case CommandMessage:
		return "message"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseCommandType parses the String form of a CommandType.
func ParseCommandType(name string) (CommandType, error) {
	switch name {
	case "chat_input", "slash":
		return CommandChatInput, nil
	case "user":
		return CommandUser, nil
	case "message":
		return CommandMessage, nil
	default:
		return 0, fmt.Errorf("unknown command type: %q", name)
	}
}

// OptionType is the declared type of a command option. SubCommand and
// SubCommandGroup options are nested commands rather than parameters.
type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
	OptionAttachment      OptionType = 11
)

func (t OptionType) String() string {
	switch t {
	case OptionSubCommand:
		return "sub_command"
	case OptionSubCommandGroup:
		return "sub_command_group"
	case OptionString:
		return "string"
	case OptionInteger:
		return "integer"
	case OptionBoolean:
		return "boolean"
	case OptionUser:
		return "user"
	case OptionChannel:
		return "channel"
	case OptionRole:
		return "role"
	case OptionMentionable:
		return "mentionable"
	case OptionNumber:
		return "number"
	case OptionAttachment:
		return "attachment"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// IsSubCommand reports whether options of this type declare nested
// commands.
func (t OptionType) IsSubCommand() bool {
	return t == OptionSubCommand || t == OptionSubCommandGroup
}

// IsMention reports whether values of this type reference an entity by
// ID.
func (t OptionType) IsMention() bool {
	switch t {
	case OptionUser, OptionChannel, OptionRole, OptionMentionable:
		return true
	default:
		return false
	}
}

// ComponentType is the discriminator of a message component.
type ComponentType int

const (
	ComponentActionRow  ComponentType = 1
	ComponentButton     ComponentType = 2
	ComponentSelectMenu ComponentType = 3
	ComponentTextInput  ComponentType = 4
)

func (t ComponentType) String() string {
	switch t {
	case ComponentActionRow:
		return "action_row"
	case ComponentButton:
		return "button"
	case ComponentSelectMenu:
		return "select_menu"
	case ComponentTextInput:
		return "text_input"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ButtonStyle selects a button's appearance. Link buttons carry a URL
// instead of a custom ID.
type ButtonStyle int

const (
	ButtonPrimary   ButtonStyle = 1
	ButtonSecondary ButtonStyle = 2
	ButtonSuccess   ButtonStyle = 3
	ButtonDanger    ButtonStyle = 4
	ButtonLink      ButtonStyle = 5
)

// TextStyle selects single-line or paragraph text inputs.
type TextStyle int

const (
	TextShort     TextStyle = 1
	TextParagraph TextStyle = 2
)

// ChannelType restricts which channels a channel option accepts.
type ChannelType int

const (
	ChannelGuildText          ChannelType = 0
	ChannelDM                 ChannelType = 1
	ChannelGuildVoice         ChannelType = 2
	ChannelGroupDM            ChannelType = 3
	ChannelGuildCategory      ChannelType = 4
	ChannelGuildNews          ChannelType = 5
	ChannelGuildNewsThread    ChannelType = 10
	ChannelGuildPublicThread  ChannelType = 11
	ChannelGuildPrivateThread ChannelType = 12
	ChannelGuildStageVoice    ChannelType = 13
	ChannelGuildDirectory     ChannelType = 14
	ChannelGuildForum         ChannelType = 15
)
