// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Option describes one parameter of a slash command or subcommand.
type Option struct {
	Name         string
	Description  string
	Type         schema.OptionType
	Required     bool
	MinValue     *float64
	MaxValue     *float64
	Choices      []Choice
	ChannelTypes []schema.ChannelType
	Autocomplete bool
}

// Choice is a named constant value. Value is a string, int64 or
// float64 according to the owning option's type.
type Choice struct {
	Name  string
	Value any
}

func newOption(raw schema.CommandOption) Option {
	option := Option{
		Name:         raw.Name,
		Description:  raw.Description,
		Type:         raw.Type,
		Required:     raw.Required,
		MinValue:     raw.MinValue,
		MaxValue:     raw.MaxValue,
		ChannelTypes: raw.ChannelTypes,
		Autocomplete: raw.Autocomplete,
	}
	for _, choice := range raw.Choices {
		option.Choices = append(option.Choices, Choice{
			Name:  choice.Name,
			Value: choiceValue(choice.Value, raw.Type),
		})
	}
	return option
}

// choiceValue decodes a raw choice value as the option's type. A value
// that does not decode as that type is kept as its literal text.
func choiceValue(raw json.RawMessage, optionType schema.OptionType) any {
	switch optionType {
	case schema.OptionInteger:
		var integer int64
		if err := json.Unmarshal(raw, &integer); err == nil {
			return integer
		}
		var number float64
		if err := json.Unmarshal(raw, &number); err == nil {
			if integer, err := floatInteger(number); err == nil {
				return integer
			}
		}
	case schema.OptionNumber:
		var number float64
		if err := json.Unmarshal(raw, &number); err == nil {
			return number
		}
	default:
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return text
		}
	}
	return string(raw)
}

// choiceFor returns the value of the choice whose name is exactly
// value.
func (o Option) choiceFor(value any) (any, bool) {
	name, ok := value.(string)
	if !ok {
		return nil, false
	}
	for _, choice := range o.Choices {
		if choice.Name == name {
			return choice.Value, true
		}
	}
	return nil, false
}

// coerce converts an argument to the wire value for this option. files
// collects attachments; their index in files becomes the value.
func (o Option) coerce(value any, files *[]interaction.File) (any, error) {
	switch o.Type {
	case schema.OptionUser, schema.OptionChannel, schema.OptionRole, schema.OptionMentionable:
		id, err := mentionID(value)
		if err != nil {
			return nil, o.invalid(value, err)
		}
		return id.String(), nil

	case schema.OptionBoolean:
		switch value := value.(type) {
		case bool:
			return value, nil
		case string:
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return nil, o.invalid(value, err)
			}
			return parsed, nil
		}
		return nil, o.invalid(value, fmt.Errorf("want bool, got %T", value))

	case schema.OptionAttachment:
		var file interaction.File
		switch value := value.(type) {
		case interaction.File:
			file = value
		case *interaction.File:
			file = *value
		default:
			return nil, o.invalid(value, fmt.Errorf("want interaction.File, got %T", value))
		}
		*files = append(*files, file)
		return len(*files) - 1, nil
	}

	if substituted, ok := o.choiceFor(value); ok {
		value = substituted
	}

	switch o.Type {
	case schema.OptionString:
		if text, ok := value.(string); ok {
			return text, nil
		}
		return fmt.Sprint(value), nil
	case schema.OptionInteger:
		integer, err := toInteger(value)
		if err != nil {
			return nil, o.invalid(value, err)
		}
		return integer, nil
	case schema.OptionNumber:
		number, err := toNumber(value)
		if err != nil {
			return nil, o.invalid(value, err)
		}
		return number, nil
	default:
		return value, nil
	}
}

func (o Option) invalid(value any, err error) error {
	return fmt.Errorf("%w: option %q (%s) value %v: %v", ErrInvalidArgument, o.Name, o.Type, value, err)
}

func mentionID(value any) (snowflake.ID, error) {
	switch value := value.(type) {
	case snowflake.Entity:
		id := value.SnowflakeID()
		if id.IsZero() {
			return 0, fmt.Errorf("%T has no ID", value)
		}
		return id, nil
	case string:
		return snowflake.Parse(value)
	case int64:
		return signedID(value)
	case int:
		return signedID(int64(value))
	case uint64:
		return snowflake.ID(value), nil
	}
	return 0, fmt.Errorf("want an entity or ID, got %T", value)
}

func signedID(value int64) (snowflake.ID, error) {
	if value < 0 {
		return 0, fmt.Errorf("negative ID %d", value)
	}
	return snowflake.ID(value), nil
}

func toInteger(value any) (int64, error) {
	switch value := value.(type) {
	case int:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case int64:
		return value, nil
	case uint:
		if uint64(value) > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", value)
		}
		return int64(value), nil
	case uint32:
		return int64(value), nil
	case uint64:
		if value > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", value)
		}
		return int64(value), nil
	case float64:
		return floatInteger(value)
	case string:
		return strconv.ParseInt(value, 10, 64)
	}
	return 0, fmt.Errorf("want an integer, got %T", value)
}

// floatInteger converts an integral float that fits in int64. The
// upper bound is exclusive because float64(math.MaxInt64) is 2^63.
func floatInteger(value float64) (int64, error) {
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("%v is not integral", value)
	}
	if value < math.MinInt64 || value >= math.MaxInt64 {
		return 0, fmt.Errorf("%v overflows int64", value)
	}
	return int64(value), nil
}

func toNumber(value any) (float64, error) {
	switch value := value.(type) {
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case string:
		return strconv.ParseFloat(value, 64)
	}
	integer, err := toInteger(value)
	if err != nil {
		return 0, fmt.Errorf("want a number, got %T", value)
	}
	return float64(integer), nil
}
