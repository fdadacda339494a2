// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snowflake

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Epoch is the protocol epoch: the first millisecond of 2015 (UTC).
// All ID timestamps are offsets from this instant.
const Epoch int64 = 1420070400000

// timestampShift is the number of low bits below the timestamp.
const timestampShift = 22

// ID is a protocol identifier. The zero value means "absent"; use
// IsZero to check.
type ID uint64

// Parse parses a decimal ID string. Leading/trailing whitespace is
// not accepted.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty snowflake")
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", raw, err)
	}
	return ID(value), nil
}

// MustParse is like Parse but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("snowflake.MustParse(%q): %v", raw, err))
	}
	return id
}

// FromTime returns the smallest ID whose timestamp is t. Useful as a
// pagination bound.
func FromTime(t time.Time) ID {
	milliseconds := t.UnixMilli() - Epoch
	if milliseconds < 0 {
		return 0
	}
	return ID(uint64(milliseconds) << timestampShift)
}

// String returns the decimal form used on the wire.
func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool { return id == 0 }

// Time returns the creation time encoded in the ID.
func (id ID) Time() time.Time {
	return time.UnixMilli(int64(uint64(id)>>timestampShift) + Epoch).UTC()
}

// MarshalText implements encoding.TextMarshaler. The zero ID encodes
// as "0" rather than an empty string so the JSON field stays a valid
// decimal.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces the zero ID.
func (id *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = 0
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// UnmarshalJSON accepts both the string form ("123") and a bare JSON
// number (123). null leaves the ID unchanged.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return id.UnmarshalText(data[1 : len(data)-1])
	}
	return id.UnmarshalText(data)
}

// Entity is implemented by protocol objects that are identified by an
// ID (users, roles, channels, messages). Command argument coercion
// accepts any Entity where a mention is expected.
type Entity interface {
	SnowflakeID() ID
}

// SnowflakeID lets a bare ID stand in wherever an Entity is expected.
func (id ID) SnowflakeID() ID { return id }
