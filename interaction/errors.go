// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoResponse matches any *NoResponseError.
	ErrNoResponse = errors.New("no response to interaction")

	// ErrInvalidUsage reports a structurally disallowed invocation:
	// invoking a group command, or clicking a button that has neither
	// a URL nor a custom ID.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrMissingTarget reports that no channel, user or message could
	// be resolved for an invocation.
	ErrMissingTarget = errors.New("missing target")

	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrUnresolved is returned when reading the outcome of an
	// interaction that has not been resolved yet.
	ErrUnresolved = errors.New("interaction outcome not yet known")

	// ErrClosed is returned by invocations on, or waiting in, a closed
	// engine.
	ErrClosed = errors.New("interaction engine closed")
)

// NoResponseError reports that no outcome event arrived for an
// invocation within its timeout. The remote outcome is unknown, not
// necessarily a failure.
type NoResponseError struct {
	Nonce   string
	Timeout time.Duration
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("no response to interaction (nonce=%s) within %s", e.Nonce, e.Timeout)
}

// Is makes errors.Is(err, ErrNoResponse) true.
func (e *NoResponseError) Is(target error) bool { return target == ErrNoResponse }

// ValidationError reports a text input answer whose length (in
// Unicode code points) falls outside the input's bounds. A nil bound
// is unconstrained.
type ValidationError struct {
	CustomID  string
	Length    int
	MinLength *int
	MaxLength *int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("text input %q: answer length %d outside [%s, %s]",
		e.CustomID, e.Length, formatBound(e.MinLength, "0"), formatBound(e.MaxLength, "inf"))
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func formatBound(bound *int, unset string) string {
	if bound == nil {
		return unset
	}
	return fmt.Sprint(*bound)
}
