// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError requests a non-zero exit without an extra error line. The
// command has already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit code %d", e.Code) }

// ExitCode is checked by main to tell a handled exit from a failure.
func (e *ExitError) ExitCode() int { return e.Code }

// UsageError is a mistake on the command line. main prints it and
// exits with status 2.
type UsageError struct {
	Err error
}

// Usage returns a UsageError with a formatted message.
func Usage(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }
