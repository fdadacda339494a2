// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the relaycord binary: a
// tree of [Command] values with lazily built pflag flag sets,
// struct-tag flag binding ([FlagsFromParams]), typo suggestions for
// unknown commands and flags, and the shared logger and JSON output
// helpers.
package cli
