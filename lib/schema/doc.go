// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the wire vocabulary of the interactive-command
// protocol: enumerations, the raw payloads received from the server
// (application commands, components, messages, dispatch events), and
// the payloads this module produces when invoking a command, clicking
// a component, or submitting a modal.
//
// Types here are plain data with `json` tags. Behaviour (argument
// coercion, invocation, correlation) lives in the interaction and
// command packages, which construct their models from these payloads.
//
// Dispatch event names ([EventInteractionCreate] and friends) are the
// "t" field of gateway dispatch frames.
//
// This package depends only on lib/snowflake.
package schema
