// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the relaycord command tree. Every command
// works offline against a command index file: browsing and searching
// the catalog, building invocation payloads, fingerprinting, and
// decoding captured gateway traffic.
package commands
