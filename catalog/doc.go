// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog indexes the application commands available in a
// context, as returned by the server's application command index.
//
// [Load] reads an index document from disk. JSONC is accepted
// (comments and trailing commas), which keeps hand-maintained fixture
// catalogs readable. [New] builds a [Catalog] of [command.Command]
// values bound to an engine, supporting lookup by command path
// ("admin server config set"), filtering by command type, fuzzy
// search over paths, and a content fingerprint that changes whenever
// any command's ID or version changes.
package catalog
