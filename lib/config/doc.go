// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for relaycord
// components.
//
// Configuration is loaded from a single file specified by either the
// RELAYCORD_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no automatic file search.
//
// The file may contain development and production sections that
// override base values when [Config].Environment matches. Production
// defaults to JSON logs at info level.
//
// ${VAR} and ${VAR:-default} patterns in catalog.path are expanded
// after loading. No other environment variables override config
// values.
//
// Key exports:
//
//   - [Config] -- master struct with Session, Log, Gateway, Catalog
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other relaycord packages.
package config
