// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snowflake provides the 64-bit identifier type used by the
// interactive-command protocol and the nonce source for the
// interaction correlation engine.
//
// An [ID] encodes a creation timestamp in its upper 42 bits
// (milliseconds since [Epoch]) and 22 bits of worker/sequence data in
// the lower bits. On the wire, IDs are decimal strings; [ID]
// implements encoding.TextMarshaler so JSON and CBOR both use that
// form. Numeric JSON input is also accepted because some payloads
// (option values, older fields) carry bare numbers.
//
// [Generator] produces fresh IDs for use as interaction nonces: the
// timestamp half comes from an injected [clock.Clock] and the low
// bits from crypto/rand, with a per-generator monotonic guarantee so
// two calls never return the same value.
package snowflake
