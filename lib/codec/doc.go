// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's CBOR encoding configuration.
//
// JSON is the wire format of the interactive-command protocol. CBOR is
// used where identical logical data must produce identical bytes,
// such as the input to a catalog fingerprint. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types carrying `json` tags encode with the same field names, since
// fxamacker/cbor falls back to `json` tags when `cbor` tags are absent.
// Types implementing encoding.TextMarshaler (snowflake.ID) encode as
// CBOR text strings, matching their JSON form.
package codec
