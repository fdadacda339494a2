// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/relaycord/lib/codec"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// Fingerprint identifies the exact set of command versions in a
// catalog.
type Fingerprint [32]byte

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// fingerprintKey domain-separates catalog fingerprints from any other
// BLAKE3 use. Changing it invalidates every stored fingerprint.
var fingerprintKey = [32]byte{
	'r', 'e', 'l', 'a', 'y', 'c', 'o', 'r', 'd', '.', 'c', 'a', 't', 'a', 'l', 'o',
	'g', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

type fingerprintEntry struct {
	ID      snowflake.ID `cbor:"1,keyasint"`
	Version snowflake.ID `cbor:"2,keyasint"`
}

// Fingerprint hashes the deterministic CBOR encoding of the
// (id, version) pairs of all commands, sorted by ID. Command order in
// the index does not matter; any version bump does.
func (c *Catalog) Fingerprint() (Fingerprint, error) {
	entries := make([]fingerprintEntry, 0, len(c.raw))
	for _, raw := range c.raw {
		entries = append(entries, fingerprintEntry{ID: raw.ID, Version: raw.Version})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	encoded, err := codec.Marshal(entries)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding catalog fingerprint: %w", err)
	}

	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		return Fingerprint{}, fmt.Errorf("initializing fingerprint hash: %w", err)
	}
	hasher.Write(encoded)

	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint, nil
}
