// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snowflake

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/bureau-foundation/relaycord/lib/clock"
)

// lowBitsMask selects the 22 non-timestamp bits.
const lowBitsMask = 1<<timestampShift - 1

// Generator produces unique IDs from the current time and crypto
// randomness. Values from one Generator are strictly increasing even
// when the clock stalls or steps backwards. Safe for concurrent use.
type Generator struct {
	clock clock.Clock

	mu   sync.Mutex
	last ID
}

// NewGenerator returns a Generator reading time from c.
func NewGenerator(c clock.Clock) *Generator {
	return &Generator{clock: c}
}

// Next returns a fresh ID.
func (g *Generator) Next() ID {
	var buffer [4]byte
	if _, err := rand.Read(buffer[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic("snowflake: reading random bits: " + err.Error())
	}
	candidate := FromTime(g.clock.Now()) | ID(binary.BigEndian.Uint32(buffer[:])&lowBitsMask)

	g.mu.Lock()
	defer g.mu.Unlock()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	g.last = candidate
	return candidate
}
