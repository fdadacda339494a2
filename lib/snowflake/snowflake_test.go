// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snowflake

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/relaycord/lib/clock"
)

func TestParse(t *testing.T) {
	id, err := Parse("175928847299117063")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if id.String() != "175928847299117063" {
		t.Errorf("String() = %q", id.String())
	}

	for _, raw := range []string{"", "abc", "-1", "18446744073709551616"} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", raw)
		}
	}
}

func TestTime(t *testing.T) {
	// Documented example ID from the protocol reference.
	id := MustParse("175928847299117063")
	want := time.Date(2016, 4, 30, 11, 18, 25, 796000000, time.UTC)
	if !id.Time().Equal(want) {
		t.Errorf("Time() = %v, want %v", id.Time(), want)
	}
	if !FromTime(want).Time().Equal(want) {
		t.Errorf("FromTime round trip = %v", FromTime(want).Time())
	}
}

func TestJSON(t *testing.T) {
	type payload struct {
		ID       ID  `json:"id"`
		Optional ID  `json:"optional"`
		Pointer  *ID `json:"pointer,omitempty"`
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"id":"42","optional":7,"pointer":null}`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.ID != 42 || decoded.Optional != 7 || decoded.Pointer != nil {
		t.Errorf("unexpected decode: %+v", decoded)
	}

	encoded, err := json.Marshal(payload{ID: 42})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(encoded) != `{"id":"42","optional":"0"}` {
		t.Errorf("Marshal = %s", encoded)
	}

	if err := json.Unmarshal([]byte(`{"id":"x"}`), &decoded); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestGeneratorMonotonic(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	generator := NewGenerator(fake)

	// The clock never advances: uniqueness must come from the
	// monotonic guarantee, not the timestamp.
	previous := generator.Next()
	for i := 0; i < 1000; i++ {
		next := generator.Next()
		if next <= previous {
			t.Fatalf("Next() = %d after %d; want strictly increasing", next, previous)
		}
		previous = next
	}

	if got := previous.Time(); got.Before(fake.Now()) {
		t.Errorf("generated timestamp %v precedes clock %v", got, fake.Now())
	}
}

func TestGeneratorConcurrentUnique(t *testing.T) {
	generator := NewGenerator(clock.Real())

	const workers = 8
	const perWorker = 500
	results := make(chan ID, workers*perWorker)

	var group sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		group.Add(1)
		go func() {
			defer group.Done()
			for i := 0; i < perWorker; i++ {
				results <- generator.Next()
			}
		}()
	}
	group.Wait()
	close(results)

	seen := make(map[ID]struct{}, workers*perWorker)
	for id := range results {
		if _, duplicate := seen[id]; duplicate {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = struct{}{}
	}
}
