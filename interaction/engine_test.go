// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/relaycord/lib/clock"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
	"github.com/bureau-foundation/relaycord/lib/testutil"
)

const testTimeout = 5 * time.Second

var testEpoch = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// recordingTransport captures every submission and optionally fails.
type recordingTransport struct {
	submissions chan Submission
	err         error
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{submissions: make(chan Submission, 128)}
}

func (r *recordingTransport) Submit(_ context.Context, submission Submission) error {
	r.submissions <- submission
	return r.err
}

type testHarness struct {
	engine    *Engine
	transport *recordingTransport
	clock     *clock.FakeClock
	messages  *MessageStore
	self      *User
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	harness := &testHarness{
		transport: newRecordingTransport(),
		clock:     clock.Fake(testEpoch),
		messages:  NewMessageStore(0),
		self:      &User{ID: 80351110224678912, Username: "operator"},
	}
	engine, err := NewEngine(Config{
		Transport: harness.transport,
		Clock:     harness.clock,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Self:      harness.self,
		Messages:  harness.messages,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(engine.Close)
	harness.engine = engine
	return harness
}

type invokeResult struct {
	interaction *Interaction
	err         error
}

func (h *testHarness) invokeAsync(ctx context.Context, request Request) <-chan invokeResult {
	results := make(chan invokeResult, 1)
	go func() {
		interaction, err := h.engine.Invoke(ctx, request)
		results <- invokeResult{interaction, err}
	}()
	return results
}

func (h *testHarness) nextSubmission(t *testing.T) Submission {
	t.Helper()
	return testutil.RequireReceive(t, h.transport.submissions, testTimeout, "waiting for submission")
}

func (h *testHarness) dispatch(t *testing.T, name string, payload any) bool {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", name, err)
	}
	return h.engine.Dispatch(Event{Name: name, Data: data})
}

var testChannel = ChannelRef{ID: 381870553235193857, Guild: 381870553235193856}

func commandRequest(name string) Request {
	return Request{
		Type:    schema.InteractionApplicationCommand,
		Name:    name,
		Data:    map[string]string{"name": name},
		Channel: testChannel,
	}
}

func TestInvokeSuccess(t *testing.T) {
	h := newHarness(t)
	results := h.invokeAsync(context.Background(), commandRequest("ping"))

	submission := h.nextSubmission(t)
	if submission.Name != "ping" || submission.Channel != testChannel {
		t.Fatalf("unexpected submission %+v", submission)
	}
	if h.engine.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", h.engine.Pending())
	}

	if !h.dispatch(t, schema.EventInteractionCreate, schema.InteractionEvent{ID: 1001, Nonce: submission.Nonce}) {
		t.Fatal("INTERACTION_CREATE not consumed")
	}
	if !h.dispatch(t, schema.EventInteractionSuccess, schema.InteractionEvent{ID: 1001, Nonce: submission.Nonce}) {
		t.Fatal("INTERACTION_SUCCESS not consumed")
	}

	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	if result.err != nil {
		t.Fatalf("Invoke: %v", result.err)
	}
	interaction := result.interaction
	if interaction.ID != 1001 || interaction.Nonce != submission.Nonce || interaction.Name != "ping" {
		t.Errorf("unexpected interaction %+v", interaction)
	}
	if interaction.Type != schema.InteractionApplicationCommand {
		t.Errorf("Type = %v", interaction.Type)
	}
	if interaction.User != h.self {
		t.Errorf("User = %v, want engine self", interaction.User)
	}
	successful, err := interaction.Successful()
	if err != nil || !successful {
		t.Errorf("Successful() = %v, %v; want true, nil", successful, err)
	}
	if interaction.Channel() != testChannel {
		t.Errorf("Channel() = %v", interaction.Channel())
	}
	if h.engine.Pending() != 0 {
		t.Errorf("registry not cleaned: Pending() = %d", h.engine.Pending())
	}
	if h.clock.PendingCount() != 0 {
		t.Errorf("timeout timer not released: %d armed", h.clock.PendingCount())
	}
}

func TestInvokeNumericNonce(t *testing.T) {
	h := newHarness(t)
	results := h.invokeAsync(context.Background(), commandRequest("ping"))
	submission := h.nextSubmission(t)

	// Some servers echo the nonce as a bare JSON number.
	for _, name := range []string{schema.EventInteractionCreate, schema.EventInteractionSuccess} {
		data := json.RawMessage(`{"id":"1002","nonce":` + submission.Nonce + `}`)
		if !h.engine.Dispatch(Event{Name: name, Data: data}) {
			t.Fatalf("%s with a numeric nonce not consumed", name)
		}
	}

	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	if result.err != nil {
		t.Fatalf("Invoke: %v", result.err)
	}
	if result.interaction.ID != 1002 || result.interaction.Nonce != submission.Nonce {
		t.Errorf("unexpected interaction %+v", result.interaction)
	}
}

func TestInvokeFailureOutcome(t *testing.T) {
	h := newHarness(t)
	results := h.invokeAsync(context.Background(), commandRequest("broken"))
	submission := h.nextSubmission(t)

	// No INTERACTION_CREATE: the outcome alone must still resolve.
	if !h.dispatch(t, schema.EventInteractionFailed, schema.InteractionEvent{ID: 77, Nonce: submission.Nonce}) {
		t.Fatal("INTERACTION_FAILED not consumed")
	}
	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	if result.err != nil {
		t.Fatalf("Invoke: %v", result.err)
	}
	successful, err := result.interaction.Successful()
	if err != nil || successful {
		t.Errorf("Successful() = %v, %v; want false, nil", successful, err)
	}
	if result.interaction.ID != 77 {
		t.Errorf("ID = %d, want 77", result.interaction.ID)
	}

	if h.dispatch(t, schema.EventInteractionSuccess, schema.InteractionEvent{ID: 77, Nonce: submission.Nonce}) {
		t.Error("second outcome for the same nonce was consumed")
	}
}

func TestInvokeTimeout(t *testing.T) {
	h := newHarness(t)
	results := h.invokeAsync(context.Background(), commandRequest("slow"))
	submission := h.nextSubmission(t)

	h.clock.WaitForTimers(1)
	h.clock.Advance(DefaultTimeout - time.Millisecond)
	testutil.RequireQuiet(t, results, 50*time.Millisecond, "Invoke returned before the timeout")
	h.clock.Advance(time.Millisecond)

	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	if !errors.Is(result.err, ErrNoResponse) {
		t.Fatalf("Invoke error = %v, want ErrNoResponse", result.err)
	}
	var noResponse *NoResponseError
	if !errors.As(result.err, &noResponse) {
		t.Fatalf("Invoke error %T is not *NoResponseError", result.err)
	}
	if noResponse.Nonce != submission.Nonce || noResponse.Timeout != DefaultTimeout {
		t.Errorf("unexpected NoResponseError %+v", noResponse)
	}
	if h.engine.Pending() != 0 {
		t.Errorf("registry not cleaned: Pending() = %d", h.engine.Pending())
	}
	if _, ok := h.engine.Lookup(submission.Nonce); ok {
		t.Error("Lookup found a timed-out nonce")
	}

	if h.dispatch(t, schema.EventInteractionSuccess, schema.InteractionEvent{ID: 5, Nonce: submission.Nonce}) {
		t.Error("late outcome found a waiter")
	}
}

func TestInvokeRequestTimeoutOverride(t *testing.T) {
	h := newHarness(t)
	request := commandRequest("quick")
	request.Timeout = 2 * time.Second
	results := h.invokeAsync(context.Background(), request)
	h.nextSubmission(t)

	h.clock.WaitForTimers(1)
	h.clock.Advance(2 * time.Second)

	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	var noResponse *NoResponseError
	if !errors.As(result.err, &noResponse) || noResponse.Timeout != 2*time.Second {
		t.Fatalf("Invoke error = %v, want 2s NoResponseError", result.err)
	}
}

func TestInvokeCancellation(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	results := h.invokeAsync(ctx, commandRequest("cancelled"))
	submission := h.nextSubmission(t)

	cancel()
	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	if !errors.Is(result.err, context.Canceled) {
		t.Fatalf("Invoke error = %v, want context.Canceled", result.err)
	}
	if _, ok := h.engine.Lookup(submission.Nonce); ok {
		t.Error("cancelled nonce still pending")
	}
}

func TestInvokeTransportError(t *testing.T) {
	h := newHarness(t)
	sendFailure := errors.New("connection reset")
	h.transport.err = sendFailure

	_, err := h.engine.Invoke(context.Background(), commandRequest("ping"))
	if !errors.Is(err, sendFailure) {
		t.Fatalf("Invoke error = %v, want wrapped transport error", err)
	}
	if h.engine.Pending() != 0 {
		t.Errorf("registry not cleaned: Pending() = %d", h.engine.Pending())
	}
	if h.clock.PendingCount() != 0 {
		t.Error("a wait was started after the transport failed")
	}
}

func TestInvokeMissingChannel(t *testing.T) {
	h := newHarness(t)
	request := commandRequest("ping")
	request.Channel = nil

	_, err := h.engine.Invoke(context.Background(), request)
	if !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("Invoke error = %v, want ErrMissingTarget", err)
	}
	if len(h.transport.submissions) != 0 {
		t.Error("transport contacted without a channel")
	}
}

func TestCloseFailsWaiters(t *testing.T) {
	h := newHarness(t)
	results := h.invokeAsync(context.Background(), commandRequest("ping"))
	h.nextSubmission(t)

	h.engine.Close()
	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	if !errors.Is(result.err, ErrClosed) {
		t.Fatalf("Invoke error = %v, want ErrClosed", result.err)
	}
	if _, err := h.engine.Invoke(context.Background(), commandRequest("again")); !errors.Is(err, ErrClosed) {
		t.Errorf("Invoke after Close = %v, want ErrClosed", err)
	}
	h.engine.Close()
}

func TestLookupRecord(t *testing.T) {
	h := newHarness(t)
	results := h.invokeAsync(context.Background(), commandRequest("status"))
	submission := h.nextSubmission(t)

	record, ok := h.engine.Lookup(submission.Nonce)
	if !ok {
		t.Fatal("pending nonce not found")
	}
	want := PendingInvocation{
		Nonce:   submission.Nonce,
		Type:    schema.InteractionApplicationCommand,
		Name:    "status",
		Channel: testChannel,
	}
	if record != want {
		t.Errorf("Lookup = %+v, want %+v", record, want)
	}

	nonce, err := snowflake.Parse(submission.Nonce)
	if err != nil {
		t.Fatalf("nonce %q is not a snowflake: %v", submission.Nonce, err)
	}
	if !nonce.Time().Equal(testEpoch) {
		t.Errorf("nonce time = %s, want %s", nonce.Time(), testEpoch)
	}

	h.dispatch(t, schema.EventInteractionSuccess, schema.InteractionEvent{ID: 1, Nonce: submission.Nonce})
	testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
}

func TestConcurrentInvocations(t *testing.T) {
	const count = 64
	h := newHarness(t)

	results := make(map[string]<-chan invokeResult, count)
	for index := range count {
		name := fmt.Sprintf("command-%d", index)
		results[name] = h.invokeAsync(context.Background(), commandRequest(name))
	}

	nonceByName := make(map[string]string, count)
	seen := make(map[string]bool, count)
	for range count {
		submission := h.nextSubmission(t)
		if seen[submission.Nonce] {
			t.Fatalf("nonce %s issued twice", submission.Nonce)
		}
		seen[submission.Nonce] = true
		nonceByName[submission.Name] = submission.Nonce
	}
	if h.engine.Pending() != count {
		t.Fatalf("Pending() = %d, want %d", h.engine.Pending(), count)
	}

	// Resolve from several goroutines in no particular order.
	var group sync.WaitGroup
	index := 0
	for name, nonce := range nonceByName {
		index++
		group.Add(1)
		go func(name, nonce string, id snowflake.ID) {
			defer group.Done()
			h.dispatch(t, schema.EventInteractionCreate, schema.InteractionEvent{ID: id, Nonce: nonce})
			h.dispatch(t, schema.EventInteractionSuccess, schema.InteractionEvent{ID: id, Nonce: nonce})
		}(name, nonce, snowflake.ID(index))
	}
	group.Wait()

	for name, channel := range results {
		result := testutil.RequireReceive(t, channel, testTimeout, "waiting for %s", name)
		if result.err != nil {
			t.Fatalf("%s: %v", name, result.err)
		}
		if result.interaction.Name != name || result.interaction.Nonce != nonceByName[name] {
			t.Errorf("%s resolved with interaction for %s (nonce %s)", name, result.interaction.Name, result.interaction.Nonce)
		}
	}
	if h.engine.Pending() != 0 {
		t.Errorf("Pending() = %d after all resolved", h.engine.Pending())
	}
}

func TestDispatchIgnores(t *testing.T) {
	h := newHarness(t)
	results := h.invokeAsync(context.Background(), commandRequest("ping"))
	submission := h.nextSubmission(t)

	tests := []struct {
		name  string
		event Event
	}{
		{"unrelated event", Event{Name: "MESSAGE_CREATE", Data: json.RawMessage(`{"nonce":"` + submission.Nonce + `"}`)}},
		{"unknown nonce", Event{Name: schema.EventInteractionSuccess, Data: json.RawMessage(`{"id":"1","nonce":"12345"}`)}},
		{"missing nonce", Event{Name: schema.EventInteractionSuccess, Data: json.RawMessage(`{"id":"1"}`)}},
		{"malformed payload", Event{Name: schema.EventInteractionSuccess, Data: json.RawMessage(`{"id":`)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if h.engine.Dispatch(test.event) {
				t.Error("event consumed")
			}
		})
	}
	if h.engine.Pending() != 1 {
		t.Fatalf("ignored events disturbed the registry: Pending() = %d", h.engine.Pending())
	}

	h.dispatch(t, schema.EventInteractionSuccess, schema.InteractionEvent{ID: 9, Nonce: submission.Nonce})
	testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
}

func TestNewEngineValidation(t *testing.T) {
	if _, err := NewEngine(Config{}); err == nil {
		t.Error("expected error without a transport")
	}
	if _, err := NewEngine(Config{Transport: newRecordingTransport(), Timeout: -time.Second}); err == nil {
		t.Error("expected error for negative timeout")
	}
}
