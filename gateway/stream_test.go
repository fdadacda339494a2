// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/testutil"
)

const testTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sampleFrames is a short session: hello, two dispatches and a
// heartbeat ack.
var sampleFrames = []string{
	`{"op":10,"d":{"heartbeat_interval":41250},"s":null,"t":null}`,
	`{"op":0,"d":{"id":"1","nonce":"2"},"s":1,"t":"INTERACTION_CREATE"}`,
	`{"op":11,"d":null,"s":null,"t":null}`,
	`{"op":0,"d":{"id":"1","nonce":"2"},"s":2,"t":"INTERACTION_SUCCESS"}`,
}

type runOutcome struct {
	events []Event
	err    error
}

// runStream starts Run and returns a channel carrying every event
// seen once Run exits.
func runStream(ctx context.Context, stream *Stream) <-chan runOutcome {
	done := make(chan runOutcome, 1)
	go func() {
		var events []Event
		err := stream.Run(ctx, func(event Event) {
			events = append(events, event)
		})
		done <- runOutcome{events, err}
	}()
	return done
}

// zlibMessages compresses frames the way the server does: one zlib
// stream, sync-flushed after each frame, never finished.
func zlibMessages(t *testing.T, frames []string) [][]byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)
	var messages [][]byte
	for _, frame := range frames {
		if _, err := writer.Write([]byte(frame)); err != nil {
			t.Fatalf("zlib write: %v", err)
		}
		if err := writer.Flush(); err != nil {
			t.Fatalf("zlib flush: %v", err)
		}
		messages = append(messages, bytes.Clone(buffer.Bytes()))
		buffer.Reset()
	}
	return messages
}

func zstdMessages(t *testing.T, frames []string) [][]byte {
	t.Helper()
	var buffer bytes.Buffer
	writer, err := zstd.NewWriter(&buffer)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	var messages [][]byte
	for _, frame := range frames {
		if _, err := writer.Write([]byte(frame)); err != nil {
			t.Fatalf("zstd write: %v", err)
		}
		if err := writer.Flush(); err != nil {
			t.Fatalf("zstd flush: %v", err)
		}
		messages = append(messages, bytes.Clone(buffer.Bytes()))
		buffer.Reset()
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zstd close: %v", err)
	}
	if buffer.Len() > 0 {
		messages = append(messages, bytes.Clone(buffer.Bytes()))
	}
	return messages
}

func plainMessages(frames []string) [][]byte {
	messages := make([][]byte, len(frames))
	for i, frame := range frames {
		messages[i] = []byte(frame)
	}
	return messages
}

func TestStreamDeliversDispatches(t *testing.T) {
	tests := []struct {
		compression Compression
		messages    func(*testing.T) [][]byte
	}{
		{CompressionNone, func(*testing.T) [][]byte { return plainMessages(sampleFrames) }},
		{CompressionZlibStream, func(t *testing.T) [][]byte { return zlibMessages(t, sampleFrames) }},
		{CompressionZstdStream, func(t *testing.T) [][]byte { return zstdMessages(t, sampleFrames) }},
	}

	for _, test := range tests {
		t.Run(test.compression.String(), func(t *testing.T) {
			stream, err := NewStream(test.compression, discardLogger())
			if err != nil {
				t.Fatalf("NewStream: %v", err)
			}
			done := runStream(context.Background(), stream)

			for _, message := range test.messages(t) {
				if _, err := stream.Write(message); err != nil {
					t.Fatalf("Write: %v", err)
				}
			}
			if err := stream.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			outcome := testutil.RequireReceive(t, done, testTimeout, "waiting for Run")
			if outcome.err != nil {
				t.Fatalf("Run: %v", outcome.err)
			}
			if len(outcome.events) != 2 {
				t.Fatalf("got %d events, want 2: %+v", len(outcome.events), outcome.events)
			}
			for i, want := range []struct {
				name     string
				sequence int64
			}{
				{"INTERACTION_CREATE", 1},
				{"INTERACTION_SUCCESS", 2},
			} {
				event := outcome.events[i]
				if event.Name != want.name || event.Sequence != want.sequence {
					t.Errorf("event %d = %s/%d, want %s/%d", i, event.Name, event.Sequence, want.name, want.sequence)
				}
				var data schema.InteractionEvent
				if err := json.Unmarshal(event.Data, &data); err != nil || data.ID != 1 {
					t.Errorf("event %d data = %s (%v)", i, event.Data, err)
				}
			}
		})
	}
}

func TestStreamEmpty(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionZlibStream, CompressionZstdStream} {
		t.Run(compression.String(), func(t *testing.T) {
			stream, err := NewStream(compression, discardLogger())
			if err != nil {
				t.Fatalf("NewStream: %v", err)
			}
			done := runStream(context.Background(), stream)
			stream.Close()
			outcome := testutil.RequireReceive(t, done, testTimeout, "waiting for Run")
			if outcome.err != nil || len(outcome.events) != 0 {
				t.Fatalf("Run on empty stream = %v, %d events", outcome.err, len(outcome.events))
			}
		})
	}
}

func TestStreamTruncatedFrame(t *testing.T) {
	stream, err := NewStream(CompressionNone, discardLogger())
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	done := runStream(context.Background(), stream)
	if _, err := stream.Write([]byte(`{"op":0,"d":{"id":`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	stream.Close()

	outcome := testutil.RequireReceive(t, done, testTimeout, "waiting for Run")
	if outcome.err == nil {
		t.Fatal("expected an error for a truncated frame")
	}
}

func TestStreamCancel(t *testing.T) {
	stream, err := NewStream(CompressionZlibStream, discardLogger())
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := runStream(ctx, stream)

	messages := zlibMessages(t, sampleFrames[:2])
	for _, message := range messages {
		if _, err := stream.Write(message); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	testutil.RequireQuiet(t, done, 50*time.Millisecond, "Run should block on an open stream")

	cancel()
	outcome := testutil.RequireReceive(t, done, testTimeout, "waiting for Run after cancel")
	if !errors.Is(outcome.err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", outcome.err)
	}
	if len(outcome.events) != 1 {
		t.Fatalf("got %d events before cancel, want 1", len(outcome.events))
	}
	if _, err := stream.Write([]byte("{}")); err == nil {
		t.Fatal("Write after cancel should fail")
	}
}

func TestNewStreamRejectsUnknownCompression(t *testing.T) {
	if _, err := NewStream(Compression(7), nil); err == nil {
		t.Fatal("expected error for unknown compression")
	}
}

func TestParseCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionZlibStream, CompressionZstdStream} {
		parsed, err := ParseCompression(compression.String())
		if err != nil || parsed != compression {
			t.Errorf("ParseCompression(%q) = %v, %v", compression.String(), parsed, err)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("expected error for gzip")
	}
}

// channelTransport hands each submission to the test.
type channelTransport chan interaction.Submission

func (c channelTransport) Submit(_ context.Context, submission interaction.Submission) error {
	c <- submission
	return nil
}

func TestDispatchToEngine(t *testing.T) {
	transport := make(channelTransport, 1)
	engine, err := interaction.NewEngine(interaction.Config{
		Transport: transport,
		Logger:    discardLogger(),
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	type invokeResult struct {
		interaction *interaction.Interaction
		err         error
	}
	results := make(chan invokeResult, 1)
	go func() {
		result, err := engine.Invoke(context.Background(), interaction.Request{
			Type:    schema.InteractionApplicationCommand,
			Name:    "ping",
			Data:    map[string]string{"name": "ping"},
			Channel: interaction.ChannelRef{ID: 381870553235193857},
		})
		results <- invokeResult{result, err}
	}()
	submission := testutil.RequireReceive(t, transport, testTimeout, "waiting for submission")

	stream, err := NewStream(CompressionZlibStream, discardLogger())
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- stream.Run(context.Background(), DispatchTo(engine)) }()

	frames := []string{
		fmt.Sprintf(`{"op":0,"s":7,"t":"INTERACTION_CREATE","d":{"id":"1054112736098730024","nonce":"%s"}}`, submission.Nonce),
		fmt.Sprintf(`{"op":0,"s":8,"t":"INTERACTION_SUCCESS","d":{"id":"1054112736098730024","nonce":"%s"}}`, submission.Nonce),
	}
	for _, message := range zlibMessages(t, frames) {
		if _, err := stream.Write(message); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	result := testutil.RequireReceive(t, results, testTimeout, "waiting for Invoke")
	if result.err != nil {
		t.Fatalf("Invoke: %v", result.err)
	}
	if result.interaction.ID.String() != "1054112736098730024" {
		t.Errorf("interaction id = %s", result.interaction.ID)
	}
	if successful, err := result.interaction.Successful(); err != nil || !successful {
		t.Errorf("Successful() = %v, %v", successful, err)
	}

	stream.Close()
	if err := testutil.RequireReceive(t, done, testTimeout, "waiting for Run"); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestOpenCapture(t *testing.T) {
	directory := t.TempDir()
	raw := bytes.Join(plainMessages(sampleFrames), nil)

	plainPath := filepath.Join(directory, "session.bin")
	if err := os.WriteFile(plainPath, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	var framed bytes.Buffer
	writer := lz4.NewWriter(&framed)
	if _, err := writer.Write(raw); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}
	lz4Path := filepath.Join(directory, "session.bin.lz4")
	if err := os.WriteFile(lz4Path, framed.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plainPath, lz4Path} {
		capture, err := OpenCapture(path)
		if err != nil {
			t.Fatalf("OpenCapture(%s): %v", path, err)
		}
		content, err := io.ReadAll(capture)
		capture.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if !bytes.Equal(content, raw) {
			t.Errorf("%s: content mismatch", filepath.Base(path))
		}
	}

	if _, err := OpenCapture(filepath.Join(directory, "missing")); err == nil {
		t.Error("expected error for missing capture")
	}
}
