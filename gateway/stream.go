// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/bureau-foundation/relaycord/interaction"
)

// OpDispatch is the opcode of frames that carry a named event.
const OpDispatch = 0

// Frame is one gateway payload.
type Frame struct {
	Op       int             `json:"op"`
	Data     json.RawMessage `json:"d"`
	Sequence *int64          `json:"s"`
	Type     string          `json:"t"`
}

// Event is a decoded dispatch frame.
type Event struct {
	Name     string
	Sequence int64
	Data     json.RawMessage
}

// DispatchTo returns a handler that feeds events to engine.
func DispatchTo(engine *interaction.Engine) func(Event) {
	return func(event Event) {
		engine.Dispatch(interaction.Event{Name: event.Name, Data: event.Data})
	}
}

// Stream turns raw transport messages into events. Write blocks until
// Run has consumed the bytes, so Run must be running in another
// goroutine while the connection writes.
type Stream struct {
	compression Compression
	logger      *slog.Logger
	reader      *io.PipeReader
	writer      *io.PipeWriter
}

// NewStream returns a Stream for the given transport compression. A
// nil logger uses slog.Default().
func NewStream(compression Compression, logger *slog.Logger) (*Stream, error) {
	switch compression {
	case CompressionNone, CompressionZlibStream, CompressionZstdStream:
	default:
		return nil, fmt.Errorf("unsupported gateway compression %s", compression)
	}
	if logger == nil {
		logger = slog.Default()
	}
	reader, writer := io.Pipe()
	return &Stream{
		compression: compression,
		logger:      logger.With("compression", compression.String()),
		reader:      reader,
		writer:      writer,
	}, nil
}

// Write feeds one transport message.
func (s *Stream) Write(message []byte) (int, error) {
	return s.writer.Write(message)
}

// Close marks the end of the connection. Run returns nil once it has
// delivered every complete frame.
func (s *Stream) Close() error {
	return s.writer.Close()
}

// Run decodes frames until the stream is closed or ctx is cancelled,
// calling handle for each dispatch frame in order. Returns nil at a
// clean end of stream and ctx.Err() on cancellation. Writes made after
// Run returns fail with io.ErrClosedPipe.
func (s *Stream) Run(ctx context.Context, handle func(Event)) error {
	stop := context.AfterFunc(ctx, func() {
		s.reader.CloseWithError(ctx.Err())
	})
	defer stop()
	// Writers blocked on a stream nobody reads any more must fail.
	defer s.reader.Close()

	source, err := s.decompress()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	defer source.Close()

	decoder := json.NewDecoder(source)
	for {
		var frame Frame
		if err := decoder.Decode(&frame); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decoding gateway frame: %w", err)
		}

		if frame.Op != OpDispatch {
			s.logger.Debug("skipping non-dispatch frame", "op", frame.Op)
			continue
		}
		event := Event{Name: frame.Type, Data: frame.Data}
		if frame.Sequence != nil {
			event.Sequence = *frame.Sequence
		}
		handle(event)
	}
}

// decompress wraps the pipe in the transport decompressor.
func (s *Stream) decompress() (io.ReadCloser, error) {
	switch s.compression {
	case CompressionZlibStream:
		reader, err := zlib.NewReader(s.reader)
		if err != nil {
			return nil, fmt.Errorf("opening zlib stream: %w", err)
		}
		return streamEnd{reader}, nil

	case CompressionZstdStream:
		decoder, err := zstd.NewReader(s.reader, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return streamEnd{decoder.IOReadCloser()}, nil

	default:
		return io.NopCloser(s.reader), nil
	}
}

// streamEnd reports the connection closing inside an unterminated
// compressed stream as a plain EOF. Compressed gateway streams are
// never finished by the server; a frame cut short is still reported by
// the JSON decoder.
type streamEnd struct {
	io.ReadCloser
}

func (r streamEnd) Read(buffer []byte) (int, error) {
	n, err := r.ReadCloser.Read(buffer)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}
