// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gateway

import "fmt"

// Compression is the transport compression negotiated for the
// connection.
type Compression uint8

const (
	// CompressionNone means each message is one JSON frame.
	CompressionNone Compression = iota

	// CompressionZlibStream means the whole connection is one zlib
	// stream; each message ends on a sync flush.
	CompressionZlibStream

	// CompressionZstdStream means the whole connection is one zstd
	// stream, flushed after each message.
	CompressionZstdStream
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlibStream:
		return "zlib-stream"
	case CompressionZstdStream:
		return "zstd-stream"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses the String form of a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zlib-stream":
		return CompressionZlibStream, nil
	case "zstd-stream":
		return CompressionZstdStream, nil
	default:
		return 0, fmt.Errorf("unknown gateway compression: %q", name)
	}
}
