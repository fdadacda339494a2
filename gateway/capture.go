// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

// lz4FrameMagic opens every LZ4 frame (0x184D2204, little-endian).
var lz4FrameMagic = []byte{0x04, 0x22, 0x4d, 0x18}

// OpenCapture opens a file of captured transport bytes. LZ4-framed
// captures are decompressed transparently.
func OpenCapture(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture: %w", err)
	}
	buffered := bufio.NewReader(file)
	magic, _ := buffered.Peek(len(lz4FrameMagic))
	if bytes.Equal(magic, lz4FrameMagic) {
		return capture{Reader: lz4.NewReader(buffered), file: file}, nil
	}
	return capture{Reader: buffered, file: file}, nil
}

type capture struct {
	io.Reader
	file *os.File
}

func (c capture) Close() error { return c.file.Close() }
