// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gateway decodes the gateway event feed into named dispatch
// events.
//
// The websocket connection is owned elsewhere. Its owner writes each
// received transport message to a [Stream] in arrival order; [Stream.Run]
// decompresses the byte stream (zlib-stream or zstd-stream transport
// compression, or none), splits it into gateway frames, and delivers
// every dispatch frame (op 0) to a handler as an [Event]. [DispatchTo]
// adapts an [interaction.Engine] as that handler.
//
// [OpenCapture] reads captured traffic from disk for offline
// inspection; captures may be stored LZ4-framed.
package gateway
