// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package interaction correlates outgoing invocations with their
// asynchronous outcomes, and models the objects those outcomes refer
// to: interactions, modals, messages and message components.
//
// An invocation (a slash command, a button click, a modal submit)
// travels to the server through a [Transport] and its outcome returns
// later on the gateway event feed. The two are stitched together by a
// client-generated nonce:
//
//   - [Engine.Invoke] generates a nonce, records a [PendingInvocation]
//     in the engine's registry, submits the payload, and blocks until
//     the outcome arrives, the timeout elapses ([NoResponseError]),
//     the context is cancelled, or the engine is closed. The registry
//     entry is removed on every one of those paths.
//
//   - [Engine.Dispatch] is the single entry point for gateway events.
//     INTERACTION_CREATE binds the server-assigned interaction ID,
//     INTERACTION_MODAL_CREATE attaches a [Modal], and
//     INTERACTION_SUCCESS or INTERACTION_FAILED resolves the waiter.
//     Events for unknown nonces are ignored.
//
// Components ([ActionRow], [Button], [SelectMenu], [TextInput]) are
// built from raw payloads by [NewComponent] and keep a back-reference
// to their owning [Message], which in turn references the engine that
// built it. Clicking a button or choosing select options therefore
// needs no extra plumbing.
//
// Engine is safe for concurrent use. Events may be dispatched from any
// goroutine while any number of invocations are in flight.
package interaction
