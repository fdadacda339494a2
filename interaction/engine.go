// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/relaycord/lib/clock"
	"github.com/bureau-foundation/relaycord/lib/schema"
	"github.com/bureau-foundation/relaycord/lib/snowflake"
)

// DefaultTimeout is how long an invocation waits for its outcome when
// neither the engine nor the request sets a timeout.
const DefaultTimeout = 7 * time.Second

// Transport submits invocation payloads to the server. Submit returns
// once the request has been acknowledged; the outcome arrives later
// through [Engine.Dispatch].
type Transport interface {
	Submit(ctx context.Context, submission Submission) error
}

// MessageCache is a read-only view of the messages the client knows
// about. Interaction.Message scans it.
type MessageCache interface {
	Messages() []*Message
}

// Config configures an Engine. Transport is required.
type Config struct {
	Transport Transport

	// Clock drives invocation timeouts and nonce generation.
	// Default: clock.Real().
	Clock clock.Clock

	// Logger receives debug records for every submit and lifecycle
	// event. Default: slog.Default().
	Logger *slog.Logger

	// Timeout is the per-invocation wait. Default: DefaultTimeout.
	Timeout time.Duration

	// Self is the logged-in user, recorded as the actor of every
	// interaction this engine starts. May be nil.
	Self *User

	// Messages backs Interaction.Message. May be nil, in which case
	// interactions never resolve a message.
	Messages MessageCache

	// ResolveUser and ResolveApplication build descriptors from raw
	// payloads. Defaults: DefaultResolveUser, DefaultResolveApplication.
	ResolveUser        func(schema.User) *User
	ResolveApplication func(schema.Application) *Application
}

// Request describes one invocation.
type Request struct {
	Type schema.InteractionType

	// Name is the command name; empty for components and modals.
	Name string

	// Data is the JSON-serializable invocation payload.
	Data any

	// Channel is required.
	Channel Channel

	// Message is set for component interactions.
	Message *Message

	ApplicationID snowflake.ID
	Files         []File

	// Timeout overrides the engine timeout when positive.
	Timeout time.Duration
}

// Submission is a Request augmented with its nonce, as handed to the
// Transport.
type Submission struct {
	Request
	Nonce string
}

// PendingInvocation is the registry record of an in-flight invocation.
type PendingInvocation struct {
	Nonce   string
	Type    schema.InteractionType
	Name    string
	Channel Channel
}

// pendingEntry is owned by the registry until it is resolved or
// removed; the waiter only reads done.
type pendingEntry struct {
	record      PendingInvocation
	interaction *Interaction
	done        chan *Interaction
}

// Engine owns the pending-invocation registry for one session.
type Engine struct {
	transport          Transport
	clock              clock.Clock
	logger             *slog.Logger
	timeout            time.Duration
	self               *User
	messages           MessageCache
	resolveUser        func(schema.User) *User
	resolveApplication func(schema.Application) *Application
	nonces             *snowflake.Generator

	mu      sync.Mutex
	pending map[string]*pendingEntry
	closed  bool
	done    chan struct{}
}

// NewEngine creates an Engine from config.
func NewEngine(config Config) (*Engine, error) {
	if config.Transport == nil {
		return nil, errors.New("interaction engine requires a transport")
	}
	if config.Timeout < 0 {
		return nil, fmt.Errorf("negative timeout %s", config.Timeout)
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.ResolveUser == nil {
		config.ResolveUser = DefaultResolveUser
	}
	if config.ResolveApplication == nil {
		config.ResolveApplication = DefaultResolveApplication
	}
	return &Engine{
		transport:          config.Transport,
		clock:              config.Clock,
		logger:             config.Logger,
		timeout:            config.Timeout,
		self:               config.Self,
		messages:           config.Messages,
		resolveUser:        config.ResolveUser,
		resolveApplication: config.ResolveApplication,
		nonces:             snowflake.NewGenerator(config.Clock),
		pending:            make(map[string]*pendingEntry),
		done:               make(chan struct{}),
	}, nil
}

// Invoke submits request and blocks until its outcome arrives.
//
// Errors: a transport failure is returned wrapped with its identity
// intact and no wait is started; *NoResponseError when the timeout
// elapses; ctx.Err() on cancellation; ErrClosed if the engine is
// closed before or during the wait. The registry entry is gone by the
// time Invoke returns, whatever the outcome.
func (e *Engine) Invoke(ctx context.Context, request Request) (*Interaction, error) {
	if request.Channel == nil {
		return nil, fmt.Errorf("%w: no channel for %s interaction", ErrMissingTarget, request.Type)
	}

	entry, err := e.register(request)
	if err != nil {
		return nil, err
	}
	nonce := entry.record.Nonce
	defer e.remove(nonce)

	logger := e.logger.With("nonce", nonce, "type", request.Type.String())
	if request.Name != "" {
		logger = logger.With("command", request.Name)
	}
	logger.Debug("submitting interaction", "channel_id", request.Channel.ChannelID())

	if err := e.transport.Submit(ctx, Submission{Request: request, Nonce: nonce}); err != nil {
		return nil, fmt.Errorf("submitting %s interaction: %w", request.Type, err)
	}

	timeout := e.timeout
	if request.Timeout > 0 {
		timeout = request.Timeout
	}
	timer := e.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case interaction := <-entry.done:
		return interaction, nil
	case <-timer.C:
		logger.Debug("interaction timed out", "timeout", timeout)
		return nil, &NoResponseError{Nonce: nonce, Timeout: timeout}
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.done:
		return nil, ErrClosed
	}
}

// register inserts a fresh pending entry under a nonce that is not
// already in use.
func (e *Engine) register(request Request) (*pendingEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}

	nonce := e.nonces.Next().String()
	for e.pending[nonce] != nil {
		nonce = e.nonces.Next().String()
	}

	entry := &pendingEntry{
		record: PendingInvocation{
			Nonce:   nonce,
			Type:    request.Type,
			Name:    request.Name,
			Channel: request.Channel,
		},
		done: make(chan *Interaction, 1),
	}
	e.pending[nonce] = entry
	return entry, nil
}

func (e *Engine) remove(nonce string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, nonce)
}

// Pending returns the number of in-flight invocations.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Lookup returns the registry record for nonce.
func (e *Engine) Lookup(nonce string) (PendingInvocation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.pending[nonce]
	if !ok {
		return PendingInvocation{}, false
	}
	return entry.record, true
}

// Close fails every waiting invocation with ErrClosed and rejects new
// ones. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.done)
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// ResolveApplication builds an Application descriptor with the
// engine's factory.
func (e *Engine) ResolveApplication(raw schema.Application) *Application {
	return e.resolveApplication(raw)
}

// ResolveUser builds a User descriptor with the engine's factory.
func (e *Engine) ResolveUser(raw schema.User) *User {
	return e.resolveUser(raw)
}
