// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so that
// timeouts and time-derived identifiers can be tested
// deterministically.
//
// Production code holds a Clock field set to Real(). Tests use Fake(),
// which only moves when Advance is called:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	engine, _ := interaction.NewEngine(interaction.Config{Clock: c, ...})
//	go engine.Invoke(ctx, request)
//	c.WaitForTimers(1)          // the invocation armed its timeout
//	c.Advance(7 * time.Second)  // fire it deterministically
//
// WaitForTimers removes the race between a goroutine arming a timer and
// the test advancing the clock.
package clock
