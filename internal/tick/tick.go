// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package tick drives fixed-step callbacks from a ticker.
//
// Elapsed time advances by exactly one period per tick, the way a physics
// step clock does, so schedules built on it do not drift with ticker jitter.
package tick

import (
	"context"
	"fmt"
	"time"
)

// Func is called once per tick with the fixed-step time since the driver started.
type Func func(elapsed time.Duration)

// Run calls fn immediately with elapsed 0 and then once per period until
// ctx is done.
func Run(ctx context.Context, period time.Duration, fn Func) error {
	if period <= 0 {
		return fmt.Errorf("tick period must be positive, got %s", period)
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	RunChan(ctx, ticker.C, period, fn)
	return nil
}

// RunChan is Run over an arbitrary tick channel. It returns when ctx is done
// or ticks is closed.
func RunChan(ctx context.Context, ticks <-chan time.Time, period time.Duration, fn Func) {
	var n time.Duration
	fn(0)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			n++
			fn(n * period)
		}
	}
}
