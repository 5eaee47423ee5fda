// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package stationary

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrEmptyWindow is returned when no sample falls inside the retention window.
var ErrEmptyWindow = errors.New("no samples in retention window")

// EmptyWindowPolicy decides what Run forwards when the window is empty.
type EmptyWindowPolicy int

const (
	// SkipEmpty forwards nothing.
	SkipEmpty EmptyWindowPolicy = iota
	// ZeroEmpty forwards 0%.
	ZeroEmpty
)

// ParsePolicy maps the configuration names "skip" and "zero" to a policy.
func ParsePolicy(name string) (EmptyWindowPolicy, error) {
	switch name {
	case "skip":
		return SkipEmpty, nil
	case "zero":
		return ZeroEmpty, nil
	default:
		return SkipEmpty, fmt.Errorf("unknown empty window policy %q", name)
	}
}

// PercentageSink receives the stationary percentage.
type PercentageSink interface {
	SendStationaryPercentage(value float64) error
}

// Estimator computes the share of stationary ticks over the trailing
// retention window of a Log and forwards it.
type Estimator struct {
	log    *Log
	window time.Duration
	policy EmptyWindowPolicy
	sink   PercentageSink

	// LogResults logs every forwarded percentage.
	LogResults bool
}

// NewEstimator returns an estimator over l.
func NewEstimator(l *Log, window time.Duration, policy EmptyWindowPolicy, sink PercentageSink) *Estimator {
	return &Estimator{log: l, window: window, policy: policy, sink: sink}
}

// Estimate prunes samples older than now-window and returns the stationary
// percentage of what remains, in [0, 100].
func (e *Estimator) Estimate(now time.Duration) (float64, error) {
	remaining, stationary := e.log.PruneAndCount(now - e.window)
	if remaining == 0 {
		return 0, ErrEmptyWindow
	}
	return float64(stationary) / float64(remaining) * 100, nil
}

// Run estimates at now and forwards the result. Sink failures are logged
// and dropped.
func (e *Estimator) Run(now time.Duration) {
	pct, err := e.Estimate(now)
	if errors.Is(err, ErrEmptyWindow) {
		if e.policy == SkipEmpty {
			return
		}
		pct = 0
	}

	if e.LogResults {
		log.Printf("estimator: t=%s stationary=%.2f%%", now, pct)
	}

	if err := e.sink.SendStationaryPercentage(pct); err != nil {
		log.Printf("estimator: forward stationary percentage: %v", err)
	}
}
