// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package stationary

import (
	"sync"
	"time"
)

// Sample is one classified tick. Time is elapsed time since sampling started.
type Sample struct {
	Time       time.Duration
	Stationary bool
}

// Log is the ordered record of classified ticks, oldest first. It is a
// growable ring buffer so that pruning from the front is O(1) per sample.
// All methods are safe for concurrent use; PruneAndCount is a single
// critical section.
type Log struct {
	mu   sync.Mutex
	buf  []Sample
	head int // index of the oldest sample
	n    int
}

// NewLog creates a log with room for capacity samples before it grows.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{buf: make([]Sample, capacity)}
}

// CapacityFor returns a ring size that holds a full retention window at the
// given tick period without growing.
func CapacityFor(window, tickPeriod time.Duration) int {
	if tickPeriod <= 0 {
		return 1
	}
	return int(window/tickPeriod) + 1
}

// Append adds a sample at the newest end. Samples must be appended in
// chronological order.
func (l *Log) Append(s Sample) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.n == len(l.buf) {
		l.grow()
	}
	l.buf[(l.head+l.n)%len(l.buf)] = s
	l.n++
}

func (l *Log) grow() {
	next := make([]Sample, 2*len(l.buf))
	for i := 0; i < l.n; i++ {
		next[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	l.buf = next
	l.head = 0
}

// PruneAndCount removes leading samples older than cutoff, stopping at the
// first sample at or after cutoff, and returns how many samples remain and
// how many of those are stationary.
func (l *Log) PruneAndCount(cutoff time.Duration) (remaining, stationary int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.n > 0 && l.buf[l.head].Time < cutoff {
		l.buf[l.head] = Sample{}
		l.head = (l.head + 1) % len(l.buf)
		l.n--
	}

	for i := 0; i < l.n; i++ {
		if l.buf[(l.head+i)%len(l.buf)].Stationary {
			stationary++
		}
	}
	return l.n, stationary
}

// Len returns the number of samples held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n
}

// Samples returns a copy of the log, oldest first.
func (l *Log) Samples() []Sample {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Sample, l.n)
	for i := range out {
		out[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	return out
}
