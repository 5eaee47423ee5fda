// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package stationary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapacityFor(t *testing.T) {
	assert.Equal(t, 6, CapacityFor(5*time.Second, time.Second))
	assert.Equal(t, 301, CapacityFor(5*time.Second, time.Second/60))
	assert.Equal(t, 1, CapacityFor(5*time.Second, 0))
}

func TestLog_AppendGrowsPastCapacity(t *testing.T) {
	l := NewLog(2)
	for i := 0; i < 7; i++ {
		l.Append(Sample{Time: time.Duration(i) * time.Second, Stationary: i%2 == 0})
	}

	got := l.Samples()
	assert.Len(t, got, 7)
	for i, s := range got {
		assert.Equal(t, time.Duration(i)*time.Second, s.Time)
		assert.Equal(t, i%2 == 0, s.Stationary)
	}
}

func TestLog_PruneStopsAtFirstSampleInsideWindow(t *testing.T) {
	l := NewLog(4)
	for _, sec := range []int{1, 2, 3, 4, 5} {
		l.Append(Sample{Time: time.Duration(sec) * time.Second, Stationary: sec != 3})
	}

	remaining, stationary := l.PruneAndCount(3 * time.Second)
	assert.Equal(t, 3, remaining)
	assert.Equal(t, 2, stationary)

	for _, s := range l.Samples() {
		assert.GreaterOrEqual(t, s.Time, 3*time.Second)
	}
}

func TestLog_PruneWrapsAroundRing(t *testing.T) {
	l := NewLog(3)
	now := time.Duration(0)
	for i := 0; i < 20; i++ {
		now = time.Duration(i) * time.Second
		l.Append(Sample{Time: now, Stationary: true})
		remaining, stationary := l.PruneAndCount(now - 2*time.Second)
		assert.LessOrEqual(t, remaining, 3)
		assert.Equal(t, remaining, stationary)
	}
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []Sample{
		{Time: 17 * time.Second, Stationary: true},
		{Time: 18 * time.Second, Stationary: true},
		{Time: 19 * time.Second, Stationary: true},
	}, l.Samples())
}

func TestLog_PruneEverything(t *testing.T) {
	l := NewLog(2)
	l.Append(Sample{Time: time.Second})
	l.Append(Sample{Time: 2 * time.Second})

	remaining, stationary := l.PruneAndCount(10 * time.Second)
	assert.Zero(t, remaining)
	assert.Zero(t, stationary)
	assert.Empty(t, l.Samples())

	// still usable after being emptied
	l.Append(Sample{Time: 11 * time.Second, Stationary: true})
	assert.Equal(t, 1, l.Len())
}
