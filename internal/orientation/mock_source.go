// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	mockCycle     = 10 * time.Second // one look-around cycle
	mockStillTime = 4 * time.Second  // head held still at the start of each cycle
	mockEyeHeight = 1.65             // metres
)

type mockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a mock anchor that holds the head still for a few
// seconds, then sweeps yaw left and right with a little pitch, then repeats.
func NewMockSource() Source {
	return newMockSource(time.Now)
}

func newMockSource(now func() time.Time) *mockSource {
	return &mockSource{start: now(), now: now}
}

func (m *mockSource) Next() (Pose, error) {
	elapsed := m.now().Sub(m.start)
	phase := elapsed % mockCycle

	var yaw, pitch float64
	if phase >= mockStillTime {
		// sweep: 0 -> +40° -> -40° -> 0 over the moving part of the cycle
		moving := float64(phase-mockStillTime) / float64(mockCycle-mockStillTime)
		yaw = 40 * math.Sin(2*math.Pi*moving)
		pitch = 10 * math.Sin(4*math.Pi*moving)
	}

	t := elapsed.Seconds()
	return Pose{
		Position: mgl64.Vec3{
			0.02 * math.Sin(t*0.5),
			mockEyeHeight + 0.01*math.Sin(t*1.3),
			0.02 * math.Cos(t*0.5),
		},
		Rotation: FromEulerAngles(pitch, yaw, 0),
	}, nil
}
