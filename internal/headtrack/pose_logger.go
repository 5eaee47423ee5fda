// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package headtrack

import (
	"errors"
	"log"

	"github.com/relabs-tech/head_sync/internal/orientation"
)

// PoseLogger writes the anchor pose to a diagnostic logger once per frame.
// It keeps no state and forwards nothing.
type PoseLogger struct {
	src orientation.Source
	out *log.Logger
}

func NewPoseLogger(src orientation.Source, out *log.Logger) *PoseLogger {
	return &PoseLogger{src: src, out: out}
}

// OnFrame logs the current pose, or nothing when the anchor is missing.
func (l *PoseLogger) OnFrame() {
	pose, err := l.src.Next()
	if err != nil {
		if !errors.Is(err, orientation.ErrAnchorUnavailable) {
			l.out.Printf("pose logger: anchor read error: %v", err)
		}
		return
	}

	p, q := pose.Position, pose.Rotation
	l.out.Printf("Head Position: (%.3f, %.3f, %.3f)", p.X(), p.Y(), p.Z())
	l.out.Printf("Head Rotation: (%.5f, %.5f, %.5f, %.5f)", q.V.X(), q.V.Y(), q.V.Z(), q.W)
}
