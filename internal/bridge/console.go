// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bridge

import (
	"fmt"
	"io"

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/orientation"
)

// ConsoleSink prints both channels to a writer, one line per message.
type ConsoleSink struct {
	w io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) SendPose(p orientation.Pose) error {
	PrintHeadPose(c.w, NewHeadPoseMessage(p))
	return nil
}

func (c *ConsoleSink) SendStationaryPercentage(value float64) error {
	PrintStationaryPercentage(c.w, StationaryPercentageMessage{StationaryPercentage: value})
	return nil
}

func (c *ConsoleSink) SendInteraction(i behavior.Interaction) error {
	PrintInteraction(c.w, InteractionMessage{Interaction: int(i)})
	return nil
}

func (c *ConsoleSink) SendPostures(results []behavior.PostureResult) error {
	PrintPostures(c.w, NewPostureMessage(results))
	return nil
}

// PrintHeadPose writes a [POSE] line.
func PrintHeadPose(w io.Writer, m HeadPoseMessage) {
	fmt.Fprintf(w,
		"[POSE]  X=%7.3f  Y=%7.3f  Z=%7.3f  RX=%6.2f  RY=%6.2f  RZ=%6.2f\n",
		m.HeadPosition.X, m.HeadPosition.Y, m.HeadPosition.Z,
		m.HeadRotation.X, m.HeadRotation.Y, m.HeadRotation.Z,
	)
}

// PrintStationaryPercentage writes a [STAT] line.
func PrintStationaryPercentage(w io.Writer, m StationaryPercentageMessage) {
	fmt.Fprintf(w, "[STAT]  stationary=%6.2f%%\n", m.StationaryPercentage)
}

// PrintInteraction writes an [INTR] line.
func PrintInteraction(w io.Writer, m InteractionMessage) {
	fmt.Fprintf(w, "[INTR]  interaction=%d\n", m.Interaction)
}

// PrintPostures writes one [POST] line per person, or a single line when
// nobody could be classified.
func PrintPostures(w io.Writer, m PostureMessage) {
	if len(m.Postures) == 0 {
		fmt.Fprintln(w, "[POST]  none")
		return
	}
	for _, p := range m.Postures {
		fmt.Fprintf(w, "[POST]  id=%d posture=%d\n", p.ID, p.Posture)
	}
}
