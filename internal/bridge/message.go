// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bridge

import (
	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/orientation"
)

// Named channels understood by the host.
const (
	ChannelHeadPose             = "ToGH_HeadPose"
	ChannelStationaryPercentage = "ToGH_StationaryPercentage"
	ChannelInteraction          = "ToGH_Interaction"
	ChannelPosture              = "ToGH_Posture"
)

// Point3 is a 3D point or vector in the host's convention.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// HeadPoseMessage is the payload of the head pose channel. HeadPosition is
// Z-up (tracking Y and Z swapped), HeadRotation holds Euler angles in degrees.
type HeadPoseMessage struct {
	HeadPosition Point3
	HeadRotation Point3
}

// StationaryPercentageMessage is the payload of the stationary percentage
// channel, 0-100.
type StationaryPercentageMessage struct {
	StationaryPercentage float64
}

// NewHeadPoseMessage converts a tracking-space pose to the host payload.
func NewHeadPoseMessage(p orientation.Pose) HeadPoseMessage {
	pos := orientation.HostPosition(p.Position)
	rot := orientation.EulerAngles(p.Rotation)
	return HeadPoseMessage{
		HeadPosition: Point3{X: pos.X(), Y: pos.Y(), Z: pos.Z()},
		HeadRotation: Point3{X: rot.X(), Y: rot.Y(), Z: rot.Z()},
	}
}

// InteractionMessage is the payload of the interaction channel: 1 when the
// tracked people are interacting, else 0.
type InteractionMessage struct {
	Interaction int
}

// PostureEntry is the posture of one tracked person: 1 stiff, 0 relaxed.
type PostureEntry struct {
	ID      int
	Posture int
}

// PostureMessage is the payload of the posture channel.
type PostureMessage struct {
	Postures []PostureEntry
}

// NewPostureMessage converts classifier results to the host payload.
func NewPostureMessage(results []behavior.PostureResult) PostureMessage {
	m := PostureMessage{Postures: make([]PostureEntry, len(results))}
	for i, r := range results {
		m.Postures[i] = PostureEntry{ID: r.ID, Posture: int(r.Posture)}
	}
	return m
}
