// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// AnchorMessage is the JSON form of an anchor pose as published by the
// headset bridge on the anchor topic.
type AnchorMessage struct {
	Position Vec3JSON `json:"position"`
	Rotation QuatJSON `json:"rotation"`
}

// Vec3JSON is a position in the tracking source's convention.
type Vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// QuatJSON is a rotation quaternion with the scalar part last.
type QuatJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// NewAnchorMessage converts a pose into its wire form.
func NewAnchorMessage(p Pose) AnchorMessage {
	return AnchorMessage{
		Position: Vec3JSON{X: p.Position.X(), Y: p.Position.Y(), Z: p.Position.Z()},
		Rotation: QuatJSON{X: p.Rotation.V.X(), Y: p.Rotation.V.Y(), Z: p.Rotation.V.Z(), W: p.Rotation.W},
	}
}

// Pose converts the message back into a Pose with a normalized rotation.
// A zero-length quaternion carries no orientation and is rejected.
func (m AnchorMessage) Pose() (Pose, error) {
	q := mgl64.Quat{W: m.Rotation.W, V: mgl64.Vec3{m.Rotation.X, m.Rotation.Y, m.Rotation.Z}}
	if q.Len() < 1e-9 {
		return Pose{}, errors.New("anchor rotation is a zero quaternion")
	}
	return Pose{
		Position: mgl64.Vec3{m.Position.X, m.Position.Y, m.Position.Z},
		Rotation: q.Normalize(),
	}, nil
}

// DecodeAnchor parses an anchor payload.
func DecodeAnchor(payload []byte) (Pose, error) {
	var m AnchorMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return Pose{}, fmt.Errorf("anchor payload: %w", err)
	}
	return m.Pose()
}
