// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package behavior

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Interaction is the interaction state of a frame.
type Interaction int

const (
	NotInteracting Interaction = 0
	Interacting    Interaction = 1
)

// FacingSource selects which facing direction and position the two-person
// check compares.
type FacingSource int

const (
	// FacingRoot uses the body root orientation and the body position.
	FacingRoot FacingSource = iota
	// FacingHead uses the head bounding box and the head position.
	FacingHead
)

// ParseFacingSource maps a config value ("root" or "head").
func ParseFacingSource(name string) (FacingSource, error) {
	switch name {
	case "root":
		return FacingRoot, nil
	case "head":
		return FacingHead, nil
	default:
		return 0, fmt.Errorf("unknown facing source %q", name)
	}
}

// ErrFacingUnknown is returned when a body's facing direction cannot be
// derived, e.g. a degenerate head bounding box.
var ErrFacingUnknown = errors.New("facing direction unknown")

// bodyForward is the direction a body with identity root orientation faces.
var bodyForward = mgl64.Vec3{0, 0, 1}

// InteractionConfig holds the two-person thresholds.
type InteractionConfig struct {
	Facing         FacingSource
	MaxFacingAngle float64 // degrees; below this the two are not facing each other
	MinDistance    float64 // metres; beyond this they are apart
}

// RootFacing is the direction the body root faces.
func RootFacing(b Body) mgl64.Vec3 {
	return b.RootOrientation.Rotate(bodyForward)
}

// HeadFacing is the unit vector from the back face centre of the head
// bounding box to its front face centre.
func HeadFacing(b Body) (mgl64.Vec3, error) {
	box := b.HeadBoundingBox
	if len(box) != 8 {
		return mgl64.Vec3{}, fmt.Errorf("body %d: head bounding box has %d corners: %w", b.ID, len(box), ErrFacingUnknown)
	}

	var front, back mgl64.Vec3
	for i := 0; i < 4; i++ {
		front = front.Add(box[i])
		back = back.Add(box[i+4])
	}
	dir := front.Sub(back).Mul(0.25)
	if dir.Len() < 1e-9 {
		return mgl64.Vec3{}, fmt.Errorf("body %d: flat head bounding box: %w", b.ID, ErrFacingUnknown)
	}
	return dir.Normalize(), nil
}

// VectorAngle returns the angle between a and b in degrees, [0, 180].
func VectorAngle(a, b mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Atan2(a.Cross(b).Len(), a.Dot(b)))
}

// CheckInteraction classifies a frame. Nobody or a single person is never
// interacting and more than two people always are. Two people are not
// interacting only when they face away from each other (facing angle below
// MaxFacingAngle) and stand further apart than MinDistance.
func CheckInteraction(bodies []Body, cfg InteractionConfig) (Interaction, error) {
	switch {
	case len(bodies) <= 1:
		return NotInteracting, nil
	case len(bodies) > 2:
		return Interacting, nil
	}

	a, b := bodies[0], bodies[1]
	var (
		facingA, facingB mgl64.Vec3
		posA, posB       mgl64.Vec3
		err              error
	)
	switch cfg.Facing {
	case FacingHead:
		if facingA, err = HeadFacing(a); err != nil {
			return 0, err
		}
		if facingB, err = HeadFacing(b); err != nil {
			return 0, err
		}
		posA, posB = a.HeadPosition, b.HeadPosition
	default:
		facingA, facingB = RootFacing(a), RootFacing(b)
		posA, posB = a.Position, b.Position
	}

	angle := VectorAngle(facingA, facingB)
	distance := posA.Sub(posB).Len()
	if angle < cfg.MaxFacingAngle && distance > cfg.MinDistance {
		return NotInteracting, nil
	}
	return Interacting, nil
}
