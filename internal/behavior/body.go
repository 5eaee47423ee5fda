// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package behavior classifies how tracked people relate to each other and
// hold themselves: whether two people are interacting, and whether each
// person's posture is stiff or relaxed.
package behavior

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is one tracked person in the body tracker's frame (right-handed,
// Y up, metres). Keypoints use the 34-joint body layout; a missing joint
// is a NaN vector.
type Body struct {
	ID              int
	Position        mgl64.Vec3
	RootOrientation mgl64.Quat
	HeadPosition    mgl64.Vec3
	HeadBoundingBox []mgl64.Vec3 // front face corners first, then back face
	Keypoints       []mgl64.Vec3
}

// BodiesMessage is the JSON frame published by the body tracker.
type BodiesMessage struct {
	Bodies []BodyJSON `json:"bodies"`
}

// BodyJSON is the wire form of a Body. Orientation is [x, y, z, w];
// missing keypoints are null.
type BodyJSON struct {
	ID                    int           `json:"id"`
	Position              [3]float64    `json:"position"`
	GlobalRootOrientation [4]float64    `json:"global_root_orientation"`
	HeadPosition          [3]float64    `json:"head_position"`
	HeadBoundingBox       [][3]float64  `json:"head_bounding_box"`
	Keypoints             []*[3]float64 `json:"keypoint"`
}

var missingJoint = mgl64.Vec3{math.NaN(), math.NaN(), math.NaN()}

// DecodeBodies parses one body tracker frame.
func DecodeBodies(payload []byte) ([]Body, error) {
	var m BodiesMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode bodies: %w", err)
	}

	bodies := make([]Body, 0, len(m.Bodies))
	for _, b := range m.Bodies {
		body, err := b.Body()
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

// Body converts the wire form. A zero root quaternion is rejected.
func (b BodyJSON) Body() (Body, error) {
	o := b.GlobalRootOrientation
	q := mgl64.Quat{W: o[3], V: mgl64.Vec3{o[0], o[1], o[2]}}
	if q.Len() < 1e-9 {
		return Body{}, fmt.Errorf("body %d: root orientation is a zero quaternion", b.ID)
	}

	body := Body{
		ID:              b.ID,
		Position:        mgl64.Vec3(b.Position),
		RootOrientation: q.Normalize(),
		HeadPosition:    mgl64.Vec3(b.HeadPosition),
		HeadBoundingBox: make([]mgl64.Vec3, len(b.HeadBoundingBox)),
		Keypoints:       make([]mgl64.Vec3, len(b.Keypoints)),
	}
	for i, p := range b.HeadBoundingBox {
		body.HeadBoundingBox[i] = mgl64.Vec3(p)
	}
	for i, p := range b.Keypoints {
		if p == nil {
			body.Keypoints[i] = missingJoint
			continue
		}
		body.Keypoints[i] = mgl64.Vec3(*p)
	}
	return body, nil
}

// NewBodiesMessage converts bodies into their wire form.
func NewBodiesMessage(bodies []Body) BodiesMessage {
	m := BodiesMessage{Bodies: make([]BodyJSON, len(bodies))}
	for i, b := range bodies {
		j := BodyJSON{
			ID:                    b.ID,
			Position:              b.Position,
			GlobalRootOrientation: [4]float64{b.RootOrientation.V.X(), b.RootOrientation.V.Y(), b.RootOrientation.V.Z(), b.RootOrientation.W},
			HeadPosition:          b.HeadPosition,
			HeadBoundingBox:       make([][3]float64, len(b.HeadBoundingBox)),
			Keypoints:             make([]*[3]float64, len(b.Keypoints)),
		}
		for k, p := range b.HeadBoundingBox {
			j.HeadBoundingBox[k] = p
		}
		for k, p := range b.Keypoints {
			if jointMissing(p) {
				continue
			}
			v := [3]float64(p)
			j.Keypoints[k] = &v
		}
		m.Bodies[i] = j
	}
	return m
}

func jointMissing(p mgl64.Vec3) bool {
	return math.IsNaN(p.X()) || math.IsNaN(p.Y()) || math.IsNaN(p.Z())
}
