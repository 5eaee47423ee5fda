// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package behavior

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	sceneCycle    = 12 * time.Second
	sceneDistance = 1.5 // metres between the two people
)

// MockScene produces two people 1.5 m apart. Person 2 turns from facing
// person 1 to facing the same way and back over each cycle, while both
// raise and lower their arms.
type MockScene struct {
	start time.Time
	now   func() time.Time
}

func NewMockScene() *MockScene {
	return newMockScene(time.Now)
}

func newMockScene(now func() time.Time) *MockScene {
	return &MockScene{start: now(), now: now}
}

// Next returns the bodies at the current time.
func (s *MockScene) Next() []Body {
	phase := float64(s.now().Sub(s.start)%sceneCycle) / float64(sceneCycle)
	// 1 at the start of the cycle, 0 half way through
	toward := 0.5 + 0.5*math.Cos(2*math.Pi*phase)

	yaw2 := 180 * toward
	arm := 10 + 50*(1-toward)

	return []Body{
		mockBody(1, mgl64.Vec3{0, 0, 0}, 0, arm),
		mockBody(2, mgl64.Vec3{0, 0, sceneDistance}, yaw2, arm),
	}
}

// mockBody places a person at pos turned yaw degrees about Y, with both arms
// raised arm degrees away from the torso.
func mockBody(id int, pos mgl64.Vec3, yaw, arm float64) Body {
	q := mgl64.QuatRotate(mgl64.DegToRad(yaw), mgl64.Vec3{0, 1, 0})
	head := pos.Add(mgl64.Vec3{0, 1.65, 0})

	// head bounding box: 20 cm cube, front face towards the facing direction
	forward := q.Rotate(bodyForward).Mul(0.1)
	right := q.Rotate(mgl64.Vec3{1, 0, 0}).Mul(0.1)
	up := mgl64.Vec3{0, 0.1, 0}
	box := make([]mgl64.Vec3, 0, 8)
	for _, f := range []float64{1, -1} {
		for _, c := range [][2]float64{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}} {
			box = append(box, head.Add(forward.Mul(f)).Add(right.Mul(c[0])).Add(up.Mul(c[1])))
		}
	}

	keypoints := make([]mgl64.Vec3, BodyJoints)
	for i := range keypoints {
		keypoints[i] = missingJoint
	}
	s, c := math.Sin(mgl64.DegToRad(arm)), math.Cos(mgl64.DegToRad(arm))
	keypoints[JointLeftShoulder] = pos.Add(mgl64.Vec3{-0.2, 1.4, 0})
	keypoints[JointLeftHip] = pos.Add(mgl64.Vec3{-0.2, 0.9, 0})
	keypoints[JointLeftElbow] = keypoints[JointLeftShoulder].Add(mgl64.Vec3{-0.3 * s, -0.3 * c, 0})
	keypoints[JointRightShoulder] = pos.Add(mgl64.Vec3{0.2, 1.4, 0})
	keypoints[JointRightHip] = pos.Add(mgl64.Vec3{0.2, 0.9, 0})
	keypoints[JointRightElbow] = keypoints[JointRightShoulder].Add(mgl64.Vec3{0.3 * s, -0.3 * c, 0})

	return Body{
		ID:              id,
		Position:        pos,
		RootOrientation: q,
		HeadPosition:    head,
		HeadBoundingBox: box,
		Keypoints:       keypoints,
	}
}
