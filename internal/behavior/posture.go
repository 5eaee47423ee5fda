// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package behavior

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Posture is a per-person posture class.
type Posture int

const (
	Relaxed Posture = 0
	Stiff   Posture = 1
)

// Joint indices in the 34-joint body layout.
const (
	JointRightShoulder = 5
	JointRightElbow    = 6
	JointLeftShoulder  = 12
	JointLeftElbow     = 13
	JointRightHip      = 18
	JointLeftHip       = 22

	BodyJoints = 34
)

// PostureConfig holds the posture threshold.
type PostureConfig struct {
	MaxShoulderAngle float64 // degrees; both arms below this means stiff
}

// PostureResult is the posture of one body.
type PostureResult struct {
	ID      int
	Posture Posture
}

// JointAngle returns the angle at vertex between the segments to a and c,
// measured in the image (X-Y) plane, in degrees [0, 180].
func JointAngle(a, vertex, c mgl64.Vec3) float64 {
	toA := math.Atan2(a.Y()-vertex.Y(), a.X()-vertex.X())
	toC := math.Atan2(c.Y()-vertex.Y(), c.X()-vertex.X())
	deg := math.Abs(mgl64.RadToDeg(toC - toA))
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// ShoulderAngles returns the elbow-shoulder-hip angle of each side. ok is
// false when any of the six joints is missing.
func ShoulderAngles(keypoints []mgl64.Vec3) (left, right float64, ok bool) {
	for _, j := range []int{JointLeftShoulder, JointLeftElbow, JointLeftHip, JointRightShoulder, JointRightElbow, JointRightHip} {
		if j >= len(keypoints) || jointMissing(keypoints[j]) {
			return 0, 0, false
		}
	}

	left = JointAngle(keypoints[JointLeftElbow], keypoints[JointLeftShoulder], keypoints[JointLeftHip])
	right = JointAngle(keypoints[JointRightElbow], keypoints[JointRightShoulder], keypoints[JointRightHip])
	return left, right, true
}

// ClassifyPosture reports Stiff when both arms are held closer to the body
// than MaxShoulderAngle. ok is false when a needed joint is missing.
func ClassifyPosture(keypoints []mgl64.Vec3, cfg PostureConfig) (Posture, bool) {
	left, right, ok := ShoulderAngles(keypoints)
	if !ok {
		return 0, false
	}
	if left < cfg.MaxShoulderAngle && right < cfg.MaxShoulderAngle {
		return Stiff, true
	}
	return Relaxed, true
}

// ClassifyPostures classifies every body, skipping bodies with missing joints.
func ClassifyPostures(bodies []Body, cfg PostureConfig) []PostureResult {
	results := make([]PostureResult, 0, len(bodies))
	for _, b := range bodies {
		if p, ok := ClassifyPosture(b.Keypoints, cfg); ok {
			results = append(results, PostureResult{ID: b.ID, Posture: p})
		}
	}
	return results
}
