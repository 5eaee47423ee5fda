// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrAnchorUnavailable is returned by a Source when the tracking anchor
// cannot be found this tick. Callers skip the tick.
var ErrAnchorUnavailable = errors.New("tracking anchor unavailable")

// Pose is the anchor pose in the tracking source's convention
// (left-handed, Y up). Rotation is a unit quaternion.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Source is anything that can provide anchor poses over time: mock, MQTT, replay.
type Source interface {
	Next() (Pose, error)
}

// AngleBetween returns the shortest-arc rotation angle in degrees that takes
// a to b. The angle is taken from the relative rotation with atan2, which
// stays accurate for small angles where acos of the dot product does not.
// q and -q are the same rotation, hence the absolute scalar part.
func AngleBetween(a, b mgl64.Quat) float64 {
	rel := a.Inverse().Mul(b)
	return mgl64.RadToDeg(2 * math.Atan2(rel.V.Len(), math.Abs(rel.W)))
}

// gimbalLockSin is sin(pitch) from which pitch is treated as exactly ±90°,
// about 0.08° short of the pole.
const gimbalLockSin = 0.999999

// EulerAngles decomposes q into (x, y, z) rotation angles in degrees using the
// Z-X-Y order of the headset runtime (roll about Z first, then pitch about X,
// then yaw about Y). Each angle is wrapped to [0, 360).
func EulerAngles(q mgl64.Quat) mgl64.Vec3 {
	q = q.Normalize()
	w, x, y, z := q.W, q.V.X(), q.V.Y(), q.V.Z()

	sinX := 2 * (w*x - y*z)
	var ex, ey, ez float64
	if math.Abs(sinX) >= gimbalLockSin {
		// gimbal lock: pitch is ±90°, fold roll into yaw
		ex = math.Copysign(math.Pi/2, sinX)
		ey = math.Atan2(2*(w*y-x*z), 1-2*(y*y+z*z))
		ez = 0
	} else {
		ex = math.Asin(sinX)
		ey = math.Atan2(2*(w*y+x*z), 1-2*(x*x+y*y))
		ez = math.Atan2(2*(w*z+x*y), 1-2*(x*x+z*z))
	}

	return mgl64.Vec3{wrapDegrees(ex), wrapDegrees(ey), wrapDegrees(ez)}
}

// FromEulerAngles builds the rotation EulerAngles decomposes: angles in
// degrees about X, Y and Z, applied Z first, then X, then Y.
func FromEulerAngles(x, y, z float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), mgl64.Vec3{0, 1, 0})
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), mgl64.Vec3{1, 0, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// HostPosition converts a tracking-space position (Y up) to the host's
// Z-up convention by swapping Y and Z.
func HostPosition(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{p.X(), p.Z(), p.Y()}
}

func wrapDegrees(rad float64) float64 {
	deg := math.Mod(mgl64.RadToDeg(rad), 360)
	if deg < 0 {
		deg += 360
	}
	// -0 and values rounding to 360 both read as 0
	if deg >= 360 || deg == 0 {
		return 0
	}
	return deg
}
