package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion is a unit rotation quaternion. Quaternions are assumed
// normalised everywhere in this package; denormalisation beyond 1e-9 is
// treated as a caller bug (see IsNormalized), never silently corrected
// mid-pipeline.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion is the neutral rotation.
var IdentityQuaternion = Quaternion{W: 1}

func (q Quaternion) quat() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func fromQuat(q mgl64.Quat) Quaternion {
	return Quaternion{W: q.W, X: q.V[0], Y: q.V[1], Z: q.V[2]}
}

// QuaternionFromEuler builds a quaternion from (rx, ry, rz) radians using a fixed XYZ
// extrinsic order.
func QuaternionFromEuler(rx, ry, rz float64) Quaternion {
	return fromQuat(mgl64.AnglesToQuat(rx, ry, rz, mgl64.XYZ))
}

// ToEuler recovers the (rx, ry, rz) radian triple in the same XYZ extrinsic
// convention QuaternionFromEuler uses. Near gimbal lock the decomposition is not
// unique; this returns one valid representative.
func (q Quaternion) ToEuler() (rx, ry, rz float64) {
	// Standard XYZ extrinsic (== ZYX intrinsic) decomposition from the
	// rotation matrix built out of the quaternion components.
	ww, xx, yy, zz := q.W*q.W, q.X*q.X, q.Y*q.Y, q.Z*q.Z
	m20 := 2 * (q.X*q.Z + q.W*q.Y)
	clamped := math.Max(-1, math.Min(1, m20))
	ry = math.Asin(clamped)

	if math.Abs(clamped) < 0.999999 {
		m10 := 2 * (q.X*q.Y - q.W*q.Z)
		m00 := ww + xx - yy - zz
		m21 := 2 * (q.Y*q.Z - q.W*q.X)
		m22 := ww - xx - yy + zz
		rz = math.Atan2(-m10, m00)
		rx = math.Atan2(-m21, m22)
	} else {
		// Gimbal lock: collapse rx into rz.
		m01 := 2 * (q.X*q.Y + q.W*q.Z)
		m11 := ww - xx + yy - zz
		rz = math.Atan2(m01, m11)
		rx = 0
	}
	return rx, ry, rz
}

func (q Quaternion) Normalize() Quaternion {
	return fromQuat(q.quat().Normalize())
}

// IsNormalized reports whether q is within a 1e-9 tolerance of unit length.
func (q Quaternion) IsNormalized() bool {
	n := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	return math.Abs(n-1) <= 1e-9
}

func (q Quaternion) Mul(o Quaternion) Quaternion {
	return fromQuat(q.quat().Mul(o.quat()))
}

func (q Quaternion) Inverse() Quaternion {
	return fromQuat(q.quat().Inverse())
}

// Rotate applies q to v.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	return fromVec(q.quat().Rotate(v.vec()))
}

// Slerp spherically interpolates between q and o at parameter t in [0, 1].
func (q Quaternion) Slerp(o Quaternion, t float64) Quaternion {
	return fromQuat(mgl64.QuatSlerp(q.quat(), o.quat(), t))
}

// IsFinite reports whether every component is finite.
func (q Quaternion) IsFinite() bool {
	return !math.IsNaN(q.W) && !math.IsInf(q.W, 0) &&
		!math.IsNaN(q.X) && !math.IsInf(q.X, 0) &&
		!math.IsNaN(q.Y) && !math.IsInf(q.Y, 0) &&
		!math.IsNaN(q.Z) && !math.IsInf(q.Z, 0)
}
