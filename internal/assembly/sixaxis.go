package assembly

import "github.com/Jinderamarak/safe-stage/internal/spatialmath"

// SixAxis is the stage's full pose: three translation axes and three
// rotation axes (radians, fixed XYZ extrinsic order). The identity pose is
// all zeros.
type SixAxis struct {
	X, Y, Z    float64
	RX, RY, RZ float64
}

// IdentitySixAxis is the neutral stage pose.
var IdentitySixAxis = SixAxis{}

// NewSixAxis builds a SixAxis, rejecting any non-finite component.
func NewSixAxis(x, y, z, rx, ry, rz float64) (SixAxis, error) {
	s := SixAxis{X: x, Y: y, Z: z, RX: rx, RY: ry, RZ: rz}
	if !s.IsFinite() {
		return SixAxis{}, ErrNonFinite
	}
	return s, nil
}

// IsFinite reports whether every component is finite (non-NaN, non-Inf).
func (s SixAxis) IsFinite() bool {
	return isFinite(s.X) && isFinite(s.Y) && isFinite(s.Z) &&
		isFinite(s.RX) && isFinite(s.RY) && isFinite(s.RZ)
}

// Transform converts the pose to a rigid transform in its parent frame.
func (s SixAxis) Transform() spatialmath.Transform {
	return spatialmath.NewTransform(
		spatialmath.NewVector3(s.X, s.Y, s.Z),
		spatialmath.QuaternionFromEuler(s.RX, s.RY, s.RZ),
	)
}

// ApproxEqual reports whether s equals o within tol on every component,
// used by the down-rotate-find resolver to detect "reached".
func (s SixAxis) ApproxEqual(o SixAxis, tol float64) bool {
	return absDiff(s.X, o.X) <= tol && absDiff(s.Y, o.Y) <= tol && absDiff(s.Z, o.Z) <= tol &&
		absDiff(s.RX, o.RX) <= tol && absDiff(s.RY, o.RY) <= tol && absDiff(s.RZ, o.RZ) <= tol
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
