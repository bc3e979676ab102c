package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a point or free vector in R^3, always float64.
type Vector3 struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = Vector3{}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return fromVec(v.vec().Add(o.vec()))
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return fromVec(v.vec().Sub(o.vec()))
}

func (v Vector3) Scale(s float64) Vector3 {
	return fromVec(v.vec().Mul(s))
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.vec().Dot(o.vec())
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return fromVec(v.vec().Cross(o.vec()))
}

func (v Vector3) Length() float64 {
	return v.vec().Len()
}

func (v Vector3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns the unit vector in v's direction, or Zero if v is the
// zero vector (no direction is defined).
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l < 1e-12 {
		return Zero
	}
	return v.Scale(1 / l)
}

func (v Vector3) Negate() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Min returns the componentwise minimum of v and o.
func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y), Z: math.Min(v.Z, o.Z)}
}

// Max returns the componentwise maximum of v and o.
func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y), Z: math.Max(v.Z, o.Z)}
}

// Component returns the value along the given axis (0=X, 1=Y, 2=Z).
func (v Vector3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IsFinite reports whether every component is a finite float (not NaN, not Inf).
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Lerp linearly interpolates between v and o at parameter t (not clamped).
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Distance returns the Euclidean distance between v and o.
func (v Vector3) Distance(o Vector3) float64 {
	return v.Sub(o).Length()
}
