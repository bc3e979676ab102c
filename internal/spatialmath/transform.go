package spatialmath

// Transform is a rigid transform: rotate then translate. Composition is
// non-commutative; Identity is the neutral element.
type Transform struct {
	Translation Vector3
	Rotation    Quaternion
}

// Identity is the neutral transform.
var Identity = Transform{Rotation: IdentityQuaternion}

func NewTransform(translation Vector3, rotation Quaternion) Transform {
	return Transform{Translation: translation, Rotation: rotation}
}

// Apply rotates then translates p: Apply(p) = Rotation.Rotate(p) + Translation.
func (t Transform) Apply(p Vector3) Vector3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// ApplyVector rotates a free vector (direction or normal) without
// translating it.
func (t Transform) ApplyVector(v Vector3) Vector3 {
	return t.Rotation.Rotate(v)
}

// Compose returns a transform equivalent to applying b first, then a:
// Compose(a, b).Apply(p) == a.Apply(b.Apply(p)).
func Compose(a, b Transform) Transform {
	return Transform{
		Translation: a.Rotation.Rotate(b.Translation).Add(a.Translation),
		Rotation:    a.Rotation.Mul(b.Rotation),
	}
}

// Inverse returns the exact inverse transform.
func (t Transform) Inverse() Transform {
	invRot := t.Rotation.Inverse()
	return Transform{
		Translation: invRot.Rotate(t.Translation.Negate()),
		Rotation:    invRot,
	}
}

// Lerp interpolates translation linearly and rotation via slerp, as used for
// retract insertion state.
func (t Transform) Lerp(o Transform, amount float64) Transform {
	return Transform{
		Translation: t.Translation.Lerp(o.Translation, amount),
		Rotation:    t.Rotation.Slerp(o.Rotation, amount),
	}
}

// IsFinite reports whether every component of t is finite.
func (t Transform) IsFinite() bool {
	return t.Translation.IsFinite() && t.Rotation.IsFinite()
}
