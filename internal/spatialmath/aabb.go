package spatialmath

// AABB is an axis-aligned bounding box with Min <= Max componentwise. Empty
// AABBs are forbidden by construction; a degenerate point AABB has Min == Max.
type AABB struct {
	Min, Max Vector3
}

// NewAABB builds an AABB from two corners, normalising so Min <= Max
// componentwise regardless of argument order.
func NewAABB(a, b Vector3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// NewAABBFromCenter builds an AABB from a center point and full size.
func NewAABBFromCenter(center, size Vector3) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func aabbOfPoints(points ...Vector3) AABB {
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Center returns the AABB's geometric center.
func (a AABB) Center() Vector3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// HalfExtents returns half the size along each axis.
func (a AABB) HalfExtents() Vector3 {
	return a.Max.Sub(a.Min).Scale(0.5)
}

// Diagonal returns the length of the box's space diagonal, used as a scale
// reference for numerical epsilons.
func (a AABB) Diagonal() float64 {
	return a.Max.Sub(a.Min).Length()
}

// ContainsPoint reports whether p lies within a, inclusive of the boundary.
func (a AABB) ContainsPoint(p Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Overlaps reports whether a and b intersect, inclusive on the boundary.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Union returns the smallest AABB enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// ExpandByPoint grows a (if needed) to contain p.
func (a AABB) ExpandByPoint(p Vector3) AABB {
	return AABB{Min: a.Min.Min(p), Max: a.Max.Max(p)}
}

// Dilate grows a uniformly by margin in every direction (used by
// collision.AABBsIntersect).
func (a AABB) Dilate(margin float64) AABB {
	m := Vector3{X: margin, Y: margin, Z: margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// Volume returns the box's volume (0 for a degenerate point/plane/line box).
func (a AABB) Volume() float64 {
	size := a.Max.Sub(a.Min)
	return size.X * size.Y * size.Z
}

// Corners returns the 8 corner points of the box.
func (a AABB) Corners() [8]Vector3 {
	return [8]Vector3{
		{a.Min.X, a.Min.Y, a.Min.Z}, {a.Max.X, a.Min.Y, a.Min.Z},
		{a.Min.X, a.Max.Y, a.Min.Z}, {a.Max.X, a.Max.Y, a.Min.Z},
		{a.Min.X, a.Min.Y, a.Max.Z}, {a.Max.X, a.Min.Y, a.Max.Z},
		{a.Min.X, a.Max.Y, a.Max.Z}, {a.Max.X, a.Max.Y, a.Max.Z},
	}
}

// Transformed reconstructs the AABB enclosing a after applying t: for a
// translation-only transform the box is shifted directly, otherwise the 8
// corners are rotated and re-enclosed (an OBB-as-AABB reconstruction).
func (a AABB) Transformed(t Transform) AABB {
	if t.Rotation == IdentityQuaternion {
		return AABB{Min: a.Min.Add(t.Translation), Max: a.Max.Add(t.Translation)}
	}
	corners := a.Corners()
	transformed := make([]Vector3, len(corners))
	for i, c := range corners {
		transformed[i] = t.Apply(c)
	}
	return aabbOfPoints(transformed...)
}

// IsFinite reports whether every bound is finite.
func (a AABB) IsFinite() bool {
	return a.Min.IsFinite() && a.Max.IsFinite()
}

// IsValid reports whether Min <= Max componentwise (non-empty, since empty
// AABBs are forbidden by construction).
func (a AABB) IsValid() bool {
	return a.Min.X <= a.Max.X && a.Min.Y <= a.Max.Y && a.Min.Z <= a.Max.Z
}

// SurfaceArea returns the total area of the box's six faces.
func (a AABB) SurfaceArea() float64 {
	size := a.Max.Sub(a.Min)
	return 2 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis index (0=X,1=Y,2=Z) of the box's longest
// extent, ties broken toward the lower axis index.
func (a AABB) LongestAxis() int {
	size := a.Max.Sub(a.Min)
	axis := 0
	longest := size.X
	if size.Y > longest {
		axis, longest = 1, size.Y
	}
	if size.Z > longest {
		axis = 2
	}
	return axis
}
