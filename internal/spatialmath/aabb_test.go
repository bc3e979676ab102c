package spatialmath

import (
	"math"
	"testing"
)

func TestAABBOverlapsInclusiveBoundary(t *testing.T) {
	a := AABB{Min: NewVector3(0, 0, 0), Max: NewVector3(1, 1, 1)}
	touching := AABB{Min: NewVector3(1, 0, 0), Max: NewVector3(2, 1, 1)}
	if !a.Overlaps(touching) {
		t.Error("boundary-touching boxes should overlap under the inclusive boundary rule")
	}
	separate := AABB{Min: NewVector3(1.001, 0, 0), Max: NewVector3(2, 1, 1)}
	if a.Overlaps(separate) {
		t.Error("clearly separated boxes should not overlap")
	}
}

func TestAABBContainsPoint(t *testing.T) {
	a := AABB{Min: NewVector3(-1, -1, -1), Max: NewVector3(1, 1, 1)}
	if !a.ContainsPoint(NewVector3(1, 1, 1)) {
		t.Error("corner point should be contained (inclusive boundary)")
	}
	if a.ContainsPoint(NewVector3(1.1, 0, 0)) {
		t.Error("point outside box should not be contained")
	}
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: NewVector3(0, 0, 0), Max: NewVector3(1, 1, 1)}
	b := AABB{Min: NewVector3(2, -1, 0), Max: NewVector3(3, 0, 2)}
	u := a.Union(b)
	if !vectorsApproxEqual(u.Min, NewVector3(0, -1, 0), 1e-12) {
		t.Errorf("union min = %+v", u.Min)
	}
	if !vectorsApproxEqual(u.Max, NewVector3(3, 1, 2), 1e-12) {
		t.Errorf("union max = %+v", u.Max)
	}
}

func TestAABBExpandByPoint(t *testing.T) {
	a := AABB{Min: NewVector3(0, 0, 0), Max: NewVector3(1, 1, 1)}
	grown := a.ExpandByPoint(NewVector3(5, -2, 0.5))
	if !vectorsApproxEqual(grown.Min, NewVector3(0, -2, 0), 1e-12) {
		t.Errorf("expanded min = %+v", grown.Min)
	}
	if !vectorsApproxEqual(grown.Max, NewVector3(5, 1, 1), 1e-12) {
		t.Errorf("expanded max = %+v", grown.Max)
	}
}

func TestAABBTransformedTranslationOnly(t *testing.T) {
	a := NewAABBFromCenter(Zero, NewVector3(2, 2, 2))
	tr := NewTransform(NewVector3(5, 0, 0), IdentityQuaternion)
	moved := a.Transformed(tr)
	if !vectorsApproxEqual(moved.Min, NewVector3(4, -1, -1), 1e-12) {
		t.Errorf("translated min = %+v", moved.Min)
	}
}

func TestAABBTransformedRotation(t *testing.T) {
	a := NewAABBFromCenter(Zero, NewVector3(2, 2, 2))
	tr := NewTransform(Zero, QuaternionFromEuler(0, 0, math.Pi/4))
	rotated := a.Transformed(tr)
	// A 45 degree rotation of a 2x2x2 box about Z widens the box's XY
	// extent by a factor of about sqrt(2) (the rotated corners reach 1.414).
	if rotated.Max.X < 1.4 || rotated.Max.Y < 1.4 {
		t.Errorf("rotated AABB too small: %+v", rotated)
	}
}

func TestAABBLongestAxisTieBreak(t *testing.T) {
	cube := AABB{Min: Zero, Max: NewVector3(1, 1, 1)}
	if axis := cube.LongestAxis(); axis != 0 {
		t.Errorf("tie should break to axis 0, got %d", axis)
	}
	tall := AABB{Min: Zero, Max: NewVector3(1, 5, 1)}
	if axis := tall.LongestAxis(); axis != 1 {
		t.Errorf("longest axis should be Y (1), got %d", axis)
	}
}

func TestAABBIsValid(t *testing.T) {
	ok := AABB{Min: Zero, Max: NewVector3(1, 1, 1)}
	if !ok.IsValid() {
		t.Error("well-formed box reported invalid")
	}
	point := AABB{Min: NewVector3(1, 1, 1), Max: NewVector3(1, 1, 1)}
	if !point.IsValid() {
		t.Error("degenerate point box should still be valid")
	}
}
