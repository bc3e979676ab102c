package spatialmath

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func vectorsApproxEqual(a, b Vector3, tol float64) bool {
	return approxEqual(a.X, b.X, tol) && approxEqual(a.Y, b.Y, tol) && approxEqual(a.Z, b.Z, tol)
}

func TestVector3AddSub(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, -1, 0.5)

	sum := a.Add(b)
	if !vectorsApproxEqual(sum, NewVector3(5, 1, 3.5), 1e-12) {
		t.Errorf("Add = %+v", sum)
	}

	diff := sum.Sub(b)
	if !vectorsApproxEqual(diff, a, 1e-12) {
		t.Errorf("Sub did not invert Add: got %+v want %+v", diff, a)
	}
}

func TestVector3DotCross(t *testing.T) {
	x := NewVector3(1, 0, 0)
	y := NewVector3(0, 1, 0)

	if got := x.Dot(y); got != 0 {
		t.Errorf("orthogonal dot = %v, want 0", got)
	}
	if got := x.Dot(x); got != 1 {
		t.Errorf("unit dot self = %v, want 1", got)
	}

	z := x.Cross(y)
	if !vectorsApproxEqual(z, NewVector3(0, 0, 1), 1e-12) {
		t.Errorf("x cross y = %+v, want (0,0,1)", z)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	n := v.Normalize()
	if !approxEqual(n.Length(), 1, 1e-12) {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("normalizing the zero vector should return Zero, got %+v", got)
	}
}

func TestVector3IsFinite(t *testing.T) {
	if !NewVector3(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	nan := NewVector3(1, 2, 3)
	nan.Y = math.NaN()
	if nan.IsFinite() {
		t.Error("NaN vector reported finite")
	}
}

func TestVector3Lerp(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(10, 10, 10)
	mid := a.Lerp(b, 0.5)
	if !vectorsApproxEqual(mid, NewVector3(5, 5, 5), 1e-12) {
		t.Errorf("Lerp midpoint = %+v", mid)
	}
}
