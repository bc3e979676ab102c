package spatialmath

import (
	"math"
	"testing"
)

func TestQuaternionIdentityRotate(t *testing.T) {
	v := NewVector3(1, 2, 3)
	got := IdentityQuaternion.Rotate(v)
	if !vectorsApproxEqual(got, v, 1e-12) {
		t.Errorf("identity rotate changed vector: got %+v want %+v", got, v)
	}
}

func TestQuaternionFromEulerRoundTrip(t *testing.T) {
	cases := []struct{ rx, ry, rz float64 }{
		{0, 0, 0},
		{math.Pi / 4, 0, 0},
		{0, math.Pi / 6, 0},
		{0.2, 0.3, 0.4},
	}
	for _, c := range cases {
		q := QuaternionFromEuler(c.rx, c.ry, c.rz)
		if !q.IsNormalized() {
			t.Errorf("FromEuler(%v,%v,%v) not normalized", c.rx, c.ry, c.rz)
		}
		rx, ry, rz := q.ToEuler()
		q2 := QuaternionFromEuler(rx, ry, rz)
		// Compare rotated test vectors rather than raw angles, since a
		// quaternion's Euler decomposition is only unique up to the
		// well-known sign/wrap ambiguities.
		probe := NewVector3(1, 2, 3)
		if !vectorsApproxEqual(q.Rotate(probe), q2.Rotate(probe), 1e-6) {
			t.Errorf("euler round trip mismatch for %+v: %+v vs %+v", c, q, q2)
		}
	}
}

func TestQuaternionRotateAroundZ(t *testing.T) {
	q := QuaternionFromEuler(0, 0, math.Pi/2)
	v := NewVector3(1, 0, 0)
	got := q.Rotate(v)
	want := NewVector3(0, 1, 0)
	if !vectorsApproxEqual(got, want, 1e-9) {
		t.Errorf("90deg Z rotation of +X = %+v, want %+v", got, want)
	}
}

func TestQuaternionInverseCancels(t *testing.T) {
	q := QuaternionFromEuler(0.3, 0.1, 0.7)
	v := NewVector3(2, -1, 4)
	rotated := q.Rotate(v)
	back := q.Inverse().Rotate(rotated)
	if !vectorsApproxEqual(back, v, 1e-9) {
		t.Errorf("inverse did not cancel rotation: got %+v want %+v", back, v)
	}
}

func TestQuaternionSlerpEndpoints(t *testing.T) {
	a := IdentityQuaternion
	b := QuaternionFromEuler(0, 0, math.Pi/2)
	if got := a.Slerp(b, 0); got != a {
		t.Errorf("Slerp(t=0) = %+v, want %+v", got, a)
	}
	end := a.Slerp(b, 1)
	probe := NewVector3(1, 0, 0)
	if !vectorsApproxEqual(end.Rotate(probe), b.Rotate(probe), 1e-9) {
		t.Errorf("Slerp(t=1) did not match endpoint rotation")
	}
}
