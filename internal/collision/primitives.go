package collision

import (
	"math"

	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// AABBsIntersect tests two axis-aligned boxes for overlap, treating an
// exact touch as colliding.
func AABBsIntersect(a, b spatialmath.AABB) bool {
	eps := epsilonFor(a, b)
	return a.Dilate(eps).Overlaps(b)
}

// AABBTriangleIntersect tests a box against a triangle with the
// separating-axis test over the box's three face normals, the triangle's
// face normal, and the nine cross products of a box axis with a triangle
// edge (the standard box/triangle SAT).
func AABBTriangleIntersect(box spatialmath.AABB, tri geometry.Triangle) bool {
	if tri.IsDegenerate() {
		return false
	}

	eps := epsilonFor(box, tri.Bounds())
	center := box.Center()
	half := box.HalfExtents()

	v0 := tri.V0.Sub(center)
	v1 := tri.V1.Sub(center)
	v2 := tri.V2.Sub(center)

	boxAxes := [3]spatialmath.Vector3{
		spatialmath.NewVector3(1, 0, 0),
		spatialmath.NewVector3(0, 1, 0),
		spatialmath.NewVector3(0, 0, 1),
	}
	edges := [3]spatialmath.Vector3{v1.Sub(v0), v2.Sub(v1), v0.Sub(v2)}

	for _, e := range edges {
		for _, a := range boxAxes {
			axis := a.Cross(e)
			if axis.Length() <= eps {
				continue
			}
			if separatedOnAxisCentered(v0, v1, v2, axis, half, eps) {
				return false
			}
		}
	}

	for _, a := range boxAxes {
		if separatedOnAxisCentered(v0, v1, v2, a, half, eps) {
			return false
		}
	}

	if separatedOnAxisCentered(v0, v1, v2, tri.Normal, half, eps) {
		return false
	}

	return true
}

// separatedOnAxisCentered projects box-centered triangle vertices and the
// box's half-extents onto axis and reports whether the projections are
// separated (with eps slack biasing toward "not separated").
func separatedOnAxisCentered(v0, v1, v2, axis, half spatialmath.Vector3, eps float64) bool {
	p0 := v0.Dot(axis)
	p1 := v1.Dot(axis)
	p2 := v2.Dot(axis)
	min := math.Min(p0, math.Min(p1, p2))
	max := math.Max(p0, math.Max(p1, p2))
	r := half.X*math.Abs(axis.X) + half.Y*math.Abs(axis.Y) + half.Z*math.Abs(axis.Z)
	return min > r+eps || max < -r-eps
}

// TrianglesIntersect tests two triangles for intersection. Non-coplanar
// triangles are tested with the Möller separating-axis sweep over each
// triangle's face normal and the nine cross products of their edges;
// coplanar triangles fall back to an in-plane separating-axis test over
// the edge normals of both triangles, so two triangles that merely share a
// plane without overlapping area are correctly reported as clear.
func TrianglesIntersect(a, b geometry.Triangle) bool {
	if a.IsDegenerate() || b.IsDegenerate() {
		return false
	}

	eps := epsilonFor(a.Bounds(), b.Bounds())

	if coplanar(a, b, eps) {
		return coplanarTrianglesOverlap(a, b, eps)
	}

	edgesA := [3]spatialmath.Vector3{a.Edge(0), a.Edge(1), a.Edge(2)}
	edgesB := [3]spatialmath.Vector3{b.Edge(0), b.Edge(1), b.Edge(2)}

	if separatedOnAxis(a, b, a.Normal, eps) || separatedOnAxis(a, b, b.Normal, eps) {
		return false
	}

	for _, ea := range edgesA {
		for _, eb := range edgesB {
			axis := ea.Cross(eb)
			if axis.Length() <= eps {
				continue
			}
			if separatedOnAxis(a, b, axis, eps) {
				return false
			}
		}
	}

	return true
}

func coplanar(a, b geometry.Triangle, eps float64) bool {
	if a.Normal.Cross(b.Normal).Length() > eps {
		return false
	}
	d := b.V0.Sub(a.V0).Dot(a.Normal)
	return math.Abs(d) <= eps
}

// coplanarTrianglesOverlap runs the 2D convex-polygon separating-axis test
// (edge normals of both triangles, projected in the shared plane) that
// exactly decides whether two coplanar triangles share any area.
func coplanarTrianglesOverlap(a, b geometry.Triangle, eps float64) bool {
	n := a.Normal
	edgesA := [3]spatialmath.Vector3{a.Edge(0), a.Edge(1), a.Edge(2)}
	edgesB := [3]spatialmath.Vector3{b.Edge(0), b.Edge(1), b.Edge(2)}

	for _, e := range edgesA {
		axis := n.Cross(e)
		if axis.Length() <= eps {
			continue
		}
		if separatedOnAxis(a, b, axis, eps) {
			return false
		}
	}
	for _, e := range edgesB {
		axis := n.Cross(e)
		if axis.Length() <= eps {
			continue
		}
		if separatedOnAxis(a, b, axis, eps) {
			return false
		}
	}
	return true
}

func separatedOnAxis(a, b geometry.Triangle, axis spatialmath.Vector3, eps float64) bool {
	aMin, aMax := projectTriangle(a, axis)
	bMin, bMax := projectTriangle(b, axis)
	return aMax < bMin-eps || bMax < aMin-eps
}

func projectTriangle(t geometry.Triangle, axis spatialmath.Vector3) (min, max float64) {
	p0 := t.V0.Dot(axis)
	p1 := t.V1.Dot(axis)
	p2 := t.V2.Dot(axis)
	min = math.Min(p0, math.Min(p1, p2))
	max = math.Max(p0, math.Max(p1, p2))
	return
}

// RayTriangleIntersect is the Möller-Trumbore ray/triangle test used by the
// down-rotate-find resolver's line-of-sight checks. Returns the hit
// distance along dir (dir need not be normalized; distance is in units of
// dir's length) and whether it falls within (eps, maxDistance].
func RayTriangleIntersect(origin, dir spatialmath.Vector3, tri geometry.Triangle, maxDistance float64) (distance float64, hit bool) {
	const eps = 1e-12
	if tri.IsDegenerate() {
		return 0, false
	}

	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < eps {
		return 0, false
	}

	f := 1.0 / a
	s := origin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < -eps || u > 1+eps {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < -eps || u+v > 1+eps {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t < eps || t > maxDistance {
		return 0, false
	}
	return t, true
}
