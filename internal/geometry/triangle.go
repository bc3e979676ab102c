package geometry

import "github.com/Jinderamarak/safe-stage/internal/spatialmath"

// Triangle is three local-space vertices plus a cached face normal. The
// normal is derived and must be recomputed whenever a vertex changes —
// NewTriangle is the only place that happens, since triangles inside a
// TriangleMesh are otherwise immutable.
type Triangle struct {
	V0, V1, V2 spatialmath.Vector3
	Normal     spatialmath.Vector3
}

// NewTriangle builds a Triangle and computes its face normal from the
// winding of v0, v1, v2 (counter-clockwise when viewed from the outward
// side).
func NewTriangle(v0, v1, v2 spatialmath.Vector3) Triangle {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: edge1.Cross(edge2).Normalize()}
}

// Centroid returns the triangle's centroid, used by BVH construction.
func (t Triangle) Centroid() spatialmath.Vector3 {
	return t.V0.Add(t.V1).Add(t.V2).Scale(1.0 / 3.0)
}

// Bounds returns the triangle's axis-aligned bounding box.
func (t Triangle) Bounds() spatialmath.AABB {
	box := spatialmath.AABB{Min: t.V0, Max: t.V0}
	box = box.ExpandByPoint(t.V1)
	box = box.ExpandByPoint(t.V2)
	return box
}

// IsDegenerate reports whether the triangle has (numerically) zero area.
// Degenerate triangles are tolerated by the engine and treated as
// non-colliding.
func (t Triangle) IsDegenerate() bool {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)
	return edge1.Cross(edge2).LengthSquared() < 1e-24
}

// Transformed returns the triangle with every vertex (and the normal, as a
// direction) carried through t.
func (tri Triangle) Transformed(t spatialmath.Transform) Triangle {
	return Triangle{
		V0:     t.Apply(tri.V0),
		V1:     t.Apply(tri.V1),
		V2:     t.Apply(tri.V2),
		Normal: t.ApplyVector(tri.Normal),
	}
}

// Vertex returns the i-th vertex (0, 1, 2).
func (t Triangle) Vertex(i int) spatialmath.Vector3 {
	switch i {
	case 0:
		return t.V0
	case 1:
		return t.V1
	default:
		return t.V2
	}
}

// Edge returns the i-th edge direction (0: V0->V1, 1: V1->V2, 2: V2->V0).
func (t Triangle) Edge(i int) spatialmath.Vector3 {
	switch i {
	case 0:
		return t.V1.Sub(t.V0)
	case 1:
		return t.V2.Sub(t.V1)
	default:
		return t.V0.Sub(t.V2)
	}
}
