package geometry

import "github.com/Jinderamarak/safe-stage/internal/spatialmath"

// NewBoxTriangles generates the 12 triangles (2 per face, counter-clockwise
// from the outward normal) of an axis-aligned box of the given size centred
// at center. Used both by the sample height map's per-cell rasterization
// and directly by tests as a simple collider fixture.
func NewBoxTriangles(center, size spatialmath.Vector3) []Triangle {
	h := size.Scale(0.5)
	// 8 corners, indexed the same way AABB.Corners lays them out.
	c := [8]spatialmath.Vector3{
		center.Add(spatialmath.NewVector3(-h.X, -h.Y, -h.Z)),
		center.Add(spatialmath.NewVector3(h.X, -h.Y, -h.Z)),
		center.Add(spatialmath.NewVector3(-h.X, h.Y, -h.Z)),
		center.Add(spatialmath.NewVector3(h.X, h.Y, -h.Z)),
		center.Add(spatialmath.NewVector3(-h.X, -h.Y, h.Z)),
		center.Add(spatialmath.NewVector3(h.X, -h.Y, h.Z)),
		center.Add(spatialmath.NewVector3(-h.X, h.Y, h.Z)),
		center.Add(spatialmath.NewVector3(h.X, h.Y, h.Z)),
	}

	quad := func(a, b, cc, d spatialmath.Vector3) []Triangle {
		return []Triangle{NewTriangle(a, b, cc), NewTriangle(a, cc, d)}
	}

	var tris []Triangle
	tris = append(tris, quad(c[0], c[2], c[3], c[1])...) // -Z face
	tris = append(tris, quad(c[5], c[7], c[6], c[4])...) // +Z face
	tris = append(tris, quad(c[4], c[6], c[2], c[0])...) // -X face
	tris = append(tris, quad(c[1], c[3], c[7], c[5])...) // +X face
	tris = append(tris, quad(c[0], c[1], c[5], c[4])...) // -Y face
	tris = append(tris, quad(c[2], c[6], c[7], c[3])...) // +Y face
	return tris
}

// NewBoxMesh is NewBoxTriangles wrapped directly into a TriangleMesh.
func NewBoxMesh(center, size spatialmath.Vector3) *TriangleMesh {
	return NewTriangleMesh(NewBoxTriangles(center, size))
}
