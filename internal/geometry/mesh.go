package geometry

import "github.com/Jinderamarak/safe-stage/internal/spatialmath"

// TriangleMesh is an immutable ordered sequence of triangles plus its
// local-frame bounding box. Built once at configuration time (typically
// from parsed STL data, which is outside this package's scope) and shared
// read-only by any number of Parts referencing the same geometry.
type TriangleMesh struct {
	triangles []Triangle
	bounds    spatialmath.AABB
}

// NewTriangleMesh builds a mesh from triangles verbatim — no welding, no
// winding fix-up; callers must supply consistent winding themselves. Panics
// if triangles is empty: a mesh with no triangles has no bounds and is not
// a meaningful collider.
func NewTriangleMesh(triangles []Triangle) *TriangleMesh {
	if len(triangles) == 0 {
		panic("geometry: NewTriangleMesh requires at least one triangle")
	}
	bounds := triangles[0].Bounds()
	for _, t := range triangles[1:] {
		bounds = bounds.Union(t.Bounds())
	}
	cp := make([]Triangle, len(triangles))
	copy(cp, triangles)
	return &TriangleMesh{triangles: cp, bounds: bounds}
}

// Triangles returns the mesh's triangles. The returned slice must not be
// mutated by callers; the mesh is shared and assumed immutable.
func (m *TriangleMesh) Triangles() []Triangle {
	return m.triangles
}

// Triangle returns the i-th triangle.
func (m *TriangleMesh) Triangle(i int) Triangle {
	return m.triangles[i]
}

// Len returns the number of triangles in the mesh.
func (m *TriangleMesh) Len() int {
	return len(m.triangles)
}

// Bounds returns the mesh's local-frame AABB.
func (m *TriangleMesh) Bounds() spatialmath.AABB {
	return m.bounds
}
