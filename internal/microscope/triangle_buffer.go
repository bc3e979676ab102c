package microscope

import (
	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// TriangleBuffer is a flat array of world-frame vertices, consecutive
// triples forming triangles with front face counter-clockwise when viewed
// from the outward normal. Each Present* call allocates its own buffer;
// nothing is shared or reused across calls.
type TriangleBuffer struct {
	Vertices []spatialmath.Vector3
}

func newTriangleBuffer(triangles []geometry.Triangle) TriangleBuffer {
	vertices := make([]spatialmath.Vector3, 0, len(triangles)*3)
	for _, t := range triangles {
		vertices = append(vertices, t.V0, t.V1, t.V2)
	}
	return TriangleBuffer{Vertices: vertices}
}
