// Package geometry holds the immutable, shareable mesh representation the
// collision engine queries: triangles, an ordered triangle mesh, and two
// bounding-volume-hierarchy builders (top-down median-split, and linear
// Morton-code). A TriangleMesh and its BVH are built once at configuration
// time and shared read-only by every part that references the same
// geometry — ownership lives in the mesh, not in any one part.
package geometry
