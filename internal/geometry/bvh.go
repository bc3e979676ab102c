package geometry

import (
	"sort"

	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// LeafBucketSize is the maximum number of triangles stored in a BVH leaf.
const LeafBucketSize = 4

// maxBuildDepth bounds recursion on pathological inputs (e.g. many
// coincident centroids that never separate under a median split).
const maxBuildDepth = 48

// BVHNode is a node in the bounding-volume hierarchy. Leaves carry one or a
// small bucket of triangle indices into the owning mesh; internal nodes
// carry only the union bounds of their subtree.
type BVHNode struct {
	ID       int
	Depth    int
	Bounds   spatialmath.AABB
	Left     *BVHNode
	Right    *BVHNode
	Triangle []int // indices into the mesh, non-nil only at leaves
}

// IsLeaf reports whether the node is a leaf.
func (n *BVHNode) IsLeaf() bool {
	return n.Triangle != nil
}

// BVH is a balanced binary tree over a TriangleMesh's triangles, built
// top-down via median split along the longest axis of the centroid bounds,
// ties broken by axis index. Constructed once per mesh and shared with it.
type BVH struct {
	mesh *TriangleMesh
	Root *BVHNode
}

// BuildBVH constructs a BVH over mesh using a top-down median-split policy:
// recursively partition by the longest axis of the centroid bounds until a
// node's triangle count drops to LeafBucketSize or maxBuildDepth is hit.
func BuildBVH(mesh *TriangleMesh) *BVH {
	indices := make([]int, mesh.Len())
	for i := range indices {
		indices[i] = i
	}
	b := &builder{mesh: mesh, nextID: 0}
	root := b.build(indices, 0)
	return &BVH{mesh: mesh, Root: root}
}

// Mesh returns the mesh this BVH indexes.
func (b *BVH) Mesh() *TriangleMesh {
	return b.mesh
}

type builder struct {
	mesh   *TriangleMesh
	nextID int
}

func (b *builder) build(indices []int, depth int) *BVHNode {
	id := b.nextID
	b.nextID++

	bounds := b.computeBounds(indices)
	node := &BVHNode{ID: id, Depth: depth, Bounds: bounds}

	if len(indices) <= LeafBucketSize || depth >= maxBuildDepth {
		node.Triangle = indices
		return node
	}

	axis := b.centroidBounds(indices).LongestAxis()
	mid := b.partition(indices, axis)

	if mid == 0 || mid == len(indices) {
		node.Triangle = indices
		return node
	}

	node.Left = b.build(indices[:mid], depth+1)
	node.Right = b.build(indices[mid:], depth+1)
	return node
}

func (b *builder) computeBounds(indices []int) spatialmath.AABB {
	box := b.mesh.Triangle(indices[0]).Bounds()
	for _, idx := range indices[1:] {
		box = box.Union(b.mesh.Triangle(idx).Bounds())
	}
	return box
}

func (b *builder) centroidBounds(indices []int) spatialmath.AABB {
	c0 := b.mesh.Triangle(indices[0]).Centroid()
	box := spatialmath.AABB{Min: c0, Max: c0}
	for _, idx := range indices[1:] {
		box = box.ExpandByPoint(b.mesh.Triangle(idx).Centroid())
	}
	return box
}

// partition reorders indices in place around the median centroid value on
// axis, and returns the split point.
func (b *builder) partition(indices []int, axis int) int {
	sort.Slice(indices, func(i, j int) bool {
		ci := b.mesh.Triangle(indices[i]).Centroid().Component(axis)
		cj := b.mesh.Triangle(indices[j]).Centroid().Component(axis)
		return ci < cj
	})
	return len(indices) / 2
}

// Query returns the indices of every triangle whose leaf bucket's bounds
// overlap box, under the local-space (untransformed) tree.
func (b *BVH) Query(box spatialmath.AABB) []int {
	var out []int
	var walk func(n *BVHNode)
	walk = func(n *BVHNode) {
		if n == nil || !n.Bounds.Overlaps(box) {
			return
		}
		if n.IsLeaf() {
			out = append(out, n.Triangle...)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(b.Root)
	return out
}
