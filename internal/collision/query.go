package collision

import (
	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// Collidable is a mesh wrapped in a BVH together with the rigid transform
// that places it in world space. Parts, chamber geometry, and ad-hoc probe
// volumes all reduce to this shape before a query runs.
type Collidable struct {
	Mesh      *geometry.TriangleMesh
	BVH       *geometry.BVH
	Transform spatialmath.Transform
}

// Colliding runs the dual-BVH mesh-vs-mesh traversal between a and b:
// descend into whichever side's current node has the larger
// transformed-AABB volume, ties broken by tree depth then node id, and
// short-circuit on the first colliding triangle pair at a leaf-vs-leaf
// meeting. Degenerate (empty) meshes never collide.
func Colliding(a, b Collidable) bool {
	if a.BVH == nil || b.BVH == nil || a.Mesh.Len() == 0 || b.Mesh.Len() == 0 {
		return false
	}

	boundsA := a.BVH.Root.Bounds.Transformed(a.Transform)
	boundsB := b.BVH.Root.Bounds.Transformed(b.Transform)
	if !boundsA.Overlaps(boundsB) {
		return false
	}

	return traverse(a, a.BVH.Root, boundsA, b, b.BVH.Root, boundsB)
}

func traverse(a Collidable, nodeA *geometry.BVHNode, boundsA spatialmath.AABB, b Collidable, nodeB *geometry.BVHNode, boundsB spatialmath.AABB) bool {
	if nodeA.IsLeaf() && nodeB.IsLeaf() {
		return leafPairColliding(a, nodeA, b, nodeB)
	}

	if descendA(nodeA, boundsA, nodeB, boundsB) {
		for _, child := range [2]*geometry.BVHNode{nodeA.Left, nodeA.Right} {
			if child == nil {
				continue
			}
			childBounds := child.Bounds.Transformed(a.Transform)
			if !childBounds.Overlaps(boundsB) {
				continue
			}
			if traverse(a, child, childBounds, b, nodeB, boundsB) {
				return true
			}
		}
		return false
	}

	for _, child := range [2]*geometry.BVHNode{nodeB.Left, nodeB.Right} {
		if child == nil {
			continue
		}
		childBounds := child.Bounds.Transformed(b.Transform)
		if !boundsA.Overlaps(childBounds) {
			continue
		}
		if traverse(a, nodeA, boundsA, b, child, childBounds) {
			return true
		}
	}
	return false
}

// descendA decides which side of the pair to subdivide next: the one with
// the larger transformed-AABB volume, so the traversal shrinks the looser
// bound first. Ties go to lower depth, then lower node id, so traversal
// order is fully deterministic.
func descendA(nodeA *geometry.BVHNode, boundsA spatialmath.AABB, nodeB *geometry.BVHNode, boundsB spatialmath.AABB) bool {
	if nodeA.IsLeaf() {
		return false
	}
	if nodeB.IsLeaf() {
		return true
	}

	volA := boundsA.Volume()
	volB := boundsB.Volume()
	if volA != volB {
		return volA > volB
	}
	if nodeA.Depth != nodeB.Depth {
		return nodeA.Depth < nodeB.Depth
	}
	return nodeA.ID <= nodeB.ID
}

func leafPairColliding(a Collidable, leafA *geometry.BVHNode, b Collidable, leafB *geometry.BVHNode) bool {
	for _, ia := range leafA.Triangle {
		triA := a.Mesh.Triangle(ia).Transformed(a.Transform)
		for _, ib := range leafB.Triangle {
			triB := b.Mesh.Triangle(ib).Transformed(b.Transform)
			if TrianglesIntersect(triA, triB) {
				return true
			}
		}
	}
	return false
}
