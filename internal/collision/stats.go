package collision

import (
	"sync/atomic"

	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// Stats accumulates counters over one or more queries, for diagnosing how
// much of a mesh pair a traversal actually touched — useful when tuning
// BVH leaf size or investigating a slow resolver run. Safe for concurrent
// use by a fanned-out group query.
type Stats struct {
	nodePairs     atomic.Int64
	leafPairs     atomic.Int64
	triangleTests atomic.Int64
}

func (s *Stats) recordNodePair() {
	if s != nil {
		s.nodePairs.Add(1)
	}
}

func (s *Stats) recordLeafPair() {
	if s != nil {
		s.leafPairs.Add(1)
	}
}

func (s *Stats) recordTriangleTest() {
	if s != nil {
		s.triangleTests.Add(1)
	}
}

// NodePairs is the number of BVH node pairs the traversal descended into.
func (s *Stats) NodePairs() int64 { return s.nodePairs.Load() }

// LeafPairs is the number of leaf-vs-leaf meetings reached.
func (s *Stats) LeafPairs() int64 { return s.leafPairs.Load() }

// TriangleTests is the number of pairwise triangle tests performed.
func (s *Stats) TriangleTests() int64 { return s.triangleTests.Load() }

// CollidingWithStats behaves like Colliding but records traversal counters
// into stats (which may be nil to skip instrumentation entirely).
func CollidingWithStats(a, b Collidable, stats *Stats) bool {
	if a.BVH == nil || b.BVH == nil || a.Mesh.Len() == 0 || b.Mesh.Len() == 0 {
		return false
	}

	boundsA := a.BVH.Root.Bounds.Transformed(a.Transform)
	boundsB := b.BVH.Root.Bounds.Transformed(b.Transform)
	if !boundsA.Overlaps(boundsB) {
		return false
	}

	return traverseWithStats(a, a.BVH.Root, boundsA, b, b.BVH.Root, boundsB, stats)
}

func traverseWithStats(a Collidable, nodeA *geometry.BVHNode, boundsA spatialmath.AABB, b Collidable, nodeB *geometry.BVHNode, boundsB spatialmath.AABB, stats *Stats) bool {
	stats.recordNodePair()

	if nodeA.IsLeaf() && nodeB.IsLeaf() {
		stats.recordLeafPair()
		return leafPairCollidingWithStats(a, nodeA, b, nodeB, stats)
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
			if traverseWithStats(a, child, childBounds, b, nodeB, boundsB, stats) {
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
		if traverseWithStats(a, nodeA, boundsA, b, child, childBounds, stats) {
			return true
		}
	}
	return false
}

func leafPairCollidingWithStats(a Collidable, leafA *geometry.BVHNode, b Collidable, leafB *geometry.BVHNode, stats *Stats) bool {
	for _, ia := range leafA.Triangle {
		triA := a.Mesh.Triangle(ia).Transformed(a.Transform)
		for _, ib := range leafB.Triangle {
			stats.recordTriangleTest()
			triB := b.Mesh.Triangle(ib).Transformed(b.Transform)
			if TrianglesIntersect(triA, triB) {
				return true
			}
		}
	}
	return false
}
