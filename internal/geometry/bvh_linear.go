package geometry

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// mortonBits is the number of bits used per axis when quantising centroids
// into a 30-bit interleaved Morton code (10 bits/axis).
const mortonBits = 10

// BuildLinearBVH constructs a BVH over mesh using the Morton-code / linear
// BVH technique: primitive centroids are quantised into the mesh's centroid
// bounds and interleaved into a single Morton code, computed in parallel
// across primitives, then triangles are
// sorted by code and folded into a binary tree by recursive midpoint split
// of the sorted order. The resulting tree satisfies the same traversal
// contract as BuildBVH (union-of-children-within-parent, one triangle per
// leaf bucket, shape independent of later transforms).
func BuildLinearBVH(mesh *TriangleMesh) (*BVH, error) {
	n := mesh.Len()
	codes := make([]uint32, n)

	centroidBounds := mesh.Triangle(0).Centroid()
	boundsBox := spatialmath.AABB{Min: centroidBounds, Max: centroidBounds}
	for i := 1; i < n; i++ {
		boundsBox = boundsBox.ExpandByPoint(mesh.Triangle(i).Centroid())
	}
	extent := boundsBox.Max.Sub(boundsBox.Min)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				c := mesh.Triangle(i).Centroid()
				codes[i] = mortonCode(c, boundsBox.Min, extent)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(i, j int) bool {
		if codes[indices[i]] != codes[indices[j]] {
			return codes[indices[i]] < codes[indices[j]]
		}
		return indices[i] < indices[j]
	})

	b := &linearBuilder{mesh: mesh}
	root := b.build(indices, 0)
	return &BVH{mesh: mesh, Root: root}, nil
}

func mortonCode(p, min, extent spatialmath.Vector3) uint32 {
	quantize := func(v, lo, ext float64) uint32 {
		if ext <= 0 {
			return 0
		}
		t := (v - lo) / ext
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		return uint32(t * float64((1<<mortonBits)-1))
	}
	x := quantize(p.X, min.X, extent.X)
	y := quantize(p.Y, min.Y, extent.Y)
	z := quantize(p.Z, min.Z, extent.Z)
	return interleave3(x) | (interleave3(y) << 1) | (interleave3(z) << 2)
}

// interleave3 spreads the low 10 bits of v so they occupy every third bit,
// the standard bit-trick for 3D Morton codes.
func interleave3(v uint32) uint32 {
	v &= 0x3FF
	v = (v | (v << 16)) & 0x30000FF
	v = (v | (v << 8)) & 0x300F00F
	v = (v | (v << 4)) & 0x30C30C3
	v = (v | (v << 2)) & 0x9249249
	return v
}

type linearBuilder struct {
	mesh   *TriangleMesh
	nextID int
}

// build folds a Morton-sorted index run into a binary tree by recursive
// midpoint split, preserving sort order (not re-sorting by centroid like
// BuildBVH's median split does).
func (b *linearBuilder) build(order []int, depth int) *BVHNode {
	id := b.nextID
	b.nextID++

	bounds := b.mesh.Triangle(order[0]).Bounds()
	for _, idx := range order[1:] {
		bounds = bounds.Union(b.mesh.Triangle(idx).Bounds())
	}
	node := &BVHNode{ID: id, Depth: depth, Bounds: bounds}

	if len(order) <= LeafBucketSize || depth >= maxBuildDepth {
		node.Triangle = order
		return node
	}

	mid := len(order) / 2
	node.Left = b.build(order[:mid], depth+1)
	node.Right = b.build(order[mid:], depth+1)
	return node
}
