package assembly

import (
	"github.com/Jinderamarak/safe-stage/internal/collision"
	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// ObstructionClass filters which parts a presentation request includes;
// collision predicates ignore it entirely.
type ObstructionClass int

const (
	NonObstructive ObstructionClass = iota
	LessObstructive
	Full
)

// Part is a named (mesh, BVH) pair together with its local transform
// within its parent frame. Parts form the forest rooted at the chamber.
type Part struct {
	Name  string
	Mesh  *geometry.TriangleMesh
	BVH   *geometry.BVH
	Local spatialmath.Transform
	Class ObstructionClass
}

// NewPart builds a Part and constructs its BVH from mesh.
func NewPart(name string, mesh *geometry.TriangleMesh, local spatialmath.Transform, class ObstructionClass) Part {
	return Part{Name: name, Mesh: mesh, BVH: geometry.BuildBVH(mesh), Local: local, Class: class}
}

// collidable places the part in world space given its parent's world
// transform.
func (p Part) collidable(parentWorld spatialmath.Transform) collision.Collidable {
	return collision.Collidable{
		Mesh:      p.Mesh,
		BVH:       p.BVH,
		Transform: spatialmath.Compose(parentWorld, p.Local),
	}
}

// triangles returns the part's world-space triangles for presentation,
// honoring the requested obstruction level: parts strictly more obstructive
// than level are suppressed.
func (p Part) triangles(parentWorld spatialmath.Transform, level ObstructionClass) []geometry.Triangle {
	if p.Mesh == nil || p.Class > level {
		return nil
	}
	world := spatialmath.Compose(parentWorld, p.Local)
	out := make([]geometry.Triangle, p.Mesh.Len())
	for i := 0; i < p.Mesh.Len(); i++ {
		out[i] = p.Mesh.Triangle(i).Transformed(world)
	}
	return out
}

// VisibleParts filters parts to those whose obstruction class is at most
// level, the same rule triangles applies per-part — exposed standalone so
// callers can filter a Part list directly without extracting geometry.
func VisibleParts(parts []Part, level ObstructionClass) []Part {
	out := make([]Part, 0, len(parts))
	for _, p := range parts {
		if p.Class <= level {
			out = append(out, p)
		}
	}
	return out
}

// FullParts is VisibleParts at the Full level: every part passes.
func FullParts(parts []Part) []Part {
	return VisibleParts(parts, Full)
}

// LessObstructiveParts suppresses fully-obstructive parts.
func LessObstructiveParts(parts []Part) []Part {
	return VisibleParts(parts, LessObstructive)
}

// NonObstructiveParts keeps only non-obstructive parts.
func NonObstructiveParts(parts []Part) []Part {
	return VisibleParts(parts, NonObstructive)
}
