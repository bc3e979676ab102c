package assembly

import (
	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// Retract is a one-degree-of-freedom device attached directly to the
// chamber frame: its local transform interpolates linearly (translation)
// and via slerp (rotation) between a retracted pose (t = 0) and an
// inserted pose (t = 1).
type Retract struct {
	Name      string
	Mesh      *geometry.TriangleMesh
	BVH       *geometry.BVH
	Retracted spatialmath.Transform
	Inserted  spatialmath.Transform
	Class     ObstructionClass
	State     LinearState
}

// NewRetract builds a Retract at the fully-retracted state and constructs
// its BVH from mesh.
func NewRetract(name string, mesh *geometry.TriangleMesh, retracted, inserted spatialmath.Transform, class ObstructionClass) Retract {
	return Retract{
		Name:      name,
		Mesh:      mesh,
		BVH:       geometry.BuildBVH(mesh),
		Retracted: retracted,
		Inserted:  inserted,
		Class:     class,
		State:     RetractedState,
	}
}

// localAt returns the retract's local transform at insertion level t.
func (r Retract) localAt(state LinearState) spatialmath.Transform {
	return r.Retracted.Lerp(r.Inserted, state.T)
}

func (r Retract) asPart(state LinearState) Part {
	return Part{Name: r.Name, Mesh: r.Mesh, BVH: r.BVH, Local: r.localAt(state), Class: r.Class}
}
