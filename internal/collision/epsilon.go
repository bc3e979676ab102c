package collision

import "github.com/Jinderamarak/safe-stage/internal/spatialmath"

// relativeEpsilonFactor scales the boundary epsilon against a mesh pair's
// combined bounds diagonal, so the same tolerance behaves sensibly whether
// parts are millimeter-scale sample holders or meter-scale chambers.
const relativeEpsilonFactor = 1e-12

// minEpsilon is a floor so that epsilon never collapses to zero for a
// degenerate (single-point) bounds diagonal.
const minEpsilon = 1e-12

// epsilonFor derives the boundary epsilon used by every primitive test in
// this package from the diagonal of the two meshes' combined bounds.
func epsilonFor(a, b spatialmath.AABB) float64 {
	combined := a.Union(b)
	diag := combined.Diagonal()
	eps := diag * relativeEpsilonFactor
	if eps < minEpsilon {
		return minEpsilon
	}
	return eps
}
