package assembly

import (
	"github.com/pkg/errors"

	"github.com/Jinderamarak/safe-stage/internal/geometry"
	"github.com/Jinderamarak/safe-stage/internal/spatialmath"
)

// HeightMap is a rectangular grid of heights (metres) over a physical
// extent, rasterised into a sample mesh: cell (i, j) occupies a column of
// height Heights[i*Ny+j] centred at its grid location; zero-height cells
// are omitted from the mesh entirely.
type HeightMap struct {
	Heights      []float64
	Nx, Ny       int
	RealX, RealY float64
}

// NewHeightMap validates the grid shape and values before returning it.
func NewHeightMap(heights []float64, nx, ny int, realX, realY float64) (*HeightMap, error) {
	if nx <= 0 || ny <= 0 {
		return nil, errors.Wrap(ErrOutOfRange, "height map grid dimensions must be positive")
	}
	if len(heights) != nx*ny {
		return nil, errors.Errorf("assembly: height map expects %d cells, got %d", nx*ny, len(heights))
	}
	if !isFinite(realX) || !isFinite(realY) || realX <= 0 || realY <= 0 {
		return nil, errors.Wrap(ErrOutOfRange, "height map physical extent must be positive and finite")
	}
	for _, h := range heights {
		if !isFinite(h) {
			return nil, errors.Wrap(ErrNonFinite, "height map contains a non-finite height")
		}
	}

	cp := make([]float64, len(heights))
	copy(cp, heights)
	return &HeightMap{Heights: cp, Nx: nx, Ny: ny, RealX: realX, RealY: realY}, nil
}

// At returns the height at grid cell (i, j).
func (h *HeightMap) At(i, j int) float64 {
	return h.Heights[i*h.Ny+j]
}

// CellSize returns the (dx, dy) footprint of one grid cell.
func (h *HeightMap) CellSize() (dx, dy float64) {
	return h.RealX / float64(h.Nx), h.RealY / float64(h.Ny)
}

// Mesh rasterises the height map into a triangle mesh: one box per
// non-zero cell, dimensions (dx, dy, height), centred at the cell's grid
// location with the grid's origin at its own center. Returns nil if every
// cell is zero-height (an all-empty sample has no mesh to collide with).
func (h *HeightMap) Mesh() *geometry.TriangleMesh {
	dx, dy := h.CellSize()
	originX := -h.RealX / 2
	originY := -h.RealY / 2

	var triangles []geometry.Triangle
	for i := 0; i < h.Nx; i++ {
		for j := 0; j < h.Ny; j++ {
			height := h.At(i, j)
			if height == 0 {
				continue
			}
			cx := originX + (float64(i)+0.5)*dx
			cy := originY + (float64(j)+0.5)*dy
			center := spatialmath.NewVector3(cx, cy, height/2)
			size := spatialmath.NewVector3(dx, dy, height)
			triangles = append(triangles, geometry.NewBoxTriangles(center, size)...)
		}
	}

	if len(triangles) == 0 {
		return nil
	}
	return geometry.NewTriangleMesh(triangles)
}
