// Package heightfield implements a regular grid of terrain heights together
// with the displacement passes used to generate it and geometric queries over
// the result.
//
// A Heightfield is built flat (or sampled from a surface function), roughened
// by any combination of fractal, fault-line, Voronoi and noise passes, and
// finally queried by ray casting or exported for tessellation.
//
// No operation here spawns goroutines. A Heightfield follows the usual
// exclusive-writer/shared-reader discipline: displacement passes need the
// grid to themselves, read-only queries may run concurrently between writes.
package heightfield

import (
	"golang.org/x/exp/constraints"
)

// Surface is a height function h(x, y) defined for all continuous
// coordinates. The types in package surface satisfy it.
type Surface[F constraints.Float] interface {
	Get(x, y F) F
}

// Heightfield is a dense row-major grid of height values with physical
// extents. Vertex (cx, cy) sits at physical coordinate
// (cx*sx/(nx-1), cy*sy/(ny-1)); heights are the third axis.
type Heightfield[F constraints.Float] struct {
	nx, ny   int
	sx, sy   F
	data     []F
	min, max F
}

// NewFlat returns an all-zero grid with nx*ny vertices covering the physical
// rectangle [0, sx] x [0, sy]. Dimensions below 1 or non-positive sizes are
// programming errors and panic.
func NewFlat[F constraints.Float](nx, ny int, sx, sy F) *Heightfield[F] {
	return NewFill(nx, ny, sx, sy, 0)
}

// NewFill is NewFlat with every vertex initialised to v.
func NewFill[F constraints.Float](nx, ny int, sx, sy F, v F) *Heightfield[F] {
	if nx < 1 || ny < 1 {
		panic("heightfield: dimensions must be at least 1x1")
	}
	if sx <= 0 || sy <= 0 {
		panic("heightfield: physical size must be positive")
	}
	m := &Heightfield[F]{
		nx: nx, ny: ny,
		sx: sx, sy: sy,
		data: make([]F, nx*ny),
		min:  v, max: v,
	}
	if v != 0 {
		for i := range m.data {
			m.data[i] = v
		}
	}
	return m
}

// FromSurface samples s at every vertex's physical coordinate.
func FromSurface[F constraints.Float](nx, ny int, sx, sy F, s Surface[F]) *Heightfield[F] {
	m := NewFlat(nx, ny, sx, sy)
	for cy := 0; cy < ny; cy++ {
		for cx := 0; cx < nx; cx++ {
			x, y := m.CoordOf(cx, cy)
			m.data[cy*nx+cx] = s.Get(x, y)
		}
	}
	m.recomputeRange()
	return m
}

// Dim returns the vertex counts (nx, ny).
func (m *Heightfield[F]) Dim() (nx, ny int) { return m.nx, m.ny }

// CellDims returns the cell counts (nx-1, ny-1).
func (m *Heightfield[F]) CellDims() (cx, cy int) { return m.nx - 1, m.ny - 1 }

// Size returns the physical extents (sx, sy).
func (m *Heightfield[F]) Size() (sx, sy F) { return m.sx, m.sy }

// Spacing returns the physical distance between adjacent vertices on each
// axis. Zero on an axis with a single vertex.
func (m *Heightfield[F]) Spacing() (hx, hy F) {
	if m.nx > 1 {
		hx = m.sx / F(m.nx-1)
	}
	if m.ny > 1 {
		hy = m.sy / F(m.ny-1)
	}
	return hx, hy
}

// Range returns the cached (min, max) over all stored heights.
func (m *Heightfield[F]) Range() (min, max F) { return m.min, m.max }

// Get returns the height at vertex (cx, cy). Out-of-range indices panic.
func (m *Heightfield[F]) Get(cx, cy int) F {
	if cx < 0 || cx >= m.nx {
		panic("heightfield: x index out of range")
	}
	return m.data[cy*m.nx+cx]
}

// Set stores v at vertex (cx, cy) and widens the cached range to cover it.
// Out-of-range indices panic.
func (m *Heightfield[F]) Set(cx, cy int, v F) {
	if cx < 0 || cx >= m.nx {
		panic("heightfield: x index out of range")
	}
	m.data[cy*m.nx+cx] = v
	if v < m.min {
		m.min = v
	}
	if v > m.max {
		m.max = v
	}
}

// CoordOf maps vertex indices to the physical coordinate of that vertex.
func (m *Heightfield[F]) CoordOf(cx, cy int) (x, y F) {
	hx, hy := m.Spacing()
	return F(cx) * hx, F(cy) * hy
}

// CellAtCoord maps a physical coordinate to the cell containing it. ok is
// false outside [0, sx] x [0, sy] or when the grid has no cells on an axis.
// Coordinates exactly on the far edge map to the last cell.
func (m *Heightfield[F]) CellAtCoord(x, y F) (cx, cy int, ok bool) {
	if x < 0 || x > m.sx || y < 0 || y > m.sy || m.nx < 2 || m.ny < 2 {
		return 0, 0, false
	}
	hx, hy := m.Spacing()
	cx = int(x / hx)
	cy = int(y / hy)
	if cx > m.nx-2 {
		cx = m.nx - 2
	}
	if cy > m.ny-2 {
		cy = m.ny - 2
	}
	return cx, cy, true
}

// AddSurface adds amplitude * s at every vertex's physical coordinate.
// Combined with decreasing amplitudes and increasing surface frequencies this
// sums noise octaves into the grid. The range is recomputed afterwards.
func (m *Heightfield[F]) AddSurface(s Surface[F], amplitude F) {
	for cy := 0; cy < m.ny; cy++ {
		for cx := 0; cx < m.nx; cx++ {
			x, y := m.CoordOf(cx, cy)
			m.data[cy*m.nx+cx] += amplitude * s.Get(x, y)
		}
	}
	m.recomputeRange()
}

// recomputeRange rescans all heights. Bulk mutations end with this so the
// cached range is exact, not merely widened.
func (m *Heightfield[F]) recomputeRange() {
	min, max := m.data[0], m.data[0]
	for _, v := range m.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	m.min, m.max = min, max
}
