package heightfield

import (
	"math"
	"math/rand/v2"
	"slices"

	"golang.org/x/exp/constraints"
)

// Point is a position in a grid's physical coordinate space.
type Point[F constraints.Float] struct {
	X, Y F
}

// Voronoi is a set of seed points whose rank-weighted distances are blended
// into a grid. Seeds are fixed at construction.
type Voronoi[F constraints.Float] struct {
	seeds []Point[F]
}

// NewVoronoi builds a field from the given seed points.
func NewVoronoi[F constraints.Float](seeds []Point[F]) *Voronoi[F] {
	return &Voronoi[F]{seeds: slices.Clone(seeds)}
}

// RandomVoronoi builds a field of count seeds sampled uniformly over the
// grid's physical extents.
func RandomVoronoi[F constraints.Float](m *Heightfield[F], count int, rng *rand.Rand) *Voronoi[F] {
	seeds := make([]Point[F], count)
	for i := range seeds {
		seeds[i] = Point[F]{
			X: m.sx * F(rng.Float64()),
			Y: m.sy * F(rng.Float64()),
		}
	}
	return &Voronoi[F]{seeds: seeds}
}

// Seeds returns a copy of the seed points.
func (v *Voronoi[F]) Seeds() []Point[F] { return slices.Clone(v.seeds) }

// EuclideanDistance is the default metric for ApplyTo.
func EuclideanDistance[F constraints.Float](dx, dy F) F {
	return F(math.Sqrt(float64(dx*dx + dy*dy)))
}

// ApplyTo adds the weighted nearest-seed distances to every vertex: the
// distances from the vertex to all seeds are computed with dist, sorted
// ascending, and weights[i]*d[i] summed for i up to the shorter of the two
// slices. Strictly additive, so it layers over already-displaced terrain.
//
// dist receives per-axis offsets and may be any function of them; non-metric
// or perturbed distances give more organic cell boundaries. Cost is
// O(vertices * seeds * log seeds) from the per-vertex sort.
func (v *Voronoi[F]) ApplyTo(m *Heightfield[F], weights []F, dist func(dx, dy F) F) {
	nw := min(len(weights), len(v.seeds))
	if nw == 0 {
		return
	}
	d := make([]F, len(v.seeds))

	for cy := 0; cy < m.ny; cy++ {
		for cx := 0; cx < m.nx; cx++ {
			x, y := m.CoordOf(cx, cy)
			for i, s := range v.seeds {
				d[i] = dist(s.X-x, s.Y-y)
			}
			slices.Sort(d)
			h := m.data[cy*m.nx+cx]
			for i := 0; i < nw; i++ {
				h += weights[i] * d[i]
			}
			m.data[cy*m.nx+cx] = h
		}
	}
	m.recomputeRange()
}
