package heightfield

import (
	"math"
	"math/rand/v2"

	"golang.org/x/exp/constraints"
)

// FaultDisplacement displaces the grid across a random fault line.
//
// A unit normal direction v is sampled uniformly on the circle, and a line
// perpendicular to v is placed at a random offset from the grid centre. The
// offset is constrained so the line passes within wmax plus the grid's
// half-diagonal reach of the centre, which keeps the signed-distance band
// [wmin, wmax] in contact with the grid whenever wmin is at most the
// half-diagonal. For every vertex the signed distance d to the line is the
// dot product of the vertex-to-line offset with v, and the height is
// incremented by profile(d) when nonzero.
//
// Contract: profile must return 0 for d outside [wmin, wmax]. This is a
// caller obligation and is not validated here; profiles that bleed outside
// the interval simply displace more of the grid.
func FaultDisplacement[F constraints.Float](m *Heightfield[F], rng *rand.Rand, wmin, wmax F, profile func(d F) F) {
	theta := 2 * math.Pi * rng.Float64()
	vx := F(math.Cos(theta))
	vy := F(math.Sin(theta))

	// Largest |projection| of any corner onto v, relative to the centre.
	// Signed vertex distances then span [-reach-offset, reach-offset], so
	// offsets in [-(wmax+reach), reach-wmin] keep [wmin, wmax] reachable.
	absF := func(v F) F {
		if v < 0 {
			return -v
		}
		return v
	}
	reach := absF(vx)*m.sx/2 + absF(vy)*m.sy/2
	lo, hi := -(wmax+reach), reach-wmin
	offset := lo + (hi-lo)*F(rng.Float64())
	px := m.sx/2 + vx*offset
	py := m.sy/2 + vy*offset

	for cy := 0; cy < m.ny; cy++ {
		for cx := 0; cx < m.nx; cx++ {
			x, y := m.CoordOf(cx, cy)
			d := (x-px)*vx + (y-py)*vy
			if h := profile(d); h != 0 {
				m.data[cy*m.nx+cx] += h
			}
		}
	}
	m.recomputeRange()
}

// CliffProfile returns a one-sided fault profile rising to height at the
// fault and falling smoothly to zero at distance width, for use with
// FaultDisplacement over the interval [0, width].
func CliffProfile[F constraints.Float](height, width F) func(F) F {
	return func(d F) F {
		if d < 0 || d >= width {
			return 0
		}
		f := 1 - (d/width)*(d/width)
		return height * f * f
	}
}

// TailProfile returns a one-sided exponentially decaying profile
// height*exp(-rate*d), truncated to zero beyond width, for use with
// FaultDisplacement over the interval [0, width].
func TailProfile[F constraints.Float](height, rate, width F) func(F) F {
	return func(d F) F {
		if d < 0 || d >= width {
			return 0
		}
		return height * F(math.Exp(float64(-rate*d)))
	}
}
