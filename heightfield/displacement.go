package heightfield

import (
	"errors"
	"math"
	"math/rand/v2"

	"golang.org/x/exp/constraints"
)

var (
	// ErrNotSquare is returned when a fractal pass is invoked on a grid
	// whose vertex counts differ per axis.
	ErrNotSquare = errors.New("heightfield: fractal displacement requires a square grid")
	// ErrNotPowerOf2Plus1 is returned when the side length is not 2^n+1.
	ErrNotPowerOf2Plus1 = errors.New("heightfield: fractal displacement requires side length 2^n+1")
)

// fractalLevels validates the grid shape for the fractal passes and returns
// the number of subdivision levels n (side length 2^n+1). The passes must
// not touch the grid before this check succeeds.
func fractalLevels[F constraints.Float](m *Heightfield[F]) (int, error) {
	if m.nx != m.ny {
		return 0, ErrNotSquare
	}
	side1 := m.nx - 1
	if side1 < 1 {
		return 0, ErrNotPowerOf2Plus1
	}
	n := 0
	for 1<<(n+1) <= side1 {
		n++
	}
	if m.nx != 1<<n+1 {
		return 0, ErrNotPowerOf2Plus1
	}
	return n, nil
}

// MidpointDisplacement roughens a square 2^n+1 grid by recursive midpoint
// subdivision, swept iteratively level by level.
//
// The four corner vertices must be seeded before the call. At each level the
// grid is partitioned into quads; every quad's four edge midpoints are set to
// the average of their two adjacent corners, and the centre to the average of
// those fresh midpoints, each plus a sample from distr scaled by half the
// quad side. With Constant(0) the result is exact bilinear interpolation of
// the corners.
//
// skipLevels skips that many coarse levels (normally 0).
func MidpointDisplacement[F constraints.Float](m *Heightfield[F], skipLevels int, rng *rand.Rand, distr Distribution[F]) error {
	n, err := fractalLevels(m)
	if err != nil {
		return err
	}
	side1 := m.nx - 1

	for i := skipLevels; i < n; i++ {
		quad := 1 << (n - i)
		mid := quad / 2
		scale := F(mid)

		for x0 := 0; x0+quad <= side1; x0 += quad {
			x1 := x0 + quad
			xm := x0 + mid
			for y0 := 0; y0+quad <= side1; y0 += quad {
				y1 := y0 + quad
				ym := y0 + mid

				h00 := m.Get(x0, y0)
				h01 := m.Get(x0, y1)
				h10 := m.Get(x1, y0)
				h11 := m.Get(x1, y1)

				h0m := (h00+h01)/2 + scale*distr(rng)
				h1m := (h10+h11)/2 + scale*distr(rng)
				hm0 := (h00+h10)/2 + scale*distr(rng)
				hm1 := (h01+h11)/2 + scale*distr(rng)
				hmm := (h0m+h1m+hm0+hm1)/4 + scale*distr(rng)

				m.Set(x0, ym, h0m)
				m.Set(x1, ym, h1m)
				m.Set(xm, y0, hm0)
				m.Set(xm, y1, hm1)
				m.Set(xm, ym, hmm)
			}
		}
	}
	m.recomputeRange()
	return nil
}

// DiamondSquare roughens a square 2^n+1 grid with the diamond-square variant
// of midpoint displacement, which shows fewer axis-aligned artifacts.
//
// Per quad the centre ("diamond" point) is displaced first from the four
// corners. Edge midpoints ("square" points) then average their two adjacent
// corners, the fresh centre, and the already-finalised centre of the
// neighbouring quad when one exists (3-way average on the domain boundary),
// with the displacement scaled by half the quad side times sqrt(2). The
// trailing column and row of square points are swept at the end of each
// level, so every point is written before any later point reads it.
//
// Corners must be seeded beforehand; skipLevels as for MidpointDisplacement.
func DiamondSquare[F constraints.Float](m *Heightfield[F], skipLevels int, rng *rand.Rand, distr Distribution[F]) error {
	n, err := fractalLevels(m)
	if err != nil {
		return err
	}
	side1 := m.nx - 1

	for i := skipLevels; i < n; i++ {
		quad := 1 << (n - i)
		mid := quad / 2
		scale := F(mid)
		scale2 := scale * F(math.Sqrt2)

		for x0 := 0; x0+quad <= side1; x0 += quad {
			x1 := x0 + quad
			xm := x0 + mid
			for y0 := 0; y0+quad <= side1; y0 += quad {
				y1 := y0 + quad
				ym := y0 + mid

				h00 := m.Get(x0, y0)
				h01 := m.Get(x0, y1)
				h10 := m.Get(x1, y0)
				h11 := m.Get(x1, y1)

				hmm := (h00+h01+h10+h11)/4 + scale*distr(rng)

				// Left edge midpoint; the left neighbour's centre is
				// final once x0 > 0.
				var h0m F
				if x0 > 0 {
					hnb := m.Get(x0-mid, ym)
					h0m = (h00+h01+hmm+hnb)/4 + scale2*distr(rng)
				} else {
					h0m = (h00+h01+hmm)/3 + scale2*distr(rng)
				}

				// Bottom edge midpoint; the lower neighbour's centre is
				// final once y0 > 0.
				var hm0 F
				if y0 > 0 {
					hnb := m.Get(xm, y0-mid)
					hm0 = (h00+h10+hmm+hnb)/4 + scale2*distr(rng)
				} else {
					hm0 = (h00+h10+hmm)/3 + scale2*distr(rng)
				}

				m.Set(x0, ym, h0m)
				m.Set(xm, y0, hm0)
				m.Set(xm, ym, hmm)
			}

			// Square point on the far edge of this column.
			h00 := m.Get(x0, side1)
			h10 := m.Get(x1, side1)
			hnb := m.Get(xm, side1-mid)
			m.Set(xm, side1, (h00+h10+hnb)/3+scale2*distr(rng))
		}

		// Square points on the far edge of each row.
		for y0 := 0; y0+quad <= side1; y0 += quad {
			ym := y0 + mid
			h00 := m.Get(side1, y0)
			h01 := m.Get(side1, y0+quad)
			hnb := m.Get(side1-mid, ym)
			m.Set(side1, ym, (h00+h01+hnb)/3+scale2*distr(rng))
		}
	}
	m.recomputeRange()
	return nil
}
