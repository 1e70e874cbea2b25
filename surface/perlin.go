package surface

import (
	"errors"
	"math"
	"math/rand/v2"

	"golang.org/x/exp/constraints"
)

// ErrNotPowerOf2 is returned when a Perlin lattice size is not a power of
// two; the size doubles as the hash mask.
var ErrNotPowerOf2 = errors.New("surface: gradient count must be a power of two")

// Perlin is a coherent gradient-noise generator over a fixed lattice of 2D
// gradient vectors. It is immutable once constructed; Get is a pure function
// of its coordinate, zero at every integer lattice point (after scaling) and
// continuous everywhere.
type Perlin[F constraints.Float] struct {
	scale F
	mask  uint64
	grad  [][2]F
}

// NewPerlin builds a generator with n gradients drawn from sampler. Each
// coordinate is multiplied by scale before lattice lookup, so scale sets the
// spatial frequency. UnitGradients gives classic Perlin noise; gradients of
// varying length (see ExpGradients) give more dramatic slopes.
func NewPerlin[F constraints.Float](scale F, n int, sampler func() [2]F) (*Perlin[F], error) {
	if n < 1 || n&(n-1) != 0 {
		return nil, ErrNotPowerOf2
	}
	grad := make([][2]F, n)
	for i := range grad {
		grad[i] = sampler()
	}
	return &Perlin[F]{scale: scale, mask: uint64(n - 1), grad: grad}, nil
}

// UnitGradients returns a sampler of uniformly distributed unit vectors.
func UnitGradients[F constraints.Float](rng *rand.Rand) func() [2]F {
	return func() [2]F {
		theta := 2 * math.Pi * rng.Float64()
		return [2]F{F(math.Cos(theta)), F(math.Sin(theta))}
	}
}

// ExpGradients returns a sampler of unit vectors scaled by exponentially
// distributed magnitudes, which produces terrain with occasional steep
// features.
func ExpGradients[F constraints.Float](rng *rand.Rand) func() [2]F {
	return func() [2]F {
		theta := 2 * math.Pi * rng.Float64()
		s := F(rng.ExpFloat64())
		return [2]F{s * F(math.Cos(theta)), s * F(math.Sin(theta))}
	}
}

// Get samples the noise at (x, y): the four corners of the containing
// lattice cell are hashed to gradients, each gradient is dotted with the
// offset from its corner to the sample point, and the four products are
// blended with an eased bilinear interpolation.
func (p *Perlin[F]) Get(x, y F) F {
	px := x * p.scale
	py := y * p.scale
	fx := F(math.Floor(float64(px)))
	fy := F(math.Floor(float64(py)))
	ix := int64(fx)
	iy := int64(fy)

	// Offsets from the near and far lattice corners.
	rx0 := px - fx
	ry0 := py - fy
	rx1 := rx0 - 1
	ry1 := ry0 - 1

	g00 := p.grad[latticeHash(ix, iy)&p.mask]
	g10 := p.grad[latticeHash(ix+1, iy)&p.mask]
	g01 := p.grad[latticeHash(ix, iy+1)&p.mask]
	g11 := p.grad[latticeHash(ix+1, iy+1)&p.mask]

	d00 := rx0*g00[0] + ry0*g00[1]
	d10 := rx1*g10[0] + ry0*g10[1]
	d01 := rx0*g01[0] + ry1*g01[1]
	d11 := rx1*g11[0] + ry1*g11[1]

	sx := ease(rx0)
	sy := ease(ry0)
	a := lerp(sx, d00, d10)
	b := lerp(sx, d01, d11)
	return lerp(sy, a, b)
}

// ease is the 3t^2 - 2t^3 smoothing curve.
func ease[F constraints.Float](t F) F {
	return t * t * (3 - 2*t)
}

func lerp[F constraints.Float](t, a, b F) F {
	return a + t*(b-a)
}

// latticeHash mixes a lattice corner index to a gradient index.
// SplitMix64-style finalizer with per-axis multipliers; stable across runs,
// fast, not cryptographic.
func latticeHash(ix, iy int64) uint64 {
	v := uint64(ix)*0x9E3779B97F4A7C15 + uint64(iy)*0x517CC1B727220A95
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}
