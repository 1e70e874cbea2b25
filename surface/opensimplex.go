package surface

import (
	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/exp/constraints"
)

// OpenSimplex adapts the opensimplex-go generator to the Surface interface,
// as an alternative octave source to Perlin with a different visual grain.
type OpenSimplex[F constraints.Float] struct {
	noise opensimplex.Noise
	scale F
}

// NewOpenSimplex builds a seeded open-simplex surface; scale sets the
// spatial frequency as for Perlin.
func NewOpenSimplex[F constraints.Float](scale F, seed int64) OpenSimplex[F] {
	return OpenSimplex[F]{noise: opensimplex.New(seed), scale: scale}
}

// Get samples the noise at the scaled coordinate.
func (o OpenSimplex[F]) Get(x, y F) F {
	return F(o.noise.Eval2(float64(x*o.scale), float64(y*o.scale)))
}
