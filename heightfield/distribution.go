package heightfield

import (
	"math/rand/v2"

	"golang.org/x/exp/constraints"
)

// Distribution samples a scalar displacement from the supplied generator.
// Generation passes take the generator and distribution as explicit
// arguments, so a seeded rand.Rand reproduces a terrain exactly.
type Distribution[F constraints.Float] func(rng *rand.Rand) F

// Uniform returns a distribution over [lo, hi).
func Uniform[F constraints.Float](lo, hi F) Distribution[F] {
	return func(rng *rand.Rand) F {
		return lo + (hi-lo)*F(rng.Float64())
	}
}

// Normal returns a Gaussian distribution with the given mean and standard
// deviation.
func Normal[F constraints.Float](mean, stddev F) Distribution[F] {
	return func(rng *rand.Rand) F {
		return mean + stddev*F(rng.NormFloat64())
	}
}

// Constant returns a distribution that always yields v. Constant(0) turns the
// fractal passes into pure interpolation.
func Constant[F constraints.Float](v F) Distribution[F] {
	return func(*rand.Rand) F { return v }
}
