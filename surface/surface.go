// Package surface provides unbounded height functions h(x, y): coherent
// noise generators and trivial surfaces that can be sampled standalone or
// summed into a heightfield as octaves.
package surface

import (
	"golang.org/x/exp/constraints"
)

// Surface maps a continuous 2D coordinate to a height.
type Surface[F constraints.Float] interface {
	Get(x, y F) F
}

// Flat is an infinite surface at a constant elevation.
type Flat[F constraints.Float] struct {
	Elevation F
}

// Get returns the constant elevation for any coordinate.
func (f Flat[F]) Get(x, y F) F { return f.Elevation }
