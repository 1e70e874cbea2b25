package heightfield

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Vec3 is a small generic 3-vector for the ray-cast API. The grid's local
// frame puts X and Y on the ground plane and heights on Z. Rendering code
// working in float32 converts to mathgl vectors at the boundary.
type Vec3[F constraints.Float] struct {
	X, Y, Z F
}

func (v Vec3[F]) Add(o Vec3[F]) Vec3[F] { return Vec3[F]{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3[F]) Sub(o Vec3[F]) Vec3[F] { return Vec3[F]{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3[F]) Scale(s F) Vec3[F] { return Vec3[F]{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3[F]) Dot(o Vec3[F]) F { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3[F]) Cross(o Vec3[F]) Vec3[F] {
	return Vec3[F]{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3[F]) Len() F {
	return F(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns the unit vector in v's direction. Zero vectors are
// returned unchanged.
func (v Vec3[F]) Normalize() Vec3[F] {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
