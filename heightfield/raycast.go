package heightfield

import (
	"math"

	"golang.org/x/exp/constraints"

	"terragrid/internal/profiling"
)

// Ray is an origin and direction in the grid's local frame. The direction
// need not be unit length; intersection parameters are reported in its scale.
type Ray[F constraints.Float] struct {
	Origin, Dir Vec3[F]
}

// At returns the point at parameter t along the ray.
func (r Ray[F]) At(t F) Vec3[F] {
	return r.Origin.Add(r.Dir.Scale(t))
}

// RayHit reports the first ray-surface intersection: the ray parameter
// (time of impact), the hit point, and the surface normal facing the ray.
type RayHit[F constraints.Float] struct {
	TOI    F
	Point  Vec3[F]
	Normal Vec3[F]
}

// Triangle is a triple of vertices in the grid's local frame.
type Triangle[F constraints.Float] [3]Vec3[F]

// TrianglesAt returns the two triangles covering cell (cx, cy), split along
// the (x0,y0)-(x1,y1) diagonal. Indices outside the cell lattice panic.
func (m *Heightfield[F]) TrianglesAt(cx, cy int) (Triangle[F], Triangle[F]) {
	if cx < 0 || cx+1 >= m.nx || cy < 0 || cy+1 >= m.ny {
		panic("heightfield: cell index out of range")
	}
	x0, y0 := m.CoordOf(cx, cy)
	x1, y1 := m.CoordOf(cx+1, cy+1)

	p00 := Vec3[F]{x0, y0, m.Get(cx, cy)}
	p10 := Vec3[F]{x1, y0, m.Get(cx+1, cy)}
	p01 := Vec3[F]{x0, y1, m.Get(cx, cy+1)}
	p11 := Vec3[F]{x1, y1, m.Get(cx+1, cy+1)}

	return Triangle[F]{p00, p10, p11}, Triangle[F]{p00, p11, p01}
}

// RayIntersect finds the first intersection of ray with the terrain surface.
//
// The ray is clipped against the grid's bounding box, the entry cell is
// located, and cells are then marched in 2D with the crossing parameter of
// whichever axis boundary comes first deciding each step. Every visited
// cell's two triangles are tested; the smaller parameter wins, ties going to
// the first triangle. Rays that miss the bounding box, or exit it before
// touching the surface, report ok == false.
func (m *Heightfield[F]) RayIntersect(ray Ray[F]) (hit RayHit[F], ok bool) {
	defer profiling.Track("heightfield.RayIntersect")()

	if m.nx < 2 || m.ny < 2 {
		return RayHit[F]{}, false
	}
	minT, maxT, ok := m.clipRay(ray)
	if !ok {
		return RayHit[F]{}, false
	}

	p := ray.At(minT)
	cx, cy, ok := m.CellAtCoord(clamp(p.X, 0, m.sx), clamp(p.Y, 0, m.sy))
	if !ok {
		return RayHit[F]{}, false
	}

	inf := F(math.Inf(1))
	hx, hy := m.Spacing()
	stepX, stepY := 0, 0
	tCrossX, tCrossY := inf, inf
	tDeltaX, tDeltaY := inf, inf
	if ray.Dir.X > 0 {
		stepX = 1
		tCrossX = (F(cx+1)*hx - ray.Origin.X) / ray.Dir.X
		tDeltaX = hx / ray.Dir.X
	} else if ray.Dir.X < 0 {
		stepX = -1
		tCrossX = (F(cx)*hx - ray.Origin.X) / ray.Dir.X
		tDeltaX = -hx / ray.Dir.X
	}
	if ray.Dir.Y > 0 {
		stepY = 1
		tCrossY = (F(cy+1)*hy - ray.Origin.Y) / ray.Dir.Y
		tDeltaY = hy / ray.Dir.Y
	} else if ray.Dir.Y < 0 {
		stepY = -1
		tCrossY = (F(cy)*hy - ray.Origin.Y) / ray.Dir.Y
		tDeltaY = -hy / ray.Dir.Y
	}

	for {
		if hit, ok := m.cellHit(ray, cx, cy); ok {
			return hit, true
		}
		// Step across whichever cell boundary the ray crosses first.
		if tCrossX <= tCrossY {
			if tCrossX > maxT {
				break
			}
			cx += stepX
			if cx < 0 || cx > m.nx-2 {
				break
			}
			tCrossX += tDeltaX
		} else {
			if tCrossY > maxT {
				break
			}
			cy += stepY
			if cy < 0 || cy > m.ny-2 {
				break
			}
			tCrossY += tDeltaY
		}
	}
	return RayHit[F]{}, false
}

// cellHit tests the two triangles of one cell, keeping the nearer hit.
func (m *Heightfield[F]) cellHit(ray Ray[F], cx, cy int) (RayHit[F], bool) {
	tri1, tri2 := m.TrianglesAt(cx, cy)
	t1, n1, ok1 := rayTriangle(ray, tri1)
	t2, n2, ok2 := rayTriangle(ray, tri2)

	switch {
	case ok1 && (!ok2 || t1 <= t2):
		return RayHit[F]{TOI: t1, Point: ray.At(t1), Normal: n1}, true
	case ok2:
		return RayHit[F]{TOI: t2, Point: ray.At(t2), Normal: n2}, true
	}
	return RayHit[F]{}, false
}

// rayTriangle is the Möller–Trumbore intersection test. The returned normal
// faces the ray.
func rayTriangle[F constraints.Float](ray Ray[F], tri Triangle[F]) (toi F, normal Vec3[F], ok bool) {
	const eps = 1e-9

	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	h := ray.Dir.Cross(e2)
	det := e1.Dot(h)
	if det > -eps && det < eps {
		return 0, Vec3[F]{}, false // parallel to the triangle plane
	}
	inv := 1 / det
	s := ray.Origin.Sub(tri[0])
	u := inv * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, Vec3[F]{}, false
	}
	q := s.Cross(e1)
	v := inv * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, Vec3[F]{}, false
	}
	toi = inv * e2.Dot(q)
	if toi < 0 {
		return 0, Vec3[F]{}, false
	}
	normal = e1.Cross(e2).Normalize()
	if normal.Dot(ray.Dir) > 0 {
		normal = normal.Scale(-1)
	}
	return toi, normal, true
}

// clipRay clips the ray against the grid's bounding box
// [0,sx] x [0,sy] x [min,max] by the slab method, restricted to t >= 0.
func (m *Heightfield[F]) clipRay(ray Ray[F]) (minT, maxT F, ok bool) {
	minT, maxT = 0, F(math.Inf(1))

	clipAxis := func(origin, dir, lo, hi F) bool {
		if dir == 0 {
			return origin >= lo && origin <= hi
		}
		t0 := (lo - origin) / dir
		t1 := (hi - origin) / dir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > minT {
			minT = t0
		}
		if t1 < maxT {
			maxT = t1
		}
		return minT <= maxT
	}

	if !clipAxis(ray.Origin.X, ray.Dir.X, 0, m.sx) {
		return 0, 0, false
	}
	if !clipAxis(ray.Origin.Y, ray.Dir.Y, 0, m.sy) {
		return 0, 0, false
	}
	if !clipAxis(ray.Origin.Z, ray.Dir.Z, m.min, m.max) {
		return 0, 0, false
	}
	return minT, maxT, true
}

func clamp[F constraints.Float](v, lo, hi F) F {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
