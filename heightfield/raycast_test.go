package heightfield_test

import (
	"math"
	"testing"

	"terragrid/heightfield"
)

func approxVec(a, b heightfield.Vec3[float64], tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// TestRayIntersectVertical: a vertical ray onto a flat cell hits at the
// plane with an upward normal, and from below with a downward one.
func TestRayIntersectVertical(t *testing.T) {
	m := heightfield.NewFlat[float64](2, 2, 1, 1)

	hit, ok := m.RayIntersect(heightfield.Ray[float64]{
		Origin: heightfield.Vec3[float64]{X: 0.25, Y: 0.25, Z: 1},
		Dir:    heightfield.Vec3[float64]{Z: -1},
	})
	if !ok {
		t.Fatal("descending ray: no hit")
	}
	if math.Abs(hit.TOI-1) > 1e-12 {
		t.Errorf("TOI = %v, want 1", hit.TOI)
	}
	if want := (heightfield.Vec3[float64]{X: 0.25, Y: 0.25, Z: 0}); !approxVec(hit.Point, want, 1e-12) {
		t.Errorf("Point = %+v, want %+v", hit.Point, want)
	}
	if want := (heightfield.Vec3[float64]{Z: 1}); !approxVec(hit.Normal, want, 1e-12) {
		t.Errorf("Normal = %+v, want %+v", hit.Normal, want)
	}

	hit, ok = m.RayIntersect(heightfield.Ray[float64]{
		Origin: heightfield.Vec3[float64]{X: 0.25, Y: 0.25, Z: -1},
		Dir:    heightfield.Vec3[float64]{Z: 1},
	})
	if !ok {
		t.Fatal("ascending ray: no hit")
	}
	if want := (heightfield.Vec3[float64]{Z: -1}); !approxVec(hit.Normal, want, 1e-12) {
		t.Errorf("Normal = %+v, want %+v (facing the ray)", hit.Normal, want)
	}
}

// TestRayIntersectMiss covers rays that never touch the bounding box, point
// away from it, or cross the box above the surface.
func TestRayIntersectMiss(t *testing.T) {
	m := heightfield.NewFlat[float64](5, 5, 4, 4)
	m.Set(0, 4, 4) // nonzero height range so the box has volume

	cases := []struct {
		name string
		ray  heightfield.Ray[float64]
	}{
		{"beside the grid", heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: 10, Y: 10, Z: 5},
			Dir:    heightfield.Vec3[float64]{Z: -1},
		}},
		{"pointing away", heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: 0.5, Y: 0.5, Z: 5},
			Dir:    heightfield.Vec3[float64]{Z: 1},
		}},
		{"exits before reaching the surface", heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: -1, Y: 0.5, Z: 1},
			Dir:    heightfield.Vec3[float64]{X: 1, Z: -0.1},
		}},
	}
	for _, c := range cases {
		if _, ok := m.RayIntersect(c.ray); ok {
			t.Errorf("%s: unexpected hit", c.name)
		}
	}
}

// TestRayIntersectMarching sends shallow rays across several cells in each
// axis direction and along a diagonal; the hit point is where the ray meets
// the zero plane.
func TestRayIntersectMarching(t *testing.T) {
	cases := []struct {
		name  string
		spike [2]int // raised vertex, away from the ray's path
		ray   heightfield.Ray[float64]
		point heightfield.Vec3[float64]
	}{
		{"+x", [2]int{0, 4}, heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: -1, Y: 0.5, Z: 1},
			Dir:    heightfield.Vec3[float64]{X: 1, Z: -0.25},
		}, heightfield.Vec3[float64]{X: 3, Y: 0.5}},
		{"-x", [2]int{0, 4}, heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: 5, Y: 0.5, Z: 1},
			Dir:    heightfield.Vec3[float64]{X: -1, Z: -0.25},
		}, heightfield.Vec3[float64]{X: 1, Y: 0.5}},
		{"+y", [2]int{4, 0}, heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: 0.5, Y: -1, Z: 1},
			Dir:    heightfield.Vec3[float64]{Y: 1, Z: -0.25},
		}, heightfield.Vec3[float64]{X: 0.5, Y: 3}},
		{"-y", [2]int{4, 0}, heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: 0.5, Y: 5, Z: 1},
			Dir:    heightfield.Vec3[float64]{Y: -1, Z: -0.25},
		}, heightfield.Vec3[float64]{X: 0.5, Y: 1}},
		{"diagonal", [2]int{0, 4}, heightfield.Ray[float64]{
			Origin: heightfield.Vec3[float64]{X: -1, Y: -1, Z: 2},
			Dir:    heightfield.Vec3[float64]{X: 1, Y: 1, Z: -0.5},
		}, heightfield.Vec3[float64]{X: 3, Y: 3}},
	}

	for _, c := range cases {
		m := heightfield.NewFlat[float64](5, 5, 4, 4)
		m.Set(c.spike[0], c.spike[1], 4)

		hit, ok := m.RayIntersect(c.ray)
		if !ok {
			t.Errorf("%s: no hit", c.name)
			continue
		}
		if math.Abs(hit.TOI-4) > 1e-9 {
			t.Errorf("%s: TOI = %v, want 4", c.name, hit.TOI)
		}
		if !approxVec(hit.Point, c.point, 1e-9) {
			t.Errorf("%s: Point = %+v, want %+v", c.name, hit.Point, c.point)
		}
	}
}

// TestRayIntersectSlope: on terrain forming the plane z=x the vertical hit
// height and tilted normal come out in closed form.
func TestRayIntersectSlope(t *testing.T) {
	m := heightfield.NewFlat[float64](2, 2, 1, 1)
	m.Set(1, 0, 1)
	m.Set(1, 1, 1)

	hit, ok := m.RayIntersect(heightfield.Ray[float64]{
		Origin: heightfield.Vec3[float64]{X: 0.3, Y: 0.2, Z: 2},
		Dir:    heightfield.Vec3[float64]{Z: -1},
	})
	if !ok {
		t.Fatal("no hit")
	}
	if math.Abs(hit.TOI-1.7) > 1e-12 {
		t.Errorf("TOI = %v, want 1.7", hit.TOI)
	}
	if want := (heightfield.Vec3[float64]{X: 0.3, Y: 0.2, Z: 0.3}); !approxVec(hit.Point, want, 1e-12) {
		t.Errorf("Point = %+v, want %+v", hit.Point, want)
	}
	s := 1 / math.Sqrt2
	if want := (heightfield.Vec3[float64]{X: -s, Z: s}); !approxVec(hit.Normal, want, 1e-12) {
		t.Errorf("Normal = %+v, want %+v", hit.Normal, want)
	}
}

// TestRayIntersectDegenerateGrid: a grid without cells cannot be hit.
func TestRayIntersectDegenerateGrid(t *testing.T) {
	m := heightfield.NewFlat[float64](1, 5, 1, 4)
	_, ok := m.RayIntersect(heightfield.Ray[float64]{
		Origin: heightfield.Vec3[float64]{X: 0.5, Y: 0.5, Z: 1},
		Dir:    heightfield.Vec3[float64]{Z: -1},
	})
	if ok {
		t.Error("unexpected hit on a cell-less grid")
	}
}

// TestTrianglesAt verifies the diagonal split and the lattice bounds panic.
func TestTrianglesAt(t *testing.T) {
	m := heightfield.NewFlat[float64](3, 3, 2, 2)
	m.Set(1, 1, 5)

	tri1, tri2 := m.TrianglesAt(0, 0)
	p00 := heightfield.Vec3[float64]{X: 0, Y: 0, Z: 0}
	p10 := heightfield.Vec3[float64]{X: 1, Y: 0, Z: 0}
	p01 := heightfield.Vec3[float64]{X: 0, Y: 1, Z: 0}
	p11 := heightfield.Vec3[float64]{X: 1, Y: 1, Z: 5}
	if tri1 != (heightfield.Triangle[float64]{p00, p10, p11}) {
		t.Errorf("tri1 = %+v, want {%+v %+v %+v}", tri1, p00, p10, p11)
	}
	if tri2 != (heightfield.Triangle[float64]{p00, p11, p01}) {
		t.Errorf("tri2 = %+v, want {%+v %+v %+v}", tri2, p00, p11, p01)
	}

	defer func() {
		if recover() == nil {
			t.Error("TrianglesAt(2,0) on a 2x2-cell grid did not panic")
		}
	}()
	m.TrianglesAt(2, 0)
}
