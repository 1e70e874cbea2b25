package heightfield_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"terragrid/heightfield"
)

// surfaceFunc adapts a plain function to the Surface interface for tests.
type surfaceFunc func(x, y float64) float64

func (f surfaceFunc) Get(x, y float64) float64 { return f(x, y) }

// scanRange is the full linear-scan oracle for the cached range.
func scanRange(t *testing.T, m *heightfield.Heightfield[float64]) (min, max float64) {
	t.Helper()
	nx, ny := m.Dim()
	min, max = m.Get(0, 0), m.Get(0, 0)
	for cy := 0; cy < ny; cy++ {
		for cx := 0; cx < nx; cx++ {
			v := m.Get(cx, cy)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

// TestNewFlat verifies the flat constructor yields zeros and a zero range.
func TestNewFlat(t *testing.T) {
	m := heightfield.NewFlat[float64](5, 3, 10, 6)

	nx, ny := m.Dim()
	if nx != 5 || ny != 3 {
		t.Fatalf("Dim() = (%d,%d), want (5,3)", nx, ny)
	}
	sx, sy := m.Size()
	if sx != 10 || sy != 6 {
		t.Errorf("Size() = (%v,%v), want (10,6)", sx, sy)
	}
	for cy := 0; cy < ny; cy++ {
		for cx := 0; cx < nx; cx++ {
			if v := m.Get(cx, cy); v != 0 {
				t.Errorf("Get(%d,%d) = %v, want 0", cx, cy, v)
			}
		}
	}
	if min, max := m.Range(); min != 0 || max != 0 {
		t.Errorf("Range() = (%v,%v), want (0,0)", min, max)
	}
}

// TestNewFill verifies the constant-fill constructor seeds range and values.
func TestNewFill(t *testing.T) {
	m := heightfield.NewFill(3, 3, 1.0, 1.0, -2.5)
	if v := m.Get(1, 2); v != -2.5 {
		t.Errorf("Get(1,2) = %v, want -2.5", v)
	}
	if min, max := m.Range(); min != -2.5 || max != -2.5 {
		t.Errorf("Range() = (%v,%v), want (-2.5,-2.5)", min, max)
	}
}

// TestFromSurface verifies every vertex samples the surface at its physical
// coordinate.
func TestFromSurface(t *testing.T) {
	f := surfaceFunc(func(x, y float64) float64 { return 2*x - y })
	m := heightfield.FromSurface[float64](5, 5, 4, 4, f)

	for cy := 0; cy < 5; cy++ {
		for cx := 0; cx < 5; cx++ {
			x, y := m.CoordOf(cx, cy)
			want := 2*x - y
			if got := m.Get(cx, cy); got != want {
				t.Errorf("Get(%d,%d) = %v, want %v", cx, cy, got, want)
			}
		}
	}

	wantMin, wantMax := scanRange(t, m)
	if min, max := m.Range(); min != wantMin || max != wantMax {
		t.Errorf("Range() = (%v,%v), want (%v,%v)", min, max, wantMin, wantMax)
	}
}

// TestSetWidensRange verifies Set updates the cached range incrementally.
func TestSetWidensRange(t *testing.T) {
	m := heightfield.NewFlat[float64](3, 3, 1, 1)
	m.Set(0, 0, 5)
	m.Set(2, 2, -3)

	if min, max := m.Range(); min != -3 || max != 5 {
		t.Errorf("Range() = (%v,%v), want (-3,5)", min, max)
	}
}

// TestCoordOf maps grid indices onto evenly spaced physical coordinates.
func TestCoordOf(t *testing.T) {
	m := heightfield.NewFlat[float64](5, 5, 4, 8)
	x, y := m.CoordOf(2, 3)
	if x != 2 || y != 6 {
		t.Errorf("CoordOf(2,3) = (%v,%v), want (2,6)", x, y)
	}
	x, y = m.CoordOf(4, 4)
	if x != 4 || y != 8 {
		t.Errorf("CoordOf(4,4) = (%v,%v), want (4,8)", x, y)
	}
}

// TestCellAtCoord verifies coordinate-to-cell mapping, including the far
// edge and out-of-bounds rejections.
func TestCellAtCoord(t *testing.T) {
	m := heightfield.NewFlat[float64](5, 5, 4, 4)

	cx, cy, ok := m.CellAtCoord(1.5, 2.5)
	if !ok || cx != 1 || cy != 2 {
		t.Errorf("CellAtCoord(1.5,2.5) = (%d,%d,%v), want (1,2,true)", cx, cy, ok)
	}

	// Far edges map to the last cell rather than falling outside.
	cx, cy, ok = m.CellAtCoord(4, 4)
	if !ok || cx != 3 || cy != 3 {
		t.Errorf("CellAtCoord(4,4) = (%d,%d,%v), want (3,3,true)", cx, cy, ok)
	}

	for _, c := range [][2]float64{{-0.1, 1}, {1, -0.1}, {4.1, 1}, {1, 4.1}} {
		if _, _, ok := m.CellAtCoord(c[0], c[1]); ok {
			t.Errorf("CellAtCoord(%v,%v) ok = true, want false", c[0], c[1])
		}
	}
}

// TestAddSurface verifies the additive octave path and its full range
// recompute.
func TestAddSurface(t *testing.T) {
	m := heightfield.NewFlat[float64](3, 3, 2, 2)
	m.Set(0, 0, 10)

	m.AddSurface(surfaceFunc(func(x, y float64) float64 { return 1 }), 3)

	if v := m.Get(1, 1); v != 3 {
		t.Errorf("Get(1,1) = %v, want 3", v)
	}
	if v := m.Get(0, 0); v != 13 {
		t.Errorf("Get(0,0) = %v, want 13", v)
	}
	// A negative pass must shrink the cached max again (full recompute,
	// not just widening).
	m.AddSurface(surfaceFunc(func(x, y float64) float64 { return 1 }), -3)
	if min, max := m.Range(); min != 0 || max != 10 {
		t.Errorf("Range() = (%v,%v), want (0,10)", min, max)
	}
}

// TestRangeOracle runs a random mix of mutations and checks the cached
// range against a full scan after each step.
func TestRangeOracle(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	m := heightfield.NewFlat[float64](9, 9, 8, 8)

	check := func(step string) {
		t.Helper()
		wantMin, wantMax := scanRange(t, m)
		min, max := m.Range()
		if min > wantMin || max < wantMax {
			t.Fatalf("%s: Range() = (%v,%v) misses true range (%v,%v)", step, min, max, wantMin, wantMax)
		}
	}
	checkExact := func(step string) {
		t.Helper()
		wantMin, wantMax := scanRange(t, m)
		min, max := m.Range()
		if min != wantMin || max != wantMax {
			t.Fatalf("%s: Range() = (%v,%v), want exact (%v,%v)", step, min, max, wantMin, wantMax)
		}
	}

	for i := 0; i < 50; i++ {
		m.Set(rng.IntN(9), rng.IntN(9), rng.Float64()*20-10)
		check("Set")
	}

	if err := heightfield.DiamondSquare(m, 0, rng, heightfield.Uniform(-1.0, 1.0)); err != nil {
		t.Fatalf("DiamondSquare: %v", err)
	}
	checkExact("DiamondSquare")

	heightfield.FaultDisplacement(m, rng, 0, 2, heightfield.CliffProfile(1.0, 2.0))
	checkExact("FaultDisplacement")

	m.AddSurface(surfaceFunc(math.Hypot), -0.5)
	checkExact("AddSurface")
}
