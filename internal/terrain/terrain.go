// Package terrain assembles complete terrains from the generation passes,
// shared by the viewer and the CLI.
package terrain

import (
	"math/rand/v2"

	perlin "github.com/aquilax/go-perlin"

	"terragrid/heightfield"
	"terragrid/internal/profiling"
	"terragrid/surface"
)

// Params selects the passes applied by Build. Zero values fall back to the
// defaults noted on each field.
type Params struct {
	Seed     int64
	Exponent int     // grid side is 2^Exponent+1; default 7
	Size     float32 // physical side length; default 100

	Roughness    float32 // fractal displacement amplitude; default 0.1
	CornerSpread float32 // corner seeding spread; default 15
	Octaves      int     // noise octaves summed on top; default 4
	VoronoiSeeds int     // 0 disables the Voronoi pass
	Faults       int     // number of fault-line passes
	UseSimplex   bool    // open-simplex octaves instead of Perlin
}

func (p *Params) applyDefaults() {
	if p.Exponent == 0 {
		p.Exponent = 7
	}
	if p.Size == 0 {
		p.Size = 100
	}
	if p.Roughness == 0 {
		p.Roughness = 0.1
	}
	if p.CornerSpread == 0 {
		p.CornerSpread = 15
	}
	if p.Octaves == 0 {
		p.Octaves = 4
	}
}

// Build generates a terrain: corner-seeded diamond-square, noise octaves at
// halving amplitude and doubling frequency, then optional Voronoi and fault
// passes. The same params and seed always produce the same grid.
func Build(p Params) *heightfield.Heightfield[float32] {
	defer profiling.Track("terrain.Build")()
	p.applyDefaults()

	rng := rand.New(rand.NewPCG(uint64(p.Seed), 0))
	side := 1<<p.Exponent + 1
	m := heightfield.NewFlat(side, side, p.Size, p.Size)

	// Seed the corners before fractal displacement.
	corners := heightfield.Normal[float32](0, p.CornerSpread)
	for _, c := range [][2]int{{0, 0}, {0, side - 1}, {side - 1, 0}, {side - 1, side - 1}} {
		m.Set(c[0], c[1], corners(rng))
	}

	if err := heightfield.DiamondSquare(m, 0, rng, heightfield.Uniform(-p.Roughness, p.Roughness)); err != nil {
		// side is 2^n+1 by construction
		panic(err)
	}

	addOctaves(m, p, rng)

	if p.VoronoiSeeds > 0 {
		v := heightfield.RandomVoronoi(m, p.VoronoiSeeds, rng)
		weights := []float32{-0.2, 0.1}
		v.ApplyTo(m, weights, heightfield.EuclideanDistance)
	}

	for i := 0; i < p.Faults; i++ {
		width := p.Size / 8
		height := p.Size / 50
		heightfield.FaultDisplacement(m, rng, 0, width, heightfield.CliffProfile(height, width))
	}

	return m
}

// addOctaves sums coherent-noise octaves into the grid, amplitude halving
// and frequency doubling each octave.
func addOctaves(m *heightfield.Heightfield[float32], p Params, rng *rand.Rand) {
	ampl := p.Size / 12
	scale := 2 / p.Size
	for i := 0; i < p.Octaves; i++ {
		var s heightfield.Surface[float32]
		if p.UseSimplex {
			s = surface.NewOpenSimplex[float32](scale, p.Seed+int64(i))
		} else {
			noise, err := surface.NewPerlin(scale, 1024, surface.UnitGradients[float32](rng))
			if err != nil {
				panic(err)
			}
			s = noise
		}
		m.AddSurface(s, ampl)
		ampl /= 2
		scale *= 2
	}

	// A final fine-detail octave from go-perlin's fBm generator.
	detail := perlin.NewPerlin(2, 2, 3, p.Seed)
	m.AddSurface(perlinSurface{p: detail, scale: float64(scale)}, ampl)
}

// perlinSurface adapts go-perlin to the Surface interface.
type perlinSurface struct {
	p     *perlin.Perlin
	scale float64
}

func (s perlinSurface) Get(x, y float32) float32 {
	return float32(s.p.Noise2D(float64(x)*s.scale, float64(y)*s.scale))
}
