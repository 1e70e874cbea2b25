package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"

	xdraw "golang.org/x/image/draw"

	"terragrid/heightfield"
	"terragrid/internal/config"
	"terragrid/internal/terrain"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	seed := flag.Int64("seed", config.GetSeed(), "generation seed")
	exponent := flag.Int("n", config.GetExponent(), "grid side is 2^n+1 vertices")
	octaves := flag.Int("octaves", 4, "noise octaves summed on top of the fractal pass")
	simplex := flag.Bool("simplex", false, "use open-simplex octaves instead of Perlin")
	voronoi := flag.Int("voronoi", 0, "number of Voronoi seeds (0 disables the pass)")
	faults := flag.Int("faults", 0, "number of fault-line passes")
	out := flag.String("out", "terrain.png", "output PNG path")
	outSize := flag.Int("size", 512, "output image side in pixels")
	flag.Parse()

	config.SetSeed(*seed)
	config.SetExponent(*exponent)

	m := terrain.Build(terrain.Params{
		Seed:         config.GetSeed(),
		Exponent:     config.GetExponent(),
		Octaves:      *octaves,
		UseSimplex:   *simplex,
		VoronoiSeeds: *voronoi,
		Faults:       *faults,
	})

	nx, _ := m.Dim()
	minH, maxH := m.Range()
	log.Info("terrain generated",
		"seed", config.GetSeed(),
		"dim", nx,
		"min", minH,
		"max", maxH,
	)

	img := shade(m)
	scaled := image.NewNRGBA(image.Rect(0, 0, *outSize, *outSize))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	f, err := os.Create(*out)
	if err != nil {
		log.Error("create output file", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, scaled); err != nil {
		log.Error("encode png", "error", err)
		os.Exit(1)
	}
	log.Info("preview written", "path", *out, "pixels", *outSize)
}

// shade renders one pixel per grid vertex with a hypsometric tint ramp.
func shade(m *heightfield.Heightfield[float32]) *image.NRGBA {
	nx, ny := m.Dim()
	minH, maxH := m.Range()
	span := maxH - minH
	if span <= 0 {
		span = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, nx, ny))
	for cy := 0; cy < ny; cy++ {
		for cx := 0; cx < nx; cx++ {
			t := (m.Get(cx, cy) - minH) / span
			img.SetNRGBA(cx, ny-1-cy, ramp(t))
		}
	}
	return img
}

// ramp maps a normalised height to a lowland-green / upland-brown / peak-white
// gradient.
func ramp(t float32) color.NRGBA {
	lerp := func(a, b uint8, f float32) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*f)
	}
	low := color.NRGBA{64, 115, 51, 255}
	mid := color.NRGBA{140, 115, 77, 255}
	high := color.NRGBA{230, 230, 242, 255}
	if t < 0.5 {
		f := t * 2
		return color.NRGBA{lerp(low.R, mid.R, f), lerp(low.G, mid.G, f), lerp(low.B, mid.B, f), 255}
	}
	f := t*2 - 1
	return color.NRGBA{lerp(mid.R, high.R, f), lerp(mid.G, high.G, f), lerp(mid.B, high.B, f), 255}
}
