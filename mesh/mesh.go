// Package mesh converts heightfields and unbounded surfaces into triangle
// lists suitable for uploading to the GPU.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"terragrid/heightfield"
	"terragrid/internal/profiling"
	"terragrid/surface"
)

// VertexStride is the number of float32 per interleaved vertex
// (pos.xyz + normal.xyz).
const VertexStride = 6

// TriMesh is an indexed triangle mesh in the grid's local frame (heights on
// Z). Positions, normals and tex-coords are parallel slices.
type TriMesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []uint32
}

// FromHeightfield tessellates the grid: one vertex per grid vertex, two
// counter-clockwise triangles per cell split along the cell diagonal, the
// same split RayIntersect tests.
func FromHeightfield(m *heightfield.Heightfield[float32]) *TriMesh {
	defer profiling.Track("mesh.FromHeightfield")()

	nx, ny := m.Dim()
	t := &TriMesh{
		Positions: make([]mgl32.Vec3, 0, nx*ny),
		TexCoords: make([]mgl32.Vec2, 0, nx*ny),
		Indices:   make([]uint32, 0, (nx-1)*(ny-1)*6),
	}

	for cy := 0; cy < ny; cy++ {
		for cx := 0; cx < nx; cx++ {
			x, y := m.CoordOf(cx, cy)
			t.Positions = append(t.Positions, mgl32.Vec3{x, y, m.Get(cx, cy)})
			t.TexCoords = append(t.TexCoords, mgl32.Vec2{
				1 - float32(cx)/float32(nx-1),
				1 - float32(cy)/float32(ny-1),
			})
		}
	}

	for cy := 0; cy < ny-1; cy++ {
		for cx := 0; cx < nx-1; cx++ {
			i00 := uint32(cy*nx + cx)
			i10 := i00 + 1
			i01 := i00 + uint32(nx)
			i11 := i01 + 1
			t.Indices = append(t.Indices, i00, i10, i11, i00, i11, i01)
		}
	}

	t.RecomputeNormals()
	return t
}

// Sample tessellates any surface over the rectangle from start to
// start+size with nx*ny sample points.
func Sample(s surface.Surface[float32], start, size mgl32.Vec2, nx, ny int) *TriMesh {
	defer profiling.Track("mesh.Sample")()

	m := heightfield.FromSurface(nx, ny, size.X(), size.Y(), offsetSurface{s, start})
	t := FromHeightfield(m)
	for i, p := range t.Positions {
		t.Positions[i] = mgl32.Vec3{p.X() + start.X(), p.Y() + start.Y(), p.Z()}
	}
	return t
}

// offsetSurface shifts a surface so sampling starts at an arbitrary origin.
type offsetSurface struct {
	s     surface.Surface[float32]
	start mgl32.Vec2
}

func (o offsetSurface) Get(x, y float32) float32 {
	return o.s.Get(x+o.start.X(), y+o.start.Y())
}

// RecomputeNormals rebuilds per-vertex normals by averaging the geometric
// normals of incident triangles.
func (t *TriMesh) RecomputeNormals() {
	t.Normals = make([]mgl32.Vec3, len(t.Positions))
	for i := 0; i+2 < len(t.Indices); i += 3 {
		a, b, c := t.Indices[i], t.Indices[i+1], t.Indices[i+2]
		e1 := t.Positions[b].Sub(t.Positions[a])
		e2 := t.Positions[c].Sub(t.Positions[a])
		n := e1.Cross(e2)
		t.Normals[a] = t.Normals[a].Add(n)
		t.Normals[b] = t.Normals[b].Add(n)
		t.Normals[c] = t.Normals[c].Add(n)
	}
	for i, n := range t.Normals {
		if n.Len() > 0 {
			t.Normals[i] = n.Normalize()
		}
	}
}

// Interleave flattens the mesh to a non-indexed pos+normal float32 stream,
// VertexStride floats per vertex, three vertices per triangle.
func (t *TriMesh) Interleave() []float32 {
	out := make([]float32, 0, len(t.Indices)*VertexStride)
	for _, idx := range t.Indices {
		p := t.Positions[idx]
		n := t.Normals[idx]
		out = append(out, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z())
	}
	return out
}
