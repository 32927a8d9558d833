// Package meshgen builds the regular surface grid the map renders with and
// projects it through a projection family, mirroring what the original
// editor-side plane generator produced for the GPU.
package meshgen

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/projection"
)

// Grid is a cols x rows quad grid over the full surface coordinate domain.
// Vertices run row-major, (cols+1)*(rows+1) of them; indices describe
// counter-clockwise triangles.
type Grid struct {
	Cols, Rows int
	UVs        []mgl64.Vec2
	Indices    []uint32
}

// Build lays out the grid's surface coordinates and triangle indices.
func Build(cols, rows int) *Grid {
	g := &Grid{
		Cols: cols,
		Rows: rows,
		UVs:  make([]mgl64.Vec2, 0, (cols+1)*(rows+1)),
	}

	for j := 0; j <= rows; j++ {
		v := float64(j) / float64(rows)
		for i := 0; i <= cols; i++ {
			u := float64(i) / float64(cols)
			g.UVs = append(g.UVs, mgl64.Vec2{u, v})
		}
	}

	stride := uint32(cols + 1)
	g.Indices = make([]uint32, 0, cols*rows*6)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a := uint32(j)*stride + uint32(i)
			b := a + 1
			c := a + stride
			d := c + 1
			g.Indices = append(g.Indices, a, c, b, b, c, d)
		}
	}
	return g
}

// Project evaluates the forward model at every grid vertex for the given
// morph factor, applying the optional elevation displacement. The returned
// slices parallel g.UVs.
func (g *Grid) Project(family projection.Family, morph float64, disp projection.Displacement) (positions, normals []mgl64.Vec3) {
	positions = make([]mgl64.Vec3, len(g.UVs))
	normals = make([]mgl64.Vec3, len(g.UVs))
	for i, uv := range g.UVs {
		pt := family.Forward(uv.X(), uv.Y(), morph)
		positions[i] = disp.Apply(uv.X(), uv.Y(), pt)
		normals[i] = pt.Normal
	}
	return positions, normals
}

// WriteOBJ emits the projected grid as a Wavefront OBJ with positions,
// texture coordinates, and normals.
func (g *Grid) WriteOBJ(w io.Writer, positions, normals []mgl64.Vec3) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# generated surface grid %dx%d\n", g.Cols, g.Rows)
	for _, p := range positions {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p.X(), p.Y(), p.Z())
	}
	for _, uv := range g.UVs {
		fmt.Fprintf(bw, "vt %.6f %.6f\n", uv.X(), uv.Y())
	}
	for _, n := range normals {
		fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X(), n.Y(), n.Z())
	}
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i]+1, g.Indices[i+1]+1, g.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}
