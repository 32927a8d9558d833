// Package worldgen bakes the lookup textures the engine consumes: a
// province ID buffer partitioning land into 24-bit-coded regions, and the
// matching heightmap. It exists for prototyping and tests; shipped maps
// come from authored art.
package worldgen

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
	"github.com/itswill307/TheNewSuzerainProject/internal/province"
)

// Params controls a bake.
type Params struct {
	Width, Height int
	Provinces     int     // number of land provinces
	SeaLevel      float64 // height below which a pixel is ocean
	OceanID       int32   // id encoded for ocean pixels, normally 0
	Seed          int64
}

// Bake produces a province ID image and a grayscale heightmap of the same
// dimensions. Land pixels take the id of the nearest province seed, with
// distances wrap-aware in u so provinces cross the date line naturally.
func Bake(p Params) (ids *image.RGBA, heights *image.Gray) {
	rng := rand.New(rand.NewSource(p.Seed))

	type seedPt struct {
		u, v float64
		id   int32
	}
	seeds := make([]seedPt, p.Provinces)
	for i := range seeds {
		seeds[i] = seedPt{
			u:  rng.Float64(),
			v:  0.08 + 0.84*rng.Float64(),
			id: int32(i) + 1,
		}
	}

	ids = image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	heights = image.NewGray(image.Rect(0, 0, p.Width, p.Height))

	phase := rng.Float64() * 100
	land := 0
	for y := 0; y < p.Height; y++ {
		// Row 0 is the top of the map (v=1).
		v := 1 - float64(y)/float64(p.Height-1)
		for x := 0; x < p.Width; x++ {
			u := (float64(x) + 0.5) / float64(p.Width)

			h := geo.Clamp01(0.5 + 0.5*noise(u, v, phase))
			heights.SetGray(x, y, color.Gray{Y: uint8(math.Round(h * 255))})

			id := p.OceanID
			if h >= p.SeaLevel {
				best := math.MaxFloat64
				for _, s := range seeds {
					du := geo.UDist(u, s.u)
					dv := v - s.v
					// u spans twice the distance of v on the surface.
					d := 4*du*du + dv*dv
					if d < best {
						best = d
						id = s.id
					}
				}
				land++
			}

			r, g, b := province.EncodeID(id)
			ids.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	log.Info().
		Int("width", p.Width).
		Int("height", p.Height).
		Int("provinces", p.Provinces).
		Float64("land_fraction", float64(land)/float64(p.Width*p.Height)).
		Msg("World textures baked")

	return ids, heights
}

// noise layers a few incommensurate sine products, enough relief to carve
// oceans and continents for a prototype map. Output is roughly [-1, 1] and
// periodic in u so the date line seam is invisible.
func noise(u, v, phase float64) float64 {
	lon := u * 2 * math.Pi
	n1 := math.Sin(3*lon+phase) * math.Cos(v*7.3+phase)
	n2 := math.Sin(7*lon+2.1*phase) * math.Sin(v*3.7+0.5)
	n3 := math.Cos(2*lon+0.7) * math.Sin(v*11.1+phase*0.3)
	return (n1 + 0.5*n2 + 0.25*n3) / 1.75
}
