// Package heightmap loads grayscale elevation textures and samples them
// bilinearly in surface-coordinate space.
package heightmap

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// Field is a normalized elevation buffer. Values are in [0,1]; sampling
// wraps horizontally and clamps vertically, matching the map's surface
// coordinate conventions. Read-only after load.
type Field struct {
	w, h   int
	values []float64
}

// Load reads an elevation texture from disk. Any decodable image works;
// luminance becomes elevation.
func Load(path string) (*Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open heightmap: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode heightmap %s: %w", path, err)
	}

	b := img.Bounds()
	field := &Field{
		w:      b.Dx(),
		h:      b.Dy(),
		values: make([]float64, b.Dx()*b.Dy()),
	}
	for y := 0; y < field.h; y++ {
		for x := 0; x < field.w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// Rec. 601 luma over 16-bit channels.
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
			field.values[y*field.w+x] = lum / 65535.0
		}
	}

	log.Debug().
		Str("path", path).
		Str("format", format).
		Int("width", field.w).
		Int("height", field.h).
		Msg("Heightmap loaded")

	return field, nil
}

// Sample returns the bilinearly filtered elevation at (u, v). Row 0 of the
// texture is the top of the map (v=1).
func (f *Field) Sample(u, v float64) float64 {
	if f == nil || f.w == 0 || f.h == 0 {
		return 0
	}

	fx := geo.WrapU(u) * float64(f.w)
	fy := (1 - geo.Clamp01(v)) * float64(f.h-1)

	x0 := int(fx)
	y0 := int(fy)
	if x0 >= f.w {
		x0 = f.w - 1
	}
	if y0 >= f.h-1 {
		y0 = f.h - 1
	}
	x1 := (x0 + 1) % f.w
	y1 := y0
	if y1 < f.h-1 {
		y1 = y0 + 1
	}

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := geo.Lerp(f.at(x0, y0), f.at(x1, y0), tx)
	bottom := geo.Lerp(f.at(x0, y1), f.at(x1, y1), tx)
	return geo.Lerp(top, bottom, ty)
}

func (f *Field) at(x, y int) float64 {
	return f.values[y*f.w+x]
}
