// Package province handles the province identity layer of the map: the
// 24-bit ID lookup buffer, cursor picking against it, and the hover and
// selection highlight rules.
package province

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// None is the sentinel for "no province": no hover under the cursor, or
// nothing selected yet.
const None int32 = -1

// DecodeID converts a 3-channel color sample in [0,1] to a 24-bit province
// id: round(r*255) | round(g*255)<<8 | round(b*255)<<16. Channels clamp
// before scaling, so out-of-range samples cannot overflow a channel byte.
func DecodeID(r, g, b float64) int32 {
	ri := int32(math.Round(geo.Clamp01(r) * 255))
	gi := int32(math.Round(geo.Clamp01(g) * 255))
	bi := int32(math.Round(geo.Clamp01(b) * 255))
	return ri | gi<<8 | bi<<16
}

// EncodeID is the inverse of DecodeID, returning the three channel bytes a
// province id occupies in the lookup texture.
func EncodeID(id int32) (r, g, b uint8) {
	return uint8(id & 0xff), uint8(id >> 8 & 0xff), uint8(id >> 16 & 0xff)
}

// IDMap is the decoded province lookup buffer. It is read-only after load
// and safe to share across reads.
type IDMap struct {
	w, h int
	ids  []int32
}

// LoadIDMap reads a province ID texture. Buffers larger than maxDim on
// either side are downsampled with nearest-neighbor filtering; anything
// interpolating would invent ids that exist in no province.
func LoadIDMap(path string, maxDim int) (*IDMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open province map: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode province map %s: %w", path, err)
	}

	b := img.Bounds()
	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		scale := float64(maxDim) / float64(max(b.Dx(), b.Dy()))
		dst := image.NewRGBA(image.Rect(0, 0,
			int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

		log.Debug().
			Str("path", path).
			Int("from_width", b.Dx()).
			Int("to_width", dst.Bounds().Dx()).
			Msg("Province map downsampled")

		img = dst
		b = dst.Bounds()
	}

	m := &IDMap{w: b.Dx(), h: b.Dy(), ids: make([]int32, b.Dx()*b.Dy())}
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.ids[y*m.w+x] = int32(r>>8) | int32(g>>8)<<8 | int32(bl>>8)<<16
		}
	}

	log.Info().
		Str("path", path).
		Str("format", format).
		Int("width", m.w).
		Int("height", m.h).
		Msg("Province ID map loaded")

	return m, nil
}

// Sample returns the province id at a surface coordinate, nearest-pixel.
// Row 0 of the texture is the top of the map (v=1).
func (m *IDMap) Sample(u, v float64) int32 {
	if m == nil || m.w == 0 || m.h == 0 {
		return None
	}

	x := int(geo.WrapU(u) * float64(m.w))
	if x >= m.w {
		x = m.w - 1
	}
	y := int((1 - geo.Clamp01(v)) * float64(m.h))
	if y >= m.h {
		y = m.h - 1
	}
	return m.ids[y*m.w+x]
}

// Size reports the buffer dimensions in pixels.
func (m *IDMap) Size() (w, h int) {
	return m.w, m.h
}
