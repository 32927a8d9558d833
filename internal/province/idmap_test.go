package province

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeID(t *testing.T) {
	data := []struct {
		r, g, b float64
		out     int32
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 255},
		{0, 1, 0, 255 << 8},
		{0, 0, 1, 255 << 16},
		{1, 1, 1, 0xffffff},
		{44.0 / 255, 1.0 / 255, 0, 300},
		// Out-of-range channels clamp instead of overflowing.
		{2, -1, 0, 255},
	}
	for _, tc := range data {
		require.Equal(t, tc.out, DecodeID(tc.r, tc.g, tc.b), "DecodeID(%v, %v, %v)", tc.r, tc.g, tc.b)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, id := range []int32{0, 1, 255, 256, 300, 65535, 65536, 0xffffff} {
		r, g, b := EncodeID(id)
		got := DecodeID(float64(r)/255, float64(g)/255, float64(b)/255)
		require.Equal(t, id, got)
	}
}

// writeIDMap saves an ID texture where each pixel's id comes from pick.
// Row 0 is the top of the map.
func writeIDMap(t *testing.T, w, h int, pick func(x, y int) int32) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := EncodeID(pick(x, y))
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "provinces.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadIDMapSample(t *testing.T) {
	// 4x2 map: west half ocean (0), east half ids by quadrant.
	path := writeIDMap(t, 4, 2, func(x, y int) int32 {
		if x < 2 {
			return 0
		}
		if y == 0 {
			return 7 // north-east
		}
		return 300 // south-east
	})

	m, err := LoadIDMap(path, 0)
	require.NoError(t, err)
	w, h := m.Size()
	require.Equal(t, 4, w)
	require.Equal(t, 2, h)

	require.Equal(t, int32(0), m.Sample(0.1, 0.75))
	require.Equal(t, int32(7), m.Sample(0.8, 0.75))
	require.Equal(t, int32(300), m.Sample(0.8, 0.25))

	// u wraps, v clamps.
	require.Equal(t, int32(7), m.Sample(1.8, 0.75))
	require.Equal(t, int32(7), m.Sample(-0.2, 0.75))
	require.Equal(t, int32(300), m.Sample(0.8, -3))
	require.Equal(t, int32(7), m.Sample(0.8, 3))
}

func TestLoadIDMapDownsamples(t *testing.T) {
	// 8x8 checkerboard of two ids, downsampled to 4x4. Nearest filtering
	// must keep every sample one of the two source ids.
	path := writeIDMap(t, 8, 8, func(x, y int) int32 {
		if (x/2+y/2)%2 == 0 {
			return 11
		}
		return 22
	})

	m, err := LoadIDMap(path, 4)
	require.NoError(t, err)
	w, h := m.Size()
	require.Equal(t, 4, w)
	require.Equal(t, 4, h)
	for _, u := range []float64{0.1, 0.4, 0.6, 0.9} {
		for _, v := range []float64{0.1, 0.4, 0.6, 0.9} {
			id := m.Sample(u, v)
			require.Contains(t, []int32{11, 22}, id, "u=%v v=%v", u, v)
		}
	}
}

func TestIDMapNilSafe(t *testing.T) {
	var m *IDMap
	require.Equal(t, None, m.Sample(0.5, 0.5))
}

func TestLoadIDMapMissingFile(t *testing.T) {
	_, err := LoadIDMap(filepath.Join(t.TempDir(), "nope.png"), 0)
	require.Error(t, err)
}
