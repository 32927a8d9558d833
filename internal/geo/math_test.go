package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapU(t *testing.T) {
	data := []struct {
		in, out float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.25, 0.25},
		{-0.25, 0.75},
		{-1.75, 0.25},
		{2.5, 0.5},
	}
	for _, tc := range data {
		require.InDelta(t, tc.out, WrapU(tc.in), 1e-12, "WrapU(%v)", tc.in)
	}
}

func TestWrapAngle(t *testing.T) {
	data := []struct {
		in, out float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{2 * math.Pi, 0},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tc := range data {
		require.InDelta(t, tc.out, WrapAngle(tc.in), 1e-12, "WrapAngle(%v)", tc.in)
	}
}

func TestWrapDeg(t *testing.T) {
	require.InDelta(t, 350.0, WrapDeg(-10), 1e-12)
	require.InDelta(t, 10.0, WrapDeg(370), 1e-12)
	require.InDelta(t, 0.0, WrapDeg(720), 1e-12)
}

func TestUDist(t *testing.T) {
	data := []struct {
		a, b, out float64
	}{
		{0.1, 0.2, 0.1},
		{0.95, 0.05, 0.1},
		{0.0, 0.5, 0.5},
		{0.999, 0.001, 0.002},
		{1.2, 0.1, 0.1},
	}
	for _, tc := range data {
		require.InDelta(t, tc.out, UDist(tc.a, tc.b), 1e-12, "UDist(%v, %v)", tc.a, tc.b)
		require.InDelta(t, tc.out, UDist(tc.b, tc.a), 1e-12, "UDist(%v, %v)", tc.b, tc.a)
	}
}

func TestSurfaceAngleConversions(t *testing.T) {
	require.InDelta(t, 0.0, LonOf(0.5), 1e-12)
	require.InDelta(t, math.Pi/2, LonOf(0.75), 1e-12)
	require.InDelta(t, -math.Pi, LonOf(0), 1e-12)
	require.InDelta(t, 0.0, LatOf(0.5), 1e-12)
	require.InDelta(t, math.Pi/2, LatOf(1), 1e-12)

	for _, u := range []float64{0.01, 0.25, 0.5, 0.75, 0.99} {
		require.InDelta(t, u, UOf(LonOf(u)), 1e-12)
	}
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		require.InDelta(t, v, VOf(LatOf(v)), 1e-12)
	}
}

func TestClamp(t *testing.T) {
	require.Equal(t, 1.0, Clamp(2, 0, 1))
	require.Equal(t, 0.0, Clamp(-1, 0, 1))
	require.Equal(t, 0.5, Clamp01(0.5))
	require.Equal(t, 0.0, Lerp(0, 10, 0))
	require.Equal(t, 10.0, Lerp(0, 10, 1))
	require.Equal(t, 2.5, Lerp(0, 10, 0.25))
}
