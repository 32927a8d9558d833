// Package view owns the camera-side frame state: zoom and the morph factor
// derived from it, panning with dynamic latitude bounds, the orbit offset,
// and final camera placement on the projected surface.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Input is one frame's worth of polled control state. Nothing here is
// event-driven; the frame loop samples devices and hands the snapshot over.
type Input struct {
	Scroll     float64    // wheel delta, positive zooms in
	Move       mgl64.Vec2 // keyboard pan vector, each axis in [-1,1]
	Drag       mgl64.Vec2 // primary-drag delta in pixels
	Rotate     mgl64.Vec2 // secondary-drag delta in pixels
	RotateHeld bool       // secondary button held this frame
	DT         float64    // frame time in seconds
}

// Settings are the tunables of the view controller. Angles are degrees.
type Settings struct {
	FOV           float64 `yaml:"fov"`            // vertical field of view
	ZoomSpeed     float64 `yaml:"zoom_speed"`     // world units per wheel step
	ZoomInBuffer  float64 `yaml:"zoom_in_buffer"` // min zoom as a multiple of radius
	MorphExponent float64 `yaml:"morph_exponent"` // curve applied to normalized zoom
	KeyPanSpeed   float64 `yaml:"key_pan_speed"`  // degrees per second
	DragBoostMax  float64 `yaml:"drag_boost_max"` // velocity boost multiplier cap
	DragBoostRef  float64 `yaml:"drag_boost_ref"` // pixels per frame for 1x boost
	OrbitSens     float64 `yaml:"orbit_sens"`     // degrees per pixel
	OrbitDecay    float64 `yaml:"orbit_decay"`    // degrees per second back to rest
	PitchLimit    float64 `yaml:"pitch_limit"`    // +- clamp for orbit pitch
	YawLimit      float64 `yaml:"yaw_limit"`      // +- clamp for orbit yaw, 0 = free
}

// DefaultSettings returns the tuning the prototype ships with.
func DefaultSettings() Settings {
	return Settings{
		FOV:           60,
		ZoomSpeed:     12,
		ZoomInBuffer:  1.2,
		MorphExponent: 2,
		KeyPanSpeed:   45,
		DragBoostMax:  3,
		DragBoostRef:  24,
		OrbitSens:     0.25,
		OrbitDecay:    90,
		PitchLimit:    60,
		YawLimit:      45,
	}
}

// State is the mutable view state, owned by the frame loop. Longitude
// accumulates unbounded and wraps mod 360; latitude clamps to the bounds
// the controller computes per zoom level.
type State struct {
	Zoom       float64
	Morph      float64
	FocusLon   float64 // degrees, [0, 360)
	CamLat     float64 // degrees
	OrbitYaw   float64 // degrees
	OrbitPitch float64 // degrees
}

// Pose is a resolved camera placement: position, look-at target, and the
// fixed world-up reference (no roll).
type Pose struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
