package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
	"github.com/itswill307/TheNewSuzerainProject/internal/projection"
)

const latSearchSteps = 12

// Controller advances the view state from per-frame input and derives the
// camera pose from the projected surface. It is single-threaded by design:
// one Update per rendered frame, then Pose for placement.
type Controller struct {
	family projection.Family
	radius float64
	set    Settings

	viewportW, viewportH float64

	state   State
	minZoom float64
	maxZoom float64

	// Latitude-limit memo; the binary search only reruns when zoom or
	// focus longitude has moved meaningfully since it last ran. The
	// longitude matters because the pole test evaluates the pose at the
	// current focus, and the bound shifts with longitude on families
	// that are not rotationally symmetric mid-morph.
	latLimit   float64
	limitZoom  float64
	limitLon   float64
	limitValid bool
}

// NewController sizes the zoom range from the field of view and the map's
// flat dimensions (width 2*pi*R, height pi*R) and starts fully zoomed out.
func NewController(family projection.Family, radius float64, set Settings, viewportW, viewportH int) *Controller {
	c := &Controller{
		family:    family,
		radius:    radius,
		set:       set,
		viewportW: float64(viewportW),
		viewportH: float64(viewportH),
	}
	c.FitBounds(2*math.Pi*radius, math.Pi*radius)
	c.state.Zoom = c.maxZoom
	c.state.Morph = c.morphFor(c.state.Zoom)

	log.Debug().
		Float64("min_zoom", c.minZoom).
		Float64("max_zoom", c.maxZoom).
		Str("projection", family.Name()).
		Msg("View controller initialized")

	return c
}

// FitBounds recomputes the zoom range so a surface of the given flat width
// and height fits the viewport: the far limit is the smaller of the
// width-fit and height-fit distances, the near limit a fixed multiple of
// the radius. Callers with real mesh bounds pass those instead of the
// analytic map dimensions.
func (c *Controller) FitBounds(width, height float64) {
	tanHalf := math.Tan(deg2rad(c.set.FOV) / 2)
	aspect := c.viewportW / c.viewportH

	heightFit := height / 2 / tanHalf
	widthFit := width / 2 / (tanHalf * aspect)
	c.maxZoom = math.Min(heightFit, widthFit)
	c.minZoom = c.radius * c.set.ZoomInBuffer
	if c.maxZoom <= c.minZoom {
		c.maxZoom = c.minZoom * 2
	}
	c.state.Zoom = geo.Clamp(c.state.Zoom, c.minZoom, c.maxZoom)
	c.limitValid = false
}

// State returns a copy of the current view state.
func (c *Controller) State() State {
	return c.state
}

// ZoomRange reports the current zoom clamp bounds.
func (c *Controller) ZoomRange() (min, max float64) {
	return c.minZoom, c.maxZoom
}

func (c *Controller) morphFor(zoom float64) float64 {
	normalized := geo.Clamp01((c.maxZoom - zoom) / (c.maxZoom - c.minZoom))
	return math.Pow(normalized, c.set.MorphExponent)
}

// Update advances the state by one frame of input.
func (c *Controller) Update(in Input) {
	s := &c.state

	s.Zoom = geo.Clamp(s.Zoom-in.Scroll*c.set.ZoomSpeed, c.minZoom, c.maxZoom)
	s.Morph = c.morphFor(s.Zoom)

	// Pan. Dragging moves the map under the cursor, so the focus moves
	// against the drag; fast drags earn a clamped velocity boost.
	degPerPixel := c.degreesPerPixel()
	boost := 1.0
	if speed := in.Drag.Len(); speed > c.set.DragBoostRef && c.set.DragBoostRef > 0 {
		boost = math.Min(speed/c.set.DragBoostRef, c.set.DragBoostMax)
	}

	dLon := in.Move.X()*c.set.KeyPanSpeed*in.DT - in.Drag.X()*degPerPixel*boost
	dLat := in.Move.Y()*c.set.KeyPanSpeed*in.DT + in.Drag.Y()*degPerPixel*boost
	s.FocusLon = geo.WrapDeg(s.FocusLon + dLon)

	limit := c.LatitudeLimit()
	s.CamLat = geo.Clamp(s.CamLat+dLat, -limit, limit)

	c.updateOrbit(in)
}

func (c *Controller) updateOrbit(in Input) {
	s := &c.state
	if in.RotateHeld {
		s.OrbitYaw += in.Rotate.X() * c.set.OrbitSens
		s.OrbitPitch += in.Rotate.Y() * c.set.OrbitSens
		if c.set.YawLimit > 0 {
			s.OrbitYaw = geo.Clamp(s.OrbitYaw, -c.set.YawLimit, c.set.YawLimit)
		}
		s.OrbitPitch = geo.Clamp(s.OrbitPitch, -c.set.PitchLimit, c.set.PitchLimit)
		return
	}
	// Released: decay both angles toward rest at a fixed angular rate.
	step := c.set.OrbitDecay * in.DT
	s.OrbitYaw = decayToZero(s.OrbitYaw, step)
	s.OrbitPitch = decayToZero(s.OrbitPitch, step)
}

func decayToZero(angle, step float64) float64 {
	if math.Abs(angle) <= step {
		return 0
	}
	if angle > 0 {
		return angle - step
	}
	return angle + step
}

// degreesPerPixel converts a one-pixel screen motion at the pivot distance
// into degrees of longitude, from the current zoom and viewport.
func (c *Controller) degreesPerPixel() float64 {
	visibleWidth := 2 * c.state.Zoom * math.Tan(deg2rad(c.set.FOV)/2) * (c.viewportW / c.viewportH)
	worldPerPixel := visibleWidth / c.viewportW
	return worldPerPixel * 360 / (2 * math.Pi * c.radius)
}

// LatitudeLimit returns the maximum camera latitude (degrees) at which the
// north pole still sits at or beyond the top edge of the view frustum. The
// result is memoized against zoom and focus longitude; a 12-step binary
// search reruns only after either has moved.
func (c *Controller) LatitudeLimit() float64 {
	const (
		zoomMemoFrac = 1e-3
		lonMemoDeg   = 0.5
	)
	if c.limitValid &&
		math.Abs(c.state.Zoom-c.limitZoom) <= zoomMemoFrac*(c.maxZoom-c.minZoom) &&
		math.Abs(lonIn180(c.state.FocusLon-c.limitLon)) <= lonMemoDeg {
		return c.latLimit
	}

	halfFOV := deg2rad(c.set.FOV) / 2
	if c.poleElevation(0) < halfFOV {
		// Fully zoomed out: the pole is already inside the frustum from
		// the equator, so no vertical panning at all.
		c.latLimit = 0
	} else {
		lo, hi := 0.0, 90.0
		for i := 0; i < latSearchSteps; i++ {
			mid := (lo + hi) / 2
			if c.poleElevation(mid) >= halfFOV {
				lo = mid
			} else {
				hi = mid
			}
		}
		c.latLimit = lo
	}

	c.limitZoom = c.state.Zoom
	c.limitLon = c.state.FocusLon
	c.limitValid = true
	return c.latLimit
}

// poleElevation is the vertical angle from the camera's forward axis to
// the north pole for a candidate camera latitude, orbit at rest.
func (c *Controller) poleElevation(camLatDeg float64) float64 {
	pose := c.poseAt(camLatDeg, 0, 0)
	pole := c.family.Forward(geo.UOf(deg2rad(lonIn180(c.state.FocusLon))), 1, c.state.Morph)

	fwd := pose.Target.Sub(pose.Position)
	if fwd.Len() < 1e-12 {
		return 0
	}
	fwd = fwd.Normalize()
	right := fwd.Cross(pose.Up)
	if right.Len() < 1e-9 {
		right = mgl64.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	camUp := right.Cross(fwd)

	d := pole.Position.Sub(pose.Position)
	if d.Len() < 1e-12 {
		return 0
	}
	d = d.Normalize()
	return math.Atan2(d.Dot(camUp), d.Dot(fwd))
}

// Pose resolves the camera placement for the current state: pivot and
// outward normal from the forward model at the camera latitude, the zoom
// offset along the normal rotated by orbit yaw then pitch, and a look-at
// with fixed world up.
func (c *Controller) Pose() Pose {
	return c.poseAt(c.state.CamLat, c.state.OrbitYaw, c.state.OrbitPitch)
}

func (c *Controller) poseAt(camLatDeg, yawDeg, pitchDeg float64) Pose {
	u := geo.UOf(deg2rad(lonIn180(c.state.FocusLon)))
	v := geo.VOf(deg2rad(camLatDeg))
	pp := c.family.Forward(u, v, c.state.Morph)

	up := mgl64.Vec3{0, 1, 0}
	offset := pp.Normal.Mul(c.state.Zoom)

	if yawDeg != 0 {
		offset = mgl64.QuatRotate(deg2rad(yawDeg), up).Rotate(offset)
	}
	if pitchDeg != 0 {
		right := up.Cross(offset)
		if right.Len() < 1e-9 {
			right = mgl64.Vec3{1, 0, 0}
		}
		offset = mgl64.QuatRotate(deg2rad(pitchDeg), right.Normalize()).Rotate(offset)
	}

	return Pose{
		Position: pp.Position.Add(offset),
		Target:   pp.Position,
		Up:       up,
	}
}

func lonIn180(lonDeg float64) float64 {
	lon := geo.WrapDeg(lonDeg)
	if lon > 180 {
		lon -= 360
	}
	return lon
}
