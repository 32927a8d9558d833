package main

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/itswill307/TheNewSuzerainProject/internal/config"
	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
	"github.com/itswill307/TheNewSuzerainProject/internal/meshgen"
	"github.com/itswill307/TheNewSuzerainProject/internal/projection"
	"github.com/itswill307/TheNewSuzerainProject/internal/province"
	"github.com/itswill307/TheNewSuzerainProject/internal/session"
	"github.com/itswill307/TheNewSuzerainProject/internal/view"
)

// viewer runs the interactive frame loop: poll input, advance view and
// pick state, re-evaluate the forward model for the surface mesh, draw.
type viewer struct {
	cfg    *config.Config
	family projection.Family
	picker *province.Picker
	idMap  *province.IDMap
	disp   projection.Displacement
	sess   *session.Client
	ctrl   *view.Controller

	grid      *meshgen.Grid
	positions []mgl64.Vec3
	cellIDs   []int32
	lastMorph float64

	width, height int
	lastSelected  int32
}

func newViewer(cfg *config.Config, family projection.Family, picker *province.Picker,
	idMap *province.IDMap, disp projection.Displacement, sess *session.Client, width, height int) *viewer {

	v := &viewer{
		cfg:          cfg,
		family:       family,
		picker:       picker,
		idMap:        idMap,
		disp:         disp,
		sess:         sess,
		grid:         meshgen.Build(cfg.World.GridCols, cfg.World.GridRows),
		width:        width,
		height:       height,
		lastMorph:    -1,
		lastSelected: province.None,
	}
	v.ctrl = view.NewController(family, cfg.World.Radius, cfg.View, width, height)
	return v
}

func (v *viewer) run() {
	rl.InitWindow(int32(v.width), int32(v.height), "The New Suzerain")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.DisableBackfaceCulling()

	v.bakeCellIDs()

	for !rl.WindowShouldClose() {
		v.ctrl.Update(pollInput())
		st := v.ctrl.State()
		camera := v.camera()

		ray := mouseRay(camera)
		v.picker.Update(ray, st.Morph, rl.IsMouseButtonPressed(rl.MouseButtonLeft))
		v.shareSelection()

		if math.Abs(st.Morph-v.lastMorph) > 1e-4 {
			v.reproject(st.Morph)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(12, 14, 22, 255))
		rl.BeginMode3D(camera)
		v.drawSurface()
		rl.EndMode3D()
		v.drawHUD(st)
		rl.EndDrawing()
	}
}

// pollInput samples the devices into one frame snapshot.
func pollInput() view.Input {
	var in view.Input
	in.DT = float64(rl.GetFrameTime())
	in.Scroll = float64(rl.GetMouseWheelMove())

	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		in.Move[0] -= 1
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		in.Move[0] += 1
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		in.Move[1] += 1
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		in.Move[1] -= 1
	}

	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		in.Drag = mgl64.Vec2{float64(delta.X), float64(delta.Y)}
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		in.RotateHeld = true
		in.Rotate = mgl64.Vec2{float64(delta.X), float64(delta.Y)}
	}
	return in
}

func (v *viewer) camera() rl.Camera3D {
	pose := v.ctrl.Pose()
	return rl.Camera3D{
		Position:   rlVec(pose.Position),
		Target:     rlVec(pose.Target),
		Up:         rlVec(pose.Up),
		Fovy:       float32(v.cfg.View.FOV),
		Projection: rl.CameraPerspective,
	}
}

func mouseRay(camera rl.Camera3D) geo.Ray {
	r := rl.GetMouseRay(rl.GetMousePosition(), camera)
	dir := mgl64.Vec3{float64(r.Direction.X), float64(r.Direction.Y), float64(r.Direction.Z)}
	if dir.Len() < 1e-12 {
		dir = mgl64.Vec3{0, 0, 1}
	}
	return geo.Ray{
		Origin: mgl64.Vec3{float64(r.Position.X), float64(r.Position.Y), float64(r.Position.Z)},
		Dir:    dir.Normalize(),
	}
}

// bakeCellIDs samples the province id once per grid cell center; cell
// coloring reuses the table every frame. The same horizontal offset the
// picker applies keeps cells and picks agreeing.
func (v *viewer) bakeCellIDs() {
	cols, rows := v.grid.Cols, v.grid.Rows
	v.cellIDs = make([]int32, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			id := province.None
			if v.idMap != nil {
				u := (float64(i) + 0.5) / float64(cols)
				vv := (float64(j) + 0.5) / float64(rows)
				id = v.idMap.Sample(geo.WrapU(u+v.cfg.World.UVOffset), vv)
			}
			v.cellIDs[j*cols+i] = id
		}
	}
}

// reproject re-evaluates the forward model at every grid vertex. This is
// the CPU twin of the per-vertex displacement the rendering surface runs.
func (v *viewer) reproject(morph float64) {
	v.positions, _ = v.grid.Project(v.family, morph, v.disp)
	v.lastMorph = morph
}

func (v *viewer) drawSurface() {
	cols, rows := v.grid.Cols, v.grid.Rows
	stride := cols + 1
	hovered := v.picker.Hovered()
	selected := v.picker.Selected()

	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a := j*stride + i
			b := a + 1
			c := a + stride
			d := c + 1

			col := v.cellColor(v.cellIDs[j*cols+i], hovered, selected)
			rl.DrawTriangle3D(rlVec(v.positions[a]), rlVec(v.positions[c]), rlVec(v.positions[b]), col)
			rl.DrawTriangle3D(rlVec(v.positions[b]), rlVec(v.positions[c]), rlVec(v.positions[d]), col)
		}
	}
}

func (v *viewer) cellColor(id, hovered, selected int32) rl.Color {
	base := baseColor(id, v.cfg.World.OceanID)
	tinted := province.Composite(base, id, hovered, tint(v.cfg.World.Hover), selected, tint(v.cfg.World.Selected))
	return rl.NewColor(
		uint8(tinted.R*255), uint8(tinted.G*255), uint8(tinted.B*255), 255)
}

// baseColor hashes a province id into a stable pastel; ocean gets a fixed
// deep blue.
func baseColor(id, oceanID int32) province.Color {
	if id == oceanID || id < 0 {
		return province.Color{R: 0.09, G: 0.17, B: 0.32, A: 1}
	}
	h := uint32(id) * 2654435761
	return province.Color{
		R: 0.35 + 0.5*float64(h&0xff)/255,
		G: 0.35 + 0.5*float64(h>>8&0xff)/255,
		B: 0.35 + 0.5*float64(h>>16&0xff)/255,
		A: 1,
	}
}

func tint(t config.Tint) province.Color {
	return province.Color{R: t.R, G: t.G, B: t.B, A: t.A}
}

func (v *viewer) drawHUD(st view.State) {
	rl.DrawFPS(10, 10)
	rl.DrawText(fmt.Sprintf("morph %.2f  zoom %.0f", st.Morph, st.Zoom), 10, 34, 18, rl.RayWhite)

	if name, ok := v.provinceName(v.picker.Hovered()); ok {
		rl.DrawText(name, 10, 56, 18, rl.Yellow)
	}
	if sel := v.picker.Selected(); sel != province.None {
		label := fmt.Sprintf("selected #%d", sel)
		if name, ok := v.provinceName(sel); ok {
			label = name
		}
		rl.DrawText(label, 10, 78, 18, rl.Orange)
	}
	if code := v.sess.Code(); code != "" {
		rl.DrawText("session "+code, 10, 100, 18, rl.SkyBlue)
	}
}

func (v *viewer) provinceName(id int32) (string, bool) {
	if id < 0 {
		return "", false
	}
	name, ok := v.cfg.World.ProvinceNames[id]
	return name, ok
}

// shareSelection pushes selection changes to the session peer, if any.
func (v *viewer) shareSelection() {
	sel := v.picker.Selected()
	if sel == v.lastSelected || v.sess.Code() == "" {
		v.lastSelected = sel
		return
	}
	v.lastSelected = sel
	if err := v.sess.Send(map[string]any{"type": "select", "id": sel}); err != nil {
		log.Debug().Err(err).Msg("Failed to share selection")
	}
}

func rlVec(p mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(p.X()), Y: float32(p.Y()), Z: float32(p.Z())}
}
