package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rollcage/internal/camera"
	"rollcage/internal/primitives"
	"rollcage/internal/sim"
	"rollcage/internal/vehicle"
)

const (
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	gridLift       = 0.01
)

var (
	groundColor  = rl.NewColor(96, 118, 92, 255)
	jumpColor    = rl.NewColor(230, 126, 34, 255)
	chassisColor = rl.NewColor(192, 57, 43, 255)
	wheelColor   = rl.NewColor(44, 44, 48, 255)
	lightDir     = [3]float32{25, 50, 25}
)

// Scene draws the latest frame handed to Render. It implements sim.Renderer; Render only
// stores the frame and Draw issues the raylib calls inside the window's drawing block.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	gridExtent  int
	prims       *primitives.Registry
	frame       sim.Frame
	hasFrame    bool
}

var _ sim.Renderer = (*Scene)(nil)

// New returns a scene with a perspective camera. gridExtent is the half size of the editor grid.
func New(gridExtent float64, gridVisible bool) *Scene {
	s := &Scene{
		GridVisible: gridVisible,
		gridExtent:  int(gridExtent),
		prims:       primitives.NewRegistry(),
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 75
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Render stores f for the next Draw and points the raylib camera at it.
func (s *Scene) Render(f sim.Frame) {
	s.frame = f
	s.hasFrame = true
	s.Camera = toCamera(f.Camera)
}

// Frame returns the last rendered frame.
func (s *Scene) Frame() sim.Frame {
	return s.frame
}

// Draw renders the 3D scene. Call after ClearBackground and before the 2D overlay.
func (s *Scene) Draw() {
	if !s.hasFrame {
		return
	}
	p := s.Camera.Position
	s.prims.SetView([3]float32{p.X, p.Y, p.Z}, lightDir)

	rl.BeginMode3D(s.Camera)
	for _, px := range s.frame.Proxies {
		kind, tint := look(px.Kind)
		s.prims.Draw(kind, px.Model(), tint)
	}
	if s.GridVisible {
		drawEditorGrid(s.gridExtent)
	}
	rl.EndMode3D()
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	s.prims.Unload()
}

func look(k vehicle.ProxyKind) (primitives.Kind, rl.Color) {
	switch k {
	case vehicle.ProxyGround:
		return primitives.Plane, groundColor
	case vehicle.ProxyObstacle:
		return primitives.Cone, jumpColor
	case vehicle.ProxyWheel:
		return primitives.Cylinder, wheelColor
	}
	return primitives.Cube, chassisColor
}

func toCamera(c camera.Camera) rl.Camera3D {
	up := c.Up
	if up == (mgl64.Vec3{}) {
		up = mgl64.Vec3{0, 1, 0}
	}
	return rl.Camera3D{
		Position:   vec(c.Position),
		Target:     vec(c.Target),
		Up:         vec(up),
		Fovy:       float32(c.Fovy),
		Projection: rl.CameraPerspective,
	}
}

func vec(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// drawEditorGrid draws a grid just above the ground with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid(extent int) {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	start.Y, end.Y = gridLift, gridLift
	for i := -extent; i <= extent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Z = float32(i), float32(-extent)
		end.X, end.Z = float32(i), float32(extent)
		rl.DrawLine3D(start, end, c)
		start.X, start.Z = float32(-extent), float32(i)
		end.X, end.Z = float32(extent), float32(i)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Z = float32(-extent), 0
	end.X, end.Z = float32(extent), 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Z = 0, float32(-extent)
	end.X, end.Z = 0, float32(extent)
	rl.DrawLine3D(start, end, axisZ)
}
