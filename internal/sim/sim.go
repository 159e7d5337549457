package sim

import (
	"fmt"
	"math"

	"rollcage/internal/camera"
	"rollcage/internal/config"
	"rollcage/internal/control"
	"rollcage/internal/logger"
	"rollcage/internal/physics"
	"rollcage/internal/terrain"
	"rollcage/internal/vehicle"
)

// Frame is everything the renderer needs for one tick. Proxies is shared with the vehicle and
// is only valid until the next Tick.
type Frame struct {
	Proxies []vehicle.Proxy
	Camera  camera.Camera
	State   control.State
	// Speed is the chassis speed in m/s.
	Speed  float64
	Dt     float64
	Paused bool
}

// Renderer draws a frame. It never reads back into the simulation.
type Renderer interface {
	Render(f Frame)
}

// ClampDelta bounds the elapsed wall time of a tick to [0, max].
func ClampDelta(elapsed, max float64) float64 {
	if math.IsNaN(elapsed) || elapsed < 0 {
		return 0
	}
	return math.Min(elapsed, max)
}

// Simulation owns the per-tick state and runs one tick to completion at a time.
type Simulation struct {
	Engine     physics.Engine
	Vehicle    *vehicle.Vehicle
	Rig        *vehicle.Rig
	Controller control.Controller
	Keys       control.KeyState
	State      control.State
	Chase      camera.Chase
	Camera     camera.Camera
	MaxStep    float64

	renderer Renderer
	log      *logger.Logger
	paused   bool
	ticks    int
	clamping bool
}

// New assembles the car on e and returns a simulation at rest. log may be nil.
func New(t config.Tuning, e physics.Engine, obstacles []terrain.Obstacle, r Renderer, log *logger.Logger) (*Simulation, error) {
	v, err := vehicle.Assemble(e, vehicle.LayoutFrom(t.Vehicle, t.Terrain), obstacles)
	if err != nil {
		return nil, err
	}
	rig, err := vehicle.NewRig(e, v, t.Rig)
	if err != nil {
		return nil, err
	}
	chase, cam := camera.New(t.Camera, e.Pose(v.Chassis))
	if log != nil {
		log.Logf("assembled %d bodies, %d jumps", len(v.Proxies()), len(v.Obstacles))
	}
	return &Simulation{
		Engine:     e,
		Vehicle:    v,
		Rig:        rig,
		Controller: control.New(t.Drive, t.Steering),
		Chase:      chase,
		Camera:     cam,
		MaxStep:    t.World.MaxStep,
		renderer:   r,
		log:        log,
	}, nil
}

// SetPaused freezes or resumes the world. A paused tick still moves the camera and renders.
func (s *Simulation) SetPaused(p bool) {
	s.paused = p
}

func (s *Simulation) Paused() bool {
	return s.paused
}

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Tick runs one frame: step the world by the clamped elapsed time, mirror poses into the
// proxies, update the controls from the held keys, program the rig, follow with the camera
// and render.
func (s *Simulation) Tick(elapsed float64) {
	dt := ClampDelta(elapsed, s.MaxStep)
	clamped := dt < elapsed
	if clamped && !s.clamping && s.log != nil {
		s.log.Logf("tick %d: clamped frame time %.3fs to %.3fs", s.ticks, elapsed, dt)
	}
	s.clamping = clamped

	if !s.paused {
		s.Engine.Step(dt)
		s.Vehicle.Sync(s.Engine)
		s.Controller.Update(&s.Keys, &s.State)
		s.Rig.Apply(s.State)
	}

	s.Chase.Update(&s.Camera, s.Vehicle.ChassisPose())

	if s.renderer != nil {
		s.renderer.Render(Frame{
			Proxies: s.Vehicle.Proxies(),
			Camera:  s.Camera,
			State:   s.State,
			Speed:   s.Engine.Velocity(s.Vehicle.Chassis).Len(),
			Dt:      dt,
			Paused:  s.paused,
		})
	}
	s.ticks++
}

// String summarizes the control state for the console.
func (s *Simulation) String() string {
	return fmt.Sprintf("forward %.2f steering %.2f", s.State.ForwardVelocity, s.State.SteeringBias)
}

// Readout is the HUD text for the frame, one entry per line.
func (f Frame) Readout() []string {
	lines := []string{
		fmt.Sprintf("speed    %5.1f km/h", f.Speed*3.6),
		fmt.Sprintf("throttle %+6.2f", f.State.ForwardVelocity),
		fmt.Sprintf("steering %+6.2f", f.State.SteeringBias),
	}
	if f.Paused {
		lines = append(lines, "paused")
	}
	return lines
}
