package sim

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcage/internal/config"
	"rollcage/internal/control"
	"rollcage/internal/logger"
	"rollcage/internal/physics/physicstest"
	"rollcage/internal/vehicle"
)

type recorder struct {
	frames []Frame
}

func (r *recorder) Render(f Frame) {
	r.frames = append(r.frames, f)
}

func newSim(t *testing.T) (*Simulation, *physicstest.Engine, *recorder, *logger.Logger) {
	t.Helper()
	e := physicstest.New()
	r := &recorder{}
	log := logger.New("")
	s, err := New(config.Default(), e, nil, r, log)
	require.NoError(t, err)
	return s, e, r, log
}

func TestClampDelta(t *testing.T) {
	assert.Equal(t, 0.016, ClampDelta(0.016, 0.1))
	assert.Equal(t, 0.1, ClampDelta(3, 0.1))
	assert.Equal(t, 0.0, ClampDelta(-1, 0.1))
	assert.Equal(t, 0.0, ClampDelta(math.NaN(), 0.1))
}

func TestTickStepsClampedDelta(t *testing.T) {
	s, e, _, log := newSim(t)
	s.Tick(2.5)
	assert.Equal(t, 0.1, e.LastDt())
	require.NotEmpty(t, log.Lines())
	assert.Contains(t, log.Lines()[len(log.Lines())-1], "clamped frame time 2.500s")

	s.Tick(1.0 / 60)
	assert.InDelta(t, 1.0/60, e.LastDt(), 1e-15)
}

func TestClampLoggedOncePerStall(t *testing.T) {
	s, _, _, log := newSim(t)
	clamps := func() int {
		n := 0
		for _, l := range log.Lines() {
			if strings.Contains(l, "clamped frame time") {
				n++
			}
		}
		return n
	}

	for i := 0; i < 50; i++ {
		s.Tick(0.5)
	}
	assert.Equal(t, 1, clamps())

	s.Tick(1.0 / 60)
	s.Tick(0.5)
	assert.Equal(t, 2, clamps())
}

func TestTickSyncsProxiesAndRenders(t *testing.T) {
	s, e, r, _ := newSim(t)
	start := s.Vehicle.ChassisPose().Position
	s.Tick(0.05)

	require.Len(t, r.frames, 1)
	f := r.frames[0]
	chassis := e.Pose(s.Vehicle.Chassis)
	assert.Equal(t, chassis, s.Vehicle.ChassisPose())
	assert.Less(t, chassis.Position.Y(), start.Y())
	assert.Equal(t, chassis.Position, f.Camera.Target)
	assert.Equal(t, 0.05, f.Dt)
	assert.Greater(t, f.Speed, 0.0)
	assert.Len(t, f.Proxies, len(e.Bodies()))
	assert.Equal(t, 1, s.Ticks())
}

func TestTickProgramsRigFromKeys(t *testing.T) {
	s, _, r, _ := newSim(t)
	s.Keys.Press(control.Forward)
	s.Keys.Press(control.Left)
	for i := 0; i < 3; i++ {
		s.Tick(1.0 / 60)
	}

	bl := s.Rig.Drive(vehicle.BackLeft).(*physicstest.Hinge)
	br := s.Rig.Drive(vehicle.BackRight).(*physicstest.Hinge)
	assert.Equal(t, 3.0, bl.Speed)
	assert.Equal(t, bl.Speed, br.Speed)
	assert.Equal(t, 3, bl.SpeedCalls)

	fl := s.Rig.Drive(vehicle.FrontLeft).AxisA()
	fr := s.Rig.Drive(vehicle.FrontRight).AxisA()
	assert.Equal(t, fl, fr)
	assert.InDelta(t, -0.3, fl.Z(), 1e-12)

	last := r.frames[len(r.frames)-1]
	assert.Equal(t, 3.0, last.State.ForwardVelocity)
}

func TestPausedTickOnlyRenders(t *testing.T) {
	s, e, r, _ := newSim(t)
	s.Keys.Press(control.Forward)
	s.SetPaused(true)
	assert.True(t, s.Paused())
	s.Tick(1.0 / 60)

	assert.Empty(t, e.Steps())
	assert.Equal(t, 0.0, s.State.ForwardVelocity)
	require.Len(t, r.frames, 1)
	assert.True(t, r.frames[0].Paused)

	s.SetPaused(false)
	s.Tick(1.0 / 60)
	assert.Len(t, e.Steps(), 1)
	assert.Equal(t, 1.0, s.State.ForwardVelocity)
}

func TestCameraLagsBehindChassis(t *testing.T) {
	s, _, _, _ := newSim(t)
	for i := 0; i < 30; i++ {
		s.Tick(1.0 / 60)
	}
	target := s.Chase.Target(s.Vehicle.ChassisPose())
	assert.Greater(t, s.Camera.Position.Y(), target.Y(), "camera trails the falling chassis")
	assert.True(t, strings.HasPrefix(s.String(), "forward 0.00"))
}

func TestReadout(t *testing.T) {
	f := Frame{Speed: 10, State: control.State{ForwardVelocity: 12, SteeringBias: -0.3}}
	assert.Equal(t, []string{
		"speed     36.0 km/h",
		"throttle +12.00",
		"steering  -0.30",
	}, f.Readout())

	f.Paused = true
	assert.Equal(t, "paused", f.Readout()[3])
}
