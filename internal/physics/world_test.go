package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var earth = mgl64.Vec3{0, -9.82, 0}

func groundDef() BodyDef {
	return BodyDef{
		Name:     "ground",
		Mass:     0,
		Shape:    Box(mgl64.Vec3{50, 1, 50}),
		Position: mgl64.Vec3{0, -1, 0},
	}
}

func TestAddBodyValidation(t *testing.T) {
	w := NewWorld(earth, 0)
	defer w.Close()

	_, err := w.AddBody(BodyDef{Name: "neg", Mass: -1, Shape: Sphere(1)})
	assert.ErrorIs(t, err, ErrInvalidMass)

	_, err = w.AddBody(BodyDef{Name: "flat", Mass: 1, Shape: Box(mgl64.Vec3{1, 0, 1})})
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = w.AddBody(BodyDef{Name: "can", Mass: 1, Shape: Cylinder(1, 1, 1)})
	assert.ErrorIs(t, err, ErrUnsupportedShape)

	id, err := w.AddBody(BodyDef{Name: "cone", Mass: 0, Shape: Cylinder(0.01, 1, 0.5)})
	require.NoError(t, err)
	assert.Equal(t, BodyID(0), id)
}

func TestAddHingeValidation(t *testing.T) {
	w := NewWorld(earth, 0)
	defer w.Close()
	a, err := w.AddBody(BodyDef{Name: "a", Mass: 1, Shape: Sphere(1)})
	require.NoError(t, err)

	_, err = w.AddHinge(HingeDef{A: a, B: 7})
	assert.ErrorIs(t, err, ErrUnknownBody)

	_, err = w.AddHinge(HingeDef{A: a, B: a})
	assert.ErrorIs(t, err, ErrSameBody)

	post, err := w.AddBody(BodyDef{Name: "post", Mass: 0, Shape: Sphere(1), Position: mgl64.Vec3{5, 0, 0}})
	require.NoError(t, err)
	wall, err := w.AddBody(BodyDef{Name: "wall", Mass: 0, Shape: Box(mgl64.Vec3{1, 1, 1}), Position: mgl64.Vec3{-5, 0, 0}})
	require.NoError(t, err)
	_, err = w.AddHinge(HingeDef{A: post, B: wall})
	assert.ErrorIs(t, err, ErrStaticHinge)
}

func TestUnknownPose(t *testing.T) {
	w := NewWorld(earth, 0)
	defer w.Close()
	p := w.Pose(3)
	assert.Equal(t, mgl64.Vec3{}, p.Position)
	assert.Equal(t, mgl64.QuatIdent(), p.Orientation)
}

func TestFreeFall(t *testing.T) {
	w := NewWorld(earth, 10)
	defer w.Close()
	static, err := w.AddBody(BodyDef{Name: "post", Mass: 0, Shape: Box(mgl64.Vec3{1, 1, 1}), Position: mgl64.Vec3{20, 0, 0}})
	require.NoError(t, err)
	ball, err := w.AddBody(BodyDef{Name: "ball", Mass: 1, Shape: Sphere(0.5), Position: mgl64.Vec3{0, 10, 0}})
	require.NoError(t, err)

	w.Step(0.1)

	assert.InDelta(t, -0.982, w.Velocity(ball).Y(), 1e-9)
	assert.Less(t, w.Pose(ball).Position.Y(), 10.0)
	assert.Equal(t, mgl64.Vec3{20, 0, 0}, w.Pose(static).Position)
}

func TestStepIgnoresNonPositiveDt(t *testing.T) {
	w := NewWorld(earth, 10)
	defer w.Close()
	ball, err := w.AddBody(BodyDef{Name: "ball", Mass: 1, Shape: Sphere(0.5), Position: mgl64.Vec3{0, 10, 0}})
	require.NoError(t, err)

	w.Step(0)
	w.Step(-1)
	assert.Equal(t, mgl64.Vec3{0, 10, 0}, w.Pose(ball).Position)
}

func TestSphereComesToRestOnGround(t *testing.T) {
	w := NewWorld(earth, 10)
	defer w.Close()
	_, err := w.AddBody(groundDef())
	require.NoError(t, err)
	ball, err := w.AddBody(BodyDef{Name: "ball", Mass: 1, Shape: Sphere(0.5), Position: mgl64.Vec3{0, 2, 0}})
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 0.5, w.Pose(ball).Position.Y(), 0.02)
	assert.Less(t, w.Velocity(ball).Len(), 0.1)
}

func TestBoxComesToRestOnGround(t *testing.T) {
	w := NewWorld(earth, 10)
	defer w.Close()
	_, err := w.AddBody(groundDef())
	require.NoError(t, err)
	crate, err := w.AddBody(BodyDef{Name: "crate", Mass: 1, Shape: Box(mgl64.Vec3{0.5, 0.5, 1}), Position: mgl64.Vec3{0, 3, 0}})
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 0.5, w.Pose(crate).Position.Y(), 0.02)
}

func TestHingeHoldsPivot(t *testing.T) {
	w := NewWorld(earth, 10)
	defer w.Close()
	frame, err := w.AddBody(BodyDef{Name: "frame", Mass: 0, Shape: Box(mgl64.Vec3{0.5, 0.5, 1}), Position: mgl64.Vec3{0, 3, 0}})
	require.NoError(t, err)
	wheel, err := w.AddBody(BodyDef{Name: "wheel", Mass: 1, Shape: Sphere(0.4), Position: mgl64.Vec3{1, 3, 1}})
	require.NoError(t, err)
	_, err = w.AddHinge(HingeDef{A: frame, B: wheel, PivotA: mgl64.Vec3{1, 0, 1}, AxisA: mgl64.Vec3{1, 0, 0}})
	require.NoError(t, err)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}
	pos := w.Pose(wheel).Position
	assert.InDeltaSlice(t, []float64{1, 3, 1}, pos[:], 1e-3, "wheel drifted to %v", pos)
}

func TestMotorDrivesRelativeSpin(t *testing.T) {
	w := NewWorld(mgl64.Vec3{}, 10)
	defer w.Close()
	frame, err := w.AddBody(BodyDef{Name: "frame", Mass: 0, Shape: Box(mgl64.Vec3{0.5, 0.5, 1})})
	require.NoError(t, err)
	wheel, err := w.AddBody(BodyDef{Name: "wheel", Mass: 1, Shape: Sphere(0.4), Position: mgl64.Vec3{1, 0, 0}})
	require.NoError(t, err)
	h, err := w.AddHinge(HingeDef{A: frame, B: wheel, PivotA: mgl64.Vec3{1, 0, 0}})
	require.NoError(t, err)

	h.SetMotorSpeed(5)
	w.Step(1.0 / 60)
	assert.InDelta(t, 0, w.AngularVelocity(wheel).X(), 1e-9, "motor is off until enabled")

	h.EnableMotor()
	w.Step(1.0 / 60)
	assert.InDelta(t, -5, w.AngularVelocity(wheel).X(), 1e-3)
}

func TestWeakMotorAcceleratesGradually(t *testing.T) {
	w := NewWorld(mgl64.Vec3{}, 10)
	defer w.Close()
	frame, err := w.AddBody(BodyDef{Name: "frame", Mass: 0, Shape: Box(mgl64.Vec3{0.5, 0.5, 1})})
	require.NoError(t, err)
	wheel, err := w.AddBody(BodyDef{Name: "wheel", Mass: 1, Shape: Sphere(0.4), Position: mgl64.Vec3{1, 0, 0}})
	require.NoError(t, err)
	h, err := w.AddHinge(HingeDef{A: frame, B: wheel, PivotA: mgl64.Vec3{1, 0, 0}, MaxForce: 0.99})
	require.NoError(t, err)
	h.EnableMotor()
	h.SetMotorSpeed(100)

	dt := 1.0 / 60
	w.Step(dt)
	inertia := 2.0 / 5.0 * 0.4 * 0.4
	spin := -w.AngularVelocity(wheel).X()
	assert.Greater(t, spin, 0.0)
	assert.LessOrEqual(t, spin, 0.99*dt/inertia+1e-9)
}

func TestSetAxisATurnsSoftHingeBody(t *testing.T) {
	w := NewWorld(mgl64.Vec3{}, 10)
	defer w.Close()
	frame, err := w.AddBody(BodyDef{Name: "frame", Mass: 0, Shape: Box(mgl64.Vec3{0.5, 0.5, 1})})
	require.NoError(t, err)
	wheel, err := w.AddBody(BodyDef{Name: "wheel", Mass: 1, Shape: Sphere(0.33), Position: mgl64.Vec3{1, 0, -1}})
	require.NoError(t, err)
	h, err := w.AddHinge(HingeDef{A: frame, B: wheel, PivotA: mgl64.Vec3{1, 0, -1}, MaxForce: 0.99})
	require.NoError(t, err)

	h.SetAxisA(mgl64.Vec3{1, 0, -0.5})
	assert.Equal(t, mgl64.Vec3{1, 0, -0.5}, h.AxisA())
	h.SetAxisA(mgl64.Vec3{})
	assert.Equal(t, mgl64.Vec3{1, 0, -0.5}, h.AxisA(), "zero axis is ignored")

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	axle := w.Pose(wheel).Orientation.Rotate(mgl64.Vec3{1, 0, 0})
	assert.Greater(t, axle.Dot(mgl64.Vec3{1, 0, -0.5}.Normalize()), 0.999)
}

func TestGravityAccessors(t *testing.T) {
	w := NewWorld(earth, 0)
	defer w.Close()
	assert.Equal(t, earth, w.Gravity())
	w.SetGravity(mgl64.Vec3{0, -1.62, 0})
	assert.Equal(t, mgl64.Vec3{0, -1.62, 0}, w.Gravity())
}

func TestServoHingeKeepsPivotAndYieldsAxis(t *testing.T) {
	w := NewWorld(mgl64.Vec3{}, 10)
	defer w.Close()
	frame, err := w.AddBody(BodyDef{Name: "frame", Mass: 0, Shape: Box(mgl64.Vec3{0.5, 0.5, 1})})
	require.NoError(t, err)
	wheel, err := w.AddBody(BodyDef{Name: "wheel", Mass: 1, Shape: Sphere(0.33), Position: mgl64.Vec3{1, 0, -1}})
	require.NoError(t, err)
	_, err = w.AddHinge(HingeDef{A: frame, B: wheel, PivotA: mgl64.Vec3{1, 0, -1}, AxisMaxForce: 0.5})
	require.NoError(t, err)
	steer, err := w.AddHinge(HingeDef{A: frame, B: wheel, PivotA: mgl64.Vec3{1, 0, -1}, MaxForce: 0.99})
	require.NoError(t, err)

	// the stronger servo wins
	steer.SetAxisA(mgl64.Vec3{1, 0, -0.5})
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}
	axle := w.Pose(wheel).Orientation.Rotate(mgl64.Vec3{1, 0, 0})
	assert.Less(t, axle.Z(), -0.1)
	pos := w.Pose(wheel).Position
	assert.InDeltaSlice(t, []float64{1, 0, -1}, pos[:], 1e-3)
}

func TestRestitutionBounces(t *testing.T) {
	w := NewWorld(earth, 10)
	defer w.Close()
	bouncy := Material{Name: "rubber", Friction: 0.3, Restitution: 0.9}
	ground := groundDef()
	ground.Material = &bouncy
	_, err := w.AddBody(ground)
	require.NoError(t, err)
	ball, err := w.AddBody(BodyDef{Name: "ball", Mass: 1, Shape: Sphere(0.5), Material: &bouncy, Position: mgl64.Vec3{0, 3, 0}})
	require.NoError(t, err)

	rose := false
	for i := 0; i < 90; i++ {
		w.Step(1.0 / 60)
		if w.Velocity(ball).Y() > 2 {
			rose = true
		}
	}
	assert.True(t, rose, "ball should come back up")
}
