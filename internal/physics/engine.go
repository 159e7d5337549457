package physics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// Configuration errors. The world reports them when a body or hinge is added; they are never
// produced by Step.
var (
	ErrInvalidMass      = errors.New("physics: mass must be >= 0")
	ErrInvalidShape     = errors.New("physics: invalid shape dimensions")
	ErrUnsupportedShape = errors.New("physics: shape not supported for dynamic bodies")
	ErrUnknownBody      = errors.New("physics: unknown body")
	ErrSameBody         = errors.New("physics: hinge endpoints must be different bodies")
	ErrStaticHinge      = errors.New("physics: hinge needs at least one dynamic body")
)

// DefaultMaxForce bounds hinges that do not set MaxForce. Large enough to act as a rigid joint.
const DefaultMaxForce = 1e6

const epsilon = 1e-9

// BodyID identifies a body inside one Engine. IDs are assigned in AddBody order starting at 0.
type BodyID int

// Pose is a body's world transform.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// IdentityPose is the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// Transform maps a point from the body's local frame to world space.
func (p Pose) Transform(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Orientation.Rotate(local))
}

// BodyDef describes a body to add. Mass 0 makes the body static (immovable, unaffected by
// gravity). A nil Material uses DefaultMaterial. A zero Orientation means identity.
type BodyDef struct {
	Name        string
	Mass        float64
	Shape       Shape
	Material    *Material
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// HingeDef joins body B to body A so they may only rotate relative to each other about one
// axis. Pivots and axes are in each body's local frame. Zero axes default to +X. The pivots
// should coincide when the hinge is added: the world anchors the joint where the bodies are.
// MaxForce bounds the motor and, below DefaultMaxForce, turns the hinge soft: the pivot becomes
// a pull of at most MaxForce and the axis a servo of at most MaxForce. AxisMaxForce, when set,
// bounds only the axis servo and keeps the pivot rigid.
type HingeDef struct {
	A, B         BodyID
	PivotA       mgl64.Vec3
	PivotB       mgl64.Vec3
	AxisA        mgl64.Vec3
	AxisB        mgl64.Vec3
	MaxForce     float64
	AxisMaxForce float64
}

// Constraint is a handle to a hinge added to an Engine. The local axis and pivot on A stay
// mutable after creation; changes take effect on the next Step.
type Constraint interface {
	EnableMotor()
	DisableMotor()
	MotorEnabled() bool
	// SetMotorSpeed sets the target relative angular speed (rad/s) about the hinge axis.
	SetMotorSpeed(speed float64)
	MotorSpeed() float64
	AxisA() mgl64.Vec3
	SetAxisA(axis mgl64.Vec3)
	PivotA() mgl64.Vec3
	SetPivotA(pivot mgl64.Vec3)
}

// Engine is the rigid-body service the vehicle is built on: register bodies and hinges once,
// then advance time and read poses back. World is the ODE implementation; physicstest has a
// deterministic stand-in for tests.
type Engine interface {
	AddBody(def BodyDef) (BodyID, error)
	AddHinge(def HingeDef) (Constraint, error)
	Step(dt float64)
	// Pose returns the current world transform of a body. Unknown IDs yield IdentityPose.
	Pose(id BodyID) Pose
	Velocity(id BodyID) mgl64.Vec3
	SetGravity(g mgl64.Vec3)
	Gravity() mgl64.Vec3
}
