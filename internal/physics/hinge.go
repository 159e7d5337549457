package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ianremmler/ode"
)

// alignRate is how fast (1/s) a hinge servo turns B's axis onto A's, before MaxForce limits it.
const alignRate = 30

// pullStiffness (N/m) sets how hard a soft pivot pulls before MaxForce limits it.
const pullStiffness = 100

// ODE AMotor axes given in the global frame.
const globalFrame = 0

type hingeKind int

const (
	// rigidHinge is one ODE hinge joint.
	rigidHinge hingeKind = iota
	// servoHinge is a rigid ball joint plus an angular motor holding the axis.
	servoHinge
	// softHinge is a force-bounded pull plus an angular motor holding the axis.
	softHinge
)

// Hinge joins two bodies at a pivot and lets them rotate about one axis. With the motor
// enabled it drives the relative spin (A minus B, about A's axis) toward the motor speed,
// bounded by MaxForce.
type Hinge struct {
	w        *World
	a, b     *body
	kind     hingeKind
	pivotA   mgl64.Vec3
	pivotB   mgl64.Vec3
	axisA    mgl64.Vec3
	axisB    mgl64.Vec3
	maxForce float64
	axisMax  float64

	motor      bool
	motorSpeed float64

	// sign is -1 when A is static: ODE then sees B as the first body.
	sign   float64
	hinge  ode.HingeJoint
	ball   ode.BallJoint
	amotor ode.AMotorJoint
}

var _ Constraint = (*Hinge)(nil)

func newHinge(w *World, a, b *body, def HingeDef) *Hinge {
	h := &Hinge{
		w:        w,
		a:        a,
		b:        b,
		pivotA:   def.PivotA,
		pivotB:   def.PivotB,
		axisA:    def.AxisA,
		axisB:    def.AxisB,
		maxForce: def.MaxForce,
		sign:     1,
	}
	if h.axisA.Len() < epsilon {
		h.axisA = mgl64.Vec3{1, 0, 0}
	}
	if h.axisB.Len() < epsilon {
		h.axisB = mgl64.Vec3{1, 0, 0}
	}
	if h.maxForce <= 0 {
		h.maxForce = DefaultMaxForce
	}
	h.axisMax = def.AxisMaxForce
	if h.axisMax <= 0 {
		h.axisMax = h.maxForce
	}
	switch {
	case h.maxForce < DefaultMaxForce:
		h.kind = softHinge
	case h.axisMax < h.maxForce:
		h.kind = servoHinge
	default:
		h.kind = rigidHinge
	}

	first, second := a.obj, b.obj
	if a.static {
		first, second = b.obj, 0
		h.sign = -1
	}
	anchor := vec3(a.pose().Transform(h.pivotA))
	switch h.kind {
	case rigidHinge:
		h.hinge = w.world.NewHingeJoint(ode.JointGroup(0))
		h.hinge.Attach(first, second)
		h.hinge.SetAnchor(anchor)
		h.hinge.SetAxis(vec3(h.worldAxis()))
		h.hinge.SetParam(ode.FMaxJtParam, 0)
	case servoHinge:
		h.ball = w.world.NewBallJoint(ode.JointGroup(0))
		h.ball.Attach(first, second)
		h.ball.SetAnchor(anchor)
		fallthrough
	default:
		h.amotor = w.world.NewAMotorJoint(ode.JointGroup(0))
		h.amotor.Attach(first, second)
		h.amotor.SetNumAxes(3)
	}
	return h
}

func (h *Hinge) EnableMotor()        { h.motor = true }
func (h *Hinge) DisableMotor()       { h.motor = false }
func (h *Hinge) MotorEnabled() bool  { return h.motor }
func (h *Hinge) MotorSpeed() float64 { return h.motorSpeed }

func (h *Hinge) SetMotorSpeed(speed float64) {
	h.motorSpeed = speed
}

// AxisA returns the axis in A's local frame as it was set (not normalized).
func (h *Hinge) AxisA() mgl64.Vec3 { return h.axisA }

// SetAxisA changes the axis in A's local frame. On soft and servo hinges B keeps its own axis,
// so the servo turns B until the two line up. A rigid hinge is re-anchored about the new axis
// where B already is. A zero axis is ignored.
func (h *Hinge) SetAxisA(axis mgl64.Vec3) {
	if axis.Len() < epsilon {
		return
	}
	h.axisA = axis
	if h.kind == rigidHinge {
		h.hinge.SetAxis(vec3(h.worldAxis()))
	}
}

func (h *Hinge) PivotA() mgl64.Vec3 { return h.pivotA }

// SetPivotA moves the pivot on A. Rigid joints re-anchor at the new point as the bodies stand.
func (h *Hinge) SetPivotA(pivot mgl64.Vec3) {
	h.pivotA = pivot
	anchor := vec3(h.a.pose().Transform(pivot))
	switch h.kind {
	case rigidHinge:
		h.hinge.SetAnchor(anchor)
	case servoHinge:
		h.ball.SetAnchor(anchor)
	}
}

func (h *Hinge) worldAxis() mgl64.Vec3 {
	return h.a.pose().Orientation.Rotate(h.axisA.Normalize())
}

// prepare programs the joint motors and soft pull for the coming substep.
func (h *Hinge) prepare() {
	if h.kind == rigidHinge {
		if h.motor {
			h.hinge.SetParam(ode.VelJtParam, h.sign*h.motorSpeed)
			h.hinge.SetParam(ode.FMaxJtParam, h.maxForce)
		} else {
			h.hinge.SetParam(ode.FMaxJtParam, 0)
		}
		return
	}

	pa, pb := h.a.pose(), h.b.pose()
	axis := pa.Orientation.Rotate(h.axisA.Normalize())
	u, v := perpendiculars(axis)

	// rotation vector carrying B's axis onto A's
	drift := pb.Orientation.Rotate(h.axisB.Normalize()).Cross(axis)
	if s := drift.Len(); s > epsilon {
		drift = drift.Mul(math.Asin(math.Min(s, 1)) / s)
	}

	h.amotor.SetAxis(0, globalFrame, vec3(axis))
	h.amotor.SetAxis(1, globalFrame, vec3(u))
	h.amotor.SetAxis(2, globalFrame, vec3(v))

	spin, spinMax := 0.0, 0.0
	if h.motor {
		spin, spinMax = h.sign*h.motorSpeed, h.maxForce
	}
	h.amotor.SetParam(ode.VelJtParam, spin)
	h.amotor.SetParam(ode.FMaxJtParam, spinMax)
	// the motor rows hold (first minus second) body spin, so B turning by drift is the negative
	h.amotor.SetParam(ode.VelJtParam2, -h.sign*alignRate*drift.Dot(u))
	h.amotor.SetParam(ode.FMaxJtParam2, h.axisMax)
	h.amotor.SetParam(ode.VelJtParam3, -h.sign*alignRate*drift.Dot(v))
	h.amotor.SetParam(ode.FMaxJtParam3, h.axisMax)

	if h.kind == softHinge {
		h.pull(pa, pb)
	}
}

// pull draws B's pivot toward A's with at most MaxForce, equal and opposite.
func (h *Hinge) pull(pa, pb Pose) {
	onA := pa.Transform(h.pivotA)
	onB := pb.Transform(h.pivotB)
	gap := onA.Sub(onB)
	d := gap.Len()
	if d < epsilon {
		return
	}
	f := gap.Mul(math.Min(pullStiffness*d, h.maxForce) / d)
	h.b.addForceAt(f, onB)
	h.a.addForceAt(f.Mul(-1), onA)
}

// perpendiculars returns two unit vectors completing n to an orthonormal basis.
func perpendiculars(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	ref := mgl64.Vec3{0, 1, 0}
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	u := n.Cross(ref).Normalize()
	return u, n.Cross(u)
}
