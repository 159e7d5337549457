// Package physicstest provides a deterministic physics.Engine for tests. It integrates gravity
// with explicit Euler, pushes dynamic bodies out of static ones along the axis of minimum
// AABB penetration, and pins each hinge's B body to A's world pivot. Nothing rotates unless a
// test sets a pose.
package physicstest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rollcage/internal/physics"
)

// Body is the recorded state of one body.
type Body struct {
	Def      physics.BodyDef
	Pose     physics.Pose
	Velocity mgl64.Vec3
}

// Static reports whether the body was created with mass 0.
func (b *Body) Static() bool {
	return b.Def.Mass == 0
}

// Hinge records what was asked of a hinge; it does not solve anything.
type Hinge struct {
	Def        physics.HingeDef
	Motor      bool
	Speed      float64
	SpeedCalls int
	AxisCalls  int
}

func (h *Hinge) EnableMotor()        { h.Motor = true }
func (h *Hinge) DisableMotor()       { h.Motor = false }
func (h *Hinge) MotorEnabled() bool  { return h.Motor }
func (h *Hinge) MotorSpeed() float64 { return h.Speed }

func (h *Hinge) SetMotorSpeed(speed float64) {
	h.Speed = speed
	h.SpeedCalls++
}

func (h *Hinge) AxisA() mgl64.Vec3 { return h.Def.AxisA }

func (h *Hinge) SetAxisA(axis mgl64.Vec3) {
	h.Def.AxisA = axis
	h.AxisCalls++
}

func (h *Hinge) PivotA() mgl64.Vec3         { return h.Def.PivotA }
func (h *Hinge) SetPivotA(pivot mgl64.Vec3) { h.Def.PivotA = pivot }

// Engine is the fake. The zero value has no gravity; use New for Earth gravity.
type Engine struct {
	gravity mgl64.Vec3
	bodies  []*Body
	hinges  []*Hinge
	steps   []float64
}

var _ physics.Engine = (*Engine)(nil)

// New returns an empty engine with gravity (0, -9.82, 0).
func New() *Engine {
	return &Engine{gravity: mgl64.Vec3{0, -9.82, 0}}
}

func (e *Engine) SetGravity(g mgl64.Vec3) { e.gravity = g }
func (e *Engine) Gravity() mgl64.Vec3     { return e.gravity }

// AddBody records def. Negative mass is rejected like the real world does.
func (e *Engine) AddBody(def physics.BodyDef) (physics.BodyID, error) {
	if def.Mass < 0 {
		return -1, fmt.Errorf("body %q: %w", def.Name, physics.ErrInvalidMass)
	}
	rot := def.Orientation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	e.bodies = append(e.bodies, &Body{Def: def, Pose: physics.Pose{Position: def.Position, Orientation: rot}})
	return physics.BodyID(len(e.bodies) - 1), nil
}

// AddHinge records def after checking both endpoints exist.
func (e *Engine) AddHinge(def physics.HingeDef) (physics.Constraint, error) {
	if e.Body(def.A) == nil || e.Body(def.B) == nil {
		return nil, fmt.Errorf("hinge %d-%d: %w", def.A, def.B, physics.ErrUnknownBody)
	}
	if def.A == def.B {
		return nil, physics.ErrSameBody
	}
	if e.Body(def.A).Static() && e.Body(def.B).Static() {
		return nil, physics.ErrStaticHinge
	}
	h := &Hinge{Def: def}
	e.hinges = append(e.hinges, h)
	return h, nil
}

// Body returns the recorded body or nil.
func (e *Engine) Body(id physics.BodyID) *Body {
	if id < 0 || int(id) >= len(e.bodies) {
		return nil
	}
	return e.bodies[id]
}

// Bodies returns every recorded body in AddBody order.
func (e *Engine) Bodies() []*Body { return e.bodies }

// Hinges returns every recorded hinge in AddHinge order.
func (e *Engine) Hinges() []*Hinge { return e.hinges }

// Steps returns the dt of every Step call.
func (e *Engine) Steps() []float64 { return e.steps }

// LastDt returns the dt of the most recent Step call, or -1 if there was none.
func (e *Engine) LastDt() float64 {
	if len(e.steps) == 0 {
		return -1
	}
	return e.steps[len(e.steps)-1]
}

// SetPose overwrites a body's pose, e.g. to tilt the chassis before checking the camera.
func (e *Engine) SetPose(id physics.BodyID, p physics.Pose) {
	if b := e.Body(id); b != nil {
		b.Pose = p
	}
}

func (e *Engine) Pose(id physics.BodyID) physics.Pose {
	if b := e.Body(id); b != nil {
		return b.Pose
	}
	return physics.IdentityPose()
}

func (e *Engine) Velocity(id physics.BodyID) mgl64.Vec3 {
	if b := e.Body(id); b != nil {
		return b.Velocity
	}
	return mgl64.Vec3{}
}

// Step records dt and advances the bodies.
func (e *Engine) Step(dt float64) {
	e.steps = append(e.steps, dt)
	if dt <= 0 {
		return
	}
	for _, b := range e.bodies {
		if b.Static() {
			continue
		}
		b.Velocity = b.Velocity.Add(e.gravity.Mul(dt))
		b.Pose.Position = b.Pose.Position.Add(b.Velocity.Mul(dt))
	}
	for _, b := range e.bodies {
		if b.Static() {
			continue
		}
		for _, s := range e.bodies {
			if s.Static() {
				e.separate(b, s)
			}
		}
	}
	for _, h := range e.hinges {
		a, b := e.bodies[h.Def.A], e.bodies[h.Def.B]
		if b.Static() {
			continue
		}
		if h.Def.MaxForce > 0 && h.Def.MaxForce < physics.DefaultMaxForce {
			// soft hinges leave the body where the hard ones put it
			continue
		}
		b.Pose.Position = a.Pose.Transform(h.Def.PivotA).Sub(b.Pose.Orientation.Rotate(h.Def.PivotB))
		b.Velocity = a.Velocity
	}
}

// separate moves b out of static s along the axis of minimum overlap and stops it on that axis.
func (e *Engine) separate(b, s *Body) {
	bMin, bMax := aabb(b)
	sMin, sMax := aabb(s)
	depth, axis := -1.0, -1
	for i := 0; i < 3; i++ {
		overlap := min(bMax[i], sMax[i]) - max(bMin[i], sMin[i])
		if overlap <= 0 {
			return
		}
		if axis < 0 || overlap < depth {
			depth, axis = overlap, i
		}
	}
	if b.Pose.Position[axis] < s.Pose.Position[axis] {
		depth = -depth
	}
	b.Pose.Position[axis] += depth
	b.Velocity[axis] = 0
}

// aabb bounds the shape at its position, ignoring orientation.
func aabb(b *Body) (mgl64.Vec3, mgl64.Vec3) {
	var half mgl64.Vec3
	s := b.Def.Shape
	switch s.Kind {
	case physics.ShapeBox:
		half = s.HalfExtents
	case physics.ShapeSphere:
		half = mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	case physics.ShapeCylinder:
		r := max(s.RadiusTop, s.RadiusBottom)
		half = mgl64.Vec3{r, s.Height / 2, r}
	}
	p := b.Pose.Position
	return p.Sub(half), p.Add(half)
}
