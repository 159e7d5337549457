package physics

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ianremmler/ode"
)

// DefaultSubsteps is the number of solver substeps per Step when none is configured.
const DefaultSubsteps = 10

// contactCapacity sizes the contact joint group emptied after every substep.
const contactCapacity = 1024

var initODE sync.Once

// World is the ODE rigid-body world: bodies with box and sphere geoms in a hash space, hinges
// built from ODE joints, and contact joints rebuilt on every substep. Each substep programs the
// hinge motors, collides the space and takes one QuickStep.
type World struct {
	gravity  mgl64.Vec3
	substeps int
	h        float64

	world    ode.World
	space    ode.Space
	contacts ode.JointGroup

	bodies []*body
	hinges []*Hinge
}

var _ Engine = (*World)(nil)

// NewWorld returns an empty world with the given gravity and substep count (< 1 uses
// DefaultSubsteps). Close releases it.
func NewWorld(gravity mgl64.Vec3, substeps int) *World {
	initODE.Do(func() {
		ode.Init(0, ode.AllAFlag)
	})
	if substeps < 1 {
		substeps = DefaultSubsteps
	}
	w := &World{
		substeps: substeps,
		world:    ode.NewWorld(),
		space:    ode.NilSpace().NewHashSpace(),
		contacts: ode.NewJointGroup(contactCapacity),
	}
	w.world.SetAutoDisable(false)
	w.SetGravity(gravity)
	return w
}

// Close destroys the ODE world, its space and its joints.
func (w *World) Close() {
	w.contacts.Destroy()
	w.space.Destroy()
	w.world.Destroy()
}

// SetGravity sets the gravity vector (e.g. (0, -9.82, 0) for down in -Y).
func (w *World) SetGravity(g mgl64.Vec3) {
	w.gravity = g
	w.world.SetGravity(vec3(g))
}

func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

// AddBody validates def and registers a body. Order is preserved; the returned ID indexes it.
func (w *World) AddBody(def BodyDef) (BodyID, error) {
	if def.Mass < 0 {
		return -1, fmt.Errorf("body %q: %w", def.Name, ErrInvalidMass)
	}
	if err := def.Shape.validate(); err != nil {
		return -1, fmt.Errorf("body %q (%s): %w", def.Name, def.Shape.Kind, err)
	}
	if def.Mass > 0 && def.Shape.Kind == ShapeCylinder {
		return -1, fmt.Errorf("body %q (%s): %w", def.Name, def.Shape.Kind, ErrUnsupportedShape)
	}
	id := BodyID(len(w.bodies))
	w.bodies = append(w.bodies, newBody(w.world, w.space, id, def))
	return id, nil
}

// AddHinge registers a hinge between two existing bodies, anchored where they stand now.
func (w *World) AddHinge(def HingeDef) (Constraint, error) {
	a, ok := w.body(def.A)
	if !ok {
		return nil, fmt.Errorf("hinge body A %d: %w", def.A, ErrUnknownBody)
	}
	b, ok := w.body(def.B)
	if !ok {
		return nil, fmt.Errorf("hinge body B %d: %w", def.B, ErrUnknownBody)
	}
	if a == b {
		return nil, fmt.Errorf("hinge on %q: %w", a.name, ErrSameBody)
	}
	if a.static && b.static {
		return nil, fmt.Errorf("hinge %q-%q: %w", a.name, b.name, ErrStaticHinge)
	}
	h := newHinge(w, a, b, def)
	w.hinges = append(w.hinges, h)
	return h, nil
}

func (w *World) body(id BodyID) (*body, bool) {
	if id < 0 || int(id) >= len(w.bodies) {
		return nil, false
	}
	return w.bodies[id], true
}

// Pose returns the body's current transform, or IdentityPose for an unknown ID.
func (w *World) Pose(id BodyID) Pose {
	b, ok := w.body(id)
	if !ok {
		return IdentityPose()
	}
	return b.pose()
}

// Velocity returns the body's linear velocity.
func (w *World) Velocity(id BodyID) mgl64.Vec3 {
	b, ok := w.body(id)
	if !ok {
		return mgl64.Vec3{}
	}
	return b.velocity()
}

// AngularVelocity returns the body's angular velocity in world space.
func (w *World) AngularVelocity(id BodyID) mgl64.Vec3 {
	b, ok := w.body(id)
	if !ok {
		return mgl64.Vec3{}
	}
	return b.angularVelocity()
}

// SetVelocity overwrites a dynamic body's linear and angular velocity.
func (w *World) SetVelocity(id BodyID, linear, angular mgl64.Vec3) {
	b, ok := w.body(id)
	if !ok || b.static {
		return
	}
	b.obj.SetLinearVelocity(vec3(linear))
	b.obj.SetAngularVelocity(vec3(angular))
}

// Step advances the simulation by dt seconds. dt <= 0 is a no-op. Callers bound dt; the
// world itself does not.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.h = dt / float64(w.substeps)
	for i := 0; i < w.substeps; i++ {
		for _, j := range w.hinges {
			j.prepare()
		}
		w.space.Collide(nil, w.near)
		w.world.QuickStep(w.h)
		w.contacts.Empty()
	}
}
