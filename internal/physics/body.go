package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ianremmler/ode"
)

// body pairs an ODE body with its collision geom. Static bodies (mass 0) have a geom only and
// keep their pose here.
type body struct {
	id       BodyID
	name     string
	shape    Shape
	material Material
	static   bool

	obj  ode.Body
	geom ode.Geom

	pos mgl64.Vec3
	rot mgl64.Quat
}

func newBody(w ode.World, space ode.Space, id BodyID, def BodyDef) *body {
	rot := def.Orientation
	if rot.Len() < epsilon {
		rot = mgl64.QuatIdent()
	}
	rot = rot.Normalize()
	mat := DefaultMaterial
	if def.Material != nil {
		mat = *def.Material
	}
	b := &body{
		id:       id,
		name:     def.Name,
		shape:    def.Shape,
		material: mat,
		static:   def.Mass == 0,
		pos:      def.Position,
		rot:      rot,
	}

	b.geom = newGeom(space, def.Shape)
	b.geom.SetData(b)
	if b.static {
		offset, turn := geomFrame(def.Shape)
		b.geom.SetPosition(vec3(def.Position.Add(rot.Rotate(offset))))
		b.geom.SetQuaternion(quat(rot.Mul(turn)))
		return b
	}

	b.obj = w.NewBody()
	b.obj.SetMass(newMass(def.Shape, def.Mass))
	b.obj.SetPosition(vec3(def.Position))
	b.obj.SetQuaternion(quat(rot))
	b.geom.SetBody(b.obj)
	return b
}

func newGeom(space ode.Space, s Shape) ode.Geom {
	switch s.Kind {
	case ShapeBox:
		return space.NewBox(vec3(s.HalfExtents.Mul(2)))
	case ShapeSphere:
		return space.NewSphere(s.Radius)
	}
	if s.cone() {
		r, _ := s.coneCap()
		return space.NewSphere(r)
	}
	return space.NewCylinder(s.RadiusBottom, s.Height)
}

// geomFrame is where a static geom sits in its body's frame. ODE cylinders run along Z.
func geomFrame(s Shape) (mgl64.Vec3, mgl64.Quat) {
	if s.Kind != ShapeCylinder {
		return mgl64.Vec3{}, mgl64.QuatIdent()
	}
	if s.cone() {
		_, offset := s.coneCap()
		return mgl64.Vec3{0, offset, 0}, mgl64.QuatIdent()
	}
	return mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
}

func newMass(s Shape, total float64) *ode.Mass {
	m := ode.NewMass()
	switch s.Kind {
	case ShapeBox:
		m.SetBoxTotal(total, vec3(s.HalfExtents.Mul(2)))
	case ShapeSphere:
		m.SetSphereTotal(total, s.Radius)
	}
	return m
}

func (b *body) pose() Pose {
	if b.static {
		return Pose{Position: b.pos, Orientation: b.rot}
	}
	return Pose{Position: toVec3(b.obj.Position()), Orientation: toQuat(b.obj.Quaternion())}
}

func (b *body) velocity() mgl64.Vec3 {
	if b.static {
		return mgl64.Vec3{}
	}
	return toVec3(b.obj.LinearVelocity())
}

func (b *body) angularVelocity() mgl64.Vec3 {
	if b.static {
		return mgl64.Vec3{}
	}
	return toVec3(b.obj.AngularVelocity())
}

// addForceAt pushes the body with f at world point p until the end of the next substep.
func (b *body) addForceAt(f, p mgl64.Vec3) {
	if b.static {
		return
	}
	b.obj.AddForceAtPos(vec3(f), vec3(p))
}

func vec3(v mgl64.Vec3) ode.Vector3 {
	return ode.V3(v[0], v[1], v[2])
}

func toVec3(v ode.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

// ODE quaternions are (w, x, y, z).
func quat(q mgl64.Quat) ode.Quaternion {
	return ode.Quaternion{q.W, q.V[0], q.V[1], q.V[2]}
}

func toQuat(q ode.Quaternion) mgl64.Quat {
	return mgl64.Quat{W: q[0], V: mgl64.Vec3{q[1], q[2], q[3]}}
}
