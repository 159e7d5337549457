package vehicle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rollcage/internal/physics"
	"rollcage/internal/terrain"
)

// ProxyKind says how a proxy is drawn.
type ProxyKind int

const (
	ProxyGround ProxyKind = iota
	ProxyObstacle
	ProxyChassis
	ProxyWheel
)

// Proxy mirrors one body for drawing. Physics owns the pose; Sync copies it here and nothing
// flows back.
type Proxy struct {
	Name  string
	Body  physics.BodyID
	Kind  ProxyKind
	Shape physics.Shape
	// Width is the drawn thickness of a wheel along its axle.
	Width float64
	Pose  physics.Pose
}

// Vehicle is the set of bodies registered by Assemble, with one proxy per body.
type Vehicle struct {
	Layout    Layout
	Ground    physics.BodyID
	Obstacles []physics.BodyID
	Chassis   physics.BodyID
	Wheels    [4]physics.BodyID

	proxies []Proxy
	dynamic []int
}

// Assemble registers the ground, the obstacles, the chassis and the four wheels (FL, FR, BL,
// BR) in that order. It runs once at startup; an error means the layout is unusable.
func Assemble(e physics.Engine, l Layout, obstacles []terrain.Obstacle) (*Vehicle, error) {
	v := &Vehicle{Layout: l}
	ground := l.GroundMaterial

	groundShape := physics.Box(mgl64.Vec3{l.GroundHalfSize, 1, l.GroundHalfSize})
	id, err := v.add(e, physics.BodyDef{
		Name:     "ground",
		Shape:    groundShape,
		Material: &ground,
		Position: mgl64.Vec3{0, -1, 0},
	}, ProxyGround, 0)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	v.Ground = id

	v.Obstacles = make([]physics.BodyID, 0, len(obstacles))
	for i, o := range obstacles {
		id, err := v.add(e, physics.BodyDef{
			Name:     fmt.Sprintf("jump-%d", i),
			Shape:    physics.Cylinder(o.RadiusTop, o.RadiusBottom, o.Height),
			Material: &ground,
			Position: o.Position,
		}, ProxyObstacle, 0)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		v.Obstacles = append(v.Obstacles, id)
	}

	spawn := mgl64.Vec3{0, l.SpawnHeight, 0}
	id, err = v.add(e, physics.BodyDef{
		Name:     "chassis",
		Mass:     l.ChassisMass,
		Shape:    physics.Box(l.ChassisHalfExtents),
		Position: spawn,
	}, ProxyChassis, 0)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	v.Chassis = id

	wheel := l.WheelMaterial
	for _, w := range Wheels {
		id, err := v.add(e, physics.BodyDef{
			Name:     w.String(),
			Mass:     l.WheelMass,
			Shape:    physics.Sphere(l.Radius(w)),
			Material: &wheel,
			Position: spawn.Add(l.Mount(w)),
		}, ProxyWheel, l.Width(w))
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		v.Wheels[w] = id
	}
	return v, nil
}

func (v *Vehicle) add(e physics.Engine, def physics.BodyDef, kind ProxyKind, width float64) (physics.BodyID, error) {
	id, err := e.AddBody(def)
	if err != nil {
		return id, err
	}
	if def.Mass > 0 {
		v.dynamic = append(v.dynamic, len(v.proxies))
	}
	v.proxies = append(v.proxies, Proxy{
		Name:  def.Name,
		Body:  id,
		Kind:  kind,
		Shape: def.Shape,
		Width: width,
		Pose:  e.Pose(id),
	})
	return id, nil
}

// Sync copies the current pose of every dynamic body into its proxy.
func (v *Vehicle) Sync(e physics.Engine) {
	for _, i := range v.dynamic {
		v.proxies[i].Pose = e.Pose(v.proxies[i].Body)
	}
}

// Proxies returns the proxies in registration order. The slice is shared; callers must not
// modify it.
func (v *Vehicle) Proxies() []Proxy {
	return v.proxies
}

// ChassisPose returns the chassis pose as of the last Sync.
func (v *Vehicle) ChassisPose() physics.Pose {
	for _, i := range v.dynamic {
		if v.proxies[i].Body == v.Chassis {
			return v.proxies[i].Pose
		}
	}
	return physics.IdentityPose()
}
