package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func (k ProxyKind) String() string {
	switch k {
	case ProxyGround:
		return "ground"
	case ProxyObstacle:
		return "jump"
	case ProxyChassis:
		return "chassis"
	case ProxyWheel:
		return "wheel"
	}
	return "unknown"
}

// Model is the proxy's render transform for a unit mesh centered on the origin: a unit plane
// for the ground (placed on the top face of its box), a unit cube for the chassis, a unit
// cylinder along Y for wheels (turned onto the axle) and a unit cone for jumps.
func (p Proxy) Model() mgl64.Mat4 {
	pos := p.Pose.Position
	world := mgl64.Translate3D(pos[0], pos[1], pos[2]).Mul4(p.orientation().Mat4())
	s := p.Shape
	switch p.Kind {
	case ProxyGround:
		h := s.HalfExtents
		return world.Mul4(mgl64.Translate3D(0, h[1], 0)).Mul4(mgl64.Scale3D(2*h[0], 1, 2*h[2]))
	case ProxyWheel:
		d := 2 * s.Radius
		return world.Mul4(mgl64.HomogRotate3DZ(-math.Pi / 2)).Mul4(mgl64.Scale3D(d, p.Width, d))
	case ProxyObstacle:
		return world.Mul4(mgl64.Scale3D(s.RadiusBottom, s.Height, s.RadiusBottom))
	}
	h := s.HalfExtents
	return world.Mul4(mgl64.Scale3D(2*h[0], 2*h[1], 2*h[2]))
}

func (p Proxy) orientation() mgl64.Quat {
	if p.Pose.Orientation.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return p.Pose.Orientation
}
