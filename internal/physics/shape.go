package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind selects the collision geometry of a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCylinder
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	}
	return "unknown"
}

// Shape is the collision geometry of a body, centered on the body's position.
// Only the fields for Kind are read. Cylinders stand along local Y; a RadiusTop of (almost)
// zero makes a cone. Collision shapes are approximations and need not match the drawn mesh:
// a static cone collides as a spherical cap with the same base and height.
type Shape struct {
	Kind         ShapeKind
	HalfExtents  mgl64.Vec3 // box
	Radius       float64    // sphere
	RadiusTop    float64    // cylinder
	RadiusBottom float64    // cylinder
	Height       float64    // cylinder
}

// Box returns a box shape with the given half extents.
func Box(halfExtents mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// Sphere returns a sphere shape.
func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Cylinder returns a (possibly tapered) cylinder along local Y, centered at half height.
func Cylinder(radiusTop, radiusBottom, height float64) Shape {
	return Shape{Kind: ShapeCylinder, RadiusTop: radiusTop, RadiusBottom: radiusBottom, Height: height}
}

func (s Shape) validate() error {
	switch s.Kind {
	case ShapeBox:
		if s.HalfExtents[0] <= 0 || s.HalfExtents[1] <= 0 || s.HalfExtents[2] <= 0 {
			return ErrInvalidShape
		}
	case ShapeSphere:
		if s.Radius <= 0 {
			return ErrInvalidShape
		}
	case ShapeCylinder:
		if s.Height <= 0 || s.RadiusTop < 0 || s.RadiusBottom < 0 || (s.RadiusTop == 0 && s.RadiusBottom == 0) {
			return ErrInvalidShape
		}
	default:
		return ErrInvalidShape
	}
	return nil
}

// cone reports whether the cylinder tapers.
func (s Shape) cone() bool {
	return math.Abs(s.RadiusTop-s.RadiusBottom) > epsilon
}

// coneCap returns the sphere whose cap above the cone's base has the cone's base radius and
// height, and the height of the sphere's center relative to the cone's center. ODE has no cone
// geometry; the cap stands in for it.
func (s Shape) coneCap() (radius, offset float64) {
	r := math.Max(s.RadiusTop, s.RadiusBottom)
	h := s.Height
	radius = (r*r + h*h) / (2 * h)
	return radius, h/2 - radius
}
