package physics

import "math"

// Material holds the surface properties used when two bodies touch.
type Material struct {
	Name        string
	Friction    float64
	Restitution float64
}

// DefaultMaterial is used by bodies created without a material.
var DefaultMaterial = Material{Name: "default", Friction: 0.3, Restitution: 0}

// combineFriction is the geometric mean, so a frictionless surface stays frictionless.
func combineFriction(a, b Material) float64 {
	return math.Sqrt(a.Friction * b.Friction)
}

func combineRestitution(a, b Material) float64 {
	return (a.Restitution + b.Restitution) / 2
}
