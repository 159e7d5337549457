package vehicle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rollcage/internal/config"
	"rollcage/internal/physics"
)

// Wheel names one of the four wheels. The car faces -Z, so left is -X.
type Wheel int

const (
	FrontLeft Wheel = iota
	FrontRight
	BackLeft
	BackRight
)

// Wheels lists every wheel in registration order.
var Wheels = [4]Wheel{FrontLeft, FrontRight, BackLeft, BackRight}

func (w Wheel) String() string {
	switch w {
	case FrontLeft:
		return "front-left"
	case FrontRight:
		return "front-right"
	case BackLeft:
		return "back-left"
	case BackRight:
		return "back-right"
	}
	return fmt.Sprintf("Wheel(%d)", int(w))
}

// Front reports whether w steers.
func (w Wheel) Front() bool {
	return w == FrontLeft || w == FrontRight
}

func (w Wheel) left() bool {
	return w == FrontLeft || w == BackLeft
}

// Layout holds the geometric constants of the car and the ground it is placed on.
type Layout struct {
	ChassisHalfExtents mgl64.Vec3
	ChassisMass        float64
	SpawnHeight        float64
	WheelMass          float64
	FrontRadius        float64
	RearRadius         float64
	FrontWidth         float64
	RearWidth          float64
	Track              float64
	FrontAxle          float64
	RearAxle           float64
	MountHeight        float64
	WheelMaterial      physics.Material
	GroundMaterial     physics.Material
	GroundHalfSize     float64
}

// LayoutFrom builds a Layout from the vehicle section of a tuning and the terrain extent.
func LayoutFrom(v config.Vehicle, t config.Terrain) Layout {
	return Layout{
		ChassisHalfExtents: v.ChassisHalfExtents,
		ChassisMass:        v.ChassisMass,
		SpawnHeight:        v.SpawnHeight,
		WheelMass:          v.WheelMass,
		FrontRadius:        v.FrontWheelRadius,
		RearRadius:         v.RearWheelRadius,
		FrontWidth:         v.FrontWheelWidth,
		RearWidth:          v.RearWheelWidth,
		Track:              v.Track,
		FrontAxle:          v.FrontAxle,
		RearAxle:           v.RearAxle,
		MountHeight:        v.MountHeight,
		WheelMaterial:      physics.Material{Name: "wheel", Friction: v.WheelMaterial.Friction, Restitution: v.WheelMaterial.Restitution},
		GroundMaterial:     physics.Material{Name: "ground", Friction: v.GroundMaterial.Friction, Restitution: v.GroundMaterial.Restitution},
		GroundHalfSize:     t.HalfSize,
	}
}

// Mount is the wheel's mounting point in the chassis frame.
func (l Layout) Mount(w Wheel) mgl64.Vec3 {
	x := l.Track
	if w.left() {
		x = -x
	}
	z := l.RearAxle
	if w.Front() {
		z = l.FrontAxle
	}
	return mgl64.Vec3{x, l.MountHeight, z}
}

// Radius is the wheel's collision radius.
func (l Layout) Radius(w Wheel) float64 {
	if w.Front() {
		return l.FrontRadius
	}
	return l.RearRadius
}

// Width is the drawn width of the wheel.
func (l Layout) Width(w Wheel) float64 {
	if w.Front() {
		return l.FrontWidth
	}
	return l.RearWidth
}
