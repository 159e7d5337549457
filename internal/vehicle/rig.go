package vehicle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rollcage/internal/config"
	"rollcage/internal/control"
	"rollcage/internal/physics"
)

var axle = mgl64.Vec3{1, 0, 0}

// Rig is the pair of hinges joining each wheel to the chassis. The positional hinge holds the
// wheel at its mount. The drive hinge sits SuspensionOffset lower with a weak force bound; it
// carries the motor on the rear wheels and the steering axis on the front ones.
type Rig struct {
	positional [4]physics.Constraint
	drive      [4]physics.Constraint
}

// NewRig adds the eight hinges for v to e and enables the rear motors.
func NewRig(e physics.Engine, v *Vehicle, t config.Rig) (*Rig, error) {
	r := &Rig{}
	drop := mgl64.Vec3{0, t.SuspensionOffset, 0}
	for _, w := range Wheels {
		mount := v.Layout.Mount(w)

		def := physics.HingeDef{
			A:      v.Chassis,
			B:      v.Wheels[w],
			PivotA: mount,
			AxisA:  axle,
			AxisB:  axle,
		}
		if w.Front() {
			def.AxisMaxForce = t.FrontAxleMaxForce
		}
		c, err := e.AddHinge(def)
		if err != nil {
			return nil, fmt.Errorf("rig %s positional hinge: %w", w, err)
		}
		r.positional[w] = c

		c, err = e.AddHinge(physics.HingeDef{
			A:        v.Chassis,
			B:        v.Wheels[w],
			PivotA:   mount.Sub(drop),
			AxisA:    axle,
			AxisB:    axle,
			MaxForce: t.DriveMaxForce,
		})
		if err != nil {
			return nil, fmt.Errorf("rig %s drive hinge: %w", w, err)
		}
		if !w.Front() {
			c.EnableMotor()
		}
		r.drive[w] = c
	}
	return r, nil
}

// Positional returns the hinge that keeps w attached.
func (r *Rig) Positional(w Wheel) physics.Constraint {
	return r.positional[w]
}

// Drive returns the motor/steering hinge of w.
func (r *Rig) Drive(w Wheel) physics.Constraint {
	return r.drive[w]
}

// SetMotorSpeed sets the target spin of w's drive hinge. A positive speed rolls the car toward -Z.
func (r *Rig) SetMotorSpeed(w Wheel, speed float64) {
	r.drive[w].SetMotorSpeed(speed)
}

// SetSteerAxis tilts the drive axis of a front wheel by the lateral component bias (positive
// turns left). Rear wheels are ignored.
func (r *Rig) SetSteerAxis(w Wheel, bias float64) {
	if !w.Front() {
		return
	}
	r.drive[w].SetAxisA(mgl64.Vec3{1, 0, -bias})
}

// Apply programs both rear motors with the same forward velocity and both front axes with the
// same steering bias.
func (r *Rig) Apply(s control.State) {
	r.SetMotorSpeed(BackLeft, s.ForwardVelocity)
	r.SetMotorSpeed(BackRight, s.ForwardVelocity)
	r.SetSteerAxis(FrontLeft, s.SteeringBias)
	r.SetSteerAxis(FrontRight, s.SteeringBias)
}
