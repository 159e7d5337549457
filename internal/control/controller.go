package control

import (
	"math"

	"rollcage/internal/config"
)

// State is the pair of control signals programmed into the rig each tick. SteeringBias is
// positive to the left.
type State struct {
	ForwardVelocity float64
	SteeringBias    float64
}

// Controller turns held keys into State. Increments are per tick, not per second.
type Controller struct {
	MaxVelocity    float64
	Increment      float64
	CoastIncrement float64
	SteerIncrement float64
	AutoCenter     bool
}

// New returns a controller for the drive and steering sections of a tuning.
func New(drive config.Drive, steering config.Steering) Controller {
	return Controller{
		MaxVelocity:    drive.MaxVelocity,
		Increment:      drive.Increment,
		CoastIncrement: drive.CoastIncrement,
		SteerIncrement: steering.Increment,
		AutoCenter:     steering.AutoCenter,
	}
}

// Update advances s by one tick.
//
// Brake pulls the velocity toward zero by Increment and suppresses thrust. Forward and backward
// add and subtract Increment, cancelling when both are held. With neither held the velocity
// coasts toward zero by CoastIncrement. Zero is never crossed by braking or coasting.
//
// Left and right shift the steering bias by SteerIncrement. Without AutoCenter a released
// bias keeps its value.
func (c Controller) Update(keys *KeyState, s *State) {
	fwd, back := keys.Held(Forward), keys.Held(Backward)
	v := s.ForwardVelocity
	switch {
	case keys.Held(Brake):
		v = approachZero(v, c.Increment)
	case fwd || back:
		if fwd {
			v += c.Increment
		}
		if back {
			v -= c.Increment
		}
	default:
		v = approachZero(v, c.CoastIncrement)
	}
	s.ForwardVelocity = clamp(v, c.MaxVelocity)

	left, right := keys.Held(Left), keys.Held(Right)
	bias := s.SteeringBias
	if left {
		bias += c.SteerIncrement
	}
	if right {
		bias -= c.SteerIncrement
	}
	if !left && !right && c.AutoCenter {
		bias = approachZero(bias, c.SteerIncrement)
	}
	s.SteeringBias = clamp(bias, 1)
}

func approachZero(v, step float64) float64 {
	if math.Abs(v) <= step {
		return 0
	}
	if v > 0 {
		return v - step
	}
	return v + step
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
