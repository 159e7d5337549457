package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"rollcage/internal/config"
	"rollcage/internal/physics"
)

// Camera is the descriptor handed to the renderer: where the eye is and what it looks at.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	Fovy     float64
}

// Chase follows a body from a pivot fixed in the body's frame. Each Update moves the camera a
// Blend fraction of the way to the pivot, so the lag depends on the tick rate.
type Chase struct {
	Offset mgl64.Vec3
	Floor  float64
	Blend  float64
}

// New returns a chase rig and a camera already sitting at rest behind start.
func New(c config.Camera, start physics.Pose) (Chase, Camera) {
	ch := Chase{Offset: c.Offset, Floor: c.Floor, Blend: c.Blend}
	return ch, Camera{
		Position: ch.Target(start),
		Target:   start.Position,
		Up:       mgl64.Vec3{0, 1, 0},
		Fovy:     c.Fovy,
	}
}

// Target is the pivot's world position with its height clamped to Floor.
func (ch Chase) Target(body physics.Pose) mgl64.Vec3 {
	p := body.Transform(ch.Offset)
	p[1] = math.Max(p[1], ch.Floor)
	return p
}

// Update blends cam toward the pivot and aims it at the body.
func (ch Chase) Update(cam *Camera, body physics.Pose) {
	cam.Position = lerp(cam.Position, ch.Target(body), ch.Blend)
	cam.Target = body.Position
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
