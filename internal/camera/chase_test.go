package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"rollcage/internal/config"
	"rollcage/internal/physics"
)

func at(x, y, z float64) physics.Pose {
	return physics.Pose{Position: mgl64.Vec3{x, y, z}, Orientation: mgl64.QuatIdent()}
}

func TestTargetFollowsBodyFrame(t *testing.T) {
	ch, _ := New(config.Default().Camera, at(0, 0, 0))
	assert.Equal(t, mgl64.Vec3{5, 3, 4}, ch.Target(at(5, 1, 0)))

	// Turned half way round: the pivot is now on the -Z side.
	turned := physics.Pose{Position: mgl64.Vec3{0, 1, 0}, Orientation: mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})}
	target := ch.Target(turned)
	assert.InDeltaSlice(t, []float64{0, 3, -4}, target[:], 1e-9)
}

func TestTargetClampedToFloor(t *testing.T) {
	ch, _ := New(config.Default().Camera, at(0, 0, 0))
	// Nose up past vertical puts the pivot under the body.
	flipped := physics.Pose{Position: mgl64.Vec3{0, 0.5, 0}, Orientation: mgl64.QuatRotate(math.Pi, mgl64.Vec3{1, 0, 0})}
	target := ch.Target(flipped)
	assert.Equal(t, 1.0, target.Y())
	assert.InDelta(t, -4, target.Z(), 1e-9)
}

func TestUpdateBlends(t *testing.T) {
	ch, cam := New(config.Default().Camera, at(0, 1, 0))
	assert.Equal(t, mgl64.Vec3{0, 3, 4}, cam.Position)
	assert.Equal(t, 75.0, cam.Fovy)

	body := at(0, 1, -10)
	ch.Update(&cam, body)
	// 5% of the way from z=4 to z=-6.
	assert.InDelta(t, 3.5, cam.Position.Z(), 1e-12)
	assert.InDelta(t, 3, cam.Position.Y(), 1e-12)
	assert.Equal(t, body.Position, cam.Target)
}

func TestUpdateConverges(t *testing.T) {
	ch, cam := New(config.Default().Camera, at(0, 1, 0))
	body := at(20, 1, -30)
	for i := 0; i < 400; i++ {
		ch.Update(&cam, body)
	}
	want := ch.Target(body)
	assert.InDeltaSlice(t, want[:], cam.Position[:], 1e-6)
}

func TestCameraNeverBelowFloor(t *testing.T) {
	ch, cam := New(config.Default().Camera, at(0, 1, 0))
	dive := physics.Pose{Position: mgl64.Vec3{0, 0.2, 0}, Orientation: mgl64.QuatRotate(-math.Pi/2, mgl64.Vec3{1, 0, 0})}
	for i := 0; i < 200; i++ {
		ch.Update(&cam, dive)
		assert.GreaterOrEqual(t, cam.Position.Y(), 1.0)
	}
}
