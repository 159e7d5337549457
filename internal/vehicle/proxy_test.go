package vehicle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"rollcage/internal/physics"
)

func TestModelChassis(t *testing.T) {
	p := Proxy{
		Kind:  ProxyChassis,
		Shape: physics.Box(mgl64.Vec3{0.5, 0.5, 1}),
		Pose:  physics.Pose{Position: mgl64.Vec3{1, 2, 3}, Orientation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})},
	}
	// The unit cube corner (0.5, 0.5, 0.5) is the chassis corner (0.5, 0.5, 1), yawed left.
	got := mgl64.TransformCoordinate(mgl64.Vec3{0.5, 0.5, 0.5}, p.Model())
	want := p.Pose.Transform(mgl64.Vec3{0.5, 0.5, 1})
	assert.InDeltaSlice(t, want[:], got[:], 1e-9)
}

func TestModelGroundSitsOnTopFace(t *testing.T) {
	p := Proxy{Kind: ProxyGround, Shape: physics.Box(mgl64.Vec3{50, 1, 50}), Pose: physics.Pose{Position: mgl64.Vec3{0, -1, 0}}}
	got := mgl64.TransformCoordinate(mgl64.Vec3{0.5, 0, -0.5}, p.Model())
	assert.InDeltaSlice(t, []float64{50, 0, -50}, got[:], 1e-9)
}

func TestModelWheelLiesAlongAxle(t *testing.T) {
	p := Proxy{Kind: ProxyWheel, Shape: physics.Sphere(0.4), Width: 0.33, Pose: physics.IdentityPose()}
	// The top cap center of the unit cylinder ends up on the +X side.
	got := mgl64.TransformCoordinate(mgl64.Vec3{0, 0.5, 0}, p.Model())
	assert.InDeltaSlice(t, []float64{0.165, 0, 0}, got[:], 1e-9)
	rim := mgl64.TransformCoordinate(mgl64.Vec3{0.5, 0, 0}, p.Model())
	assert.InDelta(t, 0.4, rim.Len(), 1e-9)
}

func TestModelObstacle(t *testing.T) {
	p := Proxy{Kind: ProxyObstacle, Shape: physics.Cylinder(0.01, 1, 0.5), Pose: physics.Pose{Position: mgl64.Vec3{3, 0.25, 4}}}
	got := mgl64.TransformCoordinate(mgl64.Vec3{1, -0.5, 0}, p.Model())
	assert.InDeltaSlice(t, []float64{4, 0, 4}, got[:], 1e-9)
	assert.Equal(t, "jump", p.Kind.String())
}
