package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Box(mgl64.Vec3{1, 2, 3}).validate())
	assert.NoError(t, Sphere(0.5).validate())
	assert.NoError(t, Cylinder(0.01, 1, 0.5).validate())

	assert.ErrorIs(t, Sphere(0).validate(), ErrInvalidShape)
	assert.ErrorIs(t, Cylinder(0, 0, 1).validate(), ErrInvalidShape)
	assert.ErrorIs(t, Cylinder(1, 1, 0).validate(), ErrInvalidShape)
	assert.ErrorIs(t, Shape{Kind: ShapeKind(9)}.validate(), ErrInvalidShape)
}

func TestConeCapMatchesBaseAndApex(t *testing.T) {
	cone := Cylinder(0.01, 1, 0.5)
	assert.True(t, cone.cone())
	assert.False(t, Cylinder(1, 1, 2).cone())

	r, offset := cone.coneCap()
	assert.InDelta(t, 1.25, r, 1e-12)
	assert.InDelta(t, -1, offset, 1e-12)

	// apex at the cone's top, rim on the cone's base circle
	assert.InDelta(t, 0.25, offset+r, 1e-12)
	assert.InDelta(t, r, math.Hypot(1, -0.25-offset), 1e-12)
}

func TestGeomFrame(t *testing.T) {
	offset, turn := geomFrame(Cylinder(0.01, 1, 0.5))
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, offset)
	assert.Equal(t, mgl64.QuatIdent(), turn)

	// straight cylinders stand their Z axis up
	_, turn = geomFrame(Cylinder(1, 1, 2))
	up := turn.Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDeltaSlice(t, []float64{0, -1, 0}, up[:], 1e-12)
}

func TestCombineMaterials(t *testing.T) {
	a := Material{Friction: 0.25, Restitution: 0.25}
	b := Material{Friction: 0.64, Restitution: 0.75}
	assert.InDelta(t, 0.4, combineFriction(a, b), 1e-12)
	assert.InDelta(t, 0.5, combineRestitution(a, b), 1e-12)
	assert.InDelta(t, math.Sqrt(0.3*0.25), combineFriction(DefaultMaterial, a), 1e-12)
}
