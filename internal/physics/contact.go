package physics

import (
	"github.com/ianremmler/ode"
)

// maxContacts is how many points one geom pair may touch at per substep. Four covers a box
// face resting on a box.
const maxContacts = 4

// near is the space collision callback. It turns every touching point of a pair into a contact
// joint for the coming substep. Bodies joined by a hinge pass through each other.
func (w *World) near(_ interface{}, g1, g2 ode.Geom) {
	b1, b2 := g1.Body(), g2.Body()
	if b1 == 0 && b2 == 0 {
		return
	}
	if b1 != 0 && b2 != 0 && b1.Connected(b2) {
		return
	}
	points := g1.Collide(g2, maxContacts, 0)
	if len(points) == 0 {
		return
	}

	m1, m2 := geomMaterial(g1), geomMaterial(g2)
	mu := combineFriction(m1, m2)
	bounce := combineRestitution(m1, m2)
	for _, p := range points {
		c := ode.NewContact()
		c.Surface.Mode = 0
		c.Surface.Mu = mu
		if bounce > 0 {
			// approach speeds under two substeps of gravity do not bounce
			c.Surface.Mode = ode.BounceCtParam
			c.Surface.Bounce = bounce
			c.Surface.BounceVel = 2 * w.gravity.Len() * w.h
		}
		c.Geom = p
		j := w.world.NewContactJoint(w.contacts, c)
		j.Attach(b1, b2)
	}
}

func geomMaterial(g ode.Geom) Material {
	if b, ok := g.Data().(*body); ok {
		return b.material
	}
	return DefaultMaterial
}
