package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/physics"
)

// ceilingDot is how far a hit normal has to face down for the hit to count as a ceiling.
const ceilingDot = -0.7

// Update runs one tick of the entity: re-orientation to the attached gravity field, the ground
// sweep, the driver's step, the collide-and-slide move and finally the contacts of the tick. It
// does nothing while the clock is paused.
func (e *Entity) Update(d Driver) {
	if e.env.Clock.Paused() {
		return
	}
	e.handleGravityField()
	e.handleGround()
	if d != nil {
		d.Step()
	}
	e.handleController()
	e.handleContacts(d)
	e.record()
}

// handleGravityField turns the entity to the up of its field at the current position. Fields that
// rotate velocity carry the momentum around with the turn.
func (e *Entity) handleGravityField() {
	if e.field == nil {
		return
	}
	up, ok := e.field.UpDirectionAt(e.position)
	if !ok {
		return
	}
	e.setUp(up, e.field.RotateVelocity)
}

// handleController moves the capsule by velocity·dt.
func (e *Entity) handleController() {
	dt := e.Delta()
	start := e.position
	e.contacts = e.contacts[:0]

	motion := e.Velocity().Mul(dt)
	if e.customCollision || e.env.Space == nil {
		e.position = e.position.Add(motion)
	} else {
		e.slide(motion)
		if e.snapForce > 0 && e.grounded && e.vertical <= 0 {
			e.stick(e.snapForce * dt)
		}
	}
	e.snapForce = 0
	e.positionDelta = e.position.Sub(start).Len()
	e.syncCollider()
}

// slide moves the capsule along motion, sliding over whatever it hits for a bounded number of
// iterations.
func (e *Entity) slide(motion mgl32.Vec3) {
	skin := e.conf.SkinWidth
	for range game.MaxSlideIterations {
		dir, ok := game.SafeNormalize(motion)
		if !ok {
			return
		}
		dist := motion.Len()
		hit, ok := e.capsuleCast(dir, dist+skin)
		if !ok || e.passThrough(hit) {
			e.position = e.position.Add(motion)
			return
		}
		e.addContact(hit.Collider)

		travel := max(hit.Distance-skin, 0)
		e.position = e.position.Add(dir.Mul(travel))

		normal := hit.Normal
		if normal.Dot(e.up) < ceilingDot && e.vertical > 0 {
			e.vertical = 0
		}
		if game.Angle(normal, e.up) >= e.conf.SlopeLimit {
			// Steep surfaces block motion but never lift the capsule.
			if flat, ok := game.SafeNormalize(game.ProjectOnPlane(normal, e.up)); ok {
				normal = flat
			}
		}
		remaining := dir.Mul(dist - travel)
		motion = game.ProjectOnPlane(remaining, normal)
	}
}

// passThrough reports whether the controller ignores hit: the rail an entity grinds on, and low
// edges while grounded, which the ground sweep then steps onto.
func (e *Entity) passThrough(hit physics.Hit) bool {
	if e.onRails && hit.Tag() == physics.TagRail {
		return true
	}
	return e.grounded && e.IsPointUnderStep(hit.Point) && game.Angle(hit.Normal, e.up) >= e.conf.SlopeLimit &&
		e.Feet().Sub(hit.Point).Dot(e.up) < 0
}

// stick pulls a grounded capsule down by at most distance, stopping on contact.
func (e *Entity) stick(distance float32) {
	down := e.up.Mul(-1)
	hit, ok := e.capsuleCast(down, distance+e.conf.SkinWidth)
	if !ok {
		e.position = e.position.Add(down.Mul(distance))
		return
	}
	e.position = e.position.Add(down.Mul(max(hit.Distance-e.conf.SkinWidth, 0)))
}

func (e *Entity) addContact(c *physics.Collider) {
	if c == nil {
		return
	}
	for _, seen := range e.contacts {
		if seen.ID == c.ID {
			return
		}
	}
	e.contacts = append(e.contacts, c)
}

// handleContacts forwards every collider touching the capsule this tick to d, once each, in order
// of distance. Triggers are included.
func (e *Entity) handleContacts(d Driver) {
	radius := e.conf.Radius + e.conf.SkinWidth*2
	for _, origin := range e.spheres() {
		for _, c := range e.Overlap(origin, radius, 0) {
			e.addContact(c)
		}
	}
	if d == nil {
		return
	}
	for _, c := range e.contacts {
		d.OnContact(c)
	}
}

// Contacts returns the colliders touched on the last tick.
func (e *Entity) Contacts() []*physics.Collider {
	return e.contacts
}

// Move sweeps the capsule by motion outside of the regular tick, for pushes that are not part of
// the velocity.
func (e *Entity) Move(motion mgl32.Vec3) {
	if e.env.Space == nil {
		e.position = e.position.Add(motion)
	} else {
		e.slide(motion)
	}
	e.syncCollider()
}

func (e *Entity) record() {
	if !e.grounded && !e.onRails && e.vertical < 0 {
		e.fallDuration += e.Delta()
	} else if e.vertical > 0 {
		e.fallDuration = 0
	}
	_ = e.history.Append(HistoricalPosition{
		Frame:    e.env.Clock.Frame(),
		Position: e.position,
		Velocity: e.Velocity(),
		Grounded: e.grounded,
	})
}
