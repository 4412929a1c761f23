package enemy

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
)

// Variants of the enemy catalog.
const (
	Idle fsm.Variant = iota
	Dead
)

// VariantName returns the lowercase name of v.
func VariantName(v fsm.Variant) string {
	switch v {
	case Idle:
		return "idle"
	case Dead:
		return "dead"
	}
	return fmt.Sprintf("variant(%d)", v)
}

// idle stands on the ground and hurts whatever player touches it.
type idle struct{ fsm.Base }

func (*idle) Variant() fsm.Variant { return Idle }
func (*idle) Enter(*Enemy)         {}
func (*idle) Exit(*Enemy)          {}

func (*idle) Step(e *Enemy) {
	e.Gravity(e.conf.Gravity)
	e.SnapToGround(e.conf.SnapForce)
	e.Decelerate(e.conf.Friction)
}

func (*idle) OnContact(e *Enemy, c *physics.Collider) {
	if c.Tag != physics.TagPlayer {
		return
	}
	if target, ok := c.Owner.(player.Damageable); ok {
		target.ApplyDamage(e.conf.Damage, e.Position())
	}
}

// dead waits out the remove delay and takes the enemy out of the space.
type dead struct{ fsm.Base }

func (*dead) Variant() fsm.Variant { return Dead }
func (*dead) Exit(*Enemy)          {}

func (*dead) OnContact(*Enemy, *physics.Collider) {}

func (*dead) Enter(e *Enemy) {
	e.SetLateral(mgl32.Vec3{})
}

func (d *dead) Step(e *Enemy) {
	e.Gravity(e.conf.Gravity)
	if d.TimeSinceEntered() >= e.conf.RemoveDelay {
		e.remove()
	}
}
