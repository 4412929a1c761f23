package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
)

// Dash bursts forward for a fixed time, ignoring gravity.
type Dash struct {
	base
	initialSpeed float32
}

func (*Dash) Variant() fsm.Variant { return player.Dash }

func (d *Dash) Enter(p *player.Player) {
	d.initialSpeed = p.Lateral().Len()
	p.SetVerticalVelocity(0)
	p.SetLateral(p.LocalForward().Mul(p.Stats().Dash.Force))
	p.Events.DashStarted.Fire()
}

func (d *Dash) Exit(p *player.Player) {
	top := max(d.initialSpeed, p.Stats().Motion.TopSpeed)
	p.SetLateral(game.ClampMagnitude(p.Lateral(), top))
	p.Events.DashEnded.Fire()
}

func (d *Dash) Step(p *player.Player) {
	s := p.Stats().Dash
	if s.SnapToGroundWhenDashing {
		p.SnapToGround()
	}
	p.Jump()
	if left(p, d) {
		return
	}
	if d.TimeSinceEntered() <= s.Duration {
		return
	}
	if p.Grounded() {
		p.States().ChangeTo(player.Walk)
		return
	}
	p.States().ChangeTo(player.Fall)
}

func (d *Dash) OnContact(p *player.Player, c *physics.Collider) {
	p.WallDrag(c)
	if left(p, d) {
		return
	}
	p.GrabPole(c)
}

// homingReach is how close the homing dash has to get to a target to hit it.
const homingReach = 0.1

// railReachOffset is added to the radius when a homing dash reaches a rail.
const railReachOffset = 0.5

// HomingDash flies straight at the selected target. The player cannot be hurt on the way.
type HomingDash struct {
	base
	destination mgl32.Vec3
}

func (*HomingDash) Variant() fsm.Variant { return player.HomingDash }

func (h *HomingDash) Enter(p *player.Player) {
	p.SetCanTakeDamage(false)
	h.destination = p.InitialHomingTargetPosition()
}

func (*HomingDash) Exit(p *player.Player) {
	p.SetCanTakeDamage(true)
}

func (h *HomingDash) Step(p *player.Player) {
	s := p.Stats().Homing
	if h.TimeSinceEntered() > s.MaxDuration {
		p.States().ChangeTo(player.Fall)
		return
	}

	// Rails keep the point picked on selection; anything else is chased.
	rail := p.HomingSpline()
	if target := p.HomingTarget(); rail == nil && target != nil {
		h.destination = target.Position()
	}
	head := h.destination.Sub(p.Position())
	distance := head.Len()

	if rail != nil && distance <= p.Radius()+railReachOffset {
		p.EnterRail(rail)
		return
	}
	dir, ok := game.SafeNormalize(head)
	if rail == nil && distance <= homingReach || !ok {
		h.recover(p)
		return
	}

	speed := s.Force
	if dt := p.Delta(); dt > 0 {
		speed = min(speed, distance/dt)
	}
	p.SetVelocity(dir.Mul(speed))
	p.FaceDirection(dir)
}

// OnEnemyContact damages the enemy the dash runs into and bounces off it.
func (h *HomingDash) OnEnemyContact(p *player.Player, enemy player.Damageable) {
	p.SetPosition(p.Position().Sub(p.Forward().Mul(game.DefaultContactOffset)))
	enemy.ApplyDamage(p.Stats().Homing.Damage, p.Position())
	h.recover(p)
}

func (*HomingDash) recover(p *player.Player) {
	p.SetLateral(mgl32.Vec3{})
	p.SetVerticalVelocity(p.Stats().Homing.RecoverForce)
	p.States().ChangeTo(player.HomingDashTrick)
}

// HomingDashTrick is the bounce after a homing dash hit. It keeps the player invincible for a
// moment and allows chaining into another dash.
type HomingDashTrick struct{ base }

func (*HomingDashTrick) Variant() fsm.Variant { return player.HomingDashTrick }

func (*HomingDashTrick) Enter(p *player.Player) {
	p.SetCanTakeDamage(false)
}

func (*HomingDashTrick) Exit(p *player.Player) {
	p.SetCanTakeDamage(true)
}

func (t *HomingDashTrick) Step(p *player.Player) {
	s := p.Stats()
	if t.TimeSinceEntered() > s.Homing.TrickInvincibility {
		p.SetCanTakeDamage(true)
	}
	p.Entity.Gravity(s.Homing.TrickGravity)
	p.SnapToGround()
	p.FaceDirectionSmooth(p.Lateral())
	p.AccelerateToInput()

	p.Roll()
	if left(p, t) {
		return
	}
	airAbilities(p, t)
	if left(p, t) {
		return
	}
	p.HomingDash()
	if left(p, t) {
		return
	}
	if p.Grounded() {
		p.States().ChangeTo(player.Idle)
	}
}
