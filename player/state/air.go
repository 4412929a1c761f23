package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
)

// Fall steers the player through the air until it lands.
type Fall struct{ base }

func (*Fall) Variant() fsm.Variant { return player.Fall }

func (f *Fall) Step(p *player.Player) {
	if p.Grounded() {
		land(p)
		return
	}
	p.Gravity()
	p.SnapToGround()
	p.FaceDirectionSmooth(p.Lateral())
	p.AccelerateToInput()
	airAbilities(p, f)
	if left(p, f) {
		return
	}
	p.HomingDash()
}

func (f *Fall) OnContact(p *player.Player, c *physics.Collider) {
	wallAbilities(p, f, c)
}

// airAbilities tries every ability reachable from the air, stopping at the first that changes
// the state.
func airAbilities(p *player.Player, s fsm.State[*player.Player]) {
	for _, ability := range []func(){p.Jump, p.Spin, p.AirDive, p.StompAttack, p.LedgeGrab, p.Dash, p.Glide} {
		ability()
		if left(p, s) {
			return
		}
	}
}

func wallAbilities(p *player.Player, s fsm.State[*player.Player], c *physics.Collider) {
	p.WallDrag(c)
	if left(p, s) {
		return
	}
	p.GrabPole(c)
	if left(p, s) {
		return
	}
	p.WallRun()
}

// Spin is a short spin attack. Spinning in the air gives a small upward boost.
type Spin struct{ base }

func (*Spin) Variant() fsm.Variant { return player.Spin }

func (*Spin) Enter(p *player.Player) {
	if !p.Grounded() {
		p.SetVerticalVelocity(p.Stats().Spin.AirUpwardForce)
	}
}

func (s *Spin) Step(p *player.Player) {
	p.Gravity()
	p.SnapToGround()
	p.AccelerateToInput()
	if s.TimeSinceEntered() < p.Stats().Spin.Duration {
		return
	}
	if p.Grounded() {
		p.States().ChangeTo(player.Idle)
		return
	}
	p.States().ChangeTo(player.Fall)
}

// AirDive throws the player forward. Once it lands it slides on its belly, steered sideways by
// the input.
type AirDive struct {
	base
	leaped bool
}

func (*AirDive) Variant() fsm.Variant { return player.AirDive }

func (d *AirDive) Enter(p *player.Player) {
	d.leaped = false
	p.SetVerticalVelocity(0)
	p.SetLateral(p.LocalForward().Mul(p.Stats().AirDive.ForwardForce))
}

func (d *AirDive) Step(p *player.Player) {
	s := p.Stats().AirDive
	p.Gravity()
	if !p.Grounded() {
		p.FaceDirectionSmooth(p.Lateral())
		return
	}
	if !d.leaped && s.GroundLeapHeight > 0 {
		d.leaped = true
		p.SetVerticalVelocity(s.GroundLeapHeight)
		return
	}

	if s.ApplySlopeFactor {
		p.SlopeFactor(s.SlopeUpwardForce, s.SlopeDownwardForce)
	}
	side := p.Inputs().MovementDirection().X()
	if side != 0 {
		turn := mgl32.QuatRotate(mgl32.DegToRad(side*s.RotationSpeed*p.Delta()), p.Up())
		p.SetLateral(turn.Rotate(p.Lateral()))
	}
	if !p.OnSlopingGround() {
		p.Decelerate(s.Friction)
	}
	p.FaceDirection(p.Lateral())

	p.Jump()
	if left(p, d) {
		return
	}
	if p.Lateral().LenSqr() <= 0 {
		p.States().ChangeTo(player.Idle)
	}
}

// Stomp phases.
const (
	stompHover = iota
	stompFalling
	stompLanded
)

// Stomp hovers for a moment, slams down and leaps off the ground once it lands.
type Stomp struct {
	base
	phase    int
	landedAt float32
}

func (*Stomp) Variant() fsm.Variant { return player.Stomp }

func (s *Stomp) Enter(p *player.Player) {
	s.phase = stompHover
	p.SetVelocity(mgl32.Vec3{})
	p.Events.StompStarted.Fire()
}

func (s *Stomp) Step(p *player.Player) {
	stats := p.Stats().Stomp
	switch s.phase {
	case stompHover:
		p.SetVerticalVelocity(0)
		if s.TimeSinceEntered() >= stats.AirTime {
			s.phase = stompFalling
			p.SetVerticalVelocity(-stats.DownwardForce)
			p.Events.StompFalling.Fire()
		}
	case stompFalling:
		if !p.Grounded() {
			p.SetVerticalVelocity(-stats.DownwardForce)
			return
		}
		s.phase = stompLanded
		s.landedAt = s.Now()
		p.Events.StompLanding.Fire()
	case stompLanded:
		if s.Now()-s.landedAt < stats.GroundTime {
			return
		}
		p.Events.StompEnding.Fire()
		if stats.GroundLeapHeight > 0 {
			p.SetVerticalVelocity(stats.GroundLeapHeight)
			p.States().ChangeTo(player.Fall)
			return
		}
		p.States().ChangeTo(player.Idle)
	}
}

// Backflip is a high jump backwards with its own gravity and steering.
type Backflip struct{ base }

func (*Backflip) Variant() fsm.Variant { return player.Backflip }

func (*Backflip) Enter(p *player.Player) {
	p.SetJumps(1)
	p.Events.Jump.Fire()
	if p.Stats().Backflip.LockMovement {
		p.Inputs().LockMovementDirection(0)
	}
}

func (b *Backflip) Step(p *player.Player) {
	p.Entity.Gravity(p.Stats().Backflip.Gravity)
	p.BackflipAccelerate()
	if p.Grounded() {
		p.SetLateral(mgl32.Vec3{})
		p.States().ChangeTo(player.Idle)
		return
	}
	if p.VerticalVelocity() >= 0 {
		return
	}
	for _, ability := range []func(){p.Spin, p.AirDive, p.StompAttack, p.Glide} {
		ability()
		if left(p, b) {
			return
		}
	}
}

// Gliding slows the fall down to a maximum speed while the glide button is held.
type Gliding struct{ base }

func (*Gliding) Variant() fsm.Variant { return player.Gliding }

func (*Gliding) Enter(p *player.Player) {
	p.Events.GlidingStart.Fire()
}

func (*Gliding) Exit(p *player.Player) {
	p.Events.GlidingStop.Fire()
}

func (g *Gliding) Step(p *player.Player) {
	s := p.Stats()
	vertical := p.VerticalVelocity() - s.Glide.Gravity*p.Delta()
	p.SetVerticalVelocity(max(vertical, -s.Glide.MaxFallSpeed))

	dir, _ := p.InputDirection()
	p.Entity.Accelerate(dir, s.Glide.TurningDrag, s.Motion.AirAcceleration, s.Motion.TopSpeed, 0, 1)
	p.Entity.FaceDirectionSmooth(p.Lateral(), s.Glide.RotationSpeed)

	p.LedgeGrab()
	if left(p, g) {
		return
	}
	if p.Grounded() {
		p.States().ChangeTo(player.Idle)
		return
	}
	if !p.Inputs().Glide() {
		p.States().ChangeTo(player.Fall)
	}
}

func (g *Gliding) OnContact(p *player.Player, c *physics.Collider) {
	p.WallDrag(c)
}

// boostFallDelay is how long a boost flies before it can fall into other abilities.
const boostFallDelay = 0.5

// Boosting is the launch off a wall run or an upward booster. It behaves like a fall, but another
// wall can be run on right away.
type Boosting struct{ base }

func (*Boosting) Variant() fsm.Variant { return player.Boosting }

func (b *Boosting) Step(p *player.Player) {
	p.Gravity()
	p.SnapToGround()
	p.FaceDirectionSmooth(p.Lateral())
	p.AccelerateToInput()

	velocity := p.Velocity()
	falling := velocity.Dot(p.Up()) < 0 && b.TimeSinceEntered() > boostFallDelay
	if falling {
		airAbilities(p, b)
		if left(p, b) {
			return
		}
	}
	if p.Grounded() {
		p.States().ChangeTo(player.Walk)
		return
	}
	_, blocked := p.SphereCast(p.Forward(), p.Radius()+game.GroundOffset, 0)
	if blocked || velocity.Len() < 1 {
		p.States().ChangeTo(player.Fall)
	}
}

func (*Boosting) OnContact(p *player.Player, _ *physics.Collider) {
	p.WallRun()
}
