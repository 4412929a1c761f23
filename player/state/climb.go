package state

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/player"
)

// PoleClimbing holds on to a pole. Sideways input orbits around it and forward input climbs.
type PoleClimbing struct {
	base
	// orbit is the angular speed around the pole in radians per second.
	orbit float32
}

func (*PoleClimbing) Variant() fsm.Variant { return player.PoleClimbing }

func (c *PoleClimbing) Enter(p *player.Player) {
	c.orbit = 0
	p.ResetJumps()
	p.ResetAirSpins()
	p.ResetAirDash()
	p.SetVelocity(mgl32.Vec3{})
	p.SetSkinOffset(p.Stats().PoleClimb.SkinOffset.Vec())
	if pole := p.Pole(); pole != nil {
		if dir, _ := pole.DirectionTo(p.Position()); dir.LenSqr() > 0 {
			p.FaceDirection(dir)
		}
	}
}

func (*PoleClimbing) Exit(p *player.Player) {
	p.ResetSkinOffset()
}

func (c *PoleClimbing) Step(p *player.Player) {
	s := p.Stats().PoleClimb
	pole := p.Pole()
	if pole == nil {
		p.States().ChangeTo(player.Fall)
		return
	}
	dt := p.Delta()
	dir, _ := pole.DirectionTo(p.Position())
	if dir.LenSqr() == 0 {
		dir = p.Forward()
	}
	p.FaceDirection(dir)

	if p.Inputs().JumpDown() {
		away := dir.Mul(-1)
		p.FaceDirection(away)
		p.DirectionalJump(away, s.JumpHeight, s.JumpDistance)
		p.States().ChangeTo(player.Fall)
		return
	}

	input := p.Inputs().MovementDirection()
	if input.X() != 0 {
		c.orbit = game.MoveTowards(c.orbit, input.X()*s.RotationTopSpeed, s.RotationAcceleration*dt)
	} else {
		c.orbit = game.MoveTowards(c.orbit, 0, s.Friction*dt)
	}
	vertical := p.VerticalVelocity()
	switch {
	case input.Z() > 0:
		vertical = game.MoveTowards(vertical, s.UpTopSpeed, s.UpAcceleration*dt)
	case input.Z() < 0:
		vertical = game.MoveTowards(vertical, -s.DownTopSpeed, s.DownAcceleration*dt)
	default:
		vertical = game.MoveTowards(vertical, 0, s.Friction*dt)
	}
	p.SetVerticalVelocity(vertical)

	if p.Grounded() && vertical <= 0 {
		p.States().ChangeTo(player.Idle)
		return
	}

	// Orbit by rotating the offset from the axis, then let the controller climb.
	distance := pole.Radius + p.Radius()
	offset := dir.Mul(-distance)
	axis, ok := game.SafeNormalize(pole.Axis)
	if !ok {
		axis = game.WorldUp
	}
	turn := mgl32.QuatRotate(c.orbit*dt, axis)
	center := pole.ClosestPoint(p.Position())
	target := center.Add(turn.Rotate(offset))
	target = pole.ClampHeight(target, p.Height()*0.5)
	p.SetLateral(mgl32.Vec3{})
	p.SetPosition(target)
}

// LedgeHanging hangs from the top of a wall. The player can shimmy sideways, drop, jump or climb
// up.
type LedgeHanging struct{ base }

func (*LedgeHanging) Variant() fsm.Variant { return player.LedgeHanging }

func (*LedgeHanging) Enter(p *player.Player) {
	p.ResetJumps()
	p.ResetAirSpins()
	p.ResetAirDash()
	p.SetVelocity(mgl32.Vec3{})
	p.SetSkinOffset(p.Stats().Ledge.SkinOffset.Vec())
	p.Inputs().ClearJumpBuffer()
}

func (*LedgeHanging) Exit(p *player.Player) {
	p.ResetSkinOffset()
}

func (l *LedgeHanging) Step(p *player.Player) {
	s := p.Stats().Ledge
	pos, up, forward, right := p.Position(), p.Up(), p.Forward(), p.Right()
	r, h := p.Radius(), p.Height()
	dt := p.Delta()

	sideOrigin := pos.Add(up.Mul(h*0.5 - s.SideHeightOffset))
	sideDistance := r + s.SideMaxDistance
	side, onWall := p.SphereCastFrom(sideOrigin, s.SideCollisionRadius, forward, sideDistance, s.Layers)
	topOrigin := pos.Add(up.Mul(h*0.5 + s.MaxDownwardDistance)).Add(forward.Mul(r + s.MaxForwardDistance))
	top, onLedge := p.Raycast(topOrigin, up.Mul(-1), h, s.Layers)
	if !onWall || !onLedge {
		p.States().ChangeTo(player.Fall)
		return
	}
	p.FaceDirection(side.Normal.Mul(-1))

	// Keep the top of the capsule level with the ledge.
	ledge := top.Point.Dot(up) - h*0.5
	p.SetPosition(pos.Add(up.Mul(ledge - pos.Dot(up))))
	p.SetVerticalVelocity(0)

	input := p.Inputs().MovementDirection()
	if x := input.X(); x != 0 {
		sign := math32.Copysign(1, x)
		probe := sideOrigin.Add(right.Mul(sign * r))
		if _, ok := p.SphereCastFrom(probe, s.SideCollisionRadius, forward, sideDistance, s.Layers); ok {
			target := right.Mul(sign * s.MovementTopSpeed)
			p.SetLateral(game.MoveTowardsVec(p.Lateral(), target, s.MovementAcceleration*dt))
		} else {
			p.SetLateral(mgl32.Vec3{})
		}
	} else {
		p.SetLateral(game.MoveTowardsVec(p.Lateral(), mgl32.Vec3{}, s.MovementFriction*dt))
	}

	switch {
	case p.Inputs().ReleaseLedgeDown():
		p.States().ChangeTo(player.Fall)
	case p.Inputs().JumpDown():
		p.ForceJump(p.Stats().Jump.MaxHeight)
	case input.Z() > 0 && s.CanClimb && l.roomAbove(p, top.Point):
		p.States().ChangeTo(player.LedgeClimbing)
	}
}

// roomAbove reports whether the capsule fits standing on the ledge at point.
func (*LedgeHanging) roomAbove(p *player.Player, point mgl32.Vec3) bool {
	s := p.Stats().Ledge
	r, up := p.Radius(), p.Up()
	origin := point.Add(up.Mul(r + game.DefaultContactOffset))
	_, blocked := p.SphereCastFrom(origin, r, up, max(p.OriginalHeight()-2*r, 0), s.ClimbingLayers)
	return !blocked
}

// LedgeClimbing pulls the player up onto the ledge it hangs from. Collisions are off while it
// climbs.
type LedgeClimbing struct {
	base
	start, target mgl32.Vec3
}

func (*LedgeClimbing) Variant() fsm.Variant { return player.LedgeClimbing }

func (c *LedgeClimbing) Enter(p *player.Player) {
	s := p.Stats().Ledge
	up, forward := p.Up(), p.Forward()
	c.start = p.Position()
	c.target = c.start.
		Add(up.Mul(p.OriginalHeight() + game.DefaultContactOffset)).
		Add(forward.Mul(2*p.Radius() + s.MaxForwardDistance))
	p.SetVelocity(mgl32.Vec3{})
	p.SetSkinOffset(s.ClimbingSkinOffset.Vec())
	p.UseCustomCollision(true)
	p.Events.LedgeClimbing.Fire()
}

func (*LedgeClimbing) Exit(p *player.Player) {
	p.UseCustomCollision(false)
	p.ResetSkinOffset()
}

func (c *LedgeClimbing) Step(p *player.Player) {
	s := p.Stats().Ledge
	t := float32(1)
	if s.ClimbingDuration > 0 {
		t = game.Clamp01(c.TimeSinceEntered() / s.ClimbingDuration)
	}
	// Rise during the first half, move in during the second.
	up := p.Up()
	delta := c.target.Sub(c.start)
	rise := up.Mul(delta.Dot(up))
	in := delta.Sub(rise)
	p.SetVelocity(mgl32.Vec3{})
	p.SetPosition(c.start.Add(rise.Mul(game.Clamp01(t * 2))).Add(in.Mul(game.Clamp01(t*2 - 1))))
	if t >= 1 {
		p.States().ChangeTo(player.Idle)
	}
}
