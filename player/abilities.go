package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/physics"
)

// Wall angles a wall run accepts, in degrees from the current world up.
const (
	minWallRunAngle = 60
	maxWallRunAngle = 120
)

// Jump jumps when the jump button is pressed and a jump is available: from the ground or rails,
// within the coyote window after walking off a ledge, or as one of the remaining multi jumps. A
// released button cuts a ground jump short.
func (p *Player) Jump() {
	s := p.Stats().Jump
	if !s.CanJump {
		return
	}
	canMultiJump := p.jumpCounter > 0 && p.jumpCounter < s.MultiJumps
	canCoyoteJump := p.jumpCounter == 0 && p.Now() < p.LastGroundTime()+s.CoyoteThreshold
	grounded := p.Grounded() || p.OnRails()

	if !p.holding && (grounded || canMultiJump || canCoyoteJump) && p.inputs.JumpDown() {
		p.jumpedFromGround = grounded || canCoyoteJump
		p.ForceJump(s.MaxHeight)
	}

	if p.inputs.JumpUp() && p.jumpedFromGround && p.VerticalVelocity() > s.MinHeight {
		p.SetVerticalVelocity(s.MinHeight)
	}
}

// ForceJump jumps with the given upward speed regardless of the jump rules.
func (p *Player) ForceJump(height float32) {
	p.jumpCounter++
	p.SetVerticalVelocity(height)
	p.states.ChangeTo(Fall)
	p.Events.Jump.Fire()
}

// DirectionalJump jumps away along dir, counting as a jump.
func (p *Player) DirectionalJump(dir mgl32.Vec3, height, distance float32) {
	p.jumpCounter++
	p.SetVerticalVelocity(height)
	p.SetLateral(dir.Mul(distance))
	p.Events.Jump.Fire()
}

func (p *Player) ResetJumps() {
	p.jumpCounter = 0
	p.jumpedFromGround = false
}

func (p *Player) SetJumps(amount int) { p.jumpCounter = amount }
func (p *Player) ResetAirSpins()      { p.airSpinCounter = 0 }
func (p *Player) ResetAirDash()       { p.airDashCounter = 0 }

// Fall moves an airborne player to the Fall state.
func (p *Player) Fall() {
	if p.Grounded() {
		return
	}
	if p.Stats().Roll.UnrollWhenFalling || !p.states.IsCurrentOfType(Rolling) {
		p.states.ChangeTo(Fall)
	}
}

// Roll curls the player up when fast enough on the ground, or anywhere in the air if allowed.
func (p *Player) Roll() {
	s := p.Stats().Roll
	if !s.CanRoll || p.holding || !p.inputs.RollDown() {
		return
	}
	if p.Grounded() && p.Lateral().Len() > s.MinSpeedToRoll || s.CanRollOnAir {
		p.states.ChangeTo(Rolling)
	}
}

// RollCharge starts charging a roll from a near standstill.
func (p *Player) RollCharge() {
	s := p.Stats().RollCharge
	if !s.CanRollCharge || p.holding || !p.Grounded() || !p.inputs.RollCharge() {
		return
	}
	if s.RequiresCrouch && !p.states.IsCurrentOfType(Crouch) {
		return
	}
	if p.Lateral().Len() < s.MaxSpeedToStart {
		p.states.ChangeTo(RollCharge)
	}
}

// Uncurl leaves a rolling state once the roll button is released, or right away if forced.
func (p *Player) Uncurl(forced bool) {
	if !p.states.IsCurrentOfType(Rolling) {
		return
	}
	if !forced && p.inputs.RollCharge() {
		return
	}
	if p.Grounded() {
		p.states.ChangeTo(Idle)
	} else {
		p.states.ChangeTo(Fall)
	}
}

// Crouch crouches a grounded player holding the crouch button.
func (p *Player) Crouch() {
	s := p.Stats().Crouch
	if !s.CanCrouch || !p.Grounded() || !p.inputs.Crouch() || p.holding {
		return
	}
	if s.CanSlide || p.Lateral().Len() == 0 {
		p.states.ChangeTo(Crouch)
	}
}

// Spin starts a spin attack. Spins in the air are limited per jump.
func (p *Player) Spin() {
	s := p.Stats().Spin
	canAirSpin := (p.Grounded() || s.CanAirSpin) && p.airSpinCounter < s.AllowedAirSpins
	if !s.CanSpin || !canAirSpin || p.holding || !p.inputs.SpinDown() {
		return
	}
	if !p.Grounded() {
		p.airSpinCounter++
	}
	p.states.ChangeTo(Spin)
	p.Events.Spin.Fire()
}

// AirDive dives forward from the air.
func (p *Player) AirDive() {
	if p.Stats().AirDive.CanAirDive && !p.Grounded() && !p.holding && p.inputs.AirDiveDown() {
		p.states.ChangeTo(AirDive)
		p.Events.AirDive.Fire()
	}
}

// StompAttack starts a stomp from the air.
func (p *Player) StompAttack() {
	if !p.Grounded() && !p.holding && p.Stats().Stomp.CanStompAttack && p.inputs.StompDown() {
		p.states.ChangeTo(Stomp)
	}
}

// LedgeGrab hangs a falling player from a ledge in front of it.
func (p *Player) LedgeGrab() {
	s := p.Stats().Ledge
	if !s.CanLedgeHang || p.VerticalVelocity() >= 0 || p.holding || !p.states.Contains(LedgeHanging) {
		return
	}
	hit, ok := p.DetectingLedge(s.MaxForwardDistance, s.MaxDownwardDistance)
	if !ok || hit.Collider == nil || hit.Collider.Kind == physics.ShapeSphere {
		return
	}
	if game.Angle(hit.Normal, p.Up()) > ledgeFlatTolerance {
		return
	}
	forward, up := p.LocalForward(), p.Up()
	position := hit.Point.
		Sub(forward.Mul(p.Radius() + s.MaxForwardDistance)).
		Sub(up.Mul(p.Height() * 0.5))
	p.SetPosition(position)
	p.SetVelocity(mgl32.Vec3{})
	p.states.ChangeTo(LedgeHanging)
	p.Events.LedgeGrabbed.Fire()
}

// ledgeFlatTolerance is how many degrees the top of a ledge may deviate from flat.
const ledgeFlatTolerance = 1

// Backflip flips backwards, away from the facing direction.
func (p *Player) Backflip(force float32) {
	s := p.Stats().Backflip
	if !s.CanBackflip || p.holding {
		return
	}
	p.SetVerticalVelocity(s.JumpHeight)
	p.SetLateral(p.LocalForward().Mul(-force))
	p.states.ChangeTo(Backflip)
	p.Events.Backflip.Fire()
}

// Dash dashes forward. Ground dashes have a cooldown and air dashes are limited per jump.
func (p *Player) Dash() {
	s := p.Stats().Dash
	canAirDash := s.CanAirDash && !p.Grounded() && p.airDashCounter < s.AllowedAirDashes
	canGroundDash := s.CanGroundDash && p.Grounded() && p.Now()-p.lastDashTime > s.GroundCoolDown
	if (!canAirDash && !canGroundDash) || p.holding || !p.inputs.DashDown() {
		return
	}
	if !p.Grounded() {
		p.airDashCounter++
	}
	p.lastDashTime = p.Now()
	p.states.ChangeTo(Dash)
}

// Glide starts gliding while falling with the glide button held.
func (p *Player) Glide() {
	if p.Grounded() || !p.inputs.Glide() || p.VerticalVelocity() > 0 || !p.Stats().Glide.CanGlide || p.holding {
		return
	}
	p.states.ChangeTo(Gliding)
}

// WallDrag starts sliding down the wall c when the player faces it while falling.
func (p *Player) WallDrag(c *physics.Collider) {
	s := p.Stats()
	if !s.WallDrag.CanWallDrag || p.VerticalVelocity() > 0 || p.holding || c == nil || !s.WallDrag.Layers.Has(c.Layer) {
		return
	}
	maxWallDistance := p.Radius() + s.Ledge.MaxForwardDistance
	minGroundDistance := p.Height()*0.5 + s.WallDrag.MinGroundDistance

	wall, ok := p.SphereCast(p.Forward(), maxWallDistance, s.WallDrag.Layers)
	if !ok {
		return
	}
	if ground, ok := p.DetectingGround(minGroundDistance); ok && game.Angle(ground.Normal, p.Up()) < p.SlopeLimit() {
		return
	}
	if _, ok := p.DetectingLedge(maxWallDistance, p.Height()); ok {
		return
	}
	if game.Angle(wall.Normal, p.Up()) < s.WallDrag.MinWallAngle {
		return
	}
	p.lastWallNormal = wall.Normal
	p.states.ChangeTo(WallDrag)
}

// WallRun starts running along a wall to the left or right of a fast falling player.
func (p *Player) WallRun() {
	s := p.Stats().WallRun
	vertical := p.VerticalVelocity()
	if !s.CanWallRun || vertical > 0 || vertical < s.MaxFallSpeed || p.Lateral().Len() < s.MinSpeed || p.holding {
		return
	}
	distance := p.Radius() + 1
	wall, ok := p.SphereCast(p.Right(), distance, s.Layers)
	if !ok {
		if wall, ok = p.SphereCast(p.Right().Mul(-1), distance, s.Layers); !ok {
			return
		}
	}
	angle := game.Angle(wall.Normal, p.CurrentWorldUp())
	if angle < minWallRunAngle || angle > maxWallRunAngle {
		return
	}
	if _, ok := p.DetectingGround(p.Height()*0.5 + s.MinGroundDistance); ok {
		return
	}
	p.lastWallNormal = wall.Normal
	p.states.ChangeTo(WallRun)
}

// GrabPole attaches the player to the pole collider c.
func (p *Player) GrabPole(c *physics.Collider) {
	if !p.Stats().PoleClimb.CanPoleClimb || c == nil || c.Tag != physics.TagPole {
		return
	}
	pole, ok := c.Owner.(*Pole)
	if !ok || p.VerticalVelocity() > 0 || p.holding {
		return
	}
	p.pole = pole
	p.states.ChangeTo(PoleClimbing)
}

// EnterWater makes the player swim in the water volume c.
func (p *Player) EnterWater(c *physics.Collider) {
	if p.onWater && p.states.IsCurrentOfType(Swim, Hurt) || !p.Alive() {
		return
	}
	// Still leaving the surface after a jump out of the water.
	if p.onWater && p.VerticalVelocity() > 0 {
		return
	}
	p.onWater = true
	p.water = c
	p.states.ChangeTo(Swim)
}

// ExitWater leaves the water volume the player swims in.
func (p *Player) ExitWater() {
	if !p.onWater {
		return
	}
	p.onWater = false
	p.water = nil
}

// HandleRail starts grinding the rail the player just entered.
func (p *Player) HandleRail() {
	if p.Stats().Grind.CanRailGrind {
		p.states.ChangeTo(RailGrind)
	}
}

// DetectingLedge looks for the top of a ledge in front of the player's head, at most
// forwardDistance ahead and downwardDistance below the top of the capsule. The space above the
// ledge and above the player must be free.
func (p *Player) DetectingLedge(forwardDistance, downwardDistance float32) (physics.Hit, bool) {
	contactOffset := game.DefaultContactOffset + p.PositionDelta()
	maxForward := p.Radius() + forwardDistance
	maxDown := downwardDistance + contactOffset

	pos, up, forward := p.Position(), p.Up(), p.Forward()
	top := pos.Add(up.Mul(p.Height()*0.5 + contactOffset))
	if _, ok := p.Raycast(top, forward, maxForward, 0); ok {
		return physics.Hit{}, false
	}
	if _, ok := p.Raycast(pos.Add(forward.Mul(maxForward*0.01)), up, p.Height()*0.5+contactOffset, 0); ok {
		return physics.Hit{}, false
	}
	return p.Raycast(top.Add(forward.Mul(maxForward)), up.Mul(-1), maxDown, p.Stats().Ledge.Layers)
}
