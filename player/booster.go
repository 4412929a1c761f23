package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// upwardBoostThreshold is how much a boost has to point along the player's up to launch it into
// the air.
const upwardBoostThreshold = 0.1

// Booster launches players that start touching it. Colliders tagged as boosters carry one as their
// Owner.
type Booster struct {
	Forward mgl32.Vec3
	Up      mgl32.Vec3
	// Upward boosts along Up instead of Forward.
	Upward bool
	// Angle tilts a forward boost up by this many degrees.
	Angle float32

	Force float32
	// InputLock is how long the movement direction stays locked after a boost.
	InputLock   float32
	CountAsJump bool
	// BoostState enters Boosting instead of Fall on upward boosts.
	BoostState bool

	// Reposition moves the player to Position before launching it.
	Reposition bool
	Position   mgl32.Vec3
}

// NewBooster returns a booster pushing along forward with the default force and input lock.
func NewBooster(forward mgl32.Vec3) *Booster {
	return &Booster{Forward: forward, Up: game.WorldUp, Force: 40, InputLock: 0.5}
}

// Direction is the unit direction players are launched in.
func (b *Booster) Direction() mgl32.Vec3 {
	forward := game.Normalized(b.Forward)
	up := game.Normalized(b.Up)
	if b.Angle > 0 {
		axis := forward.Cross(up)
		return mgl32.QuatRotate(mgl32.DegToRad(b.Angle), axis).Rotate(forward)
	}
	if b.Upward {
		return up
	}
	return forward
}

// Boost launches the player with b. On rails the player is only pushed along the boost.
func (p *Player) Boost(b *Booster) {
	dir := b.Direction()
	if p.OnRails() {
		p.SetVelocity(dir.Mul(b.Force))
		p.FaceDirection(dir)
		return
	}

	up := p.Up()
	switch {
	case dir.Dot(up) > upwardBoostThreshold && b.BoostState:
		p.states.ChangeTo(Boosting)
	case dir.Dot(up) > upwardBoostThreshold:
		p.states.ChangeTo(Fall)
	case !p.states.IsCurrentOfType(Rolling):
		p.states.ChangeTo(Walk)
	}

	p.ResetJumps()
	p.ResetAirDash()
	p.ResetAirSpins()
	if b.CountAsJump {
		p.SetJumps(1)
	}
	if b.Reposition {
		p.SetPosition(b.Position)
	}

	lateral := game.ProjectOnPlane(dir, up)
	speed := max(p.Lateral().Len(), b.Force*lateral.Len())
	heading, ok := game.SafeNormalize(lateral)
	p.SetLateral(heading.Mul(speed))
	p.SetVerticalVelocity(dir.Dot(up) * b.Force)
	p.inputs.LockMovementDirection(b.InputLock)
	if ok {
		p.FaceDirection(heading)
	}
	p.log.Debug("boosted", "direction", dir, "speed", speed)
}
