package state

import (
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/player"
)

// surfaceOffset is how far above the center the water has to end for the player to float at the
// surface.
const surfaceOffset = 0.3

// Swim moves through a water volume. Jump swims up, crouch dives and a jump at the surface leaps
// out.
type Swim struct{ base }

func (*Swim) Variant() fsm.Variant { return player.Swim }

func (*Swim) Enter(p *player.Player) {
	s := p.Stats().Swim
	p.SetLateral(p.Lateral().Mul(s.Conversion))
	vertical := p.VerticalVelocity() * s.Conversion
	limit := s.MaxVerticalSpeedOnEnter
	p.SetVerticalVelocity(min(max(vertical, -limit), limit))
}

func (*Swim) Step(p *player.Player) {
	s := p.Stats().Swim
	water := p.Water()
	if !p.OnWater() || water == nil {
		if p.Grounded() {
			land(p)
			return
		}
		p.States().ChangeTo(player.Fall)
		return
	}
	dt := p.Delta()

	dir, _ := p.InputDirection()
	if dir.LenSqr() > 0 {
		p.WaterAccelerate(dir)
		p.WaterFaceDirection(p.Lateral())
	} else {
		p.Decelerate(s.Deceleration)
	}

	atSurface := !water.Contains(p.Position().Add(p.Up().Mul(surfaceOffset)))
	if atSurface && p.Inputs().JumpDown() {
		p.ForceJump(s.JumpHeight)
		return
	}

	vertical := p.VerticalVelocity()
	switch {
	case p.Inputs().Crouch():
		vertical = game.MoveTowards(vertical, -s.DownwardsTopSpeed, s.DownwardsAcceleration*dt)
	case p.Inputs().Jump() && !atSurface:
		vertical = game.MoveTowards(vertical, s.UpwardsTopSpeed, s.UpwardsAcceleration*dt)
	case atSurface:
		vertical = min(game.MoveTowards(vertical, 0, s.UpwardsForce*dt), 0)
	default:
		vertical = game.MoveTowards(vertical, 0, s.Deceleration*dt)
	}
	p.SetVerticalVelocity(vertical)
}
