package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/player"
)

// Hurt knocks the player away from whatever hit it. In water the knock back is slowed by drag and
// the player swims again after a cooldown.
type Hurt struct{ base }

func (*Hurt) Variant() fsm.Variant { return player.Hurt }

func (*Hurt) Enter(p *player.Player) {
	s := p.Stats().Hurt
	away, ok := game.SafeNormalize(game.ProjectOnPlane(p.Position().Sub(p.LastDamageOrigin()), p.Up()))
	if !ok {
		away = p.LocalForward().Mul(-1)
	}
	p.FaceDirection(away.Mul(-1))
	if p.OnWater() {
		p.SetLateral(away.Mul(s.BackwardsWaterForce))
		p.SetVerticalVelocity(-s.DownwardsWaterForce)
		return
	}
	p.SetLateral(away.Mul(s.BackwardsForce))
	p.SetVerticalVelocity(s.UpwardForce)
}

func (h *Hurt) Step(p *player.Player) {
	s := p.Stats().Hurt
	if p.OnWater() {
		drag := s.WaterDrag * p.Delta()
		p.SetLateral(game.MoveTowardsVec(p.Lateral(), mgl32.Vec3{}, drag))
		p.SetVerticalVelocity(game.MoveTowards(p.VerticalVelocity(), 0, drag))
		if h.TimeSinceEntered() >= s.WaterCoolDown {
			p.States().ChangeTo(player.Swim)
		}
		return
	}
	p.Gravity()
	if !p.Grounded() || p.VerticalVelocity() > 0 {
		return
	}
	if p.Alive() {
		p.States().ChangeTo(player.Idle)
		return
	}
	p.States().ChangeTo(player.Die)
}

// Die lets the body settle on the ground.
type Die struct{ base }

func (*Die) Variant() fsm.Variant { return player.Die }

func (*Die) Step(p *player.Player) {
	p.Gravity()
	p.Friction()
	p.SnapToGround()
}
