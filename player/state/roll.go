package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/player"
)

// rollUncurlDelay is how long a cancelled roll keeps going before uncurling on the ground.
const rollUncurlDelay = 0.5

// Rolling is the curled up state. It keeps its momentum, gains speed downhill and only turns
// slowly.
type Rolling struct {
	base
	uncurl bool
}

func (*Rolling) Variant() fsm.Variant { return player.Rolling }

func (r *Rolling) Enter(p *player.Player) {
	r.uncurl = false
	p.ResizeCollider(p.Stats().Crouch.Height)
	p.Events.RollStarted.Fire()
}

func (*Rolling) Exit(p *player.Player) {
	p.ResizeCollider(p.OriginalHeight())
	p.Events.RollEnded.Fire()
}

func (r *Rolling) Step(p *player.Player) {
	s := p.Stats()
	p.Gravity()
	p.SnapToGround()
	p.Jump()
	p.Fall()
	if left(p, r) {
		return
	}
	p.SlopeFactor(s.Roll.SlopeUpwardForce, s.Roll.SlopeDownwardForce)
	p.FaceDirectionSmooth(p.Lateral())

	dir, magnitude := p.InputDirection()
	if p.Grounded() {
		r.steer(p, dir)
		p.Decelerate(s.Roll.Friction)
	} else {
		p.Accelerate(dir, magnitude)
	}

	if s.Roll.CanCancelRoll && p.Inputs().CancelDown() {
		r.uncurl = !r.uncurl
	}
	if p.Grounded() {
		if p.Lateral().Len() <= s.Roll.MinSpeedToUnroll || r.uncurl && r.TimeSinceEntered() > rollUncurlDelay {
			p.States().ChangeTo(player.Walk)
		}
		return
	}
	if p.VerticalVelocity() < 0 && (r.uncurl || s.Roll.UnrollWhenFalling) {
		p.States().ChangeTo(player.Fall)
	}
}

// steer turns the roll towards dir without gaining speed, or slows it down when dir points back.
func (r *Rolling) steer(p *player.Player, dir mgl32.Vec3) {
	s := p.Stats()
	if dir.LenSqr() <= 0 {
		return
	}
	lateral := p.Lateral()
	heading, ok := game.SafeNormalize(lateral)
	if !ok {
		return
	}
	if dir.Dot(heading) < s.Brake.Threshold {
		p.Decelerate(s.Roll.Deceleration)
		return
	}
	target := dir.Mul(lateral.Len())
	p.SetLateral(game.MoveTowardsVec(lateral, target, s.Roll.TurningDrag*p.Mul.TurningDrag*p.Delta()))
}

// RollCharge revs up in place while the roll button is held and releases into a roll whose speed
// grows with the charge time.
type RollCharge struct{ base }

func (*RollCharge) Variant() fsm.Variant { return player.RollCharge }

func (*RollCharge) Enter(p *player.Player) {
	p.SetLateral(mgl32.Vec3{})
	p.ResizeCollider(p.Stats().Crouch.Height)
}

func (*RollCharge) Exit(p *player.Player) {
	p.ResizeCollider(p.OriginalHeight())
}

func (r *RollCharge) Step(p *player.Player) {
	s := p.Stats().RollCharge
	p.Gravity()
	p.SnapToGround()
	p.Fall()
	if left(p, r) {
		return
	}
	dir, _ := p.InputDirection()
	p.FaceDirectionSmooth(dir)
	if p.Inputs().RollCharge() {
		return
	}
	charge := float32(1)
	if s.Duration > 0 {
		charge = game.InverseLerp(0, s.Duration, r.TimeSinceEntered())
	}
	p.SetLateral(p.LocalForward().Mul(game.Lerp(s.MinForce, s.MaxForce, charge)))
	p.States().ChangeTo(player.Rolling)
}
