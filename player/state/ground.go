package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/player"
)

// Idle stands still, waiting for input.
type Idle struct{ base }

func (*Idle) Variant() fsm.Variant { return player.Idle }

func (s *Idle) Step(p *player.Player) {
	p.Gravity()
	p.SnapToGround()
	p.Jump()
	p.Fall()
	p.Spin()
	p.Dash()
	p.Friction()
	if left(p, s) {
		return
	}

	dir, _ := p.InputDirection()
	if dir.LenSqr() > 0 || p.Lateral().LenSqr() > 0 {
		p.States().ChangeTo(player.Walk)
		return
	}
	p.Crouch()
	if left(p, s) {
		return
	}
	p.RollCharge()
}

// Walk accelerates along the input on the ground. Pushing against the current velocity for two
// consecutive ticks brakes.
type Walk struct {
	base
	// pendingBrake is the frame the brake condition was first seen.
	pendingBrake uint64
	pending      bool
}

func (*Walk) Variant() fsm.Variant { return player.Walk }

func (w *Walk) Enter(*player.Player) {
	w.pending = false
}

func (w *Walk) Step(p *player.Player) {
	p.Gravity()
	p.SnapToGround()
	p.Jump()
	p.Fall()
	p.Roll()
	p.Spin()
	p.Dash()
	if left(p, w) {
		return
	}
	p.RegularSlopeFactor()
	p.DecelerateToTopSpeed()

	dir, magnitude := p.InputDirection()
	if dir.LenSqr() > 0 {
		if w.braking(p, dir) {
			p.States().ChangeTo(player.Brake)
			return
		}
		p.Accelerate(dir, magnitude)
	} else {
		w.pending = false
		p.Friction()
		if p.Lateral().LenSqr() <= 0 {
			p.States().ChangeTo(player.Idle)
			return
		}
	}

	p.FaceDirectionSmooth(p.Lateral())
	p.Crouch()
	if left(p, w) {
		return
	}
	p.RollCharge()
}

// braking reports whether the brake condition has held on this and the previous tick.
func (w *Walk) braking(p *player.Player, dir mgl32.Vec3) bool {
	s := p.Stats().Brake
	lateral := p.Lateral()
	heading, ok := game.SafeNormalize(lateral)
	if !ok || dir.Dot(heading) >= s.Threshold || lateral.Len() <= s.MinSpeedToBrake {
		w.pending = false
		return false
	}
	if !w.pending {
		w.pending = true
		w.pendingBrake = w.Frame()
		return false
	}
	return w.Frame() > w.pendingBrake
}

// Brake decelerates to a stop. A jump while braking turns into a backflip when allowed.
type Brake struct{ base }

func (*Brake) Variant() fsm.Variant { return player.Brake }

func (b *Brake) Step(p *player.Player) {
	s := p.Stats()
	if s.Backflip.CanBackflip && s.Backflip.WhileTurning && p.Inputs().JumpDown() {
		p.Backflip(s.Backflip.BackwardTurnForce)
		if left(p, b) {
			return
		}
	}
	p.Gravity()
	p.SnapToGround()
	p.Fall()
	if left(p, b) {
		return
	}
	p.Decelerate(s.Brake.Deceleration)
	if p.Lateral().LenSqr() <= 0 {
		p.States().ChangeTo(player.Idle)
	}
}

// Crouch lowers the collider. Entered fast enough it slides until friction stops it.
type Crouch struct {
	base
	sliding bool
}

func (*Crouch) Variant() fsm.Variant { return player.Crouch }

func (c *Crouch) Enter(p *player.Player) {
	s := p.Stats().Crouch
	c.sliding = s.CanSlide && p.Lateral().Len() >= s.MinSpeedToSlide
	if c.sliding {
		p.Events.SlideStarted.Fire()
	} else {
		p.SetLateral(mgl32.Vec3{})
	}
	p.ResizeCollider(s.Height)
	p.Events.CrouchStarted.Fire()
}

func (c *Crouch) Exit(p *player.Player) {
	if c.sliding {
		c.sliding = false
		p.Events.SlideEnded.Fire()
	}
	p.ResizeCollider(p.OriginalHeight())
	p.Events.CrouchEnded.Fire()
}

func (c *Crouch) Step(p *player.Player) {
	s := p.Stats()
	p.Gravity()
	p.SnapToGround()
	if !s.Crouch.JumpBackflip {
		p.Jump()
	}
	p.Fall()
	if left(p, c) {
		return
	}
	p.RegularSlopeFactor()
	p.Decelerate(s.Crouch.Friction)
	p.FaceDirection(p.Lateral())

	if c.sliding && p.Lateral().LenSqr() <= 0.1 {
		c.sliding = false
		p.Events.SlideEnded.Fire()
	}

	dir, _ := p.InputDirection()
	held := p.Inputs().Crouch() || !p.CanStandUp() || c.sliding && c.TimeSinceEntered() <= s.Crouch.MinSlideDuration
	switch {
	case !held:
		p.States().ChangeTo(player.Idle)
		return
	case s.Crawl.CanCrawl && !c.sliding && dir.LenSqr() > 0:
		p.States().ChangeTo(player.Crawling)
		return
	case s.Crouch.JumpBackflip && p.Inputs().JumpDown():
		p.Backflip(s.Backflip.BackwardForce)
		if left(p, c) {
			return
		}
	}
	p.RollCharge()
}

// Crawling moves slowly with the crouched collider.
type Crawling struct{ base }

func (*Crawling) Variant() fsm.Variant { return player.Crawling }

func (*Crawling) Enter(p *player.Player) {
	p.ResizeCollider(p.Stats().Crouch.Height)
}

func (*Crawling) Exit(p *player.Player) {
	p.ResizeCollider(p.OriginalHeight())
}

func (c *Crawling) Step(p *player.Player) {
	s := p.Stats()
	p.Gravity()
	p.SnapToGround()
	standable := p.CanStandUp()
	if standable {
		p.Jump()
	}
	p.Fall()
	if left(p, c) {
		return
	}

	if !p.Inputs().Crouch() && standable {
		p.States().ChangeTo(player.Idle)
		return
	}
	dir, _ := p.InputDirection()
	if dir.LenSqr() > 0 {
		p.CrawlAccelerate(dir)
		p.FaceDirectionSmooth(p.Lateral())
		return
	}
	p.Decelerate(s.Crawl.Friction)
}
