package state

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/player"
)

// RailGrind slides along the rail the player is bound to. Slopes speed it up or slow it down
// within the grind speed limits. Leaving either end of an open rail drops the player off.
type RailGrind struct {
	base
	backwards    bool
	dir          mgl32.Vec3
	speed        float32
	lastDashTime float32
}

func (*RailGrind) Variant() fsm.Variant { return player.RailGrind }

func (r *RailGrind) Enter(p *player.Player) {
	s := p.Stats().Grind
	r.lastDashTime = float32(math.Inf(-1))
	rails := p.Rails()
	if rails == nil {
		return
	}
	point, forward, up, _ := rails.Sample(p.Position())
	r.snap(p, point, up)

	velocity := p.Velocity()
	r.backwards = velocity.Dot(forward) < 0
	r.dir = forward
	if r.backwards {
		r.dir = forward.Mul(-1)
	}
	r.speed = max(velocity.Len(), s.MinInitialSpeed)
	p.SetVelocity(r.dir.Mul(r.speed))
	p.UseCustomCollision(s.UseCustomCollision)
	p.Inputs().ClearJumpBuffer()
}

func (*RailGrind) Exit(p *player.Player) {
	if p.Field() == nil {
		p.SetUp(p.CurrentWorldUp())
	}
	p.ExitRail()
	p.UseCustomCollision(false)
}

func (r *RailGrind) Step(p *player.Player) {
	s := p.Stats().Grind
	p.Jump()
	if left(p, r) {
		return
	}
	rails := p.Rails()
	if !p.OnRails() || rails == nil {
		p.States().ChangeTo(player.Fall)
		return
	}
	dt := p.Delta()

	point, forward, up, t := rails.Sample(p.Position())
	if moving, ok := game.SafeNormalize(p.Velocity()); ok {
		r.backwards = moving.Dot(forward) < 0
	}
	r.dir = forward
	if r.backwards {
		r.dir = forward.Mul(-1)
	}
	r.speed = p.Velocity().Len()

	if s.ApplySlopeFactor {
		factor := p.CurrentWorldUp().Dot(r.dir)
		force := s.UpSlopeForce
		if factor <= 0 {
			force = s.DownSlopeForce
		}
		r.speed -= factor * force * dt
	}
	if s.CanBrake && p.Inputs().GrindBrake() {
		r.speed = game.MoveTowards(r.speed, 0, s.BrakeDeceleration*dt)
	}
	if s.CanDash && p.Inputs().DashDown() && r.Now() >= r.lastDashTime+s.DashCoolDown {
		r.lastDashTime = r.Now()
		r.speed = s.DashForce
		p.Events.RailDash.Fire()
	}
	r.speed = mgl32.Clamp(r.speed, s.MinSpeed, s.TopSpeed)

	closed := rails.Spline.Closed()
	if !closed && (t >= 1 && !r.backwards || t <= 0 && r.backwards) {
		p.States().ChangeTo(player.Fall)
		return
	}

	p.FaceDirection(r.dir)
	p.SetUp(up)
	p.SetVelocity(r.dir.Mul(r.speed))
	r.snap(p, point, up)
}

// snap puts the player on top of the rail at point.
func (*RailGrind) snap(p *player.Player, point, up mgl32.Vec3) {
	offset := p.OriginalHeight()*0.5 + p.Stats().Grind.RadiusOffset
	p.SetPosition(point.Add(up.Mul(offset)))
}
