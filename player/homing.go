package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/spline"
)

// homing is the current homing dash selection.
type homing struct {
	target *physics.Collider
	// spline is set when the target is a rail.
	spline  *spline.Container
	initial mgl32.Vec3

	refreshedAt float32
	refreshed   bool
}

// HomingTarget returns the selected homing target, nil when there is none.
func (p *Player) HomingTarget() *physics.Collider {
	return p.homing.target
}

// HomingSpline returns the rail of the homing target, nil when the target is not a rail.
func (p *Player) HomingSpline() *spline.Container {
	return p.homing.spline
}

// HasHomingTargets reports whether a homing target is selected.
func (p *Player) HasHomingTargets() bool {
	return p.homing.target != nil || p.homing.spline != nil
}

// InitialHomingTargetPosition is the target point resolved when the target was selected.
func (p *Player) InitialHomingTargetPosition() mgl32.Vec3 {
	return p.homing.initial
}

// HomingTargetPosition is where the homing dash heads: the point of a rail just ahead of the
// player, or the target collider's position.
func (p *Player) HomingTargetPosition() mgl32.Vec3 {
	if p.homing.spline != nil {
		return p.railPointAhead(p.homing.spline)
	}
	if p.homing.target != nil {
		return p.homing.target.Position()
	}
	return p.Position()
}

func (p *Player) railPointAhead(c *spline.Container) mgl32.Vec3 {
	offset := p.Stats().Homing.SplineForwardOffset
	point, _ := c.Nearest(p.Position().Add(p.LocalForward().Mul(offset)))
	return point
}

// UpdateHomingTargets selects the closest visible target in front of the player that is not too
// far above it. Targets are refreshed at most once per refresh interval.
func (p *Player) UpdateHomingTargets() {
	s := p.Stats().Homing
	now := p.Now()
	if p.homing.refreshed && now < p.homing.refreshedAt+s.RefreshRate {
		return
	}
	p.homing.refreshed = true
	p.homing.refreshedAt = now

	var (
		best    = float32(math.MaxFloat32)
		target  *physics.Collider
		rail    *spline.Container
		initial mgl32.Vec3
	)
	pos, up, forward := p.Position(), p.Up(), p.LocalForward()
	for _, c := range p.Overlap(pos, s.Radius, s.Layers) {
		point, bounds := c.Position(), c.BoundsRadius()
		container, isRail := p.railAt(c)
		if isRail {
			point = p.railPointAhead(container)
			bounds = game.RailBoundsRadius
		}
		head := point.Sub(pos)
		distance := head.Len()
		dir, ok := game.SafeNormalize(head)
		if !ok || distance >= best || dir.Dot(forward) <= 0 || head.Dot(up) >= s.MaxHeightDifference {
			continue
		}
		if p.homingOccluded(dir, distance-bounds) {
			continue
		}
		best = distance
		target = c
		initial = point
		rail = nil
		if isRail {
			rail = container
		}
	}

	changed := target != p.homing.target
	p.homing.target = target
	p.homing.spline = rail
	p.homing.initial = initial
	if changed {
		p.Events.HomingTargetUpdated.Invoke(target)
	}
}

// homingOccluded reports whether level geometry lies within distance along dir.
func (p *Player) homingOccluded(dir mgl32.Vec3, distance float32) bool {
	if distance <= p.Radius() {
		return false
	}
	layers := p.CollisionLayers().Without(p.Stats().Homing.Layers)
	if layers == 0 {
		return false
	}
	_, hit := p.SphereCastFrom(p.Position(), p.Radius(), dir, distance-p.Radius(), layers)
	return hit
}

// ClearHomingTarget drops the current selection and lets the next update refresh right away.
func (p *Player) ClearHomingTarget() {
	had := p.HasHomingTargets()
	p.homing = homing{}
	if had {
		p.Events.HomingTargetUpdated.Invoke(nil)
	}
}

// HomingDash dashes towards the selected target after a jump.
func (p *Player) HomingDash() {
	if p.Grounded() || !p.Stats().Homing.CanHomingDash || p.jumpCounter <= 0 {
		return
	}
	p.UpdateHomingTargets()
	if p.HasHomingTargets() && p.inputs.HomingDashDown() {
		p.states.ChangeTo(HomingDash)
	}
}
