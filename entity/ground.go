package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/physics"
)

// handleGround sweeps below the capsule and lands, keeps or drops the ground contact. Rails take
// over the ground while the entity is bound to one.
func (e *Entity) handleGround() {
	if e.onRails {
		return
	}
	distance := e.height*0.5 + game.GroundOffset
	hit, ok := e.SphereCast(e.up.Mul(-1), distance, 0)
	if !ok || e.vertical > 0 {
		e.exitGround()
		return
	}

	if e.enterRailFrom(hit) {
		return
	}

	switch {
	case !e.grounded:
		if e.EvaluateLanding(hit) {
			e.enterGround(hit)
		} else if e.Hooks.HighLedge != nil {
			e.Hooks.HighLedge(hit)
		}
	case e.IsPointUnderStep(hit.Point):
		e.updateGround(hit)
		if game.Angle(hit.Normal, e.up) >= e.conf.SlopeLimit && e.Hooks.SlopeLimit != nil {
			e.Hooks.SlopeLimit(hit)
		}
	default:
		if e.Hooks.HighLedge != nil {
			e.Hooks.HighLedge(hit)
		}
	}
}

// EvaluateLanding reports whether hit is ground the entity can stand on.
func (e *Entity) EvaluateLanding(hit physics.Hit) bool {
	if !e.IsPointUnderStep(hit.Point) || game.Angle(hit.Normal, e.up) >= e.conf.SlopeLimit {
		return false
	}
	return e.Hooks.Landing == nil || e.Hooks.Landing(hit)
}

// IsPointUnderStep reports whether p is below the step offset of the capsule.
func (e *Entity) IsPointUnderStep(p mgl32.Vec3) bool {
	step := e.position.Sub(e.up.Mul(e.height*0.5 - e.conf.StepOffset))
	return step.Sub(p).Dot(e.up) > 0
}

func (e *Entity) enterRailFrom(hit physics.Hit) bool {
	if hit.Tag() != physics.TagRail {
		return false
	}
	container, ok := e.env.Rails.Lookup(hit.Collider)
	if !ok {
		return false
	}
	e.exitGround()
	e.EnterRail(container)
	return e.onRails
}

func (e *Entity) enterGround(hit physics.Hit) {
	if e.grounded {
		return
	}
	e.grounded = true
	e.groundHit = hit
	e.landingSpeed = -min(e.vertical, 0)
	factor := float32(1)
	if e.Hooks.AirToGroundFactor != nil {
		factor = e.Hooks.AirToGroundFactor()
	}
	e.convertFallOnSlope(factor)
	e.vertical = 0
	e.updateGround(hit)
	e.Events.GroundEnter.Fire()
	e.fallDuration = 0
}

// updateGround records hit and moves the capsule so its lower sphere rests on the ground, which
// also lifts it over steps.
func (e *Entity) updateGround(hit physics.Hit) {
	if !e.grounded {
		return
	}
	e.groundHit = hit
	gap := hit.Distance - (e.height*0.5 - e.conf.Radius) - e.conf.SkinWidth
	if game.Float32ApproxEq(gap, 0) {
		return
	}
	e.position = e.position.Sub(e.up.Mul(gap))
	e.syncCollider()
}

func (e *Entity) exitGround() {
	if !e.grounded {
		return
	}
	e.grounded = false
	e.lastGroundTime = e.Now()
	e.vertical = max(e.vertical, 0)
	e.Events.GroundExit.Fire()
}
