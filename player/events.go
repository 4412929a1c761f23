package player

import (
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/physics"
)

// Events are the player-specific notifications consumed by presentation layers. They are fired
// synchronously during Update.
type Events struct {
	Jump event.Signal
	Hurt event.Signal
	Die  event.Signal
	Spin event.Signal

	StompStarted event.Signal
	StompFalling event.Signal
	StompLanding event.Signal
	StompEnding  event.Signal

	LedgeGrabbed  event.Signal
	LedgeClimbing event.Signal

	AirDive  event.Signal
	Backflip event.Signal

	GlidingStart event.Signal
	GlidingStop  event.Signal

	DashStarted event.Signal
	DashEnded   event.Signal
	// RailDash fires when a dash boosts the player along a rail.
	RailDash event.Signal

	CrouchStarted event.Signal
	CrouchEnded   event.Signal
	SlideStarted  event.Signal
	SlideEnded    event.Signal

	RollStarted event.Signal
	RollEnded   event.Signal

	// HomingTargetUpdated receives the new target, nil when cleared.
	HomingTargetUpdated event.Listeners[*physics.Collider]
}
