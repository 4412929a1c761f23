// Package fsm implements the per-entity state machine driving movement behaviors. It is generic
// over the entity type so players and enemies share one implementation.
package fsm

import (
	"slices"

	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/physics"
)

// Variant tags one behavior of a state catalog. Family tags share the same space.
type Variant uint8

// State is one behavior of an entity. Per-activation data lives on the instance and must be
// reset in Enter.
type State[E any] interface {
	Variant() Variant
	Enter(e E)
	Step(e E)
	Exit(e E)
	// OnContact is called once per contacting collider per tick.
	OnContact(e E, c *physics.Collider)
}

// Base tracks the time since the state was last entered. States embed it to satisfy the
// bookkeeping the Manager performs on every enter.
type Base struct {
	clock   *clock.Clock
	entered float32
}

func (b *Base) bind(c *clock.Clock) {
	b.clock = c
}

func (b *Base) markEntered() {
	if b.clock != nil {
		b.entered = b.clock.Now()
	}
}

// TimeSinceEntered returns the scaled seconds since the state was entered.
func (b *Base) TimeSinceEntered() float32 {
	if b.clock == nil {
		return 0
	}
	return b.clock.Now() - b.entered
}

// Now returns the current scaled time of the clock bound to the state.
func (b *Base) Now() float32 {
	if b.clock == nil {
		return 0
	}
	return b.clock.Now()
}

// Frame returns the current frame of the clock bound to the state.
func (b *Base) Frame() uint64 {
	if b.clock == nil {
		return 0
	}
	return b.clock.Frame()
}

type timed interface {
	bind(c *clock.Clock)
	markEntered()
}

// Families groups variants under a family tag so a query can match any of its members.
type Families map[Variant][]Variant

// Family returns the members of the family tag v, or nil when v is not a family.
func (f Families) Family(v Variant) []Variant {
	return f[v]
}

// Matches reports whether v equals tag or belongs to the family tag.
func (f Families) Matches(v, tag Variant) bool {
	return v == tag || slices.Contains(f[tag], v)
}
