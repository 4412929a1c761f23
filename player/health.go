package player

import (
	"math"

	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/event"
)

// Health is a bounded hit point counter with a recovery window after each hit.
type Health struct {
	clock *clock.Clock

	initial, max int
	current      int
	// cooldown is how long the owner is recovering after taking damage.
	cooldown   float32
	lastDamage float32

	OnChange event.Listeners[int]
	OnDamage event.Signal
	OnEmpty  event.Signal
}

// NewHealth returns a full Health with initial points out of maximum.
func NewHealth(c *clock.Clock, initial, maximum int, cooldown float32) *Health {
	if c == nil {
		c = clock.New()
	}
	maximum = max(maximum, 1)
	initial = min(max(initial, 1), maximum)
	return &Health{
		clock:      c,
		initial:    initial,
		max:        maximum,
		current:    initial,
		cooldown:   cooldown,
		lastDamage: float32(math.Inf(-1)),
	}
}

func (h *Health) Current() int { return h.current }
func (h *Health) Max() int     { return h.max }

// Empty reports whether no points are left.
func (h *Health) Empty() bool {
	return h.current == 0
}

// Recovering reports whether the last hit is recent enough to ignore new damage.
func (h *Health) Recovering() bool {
	return h.clock.Now() < h.lastDamage+h.cooldown
}

// Damage removes amount points unless recovering.
func (h *Health) Damage(amount int) {
	if amount <= 0 || h.Recovering() || h.Empty() {
		return
	}
	h.lastDamage = h.clock.Now()
	h.set(h.current - amount)
	h.OnDamage.Fire()
	if h.Empty() {
		h.OnEmpty.Fire()
	}
}

// Increase adds amount points up to the maximum.
func (h *Health) Increase(amount int) {
	h.set(h.current + amount)
}

// Set sets the points to amount clamped to the valid range.
func (h *Health) Set(amount int) {
	h.set(amount)
}

// Reset restores the initial points and ends any recovery window.
func (h *Health) Reset() {
	h.lastDamage = float32(math.Inf(-1))
	h.set(h.initial)
}

func (h *Health) set(amount int) {
	amount = min(max(amount, 0), h.max)
	if amount == h.current {
		return
	}
	h.current = amount
	h.OnChange.Invoke(amount)
}
