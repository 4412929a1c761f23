// Package clock keeps simulation time. A time scale of zero pauses the simulation: time, the
// frame counter and every state machine reading Paused freeze until the scale is restored.
package clock

import "go.uber.org/atomic"

// Clock is a fixed-step simulation clock with a global time scale.
type Clock struct {
	scale       *atomic.Float32
	resumeScale *atomic.Float32

	now      *atomic.Float32
	unscaled *atomic.Float32
	delta    *atomic.Float32
	frame    *atomic.Uint64
}

// New returns a running clock with a time scale of one.
func New() *Clock {
	return &Clock{
		scale:       atomic.NewFloat32(1),
		resumeScale: atomic.NewFloat32(1),
		now:         atomic.NewFloat32(0),
		unscaled:    atomic.NewFloat32(0),
		delta:       atomic.NewFloat32(0),
		frame:       atomic.NewUint64(0),
	}
}

// Advance moves the clock forward by dt unscaled seconds and returns the scaled delta. It
// returns false without counting a frame while the clock is paused.
func (c *Clock) Advance(dt float32) (float32, bool) {
	scale := c.scale.Load()
	if scale <= 0 || dt <= 0 {
		c.delta.Store(0)
		return 0, false
	}
	scaled := dt * scale
	c.unscaled.Add(dt)
	c.now.Add(scaled)
	c.delta.Store(scaled)
	c.frame.Inc()
	return scaled, true
}

// Paused reports whether the time scale is zero.
func (c *Clock) Paused() bool {
	return c.scale.Load() <= 0
}

// Pause sets the time scale to zero, remembering the current scale for Resume.
func (c *Clock) Pause() {
	if scale := c.scale.Swap(0); scale > 0 {
		c.resumeScale.Store(scale)
	}
}

// Resume restores the time scale in effect before Pause.
func (c *Clock) Resume() {
	if c.Paused() {
		c.scale.Store(c.resumeScale.Load())
	}
}

// SetTimeScale changes the time scale. Negative scales are treated as zero.
func (c *Clock) SetTimeScale(scale float32) {
	if scale < 0 {
		scale = 0
	}
	if scale > 0 {
		c.resumeScale.Store(scale)
	}
	c.scale.Store(scale)
}

// TimeScale returns the current time scale.
func (c *Clock) TimeScale() float32 {
	return c.scale.Load()
}

// Now returns the scaled seconds elapsed.
func (c *Clock) Now() float32 {
	return c.now.Load()
}

// Unscaled returns the real seconds fed to Advance while running.
func (c *Clock) Unscaled() float32 {
	return c.unscaled.Load()
}

// Delta returns the scaled delta of the last Advance, or zero while paused.
func (c *Clock) Delta() float32 {
	return c.delta.Load()
}

// Frame returns how many ticks have advanced the clock.
func (c *Clock) Frame() uint64 {
	return c.frame.Load()
}
