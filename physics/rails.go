package physics

import (
	"github.com/google/uuid"
	"github.com/oomph-ac/motion/spline"
	"github.com/sasha-s/go-deadlock"
)

// RailIndex maps rail colliders to the splines they follow.
type RailIndex struct {
	rails map[uuid.UUID]*spline.Container
	mu    deadlock.RWMutex
}

// NewRailIndex returns an empty index.
func NewRailIndex() *RailIndex {
	return &RailIndex{rails: make(map[uuid.UUID]*spline.Container)}
}

// Register binds a collider to a spline.
func (r *RailIndex) Register(c *Collider, container *spline.Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rails[c.ID] = container
}

// Lookup returns the spline bound to a rail collider, if any.
func (r *RailIndex) Lookup(c *Collider) (*spline.Container, bool) {
	if r == nil || c == nil || c.Tag != TagRail {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	container, ok := r.rails[c.ID]
	return container, ok
}

// Len returns how many rails are registered.
func (r *RailIndex) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rails)
}
