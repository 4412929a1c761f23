package entity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/physics"
)

// filter returns the default query filter of the entity: its collision layers, no triggers and
// never its own collider.
func (e *Entity) filter(layers physics.LayerMask) physics.Filter {
	if layers == 0 {
		layers = e.conf.Collision
	}
	return physics.Filter{Layers: layers, IgnoreTriggers: true, Ignore: e.collider.ID}
}

// SphereCast sweeps a sphere of the entity's radius from its center. distance is measured to the
// far edge of the sphere, so the sphere itself travels |distance - radius|. A zero layer mask uses
// the entity's collision layers.
func (e *Entity) SphereCast(dir mgl32.Vec3, distance float32, layers physics.LayerMask) (physics.Hit, bool) {
	if e.env.Space == nil {
		return physics.Hit{}, false
	}
	cast := math32.Abs(distance - e.conf.Radius)
	return e.env.Space.SphereCast(e.position, e.conf.Radius, dir, cast, e.filter(layers))
}

// SphereCastFrom is SphereCast with a custom origin and radius.
func (e *Entity) SphereCastFrom(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, distance float32, layers physics.LayerMask) (physics.Hit, bool) {
	if e.env.Space == nil {
		return physics.Hit{}, false
	}
	return e.env.Space.SphereCast(origin, radius, dir, distance, e.filter(layers))
}

// Raycast casts a ray from origin ignoring triggers and the entity itself.
func (e *Entity) Raycast(origin, dir mgl32.Vec3, distance float32, layers physics.LayerMask) (physics.Hit, bool) {
	if e.env.Space == nil {
		return physics.Hit{}, false
	}
	return e.env.Space.Raycast(origin, dir, distance, e.filter(layers))
}

// Overlap returns the colliders touching a sphere at center, triggers included.
func (e *Entity) Overlap(center mgl32.Vec3, radius float32, layers physics.LayerMask) []*physics.Collider {
	if e.env.Space == nil {
		return nil
	}
	if layers == 0 {
		layers = physics.AllLayers
	}
	return e.env.Space.OverlapSphere(center, radius, physics.Filter{Layers: layers, Ignore: e.collider.ID})
}

// DetectingGround reports ground within distance below the center, first with a ray and then
// with a sphere sweep.
func (e *Entity) DetectingGround(distance float32) (physics.Hit, bool) {
	down := e.up.Mul(-1)
	if hit, ok := e.Raycast(e.position, down, distance, 0); ok {
		return hit, true
	}
	return e.SphereCast(down, distance, 0)
}

// Bottom is the center of the capsule's lower sphere.
func (e *Entity) Bottom() mgl32.Vec3 {
	return e.position.Sub(e.up.Mul(e.height*0.5 - e.conf.Radius))
}

// Top is the center of the capsule's upper sphere.
func (e *Entity) Top() mgl32.Vec3 {
	return e.position.Add(e.up.Mul(e.height*0.5 - e.conf.Radius))
}

// Feet is the lowest point of the capsule.
func (e *Entity) Feet() mgl32.Vec3 {
	return e.position.Sub(e.up.Mul(e.height * 0.5))
}

// capsuleCast sweeps the spheres covering the capsule and keeps the closest hit.
func (e *Entity) capsuleCast(dir mgl32.Vec3, distance float32) (physics.Hit, bool) {
	f := e.filter(0)
	var (
		best  physics.Hit
		found bool
	)
	for _, origin := range e.spheres() {
		hit, ok := e.env.Space.SphereCast(origin, e.conf.Radius, dir, distance, f)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}

// spheres returns centers of spheres of the entity's radius covering the capsule, spaced at
// most one radius apart.
func (e *Entity) spheres() []mgl32.Vec3 {
	bottom, top := e.Bottom(), e.Top()
	span := top.Sub(bottom).Len()
	if span <= e.conf.SkinWidth {
		return []mgl32.Vec3{e.position}
	}
	n := int(math32.Ceil(span/e.conf.Radius)) + 1
	out := make([]mgl32.Vec3, n)
	for i := range n {
		out[i] = bottom.Add(e.up.Mul(span * float32(i) / float32(n-1)))
	}
	return out
}
