package physics

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// Raycast returns the closest collider hit by the ray. Rays starting inside a collider do not
// report that collider.
func (s *Space) Raycast(origin, dir mgl32.Vec3, maxDist float32, f Filter) (Hit, bool) {
	dir, ok := game.SafeNormalize(dir)
	if !ok || maxDist <= 0 {
		return Hit{}, false
	}
	end := origin.Add(dir.Mul(maxDist))

	q := newQuery()
	defer putQuery(q)

	s.RLock()
	defer s.RUnlock()
	s.candidatesAlongRay(q, origin, end)

	var best Hit
	found := false
	for _, c := range q.candidates {
		if !f.accepts(c) {
			continue
		}
		hit, ok := rayCollider(c, origin, dir, end, maxDist)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}

// SphereCast sweeps a sphere of the given radius and returns the first collider it touches. A
// sphere that already overlaps a collider and moves further into it reports a hit at distance 0.
func (s *Space) SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32, f Filter) (Hit, bool) {
	dir, ok := game.SafeNormalize(dir)
	if !ok || maxDist < 0 {
		return Hit{}, false
	}
	end := origin.Add(dir.Mul(maxDist))
	swept := game.AABBSwept(origin, end, radius)

	q := newQuery()
	defer putQuery(q)

	s.RLock()
	defer s.RUnlock()
	s.candidatesWithin(q, swept)

	var best Hit
	found := false
	for _, c := range q.candidates {
		if !f.accepts(c) {
			continue
		}
		hit, ok := sweepCollider(c, origin, radius, dir, maxDist)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}

// OverlapSphere returns every collider touching the sphere, closest first.
func (s *Space) OverlapSphere(center mgl32.Vec3, radius float32, f Filter) []*Collider {
	q := newQuery()
	defer putQuery(q)

	s.RLock()
	s.candidatesWithin(q, game.AABBAround(center, mgl32.Vec3{radius, radius, radius}))
	s.RUnlock()

	var out []*Collider
	for _, c := range q.candidates {
		if f.accepts(c) && overlaps(c, center, radius) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *Collider) int {
		da, db := a.ClosestPoint(center).Sub(center).LenSqr(), b.ClosestPoint(center).Sub(center).LenSqr()
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return out
}

func overlaps(c *Collider, center mgl32.Vec3, radius float32) bool {
	switch c.Kind {
	case ShapeSphere:
		return c.Center.Sub(center).Len() <= c.Radius+radius
	case ShapeVolume:
		return c.Contains(center) || c.ClosestPoint(center).Sub(center).Len() <= radius
	}
	return game.AABBVectorDistance(c.Box, center) <= radius
}

func rayCollider(c *Collider, origin, dir, end mgl32.Vec3, maxDist float32) (Hit, bool) {
	if c.Kind == ShapeSphere {
		t, ok := raySphere(origin, dir, maxDist, c.Center, c.Radius)
		if !ok {
			return Hit{}, false
		}
		point := origin.Add(dir.Mul(t))
		return Hit{Collider: c, Point: point, Normal: game.Normalized(point.Sub(c.Center)), Distance: t}, true
	}

	bb := c.Bounds()
	if game.AABBContains(bb, origin) {
		return Hit{}, false
	}
	result, ok := trace.BBoxIntercept(bb, origin, end)
	if !ok {
		return Hit{}, false
	}
	point := result.Position()
	return Hit{Collider: c, Point: point, Normal: game.AABBFaceNormal(bb, point), Distance: point.Sub(origin).Len()}, true
}

func sweepCollider(c *Collider, origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	if c.Kind == ShapeSphere {
		toCenter := c.Center.Sub(origin)
		if toCenter.Len() <= c.Radius+radius {
			if toCenter.Dot(dir) <= 0 {
				return Hit{}, false
			}
			normal := game.Normalized(origin.Sub(c.Center))
			return Hit{Collider: c, Point: c.Center.Add(normal.Mul(c.Radius)), Normal: normal}, true
		}
		t, ok := raySphere(origin, dir, maxDist, c.Center, c.Radius+radius)
		if !ok {
			return Hit{}, false
		}
		normal := game.Normalized(origin.Add(dir.Mul(t)).Sub(c.Center))
		return Hit{Collider: c, Point: c.Center.Add(normal.Mul(c.Radius)), Normal: normal, Distance: t}, true
	}

	bb := c.Bounds()
	grown := bb.Grow(radius)
	if game.AABBContains(grown, origin) {
		normal := game.AABBFaceNormal(grown, origin)
		if normal.Dot(dir) >= 0 {
			return Hit{}, false
		}
		return Hit{Collider: c, Point: game.AABBClosestPoint(bb, origin), Normal: normal}, true
	}
	if maxDist <= 0 {
		return Hit{}, false
	}
	result, ok := trace.BBoxIntercept(grown, origin, origin.Add(dir.Mul(maxDist)))
	if !ok {
		return Hit{}, false
	}
	centerAtHit := result.Position()
	return Hit{
		Collider: c,
		Point:    game.AABBClosestPoint(bb, centerAtHit),
		Normal:   game.AABBFaceNormal(grown, centerAtHit),
		Distance: centerAtHit.Sub(origin).Len(),
	}, true
}

// raySphere intersects a ray with a sphere, ignoring rays that start inside it.
func raySphere(origin, dir mgl32.Vec3, maxDist float32, center mgl32.Vec3, radius float32) (float32, bool) {
	m := origin.Sub(center)
	b := m.Dot(dir)
	c := m.Dot(m) - radius*radius
	if c <= 0 || b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math32.Sqrt(disc)
	if t < 0 || t > maxDist {
		return 0, false
	}
	return t, true
}

var _ Provider = (*Space)(nil)
