// Package spline evaluates Catmull-Rom curves used by rails and spline gravity fields.
package spline

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/oerror"
)

// Knot is one control point of a spline. A zero Up defaults to world up.
type Knot struct {
	Position mgl32.Vec3
	Up       mgl32.Vec3
}

// Spline is an ordered list of knots evaluated as a uniform Catmull-Rom curve over t in [0, 1].
type Spline struct {
	knots  []Knot
	closed bool
}

// New returns a spline through the given knots.
func New(closed bool, knots ...Knot) (*Spline, error) {
	if len(knots) < 2 {
		return nil, oerror.ErrEmptySpline
	}
	s := &Spline{knots: make([]Knot, len(knots)), closed: closed}
	copy(s.knots, knots)
	for i := range s.knots {
		if s.knots[i].Up.LenSqr() <= game.Epsilon {
			s.knots[i].Up = game.WorldUp
		}
	}
	return s, nil
}

// Closed reports whether the curve loops back onto its first knot.
func (s *Spline) Closed() bool {
	return s.closed
}

// Knots returns a copy of the control points.
func (s *Spline) Knots() []Knot {
	out := make([]Knot, len(s.knots))
	copy(out, s.knots)
	return out
}

func (s *Spline) segments() int {
	if s.closed {
		return len(s.knots)
	}
	return len(s.knots) - 1
}

func (s *Spline) knot(i int) Knot {
	n := len(s.knots)
	if s.closed {
		return s.knots[((i%n)+n)%n]
	}
	// Open ends are extended by reflecting the neighbouring knot so the end segments stay uniform.
	if i < 0 {
		k := s.knots[0]
		k.Position = k.Position.Mul(2).Sub(s.knots[1].Position)
		return k
	}
	if i >= n {
		k := s.knots[n-1]
		k.Position = k.Position.Mul(2).Sub(s.knots[n-2].Position)
		return k
	}
	return s.knots[i]
}

// locate splits t into a segment index and the local parameter within that segment.
func (s *Spline) locate(t float32) (int, float32) {
	n := s.segments()
	if s.closed {
		t -= math32.Floor(t)
	} else {
		t = game.Clamp01(t)
	}
	f := t * float32(n)
	seg := int(math32.Floor(f))
	if seg >= n {
		seg = n - 1
	}
	return seg, f - float32(seg)
}

func (s *Spline) controls(seg int) (p0, p1, p2, p3 mgl32.Vec3) {
	return s.knot(seg - 1).Position, s.knot(seg).Position, s.knot(seg + 1).Position, s.knot(seg + 2).Position
}

// Evaluate returns the local position at t.
func (s *Spline) Evaluate(t float32) mgl32.Vec3 {
	seg, u := s.locate(t)
	p0, p1, p2, p3 := s.controls(seg)
	u2, u3 := u*u, u*u*u
	return p0.Mul(-0.5*u3 + u2 - 0.5*u).
		Add(p1.Mul(1.5*u3 - 2.5*u2 + 1)).
		Add(p2.Mul(-1.5*u3 + 2*u2 + 0.5*u)).
		Add(p3.Mul(0.5*u3 - 0.5*u2))
}

// Tangent returns the (unnormalized) derivative with respect to t.
func (s *Spline) Tangent(t float32) mgl32.Vec3 {
	seg, u := s.locate(t)
	p0, p1, p2, p3 := s.controls(seg)
	u2 := u * u
	d := p0.Mul(-1.5*u2 + 2*u - 0.5).
		Add(p1.Mul(4.5*u2 - 5*u)).
		Add(p2.Mul(-4.5*u2 + 4*u + 0.5)).
		Add(p3.Mul(1.5*u2 - u))
	return d.Mul(float32(s.segments()))
}

// Up returns the interpolated knot up at t, made orthogonal to the tangent.
func (s *Spline) Up(t float32) mgl32.Vec3 {
	seg, u := s.locate(t)
	a, b := s.knot(seg).Up, s.knot(seg+1).Up
	up := a.Mul(1 - u).Add(b.Mul(u))
	if tangent, ok := game.SafeNormalize(s.Tangent(t)); ok {
		up = game.ProjectOnPlane(up, tangent)
	}
	if n, ok := game.SafeNormalize(up); ok {
		return n
	}
	return game.Normalized(a)
}

// Nearest samples the curve at resolution steps, refines around the best sample and returns the
// closest local point, its parameter and its distance to p.
func (s *Spline) Nearest(p mgl32.Vec3, resolution int) (mgl32.Vec3, float32, float32) {
	if resolution < 2 {
		resolution = 2
	}
	bestT, bestDist := float32(0), float32(math32.MaxFloat32)
	step := 1 / float32(resolution)
	for i := 0; i <= resolution; i++ {
		t := float32(i) * step
		if d := s.Evaluate(t).Sub(p).LenSqr(); d < bestDist {
			bestT, bestDist = t, d
		}
	}
	for pass := 0; pass < refinePasses; pass++ {
		step *= 0.5
		for _, t := range [2]float32{bestT - step, bestT + step} {
			if !s.closed && (t < 0 || t > 1) {
				continue
			}
			if d := s.Evaluate(t).Sub(p).LenSqr(); d < bestDist {
				bestT, bestDist = t, d
			}
		}
	}
	if s.closed {
		bestT -= math32.Floor(bestT)
	}
	return s.Evaluate(bestT), bestT, math32.Sqrt(bestDist)
}

const refinePasses = 4
