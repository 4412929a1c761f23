package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/geometry"
)

// Pole is a climbable cylinder. Colliders tagged as poles carry one as their Owner.
type Pole struct {
	// Base is the center of the bottom of the pole.
	Base   mgl32.Vec3
	Axis   mgl32.Vec3
	Height float32
	Radius float32
}

// NewPole returns an upright pole standing on base.
func NewPole(base mgl32.Vec3, height, radius float32) *Pole {
	return &Pole{Base: base, Axis: game.WorldUp, Height: height, Radius: radius}
}

// Top is the center of the top of the pole.
func (p *Pole) Top() mgl32.Vec3 {
	return p.Base.Add(p.axis().Mul(p.Height))
}

// ClosestPoint returns the point of the pole's axis closest to pt.
func (p *Pole) ClosestPoint(pt mgl32.Vec3) mgl32.Vec3 {
	return geometry.ClosestPointOnSegment(p.Base, p.Top(), pt)
}

// DirectionTo returns the horizontal direction from pt to the axis of the pole and the distance
// between them.
func (p *Pole) DirectionTo(pt mgl32.Vec3) (mgl32.Vec3, float32) {
	head := game.ProjectOnPlane(p.ClosestPoint(pt).Sub(pt), p.axis())
	dir, ok := game.SafeNormalize(head)
	if !ok {
		return mgl32.Vec3{}, 0
	}
	return dir, head.Len()
}

// ClampHeight keeps pt between the ends of the pole shrunk by offset on both sides.
func (p *Pole) ClampHeight(pt mgl32.Vec3, offset float32) mgl32.Vec3 {
	axis := p.axis()
	along := pt.Sub(p.Base).Dot(axis)
	clamped := mgl32.Clamp(along, offset, max(p.Height-offset, offset))
	return pt.Add(axis.Mul(clamped - along))
}

func (p *Pole) axis() mgl32.Vec3 {
	if a, ok := game.SafeNormalize(p.Axis); ok {
		return a
	}
	return game.WorldUp
}
