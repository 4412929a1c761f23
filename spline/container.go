package spline

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/geometry"
)

// Container places a spline in the world.
type Container struct {
	Name   string
	Frame  geometry.Frame
	Spline *Spline
}

// NewContainer wraps s with the given frame.
func NewContainer(name string, frame geometry.Frame, s *Spline) *Container {
	return &Container{Name: name, Frame: frame, Spline: s}
}

// EvaluatePosition returns the world position at t.
func (c *Container) EvaluatePosition(t float32) mgl32.Vec3 {
	return c.Frame.TransformPoint(c.Spline.Evaluate(t))
}

// EvaluateTangent returns the normalized world tangent at t.
func (c *Container) EvaluateTangent(t float32) mgl32.Vec3 {
	return game.Normalized(c.Frame.TransformDirection(c.Spline.Tangent(t)))
}

// EvaluateUpVector returns the normalized world up at t.
func (c *Container) EvaluateUpVector(t float32) mgl32.Vec3 {
	return game.Normalized(c.Frame.TransformDirection(c.Spline.Up(t)))
}

// Nearest returns the closest world point on the curve to p together with its parameter.
func (c *Container) Nearest(p mgl32.Vec3) (mgl32.Vec3, float32) {
	local, t, _ := c.Spline.Nearest(c.Frame.InverseTransformPoint(p), game.SplineResolution)
	return c.Frame.TransformPoint(local), t
}

// Sample evaluates point, tangent and up at the closest parameter to p.
func (c *Container) Sample(p mgl32.Vec3) (point, forward, up mgl32.Vec3, t float32) {
	point, t = c.Nearest(p)
	return point, c.EvaluateTangent(t), c.EvaluateUpVector(t), t
}
