package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// Frame is a rigid transform with a lossy scale, used to place shapes, fields and rails in the world.
type Frame struct {
	Position mgl32.Vec3 `yaml:"position"`
	Rotation mgl32.Quat `yaml:"-"`
	Scale    mgl32.Vec3 `yaml:"scale"`
}

// IdentityFrame returns a frame at the origin with no rotation and unit scale.
func IdentityFrame() Frame {
	return Frame{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// At returns an unrotated, unscaled frame at pos.
func At(pos mgl32.Vec3) Frame {
	f := IdentityFrame()
	f.Position = pos
	return f
}

func (f Frame) scale() mgl32.Vec3 {
	s := f.Scale
	if s == (mgl32.Vec3{}) {
		return mgl32.Vec3{1, 1, 1}
	}
	return s
}

func (f Frame) rotation() mgl32.Quat {
	if f.Rotation == (mgl32.Quat{}) {
		return mgl32.QuatIdent()
	}
	return f.Rotation
}

// Orientation returns the frame rotation, treating the zero quaternion as identity.
func (f Frame) Orientation() mgl32.Quat {
	return f.rotation()
}

// LossyScale returns the frame's scale, defaulting zero scales to one.
func (f Frame) LossyScale() mgl32.Vec3 {
	return f.scale()
}

// Up returns the frame's rotated Y axis.
func (f Frame) Up() mgl32.Vec3 {
	return game.Up(f.rotation())
}

// Right returns the frame's rotated X axis.
func (f Frame) Right() mgl32.Vec3 {
	return game.Right(f.rotation())
}

// Forward returns the frame's rotated Z axis.
func (f Frame) Forward() mgl32.Vec3 {
	return game.Forward(f.rotation())
}

// TransformPoint maps a local point into world space.
func (f Frame) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	s := f.scale()
	return f.Position.Add(f.rotation().Rotate(mgl32.Vec3{p.X() * s.X(), p.Y() * s.Y(), p.Z() * s.Z()}))
}

// InverseTransformPoint maps a world point into the frame's local space.
func (f Frame) InverseTransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	s := f.scale()
	l := f.rotation().Inverse().Rotate(p.Sub(f.Position))
	return mgl32.Vec3{l.X() / s.X(), l.Y() / s.Y(), l.Z() / s.Z()}
}

// TransformDirection rotates a local direction into world space.
func (f Frame) TransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return f.rotation().Rotate(d)
}

// InverseTransformDirection rotates a world direction into local space.
func (f Frame) InverseTransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return f.rotation().Inverse().Rotate(d)
}
