// Package gravity resolves the local up direction inside gravity fields and arbitrates which field
// an entity is attached to.
package gravity

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/geometry"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/spline"
)

type Shape uint8

const (
	Parallel Shape = iota
	Box
	Sphere
	Capsule
	Cylinder
	Spline
	HalfPipe
	Disc
)

var shapeNames = map[Shape]string{
	Parallel: "parallel",
	Box:      "box",
	Sphere:   "sphere",
	Capsule:  "capsule",
	Cylinder: "cylinder",
	Spline:   "spline",
	HalfPipe: "half-pipe",
	Disc:     "disc",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// ParseShape returns the shape with the given name.
func ParseShape(name string) (Shape, error) {
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", oerror.ErrUnknownShape, name)
}

// Field is a region of space that redefines "up" for entities attached to it. Geometric values
// are local and scaled by the frame the way a placed level object would be.
type Field struct {
	ID    uuid.UUID
	Name  string
	Shape Shape
	Frame geometry.Frame

	// LocalCenter is the field center relative to the frame position.
	LocalCenter mgl32.Vec3
	// LocalSize is the box size, scaled by the frame.
	LocalSize mgl32.Vec3
	// LocalHeight is used by box, cylinder, capsule and half-pipe shapes.
	LocalHeight float32
	// LocalRadius is used by cylinder, capsule, sphere, half-pipe and disc shapes.
	LocalRadius float32

	// Trigger is the region in which entities are affected.
	Trigger geometry.Volume
	// Rail is the curve of spline fields.
	Rail *spline.Container

	Capped                bool
	Inverted              bool
	RotateVelocity        bool
	Priority              int
	DetachOnExit          bool
	ResetRotationOnDetach bool
	InvertXAxis           bool
	InvertZAxis           bool

	ignored *ignoreSet
}

// NewField returns a field with the given shape and frame, the default height and radius and an
// empty ignore set.
func NewField(name string, shape Shape, frame geometry.Frame) *Field {
	return &Field{
		ID:             uuid.New(),
		Name:           name,
		Shape:          shape,
		Frame:          frame,
		LocalSize:      mgl32.Vec3{1, 1, 1},
		LocalHeight:    2,
		LocalRadius:    0.5,
		RotateVelocity: true,
		ignored:        newIgnoreSet(),
	}
}

// Center returns the field center in world space.
func (f *Field) Center() mgl32.Vec3 {
	return f.Frame.Position.Add(f.Frame.TransformDirection(f.LocalCenter))
}

// Size returns the scaled box size.
func (f *Field) Size() mgl32.Vec3 {
	s := f.Frame.LossyScale()
	return mgl32.Vec3{f.LocalSize.X() * s.X(), f.LocalSize.Y() * s.Y(), f.LocalSize.Z() * s.Z()}
}

// Height returns the scaled height.
func (f *Field) Height() float32 {
	return f.LocalHeight * f.Frame.LossyScale().Y()
}

// HalfPipeLength returns the scaled length of the half-pipe axis.
func (f *Field) HalfPipeLength() float32 {
	return f.LocalHeight * f.Frame.LossyScale().X()
}

// Radius returns the scaled radius.
func (f *Field) Radius() float32 {
	s := f.Frame.LossyScale()
	return f.LocalRadius * math32.Max(s.X(), s.Z())
}

// Up returns the frame's up axis.
func (f *Field) Up() mgl32.Vec3 {
	return f.Frame.Up()
}

// Contains reports whether p is inside the field's trigger region.
func (f *Field) Contains(p mgl32.Vec3) bool {
	return f.Trigger.Contains(p)
}

func (f *Field) sign() float32 {
	if f.Inverted {
		return -1
	}
	return 1
}

// UpDirectionAt returns the local up at p. The boolean is false when p sits on a degenerate
// spot of the shape.
func (f *Field) UpDirectionAt(p mgl32.Vec3) (mgl32.Vec3, bool) {
	var (
		up mgl32.Vec3
		ok bool
	)
	switch f.Shape {
	case Box:
		up, ok = geometry.UpFromBox(f.Center(), f.Frame.Orientation(), f.Size(), p)
	case Sphere:
		up, ok = geometry.UpFromSphere(f.Center(), p)
	case Cylinder:
		up, ok = geometry.UpFromCylinder(f.Center(), f.Up(), f.Height(), f.Capped, p)
	case Capsule:
		up, ok = geometry.UpFromCapsule(f.Center(), f.Up(), f.Height(), f.Radius(), p)
	case Spline:
		if f.Rail == nil {
			return mgl32.Vec3{}, false
		}
		_, t := f.Rail.Nearest(p)
		up, ok = f.Rail.EvaluateUpVector(t), true
	case HalfPipe:
		// Up faces the pipe axis; inversion is carried by the inward flag, not the sign.
		return geometry.UpFromHalfPipe(f.Center(), f.Frame.Right(), f.HalfPipeLength(), p, !f.Inverted)
	case Disc:
		up, ok = geometry.UpFromDisc(f.Center(), f.Up(), f.Radius(), p)
	default:
		up, ok = f.Up(), true
	}
	if !ok {
		return mgl32.Vec3{}, false
	}
	return up.Mul(f.sign()), true
}

// GravityDirectionAt returns the direction gravity pulls towards at p.
func (f *Field) GravityDirectionAt(p mgl32.Vec3) (mgl32.Vec3, bool) {
	up, ok := f.UpDirectionAt(p)
	return up.Mul(-1), ok
}

// IgnoreCollider stops the field from affecting the collider until the cooldown elapses.
func (f *Field) IgnoreCollider(id uuid.UUID, now float32) {
	f.ignored.add(id, now, now+game.FieldIgnoreCooldown)
}

// Ignoring reports whether the collider is in its cooldown window.
func (f *Field) Ignoring(id uuid.UUID, now float32) bool {
	return f.ignored.contains(id, now)
}

// Expire drops cooldown entries that have elapsed.
func (f *Field) Expire(now float32) {
	f.ignored.expire(now)
}

// ClearIgnored drops every cooldown entry.
func (f *Field) ClearIgnored() {
	f.ignored.clear()
}
