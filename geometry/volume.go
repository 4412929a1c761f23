package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

type VolumeKind uint8

const (
	VolumeBox VolumeKind = iota
	VolumeSphere
	VolumeCapsule
)

func (k VolumeKind) String() string {
	switch k {
	case VolumeBox:
		return "box"
	case VolumeSphere:
		return "sphere"
	case VolumeCapsule:
		return "capsule"
	}
	return fmt.Sprintf("volume(%d)", uint8(k))
}

// ParseVolumeKind maps a level file name onto a VolumeKind.
func ParseVolumeKind(s string) (VolumeKind, bool) {
	switch s {
	case "box", "":
		return VolumeBox, true
	case "sphere":
		return VolumeSphere, true
	case "capsule":
		return VolumeCapsule, true
	}
	return 0, false
}

// Volume is a trigger region placed by a frame. Size is the full local box size; capsules run
// along the frame's up axis.
type Volume struct {
	Kind   VolumeKind
	Frame  Frame
	Center mgl32.Vec3
	Size   mgl32.Vec3
	Radius float32
	Height float32
}

// WorldCenter returns the volume's center in world space.
func (v Volume) WorldCenter() mgl32.Vec3 {
	return v.Frame.Position.Add(v.Frame.TransformDirection(v.Center))
}

func (v Volume) worldRadius() float32 {
	s := v.Frame.LossyScale()
	return v.Radius * math32.Max(s.X(), math32.Max(s.Y(), s.Z()))
}

// Contains reports whether p lies inside the volume.
func (v Volume) Contains(p mgl32.Vec3) bool {
	switch v.Kind {
	case VolumeSphere:
		return p.Sub(v.WorldCenter()).Len() <= v.worldRadius()
	case VolumeCapsule:
		up := v.Frame.Up()
		r := v.worldRadius()
		offset := math32.Max(v.Height*v.Frame.LossyScale().Y()*0.5-r, 0)
		c := v.WorldCenter()
		closest := ClosestPointOnSegment(c.Sub(up.Mul(offset)), c.Add(up.Mul(offset)), p)
		return p.Sub(closest).Len() <= r
	default:
		local := v.Frame.InverseTransformDirection(p.Sub(v.WorldCenter()))
		s := v.Frame.LossyScale()
		half := mgl32.Vec3{v.Size.X() * s.X(), v.Size.Y() * s.Y(), v.Size.Z() * s.Z()}.Mul(0.5)
		return math32.Abs(local.X()) <= half.X() &&
			math32.Abs(local.Y()) <= half.Y() &&
			math32.Abs(local.Z()) <= half.Z()
	}
}

// Bounds returns a world axis-aligned box enclosing the volume.
func (v Volume) Bounds() cube.BBox {
	c := v.WorldCenter()
	switch v.Kind {
	case VolumeSphere:
		r := v.worldRadius()
		return game.AABBAround(c, mgl32.Vec3{r, r, r})
	case VolumeCapsule:
		r := v.worldRadius()
		h := math32.Max(v.Height*v.Frame.LossyScale().Y()*0.5, r)
		return game.AABBAround(c, mgl32.Vec3{h, h, h})
	default:
		s := v.Frame.LossyScale()
		half := mgl32.Vec3{v.Size.X() * s.X(), v.Size.Y() * s.Y(), v.Size.Z() * s.Z()}.Mul(0.5)
		// Enclose the rotated box by projecting its half extents on each world axis.
		r, u, f := v.Frame.Right(), v.Frame.Up(), v.Frame.Forward()
		ext := mgl32.Vec3{}
		for i := 0; i < 3; i++ {
			ext[i] = math32.Abs(r[i])*half.X() + math32.Abs(u[i])*half.Y() + math32.Abs(f[i])*half.Z()
		}
		return game.AABBAround(c, ext)
	}
}
