package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// Every helper here returns the outward "up" at a world point relative to a shape's surface. The
// boolean is false when the point sits on a degenerate spot (on an axis, at a center) and no
// direction can be derived; callers keep their previous up in that case.

// ClosestPointOnSegment returns the point of segment a..b closest to p.
func ClosestPointOnSegment(a, b, p mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	sqr := ab.LenSqr()
	if sqr <= game.Epsilon {
		return a
	}
	t := mgl32.Clamp(p.Sub(a).Dot(ab)/sqr, 0, 1)
	return a.Add(ab.Mul(t))
}

// UpFromSphere points away from the sphere center.
func UpFromSphere(center, p mgl32.Vec3) (mgl32.Vec3, bool) {
	return game.SafeNormalize(p.Sub(center))
}

// UpFromBox projects p onto the surface of the oriented box of full size size. Points outside
// use the vector from the closest surface point, points inside use the nearest face normal.
func UpFromBox(center mgl32.Vec3, rotation mgl32.Quat, size, p mgl32.Vec3) (mgl32.Vec3, bool) {
	inv := rotation.Inverse()
	local := inv.Rotate(p.Sub(center))
	half := size.Mul(0.5)

	clamped := mgl32.Vec3{
		mgl32.Clamp(local.X(), -half.X(), half.X()),
		mgl32.Clamp(local.Y(), -half.Y(), half.Y()),
		mgl32.Clamp(local.Z(), -half.Z(), half.Z()),
	}
	if diff := local.Sub(clamped); diff.LenSqr() > game.Epsilon {
		return game.SafeNormalize(rotation.Rotate(diff))
	}

	// Inside: pick the face with the least penetration.
	best := float32(math32.MaxFloat32)
	var normal mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		if d := half[axis] - local[axis]; d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = 1
		}
		if d := local[axis] + half[axis]; d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = -1
		}
	}
	return rotation.Rotate(normal), true
}

// UpFromCylinder points radially away from the cylinder axis. With capped set, points past an
// end cap use the cap's axis direction instead.
func UpFromCylinder(center, axis mgl32.Vec3, height float32, capped bool, p mgl32.Vec3) (mgl32.Vec3, bool) {
	axis, ok := game.SafeNormalize(axis)
	if !ok {
		return mgl32.Vec3{}, false
	}
	local := p.Sub(center)
	along := local.Dot(axis)
	if capped && math32.Abs(along) > height*0.5 {
		if along < 0 {
			return axis.Mul(-1), true
		}
		return axis, true
	}
	return game.SafeNormalize(local.Sub(axis.Mul(along)))
}

// UpFromCapsule points away from the capsule's inner segment.
func UpFromCapsule(center, axis mgl32.Vec3, height, radius float32, p mgl32.Vec3) (mgl32.Vec3, bool) {
	axis = game.Normalized(axis)
	offset := math32.Max(height*0.5-radius, 0)
	top := center.Add(axis.Mul(offset))
	bottom := center.Sub(axis.Mul(offset))
	return game.SafeNormalize(p.Sub(ClosestPointOnSegment(bottom, top, p)))
}

// UpFromHalfPipe measures against the pipe axis running along right with the given length.
// When inward is set the result points from p towards the axis, otherwise away from it.
func UpFromHalfPipe(center, right mgl32.Vec3, length float32, p mgl32.Vec3, inward bool) (mgl32.Vec3, bool) {
	right = game.Normalized(right)
	left := center.Sub(right.Mul(length * 0.5))
	end := center.Add(right.Mul(length * 0.5))
	closest := ClosestPointOnSegment(left, end, p)
	if inward {
		return game.SafeNormalize(closest.Sub(p))
	}
	return game.SafeNormalize(p.Sub(closest))
}

// UpFromDisc uses the disc normal above or below the disc, and the vector from the closest rim
// point beyond its radius.
func UpFromDisc(center, normal mgl32.Vec3, radius float32, p mgl32.Vec3) (mgl32.Vec3, bool) {
	normal, ok := game.SafeNormalize(normal)
	if !ok {
		return mgl32.Vec3{}, false
	}
	local := p.Sub(center)
	along := local.Dot(normal)
	planar := local.Sub(normal.Mul(along))
	if planar.Len() <= radius {
		if along < 0 {
			return normal.Mul(-1), true
		}
		return normal, true
	}
	rim := center.Add(game.Normalized(planar).Mul(radius))
	return game.SafeNormalize(p.Sub(rim))
}
