package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// WorldUp is the default up direction when no gravity field is attached.
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, 1}
)

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Returns -1 if x < y, 0 if x == y, or 1 if x > y
func PHPSpaceshipOp(x, y float32) float32 {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}

	return 1
}

// SafeNormalize normalizes v. The boolean is false when v is too short to carry a direction,
// in which case the zero vector is returned.
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l <= Epsilon {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Normalized is SafeNormalize without the flag.
func Normalized(v mgl32.Vec3) mgl32.Vec3 {
	n, _ := SafeNormalize(v)
	return n
}

// Project returns the component of v along n.
func Project(v, n mgl32.Vec3) mgl32.Vec3 {
	sqr := n.LenSqr()
	if sqr <= Epsilon*Epsilon {
		return mgl32.Vec3{}
	}
	return n.Mul(v.Dot(n) / sqr)
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(Project(v, n))
}

// MoveTowards moves current towards target by at most maxDelta.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// MoveTowardsVec moves current towards target by at most maxDelta.
func MoveTowardsVec(current, target mgl32.Vec3, maxDelta float32) mgl32.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist <= Epsilon {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// ClampMagnitude shortens v to max if it is longer.
func ClampMagnitude(v mgl32.Vec3, max float32) mgl32.Vec3 {
	sqr := v.LenSqr()
	if sqr > max*max && sqr > 0 {
		return v.Mul(max / math32.Sqrt(sqr))
	}
	return v
}

// Angle returns the unsigned angle between a and b in degrees. Zero vectors give 0.
func Angle(a, b mgl32.Vec3) float32 {
	denom := math32.Sqrt(a.LenSqr() * b.LenSqr())
	if denom <= Epsilon {
		return 0
	}
	return mgl32.RadToDeg(math32.Acos(mgl32.Clamp(a.Dot(b)/denom, -1, 1)))
}

func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}

func InverseLerp(a, b, v float32) float32 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

func Clamp01(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}

// LookRotation returns the rotation whose forward axis points along forward and whose up
// axis is as close to up as possible. A degenerate forward yields the identity.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	f, ok := SafeNormalize(forward)
	if !ok {
		return mgl32.QuatIdent()
	}
	r, ok := SafeNormalize(up.Cross(f))
	if !ok {
		// forward is parallel to up, borrow another reference axis.
		ref := WorldForward
		if math32.Abs(f.Dot(ref)) > 0.99 {
			ref = WorldRight
		}
		r = Normalized(ref.Cross(f))
	}
	u := f.Cross(r)
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(r, u, f).Mat4()).Normalize()
}

// FromToRotation returns the shortest rotation taking from onto to.
func FromToRotation(from, to mgl32.Vec3) mgl32.Quat {
	if from.LenSqr() <= Epsilon || to.LenSqr() <= Epsilon {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(from, to)
}

// RotateTowards rotates from towards to by at most maxDegrees.
func RotateTowards(from, to mgl32.Quat, maxDegrees float32) mgl32.Quat {
	dot := math32.Abs(from.Dot(to))
	angle := mgl32.RadToDeg(2 * math32.Acos(mgl32.Clamp(dot, -1, 1)))
	if angle <= maxDegrees || angle <= Epsilon {
		return to
	}
	return mgl32.QuatSlerp(from, to, maxDegrees/angle)
}

// Right returns the rotated X axis.
func Right(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(WorldRight)
}

// Up returns the rotated Y axis.
func Up(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(WorldUp)
}

// Forward returns the rotated Z axis.
func Forward(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(WorldForward)
}
