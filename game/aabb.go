package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// AABBAround returns a box centered on center with the given half extents.
func AABBAround(center, half mgl32.Vec3) cube.BBox {
	return cube.Box(
		center.X()-half.X(), center.Y()-half.Y(), center.Z()-half.Z(),
		center.X()+half.X(), center.Y()+half.Y(), center.Z()+half.Z(),
	)
}

// AABBCenter returns the center of a box.
func AABBCenter(a cube.BBox) mgl32.Vec3 {
	return a.Min().Add(a.Max()).Mul(0.5)
}

// AABBExtents returns the half size of a box.
func AABBExtents(a cube.BBox) mgl32.Vec3 {
	return a.Max().Sub(a.Min()).Mul(0.5)
}

// AABBClosestPoint clamps v into the box.
func AABBClosestPoint(a cube.BBox, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(v.X(), a.Min().X(), a.Max().X()),
		mgl32.Clamp(v.Y(), a.Min().Y(), a.Max().Y()),
		mgl32.Clamp(v.Z(), a.Min().Z(), a.Max().Z()),
	}
}

// AABBContains reports whether v lies inside or on the box.
func AABBContains(a cube.BBox, v mgl32.Vec3) bool {
	return v.X() >= a.Min().X() && v.X() <= a.Max().X() &&
		v.Y() >= a.Min().Y() && v.Y() <= a.Max().Y() &&
		v.Z() >= a.Min().Z() && v.Z() <= a.Max().Z()
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))

	dist := math32.Sqrt(x*x + y*y + z*z)
	if math32.IsNaN(dist) {
		dist = 0
	}

	return dist
}

// AABBFaceNormal returns the outward normal of the face of a that p lies closest to.
func AABBFaceNormal(a cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	min, max := a.Min(), a.Max()
	best := float32(math32.MaxFloat32)
	var normal mgl32.Vec3
	check := func(d float32, n mgl32.Vec3) {
		d = math32.Abs(d)
		if d < best {
			best, normal = d, n
		}
	}
	check(p.X()-min.X(), mgl32.Vec3{-1, 0, 0})
	check(max.X()-p.X(), mgl32.Vec3{1, 0, 0})
	check(p.Y()-min.Y(), mgl32.Vec3{0, -1, 0})
	check(max.Y()-p.Y(), mgl32.Vec3{0, 1, 0})
	check(p.Z()-min.Z(), mgl32.Vec3{0, 0, -1})
	check(max.Z()-p.Z(), mgl32.Vec3{0, 0, 1})
	return normal
}

// AABBSwept returns the box covering a sphere of radius r moved from start to end.
func AABBSwept(start, end mgl32.Vec3, r float32) cube.BBox {
	return cube.Box(
		math32.Min(start.X(), end.X())-r, math32.Min(start.Y(), end.Y())-r, math32.Min(start.Z(), end.Z())-r,
		math32.Max(start.X(), end.X())+r, math32.Max(start.Y(), end.Y())+r, math32.Max(start.Z(), end.Z())+r,
	)
}
