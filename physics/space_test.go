package physics

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/geometry"
	"github.com/stretchr/testify/require"
)

func floorSpace() (*Space, *Collider) {
	s := NewSpace(4)
	floor := NewBox("floor", cube.Box(-50, -1, -50, 50, 0, 50), LayerGround, TagNone)
	s.Add(floor)
	return s, floor
}

func TestRaycastHitsFloor(t *testing.T) {
	s, floor := floorSpace()

	hit, ok := s.Raycast(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, 10, Filter{})
	require.True(t, ok)
	require.Equal(t, floor, hit.Collider)
	require.InDelta(t, 5, hit.Distance, 1e-4)
	require.True(t, hit.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}))

	_, ok = s.Raycast(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, 4, Filter{})
	require.False(t, ok, "the floor is out of reach")

	_, ok = s.Raycast(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}, 10, Filter{})
	require.False(t, ok, "a zero direction never hits")
}

func TestSphereCastDistanceAccountsForRadius(t *testing.T) {
	s, _ := floorSpace()

	hit, ok := s.SphereCast(mgl32.Vec3{0, 1, 0}, 0.5, mgl32.Vec3{0, -1, 0}, 1, Filter{})
	require.True(t, ok)
	require.InDelta(t, 0.5, hit.Distance, 1e-4)
	require.InDelta(t, 0, hit.Point.Y(), 1e-4)
}

func TestFilterLayersAndTriggers(t *testing.T) {
	s, _ := floorSpace()
	water := NewVolume("water", geometry.Volume{Kind: geometry.VolumeBox, Frame: geometry.At(mgl32.Vec3{0, 2, 0}), Size: mgl32.Vec3{4, 4, 4}}, LayerWater, TagWater)
	s.Add(water)

	_, ok := s.Raycast(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, 10, Filter{Layers: Mask(LayerWall)})
	require.False(t, ok)

	hit, ok := s.Raycast(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0}, 20, Filter{IgnoreTriggers: true})
	require.True(t, ok)
	require.NotEqual(t, water, hit.Collider)

	overlap := s.OverlapSphere(mgl32.Vec3{0, 2, 0}, 0.5, Filter{Layers: Mask(LayerWater)})
	require.Equal(t, []*Collider{water}, overlap)
}

func TestOverlapSphereOrdersByDistance(t *testing.T) {
	s := NewSpace(4)
	far := NewSphere("far", mgl32.Vec3{6, 0, 0}, 1, LayerEnemy, TagEnemy)
	near := NewSphere("near", mgl32.Vec3{3, 0, 0}, 1, LayerEnemy, TagEnemy)
	s.Add(far)
	s.Add(near)

	got := s.OverlapSphere(mgl32.Vec3{}, 10, Filter{Layers: Mask(LayerEnemy)})
	require.Equal(t, []*Collider{near, far}, got)

	s.MoveSphere(far, mgl32.Vec3{40, 0, 0})
	got = s.OverlapSphere(mgl32.Vec3{}, 10, Filter{Layers: Mask(LayerEnemy)})
	require.Equal(t, []*Collider{near}, got)

	s.Remove(near.ID)
	require.Empty(t, s.OverlapSphere(mgl32.Vec3{}, 10, Filter{}))
	require.Equal(t, 1, s.Len())
}

func TestSphereCastIgnoresSelf(t *testing.T) {
	s := NewSpace(4)
	self := NewSphere("self", mgl32.Vec3{}, 0.5, LayerEntity, TagPlayer)
	wall := NewBox("wall", cube.Box(2, -1, -1, 3, 1, 1), LayerWall, TagNone)
	s.Add(self)
	s.Add(wall)

	hit, ok := s.SphereCast(mgl32.Vec3{}, 0.5, mgl32.Vec3{1, 0, 0}, 5, Filter{Ignore: self.ID})
	require.True(t, ok)
	require.Equal(t, wall, hit.Collider)
	require.InDelta(t, 1.5, hit.Distance, 1e-4)
	require.True(t, hit.Normal.ApproxEqual(mgl32.Vec3{-1, 0, 0}))
}
