package spline

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/geometry"
	"github.com/stretchr/testify/require"
)

func straight(t *testing.T) *Spline {
	s, err := New(false,
		Knot{Position: mgl32.Vec3{0, 0, 0}},
		Knot{Position: mgl32.Vec3{0, 0, 10}},
		Knot{Position: mgl32.Vec3{0, 0, 20}},
	)
	require.NoError(t, err)
	return s
}

func TestNewRejectsSingleKnot(t *testing.T) {
	_, err := New(false, Knot{})
	require.Error(t, err)
}

func TestEvaluatePassesThroughKnots(t *testing.T) {
	s := straight(t)
	require.True(t, s.Evaluate(0).ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, 1e-4))
	require.True(t, s.Evaluate(0.5).ApproxEqualThreshold(mgl32.Vec3{0, 0, 10}, 1e-4))
	require.True(t, s.Evaluate(1).ApproxEqualThreshold(mgl32.Vec3{0, 0, 20}, 1e-4))
}

func TestTangentAndUp(t *testing.T) {
	s := straight(t)
	tangent := s.Tangent(0.25).Normalize()
	require.True(t, tangent.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-4))
	require.True(t, s.Up(0.25).ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-4))
}

func TestNearest(t *testing.T) {
	s := straight(t)
	point, param, dist := s.Nearest(mgl32.Vec3{3, 0, 15}, 128)
	require.InDelta(t, 15, point.Z(), 0.05)
	require.InDelta(t, 0.75, param, 0.01)
	require.InDelta(t, 3, dist, 0.05)
}

func TestContainerTransformsIntoWorld(t *testing.T) {
	c := NewContainer("rail", geometry.At(mgl32.Vec3{100, 5, 0}), straight(t))
	point, forward, up, param := c.Sample(mgl32.Vec3{100, 7, 5})
	require.InDelta(t, 0.25, param, 0.01)
	require.True(t, point.ApproxEqualThreshold(mgl32.Vec3{100, 5, 5}, 0.05))
	require.True(t, forward.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-3))
	require.True(t, up.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-3))
}
