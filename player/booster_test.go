package player_test

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
	"github.com/stretchr/testify/require"
)

func pad(b *player.Booster) *physics.Collider {
	c := physics.NewBox("pad", cube.Box(-2, 0, -2, 2, 2, 2), physics.LayerDefault, physics.TagBooster)
	c.Trigger = true
	c.Owner = b
	return c
}

func TestForwardBoosterLaunchesOnce(t *testing.T) {
	b := player.NewBooster(mgl32.Vec3{0, 0, 1})
	w := newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor(), pad(b))
	w.p.SetJumps(2)

	w.tick()
	require.Equal(t, player.Walk, w.current())
	require.InDelta(t, 40, w.p.Lateral().Z(), 1e-3)
	require.InDelta(t, 0, w.p.Lateral().X(), 1e-3)
	require.InDelta(t, 1, w.p.Forward().Z(), 1e-3)
	require.Zero(t, w.p.JumpCounter())

	// Still on the pad, so no second launch.
	w.tick()
	require.Less(t, w.p.Lateral().Len(), float32(40))

	w.p.Teleport(mgl32.Vec3{0, 1.01, -20})
	w.tick()
	w.p.Teleport(mgl32.Vec3{0, 1.01, 0})
	w.tick()
	require.InDelta(t, 40, w.p.Lateral().Z(), 1e-3)
}

func TestUpwardBooster(t *testing.T) {
	b := player.NewBooster(mgl32.Vec3{0, 0, 1})
	b.Upward = true
	b.CountAsJump = true
	w := newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor(), pad(b))

	w.tick()
	require.Equal(t, player.Fall, w.current())
	require.InDelta(t, 40, w.p.VerticalVelocity(), 1e-3)
	require.Equal(t, 1, w.p.JumpCounter())

	b.BoostState = true
	w = newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor(), pad(b))
	w.tick()
	require.Equal(t, player.Boosting, w.current())
}

func TestAngledBoosterSplitsForce(t *testing.T) {
	b := player.NewBooster(mgl32.Vec3{1, 0, 0})
	b.Angle = 45
	w := newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor(), pad(b))

	w.tick()
	require.Equal(t, player.Fall, w.current())
	require.InDelta(t, 28.284, w.p.Lateral().X(), 1e-2)
	require.InDelta(t, 28.284, w.p.VerticalVelocity(), 1e-2)
}
