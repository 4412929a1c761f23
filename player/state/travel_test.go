package state_test

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/geometry"
	"github.com/oomph-ac/motion/input"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/spline"
	"github.com/oomph-ac/motion/stats"
	"github.com/stretchr/testify/require"
)

// rail lays a straight open rail from a to b and registers it with the player's rail index.
func (h *harness) rail(from, to mgl32.Vec3) *spline.Container {
	h.t.Helper()
	s, err := spline.New(false, spline.Knot{Position: from}, spline.Knot{Position: to})
	require.NoError(h.t, err)
	container := spline.NewContainer("rail", geometry.IdentityFrame(), s)
	c := physics.NewBox("rail", game.AABBSwept(from, to, 0.1), physics.LayerRail, physics.TagRail)
	h.space.Add(c)
	h.p.RailIndex().Register(c, container)
	return container
}

// until ticks at most n times, stopping as soon as the player is in v.
func (h *harness) until(v fsm.Variant, n int) {
	h.t.Helper()
	for range n {
		if h.current() == v {
			return
		}
		h.tick()
	}
	require.Equal(h.t, player.VariantName(v), player.VariantName(h.current()))
}

func TestRailGrindEndToEnd(t *testing.T) {
	h := newHarness(t, mgl32.Vec3{0, 2, 5}, stats.Default())
	container := h.rail(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 20})
	h.p.States().ChangeTo(player.Fall)
	h.p.SetLateral(mgl32.Vec3{0, 0, 12})

	h.until(player.RailGrind, 60)
	require.True(t, h.p.OnRails())
	require.Same(t, container, h.p.Rails())

	s := h.p.Stats().Grind
	require.InDelta(t, h.p.OriginalHeight()*0.5+s.RadiusOffset, h.p.Position().Y(), 1e-3)
	for range 240 {
		speed := h.p.Velocity().Len()
		require.GreaterOrEqual(t, speed, s.MinSpeed)
		require.LessOrEqual(t, speed, s.TopSpeed)
		require.Positive(t, h.p.Velocity().Z())
		h.tick()
		if h.current() != player.RailGrind {
			break
		}
	}
	require.Equal(t, player.Fall, h.current())
	require.False(t, h.p.OnRails())
	require.Greater(t, h.p.Position().Z(), float32(19.5))
}

func wallRunner(t *testing.T, wall cube.BBox) *harness {
	profile := stats.Default()
	profile.WallRun.CanWallRun = true
	h := newHarness(t, mgl32.Vec3{0, 10, 0}, profile, physics.NewBox("wall", wall, physics.LayerWall, physics.TagNone))
	h.p.States().ChangeTo(player.Fall)
	h.p.FaceDirection(mgl32.Vec3{0, 0, 1})
	h.p.SetLateral(mgl32.Vec3{1, 0, 15})
	return h
}

func TestWallRunJumpsIntoBoost(t *testing.T) {
	h := wallRunner(t, cube.Box(0.51, -20, -50, 1.5, 30, 50))

	h.until(player.WallRun, 30)
	s := h.p.Stats().WallRun
	require.InDelta(t, s.BaseSpeed, h.p.Velocity().Len(), 1e-3)
	require.InDelta(t, 1, h.p.Forward().Z(), 1e-3)
	require.InDelta(t, -1, h.p.LastWallNormal().X(), 1e-3)

	h.ticks(3)
	require.Equal(t, player.WallRun, h.current())

	h.frame.Buttons = input.ButtonJump
	h.tick()
	require.Equal(t, player.Boosting, h.current())
	// Launched off the wall at the jump force, half away from it and half ahead.
	lateral := h.p.Lateral()
	require.InDelta(t, -s.JumpBaseForce*0.7071, lateral.X(), 0.05)
	require.InDelta(t, s.JumpBaseForce*0.7071, lateral.Z(), 0.05)
}

func TestWallRunFallsPastTheWall(t *testing.T) {
	h := wallRunner(t, cube.Box(0.51, -20, -50, 1.5, 30, 5))

	h.until(player.WallRun, 30)
	for range 60 {
		h.tick()
		if h.current() != player.WallRun {
			break
		}
	}
	require.Equal(t, player.Fall, h.current())
	require.Greater(t, h.p.Position().Z(), float32(4.5))
}

func TestHomingDashGivesUpAfterMaxDuration(t *testing.T) {
	profile := stats.Default()
	profile.Homing.CanHomingDash = true
	enemy := &target{}
	sphere := physics.NewSphere("enemy", mgl32.Vec3{0, 10, 6}, 0.5, physics.LayerEnemy, physics.TagEnemy)
	sphere.Trigger = true
	sphere.Owner = enemy

	h := newHarness(t, mgl32.Vec3{0, 10, 0}, profile, sphere)
	h.p.States().ChangeTo(player.Fall)
	h.p.SetJumps(1)
	h.frame.Buttons = input.ButtonHomingDash
	h.tick()
	require.Equal(t, player.HomingDash, h.current())
	h.frame.Buttons = 0

	// Block the way once the target is picked.
	h.space.Add(physics.NewBox("wall", cube.Box(-5, 5, 2.5, 5, 15, 3.5), physics.LayerWall, physics.TagNone))
	var dashed int
	for range 180 {
		h.tick()
		if h.current() != player.HomingDash {
			break
		}
		dashed++
		require.False(t, h.p.CanTakeDamage())
	}
	require.Equal(t, player.Fall, h.current())
	require.True(t, h.p.CanTakeDamage())
	require.Zero(t, enemy.hits)
	require.InDelta(t, profile.Homing.MaxDuration/dt, float32(dashed), 3)
}

func TestHomingDashOntoRail(t *testing.T) {
	profile := stats.Default()
	profile.Homing.CanHomingDash = true
	h := newHarness(t, mgl32.Vec3{0, 3, 0}, profile)
	container := h.rail(mgl32.Vec3{2, 2.5, -10}, mgl32.Vec3{2, 2.5, 30})
	h.p.States().ChangeTo(player.Fall)
	h.p.SetJumps(1)

	h.frame.Buttons = input.ButtonHomingDash
	h.tick()
	require.Equal(t, player.HomingDash, h.current())
	require.Same(t, container, h.p.HomingSpline())
	initial := h.p.InitialHomingTargetPosition()
	require.InDelta(t, 2, initial.Z(), 1e-3, "the point just ahead of the player")
	h.frame.Buttons = 0

	h.until(player.RailGrind, 30)
	require.Same(t, container, h.p.Rails())
	// The dash ends where it was aimed instead of chasing a point that keeps moving ahead.
	require.Less(t, h.p.Position().Z(), initial.Z()+1)
}

func TestRollChargeScalesWithHoldTime(t *testing.T) {
	for _, tc := range []struct {
		name  string
		held  int
		speed float32
	}{
		{name: "half", held: 30, speed: 25.5},
		{name: "full", held: 90, speed: 40},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, standing(), stats.Default(), floor())
			h.tick()
			h.p.States().ChangeTo(player.RollCharge)

			h.frame.Buttons = input.ButtonRoll
			h.ticks(tc.held)
			require.Equal(t, player.RollCharge, h.current())
			require.Zero(t, h.p.Lateral().Len())

			h.frame.Buttons = 0
			h.tick()
			require.Equal(t, player.Rolling, h.current())
			require.InDelta(t, tc.speed, h.p.Lateral().Len(), 1)
		})
	}
}
