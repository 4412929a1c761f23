package state_test

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/input"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/player/state"
	"github.com/oomph-ac/motion/stats"
	"github.com/stretchr/testify/require"
)

const dt = float32(1) / 60

type harness struct {
	t      *testing.T
	clock  *clock.Clock
	space  *physics.Space
	inputs *input.Manager
	p      *player.Player
	frame  input.Frame
}

func newHarness(t *testing.T, pos mgl32.Vec3, profile stats.Stats, colliders ...*physics.Collider) *harness {
	t.Helper()
	space := physics.NewSpace(4)
	for _, c := range colliders {
		space.Add(c)
	}
	c := clock.New()
	sm, err := stats.NewManager(profile)
	require.NoError(t, err)
	inputs := input.NewManager(c)

	conf := player.DefaultConfig()
	conf.Entity.Position = pos
	p, err := player.New(entity.Env{Space: space, Clock: c, Rails: physics.NewRailIndex()}, conf, inputs, sm, state.Default()...)
	require.NoError(t, err)
	return &harness{t: t, clock: c, space: space, inputs: inputs, p: p}
}

func floor() *physics.Collider {
	return physics.NewBox("floor", cube.Box(-50, -1, -50, 50, 0, 50), physics.LayerGround, physics.TagNone)
}

// standing is the height of the center of a player standing on the floor.
func standing() mgl32.Vec3 {
	return mgl32.Vec3{0, 1 + 0.01, 0}
}

func (h *harness) tick() {
	h.clock.Advance(dt)
	h.inputs.Feed(h.frame)
	h.p.Update()
}

func (h *harness) ticks(n int) {
	for range n {
		h.tick()
	}
}

func (h *harness) current() fsm.Variant {
	return h.p.States().CurrentVariant()
}

func TestDefaultCatalog(t *testing.T) {
	states := state.Default()
	require.Len(t, states, 26)
	require.Equal(t, player.Idle, states[0].Variant())

	seen := make(map[fsm.Variant]bool)
	for _, s := range states {
		require.False(t, seen[s.Variant()], "variant %s registered twice", player.VariantName(s.Variant()))
		seen[s.Variant()] = true
	}
}

func TestFromNames(t *testing.T) {
	states, err := state.FromNames("fall", "idle", "walk")
	require.NoError(t, err)
	require.Len(t, states, 3)
	require.Equal(t, player.Fall, states[0].Variant())

	_, err = state.FromNames("idle", "moonwalk")
	require.Error(t, err)
	_, err = state.FromNames("airborne")
	require.Error(t, err)
}

func TestIdleStaysIdle(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()
	require.True(t, h.p.Grounded())

	start := h.p.Position()
	for range 60 {
		h.tick()
		require.Equal(t, player.Idle, h.current())
		require.Zero(t, h.p.Lateral().Len())
	}
	require.InDelta(t, start.Y(), h.p.Position().Y(), 1e-3)
}

func TestIdleToWalk(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()

	h.frame.Move = mgl32.Vec2{0, 1}
	h.tick()
	require.Equal(t, player.Walk, h.current())
	h.ticks(30)
	require.Equal(t, player.Walk, h.current())
	require.Greater(t, h.p.Lateral().Z(), float32(0))

	h.frame.Move = mgl32.Vec2{}
	h.ticks(60)
	require.Equal(t, player.Idle, h.current())
}

func TestWalkBrakesOnSecondTick(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()
	require.True(t, h.p.Grounded())

	h.p.SetLateral(mgl32.Vec3{10, 0, 0})
	h.p.States().ChangeTo(player.Walk)
	h.frame.Move = mgl32.Vec2{-1, 0}

	h.tick()
	require.Equal(t, player.Walk, h.current(), "one opposing tick is not enough to brake")
	h.tick()
	require.Equal(t, player.Brake, h.current())
}

func TestWalkBrakeNeedsConsecutiveTicks(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()

	h.p.SetLateral(mgl32.Vec3{10, 0, 0})
	h.p.States().ChangeTo(player.Walk)
	h.frame.Move = mgl32.Vec2{-1, 0}
	h.tick()

	h.frame.Move = mgl32.Vec2{0, 1}
	h.tick()
	h.p.SetLateral(mgl32.Vec3{10, 0, 0})
	h.frame.Move = mgl32.Vec2{-1, 0}
	h.tick()
	require.Equal(t, player.Walk, h.current())
}

func TestFallLands(t *testing.T) {
	h := newHarness(t, mgl32.Vec3{0, 3, 0}, stats.Default(), floor())
	h.p.States().ChangeTo(player.Fall)
	h.p.SetLateral(mgl32.Vec3{2, 0, 0})

	last := h.p.VerticalVelocity()
	for range 120 {
		h.tick()
		if h.p.Grounded() {
			break
		}
		require.Equal(t, player.Fall, h.current())
		require.LessOrEqual(t, h.p.VerticalVelocity(), last)
		last = h.p.VerticalVelocity()
	}
	require.True(t, h.p.Grounded())
	require.Equal(t, player.Walk, h.current())
	require.InDelta(t, 2, h.p.Lateral().X(), 1e-4)
	require.Zero(t, h.p.VerticalVelocity())
}

func TestFallLandsIdleWithoutMomentum(t *testing.T) {
	h := newHarness(t, mgl32.Vec3{0, 2, 0}, stats.Default(), floor())
	h.p.States().ChangeTo(player.Fall)
	for range 120 {
		h.tick()
		if h.p.Grounded() {
			break
		}
	}
	require.Equal(t, player.Idle, h.current())
}

func TestJumpFromIdle(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	var jumps int
	h.p.Events.Jump.Add(func() { jumps++ })
	h.tick()

	h.frame.Buttons = input.ButtonJump
	h.tick()
	require.Equal(t, player.Fall, h.current())
	require.Equal(t, 1, h.p.JumpCounter())
	require.Equal(t, 1, jumps)
	require.Greater(t, h.p.Position().Y(), standing().Y())
}

func TestCrouchResizesCollider(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()
	original := h.p.Height()

	h.frame.Buttons = input.ButtonCrouch
	h.tick()
	require.Equal(t, player.Crouch, h.current())
	require.Equal(t, h.p.Stats().Crouch.Height, h.p.Height())

	h.frame.Buttons = 0
	h.tick()
	require.Equal(t, player.Idle, h.current())
	require.Equal(t, original, h.p.Height())
}

func TestCrouchStaysUnderCeiling(t *testing.T) {
	ceiling := physics.NewBox("ceiling", cube.Box(-5, 1.6, -5, 5, 2, 5), physics.LayerGround, physics.TagNone)
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()

	h.frame.Buttons = input.ButtonCrouch
	h.tick()
	require.Equal(t, player.Crouch, h.current())
	h.space.Add(ceiling)

	h.frame.Buttons = 0
	h.ticks(5)
	require.Equal(t, player.Crouch, h.current())
}

type target struct {
	hits   int
	origin mgl32.Vec3
}

func (e *target) ApplyDamage(_ int, origin mgl32.Vec3) {
	e.hits++
	e.origin = origin
}

func TestHomingDashHitsOnce(t *testing.T) {
	profile := stats.Default()
	profile.Homing.CanHomingDash = true
	enemy := &target{}
	sphere := physics.NewSphere("enemy", mgl32.Vec3{0, 10, 6}, 0.5, physics.LayerEnemy, physics.TagEnemy)
	sphere.Trigger = true
	sphere.Owner = enemy

	h := newHarness(t, mgl32.Vec3{0, 10, 0}, profile, sphere)
	h.p.States().ChangeTo(player.Fall)
	h.p.SetJumps(1)

	var tricks int
	h.p.States().OnEnter(func(v fsm.Variant) {
		if v == player.HomingDashTrick {
			tricks++
		}
	})

	h.frame.Buttons = input.ButtonHomingDash
	h.tick()
	require.Equal(t, player.HomingDash, h.current())
	require.Equal(t, sphere, h.p.HomingTarget())
	require.False(t, h.p.CanTakeDamage())
	h.frame.Buttons = 0

	distance := h.p.Position().Sub(sphere.Position()).Len()
	for range 60 {
		h.tick()
		if h.current() != player.HomingDash {
			break
		}
		require.False(t, h.p.CanTakeDamage())
		next := h.p.Position().Sub(sphere.Position()).Len()
		require.Less(t, next, distance)
		distance = next
	}
	require.Equal(t, player.HomingDashTrick, h.current())
	require.Equal(t, 1, tricks)
	require.Equal(t, 1, enemy.hits)
	require.InDelta(t, profile.Homing.RecoverForce, h.p.VerticalVelocity(), 1e-3)

	h.ticks(20)
	require.Equal(t, 1, tricks)
	require.Equal(t, 1, enemy.hits)
	require.True(t, h.p.CanTakeDamage())
}

func TestHomingDashNeedsJump(t *testing.T) {
	profile := stats.Default()
	profile.Homing.CanHomingDash = true
	sphere := physics.NewSphere("enemy", mgl32.Vec3{0, 10, 6}, 0.5, physics.LayerEnemy, physics.TagEnemy)
	sphere.Trigger = true

	h := newHarness(t, mgl32.Vec3{0, 10, 0}, profile, sphere)
	h.p.States().ChangeTo(player.Fall)
	h.frame.Buttons = input.ButtonHomingDash
	h.tick()
	require.Equal(t, player.Fall, h.current())
}

func TestSpinEndsAfterDuration(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()

	h.frame.Buttons = input.ButtonSpin
	h.tick()
	require.Equal(t, player.Spin, h.current())
	h.frame.Buttons = 0

	h.ticks(int(h.p.Stats().Spin.Duration/dt) + 2)
	require.Equal(t, player.Idle, h.current())
}

func TestDamageHurtsAndRecovers(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	h.tick()

	h.p.ApplyDamage(1, h.p.Position().Add(mgl32.Vec3{0, 0, 1}))
	require.Equal(t, player.Hurt, h.current())
	require.Equal(t, 2, h.p.Health().Current())
	require.Positive(t, h.p.VerticalVelocity())
	require.Negative(t, h.p.Lateral().Z(), "knocked away from the origin")

	for range 240 {
		h.tick()
		if h.current() != player.Hurt {
			break
		}
	}
	require.Equal(t, player.Idle, h.current())
}

func TestFatalDamageDies(t *testing.T) {
	h := newHarness(t, standing(), stats.Default(), floor())
	var died int
	h.p.Events.Die.Add(func() { died++ })
	h.tick()

	h.p.ApplyDamage(3, h.p.Position())
	require.Equal(t, 1, died)
	for range 240 {
		h.tick()
		if h.current() == player.Die {
			break
		}
	}
	require.Equal(t, player.Die, h.current())
	require.False(t, h.p.Alive())
}

func TestLedgeGrabAndClimb(t *testing.T) {
	// A block whose top is at y=4 with its front face just ahead of the player.
	block := physics.NewBox("block", cube.Box(-5, 0, 0.55, 5, 4, 10), physics.LayerWall, physics.TagNone)
	h := newHarness(t, mgl32.Vec3{0, 3.3, 0}, stats.Default(), floor(), block)
	h.p.States().ChangeTo(player.Fall)

	for range 60 {
		h.tick()
		if h.current() == player.LedgeHanging {
			break
		}
	}
	require.Equal(t, player.LedgeHanging, h.current())
	require.InDelta(t, 3, h.p.Position().Y(), 0.05, "the top of the capsule is level with the ledge")

	h.frame.Move = mgl32.Vec2{0, 1}
	h.tick()
	require.Equal(t, player.LedgeClimbing, h.current())
	h.frame.Move = mgl32.Vec2{}
	for range 120 {
		h.tick()
		if h.current() != player.LedgeClimbing {
			break
		}
	}
	require.Greater(t, h.p.Position().Y(), float32(4))
	require.False(t, h.p.CustomCollision())
}
