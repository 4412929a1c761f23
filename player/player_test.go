package player_test

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/geometry"
	"github.com/oomph-ac/motion/input"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/player/state"
	"github.com/oomph-ac/motion/stats"
	"github.com/stretchr/testify/require"
)

const dt = float32(1) / 60

type world struct {
	clock  *clock.Clock
	inputs *input.Manager
	p      *player.Player
	frame  input.Frame
}

func newWorld(t *testing.T, pos mgl32.Vec3, colliders ...*physics.Collider) *world {
	t.Helper()
	space := physics.NewSpace(4)
	for _, c := range colliders {
		space.Add(c)
	}
	c := clock.New()
	sm, err := stats.NewManager(stats.Default())
	require.NoError(t, err)
	inputs := input.NewManager(c)

	conf := player.DefaultConfig()
	conf.Entity.Position = pos
	p, err := player.New(entity.Env{Space: space, Clock: c, Rails: physics.NewRailIndex()}, conf, inputs, sm, state.Default()...)
	require.NoError(t, err)
	return &world{clock: c, inputs: inputs, p: p}
}

func (w *world) tick() {
	w.clock.Advance(dt)
	w.inputs.Feed(w.frame)
	w.p.Update()
}

func (w *world) current() fsm.Variant {
	return w.p.States().CurrentVariant()
}

func floor() *physics.Collider {
	return physics.NewBox("floor", cube.Box(-50, -1, -50, 50, 0, 50), physics.LayerGround, physics.TagNone)
}

func TestNewRejectsBadCatalog(t *testing.T) {
	sm, err := stats.NewManager(stats.Default())
	require.NoError(t, err)
	c := clock.New()
	space := physics.NewSpace(4)
	env := entity.Env{Space: space, Clock: c}

	_, err = player.New(env, player.DefaultConfig(), input.NewManager(c), sm)
	require.ErrorIs(t, err, oerror.ErrNoStates)
	require.Zero(t, space.Len(), "a failed player leaves nothing behind")

	_, err = player.New(env, player.DefaultConfig(), input.NewManager(c), sm, &state.Idle{}, nil)
	require.ErrorIs(t, err, oerror.ErrNilState)

	_, err = player.New(env, player.DefaultConfig(), nil, sm, state.Default()...)
	require.Error(t, err)
}

func TestJumpCounterResetsOnLanding(t *testing.T) {
	w := newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor())
	w.tick()

	w.frame.Buttons = input.ButtonJump
	w.tick()
	require.Equal(t, 1, w.p.JumpCounter())
	require.True(t, w.p.JumpedFromGround())

	w.frame.Buttons = 0
	for range 180 {
		w.tick()
		if w.p.Grounded() {
			break
		}
	}
	require.True(t, w.p.Grounded())
	require.Zero(t, w.p.JumpCounter())
}

func TestReleasingJumpCutsItShort(t *testing.T) {
	w := newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor())
	w.tick()

	w.frame.Buttons = input.ButtonJump
	w.tick()
	require.Greater(t, w.p.VerticalVelocity(), w.p.Stats().Jump.MinHeight)

	w.frame.Buttons = 0
	w.tick()
	require.LessOrEqual(t, w.p.VerticalVelocity(), w.p.Stats().Jump.MinHeight)
}

func TestFallDamage(t *testing.T) {
	w := newWorld(t, mgl32.Vec3{0, 30, 0}, floor())
	var hurt int
	w.p.Events.Hurt.Add(func() { hurt++ })

	for range 240 {
		w.tick()
		if w.p.Grounded() {
			break
		}
	}
	require.Equal(t, 1, hurt)
	require.Equal(t, player.Hurt, w.current())
	require.Less(t, w.p.Health().Current(), 3)
	require.GreaterOrEqual(t, w.p.LandingSpeed(), w.p.Stats().FallDamage.MinFallSpeed)
}

func TestShortFallIsHarmless(t *testing.T) {
	w := newWorld(t, mgl32.Vec3{0, 4, 0}, floor())
	for range 240 {
		w.tick()
		if w.p.Grounded() {
			break
		}
	}
	require.Equal(t, 3, w.p.Health().Current())
	require.Equal(t, player.Idle, w.current())
}

func TestInvincibleWhileNotTakingDamage(t *testing.T) {
	w := newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor())
	w.tick()

	w.p.SetCanTakeDamage(false)
	w.p.ApplyDamage(1, mgl32.Vec3{})
	require.Equal(t, 3, w.p.Health().Current())
	require.Equal(t, player.Idle, w.current())
}

func TestRespawn(t *testing.T) {
	spawn := mgl32.Vec3{0, 1.01, 0}
	w := newWorld(t, spawn, floor())
	w.tick()

	w.p.ApplyDamage(3, mgl32.Vec3{})
	require.False(t, w.p.Alive())
	w.p.Teleport(mgl32.Vec3{10, 5, 10})

	w.p.Respawn()
	require.True(t, w.p.Alive())
	require.Equal(t, 3, w.p.Health().Current())
	require.Equal(t, spawn, w.p.Position())
	require.Equal(t, player.Idle, w.current())
	require.Zero(t, w.p.Velocity().Len())
}

func TestSwimInWater(t *testing.T) {
	pool := physics.NewVolume("pool", geometry.Volume{
		Kind:  geometry.VolumeBox,
		Frame: geometry.At(mgl32.Vec3{0, 2.5, 0}),
		Size:  mgl32.Vec3{20, 5, 20},
	}, physics.LayerWater, physics.TagWater)
	w := newWorld(t, mgl32.Vec3{0, 3, 0}, floor(), pool)

	w.tick()
	require.True(t, w.p.OnWater())
	require.Equal(t, pool, w.p.Water())
	require.Equal(t, player.Swim, w.current())

	for range 30 {
		w.tick()
		require.Equal(t, player.Swim, w.current())
	}

	w.p.Teleport(mgl32.Vec3{30, 10, 30})
	w.tick()
	require.False(t, w.p.OnWater())
	w.tick()
	require.Equal(t, player.Fall, w.current())
}

func TestSnapshot(t *testing.T) {
	w := newWorld(t, mgl32.Vec3{0, 1.01, 0}, floor())
	w.tick()
	w.frame.Move = mgl32.Vec2{0, 1}
	w.tick()

	s := w.p.Snapshot()
	require.Equal(t, "player", s.Name)
	require.Equal(t, "walk", s.Current)
	require.Equal(t, "idle", s.Last)
	require.True(t, s.Grounded)
	require.Equal(t, uint64(2), s.Frame)
	require.Equal(t, 3, s.Health)
}
