package enemy_test

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/enemy"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/physics"
	"github.com/stretchr/testify/require"
)

const dt = float32(1) / 60

type victim struct {
	hits   int
	amount int
	origin mgl32.Vec3
}

func (v *victim) ApplyDamage(amount int, origin mgl32.Vec3) {
	v.hits++
	v.amount = amount
	v.origin = origin
}

func newEnemy(t *testing.T, conf enemy.Config) (*enemy.Enemy, *physics.Space, *clock.Clock) {
	t.Helper()
	space := physics.NewSpace(4)
	space.Add(physics.NewBox("floor", cube.Box(-50, -1, -50, 50, 0, 50), physics.LayerGround, physics.TagNone))
	c := clock.New()
	conf.Entity.Position = mgl32.Vec3{0, 1.01, 0}
	e, err := enemy.New(entity.Env{Space: space, Clock: c}, conf)
	require.NoError(t, err)
	return e, space, c
}

func tick(c *clock.Clock, e *enemy.Enemy, n int) {
	for range n {
		c.Advance(dt)
		e.Update()
	}
}

func TestIdleStaysOnFloor(t *testing.T) {
	e, _, c := newEnemy(t, enemy.DefaultConfig())
	tick(c, e, 30)

	require.True(t, e.Grounded())
	require.Equal(t, enemy.Idle, e.States().CurrentVariant())
	require.InDelta(t, 1.01, e.Position().Y(), 0.05)
}

func TestDeathRemovesCollider(t *testing.T) {
	e, space, c := newEnemy(t, enemy.DefaultConfig())
	var died, removed int
	e.Events.Die.Add(func() { died++ })
	e.Events.Removed.Add(func() { removed++ })
	tick(c, e, 1)
	require.Equal(t, 2, space.Len())

	e.ApplyDamage(1, mgl32.Vec3{})
	require.False(t, e.Alive())
	require.Equal(t, 1, died)
	require.Equal(t, enemy.Dead, e.States().CurrentVariant())

	tick(c, e, 10)
	require.False(t, e.Removed(), "stays until the remove delay has passed")

	tick(c, e, 30)
	require.True(t, e.Removed())
	require.Equal(t, 1, removed)
	require.Equal(t, 1, space.Len())

	e.ApplyDamage(1, mgl32.Vec3{})
	require.Equal(t, 1, died)
	require.Equal(t, "dead", e.Snapshot().Current)
}

func TestHitCooldown(t *testing.T) {
	conf := enemy.DefaultConfig()
	conf.Health = 3
	conf.HitCooldown = 1
	e, _, c := newEnemy(t, conf)
	var hits int
	e.Events.Hit.Add(func() { hits++ })
	tick(c, e, 1)

	e.ApplyDamage(1, mgl32.Vec3{})
	e.ApplyDamage(1, mgl32.Vec3{})
	require.Equal(t, 1, hits)
	require.Equal(t, 2, e.Health().Current())

	tick(c, e, 61)
	e.ApplyDamage(1, mgl32.Vec3{})
	require.Equal(t, 2, hits)
	require.Equal(t, 1, e.Health().Current())
	require.True(t, e.Alive())
}

func TestHurtsTouchingPlayer(t *testing.T) {
	e, space, c := newEnemy(t, enemy.DefaultConfig())
	v := &victim{}
	body := physics.NewSphere("player", mgl32.Vec3{0.8, 1.01, 0}, 0.5, physics.LayerEntity, physics.TagPlayer)
	body.Owner = v
	space.Add(body)

	tick(c, e, 1)
	require.Equal(t, 1, v.hits)
	require.Equal(t, 1, v.amount)
	require.Equal(t, e.Position(), v.origin)

	space.Remove(body.ID)
	tick(c, e, 1)
	require.Equal(t, 1, v.hits)
}

func TestIgnoresOtherContacts(t *testing.T) {
	e, space, c := newEnemy(t, enemy.DefaultConfig())
	v := &victim{}
	body := physics.NewSphere("crate", mgl32.Vec3{0.8, 1.01, 0}, 0.5, physics.LayerEntity, physics.TagNone)
	body.Owner = v
	space.Add(body)

	tick(c, e, 5)
	require.Zero(t, v.hits)
}
