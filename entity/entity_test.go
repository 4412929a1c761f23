package entity

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/geometry"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/spline"
	"github.com/stretchr/testify/require"
)

const dt = float32(1) / 60

type driver struct {
	step     func()
	steps    int
	contacts []*physics.Collider
}

func (d *driver) Step() {
	d.steps++
	if d.step != nil {
		d.step()
	}
}

func (d *driver) OnContact(c *physics.Collider) {
	d.contacts = append(d.contacts, c)
}

func world(t *testing.T, pos mgl32.Vec3, colliders ...*physics.Collider) (*Entity, *clock.Clock) {
	t.Helper()
	s := physics.NewSpace(4)
	for _, c := range colliders {
		s.Add(c)
	}
	c := clock.New()
	conf := DefaultConfig()
	conf.Name = "test"
	conf.Position = pos
	return New(Env{Space: s, Clock: c, Rails: physics.NewRailIndex()}, conf), c
}

func floor() *physics.Collider {
	return physics.NewBox("floor", cube.Box(-50, -1, -50, 50, 0, 50), physics.LayerGround, physics.TagNone)
}

func tick(c *clock.Clock, e *Entity, d *driver) {
	c.Advance(dt)
	e.Update(d)
}

func TestFallAndLand(t *testing.T) {
	e, c := world(t, mgl32.Vec3{0, 3, 0}, floor())
	landed := 0
	e.Events.GroundEnter.Add(func() { landed++ })
	d := &driver{step: func() { e.Gravity(20) }}

	last := e.VerticalVelocity()
	for range 120 {
		tick(c, e, d)
		if e.Grounded() {
			break
		}
		require.LessOrEqual(t, e.VerticalVelocity(), last, "vertical speed never grows while falling")
		last = e.VerticalVelocity()
	}
	tick(c, e, d)

	require.True(t, e.Grounded())
	require.Equal(t, 1, landed)
	require.Zero(t, e.VerticalVelocity())
	require.InDelta(t, 1+e.SkinWidth(), e.Position().Y(), 1e-3)

	for range 30 {
		tick(c, e, d)
	}
	require.True(t, e.Grounded())
	require.Equal(t, 1, landed)
}

func TestWalkIntoWall(t *testing.T) {
	wall := physics.NewBox("wall", cube.Box(3, 0, -5, 4, 5, 5), physics.LayerWall, physics.TagNone)
	e, c := world(t, mgl32.Vec3{0, 1 + game.DefaultContactOffset, 0}, floor(), wall)
	d := &driver{step: func() { e.SetLateral(mgl32.Vec3{5, 0, 0}) }}

	for range 60 {
		tick(c, e, d)
	}
	require.True(t, e.Grounded())
	require.InDelta(t, 3-e.Radius()-e.SkinWidth(), e.Position().X(), 1e-3)
	require.Contains(t, e.Contacts(), wall)
	require.Contains(t, d.contacts, wall)
	require.InDelta(t, 0, e.PositionDelta(), 1e-4)
}

func TestPausedUpdateDoesNothing(t *testing.T) {
	e, c := world(t, mgl32.Vec3{0, 3, 0}, floor())
	d := &driver{step: func() { e.Gravity(20) }}
	tick(c, e, d)
	require.Equal(t, 1, d.steps)
	pos := e.Position()

	c.Pause()
	tick(c, e, d)
	require.Equal(t, 1, d.steps)
	require.Equal(t, pos, e.Position())

	c.Resume()
	tick(c, e, d)
	require.Equal(t, 2, d.steps)
}

func TestResizeRoundTrip(t *testing.T) {
	e, _ := world(t, mgl32.Vec3{0, 1, 0})
	feet := e.Feet()

	e.ResizeCollider(1)
	require.Equal(t, float32(1), e.Height())
	require.True(t, e.Feet().ApproxEqual(feet))
	require.True(t, e.UnsizedPosition().ApproxEqual(mgl32.Vec3{0, 1, 0}))

	e.ResizeCollider(e.OriginalHeight())
	require.Equal(t, e.OriginalHeight(), e.Height())
	require.True(t, e.Position().ApproxEqual(mgl32.Vec3{0, 1, 0}))

	e.ResizeCollider(0.1)
	require.Equal(t, e.Radius()*2, e.Height(), "never shorter than the sphere")
}

func TestLandingOnRail(t *testing.T) {
	rail := physics.NewBox("rail", cube.Box(-0.1, -0.1, 0, 0.1, 0, 20), physics.LayerRail, physics.TagRail)
	e, c := world(t, mgl32.Vec3{0, 2, 5}, rail)

	s, err := spline.New(false, spline.Knot{Position: mgl32.Vec3{0, 0, 0}}, spline.Knot{Position: mgl32.Vec3{0, 0, 20}})
	require.NoError(t, err)
	container := spline.NewContainer("rail", geometry.IdentityFrame(), s)
	e.RailIndex().Register(rail, container)

	entered := 0
	e.Events.RailsEnter.Add(func() { entered++ })
	d := &driver{step: func() {
		if !e.OnRails() {
			e.Gravity(20)
		}
	}}
	for range 120 {
		tick(c, e, d)
		if e.OnRails() {
			break
		}
	}
	require.True(t, e.OnRails())
	require.Same(t, container, e.Rails())
	require.Equal(t, 1, entered)
	require.False(t, e.Grounded())

	exited := 0
	e.Events.RailsExit.Add(func() { exited++ })
	e.ExitRail()
	e.ExitRail()
	require.Equal(t, 1, exited)
}

func TestSetUpResplitsVelocity(t *testing.T) {
	e, _ := world(t, mgl32.Vec3{})
	e.SetVelocity(mgl32.Vec3{1, 2, 0})
	require.Equal(t, float32(2), e.VerticalVelocity())

	e.SetUp(mgl32.Vec3{1, 0, 0})
	require.True(t, e.Up().ApproxEqual(mgl32.Vec3{1, 0, 0}))
	require.InDelta(t, 1, e.VerticalVelocity(), 1e-5)
	require.True(t, e.Lateral().ApproxEqualThreshold(mgl32.Vec3{0, 2, 0}, 1e-5))
	require.True(t, e.Velocity().ApproxEqualThreshold(mgl32.Vec3{1, 2, 0}, 1e-5))

	e.SetUp(mgl32.Vec3{})
	require.True(t, e.Up().ApproxEqual(mgl32.Vec3{1, 0, 0}), "a zero up is ignored")
}

func TestAccelerateCapsAtTopSpeed(t *testing.T) {
	e, c := world(t, mgl32.Vec3{})
	for range 30 {
		c.Advance(dt)
		e.Accelerate(mgl32.Vec3{0, 0, 1}, 0, 60, 5, 0, 1)
	}
	require.InDelta(t, 5, e.Lateral().Len(), 1e-4)
	require.Equal(t, float32(5), e.TargetTopSpeed())

	// Half stick still keeps the minimum top speed.
	e.Accelerate(mgl32.Vec3{0, 0, 1}, 0, 60, 5, 4, 0.5)
	require.Equal(t, float32(4), e.TargetTopSpeed())

	for range 120 {
		c.Advance(dt)
		e.Decelerate(10)
	}
	require.Zero(t, e.Lateral().Len())
}

func TestRewind(t *testing.T) {
	e, c := world(t, mgl32.Vec3{0, 3, 0}, floor())
	d := &driver{}
	for range 5 {
		tick(c, e, d)
	}
	hp, ok := e.Rewind(3)
	require.True(t, ok)
	require.Equal(t, uint64(3), hp.Frame)

	hp, ok = e.Rewind(100)
	require.True(t, ok)
	require.Equal(t, uint64(5), hp.Frame, "the closest frame is used")
	require.Len(t, e.History(), 5)
}
