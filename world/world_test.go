package world_test

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/gravity"
	"github.com/oomph-ac/motion/input"
	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/player/state"
	"github.com/oomph-ac/motion/stats"
	"github.com/oomph-ac/motion/world"
	"github.com/stretchr/testify/require"
)

const floorLevel = `
name: flat
spawn:
  position: [0, 1.01, 0]
colliders:
  - name: floor
    min: [-50, -1, -50]
    max: [50, 0, 50]
    layer: ground
`

func newWorld(t *testing.T, conf world.Config, level string) *world.World {
	t.Helper()
	w, err := world.New(conf, nil)
	require.NoError(t, err)
	l, err := world.DecodeLevel([]byte(level))
	require.NoError(t, err)
	require.NoError(t, w.Load(l))
	return w
}

func addPlayer(t *testing.T, w *world.World, name string, source world.Source) *player.Player {
	t.Helper()
	sm, err := stats.NewManager(stats.Default())
	require.NoError(t, err)
	p, err := w.AddPlayer(name, sm, source, state.Default()...)
	require.NoError(t, err)
	return p
}

func script(t *testing.T, steps ...input.Step) *input.Script {
	t.Helper()
	s := &input.Script{Steps: steps}
	require.NoError(t, s.Compile())
	return s
}

func TestLoadPlayground(t *testing.T) {
	w, err := world.New(world.DefaultConfig(), nil)
	require.NoError(t, err)
	l, err := world.LoadLevel("testdata/level.yaml")
	require.NoError(t, err)
	require.NoError(t, w.Load(l))

	require.Equal(t, "playground", w.Level().Name)
	require.Equal(t, 8, w.Rails().Len())
	require.Equal(t, 1, w.Fields().Len())
	require.Len(t, w.Enemies(), 1)
	// 3 colliders, 8 rail boxes, a pole, a pool, a booster and the enemy itself.
	require.Equal(t, 15, w.Space().Len())
}

func TestBoosterLaunchesWalkingPlayer(t *testing.T) {
	w := newWorld(t, world.DefaultConfig(), floorLevel+`
boosters:
  - name: pad
    center: [0, 0.5, 4]
    size: [4, 2, 1]
    forward: [0, 0, 1]
    force: 45
`)
	p := addPlayer(t, w, "p1", script(t, input.Step{From: 0, To: 120, Move: [2]float32{0, 1}}))

	var fastest float32
	for range 90 {
		require.NoError(t, w.Run(context.Background(), 1))
		fastest = max(fastest, p.Lateral().Len())
	}
	require.InDelta(t, 45, fastest, 1e-3)
	require.Greater(t, p.Position().Z(), float32(10))
}

func TestLoadRejectsBadLevel(t *testing.T) {
	w, err := world.New(world.DefaultConfig(), nil)
	require.NoError(t, err)

	l, err := world.DecodeLevel([]byte(`
colliders:
  - name: blob
    shape: torus
`))
	require.NoError(t, err)
	require.Error(t, w.Load(l))

	l, err = world.DecodeLevel([]byte(`
fields:
  - name: mystery
    shape: donut
`))
	require.NoError(t, err)
	require.Error(t, w.Load(l))

	l, err = world.DecodeLevel([]byte(`
rails:
  - name: stub
    knots:
      - position: [0, 0, 0]
`))
	require.NoError(t, err)
	require.Error(t, w.Load(l))
	require.Zero(t, w.Space().Len())
}

func TestIdlePlayerStaysPut(t *testing.T) {
	w := newWorld(t, world.DefaultConfig(), floorLevel)
	p := addPlayer(t, w, "p1", nil)

	require.NoError(t, w.Run(context.Background(), 120))
	require.True(t, p.Grounded())
	require.Equal(t, player.Idle, p.States().CurrentVariant())
	require.InDelta(t, 0, p.Position().X(), 1e-4)
	require.InDelta(t, 0, p.Position().Z(), 1e-4)
}

func TestScriptedWalk(t *testing.T) {
	w := newWorld(t, world.DefaultConfig(), floorLevel)
	p := addPlayer(t, w, "p1", script(t, input.Step{From: 0, To: 60, Move: [2]float32{0, 1}}))

	require.NoError(t, w.Run(context.Background(), 60))
	require.Equal(t, player.Walk, p.States().CurrentVariant())
	require.Greater(t, p.Position().Z(), float32(1))

	require.NoError(t, w.Run(context.Background(), 120))
	require.Equal(t, player.Idle, p.States().CurrentVariant())
}

func TestPauseFreezesEverything(t *testing.T) {
	w := newWorld(t, world.DefaultConfig(), floorLevel)
	p := addPlayer(t, w, "p1", script(t, input.Step{From: 0, To: 600, Move: [2]float32{0, 1}}))
	require.NoError(t, w.Run(context.Background(), 30))

	frame := w.Clock().Frame()
	pos := p.Position()
	current := p.States().CurrentVariant()
	recorded := len(w.Telemetry("p1"))

	w.Pause()
	p.States().ChangeTo(player.Fall)
	require.NoError(t, w.Run(context.Background(), 30))
	require.Equal(t, frame, w.Clock().Frame())
	require.Equal(t, pos, p.Position())
	require.Equal(t, current, p.States().CurrentVariant(), "changes are ignored while paused")
	require.Len(t, w.Telemetry("p1"), recorded)

	w.Resume()
	require.NoError(t, w.Run(context.Background(), 1))
	require.Equal(t, frame+1, w.Clock().Frame())
	require.NotEqual(t, pos, p.Position())
}

func TestTelemetryRing(t *testing.T) {
	conf := world.DefaultConfig()
	conf.Telemetry = 10
	w := newWorld(t, conf, floorLevel)
	addPlayer(t, w, "p1", nil)

	require.NoError(t, w.Run(context.Background(), 25))
	snaps := w.Telemetry("p1")
	require.Len(t, snaps, 10)
	require.Equal(t, uint64(16), snaps[0].Frame)
	require.Equal(t, uint64(25), snaps[9].Frame)
	require.Nil(t, w.Telemetry("nobody"))
}

func TestKillHeightRespawns(t *testing.T) {
	conf := world.DefaultConfig()
	conf.RespawnDelay = 0.5
	w := newWorld(t, conf, `
name: void
kill_height: -5
spawn:
  position: [0, 0, 0]
`)
	p := addPlayer(t, w, "p1", nil)
	var died int
	p.Events.Die.Add(func() { died++ })

	for range 300 {
		require.NoError(t, w.Tick(context.Background(), conf.Delta()))
		if died > 0 {
			break
		}
	}
	require.Equal(t, 1, died)
	require.False(t, p.Alive())

	require.NoError(t, w.Run(context.Background(), 31))
	require.True(t, p.Alive())
	require.Equal(t, 3, p.Health().Current())
	require.Greater(t, p.Position().Y(), float32(-5))
}

func TestParallelPlayers(t *testing.T) {
	conf := world.DefaultConfig()
	conf.Parallel = true
	conf.Workers = 2
	w := newWorld(t, conf, floorLevel)
	walker := addPlayer(t, w, "walker", script(t, input.Step{From: 0, To: 60, Move: [2]float32{0, 1}}))
	idler := addPlayer(t, w, "idler", nil)
	idler.Teleport(mgl32.Vec3{5, 1.01, 0})

	require.NoError(t, w.Run(context.Background(), 60))
	require.Len(t, w.Players(), 2)
	require.Greater(t, walker.Position().Z(), float32(1))
	require.True(t, idler.Grounded())

	p, ok := w.Player("idler")
	require.True(t, ok)
	require.Same(t, idler, p)
}

// Two equal priority fields overlap; a player rising towards the second one is handed over to it
// with its vertical speed cleared.
func TestEqualPriorityHandOff(t *testing.T) {
	w := newWorld(t, world.DefaultConfig(), `
name: fields
spawn:
  position: [0, 10, -3]
fields:
  - name: a
    shape: parallel
    position: [0, 10, -3]
    trigger:
      kind: sphere
      radius: 4
  - name: b
    shape: parallel
    position: [0, 10, 3]
    trigger:
      kind: sphere
      radius: 4
`)
	p := addPlayer(t, w, "p1", nil)
	fields := w.Fields().Fields()
	a, b := fields[0], fields[1]

	require.NoError(t, w.Tick(context.Background(), world.DefaultConfig().Delta()))
	require.Same(t, a, p.Field())

	var handed []*gravity.Field
	var vertical []float32
	p.Entity.Events.FieldChanged.Add(func(f *gravity.Field) {
		handed = append(handed, f)
		vertical = append(vertical, p.VerticalVelocity())
	})
	p.Teleport(mgl32.Vec3{0, 10, 0})
	p.SetVelocity(mgl32.Vec3{0, 5, 5})

	require.NoError(t, w.Tick(context.Background(), world.DefaultConfig().Delta()))
	require.Equal(t, []*gravity.Field{b}, handed)
	require.Equal(t, []float32{0}, vertical)
	require.Same(t, b, p.Field())
}

func TestNewRejectsBadConfig(t *testing.T) {
	conf := world.DefaultConfig()
	conf.TickRate = 0
	_, err := world.New(conf, nil)
	require.Error(t, err)
}
