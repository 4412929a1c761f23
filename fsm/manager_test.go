package fsm

import (
	"fmt"
	"testing"

	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/physics"
	"github.com/stretchr/testify/require"
)

const (
	idle Variant = iota
	walk
	roll
	charge
	rollingLike Variant = 100
)

type body struct {
	log []string
}

type probe struct {
	Base
	v        Variant
	steps    int
	contacts int
}

func (p *probe) Variant() Variant { return p.v }
func (p *probe) Enter(b *body)    { b.log = append(b.log, fmt.Sprintf("enter %d", p.v)) }
func (p *probe) Exit(b *body)     { b.log = append(b.log, fmt.Sprintf("exit %d", p.v)) }
func (p *probe) Step(*body)       { p.steps++ }
func (p *probe) OnContact(*body, *physics.Collider) {
	p.contacts++
}

func newManager(t *testing.T) (*Manager[*body], *body, *clock.Clock, []*probe) {
	t.Helper()
	b := &body{}
	c := clock.New()
	probes := []*probe{{v: idle}, {v: walk}, {v: roll}, {v: charge}}
	m, err := NewManager[*body](b, Config{
		Clock:    c,
		Families: Families{rollingLike: {roll, charge}},
	}, probes[0], probes[1], probes[2], probes[3])
	require.NoError(t, err)
	return m, b, c, probes
}

func TestInitializationErrors(t *testing.T) {
	_, err := NewManager[*body](&body{}, Config{})
	require.Error(t, err)

	_, err = NewManager[*body](&body{}, Config{}, &probe{v: idle}, nil)
	require.Error(t, err)
}

func TestFirstStateIsCurrentWithoutEnter(t *testing.T) {
	m, b, _, probes := newManager(t)
	require.Equal(t, probes[0], m.Current())
	require.Nil(t, m.Last())
	require.Empty(t, b.log)
	require.Equal(t, 0, m.Index())
	require.Equal(t, -1, m.LastIndex())
	_, ok := m.LastVariant()
	require.False(t, ok)
}

func TestDuplicateVariantsKeepFirst(t *testing.T) {
	first, second := &probe{v: walk}, &probe{v: walk}
	m, err := NewManager[*body](&body{}, Config{}, &probe{v: idle}, first, second)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	m.Change(second)
	require.Equal(t, idle, m.CurrentVariant(), "an unregistered instance is ignored")
	m.Change(first)
	require.Equal(t, walk, m.CurrentVariant())
}

func TestTransitionOrder(t *testing.T) {
	m, b, _, probes := newManager(t)

	var order []string
	m.OnExit(func(v Variant) { order = append(order, fmt.Sprintf("exit notify %d", v)) })
	m.AddExitListener(idle, func(*body) { order = append(order, "idle exit listener") })
	m.OnEnter(func(v Variant) { order = append(order, fmt.Sprintf("enter notify %d", v)) })
	m.AddEnterListener(walk, func(*body) { order = append(order, "walk enter listener 1") })
	m.AddEnterListener(walk, func(*body) { order = append(order, "walk enter listener 2") })
	m.OnChange(func() {
		order = append(order, "change")
		require.Equal(t, probes[1], m.Current())
		require.Equal(t, probes[0], m.Last())
	})

	m.Change(probes[1])
	require.Equal(t, []string{"exit 0", "enter 1"}, b.log)
	require.Equal(t, []string{
		"exit notify 0",
		"idle exit listener",
		"enter notify 1",
		"walk enter listener 1",
		"walk enter listener 2",
		"change",
	}, order)
	lv, ok := m.LastVariant()
	require.True(t, ok)
	require.Equal(t, idle, lv)
}

func TestChangeToCurrentIsNoop(t *testing.T) {
	m, b, _, probes := newManager(t)
	changes := 0
	m.OnChange(func() { changes++ })

	m.ChangeIndex(1)
	m.ChangeIndex(1)
	m.Change(probes[1])
	m.ChangeTo(walk)
	require.Equal(t, []string{"exit 0", "enter 1"}, b.log)
	require.Equal(t, 1, changes)
}

func TestUnknownTargetsAreNoops(t *testing.T) {
	m, b, _, _ := newManager(t)
	m.Change(nil)
	m.ChangeIndex(-1)
	m.ChangeIndex(42)
	m.ChangeTo(77)
	m.Change(&probe{v: 55})
	require.Empty(t, b.log)
	require.Equal(t, idle, m.CurrentVariant())
}

func TestPauseFreezesMachine(t *testing.T) {
	m, b, c, probes := newManager(t)
	m.ChangeIndex(1)

	c.Pause()
	m.ChangeIndex(2)
	m.ChangeTo(idle)
	m.Step()
	m.OnContact(&physics.Collider{})
	require.Equal(t, probes[1], m.Current())
	require.Equal(t, probes[0], m.Last())
	require.Zero(t, probes[1].steps)
	require.Zero(t, probes[1].contacts)
	require.Len(t, b.log, 2)

	c.Resume()
	m.Step()
	m.OnContact(&physics.Collider{})
	require.Equal(t, 1, probes[1].steps)
	require.Equal(t, 1, probes[1].contacts)
}

func TestFamilies(t *testing.T) {
	m, _, _, probes := newManager(t)
	require.True(t, m.Contains(rollingLike))
	require.False(t, m.IsCurrentOfType(rollingLike))

	m.ChangeTo(rollingLike)
	require.Equal(t, probes[2], m.Current(), "a family resolves to its first registered member")
	require.True(t, m.IsCurrentOfType(rollingLike))

	m.ChangeTo(charge)
	require.True(t, m.IsCurrentOfType(walk, rollingLike))
	require.True(t, m.IsLastOfType(rollingLike))
	require.Equal(t, []Variant{idle, walk, roll, charge}, m.Variants())
}

func TestTimeSinceEnteredResets(t *testing.T) {
	m, _, c, probes := newManager(t)
	c.Advance(1)
	require.InDelta(t, 1, probes[0].TimeSinceEntered(), 1e-6)

	m.ChangeIndex(1)
	require.Zero(t, probes[1].TimeSinceEntered())
	c.Advance(0.25)
	require.InDelta(t, 0.25, probes[1].TimeSinceEntered(), 1e-6)
}

func TestExactlyOneCurrent(t *testing.T) {
	m, _, c, _ := newManager(t)
	for i := range 50 {
		if i%7 == 0 {
			c.Pause()
		} else {
			c.Resume()
		}
		m.ChangeIndex(i % 5)
		require.NotNil(t, m.Current())
		require.GreaterOrEqual(t, m.Index(), 0)
	}
}
