package fsm

import (
	"fmt"
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/motion/assert"
	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/physics"
)

// Config holds the collaborators of a Manager.
type Config struct {
	Clock    *clock.Clock
	Families Families
	// Name is used to label variants in logs.
	Name func(Variant) string
	Log  *slog.Logger
}

// Manager owns the state instances of one entity and the current/last pair.
type Manager[E any] struct {
	entity E
	conf   Config

	states *orderedmap.OrderedMap[Variant, State[E]]
	order  []State[E]

	current, last State[E]

	onEnter, onExit event.Listeners[Variant]
	onChange        event.Signal
	enterBy, exitBy event.Keyed[Variant, E]
}

// NewManager builds the variant map from states in order. The first state becomes current
// without its Enter hook being invoked. Duplicate variants keep the first instance.
func NewManager[E any](entity E, conf Config, states ...State[E]) (*Manager[E], error) {
	if len(states) == 0 {
		return nil, oerror.ErrNoStates
	}
	if conf.Clock == nil {
		conf.Clock = clock.New()
	}
	if conf.Log == nil {
		conf.Log = slog.New(slog.DiscardHandler)
	}
	if conf.Name == nil {
		conf.Name = func(v Variant) string { return fmt.Sprintf("variant(%d)", v) }
	}

	m := &Manager[E]{
		entity: entity,
		conf:   conf,
		states: orderedmap.NewOrderedMap[Variant, State[E]](),
	}
	for i, s := range states {
		if s == nil {
			conf.Log.Error("state catalog entry is nil", "index", i)
			return nil, fmt.Errorf("%w: index %d", oerror.ErrNilState, i)
		}
		if _, ok := m.states.Get(s.Variant()); ok {
			continue
		}
		if t, ok := s.(timed); ok {
			t.bind(conf.Clock)
		}
		m.states.Set(s.Variant(), s)
		m.order = append(m.order, s)
	}
	m.current = m.order[0]
	if t, ok := m.current.(timed); ok {
		t.markEntered()
	}
	return m, nil
}

// Entity returns the entity the manager drives.
func (m *Manager[E]) Entity() E {
	return m.entity
}

// Clock returns the clock the manager reads pause and time from.
func (m *Manager[E]) Clock() *clock.Clock {
	return m.conf.Clock
}

// Paused reports whether the simulation is paused.
func (m *Manager[E]) Paused() bool {
	return m.conf.Clock.Paused()
}

// Change transitions to s. It does nothing while paused, when s is nil, when s is not the
// registered instance of its variant, or when s is already current.
func (m *Manager[E]) Change(s State[E]) {
	if m.Paused() || s == nil || s == m.current {
		return
	}
	registered, ok := m.states.Get(s.Variant())
	if !ok || registered != s {
		return
	}

	prev := m.current
	prev.Exit(m.entity)
	m.onExit.Invoke(prev.Variant())
	m.exitBy.Invoke(prev.Variant(), m.entity)

	m.last = prev
	m.current = s
	if t, ok := s.(timed); ok {
		t.markEntered()
	}
	s.Enter(m.entity)
	m.onEnter.Invoke(s.Variant())
	m.enterBy.Invoke(s.Variant(), m.entity)
	m.onChange.Fire()

	m.conf.Log.Debug("state changed",
		"variant", m.conf.Name(s.Variant()),
		"last", m.conf.Name(prev.Variant()),
		"frame", m.conf.Clock.Frame(),
	)
}

// ChangeIndex transitions to the state registered at index i.
func (m *Manager[E]) ChangeIndex(i int) {
	if i < 0 || i >= len(m.order) {
		return
	}
	m.Change(m.order[i])
}

// ChangeTo transitions to the state of variant v. When v is a family tag the first registered
// member of the family is used.
func (m *Manager[E]) ChangeTo(v Variant) {
	if s, ok := m.Get(v); ok {
		m.Change(s)
	}
}

// Get returns the state of variant v, falling back to the first registered member of the family
// v names.
func (m *Manager[E]) Get(v Variant) (State[E], bool) {
	if s, ok := m.states.Get(v); ok {
		return s, true
	}
	members := m.conf.Families.Family(v)
	if len(members) == 0 {
		return nil, false
	}
	for _, s := range m.order {
		if m.conf.Families.Matches(s.Variant(), v) {
			return s, true
		}
	}
	return nil, false
}

// Contains reports whether a state of variant v (or of family v) is registered.
func (m *Manager[E]) Contains(v Variant) bool {
	_, ok := m.Get(v)
	return ok
}

// Step forwards the tick to the current state.
func (m *Manager[E]) Step() {
	assert.IsTrue(m.current != nil, "state manager stepped before initialization")
	if m.Paused() {
		return
	}
	m.current.Step(m.entity)
}

// OnContact forwards a contact to the current state.
func (m *Manager[E]) OnContact(c *physics.Collider) {
	if m.Paused() || c == nil {
		return
	}
	m.current.OnContact(m.entity, c)
}

func (m *Manager[E]) Current() State[E] { return m.current }
func (m *Manager[E]) Last() State[E]    { return m.last }

// CurrentVariant returns the variant of the current state.
func (m *Manager[E]) CurrentVariant() Variant {
	return m.current.Variant()
}

// LastVariant returns the variant of the previous state and false before the first transition.
func (m *Manager[E]) LastVariant() (Variant, bool) {
	if m.last == nil {
		return 0, false
	}
	return m.last.Variant(), true
}

// Index returns the catalog index of the current state.
func (m *Manager[E]) Index() int {
	return m.indexOf(m.current)
}

// LastIndex returns the catalog index of the previous state, or -1.
func (m *Manager[E]) LastIndex() int {
	return m.indexOf(m.last)
}

func (m *Manager[E]) indexOf(s State[E]) int {
	if s == nil {
		return -1
	}
	for i, o := range m.order {
		if o == s {
			return i
		}
	}
	return -1
}

// IsCurrentOfType reports whether the current variant equals or belongs to any of vs.
func (m *Manager[E]) IsCurrentOfType(vs ...Variant) bool {
	cur := m.current.Variant()
	for _, v := range vs {
		if m.conf.Families.Matches(cur, v) {
			return true
		}
	}
	return false
}

// IsLastOfType is IsCurrentOfType for the previous state.
func (m *Manager[E]) IsLastOfType(vs ...Variant) bool {
	if m.last == nil {
		return false
	}
	for _, v := range vs {
		if m.conf.Families.Matches(m.last.Variant(), v) {
			return true
		}
	}
	return false
}

// Variants returns the registered variants in catalog order.
func (m *Manager[E]) Variants() []Variant {
	return m.states.Keys()
}

// Len returns the number of registered states.
func (m *Manager[E]) Len() int {
	return len(m.order)
}

// AddEnterListener registers fn to run after a state of variant v is entered.
func (m *Manager[E]) AddEnterListener(v Variant, fn func(E)) {
	m.enterBy.Add(v, fn)
}

// AddExitListener registers fn to run after a state of variant v is exited.
func (m *Manager[E]) AddExitListener(v Variant, fn func(E)) {
	m.exitBy.Add(v, fn)
}

// OnEnter registers fn to run on every enter with the entered variant.
func (m *Manager[E]) OnEnter(fn func(Variant)) {
	m.onEnter.Add(fn)
}

// OnExit registers fn to run on every exit with the exited variant.
func (m *Manager[E]) OnExit(fn func(Variant)) {
	m.onExit.Add(fn)
}

// OnChange registers fn to run after every transition.
func (m *Manager[E]) OnChange(fn func()) {
	m.onChange.Add(fn)
}
