// Package event holds ordered observer registries. Listeners are invoked in registration order on
// the goroutine that fires the event.
package event

// Listeners is an ordered list of callbacks receiving a value of type T.
type Listeners[T any] struct {
	fns []func(T)
}

// Add registers fn. Nil callbacks are ignored.
func (l *Listeners[T]) Add(fn func(T)) {
	if fn == nil {
		return
	}
	l.fns = append(l.fns, fn)
}

// Invoke calls every listener with v. Listeners added during dispatch are first called on the next
// Invoke.
func (l *Listeners[T]) Invoke(v T) {
	fns := l.fns
	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of registered listeners.
func (l *Listeners[T]) Len() int {
	return len(l.fns)
}

// Clear drops every listener.
func (l *Listeners[T]) Clear() {
	l.fns = nil
}

// Signal is a value-less event.
type Signal struct {
	l Listeners[struct{}]
}

// Add registers fn.
func (s *Signal) Add(fn func()) {
	if fn == nil {
		return
	}
	s.l.Add(func(struct{}) { fn() })
}

// Fire calls every listener.
func (s *Signal) Fire() {
	s.l.Invoke(struct{}{})
}

// Len returns the number of registered listeners.
func (s *Signal) Len() int {
	return s.l.Len()
}

// Keyed maps keys to their own ordered listener lists.
type Keyed[K comparable, T any] struct {
	m map[K]*Listeners[T]
}

// Add registers fn under key.
func (k *Keyed[K, T]) Add(key K, fn func(T)) {
	if k.m == nil {
		k.m = make(map[K]*Listeners[T])
	}
	l, ok := k.m[key]
	if !ok {
		l = &Listeners[T]{}
		k.m[key] = l
	}
	l.Add(fn)
}

// Invoke calls the listeners registered under key.
func (k *Keyed[K, T]) Invoke(key K, v T) {
	if l, ok := k.m[key]; ok {
		l.Invoke(v)
	}
}

// Len returns the number of listeners registered under key.
func (k *Keyed[K, T]) Len(key K) int {
	if l, ok := k.m[key]; ok {
		return l.Len()
	}
	return 0
}
