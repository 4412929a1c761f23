package gravity

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sasha-s/go-deadlock"
)

// Registry holds the fields of a level in registration order and remembers which triggers each
// entity was inside on the previous resolve, so exits can be detected.
type Registry struct {
	fields  *orderedmap.OrderedMap[uuid.UUID, *Field]
	inside  map[uuid.UUID][]*Field
	arbiter *Arbiter

	mu deadlock.RWMutex
}

// NewRegistry returns an empty registry that arbitrates with a.
func NewRegistry(a *Arbiter) *Registry {
	if a == nil {
		a = NewArbiter(nil)
	}
	return &Registry{
		fields:  orderedmap.NewOrderedMap[uuid.UUID, *Field](),
		inside:  make(map[uuid.UUID][]*Field),
		arbiter: a,
	}
}

// Add registers f. Adding a field twice keeps its original position.
func (r *Registry) Add(f *Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields.Get(f.ID); ok {
		return
	}
	r.fields.Set(f.ID, f)
}

// Remove unregisters the field with the given id.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for entity, fields := range r.inside {
		r.inside[entity] = lo.Reject(fields, func(f *Field, _ int) bool { return f.ID == id })
	}
	return r.fields.Delete(id)
}

// Field returns the field with the given id.
func (r *Registry) Field(id uuid.UUID) (*Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fields.Get(id)
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fields.Len()
}

// Fields returns every field in registration order.
func (r *Registry) Fields() []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.all()
}

func (r *Registry) all() []*Field {
	out := make([]*Field, 0, r.fields.Len())
	for el := r.fields.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Overlapping returns the fields whose trigger contains p, in registration order.
func (r *Registry) Overlapping(p mgl32.Vec3) []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Filter(r.all(), func(f *Field, _ int) bool { return f.Contains(p) })
}

// Expire drops elapsed cooldowns on every field.
func (r *Registry) Expire(now float32) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for el := r.fields.Front(); el != nil; el = el.Next() {
		el.Value.Expire(now)
	}
}

// Resolve runs the exit rule for every trigger the entity left since the last call and the stay
// rule for every trigger it is inside now. It returns true when the entity's field changed.
func (r *Registry) Resolve(e Attachable, now float32) bool {
	before := e.Field()
	current := r.Overlapping(e.Position())

	r.mu.Lock()
	previous := r.inside[e.ColliderID()]
	r.inside[e.ColliderID()] = current
	r.mu.Unlock()

	for _, f := range lo.Without(previous, current...) {
		r.arbiter.Exit(f, e, now)
	}
	for _, f := range current {
		r.arbiter.Stay(f, e, now)
	}
	return e.Field() != before
}

// Forget drops the trigger memory of an entity that left the world.
func (r *Registry) Forget(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inside, id)
}
