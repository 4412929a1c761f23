package gravity

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/motion/game"
)

// Attachable is what field arbitration needs from an entity.
type Attachable interface {
	ColliderID() uuid.UUID
	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
	// VerticalVelocity is the speed along the entity's current up.
	VerticalVelocity() float32
	Grounded() bool
	Field() *Field
	SetField(f *Field)
	ZeroVerticalVelocity()
	// CanChangeToField is false while the entity is in a state that holds its orientation.
	CanChangeToField(f *Field) bool
	SetUp(up mgl32.Vec3)
}

// Arbiter applies the trigger rules that decide which field an entity is attached to.
type Arbiter struct {
	log *slog.Logger
}

// NewArbiter returns an arbiter that logs hand-offs to log. A nil logger discards them.
func NewArbiter(log *slog.Logger) *Arbiter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Arbiter{log: log}
}

// Stay runs once per tick for every field whose trigger contains the entity. It returns true
// when the entity was attached to f.
func (a *Arbiter) Stay(f *Field, e Attachable, now float32) bool {
	if f == nil || f.Ignoring(e.ColliderID(), now) || !e.CanChangeToField(f) {
		return false
	}
	current := e.Field()
	switch {
	case current == f:
		return false
	case current == nil:
		e.SetField(f)
	case f.Priority > current.Priority:
		e.SetField(f)
	case f.Priority == current.Priority:
		if !a.handOff(f, e) {
			return false
		}
		e.ZeroVerticalVelocity()
		current.IgnoreCollider(e.ColliderID(), now)
		e.SetField(f)
	default:
		return false
	}
	a.log.Debug("gravity field attached", "field", f.Name, "shape", f.Shape.String(), "priority", f.Priority)
	return true
}

// handOff reports whether an entity under an equal priority field is moving into f: it has to be
// airborne, rising relative to its current field and travelling towards f's center.
func (a *Arbiter) handOff(f *Field, e Attachable) bool {
	if e.Grounded() || e.VerticalVelocity() <= 0 {
		return false
	}
	toCenter := f.Center().Sub(e.Position())
	return e.Velocity().Dot(toCenter) > 0
}

// Exit runs when the entity leaves the trigger of f. It returns true when the entity was detached.
func (a *Arbiter) Exit(f *Field, e Attachable, now float32) bool {
	if f == nil || !f.DetachOnExit || e.Field() != f {
		return false
	}
	e.SetField(nil)
	f.IgnoreCollider(e.ColliderID(), now)
	if f.ResetRotationOnDetach {
		e.SetUp(game.WorldUp)
	}
	a.log.Debug("gravity field detached", "field", f.Name)
	return true
}
