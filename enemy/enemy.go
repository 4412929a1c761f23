// Package enemy implements the hostile entities a player can homing-dash into. They run the same
// state manager as the player with their own, much smaller, catalog.
package enemy

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
	"github.com/sasha-s/go-deadlock"
)

// Config describes an enemy.
type Config struct {
	Entity entity.Config

	Health int
	// HitCooldown is how long the enemy ignores further hits after taking one.
	HitCooldown float32
	// Damage is dealt to players touching the enemy.
	Damage int

	Gravity   float32
	Friction  float32
	SnapForce float32
	// RemoveDelay is how long a dead enemy stays in the space before its collider is removed.
	RemoveDelay float32
}

// DefaultConfig returns the configuration of a one-hit enemy.
func DefaultConfig() Config {
	conf := entity.DefaultConfig()
	conf.Name = "enemy"
	conf.Layer = physics.LayerEnemy
	conf.Tag = physics.TagEnemy
	return Config{
		Entity:      conf,
		Health:      1,
		Damage:      1,
		Gravity:     38,
		Friction:    20,
		SnapForce:   8,
		RemoveDelay: 0.5,
	}
}

// Events are fired synchronously during Update and ApplyDamage.
type Events struct {
	Hit     event.Signal
	Die     event.Signal
	Removed event.Signal
}

// Enemy is an entity that hurts players on contact until it is destroyed.
type Enemy struct {
	*entity.Entity

	conf   Config
	states *fsm.Manager[*Enemy]
	health *player.Health
	log    *slog.Logger

	Events Events

	removed bool
	// mu serializes hits from players updating in parallel.
	mu deadlock.Mutex
}

// New creates an enemy in env. Its collider is tagged as an enemy and owned by the returned value,
// so player contacts can damage it.
func New(env entity.Env, conf Config) (*Enemy, error) {
	if env.Log == nil {
		env.Log = slog.New(slog.DiscardHandler)
	}
	e := &Enemy{
		conf: conf,
		log:  env.Log.With("enemy", conf.Entity.Name),
	}
	conf.Entity.Owner = e
	e.Entity = entity.New(env, conf.Entity)
	e.health = player.NewHealth(e.Clock(), conf.Health, conf.Health, conf.HitCooldown)

	states, err := fsm.NewManager(e, fsm.Config{
		Clock: e.Clock(),
		Name:  VariantName,
		Log:   e.log,
	}, &idle{}, &dead{})
	if err != nil {
		e.Remove()
		return nil, fmt.Errorf("enemy %q: %w", conf.Entity.Name, err)
	}
	e.states = states
	return e, nil
}

// Update runs one tick of the enemy. Removed enemies do nothing.
func (e *Enemy) Update() {
	if e.removed {
		return
	}
	e.Entity.Update(e)
}

// Step forwards the tick to the current state.
func (e *Enemy) Step() {
	e.states.Step()
}

// OnContact forwards c to the current state.
func (e *Enemy) OnContact(c *physics.Collider) {
	e.states.OnContact(c)
}

// ApplyDamage hurts the enemy. It dies once its health is empty.
func (e *Enemy) ApplyDamage(amount int, origin mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.Alive() || e.health.Recovering() {
		return
	}
	e.health.Damage(amount)
	e.Events.Hit.Fire()
	e.log.Debug("enemy hit", "amount", amount, "health", e.health.Current(), "origin", origin)
	if e.health.Empty() {
		e.states.ChangeTo(Dead)
		e.Events.Die.Fire()
	}
}

// Alive reports whether the enemy has health left.
func (e *Enemy) Alive() bool {
	return !e.health.Empty()
}

// Removed reports whether the enemy's collider has left the space.
func (e *Enemy) Removed() bool {
	return e.removed
}

func (e *Enemy) Health() *player.Health       { return e.health }
func (e *Enemy) States() *fsm.Manager[*Enemy] { return e.states }
func (e *Enemy) Config() Config               { return e.conf }

// remove drops the collider from the space once.
func (e *Enemy) remove() {
	if e.removed {
		return
	}
	e.removed = true
	e.Remove()
	e.Events.Removed.Fire()
}

// Snapshot returns the telemetry of the enemy.
func (e *Enemy) Snapshot() Snapshot {
	return Snapshot{
		Frame:    e.Clock().Frame(),
		Name:     e.Name(),
		Position: e.Position(),
		Current:  VariantName(e.states.CurrentVariant()),
		Health:   e.health.Current(),
		Removed:  e.removed,
	}
}

// Snapshot is the read-only telemetry of an enemy.
type Snapshot struct {
	Frame    uint64     `json:"frame" yaml:"frame"`
	Name     string     `json:"name" yaml:"name"`
	Position mgl32.Vec3 `json:"position" yaml:"position"`
	Current  string     `json:"current" yaml:"current"`
	Health   int        `json:"health" yaml:"health"`
	Removed  bool       `json:"removed" yaml:"removed"`
}
