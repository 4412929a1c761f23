// Package world owns a running simulation: the clock, the collision space and its rails and
// gravity fields, and every player and enemy stepped by Tick.
package world

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/enemy"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/gravity"
	"github.com/oomph-ac/motion/input"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/stats"
	"github.com/oomph-ac/motion/utils"
	"github.com/oomph-ac/motion/worker"
	"github.com/samber/lo"
	"github.com/sasha-s/go-deadlock"
)

// Source provides the input frame of a player for each tick, counted from zero.
type Source interface {
	At(tick int) input.Frame
}

// body is a player together with its input and telemetry.
type body struct {
	p      *player.Player
	inputs *input.Manager
	source Source

	telemetry *utils.CircularQueue[player.Snapshot]
	dead      bool
	diedAt    float32
}

// World is a simulation instance. Its methods may be called from multiple goroutines.
type World struct {
	conf  Config
	clock *clock.Clock
	space *physics.Space
	rails *physics.RailIndex
	// fields holds the gravity fields and the trigger memory of every entity.
	fields *gravity.Registry
	pool   *worker.Pool
	log    *slog.Logger

	level   *Level
	players []*body
	enemies []*enemy.Enemy

	deadlock.RWMutex
}

// New returns an empty world. A nil logger discards everything.
func New(conf Config, log *slog.Logger) (*World, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := clock.New()
	c.SetTimeScale(conf.TimeScale)
	return &World{
		conf:   conf,
		clock:  c,
		space:  physics.NewSpace(conf.CellSize),
		rails:  physics.NewRailIndex(),
		fields: gravity.NewRegistry(gravity.NewArbiter(log)),
		pool:   worker.New(conf.Workers),
		log:    log,
		level:  &Level{},
	}, nil
}

// Load adds the content of l to the world. Nothing is added when l is invalid.
func (w *World) Load(l *Level) error {
	b, err := l.build()
	if err != nil {
		return fmt.Errorf("level %q: %w", l.Name, err)
	}

	w.Lock()
	defer w.Unlock()
	for _, c := range b.colliders {
		w.space.Add(c)
		if container, ok := b.railOf[c]; ok {
			w.rails.Register(c, container)
		}
	}
	for _, f := range b.fields {
		w.fields.Add(f)
	}
	for _, conf := range b.enemies {
		e, err := enemy.New(w.env(), conf)
		if err != nil {
			return fmt.Errorf("level %q: %w", l.Name, err)
		}
		w.enemies = append(w.enemies, e)
	}
	w.level = l
	w.log.Info("level loaded", "level", l.Name, "colliders", len(b.colliders), "rails", len(b.rails),
		"fields", len(b.fields), "enemies", len(b.enemies))
	return nil
}

func (w *World) env() entity.Env {
	return entity.Env{Space: w.space, Clock: w.clock, Rails: w.rails, Log: w.log}
}

// AddPlayer spawns a player named name at the spawn point of the level. A nil source leaves the
// player without input.
func (w *World) AddPlayer(name string, sm *stats.Manager, source Source, catalog ...fsm.State[*player.Player]) (*player.Player, error) {
	w.Lock()
	defer w.Unlock()

	conf := player.DefaultConfig()
	conf.Entity.Name = name
	conf.Entity.Position = w.level.Spawn.Position
	conf.Entity.Rotation = w.level.Spawn.Rotation()
	inputs := input.NewManager(w.clock)
	p, err := player.New(w.env(), conf, inputs, sm, catalog...)
	if err != nil {
		return nil, err
	}

	b := &body{p: p, inputs: inputs, source: source}
	if w.conf.Telemetry > 0 {
		b.telemetry = utils.NewCircularQueue[player.Snapshot](w.conf.Telemetry)
	}
	p.Events.Die.Add(func() {
		b.dead = true
		b.diedAt = w.clock.Now()
		w.log.Info("player died", "player", name, "frame", w.clock.Frame())
	})
	w.players = append(w.players, b)
	return p, nil
}

// Tick advances the clock by dt and steps the world. While paused nothing moves: field cooldowns,
// inputs and entities all wait for the clock to resume.
func (w *World) Tick(ctx context.Context, dt float32) error {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.clock.Advance(dt); !ok {
		return nil
	}
	now := w.clock.Now()
	tick := int(w.clock.Frame()) - 1

	w.fields.Expire(now)
	for _, b := range w.players {
		w.fields.Resolve(b.p, now)
		if b.source != nil {
			b.inputs.Feed(b.source.At(tick))
		} else {
			b.inputs.Feed(input.Frame{})
		}
	}
	for _, e := range w.enemies {
		w.fields.Resolve(e, now)
	}

	if err := w.updatePlayers(ctx); err != nil {
		return fmt.Errorf("tick %d: %w", tick, err)
	}
	for _, e := range w.enemies {
		e.Update()
	}

	removed, kept := lo.FilterReject(w.enemies, func(e *enemy.Enemy, _ int) bool { return e.Removed() })
	for _, e := range removed {
		w.fields.Forget(e.ColliderID())
	}
	w.enemies = kept
	for _, b := range w.players {
		w.afterUpdate(b, now)
	}
	return nil
}

func (w *World) updatePlayers(ctx context.Context) error {
	if !w.conf.Parallel || len(w.players) < 2 {
		for _, b := range w.players {
			b.p.Update()
		}
		return nil
	}
	return worker.Each(ctx, w.pool, w.players, func(b *body) error {
		b.p.Update()
		return nil
	})
}

// afterUpdate applies the kill height and respawn delay and records telemetry.
func (w *World) afterUpdate(b *body, now float32) {
	if kill := w.level.KillHeight; kill != nil && b.p.Alive() && b.p.Position().Y() < *kill {
		b.p.Die()
	}
	if b.dead && w.conf.RespawnDelay >= 0 && now-b.diedAt >= w.conf.RespawnDelay {
		b.dead = false
		b.p.Respawn()
		w.log.Info("player respawned", "player", b.p.Name(), "frame", w.clock.Frame())
	}
	if b.telemetry != nil {
		_ = b.telemetry.Append(b.p.Snapshot())
	}
}

// Run ticks the world frames times at the configured tick rate, stopping early when ctx is done.
func (w *World) Run(ctx context.Context, frames int) error {
	dt := w.conf.Delta()
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Tick(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}

// Pause freezes the simulation until Resume is called.
func (w *World) Pause() {
	w.clock.Pause()
	w.log.Debug("world paused", "frame", w.clock.Frame())
}

// Resume restores the time scale the world had before Pause.
func (w *World) Resume() {
	w.clock.Resume()
	w.log.Debug("world resumed", "frame", w.clock.Frame())
}

// Telemetry returns the recorded snapshots of the named player, oldest first.
func (w *World) Telemetry(name string) []player.Snapshot {
	w.RLock()
	defer w.RUnlock()
	for _, b := range w.players {
		if b.p.Name() == name && b.telemetry != nil {
			return b.telemetry.Slice()
		}
	}
	return nil
}

// Player returns the player with the given name.
func (w *World) Player(name string) (*player.Player, bool) {
	w.RLock()
	defer w.RUnlock()
	b, ok := lo.Find(w.players, func(b *body) bool { return b.p.Name() == name })
	if !ok {
		return nil, false
	}
	return b.p, true
}

// Players returns every player in the order they were added.
func (w *World) Players() []*player.Player {
	w.RLock()
	defer w.RUnlock()
	return lo.Map(w.players, func(b *body, _ int) *player.Player { return b.p })
}

// Enemies returns the enemies that have not been removed yet.
func (w *World) Enemies() []*enemy.Enemy {
	w.RLock()
	defer w.RUnlock()
	return append([]*enemy.Enemy(nil), w.enemies...)
}

func (w *World) Clock() *clock.Clock       { return w.clock }
func (w *World) Space() *physics.Space     { return w.space }
func (w *World) Rails() *physics.RailIndex { return w.rails }
func (w *World) Fields() *gravity.Registry { return w.fields }
func (w *World) Config() Config            { return w.conf }
func (w *World) Logger() *slog.Logger      { return w.log }

// Level returns the last level loaded.
func (w *World) Level() *Level {
	w.RLock()
	defer w.RUnlock()
	return w.level
}
