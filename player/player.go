// Package player implements the controllable character: an entity driven by the player state
// catalog, reading its tunables from a stats profile and its intent from an input source.
package player

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/gravity"
	"github.com/oomph-ac/motion/input"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/spline"
	"github.com/oomph-ac/motion/stats"
	"github.com/samber/lo"
)

// Damageable is anything that can be hurt by a hit coming from origin.
type Damageable interface {
	ApplyDamage(amount int, origin mgl32.Vec3)
}

// EnemyContacter is implemented by states that react to the player touching an enemy.
type EnemyContacter interface {
	OnEnemyContact(p *Player, enemy Damageable)
}

const (
	// waterExitOffset is how far below the center the player has to leave the water to stop
	// swimming.
	waterExitOffset = 0.25
	hazardDamage    = 1
)

// Config describes a player.
type Config struct {
	Entity entity.Config

	InitialHealth  int
	MaxHealth      int
	HealthCooldown float32
}

// DefaultConfig returns the configuration of a regular player.
func DefaultConfig() Config {
	conf := entity.DefaultConfig()
	conf.Name = "player"
	conf.Tag = physics.TagPlayer
	return Config{
		Entity:         conf,
		InitialHealth:  3,
		MaxHealth:      3,
		HealthCooldown: 1,
	}
}

// Player is the controllable entity.
type Player struct {
	*entity.Entity

	states *fsm.Manager[*Player]
	stats  *stats.Manager
	inputs input.Capabilities
	health *Health
	log    *slog.Logger

	Events Events

	jumpCounter      int
	airSpinCounter   int
	airDashCounter   int
	jumpedFromGround bool
	lastDashTime     float32

	lastWallNormal   mgl32.Vec3
	lastDamageOrigin mgl32.Vec3
	canTakeDamage    bool
	holding          bool

	pole    *Pole
	water   *physics.Collider
	onWater bool
	// touchedWater is set when the water collider was among the contacts of the current tick.
	touchedWater bool
	// boosters holds the boosters touched this tick, lastBoosters those of the previous one.
	boosters, lastBoosters []*Booster

	homing homing

	skinOffset mgl32.Vec3

	respawnPosition mgl32.Vec3
	respawnRotation mgl32.Quat
}

// New creates a player in env driven by catalog. The first state of the catalog is the initial
// one. An empty or nil-containing catalog is a configuration error.
func New(env entity.Env, conf Config, inputs input.Capabilities, sm *stats.Manager, catalog ...fsm.State[*Player]) (*Player, error) {
	if inputs == nil || sm == nil {
		return nil, fmt.Errorf("player %q: inputs and stats are required", conf.Entity.Name)
	}
	if env.Log == nil {
		env.Log = slog.New(slog.DiscardHandler)
	}
	p := &Player{
		stats:           sm,
		inputs:          inputs,
		log:             env.Log.With("player", conf.Entity.Name),
		canTakeDamage:   true,
		lastDashTime:    float32(math.Inf(-1)),
		respawnPosition: conf.Entity.Position,
		respawnRotation: conf.Entity.Rotation,
	}
	conf.Entity.Owner = p
	p.Entity = entity.New(env, conf.Entity)
	p.health = NewHealth(p.Clock(), conf.InitialHealth, conf.MaxHealth, conf.HealthCooldown)
	if p.respawnRotation == (mgl32.Quat{}) {
		p.respawnRotation = mgl32.QuatIdent()
	}

	states, err := fsm.NewManager(p, fsm.Config{
		Clock:    p.Clock(),
		Families: Families,
		Name:     VariantName,
		Log:      p.log,
	}, catalog...)
	if err != nil {
		p.log.Error("failed to initialize state catalog", "err", err)
		p.Remove()
		return nil, fmt.Errorf("player %q: %w", conf.Entity.Name, err)
	}
	p.states = states

	p.bindHooks()
	p.bindEvents()
	return p, nil
}

func (p *Player) bindHooks() {
	p.Hooks.Landing = func(hit physics.Hit) bool {
		return hit.Tag() != physics.TagSpring
	}
	p.Hooks.CanChangeToField = func(*gravity.Field) bool {
		return !p.states.IsCurrentOfType(PoleClimbing, LedgeHanging, LedgeClimbing, Swim)
	}
	p.Hooks.AirToGroundFactor = func() float32 {
		s := p.Stats()
		if !p.holding && s.Roll.CanRoll && p.inputs.RollCharge() {
			return s.Roll.AirToGroundFactor
		}
		return 1
	}
	p.Hooks.SlopeLimit = func(hit physics.Hit) {
		if p.onWater {
			return
		}
		dir := hit.Normal.Cross(hit.Normal.Cross(p.Up()))
		dir, ok := game.SafeNormalize(dir)
		if !ok {
			return
		}
		p.Move(dir.Mul(p.Stats().General.SlideForce * p.Delta()))
	}
	p.Hooks.HighLedge = func(hit physics.Hit) {
		if p.onWater {
			return
		}
		edge := hit.Point.Sub(p.Position())
		push := edge.Cross(edge.Cross(p.Up()))
		p.Move(push.Mul(p.Stats().General.Gravity * p.Delta()))
	}
}

func (p *Player) bindEvents() {
	p.Entity.Events.GroundEnter.Add(func() {
		p.ResetJumps()
		p.ResetAirSpins()
		p.ResetAirDash()
		p.Uncurl(false)
		p.ComputeFallDamage()
		p.ClearHomingTarget()
	})
	p.Entity.Events.RailsEnter.Add(func() {
		p.ResetJumps()
		p.ResetAirSpins()
		p.ResetAirDash()
		p.ClearHomingTarget()
		p.HandleRail()
	})
	p.Entity.Events.FieldChanged.Add(func(f *gravity.Field) {
		p.inputs.SetInvertXAxis(f != nil && f.InvertXAxis)
		p.inputs.SetInvertZAxis(f != nil && f.InvertZAxis)
	})
}

// Update runs one tick of the player.
func (p *Player) Update() {
	p.touchedWater = false
	if !p.Clock().Paused() {
		p.lastBoosters, p.boosters = p.boosters, p.lastBoosters[:0]
	}
	p.Entity.Update(p)
	if p.onWater && !p.touchedWater && !p.Clock().Paused() {
		p.ExitWater()
	}
}

// Step forwards the tick to the current state.
func (p *Player) Step() {
	p.states.Step()
}

// OnContact handles water volumes, enemies, hazards and boosters, then forwards c to the current
// state.
func (p *Player) OnContact(c *physics.Collider) {
	switch c.Tag {
	case physics.TagWater:
		p.handleWaterContact(c)
	case physics.TagEnemy:
		p.handleEnemyContact(c)
	case physics.TagHazard:
		p.ApplyDamage(hazardDamage, c.ClosestPoint(p.Position()))
	case physics.TagBooster:
		p.handleBoosterContact(c)
	}
	p.states.OnContact(c)
}

func (p *Player) handleWaterContact(c *physics.Collider) {
	if c.Contains(p.UnsizedPosition()) {
		p.touchedWater = true
		p.EnterWater(c)
		return
	}
	if p.onWater && c == p.water {
		exit := p.Position().Sub(p.Up().Mul(waterExitOffset))
		if c.Contains(exit) {
			p.touchedWater = true
		}
	}
}

// handleBoosterContact boosts the player only on the first tick it touches a booster.
func (p *Player) handleBoosterContact(c *physics.Collider) {
	b, ok := c.Owner.(*Booster)
	if !ok || lo.Contains(p.boosters, b) {
		return
	}
	p.boosters = append(p.boosters, b)
	if !lo.Contains(p.lastBoosters, b) {
		p.Boost(b)
	}
}

func (p *Player) handleEnemyContact(c *physics.Collider) {
	enemy, ok := c.Owner.(Damageable)
	if !ok {
		return
	}
	if s, ok := p.states.Current().(EnemyContacter); ok {
		s.OnEnemyContact(p, enemy)
	}
}

// States returns the state manager of the player.
func (p *Player) States() *fsm.Manager[*Player] {
	return p.states
}

// Stats returns the active stats profile.
func (p *Player) Stats() *stats.Stats {
	return p.stats.Current()
}

// StatsManager returns the profiles of the player.
func (p *Player) StatsManager() *stats.Manager {
	return p.stats
}

// Inputs returns the input source of the player.
func (p *Player) Inputs() input.Capabilities {
	return p.inputs
}

// Health returns the hit points of the player.
func (p *Player) Health() *Health {
	return p.health
}

// Logger returns the logger of the player.
func (p *Player) Logger() *slog.Logger {
	return p.log
}

// InputDirection is the stick direction on the plane of the player's up and its magnitude.
func (p *Player) InputDirection() (mgl32.Vec3, float32) {
	return p.inputs.MovementCameraDirection(p.Up())
}

// Alive reports whether the player has health left.
func (p *Player) Alive() bool {
	return !p.health.Empty()
}

// Running reports whether the run modifier applies.
func (p *Player) Running() bool {
	s := p.Stats()
	return p.inputs.Run() && s.Run.CanRun && (s.Run.CanRunOnAir || p.Grounded())
}

// Holding reports whether the player carries something.
func (p *Player) Holding() bool {
	return p.holding
}

// SetHolding is set by whatever grabs objects for the player. Most abilities are unavailable
// while holding.
func (p *Player) SetHolding(holding bool) {
	p.holding = holding
}

func (p *Player) CanTakeDamage() bool            { return p.canTakeDamage }
func (p *Player) SetCanTakeDamage(can bool)      { p.canTakeDamage = can }
func (p *Player) JumpCounter() int               { return p.jumpCounter }
func (p *Player) AirSpinCounter() int            { return p.airSpinCounter }
func (p *Player) AirDashCounter() int            { return p.airDashCounter }
func (p *Player) JumpedFromGround() bool         { return p.jumpedFromGround }
func (p *Player) LastWallNormal() mgl32.Vec3     { return p.lastWallNormal }
func (p *Player) LastDamageOrigin() mgl32.Vec3   { return p.lastDamageOrigin }
func (p *Player) OnWater() bool                  { return p.onWater }
func (p *Player) Water() *physics.Collider       { return p.water }
func (p *Player) Pole() *Pole                    { return p.pole }
func (p *Player) SetLastWallNormal(n mgl32.Vec3) { p.lastWallNormal = n }

// SkinOffset is the local offset of the visual skin requested by the current state.
func (p *Player) SkinOffset() mgl32.Vec3 {
	return p.skinOffset
}

// SetSkinOffset moves the skin by a local offset until ResetSkinOffset.
func (p *Player) SetSkinOffset(o mgl32.Vec3) {
	p.skinOffset = o
}

func (p *Player) ResetSkinOffset() {
	p.skinOffset = mgl32.Vec3{}
}

// ApplyDamage hurts the player unless it is dead, recovering from a previous hit or invincible.
func (p *Player) ApplyDamage(amount int, origin mgl32.Vec3) {
	if p.health.Empty() || p.health.Recovering() || !p.canTakeDamage {
		return
	}
	p.health.Damage(amount)
	p.lastDamageOrigin = origin
	p.states.ChangeTo(Hurt)
	p.Events.Hurt.Fire()
	if p.health.Empty() {
		p.Events.Die.Fire()
	}
}

// Die empties the health of the player.
func (p *Player) Die() {
	p.health.Set(0)
	p.states.ChangeTo(Die)
	p.Events.Die.Fire()
}

// SetRespawn changes where Respawn puts the player back.
func (p *Player) SetRespawn(position mgl32.Vec3, rotation mgl32.Quat) {
	p.respawnPosition = position
	p.respawnRotation = rotation
}

// Respawn restores the health of the player and moves it back to its respawn point.
func (p *Player) Respawn() {
	p.health.Reset()
	p.SetField(nil)
	p.ExitRail()
	p.ResetRotation()
	p.Teleport(p.respawnPosition)
	p.SetRotation(p.respawnRotation)
	p.ClearHomingTarget()
	p.ExitWater()
	p.states.ChangeTo(Idle)
}

// ComputeFallDamage hurts the player after a long and fast fall.
func (p *Player) ComputeFallDamage() {
	s := p.Stats().FallDamage
	if !p.Alive() || !s.CanTakeFallDamage {
		return
	}
	duration := p.FallDuration()
	if duration <= s.MinFallDuration || p.LandingSpeed() < s.MinFallSpeed {
		return
	}
	steps := 0
	if s.Interval > 0 {
		steps = int(math.Floor(float64((duration - s.MinFallDuration) / s.Interval)))
	}
	damage := s.Base + s.Additional*steps
	p.SetLateral(mgl32.Vec3{})
	p.ApplyDamage(damage, p.Position())
}

// Snapshot returns the telemetry of the player.
func (p *Player) Snapshot() Snapshot {
	last, _ := p.states.LastVariant()
	return Snapshot{
		Frame:          p.Clock().Frame(),
		Name:           p.Name(),
		Position:       p.Position(),
		Lateral:        p.Lateral(),
		Vertical:       p.VerticalVelocity(),
		Grounded:       p.Grounded(),
		OnRails:        p.OnRails(),
		Current:        VariantName(p.states.CurrentVariant()),
		Last:           VariantName(last),
		JumpCounter:    p.jumpCounter,
		AirSpinCounter: p.airSpinCounter,
		AirDashCounter: p.airDashCounter,
		Health:         p.health.Current(),
	}
}

// railAt returns the rail registered for c, if any.
func (p *Player) railAt(c *physics.Collider) (*spline.Container, bool) {
	return p.RailIndex().Lookup(c)
}
