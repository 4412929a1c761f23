// Package entity implements the movement body shared by every simulated character: a capsule with
// a velocity split into a lateral part orthogonal to its up and a vertical speed along it.
package entity

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/gravity"
	"github.com/oomph-ac/motion/physics"
	"github.com/oomph-ac/motion/spline"
	"github.com/oomph-ac/motion/utils"
)

// Space is the collision world an entity lives in.
type Space interface {
	physics.Provider
	Add(c *physics.Collider)
	Remove(id uuid.UUID)
	MoveSphere(c *physics.Collider, center mgl32.Vec3)
}

// Driver receives the per-tick callbacks of Update. State managers implement it.
type Driver interface {
	Step()
	OnContact(c *physics.Collider)
}

// Env is what an entity shares with the rest of the world.
type Env struct {
	Space Space
	Clock *clock.Clock
	// Rails resolves rail colliders touched by the ground sweep. It may be nil.
	Rails *physics.RailIndex
	Log   *slog.Logger
}

// Config describes the capsule of an entity.
type Config struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat

	Radius     float32
	Height     float32
	SkinWidth  float32
	SlopeLimit float32
	StepOffset float32

	// Layer and Tag are given to the entity's own collider.
	Layer physics.Layer
	Tag   physics.Tag
	// Collision selects what the controller collides with.
	Collision physics.LayerMask
	Owner     any
}

// DefaultConfig returns the capsule of a regular character.
func DefaultConfig() Config {
	return Config{
		Rotation:   mgl32.QuatIdent(),
		Radius:     0.5,
		Height:     2,
		SkinWidth:  game.DefaultContactOffset,
		SlopeLimit: 45,
		StepOffset: 0.3,
		Layer:      physics.LayerEntity,
		Collision:  physics.AllLayers.Without(physics.Mask(physics.LayerWater)),
	}
}

// Hooks let the owner of an entity refine the ground and gravity rules.
type Hooks struct {
	// Landing can reject a ground hit that would otherwise be landed on.
	Landing func(hit physics.Hit) bool
	// CanChangeToField can keep the entity out of gravity fields.
	CanChangeToField func(f *gravity.Field) bool
	// AirToGroundFactor scales the falling speed converted into slope speed on landing.
	AirToGroundFactor func() float32
	// SlopeLimit runs while standing on ground steeper than the slope limit.
	SlopeLimit func(hit physics.Hit)
	// HighLedge runs when the ground sweep touches an edge above the step offset.
	HighLedge func(hit physics.Hit)
}

// Events are fired synchronously during Update.
type Events struct {
	GroundEnter event.Signal
	GroundExit  event.Signal
	RailsEnter  event.Signal
	RailsExit   event.Signal
	// FieldChanged receives the new field, nil when detached.
	FieldChanged event.Listeners[*gravity.Field]
}

// Multipliers scale the movement primitives. They all default to one.
type Multipliers struct {
	Gravity      float32
	TurningDrag  float32
	TopSpeed     float32
	Acceleration float32
	Deceleration float32
}

// Entity is a capsule driven by a state machine.
type Entity struct {
	env      Env
	conf     Config
	collider *physics.Collider

	Hooks  Hooks
	Events Events
	Mul    Multipliers

	position mgl32.Vec3
	rotation mgl32.Quat
	// up is cached from rotation and only changes through setUp.
	up mgl32.Vec3

	lateral  mgl32.Vec3
	vertical float32

	targetTopSpeed float32
	positionDelta  float32

	grounded       bool
	groundHit      physics.Hit
	lastGroundTime float32
	fallDuration   float32
	landingSpeed   float32

	height          float32
	originalForward mgl32.Vec3

	onRails bool
	rails   *spline.Container

	field *gravity.Field

	lockGravityUntil float32
	customCollision  bool
	snapForce        float32

	contacts []*physics.Collider
	history  *utils.CircularQueue[HistoricalPosition]
}

// New creates an entity and registers its collider in env.Space.
func New(env Env, conf Config) *Entity {
	if env.Clock == nil {
		env.Clock = clock.New()
	}
	if env.Log == nil {
		env.Log = slog.New(slog.DiscardHandler)
	}
	if conf.Rotation == (mgl32.Quat{}) {
		conf.Rotation = mgl32.QuatIdent()
	}
	if conf.SkinWidth <= 0 {
		conf.SkinWidth = game.DefaultContactOffset
	}
	conf.Height = max(conf.Height, conf.Radius*2)

	e := &Entity{
		env:            env,
		conf:           conf,
		Mul:            Multipliers{Gravity: 1, TurningDrag: 1, TopSpeed: 1, Acceleration: 1, Deceleration: 1},
		position:       conf.Position,
		rotation:       conf.Rotation.Normalize(),
		height:         conf.Height,
		lastGroundTime: float32(math.Inf(-1)),
		history:        utils.NewCircularQueue[HistoricalPosition](historySize),
	}
	e.up = game.Up(e.rotation)
	e.originalForward = game.Forward(e.rotation)
	e.collider = physics.NewSphere(conf.Name, e.position, conf.Radius, conf.Layer, conf.Tag)
	e.collider.Owner = conf.Owner
	if env.Space != nil {
		env.Space.Add(e.collider)
	}
	return e
}

// ID returns the id of the entity's collider.
func (e *Entity) ID() uuid.UUID {
	return e.collider.ID
}

// ColliderID is ID, satisfying gravity.Attachable.
func (e *Entity) ColliderID() uuid.UUID {
	return e.collider.ID
}

// Collider returns the sphere registered for the entity in the space.
func (e *Entity) Collider() *physics.Collider {
	return e.collider
}

// Name returns the configured name.
func (e *Entity) Name() string {
	return e.conf.Name
}

// Clock returns the clock the entity reads time from.
func (e *Entity) Clock() *clock.Clock {
	return e.env.Clock
}

// Space returns the collision space the entity queries.
func (e *Entity) Space() Space {
	return e.env.Space
}

// RailIndex returns the rail index, which may be nil.
func (e *Entity) RailIndex() *physics.RailIndex {
	return e.env.Rails
}

// Log returns the entity's logger.
func (e *Entity) Log() *slog.Logger {
	return e.env.Log
}

// Now is the current simulation time.
func (e *Entity) Now() float32 {
	return e.env.Clock.Now()
}

// Delta is the scaled duration of the current tick.
func (e *Entity) Delta() float32 {
	return e.env.Clock.Delta()
}

// Position returns the center of the capsule.
func (e *Entity) Position() mgl32.Vec3 {
	return e.position
}

// SetPosition moves the capsule without sweeping.
func (e *Entity) SetPosition(p mgl32.Vec3) {
	e.position = p
	e.syncCollider()
}

// Teleport moves the entity, drops its ground contact and clears its velocity.
func (e *Entity) Teleport(p mgl32.Vec3) {
	e.SetPosition(p)
	e.lateral, e.vertical = mgl32.Vec3{}, 0
	e.grounded = false
	e.groundHit = physics.Hit{}
	_ = e.history.Append(HistoricalPosition{Frame: e.env.Clock.Frame(), Position: p, Teleport: true})
}

// UnsizedPosition is the center the capsule would have at its original height, keeping the feet
// where they are.
func (e *Entity) UnsizedPosition() mgl32.Vec3 {
	return e.position.Add(e.up.Mul((e.conf.Height - e.height) * 0.5))
}

// Rotation returns the orientation of the entity.
func (e *Entity) Rotation() mgl32.Quat {
	return e.rotation
}

// SetRotation changes the facing while keeping the current up.
func (e *Entity) SetRotation(q mgl32.Quat) {
	q = q.Normalize()
	e.rotation = game.FromToRotation(game.Up(q), e.up).Mul(q).Normalize()
}

func (e *Entity) Up() mgl32.Vec3      { return e.up }
func (e *Entity) Right() mgl32.Vec3   { return game.Right(e.rotation) }
func (e *Entity) Forward() mgl32.Vec3 { return game.Forward(e.rotation) }

// LocalForward is the forward direction in the plane of lateral motion.
func (e *Entity) LocalForward() mgl32.Vec3 {
	f, ok := game.SafeNormalize(game.ProjectOnPlane(e.Forward(), e.up))
	if !ok {
		return e.originalForward
	}
	return f
}

// OriginalForward is the forward the entity was created with.
func (e *Entity) OriginalForward() mgl32.Vec3 {
	return e.originalForward
}

// SetUp rotates the entity so its up matches up. The velocity keeps its world direction and is
// split again against the new up.
func (e *Entity) SetUp(up mgl32.Vec3) {
	e.setUp(up, false)
}

// ResetRotation turns the entity back to world up.
func (e *Entity) ResetRotation() {
	e.setUp(game.WorldUp, false)
}

func (e *Entity) setUp(up mgl32.Vec3, rotateVelocity bool) {
	up, ok := game.SafeNormalize(up)
	if !ok || up.ApproxEqual(e.up) {
		return
	}
	delta := game.FromToRotation(e.up, up)
	velocity := e.Velocity()
	if rotateVelocity {
		velocity = delta.Rotate(velocity)
	}
	e.rotation = delta.Mul(e.rotation).Normalize()
	e.up = up
	e.SetVelocity(velocity)
}

// Velocity returns the world velocity.
func (e *Entity) Velocity() mgl32.Vec3 {
	return e.lateral.Add(e.up.Mul(e.vertical))
}

// SetVelocity splits v against the current up.
func (e *Entity) SetVelocity(v mgl32.Vec3) {
	e.vertical = v.Dot(e.up)
	e.lateral = game.ProjectOnPlane(v, e.up)
}

// Lateral returns the velocity orthogonal to up.
func (e *Entity) Lateral() mgl32.Vec3 {
	return e.lateral
}

// SetLateral sets the lateral velocity. Any component along up is dropped.
func (e *Entity) SetLateral(v mgl32.Vec3) {
	e.lateral = game.ProjectOnPlane(v, e.up)
}

// VerticalVelocity returns the speed along up.
func (e *Entity) VerticalVelocity() float32 {
	return e.vertical
}

func (e *Entity) SetVerticalVelocity(v float32) {
	e.vertical = v
}

func (e *Entity) ZeroVerticalVelocity() {
	e.vertical = 0
}

// TargetTopSpeed is the top speed computed by the last Accelerate call.
func (e *Entity) TargetTopSpeed() float32 {
	return e.targetTopSpeed
}

// PositionDelta is how far the controller moved the entity on the previous tick.
func (e *Entity) PositionDelta() float32 {
	return e.positionDelta
}

func (e *Entity) Grounded() bool {
	return e.grounded
}

// GroundHit returns the last ground contact.
func (e *Entity) GroundHit() physics.Hit {
	return e.groundHit
}

// GroundNormal is the normal of the ground, or up while airborne.
func (e *Entity) GroundNormal() mgl32.Vec3 {
	if !e.grounded {
		return e.up
	}
	return e.groundHit.Normal
}

// LastGroundTime is when the entity last left the ground.
func (e *Entity) LastGroundTime() float32 {
	return e.lastGroundTime
}

// FallDuration is how long the entity has been falling.
func (e *Entity) FallDuration() float32 {
	return e.fallDuration
}

func (e *Entity) Radius() float32         { return e.conf.Radius }
func (e *Entity) Height() float32         { return e.height }
func (e *Entity) OriginalHeight() float32 { return e.conf.Height }
func (e *Entity) SkinWidth() float32      { return e.conf.SkinWidth }
func (e *Entity) SlopeLimit() float32     { return e.conf.SlopeLimit }
func (e *Entity) StepOffset() float32     { return e.conf.StepOffset }

// CollisionLayers returns what the controller collides with.
func (e *Entity) CollisionLayers() physics.LayerMask {
	return e.conf.Collision
}

// LandingSpeed is the falling speed the entity had when it last landed.
func (e *Entity) LandingSpeed() float32 {
	return e.landingSpeed
}

// ResizeCollider changes the capsule height keeping its bottom in place.
func (e *Entity) ResizeCollider(height float32) {
	height = max(height, e.conf.Radius*2)
	delta := height - e.height
	e.height = height
	e.position = e.position.Add(e.up.Mul(delta * 0.5))
	e.syncCollider()
}

// OnRails reports whether the entity is bound to a rail.
func (e *Entity) OnRails() bool {
	return e.onRails
}

// Rails returns the rail the entity is bound to.
func (e *Entity) Rails() *spline.Container {
	return e.rails
}

// EnterRail binds the entity to c and fires RailsEnter.
func (e *Entity) EnterRail(c *spline.Container) {
	if e.onRails || c == nil {
		return
	}
	e.onRails = true
	e.rails = c
	e.grounded = false
	e.Events.RailsEnter.Fire()
}

// ExitRail releases the rail and fires RailsExit.
func (e *Entity) ExitRail() {
	if !e.onRails {
		return
	}
	e.onRails = false
	e.rails = nil
	e.Events.RailsExit.Fire()
}

// UseCustomCollision makes the controller move the capsule without sweeping.
func (e *Entity) UseCustomCollision(use bool) {
	e.customCollision = use
}

func (e *Entity) CustomCollision() bool {
	return e.customCollision
}

// Field returns the attached gravity field.
func (e *Entity) Field() *gravity.Field {
	return e.field
}

// SetField attaches the entity to f, nil detaching it.
func (e *Entity) SetField(f *gravity.Field) {
	if e.field == f {
		return
	}
	e.field = f
	e.Events.FieldChanged.Invoke(f)
}

// CanChangeToField consults the CanChangeToField hook.
func (e *Entity) CanChangeToField(f *gravity.Field) bool {
	if e.Hooks.CanChangeToField == nil {
		return true
	}
	return e.Hooks.CanChangeToField(f)
}

// CurrentWorldUp is the up of the attached field at the entity position, or world up.
func (e *Entity) CurrentWorldUp() mgl32.Vec3 {
	if e.field == nil {
		return game.WorldUp
	}
	if up, ok := e.field.UpDirectionAt(e.position); ok {
		return up
	}
	return e.up
}

// LockGravity makes gravity hold the vertical speed at zero for d seconds.
func (e *Entity) LockGravity(d float32) {
	e.lockGravityUntil = e.Now() + d
}

// GravityLocked reports whether a LockGravity window is running.
func (e *Entity) GravityLocked() bool {
	return e.Now() < e.lockGravityUntil
}

// Remove unregisters the entity's collider.
func (e *Entity) Remove() {
	if e.env.Space != nil {
		e.env.Space.Remove(e.collider.ID)
	}
}

func (e *Entity) syncCollider() {
	if e.env.Space != nil {
		e.env.Space.MoveSphere(e.collider, e.position)
		return
	}
	e.collider.Center = e.position
}

var _ gravity.Attachable = (*Entity)(nil)
