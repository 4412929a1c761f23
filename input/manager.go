package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/utils"
)

// Capabilities is what movement states read from the input source.
type Capabilities interface {
	// MovementDirection is the local stick direction on the XZ plane, zero while locked.
	MovementDirection() mgl32.Vec3
	// MovementCameraDirection maps the stick onto the plane orthogonal to up, relative to the
	// camera. It returns the unit direction and the stick magnitude.
	MovementCameraDirection(up mgl32.Vec3) (mgl32.Vec3, float32)
	LookDirection() mgl32.Vec3

	JumpDown() bool
	JumpUp() bool
	Jump() bool
	Run() bool
	RollDown() bool
	RollCharge() bool
	Crouch() bool
	DashDown() bool
	SpinDown() bool
	Glide() bool
	GrindBrake() bool
	AirDiveDown() bool
	StompDown() bool
	CancelDown() bool
	HomingDashDown() bool
	ReleaseLedgeDown() bool

	LockMovementDirection(duration float32)
	LockedMovementDirection() bool
	ClearJumpBuffer()
	SetInvertXAxis(invert bool)
	SetInvertZAxis(invert bool)
}

const (
	// DefaultJumpBuffer is how long a jump press stays usable.
	DefaultJumpBuffer float32 = 0.15
	// DefaultLockDuration is used by LockMovementDirection when given a non-positive duration.
	DefaultLockDuration float32 = 0.25
	historySize               = 32
)

type record struct {
	at      float32
	pressed Button
}

// Manager is the Capabilities implementation fed one Frame per tick.
type Manager struct {
	clock *clock.Clock

	JumpBuffer float32
	DeadZone   float32

	current, previous Frame
	history           *utils.CircularQueue[record]
	jumpClearedAt     float32

	unlockAt         float32
	invertX, invertZ bool
}

// NewManager returns a manager reading time from c.
func NewManager(c *clock.Clock) *Manager {
	if c == nil {
		c = clock.New()
	}
	return &Manager{
		clock:         c,
		JumpBuffer:    DefaultJumpBuffer,
		history:       utils.NewCircularQueue[record](historySize),
		jumpClearedAt: float32(math.Inf(-1)),
		unlockAt:      float32(math.Inf(-1)),
	}
}

// Feed makes f the current frame. It must be called once per tick before the entity steps.
func (m *Manager) Feed(f Frame) {
	m.previous = m.current
	m.current = f
	_ = m.history.Append(record{at: m.clock.Now(), pressed: f.Buttons &^ m.previous.Buttons})
}

// Current returns the frame of this tick.
func (m *Manager) Current() Frame {
	return m.current
}

func (m *Manager) down(b Button) bool {
	return m.current.Buttons.Has(b) && !m.previous.Buttons.Has(b)
}

func (m *Manager) up(b Button) bool {
	return !m.current.Buttons.Has(b) && m.previous.Buttons.Has(b)
}

func (m *Manager) held(b Button) bool {
	return m.current.Buttons.Has(b)
}

func (m *Manager) MovementDirection() mgl32.Vec3 {
	if m.LockedMovementDirection() {
		return mgl32.Vec3{}
	}
	x, z := m.current.Move.X(), m.current.Move.Y()
	if m.invertX {
		x = -x
	}
	if m.invertZ {
		z = -z
	}
	dir := mgl32.Vec3{x, 0, z}
	if dir.Len() <= m.DeadZone {
		return mgl32.Vec3{}
	}
	return game.ClampMagnitude(dir, 1)
}

func (m *Manager) MovementCameraDirection(up mgl32.Vec3) (mgl32.Vec3, float32) {
	local := m.MovementDirection()
	mag := local.Len()
	if mag == 0 {
		return mgl32.Vec3{}, 0
	}
	up, ok := game.SafeNormalize(up)
	if !ok {
		up = game.WorldUp
	}
	camera := m.current.Camera
	if camera == (mgl32.Vec3{}) {
		camera = game.WorldForward
	}
	forward, ok := game.SafeNormalize(game.ProjectOnPlane(camera, up))
	if !ok {
		// Looking straight along up: fall back to the world axis least aligned with it.
		forward, ok = game.SafeNormalize(game.ProjectOnPlane(game.WorldForward, up))
		if !ok {
			forward = game.Normalized(game.ProjectOnPlane(game.WorldRight, up))
		}
	}
	right := up.Cross(forward)
	dir, ok := game.SafeNormalize(right.Mul(local.X()).Add(forward.Mul(local.Z())))
	if !ok {
		return mgl32.Vec3{}, 0
	}
	return dir, game.Clamp01(mag)
}

func (m *Manager) LookDirection() mgl32.Vec3 {
	return mgl32.Vec3{m.current.Look.X(), 0, m.current.Look.Y()}
}

// JumpDown is true on the tick jump is pressed and, while the press is buffered, on the following
// ticks until the buffer is cleared.
func (m *Manager) JumpDown() bool {
	if m.down(ButtonJump) && m.clock.Now() > m.jumpClearedAt {
		return true
	}
	now := m.clock.Now()
	for r := range m.history.Backward() {
		if now-r.at > m.JumpBuffer || r.at <= m.jumpClearedAt {
			return false
		}
		if r.pressed.Has(ButtonJump) {
			return true
		}
	}
	return false
}

func (m *Manager) JumpUp() bool           { return m.up(ButtonJump) }
func (m *Manager) Jump() bool             { return m.held(ButtonJump) }
func (m *Manager) Run() bool              { return m.held(ButtonRun) }
func (m *Manager) RollDown() bool         { return m.down(ButtonRoll) }
func (m *Manager) RollCharge() bool       { return m.held(ButtonRoll) }
func (m *Manager) Crouch() bool           { return m.held(ButtonCrouch) }
func (m *Manager) DashDown() bool         { return m.down(ButtonDash) }
func (m *Manager) SpinDown() bool         { return m.down(ButtonSpin) }
func (m *Manager) Glide() bool            { return m.held(ButtonGlide) }
func (m *Manager) GrindBrake() bool       { return m.held(ButtonGrindBrake) }
func (m *Manager) AirDiveDown() bool      { return m.down(ButtonAirDive) }
func (m *Manager) StompDown() bool        { return m.down(ButtonStomp) }
func (m *Manager) CancelDown() bool       { return m.down(ButtonCancel) }
func (m *Manager) HomingDashDown() bool   { return m.down(ButtonHomingDash) }
func (m *Manager) ReleaseLedgeDown() bool { return m.down(ButtonReleaseLedge) }

// LockMovementDirection makes MovementDirection report zero for duration seconds.
func (m *Manager) LockMovementDirection(duration float32) {
	if duration <= 0 {
		duration = DefaultLockDuration
	}
	m.unlockAt = m.clock.Now() + duration
}

func (m *Manager) LockedMovementDirection() bool {
	return m.clock.Now() < m.unlockAt
}

// ClearJumpBuffer forgets every jump press up to now.
func (m *Manager) ClearJumpBuffer() {
	m.jumpClearedAt = m.clock.Now()
}

func (m *Manager) SetInvertXAxis(invert bool) { m.invertX = invert }
func (m *Manager) SetInvertZAxis(invert bool) { m.invertZ = invert }

var _ Capabilities = (*Manager)(nil)
