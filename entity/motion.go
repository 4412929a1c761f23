package entity

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// Accelerate pushes the lateral velocity towards dir. The speed along dir grows by acceleration
// until it reaches the top speed, while the velocity orthogonal to dir is dragged to zero by
// turningDrag. magnitude scales the top speed, which never drops below minTopSpeed.
func (e *Entity) Accelerate(dir mgl32.Vec3, turningDrag, acceleration, topSpeed, minTopSpeed, magnitude float32) {
	dir, ok := game.SafeNormalize(game.ProjectOnPlane(dir, e.up))
	if !ok {
		return
	}
	dt := e.Delta()

	speed := dir.Dot(e.lateral)
	turning := e.lateral.Sub(dir.Mul(speed))
	turningDelta := turningDrag * e.Mul.TurningDrag * dt
	e.targetTopSpeed = max(minTopSpeed, topSpeed*magnitude) * e.Mul.TopSpeed

	if e.lateral.Len() < e.targetTopSpeed || speed < 0 {
		speed += acceleration * e.Mul.Acceleration * dt
		speed = mgl32.Clamp(speed, -e.targetTopSpeed, e.targetTopSpeed)
	}

	turning = game.MoveTowardsVec(turning, mgl32.Vec3{}, turningDelta)
	e.SetLateral(dir.Mul(speed).Add(turning))
}

// Decelerate brings the lateral velocity towards zero by amount per second.
func (e *Entity) Decelerate(amount float32) {
	delta := amount * e.Mul.Deceleration * e.Delta()
	e.lateral = game.MoveTowardsVec(e.lateral, mgl32.Vec3{}, delta)
}

// DecelerateTo brings the lateral speed down to speed without changing its direction.
func (e *Entity) DecelerateTo(speed, amount float32) {
	current := e.lateral.Len()
	if current <= speed || current <= game.Epsilon {
		return
	}
	next := game.MoveTowards(current, speed, amount*e.Delta())
	e.lateral = e.lateral.Mul(next / current)
}

// Gravity accelerates the entity downwards while airborne.
func (e *Entity) Gravity(amount float32) {
	if e.grounded {
		return
	}
	e.vertical -= amount * e.Mul.Gravity * e.Delta()
}

// FallGravity is Gravity with separate rising and falling strengths and a top fall speed. While
// a LockGravity window runs the vertical speed is held at zero instead.
func (e *Entity) FallGravity(rising, falling, topSpeed float32) {
	if e.grounded {
		return
	}
	if e.GravityLocked() {
		e.vertical = 0
		return
	}
	if e.vertical <= -topSpeed {
		return
	}
	force := falling
	if e.vertical > 0 {
		force = rising
	}
	e.vertical -= force * e.Mul.Gravity * e.Delta()
	e.vertical = max(e.vertical, -topSpeed)
}

// SnapToGround keeps a grounded entity glued to the ground: the vertical speed is cleared and the
// controller pulls the capsule down by up to force·dt this tick.
func (e *Entity) SnapToGround(force float32) {
	if !e.grounded || e.vertical > 0 {
		return
	}
	e.vertical = 0
	e.snapForce = force
}

// FaceDirection turns the entity to look along dir instantly.
func (e *Entity) FaceDirection(dir mgl32.Vec3) {
	dir, ok := game.SafeNormalize(game.ProjectOnPlane(dir, e.up))
	if !ok {
		return
	}
	e.rotation = game.LookRotation(dir, e.up)
}

// FaceDirectionSmooth turns the entity towards dir by at most degreesPerSecond.
func (e *Entity) FaceDirectionSmooth(dir mgl32.Vec3, degreesPerSecond float32) {
	dir, ok := game.SafeNormalize(game.ProjectOnPlane(dir, e.up))
	if !ok {
		return
	}
	target := game.LookRotation(dir, e.up)
	e.rotation = game.RotateTowards(e.rotation, target, degreesPerSecond*e.Delta())
}

// SlopeDirection is the downhill direction of the ground in the lateral plane.
func (e *Entity) SlopeDirection() (mgl32.Vec3, bool) {
	if !e.grounded {
		return mgl32.Vec3{}, false
	}
	return game.SafeNormalize(game.ProjectOnPlane(e.groundHit.Normal, e.up))
}

// OnSlopingGround reports whether the entity stands on ground that is not flat.
func (e *Entity) OnSlopingGround() bool {
	if !e.grounded {
		return false
	}
	angle := game.Angle(e.groundHit.Normal, e.up)
	return angle > slopeTolerance && angle < e.conf.SlopeLimit+slopeTolerance
}

// SlopeFactor speeds the entity up going downhill and slows it going uphill.
func (e *Entity) SlopeFactor(upwardForce, downwardForce float32) {
	if !e.OnSlopingGround() {
		return
	}
	slope, ok := e.SlopeDirection()
	if !ok {
		return
	}
	factor := e.up.Dot(e.groundHit.Normal)
	force := upwardForce
	if slope.Dot(e.lateral) > 0 {
		force = downwardForce
	}
	e.SetLateral(e.lateral.Add(slope.Mul(factor * force * e.Delta())))
}

// convertFallOnSlope turns part of the falling speed into downhill speed when landing on a slope.
func (e *Entity) convertFallOnSlope(factor float32) {
	slope, ok := e.SlopeDirection()
	if !ok || factor <= 0 {
		return
	}
	steepness := math32.Sqrt(max(0, 1-square(e.up.Dot(e.groundHit.Normal))))
	e.SetLateral(e.lateral.Add(slope.Mul(math32.Abs(e.vertical) * steepness * factor)))
}

const slopeTolerance = float32(1)

func square(v float32) float32 {
	return v * v
}
