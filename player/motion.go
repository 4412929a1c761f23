package player

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Accelerate moves the player along dir with the regular, running or air tunables, whichever
// apply right now.
func (p *Player) Accelerate(dir mgl32.Vec3, magnitude float32) {
	s := p.Stats()
	running := p.Running()

	turningDrag, acceleration, topSpeed := s.Motion.TurningDrag, s.Motion.Acceleration, s.Motion.TopSpeed
	if running {
		turningDrag, acceleration, topSpeed = s.Run.TurningDrag, s.Run.Acceleration, s.Run.TopSpeed
	}
	if !p.Grounded() {
		turningDrag, acceleration = s.Motion.AirTurningDrag, s.Motion.AirAcceleration
	}
	if !s.Motion.ApplyInputMagnitude || running {
		magnitude = 1
	}
	p.Entity.Accelerate(dir, turningDrag, acceleration, topSpeed, s.Motion.MinTopSpeed, magnitude)
}

// AccelerateToInput accelerates along the input direction.
func (p *Player) AccelerateToInput() {
	dir, magnitude := p.InputDirection()
	p.Accelerate(dir, magnitude)
}

// WaterAccelerate accelerates with the swimming tunables.
func (p *Player) WaterAccelerate(dir mgl32.Vec3) {
	s := p.Stats().Swim
	p.Entity.Accelerate(dir, s.TurningDrag, s.Acceleration, s.TopSpeed, 0, 1)
}

// CrawlAccelerate accelerates with the crawling tunables.
func (p *Player) CrawlAccelerate(dir mgl32.Vec3) {
	s := p.Stats().Crawl
	p.Entity.Accelerate(dir, s.TurningSpeed, s.Acceleration, s.TopSpeed, 0, 1)
}

// BackflipAccelerate steers a backflip along the input direction.
func (p *Player) BackflipAccelerate() {
	s := p.Stats().Backflip
	dir, _ := p.InputDirection()
	p.Entity.Accelerate(dir, s.TurningDrag, s.AirAcceleration, s.TopSpeed, 0, 1)
}

// DecelerateToTopSpeed slows a grounded player down to the top speed of its last acceleration.
func (p *Player) DecelerateToTopSpeed() {
	s := p.Stats().Motion
	if !s.DecelerateWhenOverTopSpeed || !p.Grounded() {
		return
	}
	p.DecelerateTo(p.TargetTopSpeed(), s.DecelerationToTopSpeed)
}

// Friction slows the player down unless its movement is locked.
func (p *Player) Friction() {
	if p.inputs.LockedMovementDirection() {
		return
	}
	p.Decelerate(p.Stats().Motion.Friction)
}

// Gravity applies the general gravity of the profile.
func (p *Player) Gravity() {
	s := p.Stats().General
	p.FallGravity(s.Gravity, s.FallGravity, s.GravityTopSpeed)
}

// SnapToGround applies the snap force of the profile.
func (p *Player) SnapToGround() {
	p.Entity.SnapToGround(p.Stats().General.SnapForce)
}

// FaceDirectionSmooth turns the player towards dir at the profile rotation speed.
func (p *Player) FaceDirectionSmooth(dir mgl32.Vec3) {
	p.Entity.FaceDirectionSmooth(dir, p.Stats().General.RotationSpeed)
}

// WaterFaceDirection turns the player towards dir at the swimming rotation speed.
func (p *Player) WaterFaceDirection(dir mgl32.Vec3) {
	p.Entity.FaceDirectionSmooth(dir, p.Stats().Swim.RotationSpeed)
}

// RegularSlopeFactor applies the walking slope forces.
func (p *Player) RegularSlopeFactor() {
	s := p.Stats().Slope
	if s.ApplySlopeFactor {
		p.SlopeFactor(s.UpwardForce, s.DownwardForce)
	}
}

// CanStandUp reports whether there is room above the player for its original height.
func (p *Player) CanStandUp() bool {
	distance := p.OriginalHeight()*0.5 + p.Radius() - p.SkinWidth()
	_, hit := p.SphereCast(p.Up(), distance, 0)
	return !hit
}
