package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/player"
)

// wallReach is how far past the radius a wall may be to keep clinging to it.
const wallReach = 0.1

// WallDrag slides slowly down a wall the player faces. Jumping pushes it off the wall.
type WallDrag struct{ base }

func (*WallDrag) Variant() fsm.Variant { return player.WallDrag }

func (*WallDrag) Enter(p *player.Player) {
	p.ResetJumps()
	p.ResetAirSpins()
	p.ResetAirDash()
	p.SetVelocity(mgl32.Vec3{})
	p.SetSkinOffset(p.Stats().WallDrag.SkinOffset.Vec())
	p.FaceDirection(p.LastWallNormal().Mul(-1))
}

func (*WallDrag) Exit(p *player.Player) {
	p.ResetSkinOffset()
}

func (w *WallDrag) Step(p *player.Player) {
	s := p.Stats().WallDrag
	if w.TimeSinceEntered() > s.GravityDelay {
		p.Entity.Gravity(s.Gravity)
	}
	if p.Grounded() {
		p.States().ChangeTo(player.Idle)
		return
	}

	normal := p.LastWallNormal()
	wall, ok := p.SphereCast(normal.Mul(-1), p.Radius()+wallReach, s.Layers)
	if !ok {
		p.States().ChangeTo(player.Fall)
		return
	}
	p.SetLastWallNormal(wall.Normal)

	if p.Inputs().JumpDown() {
		if s.JumpLockMovement {
			p.Inputs().LockMovementDirection(0)
		}
		p.DirectionalJump(wall.Normal, s.JumpHeight, s.JumpDistance)
		p.FaceDirection(wall.Normal)
		p.States().ChangeTo(player.Fall)
	}
}

// WallRun runs along a wall beside the player, slowly losing speed and height. Jumping launches
// it away from the wall into a boost.
type WallRun struct {
	base
	// side is the direction from the player to the wall.
	side mgl32.Vec3
}

func (*WallRun) Variant() fsm.Variant { return player.WallRun }

func (w *WallRun) Enter(p *player.Player) {
	s := p.Stats().WallRun
	normal, up := p.LastWallNormal(), p.Up()
	speed := max(p.Velocity().Len(), s.BaseSpeed)

	face, ok := game.SafeNormalize(game.ProjectOnPlane(game.ProjectOnPlane(p.Forward(), normal), up))
	if ok {
		p.FaceDirection(face)
	}
	offset := s.SkinOffset.Vec()
	w.side = p.Right()
	if p.Right().Dot(normal) > 0 {
		w.side = w.side.Mul(-1)
		offset[0] = -offset[0]
	}
	p.SetSkinOffset(offset)
	p.SetVelocity(p.Forward().Mul(speed))
	p.ResetJumps()
	p.ResetAirSpins()
	p.ResetAirDash()
}

func (*WallRun) Exit(p *player.Player) {
	p.ResetSkinOffset()
}

func (w *WallRun) Step(p *player.Player) {
	s := p.Stats().WallRun
	if p.Grounded() {
		p.States().ChangeTo(player.Idle)
		return
	}
	wall, onWall := p.SphereCast(w.side, p.Radius()+wallReach, s.Layers)
	_, blocked := p.SphereCast(p.Forward(), p.Radius()+wallReach, 0)
	_, nearGround := p.DetectingGround(p.Height()*0.5 + s.MinGroundDistance)
	if !onWall || blocked || nearGround || p.VerticalVelocity() < s.MaxFallSpeed || p.Velocity().Len() < s.MinSpeedToFall {
		p.States().ChangeTo(player.Fall)
		return
	}
	p.SetLastWallNormal(wall.Normal)
	p.SetVelocity(game.ProjectOnPlane(p.Velocity(), wall.Normal))
	p.SetLateral(game.MoveTowardsVec(p.Lateral(), mgl32.Vec3{}, s.Friction*p.Delta()))
	if w.TimeSinceEntered() > s.GravityDelay {
		p.Entity.Gravity(s.Gravity)
	}

	if !p.Inputs().JumpDown() {
		return
	}
	dir, ok := game.SafeNormalize(game.ProjectOnPlane(wall.Normal.Add(p.Forward()), p.Up()))
	if !ok {
		dir = wall.Normal
	}
	speed := max(p.Velocity().Len(), s.JumpBaseForce)
	p.LockGravity(s.JumpGravityDelay)
	p.Inputs().LockMovementDirection(0)
	p.DirectionalJump(dir, 0, speed)
	p.FaceDirection(dir)
	p.States().ChangeTo(player.Boosting)
}
