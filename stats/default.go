package stats

import "github.com/oomph-ac/motion/physics"

// Default returns the default player profile.
func Default() Stats {
	s := Stats{Name: "default"}

	s.General.SnapForce = 15
	s.General.SnapToPathForce = 10
	s.General.SlideForce = 10
	s.General.RotationSpeed = 970
	s.General.Gravity = 38
	s.General.FallGravity = 65
	s.General.GravityTopSpeed = 50

	s.Motion.ApplyInputMagnitude = true
	s.Motion.DecelerateWhenOverTopSpeed = true
	s.Motion.Acceleration = 13
	s.Motion.DecelerationToTopSpeed = 10
	s.Motion.Friction = 28
	s.Motion.MinTopSpeed = 2
	s.Motion.TopSpeed = 6
	s.Motion.TurningDrag = 28
	s.Motion.AirAcceleration = 32
	s.Motion.AirTurningDrag = 60

	s.Brake.Threshold = -0.8
	s.Brake.MinSpeedToBrake = 5
	s.Brake.Deceleration = 28

	s.Slope.ApplySlopeFactor = true
	s.Slope.UpwardForce = 25
	s.Slope.DownwardForce = 28

	s.Run.CanRun = true
	s.Run.CanRunOnAir = true
	s.Run.Acceleration = 16
	s.Run.TopSpeed = 7.5
	s.Run.TurningDrag = 14

	s.Jump.CanJump = true
	s.Jump.MultiJumps = 1
	s.Jump.CoyoteThreshold = 0.15
	s.Jump.MaxHeight = 17
	s.Jump.MinHeight = 10

	s.Roll.CanCancelRoll = true
	s.Roll.MinSpeedToRoll = 10
	s.Roll.MinSpeedToUnroll = 5
	s.Roll.AirToGroundFactor = 1.25
	s.Roll.Friction = 1
	s.Roll.Deceleration = 15
	s.Roll.TurningDrag = 14
	s.Roll.SlopeUpwardForce = 20
	s.Roll.SlopeDownwardForce = 80

	s.RollCharge.RequiresCrouch = true
	s.RollCharge.MaxSpeedToStart = 5
	s.RollCharge.Duration = 1
	s.RollCharge.MinForce = 10
	s.RollCharge.MaxForce = 40

	s.Crouch.CanCrouch = true
	s.Crouch.CanSlide = true
	s.Crouch.JumpBackflip = true
	s.Crouch.MinSpeedToSlide = 5
	s.Crouch.Height = 1
	s.Crouch.Friction = 10
	s.Crouch.MinSlideDuration = 1

	s.FallDamage.CanTakeFallDamage = true
	s.FallDamage.Base = 1
	s.FallDamage.Additional = 1
	s.FallDamage.MinFallDuration = 0.5
	s.FallDamage.MinFallSpeed = 40
	s.FallDamage.Interval = 0.3

	s.Crawl.CanCrawl = true
	s.Crawl.Acceleration = 8
	s.Crawl.Friction = 32
	s.Crawl.TopSpeed = 2.5
	s.Crawl.TurningSpeed = 3

	s.WallDrag.CanWallDrag = true
	s.WallDrag.JumpLockMovement = true
	s.WallDrag.GravityDelay = 0.1
	s.WallDrag.MinGroundDistance = 0.5
	s.WallDrag.MinWallAngle = 60
	s.WallDrag.Layers = physics.Mask(physics.LayerWall)
	s.WallDrag.Gravity = 12
	s.WallDrag.JumpDistance = 8
	s.WallDrag.JumpHeight = 15

	s.WallRun.Layers = physics.AllLayers
	s.WallRun.MinSpeed = 10
	s.WallRun.MaxFallSpeed = -15
	s.WallRun.MinGroundDistance = 2
	s.WallRun.MinSpeedToFall = 5
	s.WallRun.BaseSpeed = 20
	s.WallRun.Friction = 10
	s.WallRun.Gravity = 20
	s.WallRun.JumpBaseForce = 25
	s.WallRun.GravityDelay = 0.25
	s.WallRun.JumpGravityDelay = 0.5

	s.PoleClimb.CanPoleClimb = true
	s.PoleClimb.UpAcceleration = 6
	s.PoleClimb.UpTopSpeed = 3
	s.PoleClimb.DownAcceleration = 20
	s.PoleClimb.DownTopSpeed = 8
	s.PoleClimb.Friction = 15
	s.PoleClimb.RotationTopSpeed = 2
	s.PoleClimb.RotationAcceleration = 5
	s.PoleClimb.JumpDistance = 8
	s.PoleClimb.JumpHeight = 15

	s.Swim.MaxVerticalSpeedOnEnter = 20
	s.Swim.Conversion = 0.35
	s.Swim.RotationSpeed = 360
	s.Swim.UpwardsForce = 8
	s.Swim.JumpHeight = 15
	s.Swim.TurningDrag = 2.5
	s.Swim.Acceleration = 4
	s.Swim.TopSpeed = 4
	s.Swim.UpwardsAcceleration = 6
	s.Swim.UpwardsTopSpeed = 10
	s.Swim.DownwardsAcceleration = 6
	s.Swim.DownwardsTopSpeed = 10
	s.Swim.Deceleration = 3

	s.Spin.CanSpin = true
	s.Spin.CanAirSpin = true
	s.Spin.Duration = 0.5
	s.Spin.AirUpwardForce = 10
	s.Spin.AllowedAirSpins = 1

	s.Hurt.UpwardForce = 10
	s.Hurt.BackwardsForce = 5
	s.Hurt.BackwardsWaterForce = 5
	s.Hurt.DownwardsWaterForce = 3
	s.Hurt.WaterCoolDown = 0.5
	s.Hurt.WaterDrag = 10
	s.Hurt.StunRecoverTime = 2

	s.AirDive.CanAirDive = true
	s.AirDive.ApplySlopeFactor = true
	s.AirDive.ForwardForce = 16
	s.AirDive.Friction = 32
	s.AirDive.SlopeUpwardForce = 35
	s.AirDive.SlopeDownwardForce = 40
	s.AirDive.GroundLeapHeight = 10
	s.AirDive.RotationSpeed = 45

	s.Stomp.CanStompAttack = true
	s.Stomp.DownwardForce = 20
	s.Stomp.AirTime = 0.8
	s.Stomp.GroundTime = 0.5
	s.Stomp.GroundLeapHeight = 10

	s.Ledge.CanLedgeHang = true
	s.Ledge.Layers = physics.Mask(physics.LayerGround, physics.LayerWall)
	s.Ledge.MaxForwardDistance = 0.1
	s.Ledge.MaxDownwardDistance = 0.25
	s.Ledge.SideMaxDistance = 0.5
	s.Ledge.SideHeightOffset = 0.15
	s.Ledge.SideCollisionRadius = 0.25
	s.Ledge.MovementAcceleration = 3
	s.Ledge.MovementTopSpeed = 1.5
	s.Ledge.MovementFriction = 10
	s.Ledge.CanClimb = true
	s.Ledge.ClimbingLayers = physics.Mask(physics.LayerGround, physics.LayerWall)
	s.Ledge.ClimbingDuration = 1

	s.Backflip.CanBackflip = true
	s.Backflip.WhileTurning = true
	s.Backflip.LockMovement = true
	s.Backflip.AirAcceleration = 12
	s.Backflip.TurningDrag = 2.5
	s.Backflip.TopSpeed = 7.5
	s.Backflip.JumpHeight = 23
	s.Backflip.Gravity = 35
	s.Backflip.BackwardForce = 4
	s.Backflip.BackwardTurnForce = 8

	s.Glide.CanGlide = true
	s.Glide.Gravity = 10
	s.Glide.MaxFallSpeed = 2
	s.Glide.TurningDrag = 8
	s.Glide.RotationSpeed = 180

	s.Dash.CanAirDash = true
	s.Dash.CanGroundDash = true
	s.Dash.Force = 25
	s.Dash.Duration = 0.3
	s.Dash.GroundCoolDown = 0.5
	s.Dash.AllowedAirDashes = 1

	s.Grind.CanRailGrind = true
	s.Grind.UseCustomCollision = true
	s.Grind.RadiusOffset = 0.26
	s.Grind.MinInitialSpeed = 10
	s.Grind.MinSpeed = 5
	s.Grind.TopSpeed = 25
	s.Grind.DownSlopeForce = 40
	s.Grind.UpSlopeForce = 30
	s.Grind.CanBrake = true
	s.Grind.BrakeDeceleration = 10
	s.Grind.CanDash = true
	s.Grind.ApplySlopeFactor = true
	s.Grind.DashCoolDown = 0.5
	s.Grind.DashForce = 25

	s.Homing.Layers = physics.Mask(physics.LayerEnemy, physics.LayerRail)
	s.Homing.Damage = 1
	s.Homing.Radius = 15
	s.Homing.SplineForwardOffset = 2
	s.Homing.MaxHeightDifference = 1
	s.Homing.RefreshRate = 0.2
	s.Homing.MaxDuration = 2
	s.Homing.Force = 30
	s.Homing.RecoverForce = 15
	s.Homing.TrickGravity = 25
	s.Homing.TrickInvincibility = 0.2
	return s
}
