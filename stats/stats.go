// Package stats holds the tunables player states read every tick.
package stats

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/physics"
)

// Offset is a local skin offset applied while a state is active.
type Offset struct {
	X float32 `toml:"x" yaml:"x"`
	Y float32 `toml:"y" yaml:"y"`
	Z float32 `toml:"z" yaml:"z"`
}

// Vec returns the offset as a vector.
func (o Offset) Vec() mgl32.Vec3 {
	return mgl32.Vec3{o.X, o.Y, o.Z}
}

// Stats contains every tunable of a player profile.
type Stats struct {
	Name string `toml:"name" yaml:"name"`

	General struct {
		SnapForce       float32 `toml:"snap_force" yaml:"snap_force"`
		SnapToPathForce float32 `toml:"snap_to_path_force" yaml:"snap_to_path_force"`
		SlideForce      float32 `toml:"slide_force" yaml:"slide_force"`
		RotationSpeed   float32 `toml:"rotation_speed" yaml:"rotation_speed"`
		Gravity         float32 `toml:"gravity" yaml:"gravity"`
		FallGravity     float32 `toml:"fall_gravity" yaml:"fall_gravity"`
		GravityTopSpeed float32 `toml:"gravity_top_speed" yaml:"gravity_top_speed"`
	} `toml:"general" yaml:"general"`

	Motion struct {
		ApplyInputMagnitude        bool    `toml:"apply_input_magnitude" yaml:"apply_input_magnitude"`
		DecelerateWhenOverTopSpeed bool    `toml:"decelerate_when_over_top_speed" yaml:"decelerate_when_over_top_speed"`
		Acceleration               float32 `toml:"acceleration" yaml:"acceleration"`
		DecelerationToTopSpeed     float32 `toml:"deceleration_to_top_speed" yaml:"deceleration_to_top_speed"`
		Friction                   float32 `toml:"friction" yaml:"friction"`
		MinTopSpeed                float32 `toml:"min_top_speed" yaml:"min_top_speed"`
		TopSpeed                   float32 `toml:"top_speed" yaml:"top_speed"`
		TurningDrag                float32 `toml:"turning_drag" yaml:"turning_drag"`
		AirAcceleration            float32 `toml:"air_acceleration" yaml:"air_acceleration"`
		AirTurningDrag             float32 `toml:"air_turning_drag" yaml:"air_turning_drag"`
	} `toml:"motion" yaml:"motion"`

	Brake struct {
		Threshold       float32 `toml:"threshold" yaml:"threshold"`
		MinSpeedToBrake float32 `toml:"min_speed_to_brake" yaml:"min_speed_to_brake"`
		Deceleration    float32 `toml:"deceleration" yaml:"deceleration"`
	} `toml:"brake" yaml:"brake"`

	Slope struct {
		ApplySlopeFactor bool    `toml:"apply_slope_factor" yaml:"apply_slope_factor"`
		UpwardForce      float32 `toml:"upward_force" yaml:"upward_force"`
		DownwardForce    float32 `toml:"downward_force" yaml:"downward_force"`
	} `toml:"slope" yaml:"slope"`

	Run struct {
		CanRun       bool    `toml:"can_run" yaml:"can_run"`
		CanRunOnAir  bool    `toml:"can_run_on_air" yaml:"can_run_on_air"`
		Acceleration float32 `toml:"acceleration" yaml:"acceleration"`
		TopSpeed     float32 `toml:"top_speed" yaml:"top_speed"`
		TurningDrag  float32 `toml:"turning_drag" yaml:"turning_drag"`
	} `toml:"run" yaml:"run"`

	Jump struct {
		CanJump               bool    `toml:"can_jump" yaml:"can_jump"`
		JumpOnNormalDirection bool    `toml:"jump_on_normal_direction" yaml:"jump_on_normal_direction"`
		MultiJumps            int     `toml:"multi_jumps" yaml:"multi_jumps"`
		CoyoteThreshold       float32 `toml:"coyote_threshold" yaml:"coyote_threshold"`
		MaxHeight             float32 `toml:"max_height" yaml:"max_height"`
		MinHeight             float32 `toml:"min_height" yaml:"min_height"`
	} `toml:"jump" yaml:"jump"`

	Roll struct {
		CanRoll            bool    `toml:"can_roll" yaml:"can_roll"`
		CanRollOnAir       bool    `toml:"can_roll_on_air" yaml:"can_roll_on_air"`
		UnrollWhenFalling  bool    `toml:"unroll_when_falling" yaml:"unroll_when_falling"`
		CanCancelRoll      bool    `toml:"can_cancel_roll" yaml:"can_cancel_roll"`
		MinSpeedToRoll     float32 `toml:"min_speed_to_roll" yaml:"min_speed_to_roll"`
		MinSpeedToUnroll   float32 `toml:"min_speed_to_unroll" yaml:"min_speed_to_unroll"`
		AirToGroundFactor  float32 `toml:"air_to_ground_factor" yaml:"air_to_ground_factor"`
		Friction           float32 `toml:"friction" yaml:"friction"`
		Deceleration       float32 `toml:"deceleration" yaml:"deceleration"`
		TurningDrag        float32 `toml:"turning_drag" yaml:"turning_drag"`
		SlopeUpwardForce   float32 `toml:"slope_upward_force" yaml:"slope_upward_force"`
		SlopeDownwardForce float32 `toml:"slope_downward_force" yaml:"slope_downward_force"`
	} `toml:"roll" yaml:"roll"`

	RollCharge struct {
		CanRollCharge   bool    `toml:"can_roll_charge" yaml:"can_roll_charge"`
		RequiresCrouch  bool    `toml:"requires_crouch" yaml:"requires_crouch"`
		MaxSpeedToStart float32 `toml:"max_speed_to_start" yaml:"max_speed_to_start"`
		Duration        float32 `toml:"duration" yaml:"duration"`
		MinForce        float32 `toml:"min_force" yaml:"min_force"`
		MaxForce        float32 `toml:"max_force" yaml:"max_force"`
	} `toml:"roll_charge" yaml:"roll_charge"`

	Crouch struct {
		CanCrouch        bool    `toml:"can_crouch" yaml:"can_crouch"`
		CanSlide         bool    `toml:"can_slide" yaml:"can_slide"`
		JumpBackflip     bool    `toml:"jump_backflip" yaml:"jump_backflip"`
		MinSpeedToSlide  float32 `toml:"min_speed_to_slide" yaml:"min_speed_to_slide"`
		Height           float32 `toml:"height" yaml:"height"`
		Friction         float32 `toml:"friction" yaml:"friction"`
		MinSlideDuration float32 `toml:"min_slide_duration" yaml:"min_slide_duration"`
	} `toml:"crouch" yaml:"crouch"`

	FallDamage struct {
		CanTakeFallDamage bool    `toml:"can_take_fall_damage" yaml:"can_take_fall_damage"`
		Base              int     `toml:"base" yaml:"base"`
		Additional        int     `toml:"additional" yaml:"additional"`
		MinFallDuration   float32 `toml:"min_fall_duration" yaml:"min_fall_duration"`
		MinFallSpeed      float32 `toml:"min_fall_speed" yaml:"min_fall_speed"`
		Interval          float32 `toml:"interval" yaml:"interval"`
	} `toml:"fall_damage" yaml:"fall_damage"`

	Crawl struct {
		CanCrawl     bool    `toml:"can_crawl" yaml:"can_crawl"`
		Acceleration float32 `toml:"acceleration" yaml:"acceleration"`
		Friction     float32 `toml:"friction" yaml:"friction"`
		TopSpeed     float32 `toml:"top_speed" yaml:"top_speed"`
		TurningSpeed float32 `toml:"turning_speed" yaml:"turning_speed"`
	} `toml:"crawl" yaml:"crawl"`

	WallDrag struct {
		CanWallDrag       bool              `toml:"can_wall_drag" yaml:"can_wall_drag"`
		JumpLockMovement  bool              `toml:"jump_lock_movement" yaml:"jump_lock_movement"`
		GravityDelay      float32           `toml:"gravity_delay" yaml:"gravity_delay"`
		MinGroundDistance float32           `toml:"min_ground_distance" yaml:"min_ground_distance"`
		MinWallAngle      float32           `toml:"min_wall_angle" yaml:"min_wall_angle"`
		Layers            physics.LayerMask `toml:"layers" yaml:"layers"`
		SkinOffset        Offset            `toml:"skin_offset" yaml:"skin_offset"`
		Gravity           float32           `toml:"gravity" yaml:"gravity"`
		JumpDistance      float32           `toml:"jump_distance" yaml:"jump_distance"`
		JumpHeight        float32           `toml:"jump_height" yaml:"jump_height"`
	} `toml:"wall_drag" yaml:"wall_drag"`

	WallRun struct {
		CanWallRun        bool              `toml:"can_wall_run" yaml:"can_wall_run"`
		Layers            physics.LayerMask `toml:"layers" yaml:"layers"`
		SkinOffset        Offset            `toml:"skin_offset" yaml:"skin_offset"`
		MinSpeed          float32           `toml:"min_speed" yaml:"min_speed"`
		MaxFallSpeed      float32           `toml:"max_fall_speed" yaml:"max_fall_speed"`
		MinGroundDistance float32           `toml:"min_ground_distance" yaml:"min_ground_distance"`
		MinSpeedToFall    float32           `toml:"min_speed_to_fall" yaml:"min_speed_to_fall"`
		BaseSpeed         float32           `toml:"base_speed" yaml:"base_speed"`
		Friction          float32           `toml:"friction" yaml:"friction"`
		Gravity           float32           `toml:"gravity" yaml:"gravity"`
		JumpBaseForce     float32           `toml:"jump_base_force" yaml:"jump_base_force"`
		GravityDelay      float32           `toml:"gravity_delay" yaml:"gravity_delay"`
		JumpGravityDelay  float32           `toml:"jump_gravity_delay" yaml:"jump_gravity_delay"`
	} `toml:"wall_run" yaml:"wall_run"`

	PoleClimb struct {
		CanPoleClimb         bool    `toml:"can_pole_climb" yaml:"can_pole_climb"`
		SkinOffset           Offset  `toml:"skin_offset" yaml:"skin_offset"`
		UpAcceleration       float32 `toml:"up_acceleration" yaml:"up_acceleration"`
		UpTopSpeed           float32 `toml:"up_top_speed" yaml:"up_top_speed"`
		DownAcceleration     float32 `toml:"down_acceleration" yaml:"down_acceleration"`
		DownTopSpeed         float32 `toml:"down_top_speed" yaml:"down_top_speed"`
		Friction             float32 `toml:"friction" yaml:"friction"`
		RotationTopSpeed     float32 `toml:"rotation_top_speed" yaml:"rotation_top_speed"`
		RotationAcceleration float32 `toml:"rotation_acceleration" yaml:"rotation_acceleration"`
		JumpDistance         float32 `toml:"jump_distance" yaml:"jump_distance"`
		JumpHeight           float32 `toml:"jump_height" yaml:"jump_height"`
	} `toml:"pole_climb" yaml:"pole_climb"`

	Swim struct {
		MaxVerticalSpeedOnEnter float32 `toml:"max_vertical_speed_on_enter" yaml:"max_vertical_speed_on_enter"`
		Conversion              float32 `toml:"conversion" yaml:"conversion"`
		RotationSpeed           float32 `toml:"rotation_speed" yaml:"rotation_speed"`
		UpwardsForce            float32 `toml:"upwards_force" yaml:"upwards_force"`
		JumpHeight              float32 `toml:"jump_height" yaml:"jump_height"`
		TurningDrag             float32 `toml:"turning_drag" yaml:"turning_drag"`
		Acceleration            float32 `toml:"acceleration" yaml:"acceleration"`
		TopSpeed                float32 `toml:"top_speed" yaml:"top_speed"`
		UpwardsAcceleration     float32 `toml:"upwards_acceleration" yaml:"upwards_acceleration"`
		UpwardsTopSpeed         float32 `toml:"upwards_top_speed" yaml:"upwards_top_speed"`
		DownwardsAcceleration   float32 `toml:"downwards_acceleration" yaml:"downwards_acceleration"`
		DownwardsTopSpeed       float32 `toml:"downwards_top_speed" yaml:"downwards_top_speed"`
		Deceleration            float32 `toml:"deceleration" yaml:"deceleration"`
	} `toml:"swim" yaml:"swim"`

	Spin struct {
		CanSpin         bool    `toml:"can_spin" yaml:"can_spin"`
		CanAirSpin      bool    `toml:"can_air_spin" yaml:"can_air_spin"`
		Duration        float32 `toml:"duration" yaml:"duration"`
		AirUpwardForce  float32 `toml:"air_upward_force" yaml:"air_upward_force"`
		AllowedAirSpins int     `toml:"allowed_air_spins" yaml:"allowed_air_spins"`
	} `toml:"spin" yaml:"spin"`

	Hurt struct {
		UpwardForce         float32 `toml:"upward_force" yaml:"upward_force"`
		BackwardsForce      float32 `toml:"backwards_force" yaml:"backwards_force"`
		BackwardsWaterForce float32 `toml:"backwards_water_force" yaml:"backwards_water_force"`
		DownwardsWaterForce float32 `toml:"downwards_water_force" yaml:"downwards_water_force"`
		WaterCoolDown       float32 `toml:"water_cool_down" yaml:"water_cool_down"`
		WaterDrag           float32 `toml:"water_drag" yaml:"water_drag"`
		StunRecoverTime     float32 `toml:"stun_recover_time" yaml:"stun_recover_time"`
	} `toml:"hurt" yaml:"hurt"`

	AirDive struct {
		CanAirDive         bool    `toml:"can_air_dive" yaml:"can_air_dive"`
		ApplySlopeFactor   bool    `toml:"apply_slope_factor" yaml:"apply_slope_factor"`
		ForwardForce       float32 `toml:"forward_force" yaml:"forward_force"`
		Friction           float32 `toml:"friction" yaml:"friction"`
		SlopeUpwardForce   float32 `toml:"slope_upward_force" yaml:"slope_upward_force"`
		SlopeDownwardForce float32 `toml:"slope_downward_force" yaml:"slope_downward_force"`
		GroundLeapHeight   float32 `toml:"ground_leap_height" yaml:"ground_leap_height"`
		RotationSpeed      float32 `toml:"rotation_speed" yaml:"rotation_speed"`
	} `toml:"air_dive" yaml:"air_dive"`

	Stomp struct {
		CanStompAttack   bool    `toml:"can_stomp_attack" yaml:"can_stomp_attack"`
		DownwardForce    float32 `toml:"downward_force" yaml:"downward_force"`
		AirTime          float32 `toml:"air_time" yaml:"air_time"`
		GroundTime       float32 `toml:"ground_time" yaml:"ground_time"`
		GroundLeapHeight float32 `toml:"ground_leap_height" yaml:"ground_leap_height"`
	} `toml:"stomp" yaml:"stomp"`

	Ledge struct {
		CanLedgeHang         bool              `toml:"can_ledge_hang" yaml:"can_ledge_hang"`
		Layers               physics.LayerMask `toml:"layers" yaml:"layers"`
		SkinOffset           Offset            `toml:"skin_offset" yaml:"skin_offset"`
		MaxForwardDistance   float32           `toml:"max_forward_distance" yaml:"max_forward_distance"`
		MaxDownwardDistance  float32           `toml:"max_downward_distance" yaml:"max_downward_distance"`
		SideMaxDistance      float32           `toml:"side_max_distance" yaml:"side_max_distance"`
		SideHeightOffset     float32           `toml:"side_height_offset" yaml:"side_height_offset"`
		SideCollisionRadius  float32           `toml:"side_collision_radius" yaml:"side_collision_radius"`
		MovementAcceleration float32           `toml:"movement_acceleration" yaml:"movement_acceleration"`
		MovementTopSpeed     float32           `toml:"movement_top_speed" yaml:"movement_top_speed"`
		MovementFriction     float32           `toml:"movement_friction" yaml:"movement_friction"`
		CanClimb             bool              `toml:"can_climb" yaml:"can_climb"`
		ClimbingLayers       physics.LayerMask `toml:"climbing_layers" yaml:"climbing_layers"`
		ClimbingSkinOffset   Offset            `toml:"climbing_skin_offset" yaml:"climbing_skin_offset"`
		ClimbingDuration     float32           `toml:"climbing_duration" yaml:"climbing_duration"`
	} `toml:"ledge" yaml:"ledge"`

	Backflip struct {
		CanBackflip       bool    `toml:"can_backflip" yaml:"can_backflip"`
		WhileTurning      bool    `toml:"while_turning" yaml:"while_turning"`
		LockMovement      bool    `toml:"lock_movement" yaml:"lock_movement"`
		AirAcceleration   float32 `toml:"air_acceleration" yaml:"air_acceleration"`
		TurningDrag       float32 `toml:"turning_drag" yaml:"turning_drag"`
		TopSpeed          float32 `toml:"top_speed" yaml:"top_speed"`
		JumpHeight        float32 `toml:"jump_height" yaml:"jump_height"`
		Gravity           float32 `toml:"gravity" yaml:"gravity"`
		BackwardForce     float32 `toml:"backward_force" yaml:"backward_force"`
		BackwardTurnForce float32 `toml:"backward_turn_force" yaml:"backward_turn_force"`
	} `toml:"backflip" yaml:"backflip"`

	Glide struct {
		CanGlide      bool    `toml:"can_glide" yaml:"can_glide"`
		Gravity       float32 `toml:"gravity" yaml:"gravity"`
		MaxFallSpeed  float32 `toml:"max_fall_speed" yaml:"max_fall_speed"`
		TurningDrag   float32 `toml:"turning_drag" yaml:"turning_drag"`
		RotationSpeed float32 `toml:"rotation_speed" yaml:"rotation_speed"`
	} `toml:"glide" yaml:"glide"`

	Dash struct {
		CanAirDash              bool    `toml:"can_air_dash" yaml:"can_air_dash"`
		CanGroundDash           bool    `toml:"can_ground_dash" yaml:"can_ground_dash"`
		SnapToGroundWhenDashing bool    `toml:"snap_to_ground_when_dashing" yaml:"snap_to_ground_when_dashing"`
		Force                   float32 `toml:"force" yaml:"force"`
		Duration                float32 `toml:"duration" yaml:"duration"`
		GroundCoolDown          float32 `toml:"ground_cool_down" yaml:"ground_cool_down"`
		AllowedAirDashes        int     `toml:"allowed_air_dashes" yaml:"allowed_air_dashes"`
	} `toml:"dash" yaml:"dash"`

	Grind struct {
		CanRailGrind       bool    `toml:"can_rail_grind" yaml:"can_rail_grind"`
		UseCustomCollision bool    `toml:"use_custom_collision" yaml:"use_custom_collision"`
		RadiusOffset       float32 `toml:"radius_offset" yaml:"radius_offset"`
		MinInitialSpeed    float32 `toml:"min_initial_speed" yaml:"min_initial_speed"`
		MinSpeed           float32 `toml:"min_speed" yaml:"min_speed"`
		TopSpeed           float32 `toml:"top_speed" yaml:"top_speed"`
		DownSlopeForce     float32 `toml:"down_slope_force" yaml:"down_slope_force"`
		UpSlopeForce       float32 `toml:"up_slope_force" yaml:"up_slope_force"`
		CanBrake           bool    `toml:"can_brake" yaml:"can_brake"`
		BrakeDeceleration  float32 `toml:"brake_deceleration" yaml:"brake_deceleration"`
		CanDash            bool    `toml:"can_dash" yaml:"can_dash"`
		ApplySlopeFactor   bool    `toml:"apply_slope_factor" yaml:"apply_slope_factor"`
		DashCoolDown       float32 `toml:"dash_cool_down" yaml:"dash_cool_down"`
		DashForce          float32 `toml:"dash_force" yaml:"dash_force"`
	} `toml:"grind" yaml:"grind"`

	Homing struct {
		CanHomingDash       bool              `toml:"can_homing_dash" yaml:"can_homing_dash"`
		Layers              physics.LayerMask `toml:"layers" yaml:"layers"`
		Damage              int               `toml:"damage" yaml:"damage"`
		Radius              float32           `toml:"radius" yaml:"radius"`
		SplineForwardOffset float32           `toml:"spline_forward_offset" yaml:"spline_forward_offset"`
		MaxHeightDifference float32           `toml:"max_height_difference" yaml:"max_height_difference"`
		RefreshRate         float32           `toml:"refresh_rate" yaml:"refresh_rate"`
		MaxDuration         float32           `toml:"max_duration" yaml:"max_duration"`
		Force               float32           `toml:"force" yaml:"force"`
		RecoverForce        float32           `toml:"recover_force" yaml:"recover_force"`
		TrickGravity        float32           `toml:"trick_gravity" yaml:"trick_gravity"`
		TrickInvincibility  float32           `toml:"trick_invincibility" yaml:"trick_invincibility"`
	} `toml:"homing" yaml:"homing"`
}
