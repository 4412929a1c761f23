package game

const (
	Epsilon = float32(1e-6)

	// DefaultContactOffset is the skin kept between colliders after a sweep.
	DefaultContactOffset = float32(0.01)
	// GroundOffset is how far below the collider the ground sweep reaches.
	GroundOffset = float32(0.1)

	// FieldIgnoreCooldown is how long a field ignores a collider after a hand-off or detach.
	FieldIgnoreCooldown = float32(0.5)

	// SplineResolution is the sample count used by nearest point searches.
	SplineResolution = 128
	// RailBoundsRadius replaces a rail collider's bounds when it is a homing target.
	RailBoundsRadius = float32(0.25)

	MaxSlideIterations = 3
)
