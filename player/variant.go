package player

import (
	"fmt"
	"strings"

	"github.com/oomph-ac/motion/fsm"
	"github.com/oomph-ac/motion/oerror"
)

// Movement variants of the player catalog.
const (
	Idle fsm.Variant = iota
	Walk
	Brake
	Fall
	Spin
	Hurt
	Die
	Crouch
	Crawling
	Rolling
	RollCharge
	Dash
	Boosting
	WallDrag
	WallRun
	PoleClimbing
	LedgeHanging
	LedgeClimbing
	Swim
	AirDive
	Stomp
	Backflip
	Gliding
	RailGrind
	HomingDash
	HomingDashTrick

	// RollingLike is the family of curled up variants.
	RollingLike
	// Airborne is the family of variants that only run off the ground.
	Airborne
	// Climbing is the family of variants attached to level geometry.
	Climbing
)

var variantNames = [...]string{
	Idle:            "idle",
	Walk:            "walk",
	Brake:           "brake",
	Fall:            "fall",
	Spin:            "spin",
	Hurt:            "hurt",
	Die:             "die",
	Crouch:          "crouch",
	Crawling:        "crawling",
	Rolling:         "rolling",
	RollCharge:      "roll_charge",
	Dash:            "dash",
	Boosting:        "boosting",
	WallDrag:        "wall_drag",
	WallRun:         "wall_run",
	PoleClimbing:    "pole_climbing",
	LedgeHanging:    "ledge_hanging",
	LedgeClimbing:   "ledge_climbing",
	Swim:            "swim",
	AirDive:         "air_dive",
	Stomp:           "stomp",
	Backflip:        "backflip",
	Gliding:         "gliding",
	RailGrind:       "rail_grind",
	HomingDash:      "homing_dash",
	HomingDashTrick: "homing_dash_trick",
	RollingLike:     "rolling_like",
	Airborne:        "airborne",
	Climbing:        "climbing",
}

// Families groups the player variants under their family tags.
var Families = fsm.Families{
	RollingLike: {Rolling, RollCharge},
	Airborne:    {Fall, Spin, Boosting, Backflip, Gliding, AirDive, HomingDashTrick},
	Climbing:    {PoleClimbing, LedgeHanging, LedgeClimbing},
}

// VariantName returns the name of v as used in logs and configuration.
func VariantName(v fsm.Variant) string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("variant(%d)", v)
}

// ParseVariant returns the variant named name. Family tags are not accepted.
func ParseVariant(name string) (fsm.Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range variantNames[:RollingLike] {
		if n == name {
			return fsm.Variant(v), nil
		}
	}
	return 0, oerror.New("unknown player variant %q", name)
}
