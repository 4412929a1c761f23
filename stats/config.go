package stats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/motion/oerror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

type format uint8

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", oerror.ErrUnknownFormat, path)
}

// Encode marshals s in the format implied by the extension of path.
func Encode(path string, s Stats) ([]byte, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	if f == formatYAML {
		return yaml.Marshal(s)
	}
	return toml.Marshal(s)
}

// Decode unmarshals data over the default profile, so omitted keys keep their defaults, and
// validates the result.
func Decode(path string, data []byte) (Stats, error) {
	f, err := formatOf(path)
	if err != nil {
		return Stats{}, err
	}
	s := Default()
	if f == formatYAML {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return Stats{}, fmt.Errorf("error decoding stats: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// SaveDefault writes the default profile to path. It fails if the file already exists.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("stats file already exists")
	}
	data, err := Encode(path, Default())
	if err != nil {
		return fmt.Errorf("failed encoding default stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating stats file: %w", err)
	}
	return nil
}

// Load reads a profile from a TOML or YAML file.
func Load(path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("error reading stats: %w", err)
	}
	return Decode(path, data)
}

// Validate rejects negative durations, inverted min/max pairs and out of range ratios.
func (s Stats) Validate() error {
	nonNegative := map[string]float32{
		"jump.coyote_threshold":         s.Jump.CoyoteThreshold,
		"roll_charge.duration":          s.RollCharge.Duration,
		"crouch.min_slide_duration":     s.Crouch.MinSlideDuration,
		"fall_damage.min_fall_duration": s.FallDamage.MinFallDuration,
		"fall_damage.interval":          s.FallDamage.Interval,
		"wall_drag.gravity_delay":       s.WallDrag.GravityDelay,
		"wall_run.gravity_delay":        s.WallRun.GravityDelay,
		"wall_run.jump_gravity_delay":   s.WallRun.JumpGravityDelay,
		"spin.duration":                 s.Spin.Duration,
		"hurt.water_cool_down":          s.Hurt.WaterCoolDown,
		"hurt.stun_recover_time":        s.Hurt.StunRecoverTime,
		"stomp.air_time":                s.Stomp.AirTime,
		"stomp.ground_time":             s.Stomp.GroundTime,
		"ledge.climbing_duration":       s.Ledge.ClimbingDuration,
		"dash.duration":                 s.Dash.Duration,
		"dash.ground_cool_down":         s.Dash.GroundCoolDown,
		"grind.dash_cool_down":          s.Grind.DashCoolDown,
		"homing.refresh_rate":           s.Homing.RefreshRate,
		"homing.max_duration":           s.Homing.MaxDuration,
		"homing.trick_invincibility":    s.Homing.TrickInvincibility,
		"homing.radius":                 s.Homing.Radius,
		"crouch.height":                 s.Crouch.Height,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%v)", oerror.ErrInvalidStats, name, v)
		}
	}

	ordered := []struct {
		name     string
		min, max float32
	}{
		{"motion.min_top_speed/top_speed", s.Motion.MinTopSpeed, s.Motion.TopSpeed},
		{"jump.min_height/max_height", s.Jump.MinHeight, s.Jump.MaxHeight},
		{"roll_charge.min_force/max_force", s.RollCharge.MinForce, s.RollCharge.MaxForce},
		{"grind.min_speed/top_speed", s.Grind.MinSpeed, s.Grind.TopSpeed},
		{"roll.min_speed_to_unroll/min_speed_to_roll", s.Roll.MinSpeedToUnroll, s.Roll.MinSpeedToRoll},
	}
	for _, o := range ordered {
		if o.min > o.max {
			return fmt.Errorf("%w: %s out of order (%v > %v)", oerror.ErrInvalidStats, o.name, o.min, o.max)
		}
	}

	if s.Brake.Threshold < -1 || s.Brake.Threshold > 0 {
		return fmt.Errorf("%w: brake.threshold must be within [-1, 0]", oerror.ErrInvalidStats)
	}
	if s.Swim.Conversion < 0 || s.Swim.Conversion > 1 {
		return fmt.Errorf("%w: swim.conversion must be within [0, 1]", oerror.ErrInvalidStats)
	}
	if s.Jump.MultiJumps < 0 || s.Spin.AllowedAirSpins < 0 || s.Dash.AllowedAirDashes < 0 {
		return fmt.Errorf("%w: ability counts must not be negative", oerror.ErrInvalidStats)
	}
	return nil
}
