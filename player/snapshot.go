package player

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is the read-only telemetry of a player at the end of a tick.
type Snapshot struct {
	Frame    uint64     `json:"frame" yaml:"frame"`
	Name     string     `json:"name" yaml:"name"`
	Position mgl32.Vec3 `json:"position" yaml:"position"`
	Lateral  mgl32.Vec3 `json:"lateral" yaml:"lateral"`
	Vertical float32    `json:"vertical" yaml:"vertical"`
	Grounded bool       `json:"grounded" yaml:"grounded"`
	OnRails  bool       `json:"on_rails" yaml:"on_rails"`

	Current string `json:"current" yaml:"current"`
	Last    string `json:"last" yaml:"last"`

	JumpCounter    int `json:"jump_counter" yaml:"jump_counter"`
	AirSpinCounter int `json:"air_spin_counter" yaml:"air_spin_counter"`
	AirDashCounter int `json:"air_dash_counter" yaml:"air_dash_counter"`
	Health         int `json:"health" yaml:"health"`
}

// Speed is the length of the lateral velocity.
func (s Snapshot) Speed() float32 {
	return s.Lateral.Len()
}
