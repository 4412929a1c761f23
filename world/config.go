package world

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

// Config holds the simulation settings of a world.
type Config struct {
	// TickRate is the number of ticks per simulated second.
	TickRate  int     `toml:"tick_rate" yaml:"tick_rate"`
	TimeScale float32 `toml:"time_scale" yaml:"time_scale"`
	// Parallel updates players concurrently on Workers goroutines.
	Parallel bool `toml:"parallel" yaml:"parallel"`
	Workers  int  `toml:"workers" yaml:"workers"`
	// CellSize is the edge length of the collision grid cells.
	CellSize float32 `toml:"cell_size" yaml:"cell_size"`
	// Telemetry is how many snapshots are kept per player.
	Telemetry int `toml:"telemetry" yaml:"telemetry"`
	// RespawnDelay is how long a dead player waits before respawning. A negative delay disables
	// respawning.
	RespawnDelay float32 `toml:"respawn_delay" yaml:"respawn_delay"`

	Log LogConfig `toml:"log" yaml:"log"`
}

// LogConfig selects the level and format of the world's logger.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// DefaultConfig returns a sequential 60 Hz world.
func DefaultConfig() Config {
	return Config{
		TickRate:     60,
		TimeScale:    1,
		CellSize:     4,
		Telemetry:    120,
		RespawnDelay: 2,
		Log:          LogConfig{Level: "info", Format: "text"},
	}
}

// Delta returns the unscaled duration of one tick.
func (c Config) Delta() float32 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float32(c.TickRate)
}

// Validate rejects settings the world cannot run with.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return oerror.New("world config: tick_rate must be positive, got %d", c.TickRate)
	case c.TimeScale < 0:
		return oerror.New("world config: time_scale must not be negative, got %v", c.TimeScale)
	case c.CellSize <= 0:
		return oerror.New("world config: cell_size must be positive, got %v", c.CellSize)
	case c.Telemetry < 0:
		return oerror.New("world config: telemetry must not be negative, got %d", c.Telemetry)
	}
	return nil
}

func isYAML(path string) (bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return false, nil
	case ".yaml", ".yml":
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", oerror.ErrUnknownFormat, path)
}

// LoadConfig reads a TOML or YAML config from path over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading world config: %w", err)
	}
	return DecodeConfig(path, data)
}

// DecodeConfig decodes data in the format implied by the extension of path.
func DecodeConfig(path string, data []byte) (Config, error) {
	y, err := isYAML(path)
	if err != nil {
		return Config{}, err
	}
	conf := DefaultConfig()
	if y {
		err = yaml.Unmarshal(data, &conf)
	} else {
		err = toml.Unmarshal(data, &conf)
	}
	if err != nil {
		return Config{}, fmt.Errorf("error decoding world config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// SaveDefaultConfig writes the default config to path. It fails if the file already exists.
func SaveDefaultConfig(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("world config already exists")
	}
	y, err := isYAML(path)
	if err != nil {
		return err
	}
	var data []byte
	if y {
		data, err = yaml.Marshal(DefaultConfig())
	} else {
		data, err = toml.Marshal(DefaultConfig())
	}
	if err != nil {
		return fmt.Errorf("failed encoding default world config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating world config: %w", err)
	}
	return nil
}
