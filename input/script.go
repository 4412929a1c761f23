package input

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Step holds a frame for the ticks in [From, To).
type Step struct {
	From    int        `yaml:"from"`
	To      int        `yaml:"to"`
	Move    [2]float32 `yaml:"move"`
	Camera  [3]float32 `yaml:"camera"`
	Buttons []string   `yaml:"buttons"`
}

// Script plays back frames by tick. Overlapping steps OR their buttons together; the movement of
// the last overlapping step wins.
type Script struct {
	Steps []Step `yaml:"steps"`

	compiled []compiledStep
}

type compiledStep struct {
	from, to int
	frame    Frame
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading input script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error decoding input script: %w", err)
	}
	if err := s.Compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Compile parses button names. It is called by LoadScript and must be called on scripts built in
// code before At is used.
func (s *Script) Compile() error {
	s.compiled = s.compiled[:0]
	for i, st := range s.Steps {
		if st.To <= st.From {
			return fmt.Errorf("input script step %d: empty tick range [%d, %d)", i, st.From, st.To)
		}
		b, err := ParseButtons(st.Buttons...)
		if err != nil {
			return fmt.Errorf("input script step %d: %w", i, err)
		}
		s.compiled = append(s.compiled, compiledStep{
			from: st.From,
			to:   st.To,
			frame: Frame{
				Move:    mgl32.Vec2{st.Move[0], st.Move[1]},
				Camera:  mgl32.Vec3{st.Camera[0], st.Camera[1], st.Camera[2]},
				Buttons: b,
			},
		})
	}
	return nil
}

// At returns the frame for tick.
func (s *Script) At(tick int) Frame {
	var f Frame
	for _, st := range s.compiled {
		if tick < st.from || tick >= st.to {
			continue
		}
		f.Buttons |= st.frame.Buttons
		if st.frame.Move != (mgl32.Vec2{}) {
			f.Move = st.frame.Move
		}
		if st.frame.Camera != (mgl32.Vec3{}) {
			f.Camera = st.frame.Camera
		}
	}
	return f
}

// Length returns the first tick after the last step.
func (s *Script) Length() int {
	n := 0
	for _, st := range s.compiled {
		n = max(n, st.to)
	}
	return n
}
