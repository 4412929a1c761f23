// Package input turns raw per-tick controller frames into the queries movement states read.
package input

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Button is a bit set of held buttons.
type Button uint32

const (
	ButtonJump Button = 1 << iota
	ButtonRun
	ButtonRoll
	ButtonCrouch
	ButtonDash
	ButtonSpin
	ButtonGlide
	ButtonGrindBrake
	ButtonAirDive
	ButtonStomp
	ButtonReleaseLedge
	ButtonHomingDash
	ButtonCancel
)

var buttonNames = map[string]Button{
	"jump":          ButtonJump,
	"run":           ButtonRun,
	"roll":          ButtonRoll,
	"crouch":        ButtonCrouch,
	"dash":          ButtonDash,
	"spin":          ButtonSpin,
	"glide":         ButtonGlide,
	"grind-brake":   ButtonGrindBrake,
	"air-dive":      ButtonAirDive,
	"stomp":         ButtonStomp,
	"release-ledge": ButtonReleaseLedge,
	"homing-dash":   ButtonHomingDash,
	"cancel":        ButtonCancel,
}

// ParseButtons combines named buttons into a bit set.
func ParseButtons(names ...string) (Button, error) {
	var b Button
	for _, n := range names {
		bit, ok := buttonNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown button %q", n)
		}
		b |= bit
	}
	return b, nil
}

// Has reports whether every bit of o is set.
func (b Button) Has(o Button) bool {
	return b&o == o && o != 0
}

// Frame is the raw controller state of one tick.
type Frame struct {
	// Move is the stick position: X strafes right, Y moves forward.
	Move mgl32.Vec2
	// Look is the look stick used by aiming states.
	Look mgl32.Vec2
	// Camera is the camera forward in world space. The zero vector means world forward.
	Camera  mgl32.Vec3
	Buttons Button
}
