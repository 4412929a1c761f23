package entity

import "github.com/go-gl/mathgl/mgl32"

const historySize = 64

// HistoricalPosition is the state of an entity recorded at the end of a frame.
type HistoricalPosition struct {
	Frame    uint64
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Grounded bool
	Teleport bool
}

// Rewind looks back in the position history of the entity and returns the record of the given
// frame, or the closest one recorded.
func (e *Entity) Rewind(frame uint64) (HistoricalPosition, bool) {
	if e.history.Len() == 0 {
		return HistoricalPosition{}, false
	}

	var (
		result HistoricalPosition
		delta  uint64 = 1<<64 - 1
	)

	for hp := range e.history.Backward() {
		if hp.Frame == frame {
			return hp, true
		}

		currentDelta := hp.Frame - frame
		if hp.Frame < frame {
			currentDelta = frame - hp.Frame
		}

		if currentDelta < delta {
			result = hp
			delta = currentDelta
		}
	}

	return result, true
}

// History returns the recorded positions, oldest first.
func (e *Entity) History() []HistoricalPosition {
	return e.history.Slice()
}
