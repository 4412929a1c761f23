package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdvanceScalesDelta(t *testing.T) {
	c := New()
	dt, ok := c.Advance(0.5)
	require.True(t, ok)
	require.InDelta(t, 0.5, dt, 1e-6)

	c.SetTimeScale(2)
	dt, ok = c.Advance(0.5)
	require.True(t, ok)
	require.InDelta(t, 1, dt, 1e-6)
	require.InDelta(t, 1.5, c.Now(), 1e-6)
	require.InDelta(t, 1, c.Unscaled(), 1e-6)
	require.EqualValues(t, 2, c.Frame())
}

func TestPauseFreezesTime(t *testing.T) {
	c := New()
	c.SetTimeScale(0.5)
	c.Advance(1)

	c.Pause()
	require.True(t, c.Paused())
	for range 10 {
		_, ok := c.Advance(1)
		require.False(t, ok)
	}
	require.InDelta(t, 0.5, c.Now(), 1e-6)
	require.EqualValues(t, 1, c.Frame())
	require.Zero(t, c.Delta())

	c.Resume()
	require.False(t, c.Paused())
	require.InDelta(t, 0.5, c.TimeScale(), 1e-6)
	c.Advance(1)
	require.EqualValues(t, 2, c.Frame(), "resuming continues without missed ticks")
}

func TestNegativeScaleIsPause(t *testing.T) {
	c := New()
	c.SetTimeScale(-3)
	require.True(t, c.Paused())
	c.Resume()
	require.InDelta(t, 1, c.TimeScale(), 1e-6)
}
