package player

import (
	"testing"

	"github.com/oomph-ac/motion/clock"
	"github.com/oomph-ac/motion/fsm"
	"github.com/stretchr/testify/require"
)

func TestHealthDamage(t *testing.T) {
	c := clock.New()
	h := NewHealth(c, 3, 3, 1)

	var changes []int
	h.OnChange.Add(func(v int) { changes = append(changes, v) })
	var damaged, emptied int
	h.OnDamage.Add(func() { damaged++ })
	h.OnEmpty.Add(func() { emptied++ })

	h.Damage(1)
	require.Equal(t, 2, h.Current())
	require.True(t, h.Recovering())

	h.Damage(1)
	require.Equal(t, 2, h.Current(), "damage is ignored while recovering")

	c.Advance(1.1)
	require.False(t, h.Recovering())
	h.Damage(5)
	require.Zero(t, h.Current())
	require.True(t, h.Empty())
	require.Equal(t, []int{2, 0}, changes)
	require.Equal(t, 2, damaged)
	require.Equal(t, 1, emptied)

	c.Advance(2)
	h.Damage(1)
	require.Equal(t, 2, damaged, "an empty counter takes no damage")
}

func TestHealthBounds(t *testing.T) {
	h := NewHealth(nil, 5, 3, 0)
	require.Equal(t, 3, h.Current())
	require.Equal(t, 3, h.Max())

	h.Set(-4)
	require.Zero(t, h.Current())
	h.Increase(10)
	require.Equal(t, 3, h.Current())

	h.Set(1)
	h.Reset()
	require.Equal(t, 3, h.Current())
	require.False(t, h.Recovering())
}

func TestParseVariant(t *testing.T) {
	for name, want := range map[string]fsm.Variant{
		"idle":              Idle,
		"roll_charge":       RollCharge,
		"Homing_Dash_Trick": HomingDashTrick,
	} {
		got, err := ParseVariant(name)
		require.NoError(t, err)
		require.Equal(t, want, got)

		again, err := ParseVariant(VariantName(got))
		require.NoError(t, err)
		require.Equal(t, got, again)
	}
	_, err := ParseVariant("rolling_like")
	require.Error(t, err)
	_, err = ParseVariant("teleport")
	require.Error(t, err)
}
