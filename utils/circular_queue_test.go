package utils

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCircularQueueOverwritesOldest(t *testing.T) {
	q := NewCircularQueue[int](3)
	_, ok := q.Latest()
	require.False(t, ok)

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Append(i))
	}
	require.Equal(t, 3, q.Len())
	require.Equal(t, 3, q.Cap())
	require.Equal(t, []int{3, 4, 5}, q.Slice())
	require.Equal(t, []int{5, 4, 3}, slices.Collect(q.Backward()))

	latest, ok := q.Latest()
	require.True(t, ok)
	require.Equal(t, 5, latest)

	first, err := q.Get(0)
	require.NoError(t, err)
	require.Equal(t, 3, first)
	_, err = q.Get(3)
	require.Error(t, err)
}

func TestCircularQueuePopAndClear(t *testing.T) {
	q := NewCircularQueue[string](2)
	require.NoError(t, q.Append("a"))
	require.NoError(t, q.Append("b"))

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.Equal(t, 1, q.Len())

	q.Clear()
	_, ok = q.Pop()
	require.False(t, ok)

	require.Error(t, NewCircularQueue[int](0).Append(1))
}
