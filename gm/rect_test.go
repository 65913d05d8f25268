package gm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRect_WithCenterAndSize(t *testing.T) {
	r := RectWithCenterAndSize(Vec{X: 10, Y: 20}, Vec{X: 4, Y: 6})
	require.Equal(t, Vec{X: 8, Y: 17}, r.Min)
	require.Equal(t, Vec{X: 12, Y: 23}, r.Max)
	require.Equal(t, Vec{X: 10, Y: 20}, r.Center())
	require.Equal(t, Vec{X: 2, Y: 3}, r.HalfSize())
}

func TestRect_Overlaps(t *testing.T) {
	a := RectWithPoints(Vec{X: 0, Y: 0}, Vec{X: 10, Y: 10})

	require.True(t, a.Overlaps(RectWithPoints(Vec{X: 5, Y: 5}, Vec{X: 15, Y: 15})))
	require.False(t, a.Overlaps(RectWithPoints(Vec{X: 11, Y: 0}, Vec{X: 20, Y: 10})))

	// edge contact is not an overlap
	require.False(t, a.Overlaps(RectWithPoints(Vec{X: 10, Y: 0}, Vec{X: 20, Y: 10})))
}

func TestRect_Contains(t *testing.T) {
	r := RectWithOriginAndSize(Vec{X: 1, Y: 1}, Vec{X: 2, Y: 2})
	require.True(t, r.Contains(Vec{X: 2, Y: 2}))
	require.True(t, r.Contains(Vec{X: 1, Y: 3}))
	require.False(t, r.Contains(Vec{X: 0.5, Y: 2}))
}
