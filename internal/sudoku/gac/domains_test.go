package gac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomains_BasicOperations(t *testing.T) {
	d := NewDomains(9, 4)
	require.Equal(t, 9, d.Size(0))
	require.False(t, d.IsSingleton(0))

	require.True(t, d.Fix(1, 5))
	require.True(t, d.IsSingleton(1))
	require.Equal(t, 5, d.Value(1))
	require.False(t, d.Fix(1, 5), "fixing to the same singleton is a no-op")

	require.True(t, d.Remove(2, 3))
	require.False(t, d.Remove(2, 3))
	require.Equal(t, 8, d.Size(2))

	require.True(t, d.RemoveMask(3, FullSet(9).Without(7)))
	require.Equal(t, 7, d.Value(3))

	// fixing to a removed value empties the domain
	d.Fix(2, 3)
	require.True(t, d.IsEmpty(2))
}

func TestDomains_UndoRestoresExactly(t *testing.T) {
	d := NewDomains(25, 10)
	d.Fix(0, 12) // root-level change, survives undo

	snapshot := func() []ValueSet {
		out := make([]ValueSet, d.Count())
		for i := range out {
			out[i] = d.Domain(i)
		}
		return out
	}

	before := snapshot()
	d.OpenLevel()
	d.Remove(1, 24)
	d.Remove(1, 25)
	d.Fix(2, 3)
	d.RemoveMask(3, SingleValue(1).With(2).With(20))
	d.UndoLevel()
	require.Equal(t, before, snapshot(), "level undo must restore domains bit-for-bit")

	// nested levels unwind independently
	d.OpenLevel()
	d.Fix(1, 4)
	mid := snapshot()
	d.OpenLevel()
	d.Remove(5, 9)
	d.Fix(6, 1)
	d.UndoLevel()
	require.Equal(t, mid, snapshot())
	d.UndoLevel()
	require.Equal(t, before, snapshot())
	require.Equal(t, 0, d.Level())
}

func TestDomains_TrailsOncePerCellPerLevel(t *testing.T) {
	d := NewDomains(9, 2)
	d.OpenLevel()
	d.Remove(0, 1)
	d.Remove(0, 2)
	d.Remove(0, 3)
	require.Equal(t, 1, len(d.trail), "repeat mutations at one level add no entries")

	d.OpenLevel()
	d.Remove(0, 4)
	require.Equal(t, 2, len(d.trail), "a new level trails the cell again")

	d.UndoLevel()
	require.Equal(t, 6, d.Size(0))
	d.Remove(0, 4) // savedAt was restored: still covered by the level-1 entry
	require.Equal(t, 1, len(d.trail))
	d.UndoLevel()
	require.Equal(t, 9, d.Size(0))
}
