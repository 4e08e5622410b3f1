package gac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// smallGridSpecs builds row/column/box constraints for an order-k grid,
// optionally in reversed order (the fixed point must not depend on it).
func smallGridSpecs(order int, reversed bool) []ConstraintSpec {
	n := order * order
	var specs []ConstraintSpec
	for r := 0; r < n; r++ {
		row := make([]int, n)
		for c := 0; c < n; c++ {
			row[c] = r*n + c
		}
		specs = append(specs, ConstraintSpec{Cells: row})
	}
	for c := 0; c < n; c++ {
		col := make([]int, n)
		for r := 0; r < n; r++ {
			col[r] = r*n + c
		}
		specs = append(specs, ConstraintSpec{Cells: col})
	}
	for br := 0; br < order; br++ {
		for bc := 0; bc < order; bc++ {
			var box []int
			for r := br * order; r < (br+1)*order; r++ {
				for c := bc * order; c < (bc+1)*order; c++ {
					box = append(box, r*n+c)
				}
			}
			specs = append(specs, ConstraintSpec{Cells: box})
		}
	}
	if reversed {
		for i, j := 0, len(specs)-1; i < j; i, j = i+1, j-1 {
			specs[i], specs[j] = specs[j], specs[i]
		}
	}
	return specs
}

func TestPropagate_NakedSingleCascade(t *testing.T) {
	// In a 4x4 grid, fixing three cells of a row leaves a naked single
	// that initial propagation must place.
	s, err := New(4, 16, smallGridSpecs(2, false))
	require.NoError(t, err)
	require.NoError(t, s.SetGiven(0, 1))
	require.NoError(t, s.SetGiven(1, 2))
	require.NoError(t, s.SetGiven(2, 3))

	require.True(t, s.propagateAll())
	require.Equal(t, 4, s.dom.Value(3))
}

func TestPropagate_ContradictionBumpsWeight(t *testing.T) {
	s, err := New(4, 16, smallGridSpecs(2, false))
	require.NoError(t, err)
	require.NoError(t, s.SetGiven(0, 1))
	require.NoError(t, s.SetGiven(3, 1)) // same row, same value

	require.False(t, s.propagateAll())

	var bumped int
	for ci := range s.cons {
		require.GreaterOrEqual(t, s.cons[ci].weight, uint64(1))
		if s.cons[ci].weight > 1 {
			bumped++
		}
	}
	require.Equal(t, 1, bumped, "exactly the failing constraint is penalized")
	require.Equal(t, 0, len(s.queue), "worklist is cleared on contradiction")
}

func TestPropagate_FixedPointIsIdempotent(t *testing.T) {
	s, err := New(9, 81, smallGridSpecs(3, false))
	require.NoError(t, err)
	require.NoError(t, s.SetGiven(0, 5))
	require.NoError(t, s.SetGiven(10, 3))
	require.NoError(t, s.SetGiven(40, 7))
	require.True(t, s.propagateAll())

	before := make([]ValueSet, 81)
	for i := range before {
		before[i] = s.dom.Domain(i)
	}
	require.True(t, s.propagateAll())
	for i := range before {
		require.Equal(t, before[i], s.dom.Domain(i), "cell %d moved on re-propagation", i)
	}
}

func TestPropagate_FixedPointIndependentOfOrder(t *testing.T) {
	givens := map[int]int{0: 1, 5: 2, 12: 3, 9: 4}
	run := func(reversed bool) []ValueSet {
		s, err := New(4, 16, smallGridSpecs(2, reversed))
		require.NoError(t, err)
		for cell, v := range givens {
			require.NoError(t, s.SetGiven(cell, v))
		}
		require.True(t, s.propagateAll())
		out := make([]ValueSet, 16)
		for i := range out {
			out[i] = s.dom.Domain(i)
		}
		return out
	}
	require.Equal(t, run(false), run(true), "propagation fixed point depends on constraint order")
}
