package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_PrimaryRegionCounts(t *testing.T) {
	p, err := Build(3, Options{})
	require.NoError(t, err)
	require.Equal(t, 9, p.N)
	require.Equal(t, 81, p.C)
	require.Equal(t, 27, len(p.Cons), "9 rows + 9 cols + 9 boxes")

	px, err := Build(3, Options{SudokuX: true})
	require.NoError(t, err)
	require.Equal(t, 29, len(px.Cons), "two diagonals on top")
}

func TestBuild_RegionShapes(t *testing.T) {
	p, err := Build(2, Options{})
	require.NoError(t, err)
	regs := p.Regions()
	require.Equal(t, []int{0, 1, 2, 3}, regs[0], "first row")
	require.Equal(t, []int{0, 4, 8, 12}, regs[4], "first column")
	require.Equal(t, []int{0, 1, 4, 5}, regs[8], "first box")

	px, err := Build(2, Options{SudokuX: true})
	require.NoError(t, err)
	regs = px.Regions()
	require.Equal(t, []int{0, 5, 10, 15}, regs[len(regs)-2], "main diagonal")
	require.Equal(t, []int{3, 6, 9, 12}, regs[len(regs)-1], "anti-diagonal")
}

func TestBuild_RedundantIntersections(t *testing.T) {
	p, err := Build(3, Options{Redundant: true})
	require.NoError(t, err)
	// Each of the 9 rows meets 3 boxes in 3 cells, likewise columns:
	// 27 + 27 auxiliary constraints beyond the 27 primaries.
	require.Equal(t, 27+54, len(p.Cons))

	aux := 0
	for _, spec := range p.Cons {
		if spec.OutA == nil {
			continue
		}
		aux++
		require.Equal(t, 3, len(spec.Cells))
		require.Equal(t, 6, len(spec.OutA))
		require.Equal(t, 6, len(spec.OutB))
		// complements are disjoint from the shared cells
		seen := map[int]bool{}
		for _, c := range spec.Cells {
			seen[c] = true
		}
		for _, c := range append(append([]int{}, spec.OutA...), spec.OutB...) {
			require.False(t, seen[c])
		}
	}
	require.Equal(t, 54, aux)
}

func TestBuild_RedundantWithDiagonals(t *testing.T) {
	p, err := Build(3, Options{SudokuX: true, Redundant: true})
	require.NoError(t, err)
	// Each diagonal crosses the three diagonal boxes in 3 cells: 6 more
	// auxiliary constraints; diagonal/row and diagonal/diagonal overlaps
	// are single cells and emit nothing.
	require.Equal(t, 29+54+6, len(p.Cons))
}

func TestBuild_MinSharedCellsKnob(t *testing.T) {
	p, err := Build(3, Options{Redundant: true, MinSharedCells: 4})
	require.NoError(t, err)
	require.Equal(t, 27, len(p.Cons), "threshold above any overlap emits nothing")
}

func TestBuild_RejectsBadOrders(t *testing.T) {
	_, err := Build(0, Options{})
	require.ErrorIs(t, err, ErrBadOrder)
	_, err = Build(12, Options{})
	require.ErrorIs(t, err, ErrBadOrder)
}

func TestValidate(t *testing.T) {
	p, err := Build(2, Options{})
	require.NoError(t, err)

	good := []int{
		1, 2, 3, 4,
		3, 4, 1, 2,
		2, 1, 4, 3,
		4, 3, 2, 1,
	}
	require.NoError(t, p.Validate(good))

	dupeRow := append([]int(nil), good...)
	dupeRow[1] = 1
	require.Error(t, p.Validate(dupeRow))

	require.Error(t, p.Validate(good[:15]), "wrong length")

	outOfRange := append([]int(nil), good...)
	outOfRange[0] = 5
	require.Error(t, p.Validate(outOfRange))
}

func TestValidate_SudokuXChecksDiagonals(t *testing.T) {
	// Standard-valid but with a repeated value on the main diagonal.
	grid := []int{
		1, 2, 3, 4,
		3, 4, 1, 2,
		2, 1, 4, 3,
		4, 3, 2, 1,
	}
	std, err := Build(2, Options{})
	require.NoError(t, err)
	require.NoError(t, std.Validate(grid))

	x, err := Build(2, Options{SudokuX: true})
	require.NoError(t, err)
	require.Error(t, x.Validate(grid), "diagonal 1,4,4,1 must be rejected")
}
