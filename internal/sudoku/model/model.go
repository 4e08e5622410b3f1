// Package model builds the board geometry for a puzzle: the primary
// all-different regions of the chosen variant plus the redundant
// intersection constraints, expressed as plain cell-index tuples for the
// solver. The solver never computes geometry; everything it needs is
// produced here.
package model

import (
	"math/bits"

	"github.com/pkg/errors"

	"largesudoku/internal/sudoku/gac"
	"largesudoku/pkg/constants"
)

// Options selects the variant and tunes redundant constraint emission.
type Options struct {
	// SudokuX adds the two main diagonals as all-different regions.
	SudokuX bool
	// Redundant emits auxiliary intersection constraints for region pairs
	// sharing at least MinSharedCells cells.
	Redundant bool
	// MinSharedCells defaults to constants.DefaultMinSharedCells.
	MinSharedCells int
}

// Problem is the constructed model: grid dimensions plus the constraint
// list the solver consumes.
type Problem struct {
	Order int // box side k
	N     int // values per cell, k*k
	C     int // cell count, N*N

	Cons []gac.ConstraintSpec

	// Primary region cell lists, kept for validation.
	regions [][]int
}

var ErrBadOrder = errors.New("unsupported grid order")

// Build constructs the model for an order-k grid.
func Build(order int, opts Options) (*Problem, error) {
	if order < 1 || order > constants.MaxOrder {
		return nil, errors.Wrapf(ErrBadOrder, "order %d", order)
	}
	if opts.MinSharedCells <= 0 {
		opts.MinSharedCells = constants.DefaultMinSharedCells
	}

	n := order * order
	p := &Problem{Order: order, N: n, C: n * n}

	// Rows, columns, boxes.
	for r := 0; r < n; r++ {
		row := make([]int, n)
		for c := 0; c < n; c++ {
			row[c] = r*n + c
		}
		p.regions = append(p.regions, row)
	}
	for c := 0; c < n; c++ {
		col := make([]int, n)
		for r := 0; r < n; r++ {
			col[r] = r*n + c
		}
		p.regions = append(p.regions, col)
	}
	for br := 0; br < order; br++ {
		for bc := 0; bc < order; bc++ {
			box := make([]int, 0, n)
			for r := br * order; r < (br+1)*order; r++ {
				for c := bc * order; c < (bc+1)*order; c++ {
					box = append(box, r*n+c)
				}
			}
			p.regions = append(p.regions, box)
		}
	}
	if opts.SudokuX {
		diag := make([]int, n)
		anti := make([]int, n)
		for i := 0; i < n; i++ {
			diag[i] = i*n + i
			anti[i] = i*n + (n - 1 - i)
		}
		p.regions = append(p.regions, diag, anti)
	}

	full := gac.FullSet(n)
	for _, reg := range p.regions {
		p.Cons = append(p.Cons, gac.ConstraintSpec{Cells: reg, Values: full})
	}

	if opts.Redundant && n > 1 {
		p.addIntersections(opts.MinSharedCells, full)
	}
	return p, nil
}

// addIntersections emits an auxiliary constraint for every pair of primary
// regions sharing at least minShared cells: the shared cells, the values
// common to both regions, and the two complement cell lists the
// intersection rule operates on.
func (p *Problem) addIntersections(minShared int, full gac.ValueSet) {
	words := (p.C + 63) / 64
	bitmaps := make([][]uint64, len(p.regions))
	for i, reg := range p.regions {
		bm := make([]uint64, words)
		for _, cell := range reg {
			bm[cell/64] |= 1 << uint(cell%64)
		}
		bitmaps[i] = bm
	}

	for a := 0; a < len(p.regions); a++ {
		for b := a + 1; b < len(p.regions); b++ {
			shared := 0
			for w := 0; w < words; w++ {
				shared += bits.OnesCount64(bitmaps[a][w] & bitmaps[b][w])
			}
			if shared < minShared || shared == len(p.regions[a]) {
				continue
			}
			var inter, outA, outB []int
			for _, cell := range p.regions[a] {
				if bitmaps[b][cell/64]&(1<<uint(cell%64)) != 0 {
					inter = append(inter, cell)
				} else {
					outA = append(outA, cell)
				}
			}
			for _, cell := range p.regions[b] {
				if bitmaps[a][cell/64]&(1<<uint(cell%64)) == 0 {
					outB = append(outB, cell)
				}
			}
			p.Cons = append(p.Cons, gac.ConstraintSpec{
				Cells:  inter,
				Values: full, // primary regions all span 1..N
				OutA:   outA,
				OutB:   outB,
			})
		}
	}
}

// Regions returns the primary region cell lists.
func (p *Problem) Regions() [][]int { return p.regions }

// Validate checks a filled grid against every primary region: all cells
// set, values in range, no duplicates within a region.
func (p *Problem) Validate(values []int) error {
	if len(values) != p.C {
		return errors.Errorf("expected %d cells, got %d", p.C, len(values))
	}
	for i, v := range values {
		if v < 1 || v > p.N {
			return errors.Errorf("cell %d has value %d out of range 1..%d", i, v, p.N)
		}
	}
	seen := make([]int, p.N+1)
	for ri, reg := range p.regions {
		for _, cell := range reg {
			v := values[cell]
			if seen[v] == ri+1 {
				return errors.Errorf("value %d repeats in region %d", v, ri)
			}
			seen[v] = ri + 1
		}
	}
	return nil
}
