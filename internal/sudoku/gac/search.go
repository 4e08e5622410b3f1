package gac

import "context"

// Backtracking depth-first search with dom/wdeg branching: pick the
// non-singleton cell minimizing domain size over the summed weights of its
// constraints, try its values in ascending order, propagate, recurse.
// Scores are compared by cross-multiplication so the hot path stays in
// integers; ties go to the lowest cell index, keeping the search
// deterministic.

func (s *Solver) search(ctx context.Context, depth int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}

	cell := s.selectCell()
	if cell < 0 {
		return true, nil
	}

	dom := s.dom.Domain(cell)
	for v := dom.Min(); v != 0; v = dom.NextAfter(v) {
		s.stats.Nodes++
		s.dom.OpenLevel()
		s.dom.Fix(cell, v)
		if s.propagateFrom(cell) {
			solved, err := s.search(ctx, depth+1)
			if err != nil {
				return false, err
			}
			if solved {
				return true, nil
			}
		}
		s.dom.UndoLevel()
		s.stats.Backtracks++
	}
	return false, nil
}

// selectCell returns the dom/wdeg branching cell, or -1 when every cell is
// a singleton (the grid is solved).
func (s *Solver) selectCell() int {
	best := -1
	var bestSize, bestWeight uint64
	for cell := 0; cell < s.dom.Count(); cell++ {
		size := uint64(s.dom.Size(cell))
		if size <= 1 {
			continue
		}
		var w uint64
		for _, ci := range s.cellCons[cell] {
			w += s.cons[ci].weight
		}
		if best == -1 || size*bestWeight < bestSize*w {
			best = cell
			bestSize = size
			bestWeight = w
		}
	}
	return best
}
