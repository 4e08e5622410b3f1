// Package solve wires a parsed grid through model construction and the
// solver. It is the single entry point shared by the CLI and the HTTP API.
package solve

import (
	"context"

	"largesudoku/internal/puzzles"
	"largesudoku/internal/sudoku/gac"
	"largesudoku/internal/sudoku/model"
)

// Result is a solved grid plus the search counters that produced it.
type Result struct {
	Values []int
	Stats  gac.Stats
}

// Run builds the model for the grid's order, applies the givens and
// solves. It returns gac.ErrUnsat when the puzzle has no solution and the
// context's error when the deadline expires mid-search.
func Run(ctx context.Context, g *puzzles.Grid, opts model.Options) (*Result, error) {
	p, err := model.Build(g.Order, opts)
	if err != nil {
		return nil, err
	}
	s, err := gac.New(p.N, p.C, p.Cons)
	if err != nil {
		return nil, err
	}
	for cell, v := range g.Cells {
		if v == 0 {
			continue
		}
		if err := s.SetGiven(cell, v); err != nil {
			return nil, err
		}
	}
	values, err := s.Solve(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Values: values, Stats: s.Stats()}, nil
}
