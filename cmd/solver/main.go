package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"largesudoku/internal/puzzles"
	"largesudoku/internal/sudoku/gac"
	"largesudoku/internal/sudoku/model"
	"largesudoku/internal/sudoku/solve"
)

var (
	flagSudokuX   bool
	flagRedundant bool
	flagStats     bool
	flagTimeout   time.Duration
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solver <puzzle-file>",
		Short: "Solve large Sudoku puzzles (up to order 11) and Sudoku-X",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVarP(&flagSudokuX, "sudoku-x", "x", false, "add the two main diagonals as all-different regions")
	cmd.Flags().BoolVar(&flagRedundant, "redundant", true, "emit redundant intersection constraints")
	cmd.Flags().BoolVarP(&flagStats, "stats", "s", false, "log search statistics")
	cmd.Flags().DurationVarP(&flagTimeout, "timeout", "t", 0, "abort the solve after this duration (0 = no limit)")
	return cmd
}

func run(path string) error {
	grid, err := puzzles.ParseFile(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := solve.Run(ctx, grid, model.Options{
		SudokuX:   flagSudokuX,
		Redundant: flagRedundant,
	})
	if err != nil {
		return err
	}

	if flagStats {
		logrus.WithFields(logrus.Fields{
			"order":        grid.Order,
			"nodes":        res.Stats.Nodes,
			"backtracks":   res.Stats.Backtracks,
			"propagations": res.Stats.Propagations,
			"max_depth":    res.Stats.MaxDepth,
			"elapsed":      time.Since(start),
		}).Info("search statistics")
	}

	fmt.Println(puzzles.Format(grid.N, res.Values))
	return nil
}

func main() {
	logrus.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, gac.ErrUnsat) {
			fmt.Fprintln(os.Stderr, "no solution exists")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
