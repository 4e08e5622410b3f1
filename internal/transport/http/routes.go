package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"largesudoku/internal/core"
	"largesudoku/internal/metrics"
	"largesudoku/internal/puzzles"
	"largesudoku/internal/sudoku/gac"
	"largesudoku/internal/sudoku/model"
	"largesudoku/internal/sudoku/solve"
	"largesudoku/pkg/config"
	"largesudoku/pkg/constants"
)

var cfg *config.Config

func RegisterRoutes(r *gin.Engine, c *config.Config) {
	cfg = c

	r.GET("/health", healthHandler)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.POST("/solve", solveHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

func solveHandler(c *gin.Context) {
	var req core.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	opts := model.Options{Redundant: cfg.Redundant}
	switch req.Variant {
	case "", constants.VariantStandard:
	case constants.VariantSudokuX:
		opts.SudokuX = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_variant"})
		return
	}
	variant := req.Variant
	if variant == "" {
		variant = constants.VariantStandard
	}

	grid, err := puzzles.Parse(req.Grid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_grid", "detail": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if cfg.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SolveTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := solve.Run(ctx, grid, opts)
	elapsed := time.Since(start)
	metrics.SolveDuration.Observe(elapsed.Seconds())

	switch {
	case err == nil:
		metrics.SolvesTotal.WithLabelValues(variant, "solved").Inc()
		metrics.SearchNodes.Observe(float64(res.Stats.Nodes))
		logrus.WithFields(logrus.Fields{
			"order":   grid.Order,
			"variant": variant,
			"nodes":   res.Stats.Nodes,
			"elapsed": elapsed,
		}).Info("solved")
		c.JSON(http.StatusOK, core.SolveResponse{
			Status:   constants.StatusSolved,
			Order:    grid.Order,
			Solution: puzzles.Format(grid.N, res.Values),
			Stats: core.SolveStats{
				Nodes:        res.Stats.Nodes,
				Backtracks:   res.Stats.Backtracks,
				Propagations: res.Stats.Propagations,
				MaxDepth:     res.Stats.MaxDepth,
			},
		})
	case errors.Is(err, gac.ErrUnsat):
		metrics.SolvesTotal.WithLabelValues(variant, "unsat").Inc()
		c.JSON(http.StatusUnprocessableEntity, core.SolveResponse{Status: constants.StatusUnsat})
	case errors.Is(err, context.DeadlineExceeded):
		metrics.SolvesTotal.WithLabelValues(variant, "timeout").Inc()
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "solve_timeout"})
	default:
		metrics.SolvesTotal.WithLabelValues(variant, "error").Inc()
		logrus.WithError(err).Error("solve failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
