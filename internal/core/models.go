package core

// SolveRequest is the solve endpoint's input: a textual grid in the same
// format the CLI accepts, and an optional variant selector.
type SolveRequest struct {
	Grid    string `json:"grid"`
	Variant string `json:"variant,omitempty"` // "standard" (default) or "sudoku-x"
}

// SolveStats mirrors the solver's counters for API responses.
type SolveStats struct {
	Nodes        int64 `json:"nodes"`
	Backtracks   int64 `json:"backtracks"`
	Propagations int64 `json:"propagations"`
	MaxDepth     int   `json:"max_depth"`
}

// SolveResponse carries a solved grid, or status "unsat" with no solution.
type SolveResponse struct {
	Status   string     `json:"status"`
	Order    int        `json:"order,omitempty"`
	Solution string     `json:"solution,omitempty"`
	Stats    SolveStats `json:"stats"`
}
