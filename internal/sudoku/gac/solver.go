package gac

import (
	"context"

	"github.com/pkg/errors"
)

// ConstraintSpec describes one all-different constraint to the solver.
// Cells are dense cell indices. Values is the set of values the constraint
// concerns; a zero Values means the full universe. OutA/OutB are only set
// for redundant intersection constraints: the cells of the two parent
// regions outside the shared cells. A value that loses its last candidate
// in OutA must land in the shared cells, so it is scrubbed from OutB (and
// symmetrically).
type ConstraintSpec struct {
	Cells  []int
	Values ValueSet
	OutA   []int
	OutB   []int
}

// constraint is the solver-internal constraint state. The matching cache
// (matchCell/matchVal) survives backtracking untrailed; it is revalidated
// against current domains on every propagator run. weight is the dom/wdeg
// failure count, monotonically non-decreasing for the whole solve.
type constraint struct {
	cells []int
	vals  ValueSet
	outA  []int
	outB  []int

	matchCell []int // slot -> matched value, 0 = none
	matchVal  []int // value -> matched slot, -1 = none
	weight    uint64
}

// Stats collects search and propagation counters for one solve.
type Stats struct {
	Nodes        int64 // assignments tried by search
	Backtracks   int64 // assignments undone after contradiction
	Propagations int64 // constraint propagator runs
	MaxDepth     int   // deepest decision level reached
}

// Solver holds the domain store, the constraint set and all scratch buffers
// for Régin filtering. It is single-threaded and owns its state exclusively
// for the duration of a solve.
type Solver struct {
	n    int
	dom  *Domains
	cons []constraint

	cellCons [][]int32 // cell -> indices of constraints containing it

	// FIFO worklist of constraint indices
	queue   []int32
	qHead   int
	inQueue []bool

	// per-run slot domains, sized by max arity
	domBuf []ValueSet

	// matching scratch: seen-token per value, bumped per augmentation
	seenVal []int
	token   int

	// Tarjan scratch over cell slots (0..arity-1) and values (arity..arity+n-1)
	tjIndex   []int32
	tjLow     []int32
	tjComp    []int32
	tjOnStack []bool
	tjStack   []int32
	tjCounter int32
	compCount int32

	// free-value reachability scratch
	reachedVal  []bool
	reachedCell []bool

	changed []int // cells shrunk by the last propagator run

	stats Stats
}

// ErrBadInput reports an impossible model handed to the solver.
var ErrBadInput = errors.New("invalid solver input")

// New builds a solver for cellCount cells over values 1..n with the given
// constraints. The constraint set is fixed for the solver's lifetime; only
// domains, matching caches and weights mutate afterwards.
func New(n, cellCount int, specs []ConstraintSpec) (*Solver, error) {
	if n < 1 || n > 128 {
		return nil, errors.Wrapf(ErrBadInput, "value universe %d out of range", n)
	}
	if cellCount < 1 {
		return nil, errors.Wrapf(ErrBadInput, "cell count %d", cellCount)
	}

	s := &Solver{
		n:        n,
		dom:      NewDomains(n, cellCount),
		cons:     make([]constraint, len(specs)),
		cellCons: make([][]int32, cellCount),
		inQueue:  make([]bool, len(specs)),
		seenVal:  make([]int, n+1),
	}

	maxArity := 0
	full := FullSet(n)
	for i, spec := range specs {
		if len(spec.Cells) == 0 || len(spec.Cells) > n {
			return nil, errors.Wrapf(ErrBadInput, "constraint %d arity %d", i, len(spec.Cells))
		}
		vals := spec.Values
		if vals.IsEmpty() {
			vals = full
		}
		c := constraint{
			cells:     spec.Cells,
			vals:      vals,
			outA:      spec.OutA,
			outB:      spec.OutB,
			matchCell: make([]int, len(spec.Cells)),
			matchVal:  make([]int, n+1),
			weight:    1,
		}
		for v := range c.matchVal {
			c.matchVal[v] = -1
		}
		for _, cell := range spec.Cells {
			if cell < 0 || cell >= cellCount {
				return nil, errors.Wrapf(ErrBadInput, "constraint %d cell %d", i, cell)
			}
			s.cellCons[cell] = append(s.cellCons[cell], int32(i))
		}
		// Intersection constraints also watch their parent regions'
		// complement cells: the rule reads those domains, so changes there
		// must re-trigger the constraint.
		for _, cell := range append(append([]int{}, spec.OutA...), spec.OutB...) {
			if cell < 0 || cell >= cellCount {
				return nil, errors.Wrapf(ErrBadInput, "constraint %d complement cell %d", i, cell)
			}
			s.cellCons[cell] = append(s.cellCons[cell], int32(i))
		}
		if len(spec.Cells) > maxArity {
			maxArity = len(spec.Cells)
		}
		s.cons[i] = c
	}

	verts := maxArity + n
	s.domBuf = make([]ValueSet, maxArity)
	s.tjIndex = make([]int32, verts)
	s.tjLow = make([]int32, verts)
	s.tjComp = make([]int32, verts)
	s.tjOnStack = make([]bool, verts)
	s.tjStack = make([]int32, 0, verts)
	s.reachedVal = make([]bool, n+1)
	s.reachedCell = make([]bool, maxArity)
	s.changed = make([]int, 0, cellCount)
	s.queue = make([]int32, 0, len(specs))
	return s, nil
}

// SetGiven fixes a cell to a value before solving. Conflicting givens leave
// the cell's domain empty and are reported by the initial propagation.
func (s *Solver) SetGiven(cell, value int) error {
	if cell < 0 || cell >= s.dom.Count() || value < 1 || value > s.n {
		return errors.Wrapf(ErrBadInput, "given %d at cell %d", value, cell)
	}
	s.dom.Fix(cell, value)
	return nil
}

// Domain exposes a cell's current domain, mainly for tests and diagnostics.
func (s *Solver) Domain(cell int) ValueSet { return s.dom.Domain(cell) }

// Weight exposes a constraint's current dom/wdeg weight.
func (s *Solver) Weight(ci int) uint64 { return s.cons[ci].weight }

// Stats returns the counters of the most recent solve.
func (s *Solver) Stats() Stats { return s.stats }

// Solve runs initial propagation and then backtracking search. It returns
// the solved grid as a slice of values, or ErrUnsat when no solution
// exists. ctx is polled between search decisions only; a propagation pass
// is never interrupted.
func (s *Solver) Solve(ctx context.Context) ([]int, error) {
	s.stats = Stats{}
	if !s.propagateAll() {
		return nil, ErrUnsat
	}
	solved, err := s.search(ctx, 0)
	if err != nil {
		return nil, err
	}
	if !solved {
		return nil, ErrUnsat
	}
	out := make([]int, s.dom.Count())
	for i := range out {
		out[i] = s.dom.Value(i)
	}
	return out, nil
}

// ErrUnsat is returned when the puzzle has no solution: either the initial
// propagation failed or the search tree was exhausted.
var ErrUnsat = errors.New("no solution exists")
