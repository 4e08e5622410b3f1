package gac

// Régin-style GAC filtering for one all-different constraint.
//
// A run repairs the cached bipartite matching (values to cell slots),
// fails if no complete matching exists, then classifies every remaining
// (cell, value) edge with one SCC pass over the residual graph: an edge
// survives iff it is matched, its endpoints share an SCC, or its value is
// reachable from a free value along residual arcs. Everything else cannot
// occur in any maximum matching and is pruned.
//
// Residual orientation: matched edges run cell -> value, unmatched edges
// value -> cell. Free values (values of the constraint outside the matching
// range) are the sources for the reachability pass.

// runConstraint restores GAC on constraint ci. It returns false on
// contradiction. Cells whose domains shrank are appended to s.changed.
func (s *Solver) runConstraint(ci int) bool {
	c := &s.cons[ci]
	arity := len(c.cells)
	s.changed = s.changed[:0]

	// Current domains restricted to the values this constraint concerns.
	for i, cell := range c.cells {
		di := s.dom.Domain(cell).Intersect(c.vals)
		if di.IsEmpty() {
			return false
		}
		s.domBuf[i] = di
	}

	// Validate the matching cache: entries are hints, not trailed state.
	for i := 0; i < arity; i++ {
		if v := c.matchCell[i]; v != 0 && !s.domBuf[i].Has(v) {
			c.matchVal[v] = -1
			c.matchCell[i] = 0
		}
	}

	if !s.augment(c, arity) {
		return false
	}

	s.analyzeResidual(c, arity)
	s.prune(c, arity)

	if c.outA != nil {
		if !s.applyIntersectionRule(c) {
			return false
		}
	}
	return true
}

// augment extends the cached partial matching to cover every cell slot,
// using augmenting-path DFS in ascending slot order with lowest values
// first. Returns false when some slot cannot be matched, i.e. the maximum
// matching is smaller than the arity.
func (s *Solver) augment(c *constraint, arity int) bool {
	var try func(slot int) bool
	try = func(slot int) bool {
		found := false
		s.domBuf[slot].ForEach(func(v int) {
			if found || s.seenVal[v] == s.token {
				return
			}
			s.seenVal[v] = s.token
			if c.matchVal[v] == -1 || try(c.matchVal[v]) {
				c.matchVal[v] = slot
				c.matchCell[slot] = v
				found = true
			}
		})
		return found
	}
	for i := 0; i < arity; i++ {
		if c.matchCell[i] != 0 {
			continue
		}
		s.token++
		if !try(i) {
			return false
		}
	}
	return true
}

// analyzeResidual runs Tarjan's SCC over the residual graph and marks the
// vertices reachable from free values. Vertex numbering: slot i is i,
// value v is arity+v-1.
func (s *Solver) analyzeResidual(c *constraint, arity int) {
	verts := arity + s.n
	for i := 0; i < verts; i++ {
		s.tjIndex[i] = 0
		s.tjComp[i] = -1
	}
	s.tjCounter = 0
	s.compCount = 0
	s.tjStack = s.tjStack[:0]

	var strong func(x int)
	visit := func(x, y int) {
		if s.tjIndex[y] == 0 {
			strong(y)
			if s.tjLow[y] < s.tjLow[x] {
				s.tjLow[x] = s.tjLow[y]
			}
		} else if s.tjOnStack[y] && s.tjIndex[y] < s.tjLow[x] {
			s.tjLow[x] = s.tjIndex[y]
		}
	}
	strong = func(x int) {
		s.tjCounter++
		s.tjIndex[x] = s.tjCounter
		s.tjLow[x] = s.tjCounter
		s.tjStack = append(s.tjStack, int32(x))
		s.tjOnStack[x] = true

		if x < arity {
			visit(x, arity+c.matchCell[x]-1)
		} else {
			v := x - arity + 1
			for i := 0; i < arity; i++ {
				if c.matchCell[i] != v && s.domBuf[i].Has(v) {
					visit(x, i)
				}
			}
		}

		if s.tjLow[x] == s.tjIndex[x] {
			for {
				y := s.tjStack[len(s.tjStack)-1]
				s.tjStack = s.tjStack[:len(s.tjStack)-1]
				s.tjOnStack[y] = false
				s.tjComp[y] = s.compCount
				if int(y) == x {
					break
				}
			}
			s.compCount++
		}
	}
	for x := 0; x < verts; x++ {
		if s.tjIndex[x] == 0 {
			strong(x)
		}
	}

	// Reachability from free values over the same arcs.
	for v := 1; v <= s.n; v++ {
		s.reachedVal[v] = false
	}
	for i := 0; i < arity; i++ {
		s.reachedCell[i] = false
	}
	stack := s.tjStack[:0]
	c.vals.ForEach(func(v int) {
		if c.matchVal[v] == -1 {
			s.reachedVal[v] = true
			stack = append(stack, int32(arity+v-1))
		}
	})
	for len(stack) > 0 {
		x := int(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if x >= arity {
			v := x - arity + 1
			for i := 0; i < arity; i++ {
				if c.matchCell[i] != v && s.domBuf[i].Has(v) && !s.reachedCell[i] {
					s.reachedCell[i] = true
					stack = append(stack, int32(i))
				}
			}
		} else {
			v := c.matchCell[x]
			if !s.reachedVal[v] {
				s.reachedVal[v] = true
				stack = append(stack, int32(arity+v-1))
			}
		}
	}
	s.tjStack = stack[:0]
}

// prune removes every (cell, value) edge that no maximum matching uses.
// The matched value of a slot always survives, so domains never empty here.
func (s *Solver) prune(c *constraint, arity int) {
	for i, cell := range c.cells {
		m := c.matchCell[i]
		var rm ValueSet
		s.domBuf[i].ForEach(func(v int) {
			if v == m || s.reachedVal[v] {
				return
			}
			if s.tjComp[i] == s.tjComp[arity+v-1] {
				return
			}
			rm = rm.With(v)
		})
		if !rm.IsEmpty() && s.dom.RemoveMask(cell, rm) {
			s.changed = append(s.changed, cell)
		}
	}
}

// applyIntersectionRule enforces the redundant intersection semantics: a
// value of the constraint with no remaining candidate in one parent
// region's complement must be placed in the shared cells, so it cannot
// appear in the other region's complement.
func (s *Solver) applyIntersectionRule(c *constraint) bool {
	var unionA, unionB ValueSet
	for _, cell := range c.outA {
		unionA = unionA.Union(s.dom.Domain(cell))
	}
	for _, cell := range c.outB {
		unionB = unionB.Union(s.dom.Domain(cell))
	}
	if !s.scrub(c.vals.Diff(unionA), c.outB) {
		return false
	}
	if !s.scrub(c.vals.Diff(unionB), c.outA) {
		return false
	}
	return true
}

func (s *Solver) scrub(locked ValueSet, cells []int) bool {
	if locked.IsEmpty() {
		return true
	}
	for _, cell := range cells {
		if s.dom.RemoveMask(cell, locked) {
			if s.dom.IsEmpty(cell) {
				return false
			}
			s.changed = append(s.changed, cell)
		}
	}
	return true
}
