package puzzle

/*

Hashiwokakero puzzle solver

The solver treats the board as a constraint-satisfaction
problem.  Its variables are the candidate bridge pairs ("edges")
drawn from the visible-neighbor table; each variable's domain is
the set of final multiplicities {0,1,2} still considered
possible for that pair.  The search is:

1. Build the edges and a per-island index of incident edges.
Both are pure functions of the board's geometry and never change
during the search.

2. Propagate: for every island, bound the reachable degree by
the sum of domain minima and maxima over its unassigned incident
edges, and force domains where the island's remaining need
admits only one option (need 0: all incident edges 0; need
2*|unassigned|: all 2; need 1 with one edge left: that edge 1).
Repeat to a fixed point; fail on any empty domain or unmeetable
bound.

3. Backtrack: pick the unassigned edge with the smallest domain
(minimum remaining values; ties go to the lowest edge index) and
try its multiplicities from 2 down to 0, committing the
difference over what ancestors already built onto the live
board.  Clone the domains for the branch, propagate, recurse.
Every bridge added on a failed branch is removed before the next
candidate is tried, so siblings always see the board exactly as
it was - the symmetric-undo contract.

4. When no edges remain unassigned, the board itself is the
final arbiter: the attempt succeeds only if FullCheck passes on
the live state.

The propagation is deliberately no stronger than the three
forcing rules above; boards whose deductions need more get them
from the search instead.  Given the fixed edge order, the solver
is deterministic: the same board always yields the same first
solution.

*/

// An edge is one candidate bridge pair, the unit of assignment
// during search.  Edges carry no state of their own.
type edge struct {
	a, b Position
}

// A domain is the set of final multiplicities still possible for
// an edge, kept sorted ascending so min and max are the ends.
type domain []int

func (d domain) min() int { return d[0] }
func (d domain) max() int { return d[len(d)-1] }

// equal reports whether two domains hold the same values.
func (d domain) equal(other domain) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

// buildEdges derives the solver's variables from the board's
// visible-neighbor table: every island contributes its (up to
// four) visible neighbors, deduplicated by unordered pair.  The
// incidence index maps each island to the edge indices touching
// it.  Edges come out in island reading order, which fixes the
// search's tie-break order.
func buildEdges(p *Puzzle) (edges []edge, incident map[Position][]int) {
	seen := make(map[pair]bool)
	for _, isl := range p.islands {
		ns := p.neighbors[isl.Pos]
		for dir := 0; dir < dirCount; dir++ {
			other := ns[dir]
			if other == nil {
				continue
			}
			key := makePair(isl.Pos, *other)
			if !seen[key] {
				seen[key] = true
				edges = append(edges, edge{isl.Pos, *other})
			}
		}
	}
	incident = make(map[Position][]int, len(p.islands))
	for idx, e := range edges {
		incident[e.a] = append(incident[e.a], idx)
		incident[e.b] = append(incident[e.b], idx)
	}
	return edges, incident
}

/*

Solving

*/

// SolveOptions control the search heuristics.  UseMRV selects
// the minimum-remaining-values variable ordering; without it the
// search takes unassigned edges in index order.
type SolveOptions struct {
	UseMRV bool
}

// Solve tries to complete the puzzle from its current bridges,
// mutating it in place.  It returns true and leaves the solution
// on the board if one exists; otherwise it returns false and the
// board is exactly as it was.  Finding no solution is a normal
// outcome, not an error.
func (p *Puzzle) Solve() bool {
	return p.SolveWith(SolveOptions{UseMRV: true})
}

// SolveWith is Solve with explicit heuristic settings.
func (p *Puzzle) SolveWith(opts SolveOptions) bool {
	edges, incident := buildEdges(p)
	s := &searcher{p: p, edges: edges, incident: incident, useMRV: opts.UseMRV}

	domains := make([]domain, len(edges))
	for i := range domains {
		// bridges already on the board never come back off, so an
		// edge's final multiplicity starts at its current count
		current := p.bridgeCount(edges[i].a, edges[i].b)
		var d domain
		for val := current; val <= 2; val++ {
			d = append(d, val)
		}
		domains[i] = d
	}
	unassigned := make([]bool, len(edges))
	for i := range unassigned {
		unassigned[i] = true
	}

	// reject obviously impossible boards before searching
	if !s.propagate(domains, unassigned) {
		return false
	}
	return s.backtrack(domains, unassigned, len(edges))
}

// A searcher bundles the live board with the static search
// variables.  The board is exclusively owned by the backtrack
// call stack; domains and the unassigned set are branch-local
// and cloned per assignment.
type searcher struct {
	p        *Puzzle
	edges    []edge
	incident map[Position][]int
	useMRV   bool
}

// propagate applies the per-island capacity bounds and forcing
// rules to a fixed point.  An island's remaining need is its
// requirement less the bridges on its assigned edges; bridges on
// a still-open edge are carried by that edge's domain minimum.
// Returns false as soon as any island becomes unsatisfiable.
func (s *searcher) propagate(domains []domain, unassigned []bool) bool {
	changed := true
	for changed {
		changed = false
		for _, isl := range s.p.islands {
			// count only assigned edges here; an unassigned edge's
			// bridges are already reflected in its domain minimum
			committed := 0
			var open []int
			for _, ei := range s.incident[isl.Pos] {
				if unassigned[ei] {
					open = append(open, ei)
					continue
				}
				e := s.edges[ei]
				committed += s.p.bridgeCount(e.a, e.b)
			}
			left := isl.Required - committed
			if left < 0 {
				return false
			}
			if len(open) == 0 {
				// no freedom left; the island must already be done
				if left != 0 {
					return false
				}
				continue
			}

			mins, maxs := 0, 0
			for _, ei := range open {
				d := domains[ei]
				if len(d) == 0 {
					return false
				}
				mins += d.min()
				maxs += d.max()
			}
			if left < mins || left > maxs {
				return false
			}

			force := func(ei, val int) {
				if !domains[ei].equal(domain{val}) {
					domains[ei] = domain{val}
					changed = true
				}
			}
			switch {
			case left == 0:
				for _, ei := range open {
					force(ei, 0)
				}
			case left == 2*len(open):
				for _, ei := range open {
					force(ei, 2)
				}
			case left == 1 && len(open) == 1:
				force(open[0], 1)
			}
		}
	}
	return true
}

// chooseEdge picks the next variable: the unassigned edge with
// the smallest domain when MRV is on (lowest index wins ties),
// otherwise simply the lowest unassigned index.
func (s *searcher) chooseEdge(domains []domain, unassigned []bool) int {
	best, bestSize := -1, 0
	for i := range s.edges {
		if !unassigned[i] {
			continue
		}
		if !s.useMRV {
			return i
		}
		if best == -1 || len(domains[i]) < bestSize {
			best, bestSize = i, len(domains[i])
		}
	}
	return best
}

// backtrack is the recursive search.  Candidate multiplicities
// are tried in descending order (2, 1, 0) - saturating first
// tends to prune faster.  The search only ever raises an edge's
// committed multiplicity along a root-to-leaf path; a candidate
// below what ancestors committed is skipped.  On every failure
// path each AddBridge is paired with the matching RemoveBridge,
// so the board returns to its entry state before this call
// returns false.
func (s *searcher) backtrack(domains []domain, unassigned []bool, remaining int) bool {
	if remaining == 0 {
		return s.p.FullCheck() == nil
	}

	ei := s.chooseEdge(domains, unassigned)
	a, b := s.edges[ei].a, s.edges[ei].b

	d := domains[ei]
	for vi := len(d) - 1; vi >= 0; vi-- {
		val := d[vi]
		current := s.p.bridgeCount(a, b)
		if val < current {
			continue
		}
		delta := val - current
		if delta > 0 {
			if err := s.p.AddBridge(a, b, delta); err != nil {
				// crossing or capacity; prune this candidate
				continue
			}
		}

		branchDomains := make([]domain, len(domains))
		for i := range domains {
			branchDomains[i] = append(domain(nil), domains[i]...)
		}
		branchUnassigned := append([]bool(nil), unassigned...)
		branchDomains[ei] = domain{val}
		branchUnassigned[ei] = false

		if !s.propagate(branchDomains, branchUnassigned) {
			if delta > 0 {
				s.p.RemoveBridge(a, b, delta)
			}
			continue
		}
		if s.backtrack(branchDomains, branchUnassigned, remaining-1) {
			return true
		}
		if delta > 0 {
			s.p.RemoveBridge(a, b, delta)
		}
	}
	return false
}
