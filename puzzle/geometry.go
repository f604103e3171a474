package puzzle

/*

Puzzle Geometry

The geometry of a Hashiwokakero board is fixed at construction:
which cells are islands, which islands see each other along a
row or column, and which unit segments a bridge between two
islands would cover.  Everything here is a pure function of the
loaded grid; the mutable state (ledger, occupancy) lives in
model.go.

*/

// Direction indices for the visible-neighbor table.  The order
// (up, down, left, right) is also the enumeration order used by
// the solver's variable builder, so it is part of the
// deterministic edge ordering.
const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

// A neighborSet holds, for one island, the nearest island in
// each of the four axis directions, or nil where the scan hit
// the board edge first.
type neighborSet [dirCount]*Position

// A pair is a canonical unordered island pair: a is always
// lexicographically (row-major) before b, so a pair is usable as
// a map key regardless of the order the endpoints were named in.
type pair struct {
	a, b Position
}

// makePair puts two positions into canonical order.
func makePair(a, b Position) pair {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}
	return pair{a, b}
}

// A segment is one interior cell of a bridge corridor, tagged
// with the orientation of the bridge covering it.  The endpoint
// islands are not part of the corridor, so bridges that merely
// meet at a shared island occupy disjoint segments; two bridges
// coincide on a segment cell only when one passes over the
// other.
type segment struct {
	orient Orientation
	row    int
	col    int
}

// orientationOf derives a bridge orientation from its endpoints.
// The second return value is false if the positions share
// neither a row nor a column (or are identical).
func orientationOf(a, b Position) (Orientation, bool) {
	if a == b {
		return Horizontal, false
	}
	if a.Row == b.Row {
		return Horizontal, true
	}
	if a.Col == b.Col {
		return Vertical, true
	}
	return Horizontal, false
}

// corridor returns the ordered segments a bridge between a and b
// would cover: the cells strictly between the endpoints, the
// endpoints themselves excluded.  For a horizontal bridge on row
// r between columns c1 < c2 these are (r,c1+1) .. (r,c2-1);
// vertical bridges are analogous.  Misaligned positions give an
// empty corridor, as does a bridge between adjacent islands.
func corridor(a, b Position) []segment {
	orient, ok := orientationOf(a, b)
	if !ok {
		return nil
	}
	var segs []segment
	if orient == Horizontal {
		lo, hi := a.Col, b.Col
		if hi < lo {
			lo, hi = hi, lo
		}
		for c := lo + 1; c < hi; c++ {
			segs = append(segs, segment{Horizontal, a.Row, c})
		}
	} else {
		lo, hi := a.Row, b.Row
		if hi < lo {
			lo, hi = hi, lo
		}
		for r := lo + 1; r < hi; r++ {
			segs = append(segs, segment{Vertical, r, a.Col})
		}
	}
	return segs
}

// computeNeighbors builds the visible-neighbor table: for each
// island, scan outward in each axis direction until the board
// edge or another island.  Runs once at construction; cost is
// proportional to the grid cells scanned.
func computeNeighbors(rows, cols int, required map[Position]int, islands []Island) map[Position]neighborSet {
	neighbors := make(map[Position]neighborSet, len(islands))
	for _, isl := range islands {
		var ns neighborSet
		r, c := isl.Pos.Row, isl.Pos.Col
		for rr := r - 1; rr >= 0; rr-- {
			if _, ok := required[Position{rr, c}]; ok {
				ns[dirUp] = &Position{rr, c}
				break
			}
		}
		for rr := r + 1; rr < rows; rr++ {
			if _, ok := required[Position{rr, c}]; ok {
				ns[dirDown] = &Position{rr, c}
				break
			}
		}
		for cc := c - 1; cc >= 0; cc-- {
			if _, ok := required[Position{r, cc}]; ok {
				ns[dirLeft] = &Position{r, cc}
				break
			}
		}
		for cc := c + 1; cc < cols; cc++ {
			if _, ok := required[Position{r, cc}]; ok {
				ns[dirRight] = &Position{r, cc}
				break
			}
		}
		neighbors[isl.Pos] = ns
	}
	return neighbors
}
