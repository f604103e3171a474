package puzzle

/*

Hashiwokakero puzzle representation

*/

import (
	"sort"
)

/*

Puzzles

*/

// A Puzzle owns the island set, the bridge ledger, and the
// occupied-segment index of one Hashiwokakero board.  The
// islands and the visible-neighbor table are fixed at
// construction; the ledger and the occupancy set start empty and
// change only through the validated add/remove operations, so
// the invariants (alignment, at most two bridges per pair, no
// crossings, no island over its required count) hold at all
// times.
type Puzzle struct {
	rows, cols int
	islands    []Island                 // reading order
	required   map[Position]int         // island cell -> required degree
	neighbors  map[Position]neighborSet // visible-neighbor table
	bridges    map[pair]*bridgeInfo     // the ledger; absent pair means count 0
	segments   map[segment]bool         // corridor cells covered by active bridges
}

// A bridgeInfo is one ledger entry.  The orientation is
// derivable from the pair but cached for renderers and the
// crossing check.
type bridgeInfo struct {
	count  int
	orient Orientation
}

// newPuzzle assembles a Puzzle from a validated grid.  The
// caller (the loader) guarantees rows/cols are positive and the
// grid characters are in '0'..'8'.
func newPuzzle(rows, cols int, grid []string) *Puzzle {
	p := &Puzzle{
		rows:     rows,
		cols:     cols,
		required: make(map[Position]int),
		bridges:  make(map[pair]*bridgeInfo),
		segments: make(map[segment]bool),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v := int(grid[r][c] - '0'); v != 0 {
				pos := Position{r, c}
				p.islands = append(p.islands, Island{Pos: pos, Required: v})
				p.required[pos] = v
			}
		}
	}
	p.neighbors = computeNeighbors(rows, cols, p.required, p.islands)
	return p
}

/*

Read-only queries

*/

// Rows returns the number of grid rows.
func (p *Puzzle) Rows() int { return p.rows }

// Cols returns the number of grid columns.
func (p *Puzzle) Cols() int { return p.cols }

// Islands returns the islands in reading order.  The returned
// slice doesn't share storage with the puzzle.
func (p *Puzzle) Islands() []Island {
	return append([]Island(nil), p.islands...)
}

// Required returns an island's required degree, and whether the
// position is an island at all.
func (p *Puzzle) Required(pos Position) (int, bool) {
	req, ok := p.required[pos]
	return req, ok
}

// VisibleNeighbors returns the nearest island in each of the
// four axis directions (up, down, left, right), nil where there
// is none.  Non-island positions get four nils.
func (p *Puzzle) VisibleNeighbors(pos Position) (up, down, left, right *Position) {
	ns := p.neighbors[pos]
	return ns[dirUp], ns[dirDown], ns[dirLeft], ns[dirRight]
}

// Bridges returns the ledger in canonical pair order, so two
// puzzles with the same bridges report them identically.
func (p *Puzzle) Bridges() []Bridge {
	bridges := make([]Bridge, 0, len(p.bridges))
	for key, info := range p.bridges {
		bridges = append(bridges, Bridge{
			A:           key.a,
			B:           key.b,
			Count:       info.count,
			Orientation: info.orient,
		})
	}
	sort.Slice(bridges, func(i, j int) bool {
		if bridges[i].A != bridges[j].A {
			return bridges[i].A.Row < bridges[j].A.Row ||
				(bridges[i].A.Row == bridges[j].A.Row && bridges[i].A.Col < bridges[j].A.Col)
		}
		return bridges[i].B.Row < bridges[j].B.Row ||
			(bridges[i].B.Row == bridges[j].B.Row && bridges[i].B.Col < bridges[j].B.Col)
	})
	return bridges
}

// bridgeCount returns the ledger multiplicity for a pair (0 if
// the pair has no entry).
func (p *Puzzle) bridgeCount(a, b Position) int {
	if info, ok := p.bridges[makePair(a, b)]; ok {
		return info.count
	}
	return 0
}

// Degree returns the sum of ledger multiplicities incident to
// an island.  Side-effect free.
func (p *Puzzle) Degree(pos Position) int {
	total := 0
	for key, info := range p.bridges {
		if key.a == pos || key.b == pos {
			total += info.count
		}
	}
	return total
}

// Pending returns the island's required degree minus its current
// degree: how many more bridge ends it still needs.  Non-island
// positions pend nothing.
func (p *Puzzle) Pending(pos Position) int {
	req, ok := p.required[pos]
	if !ok {
		return 0
	}
	return req - p.Degree(pos)
}

/*

Move validation

*/

// visibleAligned reports whether b is exactly a's nearest island
// in their shared axis direction.  Anything else - misaligned
// positions, islands with another island strictly between - is
// not a legal bridge pair.
func (p *Puzzle) visibleAligned(a, b Position) bool {
	orient, ok := orientationOf(a, b)
	if !ok {
		return false
	}
	ns := p.neighbors[a]
	var nearest *Position
	if orient == Horizontal {
		if b.Col > a.Col {
			nearest = ns[dirRight]
		} else {
			nearest = ns[dirLeft]
		}
	} else {
		if b.Row > a.Row {
			nearest = ns[dirDown]
		} else {
			nearest = ns[dirUp]
		}
	}
	return nearest != nil && *nearest == b
}

// crossingIfAdd reports whether adding a bridge between a and b
// would cross an existing bridge: a crossing occurs exactly when
// an orthogonally oriented bridge already covers one of the new
// corridor's interior cells.  Corridors exclude their endpoints,
// so bridges leaving the same island in two directions never
// count as crossing; same-orientation overlap is legal too (that
// is how double bridges coexist).
func (p *Puzzle) crossingIfAdd(a, b Position) bool {
	for _, seg := range corridor(a, b) {
		orthogonal := segment{Vertical, seg.row, seg.col}
		if seg.orient == Vertical {
			orthogonal.orient = Horizontal
		}
		if p.segments[orthogonal] {
			return true
		}
	}
	return false
}

// CanAddBridge validates adding count parallel bridges between a
// and b without mutating anything.  It returns nil if the
// addition would be legal, otherwise an Error naming the first
// rule the move breaks.
func (p *Puzzle) CanAddBridge(a, b Position, count int) error {
	if _, ok := p.required[a]; !ok {
		return moveError(NotAnIslandCondition, a, b)
	}
	if _, ok := p.required[b]; !ok {
		return moveError(NotAnIslandCondition, a, b)
	}
	if count != 1 && count != 2 {
		return moveError(InvalidMultiplicityCondition, a, b, count)
	}
	if !p.visibleAligned(a, b) {
		return moveError(NotVisibleCondition, a, b)
	}
	if p.bridgeCount(a, b)+count > 2 {
		return moveError(MultiplicityExceededCondition, a, b)
	}
	if p.crossingIfAdd(a, b) {
		return moveError(CrossingCondition, a, b)
	}
	if p.Degree(a)+count > p.required[a] {
		return moveError(CapacityExceededCondition, a, b, a, p.required[a])
	}
	if p.Degree(b)+count > p.required[b] {
		return moveError(CapacityExceededCondition, a, b, b, p.required[b])
	}
	return nil
}

// AddBridge adds count parallel bridges between a and b.  On any
// validation error the puzzle is left exactly as it was.
func (p *Puzzle) AddBridge(a, b Position, count int) error {
	if err := p.CanAddBridge(a, b, count); err != nil {
		return err
	}
	key := makePair(a, b)
	orient, _ := orientationOf(a, b)
	info, ok := p.bridges[key]
	if !ok {
		info = &bridgeInfo{orient: orient}
		p.bridges[key] = info
	}
	info.count += count
	for _, seg := range corridor(a, b) {
		p.segments[seg] = true
	}
	return nil
}

// CanRemoveBridge validates removing count parallel bridges
// between a and b.
func (p *Puzzle) CanRemoveBridge(a, b Position, count int) error {
	if _, ok := p.required[a]; !ok {
		return moveError(NotAnIslandCondition, a, b)
	}
	if _, ok := p.required[b]; !ok {
		return moveError(NotAnIslandCondition, a, b)
	}
	if count != 1 && count != 2 {
		return moveError(InvalidMultiplicityCondition, a, b, count)
	}
	if p.bridgeCount(a, b) < count {
		return moveError(InsufficientBridgesCondition, a, b)
	}
	return nil
}

// RemoveBridge removes count parallel bridges between a and b.
// When a pair's multiplicity reaches 0 its ledger entry is
// deleted and its corridor segments are freed, so an add
// followed by the matching remove restores the prior state
// exactly.
func (p *Puzzle) RemoveBridge(a, b Position, count int) error {
	if err := p.CanRemoveBridge(a, b, count); err != nil {
		return err
	}
	key := makePair(a, b)
	info := p.bridges[key]
	info.count -= count
	if info.count == 0 {
		delete(p.bridges, key)
		for _, seg := range corridor(a, b) {
			delete(p.segments, seg)
		}
	}
	return nil
}

/*

Global checks

*/

// CountsSatisfied reports whether every island's degree equals
// its required number exactly.
func (p *Puzzle) CountsSatisfied() bool {
	for _, isl := range p.islands {
		if p.Degree(isl.Pos) != isl.Required {
			return false
		}
	}
	return true
}

// IsConnected reports whether the bridge graph (islands as
// nodes, pairs with multiplicity > 0 as edges) is a single
// connected component.  A board with no islands is vacuously
// connected.
func (p *Puzzle) IsConnected() bool {
	if len(p.islands) == 0 {
		return true
	}
	adjacency := make(map[Position][]Position, len(p.islands))
	for key := range p.bridges {
		adjacency[key.a] = append(adjacency[key.a], key.b)
		adjacency[key.b] = append(adjacency[key.b], key.a)
	}
	start := p.islands[0].Pos
	seen := map[Position]bool{start: true}
	queue := []Position{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adjacency[u] {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return len(seen) == len(p.islands)
}

// FullCheck is the single source of truth for "is this a
// solution": every island satisfied and the bridge graph one
// component.  It returns nil on success, otherwise an Error
// naming the first failed rule.
func (p *Puzzle) FullCheck() error {
	for _, isl := range p.islands {
		if d := p.Degree(isl.Pos); d != isl.Required {
			return checkError(CountsUnsatisfiedCondition, isl.Pos, d, isl.Required)
		}
	}
	if !p.IsConnected() {
		return checkError(NotConnectedCondition)
	}
	return nil
}

/*

Copying

*/

// Copy returns a deep copy of a puzzle.  The grid-derived tables
// are invariant and shared; the ledger and occupancy set are
// copied, so mutations of the copy never show through.
func (p *Puzzle) Copy() *Puzzle {
	if p == nil {
		return nil
	}
	c := &Puzzle{
		rows:      p.rows,
		cols:      p.cols,
		islands:   p.islands,
		required:  p.required,
		neighbors: p.neighbors,
		bridges:   make(map[pair]*bridgeInfo, len(p.bridges)),
		segments:  make(map[segment]bool, len(p.segments)),
	}
	for key, info := range p.bridges {
		c.bridges[key] = &bridgeInfo{count: info.count, orient: info.orient}
	}
	for seg := range p.segments {
		c.segments[seg] = true
	}
	return c
}
