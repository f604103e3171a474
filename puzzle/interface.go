// Copyright 2016 the hashi.go authors.  All rights reserved.

// Package puzzle provides a model for Hashiwokakero ("bridges")
// puzzles and operations on them.  It supports both a golang
// interface and a web interface to the puzzles.
//
// In this package, a puzzle is a rectangular grid of cells, some
// of which are islands.  Each island carries a required degree
// between 1 and 8 (inclusive).  The player connects islands with
// straight horizontal or vertical bridges; each pair of islands
// can carry at most two parallel bridges, bridges may only join
// islands that see each other along a row or column with no
// island in between, and no bridge may cross another.  A puzzle
// is solved when every island's bridge count equals its required
// degree and the bridges join all islands into a single
// connected component.
//
// For each island, the implementation precomputes the nearest
// island (if any) in each of the four axis directions.  These
// visible neighbors are fixed by the grid and determine exactly
// which island pairs are eligible to carry bridges, both for
// validating player moves and for enumerating the variables of
// the constraint solver.
//
// All mutation of a puzzle goes through validated operations
// that either apply completely or leave the puzzle untouched,
// reporting a structured Error describing the rejected move.
package puzzle

import (
	"fmt"
)

// A Position designates a grid cell by its 0-based row and
// column.  Any 1-based convention used when talking to humans is
// the frontend's responsibility.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Positions implement Stringer
func (pos Position) String() string {
	return fmt.Sprintf("(%d,%d)", pos.Row, pos.Col)
}

// An Orientation says which way a bridge runs.  It is always
// derivable from the bridge's endpoints, but it's cached in the
// ledger for the benefit of renderers and the crossing check.
type Orientation int

// Constants for the two bridge orientations.
const (
	Horizontal Orientation = iota
	Vertical
)

// Orientations implement Stringer
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// An Island is a grid cell that must end up with a specific
// number of incident bridges.  Islands are immutable once the
// puzzle is loaded.
type Island struct {
	Pos      Position `json:"pos"`
	Required int      `json:"required"`
}

// A Bridge reports one entry of the bridge ledger: the two
// endpoint islands (in canonical order), the multiplicity (1 or
// 2), and the orientation.  Pairs with multiplicity 0 never
// appear.
type Bridge struct {
	A           Position    `json:"a"`
	B           Position    `json:"b"`
	Count       int         `json:"count"`
	Orientation Orientation `json:"orientation"`
}

// A Move adds (or, when Remove is set, takes away) Count
// parallel bridges between two islands.  Moves are what
// frontends send and what sessions persist.
type Move struct {
	A      Position `json:"a"`
	B      Position `json:"b"`
	Count  int      `json:"count"`
	Remove bool     `json:"remove,omitempty"`
}

// A Summary is the serializable form of a puzzle: the grid it
// was loaded from plus the moves that led to its current bridge
// ledger.  Summaries round-trip through JSON, so they can be
// cached and persisted.
type Summary struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Grid  []string `json:"grid"`
	Moves []Move   `json:"moves,omitempty"`
}

// The State of a puzzle gives its dimensions, islands, and
// current bridges, for transmission to web clients.
type State struct {
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Islands []Island `json:"islands"`
	Bridges []Bridge `json:"bridges,omitempty"`
	Solved  bool     `json:"solved"`
}

// New builds a Puzzle from a Summary: first the grid, then the
// recorded moves, replayed in order.  A grid that doesn't parse
// or a move that doesn't validate gives an Error and no puzzle.
func New(summary *Summary) (*Puzzle, error) {
	if summary == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: InvalidArgumentCondition,
		}
	}
	lines := make([]string, 0, len(summary.Grid)+1)
	lines = append(lines, fmt.Sprintf("%d,%d", summary.Rows, summary.Cols))
	lines = append(lines, summary.Grid...)
	p, err := Parse(lines)
	if err != nil {
		return nil, err
	}
	for _, m := range summary.Moves {
		if m.Remove {
			err = p.RemoveBridge(m.A, m.B, m.Count)
		} else {
			err = p.AddBridge(m.A, m.B, m.Count)
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Summary returns the serializable form of a puzzle.  The moves
// are one addition per ledger entry, in canonical pair order, so
// replaying them reconstructs the same ledger.
func (p *Puzzle) Summary() *Summary {
	grid := make([]string, p.rows)
	for r := 0; r < p.rows; r++ {
		row := make([]byte, p.cols)
		for c := 0; c < p.cols; c++ {
			if req, ok := p.required[Position{r, c}]; ok {
				row[c] = byte('0' + req)
			} else {
				row[c] = '0'
			}
		}
		grid[r] = string(row)
	}
	var moves []Move
	for _, b := range p.Bridges() {
		moves = append(moves, Move{A: b.A, B: b.B, Count: b.Count})
	}
	return &Summary{Rows: p.rows, Cols: p.cols, Grid: grid, Moves: moves}
}

// State returns the current State of a puzzle.
func (p *Puzzle) State() State {
	return State{
		Rows:    p.rows,
		Cols:    p.cols,
		Islands: p.Islands(),
		Bridges: p.Bridges(),
		Solved:  p.FullCheck() == nil,
	}
}
