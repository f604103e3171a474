// hashi.go - a console and web Hashiwokakero puzzle tool.
// Copyright (C) 2016 the hashi.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

package puzzle

import (
	"reflect"
	"testing"
)

/*

Test Boards

*/

var (
	// two islands side by side, one bridge between them
	tinyBoardLines = []string{
		"1,2",
		"11",
	}
	// a plus: four islands around an empty center
	plusBoardLines = []string{
		"3,3",
		"010",
		"101",
		"010",
	}
	// four corners of a square, one bridge along each side
	ringBoardLines = []string{
		"3,3",
		"202",
		"000",
		"202",
	}
	// six islands; see solver tests for the expected solution
	mediumBoardLines = []string{
		"5,5",
		"30003",
		"00000",
		"30100",
		"00000",
		"30003",
	}
)

func mustParse(t *testing.T, lines []string) *Puzzle {
	t.Helper()
	p, err := Parse(lines)
	if err != nil {
		t.Fatalf("Parse of %v failed: %v", lines, err)
	}
	return p
}

func conditionOf(t *testing.T, err error) ErrorCondition {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected an error, got success")
	}
	e, ok := err.(Error)
	if !ok {
		t.Fatalf("Expected an Error value, got %T: %v", err, err)
	}
	return e.Condition
}

/*

Construction and queries

*/

func TestIslandsAndNeighbors(t *testing.T) {
	p := mustParse(t, plusBoardLines)
	expected := []Island{
		{Position{0, 1}, 1},
		{Position{1, 0}, 1},
		{Position{1, 2}, 1},
		{Position{2, 1}, 1},
	}
	if !reflect.DeepEqual(p.Islands(), expected) {
		t.Errorf("Islands are %+v, expected %+v", p.Islands(), expected)
	}
	up, down, left, right := p.VisibleNeighbors(Position{0, 1})
	if up != nil || left != nil || right != nil {
		t.Errorf("Top island has unexpected neighbors: up %v left %v right %v", up, left, right)
	}
	if down == nil || *down != (Position{2, 1}) {
		t.Errorf("Top island's down neighbor is %v, expected (2,1)", down)
	}
	// the empty center must not block visibility
	_, _, left, right = p.VisibleNeighbors(Position{1, 2})
	if left == nil || *left != (Position{1, 0}) {
		t.Errorf("Right island's left neighbor is %v, expected (1,0)", left)
	}
	if right != nil {
		t.Errorf("Right island's right neighbor is %v, expected none", right)
	}
}

func TestDegreeAndPending(t *testing.T) {
	p := mustParse(t, tinyBoardLines)
	a, b := Position{0, 0}, Position{0, 1}
	if d := p.Degree(a); d != 0 {
		t.Errorf("Fresh board degree is %d, expected 0", d)
	}
	if pend := p.Pending(a); pend != 1 {
		t.Errorf("Fresh board pending is %d, expected 1", pend)
	}
	if err := p.AddBridge(a, b, 1); err != nil {
		t.Fatalf("AddBridge failed: %v", err)
	}
	if d := p.Degree(a); d != 1 {
		t.Errorf("Degree after add is %d, expected 1", d)
	}
	if d := p.Degree(b); d != 1 {
		t.Errorf("Far degree after add is %d, expected 1", d)
	}
	if pend := p.Pending(a); pend != 0 {
		t.Errorf("Pending after add is %d, expected 0", pend)
	}
	if pend := p.Pending(Position{0, 5}); pend != 0 {
		t.Errorf("Pending of a non-island is %d, expected 0", pend)
	}
}

/*

Move validation

*/

func TestCanAddBridgeRejections(t *testing.T) {
	p := mustParse(t, mediumBoardLines)
	topLeft, topRight := Position{0, 0}, Position{0, 4}
	midIsle := Position{2, 2}

	cases := []struct {
		name      string
		a, b      Position
		count     int
		condition ErrorCondition
	}{
		{"empty endpoint", topLeft, Position{0, 2}, 1, NotAnIslandCondition},
		{"zero count", topLeft, topRight, 0, InvalidMultiplicityCondition},
		{"triple count", topLeft, topRight, 3, InvalidMultiplicityCondition},
		{"diagonal", topLeft, midIsle, 1, NotVisibleCondition},
		{"blocked by island", topLeft, Position{4, 0}, 1, NotVisibleCondition},
	}
	for _, c := range cases {
		err := p.CanAddBridge(c.a, c.b, c.count)
		if got := conditionOf(t, err); got != c.condition {
			t.Errorf("%s: condition is %v, expected %v", c.name, got, c.condition)
		}
	}
}

func TestMultiplicityAndCapacityLimits(t *testing.T) {
	p := mustParse(t, tinyBoardLines)
	a, b := Position{0, 0}, Position{0, 1}
	if err := p.AddBridge(a, b, 1); err != nil {
		t.Fatalf("First add failed: %v", err)
	}
	// both islands require 1, so capacity trips before the pair cap
	err := p.CanAddBridge(a, b, 1)
	if got := conditionOf(t, err); got != CapacityExceededCondition {
		t.Errorf("Second add condition is %v, expected %v", got, CapacityExceededCondition)
	}

	// a pair with slack capacity but a full ledger entry
	p = mustParse(t, []string{"1,2", "33"})
	if err := p.AddBridge(a, b, 2); err != nil {
		t.Fatalf("Double add failed: %v", err)
	}
	err = p.CanAddBridge(a, b, 1)
	if got := conditionOf(t, err); got != MultiplicityExceededCondition {
		t.Errorf("Overfull pair condition is %v, expected %v", got, MultiplicityExceededCondition)
	}
}

func TestCrossingRejected(t *testing.T) {
	p := mustParse(t, plusBoardLines)
	left, right := Position{1, 0}, Position{1, 2}
	top, bottom := Position{0, 1}, Position{2, 1}
	if err := p.AddBridge(left, right, 1); err != nil {
		t.Fatalf("Horizontal add failed: %v", err)
	}
	err := p.CanAddBridge(top, bottom, 1)
	if got := conditionOf(t, err); got != CrossingCondition {
		t.Errorf("Crossing condition is %v, expected %v", got, CrossingCondition)
	}
	// and the rejection must not have touched the board
	expected := []Bridge{{left, right, 1, Horizontal}}
	if !reflect.DeepEqual(p.Bridges(), expected) {
		t.Errorf("Ledger after rejection is %+v, expected %+v", p.Bridges(), expected)
	}
}

func TestSharedCorridorLegal(t *testing.T) {
	// three islands in a row: (0,0)-(0,2) and (0,2)-(0,4) chain
	// through the middle island without crossing anything
	p := mustParse(t, []string{"1,5", "10201"})
	if err := p.AddBridge(Position{0, 0}, Position{0, 2}, 1); err != nil {
		t.Fatalf("First corridor add failed: %v", err)
	}
	if err := p.AddBridge(Position{0, 2}, Position{0, 4}, 1); err != nil {
		t.Errorf("Second corridor add failed: %v", err)
	}
}

func TestBridgesMeetingAtIslandLegal(t *testing.T) {
	// bridges only meet at their shared island; that is not a
	// crossing, in either order of placement
	p := mustParse(t, []string{"2,2", "21", "10"})
	if err := p.AddBridge(Position{0, 0}, Position{0, 1}, 1); err != nil {
		t.Fatalf("Eastward add failed: %v", err)
	}
	if err := p.AddBridge(Position{0, 0}, Position{1, 0}, 1); err != nil {
		t.Errorf("Southward add rejected: %v", err)
	}

	// a corner island of a larger board, with empty cells in the
	// corridors, behaves the same way
	p = mustParse(t, ringBoardLines)
	if err := p.AddBridge(Position{0, 0}, Position{0, 2}, 1); err != nil {
		t.Fatalf("Eastward add failed: %v", err)
	}
	if err := p.AddBridge(Position{0, 0}, Position{2, 0}, 1); err != nil {
		t.Errorf("Southward add rejected: %v", err)
	}
	if err := p.AddBridge(Position{2, 2}, Position{0, 2}, 1); err != nil {
		t.Errorf("Add into a busy island's column rejected: %v", err)
	}
}

/*

Removal and the undo contract

*/

func TestRemoveBridge(t *testing.T) {
	p := mustParse(t, ringBoardLines)
	a, b := Position{0, 0}, Position{0, 2}

	err := p.RemoveBridge(a, b, 1)
	if got := conditionOf(t, err); got != InsufficientBridgesCondition {
		t.Errorf("Remove-from-empty condition is %v, expected %v", got, InsufficientBridgesCondition)
	}

	if err := p.AddBridge(a, b, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	err = p.RemoveBridge(a, b, 1)
	if err != nil {
		t.Fatalf("Partial remove failed: %v", err)
	}
	if count := p.bridgeCount(a, b); count != 1 {
		t.Errorf("Count after partial remove is %d, expected 1", count)
	}
	// the corridor must stay occupied while any bridge remains
	if len(p.segments) == 0 {
		t.Errorf("Segments freed while a bridge remains")
	}
	if err := p.RemoveBridge(a, b, 1); err != nil {
		t.Fatalf("Final remove failed: %v", err)
	}
	if len(p.bridges) != 0 || len(p.segments) != 0 {
		t.Errorf("Ledger/segments not empty after full remove: %v / %v", p.bridges, p.segments)
	}
}

func TestAddRemoveRestoresState(t *testing.T) {
	p := mustParse(t, mediumBoardLines)
	if err := p.AddBridge(Position{0, 0}, Position{2, 0}, 1); err != nil {
		t.Fatalf("Setup add failed: %v", err)
	}
	beforeBridges := p.Bridges()
	beforeSegments := make(map[segment]bool, len(p.segments))
	for seg := range p.segments {
		beforeSegments[seg] = true
	}

	if err := p.AddBridge(Position{0, 0}, Position{0, 4}, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := p.RemoveBridge(Position{0, 0}, Position{0, 4}, 2); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !reflect.DeepEqual(p.Bridges(), beforeBridges) {
		t.Errorf("Ledger after add/remove is %+v, expected %+v", p.Bridges(), beforeBridges)
	}
	if !reflect.DeepEqual(p.segments, beforeSegments) {
		t.Errorf("Segments after add/remove are %v, expected %v", p.segments, beforeSegments)
	}
}

/*

Global checks

*/

func TestCountsAndConnectivity(t *testing.T) {
	p := mustParse(t, ringBoardLines)
	if p.CountsSatisfied() {
		t.Errorf("Fresh board reports counts satisfied")
	}
	if p.IsConnected() {
		t.Errorf("Fresh multi-island board reports connected")
	}
	if err := p.FullCheck(); err == nil {
		t.Errorf("Fresh board passes FullCheck")
	} else if got := conditionOf(t, err); got != CountsUnsatisfiedCondition {
		t.Errorf("Fresh board FullCheck condition is %v, expected %v", got, CountsUnsatisfiedCondition)
	}

	// two double verticals satisfy every count but split the board
	if err := p.AddBridge(Position{0, 0}, Position{2, 0}, 2); err != nil {
		t.Fatalf("Left add failed: %v", err)
	}
	if err := p.AddBridge(Position{0, 2}, Position{2, 2}, 2); err != nil {
		t.Fatalf("Right add failed: %v", err)
	}
	if !p.CountsSatisfied() {
		t.Errorf("Counts not satisfied after saturating adds")
	}
	if p.IsConnected() {
		t.Errorf("Split board reports connected")
	}
	if err := p.FullCheck(); err == nil {
		t.Errorf("Split board passes FullCheck")
	} else if got := conditionOf(t, err); got != NotConnectedCondition {
		t.Errorf("Split board FullCheck condition is %v, expected %v", got, NotConnectedCondition)
	}

	// the ring solution: one bridge per side
	p = mustParse(t, ringBoardLines)
	sides := [][2]Position{
		{{0, 0}, {0, 2}},
		{{0, 0}, {2, 0}},
		{{0, 2}, {2, 2}},
		{{2, 0}, {2, 2}},
	}
	for _, side := range sides {
		if err := p.AddBridge(side[0], side[1], 1); err != nil {
			t.Fatalf("Ring add %v-%v failed: %v", side[0], side[1], err)
		}
	}
	if err := p.FullCheck(); err != nil {
		t.Errorf("Ring solution fails FullCheck: %v", err)
	}
}

func TestEmptyBoardVacuouslyValid(t *testing.T) {
	p := mustParse(t, []string{"2,2", "00", "00"})
	if !p.IsConnected() {
		t.Errorf("Island-free board reports not connected")
	}
	if err := p.FullCheck(); err != nil {
		t.Errorf("Island-free board fails FullCheck: %v", err)
	}
}

/*

Copying

*/

func TestCopyIsIndependent(t *testing.T) {
	p := mustParse(t, ringBoardLines)
	if err := p.AddBridge(Position{0, 0}, Position{0, 2}, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	c := p.Copy()
	if !reflect.DeepEqual(c.Bridges(), p.Bridges()) {
		t.Fatalf("Copy bridges are %+v, expected %+v", c.Bridges(), p.Bridges())
	}
	if err := c.AddBridge(Position{0, 0}, Position{2, 0}, 1); err != nil {
		t.Fatalf("Add to copy failed: %v", err)
	}
	if len(p.Bridges()) != 1 {
		t.Errorf("Mutating the copy changed the original: %+v", p.Bridges())
	}
}
