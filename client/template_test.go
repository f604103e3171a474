// hashi.go - a web-based Hashiwokakero game and teaching tool.
// Copyright (C) 2016 Daniel C. Brotsky.
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
// Licensed under the LGPL v3.  See the LICENSE file for details

package client

import (
	"fmt"
	"strings"
	"testing"

	"github.com/islandhopper/hashi.go/puzzle"
)

var (
	ringBoardLines = []string{
		"3,3",
		"202",
		"000",
		"202",
	}
	steppingBoardLines = []string{
		"1,5",
		"10302",
	}
)

func mustParse(t *testing.T, lines []string) *puzzle.Puzzle {
	t.Helper()
	p, err := puzzle.Parse(lines)
	if err != nil {
		t.Fatalf("Failed to parse board %v: %v", lines, err)
	}
	return p
}

func TestTemplateBoardShape(t *testing.T) {
	p := mustParse(t, ringBoardLines)
	state := p.State()
	tb, err := hashiTemplateBoard(&state)
	if err != nil {
		t.Fatalf("Failed to build template board: %v", err)
	}
	if len(tb) != 3 {
		t.Fatalf("Template board has %d rows, expected 3", len(tb))
	}
	for i, row := range tb {
		if len(row) != 3 {
			t.Fatalf("Template row %d has %d cells, expected 3", i, len(row))
		}
		for j, cell := range row {
			if cell.Row != i+1 || cell.Col != j+1 {
				t.Errorf("Cell (%d,%d) carries coordinates (%d,%d)",
					i, j, cell.Row, cell.Col)
			}
		}
	}
	for _, pos := range [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}} {
		cell := tb[pos[0]][pos[1]]
		if cell.Class != "island" || cell.Value != "2" {
			t.Errorf("Corner cell %v: got class %q value %q", pos, cell.Class, cell.Value)
		}
	}
	if tb[1][1].Class != "water" {
		t.Errorf("Center cell: got class %q, expected water", tb[1][1].Class)
	}
}

func TestTemplateBoardBridges(t *testing.T) {
	p := mustParse(t, steppingBoardLines)
	if err := p.AddBridge(puzzle.Position{Row: 0, Col: 0}, puzzle.Position{Row: 0, Col: 2}, 1); err != nil {
		t.Fatalf("Failed to add bridge: %v", err)
	}
	if err := p.AddBridge(puzzle.Position{Row: 0, Col: 2}, puzzle.Position{Row: 0, Col: 4}, 2); err != nil {
		t.Fatalf("Failed to add bridge: %v", err)
	}
	state := p.State()
	tb, err := hashiTemplateBoard(&state)
	if err != nil {
		t.Fatalf("Failed to build template board: %v", err)
	}
	if tb[0][1].Class != "bridge-1" || string(tb[0][1].Value) != "─" {
		t.Errorf("Single bridge cell: got class %q value %q", tb[0][1].Class, tb[0][1].Value)
	}
	if tb[0][3].Class != "bridge-2" || string(tb[0][3].Value) != "═" {
		t.Errorf("Double bridge cell: got class %q value %q", tb[0][3].Class, tb[0][3].Value)
	}
}

func TestTemplateBoardVerticalBridges(t *testing.T) {
	p := mustParse(t, ringBoardLines)
	if err := p.AddBridge(puzzle.Position{Row: 0, Col: 0}, puzzle.Position{Row: 2, Col: 0}, 2); err != nil {
		t.Fatalf("Failed to add bridge: %v", err)
	}
	state := p.State()
	tb, err := hashiTemplateBoard(&state)
	if err != nil {
		t.Fatalf("Failed to build template board: %v", err)
	}
	if tb[1][0].Class != "bridge-2" || string(tb[1][0].Value) != "║" {
		t.Errorf("Vertical bridge cell: got class %q value %q", tb[1][0].Class, tb[1][0].Value)
	}
}

func TestTemplateBoardBadState(t *testing.T) {
	if _, err := hashiTemplateBoard(nil); err == nil {
		t.Errorf("No error from nil state")
	}
	if _, err := hashiTemplateBoard(&puzzle.State{Rows: 0, Cols: 3}); err == nil {
		t.Errorf("No error from zero-row state")
	}
	bad := &puzzle.State{
		Rows:    2,
		Cols:    2,
		Islands: []puzzle.Island{{Pos: puzzle.Position{Row: 5, Col: 5}, Required: 1}},
	}
	if _, err := hashiTemplateBoard(bad); err == nil {
		t.Errorf("No error from out-of-grid island")
	}
}

func TestSolverPage(t *testing.T) {
	p := mustParse(t, ringBoardLines)
	state := p.State()
	body := SolverPage("httpx-Test0", "beginner-1", &state)
	for _, want := range []string{
		"Hashi: Solver",
		`data-session="httpx-Test0"`,
		`data-board="beginner-1"`,
		"/solver.css",
		"/solver.js",
		`class="island"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Solver page body missing %q:\n%v", want, body)
		}
	}
}

func TestSolverPageBadState(t *testing.T) {
	body := SolverPage("httpx-Test0", "beginner-1", nil)
	if !strings.Contains(body, "Hashi: Error") {
		t.Errorf("Solver page with nil state isn't an error page:\n%v", body)
	}
}

func TestErrorPage(t *testing.T) {
	body := errorPage(fmt.Errorf("Test Error 0"))
	for _, want := range []string{"Hashi: Error", "Test Error 0", reportBugPath} {
		if !strings.Contains(body, want) {
			t.Errorf("Error page body missing %q:\n%v", want, body)
		}
	}
}

func TestHomePage(t *testing.T) {
	boards := []BoardChoice{
		{BoardId: "beginner-1", Name: "Four Corners", Size: "3x3"},
		{BoardId: "easy-1", Name: "Lighthouse Row", Size: "5x5"},
	}
	body := HomePage("httpx-Test0", "beginner-1", boards)
	for _, want := range []string{
		"Hashi: Home",
		"Four Corners",
		"Lighthouse Row",
		"/solver?board=easy-1",
		"/home.css",
		"/home.js",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Home page body missing %q:\n%v", want, body)
		}
	}
}

func TestApplicationFooter(t *testing.T) {
	t.Setenv(applicationNameEnvVar, "")
	t.Setenv(applicationEnvEnvVar, "")
	if footer := applicationFooter(); footer != "[Hashi local]" {
		t.Errorf("Default footer: got %q", footer)
	}
	t.Setenv(applicationNameEnvVar, "hashi-stg")
	t.Setenv(applicationEnvEnvVar, "stg")
	t.Setenv(applicationVersionEnvVar, "v1.2.3")
	t.Setenv(applicationBuildEnvVar, "0123456789abcdef")
	if footer := applicationFooter(); footer != "[hashi-stg v1.2.3 <0123456>]" {
		t.Errorf("Staging footer: got %q", footer)
	}
}
