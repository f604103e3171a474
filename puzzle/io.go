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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

/*

Board text format

Line 1 is "rows,cols" (two positive integers, no spaces); the
next rows lines have exactly cols characters each, '0' for an
empty cell and '1'..'8' for an island with that required degree.

*/

// Parse validates board text (already split into lines) and
// builds a Puzzle from it.  Malformed input gives a descriptive
// Error and no puzzle - a partial board is never constructed.
func Parse(lines []string) (*Puzzle, error) {
	if len(lines) == 0 {
		return nil, formatError(UnknownAttribute, EmptyInputCondition)
	}
	fields := strings.Split(lines[0], ",")
	if len(fields) != 2 {
		return nil, formatError(HeaderAttribute, BadHeaderCondition)
	}
	rows, err1 := strconv.Atoi(fields[0])
	cols, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || rows < 1 || cols < 1 {
		return nil, formatError(HeaderAttribute, BadHeaderCondition)
	}
	grid := lines[1:]
	if len(grid) != rows {
		return nil, formatError(UnknownAttribute, RowCountCondition, rows, len(grid))
	}
	for i, line := range grid {
		if len(line) != cols {
			return nil, Error{
				Scope:     FormatScope,
				Structure: AttributeValueStructure,
				Attribute: RowAttribute,
				Condition: RowLengthCondition,
				Values:    ErrorData{i + 1, line, cols},
			}
		}
		for _, ch := range line {
			if ch < '0' || ch > '8' {
				return nil, Error{
					Scope:     FormatScope,
					Structure: AttributeStructure,
					Attribute: CharacterAttribute,
					Condition: BadCharacterCondition,
					Values:    ErrorData{string(ch), i + 1},
				}
			}
		}
	}
	return newPuzzle(rows, cols, grid), nil
}

// Read loads a board from a reader, skipping blank lines and
// trimming surrounding whitespace from the rest.
func Read(r io.Reader) (*Puzzle, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{
			Scope:     FormatScope,
			Structure: ScopeStructure,
			Condition: GeneralCondition,
			Values:    ErrorData{err.Error()},
		}
	}
	return Parse(lines)
}

/*

Pretty-printed boards in strings, for console display and
debugging.

*/

// Bridge glyphs for the text renderer: single and double, per
// orientation.
var (
	hSingleGlyph = '-'
	hDoubleGlyph = '='
	vSingleGlyph = '|'
	vDoubleGlyph = '‖'
)

// canvas builds the doubled-grid rune canvas used by the text
// renderers: islands at odd coordinates, bridge glyphs on the
// even cells of their corridors, so single- and double-width
// bridges stay readable.
func (p *Puzzle) canvas() [][]rune {
	height, width := 2*p.rows+1, 2*p.cols+1
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	for _, isl := range p.islands {
		cells[2*isl.Pos.Row+1][2*isl.Pos.Col+1] = rune('0' + isl.Required)
	}
	for key, info := range p.bridges {
		if info.orient == Horizontal {
			r := 2*key.a.Row + 1
			glyph := hSingleGlyph
			if info.count == 2 {
				glyph = hDoubleGlyph
			}
			for c := 2*key.a.Col + 2; c < 2*key.b.Col+1; c++ {
				cells[r][c] = glyph
			}
		} else {
			c := 2*key.a.Col + 1
			glyph := vSingleGlyph
			if info.count == 2 {
				glyph = vDoubleGlyph
			}
			for r := 2*key.a.Row + 2; r < 2*key.b.Row+1; r++ {
				cells[r][c] = glyph
			}
		}
	}
	return cells
}

// GridString returns a drawing of the board with its islands and
// current bridges.
func (p *Puzzle) GridString() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for _, row := range p.canvas() {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String gives a pretty-printed view of a puzzle.
func (p *Puzzle) String() string {
	return p.GridString()
}

// PendingString lists, for every island, how many bridge ends it
// still needs, using 1-based coordinates for human readers.
func (p *Puzzle) PendingString() string {
	if p == nil || len(p.islands) == 0 {
		return "(no islands)"
	}
	parts := make([]string, len(p.islands))
	for i, isl := range p.islands {
		parts[i] = fmt.Sprintf("(%d,%d)=%d needs %d",
			isl.Pos.Row+1, isl.Pos.Col+1, isl.Required, p.Pending(isl.Pos))
	}
	return strings.Join(parts, ", ")
}

/*

Markdown-formatted tables, for documentation

*/

// GridMarkdown returns a markdown-format table for a board as a
// string.  Island cells show their required degree; empty cells
// crossed by a bridge corridor show the bridge's glyph.
func (p *Puzzle) GridMarkdown() (result string) {
	if p == nil {
		return
	}
	result += "|     |"
	for c := 0; c < p.cols; c++ {
		result += "  " + strconv.Itoa(c+1) + "  |"
	}
	result += "\n|"
	for c := 0; c < p.cols+1; c++ {
		result += ":---:|"
	}
	result += "\n"
	cells := p.canvas()
	for r, rowhdr := 0, 'a'; r < p.rows; r, rowhdr = r+1, rowhdr+1 {
		result += "|**" + string(rowhdr) + "**|"
		for c := 0; c < p.cols; c++ {
			glyph := cells[2*r+1][2*c+1]
			if glyph == ' ' {
				// not an island; borrow the corridor glyph, if any
				if g := cells[2*r+1][2*c]; g != ' ' {
					glyph = g
				} else if g := cells[2*r][2*c+1]; g != ' ' {
					glyph = g
				}
			}
			if glyph == ' ' {
				result += "     |"
			} else {
				result += fmt.Sprintf("  %c  |", glyph)
			}
		}
		result += "\n"
	}
	return
}
