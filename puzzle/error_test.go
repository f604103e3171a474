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
	"testing"
)

func TestErrorVerbalization(t *testing.T) {
	cases := []struct {
		name     string
		err      Error
		expected string
	}{
		{
			"custom message wins",
			Error{Scope: BoardScope, Message: "just so"},
			"just so",
		},
		{
			"row length",
			Error{
				Scope:     FormatScope,
				Structure: AttributeValueStructure,
				Attribute: RowAttribute,
				Condition: RowLengthCondition,
				Values:    ErrorData{3, "110", 4},
			},
			"Invalid board text: Row 3 (110): Must be exactly 4 characters",
		},
		{
			"bad character",
			Error{
				Scope:     FormatScope,
				Structure: AttributeStructure,
				Attribute: CharacterAttribute,
				Condition: BadCharacterCondition,
				Values:    ErrorData{"x", 2},
			},
			`Invalid board text: Character "x" in row 2: Must be a digit between 0 and 8`,
		},
		{
			"rejected move",
			moveError(CrossingCondition, Position{1, 0}, Position{1, 2}),
			"Problem with bridge (1,0)-(1,2): The bridge would cross another bridge",
		},
		{
			"capacity",
			moveError(CapacityExceededCondition, Position{0, 0}, Position{0, 1},
				Position{0, 0}, 1),
			"Problem with bridge (0,0)-(0,1): Island (0,0) would exceed its required count of 1",
		},
		{
			"final check",
			checkError(CountsUnsatisfiedCondition, Position{0, 0}, 0, 2),
			"Problem with board: Island (0,0) has 0 bridges but requires 2",
		},
		{
			"missing values",
			Error{Scope: IslandScope, Condition: GeneralCondition},
			"Problem at island <unknown>: <unknown>",
		},
	}
	for _, c := range cases {
		if msg := c.err.Error(); msg != c.expected {
			t.Errorf("%s: message is %q, expected %q", c.name, msg, c.expected)
		}
	}
}

func TestMoveErrorCarriesEndpoints(t *testing.T) {
	err := moveError(NotVisibleCondition, Position{0, 0}, Position{2, 2})
	if len(err.Values) < 2 {
		t.Fatalf("Values are %v, expected the endpoints first", err.Values)
	}
	if err.Values[0] != (Position{0, 0}) || err.Values[1] != (Position{2, 2}) {
		t.Errorf("Endpoints are %v and %v, expected (0,0) and (2,2)",
			err.Values[0], err.Values[1])
	}
	if err.Scope != BridgeScope {
		t.Errorf("Scope is %v, expected BridgeScope", err.Scope)
	}
}
