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
	"fmt"
)

/*

Errors

*/

// An Error describes a problem with a puzzle or a requested
// operation.  It can produce an error message in English, but
// its main function is to support localized error messaging by
// clients.  It tells the client "this thing failed to meet this
// condition", and provides supplemental details about the thing
// and the condition.  All Errors are expected, recoverable
// outcomes: a rejected move or a bad input line, never a
// process-fatal failure.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Structure ErrorStructure `json:"structure,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error is
// referring to: a client request, an argument, the board text
// being loaded, an island or bridge named in a move, the board
// as a whole, or an internal logic failure.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	RequestScope
	ArgumentScope
	FormatScope
	IslandScope
	BridgeScope
	BoardScope
	InternalScope
	MaxScope
)

// The ErrorStructure denotes whether the problem is in the
// overall Scope, an Attribute of the Scope, or the value of an
// Attribute of the Scope.
type ErrorStructure int

// Constants for the various structure codes.
const (
	UnknownStructure ErrorStructure = iota
	ScopeStructure
	AttributeStructure
	AttributeValueStructure
	MaxStructure
)

// The ErrorCondition is the predicate that the
// scope/attribute/value failed to satisfy.  There are a bunch of
// known, named predicates and then a "general" (arbitrary
// English string) predicate for runtime errors.
type ErrorCondition int

// Constants for the various error conditions
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition

	// load-time conditions
	EmptyInputCondition
	BadHeaderCondition
	RowCountCondition
	RowLengthCondition
	BadCharacterCondition

	// move validation conditions
	NotAnIslandCondition
	InvalidMultiplicityCondition
	NotVisibleCondition
	MultiplicityExceededCondition
	CrossingCondition
	CapacityExceededCondition
	InsufficientBridgesCondition

	// final check conditions
	CountsUnsatisfiedCondition
	NotConnectedCondition

	InvalidArgumentCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	DecodeAttribute
	EncodeAttribute
	URLAttribute
	HeaderAttribute
	RowAttribute
	CharacterAttribute
	EndpointAttribute
	PairAttribute
	MultiplicityAttribute
	IslandAttribute
	BoardAttribute
	MaxAttribute
)

// The ErrorData provides details about the thing that failed to
// meet the predicate (such as the endpoints of a rejected move)
// as well as the predicate itself (such as the capacity that
// would be exceeded).
//
// Every item in the slice of ErrorData is required to be
// JSON-serializable, so it can be returned to web clients.
// Sadly, there is no good way to express this condition in a way
// the compiler can check it, so we just have to rely on
// implementors to "do the right thing" and check the condition
// at runtime.
type ErrorData []interface{}

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will
// produce an appropriate (English, non-localized) message.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case RequestScope:
		es = "Invalid request: "
	case ArgumentScope:
		es = "Invalid argument: "
	case FormatScope:
		es = "Invalid board text: "
	case IslandScope:
		es = fmt.Sprintf("Problem at island %v: ", nextVal())
	case BridgeScope:
		es = fmt.Sprintf("Problem with bridge %v-%v: ", nextVal(), nextVal())
	case BoardScope:
		es = "Problem with board: "
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	if e.Structure == AttributeStructure || e.Structure == AttributeValueStructure {
		switch e.Attribute {
		case DecodeAttribute:
			es += "JSON Decode error"
		case EncodeAttribute:
			es += "JSON Encode error"
		case URLAttribute:
			es += "Resource path"
		case HeaderAttribute:
			es += "Header line"
		case RowAttribute:
			es += fmt.Sprintf("Row %v", nextVal())
		case CharacterAttribute:
			es += fmt.Sprintf("Character %q in row %v", nextVal(), nextVal())
		case EndpointAttribute:
			es += "Endpoint"
		case PairAttribute:
			es += "Island pair"
		case MultiplicityAttribute:
			es += "Multiplicity"
		case IslandAttribute:
			es += "Island"
		case BoardAttribute:
			es += "Board"
		default:
			es += "<Unknown attribute>"
		}
		if e.Structure == AttributeValueStructure {
			es += " (" + fmt.Sprint(nextVal()) + ")"
		}
		es += ": "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case EmptyInputCondition:
		es += "Input is empty"
	case BadHeaderCondition:
		es += "Must be two positive integers as 'rows,cols'"
	case RowCountCondition:
		es += fmt.Sprintf("Expected %v grid rows, found %v", nextVal(), nextVal())
	case RowLengthCondition:
		es += fmt.Sprintf("Must be exactly %v characters", nextVal())
	case BadCharacterCondition:
		es += "Must be a digit between 0 and 8"
	case NotAnIslandCondition:
		es += "Both endpoints must be islands"
	case InvalidMultiplicityCondition:
		es += "Bridge count must be 1 or 2"
	case NotVisibleCondition:
		es += "Islands are not visible neighbors on a shared row or column"
	case MultiplicityExceededCondition:
		es += "At most 2 bridges may join the same pair of islands"
	case CrossingCondition:
		es += "The bridge would cross another bridge"
	case CapacityExceededCondition:
		es += fmt.Sprintf("Island %v would exceed its required count of %v", nextVal(), nextVal())
	case InsufficientBridgesCondition:
		es += "There aren't that many bridges to remove"
	case CountsUnsatisfiedCondition:
		es += fmt.Sprintf("Island %v has %v bridges but requires %v", nextVal(), nextVal(), nextVal())
	case NotConnectedCondition:
		es += "The bridges do not connect all islands into one component"
	case InvalidArgumentCondition:
		es += "Required value was missing or invalid"
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

/*

Error constructors

*/

// formatError returns a load-time Error about the board text.
func formatError(attr ErrorAttribute, cond ErrorCondition, values ...interface{}) Error {
	structure := AttributeStructure
	if attr == UnknownAttribute {
		structure = ScopeStructure
	}
	return Error{
		Scope:     FormatScope,
		Structure: structure,
		Attribute: attr,
		Condition: cond,
		Values:    values,
	}
}

// moveError returns an Error from a rejected bridge addition or
// removal.  The endpoints are always the first two values, so
// clients can tell which pair was rejected.
func moveError(cond ErrorCondition, a, b Position, values ...interface{}) Error {
	return Error{
		Scope:     BridgeScope,
		Structure: ScopeStructure,
		Condition: cond,
		Values:    append(ErrorData{a, b}, values...),
	}
}

// checkError returns an Error from a failed final check.
func checkError(cond ErrorCondition, values ...interface{}) Error {
	return Error{
		Scope:     BoardScope,
		Structure: ScopeStructure,
		Condition: cond,
		Values:    values,
	}
}
