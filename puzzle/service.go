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
	"encoding/json"
	"net/http"
)

/*

RESTful wrappers over the puzzle operations, so it's easy to
build web services over Puzzles.  Handlers respond with JSON;
rejected operations come back as 400s carrying the structured
Error, verbalized for clients that just want a message.

*/

/*

Puzzle Creation

*/

// NewHandler is a POST handler that reads a JSON-encoded Summary
// from the request body and builds a new Puzzle from it.  The
// new Puzzle's State is sent as a 200 response, and the puzzle
// itself is returned to the golang caller.  Decode failures and
// invalid summaries send a 400 carrying the Error.
func NewHandler(w http.ResponseWriter, r *http.Request) (*Puzzle, error) {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	if e := dec.Decode(&summary); e != nil {
		err := Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
		return nil, writeJSONError(err, w)
	}
	p, e := New(&summary)
	if e != nil {
		return nil, writeJSONError(asError(e, "NewHandler"), w)
	}
	return p, p.StateHandler(w, r)
}

/*

Puzzle Download Methods

*/

// SummaryHandler responds with the Puzzle's summary.
func (p *Puzzle) SummaryHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(p.Summary(), http.StatusOK, w)
}

// StateHandler responds with the Puzzle's current content:
// dimensions, islands, bridges, and whether it's solved.
func (p *Puzzle) StateHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(p.State(), http.StatusOK, w)
}

// CheckHandler responds with the result of the full solution
// check: 200 with the State if the board is solved, 200 with the
// verbalized failure otherwise.  An unsolved board is a normal
// response, not a request error.
func (p *Puzzle) CheckHandler(w http.ResponseWriter, r *http.Request) error {
	type checkResponse struct {
		Solved bool   `json:"solved"`
		Reason string `json:"reason,omitempty"`
	}
	resp := checkResponse{Solved: true}
	if err := p.FullCheck(); err != nil {
		resp.Solved = false
		resp.Reason = err.Error()
	}
	return writeJSON(resp, http.StatusOK, w)
}

/*

Puzzle Modification Methods

*/

// MoveHandler is a POST handler that reads a JSON-encoded Move
// from the request body and applies it to the puzzle.  A move
// that validates responds with the updated State; a rejected
// move responds 400 with the Error, and the puzzle is untouched.
func (p *Puzzle) MoveHandler(w http.ResponseWriter, r *http.Request) error {
	dec := json.NewDecoder(r.Body)
	var move Move
	if e := dec.Decode(&move); e != nil {
		err := Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
		return writeJSONError(err, w)
	}
	var e error
	if move.Remove {
		e = p.RemoveBridge(move.A, move.B, move.Count)
	} else {
		e = p.AddBridge(move.A, move.B, move.Count)
	}
	if e != nil {
		return writeJSONError(asError(e, "MoveHandler"), w)
	}
	return p.StateHandler(w, r)
}

// SolveHandler runs the solver on the puzzle and responds with
// the resulting State plus whether a solution was found.  A
// board with no solution is a normal 200 response; the puzzle is
// left as it was.
func (p *Puzzle) SolveHandler(w http.ResponseWriter, r *http.Request) error {
	type solveResponse struct {
		Solved bool  `json:"solved"`
		State  State `json:"state"`
	}
	solved := p.Solve()
	return writeJSON(solveResponse{Solved: solved, State: p.State()}, http.StatusOK, w)
}

/*

helpers

*/

// asError coerces any error to an Error, verbalizing it for the
// client.  Since only this package creates the errors returned
// from puzzle operations this conversion should never miss, but
// clients are guarded anyway.
func asError(e error, where string) Error {
	err, ok := e.(Error)
	if !ok {
		err = Error{
			Scope:     InternalScope,
			Structure: ScopeStructure,
			Condition: GeneralCondition,
			Values:    ErrorData{where, e.Error()},
		}
	}
	err.Message = err.Error()
	return err
}

// writeJSON encodes a value as the JSON body of a response.
func writeJSON(v interface{}, status int, w http.ResponseWriter) error {
	body, e := json.Marshal(v)
	if e != nil {
		http.Error(w, e.Error(), http.StatusInternalServerError)
		return Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
	return nil
}

// writeJSONError sends an Error as a 400 response and returns it
// to the golang caller.
func writeJSONError(err Error, w http.ResponseWriter) error {
	writeJSON(err, http.StatusBadRequest, w)
	return err
}
