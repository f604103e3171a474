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

package dbprep

import (
	"fmt"
	"time"

	"github.com/jackc/pgx"
)

/*

entries

*/

type dataFunction func(*pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the board library into the database.  You should
// do this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the board library from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	conn, err := pgDial()
	if err != nil {
		return err
	}
	defer conn.Close()

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback()
				panic(e)
			}
		}()
		if err := fn(tx); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

the shipped board library

*/

// A sampleBoard is one shipped board: its directory data plus
// the grid rows in board-text form (no header line).
type sampleBoard struct {
	BoardId string
	Name    string
	Rows    int
	Cols    int
	RowList []string
}

var sampleBoards = []sampleBoard{
	{
		BoardId: "beginner-1",
		Name:    "Four Corners",
		Rows:    3,
		Cols:    3,
		RowList: []string{
			"202",
			"000",
			"202",
		},
	},
	{
		BoardId: "beginner-2",
		Name:    "Stepping Stones",
		Rows:    1,
		Cols:    5,
		RowList: []string{
			"10201",
		},
	},
	{
		BoardId: "easy-1",
		Name:    "Lighthouse Row",
		Rows:    5,
		Cols:    5,
		RowList: []string{
			"30003",
			"00000",
			"30100",
			"00000",
			"30003",
		},
	},
	{
		BoardId: "easy-2",
		Name:    "Harbor Square",
		Rows:    4,
		Cols:    4,
		RowList: []string{
			"2002",
			"0000",
			"0000",
			"2002",
		},
	},
	{
		BoardId: "medium-1",
		Name:    "Double Causeway",
		Rows:    5,
		Cols:    5,
		RowList: []string{
			"40003",
			"00000",
			"00000",
			"00000",
			"30002",
		},
	},
	{
		BoardId: "medium-2",
		Name:    "Hub Island",
		Rows:    7,
		Cols:    7,
		RowList: []string{
			"2004002",
			"0000000",
			"0000000",
			"3008003",
			"0000000",
			"0000000",
			"0002000",
		},
	},
}

// insertSamples: add the shipped boards to the database
func insertSamples(tx *pgx.Tx) error {
	for _, sb := range sampleBoards {
		_, err := tx.Exec(
			"INSERT INTO boards (boardId, name, rowCount, colCount, rowList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6) "+
				"ON CONFLICT (boardId) DO NOTHING",
			sb.BoardId, sb.Name, int32(sb.Rows), int32(sb.Cols), sb.RowList, time.Now())
		if err != nil {
			return fmt.Errorf("Failed to insert board %q: %v", sb.BoardId, err)
		}
	}
	return nil
}

// deleteSamples: remove the shipped boards from the database
func deleteSamples(tx *pgx.Tx) error {
	for _, sb := range sampleBoards {
		_, err := tx.Exec("DELETE FROM boards WHERE boardId = $1", sb.BoardId)
		if err != nil {
			return fmt.Errorf("Failed to delete board %q: %v", sb.BoardId, err)
		}
	}
	return nil
}
