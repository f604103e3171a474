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

package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/islandhopper/hashi.go/puzzle"
	"github.com/jackc/pgx"
)

/*

board library

*/

// DefaultBoardID is the board sessions start on when they don't
// name one.
const DefaultBoardID = "beginner-1"

// A BoardInfo is the exported directory entry for one stored
// board: enough for a client to show a picker.
type BoardInfo struct {
	BoardId string `json:"boardId"`
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
	Islands int    `json:"islands"`
}

// A boardEntry represents the stored form of a board.  It is
// JSON serializable so it can go into the cache as well as the
// database.
type boardEntry struct {
	BoardId string
	Name    string
	Rows    int32
	Cols    int32
	RowList []string
}

// LoadBoard finds a stored board by id and builds a fresh puzzle
// from it.  Unknown ids fall back to the default board.  Panics
// on storage failure, like the other storage operations.
func LoadBoard(id string) (*puzzle.Puzzle, string) {
	if id == "" || id == "default" {
		id = DefaultBoardID
	}
	be := loadBoardEntry(id)
	if be == nil {
		be = loadBoardEntry(DefaultBoardID)
		if be == nil {
			panic(fmt.Errorf("Default board %q is not in the database", DefaultBoardID))
		}
	}
	return be.makePuzzle(), be.BoardId
}

// ListBoards returns the directory of stored boards, sorted by
// id in the database.
func ListBoards() []BoardInfo {
	var infos []BoardInfo
	body := func(tx *pgx.Tx) error {
		rows, err := tx.Query(
			"SELECT boardId, name, rowCount, colCount, rowList FROM boards ORDER BY boardId")
		if err != nil {
			return fmt.Errorf("Failure listing boards: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var be boardEntry
			if err := rows.Scan(&be.BoardId, &be.Name, &be.Rows, &be.Cols, &be.RowList); err != nil {
				return fmt.Errorf("Failure scanning board row: %v", err)
			}
			infos = append(infos, be.info())
		}
		return rows.Err()
	}
	pgExecute(body)
	return infos
}

// AddBoard stores a new board in the library under the given id
// and name, making it available to every session.  The id must
// not already be in use.
func AddBoard(id, name string, p *puzzle.Puzzle) {
	summary := p.Summary()
	be := &boardEntry{
		BoardId: id,
		Name:    name,
		Rows:    int32(summary.Rows),
		Cols:    int32(summary.Cols),
		RowList: summary.Grid,
	}
	be.databaseInsert()
	be.cacheInsert()
}

// loadBoardEntry first checks the cache, then the database, to
// find the board's entry.  If it loads from the database, it
// caches the result.  Returns nil when the id is stored nowhere.
func loadBoardEntry(id string) *boardEntry {
	be := &boardEntry{BoardId: id}
	if be.cacheLoad() {
		return be
	}
	// cache miss, load from database and save to cache
	if !be.databaseLoad() {
		return nil
	}
	be.cacheInsert()
	return be
}

// makePuzzle: make the puzzle described in a board entry
func (be *boardEntry) makePuzzle() *puzzle.Puzzle {
	lines := make([]string, 0, len(be.RowList)+1)
	lines = append(lines, fmt.Sprintf("%d,%d", be.Rows, be.Cols))
	lines = append(lines, be.RowList...)
	p, e := puzzle.Parse(lines)
	if e != nil {
		panic(fmt.Errorf("Failed to create board %q: %v", be.BoardId, e))
	}
	return p
}

// info: the directory form of a board entry
func (be *boardEntry) info() BoardInfo {
	islands := 0
	for _, row := range be.RowList {
		for _, ch := range row {
			if ch != '0' {
				islands++
			}
		}
	}
	return BoardInfo{
		BoardId: be.BoardId,
		Name:    be.Name,
		Rows:    int(be.Rows),
		Cols:    int(be.Cols),
		Islands: islands,
	}
}

// key: compute the cache key for a boardEntry.
func (be *boardEntry) key() string {
	return rdEnv + ":BID:" + be.BoardId
}

// cacheLoad: load an already cached board entry.  Returns
// whether the entry was found in the cache.
func (be *boardEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", be.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading boardEntry %q: %v", be.BoardId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sbe *boardEntry
	err := json.Unmarshal(bytes, &sbe)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal boardEntry %q: %v", be.BoardId, err))
	}
	if sbe.BoardId != be.BoardId {
		panic(fmt.Errorf("Cached boardEntry (id: %q) found for board %q!",
			sbe.BoardId, be.BoardId))
	}
	*be = *sbe
	return true
}

// databaseLoad: load a board entry from the database.  Returns
// whether there is a saved entry with the given id.
func (be *boardEntry) databaseLoad() (found bool) {
	body := func(tx *pgx.Tx) error {
		row := tx.QueryRow(
			"SELECT name, rowCount, colCount, rowList FROM boards "+
				"WHERE boardId = $1", be.BoardId)
		err := row.Scan(&be.Name, &be.Rows, &be.Cols, &be.RowList)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up board %q: %v", be.BoardId, err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// cacheInsert: insert a board entry into the cache. Replaces
// any existing entry with the same id.
func (be *boardEntry) cacheInsert() {
	bytes, e := json.Marshal(be)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal boardEntry %q: %v", be.BoardId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", be.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving board entry %q: %v", be.BoardId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseInsert: insert a new board entry into the database.
// Panics if there is already a saved entry with the given id.
func (be *boardEntry) databaseInsert() {
	body := func(tx *pgx.Tx) (err error) {
		_, err = tx.Exec(
			"INSERT INTO boards (boardId, name, rowCount, colCount, rowList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6)",
			be.BoardId, be.Name, be.Rows, be.Cols, be.RowList, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving board entry %q: %v", be.BoardId, err)
		}
		return
	}
	pgExecute(body)
}
