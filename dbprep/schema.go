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
	"os"

	"github.com/jackc/pgx"
)

// the current schema version; bump when the tables change
const schemaVersion = 1

// schema statements, applied in order inside one transaction
var schemaUpStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (
		version integer NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS boards (
		boardId text PRIMARY KEY,
		name text NOT NULL,
		rowCount integer NOT NULL,
		colCount integer NOT NULL,
		rowList text[] NOT NULL,
		created timestamptz NOT NULL
	)`,
}

var schemaDownStatements = []string{
	`DROP TABLE IF EXISTS boards`,
	`DROP TABLE IF EXISTS schema_version`,
}

// pgDial opens a database connection from the environment.
// Callers own the close.
func pgDial() (*pgx.Conn, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/hashi?sslmode=disable"
	}
	cfg, err := pgx.ParseURI(url)
	if err != nil {
		return nil, fmt.Errorf("Parse failure on Postgres URI %q: %v", url, err)
	}
	conn, err := pgx.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("Couldn't connect to db at %q: %v", url, err)
	}
	return conn, nil
}

// SchemaUp creates the database tables and records the schema
// version.  Safe to run against an already-prepared database.
func SchemaUp() error {
	conn, err := pgDial()
	if err != nil {
		return err
	}
	defer conn.Close()
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	for _, stmt := range schemaUpStatements {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("Table creation had errors: %v", err)
		}
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES ($1)", schemaVersion); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SchemaDown tears down the database tables.
func SchemaDown() error {
	conn, err := pgDial()
	if err != nil {
		return err
	}
	defer conn.Close()
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	for _, stmt := range schemaDownStatements {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("Table deletion had errors: %v", err)
		}
	}
	return tx.Commit()
}

// SchemaVersion returns the version of the database: 0 when the
// tables have never been created.
func SchemaVersion() (uint64, error) {
	conn, err := pgDial()
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	var exists bool
	err = conn.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables " +
			"WHERE table_name = 'schema_version')").Scan(&exists)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	var version int32
	err = conn.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(version), nil
}
