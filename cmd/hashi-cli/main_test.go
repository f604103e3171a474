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

package main

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/islandhopper/hashi.go/storage"
)

type tLogger struct {
	t   *testing.T
	log bytes.Buffer
}

func (t *tLogger) Write(p []byte) (n int, e error) {
	n, e = t.log.Write(p)
	t.t.Log(string(p[:n-1]))
	return
}

func testSetup(t *testing.T) {
	// log initialization
	tlog := &tLogger{t: t}
	if !testing.Short() {
		log.SetOutput(tlog)
	} else {
		log.SetOutput(os.Stderr)
	}
	// storage initialization
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		t.Skipf("No storage available, skipping: %v", err)
	}
	log.Printf("Connected to cache at %q", cacheId)
	log.Printf("Connected to database at %q", databaseId)
	// each test gets a fresh session
	defaultCookie = ""
}

func TestNullInput(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	null := new(bytes.Buffer)
	err := listener(os.Stdout, null)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
}

func TestMarkdown(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("markdown\nmarkdown bad\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.HasPrefix(result, "Markdown is off\n") {
		t.Errorf("Got %q, expected markdown-off report first", result)
	}
	if !strings.Contains(result, "must be 'on' or 'off'") {
		t.Errorf("Got %q, expected usage complaint for bad argument", result)
	}
}

func TestUnknownCommand(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("frobnicate\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	if !strings.Contains(out.String(), "is not a known command") {
		t.Errorf("Got %q, expected unknown-command usage", out.String())
	}
}

func TestSolveSession(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("reset default\nsolve\ncheck\nback\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.Contains(result, "Solved:\n") {
		t.Errorf("Got %q, expected a solver success", result)
	}
	if !strings.Contains(result, "Solved!\n") {
		t.Errorf("Got %q, expected a passing check", result)
	}
}

func TestAddRemove(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	// the default board has islands at its corners
	in := bytes.NewBufferString("reset default\nadd 1,1 1,3\nremove 1,1 1,3\nadd 1,1 2,2\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.Contains(result, "Add succeeded:\n") {
		t.Errorf("Got %q, expected a successful add", result)
	}
	if !strings.Contains(result, "Remove succeeded:\n") {
		t.Errorf("Got %q, expected a successful remove", result)
	}
	if !strings.Contains(result, "Add failed:") {
		t.Errorf("Got %q, expected a rejected diagonal add", result)
	}
}

func TestBadCoordinates(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("add 1 2\nadd x,1 1,3\nadd 1,1\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	result := out.String()
	if !strings.Contains(result, "is not of the form row,col") {
		t.Errorf("Got %q, expected a coordinate form complaint", result)
	}
	if !strings.Contains(result, "row is not a positive number") {
		t.Errorf("Got %q, expected a row complaint", result)
	}
	if !strings.Contains(result, "requires two island coordinates") {
		t.Errorf("Got %q, expected an argument count complaint", result)
	}
}

func TestBoardsListing(t *testing.T) {
	testSetup(t)
	defer storage.Close()

	in := bytes.NewBufferString("boards\n")
	out := new(bytes.Buffer)
	err := listener(out, in)
	if err != nil {
		t.Fatalf("CLI failure: %v", err)
	}
	if !strings.Contains(out.String(), storage.DefaultBoardID) {
		t.Errorf("Got %q, expected the default board in the listing", out.String())
	}
}
