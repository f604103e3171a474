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

// Command-line client for hashi.go board utilities
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/islandhopper/hashi.go/puzzle"
	"github.com/islandhopper/hashi.go/storage"
)

func main() {
	// establish storage connections
	if _, _, err := storage.Connect(); err != nil {
		log.Printf("Storage connection failure: %v", err)
		shutdown(startupFailureShutdown)
	}
	defer storage.Close()

	// catch signals
	shutdownOnSignal()

	// serve
	err := listener(os.Stdout, os.Stdin)
	if err != nil {
		log.Printf("CLI failure: %v", err)
		shutdown(listenerFailureShutdown)
	}
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	// (see http://stackoverflow.com/questions/22744443/ for source)
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(out, "hashi> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if prompt {
					fmt.Fprintf(out, " (read error)\n")
				}
				return err
			}
			// end of input
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		}
		r := &request{inline: strings.Trim(scanner.Text(), " \t\r\n")}
		args := strings.Split(r.inline, " ")
		r.command = strings.ToLower(args[0])
		switch r.command {
		case "":
			continue
		case "quit":
			fallthrough
		case "exit":
			return nil
		}
		for _, arg := range args[1:] {
			if len(arg) > 0 {
				r.args = append(r.args, arg)
			}
		}
		dispatchCommand(out, r)
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(*storage.Session, io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"add", "r,c r,c [count]", "add bridges between two islands", addHandler},
		{"back", "", "go back one solution step", backHandler},
		{"boards", "", "list the stored boards", boardsHandler},
		{"check", "", "check whether the board is solved", checkHandler},
		{"import", "boardID name file", "store a board read from a file", importHandler},
		{"load", "[boardID]", "start solving a stored board", stateHandler},
		{"markdown", "on|off", "format output in Markdown", markdownHandler},
		{"pending", "", "show each island's remaining count", pendingHandler},
		{"remove", "r,c r,c [count]", "remove bridges between two islands", removeHandler},
		{"reset", "[boardID]", "reset this or another board", stateHandler},
		{"show", "", "show current board state", stateHandler},
		{"session", "[sessionID]", "get/set session info", summaryHandler},
		{"solve", "", "solve the board from here", solveHandler},
		{"state", "", "show current board state", stateHandler},
		{"summary", "", "show current session summary", summaryHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	session := sessionSelect(w, r)
	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(session, w, r)
	}
}

/*

request handlers

*/

// client state
var useMarkdown = false

func markdownHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) > 0 {
		switch strings.ToLower(r.args[0]) {
		case "on":
			useMarkdown = true
			stateHandler(session, w, r)
		case "off":
			useMarkdown = false
			stateHandler(session, w, r)
		default:
			usageHandler(fmt.Sprintf("argument to %s must be 'on' or 'off'", r.command), w, r)
		}
	} else {
		if useMarkdown {
			fmt.Fprintf(w, "Markdown is on\n")
		} else {
			fmt.Fprintf(w, "Markdown is off\n")
		}
	}
}

func backHandler(session *storage.Session, w io.Writer, r *request) {
	session.RemoveStep()
	stateHandler(session, w, r)
}

// parsePosition reads a 1-based "row,col" argument and converts
// it to the 0-based position the board operations expect.
func parsePosition(arg string) (puzzle.Position, error) {
	var pos puzzle.Position
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return pos, fmt.Errorf("(%s) is not of the form row,col", arg)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil || row < 1 {
		return pos, fmt.Errorf("(%s) row is not a positive number", arg)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil || col < 1 {
		return pos, fmt.Errorf("(%s) column is not a positive number", arg)
	}
	pos.Row, pos.Col = row-1, col-1
	return pos, nil
}

// bridgeArgs reads the shared argument form of add and remove:
// two 1-based island coordinates and an optional count.
func bridgeArgs(w io.Writer, r *request) (a, b puzzle.Position, count int, ok bool) {
	if len(r.args) != 2 && len(r.args) != 3 {
		usageHandler(fmt.Sprintf("%s requires two island coordinates", r.command), w, r)
		return
	}
	var err error
	if a, err = parsePosition(r.args[0]); err != nil {
		usageHandler(fmt.Sprintf("%s first island %v", r.command, err), w, r)
		return
	}
	if b, err = parsePosition(r.args[1]); err != nil {
		usageHandler(fmt.Sprintf("%s second island %v", r.command, err), w, r)
		return
	}
	count = 1
	if len(r.args) == 3 {
		if count, err = strconv.Atoi(r.args[2]); err != nil {
			usageHandler(fmt.Sprintf("%s count (%s) must be a number", r.command, r.args[2]), w, r)
			return
		}
	}
	ok = true
	return
}

func addHandler(session *storage.Session, w io.Writer, r *request) {
	a, b, count, ok := bridgeArgs(w, r)
	if !ok {
		return
	}
	if e := session.Board.AddBridge(a, b, count); e != nil {
		fmt.Fprintf(w, "Add failed: %v\n", e)
	} else {
		session.AddStep()
		fmt.Fprintf(w, "Add succeeded:\n")
		stateHandler(session, w, r)
	}
}

func removeHandler(session *storage.Session, w io.Writer, r *request) {
	a, b, count, ok := bridgeArgs(w, r)
	if !ok {
		return
	}
	if e := session.Board.RemoveBridge(a, b, count); e != nil {
		fmt.Fprintf(w, "Remove failed: %v\n", e)
	} else {
		session.AddStep()
		fmt.Fprintf(w, "Remove succeeded:\n")
		stateHandler(session, w, r)
	}
}

func solveHandler(session *storage.Session, w io.Writer, r *request) {
	if session.Board.Solve() {
		session.AddStep()
		fmt.Fprintf(w, "Solved:\n")
		stateHandler(session, w, r)
	} else {
		fmt.Fprintf(w, "No solution from this position.\n")
	}
}

func checkHandler(session *storage.Session, w io.Writer, r *request) {
	if err := session.Board.FullCheck(); err != nil {
		fmt.Fprintf(w, "Not solved: %v\n", err)
	} else {
		fmt.Fprintf(w, "Solved!\n")
	}
}

func stateHandler(session *storage.Session, w io.Writer, r *request) {
	if useMarkdown {
		fmt.Fprintf(w, "%s", session.Board.GridMarkdown())
	} else {
		fmt.Fprintf(w, "%s", session.Board.GridString())
	}
}

func pendingHandler(session *storage.Session, w io.Writer, r *request) {
	fmt.Fprintf(w, "%s\n", session.Board.PendingString())
}

func summaryHandler(session *storage.Session, w io.Writer, r *request) {
	fmt.Fprintf(w, "Session %q solving board %q on solution step %d\n",
		session.SID, session.BID, session.Step)
	sum := session.Board.Summary()
	islands, pending := 0, 0
	for _, isl := range session.Board.Islands() {
		islands++
		if session.Board.Pending(isl.Pos) > 0 {
			pending++
		}
	}
	fmt.Fprintf(w, "Grid: %dx%d; Islands: %d; Unsatisfied islands: %d; Moves: %d\n",
		sum.Rows, sum.Cols, islands, pending, len(sum.Moves))
}

func boardsHandler(session *storage.Session, w io.Writer, r *request) {
	for _, info := range storage.ListBoards() {
		fmt.Fprintf(w, "%12s  %dx%d, %d islands\t%s\n",
			info.BoardId, info.Rows, info.Cols, info.Islands, info.Name)
	}
}

func importHandler(session *storage.Session, w io.Writer, r *request) {
	if len(r.args) != 3 {
		usageHandler(fmt.Sprintf("%s requires a board ID, a name, and a file", r.command), w, r)
		return
	}
	f, err := os.Open(r.args[2])
	if err != nil {
		fmt.Fprintf(w, "Import failed: %v\n", err)
		return
	}
	defer f.Close()
	p, err := puzzle.Read(f)
	if err != nil {
		fmt.Fprintf(w, "Import failed: %v\n", err)
		return
	}
	storage.AddBoard(r.args[0], r.args[1], p)
	fmt.Fprintf(w, "Stored board %q (%s).\n", r.args[0], r.args[1])
}

func usageHandler(msg string, w io.Writer, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-15s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Panic executing %q: %v\n", r.inline, err)
	log.Printf("Server error executing %q: %v\n", r.inline, err)
}

/*

session handling

*/

// cookie for the command line
var defaultCookie string

var startTime = time.Now() // instance start-up time

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
func getCookie(w io.Writer, r *request) string {
	// look to see if the user is specifying a cookie
	if r.command == "session" && len(r.args) > 0 {
		defaultCookie = r.args[0]
	}

	// look for an existing session cookie
	if len(defaultCookie) != 0 {
		return defaultCookie
	}

	// no session cookie: start a new session with a new ID
	// poor man's UUID for the session in local mode: time since startup.
	sid := strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	log.Printf("No session cookie found, created new session ID %q", sid)
	defaultCookie = sid
	return sid
}

// sessionSelect: find or create the session for the current connection.
func sessionSelect(w io.Writer, r *request) *storage.Session {
	id := getCookie(w, r)
	// check to see if this is a force reset of the session
	forceReset, resetID := r.command == "reset" || r.command == "load", ""
	if forceReset && len(r.args) > 0 {
		resetID = r.args[0]
	}
	// create an in-memory session with this cookie
	session := &storage.Session{SID: id, Created: time.Now().Format(time.RFC3339)}
	// load session from storage if possible, otherwise just initialize it
	if session.Lookup() {
		log.Printf("Found session %v, board %q, on step %d.", session.SID, session.BID, session.Step)
		if forceReset {
			session.StartBoard(resetID)
		} else {
			session.LoadStep()
		}
	} else if forceReset {
		session.StartBoard(resetID)
	} else {
		session.StartBoard(storage.DefaultBoardID)
	}
	return session
}

/*

coordinate shutdown across goroutines and top-level server

*/

type shutdownCause int

const (
	unknownShutdown = iota
	runtimeFailureShutdown
	startupFailureShutdown
	caughtSignalShutdown
	listenerFailureShutdown
)

// for testing, allow alternate forms of shutdown
var alternateShutdown func(reason shutdownCause)

// shutdown: process exit with logging.
func shutdown(reason shutdownCause) {
	// release the storage connections before exit
	storage.Close()

	// for testing: run alternateShutdown instead, if defined
	if alternateShutdown != nil {
		alternateShutdown(reason)
		panic(reason) // shouldn't get here
	}

	// log reason for shutdown and exit
	switch reason {
	case unknownShutdown:
		log.Fatal("Exiting: normal shutdown.")
	case startupFailureShutdown:
		log.Fatal("Exiting: initialization failure.")
	case runtimeFailureShutdown:
		log.Fatal("Exiting: runtime failure.")
	case caughtSignalShutdown:
		log.Fatal("Exiting: caught signal.")
	case listenerFailureShutdown:
		log.Fatal("Exiting: command listener failed.")
	default:
		log.Fatal("Exiting: unknown cause.")
	}
}

// shutdownOnSignal: catch signals and exit.
func shutdownOnSignal() {
	// based on example in os.signal godoc
	c := make(chan os.Signal, 1)
	signal.Notify(c) // die on all signals

	go func() {
		s := <-c
		log.Printf("Received OS-level signal: %v", s)
		shutdown(caughtSignalShutdown)
	}()
}
