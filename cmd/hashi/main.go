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

// Web server for the hashi.go solver
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/islandhopper/hashi.go/client"
	"github.com/islandhopper/hashi.go/storage"
)

const cookieName = "hashiID"
const cookiePath = "/"

var startTime = time.Now() // instance start-up time

func main() {
	// establish storage connections
	if _, _, err := storage.Connect(); err != nil {
		log.Printf("Storage connection failure: %v", err)
		shutdown(startupFailureShutdown)
	}
	defer storage.Close()

	// check that the client resources are where we expect
	if err := client.VerifyResources(); err != nil {
		log.Printf("Resource verification failure: %v", err)
		shutdown(startupFailureShutdown)
	}

	// catch signals
	shutdownOnSignal()

	// serve
	http.HandleFunc("/", serveHttp)

	// Heroku environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	err := http.ListenAndServe(port, nil)
	if err != nil {
		log.Printf("Listener failure: %v", err)
		shutdown(listenerFailureShutdown)
	}
}

// serveHttp: top-level dispatch for all requests.
func serveHttp(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("Panic serving %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, fmt.Sprintf("Server error: %v", err), http.StatusInternalServerError)
		}
	}()

	// handle the static resources first, they need no session
	if client.StaticHandler(w, r) {
		return
	}

	log.Printf("Handling %s %s...", r.Method, r.URL.Path)
	session := sessionSelect(w, r)
	switch {
	case r.URL.Path == "/":
		session.homeHandler(w, r)
	case r.URL.Path == "/solver":
		session.solverHandler(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/"):
		session.apiHandler(w, r)
	default:
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

/*

session handling

*/

// A webSession wraps the stored session for this server's
// handlers.
type webSession struct {
	*storage.Session
}

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
//
// Sessions are per-browser and per-protocol: proxies such as
// Heroku's routers deliver both HTTP and HTTPS traffic to the
// same server instance, and browsers will present an HTTP
// cookie to the HTTPS endpoint, so the protocol goes into the
// session ID to keep the two apart.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	proto := "httpx" // absent other indicators, protocol is unknown

	// proxy-transported protocols are specified in a header
	if forwardedProtocol := r.Header.Get("X-Forwarded-Proto"); forwardedProtocol != "" {
		proto = forwardedProtocol
	}

	// check for an existing cookie whose value matches the protocol
	if sc, e := r.Cookie(cookieName); e == nil {
		if m, e := regexp.MatchString(proto+"-[0-9a-z]{3,}", sc.Value); e == nil && m {
			return sc.Value
		}
	}

	// no session cookie or not a valid session cookie,
	// start a new session with a new cookie
	sid := proto + "-" + strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// sessionSelect: find or create the session for the current
// connection.  The stored session is reloaded on every request,
// so multiple server instances can share the same storage.
func sessionSelect(w http.ResponseWriter, r *http.Request) *webSession {
	sessionID := getCookie(w, r)
	session := &webSession{&storage.Session{SID: sessionID, Created: time.Now().Format(time.RFC3339)}}
	boardID := r.URL.Query().Get("board")
	if session.Lookup() {
		log.Printf("Found session %v, board %q, on step %d.", session.SID, session.BID, session.Step)
		if boardID != "" && boardID != session.BID {
			session.StartBoard(boardID)
		} else {
			session.LoadStep()
		}
	} else {
		session.StartBoard(boardID)
	}
	return session
}

/*

page handlers

*/

func (session *webSession) homeHandler(w http.ResponseWriter, r *http.Request) {
	var choices []client.BoardChoice
	for _, info := range storage.ListBoards() {
		choices = append(choices, client.BoardChoice{
			BoardId: info.BoardId,
			Name:    info.Name,
			Size:    fmt.Sprintf("%dx%d", info.Rows, info.Cols),
		})
	}
	body := client.HomePage(session.SID, session.BID, choices)
	sendPage(w, body)
}

func (session *webSession) solverHandler(w http.ResponseWriter, r *http.Request) {
	state := session.Board.State()
	body := client.SolverPage(session.SID, session.BID, &state)
	sendPage(w, body)
}

func sendPage(w http.ResponseWriter, body string) {
	hs := w.Header()
	hs.Add("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

/*

API handlers

*/

func (session *webSession) apiHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/state":
		session.Board.StateHandler(w, r)
	case "/api/summary":
		session.Board.SummaryHandler(w, r)
	case "/api/check":
		session.Board.CheckHandler(w, r)
	case "/api/move":
		if e := session.Board.MoveHandler(w, r); e != nil {
			log.Printf("Move failed, returned error, no session change.")
		} else {
			log.Printf("Move succeeded, returned update.")
			session.AddStep()
		}
	case "/api/solve":
		before := len(session.Board.Bridges())
		session.Board.SolveHandler(w, r)
		if len(session.Board.Bridges()) != before {
			log.Printf("Solver filled in the board, saving the step.")
			session.AddStep()
		} else {
			log.Printf("Solver made no progress, no session change.")
		}
	case "/api/undo":
		session.RemoveStep()
		session.Board.StateHandler(w, r)
	case "/api/reset":
		session.StartBoard(session.BID)
		session.Board.StateHandler(w, r)
	default:
		http.Error(w, apiEndpointUnknown(r.URL.Path), http.StatusNotFound)
	}
}

// apiEndpointUnknown: a pre-serialized JSON Error used when
// someone calls a non-existent API endpoint.
func apiEndpointUnknown(endpoint string) string {
	return `{"scope": "request", "structure": "scope", "condition": "invalid", ` +
		`"message": "No such endpoint: ` + endpoint + `"}`
}

/*

coordinate shutdown across goroutines and top-level server

*/

type shutdownCause int

const (
	unknownShutdown = iota
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
	case caughtSignalShutdown:
		log.Fatal("Exiting: caught signal.")
	case listenerFailureShutdown:
		log.Fatal("Exiting: web server failed.")
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
