package client

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/islandhopper/hashi.go/puzzle"
)

/*

solver pages

*/

// A templateSolverPage contains the values to fill the solver
// page template.
type templateSolverPage struct {
	SessionID, BoardID        string
	Title, TopHead            string
	IconFile, CssFile, JsFile string
	Board                     templateBoard
	Solved                    bool
	ApplicationFooter         string
}

// templateBoard is the structure expected by the board grid
// section of the solver page template.
type templateBoard [][]templateBoardCell

// A templateBoardCell contains the cell's coordinates, displayed
// value, and CSS styling class as expected by the board grid
// section of the solver page template.
type templateBoardCell struct {
	Row, Col int
	Value    template.HTML
	Class    string
}

// add solver statics to the static list
func init() {
	staticResourcePaths["/solver.js"] = filepath.Join("solver", "board.js")
	staticResourcePaths["/solver.css"] = filepath.Join("solver", "board.css")
}

// SolverPage executes the solver page template over the passed
// session and board state, and returns the solver page content
// as a string.
func SolverPage(sessionID string, boardID string, state *puzzle.State) string {
	tb, err := hashiTemplateBoard(state)
	if err != nil {
		return errorPage(err)
	}

	tsp := templateSolverPage{
		SessionID:         sessionID,
		BoardID:           boardID,
		Title:             fmt.Sprintf("%s: Solver", brandName),
		TopHead:           "Board Solver",
		IconFile:          iconPath,
		CssFile:           "/solver.css",
		JsFile:            "/solver.js",
		Board:             tb,
		Solved:            state.Solved,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("solver")
	if err != nil {
		return errorPage(fmt.Errorf("Couldn't load the %q template: %v", "solver", err))
	}
	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tsp)
	if err != nil {
		return errorPage(err)
	}
	return buf.String()
}

/*

board grid template

*/

// bridge drawing glyphs for web pages
var bridgeGlyphs = map[puzzle.Orientation][2]string{
	puzzle.Horizontal: {"─", "═"},
	puzzle.Vertical:   {"│", "║"},
}

// hashiTemplateBoard takes a board state and returns the
// appropriate templateBoard.  Each island cell shows its
// required degree; each cell crossed by a bridge shows the
// bridge's glyph.  Errors mean the state's shape is implausible.
func hashiTemplateBoard(state *puzzle.State) (templateBoard, error) {
	if state == nil || state.Rows < 1 || state.Cols < 1 {
		return nil, fmt.Errorf("Can't generate a board grid from state %+v", state)
	}
	rows := make(templateBoard, state.Rows)
	for i := range rows {
		rows[i] = make([]templateBoardCell, state.Cols)
		for j := range rows[i] {
			rows[i][j] = templateBoardCell{
				Row:   i + 1,
				Col:   j + 1,
				Value: template.HTML("&nbsp;"),
				Class: "water",
			}
		}
	}
	for _, isl := range state.Islands {
		if isl.Pos.Row >= state.Rows || isl.Pos.Col >= state.Cols {
			return nil, fmt.Errorf("Island %v is outside the %dx%d grid",
				isl.Pos, state.Rows, state.Cols)
		}
		rows[isl.Pos.Row][isl.Pos.Col].Value = template.HTML(fmt.Sprint(isl.Required))
		rows[isl.Pos.Row][isl.Pos.Col].Class = "island"
	}
	for _, b := range state.Bridges {
		glyph := bridgeGlyphs[b.Orientation][b.Count-1]
		class := fmt.Sprintf("bridge-%d", b.Count)
		if b.Orientation == puzzle.Horizontal {
			for c := b.A.Col + 1; c < b.B.Col; c++ {
				rows[b.A.Row][c].Value = template.HTML(glyph)
				rows[b.A.Row][c].Class = class
			}
		} else {
			for r := b.A.Row + 1; r < b.B.Row; r++ {
				rows[r][b.A.Col].Value = template.HTML(glyph)
				rows[r][b.A.Col].Class = class
			}
		}
	}
	return rows, nil
}

/*

error pages

*/

// A templateErrorPage contains the values to fill the error page
// template.
type templateErrorPage struct {
	Title, TopHead, Message string
	IconFile, ReportBugPage string
	ApplicationFooter       string
}

// return error page content
func errorPage(e error) string {
	tep := templateErrorPage{
		Title:             fmt.Sprintf("%s: Error", brandName),
		TopHead:           "Error Page",
		Message:           e.Error(),
		IconFile:          iconPath,
		ReportBugPage:     reportBugPath,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("error")
	if err != nil {
		return fmt.Sprintf("Couldn't load the %q template: %v", "error", err)
	}

	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, tep)
	if err != nil {
		return fmt.Sprintf("A templating error has occurred: %v", err)
	}
	return buf.String()
}

/*

home page

*/

// A BoardChoice is one board the home page offers.
type BoardChoice struct {
	BoardId string
	Name    string
	Size    string
}

// A templateHomePage contains the values to fill the home page
// template.
type templateHomePage struct {
	SessionID, BoardID        string
	Title, TopHead            string
	IconFile, CssFile, JsFile string
	Boards                    []BoardChoice
	ApplicationFooter         string
}

// add home statics to the static list
func init() {
	staticResourcePaths["/home.js"] = filepath.Join("home", "home.js")
	staticResourcePaths["/home.css"] = filepath.Join("home", "home.css")
}

// HomePage executes the home page template over the passed
// session and board directory, and returns the home page content
// as a string.  If there is an error, what's returned is the
// error page content as a string.
func HomePage(sessionID string, boardID string, boards []BoardChoice) string {
	thp := templateHomePage{
		SessionID:         sessionID,
		BoardID:           boardID,
		Title:             fmt.Sprintf("%s: Home", brandName),
		TopHead:           brandName,
		IconFile:          iconPath,
		CssFile:           "/home.css",
		JsFile:            "/home.js",
		Boards:            boards,
		ApplicationFooter: applicationFooter(),
	}

	tmpl, err := loadPageTemplate("home")
	if err != nil {
		return errorPage(fmt.Errorf("Couldn't load the %q template: %v", "home", err))
	}
	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, thp)
	if err != nil {
		return errorPage(err)
	}
	return buf.String()
}

/*

application footer

*/

// applicationFooter - the application footer that shows at the
// bottom of all pages.
func applicationFooter() string {
	appName := os.Getenv(applicationNameEnvVar)
	appEnv := os.Getenv(applicationEnvEnvVar)
	appVersion := os.Getenv(applicationVersionEnvVar)
	appBuild := os.Getenv(applicationBuildEnvVar)

	if appName == "" {
		appName = brandName
	}

	if appEnv == "" {
		appEnv = "local"
	}

	if appVersion != "" {
		appVersion = " " + appVersion
	}
	if len(appBuild) >= 7 {
		appBuild = appBuild[:7]
	}

	switch appEnv {
	case "local":
		return "[" + appName + " local]"
	case "dev":
		return "[" + appName + " CI/CD]"
	case "stg", "prd":
		return "[" + appName + appVersion + " <" + appBuild + ">]"
	}
	return "[" + appName + " <??>]"
}
