package main

import (
	"io"
	"math"
	"sync/atomic"
	"time"
)

//
// Constants
//

const VERSION = "1.0.0"

const defaultPrompt = "% "
const defaultInputPrompt = "? "

//
// noLine is the "none" sentinel handed back by the program store
// when there is no first/next line
//

const noLine = -1

const minLineNumber = 0
const maxLineNumber = math.MaxInt32

const maxLineLen = 4096

const btreeDegree = 8

const colorRedSeq = "\033[31m"
const colorResetSeq = "\033[0m"
const colorInverseVideoSeq = "\033[7m"

//
// Token values.  Keywords start above the rune range, so single
// character operators can use their own rune as the token value
//

const (
	EOL = iota + 0x110000
	INTEGER
	IDENT
	ILLEGAL
	CLEAR
	DELETE
	END
	GOTO
	HELP
	IF
	INPUT
	LET
	LIST
	PRINT
	QUIT
	REM
	RUN
	STATS
	THEN
	TRACE
)

const firstKeyword = CLEAR
const lastKeyword = TRACE

var tokenNames = []string{"CLEAR", "DELETE", "END", "GOTO", "HELP", "IF",
	"INPUT", "LET", "LIST", "PRINT", "QUIT", "REM", "RUN", "STATS", "THEN",
	"TRACE"}

//
// Type definitions
//

type token struct {
	token int    // keyword, INTEGER, IDENT, ILLEGAL or operator rune
	text  string // source text of the lexeme
	value int    // INTEGER only
	pos   int    // byte offset of the lexeme in the line
}

type tokenStream struct {
	tokens []token
	idx    int
}

//
// A stored program line.  The parsed statement is nil until the
// caller attaches one, and is dropped whenever the text changes
//

type lineNode struct {
	stmtNo int
	line   string
	stmt   statement
}

//
// Control transfer codes returned by statement execution
//

type control int

const (
	ctlContinue control = iota
	ctlJump
	ctlHalt
	ctlFailure
)

type outcome struct {
	ctl    control
	target int   // ctlJump only
	err    error // ctlFailure only
}

//
// Anything that can hand us one line of text.  The liner-backed
// reader prompts, the plain one does not
//

type lineReader interface {
	readLine(prompt string, history bool) (string, error)
}

//
// A session is everything one command line can touch: the stored
// program, the variables, and where PRINT and INPUT go
//

type session struct {
	program *program
	state   *evalState
	out     io.Writer
	in      lineReader
	exiting bool
}

type basicErrorInfo struct {
	msg  string
	file string
	line int
}

//
// Global variables
//

var buildTimestampStr string

//
// Persistent interpreter settings
//

var g struct {
	prompt      string
	inputPrompt string
	historyFile string
	interactive bool
	printStats  bool
	traceExec   bool
	traceVars   bool
	traceDump   bool
	interrupted atomic.Bool
}

//
// Runtime statistics for executing program
//

var s struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}

//
// This map is used to keep track of variables which are being traced
//

var tracedVarsMap map[string]bool

var keywordMap map[string]int
