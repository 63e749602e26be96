package main

import (
	"strings"
)

//
// Every statement and command implements this.  execute never
// panics for user errors and never unwinds to transfer control:
// whatever happens is described by the outcome it returns
//

type statement interface {
	execute(ss *session) outcome
	keyword() int
}

//
// Statements which may be stored under a line number
//

type remStmt struct{}

type letStmt struct {
	name string
	exp  expression
}

type printStmt struct {
	exp expression
}

type inputStmt struct {
	name string
}

type endStmt struct{}

type gotoStmt struct {
	target int
}

type ifStmt struct {
	lhs    expression
	op     rune
	rhs    expression
	target int
}

//
// Commands, which only make sense typed at the prompt
//

type runStmt struct{}

type listStmt struct {
	first int
	last  int
}

type clearStmt struct{}

type deleteStmt struct {
	first int
	last  int
}

type traceStmt struct {
	switches []string
}

type statsStmt struct{}

type helpStmt struct{}

type quitStmt struct{}

func (*remStmt) keyword() int    { return REM }
func (*letStmt) keyword() int    { return LET }
func (*printStmt) keyword() int  { return PRINT }
func (*inputStmt) keyword() int  { return INPUT }
func (*endStmt) keyword() int    { return END }
func (*gotoStmt) keyword() int   { return GOTO }
func (*ifStmt) keyword() int     { return IF }
func (*runStmt) keyword() int    { return RUN }
func (*listStmt) keyword() int   { return LIST }
func (*clearStmt) keyword() int  { return CLEAR }
func (*deleteStmt) keyword() int { return DELETE }
func (*traceStmt) keyword() int  { return TRACE }
func (*statsStmt) keyword() int  { return STATS }
func (*helpStmt) keyword() int   { return HELP }
func (*quitStmt) keyword() int   { return QUIT }

type stmtParser func(ts *tokenStream) (statement, error)

var deferredParsers = map[int]stmtParser{
	REM:   parseRem,
	LET:   parseLet,
	PRINT: parsePrint,
	INPUT: parseInput,
	END:   parseEnd,
	GOTO:  parseGoto,
	IF:    parseIf,
}

var immediateParsers = map[int]stmtParser{
	RUN:    parseRun,
	LIST:   parseList,
	CLEAR:  parseClear,
	DELETE: parseDelete,
	TRACE:  parseTrace,
	STATS:  parseStats,
	HELP:   parseHelp,
	QUIT:   parseQuit,
	LET:    parseLet,
	PRINT:  parsePrint,
	INPUT:  parseInput,
}

//
// Parse the statement part of a numbered line.  The stream is
// positioned at the statement keyword
//

func parseStatement(ts *tokenStream) (statement, error) {

	return parseWith(ts, deferredParsers, EINVALIDSTATEMENT)
}

//
// Parse a line typed without a line number
//

func parseCommand(ts *tokenStream) (statement, error) {

	return parseWith(ts, immediateParsers, EINVALIDCOMMAND)
}

func parseWith(ts *tokenStream, parsers map[int]stmtParser,
	invalid string) (statement, error) {

	t := ts.nextToken()

	parse, ok := parsers[t.token]
	if !ok {
		return nil, syntaxErrorf(invalid)
	}

	return parse(ts)
}

func parseRem(ts *tokenStream) (statement, error) {

	//
	// Anything goes in a remark, so just swallow the rest
	//

	for ts.hasMoreTokens() {
		ts.nextToken()
	}

	return &remStmt{}, nil
}

func parseLet(ts *tokenStream) (statement, error) {

	name, err := parseVariableName(ts, LET)
	if err != nil {
		return nil, err
	}

	if equals := ts.nextToken(); equals.token != '=' {
		return nil, syntaxErrorf("LET requires =")
	}

	if !ts.hasMoreTokens() {
		return nil, syntaxErrorf("LET requires expression")
	}

	exp, err := parseExp(ts)
	if err != nil {
		return nil, err
	}

	return &letStmt{name: name, exp: exp}, nil
}

func parsePrint(ts *tokenStream) (statement, error) {

	if !ts.hasMoreTokens() {
		return nil, syntaxErrorf("PRINT requires expression")
	}

	exp, err := parseExp(ts)
	if err != nil {
		return nil, err
	}

	return &printStmt{exp: exp}, nil
}

func parseInput(ts *tokenStream) (statement, error) {

	name, err := parseVariableName(ts, INPUT)
	if err != nil {
		return nil, err
	}

	if err := ts.requireEnd(INPUT); err != nil {
		return nil, err
	}

	return &inputStmt{name: name}, nil
}

func parseEnd(ts *tokenStream) (statement, error) {

	if err := ts.requireEnd(END); err != nil {
		return nil, err
	}

	return &endStmt{}, nil
}

//
// Only the syntax of the target is checked here.  Whether the line
// exists is decided when the jump is taken, so forward references
// to lines not yet typed in are fine
//

func parseGoto(ts *tokenStream) (statement, error) {

	target, err := parseTargetLine(ts, GOTO)
	if err != nil {
		return nil, err
	}

	if err := ts.requireEnd(GOTO); err != nil {
		return nil, err
	}

	return &gotoStmt{target: target}, nil
}

func parseIf(ts *tokenStream) (statement, error) {

	if !ts.hasMoreTokens() {
		return nil, syntaxErrorf("IF requires expression operator expression")
	}

	lhs, err := readE(ts)
	if err != nil {
		return nil, err
	}

	op := ts.nextToken()
	if op.token != '<' && op.token != '>' && op.token != '=' {
		return nil, syntaxErrorf("IF requires one of <, > or =")
	}

	rhs, err := readE(ts)
	if err != nil {
		return nil, err
	}

	if then := ts.nextToken(); then.token != THEN {
		return nil, syntaxErrorf("IF requires THEN and line number")
	}

	target, err := parseTargetLine(ts, IF)
	if err != nil {
		return nil, err
	}

	if err := ts.requireEnd(IF); err != nil {
		return nil, err
	}

	return &ifStmt{lhs: lhs, op: rune(op.token), rhs: rhs, target: target}, nil
}

func parseRun(ts *tokenStream) (statement, error) {

	if err := ts.requireEnd(RUN); err != nil {
		return nil, err
	}

	return &runStmt{}, nil
}

func parseList(ts *tokenStream) (statement, error) {

	if !ts.hasMoreTokens() {
		return &listStmt{first: minLineNumber, last: maxLineNumber}, nil
	}

	first, last, err := parseLineRange(ts, LIST)
	if err != nil {
		return nil, err
	}

	return &listStmt{first: first, last: last}, nil
}

func parseClear(ts *tokenStream) (statement, error) {

	if err := ts.requireEnd(CLEAR); err != nil {
		return nil, err
	}

	return &clearStmt{}, nil
}

func parseDelete(ts *tokenStream) (statement, error) {

	if !ts.hasMoreTokens() {
		return nil, syntaxErrorf("DELETE requires line number(s)")
	}

	first, last, err := parseLineRange(ts, DELETE)
	if err != nil {
		return nil, err
	}

	return &deleteStmt{first: first, last: last}, nil
}

func parseTrace(ts *tokenStream) (statement, error) {

	var switches []string

	if !ts.hasMoreTokens() {
		return nil, syntaxErrorf("TRACE requires EXEC, VARS, DUMP or a" +
			" variable name")
	}

	for ts.hasMoreTokens() {
		name, err := parseVariableName(ts, TRACE)
		if err != nil {
			return nil, err
		}
		switches = append(switches, name)
	}

	return &traceStmt{switches: switches}, nil
}

func parseStats(ts *tokenStream) (statement, error) {

	if err := ts.requireEnd(STATS); err != nil {
		return nil, err
	}

	return &statsStmt{}, nil
}

func parseHelp(ts *tokenStream) (statement, error) {

	if err := ts.requireEnd(HELP); err != nil {
		return nil, err
	}

	return &helpStmt{}, nil
}

func parseQuit(ts *tokenStream) (statement, error) {

	if err := ts.requireEnd(QUIT); err != nil {
		return nil, err
	}

	return &quitStmt{}, nil
}

//
// Helper functions for the statement parsers
//

func parseVariableName(ts *tokenStream, keyword int) (string, error) {

	t := ts.nextToken()

	switch {
	case t.token == IDENT:
		return t.text, nil

	case t.token == EOL:
		return "", syntaxErrorf("%s requires variable name",
			getTokenName(keyword))

	case t.token >= firstKeyword && t.token <= lastKeyword:
		return "", syntaxErrorf("%s: %s is a reserved word",
			getTokenName(keyword), strings.ToUpper(t.text))
	}

	return "", syntaxErrorf("%s: invalid variable name %q",
		getTokenName(keyword), t.text)
}

func parseTargetLine(ts *tokenStream, keyword int) (int, error) {

	t := ts.nextToken()

	if t.token == EOL {
		return 0, syntaxErrorf("%s requires line number",
			getTokenName(keyword))
	}

	if t.token != INTEGER || !validLineNumber(t.value) {
		return 0, syntaxErrorf("%s requires valid line number",
			getTokenName(keyword))
	}

	return t.value, nil
}

//
// n or n-m, both ends inclusive
//

func parseLineRange(ts *tokenStream, keyword int) (int, int, error) {

	first, err := parseTargetLine(ts, keyword)
	if err != nil {
		return 0, 0, err
	}

	last := first

	if ts.peek().token == '-' {
		ts.nextToken()
		if last, err = parseTargetLine(ts, keyword); err != nil {
			return 0, 0, err
		}
	}

	if err := ts.requireEnd(keyword); err != nil {
		return 0, 0, err
	}

	if last < first {
		return 0, 0, syntaxErrorf("%s: %s(s)", getTokenName(keyword),
			EILLEGALLINENUMBER)
	}

	return first, last, nil
}

func validLineNumber(n int) bool {

	return n >= minLineNumber && n <= maxLineNumber
}
