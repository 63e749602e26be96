package main

import (
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

//
// Build the keyword map.  Keywords are matched without regard to
// case, so the map is keyed by the upper case spelling
//

func initKeywords() {

	keywordMap = make(map[string]int)

	for tok := firstKeyword; tok <= lastKeyword; tok++ {
		keywordMap[getTokenName(tok)] = tok
	}
}

func getTokenName(tok int) string {

	switch {
	case tok >= firstKeyword && tok <= lastKeyword:
		return tokenNames[tok-firstKeyword]

	case tok == INTEGER:
		return "integer"

	case tok == IDENT:
		return "identifier"

	case tok == EOL:
		return "end of line"

	case tok == ILLEGAL:
		return "illegal character"

	default:
		return string(rune(tok))
	}
}

//
// Split a line into tokens.  The lexer never fails: anything it does
// not recognize comes back as an ILLEGAL token, and it is up to the
// parser to complain, since REM is allowed to contain anything at all
//

func scanLine(line string) []token {

	var s scanner.Scanner
	var tokens []token

	s.Init(strings.NewReader(line))
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	s.IsIdentRune = basicIdent
	s.Error = dummyScannerError

	for {
		t, eof := getLexeme(&s)
		if eof {
			break
		}
		tokens = append(tokens, t)
	}

	return tokens
}

func getLexeme(s *scanner.Scanner) (token, bool) {

	tok := s.Scan()
	txt := s.TokenText()

	if tok == scanner.EOF {
		return token{}, true
	}

	t := token{text: txt, pos: s.Position.Offset}

	switch tok {
	case scanner.Ident:
		if keyword, ok := keywordMap[strings.ToUpper(txt)]; ok {
			t.token = keyword
		} else {
			t.token = IDENT
		}

	case scanner.Int:

		//
		// text/scanner will happily hand us 0x1f or 0b101, and
		// numbers too large for an int.  Neither is a BASIC integer
		//

		n, err := strconv.ParseInt(txt, 10, 0)
		if err != nil {
			t.token = ILLEGAL
		} else {
			t.token = INTEGER
			t.value = int(n)
		}

	case '+', '-', '*', '/', '(', ')', '=', '<', '>':
		t.token = int(tok)

	default:
		t.token = ILLEGAL
	}

	return t, false
}

//
// This is a dummy to suppress reporting of errors by the scanner
//

func dummyScannerError(s *scanner.Scanner, msg string) {
}

//
// Ident predicate routine for text/scanner.  A variable name is a
// letter followed by letters and digits
//

func basicIdent(ch rune, pos int) bool {

	if pos == 0 {
		return unicode.IsLetter(ch)
	}

	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

//
// Token stream helpers used by the statement and expression parsers
//

func newTokenStream(tokens []token) *tokenStream {
	return &tokenStream{tokens: tokens}
}

func (ts *tokenStream) hasMoreTokens() bool {
	return ts.idx < len(ts.tokens)
}

//
// peek returns an EOL token rather than failing at the end of input,
// which lets the parsers treat "missing" like any other wrong token
//

func (ts *tokenStream) peek() token {

	if !ts.hasMoreTokens() {
		return token{token: EOL, pos: -1}
	}

	return ts.tokens[ts.idx]
}

func (ts *tokenStream) nextToken() token {

	t := ts.peek()
	if t.token != EOL {
		ts.idx++
	}

	return t
}

func (ts *tokenStream) requireEnd(keyword int) error {

	if ts.hasMoreTokens() {
		t := ts.peek()
		return syntaxErrorf("%s: %s %q", getTokenName(keyword), EEXTRATOKENS,
			t.text)
	}

	return nil
}

//
// Prettify the input string.  Eliminate leading and trailing
// whitespace, and replace runs of whitespace elsewhere with a
// single space character
//

func trimWhitespace(s string) string {

	return strings.Join(strings.Fields(s), " ")
}
