package main

import (
	"fmt"
)

//
// Manifest constants for the interpreter's error messages.  Most
// syntax errors carry a message specific to the statement being
// parsed; these are the ones shared across statements
//

const (
	EINVALIDCOMMAND    = "Invalid command"
	EINVALIDSTATEMENT  = "Invalid statement type"
	EILLEGALLINENUMBER = "Illegal line number"
	EEXTRATOKENS       = "Unexpected input after statement"
	EMISSINGOPERAND    = "Missing operand"
	EDIVISIONBYZERO    = "Division by 0"
	EINPUTNOTINTEGER   = "INPUT requires integer value"
	EENDOFINPUT        = "End of input"
	EINTERRUPTED       = "Interrupted"
	ELINETOOLONG       = "Line too long"
)

//
// The kinds of failure a line or a run can end with.  An errorKind
// is itself an error, so callers can test for one with errors.Is
// no matter how the message was worded
//

type errorKind int

const (
	syntaxError errorKind = iota
	undefinedLine
	undefinedVariable
	typeError
	arithmeticError
	interruptError
)

var strErrorKind = []string{
	"syntax error",
	"undefined line",
	"undefined variable",
	"type error",
	"arithmetic error",
	"interrupted",
}

func (k errorKind) Error() string {
	return strErrorKind[k]
}

//
// basicError is what gets reported to the user.  stmtNo is filled in
// by the RUN loop when the failure happened inside a stored program
//

type basicError struct {
	kind   errorKind
	msg    string
	stmtNo int
}

func newError(kind errorKind, f string, args ...any) *basicError {

	msg := f
	if len(args) > 0 {
		msg = fmt.Sprintf(f, args...)
	}

	return &basicError{kind: kind, msg: msg, stmtNo: noLine}
}

func (e *basicError) Error() string {

	if e.stmtNo != noLine {
		return fmt.Sprintf("%s at line %d", e.msg, e.stmtNo)
	}

	return e.msg
}

func (e *basicError) Unwrap() error {
	return e.kind
}

func syntaxErrorf(f string, args ...any) error {
	return newError(syntaxError, f, args...)
}
