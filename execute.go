package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

//
// Outcome constructors
//

func continueOutcome() outcome {
	return outcome{ctl: ctlContinue}
}

func jumpOutcome(target int) outcome {
	return outcome{ctl: ctlJump, target: target}
}

func haltOutcome() outcome {
	return outcome{ctl: ctlHalt}
}

func failOutcome(err error) outcome {
	return outcome{ctl: ctlFailure, err: err}
}

func (o outcome) String() string {

	switch o.ctl {
	case ctlContinue:
		return "continue"

	case ctlJump:
		return "jump " + strconv.Itoa(o.target)

	case ctlHalt:
		return "halt"

	case ctlFailure:
		return "failure: " + o.err.Error()
	}

	return "unknown"
}

func (stmt *remStmt) execute(ss *session) outcome {

	return continueOutcome()
}

func (stmt *letStmt) execute(ss *session) outcome {

	value, err := stmt.exp.eval(ss.state)
	if err != nil {
		return failOutcome(err)
	}

	ss.state.setValue(stmt.name, value)

	return continueOutcome()
}

func (stmt *printStmt) execute(ss *session) outcome {

	value, err := stmt.exp.eval(ss.state)
	if err != nil {
		return failOutcome(err)
	}

	fmt.Fprintln(ss.out, value)

	return continueOutcome()
}

//
// Block until the user (or whatever is on the other end of stdin)
// hands us a line, which has to be an integer
//

func (stmt *inputStmt) execute(ss *session) outcome {

	input, err := ss.in.readLine(g.inputPrompt, false)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return failOutcome(newError(typeError, EENDOFINPUT))
		}
		return failOutcome(err)
	}

	value, err := convertInt(input)
	if err != nil {
		return failOutcome(err)
	}

	ss.state.setValue(stmt.name, value)

	return continueOutcome()
}

func (stmt *endStmt) execute(ss *session) outcome {

	return haltOutcome()
}

func (stmt *gotoStmt) execute(ss *session) outcome {

	return jumpOutcome(stmt.target)
}

func (stmt *ifStmt) execute(ss *session) outcome {

	lhs, err := stmt.lhs.eval(ss.state)
	if err != nil {
		return failOutcome(err)
	}

	rhs, err := stmt.rhs.eval(ss.state)
	if err != nil {
		return failOutcome(err)
	}

	var cond bool

	switch stmt.op {
	case '<':
		cond = lhs < rhs

	case '>':
		cond = lhs > rhs

	case '=':
		cond = lhs == rhs

	default:
		fatalError("IF botch: operator " + string(stmt.op))
	}

	if cond {
		return jumpOutcome(stmt.target)
	}

	return continueOutcome()
}

func (stmt *runStmt) execute(ss *session) outcome {

	return executeRun(ss)
}

func (stmt *listStmt) execute(ss *session) outcome {

	if stmt.first == minLineNumber && stmt.last == maxLineNumber {
		ss.program.listAll(ss.out)
	} else {
		ss.program.listRange(ss.out, stmt.first, stmt.last)
	}

	return continueOutcome()
}

func (stmt *clearStmt) execute(ss *session) outcome {

	ss.program.clear()

	return continueOutcome()
}

func (stmt *deleteStmt) execute(ss *session) outcome {

	ss.program.removeRange(stmt.first, stmt.last)

	return continueOutcome()
}

func (stmt *traceStmt) execute(ss *session) outcome {

	executeTrace(ss.out, stmt.switches)

	return continueOutcome()
}

func (stmt *statsStmt) execute(ss *session) outcome {

	g.printStats = !g.printStats

	fmt.Fprintf(ss.out, "toggling stats %s\n", switchSetting(g.printStats))

	return continueOutcome()
}

func (stmt *helpStmt) execute(ss *session) outcome {

	executeHelp(ss.out)

	return continueOutcome()
}

func (stmt *quitStmt) execute(ss *session) outcome {

	ss.exiting = true

	return haltOutcome()
}

//
// The RUN loop.  The variables are wiped, then we start at the lowest
// numbered line and keep going until something halts us or we fall
// off the end.  Lines whose text never parsed have no statement and
// are stepped over, exactly like a REM.  Every transfer of control
// comes back to us as an outcome; nothing unwinds past this loop
//

func executeRun(ss *session) outcome {

	ss.state.clear()

	resetStatistics()

	initClock()

	g.interrupted.Store(false)

	res := executeRunInternal(ss, ss.program.getFirstLineNumber())

	printStatistics(ss.out)

	return res
}

func executeRunInternal(ss *session, curStmtNo int) outcome {

	for curStmtNo != noLine {
		stmt := ss.program.getParsedStatement(curStmtNo)
		if stmt == nil {
			curStmtNo = ss.program.getNextLineNumber(curStmtNo)
			continue
		}

		if checkInterrupts() {
			return runFailure(newError(interruptError, EINTERRUPTED),
				curStmtNo)
		}

		if g.traceExec {
			traceLine(ss.out, curStmtNo, ss.program.getSourceLine(curStmtNo))
		}

		res := stmt.execute(ss)

		s.numStatements++

		log.Trace().Int("line", curStmtNo).
			Str("stmt", getTokenName(stmt.keyword())).
			Stringer("outcome", res).Msg("step")

		switch res.ctl {
		case ctlContinue:
			curStmtNo = ss.program.getNextLineNumber(curStmtNo)

		case ctlJump:
			if ss.program.getParsedStatement(res.target) == nil {
				err := newError(undefinedLine, "%s to non-existent line %d",
					getTokenName(stmt.keyword()), res.target)
				return runFailure(err, curStmtNo)
			}
			curStmtNo = res.target

		case ctlHalt:
			return res

		case ctlFailure:
			return runFailure(res.err, curStmtNo)

		default:
			fatalError(fmt.Sprintf("unknown control code %d", res.ctl))
		}
	}

	return haltOutcome()
}

func runFailure(err error, stmtNo int) outcome {

	return failOutcome(atLine(err, stmtNo))
}

//
// Tag an error with the line it happened on, unless something
// further down already did
//

func atLine(err error, stmtNo int) error {

	var be *basicError

	if errors.As(err, &be) && be.stmtNo == noLine {
		be.stmtNo = stmtNo
	}

	return err
}

//
// INPUT accepts an optional sign and decimal digits, nothing else
//

func convertInt(s string) (int, error) {

	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, newError(typeError, "%s, got %q", EINPUTNOTINTEGER,
			strings.TrimSpace(s))
	}

	return int(i), nil
}

func traceLine(w io.Writer, stmtNo int, line string) {

	text := fmt.Sprintf("%d %s", stmtNo, line)

	if g.interactive {
		text = colorInverseVideoSeq + text + colorResetSeq
	}

	fmt.Fprintln(w, text)
}
