package main

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRunPrograms(t *testing.T) {

	tests := []struct {
		name    string
		program []string
		input   []string
		want    string
	}{
		{
			name:    "let print end",
			program: []string{"10 LET X = 2", "20 PRINT X + 3", "30 END", "40 PRINT 99"},
			want:    "5\n",
		},
		{
			name:    "fall off the end",
			program: []string{"10 PRINT 1", "20 PRINT 2"},
			want:    "1\n2\n",
		},
		{
			name: "if true jumps",
			program: []string{"10 LET X = 5", "20 IF X > 3 THEN 50",
				"30 PRINT 0", "40 END", "50 PRINT 1"},
			want: "1\n",
		},
		{
			name: "if false continues",
			program: []string{"10 LET X = 1", "20 IF X > 3 THEN 50",
				"30 PRINT 0", "40 END", "50 PRINT 1"},
			want: "0\n",
		},
		{
			name: "if equal",
			program: []string{"10 IF 2 * 3 = 6 THEN 30", "20 END",
				"30 PRINT 6"},
			want: "6\n",
		},
		{
			name: "loop",
			program: []string{"10 LET I = 1", "20 LET S = 0",
				"30 LET S = S + I", "40 LET I = I + 1", "50 IF I < 11 THEN 30",
				"60 PRINT S"},
			want: "55\n",
		},
		{
			name: "goto skips",
			program: []string{"10 GOTO 30", "20 PRINT 2", "30 PRINT 3",
				"5 REM entered last, runs first"},
			want: "3\n",
		},
		{
			name:    "input",
			program: []string{"10 INPUT N", "20 PRINT N * 2"},
			input:   []string{" -21 "},
			want:    "-42\n",
		},
		{
			name:    "empty program",
			program: nil,
			want:    "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ss, out := newTestSession(t, test.input...)
			enter(t, ss, test.program...)
			enter(t, ss, "RUN")
			assert.Equal(t, test.want, out.String())
		})
	}
}

func TestRunFailures(t *testing.T) {

	tests := []struct {
		name    string
		program []string
		input   []string
		kind    errorKind
		msg     string
	}{
		{
			name:    "undefined variable",
			program: []string{"10 PRINT X"},
			kind:    undefinedVariable,
			msg:     "Variable X is not defined at line 10",
		},
		{
			name:    "undefined goto target",
			program: []string{"10 LET A = 1", "20 GOTO 999"},
			kind:    undefinedLine,
			msg:     "GOTO to non-existent line 999 at line 20",
		},
		{
			name:    "undefined if target",
			program: []string{"10 IF 1 < 2 THEN 15", "20 END"},
			kind:    undefinedLine,
			msg:     "IF to non-existent line 15 at line 10",
		},
		{
			name:    "division by zero",
			program: []string{"10 LET Z = 0", "20 PRINT 5 / Z"},
			kind:    arithmeticError,
			msg:     "Division by 0 at line 20",
		},
		{
			name:    "input not an integer",
			program: []string{"10 INPUT N"},
			input:   []string{"abc"},
			kind:    typeError,
			msg:     `INPUT requires integer value, got "abc" at line 10`,
		},
		{
			name:    "input exhausted",
			program: []string{"10 INPUT N"},
			kind:    typeError,
			msg:     "End of input at line 10",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ss, _ := newTestSession(t, test.input...)
			enter(t, ss, test.program...)
			err := ss.processLine("RUN")
			assert.IsError(t, err, test.kind)
			assert.Equal(t, test.msg, err.Error())
		})
	}
}

func TestRunKeepsVariablesAfterFailure(t *testing.T) {

	ss, out := newTestSession(t)

	enter(t, ss, "10 LET A = 1", "20 GOTO 999")

	assert.IsError(t, ss.processLine("RUN"), undefinedLine)

	value, ok := ss.state.getValue("A")
	assert.True(t, ok)
	assert.Equal(t, 1, value)

	enter(t, ss, "PRINT A")
	assert.Equal(t, "1\n", out.String())
}

func TestRunClearsVariables(t *testing.T) {

	ss, _ := newTestSession(t)

	enter(t, ss, "LET Z = 9", "10 PRINT Z")

	assert.IsError(t, ss.processLine("RUN"), undefinedVariable)
}

func TestRunSkipsUnparsedLines(t *testing.T) {

	ss, out := newTestSession(t)

	enter(t, ss, "10 PRINT 1", "30 PRINT 3")
	assert.Error(t, ss.processLine("20 LET ="))

	enter(t, ss, "RUN")
	assert.Equal(t, "1\n3\n", out.String())
}

func TestRunTraceExec(t *testing.T) {

	ss, out := newTestSession(t)

	enter(t, ss, "10 LET X = 1", "20 PRINT X")

	g.traceExec = true
	enter(t, ss, "RUN")

	assert.Equal(t, "10 LET X = 1\n20 PRINT X\n1\n", out.String())
}

func TestRunInterrupted(t *testing.T) {

	ss, _ := newTestSession(t)

	enter(t, ss, "10 GOTO 10")

	g.interrupted.Store(true)

	res := executeRunInternal(ss, ss.program.getFirstLineNumber())
	assert.Equal(t, ctlFailure, res.ctl)
	assert.IsError(t, res.err, interruptError)
	assert.Equal(t, "Interrupted at line 10", res.err.Error())
	assert.False(t, g.interrupted.Load())
}

func TestRunStatistics(t *testing.T) {

	ss, out := newTestSession(t)

	enter(t, ss, "10 LET X = 1", "20 PRINT X", "STATS")
	assert.True(t, g.printStats)

	enter(t, ss, "RUN")

	assert.Equal(t, int64(2), s.numStatements)
	assert.Contains(t, out.String(), "toggling stats ON\n1\n\nCPU Usage: ")
	assert.Contains(t, out.String(), "2 statements executed\n")
}

func TestStatementOutcomes(t *testing.T) {

	ss, _ := newTestSession(t)

	assert.Equal(t, continueOutcome(), (&remStmt{}).execute(ss))
	assert.Equal(t, haltOutcome(), (&endStmt{}).execute(ss))
	assert.Equal(t, jumpOutcome(40), (&gotoStmt{target: 40}).execute(ss))

	ifs := &ifStmt{lhs: &constantExp{value: 1}, op: '=',
		rhs: &constantExp{value: 2}, target: 40}
	assert.Equal(t, continueOutcome(), ifs.execute(ss))

	ifs.op = '<'
	assert.Equal(t, jumpOutcome(40), ifs.execute(ss))

	assert.Equal(t, "jump 40", jumpOutcome(40).String())
}

func TestConvertInt(t *testing.T) {

	value, err := convertInt(" +17\n")
	assert.NoError(t, err)
	assert.Equal(t, 17, value)

	for _, bad := range []string{"", "1.5", "0x10", "ten", "1 2"} {
		_, err := convertInt(bad)
		assert.IsError(t, err, typeError)
	}
}
