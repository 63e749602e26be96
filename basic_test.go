package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

//
// Hands out canned lines, then io.EOF
//

type scriptReader struct {
	lines []string
}

func (sr *scriptReader) readLine(prompt string, history bool) (string, error) {

	if len(sr.lines) == 0 {
		return "", io.EOF
	}

	line := sr.lines[0]
	sr.lines = sr.lines[1:]

	return line, nil
}

func resetSettings() {

	g.interactive = false
	g.printStats = false
	g.traceExec = false
	g.traceVars = false
	g.traceDump = false
	g.interrupted.Store(false)

	tracedVarsMap = make(map[string]bool)
}

func newTestSession(t *testing.T, input ...string) (*session, *bytes.Buffer) {

	t.Helper()

	resetSettings()
	t.Cleanup(resetSettings)

	out := &bytes.Buffer{}

	return newSession(out, &scriptReader{lines: input}), out
}

func enter(t *testing.T, ss *session, lines ...string) {

	t.Helper()

	for _, line := range lines {
		assert.NoError(t, ss.processLine(line))
	}
}

func TestProcessLineImmediate(t *testing.T) {

	ss, out := newTestSession(t)

	enter(t, ss, "", "   ", "PRINT 2 + 2", "LET A = 6", "PRINT A * 7")
	assert.Equal(t, "4\n42\n", out.String())

	err := ss.processLine("print a")
	assert.IsError(t, err, undefinedVariable)
	assert.Equal(t, "Variable a is not defined", err.Error())
	assert.Equal(t, 0, ss.program.numLines())
}

func TestProcessLineErrors(t *testing.T) {

	tests := []struct {
		line string
		kind errorKind
		msg  string
	}{
		{"FOO", syntaxError, "Invalid command"},
		{"GOTO 10", syntaxError, "Invalid command"},
		{"10 FOO 3", syntaxError, "Invalid statement type at line 10"},
		{"10 LET x", syntaxError, "LET requires = at line 10"},
		{"3000000000 PRINT 1", syntaxError, "Illegal line number 3000000000"},
		{"99999999999999999999 PRINT 1", syntaxError,
			"Illegal line number 99999999999999999999"},
		{strings.Repeat("1", maxLineLen+1), syntaxError, "Line too long"},
		{"PRINT 1 / 0", arithmeticError, "Division by 0"},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			ss, _ := newTestSession(t)
			err := ss.processLine(test.line)
			assert.IsError(t, err, test.kind)
			assert.Equal(t, test.msg, err.Error())
		})
	}
}

func TestProcessLineEditing(t *testing.T) {

	ss, out := newTestSession(t)

	enter(t, ss, "20 PRINT   2", "10 PRINT 1", "30 END")

	assert.Error(t, ss.processLine("15 LET = 3"))

	enter(t, ss, "LIST")
	assert.Equal(t, "10 PRINT 1\n15 LET = 3\n20 PRINT 2\n30 END\n",
		out.String())

	assert.Equal(t, nil, ss.program.getParsedStatement(15))

	enter(t, ss, "15", "30")
	out.Reset()
	enter(t, ss, "LIST")
	assert.Equal(t, "10 PRINT 1\n20 PRINT 2\n", out.String())

	enter(t, ss, "DELETE 10-20")
	assert.Equal(t, 0, ss.program.numLines())

	enter(t, ss, "10 END", "20 END", "CLEAR", "CLEAR")
	assert.Equal(t, 0, ss.program.numLines())
}

func TestProcessLineQuit(t *testing.T) {

	ss, _ := newTestSession(t)

	enter(t, ss, "QUIT")
	assert.True(t, ss.exiting)
}

func TestCommandLoop(t *testing.T) {

	ss, out := newTestSession(t, "10 PRINT 1", "RUN", "BOGUS", "QUIT",
		"PRINT 9")

	commandLoop(ss)

	assert.True(t, ss.exiting)
	assert.Equal(t, "1\nInvalid command\n", out.String())
}

func TestCommandLoopEndOfInput(t *testing.T) {

	ss, out := newTestSession(t, "PRINT 5")

	commandLoop(ss)

	assert.False(t, ss.exiting)
	assert.Equal(t, "5\n", out.String())
}

func TestLoadProgramFile(t *testing.T) {

	ss, out := newTestSession(t)

	name := filepath.Join(t.TempDir(), "prog.bas")
	src := "10 PRINT 1\n20 BAD\n30 PRINT 3\nRUN\nQUIT\nPRINT 4\n"
	assert.NoError(t, os.WriteFile(name, []byte(src), 0o644))

	assert.NoError(t, loadProgramFile(ss, name))
	assert.True(t, ss.exiting)
	assert.Equal(t, "prog.bas:2: Invalid statement type at line 20\n1\n3\n",
		out.String())
}

func TestLoadProgramFileMissing(t *testing.T) {

	ss, _ := newTestSession(t)

	err := loadProgramFile(ss, filepath.Join(t.TempDir(), "nope.bas"))
	assert.IsError(t, err, os.ErrNotExist)
}

func TestPrintVersionInfo(t *testing.T) {

	var buf bytes.Buffer

	printVersionInfo(&buf)
	assert.Contains(t, buf.String(), "Integer BASIC version "+VERSION)
}

func TestCallRecovers(t *testing.T) {

	ran := false

	call(func() {
		ran = true
		basicAssert(false, "expected botch")
	})

	assert.True(t, ran)
}
