package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Are we talking to a person?  Line editing, prompts and colors are
// only used when both ends are a terminal
//

func checkTerminal() bool {

	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

//
// Line readers.  The liner one gives us editing and a scrollback
// history for commands; INPUT goes through the same instance but
// never lands in the history
//

type linerReader struct {
	state *liner.State
}

type plainReader struct {
	reader *bufio.Reader
}

var lineEditor *liner.State

func setupLiner() *linerReader {

	lineEditor = liner.NewLiner()

	lineEditor.SetCtrlCAborts(true)
	lineEditor.SetMultiLineMode(false)

	if g.historyFile != "" {
		if f, err := os.Open(g.historyFile); err == nil {
			if _, err := lineEditor.ReadHistory(f); err != nil {
				log.Warn().Err(err).Str("file", g.historyFile).
					Msg("unable to read history")
			}
			f.Close()
		}
	}

	return &linerReader{state: lineEditor}
}

//
// Restore terminal state.  NB: we cannot call (or cause to be
// called) crash(), as that would recurse
//

func cleanupLiner() {

	if lineEditor == nil {
		return
	}

	if g.historyFile != "" {
		if f, err := os.Create(g.historyFile); err == nil {
			_, _ = lineEditor.WriteHistory(f)
			f.Close()
		}
	}

	lineEditor.Close()
	lineEditor = nil
}

//
// Read a line from the terminal, with editing and history.  ^C at
// the prompt comes back as an interrupt error, ^D as io.EOF
//

func (lr *linerReader) readLine(prompt string, history bool) (string, error) {

	line, err := lr.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", newError(interruptError, EINTERRUPTED)
		}
		return "", err
	}

	if history && strings.TrimSpace(line) != "" {
		lr.state.AppendHistory(line)
	}

	return line, nil
}

func newPlainReader(r io.Reader) *plainReader {

	return &plainReader{reader: bufio.NewReader(r)}
}

//
// Not a terminal: no prompt, no history.  A final line without a
// newline still counts
//

func (pr *plainReader) readLine(prompt string, history bool) (string, error) {

	line, err := pr.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

//
// Check to see if sigHdlr has posted an interrupt
//

func checkInterrupts() bool {

	return g.interrupted.CompareAndSwap(true, false)
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

//
// Toggle trace flags
//

func executeTrace(w io.Writer, switches []string) {

	for _, sw := range switches {

		switch strings.ToUpper(sw) {
		case "EXEC":
			g.traceExec = !g.traceExec
			fmt.Fprintf(w, "toggling traceExec %s\n", switchSetting(g.traceExec))

		case "VARS":
			g.traceVars = !g.traceVars
			fmt.Fprintf(w, "toggling traceVars %s\n", switchSetting(g.traceVars))

		case "DUMP":
			g.traceDump = !g.traceDump
			fmt.Fprintf(w, "toggling traceDump %s\n", switchSetting(g.traceDump))

		default:

			//
			// If (un)tracing specific variables, disable global
			// variable trace flag, if set
			//

			g.traceVars = false
			fmt.Fprintf(w, "Tracing variable %q ", sw)
			if tracedVarsMap[sw] {
				fmt.Fprintln(w, "disabled")
			} else {
				fmt.Fprintln(w, "enabled")
			}
			tracedVarsMap[sw] = !tracedVarsMap[sw]
		}
	}
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		str += "s"
	}

	return str
}

func resetStatistics() {
	s.utime = 0
	s.stime = 0
	s.numStatements = 0
}

//
// Initialize the clock
//

func initClock() {

	s.elapsed = time.Now()
	s.utime, s.stime = getCPUInfo()
}

func printStatistics(w io.Writer) {

	var mem runtime.MemStats

	if g.printStats {
		fmt.Fprintln(w)
		printCpuUsage(w)
		runtime.ReadMemStats(&mem)
		fmt.Fprintf(w, "%dKB memory used\n", mem.HeapAlloc/1024)
		fmt.Fprintf(w, "%d %s executed\n", s.numStatements,
			pluralize("statement", s.numStatements))
	}
}

func printCpuUsage(w io.Writer) {

	elapsed := time.Since(s.elapsed)
	utime, stime := getCPUInfo()

	fmt.Fprintf(w, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-s.utime), formatCPUTime(stime-s.stime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// User and system CPU seconds for this process, from /proc.  Where
// there is no /proc the numbers are simply zero
//

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck <= 0 {
		return 0, 0
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	//
	// The command name in field 2 may contain blanks, so count
	// fields from the closing parenthesis
	//

	stat := string(contents)
	if i := strings.LastIndexByte(stat, ')'); i >= 0 {
		stat = stat[i+1:]
	}

	fields := strings.Fields(stat)
	if len(fields) < 13 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output.  Make
// sure to call cleanupLiner, so the terminal state is sane
//

func crash(msg string) {

	cleanupLiner()

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}
