package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"unicode"

	"github.com/rs/zerolog/log"
)

//
// Tricky: init is called under the hood by the GO runtime when
// we fire up, so there are no visible calls to it!
//

func init() {

	initMaps()

	applyConfig(defaultConfig())
}

func initMaps() {

	initKeywords()

	tracedVarsMap = make(map[string]bool)
}

func main() {

	configName := flag.String("config", "", "YAML config file")
	stats := flag.Bool("stats", false, "print statistics after RUN")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [-config file] [-stats] [program]\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configName)
	if err != nil {
		crash(err.Error())
	}

	applyConfig(cfg)

	if *stats {
		g.printStats = true
	}

	//
	// Restore the terminal however we leave
	//

	defer cleanupLiner()

	var in lineReader

	g.interactive = checkTerminal()
	if g.interactive {
		in = setupLiner()
	} else {
		in = newPlainReader(os.Stdin)
	}

	ss := newSession(os.Stdout, in)

	if flag.NArg() == 1 {
		if err := loadProgramFile(ss, flag.Arg(0)); err != nil {
			crash(err.Error())
		}
		if ss.exiting {
			return
		}
	}

	//
	// Run the signal handling code in a goroutine.  Without a terminal
	// ^C should just kill us, as it would any other filter
	//

	if g.interactive {
		printVersionInfo(ss.out)

		go sigHdlr()
	}

	//
	// Loop forever, or until we quit
	//

	commandLoop(ss)
}

func newSession(out io.Writer, in lineReader) *session {

	return &session{
		program: newProgram(),
		state:   newEvalState(out),
		out:     out,
		in:      in,
	}
}

//
// Read lines and hand them to processLine until QUIT or end of input.
// ^C at the prompt just gets us a fresh prompt
//

func commandLoop(ss *session) {

	for !ss.exiting {
		line, err := ss.in.readLine(g.prompt, true)
		if err != nil {
			if errors.Is(err, interruptError) {
				continue
			}
			if !errors.Is(err, io.EOF) {
				log.Error().Err(err).Msg("unable to read command")
			}
			break
		}

		call(func() {
			if err := ss.processLine(line); err != nil {
				reportError(ss.out, err)
			}
		})
	}
}

//
// Process one line of input.  A line starting with a number edits
// the program, anything else is a command executed right away.
// Whatever goes wrong is returned, to be reported by our caller;
// the program and variables are left as they were
//

func (ss *session) processLine(line string) error {

	if len(line) > maxLineLen {
		return syntaxErrorf(ELINETOOLONG)
	}

	tokens := scanLine(line)
	if len(tokens) == 0 {
		return nil
	}

	switch {
	case tokens[0].token == INTEGER:
		return ss.processNumberedLine(line, tokens)

	case tokens[0].token == ILLEGAL && unicode.IsDigit(rune(tokens[0].text[0])):
		return syntaxErrorf("%s %s", EILLEGALLINENUMBER, tokens[0].text)
	}

	stmt, err := parseCommand(newTokenStream(tokens))
	if err != nil {
		return err
	}

	res := stmt.execute(ss)
	if res.ctl == ctlFailure {
		return res.err
	}

	return nil
}

//
// The text is stored before it is parsed, so a line with a syntax
// error is still in the program (and in LIST) for the user to fix
//

func (ss *session) processNumberedLine(line string, tokens []token) error {

	stmtNo := tokens[0].value
	if !validLineNumber(stmtNo) {
		return syntaxErrorf("%s %d", EILLEGALLINENUMBER, stmtNo)
	}

	if len(tokens) == 1 {
		ss.program.removeLine(stmtNo)
		return nil
	}

	ss.program.addLine(stmtNo, trimWhitespace(line[tokens[1].pos:]))

	stmt, err := parseStatement(newTokenStream(tokens[1:]))
	if err != nil {
		return atLine(err, stmtNo)
	}

	basicAssert(ss.program.setParsedStatement(stmtNo, stmt),
		"setParsedStatement botch")

	return nil
}

//
// Feed a program file through processLine, as if it had been typed.
// Problems with individual lines are reported and skipped
//

func loadProgramFile(ss *session, filename string) error {

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := ss.processLine(scanner.Text()); err != nil {
			fmt.Fprintf(ss.out, "%s:%d: %v\n", filepath.Base(filename), lineNo,
				err)
		}
		if ss.exiting {
			break
		}
	}

	log.Debug().Str("file", filename).Int("lines", ss.program.numLines()).
		Msg("program loaded")

	return scanner.Err()
}

func reportError(w io.Writer, err error) {

	msg := err.Error()

	if g.interactive {
		msg = colorRedSeq + msg + colorResetSeq
	}

	fmt.Fprintln(w, msg)
}

func printVersionInfo(w io.Writer) {

	fmt.Fprintf(w, "Integer BASIC version %s", VERSION)
	if buildTimestampStr != "" {
		fmt.Fprintf(w, " - built %s", buildTimestampStr)
	}
	fmt.Fprintln(w)
}

func sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Notify(ch, syscall.SIGINT)

	for range ch {
		g.interrupted.Store(true)
	}
}

//
// Wrapper routine for a function.  We need this so that panic calls
// can be caught and decoded before returning to our caller
//

func call(f func()) {

	defer func() {
		err := recover()
		if err != nil {
			decodePanic(err)
		}
	}()

	f()
}

//
// User errors never panic, so anything landing here is a bug in the
// interpreter.  Report it and let the session carry on
//

func decodePanic(e any) {

	switch e := e.(type) {
	default:
		fmt.Fprintf(os.Stderr, "%v\n", e)
		debug.PrintStack()

	case *basicErrorInfo:
		fmt.Fprintf(os.Stderr, "%q at %s line %d\n", e.msg,
			filepath.Base(e.file), e.line)
		debug.PrintStack()
	}
}

//
// A handy 'assert' function
//

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalError(msg)
	}
}

//
// Errors raised by the interpreter itself.  We find filename and
// line number of our caller, and stuff those into the basicErrorInfo
// structure before calling panic
//

func fatalError(msg string) {

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		crash("Unable to find caller frame!\n")
	}

	msg = strings.TrimRight(msg, "\n")

	panic(&basicErrorInfo{msg, file, line})
}
