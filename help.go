package main

import (
	"fmt"
	"io"
)

func executeHelp(w io.Writer) {

	fmt.Fprintln(w, "BASIC interpreter commands:")
	fmt.Fprintln(w, "RUN - Execute the stored program")
	fmt.Fprintln(w, "LIST [n[-m]] - Display the stored program")
	fmt.Fprintln(w, "CLEAR - Clear the stored program")
	fmt.Fprintln(w, "DELETE n[-m] - Delete one line or a range of lines")
	fmt.Fprintln(w, "STATS - Toggle printing execution statistics after RUN")
	fmt.Fprintln(w, "TRACE EXEC|VARS|DUMP|<var> - Toggle tracing")
	fmt.Fprintln(w, "QUIT - Exit the interpreter")
	fmt.Fprintln(w, "LET <var> = <exp> - Assign a variable")
	fmt.Fprintln(w, "PRINT <exp> - Print an expression")
	fmt.Fprintln(w, "INPUT <var> - Read input to a variable")
	fmt.Fprintln(w, "<line> <stmt> - Add line to program")
	fmt.Fprintln(w, "<line> - Remove line from program")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Program statements: REM, LET, PRINT, INPUT, END,"+
		" GOTO <line>, IF <exp> <|>|= <exp> THEN <line>")
}
