package main

import (
	"fmt"
	"io"
)

//
// The variable store.  Every variable is a plain integer, created the
// first time LET or INPUT assigns it.  Reading one that was never
// assigned is the evaluator's problem, not ours
//

type evalState struct {
	vars  map[string]int
	trace io.Writer
}

func newEvalState(trace io.Writer) *evalState {

	return &evalState{vars: make(map[string]int), trace: trace}
}

//
// Initialize the symbol table to pristine state
//

func (es *evalState) clear() {

	es.vars = make(map[string]int)
}

func (es *evalState) setValue(name string, value int) {

	old, defined := es.vars[name]

	es.traceVar(name, old, defined, value)

	es.vars[name] = value
}

func (es *evalState) getValue(name string) (int, bool) {

	value, ok := es.vars[name]

	return value, ok
}

func (es *evalState) traceVar(name string, oval int, defined bool, nval int) {

	if es.trace == nil || !(g.traceVars || tracedVarsMap[name]) {
		return
	}

	if defined {
		fmt.Fprintf(es.trace, "Variable %s changed from %d to %d\n", name,
			oval, nval)
	} else {
		fmt.Fprintf(es.trace, "Variable %s set to %d\n", name, nval)
	}
}
