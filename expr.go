package main

import (
	"strconv"
)

//
// Expression trees.  There are exactly three kinds of node: integer
// constants, variable references and binary operators.  Unary minus
// is parsed into a compound node with a zero left operand, so the
// evaluator never has to know about it
//

type expression interface {
	eval(state *evalState) (int, error)
	String() string
}

type constantExp struct {
	value int
}

type identifierExp struct {
	name string
}

type compoundExp struct {
	op  rune
	lhs expression
	rhs expression
}

func (e *constantExp) eval(state *evalState) (int, error) {
	return e.value, nil
}

func (e *constantExp) String() string {
	return strconv.Itoa(e.value)
}

func (e *identifierExp) eval(state *evalState) (int, error) {

	value, ok := state.getValue(e.name)
	if !ok {
		return 0, newError(undefinedVariable, "Variable %s is not defined",
			e.name)
	}

	return value, nil
}

func (e *identifierExp) String() string {
	return e.name
}

//
// Both operands are evaluated, left first, before the operator is
// applied.  Go integer division already truncates toward zero
//

func (e *compoundExp) eval(state *evalState) (int, error) {

	left, err := e.lhs.eval(state)
	if err != nil {
		return 0, err
	}

	right, err := e.rhs.eval(state)
	if err != nil {
		return 0, err
	}

	switch e.op {
	case '+':
		return left + right, nil

	case '-':
		return left - right, nil

	case '*':
		return left * right, nil

	case '/':
		if right == 0 {
			return 0, newError(arithmeticError, EDIVISIONBYZERO)
		}
		return left / right, nil
	}

	fatalError("unknown operator " + string(e.op))

	return 0, nil
}

func (e *compoundExp) String() string {
	return "(" + e.lhs.String() + " " + string(e.op) + " " + e.rhs.String() + ")"
}

//
// Recursive descent over the token stream:
//
//   E -> T (('+' | '-') T)*
//   T -> F (('*' | '/') F)*
//   F -> integer | identifier | '(' E ')' | '-' F
//
// Parsing stops at the first token that cannot continue the
// expression; the caller decides whether that token is legal there
//

func readE(ts *tokenStream) (expression, error) {

	exp, err := readT(ts)
	if err != nil {
		return nil, err
	}

	for op := ts.peek().token; op == '+' || op == '-'; op = ts.peek().token {
		ts.nextToken()

		rhs, err := readT(ts)
		if err != nil {
			return nil, err
		}

		exp = &compoundExp{op: rune(op), lhs: exp, rhs: rhs}
	}

	return exp, nil
}

func readT(ts *tokenStream) (expression, error) {

	exp, err := readF(ts)
	if err != nil {
		return nil, err
	}

	for op := ts.peek().token; op == '*' || op == '/'; op = ts.peek().token {
		ts.nextToken()

		rhs, err := readF(ts)
		if err != nil {
			return nil, err
		}

		exp = &compoundExp{op: rune(op), lhs: exp, rhs: rhs}
	}

	return exp, nil
}

func readF(ts *tokenStream) (expression, error) {

	t := ts.nextToken()

	switch t.token {
	case INTEGER:
		return &constantExp{value: t.value}, nil

	case IDENT:
		return &identifierExp{name: t.text}, nil

	case '(':
		exp, err := readE(ts)
		if err != nil {
			return nil, err
		}

		if closing := ts.nextToken(); closing.token != ')' {
			return nil, syntaxErrorf("Unbalanced parentheses")
		}

		return exp, nil

	case '-':
		exp, err := readF(ts)
		if err != nil {
			return nil, err
		}

		return &compoundExp{op: '-', lhs: &constantExp{}, rhs: exp}, nil

	case EOL:
		return nil, syntaxErrorf(EMISSINGOPERAND)

	case ILLEGAL:
		return nil, syntaxErrorf("Illegal token %q", t.text)
	}

	return nil, syntaxErrorf("Unexpected %q in expression", t.text)
}

//
// Parse a complete expression: nothing may follow it
//

func parseExp(ts *tokenStream) (expression, error) {

	exp, err := readE(ts)
	if err != nil {
		return nil, err
	}

	if ts.hasMoreTokens() {
		return nil, syntaxErrorf("Unexpected %q in expression", ts.peek().text)
	}

	return exp, nil
}
