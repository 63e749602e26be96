package main

import (
	"fmt"
	"io"

	"github.com/google/btree"
	"github.com/goforj/godump"
	"github.com/rs/zerolog/log"
)

//
// A set of wrapper routines around the btree package.  We do this to
// hide the btree interface from the interpreter code, as well as
// providing debug/trace hooks.  Lines are ordered by line number,
// never by insertion order
//

type program struct {
	tree *btree.BTree
}

func (l *lineNode) Less(than btree.Item) bool {

	return l.stmtNo < than.(*lineNode).stmtNo
}

func newProgram() *program {

	return &program{tree: btree.New(btreeDegree)}
}

func (p *program) lookup(stmtNo int) *lineNode {

	item := p.tree.Get(&lineNode{stmtNo: stmtNo})
	if item != nil {
		return item.(*lineNode)
	} else {
		return nil
	}
}

//
// Store (or replace) the text of a line.  A fresh node always goes
// into the tree, so whatever statement was parsed from the old text
// is gone along with the old node
//

func (p *program) addLine(stmtNo int, text string) {

	old := p.tree.ReplaceOrInsert(&lineNode{stmtNo: stmtNo, line: text})

	log.Debug().Int("line", stmtNo).Bool("replaced", old != nil).
		Msg("program line stored")
}

func (p *program) removeLine(stmtNo int) {

	if p.tree.Delete(&lineNode{stmtNo: stmtNo}) != nil {
		log.Debug().Int("line", stmtNo).Msg("program line removed")
	}
}

func (p *program) getSourceLine(stmtNo int) string {

	if node := p.lookup(stmtNo); node != nil {
		return node.line
	}

	return ""
}

//
// Attach a parsed statement to an existing line, replacing any
// earlier one.  There is nothing to attach it to if the line was
// never stored, so that case is ignored
//

func (p *program) setParsedStatement(stmtNo int, stmt statement) bool {

	node := p.lookup(stmtNo)
	if node == nil {
		return false
	}

	node.stmt = stmt

	if g.traceDump {
		godump.Dump(stmt)
	}

	return true
}

func (p *program) getParsedStatement(stmtNo int) statement {

	if node := p.lookup(stmtNo); node != nil {
		return node.stmt
	}

	return nil
}

func (p *program) getFirstLineNumber() int {

	item := p.tree.Min()
	if item == nil {
		return noLine
	}

	return item.(*lineNode).stmtNo
}

//
// The next line after stmtNo.  A line number that is not in the
// program has no successor
//

func (p *program) getNextLineNumber(stmtNo int) int {

	if p.lookup(stmtNo) == nil || stmtNo >= maxLineNumber {
		return noLine
	}

	next := noLine

	p.tree.AscendGreaterOrEqual(&lineNode{stmtNo: stmtNo + 1},
		func(item btree.Item) bool {
			next = item.(*lineNode).stmtNo
			return false
		})

	return next
}

func (p *program) listAll(w io.Writer) {

	p.listRange(w, minLineNumber, maxLineNumber)
}

func (p *program) listRange(w io.Writer, firstStmt, lastStmt int) {

	p.walkRange(firstStmt, lastStmt, func(node *lineNode) {
		fmt.Fprintf(w, "%d %s\n", node.stmtNo, node.line)
	})
}

func (p *program) removeRange(firstStmt, lastStmt int) {

	var doomed []int

	p.walkRange(firstStmt, lastStmt, func(node *lineNode) {
		doomed = append(doomed, node.stmtNo)
	})

	for _, stmtNo := range doomed {
		p.removeLine(stmtNo)
	}
}

//
// Visit every line in [firstStmt, lastStmt] in ascending order.  The
// callback must not modify the tree
//

func (p *program) walkRange(firstStmt, lastStmt int, f func(*lineNode)) {

	p.tree.AscendGreaterOrEqual(&lineNode{stmtNo: firstStmt},
		func(item btree.Item) bool {
			node := item.(*lineNode)
			if node.stmtNo > lastStmt {
				return false
			}
			f(node)
			return true
		})
}

func (p *program) clear() {

	p.tree.Clear(false)

	log.Debug().Msg("program cleared")
}

func (p *program) numLines() int {

	return p.tree.Len()
}
