// Package emit implements the emission substrate (spec §4.3): a nested,
// forkable text-buffer model. A backend never holds a real io.Writer; it
// holds a Writer handle (an index into an Arena) so the driver can insert
// text at earlier positions after already having moved on to emitting
// later content.
package emit

import (
	"fmt"

	"github.com/dafny-lang/dafny-codegen/internal/contract"
)

// Delim is one side of a block's framing, e.g. {Text: " {", OwnLine: false}
// for a C-family opening brace, or {Text: ":", OwnLine: false} with an
// empty closing Delim for an indentation-delimited target. OwnLine places
// Text on its own line (Allman-style bracing) rather than appended to the
// preceding line.
type Delim struct {
	Text    string
	OwnLine bool
}

// segment is one piece of a node's content: either literal text or a
// reference to a child node spliced in at this position (a Fork or a
// nested block).
type segment struct {
	text  []byte
	child int // -1 for a text segment
}

// blockMeta is non-nil only for nodes created via NewBlock.
type blockMeta struct {
	header, footer       string
	openDelim, closeDelim Delim
}

type node struct {
	id       int
	parent   int // -1 for a root (file) node
	indent   int
	segments []segment
	state    State
	block    *blockMeta
	filePath string // non-empty only for file-root nodes
}

// Arena owns every writer's buffer for one compilation (§3 "the emission
// substrate owns all text buffers; backends hold weak handles (indices)
// into them"). IndentUnit is the text inserted per indent level; backends
// without brace-based blocks (e.g. indentation-significant targets) still
// rely on it to keep nested content aligned.
type Arena struct {
	nodes      []*node
	IndentUnit string
	fileOrder  []string
	fileRoot   map[string]int
}

// NewArena creates an empty arena. indentUnit defaults to a single tab if
// empty.
func NewArena(indentUnit string) *Arena {
	if indentUnit == "" {
		indentUnit = "\t"
	}
	return &Arena{IndentUnit: indentUnit, fileRoot: map[string]int{}}
}

// Writer is a handle into an Arena. All operations are on the Writer value,
// which is cheap to copy and pass by value, exactly as a backend should
// hold it.
type Writer struct {
	arena *Arena
	id    int
}

func (a *Arena) newNode(parent int, indent int) *node {
	n := &node{id: len(a.nodes), parent: parent, indent: indent, state: Open}
	a.nodes = append(a.nodes, n)
	return n
}

func (w Writer) node() *node {
	contract.Requiref(w.arena != nil, "w", "use of a zero-value Writer")
	return w.arena.nodes[w.id]
}

// NewFile returns a fresh root writer bound to a pending output file. Two
// calls with the same path return the same writer (idempotent per path).
func (a *Arena) NewFile(path string) Writer {
	if id, ok := a.fileRoot[path]; ok {
		return Writer{arena: a, id: id}
	}
	n := a.newNode(-1, 0)
	n.filePath = path
	a.fileRoot[path] = n.id
	a.fileOrder = append(a.fileOrder, path)
	return Writer{arena: a, id: n.id}
}

// Write appends text to w's local buffer. Panics (an internal invariant
// violation, §7 kind 2) if w has already been Sealed or Flushed.
func (w Writer) Write(text string) {
	n := w.node()
	contract.Assertf(n.state.canWrite(), "write to a writer in state %v", n.state)
	if len(n.segments) > 0 && n.segments[len(n.segments)-1].child < 0 {
		last := &n.segments[len(n.segments)-1]
		last.text = append(last.text, text...)
		return
	}
	n.segments = append(n.segments, segment{text: []byte(text), child: -1})
}

// Writef is Write with fmt.Sprintf formatting, the common case for emitting
// target syntax.
func (w Writer) Writef(format string, args ...interface{}) {
	w.Write(fmt.Sprintf(format, args...))
}

// Fork splits w at its current tail, returning a new writer whose buffer is
// textually spliced at exactly this position before any further writes to
// w. The splice point never moves after this call (§4.3 invariant): later
// calls to w.Write append after the fork, never before it.
func (w Writer) Fork() Writer {
	n := w.node()
	contract.Assertf(n.state.canWrite(), "fork of a writer in state %v", n.state)
	child := w.arena.newNode(w.id, n.indent)
	n.segments = append(n.segments, segment{child: child.id, text: nil})
	return Writer{arena: w.arena, id: child.id}
}

// NewBlock writes header into w, then returns a child block writer at
// indent+1; on flush the child's contents are framed between openDelim and
// closeDelim at that indent level.
func (w Writer) NewBlock(header, footer string, openDelim, closeDelim Delim) Writer {
	n := w.node()
	contract.Assertf(n.state.canWrite(), "new block on a writer in state %v", n.state)
	child := w.arena.newNode(w.id, n.indent+1)
	child.block = &blockMeta{header: header, footer: footer, openDelim: openDelim, closeDelim: closeDelim}
	n.segments = append(n.segments, segment{child: child.id, text: nil})
	return Writer{arena: w.arena, id: child.id}
}

// Close seals w: Open -> Sealed. Idempotent, and commutes with Fork (a
// sealed writer's already-created forks remain independently writable
// until they are themselves closed).
func (w Writer) Close() {
	n := w.node()
	if n.state == Open {
		n.state = Sealed
	}
}

// Indent reports w's structural indent depth.
func (w Writer) Indent() int { return w.node().indent }
