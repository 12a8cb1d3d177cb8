package parser

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/dslkit/grammar"
)

// Position is a resolved source location. Line and Column are 1-based;
// columns count bytes, not runes.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Tree is the result of one parse. Root is always a node of the table's
// root symbol and its span is the whole source.
type Tree struct {
	Root     *Node
	Source   []byte
	Language *grammar.Table
	File     string

	linesOnce sync.Once
	lines     []int
}

// Walk visits the tree in pre-order. Children are skipped when fn returns
// false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	walk(t.Root, fn)
}

func walk(n *Node, fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// Leaves returns the leaf nodes below the root in source order.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	t.Walk(func(n *Node) bool {
		if n != t.Root && n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// SourceText concatenates the full text of every leaf followed by the
// whitespace after the last one. For any tree it equals the parsed source.
func (t *Tree) SourceText() string {
	var sb strings.Builder
	end := 0
	for _, leaf := range t.Leaves() {
		sb.Write(t.Source[leaf.Span.Start-leaf.Padding : leaf.Span.End])
		end = max(end, leaf.Span.End)
	}
	sb.Write(t.Source[end:])
	return sb.String()
}

// HasError reports whether the tree contains any error marker.
func (t *Tree) HasError() bool {
	return t.Root.HasError()
}

// Errors returns the error nodes, including the markers of incomplete
// constructs, in source order.
func (t *Tree) Errors() []*Node {
	var errs []*Node
	t.Walk(func(n *Node) bool {
		if n.IsError() {
			errs = append(errs, n)
			return false
		}
		return true
	})
	return errs
}

// Diagnostic is an error node resolved to line and column positions.
type Diagnostic struct {
	Kind     ErrorKind
	Message  string
	Expected []string
	Span     Span
	Start    Position
	End      Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Start, d.Message)
}

func (t *Tree) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, n := range t.Errors() {
		d := Diagnostic{
			Kind:    ErrorSyntax,
			Message: "syntax error",
			Span:    n.Span,
			Start:   t.Position(n.Span.Start),
			End:     t.Position(n.Span.End),
		}
		if n.Error != nil {
			d.Kind = n.Error.Kind
			d.Message = n.Error.Message
			d.Expected = n.Error.Expected
		}
		diags = append(diags, d)
	}
	return diags
}

// NodeAt returns the deepest visible node whose span contains offset, or
// the root.
func (t *Tree) NodeAt(offset int) *Node {
	found := t.Root
	t.Walk(func(n *Node) bool {
		if n == t.Root {
			return true
		}
		if !n.Span.Contains(offset) {
			return false
		}
		if n.IsVisible() {
			found = n
		}
		return true
	})
	return found
}

// Path returns the chain of visible nodes from the root down to NodeAt.
func (t *Tree) Path(offset int) []*Node {
	path := []*Node{t.Root}
	n := t.Root
	for {
		var next *Node
		for _, c := range n.Children {
			if c.Span.Contains(offset) {
				next = c
				break
			}
		}
		if next == nil {
			return path
		}
		if next.IsVisible() {
			path = append(path, next)
		}
		n = next
	}
}

// Position resolves a byte offset.
func (t *Tree) Position(offset int) Position {
	t.linesOnce.Do(func() {
		t.lines = []int{0}
		for i, b := range t.Source {
			if b == '\n' {
				t.lines = append(t.lines, i+1)
			}
		}
	})
	line := sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{
		File:   t.File,
		Offset: offset,
		Line:   line + 1,
		Column: offset - t.lines[line] + 1,
	}
}

// Offset converts a 1-based line and column back to a byte offset,
// clamped to the source.
func (t *Tree) Offset(line, column int) int {
	t.Position(0)
	if line < 1 {
		return 0
	}
	if line > len(t.lines) {
		return len(t.Source)
	}
	offset := t.lines[line-1] + column - 1
	if offset > len(t.Source) {
		offset = len(t.Source)
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
