package parser

import (
	"iter"
	"strconv"
	"strings"

	"github.com/dhamidi/dslkit/grammar"
)

// Span is a half-open byte range of the source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether offset lies in [Start, End).
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// ErrorKind classifies error nodes.
type ErrorKind int

const (
	// ErrorSyntax marks a token with no valid action.
	ErrorSyntax ErrorKind = iota
	// ErrorLexical marks bytes no lexer mode could tokenize.
	ErrorLexical
	// ErrorIncomplete marks a construct cut off by the end of input.
	ErrorIncomplete
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorSyntax:
		return "syntax"
	case ErrorLexical:
		return "lexical"
	case ErrorIncomplete:
		return "incomplete"
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

type Error struct {
	Kind     ErrorKind
	Message  string
	Expected []string
	Got      string
}

// Node is a syntax tree node. Span excludes the Padding bytes of whitespace
// that precede the node; the full spans of siblings are contiguous, so the
// leaves of a tree reproduce the source exactly.
type Node struct {
	Symbol   grammar.Symbol
	Span     Span
	Padding  int
	Children []*Node
	Error    *Error

	// Extra marks trivia: comments and error nodes, which may appear
	// between any two tokens.
	Extra bool
	// Incomplete marks a construct closed by the end of input.
	Incomplete bool
	// Missing marks the zero-width error node placed where the input ended.
	Missing bool

	table *grammar.Table
}

// Type is the symbol name, e.g. "list" or "(".
func (n *Node) Type() string {
	if n.table == nil {
		return n.Symbol.String()
	}
	return n.table.SymbolName(n.Symbol)
}

func (n *Node) IsNamed() bool {
	return n.IsError() || (n.table != nil && n.table.Symbol(n.Symbol).Named)
}

func (n *Node) IsVisible() bool {
	return n.IsError() || (n.table != nil && n.table.Symbol(n.Symbol).Visible)
}

func (n *Node) IsError() bool {
	return n.Symbol == grammar.SymbolError
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasError reports whether the subtree contains an error node or an
// incomplete construct.
func (n *Node) HasError() bool {
	if n.IsError() || n.Incomplete {
		return true
	}
	for _, c := range n.Children {
		if c.HasError() {
			return true
		}
	}
	return false
}

// FullSpan includes the leading whitespace.
func (n *Node) FullSpan() Span {
	return Span{Start: n.Span.Start - n.Padding, End: n.Span.End}
}

// Text returns the node's source text without leading whitespace.
func (n *Node) Text(src []byte) string {
	return string(src[n.Span.Start:n.Span.End])
}

func (n *Node) NamedChildren() []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.IsNamed() && c.IsVisible() && !c.Extra {
			result = append(result, c)
		}
	}
	return result
}

// Trivia yields the extra children (comments and error nodes) in order.
func (n *Node) Trivia() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.Children {
			if c.Extra && !yield(c) {
				return
			}
		}
	}
}

func (n *Node) FirstChildOfType(typ string) *Node {
	for _, c := range n.Children {
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

func (n *Node) ChildrenOfType(typ string) []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.Type() == typ {
			result = append(result, c)
		}
	}
	return result
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Type())
	sb.WriteString(" [")
	sb.WriteString(strconv.Itoa(n.Span.Start))
	sb.WriteString("-")
	sb.WriteString(strconv.Itoa(n.Span.End))
	sb.WriteString("]")
	if n.Extra {
		sb.WriteString(" extra")
	}
	if n.Incomplete {
		sb.WriteString(" incomplete")
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: ")
		sb.WriteString(n.Error.Message)
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.writeIndent(sb, indent+1)
	}
}
