package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/dslkit/parser"
)

// TreeEncoder writes an indented dump of every node with line:column
// spans. Leaves show their text; error nodes and missing markers are
// highlighted when color is enabled.
type TreeEncoder struct {
	w io.Writer

	named   *color.Color
	token   *color.Color
	text    *color.Color
	trivia  *color.Color
	errored *color.Color
	missing *color.Color
}

func NewTreeEncoder(w io.Writer, colored bool) *TreeEncoder {
	e := &TreeEncoder{
		w:       w,
		named:   color.New(color.FgCyan),
		token:   color.New(color.FgYellow),
		text:    color.New(color.FgGreen),
		trivia:  color.New(color.Faint),
		errored: color.New(color.FgRed, color.Bold),
		missing: color.New(color.FgMagenta, color.Bold),
	}
	for _, c := range []*color.Color{e.named, e.token, e.text, e.trivia, e.errored, e.missing} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return e
}

func (e *TreeEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, tree, tree.Root, 0)
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, tree *parser.Tree, n *parser.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))

	start, end := tree.Position(n.Span.Start), tree.Position(n.Span.End)
	switch {
	case n.Missing:
		sb.WriteString(e.missing.Sprint("MISSING"))
	case n.IsError():
		sb.WriteString(e.errored.Sprint("ERROR"))
	case n.Extra:
		sb.WriteString(e.trivia.Sprint(n.Type()))
	case n.IsNamed() && n.IsVisible():
		sb.WriteString(e.named.Sprint(n.Type()))
	default:
		sb.WriteString(e.token.Sprint(strconv.Quote(n.Type())))
	}
	fmt.Fprintf(sb, " %d:%d-%d:%d", start.Line, start.Column, end.Line, end.Column)

	if n != tree.Root && n.IsLeaf() && n.Span.Len() > 0 {
		sb.WriteString(" ")
		sb.WriteString(e.text.Sprint(strconv.Quote(n.Text(tree.Source))))
	}
	if n.Incomplete {
		sb.WriteString(" ")
		sb.WriteString(e.errored.Sprint("incomplete"))
	}
	if n.Error != nil {
		sb.WriteString(" ")
		sb.WriteString(e.errored.Sprint(n.Error.Message))
	}
	sb.WriteString("\n")

	for _, c := range n.Children {
		e.writeNode(sb, tree, c, depth+1)
	}
}
