package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/dslkit/parser"
)

// LineEncoder writes one tab-separated line per leaf: kind, start and end
// as line:column, flags and the quoted text. The output is meant for grep
// and cut.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	var sb strings.Builder
	for _, leaf := range tree.Leaves() {
		start, end := tree.Position(leaf.Span.Start), tree.Position(leaf.Span.End)
		fmt.Fprintf(&sb, "%s\t%d:%d\t%d:%d\t%s\t%q\n",
			leaf.Type(),
			start.Line, start.Column,
			end.Line, end.Column,
			leafFlags(leaf),
			leaf.Text(tree.Source),
		)
	}
	return []byte(sb.String()), nil
}

func leafFlags(n *parser.Node) string {
	var flags []string
	if n.Extra {
		flags = append(flags, "extra")
	}
	if n.IsError() {
		flags = append(flags, "error")
	}
	if n.Missing {
		flags = append(flags, "missing")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
