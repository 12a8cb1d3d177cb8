package format

import (
	"io"
	"strings"

	"github.com/dhamidi/dslkit/parser"
)

// SExpr renders the named nodes of tree as an S-expression, e.g.
// (source_file (list (verb_name) (string))). Missing markers print as
// (MISSING).
func SExpr(tree *parser.Tree) string {
	return strings.Join(sexprParts(tree.Root), " ")
}

func sexprParts(n *parser.Node) []string {
	if n.Missing {
		return []string{"(MISSING)"}
	}
	var inner []string
	for _, c := range n.Children {
		inner = append(inner, sexprParts(c)...)
	}
	if !n.IsNamed() || !n.IsVisible() {
		return inner
	}
	if len(inner) == 0 {
		return []string{"(" + n.Type() + ")"}
	}
	return []string{"(" + n.Type() + " " + strings.Join(inner, " ") + ")"}
}

type SExprEncoder struct {
	w io.Writer
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(tree *parser.Tree) error {
	_, err := io.WriteString(e.w, SExpr(tree)+"\n")
	return err
}
