package format

import (
	"io"

	"github.com/dhamidi/dslkit/ast"
	"github.com/dhamidi/dslkit/parser"
)

// DSLEncoder lowers the tree and writes the program back in canonical form.
type DSLEncoder struct {
	w io.Writer
}

func NewDSLEncoder(w io.Writer) *DSLEncoder {
	return &DSLEncoder{w: w}
}

func (e *DSLEncoder) Encode(tree *parser.Tree) error {
	prog, err := ast.Lower(tree)
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.w, prog.String()+"\n")
	return err
}
