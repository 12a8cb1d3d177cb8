// Package format renders syntax trees for people and tools.
package format

import (
	"fmt"
	"io"
	"slices"

	"github.com/dhamidi/dslkit/parser"
)

type Encoder interface {
	Encode(tree *parser.Tree) error
}

var encoders = map[string]func(w io.Writer, colored bool) Encoder{
	"json":  func(w io.Writer, _ bool) Encoder { return NewJSONEncoder(w) },
	"sexp":  func(w io.Writer, _ bool) Encoder { return NewSExprEncoder(w) },
	"tree":  func(w io.Writer, colored bool) Encoder { return NewTreeEncoder(w, colored) },
	"lines": func(w io.Writer, _ bool) Encoder { return NewLineEncoder(w) },
	"dsl":   func(w io.Writer, _ bool) Encoder { return NewDSLEncoder(w) },
}

// New returns the encoder registered under name. colored only affects
// the tree format.
func New(name string, w io.Writer, colored bool) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, Names())
	}
	return mk(w, colored), nil
}

func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
