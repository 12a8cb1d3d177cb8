package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/dslkit/parser"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(tree, tree.Root), "", "  ")
}

type jsonNode struct {
	Kind       string      `json:"kind"`
	Named      bool        `json:"named,omitempty"`
	Extra      bool        `json:"extra,omitempty"`
	Incomplete bool        `json:"incomplete,omitempty"`
	Missing    bool        `json:"missing,omitempty"`
	Span       jsonSpan    `json:"span"`
	Text       string      `json:"text,omitempty"`
	Error      *jsonError  `json:"error,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func position(tree *parser.Tree, offset int) jsonPosition {
	p := tree.Position(offset)
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func nodeToJSON(tree *parser.Tree, n *parser.Node) *jsonNode {
	jn := &jsonNode{
		Kind:       n.Type(),
		Named:      n.IsNamed() && n.IsVisible(),
		Extra:      n.Extra,
		Incomplete: n.Incomplete,
		Missing:    n.Missing,
		Span: jsonSpan{
			Start: position(tree, n.Span.Start),
			End:   position(tree, n.Span.End),
		},
	}

	if n != tree.Root && n.IsLeaf() {
		jn.Text = n.Text(tree.Source)
	}

	if n.Error != nil {
		jn.Error = &jsonError{
			Kind:     n.Error.Kind.String(),
			Message:  n.Error.Message,
			Expected: n.Error.Expected,
			Got:      n.Error.Got,
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(tree, child)
		}
	}

	return jn
}
