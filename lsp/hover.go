package lsp

import (
	"fmt"
	"strings"

	"github.com/dhamidi/dslkit/parser"
)

// hover describes the node at offset in markdown. It returns false when
// there is nothing worth showing, e.g. over whitespace between forms.
func hover(tree *parser.Tree, offset int) (string, parser.Span, bool) {
	path := tree.Path(offset)
	if len(path) < 2 {
		return "", parser.Span{}, false
	}
	var n *parser.Node
	for _, p := range path[1:] {
		if p.IsNamed() {
			n = p
		}
	}
	if n == nil {
		return "", parser.Span{}, false
	}

	for i := len(path) - 1; i > 0; i-- {
		if e := path[i]; e.IsError() && e.Error != nil {
			return errorHover(e), e.Span, true
		}
	}

	switch n.Type() {
	case "verb_name":
		return verbHover(tree, enclosing(path, "list")), n.Span, true
	case "keyword":
		text := fmt.Sprintf("argument `%s`", n.Text(tree.Source))
		if list := enclosing(path, "list"); list != nil {
			if verb := list.FirstChildOfType("verb_name"); verb != nil {
				text += fmt.Sprintf(" of `%s`", verb.Text(tree.Source))
			}
		}
		return text, n.Span, true
	case "symbol_ref":
		return symbolHover(tree, path, n), n.Span, true
	case "string", "number", "boolean", "null":
		return n.Type(), n.Span, true
	}
	return "", parser.Span{}, false
}

func errorHover(e *parser.Node) string {
	text := "**" + e.Error.Kind.String() + " error**: " + e.Error.Message
	if len(e.Error.Expected) > 0 {
		text += "\n\nexpected one of " + strings.Join(e.Error.Expected, ", ")
	}
	return text
}

func verbHover(tree *parser.Tree, list *parser.Node) string {
	if list == nil {
		return "verb"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "verb `%s`", list.FirstChildOfType("verb_name").Text(tree.Source))

	var keys []string
	args := list.NamedChildren()
	for i, a := range args {
		if a.Type() == "keyword" && !isBindingKeyword(tree, args, i) {
			keys = append(keys, "`"+a.Text(tree.Source)+"`")
		}
	}
	if len(keys) > 0 {
		sb.WriteString("\n\narguments: " + strings.Join(keys, " "))
	}
	if ref := bindingOf(tree, list); ref != nil {
		fmt.Fprintf(&sb, "\n\nbinds `%s`", ref.Text(tree.Source))
	}
	return sb.String()
}

// symbolHover points a symbol reference at the verb call that binds it.
func symbolHover(tree *parser.Tree, path []*parser.Node, ref *parser.Node) string {
	name := ref.Text(tree.Source)
	if list := enclosing(path, "list"); list != nil && bindingOf(tree, list) == ref {
		return fmt.Sprintf("binding `%s`", name)
	}

	var binder *parser.Node
	tree.Walk(func(n *parser.Node) bool {
		if n.Span.Start >= ref.Span.Start {
			return false
		}
		if n.Type() == "list" {
			if b := bindingOf(tree, n); b != nil && b.Span.End <= ref.Span.Start && b.Text(tree.Source) == name {
				binder = n
			}
		}
		return true
	})
	if binder == nil {
		return fmt.Sprintf("symbol `%s` is not bound before this point", name)
	}
	verb := "(list)"
	if v := binder.FirstChildOfType("verb_name"); v != nil {
		verb = v.Text(tree.Source)
	}
	return fmt.Sprintf("symbol `%s`, bound by `%s` at %s", name, verb, tree.Position(binder.Span.Start))
}

func enclosing(path []*parser.Node, typ string) *parser.Node {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Type() == typ {
			return path[i]
		}
	}
	return nil
}
