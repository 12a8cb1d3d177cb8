package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/dslkit/parser"
)

// documentSymbols outlines the top-level forms of tree. Verb calls list
// their keyword arguments as children; nested calls appear below the
// argument that holds them.
func documentSymbols(tree *parser.Tree) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, n := range tree.Root.NamedChildren() {
		if sym, ok := formSymbol(tree, n); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func formSymbol(tree *parser.Tree, n *parser.Node) (protocol.DocumentSymbol, bool) {
	switch n.Type() {
	case "list":
		return listSymbol(tree, n), true
	case "array":
		return protocol.DocumentSymbol{
			Name:           "[...]",
			Kind:           protocol.SymbolKindArray,
			Range:          rangeOf(tree, n.Span),
			SelectionRange: rangeOf(tree, n.Span),
		}, true
	case "map":
		return protocol.DocumentSymbol{
			Name:           "{...}",
			Kind:           protocol.SymbolKindObject,
			Range:          rangeOf(tree, n.Span),
			SelectionRange: rangeOf(tree, n.Span),
		}, true
	}
	return protocol.DocumentSymbol{}, false
}

func listSymbol(tree *parser.Tree, list *parser.Node) protocol.DocumentSymbol {
	sym := protocol.DocumentSymbol{
		Name:           "(list)",
		Kind:           protocol.SymbolKindFunction,
		Range:          rangeOf(tree, list.Span),
		SelectionRange: rangeOf(tree, list.Span),
	}
	if verb := list.FirstChildOfType("verb_name"); verb != nil {
		sym.Name = verb.Text(tree.Source)
		sym.SelectionRange = rangeOf(tree, verb.Span)
	}
	if ref := bindingOf(tree, list); ref != nil {
		detail := ref.Text(tree.Source)
		sym.Detail = &detail
	}

	args := list.NamedChildren()
	for i := 0; i < len(args); i++ {
		key := args[i]
		if key.Type() != "keyword" || i+1 >= len(args) || isBindingKeyword(tree, args, i) {
			continue
		}
		value := args[i+1]
		i++

		arg := protocol.DocumentSymbol{
			Name:           key.Text(tree.Source),
			Kind:           protocol.SymbolKindProperty,
			Range:          rangeOf(tree, parser.Span{Start: key.Span.Start, End: value.Span.End}),
			SelectionRange: rangeOf(tree, key.Span),
		}
		if value.Type() == "list" {
			arg.Children = []protocol.DocumentSymbol{listSymbol(tree, value)}
		}
		sym.Children = append(sym.Children, arg)
	}
	return sym
}

// bindingOf returns the symbol_ref a verb call binds its result to. Tables
// without a binding production spell it as a trailing ":as" argument.
func bindingOf(tree *parser.Tree, list *parser.Node) *parser.Node {
	if b := list.FirstChildOfType("binding"); b != nil {
		return b.FirstChildOfType("symbol_ref")
	}
	args := list.NamedChildren()
	if n := len(args); n >= 2 && isBindingKeyword(tree, args, n-2) {
		return args[n-1]
	}
	return nil
}

func isBindingKeyword(tree *parser.Tree, args []*parser.Node, i int) bool {
	return i == len(args)-2 &&
		args[i].Type() == "keyword" &&
		args[i].Text(tree.Source) == ":as" &&
		args[i+1].Type() == "symbol_ref"
}
