package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dhamidi/dslkit/parser"
)

// ErrSyntax is wrapped by the error Lower returns for trees that contain
// error nodes or incomplete constructs.
var ErrSyntax = errors.New("source has syntax errors")

// Error is a problem found while lowering, at a source position.
type Error struct {
	Position parser.Position
	Message  string
}

func (e *Error) Error() string {
	return e.Position.String() + ": " + e.Message
}

// Lower converts a parse tree of any grammar revision into a Program. All
// problems are reported together, joined with errors.Join.
func Lower(tree *parser.Tree) (*Program, error) {
	if tree.HasError() {
		var errs []error
		for _, d := range tree.Diagnostics() {
			errs = append(errs, &Error{Position: d.Start, Message: d.Message})
		}
		if len(errs) == 0 {
			errs = append(errs, &Error{Position: tree.Position(len(tree.Source)), Message: "incomplete input"})
		}
		return nil, fmt.Errorf("%w: %w", ErrSyntax, errors.Join(errs...))
	}

	l := &lowerer{tree: tree}
	prog := l.program(tree.Root)
	if len(l.errs) > 0 {
		return nil, errors.Join(l.errs...)
	}
	return prog, nil
}

type lowerer struct {
	tree *parser.Tree
	errs []error
}

func (l *lowerer) errorf(n *parser.Node, format string, args ...any) {
	l.errs = append(l.errs, &Error{
		Position: l.tree.Position(n.Span.Start),
		Message:  fmt.Sprintf(format, args...),
	})
}

func (l *lowerer) text(n *parser.Node) string {
	return n.Text(l.tree.Source)
}

func (l *lowerer) program(root *parser.Node) *Program {
	prog := &Program{}
	for _, child := range root.Children {
		switch {
		case child.Type() == "comment":
			prog.Statements = append(prog.Statements, &Comment{
				Text: strings.TrimSpace(strings.TrimPrefix(l.text(child), ";")),
				Span: child.Span,
			})
		case child.Type() == "list":
			if call := l.call(child); call != nil {
				prog.Statements = append(prog.Statements, call)
			}
		case child.IsNamed() && child.IsVisible():
			l.errorf(child, "top-level %s is not a verb call", child.Type())
		}
	}
	return prog
}

func (l *lowerer) call(list *parser.Node) *VerbCall {
	verb := list.FirstChildOfType("verb_name")
	if verb == nil {
		l.errorf(list, "list has no verb name")
		return nil
	}
	call := &VerbCall{Span: list.Span}
	call.Domain, call.Verb = splitVerb(l.text(verb))

	var key *parser.Node
	for _, n := range list.NamedChildren() {
		switch n.Type() {
		case "verb_name":
		case "binding":
			call.Binding = name(l.text(n.FirstChildOfType("symbol_ref")), "@")
		case "keyword":
			if key != nil {
				l.errorf(key, "keyword %s has no value", l.text(key))
			}
			key = n
		default:
			if key == nil {
				l.errorf(n, "%s argument has no keyword", n.Type())
				continue
			}
			call.Arguments = append(call.Arguments, Argument{
				Key:   name(l.text(key), ":"),
				Value: l.value(n),
				Span:  parser.Span{Start: key.Span.Start, End: n.Span.End},
			})
			key = nil
		}
	}
	if key != nil {
		l.errorf(key, "keyword %s has no value", l.text(key))
	}

	// Revisions without a binding token spell it as a trailing :as argument.
	if last := len(call.Arguments) - 1; call.Binding == "" && last >= 0 && call.Arguments[last].Key == "as" {
		if ref, ok := call.Arguments[last].Value.(*SymbolRef); ok {
			call.Binding = ref.Name
			call.Arguments = call.Arguments[:last]
		}
	}
	return call
}

func (l *lowerer) value(n *parser.Node) Value {
	switch n.Type() {
	case "string":
		return l.stringValue(n)
	case "number":
		return l.number(n)
	case "boolean":
		return &Boolean{Value: l.text(n) == "true", Span: n.Span}
	case "null":
		return &Null{Span: n.Span}
	case "symbol_ref":
		return &SymbolRef{Name: name(l.text(n), "@"), Span: n.Span}
	case "array":
		arr := &Array{Span: n.Span}
		for _, item := range n.NamedChildren() {
			arr.Items = append(arr.Items, l.value(item))
		}
		return arr
	case "map":
		return l.mapValue(n)
	case "list":
		if call := l.call(n); call != nil {
			return call
		}
		return nil
	case "keyword":
		l.errorf(n, "keyword %s is not a value", l.text(n))
		return nil
	}
	l.errorf(n, "unexpected %s", n.Type())
	return nil
}

func (l *lowerer) mapValue(n *parser.Node) *Map {
	m := &Map{Span: n.Span}
	children := n.NamedChildren()
	for i := 0; i < len(children); i += 2 {
		key := children[i]
		if key.Type() != "keyword" {
			l.errorf(key, "map key must be a keyword, got %s", key.Type())
			continue
		}
		if i+1 == len(children) {
			l.errorf(key, "keyword %s has no value", l.text(key))
			break
		}
		m.Entries = append(m.Entries, Entry{Key: name(l.text(key), ":"), Value: l.value(children[i+1])})
	}
	return m
}

// stringValue decodes a string literal. Strings that parse as a UUID
// become UUID values.
func (l *lowerer) stringValue(n *parser.Node) Value {
	text := l.text(n)
	body := strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`)
	s, err := unescape(body)
	if err != nil {
		l.errorf(n, "%v", err)
		return nil
	}
	if u, err := uuid.Parse(s); err == nil {
		return &UUID{Value: u, Span: n.Span}
	}
	return &String{Value: s, Span: n.Span}
}

func (l *lowerer) number(n *parser.Node) Value {
	text := l.text(n)
	if strings.Contains(text, ".") {
		d, err := decimal.NewFromString(text)
		if err != nil {
			l.errorf(n, "invalid decimal %s: %v", text, err)
			return nil
		}
		return &Decimal{Value: d, Span: n.Span}
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.errorf(n, "integer %s out of range", text)
		return nil
	}
	return &Integer{Value: i, Span: n.Span}
}

func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			return "", errors.New("string ends in a backslash")
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '"':
			sb.WriteByte(s[i])
		default:
			return "", fmt.Errorf("unknown escape sequence \\%c", s[i])
		}
	}
	return sb.String(), nil
}

// splitVerb splits a verb name at its first dot.
func splitVerb(s string) (domain, verb string) {
	domain, verb, ok := strings.Cut(s, ".")
	if !ok {
		return "", s
	}
	return domain, verb
}

// name strips the sigil of a keyword or symbol reference. Older revisions
// allow whitespace between the two.
func name(text, sigil string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, sigil))
}
