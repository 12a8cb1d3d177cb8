package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/dslkit/grammar"
	"github.com/dhamidi/dslkit/scanner"
)

// ErrStepLimit is returned when a parse exceeds the bound set with
// WithMaxSteps. It is the only error Parse returns.
var ErrStepLimit = errors.New("parse step limit exceeded")

type Option func(*Parser)

// WithFile sets the file name reported in positions.
func WithFile(file string) Option {
	return func(p *Parser) {
		p.file = file
	}
}

// WithMaxSteps bounds the number of engine steps per parse. Zero means no
// bound.
func WithMaxSteps(n int) Option {
	return func(p *Parser) {
		p.maxSteps = n
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser parses sources with one grammar table. It holds configuration
// only and may be used from several goroutines at once.
type Parser struct {
	table    *grammar.Table
	file     string
	maxSteps int
	log      commonlog.Logger
}

func New(table *grammar.Table, opts ...Option) *Parser {
	p := &Parser{
		table: table,
		log:   commonlog.GetLogger("dslkit.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds a syntax tree for src. Malformed input never fails: errors
// are recorded as ERROR nodes and incomplete constructs in the tree.
func (p *Parser) Parse(src []byte) (*Tree, error) {
	r := &run{
		p:     p,
		t:     p.table,
		src:   src,
		sc:    scanner.New(p.table, src),
		debug: p.log.AllowLevel(commonlog.Debug),
	}
	root, err := r.parse()
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root, Source: src, Language: p.table, File: p.file}, nil
}

// Parse is a shorthand for New(table, opts...).Parse(src).
func Parse(table *grammar.Table, src []byte, opts ...Option) (*Tree, error) {
	return New(table, opts...).Parse(src)
}

type frame struct {
	state grammar.StateID
	node  *Node
}

// run is the state of one parse.
type run struct {
	p     *Parser
	t     *grammar.Table
	src   []byte
	sc    *scanner.Scanner
	debug bool

	stack   []frame
	pos     int
	steps   int
	forced  int
	limit   int
	missing bool
}

func (r *run) top() frame {
	return r.stack[len(r.stack)-1]
}

func (r *run) push(state grammar.StateID, n *Node) {
	r.stack = append(r.stack, frame{state: state, node: n})
}

func (r *run) parse() (*Node, error) {
	r.push(r.t.StartState(), nil)

	var (
		tok     scanner.Token
		lexical bool
		have    bool
	)
	for {
		r.steps++
		if r.p.maxSteps > 0 && r.steps > r.p.maxSteps {
			return nil, fmt.Errorf("%w: %d steps at offset %d", ErrStepLimit, r.p.maxSteps, r.pos)
		}

		state := r.top().state
		if !have || tok.Mode != r.t.LexMode(state) {
			tok, lexical = r.lex(state)
			have = true
		}

		action, ok := r.t.Action(state, tok.Symbol)
		if lexical || !ok || !action.IsValid() {
			if tok.Symbol == grammar.SymbolEnd && !lexical {
				if r.complete(state) {
					continue
				}
				return r.abandon(), nil
			}
			r.skip(state, tok, lexical)
			have = false
			continue
		}

		if r.debug {
			r.p.log.Debugf("state %d: %s on %s at %d", state, action, r.t.SymbolName(tok.Symbol), tok.Start)
		}

		switch action.Kind {
		case grammar.ActionShift:
			r.shift(action.State, tok, false)
			have = false
		case grammar.ActionShiftExtra:
			r.shift(state, tok, true)
			have = false
		case grammar.ActionShiftRepeat:
			r.reduce(action.Symbol, int(action.ChildCount))
			r.shift(action.State, tok, false)
			have = false
		case grammar.ActionReduce:
			r.reduce(action.Symbol, int(action.ChildCount))
		case grammar.ActionAccept:
			return r.accept(), nil
		}
	}
}

// lex scans the next token in the mode of state. A dead end is retried in
// the recovery mode, and failing that one byte becomes an error token. The
// second result reports such a fallback.
func (r *run) lex(state grammar.StateID) (scanner.Token, bool) {
	mode := r.t.LexMode(state)
	tok, ok := r.sc.Scan(r.pos, mode)
	if ok {
		return tok, false
	}
	if recovery := r.t.LexMode(r.t.RecoveryState()); recovery != mode {
		if rt, ok := r.sc.Scan(r.pos, recovery); ok && rt.Symbol != grammar.SymbolEnd {
			rt.Mode = mode
			return rt, true
		}
	}
	tok.Symbol = grammar.SymbolError
	tok.End = tok.Start + 1
	return tok, true
}

func (r *run) leaf(tok scanner.Token) *Node {
	return &Node{
		Symbol:  tok.Symbol,
		Span:    Span{Start: tok.Start, End: tok.End},
		Padding: tok.Padding,
		table:   r.t,
	}
}

func (r *run) shift(state grammar.StateID, tok scanner.Token, extra bool) {
	n := r.leaf(tok)
	n.Extra = extra
	r.pos = tok.End
	r.push(state, n)
}

// hidden reports whether n is spliced into its parent on reduction.
func (r *run) hidden(n *Node) bool {
	return !n.Extra && !n.IsError() && !r.t.IsTerminal(n.Symbol) && !r.t.Symbol(n.Symbol).Visible
}

// reduce pops count non-extra frames, together with the extras between
// them, and pushes the node for sym. Trailing extras are moved after the
// new node so that they stay attached at the level they were found.
func (r *run) reduce(sym grammar.Symbol, count int) *Node {
	end := len(r.stack)
	for end > 1 && r.stack[end-1].node.Extra {
		end--
	}
	trailing := append([]frame(nil), r.stack[end:]...)

	start := end
	for popped := 0; popped < count && start > 1; {
		start--
		if !r.stack[start].node.Extra {
			popped++
		}
	}

	var children []*Node
	for i, f := range r.stack[start:end] {
		switch {
		case r.hidden(f.node) && i == 0:
			children = f.node.Children
		case r.hidden(f.node):
			children = append(children, f.node.Children...)
		default:
			children = append(children, f.node)
		}
	}
	n := r.node(sym, children)

	r.stack = r.stack[:start]
	below := r.top().state
	next, ok := r.t.Goto(below, sym)
	if !ok {
		r.p.log.Warningf("state %d: no goto for %s", below, r.t.SymbolName(sym))
		next = below
	}
	r.push(next, n)
	for _, f := range trailing {
		r.push(next, f.node)
	}
	return n
}

func (r *run) node(sym grammar.Symbol, children []*Node) *Node {
	n := &Node{Symbol: sym, Children: children, table: r.t}
	if len(children) == 0 {
		n.Span = Span{Start: r.pos, End: r.pos}
		return n
	}
	first, last := children[0], children[len(children)-1]
	n.Span = Span{Start: first.Span.Start, End: last.Span.End}
	n.Padding = first.Padding
	return n
}

// skip wraps a token that has no action in an ERROR node and pushes it as
// trivia, merging it with an error node directly before it.
func (r *run) skip(state grammar.StateID, tok scanner.Token, lexical bool) {
	r.pos = tok.End
	bad := r.leaf(tok)

	if prev := r.top().node; prev != nil && prev.IsError() && !prev.Missing {
		if prev.IsLeaf() {
			wrapped := *prev
			wrapped.Error = nil
			wrapped.Extra = false
			prev.Children = []*Node{&wrapped}
		}
		if bad.IsError() {
			bad.Error = &Error{Kind: ErrorLexical, Message: r.invalidMessage(tok)}
		}
		prev.Children = append(prev.Children, bad)
		prev.Span.End = bad.Span.End
		return
	}

	kind, msg := ErrorSyntax, r.unexpectedMessage(tok)
	if lexical {
		kind = ErrorLexical
		if bad.IsError() {
			msg = r.invalidMessage(tok)
		}
	}
	e := &Error{Kind: kind, Message: msg, Expected: r.expected(state), Got: bad.Text(r.src)}

	if bad.IsError() {
		bad.Error = e
		bad.Extra = true
		r.push(state, bad)
		return
	}
	r.push(state, &Node{
		Symbol:   grammar.SymbolError,
		Span:     bad.Span,
		Padding:  bad.Padding,
		Children: []*Node{bad},
		Error:    e,
		Extra:    true,
		table:    r.t,
	})
}

// complete is called at the end of input when the current state has no
// action. It closes the innermost open construct and reports whether the
// parse can continue.
func (r *run) complete(state grammar.StateID) bool {
	if r.limit == 0 {
		r.limit = 2*len(r.stack) + 2
	}
	r.forced++
	if r.forced > r.limit {
		return false
	}

	if a, ok := r.t.DefaultReduce(state); ok {
		r.reduce(a.Symbol, int(a.ChildCount))
		return true
	}
	partial, ok := r.t.Partial(state)
	if !ok {
		return false
	}
	n := r.reduce(partial.Symbol, int(partial.ChildCount))
	n.Incomplete = true
	if !r.missing {
		r.missing = true
		at := n.Span.End
		n.Children = append(n.Children, &Node{
			Symbol:  grammar.SymbolError,
			Span:    Span{Start: at, End: at},
			Missing: true,
			Error: &Error{
				Kind:     ErrorIncomplete,
				Message:  "unexpected end of input in " + r.t.SymbolName(r.visibleAncestor(partial.Symbol)),
				Expected: r.expected(state),
			},
			table: r.t,
		})
	}
	return true
}

// visibleAncestor names repeat productions after the construct they
// belong to for error messages.
func (r *run) visibleAncestor(sym grammar.Symbol) grammar.Symbol {
	if r.t.Symbol(sym).Visible {
		return sym
	}
	for i := len(r.stack) - 1; i >= 0; i-- {
		st := r.stack[i].state
		if p, ok := r.t.Partial(st); ok && r.t.Symbol(p.Symbol).Visible {
			return p.Symbol
		}
	}
	return r.t.Root()
}

func (r *run) accept() *Node {
	var root *Node
	var before, after []*Node
	for _, f := range r.stack[1:] {
		switch {
		case root == nil && !f.node.Extra && f.node.Symbol == r.t.Root():
			root = f.node
		case root == nil:
			before = append(before, f.node)
		default:
			after = append(after, f.node)
		}
	}
	if root == nil {
		return r.abandon()
	}

	children := make([]*Node, 0, len(before)+len(root.Children)+len(after))
	children = append(children, before...)
	children = append(children, root.Children...)
	children = append(children, after...)
	return r.finish(root, children)
}

// abandon wraps whatever is on the stack in a root node. It is the last
// resort when the table offers no way to complete the parse.
func (r *run) abandon() *Node {
	root := &Node{Symbol: r.t.Root(), Incomplete: true, table: r.t}
	var children []*Node
	for _, f := range r.stack[1:] {
		if r.hidden(f.node) {
			children = append(children, f.node.Children...)
			continue
		}
		children = append(children, f.node)
	}
	if !r.missing {
		children = append(children, &Node{
			Symbol:  grammar.SymbolError,
			Span:    Span{Start: r.pos, End: r.pos},
			Missing: true,
			Error: &Error{
				Kind:     ErrorIncomplete,
				Message:  "unexpected end of input",
				Expected: r.expected(r.top().state),
			},
			table: r.t,
		})
	}
	return r.finish(root, children)
}

func (r *run) finish(root *Node, children []*Node) *Node {
	root.Children = children
	root.Span = Span{Start: 0, End: len(r.src)}
	root.Padding = 0
	root.Extra = false
	return root
}

func (r *run) expected(state grammar.StateID) []string {
	syms := r.t.Expected(state)
	names := make([]string, 0, len(syms))
	for _, s := range syms {
		names = append(names, describe(r.t, s))
	}
	return names
}

func describe(t *grammar.Table, s grammar.Symbol) string {
	md := t.Symbol(s)
	if md.Visible && !md.Named {
		return strconv.Quote(md.Name)
	}
	return md.Name
}

func (r *run) unexpectedMessage(tok scanner.Token) string {
	md := r.t.Symbol(tok.Symbol)
	if md.Visible && !md.Named {
		return "unexpected " + strconv.Quote(md.Name)
	}
	return fmt.Sprintf("unexpected %s %q", md.Name, r.src[tok.Start:tok.End])
}

func (r *run) invalidMessage(tok scanner.Token) string {
	return fmt.Sprintf("invalid character %q", r.src[tok.Start:tok.Start+1])
}
