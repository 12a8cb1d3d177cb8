package grammar

import (
	"fmt"
	"slices"
)

// denseThreshold is the number of actions above which a state row is stored
// densely, indexed by symbol.
const denseThreshold = 8

// Partial names the production a shift-only state is in the middle of and
// how many of its children are already on the stack.
type Partial struct {
	Symbol     Symbol
	ChildCount uint8
}

// ParseState is the definition of one parser state.
type ParseState struct {
	LexMode uint16
	Actions map[Symbol]Action
	Gotos   map[Symbol]StateID
	Partial Partial
}

// Definition is the raw form of a table, as written by a revision package.
type Definition struct {
	Name          string
	Symbols       []SymbolMetadata
	TokenCount    int
	Root          Symbol
	StartState    StateID
	RecoveryState StateID
	LexStates     []LexState
	States        []ParseState
	EBNF          string
}

type entry struct {
	sym    Symbol
	action Action
}

type row struct {
	dense    []Action
	sparse   []entry
	gotos    map[Symbol]StateID
	lexMode  uint16
	partial  Partial
	fallback Action
	expected []Symbol
}

// Table is a frozen grammar revision. It is never mutated after New and may
// be shared by any number of concurrent parses.
type Table struct {
	name          string
	symbols       []SymbolMetadata
	byName        map[string]Symbol
	tokenCount    int
	root          Symbol
	startState    StateID
	recoveryState StateID
	lexStates     []LexState
	rows          []row
	ebnf          string
}

// New validates def and freezes it into a Table.
func New(def Definition) (*Table, error) {
	if err := Validate(def); err != nil {
		return nil, fmt.Errorf("grammar %s: %w", def.Name, err)
	}

	t := &Table{
		name:          def.Name,
		symbols:       slices.Clone(def.Symbols),
		byName:        make(map[string]Symbol, len(def.Symbols)),
		tokenCount:    def.TokenCount,
		root:          def.Root,
		startState:    def.StartState,
		recoveryState: def.RecoveryState,
		lexStates:     slices.Clone(def.LexStates),
		rows:          make([]row, len(def.States)),
		ebnf:          def.EBNF,
	}
	for i, md := range t.symbols {
		if _, dup := t.byName[md.Name]; !dup {
			t.byName[md.Name] = Symbol(i)
		}
	}

	for i, st := range def.States {
		r := row{
			gotos:   st.Gotos,
			lexMode: st.LexMode,
			partial: st.Partial,
		}
		syms := make([]Symbol, 0, len(st.Actions))
		for s := range st.Actions {
			syms = append(syms, s)
		}
		slices.Sort(syms)

		if len(syms) > denseThreshold {
			r.dense = make([]Action, t.tokenCount)
			for _, s := range syms {
				r.dense[s] = st.Actions[s]
			}
		} else {
			for _, s := range syms {
				r.sparse = append(r.sparse, entry{sym: s, action: st.Actions[s]})
			}
		}

		for _, s := range syms {
			a := st.Actions[s]
			if a.reduces() && r.fallback.Kind == NoAction {
				r.fallback = Reduce(a.Symbol, a.ChildCount)
			}
			switch a.Kind {
			case ActionShift, ActionShiftRepeat, ActionReduce, ActionAccept:
				r.expected = append(r.expected, s)
			}
		}
		t.rows[i] = r
	}
	return t, nil
}

// MustNew is like New but panics on an invalid definition. It is meant for
// tables compiled into the binary.
func MustNew(def Definition) *Table {
	t, err := New(def)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string           { return t.name }
func (t *Table) SymbolCount() int       { return len(t.symbols) }
func (t *Table) TokenCount() int        { return t.tokenCount }
func (t *Table) StateCount() int        { return len(t.rows) }
func (t *Table) LexStateCount() int     { return len(t.lexStates) }
func (t *Table) Root() Symbol           { return t.root }
func (t *Table) StartState() StateID    { return t.startState }
func (t *Table) RecoveryState() StateID { return t.recoveryState }

// EBNF returns the revision's grammar in golang.org/x/exp/ebnf notation.
func (t *Table) EBNF() string { return t.ebnf }

// Symbol returns the metadata of s. SymbolError is reported as a visible,
// named symbol called "ERROR".
func (t *Table) Symbol(s Symbol) SymbolMetadata {
	if s == SymbolError {
		return SymbolMetadata{Name: "ERROR", Visible: true, Named: true}
	}
	if int(s) < len(t.symbols) {
		return t.symbols[s]
	}
	return SymbolMetadata{Name: s.String()}
}

func (t *Table) SymbolName(s Symbol) string {
	return t.Symbol(s).Name
}

// SymbolByName looks up the first symbol called name.
func (t *Table) SymbolByName(name string) (Symbol, bool) {
	if name == "ERROR" {
		return SymbolError, true
	}
	s, ok := t.byName[name]
	return s, ok
}

func (t *Table) IsTerminal(s Symbol) bool {
	return int(s) < t.tokenCount
}

// Action returns the entry for the terminal sym in state.
func (t *Table) Action(state StateID, sym Symbol) (Action, bool) {
	if int(state) >= len(t.rows) || int(sym) >= t.tokenCount {
		return Action{}, false
	}
	r := &t.rows[state]
	if r.dense != nil {
		a := r.dense[sym]
		return a, a.Kind != NoAction
	}
	for _, e := range r.sparse {
		if e.sym == sym {
			return e.action, true
		}
		if e.sym > sym {
			break
		}
	}
	return Action{}, false
}

// Goto returns the state reached from state after reducing sym.
func (t *Table) Goto(state StateID, sym Symbol) (StateID, bool) {
	if int(state) >= len(t.rows) {
		return 0, false
	}
	next, ok := t.rows[state].gotos[sym]
	return next, ok
}

// LexMode returns the lexer DFA entry state used to scan tokens in state.
func (t *Table) LexMode(state StateID) uint16 {
	if int(state) >= len(t.rows) {
		return 0
	}
	return t.rows[state].lexMode
}

// LexState returns DFA state i.
func (t *Table) LexState(i uint16) *LexState {
	return &t.lexStates[i]
}

// Partial returns the production state is in the middle of, if the table
// records one.
func (t *Table) Partial(state StateID) (Partial, bool) {
	if int(state) >= len(t.rows) {
		return Partial{}, false
	}
	p := t.rows[state].partial
	return p, p.ChildCount > 0
}

// DefaultReduce returns the reduction performed by state for some
// lookahead, if any.
func (t *Table) DefaultReduce(state StateID) (Action, bool) {
	if int(state) >= len(t.rows) {
		return Action{}, false
	}
	a := t.rows[state].fallback
	return a, a.Kind != NoAction
}

// Expected returns the terminals that continue the parse in state, in
// symbol order. Trivia is not included.
func (t *Table) Expected(state StateID) []Symbol {
	if int(state) >= len(t.rows) {
		return nil
	}
	return t.rows[state].expected
}
