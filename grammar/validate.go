package grammar

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks a definition for internal consistency. All problems are
// reported together.
func Validate(def Definition) error {
	v := validator{def: def}
	v.symbols()
	v.lexer()
	v.states()
	return errors.Join(v.errs...)
}

type validator struct {
	def  Definition
	errs []error
}

func (v *validator) errorf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) symbolOK(s Symbol) bool {
	return int(s) < len(v.def.Symbols)
}

func (v *validator) terminal(s Symbol) bool {
	return int(s) < v.def.TokenCount
}

func (v *validator) symbols() {
	d := v.def
	if d.TokenCount <= 0 || d.TokenCount > len(d.Symbols) {
		v.errorf("token count %d out of range [1, %d]", d.TokenCount, len(d.Symbols))
	}
	if len(d.Symbols) >= int(SymbolError) {
		v.errorf("%d symbols collide with the error symbol", len(d.Symbols))
	}
	if !v.symbolOK(d.Root) || v.terminal(d.Root) {
		v.errorf("root %d is not a non-terminal", d.Root)
	}
	for i, md := range d.Symbols {
		if md.Name == "" {
			v.errorf("symbol %d has no name", i)
		}
	}
}

func (v *validator) lexer() {
	d := v.def
	if len(d.LexStates) == 0 {
		v.errorf("no lexer states")
		return
	}
	for i, ls := range d.LexStates {
		if ls.HasAccept && !v.terminal(ls.Accept) {
			v.errorf("lexer state %d accepts non-terminal %d", i, ls.Accept)
		}
		for _, tr := range ls.Transitions {
			if tr.Lo > tr.Hi {
				v.errorf("lexer state %d: empty range [%q, %q]", i, tr.Lo, tr.Hi)
			}
			if int(tr.Next) >= len(d.LexStates) {
				v.errorf("lexer state %d: transition to missing state %d", i, tr.Next)
			}
		}
	}
}

func (v *validator) states() {
	d := v.def
	if int(d.StartState) >= len(d.States) {
		v.errorf("start state %d out of range", d.StartState)
	}
	if int(d.RecoveryState) >= len(d.States) {
		v.errorf("recovery state %d out of range", d.RecoveryState)
	}

	accepts := 0
	for i, st := range d.States {
		if int(st.LexMode) >= len(d.LexStates) {
			v.errorf("state %d: lexer mode %d out of range", i, st.LexMode)
		}

		syms := make([]Symbol, 0, len(st.Actions))
		for s := range st.Actions {
			syms = append(syms, s)
		}
		slices.Sort(syms)
		for _, s := range syms {
			v.action(i, s, st.Actions[s])
			if st.Actions[s].Kind == ActionAccept {
				accepts++
			}
		}

		for s, next := range st.Gotos {
			if !v.symbolOK(s) || v.terminal(s) {
				v.errorf("state %d: goto on non-nonterminal %d", i, s)
			}
			if int(next) >= len(d.States) {
				v.errorf("state %d: goto %d out of range", i, next)
			}
		}

		if p := st.Partial; p.ChildCount > 0 && (!v.symbolOK(p.Symbol) || v.terminal(p.Symbol)) {
			v.errorf("state %d: partial production %d is not a non-terminal", i, p.Symbol)
		}
	}
	if accepts == 0 {
		v.errorf("no state accepts")
	}
}

func (v *validator) action(state int, s Symbol, a Action) {
	d := v.def
	if !v.terminal(s) {
		v.errorf("state %d: action keyed by non-terminal %d", state, s)
		return
	}
	switch a.Kind {
	case ActionShift:
		if int(a.State) >= len(d.States) {
			v.errorf("state %d: shift to missing state %d", state, a.State)
		}
	case ActionShiftRepeat:
		if int(a.State) >= len(d.States) {
			v.errorf("state %d: repeat shift to missing state %d", state, a.State)
		}
		if v.symbolOK(a.Symbol) && d.Symbols[a.Symbol].Visible {
			v.errorf("state %d: repeat symbol %s is visible", state, d.Symbols[a.Symbol].Name)
		}
		v.production(state, a)
	case ActionReduce:
		v.production(state, a)
	case ActionShiftExtra, ActionAccept, ActionRecover:
	default:
		v.errorf("state %d: unknown action kind %d on %d", state, a.Kind, s)
	}
}

func (v *validator) production(state int, a Action) {
	if !v.symbolOK(a.Symbol) || v.terminal(a.Symbol) {
		v.errorf("state %d: reduction to non-nonterminal %d", state, a.Symbol)
	}
}
