package grammar

// LexTransition moves the lexer DFA on any byte in [Lo, Hi]. A Skip
// transition consumes the byte as whitespace: the token start moves past it.
type LexTransition struct {
	Lo, Hi byte
	Next   uint16
	Skip   bool
}

// LexState is one DFA state. Transitions are tried in order and the first
// match wins, so literal branches must precede the generic ranges they
// overlap.
type LexState struct {
	Accept      Symbol
	HasAccept   bool
	Transitions []LexTransition
}

// Next returns the transition taken on b.
func (s *LexState) Next(b byte) (LexTransition, bool) {
	for _, t := range s.Transitions {
		if b >= t.Lo && b <= t.Hi {
			return t, true
		}
	}
	return LexTransition{}, false
}

// Accepting returns a state that accepts sym and continues with the given
// transitions.
func Accepting(sym Symbol, transitions ...[]LexTransition) LexState {
	return LexState{Accept: sym, HasAccept: true, Transitions: Edges(transitions...)}
}

// Moving returns a non-accepting state.
func Moving(transitions ...[]LexTransition) LexState {
	return LexState{Transitions: Edges(transitions...)}
}

// Edges concatenates transition groups, preserving order.
func Edges(groups ...[]LexTransition) []LexTransition {
	var out []LexTransition
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Byte is a transition on a single byte.
func Byte(c byte, next uint16) []LexTransition {
	return []LexTransition{{Lo: c, Hi: c, Next: next}}
}

// Bytes is a transition on each byte of set.
func Bytes(set string, next uint16) []LexTransition {
	out := make([]LexTransition, 0, len(set))
	for i := 0; i < len(set); i++ {
		out = append(out, LexTransition{Lo: set[i], Hi: set[i], Next: next})
	}
	return out
}

// Span is a transition on the inclusive byte range [lo, hi].
func Span(lo, hi byte, next uint16) []LexTransition {
	return []LexTransition{{Lo: lo, Hi: hi, Next: next}}
}

// Except is a transition on every byte not in set.
func Except(set string, next uint16) []LexTransition {
	var excluded [256]bool
	for i := 0; i < len(set); i++ {
		excluded[set[i]] = true
	}
	var out []LexTransition
	for lo := 0; lo < 256; {
		if excluded[lo] {
			lo++
			continue
		}
		hi := lo
		for hi+1 < 256 && !excluded[hi+1] {
			hi++
		}
		out = append(out, LexTransition{Lo: byte(lo), Hi: byte(hi), Next: next})
		lo = hi + 1
	}
	return out
}

// Skip is a whitespace transition on each byte of set.
func Skip(set string, next uint16) []LexTransition {
	out := Bytes(set, next)
	for i := range out {
		out[i].Skip = true
	}
	return out
}
