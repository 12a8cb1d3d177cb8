// Package scanner executes the lexer DFA of a grammar table.
//
// The scanner has no state of its own beyond the input: the parse engine
// chooses the lexer mode for every token from its current parser state, so
// the same bytes may scan differently depending on context.
package scanner

import (
	"fmt"

	"github.com/dhamidi/dslkit/grammar"
)

// Token is a scanned terminal. Padding bytes of whitespace precede Start
// and are not part of the token's text.
type Token struct {
	Symbol  grammar.Symbol
	Padding int
	Start   int
	End     int
	Mode    uint16
}

// FullStart is the offset where the token's leading whitespace begins.
func (t Token) FullStart() int {
	return t.Start - t.Padding
}

// Len is the length of the token text, excluding padding.
func (t Token) Len() int {
	return t.End - t.Start
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Symbol, t.Start, t.End)
}

// Scanner tokenizes one input with one table.
type Scanner struct {
	table *grammar.Table
	input []byte
}

func New(table *grammar.Table, input []byte) *Scanner {
	return &Scanner{table: table, input: input}
}

// AtEOF reports whether pos is at or past the end of input.
func (s *Scanner) AtEOF(pos int) bool {
	return pos >= len(s.input)
}

// Scan runs the DFA from mode at pos and returns the longest token that an
// accepting state was reached for. When nothing but whitespace is left the
// token is grammar.SymbolEnd. When the DFA dead-ends before any accepting
// state, Scan returns false; the token then has Start after the skipped
// whitespace and End == Start.
func (s *Scanner) Scan(pos int, mode uint16) (Token, bool) {
	start := pos
	cur := pos
	state := mode

	var accepted grammar.Symbol
	acceptEnd := -1

	for {
		ls := s.table.LexState(state)
		if ls.HasAccept {
			accepted = ls.Accept
			acceptEnd = cur
		}
		if cur >= len(s.input) {
			break
		}
		tr, ok := ls.Next(s.input[cur])
		if !ok {
			break
		}
		cur++
		if tr.Skip {
			start = cur
		}
		state = tr.Next
	}

	tok := Token{Padding: start - pos, Start: start, End: start, Mode: mode}
	switch {
	case acceptEnd >= 0:
		tok.Symbol = accepted
		tok.End = acceptEnd
		return tok, true
	case start >= len(s.input):
		tok.Symbol = grammar.SymbolEnd
		return tok, true
	}
	return tok, false
}
