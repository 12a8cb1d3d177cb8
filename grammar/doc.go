// Package grammar holds the static, precomputed tables that drive the scanner
// and the parse engine.
//
// A Table is pure data: symbol metadata, one lexer DFA shared by several
// lexer modes, and one row of parse actions per parser state. Tables are
// produced offline (by a parser generator or by hand) and frozen with New;
// nothing in this module computes LR or DFA states.
//
// # Symbols
//
// Symbols below TokenCount are terminals, the rest are non-terminals. Two
// symbols are built in: SymbolEnd (end of input, always 0) and SymbolError,
// which never appears in a table but labels error nodes in syntax trees.
//
// # Actions
//
// Each parser state maps terminals to one Action:
//
//	Shift(s)              consume the lookahead, go to state s
//	ShiftExtra()          consume trivia (comments) without changing state
//	ShiftRepeat(r, n, s)  reduce the repeat production r of n children, then shift into s
//	Reduce(r, n)          pop n children, build r, follow the goto of the exposed state
//	Accept()              the input is a complete source file
//	Recover()             no valid continuation; the engine starts error recovery
//
// A missing entry behaves like Recover.
package grammar
