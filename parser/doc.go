// Package parser runs the shift/reduce automaton described by a grammar
// table and builds an error-tolerant, lossless syntax tree.
//
// # Overview
//
//	┌─────────────┐   mode    ┌─────────────┐
//	│   Parser    │──────────▶│   Scanner   │
//	│   (stack)   │◀──────────│    (DFA)    │
//	└─────────────┘   token   └─────────────┘
//	       │
//	       ▼
//	┌─────────────┐
//	│   Grammar   │  action / goto lookup
//	│    Table    │
//	└─────────────┘
//
// The engine keeps a stack of (state, node) frames. For every step it asks
// the scanner for a token in the lexer mode of the top state, looks up the
// action for that token and shifts, reduces or accepts. When a reduction
// exposes a state with a different lexer mode, the lookahead is scanned
// again in that mode.
//
// # Trees
//
// Every node records the byte span of its text and the whitespace padding
// before it. Comments are kept as extra nodes. The full spans of the leaves
// cover the source without gaps up to the whitespace after the last one,
// which belongs to the root span only:
//
//	tree, _ := parser.Parse(v3.Table(), src)
//	tree.SourceText() == string(src) // always true
//
// Repeat productions are hidden: their children are spliced into the
// enclosing list, array, map or string, so long sequences stay flat.
//
// # Error Recovery
//
// Parse never fails on malformed input:
//
//   - A token with no action is wrapped in an ERROR node and skipped.
//     Consecutive skipped tokens share one ERROR node.
//   - Bytes the current lexer mode cannot match are scanned again in the
//     recovery mode; if that fails too, one byte is skipped.
//   - At the end of input, open constructs are closed innermost first and
//     flagged Incomplete. A zero-width ERROR node marked Missing records
//     where the input ended.
//
// Tree.Diagnostics resolves the error nodes to line and column positions.
package parser
