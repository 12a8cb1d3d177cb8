package grammar

import "fmt"

// Symbol identifies a terminal or non-terminal of a grammar.
type Symbol uint16

const (
	// SymbolEnd is the end-of-input terminal present in every table.
	SymbolEnd Symbol = 0
	// SymbolError labels error nodes. It never indexes a table.
	SymbolError Symbol = 0xFFFF
)

// StateID identifies a parser state.
type StateID uint16

// SymbolMetadata describes how a symbol shows up in syntax trees.
type SymbolMetadata struct {
	Name    string
	Visible bool
	Named   bool
}

func (s Symbol) String() string {
	switch s {
	case SymbolEnd:
		return "end"
	case SymbolError:
		return "ERROR"
	}
	return fmt.Sprintf("sym%d", uint16(s))
}
