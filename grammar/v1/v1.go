// Package v1 is the first table generation of the verb DSL: lists with an
// optional dotted verb name, keywords, strings, numbers, symbol references
// and line comments.
package v1

import (
	"sync"

	"github.com/dhamidi/dslkit/grammar"
)

const (
	End grammar.Symbol = iota
	LParen
	RParen
	VerbNameToken
	Colon
	NameToken
	Quote
	StringContent
	EscapeSequence
	Number
	At
	Comment
	SourceFile
	Expression
	List
	VerbName
	Keyword
	String
	SymbolRef
	SourceFileRepeat
	ListRepeat
	StringRepeat
)

var symbols = []grammar.SymbolMetadata{
	End:              {Name: "end", Named: true},
	LParen:           {Name: "(", Visible: true},
	RParen:           {Name: ")", Visible: true},
	VerbNameToken:    {Name: "verb_name_token1"},
	Colon:            {Name: ":", Visible: true},
	NameToken:        {Name: "keyword_token1"},
	Quote:            {Name: `"`, Visible: true},
	StringContent:    {Name: "string_token1"},
	EscapeSequence:   {Name: "string_token2"},
	Number:           {Name: "number", Visible: true, Named: true},
	At:               {Name: "@", Visible: true},
	Comment:          {Name: "comment", Visible: true, Named: true},
	SourceFile:       {Name: "source_file", Visible: true, Named: true},
	Expression:       {Name: "_expression", Named: true},
	List:             {Name: "list", Visible: true, Named: true},
	VerbName:         {Name: "verb_name", Visible: true, Named: true},
	Keyword:          {Name: "keyword", Visible: true, Named: true},
	String:           {Name: "string", Visible: true, Named: true},
	SymbolRef:        {Name: "symbol_ref", Visible: true, Named: true},
	SourceFileRepeat: {Name: "source_file_repeat1"},
	ListRepeat:       {Name: "list_repeat1"},
	StringRepeat:     {Name: "string_repeat1"},
}

// Lexer modes.
const (
	lexMain uint16 = iota
	lexListHead
	lexStringBody
	lexName
	lexMinus
	lexDot
	lexBackslash
	lexLParen
	lexRParen
	lexVerb
	lexDottedVerb
	lexColon
	lexNameBody
	lexQuote
	lexContent
	lexEscaped
	lexInteger
	lexFraction
	lexAt
	lexComment
)

const whitespace = " \t\n\r"

func nameStart(next uint16) []grammar.LexTransition {
	return grammar.Edges(
		grammar.Span('A', 'Z', next),
		grammar.Byte('_', next),
		grammar.Span('a', 'z', next),
	)
}

func namePart(next uint16) []grammar.LexTransition {
	return grammar.Edges(
		grammar.Byte('-', next),
		grammar.Span('0', '9', next),
		nameStart(next),
	)
}

var lexStates = []grammar.LexState{
	lexMain: grammar.Moving(
		grammar.Byte('"', lexQuote),
		grammar.Byte('(', lexLParen),
		grammar.Byte(')', lexRParen),
		grammar.Byte('-', lexMinus),
		grammar.Byte(':', lexColon),
		grammar.Byte(';', lexComment),
		grammar.Byte('@', lexAt),
		grammar.Byte('\\', lexBackslash),
		grammar.Skip(whitespace, lexMain),
		grammar.Span('0', '9', lexInteger),
		nameStart(lexVerb),
	),
	lexListHead: grammar.Moving(
		grammar.Byte('"', lexQuote),
		grammar.Byte('(', lexLParen),
		grammar.Byte(')', lexRParen),
		grammar.Byte('-', lexMinus),
		grammar.Byte(':', lexColon),
		grammar.Byte(';', lexComment),
		grammar.Byte('@', lexAt),
		grammar.Skip(whitespace, lexListHead),
		grammar.Span('0', '9', lexInteger),
		nameStart(lexDottedVerb),
	),
	lexStringBody: grammar.Moving(
		grammar.Byte('"', lexQuote),
		grammar.Byte('\\', lexBackslash),
		grammar.Except(`"\`, lexContent),
	),
	lexName: grammar.Moving(
		grammar.Byte(';', lexComment),
		grammar.Skip(whitespace, lexName),
		nameStart(lexNameBody),
	),
	lexMinus:      grammar.Moving(grammar.Span('0', '9', lexInteger)),
	lexDot:        grammar.Moving(grammar.Span('0', '9', lexFraction)),
	lexBackslash:  grammar.Moving(grammar.Except("\n", lexEscaped)),
	lexLParen:     grammar.Accepting(LParen),
	lexRParen:     grammar.Accepting(RParen),
	lexVerb:       grammar.Accepting(VerbNameToken, grammar.Byte('.', lexDottedVerb), namePart(lexVerb)),
	lexDottedVerb: grammar.Accepting(VerbNameToken, grammar.Byte('.', lexDottedVerb), namePart(lexDottedVerb)),
	lexColon:      grammar.Accepting(Colon),
	lexNameBody:   grammar.Accepting(NameToken, namePart(lexNameBody)),
	lexQuote:      grammar.Accepting(Quote),
	lexContent:    grammar.Accepting(StringContent, grammar.Except(`"\`, lexContent)),
	lexEscaped:    grammar.Accepting(EscapeSequence),
	lexInteger:    grammar.Accepting(Number, grammar.Byte('.', lexDot), grammar.Span('0', '9', lexInteger)),
	lexFraction:   grammar.Accepting(Number, grammar.Span('0', '9', lexFraction)),
	lexAt:         grammar.Accepting(At),
	lexComment:    grammar.Accepting(Comment, grammar.Except("\n", lexComment)),
}

var (
	extra = grammar.On(grammar.ShiftExtra(), Comment)

	// Lookaheads that may follow a complete expression.
	followExpr = []grammar.Symbol{LParen, RParen, Colon, Quote, Number, At}
	// followList adds the end of input for top-level lists.
	followList = append([]grammar.Symbol{End}, followExpr...)

	// Non-terminals that stand for one list element.
	elements = []grammar.Symbol{Expression, List, Keyword, String, SymbolRef}
)

func reduceOn(sym grammar.Symbol, n uint8, follow []grammar.Symbol) map[grammar.Symbol]grammar.Action {
	return grammar.Row(grammar.On(grammar.Reduce(sym, n), follow...), extra)
}

func repeatList(n uint8) map[grammar.Symbol]grammar.Action {
	return grammar.Row(
		grammar.On(grammar.ShiftRepeat(ListRepeat, n, 2), LParen),
		grammar.On(grammar.Reduce(ListRepeat, n), RParen),
		grammar.On(grammar.ShiftRepeat(ListRepeat, n, 20), Colon),
		grammar.On(grammar.ShiftRepeat(ListRepeat, n, 15), Quote),
		grammar.On(grammar.ShiftRepeat(ListRepeat, n, 4), Number),
		grammar.On(grammar.ShiftRepeat(ListRepeat, n, 21), At),
		extra,
	)
}

// listBody is the row of a state inside a list after at least one element
// or the verb name: close the list with closeState or start another element,
// shifting numbers into numberState.
func listBody(closeState, numberState grammar.StateID) map[grammar.Symbol]grammar.Action {
	return grammar.Row(
		grammar.On(grammar.Shift(2), LParen),
		grammar.On(grammar.Shift(closeState), RParen),
		grammar.On(grammar.Shift(20), Colon),
		grammar.On(grammar.Shift(15), Quote),
		grammar.On(grammar.Shift(numberState), Number),
		grammar.On(grammar.Shift(21), At),
		extra,
	)
}

var states = []grammar.ParseState{
	0: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Recover(), End, LParen, RParen, VerbNameToken, Colon, NameToken,
				Quote, StringContent, EscapeSequence, Number, At),
			extra,
		),
	},
	1: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFile, 0), End),
			grammar.On(grammar.Shift(2), LParen),
			extra,
		),
		Gotos: grammar.Gotos(
			grammar.To(22, SourceFile),
			grammar.To(18, List, SourceFileRepeat),
		),
	},
	2: {
		LexMode: lexListHead,
		Actions: grammar.Row(
			listBody(7, 6),
			grammar.On(grammar.Shift(13), VerbNameToken),
		),
		Gotos: grammar.Gotos(
			grammar.To(6, elements...),
			grammar.To(6, ListRepeat),
			grammar.To(3, VerbName),
		),
		Partial: grammar.Partial{Symbol: List, ChildCount: 1},
	},
	3: {
		LexMode: lexMain,
		Actions: listBody(8, 5),
		Gotos:   grammar.Gotos(grammar.To(5, elements...), grammar.To(5, ListRepeat)),
		Partial: grammar.Partial{Symbol: List, ChildCount: 2},
	},
	4: {
		LexMode: lexMain,
		Actions: repeatList(2),
		Gotos:   grammar.Gotos(grammar.To(4, elements...), grammar.To(4, ListRepeat)),
	},
	5: {
		LexMode: lexMain,
		Actions: listBody(9, 4),
		Gotos:   grammar.To(4, elements...),
		Partial: grammar.Partial{Symbol: List, ChildCount: 3},
	},
	6: {
		LexMode: lexMain,
		Actions: listBody(8, 4),
		Gotos:   grammar.To(4, elements...),
		Partial: grammar.Partial{Symbol: List, ChildCount: 2},
	},
	7:  {LexMode: lexMain, Actions: reduceOn(List, 2, followList)},
	8:  {LexMode: lexMain, Actions: reduceOn(List, 3, followList)},
	9:  {LexMode: lexMain, Actions: reduceOn(List, 4, followList)},
	10: {LexMode: lexMain, Actions: reduceOn(Keyword, 2, followExpr)},
	11: {LexMode: lexMain, Actions: reduceOn(String, 2, followExpr)},
	12: {LexMode: lexMain, Actions: reduceOn(SymbolRef, 2, followExpr)},
	13: {LexMode: lexMain, Actions: reduceOn(VerbName, 1, followExpr)},
	14: {LexMode: lexMain, Actions: reduceOn(String, 3, followExpr)},
	15: {
		LexMode: lexStringBody,
		Actions: grammar.Row(
			grammar.On(grammar.Shift(11), Quote),
			grammar.On(grammar.Shift(17), StringContent, EscapeSequence),
			extra,
		),
		Gotos:   grammar.To(17, StringRepeat),
		Partial: grammar.Partial{Symbol: String, ChildCount: 1},
	},
	16: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFileRepeat, 2), End),
			grammar.On(grammar.ShiftRepeat(SourceFileRepeat, 2, 2), LParen),
			extra,
		),
		Gotos: grammar.To(16, List, SourceFileRepeat),
	},
	17: {
		LexMode: lexStringBody,
		Actions: grammar.Row(
			grammar.On(grammar.Shift(14), Quote),
			grammar.On(grammar.Shift(19), StringContent, EscapeSequence),
			extra,
		),
		Gotos:   grammar.To(19, StringRepeat),
		Partial: grammar.Partial{Symbol: String, ChildCount: 2},
	},
	18: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFile, 1), End),
			grammar.On(grammar.Shift(2), LParen),
			extra,
		),
		Gotos: grammar.To(16, List, SourceFileRepeat),
	},
	19: {
		LexMode: lexStringBody,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(StringRepeat, 2), Quote),
			grammar.On(grammar.ShiftRepeat(StringRepeat, 2, 19), StringContent, EscapeSequence),
			extra,
		),
		Gotos: grammar.To(19, StringRepeat),
	},
	20: {
		LexMode: lexName,
		Actions: grammar.Row(grammar.On(grammar.Shift(10), NameToken), extra),
		Partial: grammar.Partial{Symbol: Keyword, ChildCount: 1},
	},
	21: {
		LexMode: lexName,
		Actions: grammar.Row(grammar.On(grammar.Shift(12), NameToken), extra),
		Partial: grammar.Partial{Symbol: SymbolRef, ChildCount: 1},
	},
	22: {
		LexMode: lexMain,
		Actions: grammar.Row(grammar.On(grammar.Accept(), End), extra),
	},
}

// Table returns the frozen v1 table.
var Table = sync.OnceValue(func() *grammar.Table {
	return grammar.MustNew(grammar.Definition{
		Name:          "v1",
		Symbols:       symbols,
		TokenCount:    int(SourceFile),
		Root:          SourceFile,
		StartState:    1,
		RecoveryState: 0,
		LexStates:     lexStates,
		States:        states,
		EBNF:          EBNF,
	})
})
