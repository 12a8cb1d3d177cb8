// Package v2 extends the v1 language with the literals true, false and null
// and with bracketed, comma separated arrays. Arrays are top-level forms
// alongside lists.
package v2

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
	Boolean
	Null
	LBracket
	RBracket
	Comma
	At
	Comment
	SourceFile
	List
	Array
	VerbName
	Keyword
	String
	SymbolRef
	SourceFileRepeat
	ListRepeat
	ArrayRepeat
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
	Boolean:          {Name: "boolean", Visible: true, Named: true},
	Null:             {Name: "null", Visible: true, Named: true},
	LBracket:         {Name: "[", Visible: true},
	RBracket:         {Name: "]", Visible: true},
	Comma:            {Name: ",", Visible: true},
	At:               {Name: "@", Visible: true},
	Comment:          {Name: "comment", Visible: true, Named: true},
	SourceFile:       {Name: "source_file", Visible: true, Named: true},
	List:             {Name: "list", Visible: true, Named: true},
	Array:            {Name: "array", Visible: true, Named: true},
	VerbName:         {Name: "verb_name", Visible: true, Named: true},
	Keyword:          {Name: "keyword", Visible: true, Named: true},
	String:           {Name: "string", Visible: true, Named: true},
	SymbolRef:        {Name: "symbol_ref", Visible: true, Named: true},
	SourceFileRepeat: {Name: "source_file_repeat1"},
	ListRepeat:       {Name: "list_repeat1"},
	ArrayRepeat:      {Name: "array_repeat1"},
	StringRepeat:     {Name: "string_repeat1"},
}

// Parser states.
const (
	stateRecover grammar.StateID = iota
	stateStart
	stateListOpen
	stateListVerb
	stateListRepeat
	stateListVerbArgs
	stateListArgs
	stateArrayOpen
	stateArrayComma
	stateArrayRepeatComma
	stateForms
	stateFormsRepeat
	stateArrayFirst
	stateArrayRepeat
	stateArrayElement
	stateArrayRepeatElement
	stateStringOpen
	stateStringBody
	stateStringRepeat
	stateKeywordColon
	stateSymbolAt
	stateList2
	stateList3
	stateList4
	stateArray2
	stateArray3
	stateArray4
	stateArray5
	stateKeyword
	stateString2
	stateString3
	stateSymbolRef
	stateVerbName
	stateAccept
)

var (
	extra = grammar.On(grammar.ShiftExtra(), Comment)

	literals = []grammar.Symbol{Number, Boolean, Null}
	elements = []grammar.Symbol{List, Array, Keyword, String, SymbolRef}

	followExpr = []grammar.Symbol{LParen, RParen, LBracket, RBracket, Comma, Colon, Quote, Number, Boolean, Null, At}
	followForm = append([]grammar.Symbol{End}, followExpr...)
)

// startExpr shifts the first token of any expression. Single-token
// literals go straight to literal.
func startExpr(literal grammar.StateID) map[grammar.Symbol]grammar.Action {
	return grammar.Row(
		grammar.On(grammar.Shift(stateListOpen), LParen),
		grammar.On(grammar.Shift(stateArrayOpen), LBracket),
		grammar.On(grammar.Shift(stateKeywordColon), Colon),
		grammar.On(grammar.Shift(stateStringOpen), Quote),
		grammar.On(grammar.Shift(stateSymbolAt), At),
		grammar.On(grammar.Shift(literal), literals...),
		extra,
	)
}

// continueRepeat reduces the repeat production sym of n children and
// starts the next expression.
func continueRepeat(sym grammar.Symbol, n uint8, literal grammar.StateID) map[grammar.Symbol]grammar.Action {
	return grammar.Row(
		grammar.On(grammar.ShiftRepeat(sym, n, stateListOpen), LParen),
		grammar.On(grammar.ShiftRepeat(sym, n, stateArrayOpen), LBracket),
		grammar.On(grammar.ShiftRepeat(sym, n, stateKeywordColon), Colon),
		grammar.On(grammar.ShiftRepeat(sym, n, stateStringOpen), Quote),
		grammar.On(grammar.ShiftRepeat(sym, n, stateSymbolAt), At),
		grammar.On(grammar.ShiftRepeat(sym, n, literal), literals...),
		extra,
	)
}

func reduceOn(sym grammar.Symbol, n uint8, follow []grammar.Symbol) map[grammar.Symbol]grammar.Action {
	return grammar.Row(grammar.On(grammar.Reduce(sym, n), follow...), extra)
}

func partial(sym grammar.Symbol, n uint8) grammar.Partial {
	return grammar.Partial{Symbol: sym, ChildCount: n}
}

var states = []grammar.ParseState{
	stateRecover: {
		LexMode: lexRecover,
		Actions: grammar.Row(
			grammar.On(grammar.Recover(), End, LParen, RParen, VerbNameToken, Colon, NameToken, Quote,
				StringContent, EscapeSequence, Number, Boolean, Null, LBracket, RBracket, Comma, At),
			extra,
		),
	},
	stateStart: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFile, 0), End),
			grammar.On(grammar.Shift(stateListOpen), LParen),
			grammar.On(grammar.Shift(stateArrayOpen), LBracket),
			extra,
		),
		Gotos: grammar.Gotos(
			grammar.To(stateAccept, SourceFile),
			grammar.To(stateForms, List, Array, SourceFileRepeat),
		),
	},
	stateForms: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFile, 1), End),
			grammar.On(grammar.Shift(stateListOpen), LParen),
			grammar.On(grammar.Shift(stateArrayOpen), LBracket),
			extra,
		),
		Gotos: grammar.To(stateFormsRepeat, List, Array),
	},
	stateFormsRepeat: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFileRepeat, 2), End),
			grammar.On(grammar.ShiftRepeat(SourceFileRepeat, 2, stateListOpen), LParen),
			grammar.On(grammar.ShiftRepeat(SourceFileRepeat, 2, stateArrayOpen), LBracket),
			extra,
		),
	},

	stateListOpen: {
		LexMode: lexMain,
		Actions: grammar.Row(
			startExpr(stateListArgs),
			grammar.On(grammar.Shift(stateList2), RParen),
			grammar.On(grammar.Shift(stateVerbName), VerbNameToken),
		),
		Gotos: grammar.Gotos(
			grammar.To(stateListVerb, VerbName),
			grammar.To(stateListArgs, elements...),
			grammar.To(stateListArgs, ListRepeat),
		),
		Partial: partial(List, 1),
	},
	stateListVerb: {
		LexMode: lexMain,
		Actions: grammar.Row(
			startExpr(stateListVerbArgs),
			grammar.On(grammar.Shift(stateList3), RParen),
		),
		Gotos: grammar.Gotos(
			grammar.To(stateListVerbArgs, elements...),
			grammar.To(stateListVerbArgs, ListRepeat),
		),
		Partial: partial(List, 2),
	},
	stateListArgs: {
		LexMode: lexMain,
		Actions: grammar.Row(
			startExpr(stateListRepeat),
			grammar.On(grammar.Shift(stateList3), RParen),
		),
		Gotos:   grammar.To(stateListRepeat, elements...),
		Partial: partial(List, 2),
	},
	stateListVerbArgs: {
		LexMode: lexMain,
		Actions: grammar.Row(
			startExpr(stateListRepeat),
			grammar.On(grammar.Shift(stateList4), RParen),
		),
		Gotos:   grammar.To(stateListRepeat, elements...),
		Partial: partial(List, 3),
	},
	stateListRepeat: {
		LexMode: lexMain,
		Actions: grammar.Row(
			continueRepeat(ListRepeat, 2, stateListRepeat),
			grammar.On(grammar.Reduce(ListRepeat, 2), RParen),
		),
	},

	stateArrayOpen: {
		LexMode: lexMain,
		Actions: grammar.Row(
			startExpr(stateArrayFirst),
			grammar.On(grammar.Shift(stateArray2), RBracket),
		),
		Gotos:   grammar.To(stateArrayFirst, elements...),
		Partial: partial(Array, 1),
	},
	stateArrayFirst: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Shift(stateArray3), RBracket),
			grammar.On(grammar.Shift(stateArrayComma), Comma),
			extra,
		),
		Gotos:   grammar.To(stateArrayRepeat, ArrayRepeat),
		Partial: partial(Array, 2),
	},
	stateArrayComma: {
		LexMode: lexMain,
		Actions: grammar.Row(
			startExpr(stateArrayElement),
			grammar.On(grammar.Shift(stateArray4), RBracket),
		),
		Gotos:   grammar.To(stateArrayElement, elements...),
		Partial: partial(Array, 3),
	},
	stateArrayElement: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(ArrayRepeat, 2), RBracket),
			grammar.On(grammar.ShiftRepeat(ArrayRepeat, 2, stateArrayRepeatComma), Comma),
			extra,
		),
	},
	stateArrayRepeat: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Shift(stateArray4), RBracket),
			grammar.On(grammar.Shift(stateArrayRepeatComma), Comma),
			extra,
		),
		Partial: partial(Array, 3),
	},
	stateArrayRepeatComma: {
		LexMode: lexMain,
		Actions: grammar.Row(
			startExpr(stateArrayRepeatElement),
			grammar.On(grammar.Shift(stateArray5), RBracket),
		),
		Gotos:   grammar.To(stateArrayRepeatElement, elements...),
		Partial: partial(Array, 4),
	},
	stateArrayRepeatElement: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(ArrayRepeat, 3), RBracket),
			grammar.On(grammar.ShiftRepeat(ArrayRepeat, 3, stateArrayRepeatComma), Comma),
			extra,
		),
	},

	stateStringOpen: {
		LexMode: lexStringBody,
		Actions: grammar.Row(
			grammar.On(grammar.Shift(stateString2), Quote),
			grammar.On(grammar.Shift(stateStringBody), StringContent, EscapeSequence),
		),
		Gotos:   grammar.To(stateStringBody, StringRepeat),
		Partial: partial(String, 1),
	},
	stateStringBody: {
		LexMode: lexStringBody,
		Actions: grammar.Row(
			grammar.On(grammar.Shift(stateString3), Quote),
			grammar.On(grammar.Shift(stateStringRepeat), StringContent, EscapeSequence),
		),
		Gotos:   grammar.To(stateStringRepeat, StringRepeat),
		Partial: partial(String, 2),
	},
	stateStringRepeat: {
		LexMode: lexStringBody,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(StringRepeat, 2), Quote),
			grammar.On(grammar.ShiftRepeat(StringRepeat, 2, stateStringRepeat), StringContent, EscapeSequence),
		),
	},
	stateKeywordColon: {
		LexMode: lexName,
		Actions: grammar.Row(grammar.On(grammar.Shift(stateKeyword), NameToken), extra),
		Partial: partial(Keyword, 1),
	},
	stateSymbolAt: {
		LexMode: lexName,
		Actions: grammar.Row(grammar.On(grammar.Shift(stateSymbolRef), NameToken), extra),
		Partial: partial(SymbolRef, 1),
	},

	stateList2:     {LexMode: lexMain, Actions: reduceOn(List, 2, followForm)},
	stateList3:     {LexMode: lexMain, Actions: reduceOn(List, 3, followForm)},
	stateList4:     {LexMode: lexMain, Actions: reduceOn(List, 4, followForm)},
	stateArray2:    {LexMode: lexMain, Actions: reduceOn(Array, 2, followForm)},
	stateArray3:    {LexMode: lexMain, Actions: reduceOn(Array, 3, followForm)},
	stateArray4:    {LexMode: lexMain, Actions: reduceOn(Array, 4, followForm)},
	stateArray5:    {LexMode: lexMain, Actions: reduceOn(Array, 5, followForm)},
	stateKeyword:   {LexMode: lexMain, Actions: reduceOn(Keyword, 2, followExpr)},
	stateString2:   {LexMode: lexMain, Actions: reduceOn(String, 2, followExpr)},
	stateString3:   {LexMode: lexMain, Actions: reduceOn(String, 3, followExpr)},
	stateSymbolRef: {LexMode: lexMain, Actions: reduceOn(SymbolRef, 2, followExpr)},
	stateVerbName:  {LexMode: lexMain, Actions: reduceOn(VerbName, 1, followExpr)},
	stateAccept: {
		LexMode: lexMain,
		Actions: grammar.Row(grammar.On(grammar.Accept(), End), extra),
	},
}

// Table returns the frozen v2 table.
var Table = sync.OnceValue(func() *grammar.Table {
	return grammar.MustNew(grammar.Definition{
		Name:          "v2",
		Symbols:       symbols,
		TokenCount:    int(SourceFile),
		Root:          SourceFile,
		StartState:    stateStart,
		RecoveryState: stateRecover,
		LexStates:     lexStates,
		States:        states,
		EBNF:          EBNF,
	})
})
