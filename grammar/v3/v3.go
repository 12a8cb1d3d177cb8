// Package v3 is the current table generation. On top of v2 it adds brace
// maps, single-token keywords and the binding suffix ":as @name" that
// closes a verb call. Lists, arrays and maps are all top-level forms.
//
// ":as" is recognised only by the lexer mode of list-argument states, so
// the same bytes are an ordinary keyword inside maps and arrays.
package v3

import (
	"sync"

	"github.com/dhamidi/dslkit/grammar"
)

const (
	End grammar.Symbol = iota
	LParen
	RParen
	VerbNameToken
	Keyword
	As
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
	LBrace
	RBrace
	At
	Comment
	SourceFile
	List
	Array
	Map
	VerbName
	String
	SymbolRef
	Binding
	SourceFileRepeat
	ListRepeat
	ArrayRepeat
	MapRepeat
	StringRepeat
)

var symbols = []grammar.SymbolMetadata{
	End:              {Name: "end", Named: true},
	LParen:           {Name: "(", Visible: true},
	RParen:           {Name: ")", Visible: true},
	VerbNameToken:    {Name: "verb_name_token1"},
	Keyword:          {Name: "keyword", Visible: true, Named: true},
	As:               {Name: ":as", Visible: true},
	NameToken:        {Name: "symbol_ref_token1"},
	Quote:            {Name: `"`, Visible: true},
	StringContent:    {Name: "string_token1"},
	EscapeSequence:   {Name: "string_token2"},
	Number:           {Name: "number", Visible: true, Named: true},
	Boolean:          {Name: "boolean", Visible: true, Named: true},
	Null:             {Name: "null", Visible: true, Named: true},
	LBracket:         {Name: "[", Visible: true},
	RBracket:         {Name: "]", Visible: true},
	Comma:            {Name: ",", Visible: true},
	LBrace:           {Name: "{", Visible: true},
	RBrace:           {Name: "}", Visible: true},
	At:               {Name: "@", Visible: true},
	Comment:          {Name: "comment", Visible: true, Named: true},
	SourceFile:       {Name: "source_file", Visible: true, Named: true},
	List:             {Name: "list", Visible: true, Named: true},
	Array:            {Name: "array", Visible: true, Named: true},
	Map:              {Name: "map", Visible: true, Named: true},
	VerbName:         {Name: "verb_name", Visible: true, Named: true},
	String:           {Name: "string", Visible: true, Named: true},
	SymbolRef:        {Name: "symbol_ref", Visible: true, Named: true},
	Binding:          {Name: "binding", Visible: true, Named: true},
	SourceFileRepeat: {Name: "source_file_repeat1"},
	ListRepeat:       {Name: "list_repeat1"},
	ArrayRepeat:      {Name: "array_repeat1"},
	MapRepeat:        {Name: "map_repeat1"},
	StringRepeat:     {Name: "string_repeat1"},
}

// Parser states.
const (
	stateRecover grammar.StateID = iota
	stateStart
	stateForms
	stateFormsRepeat

	stateListOpen
	stateListVerb
	stateListArgs
	stateListVerbArgs
	stateListRepeat
	stateListBinding
	stateListArgsBinding
	stateListVerbArgsBinding
	stateAs
	stateAsSymbol

	stateArrayOpen
	stateArrayFirst
	stateArrayComma
	stateArrayElement
	stateArrayRepeat
	stateArrayRepeatComma
	stateArrayRepeatElement

	stateMapOpen
	stateMapKey
	stateMapEntry
	stateMapRepeat
	stateMapRepeatKey
	stateMapRepeatEntry

	stateStringOpen
	stateStringBody
	stateStringRepeat
	stateSymbolAt

	stateList2
	stateList3
	stateList4
	stateList5
	stateArray2
	stateArray3
	stateArray4
	stateArray5
	stateMap2
	stateMap3
	stateString2
	stateString3
	stateSymbolRef
	stateVerbName
	stateAccept
)

var (
	extra = grammar.On(grammar.ShiftExtra(), Comment)

	literals = []grammar.Symbol{Keyword, Number, Boolean, Null}
	elements = []grammar.Symbol{List, Array, Map, String, SymbolRef}

	followExpr = []grammar.Symbol{LParen, RParen, LBracket, RBracket, Comma, LBrace, RBrace,
		Keyword, As, Quote, Number, Boolean, Null, At}
	followForm = append([]grammar.Symbol{End}, followExpr...)
)

func startExpr(literal grammar.StateID) map[grammar.Symbol]grammar.Action {
	return grammar.Row(
		grammar.On(grammar.Shift(stateListOpen), LParen),
		grammar.On(grammar.Shift(stateArrayOpen), LBracket),
		grammar.On(grammar.Shift(stateMapOpen), LBrace),
		grammar.On(grammar.Shift(stateStringOpen), Quote),
		grammar.On(grammar.Shift(stateSymbolAt), At),
		grammar.On(grammar.Shift(literal), literals...),
		extra,
	)
}

func continueRepeat(sym grammar.Symbol, n uint8, literal grammar.StateID) map[grammar.Symbol]grammar.Action {
	return grammar.Row(
		grammar.On(grammar.ShiftRepeat(sym, n, stateListOpen), LParen),
		grammar.On(grammar.ShiftRepeat(sym, n, stateArrayOpen), LBracket),
		grammar.On(grammar.ShiftRepeat(sym, n, stateMapOpen), LBrace),
		grammar.On(grammar.ShiftRepeat(sym, n, stateStringOpen), Quote),
		grammar.On(grammar.ShiftRepeat(sym, n, stateSymbolAt), At),
		grammar.On(grammar.ShiftRepeat(sym, n, literal), literals...),
		extra,
	)
}

func reduceOn(sym grammar.Symbol, n uint8, follow []grammar.Symbol) map[grammar.Symbol]grammar.Action {
	return grammar.Row(grammar.On(grammar.Reduce(sym, n), follow...), extra)
}

func shiftOn(state grammar.StateID, syms ...grammar.Symbol) map[grammar.Symbol]grammar.Action {
	return grammar.On(grammar.Shift(state), syms...)
}

func partial(sym grammar.Symbol, n uint8) grammar.Partial {
	return grammar.Partial{Symbol: sym, ChildCount: n}
}

var states = []grammar.ParseState{
	stateRecover: {
		LexMode: lexRecover,
		Actions: grammar.Row(
			grammar.On(grammar.Recover(), End, LParen, RParen, VerbNameToken, Keyword, As, NameToken, Quote,
				StringContent, EscapeSequence, Number, Boolean, Null, LBracket, RBracket, Comma, LBrace, RBrace, At),
			extra,
		),
	},
	stateStart: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFile, 0), End),
			shiftOn(stateListOpen, LParen),
			shiftOn(stateArrayOpen, LBracket),
			shiftOn(stateMapOpen, LBrace),
			extra,
		),
		Gotos: grammar.Gotos(
			grammar.To(stateAccept, SourceFile),
			grammar.To(stateForms, List, Array, Map, SourceFileRepeat),
		),
	},
	stateForms: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFile, 1), End),
			shiftOn(stateListOpen, LParen),
			shiftOn(stateArrayOpen, LBracket),
			shiftOn(stateMapOpen, LBrace),
			extra,
		),
		Gotos: grammar.To(stateFormsRepeat, List, Array, Map),
	},
	stateFormsRepeat: {
		LexMode: lexMain,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(SourceFileRepeat, 2), End),
			grammar.On(grammar.ShiftRepeat(SourceFileRepeat, 2, stateListOpen), LParen),
			grammar.On(grammar.ShiftRepeat(SourceFileRepeat, 2, stateArrayOpen), LBracket),
			grammar.On(grammar.ShiftRepeat(SourceFileRepeat, 2, stateMapOpen), LBrace),
			extra,
		),
	},

	stateListOpen: {
		LexMode: lexArgs,
		Actions: grammar.Row(
			startExpr(stateListArgs),
			shiftOn(stateList2, RParen),
			shiftOn(stateVerbName, VerbNameToken),
			shiftOn(stateAs, As),
		),
		Gotos: grammar.Gotos(
			grammar.To(stateListVerb, VerbName),
			grammar.To(stateListArgs, elements...),
			grammar.To(stateListArgs, ListRepeat),
			grammar.To(stateListBinding, Binding),
		),
		Partial: partial(List, 1),
	},
	stateListVerb: {
		LexMode: lexArgs,
		Actions: grammar.Row(
			startExpr(stateListVerbArgs),
			shiftOn(stateList3, RParen),
			shiftOn(stateAs, As),
		),
		Gotos: grammar.Gotos(
			grammar.To(stateListVerbArgs, elements...),
			grammar.To(stateListVerbArgs, ListRepeat),
			grammar.To(stateListArgsBinding, Binding),
		),
		Partial: partial(List, 2),
	},
	stateListArgs: {
		LexMode: lexArgs,
		Actions: grammar.Row(
			startExpr(stateListRepeat),
			shiftOn(stateList3, RParen),
			shiftOn(stateAs, As),
		),
		Gotos: grammar.Gotos(
			grammar.To(stateListRepeat, elements...),
			grammar.To(stateListArgsBinding, Binding),
		),
		Partial: partial(List, 2),
	},
	stateListVerbArgs: {
		LexMode: lexArgs,
		Actions: grammar.Row(
			startExpr(stateListRepeat),
			shiftOn(stateList4, RParen),
			shiftOn(stateAs, As),
		),
		Gotos: grammar.Gotos(
			grammar.To(stateListRepeat, elements...),
			grammar.To(stateListVerbArgsBinding, Binding),
		),
		Partial: partial(List, 3),
	},
	stateListRepeat: {
		LexMode: lexArgs,
		Actions: grammar.Row(
			continueRepeat(ListRepeat, 2, stateListRepeat),
			grammar.On(grammar.Reduce(ListRepeat, 2), RParen, As),
		),
	},
	stateListBinding: {
		LexMode: lexMain,
		Actions: grammar.Row(shiftOn(stateList3, RParen), extra),
		Partial: partial(List, 2),
	},
	stateListArgsBinding: {
		LexMode: lexMain,
		Actions: grammar.Row(shiftOn(stateList4, RParen), extra),
		Partial: partial(List, 3),
	},
	stateListVerbArgsBinding: {
		LexMode: lexMain,
		Actions: grammar.Row(shiftOn(stateList5, RParen), extra),
		Partial: partial(List, 4),
	},
	stateAs: {
		LexMode: lexMain,
		Actions: grammar.Row(shiftOn(stateSymbolAt, At), extra),
		Gotos:   grammar.To(stateAsSymbol, SymbolRef),
		Partial: partial(Binding, 1),
	},
	stateAsSymbol: {
		LexMode: lexMain,
		Actions: reduceOn(Binding, 2, []grammar.Symbol{RParen}),
	},

	stateArrayOpen: {
		LexMode: lexMain,
		Actions: grammar.Row(startExpr(stateArrayFirst), shiftOn(stateArray2, RBracket)),
		Gotos:   grammar.To(stateArrayFirst, elements...),
		Partial: partial(Array, 1),
	},
	stateArrayFirst: {
		LexMode: lexMain,
		Actions: grammar.Row(shiftOn(stateArray3, RBracket), shiftOn(stateArrayComma, Comma), extra),
		Gotos:   grammar.To(stateArrayRepeat, ArrayRepeat),
		Partial: partial(Array, 2),
	},
	stateArrayComma: {
		LexMode: lexMain,
		Actions: grammar.Row(startExpr(stateArrayElement), shiftOn(stateArray4, RBracket)),
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
		Actions: grammar.Row(shiftOn(stateArray4, RBracket), shiftOn(stateArrayRepeatComma, Comma), extra),
		Partial: partial(Array, 3),
	},
	stateArrayRepeatComma: {
		LexMode: lexMain,
		Actions: grammar.Row(startExpr(stateArrayRepeatElement), shiftOn(stateArray5, RBracket)),
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

	stateMapOpen: {
		LexMode: lexKey,
		Actions: grammar.Row(shiftOn(stateMap2, RBrace), shiftOn(stateMapKey, Keyword), extra),
		Gotos:   grammar.To(stateMapRepeat, MapRepeat),
		Partial: partial(Map, 1),
	},
	stateMapKey: {
		LexMode: lexMain,
		Actions: startExpr(stateMapEntry),
		Gotos:   grammar.To(stateMapEntry, elements...),
		Partial: partial(MapRepeat, 1),
	},
	stateMapEntry: {
		LexMode: lexKey,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(MapRepeat, 2), RBrace),
			grammar.On(grammar.ShiftRepeat(MapRepeat, 2, stateMapRepeatKey), Keyword),
			extra,
		),
	},
	stateMapRepeat: {
		LexMode: lexKey,
		Actions: grammar.Row(shiftOn(stateMap3, RBrace), shiftOn(stateMapRepeatKey, Keyword), extra),
		Partial: partial(Map, 2),
	},
	stateMapRepeatKey: {
		LexMode: lexMain,
		Actions: startExpr(stateMapRepeatEntry),
		Gotos:   grammar.To(stateMapRepeatEntry, elements...),
		Partial: partial(MapRepeat, 2),
	},
	stateMapRepeatEntry: {
		LexMode: lexKey,
		Actions: grammar.Row(
			grammar.On(grammar.Reduce(MapRepeat, 3), RBrace),
			grammar.On(grammar.ShiftRepeat(MapRepeat, 3, stateMapRepeatKey), Keyword),
			extra,
		),
	},

	stateStringOpen: {
		LexMode: lexStringBody,
		Actions: grammar.Row(shiftOn(stateString2, Quote), shiftOn(stateStringBody, StringContent, EscapeSequence)),
		Gotos:   grammar.To(stateStringBody, StringRepeat),
		Partial: partial(String, 1),
	},
	stateStringBody: {
		LexMode: lexStringBody,
		Actions: grammar.Row(shiftOn(stateString3, Quote), shiftOn(stateStringRepeat, StringContent, EscapeSequence)),
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
	stateSymbolAt: {
		LexMode: lexName,
		Actions: grammar.Row(shiftOn(stateSymbolRef, NameToken), extra),
		Partial: partial(SymbolRef, 1),
	},

	stateList2:     {LexMode: lexMain, Actions: reduceOn(List, 2, followForm)},
	stateList3:     {LexMode: lexMain, Actions: reduceOn(List, 3, followForm)},
	stateList4:     {LexMode: lexMain, Actions: reduceOn(List, 4, followForm)},
	stateList5:     {LexMode: lexMain, Actions: reduceOn(List, 5, followForm)},
	stateArray2:    {LexMode: lexMain, Actions: reduceOn(Array, 2, followForm)},
	stateArray3:    {LexMode: lexMain, Actions: reduceOn(Array, 3, followForm)},
	stateArray4:    {LexMode: lexMain, Actions: reduceOn(Array, 4, followForm)},
	stateArray5:    {LexMode: lexMain, Actions: reduceOn(Array, 5, followForm)},
	stateMap2:      {LexMode: lexMain, Actions: reduceOn(Map, 2, followForm)},
	stateMap3:      {LexMode: lexMain, Actions: reduceOn(Map, 3, followForm)},
	stateString2:   {LexMode: lexMain, Actions: reduceOn(String, 2, followExpr)},
	stateString3:   {LexMode: lexMain, Actions: reduceOn(String, 3, followExpr)},
	stateSymbolRef: {LexMode: lexMain, Actions: reduceOn(SymbolRef, 2, followExpr)},
	stateVerbName:  {LexMode: lexArgs, Actions: reduceOn(VerbName, 1, followExpr)},
	stateAccept: {
		LexMode: lexMain,
		Actions: grammar.Row(grammar.On(grammar.Accept(), End), extra),
	},
}

// Table returns the frozen v3 table.
var Table = sync.OnceValue(func() *grammar.Table {
	return grammar.MustNew(grammar.Definition{
		Name:          "v3",
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
