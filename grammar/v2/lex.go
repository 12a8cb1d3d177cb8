package v2

import "github.com/dhamidi/dslkit/grammar"

// Lexer modes come first; the remaining states are internal to the DFA.
const (
	lexRecover uint16 = iota
	lexMain
	lexStringBody
	lexName
	lexMinus
	lexDot
	lexBackslash
	lexLParen
	lexRParen
	lexLBracket
	lexRBracket
	lexComma
	lexColon
	lexQuote
	lexAt
	lexComment
	lexInteger
	lexFraction
	lexIdent
	lexT
	lexTr
	lexTru
	lexTrue
	lexF
	lexFa
	lexFal
	lexFals
	lexFalse
	lexN
	lexNu
	lexNul
	lexNull
	lexNameBody
	lexContent
	lexEscaped
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
	return grammar.Edges(grammar.Byte('-', next), grammar.Span('0', '9', next), nameStart(next))
}

// identPart also allows the dots of qualified verb names.
func identPart(next uint16) []grammar.LexTransition {
	return grammar.Edges(grammar.Byte('.', next), namePart(next))
}

// word is a prefix of a reserved word: still an identifier, continued by
// c towards the reserved word or by any other identifier byte.
func word(c byte, next uint16) grammar.LexState {
	return grammar.Accepting(VerbNameToken, grammar.Byte(c, next), identPart(lexIdent))
}

func mainEdges(self uint16) []grammar.LexTransition {
	return grammar.Edges(
		grammar.Byte('"', lexQuote),
		grammar.Byte('(', lexLParen),
		grammar.Byte(')', lexRParen),
		grammar.Byte(',', lexComma),
		grammar.Byte('-', lexMinus),
		grammar.Byte(':', lexColon),
		grammar.Byte(';', lexComment),
		grammar.Byte('@', lexAt),
		grammar.Byte('[', lexLBracket),
		grammar.Byte(']', lexRBracket),
		grammar.Skip(whitespace, self),
		grammar.Span('0', '9', lexInteger),
		grammar.Byte('f', lexF),
		grammar.Byte('n', lexN),
		grammar.Byte('t', lexT),
		nameStart(lexIdent),
	)
}

var lexStates = []grammar.LexState{
	lexRecover:    grammar.Moving(grammar.Byte('\\', lexBackslash), mainEdges(lexRecover)),
	lexMain:       grammar.Moving(mainEdges(lexMain)),
	lexStringBody: grammar.Moving(grammar.Byte('"', lexQuote), grammar.Byte('\\', lexBackslash), grammar.Except(`"\`, lexContent)),
	lexName: grammar.Moving(
		grammar.Byte(';', lexComment),
		grammar.Skip(whitespace, lexName),
		nameStart(lexNameBody),
	),
	lexMinus:     grammar.Moving(grammar.Span('0', '9', lexInteger)),
	lexDot:       grammar.Moving(grammar.Span('0', '9', lexFraction)),
	lexBackslash: grammar.Moving(grammar.Except("\n", lexEscaped)),
	lexLParen:    grammar.Accepting(LParen),
	lexRParen:    grammar.Accepting(RParen),
	lexLBracket:  grammar.Accepting(LBracket),
	lexRBracket:  grammar.Accepting(RBracket),
	lexComma:     grammar.Accepting(Comma),
	lexColon:     grammar.Accepting(Colon),
	lexQuote:     grammar.Accepting(Quote),
	lexAt:        grammar.Accepting(At),
	lexComment:   grammar.Accepting(Comment, grammar.Except("\n", lexComment)),
	lexInteger:   grammar.Accepting(Number, grammar.Byte('.', lexDot), grammar.Span('0', '9', lexInteger)),
	lexFraction:  grammar.Accepting(Number, grammar.Span('0', '9', lexFraction)),
	lexIdent:     grammar.Accepting(VerbNameToken, identPart(lexIdent)),
	lexT:         word('r', lexTr),
	lexTr:        word('u', lexTru),
	lexTru:       word('e', lexTrue),
	lexTrue:      grammar.Accepting(Boolean, identPart(lexIdent)),
	lexF:         word('a', lexFa),
	lexFa:        word('l', lexFal),
	lexFal:       word('s', lexFals),
	lexFals:      word('e', lexFalse),
	lexFalse:     grammar.Accepting(Boolean, identPart(lexIdent)),
	lexN:         word('u', lexNu),
	lexNu:        word('l', lexNul),
	lexNul:       word('l', lexNull),
	lexNull:      grammar.Accepting(Null, identPart(lexIdent)),
	lexNameBody:  grammar.Accepting(NameToken, namePart(lexNameBody)),
	lexContent:   grammar.Accepting(StringContent, grammar.Except(`"\`, lexContent)),
	lexEscaped:   grammar.Accepting(EscapeSequence),
}
