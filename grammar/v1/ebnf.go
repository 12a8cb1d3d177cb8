package v1

// EBNF documents the v1 language. Comments may appear between any two
// tokens; only the top-level occurrence is spelled out.
const EBNF = `
SourceFile = { List | comment } .
List = "(" [ VerbName ] { Expression } ")" .
Expression = List | Keyword | String | number | SymbolRef .
VerbName = verbName .
Keyword = ":" name .
SymbolRef = "@" name .
String = "\"" { stringContent | escapeSequence } "\"" .

verbName = nameStart { namePart | "." } .
name = nameStart { namePart } .
nameStart = letter | "_" .
namePart = letter | digit | "_" | "-" .
number = [ "-" ] digit { digit } [ "." digit { digit } ] .
stringContent = contentChar { contentChar } .
contentChar = "\t" | "\n" | "\r" | " " … "!" | "#" … "[" | "]" … "~" .
escapeSequence = "\\" escapable .
escapable = "\t" | "\r" | " " … "~" .
comment = ";" { commentChar } .
commentChar = "\t" | " " … "~" .
letter = "a" … "z" | "A" … "Z" .
digit = "0" … "9" .
`
