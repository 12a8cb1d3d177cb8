package v2

// EBNF documents the v2 language.
const EBNF = `
SourceFile = { Form | comment } .
Form = List | Array .
List = "(" [ VerbName ] { Expression } ")" .
Array = "[" [ Expression { "," Expression } [ "," ] ] "]" .
Expression = List | Array | Keyword | String | SymbolRef | number | boolean | null .
VerbName = verbName .
Keyword = ":" name .
SymbolRef = "@" name .
String = "\"" { stringContent | escapeSequence } "\"" .

boolean = "true" | "false" .
null = "null" .
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
