package v3

// EBNF documents the v3 language.
const EBNF = `
SourceFile = { Form | comment } .
Form = List | Array | Map .
List = "(" [ VerbName ] { Expression } [ Binding ] ")" .
Binding = ":as" SymbolRef .
Array = "[" [ Expression { "," Expression } [ "," ] ] "]" .
Map = "{" { keyword Expression } "}" .
Expression = List | Array | Map | String | SymbolRef | keyword | number | boolean | null .
VerbName = verbName .
SymbolRef = "@" name .
String = "\"" { stringContent | escapeSequence } "\"" .

keyword = ":" name .
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
