package ast

import (
	"strconv"
	"strings"
)

// String renders the program as canonical source, one statement per line.
func (p *Program) String() string {
	lines := make([]string, 0, len(p.Statements))
	for _, s := range p.Statements {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}

func (c *Comment) String() string {
	return "; " + c.Text
}

func (c *VerbCall) String() string {
	parts := []string{"(" + c.FullName()}
	for _, a := range c.Arguments {
		parts = append(parts, ":"+a.Key, a.Value.String())
	}
	if c.Binding != "" {
		parts = append(parts, ":as", "@"+c.Binding)
	}
	return strings.Join(parts, " ") + ")"
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func (v *String) String() string {
	return `"` + stringEscaper.Replace(v.Value) + `"`
}

func (v *UUID) String() string {
	return `"` + v.Value.String() + `"`
}

func (v *Integer) String() string {
	return strconv.FormatInt(v.Value, 10)
}

// String keeps at least one fractional digit so that the text reads back
// as a decimal.
func (v *Decimal) String() string {
	places := -v.Value.Exponent()
	if places < 1 {
		places = 1
	}
	return v.Value.StringFixed(places)
}

func (v *Boolean) String() string {
	return strconv.FormatBool(v.Value)
}

func (v *Null) String() string {
	return "null"
}

func (v *SymbolRef) String() string {
	return "@" + v.Name
}

func (v *Array) String() string {
	items := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, item.String())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (v *Map) String() string {
	parts := make([]string, 0, 2*len(v.Entries))
	for _, e := range v.Entries {
		parts = append(parts, ":"+e.Key, e.Value.String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}
