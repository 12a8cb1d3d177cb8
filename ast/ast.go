// Package ast lowers syntax trees into verb calls and typed values.
//
// A program is a sequence of verb calls such as
//
//	(crm.create-entity :name "Acme" :tags ["a", "b"] :as @acme)
//
// and top-level comments. Values are decoded from their source text:
// strings lose their escapes, numbers become int64 or decimals and strings
// that spell a UUID become UUIDs.
package ast

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dhamidi/dslkit/parser"
)

type Program struct {
	Statements []Statement
}

// Calls returns the top-level verb calls.
func (p *Program) Calls() []*VerbCall {
	var calls []*VerbCall
	for _, s := range p.Statements {
		if c, ok := s.(*VerbCall); ok {
			calls = append(calls, c)
		}
	}
	return calls
}

// Statement is a *VerbCall or a *Comment.
type Statement interface {
	Pos() parser.Span
	String() string
	statement()
}

type Comment struct {
	Text string
	Span parser.Span
}

// VerbCall is (domain.verb :key value ... :as @binding). Domain is empty
// when the verb name has no dot.
type VerbCall struct {
	Domain    string
	Verb      string
	Arguments []Argument
	Binding   string
	Span      parser.Span
}

// FullName is the verb name as written.
func (c *VerbCall) FullName() string {
	if c.Domain == "" {
		return c.Verb
	}
	return c.Domain + "." + c.Verb
}

// Arg returns the value of the first argument called key.
func (c *VerbCall) Arg(key string) (Value, bool) {
	for _, a := range c.Arguments {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

type Argument struct {
	Key   string
	Value Value
	Span  parser.Span
}

// Value is one of *String, *UUID, *Integer, *Decimal, *Boolean, *Null,
// *SymbolRef, *Array, *Map or a nested *VerbCall.
type Value interface {
	Pos() parser.Span
	String() string
	value()
}

type String struct {
	Value string
	Span  parser.Span
}

type UUID struct {
	Value uuid.UUID
	Span  parser.Span
}

type Integer struct {
	Value int64
	Span  parser.Span
}

type Decimal struct {
	Value decimal.Decimal
	Span  parser.Span
}

type Boolean struct {
	Value bool
	Span  parser.Span
}

type Null struct {
	Span parser.Span
}

// SymbolRef refers to the result bound by an earlier ":as @Name".
type SymbolRef struct {
	Name string
	Span parser.Span
}

type Array struct {
	Items []Value
	Span  parser.Span
}

type Entry struct {
	Key   string
	Value Value
}

// Map keeps its entries in source order.
type Map struct {
	Entries []Entry
	Span    parser.Span
}

// Get returns the value of the first entry called key.
func (m *Map) Get(key string) (Value, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (c *Comment) Pos() parser.Span   { return c.Span }
func (c *VerbCall) Pos() parser.Span  { return c.Span }
func (v *String) Pos() parser.Span    { return v.Span }
func (v *UUID) Pos() parser.Span      { return v.Span }
func (v *Integer) Pos() parser.Span   { return v.Span }
func (v *Decimal) Pos() parser.Span   { return v.Span }
func (v *Boolean) Pos() parser.Span   { return v.Span }
func (v *Null) Pos() parser.Span      { return v.Span }
func (v *SymbolRef) Pos() parser.Span { return v.Span }
func (v *Array) Pos() parser.Span     { return v.Span }
func (v *Map) Pos() parser.Span       { return v.Span }

func (*Comment) statement()  {}
func (*VerbCall) statement() {}

func (*VerbCall) value()  {}
func (*String) value()    {}
func (*UUID) value()      {}
func (*Integer) value()   {}
func (*Decimal) value()   {}
func (*Boolean) value()   {}
func (*Null) value()      {}
func (*SymbolRef) value() {}
func (*Array) value()     {}
func (*Map) value()       {}
