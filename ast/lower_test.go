package ast

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/dslkit/grammar"
	v1 "github.com/dhamidi/dslkit/grammar/v1"
	v2 "github.com/dhamidi/dslkit/grammar/v2"
	v3 "github.com/dhamidi/dslkit/grammar/v3"
	"github.com/dhamidi/dslkit/parser"
)

func lower(t *testing.T, table *grammar.Table, src string) (*Program, error) {
	t.Helper()
	tree, err := parser.Parse(table, []byte(src))
	require.NoError(t, err)
	return Lower(tree)
}

const entitySource = `; setup
(crm.create-entity
  :name "Acme \"Ltd\""
  :id "550e8400-e29b-41d4-a716-446655440000"
  :count 42
  :ratio 1.50
  :active true
  :parent null
  :tags ["a", "b"]
  :meta {:k 1}
  :owner (crm.lookup :q @x)
  :as @acme)`

func TestLowerCall(t *testing.T) {
	prog, err := lower(t, v3.Table(), entitySource)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	comment, ok := prog.Statements[0].(*Comment)
	require.True(t, ok)
	assert.Equal(t, "setup", comment.Text)

	calls := prog.Calls()
	require.Len(t, calls, 1)
	call := calls[0]
	assert.Equal(t, "crm", call.Domain)
	assert.Equal(t, "create-entity", call.Verb)
	assert.Equal(t, "crm.create-entity", call.FullName())
	assert.Equal(t, "acme", call.Binding)
	require.Len(t, call.Arguments, 9)

	arg := func(key string) Value {
		t.Helper()
		v, ok := call.Arg(key)
		require.True(t, ok, "missing argument %s", key)
		return v
	}

	assert.Equal(t, `Acme "Ltd"`, arg("name").(*String).Value)
	assert.Equal(t, uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"), arg("id").(*UUID).Value)
	assert.Equal(t, int64(42), arg("count").(*Integer).Value)
	assert.True(t, decimal.RequireFromString("1.5").Equal(arg("ratio").(*Decimal).Value))
	assert.True(t, arg("active").(*Boolean).Value)
	assert.IsType(t, &Null{}, arg("parent"))

	tags := arg("tags").(*Array)
	require.Len(t, tags.Items, 2)
	assert.Equal(t, "b", tags.Items[1].(*String).Value)

	k, ok := arg("meta").(*Map).Get("k")
	require.True(t, ok)
	assert.Equal(t, int64(1), k.(*Integer).Value)

	owner := arg("owner").(*VerbCall)
	assert.Equal(t, "lookup", owner.Verb)
	q, ok := owner.Arg("q")
	require.True(t, ok)
	assert.Equal(t, "x", q.(*SymbolRef).Name)

	_, ok = call.Arg("as")
	assert.False(t, ok)

	name := call.Arguments[0]
	assert.Equal(t, `:name "Acme \"Ltd\""`, entitySource[name.Span.Start:name.Span.End])
}

func TestRender(t *testing.T) {
	prog, err := lower(t, v3.Table(), entitySource)
	require.NoError(t, err)

	want := "; setup\n" +
		`(crm.create-entity :name "Acme \"Ltd\"" :id "550e8400-e29b-41d4-a716-446655440000" :count 42 ` +
		`:ratio 1.50 :active true :parent null :tags ["a", "b"] :meta {:k 1} :owner (crm.lookup :q @x) :as @acme)`
	assert.Equal(t, want, prog.String())

	again, err := lower(t, v3.Table(), prog.String())
	require.NoError(t, err)
	assert.Equal(t, prog.String(), again.String())
}

func TestBindingAcrossRevisions(t *testing.T) {
	src := `(crm.create :name "x\ty" :n -3 :as @c)`
	want := `(crm.create :name "x\ty" :n -3 :as @c)`

	for name, table := range map[string]func() *grammar.Table{"v1": v1.Table, "v2": v2.Table, "v3": v3.Table} {
		t.Run(name, func(t *testing.T) {
			prog, err := lower(t, table(), src)
			require.NoError(t, err)
			calls := prog.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, "c", calls[0].Binding)
			assert.Len(t, calls[0].Arguments, 2)
			assert.Equal(t, "x\ty", calls[0].Arguments[0].Value.(*String).Value)
			assert.Equal(t, want, prog.String())
		})
	}
}

func TestVerbWithoutDomain(t *testing.T) {
	prog, err := lower(t, v3.Table(), "(ping)")
	require.NoError(t, err)
	call := prog.Calls()[0]
	assert.Equal(t, "", call.Domain)
	assert.Equal(t, "ping", call.Verb)
	assert.Equal(t, "(ping)", call.String())
}

func TestLowerErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"positional argument", "(a.b 1)", "1:6: number argument has no keyword"},
		{"dangling keyword", "(a.b :k)", "1:6: keyword :k has no value"},
		{"keyword as value", "(a.b :k :j 1)", "1:6: keyword :k has no value"},
		{"top-level array", "[1]", "1:1: top-level array is not a verb call"},
		{"no verb", "(1)", "1:1: list has no verb name"},
		{"unknown escape", `(a.b :k "\q")`, `1:9: unknown escape sequence \q`},
		{"integer overflow", "(a.b :n 99999999999999999999)", "1:9: integer 99999999999999999999 out of range"},
		{"keyword in array", "(a.b :k [:x])", "1:10: keyword :x is not a value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := lower(t, v3.Table(), tt.src)
			require.Error(t, err)
			assert.Nil(t, prog)
			assert.Contains(t, err.Error(), tt.want)

			var lerr *Error
			assert.True(t, errors.As(err, &lerr))
			assert.False(t, errors.Is(err, ErrSyntax))
		})
	}
}

func TestLowerRejectsSyntaxErrors(t *testing.T) {
	for _, src := range []string{"@sym", `(log "unterminated`, "(a.b :k 1"} {
		t.Run(src, func(t *testing.T) {
			prog, err := lower(t, v3.Table(), src)
			assert.Nil(t, prog)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var lerr *Error
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, 1, lerr.Position.Line)
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{`plain`, "plain", false},
		{`a\nb`, "a\nb", false},
		{`\r\t\\\"`, "\r\t\\\"", false},
		{`\x`, "", true},
		{`tail\`, "", true},
	}
	for _, tt := range tests {
		got, err := unescape(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("unescape(%q) error = %v, want error %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
