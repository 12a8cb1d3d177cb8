package parser

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/dslkit/grammar"
	v1 "github.com/dhamidi/dslkit/grammar/v1"
	v2 "github.com/dhamidi/dslkit/grammar/v2"
	v3 "github.com/dhamidi/dslkit/grammar/v3"
)

var revisions = map[string]func() *grammar.Table{
	"v1": v1.Table,
	"v2": v2.Table,
	"v3": v3.Table,
}

func mustParse(t *testing.T, table *grammar.Table, src string) *Tree {
	t.Helper()
	tree, err := Parse(table, []byte(src))
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	require.Equal(t, src, tree.SourceText(), "leaves must reproduce the source")
	return tree
}

func nodesOfType(tree *Tree, typ string) []*Node {
	var found []*Node
	tree.Walk(func(n *Node) bool {
		if n.Type() == typ {
			found = append(found, n)
		}
		return true
	})
	return found
}

func texts(nodes []*Node, src []byte) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Text(src))
	}
	return out
}

func TestPing(t *testing.T) {
	tree := mustParse(t, v3.Table(), "(ping)")
	assert.False(t, tree.HasError())
	require.Len(t, tree.Root.Children, 1)

	named := tree.Root.NamedChildren()
	require.Len(t, named, 1)
	list := named[0]
	assert.Equal(t, "list", list.Type())

	verb := list.FirstChildOfType("verb_name")
	require.NotNil(t, verb)
	assert.Equal(t, "ping", verb.Text(tree.Source))

	want := strings.Join([]string{
		"source_file [0-6]",
		"  list [0-6]",
		"    ( [0-1]",
		"    verb_name [1-5]",
		"      verb_name_token1 [1-5]",
		"    ) [5-6]",
		"",
	}, "\n")
	assert.Equal(t, want, tree.Root.String())
}

func TestGreet(t *testing.T) {
	tree := mustParse(t, v3.Table(), `(greet "World")`)
	assert.False(t, tree.HasError())

	list := tree.Root.NamedChildren()[0]
	assert.Equal(t, "greet", list.FirstChildOfType("verb_name").Text(tree.Source))

	str := list.FirstChildOfType("string")
	require.NotNil(t, str)
	var content strings.Builder
	for _, c := range str.Children {
		if c.Symbol == v3.StringContent {
			content.WriteString(c.Text(tree.Source))
		}
	}
	assert.Equal(t, "World", content.String())
}

func TestArray(t *testing.T) {
	tree := mustParse(t, v3.Table(), "[1, 2, 3]")
	assert.False(t, tree.HasError())
	assert.Empty(t, tree.Errors())

	arrays := nodesOfType(tree, "array")
	require.Len(t, arrays, 1)
	assert.Equal(t, []string{"1", "2", "3"}, texts(arrays[0].NamedChildren(), tree.Source))
	assert.Len(t, arrays[0].ChildrenOfType(","), 2)
}

func TestArrayTrailingComma(t *testing.T) {
	for _, src := range []string{"[1,]", "[1, 2,]", "[]", "[[1], [2, [3,],],]"} {
		t.Run(src, func(t *testing.T) {
			tree := mustParse(t, v3.Table(), src)
			assert.False(t, tree.HasError(), tree.Root.String())
		})
	}
}

func TestMap(t *testing.T) {
	tree := mustParse(t, v3.Table(), "{:a 1 :b 2}")
	assert.False(t, tree.HasError())

	maps := nodesOfType(tree, "map")
	require.Len(t, maps, 1)
	children := maps[0].NamedChildren()
	require.Len(t, children, 4)
	assert.Equal(t, []string{":a", "1", ":b", "2"}, texts(children, tree.Source))
	assert.Equal(t, []string{"keyword", "number", "keyword", "number"}, []string{
		children[0].Type(), children[1].Type(), children[2].Type(), children[3].Type(),
	})
}

func TestTopLevelSymbolRef(t *testing.T) {
	tree := mustParse(t, v3.Table(), "@sym")
	require.True(t, tree.HasError())

	errs := tree.Errors()
	require.Len(t, errs, 1, "adjacent unexpected tokens share one error node")
	assert.Equal(t, Span{Start: 0, End: 4}, errs[0].Span)
	assert.Equal(t, ErrorSyntax, errs[0].Error.Kind)
	assert.Equal(t, `unexpected "@"`, errs[0].Error.Message)
	assert.True(t, errs[0].Extra)
	assert.Equal(t, "source_file", tree.Root.Type())
	assert.Equal(t, Span{Start: 0, End: 4}, tree.Root.Span)
}

func TestUnterminated(t *testing.T) {
	tree := mustParse(t, v3.Table(), `(log "unterminated`)
	assert.Equal(t, "source_file", tree.Root.Type())
	require.True(t, tree.HasError())

	lists := nodesOfType(tree, "list")
	require.Len(t, lists, 1)
	assert.True(t, lists[0].Incomplete)

	strs := nodesOfType(tree, "string")
	require.Len(t, strs, 1)
	assert.True(t, strs[0].Incomplete)

	errs := tree.Errors()
	require.NotEmpty(t, errs)
	assert.True(t, errs[0].Missing)
	assert.Equal(t, 0, errs[0].Span.Len())
	assert.Equal(t, len(tree.Source), errs[0].Span.Start)

	diags := tree.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, ErrorIncomplete, diags[0].Kind)
	assert.Equal(t, "unexpected end of input in string", diags[0].Message)
	assert.Contains(t, diags[0].Expected, `"\""`)
}

func TestBinding(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		binding string
		keyword []string
	}{
		{"binding after verb", "(f :as @x)", "@x", nil},
		{"binding after arguments", "(f :k 1 :as @x)", "@x", []string{":k"}},
		{"binding after symbol", "(f @a :as @x)", "@x", nil},
		{"binding after string", `(f "s" :as @x)`, "@x", nil},
		{"longer keyword", "(f :ask @x)", "", []string{":ask"}},
		{"as in map", "{:as 1}", "", []string{":as"}},
		{"as in array", "[:as]", "", []string{":as"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, v3.Table(), tt.src)
			require.False(t, tree.HasError(), tree.Root.String())

			bindings := nodesOfType(tree, "binding")
			if tt.binding == "" {
				assert.Empty(t, bindings)
			} else {
				require.Len(t, bindings, 1)
				ref := bindings[0].FirstChildOfType("symbol_ref")
				require.NotNil(t, ref)
				assert.Equal(t, tt.binding, ref.Text(tree.Source))
			}

			var keywords []string
			for _, k := range nodesOfType(tree, "keyword") {
				keywords = append(keywords, k.Text(tree.Source))
			}
			assert.Equal(t, tt.keyword, keywords)
		})
	}
}

func TestBindingMustEndList(t *testing.T) {
	tree := mustParse(t, v3.Table(), "(f :as @x 1)")
	assert.True(t, tree.HasError())
}

func TestComments(t *testing.T) {
	src := "; header\n(a ; inner\n 1) ; trailer\n"
	tree := mustParse(t, v3.Table(), src)
	require.False(t, tree.HasError(), tree.Root.String())

	var top []string
	for c := range tree.Root.Trivia() {
		top = append(top, c.Text(tree.Source))
	}
	assert.Equal(t, []string{"; header", "; trailer"}, top)

	list := tree.Root.NamedChildren()[0]
	var inner []string
	for c := range list.Trivia() {
		inner = append(inner, c.Text(tree.Source))
	}
	assert.Equal(t, []string{"; inner"}, inner)
	assert.Equal(t, []string{"a", "1"}, texts(list.NamedChildren(), tree.Source))
}

func TestLexicalErrorsMerge(t *testing.T) {
	tree := mustParse(t, v3.Table(), "(a) ## (b)")

	errs := tree.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorLexical, errs[0].Error.Kind)
	assert.Equal(t, Span{Start: 4, End: 6}, errs[0].Span)
	assert.Len(t, errs[0].Children, 2)
	assert.Len(t, nodesOfType(tree, "list"), 2)
}

func TestInvalidByteMessage(t *testing.T) {
	tree := mustParse(t, v3.Table(), "(a) \xc3\xa9 (b)")

	errs := tree.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorLexical, errs[0].Error.Kind)
	assert.Equal(t, `invalid character "\xc3"`, errs[0].Error.Message)
}

func TestTrailingWhitespace(t *testing.T) {
	src := "(ping) ; done\n\n  "
	tree := mustParse(t, v3.Table(), src)
	assert.False(t, tree.HasError())

	var types []string
	for _, c := range tree.Root.Children {
		types = append(types, c.Type())
	}
	assert.Equal(t, []string{"list", "comment"}, types)
	assert.Equal(t, Span{Start: 0, End: len(src)}, tree.Root.Span)
	assert.Equal(t, src, tree.SourceText())
}

func TestStringSpansLines(t *testing.T) {
	tree := mustParse(t, v3.Table(), "(log \"a\nb\")")
	assert.False(t, tree.HasError())

	str := nodesOfType(tree, "string")
	require.Len(t, str, 1)
	assert.Equal(t, "\"a\nb\"", str[0].Text(tree.Source))
}

func TestDiagnosticPositions(t *testing.T) {
	tree, err := Parse(v3.Table(), []byte("(a)\n  @"), WithFile("x.dsl"))
	require.NoError(t, err)

	diags := tree.Diagnostics()
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, ErrorSyntax, d.Kind)
	assert.Equal(t, 2, d.Start.Line)
	assert.Equal(t, 3, d.Start.Column)
	assert.Equal(t, 4, d.End.Column)
	assert.Equal(t, `x.dsl:2:3: unexpected "@"`, d.String())
	assert.Equal(t, []string{"end", `"("`, `"["`, `"{"`}, d.Expected)

	assert.Equal(t, 6, tree.Offset(2, 3))
	assert.Equal(t, 0, tree.Offset(0, 5))
	assert.Equal(t, len(tree.Source), tree.Offset(9, 1))
}

func TestNodeAt(t *testing.T) {
	tree := mustParse(t, v3.Table(), `(greet "World")`)

	assert.Equal(t, "verb_name", tree.NodeAt(1).Type())
	assert.Equal(t, "string", tree.NodeAt(9).Type())
	assert.Equal(t, "source_file", tree.NodeAt(100).Type())

	var path []string
	for _, n := range tree.Path(9) {
		path = append(path, n.Type())
	}
	assert.Equal(t, []string{"source_file", "list", "string"}, path)
}

func TestEmptyAndBlank(t *testing.T) {
	for _, src := range []string{"", "  \n\t", "; only a comment"} {
		for name, table := range revisions {
			t.Run(name, func(t *testing.T) {
				tree := mustParse(t, table(), src)
				assert.False(t, tree.HasError())
				assert.Empty(t, tree.Root.NamedChildren())
				assert.Equal(t, src, tree.SourceText())
				if strings.TrimSpace(src) == "" {
					assert.Empty(t, tree.Root.Children)
					assert.Empty(t, tree.Leaves())
				}
			})
		}
	}
}

func TestRevisionLanguages(t *testing.T) {
	tests := []struct {
		revision string
		src      string
		valid    bool
	}{
		{"v1", `(crm.create :name "a ; b" :owner @o :n 1.5)`, true},
		{"v1", "(a (b (c)))", true},
		{"v1", "[1]", false},
		{"v1", "(a true)", false},
		{"v2", "(f true false null [1, 2,])", true},
		{"v2", "[(a), [:k]]", true},
		{"v2", "{:a 1}", false},
		{"v2", "(f :as @x)", true},
		{"v2", "(a :as @b :c 1)", true},
		{"v3", `(crm.create {:name "x" :tags ["a", "b"]} :as @c)`, true},
		{"v3", "(a) [1] {:b 2}", true},
		{"v3", "(a b)", false},
		{"v3", "{:a}", false},
		{"v3", "[1 2]", false},
		{"v3", "(a :as)", false},
		{"v3", "(a :as @b :c 1)", false},
	}
	for _, tt := range tests {
		t.Run(tt.revision+" "+tt.src, func(t *testing.T) {
			tree := mustParse(t, revisions[tt.revision](), tt.src)
			assert.Equal(t, !tt.valid, tree.HasError(), tree.Root.String())
		})
	}
}

var garbage = []string{
	")",
	"(((",
	"]]]",
	`"`,
	`(a "b\`,
	"{:a",
	"{1 2}",
	"[1,,2]",
	"(a :as @",
	"#$%",
	"(a\n; c",
	"@",
	":",
	"\\\\",
	"(x\x00\xff)",
	`(a [1 {:b (c "d\`,
	"}{][)(",
	strings.Repeat("(", 200),
	strings.Repeat("[1, ", 100),
}

func TestTotality(t *testing.T) {
	for name, table := range revisions {
		for _, src := range garbage {
			t.Run(name+" "+src, func(t *testing.T) {
				tree := mustParse(t, table(), src)
				assert.Equal(t, table().Root(), tree.Root.Symbol)
				assert.Equal(t, Span{Start: 0, End: len(src)}, tree.Root.Span)
				assert.True(t, tree.HasError())

				prev := 0
				for _, leaf := range tree.Leaves() {
					assert.Equal(t, prev, leaf.FullSpan().Start, "leaves must be contiguous")
					prev = leaf.Span.End
				}
				assert.LessOrEqual(t, prev, len(src))
				assert.Equal(t, src, tree.SourceText())
			})
		}
	}
}

func TestReparseIsIdentical(t *testing.T) {
	inputs := append([]string{"(ping)", `(greet "World" :as @g)`, "{:a [1, 2] :b (c)}"}, garbage...)
	for _, src := range inputs {
		first := mustParse(t, v3.Table(), src)
		second := mustParse(t, v3.Table(), first.SourceText())
		if diff := cmp.Diff(first.Root, second.Root, cmpopts.IgnoreUnexported(Node{})); diff != "" {
			t.Errorf("re-parse of %q differs (-first +second):\n%s", src, diff)
		}
	}
}

func TestStepLimit(t *testing.T) {
	tree, err := Parse(v3.Table(), []byte("(ping :a 1 :b 2)"), WithMaxSteps(3))
	assert.Nil(t, tree)
	assert.True(t, errors.Is(err, ErrStepLimit))

	_, err = Parse(v3.Table(), []byte("(ping)"), WithMaxSteps(1000))
	assert.NoError(t, err)
}

func TestConcurrentParses(t *testing.T) {
	p := New(v3.Table())
	inputs := append([]string{"(ping)", "[1, 2, 3]", "{:a 1 :b 2}", `(log "unterminated`}, garbage...)

	want := make([]*Node, len(inputs))
	for i, src := range inputs {
		tree, err := p.Parse([]byte(src))
		require.NoError(t, err)
		want[i] = tree.Root
	}

	var wg sync.WaitGroup
	got := make([]*Node, len(inputs)*4)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tree, err := p.Parse([]byte(inputs[i%len(inputs)]))
			if err == nil {
				got[i] = tree.Root
			}
		}(i)
	}
	wg.Wait()

	for i, root := range got {
		if diff := cmp.Diff(want[i%len(inputs)], root, cmpopts.IgnoreUnexported(Node{})); diff != "" {
			t.Errorf("parse %d differs:\n%s", i, diff)
		}
	}
}
