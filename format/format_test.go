package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/dhamidi/dslkit/grammar/v3"
	"github.com/dhamidi/dslkit/parser"
)

func parse(t *testing.T, src string) *parser.Tree {
	t.Helper()
	tree, err := parser.Parse(v3.Table(), []byte(src))
	require.NoError(t, err)
	return tree
}

func TestSExpr(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(ping)", "(source_file (list (verb_name)))"},
		{`(greet "World")`, "(source_file (list (verb_name) (string)))"},
		{"[1, 2, 3]", "(source_file (array (number) (number) (number)))"},
		{"{:a 1 :b 2}", "(source_file (map (keyword) (number) (keyword) (number)))"},
		{"(f :as @x)", "(source_file (list (verb_name) (binding (symbol_ref))))"},
		{"; hi\n(f)", "(source_file (comment) (list (verb_name)))"},
		{"@sym", "(source_file (ERROR))"},
		{`(log "unterminated`, "(source_file (list (verb_name) (string (MISSING))))"},
		{"", "(source_file)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SExpr(parse(t, tt.input)))
		})
	}
}

func TestJSONEncoder(t *testing.T) {
	tree := parse(t, "(ping)\n@")

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(tree))

	var root struct {
		Kind     string `json:"kind"`
		Named    bool   `json:"named"`
		Children []struct {
			Kind  string `json:"kind"`
			Extra bool   `json:"extra"`
			Span  struct {
				Start struct{ Offset, Line, Column int }
			} `json:"span"`
			Error *struct {
				Kind     string   `json:"kind"`
				Message  string   `json:"message"`
				Expected []string `json:"expected"`
			} `json:"error"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))

	assert.Equal(t, "source_file", root.Kind)
	assert.True(t, root.Named)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "list", root.Children[0].Kind)

	errNode := root.Children[1]
	assert.Equal(t, "ERROR", errNode.Kind)
	assert.True(t, errNode.Extra)
	assert.Equal(t, 2, errNode.Span.Start.Line)
	assert.Equal(t, 1, errNode.Span.Start.Column)
	require.NotNil(t, errNode.Error)
	assert.Equal(t, "syntax", errNode.Error.Kind)
	assert.Equal(t, `unexpected "@"`, errNode.Error.Message)
	assert.Contains(t, errNode.Error.Expected, `"("`)
}

func TestTreeEncoder(t *testing.T) {
	tree := parse(t, "(ping ; c\n)")

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf, false).Encode(tree))

	expected := strings.Join([]string{
		`source_file 1:1-2:2`,
		`  list 1:1-2:2`,
		`    "(" 1:1-1:2 "("`,
		`    verb_name 1:2-1:6`,
		`      "verb_name_token1" 1:2-1:6 "ping"`,
		`    comment 1:7-1:10 "; c"`,
		`    ")" 2:1-2:2 ")"`,
		``,
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestTreeEncoderErrors(t *testing.T) {
	tree := parse(t, `(log "x`)

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf, false).Encode(tree))
	out := buf.String()
	assert.Contains(t, out, "list 1:1-1:8 incomplete")
	assert.Contains(t, out, "MISSING 1:8-1:8 unexpected end of input in string")
}

func TestLineEncoder(t *testing.T) {
	tree := parse(t, "[1, #]")

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(tree))

	expected := strings.Join([]string{
		"[\t1:1\t1:2\t-\t\"[\"",
		"number\t1:2\t1:3\t-\t\"1\"",
		",\t1:3\t1:4\t-\t\",\"",
		"ERROR\t1:5\t1:6\textra,error\t\"#\"",
		"]\t1:6\t1:7\t-\t\"]\"",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestDSLEncoder(t *testing.T) {
	tree := parse(t, "(a.b\n  :x 1.0\n  :y [true,null])")

	var buf bytes.Buffer
	require.NoError(t, NewDSLEncoder(&buf).Encode(tree))
	assert.Equal(t, "(a.b :x 1.0 :y [true, null])\n", buf.String())

	buf.Reset()
	assert.Error(t, NewDSLEncoder(&buf).Encode(parse(t, "(a.b")))
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		enc, err := New(name, &bytes.Buffer{}, false)
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &bytes.Buffer{}, false)
	assert.Error(t, err)
	assert.Equal(t, []string{"dsl", "json", "lines", "sexp", "tree"}, Names())
}
