package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/dhamidi/dslkit/grammar/v3"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	file := writeFile(t, "greet.dsl", `(greet "World")`)

	r := run(t, "", "parse", "-f", "sexp", file)
	require.NoError(t, r.err)
	assert.Equal(t, "(source_file (list (verb_name) (string)))\n", r.stdout)
	assert.Empty(t, r.stderr)
}

func TestParseStdin(t *testing.T) {
	r := run(t, "[1]", "parse", "-f", "sexp", "-")
	require.NoError(t, r.err)
	assert.Equal(t, "(source_file (array (number)))\n", r.stdout)
}

func TestParseErrors(t *testing.T) {
	file := writeFile(t, "broken.dsl", "(a)\n@")

	r := run(t, "", "parse", "-f", "sexp", file)
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "1 of 1 files have syntax errors")
	assert.Contains(t, r.stderr, file+`:2:1: unexpected "@"`)
	assert.Equal(t, "(source_file (list (verb_name)) (ERROR))\n", r.stdout)

	r = run(t, "", "parse", "--allow-errors", "-f", "sexp", file)
	assert.NoError(t, r.err)
}

func TestParseGrammarFlag(t *testing.T) {
	r := run(t, "(f :as @x)", "parse", "-g", "v2", "-f", "sexp", "-")
	require.NoError(t, r.err)
	assert.Equal(t, "(source_file (list (verb_name) (keyword) (symbol_ref)))\n", r.stdout)

	r = run(t, "(f)", "parse", "-g", "v9", "-")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), `unknown grammar revision "v9"`)
}

func TestParseGrammarFromEnv(t *testing.T) {
	t.Setenv("DSLKIT_GRAMMAR", "v1")
	r := run(t, "{:a 1}", "parse", "-f", "sexp", "-")
	assert.Error(t, r.err, "v1 has no maps")
}

func TestParseUnknownFormat(t *testing.T) {
	r := run(t, "(f)", "parse", "-f", "yaml", "-")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), `unknown format "yaml"`)
}

func TestFmt(t *testing.T) {
	file := writeFile(t, "messy.dsl", "; setup\n(a.b   :x   [1,2,]\n  :y {:k \"v\"})\n\n\n(c.d)")

	r := run(t, "", "fmt", file)
	require.NoError(t, r.err)
	expected := "; setup\n(a.b :x [1, 2] :y {:k \"v\"})\n(c.d)\n"
	assert.Equal(t, expected, r.stdout)

	r = run(t, "", "fmt", "-w", file)
	require.NoError(t, r.err)
	written, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, expected, string(written))
}

func TestFmtRejectsSyntaxErrors(t *testing.T) {
	r := run(t, "(a", "fmt", "-")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "file has syntax errors")
}

func TestTokens(t *testing.T) {
	file := writeFile(t, "greet.dsl", `(greet "World")`)

	r := run(t, "", "tokens", file)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "verb_name_token1")
	assert.Contains(t, r.stdout, `"greet"`)
	assert.Contains(t, r.stdout, "string_token1")
}

func TestTokensRaw(t *testing.T) {
	r := run(t, ":as", "tokens", "--raw", "-")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "keyword")

	r = run(t, ":as", "tokens", "--raw", "--mode", strconv.Itoa(int(v3.ModeArgs)), "-")
	require.NoError(t, r.err)
	assert.NotContains(t, r.stdout, "keyword")

	r = run(t, "#", "tokens", "--raw", "-")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "ERROR")

	r = run(t, "x", "tokens", "--raw", "--mode", "999", "-")
	assert.Error(t, r.err)
}

func TestGrammarList(t *testing.T) {
	r := run(t, "", "grammar", "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "v1")
	assert.Contains(t, r.stdout, "v2")
	assert.Contains(t, r.stdout, "v3 (default)")
}

func TestGrammarCheck(t *testing.T) {
	r := run(t, "", "grammar", "check")
	require.NoError(t, r.err, r.stderr)
	assert.Equal(t, "v1: ok\nv2: ok\nv3: ok\n", r.stdout)
}

func TestGrammarEBNF(t *testing.T) {
	r := run(t, "", "grammar", "ebnf", "v3")
	require.NoError(t, r.err)
	assert.Equal(t, v3.Table().EBNF(), r.stdout)

	r = run(t, "", "grammar", "ebnf")
	require.NoError(t, r.err)
	assert.Equal(t, v3.Table().EBNF(), r.stdout)
}
