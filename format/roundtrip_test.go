package format

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dhamidi/dslkit/ast"
	v3 "github.com/dhamidi/dslkit/grammar/v3"
	"github.com/dhamidi/dslkit/parser"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "testdata", "directory containing .dsl test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases parses every .dsl file, renders it in canonical
// form and checks that the rendering parses back to the same program.
// Target a single file with: go test ./format -run TestRoundTrip_Testcases/kyc
// or use -filter=kyc.
func TestRoundTrip_Testcases(t *testing.T) {
	var files []string
	err := filepath.WalkDir(testcasesDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".dsl") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testcases directory: %v", err)
	}

	if len(files) == 0 {
		t.Skipf("no .dsl files found in %s", testcasesDir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(testcasesDir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
		testName = strings.TrimSuffix(testName, ".dsl")

		t.Run(testName, func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func runRoundTripTest(t *testing.T, filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	origTree, err := parser.Parse(v3.Table(), source, parser.WithFile(filename))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if origTree.HasError() {
		t.Fatalf("original file has parse errors:\n%s", formatDiagnostics(origTree))
	}
	origProg, err := ast.Lower(origTree)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}

	formatted := origProg.String()

	fmtTree, err := parser.Parse(v3.Table(), []byte(formatted))
	if err != nil {
		t.Fatalf("parse formatted: %v", err)
	}
	if fmtTree.HasError() {
		t.Errorf("formatted output has parse errors:\n%s", formatDiagnostics(fmtTree))
		t.Logf("\n=== Formatted output ===\n%s", formatted)
		return
	}
	fmtProg, err := ast.Lower(fmtTree)
	if err != nil {
		t.Fatalf("lower formatted: %v", err)
	}

	if diff := cmp.Diff(origProg, fmtProg, cmpopts.IgnoreTypes(parser.Span{})); diff != "" {
		t.Errorf("program changed after round trip (-original +formatted):\n%s", diff)
	}
	if again := fmtProg.String(); again != formatted {
		t.Errorf("canonical form is not stable:\nfirst:  %s\nsecond: %s", formatted, again)
	}

	if diffs := compareNodeCounts(countNamedKinds(origTree), countNamedKinds(fmtTree)); len(diffs) > 0 {
		t.Errorf("node count mismatch after round trip:\n\n%s", formatDiffs(diffs))
	}
}

// NodeCountDiff is a difference in how often a node kind occurs before and
// after formatting.
type NodeCountDiff struct {
	Kind      string
	Original  int
	Formatted int
}

func countNamedKinds(tree *parser.Tree) map[string]int {
	counts := make(map[string]int)
	tree.Walk(func(n *parser.Node) bool {
		if n.IsNamed() && n.IsVisible() {
			counts[n.Type()]++
		}
		return true
	})
	return counts
}

func formatDiagnostics(tree *parser.Tree) string {
	var lines []string
	for _, d := range tree.Diagnostics() {
		lines = append(lines, "  - "+d.String())
	}
	return strings.Join(lines, "\n")
}

func compareNodeCounts(original, formatted map[string]int) []NodeCountDiff {
	kinds := make(map[string]bool)
	for k := range original {
		kinds[k] = true
	}
	for k := range formatted {
		kinds[k] = true
	}

	var diffs []NodeCountDiff
	for kind := range kinds {
		if original[kind] != formatted[kind] {
			diffs = append(diffs, NodeCountDiff{Kind: kind, Original: original[kind], Formatted: formatted[kind]})
		}
	}
	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Original-diffs[i].Formatted > diffs[j].Original-diffs[j].Formatted
	})
	return diffs
}

func formatDiffs(diffs []NodeCountDiff) string {
	var sb strings.Builder
	sb.WriteString("Kind                 Original  Formatted  Delta\n")
	sb.WriteString("------------------------------------------------\n")
	for _, d := range diffs {
		delta := d.Formatted - d.Original
		sign := "+"
		if delta < 0 {
			sign = ""
		}
		fmt.Fprintf(&sb, "%-20s %8d  %9d  %s%d\n", d.Kind, d.Original, d.Formatted, sign, delta)
	}
	return sb.String()
}
