package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dslkit/format"
	"github.com/dhamidi/dslkit/parser"
)

func newParseCmd(cfg *config) *cobra.Command {
	var outputFormat string
	var allowErrors bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse DSL files and dump their syntax trees",
		Long: "Parse DSL files and dump their syntax trees. Use - to read standard input.\n\n" +
			"Formats: " + strings.Join(format.Names(), ", "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colored, err := cfg.colored()
			if err != nil {
				return err
			}
			enc, err := format.New(outputFormat, cmd.OutOrStdout(), colored)
			if err != nil {
				return err
			}

			failed := 0
			for _, filename := range args {
				tree, err := parseFile(cmd, cfg, filename)
				if err != nil {
					return err
				}
				if tree.HasError() {
					failed++
					printDiagnostics(cmd.ErrOrStderr(), tree)
				}
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("%s: encode: %w", filename, err)
				}
			}

			if failed > 0 && !allowErrors {
				return fmt.Errorf("%d of %d files have syntax errors", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&allowErrors, "allow-errors", false, "exit successfully even if a file has syntax errors")

	return cmd
}

// parseFile reads filename, or standard input for "-", and parses it with
// the configured grammar.
func parseFile(cmd *cobra.Command, cfg *config, filename string) (*parser.Tree, error) {
	src, err := readSource(cmd, filename)
	if err != nil {
		return nil, err
	}
	table, err := cfg.table()
	if err != nil {
		return nil, err
	}
	tree, err := parser.Parse(table, src, cfg.parserOptions(filename)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return tree, nil
}

func readSource(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return src, nil
}

func printDiagnostics(w io.Writer, tree *parser.Tree) {
	for _, d := range tree.Diagnostics() {
		fmt.Fprintln(w, d)
	}
}
