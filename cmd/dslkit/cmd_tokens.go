package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dhamidi/dslkit/grammar"
	"github.com/dhamidi/dslkit/parser"
	"github.com/dhamidi/dslkit/scanner"
)

func newTokensCmd(cfg *config) *cobra.Command {
	var mode int
	var raw bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a DSL file",
		Long: "List the tokens of a DSL file as the parser consumed them. With --raw the\n" +
			"file is scanned in a single lexer mode instead, which shows how that mode\n" +
			"alone tokenizes the input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Kind", "Start", "End", "Flags", "Text"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(false)

			if raw {
				src, err := readSource(cmd, filename)
				if err != nil {
					return err
				}
				lang, err := cfg.table()
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("mode") {
					mode = int(lang.LexMode(lang.StartState()))
				}
				if mode < 0 || mode >= lang.LexStateCount() {
					return fmt.Errorf("lexer mode %d out of range [0, %d)", mode, lang.LexStateCount())
				}
				for _, row := range scanRows(lang, src, uint16(mode)) {
					table.Append(row)
				}
				table.Render()
				return nil
			}

			tree, err := parseFile(cmd, cfg, filename)
			if err != nil {
				return err
			}
			for _, leaf := range tree.Leaves() {
				start, end := tree.Position(leaf.Span.Start), tree.Position(leaf.Span.End)
				table.Append([]string{
					leaf.Type(),
					start.String(),
					end.String(),
					leafFlags(leaf),
					strconv.Quote(leaf.Text(tree.Source)),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "scan in a single lexer mode without parsing")
	cmd.Flags().IntVar(&mode, "mode", 0, "lexer mode for --raw (default: the mode of the start state)")

	return cmd
}

// scanRows tokenizes src in one mode. A dead end yields a one-byte error
// row and scanning resumes after it.
func scanRows(lang *grammar.Table, src []byte, mode uint16) [][]string {
	sc := scanner.New(lang, src)
	var rows [][]string
	for pos := 0; ; {
		tok, ok := sc.Scan(pos, mode)
		if !ok {
			end := min(tok.Start+1, len(src))
			if end <= pos {
				return rows
			}
			rows = append(rows, []string{"ERROR", strconv.Itoa(tok.Start), strconv.Itoa(end), "error", strconv.Quote(string(src[tok.Start:end]))})
			pos = end
			continue
		}
		rows = append(rows, []string{
			lang.SymbolName(tok.Symbol),
			strconv.Itoa(tok.Start),
			strconv.Itoa(tok.End),
			"-",
			strconv.Quote(string(src[tok.Start:tok.End])),
		})
		if tok.Symbol == grammar.SymbolEnd || tok.Len() == 0 {
			return rows
		}
		pos = tok.End
	}
}

func leafFlags(n *parser.Node) string {
	switch {
	case n.Missing:
		return "missing"
	case n.IsError():
		return "error"
	case n.Extra:
		return "extra"
	}
	return "-"
}
