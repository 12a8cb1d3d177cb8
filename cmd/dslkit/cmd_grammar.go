package main

import (
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dhamidi/dslkit/grammar"
	"github.com/dhamidi/dslkit/grammars"
)

func newGrammarCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the compiled grammar revisions",
	}

	cmd.AddCommand(newGrammarListCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarEBNFCmd(cfg))

	return cmd
}

func newGrammarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List grammar revisions with their table sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Revision", "Symbols", "Tokens", "States", "Lex states"})
			table.SetBorder(false)
			table.SetAutoFormatHeaders(false)

			for _, name := range grammars.Names() {
				lang, err := grammars.Lookup(name)
				if err != nil {
					return err
				}
				rev := name
				if name == grammars.Default {
					rev += " (default)"
				}
				table.Append([]string{
					rev,
					strconv.Itoa(lang.SymbolCount()),
					strconv.Itoa(lang.TokenCount()),
					strconv.Itoa(lang.StateCount()),
					strconv.Itoa(lang.LexStateCount()),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [revision]...",
		Short: "Verify the EBNF rendition of grammar revisions",
		Long: "Parse each revision's EBNF rendition, verify it from the root production and\n" +
			"check that every named symbol has a production. Checks all revisions by default.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = grammars.Names()
			}

			failed := 0
			for _, name := range names {
				lang, err := grammars.Lookup(name)
				if err != nil {
					return err
				}
				if err := grammar.VerifyEBNF(lang); err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: FAIL\n", name)
					printErrors(cmd.ErrOrStderr(), err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%d grammar revisions failed verification", failed)
			}
			return nil
		},
	}
}

func newGrammarEBNFCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "ebnf [revision]",
		Short: "Print the EBNF rendition of a grammar revision",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				lang *grammar.Table
				err  error
			)
			if len(args) == 1 {
				lang, err = grammars.Lookup(args[0])
			} else {
				lang, err = cfg.table()
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), lang.EBNF())
			return err
		},
	}
}

// printErrors prints one line per error of joined errors and error lists.
func printErrors(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printErrors(w, e)
		}
		return
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
