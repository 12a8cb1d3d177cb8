package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dslkit/format"
)

func newFmtCmd(cfg *config) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Print DSL files in canonical form",
		Long: "Print DSL files in canonical form: one verb call per line, single spaces between\n" +
			"arguments and comma-separated arrays. Comments inside verb calls are dropped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, filename := range args {
				tree, err := parseFile(cmd, cfg, filename)
				if err != nil {
					return err
				}
				if tree.HasError() {
					printDiagnostics(cmd.ErrOrStderr(), tree)
					return fmt.Errorf("%s: not formatted, file has syntax errors", filename)
				}

				var buf bytes.Buffer
				if err := format.NewDSLEncoder(&buf).Encode(tree); err != nil {
					return fmt.Errorf("%s: %w", filename, err)
				}

				if write && filename != "-" {
					if bytes.Equal(buf.Bytes(), tree.Source) {
						continue
					}
					if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
						return fmt.Errorf("write file: %w", err)
					}
					fmt.Fprintln(cmd.ErrOrStderr(), filename)
					continue
				}
				if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file instead of standard output")

	return cmd
}
