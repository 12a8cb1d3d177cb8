package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/dslkit/lsp"
	"github.com/dhamidi/dslkit/parser"
)

func newLSPCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on standard input and output",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := cfg.table()
			if err != nil {
				return err
			}
			var opts []parser.Option
			if n := cfg.v.GetInt("max-steps"); n > 0 {
				opts = append(opts, parser.WithMaxSteps(n))
			}
			server, err := lsp.NewServer(table, version, opts...)
			if err != nil {
				return err
			}
			return server.RunStdio()
		},
	}
}
