package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := newConfig(viper.New())

	rootCmd := &cobra.Command{
		Use:           "dslkit",
		Short:         "Parse, inspect and serve verb-call DSL files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.load(); err != nil {
				return err
			}
			commonlog.Configure(cfg.verbosity(), nil)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("grammar", "g", "", "grammar revision (default from config, else v3)")
	flags.Int("max-steps", 0, "abort parses after this many engine steps (0 means no limit)")
	flags.String("color", "auto", "colorize output: auto, always or never")
	flags.CountP("verbose", "v", "log more; repeat for debug output")
	flags.String("config", "", "config file (default .dslkit.yaml in the working or home directory)")
	cfg.bind(flags)

	rootCmd.AddCommand(newParseCmd(cfg))
	rootCmd.AddCommand(newFmtCmd(cfg))
	rootCmd.AddCommand(newTokensCmd(cfg))
	rootCmd.AddCommand(newGrammarCmd(cfg))
	rootCmd.AddCommand(newLSPCmd(cfg))

	return rootCmd
}
