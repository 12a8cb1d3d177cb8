package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dhamidi/dslkit/grammar"
	"github.com/dhamidi/dslkit/grammars"
	"github.com/dhamidi/dslkit/parser"
)

// config resolves settings from flags, DSLKIT_* environment variables and
// an optional .dslkit.{yaml,toml,json} file, in that order of precedence.
type config struct {
	v *viper.Viper
}

func newConfig(v *viper.Viper) *config {
	v.SetDefault("grammar", grammars.Default)
	v.SetDefault("max-steps", 0)
	v.SetDefault("color", "auto")
	return &config{v: v}
}

func (c *config) bind(flags *pflag.FlagSet) {
	for _, name := range []string{"grammar", "max-steps", "color", "verbose", "config"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}
}

func (c *config) load() error {
	c.v.SetEnvPrefix("DSLKIT")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if file := c.v.GetString("config"); file != "" {
		c.v.SetConfigFile(file)
	} else {
		c.v.SetConfigName(".dslkit")
		c.v.AddConfigPath(".")
		c.v.AddConfigPath("$HOME")
	}
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (c *config) table() (*grammar.Table, error) {
	return grammars.Lookup(c.v.GetString("grammar"))
}

func (c *config) parserOptions(file string) []parser.Option {
	opts := []parser.Option{parser.WithFile(file)}
	if n := c.v.GetInt("max-steps"); n > 0 {
		opts = append(opts, parser.WithMaxSteps(n))
	}
	return opts
}

func (c *config) colored() (bool, error) {
	switch mode := c.v.GetString("color"); mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
}

func (c *config) verbosity() int {
	return c.v.GetInt("verbose")
}
