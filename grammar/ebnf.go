package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/exp/ebnf"
)

// ProductionName returns the EBNF production that documents s: CamelCase
// for non-terminals and lowerCamelCase for terminals, following the
// x/exp/ebnf convention that lowercase productions are lexical.
func (t *Table) ProductionName(s Symbol) string {
	name := t.SymbolName(s)
	if t.IsTerminal(s) {
		return strcase.ToLowerCamel(name)
	}
	return strcase.ToCamel(name)
}

// ParseEBNF parses the revision's EBNF rendition.
func (t *Table) ParseEBNF() (ebnf.Grammar, error) {
	if t.ebnf == "" {
		return nil, fmt.Errorf("grammar %s has no EBNF rendition", t.name)
	}
	return ebnf.Parse(t.name+".ebnf", strings.NewReader(t.ebnf))
}

// VerifyEBNF checks the EBNF rendition with ebnf.Verify, starting from the
// root production, and checks that every visible named symbol of the table
// is documented by a production.
func VerifyEBNF(t *Table) error {
	g, err := t.ParseEBNF()
	if err != nil {
		return err
	}
	start := t.ProductionName(t.root)
	if err := ebnf.Verify(g, start); err != nil {
		return err
	}

	var errs []error
	for i, md := range t.symbols {
		if !md.Visible || !md.Named {
			continue
		}
		name := t.ProductionName(Symbol(i))
		if _, ok := g[name]; !ok {
			errs = append(errs, fmt.Errorf("symbol %s has no production %s", md.Name, name))
		}
	}
	return errors.Join(errs...)
}
