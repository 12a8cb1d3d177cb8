// Package grammars is the registry of table generations compiled into the
// binary.
package grammars

import (
	"fmt"
	"slices"

	"github.com/dhamidi/dslkit/grammar"
	v1 "github.com/dhamidi/dslkit/grammar/v1"
	v2 "github.com/dhamidi/dslkit/grammar/v2"
	v3 "github.com/dhamidi/dslkit/grammar/v3"
)

// Default names the revision used when none is configured.
const Default = "v3"

var registry = map[string]func() *grammar.Table{
	"v1": v1.Table,
	"v2": v2.Table,
	"v3": v3.Table,
}

// Lookup returns the table of the named revision.
func Lookup(name string) (*grammar.Table, error) {
	if name == "" {
		name = Default
	}
	table, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar revision %q (available: %v)", name, Names())
	}
	return table(), nil
}

// Names lists the registered revisions in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
