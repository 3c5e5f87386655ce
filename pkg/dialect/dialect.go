// Package dialect provides immutable SQL dialect values and the registry
// that resolves dialect names.
//
// A Dialect wraps a core.DialectConfig and is always passed explicitly
// into parse and render calls, never read from package-level state.
// Concrete dialect definitions are registered from pkg/dialects/*
// packages in their init functions.
package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
)

// Dialect is an immutable SQL dialect value. The zero value is not
// usable; construct one with New or resolve a registered dialect with
// Get.
type Dialect struct {
	cfg core.DialectConfig
}

// New builds a Dialect from a config. The config is copied; later
// mutation of the argument does not affect the returned value.
func New(cfg core.DialectConfig) *Dialect {
	return &Dialect{cfg: cfg}
}

// Name returns the dialect identifier, e.g. "mysql".
func (d *Dialect) Name() string { return d.cfg.Name }

// Config returns a copy of the underlying configuration.
func (d *Dialect) Config() core.DialectConfig { return d.cfg }

// QuoteIdentifier wraps name in the dialect's identifier quotes,
// doubling any embedded quote character.
func (d *Dialect) QuoteIdentifier(name string) string {
	q := d.cfg.Identifiers.Quote
	end := d.cfg.Identifiers.QuoteEnd
	if q == "" {
		q, end = `"`, `"`
	}
	escape := d.cfg.Identifiers.Escape
	if escape == "" {
		escape = end + end
	}
	return q + strings.ReplaceAll(name, end, escape) + end
}

// Placeholder returns the parameter placeholder for the 1-based
// position n.
func (d *Dialect) Placeholder(n int) string {
	if d.cfg.Placeholder == core.PlaceholderDollar {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d *Dialect) String() string { return d.cfg.Name }
