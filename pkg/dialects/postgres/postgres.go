// Package postgres provides the PostgreSQL dialect definition:
// double-quoted identifiers, $n placeholders, ILIKE, the :: cast
// shorthand, ON CONFLICT upserts, and the JSON path operators.
package postgres

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Config is the PostgreSQL dialect configuration.
var Config = core.DialectConfig{
	Name:        "postgres",
	Placeholder: core.PlaceholderDollar,
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},

	SupportsIlike:     true,
	SupportsReturning: true,
	OnConflictClause:  true,
	CastOperator:      true,
	JSONOperators:     true,
}

// Postgres is the registered PostgreSQL dialect.
var Postgres = dialect.New(Config)
