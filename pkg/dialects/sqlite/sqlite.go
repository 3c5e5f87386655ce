// Package sqlite provides the SQLite dialect definition: double-quoted
// identifiers, ON CONFLICT upserts, RETURNING, and UNIQUE spelled
// without the KEY suffix.
package sqlite

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// Config is the SQLite dialect configuration.
var Config = core.DialectConfig{
	Name:        "sqlite",
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:    `"`,
		QuoteEnd: `"`,
		Escape:   `""`,
	},

	SupportsReturning: true,
	OnConflictClause:  true,
	JSONOperators:     true,
}

// SQLite is the registered SQLite dialect.
var SQLite = dialect.New(Config)
