// Package mysql provides the MySQL dialect definition: backtick
// identifier quoting, backslash string escapes, # comments, and the
// ON DUPLICATE KEY UPDATE upsert form.
package mysql

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// Config is the MySQL dialect configuration.
var Config = core.DialectConfig{
	Name:        "mysql",
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:    "`",
		QuoteEnd: "`",
		Escape:   "``",
	},

	DoubleQuoteIsString: true,
	BackslashEscapes:    true,
	HashComments:        true,

	UniqueKeySpelling: true,
	UnsignedTypes:     true,
	OnDuplicateClause: true,
	JSONOperators:     true,
}

// MySQL is the registered MySQL dialect.
var MySQL = dialect.New(Config)
