// Package mariadb provides the MariaDB dialect definition. It shares
// the MySQL lexing rules but supports RETURNING on DML and lacks the
// -> and ->> JSON operators.
package mariadb

import (
	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
)

func init() {
	dialect.Register(MariaDB)
}

// Config is the MariaDB dialect configuration.
var Config = core.DialectConfig{
	Name:        "mariadb",
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
	SupportsReturning: true,
	OnDuplicateClause: true,
}

// MariaDB is the registered MariaDB dialect.
var MariaDB = dialect.New(Config)
