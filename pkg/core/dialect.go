package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data — no handler functions. The immutable runtime value
// lives in pkg/dialect.Dialect, which embeds this config; it is always
// passed explicitly into parse and render calls, never read from
// package-level state.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// Identifiers defines quoting rules
	Identifiers IdentifierConfig

	// Placeholder defines how query parameters are formatted
	Placeholder PlaceholderStyle

	// Lexing behavior
	DoubleQuoteIsString bool // "x" is a string literal, not an identifier (mysql family)
	BackslashEscapes    bool // backslash escapes inside string literals
	HashComments        bool // # starts a line comment

	// Keyword spellings and grammar switches
	UniqueKeySpelling bool // UNIQUE column option renders as UNIQUE KEY
	UnsignedTypes     bool // UNSIGNED/ZEROFILL numeric type suffixes
	SupportsIlike     bool // ILIKE predicate
	SupportsReturning bool // RETURNING clause on DML
	OnConflictClause  bool // ON CONFLICT upsert clause
	OnDuplicateClause bool // ON DUPLICATE KEY UPDATE clause
	CastOperator      bool // :: cast shorthand
	JSONOperators     bool // -> ->> (and #> #>> under postgres)
}

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (mysql, sqlite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. (postgres).
	PlaceholderDollar
)

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string // quote character: " or `
	QuoteEnd string // end quote character (same as Quote for these dialects)
	Escape   string // escape for an embedded quote: "" or ``
}
