// Package token defines the lexical token types for SQL parsing.
//
// The token set is closed: every dialect shares one keyword table, and
// dialect differences (quoting, comment styles, placeholder syntax) are
// handled by the lexer configuration rather than by registering tokens.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals and identifiers
	IDENT  // unquoted identifier
	QIDENT // quoted identifier (backtick or double-quote, per dialect)
	NUMBER // 123, 45.67, 1e10, including digit strings past int64
	STRING // 'hello'
	HEX    // x'1A2B' or 0x1A2B
	BIT    // b'0101' or 0b0101
	PARAM  // ?, :name, $1, $name

	// Operators and punctuation
	PLUS          // +
	MINUS         // -
	STAR          // *
	SLASH         // /
	PERCENT       // %
	DPIPE         // ||
	EQ            // =
	NE            // != or <>
	LT            // <
	GT            // >
	LE            // <=
	GE            // >=
	DOT           // .
	COMMA         // ,
	LPAREN        // (
	RPAREN        // )
	LBRACKET      // [
	RBRACKET      // ]
	SEMI          // ;
	ARROW         // ->
	DARROW        // ->>
	HASHGT        // #>
	HASHGTGT      // #>>
	DCOLON        // ::
	TILDE         // ~
	TILDESTAR     // ~*
	BANGTILDE     // !~
	BANGTILDESTAR // !~*
	BANG          // !
	AMP           // &
	PIPE          // |
	CARET         // ^
	LSHIFT        // <<
	RSHIFT        // >>

	// Keywords (alphabetical)
	ADD
	ALL
	ALTER
	ANALYZE
	AND
	AS
	ASC
	BEGIN
	BETWEEN
	BY
	CALL
	CASCADE
	CASE
	CAST
	CHANGE
	CHECK
	COLLATE
	COLUMN
	COMMENT
	COMMIT
	CONFLICT
	CONSTRAINT
	CREATE
	CROSS
	CURRENT
	DATABASE
	DECLARE
	DEFAULT
	DELETE
	DESC
	DESCRIBE
	DISTINCT
	DO
	DROP
	DUPLICATE
	ELSE
	ELSEIF
	END
	ESCAPE
	EXCEPT
	EXISTS
	EXPLAIN
	FALSE
	FIRST
	FOLLOWING
	FOR
	FOREIGN
	FROM
	FULL
	GLOBAL
	GRANT
	GROUP
	GROUPS
	HAVING
	IF
	IGNORE
	ILIKE
	IN
	INDEX
	INNER
	INSERT
	INTERSECT
	INTERVAL
	INTO
	IS
	JOIN
	KEY
	LAST
	LEFT
	LIKE
	LIMIT
	LOCK
	NATURAL
	NOT
	NOTHING
	NULL
	NULLS
	OFFSET
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PRECEDING
	PRIMARY
	RANGE
	READ
	RECURSIVE
	REFERENCES
	REGEXP
	RELEASE
	RENAME
	REPLACE
	RESTRICT
	RETURNING
	REVOKE
	RIGHT
	RLIKE
	ROLLBACK
	ROW
	ROWS
	SAVEPOINT
	SCHEMA
	SELECT
	SESSION
	SET
	SHOW
	SIMILAR
	START
	TABLE
	TABLES
	TEMPORARY
	THEN
	TO
	TRANSACTION
	TRUE
	TRUNCATE
	UNBOUNDED
	UNION
	UNIQUE
	UNLOCK
	UPDATE
	USE
	USING
	VALUES
	VIEW
	WHEN
	WHERE
	WINDOW
	WITH
	WORK
	WRITE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	QIDENT: "QIDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	HEX:    "HEX",
	BIT:    "BIT",
	PARAM:  "PARAM",

	PLUS:          "+",
	MINUS:         "-",
	STAR:          "*",
	SLASH:         "/",
	PERCENT:       "%",
	DPIPE:         "||",
	EQ:            "=",
	NE:            "!=",
	LT:            "<",
	GT:            ">",
	LE:            "<=",
	GE:            ">=",
	DOT:           ".",
	COMMA:         ",",
	LPAREN:        "(",
	RPAREN:        ")",
	LBRACKET:      "[",
	RBRACKET:      "]",
	SEMI:          ";",
	ARROW:         "->",
	DARROW:        "->>",
	HASHGT:        "#>",
	HASHGTGT:      "#>>",
	DCOLON:        "::",
	TILDE:         "~",
	TILDESTAR:     "~*",
	BANGTILDE:     "!~",
	BANGTILDESTAR: "!~*",
	BANG:          "!",
	AMP:           "&",
	PIPE:          "|",
	CARET:         "^",
	LSHIFT:        "<<",
	RSHIFT:        ">>",

	ADD:         "ADD",
	ALL:         "ALL",
	ALTER:       "ALTER",
	ANALYZE:     "ANALYZE",
	AND:         "AND",
	AS:          "AS",
	ASC:         "ASC",
	BEGIN:       "BEGIN",
	BETWEEN:     "BETWEEN",
	BY:          "BY",
	CALL:        "CALL",
	CASCADE:     "CASCADE",
	CASE:        "CASE",
	CAST:        "CAST",
	CHANGE:      "CHANGE",
	CHECK:       "CHECK",
	COLLATE:     "COLLATE",
	COLUMN:      "COLUMN",
	COMMENT:     "COMMENT",
	COMMIT:      "COMMIT",
	CONFLICT:    "CONFLICT",
	CONSTRAINT:  "CONSTRAINT",
	CREATE:      "CREATE",
	CROSS:       "CROSS",
	CURRENT:     "CURRENT",
	DATABASE:    "DATABASE",
	DECLARE:     "DECLARE",
	DEFAULT:     "DEFAULT",
	DELETE:      "DELETE",
	DESC:        "DESC",
	DESCRIBE:    "DESCRIBE",
	DISTINCT:    "DISTINCT",
	DO:          "DO",
	DROP:        "DROP",
	DUPLICATE:   "DUPLICATE",
	ELSE:        "ELSE",
	ELSEIF:      "ELSEIF",
	END:         "END",
	ESCAPE:      "ESCAPE",
	EXCEPT:      "EXCEPT",
	EXISTS:      "EXISTS",
	EXPLAIN:     "EXPLAIN",
	FALSE:       "FALSE",
	FIRST:       "FIRST",
	FOLLOWING:   "FOLLOWING",
	FOR:         "FOR",
	FOREIGN:     "FOREIGN",
	FROM:        "FROM",
	FULL:        "FULL",
	GLOBAL:      "GLOBAL",
	GRANT:       "GRANT",
	GROUP:       "GROUP",
	GROUPS:      "GROUPS",
	HAVING:      "HAVING",
	IF:          "IF",
	IGNORE:      "IGNORE",
	ILIKE:       "ILIKE",
	IN:          "IN",
	INDEX:       "INDEX",
	INNER:       "INNER",
	INSERT:      "INSERT",
	INTERSECT:   "INTERSECT",
	INTERVAL:    "INTERVAL",
	INTO:        "INTO",
	IS:          "IS",
	JOIN:        "JOIN",
	KEY:         "KEY",
	LAST:        "LAST",
	LEFT:        "LEFT",
	LIKE:        "LIKE",
	LIMIT:       "LIMIT",
	LOCK:        "LOCK",
	NATURAL:     "NATURAL",
	NOT:         "NOT",
	NOTHING:     "NOTHING",
	NULL:        "NULL",
	NULLS:       "NULLS",
	OFFSET:      "OFFSET",
	ON:          "ON",
	OR:          "OR",
	ORDER:       "ORDER",
	OUTER:       "OUTER",
	OVER:        "OVER",
	PARTITION:   "PARTITION",
	PRECEDING:   "PRECEDING",
	PRIMARY:     "PRIMARY",
	RANGE:       "RANGE",
	READ:        "READ",
	RECURSIVE:   "RECURSIVE",
	REFERENCES:  "REFERENCES",
	REGEXP:      "REGEXP",
	RELEASE:     "RELEASE",
	RENAME:      "RENAME",
	REPLACE:     "REPLACE",
	RESTRICT:    "RESTRICT",
	RETURNING:   "RETURNING",
	REVOKE:      "REVOKE",
	RIGHT:       "RIGHT",
	RLIKE:       "RLIKE",
	ROLLBACK:    "ROLLBACK",
	ROW:         "ROW",
	ROWS:        "ROWS",
	SAVEPOINT:   "SAVEPOINT",
	SCHEMA:      "SCHEMA",
	SELECT:      "SELECT",
	SESSION:     "SESSION",
	SET:         "SET",
	SHOW:        "SHOW",
	SIMILAR:     "SIMILAR",
	START:       "START",
	TABLE:       "TABLE",
	TABLES:      "TABLES",
	TEMPORARY:   "TEMPORARY",
	THEN:        "THEN",
	TO:          "TO",
	TRANSACTION: "TRANSACTION",
	TRUE:        "TRUE",
	TRUNCATE:    "TRUNCATE",
	UNBOUNDED:   "UNBOUNDED",
	UNION:       "UNION",
	UNIQUE:      "UNIQUE",
	UNLOCK:      "UNLOCK",
	UPDATE:      "UPDATE",
	USE:         "USE",
	USING:       "USING",
	VALUES:      "VALUES",
	VIEW:        "VIEW",
	WHEN:        "WHEN",
	WHERE:       "WHERE",
	WINDOW:      "WINDOW",
	WITH:        "WITH",
	WORK:        "WORK",
	WRITE:       "WRITE",
}

// keywords maps lowercase keyword strings to their token types.
var keywords map[string]TokenType

func init() {
	keywords = make(map[string]TokenType, WRITE-ADD+1)
	for t := ADD; t <= WRITE; t++ {
		keywords[lower(tokenNames[t])] = t
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword (case-insensitive), the keyword token
// type is returned; otherwise IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[lower(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= ADD && t <= WRITE
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= RSHIFT
}

// Token represents a lexical token with position information.
// Literal holds the decoded text: the unquoted name for QIDENT, the
// decoded value for STRING, and the verbatim source text otherwise.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     Position
}
