package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// lex tokenizes under the mysql config and strips the trailing EOF.
func lex(sql string) []token.Token {
	toks := parser.NewLexer(sql, mysql.Config).Tokenize()
	return toks[:len(toks)-1]
}

func lexPg(sql string) []token.Token {
	toks := parser.NewLexer(sql, postgres.Config).Tokenize()
	return toks[:len(toks)-1]
}

func types(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

// ---------- Basic Token Stream Tests ----------

func TestLexSimpleSelect(t *testing.T) {
	toks := lex("SELECT id FROM users")
	require.Len(t, toks, 4)
	assert.Equal(t, []token.TokenType{token.SELECT, token.IDENT, token.FROM, token.IDENT}, types(toks))
	assert.Equal(t, "id", toks[1].Literal)
	assert.Equal(t, "users", toks[3].Literal)
}

func TestLexKeywordsAreCaseInsensitive(t *testing.T) {
	toks := lex("select Id fRoM users")
	assert.Equal(t, []token.TokenType{token.SELECT, token.IDENT, token.FROM, token.IDENT}, types(toks))
	// Identifier literals keep their original spelling.
	assert.Equal(t, "Id", toks[1].Literal)
}

func TestLexEOFTerminated(t *testing.T) {
	toks := parser.NewLexer("SELECT 1", mysql.Config).Tokenize()
	require.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestLexEmptyInput(t *testing.T) {
	toks := parser.NewLexer("", mysql.Config).Tokenize()
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Type)
}

// ---------- Operator Tests ----------

func TestLexOperators(t *testing.T) {
	tests := []struct {
		sql  string
		want token.TokenType
	}{
		{"<>", token.NE},
		{"!=", token.NE},
		{"<=", token.LE},
		{">=", token.GE},
		{"||", token.DPIPE},
		{"<<", token.LSHIFT},
		{">>", token.RSHIFT},
		{"->", token.ARROW},
		{"->>", token.DARROW},
		{"::", token.DCOLON},
		{"~", token.TILDE},
		{"~*", token.TILDESTAR},
		{"!~", token.BANGTILDE},
		{"!~*", token.BANGTILDESTAR},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			toks := lex("a " + tt.sql + " b")
			require.Len(t, toks, 3)
			assert.Equal(t, tt.want, toks[1].Type)
			assert.Equal(t, tt.sql, toks[1].Literal)
		})
	}
}

func TestLexColonEqualsAsAssignment(t *testing.T) {
	toks := lex("@x := 1")
	require.Len(t, toks, 3)
	assert.Equal(t, token.EQ, toks[1].Type)
	assert.Equal(t, ":=", toks[1].Literal)
}

func TestLexHashPathOperatorsUnderPostgres(t *testing.T) {
	// Under postgres # does not start a comment, so #> and #>> are
	// JSON path operators.
	toks := lexPg("j #> k #>> l")
	require.Len(t, toks, 5)
	assert.Equal(t, token.HASHGT, toks[1].Type)
	assert.Equal(t, token.HASHGTGT, toks[3].Type)
}

func TestLexHashStartsCommentUnderMySQL(t *testing.T) {
	lx := parser.NewLexer("SELECT 1 # trailing", mysql.Config)
	toks := lx.Tokenize()
	assert.Equal(t, []token.TokenType{token.SELECT, token.NUMBER, token.EOF}, types(toks))
	require.Len(t, lx.Comments, 1)
	assert.Equal(t, token.HashComment, lx.Comments[0].Kind)
}

// ---------- String Literal Tests ----------

func TestLexStringQuoteDoubling(t *testing.T) {
	toks := lex("'it''s'")
	require.Len(t, toks, 1)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "it's", toks[0].Literal)
}

func TestLexStringBackslashEscapesMySQL(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"newline", `'a\nb'`, "a\nb"},
		{"tab", `'a\tb'`, "a\tb"},
		{"backslash", `'a\\b'`, `a\b`},
		{"quote", `'a\'b'`, "a'b"},
		{"percent keeps backslash", `'100\%'`, `100\%`},
		{"underscore keeps backslash", `'a\_b'`, `a\_b`},
		{"hex byte", `'\x41\x62'`, "Ab"},
		{"unicode code point", `'\u0041'`, "A"},
		{"unicode multibyte", `'\u00e9'`, "é"},
		{"hex without digits drops backslash", `'a\xzb'`, "axzb"},
		{"short unicode drops backslash", `'a\u12g'`, "au12g"},
		{"unknown escape drops backslash", `'a\qb'`, "aqb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lex(tt.sql)
			require.Len(t, toks, 1)
			assert.Equal(t, tt.want, toks[0].Literal)
		})
	}
}

func TestLexStringBackslashLiteralUnderPostgres(t *testing.T) {
	// Without backslash escapes the backslash is an ordinary character.
	toks := lexPg(`'a\nb'`)
	require.Len(t, toks, 1)
	assert.Equal(t, `a\nb`, toks[0].Literal)
}

func TestLexDoubleQuoteByDialect(t *testing.T) {
	mysqlToks := lex(`"hello"`)
	require.Len(t, mysqlToks, 1)
	assert.Equal(t, token.STRING, mysqlToks[0].Type, "mysql treats double quotes as strings")

	pgToks := lexPg(`"hello"`)
	require.Len(t, pgToks, 1)
	assert.Equal(t, token.QIDENT, pgToks[0].Type, "postgres treats double quotes as identifiers")
}

func TestLexBacktickIdentifier(t *testing.T) {
	toks := lex("`my``table`")
	require.Len(t, toks, 1)
	assert.Equal(t, token.QIDENT, toks[0].Type)
	assert.Equal(t, "my`table", toks[0].Literal)
}

// ---------- Number Literal Tests ----------

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		sql  string
		want token.TokenType
	}{
		{"0", token.NUMBER},
		{"42", token.NUMBER},
		{"3.14", token.NUMBER},
		{".5", token.NUMBER},
		{"1e10", token.NUMBER},
		{"1.5E-3", token.NUMBER},
		{"0xFF", token.HEX},
		{"0b0101", token.BIT},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			toks := lex(tt.sql)
			require.Len(t, toks, 1)
			assert.Equal(t, tt.want, toks[0].Type)
			assert.Equal(t, tt.sql, toks[0].Literal)
		})
	}
}

func TestLexPrefixedLiterals(t *testing.T) {
	// The original spelling is kept so x'1F' and 0x1F stay distinct.
	toks := lex("x'1F' b'01'")
	require.Len(t, toks, 2)
	assert.Equal(t, token.HEX, toks[0].Type)
	assert.Equal(t, "x'1F'", toks[0].Literal)
	assert.Equal(t, token.BIT, toks[1].Type)
	assert.Equal(t, "b'01'", toks[1].Literal)
}

// ---------- Parameter Tests ----------

func TestLexParameters(t *testing.T) {
	toks := lex("? :name")
	require.Len(t, toks, 2)
	assert.Equal(t, token.PARAM, toks[0].Type)
	assert.Equal(t, "?", toks[0].Literal)
	assert.Equal(t, token.PARAM, toks[1].Type)
	assert.Equal(t, ":name", toks[1].Literal)
}

func TestLexDollarParamsUnderPostgres(t *testing.T) {
	toks := lexPg("$1 $tag")
	require.Len(t, toks, 2)
	assert.Equal(t, token.PARAM, toks[0].Type)
	assert.Equal(t, "$1", toks[0].Literal)
	assert.Equal(t, token.PARAM, toks[1].Type)
	assert.Equal(t, "$tag", toks[1].Literal)
}

func TestLexVariables(t *testing.T) {
	toks := lex("@v @@session.sql_mode")
	require.Len(t, toks, 2)
	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, "@v", toks[0].Literal)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, "@@session.sql_mode", toks[1].Literal)
}

// ---------- Comment Collection Tests ----------

func TestLexCommentsCollected(t *testing.T) {
	sql := "-- leading\nSELECT /* inline */ 1"
	lx := parser.NewLexer(sql, mysql.Config)
	toks := lx.Tokenize()
	assert.Equal(t, []token.TokenType{token.SELECT, token.NUMBER, token.EOF}, types(toks))

	require.Len(t, lx.Comments, 2)
	assert.Equal(t, token.LineComment, lx.Comments[0].Kind)
	assert.Equal(t, "-- leading", lx.Comments[0].Text)
	assert.Equal(t, token.BlockComment, lx.Comments[1].Kind)
	assert.Equal(t, "/* inline */", lx.Comments[1].Text)
}

func TestLexUnterminatedBlockCommentRunsToEOF(t *testing.T) {
	lx := parser.NewLexer("SELECT 1 /* open", mysql.Config)
	toks := lx.Tokenize()
	assert.Equal(t, []token.TokenType{token.SELECT, token.NUMBER, token.EOF}, types(toks))
	require.Len(t, lx.Comments, 1)
	assert.Equal(t, "/* open", lx.Comments[0].Text)
}

// ---------- Position Tests ----------

func TestLexPositions(t *testing.T) {
	toks := lex("SELECT a\nFROM t")
	require.Len(t, toks, 4)

	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 1, toks[0].Pos.Column)
	assert.Equal(t, 1, toks[1].Pos.Line)
	assert.Equal(t, 8, toks[1].Pos.Column)
	assert.Equal(t, 2, toks[2].Pos.Line)
	assert.Equal(t, 1, toks[2].Pos.Column)
	assert.Equal(t, 2, toks[3].Pos.Line)
	assert.Equal(t, 6, toks[3].Pos.Column)
}

func TestLexEndPositions(t *testing.T) {
	toks := lex("SELECT abc")
	require.Len(t, toks, 2)
	assert.Equal(t, 0, toks[0].Pos.Offset)
	assert.Equal(t, 6, toks[0].End.Offset)
	assert.Equal(t, 7, toks[1].Pos.Offset)
	assert.Equal(t, 10, toks[1].End.Offset)
}
