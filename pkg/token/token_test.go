package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdentKeywords(t *testing.T) {
	assert.Equal(t, SELECT, LookupIdent("select"))
	assert.Equal(t, SELECT, LookupIdent("SELECT"))
	assert.Equal(t, SELECT, LookupIdent("Select"))
	assert.Equal(t, TRUNCATE, LookupIdent("truncate"))
	assert.Equal(t, SAVEPOINT, LookupIdent("SAVEPOINT"))
}

func TestLookupIdentNonKeyword(t *testing.T) {
	assert.Equal(t, IDENT, LookupIdent("users"))
	assert.Equal(t, IDENT, LookupIdent("selecting"))
	assert.Equal(t, IDENT, LookupIdent(""))
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword(SELECT))
	assert.True(t, IsKeyword(ADD))
	assert.True(t, IsKeyword(WRITE))
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(PLUS))
	assert.False(t, IsKeyword(EOF))
}

func TestIsOperator(t *testing.T) {
	assert.True(t, IsOperator(PLUS))
	assert.True(t, IsOperator(DCOLON))
	assert.True(t, IsOperator(RSHIFT))
	assert.False(t, IsOperator(SELECT))
	assert.False(t, IsOperator(NUMBER))
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, "QIDENT", QIDENT.String())
	assert.Equal(t, "TOKEN(9999)", TokenType(9999).String())
}

func TestEveryKeywordRoundTrips(t *testing.T) {
	for kw := ADD; kw <= WRITE; kw++ {
		name := kw.String()
		assert.Equal(t, kw, LookupIdent(name), "keyword %s", name)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 14, Offset: 42}
	assert.Equal(t, "line 3, column 14", p.String())
	assert.True(t, p.IsValid())
	assert.False(t, Position{}.IsValid())
}

func TestSpanContains(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 6, Offset: 5},
	}
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5))
	assert.True(t, s.IsValid())
}
