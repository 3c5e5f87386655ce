// Package parser turns SQL text into the core AST.
//
// # Usage
//
//	stmts, err := parser.Parse("SELECT a, b FROM t", dialect.MustGet("mysql").Config())
//	if err != nil {
//	    // *parser.SyntaxError with position and expected set
//	}
//
// The parser requires a dialect config: quoting, comment styles, and a
// few grammar switches differ per dialect. Use the dialect registry to
// get one by name.
//
// # Grammar Overview
//
// The parser is hand-organized recursive descent. Expressions use
// precedence climbing (see parser_expr.go); statements are one
// function per statement kind:
//
//	script        → statement (';' statement)* [';']
//	statement     → select | insert | update | delete | create | alter
//	              | drop | truncate | rename | use | set | lock | show
//	              | grant | declare | if | for | call | transaction
//	              | comment | explain | describe
//	select        → [WITH cte_list] select_core
//	                [(UNION [ALL]|INTERSECT|EXCEPT) select_core]*
//	                [ORDER BY order_list] [LIMIT limit]
//
// The whole input is tokenized before parsing starts, so a checkpoint
// is an integer cursor and restore is a single assignment. Paths that
// need backtracking (e.g. distinguishing a parenthesized select from a
// parenthesized expression) save, attempt, and restore.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Parser parses SQL into core AST statements.
type Parser struct {
	tokens []token.Token
	pos    int
	cfg    core.DialectConfig

	exp expectation

	comments    []*token.Comment
	nextComment int
}

// New creates a parser over the given SQL input.
func New(sql string, cfg core.DialectConfig) *Parser {
	lex := NewLexer(sql, cfg)
	toks := lex.Tokenize()
	return &Parser{
		tokens:   toks,
		cfg:      cfg,
		comments: lex.Comments,
	}
}

// Parse parses a script of one or more semicolon-separated statements.
func Parse(sql string, cfg core.DialectConfig) ([]core.Statement, error) {
	return New(sql, cfg).Statements()
}

// ParseOne parses a single statement and returns it. Trailing
// semicolons are allowed; a second statement is an error.
func ParseOne(sql string, cfg core.DialectConfig) (core.Statement, error) {
	stmts, err := Parse(sql, cfg)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, &SyntaxError{Pos: token.Position{Line: 1, Column: 1}, Expected: []string{"a statement"}, Found: "end of input"}
	}
	if len(stmts) > 1 {
		return nil, &SyntaxError{
			Pos:      stmts[1].Pos(),
			Expected: []string{"end of input"},
			Found:    "a second statement",
		}
	}
	return stmts[0], nil
}

// Statements parses the whole input as a script.
func (p *Parser) Statements() ([]core.Statement, error) {
	var stmts []core.Statement
	for {
		for p.check(token.SEMI) {
			p.next()
		}
		if p.check(token.EOF) {
			return stmts, nil
		}
		start := p.cur()
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		p.attachComments(stmt, start.Pos.Offset)
		stmts = append(stmts, stmt)
		if !p.check(token.SEMI) && !p.check(token.EOF) {
			return nil, p.fail(`";"`, "end of input")
		}
	}
}

// attachComments moves comments that ended before the statement began
// onto the statement as leading comments.
func (p *Parser) attachComments(stmt core.Statement, offset int) {
	info, ok := stmt.(interface{ AttachLeadingComment(*token.Comment) })
	if !ok {
		return
	}
	for p.nextComment < len(p.comments) && p.comments[p.nextComment].Span.End.Offset <= offset {
		info.AttachLeadingComment(p.comments[p.nextComment])
		p.nextComment++
	}
}

// ---------- Token Helpers ----------

// cur returns the current token without advancing.
func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

// peek returns the lookahead token.
func (p *Parser) peek() token.Token {
	return p.peekAt(1)
}

// peekAt returns the token n positions ahead; past the end it keeps
// returning EOF.
func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

// next advances to the next token. Advancing past EOF is a no-op.
func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// prevEnd returns the end position of the token most recently consumed.
func (p *Parser) prevEnd() token.Position {
	if p.pos == 0 {
		return p.cur().Pos
	}
	return p.tokens[p.pos-1].End
}

// spanFrom builds the span from a start position to the last consumed
// token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prevEnd()}
}

// save returns a checkpoint of the cursor.
func (p *Parser) save() int {
	return p.pos
}

// restore rewinds the cursor to a checkpoint.
func (p *Parser) restore(mark int) {
	p.pos = mark
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.cur().Type == t
}

// checkAny returns true if the current token is any of the given types.
func (p *Parser) checkAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.cur().Type == t {
			return true
		}
	}
	return false
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.next()
		return true
	}
	return false
}

// expect consumes and returns the current token if it matches,
// otherwise records the expectation and fails.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	if p.check(t) {
		tok := p.cur()
		p.next()
		return tok, nil
	}
	return token.Token{}, p.fail(tokenWant(t))
}

// expectKeyword is expect for keywords, discarding the token.
func (p *Parser) expectKeyword(t token.TokenType) error {
	_, err := p.expect(t)
	return err
}

// fail records what was expected at the current token and returns a
// syntax error reflecting the furthest failure seen so far.
func (p *Parser) fail(wanted ...string) error {
	p.exp.record(p.cur().Pos.Offset, p.cur(), wanted...)
	return p.exp.err()
}

// tokenWant renders a token type for an expected set.
func tokenWant(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "an identifier"
	case token.QIDENT:
		return "a quoted identifier"
	case token.NUMBER:
		return "a number"
	case token.STRING:
		return "a string literal"
	case token.PARAM:
		return "a parameter"
	case token.EOF:
		return "end of input"
	default:
		if token.IsKeyword(t) {
			return t.String()
		}
		return fmt.Sprintf("%q", t.String())
	}
}

// ---------- Identifier Helpers ----------

// checkIdent returns true if the current token can serve as an
// identifier: a plain or quoted identifier, or a keyword soft enough to
// double as a name (KEY, COMMENT, DO and the like appear as column
// names in the wild).
func (p *Parser) checkIdent() bool {
	switch p.cur().Type {
	case token.IDENT, token.QIDENT:
		return true
	default:
		return isSoftKeyword(p.cur().Type)
	}
}

// parseIdent consumes an identifier and returns its name.
func (p *Parser) parseIdent() (string, error) {
	if p.checkIdent() {
		name := p.cur().Literal
		p.next()
		return name, nil
	}
	return "", p.fail("an identifier")
}

// checkWord returns true if the current token is the given bare word.
// Non-reserved words (UNSIGNED, ENGINE, MODIFY, ...) lex as plain
// identifiers and are matched case-insensitively where the grammar
// needs them.
func (p *Parser) checkWord(w string) bool {
	return p.cur().Type == token.IDENT && strings.EqualFold(p.cur().Literal, w)
}

// matchWord consumes the current token if it is the given bare word.
func (p *Parser) matchWord(w string) bool {
	if p.checkWord(w) {
		p.next()
		return true
	}
	return false
}

// expectWord consumes the given bare word or fails.
func (p *Parser) expectWord(w string) error {
	if p.matchWord(w) {
		return nil
	}
	return p.fail(strings.ToUpper(w))
}

// isSoftKeyword reports keywords that may be used as ordinary
// identifiers wherever a name is required.
func isSoftKeyword(t token.TokenType) bool {
	switch t {
	case token.KEY, token.COMMENT, token.DO, token.FIRST, token.LAST,
		token.ROW, token.ROWS, token.NULLS, token.OFFSET, token.BEGIN,
		token.SESSION, token.GLOBAL, token.TABLES, token.WORK, token.READ,
		token.WRITE, token.START, token.TRANSACTION, token.SAVEPOINT,
		token.RELEASE, token.TEMPORARY, token.DUPLICATE, token.CONFLICT,
		token.NOTHING, token.CASCADE, token.RESTRICT,
		token.CURRENT, token.FOLLOWING, token.PRECEDING, token.UNBOUNDED,
		token.SCHEMA, token.CALL, token.SHOW,
		token.COLUMN, token.ADD, token.CHANGE, token.ANALYZE:
		return true
	}
	return false
}

// ---------- Statement Dispatch ----------

// parseStatement parses one statement based on its leading keyword.
func (p *Parser) parseStatement() (core.Statement, error) {
	switch p.cur().Type {
	case token.WITH, token.SELECT, token.LPAREN:
		sel, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		return sel, nil
	case token.INSERT, token.REPLACE:
		return p.parseInsert()
	case token.UPDATE:
		return p.parseUpdate()
	case token.DELETE:
		return p.parseDelete()
	case token.CREATE:
		return p.parseCreate()
	case token.ALTER:
		return p.parseAlterTable()
	case token.DROP:
		return p.parseDrop()
	case token.TRUNCATE:
		return p.parseTruncate()
	case token.RENAME:
		return p.parseRename()
	case token.USE:
		return p.parseUse()
	case token.SET:
		return p.parseSet()
	case token.LOCK:
		return p.parseLock()
	case token.UNLOCK:
		return p.parseUnlock()
	case token.SHOW:
		return p.parseShow()
	case token.GRANT, token.REVOKE:
		return p.parseGrant()
	case token.DECLARE:
		return p.parseDeclare()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.CALL:
		return p.parseCall()
	case token.BEGIN, token.START, token.COMMIT, token.ROLLBACK,
		token.SAVEPOINT, token.RELEASE:
		return p.parseTransaction()
	case token.COMMENT:
		return p.parseCommentOn()
	case token.EXPLAIN, token.ANALYZE:
		return p.parseExplain()
	case token.DESCRIBE, token.DESC:
		return p.parseDescribe()
	default:
		return nil, p.fail("a statement")
	}
}
