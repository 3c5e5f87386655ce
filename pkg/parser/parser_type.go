package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Data type parsing, shared by CAST targets, :: casts, column
// definitions, and DECLARE.
//
// Grammar:
//
//	data_type → type_name ["(" type_arg ("," type_arg)* ")"]
//	            [UNSIGNED] [ZEROFILL]
//	            [CHARACTER SET ident] [COLLATE ident]
//	type_name → identifier
//	          | DOUBLE PRECISION | CHARACTER VARYING | BIT VARYING
//	          | TIME|TIMESTAMP [WITH|WITHOUT TIME ZONE]
//	type_arg  → NUMBER | STRING | identifier

// parseDataType parses a column type.
func (p *Parser) parseDataType() (*core.DataType, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	typ := &core.DataType{Name: strings.ToUpper(name)}

	// Two-word spellings
	switch strings.ToLower(name) {
	case "double":
		if p.matchWord("precision") {
			typ.Name += " PRECISION"
		}
	case "character", "char", "nchar", "bit":
		if p.matchWord("varying") {
			typ.Name += " VARYING"
		}
	case "time", "timestamp":
		if zone, ok := p.parseTimeZoneSuffix(); ok {
			typ.Name += zone
		}
	}

	if p.match(token.LPAREN) {
		for {
			arg, err := p.parseTypeArg()
			if err != nil {
				return nil, err
			}
			typ.Args = append(typ.Args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		if zone, ok := p.parseTimeZoneSuffix(); ok {
			typ.Name += zone
		}
	}

	if p.cfg.UnsignedTypes {
		if p.matchWord("unsigned") {
			typ.Unsigned = true
		}
		if p.matchWord("zerofill") {
			typ.Zerofill = true
		}
	}
	if p.matchWord("character") {
		if err := p.expectKeyword(token.SET); err != nil {
			return nil, err
		}
		cs, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		typ.Charset = cs
	} else if p.matchWord("charset") {
		cs, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		typ.Charset = cs
	}
	if p.match(token.COLLATE) {
		col, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		typ.Collate = col
	}

	return typ, nil
}

// parseTimeZoneSuffix consumes WITH TIME ZONE / WITHOUT TIME ZONE.
func (p *Parser) parseTimeZoneSuffix() (string, bool) {
	switch {
	case p.check(token.WITH) && p.peekWord(1, "time") && p.peekWord(2, "zone"):
		p.next()
		p.next()
		p.next()
		return " WITH TIME ZONE", true
	case p.checkWord("without") && p.peekWord(1, "time") && p.peekWord(2, "zone"):
		p.next()
		p.next()
		p.next()
		return " WITHOUT TIME ZONE", true
	}
	return "", false
}

// peekWord checks whether the token n ahead is the given bare word.
func (p *Parser) peekWord(n int, w string) bool {
	t := p.peekAt(n)
	return t.Type == token.IDENT && strings.EqualFold(t.Literal, w)
}

// parseTypeArg parses one argument inside a type's parentheses: a
// length, a precision, or an enum value.
func (p *Parser) parseTypeArg() (string, error) {
	switch p.cur().Type {
	case token.NUMBER:
		arg := p.cur().Literal
		p.next()
		return arg, nil
	case token.STRING:
		arg := "'" + strings.ReplaceAll(p.cur().Literal, "'", "''") + "'"
		p.next()
		return arg, nil
	case token.IDENT:
		arg := p.cur().Literal
		p.next()
		return arg, nil
	default:
		return "", p.fail("a type argument")
	}
}
