package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlbridge/pkg/core"
	"github.com/leapstack-labs/sqlbridge/pkg/token"
)

// Lexer tokenizes SQL input. The whole input is scanned up front so the
// parser can treat its cursor as a plain slice index, which makes
// checkpoint save/restore an integer copy.
//
// Scanning never fails: bytes that fit no token become ILLEGAL tokens,
// and the parser reports those as syntax errors with positions.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	cfg core.DialectConfig

	// Comments collected during lexing (for the formatter)
	Comments []*token.Comment
}

// NewLexer creates a new Lexer for the given input and dialect config.
// The config controls comment styles, string quoting, and escape rules.
func NewLexer(input string, cfg core.DialectConfig) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
		cfg:   cfg,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns the token slice. The last
// token is always EOF.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekCharAt returns the character n positions ahead without advancing.
// peekCharAt(1) is equivalent to peekChar.
func (l *Lexer) peekCharAt(n int) byte {
	idx := l.readPos + n - 1
	if idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Literal: "", Pos: pos, End: pos}

	case l.ch == '\'':
		return l.readString(pos, '\'')

	case l.ch == '"':
		if l.cfg.DoubleQuoteIsString {
			return l.readString(pos, '"')
		}
		return l.readQuotedIdentifier(pos, '"')

	case l.ch == '`':
		return l.readQuotedIdentifier(pos, '`')

	case isLetter(l.ch) || l.ch == '_' || l.ch == '@':
		return l.readWord(pos)

	case isDigit(l.ch):
		return l.readNumber(pos)

	case l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(pos)

	case l.ch == '?':
		l.readChar()
		return token.Token{Type: token.PARAM, Literal: "?", Pos: pos, End: l.currentPos()}

	case l.ch == ':':
		return l.readColon(pos)

	case l.ch == '$' && l.cfg.Placeholder == core.PlaceholderDollar:
		return l.readDollar(pos)

	default:
		return l.readOperator(pos)
	}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		// Skip whitespace
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		// Collect line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			l.collectLineComment(token.LineComment)
			continue
		}

		// Collect hash comment (# ...) in dialects that allow it
		if l.ch == '#' && l.cfg.HashComments {
			l.collectLineComment(token.HashComment)
			continue
		}

		// Collect block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}

		break
	}
}

// collectLineComment collects a comment that runs to end of line.
func (l *Lexer) collectLineComment(kind token.CommentKind) {
	startPos := l.currentPos()
	startOffset := l.pos

	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: kind,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a block comment. Block comments do not
// nest: the first */ terminates. An unterminated comment runs to EOF.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			break
		}
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readWord reads an unquoted identifier, keyword, variable (@x, @@x),
// or an x'..'/b'..' literal prefix.
func (l *Lexer) readWord(pos token.Position) token.Token {
	// Hex and bit string literals: x'1A2B', b'0101'
	if (l.ch == 'x' || l.ch == 'X' || l.ch == 'b' || l.ch == 'B') && l.peekChar() == '\'' {
		return l.readPrefixedLiteral(pos)
	}

	start := l.pos
	isVariable := l.ch == '@'
	for l.ch == '@' {
		l.readChar()
	}
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' || (isVariable && l.ch == '.') {
		l.readChar()
	}
	word := l.input[start:l.pos]

	// Variables never collide with keywords
	if isVariable {
		return token.Token{Type: token.IDENT, Literal: word, Pos: pos, End: l.currentPos()}
	}
	return token.Token{Type: token.LookupIdent(word), Literal: word, Pos: pos, End: l.currentPos()}
}

// readPrefixedLiteral reads x'...' or b'...' forms.
func (l *Lexer) readPrefixedLiteral(pos token.Position) token.Token {
	isHex := l.ch == 'x' || l.ch == 'X'
	start := l.pos
	l.readChar() // prefix
	l.readChar() // opening quote
	for l.ch != '\'' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}
	l.readChar() // closing quote
	typ := token.BIT
	if isHex {
		typ = token.HEX
	}
	return token.Token{Type: typ, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
}

// readNumber reads a numeric literal: integer, decimal, scientific, or
// the 0x/0b prefixed forms. The verbatim text is kept; deciding between
// a native number and a big integer literal happens in the parser.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') && isHexDigit(l.peekCharAt(2)) {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return token.Token{Type: token.HEX, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') && (l.peekCharAt(2) == '0' || l.peekCharAt(2) == '1') {
		l.readChar()
		l.readChar()
		for l.ch == '0' || l.ch == '1' {
			l.readChar()
		}
		return token.Token{Type: token.BIT, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}

	// Integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Decimal part, including the leading-dot form .5
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part (e.g., 1e10, 1E-5)
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharAt(2))) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
}

// readString reads a quoted string literal and returns the decoded
// value. Doubling the quote always escapes it; backslash escapes apply
// when the dialect enables them. An unterminated string is ILLEGAL.
func (l *Lexer) readString(pos token.Position, quote byte) token.Token {
	var result strings.Builder
	l.readChar() // skip opening quote

	for {
		switch {
		case l.ch == 0:
			return token.Token{Type: token.ILLEGAL, Literal: result.String(), Pos: pos, End: l.currentPos()}

		case l.ch == quote:
			if l.peekChar() == quote {
				result.WriteByte(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return token.Token{Type: token.STRING, Literal: result.String(), Pos: pos, End: l.currentPos()}

		case l.ch == '\\' && l.cfg.BackslashEscapes:
			l.readChar()
			if l.ch == 0 {
				result.WriteByte('\\')
				continue
			}
			l.decodeEscape(&result)

		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// decodeEscape decodes one backslash escape the way mysql does and
// advances past it. The \% and \_ sequences keep their backslash so
// pattern matching still sees the escape; \xHH and \uXXXX emit the
// named byte or code point when the hex digits are present; anything
// unrecognized drops the backslash.
func (l *Lexer) decodeEscape(out *strings.Builder) {
	switch l.ch {
	case 'n':
		out.WriteByte('\n')
	case 't':
		out.WriteByte('\t')
	case 'r':
		out.WriteByte('\r')
	case '0':
		out.WriteByte(0)
	case 'b':
		out.WriteByte('\b')
	case 'Z':
		out.WriteByte(0x1a)
	case '%':
		out.WriteString(`\%`)
	case '_':
		out.WriteString(`\_`)
	case 'x':
		if !isHexDigit(l.peekChar()) || !isHexDigit(l.peekCharAt(2)) {
			out.WriteByte(l.ch)
			break
		}
		l.readChar()
		hi := hexValue(l.ch)
		l.readChar()
		out.WriteByte(hi<<4 | hexValue(l.ch))
	case 'u':
		for i := 1; i <= 4; i++ {
			if !isHexDigit(l.peekCharAt(i)) {
				out.WriteByte(l.ch)
				l.readChar()
				return
			}
		}
		var r rune
		for i := 0; i < 4; i++ {
			l.readChar()
			r = r<<4 | rune(hexValue(l.ch))
		}
		out.WriteRune(r)
	default:
		out.WriteByte(l.ch)
	}
	l.readChar()
}

// readQuotedIdentifier reads a quoted identifier and returns the
// unquoted name. A doubled closing quote escapes it.
func (l *Lexer) readQuotedIdentifier(pos token.Position, quote byte) token.Token {
	var result strings.Builder
	l.readChar() // skip opening quote

	for {
		switch {
		case l.ch == 0:
			return token.Token{Type: token.ILLEGAL, Literal: result.String(), Pos: pos, End: l.currentPos()}

		case l.ch == quote:
			if l.peekChar() == quote {
				result.WriteByte(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return token.Token{Type: token.QIDENT, Literal: result.String(), Pos: pos, End: l.currentPos()}

		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readColon reads :: or a :name parameter.
func (l *Lexer) readColon(pos token.Position) token.Token {
	if l.peekChar() == ':' {
		l.readChar()
		l.readChar()
		return token.Token{Type: token.DCOLON, Literal: "::", Pos: pos, End: l.currentPos()}
	}
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return token.Token{Type: token.EQ, Literal: ":=", Pos: pos, End: l.currentPos()}
	}
	if isLetter(l.peekChar()) || l.peekChar() == '_' {
		start := l.pos
		l.readChar()
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return token.Token{Type: token.PARAM, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: ":", Pos: pos, End: l.currentPos()}
}

// readDollar reads $1 or $name parameters.
func (l *Lexer) readDollar(pos token.Position) token.Token {
	start := l.pos
	if isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		return token.Token{Type: token.PARAM, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}
	if isLetter(l.peekChar()) || l.peekChar() == '_' {
		l.readChar()
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return token.Token{Type: token.PARAM, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: "$", Pos: pos, End: l.currentPos()}
}

// readOperator reads punctuation and operator tokens, longest first.
func (l *Lexer) readOperator(pos token.Position) token.Token {
	// Three-byte operators
	if l.ch == '-' && l.peekChar() == '>' && l.peekCharAt(2) == '>' {
		l.readChar()
		l.readChar()
		l.readChar()
		return token.Token{Type: token.DARROW, Literal: "->>", Pos: pos, End: l.currentPos()}
	}
	if l.ch == '#' && l.peekChar() == '>' && l.peekCharAt(2) == '>' {
		l.readChar()
		l.readChar()
		l.readChar()
		return token.Token{Type: token.HASHGTGT, Literal: "#>>", Pos: pos, End: l.currentPos()}
	}
	if l.ch == '!' && l.peekChar() == '~' && l.peekCharAt(2) == '*' {
		l.readChar()
		l.readChar()
		l.readChar()
		return token.Token{Type: token.BANGTILDESTAR, Literal: "!~*", Pos: pos, End: l.currentPos()}
	}

	// Two-byte operators
	if l.peekChar() != 0 {
		two := l.input[l.pos : l.pos+2]
		if typ, ok := twoByteOps[two]; ok {
			l.readChar()
			l.readChar()
			return token.Token{Type: typ, Literal: two, Pos: pos, End: l.currentPos()}
		}
	}

	ch := l.ch
	if typ, ok := oneByteOps[ch]; ok {
		l.readChar()
		return token.Token{Type: typ, Literal: string(ch), Pos: pos, End: l.currentPos()}
	}

	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: pos, End: l.currentPos()}
}

var twoByteOps = map[string]token.TokenType{
	"<>": token.NE,
	"!=": token.NE,
	"<=": token.LE,
	">=": token.GE,
	"||": token.DPIPE,
	"->": token.ARROW,
	"#>": token.HASHGT,
	"<<": token.LSHIFT,
	">>": token.RSHIFT,
	"~*": token.TILDESTAR,
	"!~": token.BANGTILDE,
}

var oneByteOps = map[byte]token.TokenType{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'=': token.EQ,
	'<': token.LT,
	'>': token.GT,
	'.': token.DOT,
	',': token.COMMA,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	';': token.SEMI,
	'~': token.TILDE,
	'!': token.BANG,
	'&': token.AMP,
	'|': token.PIPE,
	'^': token.CARET,
}

// isLetter returns true if ch starts or continues an identifier. Bytes
// past ASCII are accepted so multibyte identifiers pass through intact.
func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= 0x80
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// hexValue returns the numeric value of a hex digit.
func hexValue(ch byte) byte {
	switch {
	case ch <= '9':
		return ch - '0'
	case ch >= 'a':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}
