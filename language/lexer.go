package language

import (
	"fmt"
	"strconv"
	"strings"
)

// Lexer scans a filter expression into tokens. It walks the input byte by
// byte; multi-byte characters only ever appear inside string literals, where
// they are copied through untouched.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

// NewLexer creates a lexer over the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()

	return l
}

// Tokenize drains the lexer and returns the full token stream, terminated
// by an EOF token.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)

	var tokens []Token

	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)

		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() (Token, error) {
	for {
		l.skipWhitespace()

		if l.ch == '-' && l.peekChar() == '-' {
			l.skipLineComment()
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			if err := l.skipBlockComment(); err != nil {
				return Token{}, err
			}

			continue
		}

		break
	}

	pos := l.position

	var tok Token

	switch l.ch {
	case '(':
		tok = l.newToken(LPAREN)
	case ')':
		tok = l.newToken(RPAREN)
	case ',':
		tok = l.newToken(COMMA)
	case '+':
		tok = l.newToken(PLUS)
	case '-':
		tok = l.newToken(MINUS)
	case '*':
		tok = l.newToken(ASTERISK)
	case '/':
		tok = l.newToken(SLASH)
	case '%':
		tok = l.newToken(PERCENT)
	case '=':
		tok = l.newToken(EQ)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: NotEQ, Literal: "<>", Pos: pos}
		} else {
			return Token{}, l.errorf("Unexpected character: '!'")
		}
	case '<':
		switch l.peekChar() {
		case '>':
			l.readChar()
			tok = Token{Type: NotEQ, Literal: "<>", Pos: pos}
		case '=':
			l.readChar()
			tok = Token{Type: LTE, Literal: "<=", Pos: pos}
		default:
			tok = l.newToken(LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GTE, Literal: ">=", Pos: pos}
		} else {
			tok = l.newToken(GT)
		}
	case '\'':
		str, err := l.readString()
		if err != nil {
			return Token{}, err
		}

		return Token{Type: STRING, Literal: str, Pos: pos}, nil
	case 0:
		tok = Token{Type: EOF, Literal: "", Pos: pos}
	default:
		switch {
		case isLetter(l.ch):
			ident := l.readIdentifier()
			return Token{Type: LookupIdent(ident), Literal: ident, Pos: pos}, nil
		case isDigit(l.ch) || l.ch == '.' && isDigit(l.peekChar()):
			return l.readNumber(pos)
		default:
			return Token{}, l.errorf("Unexpected character: '%s'", string(l.ch))
		}
	}

	l.readChar()

	return tok, nil
}

func (l *Lexer) newToken(tokenType TokenType) Token {
	return Token{Type: tokenType, Literal: string(l.ch), Pos: l.position}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}

	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() error {
	l.readChar() // consume '/'
	l.readChar() // consume '*'

	for {
		if l.ch == 0 {
			return l.errorf("Unterminated block comment")
		}

		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()

			return nil
		}

		l.readChar()
	}
}

// readString consumes a single-quoted string literal. A doubled quote ''
// inside the literal stands for one quote character.
func (l *Lexer) readString() (string, error) {
	var out strings.Builder

	for {
		l.readChar()

		if l.ch == 0 {
			return "", l.errorf("Unterminated string literal")
		}

		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				out.WriteByte('\'')
				l.readChar()

				continue
			}

			l.readChar()

			return out.String(), nil
		}

		out.WriteByte(l.ch)
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	return l.input[start:l.position]
}

// readNumber consumes an integer or float literal. Hex (0x..) and octal
// (leading zero) integers are accepted and normalized to their decimal
// spelling so later stages only ever parse base-10 literals. A trailing
// l or L long suffix is accepted and dropped.
func (l *Lexer) readNumber(pos int) (Token, error) {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		return l.readHexNumber(pos)
	}

	start := l.position
	isFloat := false

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true

		l.readChar()

		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		peek := l.peekChar()
		if isDigit(peek) || (peek == '+' || peek == '-') && isDigit(l.peekAt(l.readPosition+1)) {
			isFloat = true

			l.readChar()

			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}

			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	literal := l.input[start:l.position]

	if !isFloat && (l.ch == 'l' || l.ch == 'L') {
		l.readChar()
	}

	if isFloat {
		if _, err := strconv.ParseFloat(literal, 64); err != nil {
			return Token{}, l.errorf("Invalid float literal: %s", literal)
		}

		if strings.HasPrefix(literal, ".") {
			literal = "0" + literal
		}

		return Token{Type: FLOAT, Literal: literal, Pos: pos}, nil
	}

	value, err := parseIntegerLiteral(literal)
	if err != nil {
		return Token{}, l.errorf("Invalid integer literal: %s", literal)
	}

	return Token{Type: INT, Literal: strconv.FormatInt(value, 10), Pos: pos}, nil
}

func (l *Lexer) readHexNumber(pos int) (Token, error) {
	l.readChar() // consume '0'
	l.readChar() // consume 'x'

	start := l.position

	for isHexDigit(l.ch) {
		l.readChar()
	}

	digits := l.input[start:l.position]
	if digits == "" {
		return Token{}, l.errorf("Invalid hexadecimal literal: no digits after 0x")
	}

	if l.ch == 'l' || l.ch == 'L' {
		l.readChar()
	}

	value, err := strconv.ParseInt(digits, 16, 64)
	if err != nil {
		return Token{}, l.errorf("Invalid hexadecimal literal: 0x%s", digits)
	}

	return Token{Type: INT, Literal: strconv.FormatInt(value, 10), Pos: pos}, nil
}

// parseIntegerLiteral interprets a digit run, treating a leading zero as
// octal notation.
func parseIntegerLiteral(literal string) (int64, error) {
	if len(literal) > 1 && literal[0] == '0' {
		return strconv.ParseInt(literal[1:], 8, 64)
	}

	return strconv.ParseInt(literal, 10, 64)
}

func (l *Lexer) peekAt(pos int) byte {
	if pos >= len(l.input) {
		return 0
	}

	return l.input[pos]
}

func (l *Lexer) errorf(format string, args ...interface{}) *LexError {
	return &LexError{Message: fmt.Sprintf(format, args...), Pos: l.position, Input: l.input}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
