package language

import "strings"

// TokenType represents the type of the token
type TokenType string

// Token represents a token of the filter expression language. Pos is the
// byte offset of the token's first character in the original input.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

const (
	// ILLEGAL illegal token
	ILLEGAL TokenType = "ILLEGAL"
	// EOF end of the input
	EOF TokenType = "EOF"

	// IDENT identifier used as a variable name
	IDENT TokenType = "IDENT"
	// INT integer literal, normalized to decimal by the lexer
	INT TokenType = "INT"
	// FLOAT floating point literal
	FLOAT TokenType = "FLOAT"
	// STRING single-quoted string literal, unescaped by the lexer
	STRING TokenType = "STRING"

	// LT comparison operator less than
	LT = "<"
	// LTE comparison operator less than or equal
	LTE = "<="
	// GT comparison operator greater than
	GT = ">"
	// GTE comparison operator greater than or equal
	GTE = ">="
	// EQ equality operator
	EQ = "="
	// NotEQ inequality operator, written <> or !=
	NotEQ = "<>"

	// PLUS arithmetic operator
	PLUS = "+"
	// MINUS arithmetic operator
	MINUS = "-"
	// ASTERISK arithmetic operator
	ASTERISK = "*"
	// SLASH arithmetic operator
	SLASH = "/"
	// PERCENT arithmetic operator
	PERCENT = "%"

	// COMMA delimiter used in IN lists
	COMMA TokenType = ","
	// LPAREN left parentheses delimiter
	LPAREN TokenType = "("
	// RPAREN right parentheses delimiter
	RPAREN TokenType = ")"

	// AND logical keyword, also the range separator of BETWEEN
	AND = "AND"
	// OR logical keyword
	OR = "OR"
	// NOT logical keyword, contextual in NOT LIKE/BETWEEN/IN
	NOT = "NOT"
	// BETWEEN compares an operand against an inclusive range
	BETWEEN = "BETWEEN"
	// LIKE pattern matching keyword
	LIKE = "LIKE"
	// ESCAPE introduces the LIKE escape character
	ESCAPE = "ESCAPE"
	// IN compares an operand against a list of literals
	IN = "IN"
	// IS introduces IS [NOT] NULL
	IS = "IS"
	// NULL the NULL literal
	NULL = "NULL"
	// TRUE the boolean literal true
	TRUE = "TRUE"
	// FALSE the boolean literal false
	FALSE = "FALSE"
)

var keywords = map[string]TokenType{
	"AND":     AND,
	"OR":      OR,
	"NOT":     NOT,
	"BETWEEN": BETWEEN,
	"LIKE":    LIKE,
	"ESCAPE":  ESCAPE,
	"IN":      IN,
	"IS":      IS,
	"NULL":    NULL,
	"TRUE":    TRUE,
	"FALSE":   FALSE,
}

// LookupIdent checks if the ident is a keyword. Keywords are case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}

	return IDENT
}

// describeToken renders a token for error messages.
func describeToken(tok Token) string {
	switch tok.Type {
	case IDENT:
		return "identifier '" + tok.Literal + "'"
	case STRING:
		return "string '" + tok.Literal + "'"
	case INT:
		return "integer " + tok.Literal
	case FLOAT:
		return "float " + tok.Literal
	case EOF:
		return "end of input"
	}

	return string(tok.Type)
}
