package language

import (
	"fmt"
	"strings"
)

// LexError reports a character-level fault: an unterminated string or block
// comment, a malformed numeric literal, or an unexpected character. Pos is
// the absolute character offset of the fault and Input echoes the full
// original input so callers can render a pointer to it.
type LexError struct {
	Message string
	Pos     int
	Input   string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s near position %d in:\n  %s", e.Message, e.Pos, e.Input)
}

// ParseError reports a grammar violation or a parse-time literal type
// violation in a BETWEEN or IN clause.
type ParseError struct {
	Message string
	Pos     int
	Input   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s near position %d in:\n  %s", e.Message, e.Pos, e.Input)
}

// UnboundVariableError reports a variable with no entry in the binding
// environment. Available lists the names that are bound, sorted.
type UnboundVariableError struct {
	Name      string
	Available []string
}

func (e *UnboundVariableError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unbound variable '%s': no variables are bound", e.Name)
	}

	return fmt.Sprintf("unbound variable '%s': bound variables are [%s]", e.Name, strings.Join(e.Available, ", "))
}

// TypeError reports an operand whose kind is invalid for an operation, for
// example LIKE applied to a number or a non-boolean variable used as a
// boolean term.
type TypeError struct {
	Operation string
	Expected  string
	Actual    string
	Context   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: expected %s, got %s (%s)", e.Operation, e.Expected, e.Actual, e.Context)
}

// TypeMismatchError reports a binary operator whose operands belong to
// different broad type classes, such as a number compared with a string.
type TypeMismatchError struct {
	Operation string
	Left      string
	Right     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch in %s: %s vs %s", e.Operation, e.Left, e.Right)
}

// NullError reports a NULL operand outside an IS [NOT] NULL check.
type NullError struct {
	Operation string
	Context   string
}

func (e *NullError) Error() string {
	return fmt.Sprintf("NULL value in %s operation (%s); NULL is only allowed in IS NULL checks", e.Operation, e.Context)
}

// ArithmeticError reports a division or modulo by zero.
type ArithmeticError struct {
	Operation  string
	Expression string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s by zero in expression: %s", e.Operation, e.Expression)
}
