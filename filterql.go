// Package filterql parses and evaluates SQL-like boolean filter expressions
// against caller-supplied variable bindings.
//
// An expression such as
//
//	age BETWEEN 18 AND 65 AND name LIKE 'A%'
//
// is parsed into a typed AST and evaluated to a boolean. Parsing and
// evaluation are pure functions over their inputs and are safe to call
// concurrently.
package filterql

import (
	"fmt"
	"io"
	"os"

	"github.com/filterql/filterql/language"
)

// Value is a runtime value: a literal inside an expression, a variable
// binding, or an intermediate evaluation result.
type Value = language.Object

// Int builds an integer value.
func Int(v int64) Value { return &language.Integer{Value: v} }

// Float builds a float value.
func Float(v float64) Value { return &language.Float{Value: v} }

// Str builds a string value.
func Str(v string) Value { return &language.String{Value: v} }

// Bool builds a boolean value.
func Bool(v bool) Value { return &language.Boolean{Value: v} }

// Null builds the NULL value.
func Null() Value { return &language.Null{} }

// Parse parses the input as a boolean filter expression.
func Parse(input string) (language.BooleanExpr, error) {
	return language.Parse(input)
}

// Evaluate parses the input and evaluates it against the bindings.
func Evaluate(input string, bindings map[string]Value) (bool, error) {
	return NewEvaluator().Evaluate(input, bindings)
}

// Evaluator evaluates filter expressions with explicit configuration. The
// zero value is ready to use.
type Evaluator struct {
	// Debug renders the AST of every successfully parsed expression to
	// DebugWriter before evaluating it.
	Debug bool

	// DebugWriter receives the AST dump; defaults to os.Stderr.
	DebugWriter io.Writer
}

// NewEvaluator returns an evaluator with default configuration.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate parses the input and evaluates it against the bindings.
func (e *Evaluator) Evaluate(input string, bindings map[string]Value) (bool, error) {
	expr, err := language.Parse(input)
	if err != nil {
		return false, err
	}

	if e.Debug {
		e.dump(input, expr)
	}

	env := language.NewEnvironment()
	for name, val := range bindings {
		env.Set(name, val)
	}

	return language.Eval(expr, env)
}

func (e *Evaluator) dump(input string, expr language.BooleanExpr) {
	w := e.DebugWriter
	if w == nil {
		w = os.Stderr
	}

	fmt.Fprintf(w, "Input: %s\nAST:\n", input)
	Fprint(w, expr)
	fmt.Fprintln(w)
}
