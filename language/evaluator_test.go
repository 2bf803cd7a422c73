package language

import (
	"errors"
	"strings"
	"testing"
)

func testEnv(bindings map[string]Object) *Environment {
	env := NewEnvironment()
	for name, val := range bindings {
		env.Set(name, val)
	}

	return env
}

func evalExpect(t *testing.T, input string, bindings map[string]Object, expected bool) {
	t.Helper()

	result, err := Evaluate(input, testEnv(bindings))
	if err != nil {
		t.Fatalf("input %q: unexpected error: %v", input, err)
	}

	if result != expected {
		t.Errorf("input %q: expected %v, got %v", input, expected, result)
	}
}

func evalExpectError(t *testing.T, input string, bindings map[string]Object, expected string) error {
	t.Helper()

	_, err := Evaluate(input, testEnv(bindings))
	if err == nil {
		t.Fatalf("input %q: expected error, got none", input)
	}

	if !strings.Contains(err.Error(), expected) {
		t.Fatalf("input %q: expected error containing %q, got %q", input, expected, err.Error())
	}

	return err
}

func TestEvalBooleanLogic(t *testing.T) {
	table := map[string]bool{
		"TRUE":                  true,
		"FALSE":                 false,
		"TRUE AND TRUE":         true,
		"TRUE AND FALSE":        false,
		"FALSE OR TRUE":         true,
		"FALSE OR FALSE":        false,
		"NOT TRUE":              false,
		"NOT FALSE":             true,
		"NOT (TRUE AND FALSE)":  true,
		"TRUE OR FALSE AND NOT TRUE": true,
	}

	for input, expected := range table {
		evalExpect(t, input, nil, expected)
	}
}

func TestEvalBooleanVariables(t *testing.T) {
	bindings := map[string]Object{
		"active":  &Boolean{Value: true},
		"deleted": &Boolean{Value: false},
	}

	evalExpect(t, "active", bindings, true)
	evalExpect(t, "active AND NOT deleted", bindings, true)

	err := evalExpectError(t, "count", map[string]Object{"count": &Integer{Value: 3}},
		"type error in boolean variable: expected boolean, got integer")

	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error is not *TypeError. got=%T", err)
	}
}

func TestEvalComparisons(t *testing.T) {
	bindings := map[string]Object{
		"x": &Integer{Value: 5},
		"y": &Float{Value: 2.5},
		"s": &String{Value: "banana"},
	}

	table := map[string]bool{
		"x > 4":         true,
		"x > 5":         false,
		"x >= 5":        true,
		"x < 10":        true,
		"x <= 4":        false,
		"x = 5":         true,
		"x <> 5":        false,
		"x != 4":        true,
		"x > y":         true,
		"y < 3":         true,
		"x = 5.0":       true,
		"s > 'apple'":   true,
		"s < 'cherry'":  true,
		"s = 'banana'":  true,
	}

	for input, expected := range table {
		evalExpect(t, input, bindings, expected)
	}
}

func TestEvalArithmetic(t *testing.T) {
	bindings := map[string]Object{
		"a": &Integer{Value: 10},
		"b": &Integer{Value: 4},
		"f": &Float{Value: 1.5},
	}

	table := map[string]bool{
		"a + b = 14":      true,
		"a - b = 6":       true,
		"a * b = 40":      true,
		"a % b = 2":       true,
		"a % 3 = 1":       true,
		"a + f = 11.5":    true,
		"f * 2 = 3.0":     true,
		"-a = -10":        true,
		"+b = 4":          true,
		"a + b * 2 = 18":  true,
		"(a + b) * 2 = 28": true,
		"10 % 3.0 = 1.0":  true,
	}

	for input, expected := range table {
		evalExpect(t, input, bindings, expected)
	}
}

func TestEvalDivisionPromotesToFloat(t *testing.T) {
	bindings := map[string]Object{
		"a": &Integer{Value: 10},
		"b": &Integer{Value: 4},
	}

	evalExpect(t, "a / b > 0", bindings, true)
	evalExpect(t, "a / b = 2.5", bindings, true)
	evalExpect(t, "9 / 3 = 3.0", nil, true)
}

func TestEvalDivisionByZero(t *testing.T) {
	bindings := map[string]Object{"x": &Integer{Value: 1}}

	err := evalExpectError(t, "x / 0 > 0", bindings, "division by zero")

	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("error is not *ArithmeticError. got=%T", err)
	}

	evalExpectError(t, "x % 0 = 0", bindings, "modulo by zero")
	evalExpectError(t, "x % 0.0 = 0", bindings, "modulo by zero")
}

func TestEvalBetween(t *testing.T) {
	table := []struct {
		age      int64
		expected bool
	}{
		{17, false},
		{18, true},
		{40, true},
		{65, true},
		{66, false},
	}

	for _, tt := range table {
		bindings := map[string]Object{"age": &Integer{Value: tt.age}}

		evalExpect(t, "age BETWEEN 18 AND 65", bindings, tt.expected)
		evalExpect(t, "age NOT BETWEEN 18 AND 65", bindings, !tt.expected)
	}

	evalExpect(t, "name BETWEEN 'a' AND 'm'", map[string]Object{"name": &String{Value: "carol"}}, true)
	evalExpect(t, "price BETWEEN 1 AND 2.5", map[string]Object{"price": &Float{Value: 2.49}}, true)
}

func TestEvalLike(t *testing.T) {
	table := []struct {
		input    string
		code     string
		expected bool
	}{
		{"code LIKE 'A_B'", "AXB", true},
		{"code LIKE 'A_B'", "AXXB", false},
		{"code LIKE 'A%'", "A", true},
		{"code LIKE 'A%'", "ABCDE", true},
		{"code LIKE 'A%'", "BA", false},
		{"code LIKE '%B%'", "ABC", true},
		{"code NOT LIKE 'A%'", "BX", true},
		{"code LIKE 'A#_B' ESCAPE '#'", "A_B", true},
		{"code LIKE 'A#_B' ESCAPE '#'", "AXB", false},
		{"code LIKE '100#%' ESCAPE '#'", "100%", true},
		{"code LIKE 'a.c'", "abc", false},
		{"code LIKE 'a.c'", "a.c", true},
	}

	for _, tt := range table {
		evalExpect(t, tt.input, map[string]Object{"code": &String{Value: tt.code}}, tt.expected)
	}

	evalExpectError(t, "n LIKE 'A%'", map[string]Object{"n": &Integer{Value: 1}},
		"type error in LIKE: expected string, got integer")
	evalExpectError(t, "n LIKE 'A%'", map[string]Object{"n": nullValue},
		"NULL value in LIKE operation")
}

func TestEvalIn(t *testing.T) {
	table := []struct {
		input    string
		binding  Object
		expected bool
	}{
		{"x IN (1, 2, 3)", &Integer{Value: 2}, true},
		{"x IN (1, 2, 3)", &Integer{Value: 5}, false},
		{"x NOT IN (1, 2, 3)", &Integer{Value: 5}, true},
		{"x IN (1, 2, 3)", &Float{Value: 2.0}, true},
		{"x IN (1.5, 2.5)", &Integer{Value: 2}, false},
		{"x IN (1.5, 2.5)", &Float{Value: 2.5}, true},
		{"x IN ('a', 'b')", &String{Value: "b"}, true},
		{"x IN ('a', 'b')", &String{Value: "c"}, false},
	}

	for _, tt := range table {
		evalExpect(t, tt.input, map[string]Object{"x": tt.binding}, tt.expected)
	}

	// an incompatible left operand is a type error, not a failed match
	evalExpectError(t, "x IN (1, 2, 3)", map[string]Object{"x": &String{Value: "2"}},
		"type error in IN: expected integer, got string")
	evalExpectError(t, "x IN (1, 2, 3)", map[string]Object{"x": nullValue},
		"NULL value in IN operation")
}

func TestEvalIsNull(t *testing.T) {
	evalExpect(t, "x IS NULL", map[string]Object{"x": nullValue}, true)
	evalExpect(t, "x IS NULL", map[string]Object{"x": &Integer{Value: 0}}, false)
	evalExpect(t, "x IS NOT NULL", map[string]Object{"x": &String{Value: ""}}, true)
	evalExpect(t, "x IS NOT NULL", map[string]Object{"x": nullValue}, false)
}

func TestEvalNullPolicy(t *testing.T) {
	bindings := map[string]Object{"x": nullValue}

	table := map[string]string{
		"x + 5 > 0":  "NULL value in addition operation",
		"x = 1":      "NULL value in = operation",
		"x > 1":      "NULL value in > operation",
		"-x > 0":     "NULL value in unary minus operation",
		"x BETWEEN 1 AND 2": "NULL value in BETWEEN operation",
	}

	for input, expected := range table {
		err := evalExpectError(t, input, bindings, expected)

		var nullErr *NullError
		if !errors.As(err, &nullErr) {
			t.Fatalf("input %q: error is not *NullError. got=%T", input, err)
		}
	}
}

func TestEvalTypeMismatch(t *testing.T) {
	bindings := map[string]Object{
		"n": &Integer{Value: 1},
		"s": &String{Value: "a"},
		"b": &Boolean{Value: true},
	}

	err := evalExpectError(t, "n = s", bindings, "type mismatch in =: integer vs string")

	var mismatchErr *TypeMismatchError
	if !errors.As(err, &mismatchErr) {
		t.Fatalf("error is not *TypeMismatchError. got=%T", err)
	}

	evalExpectError(t, "b > n", bindings, "type error in >: expected numeric or string, got boolean")
	evalExpectError(t, "s + n > 0", bindings, "type error in addition: expected numeric types, got string and integer")
}

func TestEvalUnboundVariable(t *testing.T) {
	err := evalExpectError(t, "x > y", map[string]Object{"x": &Integer{Value: 5}},
		"unbound variable 'y'")

	var unbound *UnboundVariableError
	if !errors.As(err, &unbound) {
		t.Fatalf("error is not *UnboundVariableError. got=%T", err)
	}

	if unbound.Name != "y" {
		t.Errorf("unbound.Name wrong. expected=%q, got=%q", "y", unbound.Name)
	}

	if len(unbound.Available) != 1 || unbound.Available[0] != "x" {
		t.Errorf("unbound.Available wrong. got=%v", unbound.Available)
	}
}

func TestEvalSubstitutionIsEager(t *testing.T) {
	// Variables are substituted across the whole tree before evaluation, so
	// an unbound variable fails even on a branch short-circuiting would skip.
	evalExpectError(t, "FALSE AND (x > 0)", nil, "unbound variable 'x'")
	evalExpectError(t, "TRUE OR (x > 0)", nil, "unbound variable 'x'")
}

func TestEvalShortCircuitSkipsRuntimeErrors(t *testing.T) {
	// Runtime errors, unlike unbound variables, stay confined to phase two
	// where short-circuiting applies.
	bindings := map[string]Object{"x": &Integer{Value: 1}}

	evalExpect(t, "FALSE AND x / 0 > 1", bindings, false)
	evalExpect(t, "TRUE OR x / 0 > 1", bindings, true)
	evalExpectError(t, "TRUE AND x / 0 > 1", bindings, "division by zero")
}

func TestEvalParseErrorsPropagate(t *testing.T) {
	_, err := Evaluate("x >", testEnv(nil))
	if err == nil {
		t.Fatalf("expected error, got none")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error is not *ParseError. got=%T", err)
	}
}

func TestSubstituteBuildsNewTree(t *testing.T) {
	expr := parseExpr(t, "x > 1 AND flag")

	env := testEnv(map[string]Object{
		"x":    &Integer{Value: 5},
		"flag": &Boolean{Value: true},
	})

	substituted, err := Substitute(expr, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if substituted.String() != "(5 > 1 AND TRUE)" {
		t.Errorf("substituted.String() wrong. got=%q", substituted.String())
	}

	// the original tree is untouched
	if expr.String() != "(x > 1 AND flag)" {
		t.Errorf("source tree mutated. got=%q", expr.String())
	}
}
