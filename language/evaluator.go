package language

import (
	"math"
	"regexp"
	"strings"
)

// Evaluation runs in two phases. Substitute first replaces every variable
// in the tree with its bound value, so an unbound variable fails before any
// arithmetic or relational work begins, even on a branch that AND/OR
// short-circuiting would never reach. The second phase walks the variable-
// free tree bottom-up, applying Integer to Float coercion where an operator
// mixes the two and rejecting NULL everywhere outside IS NULL.

// Evaluate parses the input and evaluates it against the environment.
func Evaluate(input string, env *Environment) (bool, error) {
	expr, err := Parse(input)
	if err != nil {
		return false, err
	}

	return Eval(expr, env)
}

// Eval evaluates an already-parsed expression against the environment.
func Eval(expr BooleanExpr, env *Environment) (bool, error) {
	substituted, err := Substitute(expr, env)
	if err != nil {
		return false, err
	}

	return evalBoolean(substituted)
}

// Substitute returns a copy of the tree with every variable replaced by its
// binding. A variable in boolean position must be bound to a boolean; a
// variable in value position may be bound to any value, including NULL,
// which is carried unchanged into evaluation.
func Substitute(expr BooleanExpr, env *Environment) (BooleanExpr, error) {
	switch node := expr.(type) {
	case *BooleanLiteral:
		return node, nil
	case *Variable:
		val, ok := env.Get(node.Name)
		if !ok {
			return nil, &UnboundVariableError{Name: node.Name, Available: env.Names()}
		}

		boolVal, ok := val.(*Boolean)
		if !ok {
			return nil, &TypeError{
				Operation: "boolean variable",
				Expected:  "boolean",
				Actual:    string(val.Type()),
				Context:   "variable '" + node.Name + "'",
			}
		}

		return &BooleanLiteral{Value: boolVal.Value}, nil
	case *And:
		left, err := Substitute(node.Left, env)
		if err != nil {
			return nil, err
		}

		right, err := Substitute(node.Right, env)
		if err != nil {
			return nil, err
		}

		return &And{Left: left, Right: right}, nil
	case *Or:
		left, err := Substitute(node.Left, env)
		if err != nil {
			return nil, err
		}

		right, err := Substitute(node.Right, env)
		if err != nil {
			return nil, err
		}

		return &Or{Left: left, Right: right}, nil
	case *Not:
		inner, err := Substitute(node.Expr, env)
		if err != nil {
			return nil, err
		}

		return &Not{Expr: inner}, nil
	case RelationalExpr:
		return substituteRelational(node, env)
	}

	return nil, &TypeError{
		Operation: "substitution",
		Expected:  "boolean expression",
		Actual:    expr.String(),
		Context:   "unsupported node",
	}
}

func substituteRelational(expr RelationalExpr, env *Environment) (RelationalExpr, error) {
	switch node := expr.(type) {
	case *Equality:
		left, err := substituteValue(node.Left, env)
		if err != nil {
			return nil, err
		}

		right, err := substituteValue(node.Right, env)
		if err != nil {
			return nil, err
		}

		return &Equality{Left: left, Op: node.Op, Right: right}, nil
	case *Comparison:
		left, err := substituteValue(node.Left, env)
		if err != nil {
			return nil, err
		}

		right, err := substituteValue(node.Right, env)
		if err != nil {
			return nil, err
		}

		return &Comparison{Left: left, Op: node.Op, Right: right}, nil
	case *Like:
		inner, err := substituteValue(node.Expr, env)
		if err != nil {
			return nil, err
		}

		return &Like{Expr: inner, Pattern: node.Pattern, Escape: node.Escape, Negated: node.Negated}, nil
	case *Between:
		inner, err := substituteValue(node.Expr, env)
		if err != nil {
			return nil, err
		}

		// bounds are literals by construction
		return &Between{Expr: inner, Lower: node.Lower, Upper: node.Upper, Negated: node.Negated}, nil
	case *In:
		inner, err := substituteValue(node.Expr, env)
		if err != nil {
			return nil, err
		}

		return &In{Expr: inner, Values: node.Values, Negated: node.Negated}, nil
	case *IsNull:
		inner, err := substituteValue(node.Expr, env)
		if err != nil {
			return nil, err
		}

		return &IsNull{Expr: inner, Negated: node.Negated}, nil
	}

	return nil, &TypeError{
		Operation: "substitution",
		Expected:  "relational expression",
		Actual:    expr.String(),
		Context:   "unsupported node",
	}
}

func substituteValue(expr ValueExpr, env *Environment) (ValueExpr, error) {
	switch node := expr.(type) {
	case *Literal:
		return node, nil
	case *Variable:
		val, ok := env.Get(node.Name)
		if !ok {
			return nil, &UnboundVariableError{Name: node.Name, Available: env.Names()}
		}

		return &Literal{Value: val}, nil
	case *Arithmetic:
		left, err := substituteValue(node.Left, env)
		if err != nil {
			return nil, err
		}

		right, err := substituteValue(node.Right, env)
		if err != nil {
			return nil, err
		}

		return &Arithmetic{Op: node.Op, Left: left, Right: right}, nil
	case *Unary:
		inner, err := substituteValue(node.Expr, env)
		if err != nil {
			return nil, err
		}

		return &Unary{Op: node.Op, Expr: inner}, nil
	}

	return nil, &TypeError{
		Operation: "substitution",
		Expected:  "value expression",
		Actual:    expr.String(),
		Context:   "unsupported node",
	}
}

func evalBoolean(expr BooleanExpr) (bool, error) {
	switch node := expr.(type) {
	case *BooleanLiteral:
		return node.Value, nil
	case *And:
		left, err := evalBoolean(node.Left)
		if err != nil {
			return false, err
		}

		if !left {
			return false, nil
		}

		return evalBoolean(node.Right)
	case *Or:
		left, err := evalBoolean(node.Left)
		if err != nil {
			return false, err
		}

		if left {
			return true, nil
		}

		return evalBoolean(node.Right)
	case *Not:
		inner, err := evalBoolean(node.Expr)
		if err != nil {
			return false, err
		}

		return !inner, nil
	case *Variable:
		return false, &UnboundVariableError{Name: node.Name}
	case RelationalExpr:
		return evalRelational(node)
	}

	return false, &TypeError{
		Operation: "evaluation",
		Expected:  "boolean expression",
		Actual:    expr.String(),
		Context:   "unsupported node",
	}
}

func evalRelational(expr RelationalExpr) (bool, error) {
	switch node := expr.(type) {
	case *Equality:
		return evalEquality(node)
	case *Comparison:
		return evalComparison(node)
	case *Like:
		return evalLike(node)
	case *Between:
		return evalBetween(node)
	case *In:
		return evalIn(node)
	case *IsNull:
		return evalIsNull(node)
	}

	return false, &TypeError{
		Operation: "evaluation",
		Expected:  "relational expression",
		Actual:    expr.String(),
		Context:   "unsupported node",
	}
}

func evalEquality(node *Equality) (bool, error) {
	left, err := evalValue(node.Left)
	if err != nil {
		return false, err
	}

	right, err := evalValue(node.Right)
	if err != nil {
		return false, err
	}

	if isNull(left) || isNull(right) {
		return false, &NullError{Operation: node.Op, Context: "cannot compare NULL values (use IS NULL instead)"}
	}

	equal, err := objectsEqual(left, right, node.Op)
	if err != nil {
		return false, err
	}

	if node.Op == NotEQ {
		return !equal, nil
	}

	return equal, nil
}

func objectsEqual(left, right Object, op string) (bool, error) {
	switch l := left.(type) {
	case *Integer:
		switch r := right.(type) {
		case *Integer:
			return l.Value == r.Value, nil
		case *Float:
			return float64(l.Value) == r.Value, nil
		}
	case *Float:
		switch r := right.(type) {
		case *Integer:
			return l.Value == float64(r.Value), nil
		case *Float:
			return l.Value == r.Value, nil
		}
	case *String:
		if r, ok := right.(*String); ok {
			return l.Value == r.Value, nil
		}
	case *Boolean:
		if r, ok := right.(*Boolean); ok {
			return l.Value == r.Value, nil
		}
	}

	return false, &TypeMismatchError{
		Operation: op,
		Left:      string(left.Type()),
		Right:     string(right.Type()),
	}
}

func evalComparison(node *Comparison) (bool, error) {
	left, err := evalValue(node.Left)
	if err != nil {
		return false, err
	}

	right, err := evalValue(node.Right)
	if err != nil {
		return false, err
	}

	if isNull(left) || isNull(right) {
		return false, &NullError{Operation: node.Op, Context: "cannot compare NULL values"}
	}

	return compareObjects(left, right, node.Op)
}

func compareObjects(left, right Object, op string) (bool, error) {
	if ls, ok := left.(*String); ok {
		if rs, ok := right.(*String); ok {
			return applyComparison(strings.Compare(ls.Value, rs.Value), 0, op), nil
		}
	}

	if _, ok := left.(*Boolean); ok {
		return false, &TypeError{
			Operation: op,
			Expected:  "numeric or string",
			Actual:    "boolean",
			Context:   "comparison operand",
		}
	}

	if _, ok := right.(*Boolean); ok {
		return false, &TypeError{
			Operation: op,
			Expected:  "numeric or string",
			Actual:    "boolean",
			Context:   "comparison operand",
		}
	}

	if !isNumeric(left) || !isNumeric(right) {
		return false, &TypeMismatchError{
			Operation: op,
			Left:      string(left.Type()),
			Right:     string(right.Type()),
		}
	}

	lf := numericValue(left)
	rf := numericValue(right)

	return applyComparison(lf, rf, op), nil
}

func applyComparison[T int | float64](a, b T, op string) bool {
	switch op {
	case GT:
		return a > b
	case GTE:
		return a >= b
	case LT:
		return a < b
	case LTE:
		return a <= b
	}

	return false
}

func evalLike(node *Like) (bool, error) {
	val, err := evalValue(node.Expr)
	if err != nil {
		return false, err
	}

	if isNull(val) {
		return false, &NullError{Operation: "LIKE", Context: "cannot apply LIKE to NULL"}
	}

	str, ok := val.(*String)
	if !ok {
		return false, &TypeError{
			Operation: "LIKE",
			Expected:  "string",
			Actual:    string(val.Type()),
			Context:   "left operand",
		}
	}

	matched, err := matchPattern(str.Value, node.Pattern, node.Escape)
	if err != nil {
		return false, err
	}

	if node.Negated {
		return !matched, nil
	}

	return matched, nil
}

// matchPattern matches s against a SQL LIKE pattern, anchored at both ends.
// % matches any run of characters, _ matches exactly one, and the character
// following the escape character matches literally.
func matchPattern(s, pattern, escape string) (bool, error) {
	var escapeChar rune = -1
	if escape != "" {
		escapeChar = []rune(escape)[0]
	}

	var out strings.Builder

	out.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch {
		case ch == escapeChar:
			if i+1 < len(runes) {
				i++
				out.WriteString(regexp.QuoteMeta(string(runes[i])))
			}
		case ch == '%':
			out.WriteString(".*")
		case ch == '_':
			out.WriteString(".")
		default:
			out.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}

	out.WriteString("$")

	re, err := regexp.Compile(out.String())
	if err != nil {
		return false, &TypeError{
			Operation: "LIKE",
			Expected:  "valid pattern",
			Actual:    pattern,
			Context:   err.Error(),
		}
	}

	return re.MatchString(s), nil
}

func evalBetween(node *Between) (bool, error) {
	val, err := evalValue(node.Expr)
	if err != nil {
		return false, err
	}

	lower, err := evalValue(node.Lower)
	if err != nil {
		return false, err
	}

	upper, err := evalValue(node.Upper)
	if err != nil {
		return false, err
	}

	if isNull(val) || isNull(lower) || isNull(upper) {
		return false, &NullError{Operation: "BETWEEN", Context: "cannot use NULL in BETWEEN"}
	}

	var inRange bool

	if vs, ok := val.(*String); ok {
		ls, lok := lower.(*String)
		us, uok := upper.(*String)

		if !lok || !uok {
			return false, &TypeMismatchError{
				Operation: "BETWEEN",
				Left:      string(val.Type()),
				Right:     string(lower.Type()),
			}
		}

		inRange = vs.Value >= ls.Value && vs.Value <= us.Value
	} else {
		for _, obj := range []Object{val, lower, upper} {
			if !isNumeric(obj) {
				return false, &TypeError{
					Operation: "BETWEEN",
					Expected:  "numeric",
					Actual:    string(obj.Type()),
					Context:   "operand",
				}
			}
		}

		v := numericValue(val)
		inRange = v >= numericValue(lower) && v <= numericValue(upper)
	}

	if node.Negated {
		return !inRange, nil
	}

	return inRange, nil
}

func evalIn(node *In) (bool, error) {
	val, err := evalValue(node.Expr)
	if err != nil {
		return false, err
	}

	if isNull(val) {
		return false, &NullError{Operation: "IN", Context: "cannot use NULL in IN"}
	}

	// The list is homogeneous by construction, so compatibility only needs
	// checking against the first element. Integer and Float are mutually
	// compatible here even though the list itself may not mix them.
	if len(node.Values) > 0 && !inCompatible(val, node.Values[0]) {
		return false, &TypeError{
			Operation: "IN",
			Expected:  string(node.Values[0].Type()),
			Actual:    string(val.Type()),
			Context:   "left operand type doesn't match list element types",
		}
	}

	found := false

	for _, item := range node.Values {
		equal, err := objectsEqual(val, item, "IN")
		if err != nil {
			return false, err
		}

		if equal {
			found = true
			break
		}
	}

	if node.Negated {
		return !found, nil
	}

	return found, nil
}

func inCompatible(left, right Object) bool {
	if isNumeric(left) && isNumeric(right) {
		return true
	}

	return left.Type() == right.Type()
}

func evalIsNull(node *IsNull) (bool, error) {
	val, err := evalValue(node.Expr)
	if err != nil {
		return false, err
	}

	if node.Negated {
		return !isNull(val), nil
	}

	return isNull(val), nil
}

func evalValue(expr ValueExpr) (Object, error) {
	switch node := expr.(type) {
	case *Literal:
		return node.Value, nil
	case *Variable:
		return nil, &UnboundVariableError{Name: node.Name}
	case *Arithmetic:
		return evalArithmetic(node)
	case *Unary:
		return evalUnary(node)
	}

	return nil, &TypeError{
		Operation: "evaluation",
		Expected:  "value expression",
		Actual:    expr.String(),
		Context:   "unsupported node",
	}
}

var arithmeticNames = map[string]string{
	OpAdd:      "addition",
	OpSubtract: "subtraction",
	OpMultiply: "multiplication",
	OpDivide:   "division",
	OpModulo:   "modulo",
}

func evalArithmetic(node *Arithmetic) (Object, error) {
	name := arithmeticNames[node.Op]

	left, err := evalValue(node.Left)
	if err != nil {
		return nil, err
	}

	right, err := evalValue(node.Right)
	if err != nil {
		return nil, err
	}

	if isNull(left) || isNull(right) {
		return nil, &NullError{Operation: name, Context: "cannot apply " + name + " to NULL values"}
	}

	if !isNumeric(left) || !isNumeric(right) {
		return nil, &TypeError{
			Operation: name,
			Expected:  "numeric types",
			Actual:    string(left.Type()) + " and " + string(right.Type()),
			Context:   "arithmetic operation",
		}
	}

	if node.Op == OpDivide {
		return evalDivision(left, right, node)
	}

	if node.Op == OpModulo {
		return evalModulo(left, right, node)
	}

	li, leftIsInt := left.(*Integer)
	ri, rightIsInt := right.(*Integer)

	if leftIsInt && rightIsInt {
		switch node.Op {
		case OpAdd:
			return &Integer{Value: li.Value + ri.Value}, nil
		case OpSubtract:
			return &Integer{Value: li.Value - ri.Value}, nil
		case OpMultiply:
			return &Integer{Value: li.Value * ri.Value}, nil
		}
	}

	lf := numericValue(left)
	rf := numericValue(right)

	switch node.Op {
	case OpAdd:
		return &Float{Value: lf + rf}, nil
	case OpSubtract:
		return &Float{Value: lf - rf}, nil
	case OpMultiply:
		return &Float{Value: lf * rf}, nil
	}

	return nil, &TypeError{
		Operation: node.Op,
		Expected:  "arithmetic operator",
		Actual:    node.Op,
		Context:   "arithmetic operation",
	}
}

// evalDivision always promotes both operands to Float, so 10 / 4 is 2.5.
func evalDivision(left, right Object, node *Arithmetic) (Object, error) {
	rf := numericValue(right)
	if rf == 0 {
		return nil, &ArithmeticError{Operation: "division", Expression: node.String()}
	}

	return &Float{Value: numericValue(left) / rf}, nil
}

// evalModulo keeps Integer%Integer integral and promotes mixed operands.
func evalModulo(left, right Object, node *Arithmetic) (Object, error) {
	li, leftIsInt := left.(*Integer)
	ri, rightIsInt := right.(*Integer)

	if leftIsInt && rightIsInt {
		if ri.Value == 0 {
			return nil, &ArithmeticError{Operation: "modulo", Expression: node.String()}
		}

		return &Integer{Value: li.Value % ri.Value}, nil
	}

	rf := numericValue(right)
	if rf == 0 {
		return nil, &ArithmeticError{Operation: "modulo", Expression: node.String()}
	}

	return &Float{Value: math.Mod(numericValue(left), rf)}, nil
}

func evalUnary(node *Unary) (Object, error) {
	name := "unary plus"
	if node.Op == OpSubtract {
		name = "unary minus"
	}

	val, err := evalValue(node.Expr)
	if err != nil {
		return nil, err
	}

	if isNull(val) {
		return nil, &NullError{Operation: name, Context: "cannot apply " + name + " to NULL"}
	}

	switch num := val.(type) {
	case *Integer:
		if node.Op == OpSubtract {
			return &Integer{Value: -num.Value}, nil
		}

		return num, nil
	case *Float:
		if node.Op == OpSubtract {
			return &Float{Value: -num.Value}, nil
		}

		return num, nil
	}

	return nil, &TypeError{
		Operation: name,
		Expected:  "numeric",
		Actual:    string(val.Type()),
		Context:   "operand",
	}
}
