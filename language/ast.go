package language

import "strings"

// The AST is split into three disjoint layers. BooleanExpr is the only type
// a parse can produce; RelationalExpr bridges the boolean and value layers;
// ValueExpr nodes are valid only as operands of relational or arithmetic
// productions. Nodes are built once by the parser and never mutated.

// Node the AST node type
type Node interface {
	String() string
}

// BooleanExpr is an expression that evaluates to a boolean. The result of a
// parse is always a BooleanExpr.
type BooleanExpr interface {
	Node
	booleanExpr()
}

// RelationalExpr produces a boolean from one or more value expressions.
// Every relational expression is also a boolean expression.
type RelationalExpr interface {
	BooleanExpr
	relationalExpr()
}

// ValueExpr is a numeric- or string-producing expression. It is never valid
// as a standalone top-level expression.
type ValueExpr interface {
	Node
	valueExpr()
}

// BooleanLiteral is the TRUE or FALSE keyword in boolean position.
type BooleanLiteral struct {
	Value bool
}

func (bl *BooleanLiteral) booleanExpr() {}

func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "TRUE"
	}

	return "FALSE"
}

// Variable is a named placeholder resolved against the binding environment.
// It may appear in boolean position or in value position.
type Variable struct {
	Name string
}

func (v *Variable) booleanExpr() {}

func (v *Variable) valueExpr() {}

func (v *Variable) String() string { return v.Name }

// And is the logical conjunction of two boolean expressions.
type And struct {
	Left  BooleanExpr
	Right BooleanExpr
}

func (a *And) booleanExpr() {}

func (a *And) String() string {
	return "(" + a.Left.String() + " AND " + a.Right.String() + ")"
}

// Or is the logical disjunction of two boolean expressions.
type Or struct {
	Left  BooleanExpr
	Right BooleanExpr
}

func (o *Or) booleanExpr() {}

func (o *Or) String() string {
	return "(" + o.Left.String() + " OR " + o.Right.String() + ")"
}

// Not negates a boolean expression.
type Not struct {
	Expr BooleanExpr
}

func (n *Not) booleanExpr() {}

func (n *Not) String() string { return "NOT " + n.Expr.String() }

// Equality compares two value expressions with = or <>. The != spelling is
// normalized to <> by the lexer.
type Equality struct {
	Left  ValueExpr
	Op    string // EQ or NotEQ
	Right ValueExpr
}

func (e *Equality) booleanExpr() {}

func (e *Equality) relationalExpr() {}

func (e *Equality) String() string {
	return e.Left.String() + " " + e.Op + " " + e.Right.String()
}

// Comparison orders two value expressions with >, >=, < or <=.
type Comparison struct {
	Left  ValueExpr
	Op    string // GT, GTE, LT or LTE
	Right ValueExpr
}

func (c *Comparison) booleanExpr() {}

func (c *Comparison) relationalExpr() {}

func (c *Comparison) String() string {
	return c.Left.String() + " " + c.Op + " " + c.Right.String()
}

// Like matches a string expression against an anchored pattern where %
// matches any run of characters and _ matches exactly one. Escape is the
// optional ESCAPE character; empty means no escape clause.
type Like struct {
	Expr    ValueExpr
	Pattern string
	Escape  string
	Negated bool
}

func (l *Like) booleanExpr() {}

func (l *Like) relationalExpr() {}

func (l *Like) String() string {
	var out strings.Builder

	out.WriteString(l.Expr.String())

	if l.Negated {
		out.WriteString(" NOT LIKE ")
	} else {
		out.WriteString(" LIKE ")
	}

	out.WriteString(quoteString(l.Pattern))

	if l.Escape != "" {
		out.WriteString(" ESCAPE ")
		out.WriteString(quoteString(l.Escape))
	}

	return out.String()
}

// Between checks a value expression against an inclusive range. Lower and
// Upper hold literals (possibly under a unary sign); the parser guarantees
// they are a same-family pair.
type Between struct {
	Expr    ValueExpr
	Lower   ValueExpr
	Upper   ValueExpr
	Negated bool
}

func (b *Between) booleanExpr() {}

func (b *Between) relationalExpr() {}

func (b *Between) String() string {
	op := " BETWEEN "
	if b.Negated {
		op = " NOT BETWEEN "
	}

	return b.Expr.String() + op + b.Lower.String() + " AND " + b.Upper.String()
}

// In checks a value expression for membership in a literal list. The parser
// guarantees the list holds literals of one exact variant.
type In struct {
	Expr    ValueExpr
	Values  []Object
	Negated bool
}

func (i *In) booleanExpr() {}

func (i *In) relationalExpr() {}

func (i *In) String() string {
	var out strings.Builder

	out.WriteString(i.Expr.String())

	if i.Negated {
		out.WriteString(" NOT IN (")
	} else {
		out.WriteString(" IN (")
	}

	for n, val := range i.Values {
		if n > 0 {
			out.WriteString(", ")
		}

		out.WriteString(literalString(val))
	}

	out.WriteString(")")

	return out.String()
}

// IsNull checks whether a value expression evaluates to NULL.
type IsNull struct {
	Expr    ValueExpr
	Negated bool
}

func (in *IsNull) booleanExpr() {}

func (in *IsNull) relationalExpr() {}

func (in *IsNull) String() string {
	if in.Negated {
		return in.Expr.String() + " IS NOT NULL"
	}

	return in.Expr.String() + " IS NULL"
}

// Literal is a fixed value written directly in the source text.
type Literal struct {
	Value Object
}

func (l *Literal) valueExpr() {}

func (l *Literal) String() string { return literalString(l.Value) }

// Arithmetic operator spellings.
const (
	OpAdd      = "+"
	OpSubtract = "-"
	OpMultiply = "*"
	OpDivide   = "/"
	OpModulo   = "%"
)

// Arithmetic combines two value expressions with +, -, *, / or %.
type Arithmetic struct {
	Op    string
	Left  ValueExpr
	Right ValueExpr
}

func (a *Arithmetic) valueExpr() {}

func (a *Arithmetic) String() string {
	return "(" + a.Left.String() + " " + a.Op + " " + a.Right.String() + ")"
}

// Unary applies a sign to a value expression.
type Unary struct {
	Op   string // OpAdd or OpSubtract
	Expr ValueExpr
}

func (u *Unary) valueExpr() {}

func (u *Unary) String() string {
	// a nested sign is parenthesized so "--" never re-lexes as a comment
	if _, ok := u.Expr.(*Unary); ok {
		return u.Op + "(" + u.Expr.String() + ")"
	}

	return u.Op + u.Expr.String()
}

// literalString renders a literal object in source form: strings quoted
// with '' escaping, booleans as keywords, NULL as the keyword.
func literalString(obj Object) string {
	switch val := obj.(type) {
	case *String:
		return quoteString(val.Value)
	case *Boolean:
		if val.Value {
			return "TRUE"
		}

		return "FALSE"
	case *Null:
		return "NULL"
	}

	return obj.Inspect()
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
