package filterql

import (
	"fmt"
	"io"
	"strings"

	"github.com/filterql/filterql/language"
)

const printIndent = 3

// Fprint writes an indented diagnostic dump of the AST to w, one node per
// line, children indented three spaces under their parent.
func Fprint(w io.Writer, expr language.BooleanExpr) {
	printBoolean(w, expr, 0)
}

func printBoolean(w io.Writer, expr language.BooleanExpr, indent int) {
	prefix := strings.Repeat(" ", indent)

	switch node := expr.(type) {
	case *language.Or:
		fmt.Fprintf(w, "%sOr\n", prefix)
		printBoolean(w, node.Left, indent+printIndent)
		printBoolean(w, node.Right, indent+printIndent)
	case *language.And:
		fmt.Fprintf(w, "%sAnd\n", prefix)
		printBoolean(w, node.Left, indent+printIndent)
		printBoolean(w, node.Right, indent+printIndent)
	case *language.Not:
		fmt.Fprintf(w, "%sNot\n", prefix)
		printBoolean(w, node.Expr, indent+printIndent)
	case *language.BooleanLiteral:
		fmt.Fprintf(w, "%sBooleanLiteral: %v\n", prefix, node.Value)
	case *language.Variable:
		fmt.Fprintf(w, "%sVariable: %s\n", prefix, node.Name)
	case language.RelationalExpr:
		fmt.Fprintf(w, "%sRelational\n", prefix)
		printRelational(w, node, indent+printIndent)
	}
}

func printRelational(w io.Writer, expr language.RelationalExpr, indent int) {
	prefix := strings.Repeat(" ", indent)

	switch node := expr.(type) {
	case *language.Equality:
		fmt.Fprintf(w, "%sEquality: %s\n", prefix, node.Op)
		printValue(w, node.Left, indent+printIndent)
		printValue(w, node.Right, indent+printIndent)
	case *language.Comparison:
		fmt.Fprintf(w, "%sComparison: %s\n", prefix, node.Op)
		printValue(w, node.Left, indent+printIndent)
		printValue(w, node.Right, indent+printIndent)
	case *language.Like:
		fmt.Fprintf(w, "%sLike: negated=%v, pattern='%s', escape='%s'\n",
			prefix, node.Negated, node.Pattern, node.Escape)
		printValue(w, node.Expr, indent+printIndent)
	case *language.Between:
		fmt.Fprintf(w, "%sBetween: negated=%v\n", prefix, node.Negated)
		printValue(w, node.Expr, indent+printIndent)
		printValue(w, node.Lower, indent+printIndent)
		printValue(w, node.Upper, indent+printIndent)
	case *language.In:
		values := make([]string, 0, len(node.Values))
		for _, val := range node.Values {
			values = append(values, val.Inspect())
		}

		fmt.Fprintf(w, "%sIn: negated=%v, values=[%s]\n", prefix, node.Negated, strings.Join(values, ", "))
		printValue(w, node.Expr, indent+printIndent)
	case *language.IsNull:
		fmt.Fprintf(w, "%sIsNull: negated=%v\n", prefix, node.Negated)
		printValue(w, node.Expr, indent+printIndent)
	}
}

var arithmeticNodeNames = map[string]string{
	language.OpAdd:      "Add",
	language.OpSubtract: "Subtract",
	language.OpMultiply: "Multiply",
	language.OpDivide:   "Divide",
	language.OpModulo:   "Modulo",
}

func printValue(w io.Writer, expr language.ValueExpr, indent int) {
	prefix := strings.Repeat(" ", indent)

	switch node := expr.(type) {
	case *language.Arithmetic:
		fmt.Fprintf(w, "%s%s\n", prefix, arithmeticNodeNames[node.Op])
		printValue(w, node.Left, indent+printIndent)
		printValue(w, node.Right, indent+printIndent)
	case *language.Unary:
		name := "UnaryPlus"
		if node.Op == language.OpSubtract {
			name = "UnaryMinus"
		}

		fmt.Fprintf(w, "%s%s\n", prefix, name)
		printValue(w, node.Expr, indent+printIndent)
	case *language.Literal:
		fmt.Fprintf(w, "%sLiteral: %s\n", prefix, node.String())
	case *language.Variable:
		fmt.Fprintf(w, "%sVariable: %s\n", prefix, node.Name)
	}
}
