package language

import "testing"

func TestNodeString(t *testing.T) {
	table := []struct {
		node     Node
		expected string
	}{
		{&BooleanLiteral{Value: true}, "TRUE"},
		{&BooleanLiteral{Value: false}, "FALSE"},
		{&Variable{Name: "size"}, "size"},
		{
			&And{Left: &Variable{Name: "a"}, Right: &Variable{Name: "b"}},
			"(a AND b)",
		},
		{
			&Or{Left: &Variable{Name: "a"}, Right: &Not{Expr: &Variable{Name: "b"}}},
			"(a OR NOT b)",
		},
		{
			&Equality{Left: &Variable{Name: "a"}, Op: "=", Right: &Literal{Value: &Integer{Value: 1}}},
			"a = 1",
		},
		{
			&Comparison{Left: &Variable{Name: "a"}, Op: ">=", Right: &Literal{Value: &Float{Value: 1.5}}},
			"a >= 1.5",
		},
		{
			&Like{Expr: &Variable{Name: "s"}, Pattern: "A%", Escape: "#", Negated: true},
			"s NOT LIKE 'A%' ESCAPE '#'",
		},
		{
			&Between{
				Expr:  &Variable{Name: "age"},
				Lower: &Literal{Value: &Integer{Value: 18}},
				Upper: &Literal{Value: &Integer{Value: 65}},
			},
			"age BETWEEN 18 AND 65",
		},
		{
			&In{
				Expr:    &Variable{Name: "x"},
				Values:  []Object{&String{Value: "it's"}, &String{Value: "b"}},
				Negated: true,
			},
			"x NOT IN ('it''s', 'b')",
		},
		{
			&IsNull{Expr: &Variable{Name: "x"}, Negated: true},
			"x IS NOT NULL",
		},
		{
			&Arithmetic{
				Op:    OpMultiply,
				Left:  &Arithmetic{Op: OpAdd, Left: &Variable{Name: "a"}, Right: &Variable{Name: "b"}},
				Right: &Literal{Value: &Integer{Value: 2}},
			},
			"((a + b) * 2)",
		},
		{&Unary{Op: OpSubtract, Expr: &Variable{Name: "a"}}, "-a"},
		{&Unary{Op: OpSubtract, Expr: &Unary{Op: OpSubtract, Expr: &Variable{Name: "a"}}}, "-(-a)"},
		{&Literal{Value: &Null{}}, "NULL"},
		{&Literal{Value: &Boolean{Value: true}}, "TRUE"},
		{&Literal{Value: &Float{Value: 5}}, "5.0"},
	}

	for _, tt := range table {
		if tt.node.String() != tt.expected {
			t.Errorf("String() wrong. expected=%q, got=%q", tt.expected, tt.node.String())
		}
	}
}
