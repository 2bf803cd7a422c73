package language

import (
	"fmt"
	"strconv"
)

// maxNestingDepth bounds parser recursion so adversarial inputs fail with a
// ParseError instead of exhausting the call stack.
const maxNestingDepth = 200

// Parser consumes a token stream and produces a BooleanExpr. The grammar has
// two disjoint families of productions, boolean-valued and value-valued; a
// value expression is only reachable as the operand of a relational or
// arithmetic production, so a bare literal or arithmetic expression at the
// top level is rejected at parse time.
type Parser struct {
	input    string
	tokens   []Token
	position int
	depth    int
}

// NewParser lexes the input and prepares a parser over the token stream.
func NewParser(input string) (*Parser, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	return &Parser{input: input, tokens: tokens}, nil
}

// Parse parses the input as a complete boolean expression.
func Parse(input string) (BooleanExpr, error) {
	p, err := NewParser(input)
	if err != nil {
		return nil, err
	}

	return p.Parse()
}

// Parse consumes the whole token stream and returns the root expression.
func (p *Parser) Parse() (BooleanExpr, error) {
	expr, err := p.parseBooleanExpression()
	if err != nil {
		return nil, err
	}

	if p.currentToken().Type != EOF {
		return nil, p.errorf("Unexpected token %s", describeToken(p.currentToken()))
	}

	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.position < len(p.tokens) {
		return p.tokens[p.position]
	}

	return Token{Type: EOF, Pos: len(p.input)}
}

func (p *Parser) peekToken() Token {
	if p.position+1 < len(p.tokens) {
		return p.tokens[p.position+1]
	}

	return Token{Type: EOF, Pos: len(p.input)}
}

func (p *Parser) advance() {
	if p.position < len(p.tokens) {
		p.position++
	}
}

func (p *Parser) expect(tokenType TokenType) error {
	if p.currentToken().Type != tokenType {
		return p.errorf("Expected %s, got %s", string(tokenType), describeToken(p.currentToken()))
	}

	p.advance()

	return nil
}

func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.currentToken().Pos,
		Input:   p.input,
	}
}

func (p *Parser) enterNesting() error {
	p.depth++

	if p.depth > maxNestingDepth {
		return p.errorf("Expression nesting exceeds maximum depth of %d", maxNestingDepth)
	}

	return nil
}

func (p *Parser) leaveNesting() {
	p.depth--
}

// BooleanExpression = BooleanOr
func (p *Parser) parseBooleanExpression() (BooleanExpr, error) {
	return p.parseBooleanOr()
}

// BooleanOr = BooleanAnd { "OR" BooleanAnd }
func (p *Parser) parseBooleanOr() (BooleanExpr, error) {
	left, err := p.parseBooleanAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == OR {
		p.advance()

		right, err := p.parseBooleanAnd()
		if err != nil {
			return nil, err
		}

		left = &Or{Left: left, Right: right}
	}

	return left, nil
}

// BooleanAnd = BooleanTerm { "AND" BooleanTerm }
func (p *Parser) parseBooleanAnd() (BooleanExpr, error) {
	left, err := p.parseBooleanTerm()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == AND {
		p.advance()

		right, err := p.parseBooleanTerm()
		if err != nil {
			return nil, err
		}

		left = &And{Left: left, Right: right}
	}

	return left, nil
}

// BooleanTerm = "NOT" BooleanTerm | "(" BooleanExpression ")"
//             | BooleanLiteral | Variable | RelationalExpression
func (p *Parser) parseBooleanTerm() (BooleanExpr, error) {
	if err := p.enterNesting(); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	switch p.currentToken().Type {
	case NOT:
		p.advance()

		expr, err := p.parseBooleanTerm()
		if err != nil {
			return nil, err
		}

		return &Not{Expr: expr}, nil
	case LPAREN:
		return p.parseGroupedBoolean()
	case TRUE:
		p.advance()
		return &BooleanLiteral{Value: true}, nil
	case FALSE:
		p.advance()
		return &BooleanLiteral{Value: false}, nil
	case IDENT:
		// A bare identifier is a boolean variable unless an operator follows,
		// in which case it starts the left operand of a relational expression.
		if p.isRelationalOperator(p.peekToken().Type) || p.isArithmeticOperator(p.peekToken().Type) {
			return p.parseRelationalExpression()
		}

		name := p.currentToken().Literal
		p.advance()

		return &Variable{Name: name}, nil
	default:
		return p.parseRelationalExpression()
	}
}

// parseGroupedBoolean disambiguates "( ... )". The content is first parsed
// as a boolean expression; if that fails, or the closing parenthesis is
// immediately followed by a relational or arithmetic operator, the attempt
// is discarded and the cursor restored so the whole group reparses as the
// left operand of a relational expression. "(x > 5)" is a boolean group
// while "(x + y) > 5" is a value group feeding an outer comparison.
func (p *Parser) parseGroupedBoolean() (BooleanExpr, error) {
	saved := p.position

	p.advance() // consume '('

	expr, err := p.parseBooleanExpression()
	if err == nil && p.currentToken().Type == RPAREN {
		next := p.peekToken().Type
		if !p.isRelationalOperator(next) && !p.isArithmeticOperator(next) {
			p.advance() // consume ')'
			return expr, nil
		}
	}

	p.position = saved

	return p.parseRelationalExpression()
}

func (p *Parser) isRelationalOperator(tokenType TokenType) bool {
	switch tokenType {
	case EQ, NotEQ, GT, GTE, LT, LTE, LIKE, BETWEEN, IN, IS, NOT:
		return true
	}

	return false
}

func (p *Parser) isArithmeticOperator(tokenType TokenType) bool {
	switch tokenType {
	case PLUS, MINUS, ASTERISK, SLASH, PERCENT:
		return true
	}

	return false
}

// RelationalExpression =
//   ValueExpression (ComparisonOp | EqualityOp) ValueExpression
// | ValueExpression ["NOT"] "LIKE" StringLiteral ["ESCAPE" StringLiteral]
// | ValueExpression ["NOT"] "BETWEEN" ValueExpression "AND" ValueExpression
// | ValueExpression ["NOT"] "IN" "(" LiteralList ")"
// | ValueExpression "IS" ["NOT"] "NULL"
func (p *Parser) parseRelationalExpression() (RelationalExpr, error) {
	left, err := p.parseValueExpression()
	if err != nil {
		return nil, err
	}

	switch p.currentToken().Type {
	case EQ, NotEQ:
		op := p.currentToken().Literal
		p.advance()

		right, err := p.parseValueExpression()
		if err != nil {
			return nil, err
		}

		return &Equality{Left: left, Op: op, Right: right}, nil
	case GT, GTE, LT, LTE:
		op := p.currentToken().Literal
		p.advance()

		right, err := p.parseValueExpression()
		if err != nil {
			return nil, err
		}

		return &Comparison{Left: left, Op: op, Right: right}, nil
	case LIKE:
		p.advance()
		return p.parseLike(left, false)
	case BETWEEN:
		p.advance()
		return p.parseBetween(left, false)
	case IN:
		p.advance()
		return p.parseIn(left, false)
	case IS:
		p.advance()

		negated := false
		if p.currentToken().Type == NOT {
			p.advance()

			negated = true
		}

		if err := p.expect(NULL); err != nil {
			return nil, err
		}

		return &IsNull{Expr: left, Negated: negated}, nil
	case NOT:
		p.advance()

		switch p.currentToken().Type {
		case LIKE:
			p.advance()
			return p.parseLike(left, true)
		case BETWEEN:
			p.advance()
			return p.parseBetween(left, true)
		case IN:
			p.advance()
			return p.parseIn(left, true)
		}

		return nil, p.errorf("Expected LIKE, BETWEEN, or IN after NOT, got %s", describeToken(p.currentToken()))
	}

	return nil, p.errorf("Expected relational operator, got %s", describeToken(p.currentToken()))
}

func (p *Parser) parseLike(left ValueExpr, negated bool) (RelationalExpr, error) {
	pattern, err := p.expectStringLiteral()
	if err != nil {
		return nil, err
	}

	escape := ""

	if p.currentToken().Type == ESCAPE {
		p.advance()

		escape, err = p.expectStringLiteral()
		if err != nil {
			return nil, err
		}
	}

	return &Like{Expr: left, Pattern: pattern, Escape: escape, Negated: negated}, nil
}

// parseBetween parses the bounds of a BETWEEN range and validates them at
// parse time: both bounds must be literals (a unary sign over a numeric
// literal is folded), NULL and booleans are rejected, the bounds must be in
// the same type family, and the lower bound must not exceed the upper one.
func (p *Parser) parseBetween(left ValueExpr, negated bool) (RelationalExpr, error) {
	op := "BETWEEN"
	if negated {
		op = "NOT BETWEEN"
	}

	lowerExpr, err := p.parseValueExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(AND); err != nil {
		return nil, err
	}

	upperExpr, err := p.parseValueExpression()
	if err != nil {
		return nil, err
	}

	lower, err := p.extractLiteral(lowerExpr)
	if err != nil {
		return nil, err
	}

	upper, err := p.extractLiteral(upperExpr)
	if err != nil {
		return nil, err
	}

	if err := p.validateBetweenBound(lower, "lower", op); err != nil {
		return nil, err
	}

	if err := p.validateBetweenBound(upper, "upper", op); err != nil {
		return nil, err
	}

	if !betweenCompatible(lower, upper) {
		return nil, p.errorf("%s bounds must be both numeric or both string, found %s and %s",
			op, string(lower.Type()), string(upper.Type()))
	}

	if err := p.validateBetweenOrder(lower, upper); err != nil {
		return nil, err
	}

	return &Between{Expr: left, Lower: lowerExpr, Upper: upperExpr, Negated: negated}, nil
}

func (p *Parser) validateBetweenBound(bound Object, which, op string) error {
	switch bound.(type) {
	case *Null:
		return p.errorf("NULL is not allowed as %s bound in %s", which, op)
	case *Boolean:
		return p.errorf("Boolean literals are not allowed as %s bound in %s", which, op)
	}

	return nil
}

// validateBetweenOrder rejects an empty range. Both bounds are numeric or
// both are string by the time this runs.
func (p *Parser) validateBetweenOrder(lower, upper Object) error {
	if ls, ok := lower.(*String); ok {
		us := upper.(*String)
		if ls.Value > us.Value {
			return p.errorf("BETWEEN lower bound ('%s') must be less than or equal to upper bound ('%s')",
				ls.Value, us.Value)
		}

		return nil
	}

	li, lowerIsInt := lower.(*Integer)
	ui, upperIsInt := upper.(*Integer)

	if lowerIsInt && upperIsInt {
		if li.Value > ui.Value {
			return p.errorf("BETWEEN lower bound (%d) must be less than or equal to upper bound (%d)",
				li.Value, ui.Value)
		}

		return nil
	}

	if numericValue(lower) > numericValue(upper) {
		return p.errorf("BETWEEN lower bound (%s) must be less than or equal to upper bound (%s)",
			lower.Inspect(), upper.Inspect())
	}

	return nil
}

func numericValue(obj Object) float64 {
	switch val := obj.(type) {
	case *Integer:
		return float64(val.Value)
	case *Float:
		return val.Value
	}

	return 0
}

// extractLiteral unwraps a value expression that must be a plain literal,
// folding a unary sign over a numeric literal. Variables and arithmetic
// sub-expressions are rejected.
func (p *Parser) extractLiteral(expr ValueExpr) (Object, error) {
	switch val := expr.(type) {
	case *Literal:
		return val.Value, nil
	case *Unary:
		lit, ok := val.Expr.(*Literal)
		if !ok {
			return nil, p.errorf("Complex expressions are not allowed here, only literal values")
		}

		if val.Op == OpAdd {
			if !isNumeric(lit.Value) {
				return nil, p.errorf("Unary plus can only be applied to numeric literals in BETWEEN bounds")
			}

			return lit.Value, nil
		}

		switch num := lit.Value.(type) {
		case *Integer:
			return &Integer{Value: -num.Value}, nil
		case *Float:
			return &Float{Value: -num.Value}, nil
		}

		return nil, p.errorf("Unary minus can only be applied to numeric literals in BETWEEN bounds")
	case *Variable:
		return nil, p.errorf("Variables are not allowed here, only literal values")
	}

	return nil, p.errorf("Complex expressions are not allowed here, only literal values")
}

// parseIn parses the literal list of an IN membership test. Every entry must
// be a literal of exactly the same variant as the first one; integer and
// float entries may not mix, and NULL and boolean entries are rejected.
func (p *Parser) parseIn(left ValueExpr, negated bool) (RelationalExpr, error) {
	if err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	first, err := p.expectValueLiteral()
	if err != nil {
		return nil, err
	}

	if err := p.validateInLiteral(first); err != nil {
		return nil, err
	}

	values := []Object{first}

	for p.currentToken().Type == COMMA {
		p.advance()

		next, err := p.expectValueLiteral()
		if err != nil {
			return nil, err
		}

		if err := p.validateInLiteral(next); err != nil {
			return nil, err
		}

		if !sameLiteralVariant(first, next) {
			return nil, p.errorf("IN list values must all be the same type, found %s and %s",
				string(first.Type()), string(next.Type()))
		}

		values = append(values, next)
	}

	if err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	return &In{Expr: left, Values: values, Negated: negated}, nil
}

func (p *Parser) validateInLiteral(lit Object) error {
	switch lit.(type) {
	case *Null:
		return p.errorf("NULL is not allowed in IN list")
	case *Boolean:
		return p.errorf("Boolean literals are not allowed in IN list")
	}

	return nil
}

// expectValueLiteral consumes one literal token, folding a leading unary
// minus into a numeric literal.
func (p *Parser) expectValueLiteral() (Object, error) {
	negative := false

	if p.currentToken().Type == MINUS {
		p.advance()

		negative = true
	}

	tok := p.currentToken()

	switch tok.Type {
	case STRING:
		if negative {
			return nil, p.errorf("Cannot apply unary minus to string literal")
		}

		p.advance()

		return &String{Value: tok.Literal}, nil
	case INT:
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("Invalid integer literal: %s", tok.Literal)
		}

		p.advance()

		if negative {
			value = -value
		}

		return &Integer{Value: value}, nil
	case FLOAT:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("Invalid float literal: %s", tok.Literal)
		}

		p.advance()

		if negative {
			value = -value
		}

		return &Float{Value: value}, nil
	case NULL:
		if negative {
			return nil, p.errorf("Cannot apply unary minus to NULL")
		}

		p.advance()

		return nullValue, nil
	case TRUE, FALSE:
		if negative {
			return nil, p.errorf("Cannot apply unary minus to boolean")
		}

		p.advance()

		return nativeBoolToBooleanObject(tok.Type == TRUE), nil
	}

	return nil, p.errorf("Expected literal value, got %s", describeToken(tok))
}

func (p *Parser) expectStringLiteral() (string, error) {
	tok := p.currentToken()
	if tok.Type != STRING {
		return "", p.errorf("Expected string literal, got %s", describeToken(tok))
	}

	p.advance()

	return tok.Literal, nil
}

// ValueExpression = Additive
func (p *Parser) parseValueExpression() (ValueExpr, error) {
	return p.parseAdditive()
}

// Additive = Multiplicative { ("+"|"-") Multiplicative }
func (p *Parser) parseAdditive() (ValueExpr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == PLUS || p.currentToken().Type == MINUS {
		op := p.currentToken().Literal
		p.advance()

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &Arithmetic{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// Multiplicative = Unary { ("*"|"/"|"%") Unary }
func (p *Parser) parseMultiplicative() (ValueExpr, error) {
	left, err := p.parseUnaryValue()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == ASTERISK || p.currentToken().Type == SLASH || p.currentToken().Type == PERCENT {
		op := p.currentToken().Literal
		p.advance()

		right, err := p.parseUnaryValue()
		if err != nil {
			return nil, err
		}

		left = &Arithmetic{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// Unary = ["+"|"-"] Unary | ValuePrimary
func (p *Parser) parseUnaryValue() (ValueExpr, error) {
	if p.currentToken().Type == PLUS || p.currentToken().Type == MINUS {
		op := p.currentToken().Literal
		p.advance()

		expr, err := p.parseUnaryValue()
		if err != nil {
			return nil, err
		}

		return &Unary{Op: op, Expr: expr}, nil
	}

	return p.parseValuePrimary()
}

// ValuePrimary = Literal | Variable | "(" ValueExpression ")"
func (p *Parser) parseValuePrimary() (ValueExpr, error) {
	if err := p.enterNesting(); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	tok := p.currentToken()

	switch tok.Type {
	case INT:
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("Invalid integer literal: %s", tok.Literal)
		}

		p.advance()

		return &Literal{Value: &Integer{Value: value}}, nil
	case FLOAT:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("Invalid float literal: %s", tok.Literal)
		}

		p.advance()

		return &Literal{Value: &Float{Value: value}}, nil
	case STRING:
		p.advance()
		return &Literal{Value: &String{Value: tok.Literal}}, nil
	case NULL:
		p.advance()
		return &Literal{Value: nullValue}, nil
	case TRUE, FALSE:
		p.advance()
		return &Literal{Value: nativeBoolToBooleanObject(tok.Type == TRUE)}, nil
	case IDENT:
		p.advance()
		return &Variable{Name: tok.Literal}, nil
	case LPAREN:
		p.advance()

		expr, err := p.parseValueExpression()
		if err != nil {
			return nil, err
		}

		if err := p.expect(RPAREN); err != nil {
			return nil, err
		}

		return expr, nil
	}

	return nil, p.errorf("Expected value expression, got %s", describeToken(tok))
}
