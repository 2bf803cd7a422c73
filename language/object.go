package language

import (
	"strconv"
	"strings"
)

// ObjectType defines the object type enum. The names double as the type
// names printed in error messages.
type ObjectType string

const (
	// ObjectTypeInteger type used to represent 64-bit signed integers
	ObjectTypeInteger ObjectType = "integer"
	// ObjectTypeFloat type used to represent 64-bit floats
	ObjectTypeFloat ObjectType = "float"
	// ObjectTypeString type used to represent strings
	ObjectTypeString ObjectType = "string"
	// ObjectTypeBoolean type used to represent booleans
	ObjectTypeBoolean ObjectType = "boolean"
	// ObjectTypeNull type used to represent the NULL value
	ObjectTypeNull ObjectType = "NULL"
)

// Object abstraction of the runtime values. Objects serve three roles:
// literals inside the AST, caller-supplied bindings, and evaluation results.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer is the representation of integer values
type Integer struct {
	Value int64
}

// Type returns the object type
func (i *Integer) Type() ObjectType { return ObjectTypeInteger }

// Inspect returns the readable value of the object
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Float is the representation of floating point values
type Float struct {
	Value float64
}

// Type returns the object type
func (f *Float) Type() ObjectType { return ObjectTypeFloat }

// Inspect returns the readable value of the object. A decimal point or
// exponent is always present so the rendering lexes back as a float.
func (f *Float) Inspect() string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// String is the representation of strings
type String struct {
	Value string
}

// Type returns the object type
func (s *String) Type() ObjectType { return ObjectTypeString }

// Inspect returns the readable value of the object
func (s *String) Inspect() string { return s.Value }

// Boolean is the representation of booleans
type Boolean struct {
	Value bool
}

// Type returns the object type
func (b *Boolean) Type() ObjectType { return ObjectTypeBoolean }

// Inspect returns the readable value of the object
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// Null is the representation of the NULL value
type Null struct{}

// Type returns the object type
func (n *Null) Type() ObjectType { return ObjectTypeNull }

// Inspect returns the readable value of the object
func (n *Null) Inspect() string { return "null" }

var (
	nullValue  = &Null{}
	trueValue  = &Boolean{Value: true}
	falseValue = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return trueValue
	}

	return falseValue
}

func isNull(obj Object) bool {
	return obj.Type() == ObjectTypeNull
}

func isNumeric(obj Object) bool {
	return obj.Type() == ObjectTypeInteger || obj.Type() == ObjectTypeFloat
}

// sameLiteralVariant reports whether two objects are of the exact same
// literal variant. Integer and Float do not match each other.
func sameLiteralVariant(a, b Object) bool {
	return a.Type() == b.Type()
}

// betweenCompatible reports whether two literals may bound the same BETWEEN
// range: both numeric (Integer and Float mix freely) or both string.
func betweenCompatible(lower, upper Object) bool {
	if isNumeric(lower) && isNumeric(upper) {
		return true
	}

	return lower.Type() == ObjectTypeString && upper.Type() == ObjectTypeString
}
