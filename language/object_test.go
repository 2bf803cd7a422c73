package language

import "testing"

func TestObjectTypes(t *testing.T) {
	table := []struct {
		obj      Object
		expected ObjectType
	}{
		{&Integer{Value: 1}, ObjectTypeInteger},
		{&Float{Value: 1.5}, ObjectTypeFloat},
		{&String{Value: "a"}, ObjectTypeString},
		{&Boolean{Value: true}, ObjectTypeBoolean},
		{&Null{}, ObjectTypeNull},
	}

	for _, tt := range table {
		if tt.obj.Type() != tt.expected {
			t.Errorf("Type() wrong. expected=%q, got=%q", tt.expected, tt.obj.Type())
		}
	}
}

func TestFloatInspectLexesBackAsFloat(t *testing.T) {
	table := map[float64]string{
		2.5:   "2.5",
		5:     "5.0",
		-3:    "-3.0",
		1e21:  "1e+21",
		0.001: "0.001",
	}

	for value, expected := range table {
		f := &Float{Value: value}
		if f.Inspect() != expected {
			t.Errorf("Inspect() wrong for %v. expected=%q, got=%q", value, expected, f.Inspect())
		}
	}
}

func TestBooleanSingletons(t *testing.T) {
	if nativeBoolToBooleanObject(true) != trueValue {
		t.Errorf("nativeBoolToBooleanObject(true) is not the shared instance")
	}

	if nativeBoolToBooleanObject(false) != falseValue {
		t.Errorf("nativeBoolToBooleanObject(false) is not the shared instance")
	}
}

func TestLiteralVariantChecks(t *testing.T) {
	if sameLiteralVariant(&Integer{Value: 1}, &Float{Value: 1}) {
		t.Errorf("Integer and Float must not be the same variant")
	}

	if !sameLiteralVariant(&String{Value: "a"}, &String{Value: "b"}) {
		t.Errorf("two strings are the same variant")
	}

	if !betweenCompatible(&Integer{Value: 1}, &Float{Value: 2}) {
		t.Errorf("Integer and Float bounds are compatible")
	}

	if betweenCompatible(&Integer{Value: 1}, &String{Value: "a"}) {
		t.Errorf("numeric and string bounds are incompatible")
	}
}
