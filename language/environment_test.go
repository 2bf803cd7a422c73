package language

import (
	"reflect"
	"testing"
)

func TestEnvironmentGetSet(t *testing.T) {
	env := NewEnvironment()

	if _, ok := env.Get("x"); ok {
		t.Fatalf("Get on empty environment should report absence")
	}

	env.Set("x", &Integer{Value: 1})
	env.Set("x", &Integer{Value: 2})

	val, ok := env.Get("x")
	if !ok {
		t.Fatalf("Get failed after Set")
	}

	intVal, ok := val.(*Integer)
	if !ok {
		t.Fatalf("val is not *Integer. got=%T", val)
	}

	if intVal.Value != 2 {
		t.Errorf("Set should replace the previous binding. got=%d", intVal.Value)
	}
}

func TestEnvironmentNamesSorted(t *testing.T) {
	env := NewEnvironment()
	env.Set("zeta", &Boolean{Value: true})
	env.Set("alpha", &Integer{Value: 1})
	env.Set("mid", &Null{})

	expected := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(env.Names(), expected) {
		t.Errorf("Names() wrong. expected=%v, got=%v", expected, env.Names())
	}
}
