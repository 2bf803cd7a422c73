package language

import "sort"

// Environment holds the variable bindings an expression is evaluated
// against. It is read-only during evaluation.
type Environment struct {
	store map[string]Object
}

// NewEnvironment creates a new empty environment.
func NewEnvironment() *Environment {
	return &Environment{store: map[string]Object{}}
}

// Get returns the binding for the given name.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	return obj, ok
}

// Set binds a name to a value, replacing any previous binding.
func (e *Environment) Set(name string, val Object) {
	e.store[name] = val
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
