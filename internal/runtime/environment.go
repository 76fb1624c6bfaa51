package runtime

import (
	"sort"

	"lox/internal/lexer"
)

// Environment is one scope of name bindings. Closures and child scopes hold
// the enclosing scope by pointer, so a scope lives as long as anything that
// captured it.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing returns the parent scope, or nil for the global scope.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this scope, shadowing or replacing any binding.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks name up, walking outward through enclosing scopes.
func (e *Environment) Get(name lexer.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign updates the nearest existing binding of name.
func (e *Environment) Assign(name lexer.Token, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt reads name from the scope exactly distance hops out.
func (e *Environment) GetAt(distance int, name lexer.Token) (Value, error) {
	env, err := e.ancestor(distance, name)
	if err != nil {
		return nil, err
	}
	v, ok := env.values[name.Lexeme]
	if !ok {
		return nil, NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return v, nil
}

// AssignAt writes name into the scope exactly distance hops out.
func (e *Environment) AssignAt(distance int, name lexer.Token, value Value) error {
	env, err := e.ancestor(distance, name)
	if err != nil {
		return err
	}
	env.values[name.Lexeme] = value
	return nil
}

func (e *Environment) ancestor(distance int, name lexer.Token) (*Environment, error) {
	env := e
	for i := 0; i < distance; i++ {
		if env.enclosing == nil {
			return nil, NewRuntimeError(name, "No enclosing scope at distance %d for '%s'.", distance, name.Lexeme)
		}
		env = env.enclosing
	}
	return env, nil
}

// Names returns the names bound directly in this scope, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
