package main

import (
	"sort"
	"strconv"
)

// Environment is one lexical scope. Scopes form a chain through enclosing
// up to the globals, which have no parent.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing exposes the lexical parent (nil for globals).
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define inserts or overwrites a binding in this scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get searches this scope and then the enclosing chain.
func (e *Environment) Get(name Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates the first binding of name found along the chain. It never
// creates a binding.
func (e *Environment) Assign(name Token, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Ancestor returns the environment distance hops up the chain.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env.enclosing == nil {
			panic("environment chain shorter than resolved distance " + strconv.Itoa(distance))
		}
		env = env.enclosing
	}
	return env
}

// GetAt reads name from exactly the scope distance hops up.
func (e *Environment) GetAt(distance int, name Token) (Value, error) {
	if v, ok := e.Ancestor(distance).values[name.Lexeme]; ok {
		return v, nil
	}
	return nil, undefinedVariable(name)
}

// AssignAt writes name in exactly the scope distance hops up.
func (e *Environment) AssignAt(distance int, name Token, value Value) error {
	env := e.Ancestor(distance)
	if _, ok := env.values[name.Lexeme]; !ok {
		return undefinedVariable(name)
	}
	env.values[name.Lexeme] = value
	return nil
}

// Names returns the bindings of this scope in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func undefinedVariable(name Token) *RuntimeError {
	return NewRuntimeError(name, ErrUndefinedVariable, "Undefined variable '%s'.", name.Lexeme)
}
