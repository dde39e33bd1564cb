package main

import "github.com/edwingeng/deque"

// Locals maps each resolved NodeVariable and NodeAssign to the number of
// scopes between the reference and the scope that declares it. References
// missing from the table are globals.
type Locals map[*ASTNode]int

type functionType int

const (
	functionNone functionType = iota
	functionFunction
)

// scope maps a name to whether its initializer has finished resolving.
type scope map[string]bool

// Resolver is the static pass between parsing and execution. It mirrors
// the interpreter's environment chaining exactly: one scope per block, per
// function body and per loop iteration body.
type Resolver struct {
	scopes          deque.Deque // of scope, innermost at the back
	locals          Locals
	currentFunction functionType
	reporter        *Reporter
}

func NewResolver(reporter *Reporter) *Resolver {
	return &Resolver{
		scopes:   deque.NewDeque(),
		locals:   make(Locals),
		reporter: reporter,
	}
}

// Resolve walks statements and returns the distances it computed. Errors
// are reported and resolution continues.
func (r *Resolver) Resolve(statements []*ASTNode) Locals {
	r.resolveStatements(statements)
	return r.locals
}

func (r *Resolver) resolveStatements(statements []*ASTNode) {
	for _, stmt := range statements {
		r.resolve(stmt)
	}
}

func (r *Resolver) resolve(node *ASTNode) {
	switch node.Kind {
	case NodeLiteral:
		// Nothing to resolve.

	case NodeGrouping, NodeUnary, NodeExprStmt, NodePrint:
		r.resolve(node.Children[0])

	case NodeBinary, NodeLogical, NodeCall:
		for _, child := range node.Children {
			r.resolve(child)
		}

	case NodeVariable:
		if !r.scopes.Empty() {
			if ready, declared := r.innermost()[node.Name()]; declared && !ready {
				r.reporter.ErrorAt(node.Token, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(node)

	case NodeAssign:
		r.resolve(node.Children[0])
		r.resolveLocal(node)

	case NodeVar:
		r.declare(node.Token)
		if len(node.Children) > 0 {
			r.resolve(node.Children[0])
		}
		r.define(node.Token)

	case NodeBlock:
		r.beginScope()
		r.resolveStatements(node.Children)
		r.endScope()

	case NodeIf:
		for _, child := range node.Children {
			r.resolve(child)
		}

	case NodeWhile:
		r.resolve(node.Children[0])
		r.beginScope()
		r.resolve(node.Children[1])
		r.endScope()

	case NodeFunc:
		// Defined before the body so the function can refer to itself.
		r.declare(node.Token)
		r.define(node.Token)
		r.resolveFunction(node, functionFunction)

	case NodeReturn:
		if r.currentFunction == functionNone {
			r.reporter.ErrorAt(node.Token, "Can't return from top-level code.")
		}
		if len(node.Children) > 0 {
			r.resolve(node.Children[0])
		}

	default:
		panic("resolver: unexpected node kind " + string(node.Kind))
	}
}

func (r *Resolver) resolveFunction(fn *ASTNode, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Children)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) beginScope() {
	r.scopes.PushBack(make(scope))
}

func (r *Resolver) endScope() {
	r.scopes.PopBack()
}

func (r *Resolver) innermost() scope {
	return r.scopes.Back().(scope)
}

// declare adds name to the innermost scope as not yet ready. Globals are
// not tracked.
func (r *Resolver) declare(name Token) {
	if r.scopes.Empty() {
		return
	}
	s := r.innermost()
	if _, ok := s[name.Lexeme]; ok {
		r.reporter.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if r.scopes.Empty() {
		return
	}
	r.innermost()[name.Lexeme] = true
}

func (r *Resolver) resolveLocal(node *ASTNode) {
	n := r.scopes.Len()
	for i := n - 1; i >= 0; i-- {
		if _, ok := r.scopes.Peek(i).(scope)[node.Name()]; ok {
			r.locals[node] = n - 1 - i
			return
		}
	}
}
