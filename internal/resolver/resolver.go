package resolver

import (
	"github.com/edwingeng/deque"

	"lox/internal/ast"
	"lox/internal/lexer"
	"lox/internal/utils"
)

// Locals receives the scope distance of every local variable reference.
// References that are never reported are globals.
type Locals interface {
	Resolve(expr ast.Expression, depth int)
}

type functionType int

const (
	functionNone functionType = iota
	functionPlain
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classPlain
	classSubclass
)

// scope maps a declared name to whether its initializer has finished.
type scope map[string]bool

type Resolver struct {
	locals          Locals
	scopes          deque.Deque
	errors          []utils.Diagnostic
	currentFunction functionType
	currentClass    classType
}

func New(locals Locals) *Resolver {
	return &Resolver{locals: locals, scopes: deque.NewDeque()}
}

func (r *Resolver) Errors() []utils.Diagnostic {
	return r.errors
}

// Resolve walks statements once and reports the distance of each local
// reference to r's Locals. Errors do not stop the walk.
func (r *Resolver) Resolve(statements []ast.Statement) []utils.Diagnostic {
	r.errors = nil
	r.resolveStatements(statements)
	return r.errors
}

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.ClassStatement:
		r.resolveClass(s)
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.FunctionStatement:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionPlain)
	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *ast.PrintStatement:
		r.resolveExpression(s.Expression)
	case *ast.ReturnStatement:
		if r.currentFunction == functionNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}
		if _, empty := s.Value.(*ast.EmptyExpression); !empty {
			if r.currentFunction == functionInitializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	case *ast.VarStatement:
		r.declare(s.Name)
		r.resolveExpression(s.Initializer)
		r.define(s.Name)
	case *ast.WhileStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStatement) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = classSubclass
			r.resolveExpression(s.Superclass)
		}
		r.beginScope()
		r.innermost()["super"] = true
	}

	r.beginScope()
	r.innermost()["this"] = true
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStatement, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.AssignExpression:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.BinaryExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.LogicalExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.UnaryExpression:
		r.resolveExpression(e.Right)
	case *ast.CallExpression:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.GetExpression:
		r.resolveExpression(e.Object)
	case *ast.SetExpression:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.GroupingExpression:
		r.resolveExpression(e.Expression)
	case *ast.VariableExpression:
		if !r.scopes.Empty() {
			if ready, declared := r.innermost()[e.Name.Lexeme]; declared && !ready {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.ThisExpression:
		if r.currentClass == classNone {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.SuperExpression:
		switch r.currentClass {
		case classNone:
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
			return
		case classPlain:
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.LiteralExpression, *ast.EmptyExpression:
	}
}

// resolveLocal reports how many scopes out name was declared. Names not found
// in any scope are left unreported and looked up in the globals at runtime.
func (r *Resolver) resolveLocal(expr ast.Expression, name lexer.Token) {
	n := r.scopes.Len()
	for i := n - 1; i >= 0; i-- {
		if _, ok := r.scopes.Peek(i).(scope)[name.Lexeme]; ok {
			r.locals.Resolve(expr, n-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes.PushBack(scope{})
}

func (r *Resolver) endScope() {
	r.scopes.PopBack()
}

func (r *Resolver) innermost() scope {
	return r.scopes.Back().(scope)
}

func (r *Resolver) declare(name lexer.Token) {
	if r.scopes.Empty() {
		return
	}
	s := r.innermost()
	if _, exists := s[name.Lexeme]; exists {
		r.error(name, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if r.scopes.Empty() {
		return
	}
	r.innermost()[name.Lexeme] = true
}

func (r *Resolver) error(tok lexer.Token, msg string) {
	r.errors = append(r.errors, utils.Diagnostic{Line: tok.Line, Where: tok.Where(), Message: msg})
}
