package runtime

import (
	"fmt"

	"lox/internal/ast"
	"lox/internal/lexer"
)

// Executor runs a function body. The interpreter implements it; callables
// use it to get back into the evaluator without importing it.
type Executor interface {
	// ExecuteBlock runs stmts in env. returned reports whether a return
	// statement fired, in which case value is the returned value.
	ExecuteBlock(stmts []ast.Statement, env *Environment) (value Value, returned bool, err error)
}

// NativeFunc is the Go implementation behind a NativeFunction.
type NativeFunc func(args []Value) (Value, error)

// NativeFunction is a host-provided callable registered into the globals.
type NativeFunction struct {
	name  string
	arity int
	fn    NativeFunc
}

func NewNativeFunction(name string, arity int, fn NativeFunc) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Name() string   { return n.name }
func (n *NativeFunction) Arity() int     { return n.arity }
func (n *NativeFunction) String() string { return "<native fn>" }

func (n *NativeFunction) Call(_ Executor, args []Value) (Value, error) {
	v, err := n.fn(args)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return Nil{}, nil
	}
	return v, nil
}

// Function is a user-declared function or method together with the scope
// that was active where it was declared.
type Function struct {
	declaration   *ast.FunctionStatement
	closure       *Environment
	isInitializer bool
}

func NewFunction(decl *ast.FunctionStatement, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Name() string   { return f.declaration.Name.Lexeme }
func (f *Function) Arity() int     { return len(f.declaration.Params) }
func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.Name()) }

// Bind returns a copy of f whose closure binds "this" to instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

func (f *Function) Call(ex Executor, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	value, returned, err := ex.ExecuteBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, lexer.Token{Type: lexer.THIS, Lexeme: "this", Line: f.declaration.Name.Line})
	}
	if returned {
		return value, nil
	}
	return Nil{}, nil
}
