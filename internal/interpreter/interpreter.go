package interpreter

import (
	"io"
	"os"
	"time"

	"lox/internal/ast"
	"lox/internal/runtime"
)

const DefaultMaxCallDepth = 4096

// Options controls interpreter construction.
type Options struct {
	// Stdout receives the output of print statements (default os.Stdout).
	Stdout io.Writer
	// MaxCallDepth bounds nested calls; exceeding it yields runtime.ErrStackOverflow.
	MaxCallDepth int
}

func (o *Options) normalize() Options {
	if o == nil {
		return Options{Stdout: os.Stdout, MaxCallDepth: DefaultMaxCallDepth}
	}
	out := *o
	if out.Stdout == nil {
		out.Stdout = os.Stdout
	}
	if out.MaxCallDepth <= 0 {
		out.MaxCallDepth = DefaultMaxCallDepth
	}
	return out
}

// Interpreter evaluates resolved statements. Globals and everything defined
// at top level persist across Interpret calls.
type Interpreter struct {
	globals     *runtime.Environment
	environment *runtime.Environment
	locals      map[ast.Expression]int
	out         io.Writer
	maxDepth    int
	depth       int
}

func New(opt *Options) *Interpreter {
	o := opt.normalize()
	globals := runtime.NewEnvironment(nil)
	i := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expression]int),
		out:         o.Stdout,
		maxDepth:    o.MaxCallDepth,
	}
	i.RegisterNative("clock", 0, func([]runtime.Value) (runtime.Value, error) {
		return runtime.Number(float64(time.Now().UnixNano()) / 1e9), nil
	})
	return i
}

func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// RegisterNative binds a host function into the global scope.
func (i *Interpreter) RegisterNative(name string, arity int, fn runtime.NativeFunc) {
	i.globals.Define(name, runtime.NewNativeFunction(name, arity, fn))
}

// Resolve records that expr refers to a binding depth scopes out.
func (i *Interpreter) Resolve(expr ast.Expression, depth int) {
	i.locals[expr] = depth
}

// Depth returns the recorded distance for expr; false means global.
func (i *Interpreter) Depth(expr ast.Expression) (int, bool) {
	d, ok := i.locals[expr]
	return d, ok
}

// Interpret executes statements in order and returns the value produced by
// the last one. The first error aborts the remaining statements.
func (i *Interpreter) Interpret(statements []ast.Statement) (runtime.Value, error) {
	var last runtime.Value = runtime.Nil{}
	for _, stmt := range statements {
		c, err := i.execute(stmt)
		if err != nil {
			return nil, err
		}
		last = c.value
	}
	return last, nil
}
