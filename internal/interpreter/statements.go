package interpreter

import (
	"fmt"

	"lox/internal/ast"
	"lox/internal/runtime"
)

// completion is the outcome of executing one statement. returning is set
// when a return statement fired; every statement runner must stop and pass
// the completion up until a function call consumes it.
type completion struct {
	value     runtime.Value
	returning bool
}

var normal = completion{value: runtime.Nil{}}

func (i *Interpreter) execute(stmt ast.Statement) (completion, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, err := i.evaluate(s.Expression)
		if err != nil {
			return normal, err
		}
		return completion{value: v}, nil

	case *ast.PrintStatement:
		v, err := i.evaluate(s.Expression)
		if err != nil {
			return normal, err
		}
		fmt.Fprintln(i.out, v.String())
		return completion{value: v}, nil

	case *ast.VarStatement:
		v, err := i.evaluate(s.Initializer)
		if err != nil {
			return normal, err
		}
		i.environment.Define(s.Name.Lexeme, v)
		return completion{value: v}, nil

	case *ast.BlockStatement:
		v, returned, err := i.ExecuteBlock(s.Statements, runtime.NewEnvironment(i.environment))
		if err != nil {
			return normal, err
		}
		return completion{value: v, returning: returned}, nil

	case *ast.IfStatement:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return normal, err
		}
		if runtime.IsTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return normal, nil

	case *ast.WhileStatement:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return normal, err
			}
			if !runtime.IsTruthy(cond) {
				return normal, nil
			}
			c, err := i.execute(s.Body)
			if err != nil || c.returning {
				return c, err
			}
		}

	case *ast.FunctionStatement:
		fn := runtime.NewFunction(s, i.environment, false)
		i.environment.Define(s.Name.Lexeme, fn)
		return normal, nil

	case *ast.ReturnStatement:
		v, err := i.evaluate(s.Value)
		if err != nil {
			return normal, err
		}
		return completion{value: v, returning: true}, nil

	case *ast.ClassStatement:
		return normal, i.executeClass(s)
	}
	return normal, fmt.Errorf("unknown statement %T", stmt)
}

// ExecuteBlock runs statements with env as the current scope. The previous
// scope is restored however the block exits.
func (i *Interpreter) ExecuteBlock(statements []ast.Statement, env *runtime.Environment) (runtime.Value, bool, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		c, err := i.execute(stmt)
		if err != nil {
			return nil, false, err
		}
		if c.returning {
			return c.value, true, nil
		}
	}
	return runtime.Nil{}, false, nil
}

func (i *Interpreter) executeClass(s *ast.ClassStatement) error {
	i.environment.Define(s.Name.Lexeme, runtime.Nil{})

	var superclass *runtime.Class
	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			return runtime.NewRuntimeError(s.Superclass.Name, "A class can't inherit from itself.")
		}
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		class, ok := v.(*runtime.Class)
		if !ok {
			return runtime.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	env := i.environment
	if superclass != nil {
		env = runtime.NewEnvironment(env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*runtime.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = runtime.NewFunction(m, env, m.Name.Lexeme == "init")
	}

	return i.environment.Assign(s.Name, runtime.NewClass(s.Name.Lexeme, superclass, methods))
}
