package interpreter

import (
	"fmt"

	"lox/internal/ast"
	"lox/internal/lexer"
	"lox/internal/runtime"
)

func (i *Interpreter) evaluate(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpression:
		return runtime.FromLiteral(e.Value), nil
	case *ast.GroupingExpression:
		return i.evaluate(e.Expression)
	case *ast.EmptyExpression:
		return runtime.Nil{}, nil
	case *ast.UnaryExpression:
		return i.evaluateUnary(e)
	case *ast.BinaryExpression:
		return i.evaluateBinary(e)
	case *ast.LogicalExpression:
		return i.evaluateLogical(e)
	case *ast.VariableExpression:
		return i.lookUpVariable(e.Name, e)
	case *ast.AssignExpression:
		return i.evaluateAssign(e)
	case *ast.CallExpression:
		return i.evaluateCall(e)
	case *ast.GetExpression:
		return i.evaluateGet(e)
	case *ast.SetExpression:
		return i.evaluateSet(e)
	case *ast.ThisExpression:
		return i.lookUpVariable(e.Keyword, e)
	case *ast.SuperExpression:
		return i.evaluateSuper(e)
	}
	return nil, fmt.Errorf("unknown expression %T", expr)
}

func (i *Interpreter) lookUpVariable(name lexer.Token, expr ast.Expression) (runtime.Value, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.environment.GetAt(distance, name)
	}
	return i.globals.Get(name)
}

func (i *Interpreter) evaluateAssign(e *ast.AssignExpression) (runtime.Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[e]; ok {
		err = i.environment.AssignAt(distance, e.Name, value)
	} else {
		err = i.globals.Assign(e.Name, value)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evaluateUnary(e *ast.UnaryExpression) (runtime.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.BANG:
		return runtime.Bool(!runtime.IsTruthy(right)), nil
	case lexer.MINUS:
		n, ok := right.(runtime.Number)
		if !ok {
			return nil, runtime.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	}
	return nil, runtime.NewRuntimeError(e.Operator, "Unknown unary operator '%s'.", e.Operator.Lexeme)
}

func (i *Interpreter) evaluateLogical(e *ast.LogicalExpression) (runtime.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == lexer.OR {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evaluateBinary(e *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	op := e.Operator
	switch op.Type {
	case lexer.EQUAL_EQUAL, lexer.BANG_EQUAL:
		eq, err := isEqual(op, left, right)
		if err != nil {
			return nil, err
		}
		if op.Type == lexer.BANG_EQUAL {
			return runtime.Bool(!eq), nil
		}
		return runtime.Bool(eq), nil
	case lexer.PLUS:
		return add(op, left, right)
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op.Type {
	case lexer.MINUS:
		return l - r, nil
	case lexer.STAR:
		return l * r, nil
	case lexer.SLASH:
		return l / r, nil
	case lexer.GREATER:
		return runtime.Bool(l > r), nil
	case lexer.GREATER_EQUAL:
		return runtime.Bool(l >= r), nil
	case lexer.LESS:
		return runtime.Bool(l < r), nil
	case lexer.LESS_EQUAL:
		return runtime.Bool(l <= r), nil
	}
	return nil, runtime.NewRuntimeError(op, "Unknown binary operator '%s'.", op.Lexeme)
}

// add implements '+': numbers add, strings concatenate, and a string paired
// with a number concatenates the number's printed form.
func add(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.Number:
		switch r := right.(type) {
		case runtime.Number:
			return l + r, nil
		case runtime.String:
			return runtime.String(l.String()) + r, nil
		}
	case runtime.String:
		switch r := right.(type) {
		case runtime.String:
			return l + r, nil
		case runtime.Number:
			return l + runtime.String(r.String()), nil
		}
	}
	return nil, runtime.NewRuntimeError(op, "Operands must be two numbers or two strings.")
}

func numberOperands(op lexer.Token, left, right runtime.Value) (runtime.Number, runtime.Number, error) {
	l, lok := left.(runtime.Number)
	r, rok := right.(runtime.Number)
	if !lok || !rok {
		return 0, 0, runtime.NewRuntimeError(op, "Operands must be numbers.")
	}
	return l, r, nil
}

// isEqual compares values of the same kind. Objects compare by identity.
// Comparing values of different kinds is an error rather than false.
func isEqual(op lexer.Token, left, right runtime.Value) (bool, error) {
	switch l := left.(type) {
	case runtime.Nil:
		if _, ok := right.(runtime.Nil); ok {
			return true, nil
		}
	case runtime.Bool:
		if r, ok := right.(runtime.Bool); ok {
			return l == r, nil
		}
	case runtime.Number:
		if r, ok := right.(runtime.Number); ok {
			return l == r, nil
		}
	case runtime.String:
		if r, ok := right.(runtime.String); ok {
			return l == r, nil
		}
	default:
		if runtime.TypeName(left) == runtime.TypeName(right) {
			return left == right, nil
		}
	}
	return false, runtime.NewRuntimeError(op, "Can't compare %s and %s.", runtime.Repr(left), runtime.Repr(right))
}

func (i *Interpreter) evaluateCall(e *ast.CallExpression) (runtime.Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		v, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtime.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtime.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if i.depth >= i.maxDepth {
		return nil, &runtime.StackOverflowError{Line: e.Paren.Line}
	}
	i.depth++
	defer func() { i.depth-- }()

	return fn.Call(i, args)
}

func (i *Interpreter) evaluateGet(e *ast.GetExpression) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.Instance)
	if !ok {
		return nil, runtime.NewRuntimeError(e.Name, "Only instances have properties.")
	}
	return instance.Get(e.Name)
}

func (i *Interpreter) evaluateSet(e *ast.SetExpression) (runtime.Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.Instance)
	if !ok {
		return nil, runtime.NewRuntimeError(e.Name, "Only instances have fields.")
	}

	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name, value)
	return value, nil
}

// evaluateSuper finds the method on the superclass bound at the "super"
// scope and binds it to the instance one scope further in.
func (i *Interpreter) evaluateSuper(e *ast.SuperExpression) (runtime.Value, error) {
	distance, ok := i.locals[e]
	if !ok {
		return nil, runtime.NewRuntimeError(e.Keyword, "Can't use 'super' outside of a class.")
	}

	v, err := i.environment.GetAt(distance, e.Keyword)
	if err != nil {
		return nil, err
	}
	superclass, ok := v.(*runtime.Class)
	if !ok {
		return nil, runtime.NewRuntimeError(e.Keyword, "Superclass must be a class.")
	}

	thisTok := lexer.Token{Type: lexer.THIS, Lexeme: "this", Line: e.Keyword.Line}
	v, err = i.environment.GetAt(distance-1, thisTok)
	if err != nil {
		return nil, err
	}
	instance, ok := v.(*runtime.Instance)
	if !ok {
		return nil, runtime.NewRuntimeError(e.Keyword, "Can't use 'super' outside of a method.")
	}

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, runtime.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
