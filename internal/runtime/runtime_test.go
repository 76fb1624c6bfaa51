package runtime

import (
	"errors"
	"testing"

	"lox/internal/ast"
	"lox/internal/lexer"
)

func ident(name string) lexer.Token {
	return lexer.Token{Type: lexer.IDENTIFIER, Lexeme: name, Line: 1}
}

func TestEnvironmentChain(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", Number(1))
	inner := NewEnvironment(NewEnvironment(global))

	v, err := inner.Get(ident("a"))
	if err != nil || v != Number(1) {
		t.Fatalf("Get: got %v, %v", v, err)
	}
	if v, err := inner.GetAt(2, ident("a")); err != nil || v != Number(1) {
		t.Fatalf("GetAt: got %v, %v", v, err)
	}

	if err := inner.Assign(ident("a"), String("x")); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if v, _ := global.Get(ident("a")); v != String("x") {
		t.Errorf("assign did not reach defining scope: %v", v)
	}

	if err := inner.AssignAt(2, ident("a"), Bool(true)); err != nil {
		t.Fatalf("AssignAt: %v", err)
	}
	if v, _ := global.Get(ident("a")); v != Bool(true) {
		t.Errorf("AssignAt: got %v", v)
	}
}

func TestEnvironmentErrors(t *testing.T) {
	env := NewEnvironment(nil)

	_, err := env.Get(ident("missing"))
	var rte *RuntimeError
	if !errors.As(err, &rte) || rte.Message != "Undefined variable 'missing'." {
		t.Errorf("Get: got %v", err)
	}

	if err := env.Assign(ident("missing"), Nil{}); err == nil {
		t.Errorf("Assign to undeclared name succeeded")
	}
	if _, ok := env.values["missing"]; ok {
		t.Errorf("failed Assign created a binding")
	}

	_, err = env.GetAt(3, ident("x"))
	if !errors.As(err, &rte) || rte.Message != "No enclosing scope at distance 3 for 'x'." {
		t.Errorf("GetAt: got %v", err)
	}
}

func TestEnvironmentNames(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", Nil{})
	env.Define("a", Nil{})
	names := env.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("got %v", names)
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Nil{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{Number(0), true},
		{String(""), true},
		{NewClass("A", nil, nil), true},
	}
	for _, tt := range tests {
		if got := IsTruthy(tt.v); got != tt.want {
			t.Errorf("IsTruthy(%s) = %v, want %v", Repr(tt.v), got, tt.want)
		}
	}
}

func TestStringForms(t *testing.T) {
	class := NewClass("Point", nil, nil)
	fn := NewFunction(&ast.FunctionStatement{Name: ident("add")}, nil, false)
	tests := []struct {
		v    Value
		want string
	}{
		{Nil{}, "nil"},
		{Bool(true), "true"},
		{Number(3), "3"},
		{Number(2.5), "2.5"},
		{String("hi"), "hi"},
		{fn, "<fn add>"},
		{NewNativeFunction("clock", 0, nil), "<native fn>"},
		{class, "Point"},
		{NewInstance(class), "Point instance"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
	if got := Repr(String("hi")); got != `"hi"` {
		t.Errorf("Repr: got %s", got)
	}
}

func TestInstanceProperties(t *testing.T) {
	method := NewFunction(&ast.FunctionStatement{Name: ident("m")}, NewEnvironment(nil), false)
	base := NewClass("Base", nil, map[string]*Function{"m": method})
	derived := NewClass("Derived", base, nil)
	inst := NewInstance(derived)

	got, err := inst.Get(ident("m"))
	if err != nil {
		t.Fatalf("inherited method: %v", err)
	}
	if bound, ok := got.(*Function); !ok || bound == method {
		t.Errorf("method was not bound: %v", got)
	}

	inst.Set(ident("m"), Number(1))
	if got, _ := inst.Get(ident("m")); got != Number(1) {
		t.Errorf("field should shadow method, got %v", got)
	}

	_, err = inst.Get(ident("nope"))
	var rte *RuntimeError
	if !errors.As(err, &rte) || rte.Message != "Undefined property 'nope'." {
		t.Errorf("got %v", err)
	}
}

func TestClassArity(t *testing.T) {
	init := NewFunction(&ast.FunctionStatement{
		Name:   ident("init"),
		Params: []lexer.Token{ident("x"), ident("y")},
	}, nil, true)
	base := NewClass("A", nil, map[string]*Function{"init": init})
	if base.Arity() != 2 {
		t.Errorf("arity with init: %d", base.Arity())
	}
	if sub := NewClass("B", base, nil); sub.Arity() != 2 {
		t.Errorf("inherited init arity: %d", sub.Arity())
	}
	if plain := NewClass("C", nil, nil); plain.Arity() != 0 {
		t.Errorf("arity without init: %d", plain.Arity())
	}
}

func TestStackOverflowError(t *testing.T) {
	var err error = &StackOverflowError{Line: 7}
	if !errors.Is(err, ErrStackOverflow) {
		t.Errorf("StackOverflowError does not match ErrStackOverflow")
	}
	var rte *RuntimeError
	if errors.As(err, &rte) {
		t.Errorf("stack overflow must not be a RuntimeError")
	}
}
