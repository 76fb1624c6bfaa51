package parser

import (
	"strconv"
	"strings"
	"testing"

	"lox/internal/ast"
	"lox/internal/astprint"
	"lox/internal/lexer"
)

func parse(t *testing.T, input string) ([]ast.Statement, *Parser) {
	t.Helper()
	l := lexer.New(input)
	tokens := l.ScanTokens()
	if len(l.Errors()) != 0 {
		t.Fatalf("scan errors: %v", l.Errors())
	}
	p := New(tokens)
	return p.Parse(), p
}

func render(stmts []ast.Statement) string {
	pr := astprint.New(astprint.Prefix)
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = pr.Statement(s)
	}
	return strings.Join(lines, "\n")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"precedence", "1 + 2 * 3;", "(; (+ 1 (* 2 3)))"},
		{"grouping", "(1 + 2) * 3;", "(; (* (group (+ 1 2)) 3))"},
		{"left associative", "1 - 2 - 3;", "(; (- (- 1 2) 3))"},
		{"unary", "!-x;", "(; (! (- x)))"},
		{"comparison over equality", "a == b < c;", "(; (== a (< b c)))"},
		{"logical", "a or b and c;", "(; (or a (and b c)))"},
		{"right associative assignment", "a = b = 1;", "(; (= a (= b 1)))"},
		{"property set", "a.b.c = 1;", "(; (= (. a b) c 1))"},
		{"call chain", "f(1)(2).x;", "(; (. (call (call f 1) 2) x))"},
		{"var without initializer", "var a;", "(var a)"},
		{"var", `var s = "x";`, `(var s = "x")`},
		{"if else", "if (a) print 1; else print 2;", "(if-else a (print 1) (print 2))"},
		{"dangling else", "if (a) if (b) print 1; else print 2;", "(if a (if-else b (print 1) (print 2)))"},
		{"while", "while (x) x = x - 1;", "(while x (; (= x (- x 1))))"},
		{"for desugars to while",
			"for (var i = 0; i < 3; i = i + 1) print i;",
			"(block (var i = 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))"},
		{"empty for", "for (;;) print 1;", "(while true (print 1))"},
		{"function", "fun add(a, b) { return a + b; }", "(fun add(a b) (return (+ a b)))"},
		{"bare return", "fun f() { return; }", "(fun f() (return))"},
		{"class", "class B < A { init(x) { this.x = x; } go() { super.go(); } }",
			"(class B < A (fun init(x) (; (= this x x))) (fun go() (; (call (super go)))))"},
		{"block", "{ var a = 1; print a; }", "(block (var a = 1) (print a))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, p := parse(t, tt.input)
			if len(p.Errors()) != 0 {
				t.Fatalf("unexpected errors: %v", p.Errors())
			}
			if got := render(stmts); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		stmts int
	}{
		{"missing expression", "print ;", []string{"[line 1] Error at ';': Expect expression."}, 0},
		{"missing semicolon", "print 1", []string{"[line 1] Error at end: Expect ';' after value."}, 0},
		{"missing variable name", "var = 1;", []string{"[line 1] Error at '=': Expect variable name."}, 0},
		{"invalid assignment target", "a + b = c;", []string{"[line 1] Error at '=': Invalid assignment target."}, 1},
		{"unclosed block", "{ print 1;", []string{"[line 1] Error at end: Expect '}' after block."}, 0},
		{"recovers between statements",
			"var = 1;\nprint 2;\nprint ;",
			[]string{
				"[line 1] Error at '=': Expect variable name.",
				"[line 3] Error at ';': Expect expression.",
			}, 1},
		{"recovers at keyword", "1 + ; fun f() {}", []string{"[line 1] Error at ';': Expect expression."}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, p := parse(t, tt.input)
			errs := p.Errors()
			if len(errs) != len(tt.want) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.want))
			}
			for i, want := range tt.want {
				if got := errs[i].String(); got != want {
					t.Errorf("error %d: got %q, want %q", i, got, want)
				}
			}
			if len(stmts) != tt.stmts {
				t.Errorf("got %d statements, want %d", len(stmts), tt.stmts)
			}
		})
	}
}

func TestTooManyArguments(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	_, p := parse(t, "f("+strings.Join(args, ", ")+");")
	errs := p.Errors()
	if len(errs) != 1 || errs[0].Message != "Can't have more than 255 arguments." {
		t.Fatalf("got %v", errs)
	}
}

func TestTooManyParameters(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = "p" + strconv.Itoa(i)
	}
	stmts, p := parse(t, "fun f("+strings.Join(params, ", ")+") {}")
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors %v, want 1", len(errs), errs)
	}
	if got := errs[0].String(); got != "[line 1] Error at 'p255': Can't have more than 255 parameters." {
		t.Errorf("got %q", got)
	}
	if len(stmts) != 1 {
		t.Errorf("got %d statements, want 1", len(stmts))
	}
}

func TestNewAppendsEOF(t *testing.T) {
	p := New(nil)
	if stmts := p.Parse(); len(stmts) != 0 {
		t.Errorf("got %d statements from no tokens", len(stmts))
	}
}
