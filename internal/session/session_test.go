package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lox/internal/astprint"
	"lox/internal/runtime"
	"lox/internal/utils"
)

func newTest(opt Options) (*Session, *bytes.Buffer, *utils.Collector) {
	var out bytes.Buffer
	c := &utils.Collector{}
	opt.Stdout = &out
	opt.Reporter = c
	return New(opt), &out, c
}

func TestRunPrints(t *testing.T) {
	s, out, c := newTest(Options{})
	if _, err := s.Run(`print "hello";`); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hello\n" {
		t.Errorf("got %q", out.String())
	}
	if s.HadError.IsSet() || s.HadRuntimeError.IsSet() || len(c.Static)+len(c.Runtime) != 0 {
		t.Errorf("unexpected error state")
	}
}

func TestStaticErrorsSuppressExecution(t *testing.T) {
	tests := map[string]string{
		"scan":    `print "ran"; @`,
		"parse":   "var = 1;\nprint \"ran\";\nprint ;",
		"resolve": `print "ran"; return;`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			s, out, c := newTest(Options{})
			_, err := s.Run(input)
			if !errors.Is(err, ErrStatic) {
				t.Fatalf("got %v", err)
			}
			if out.Len() != 0 {
				t.Errorf("executed despite errors: %q", out.String())
			}
			if !s.HadError.IsSet() || len(c.Static) == 0 {
				t.Errorf("error not recorded")
			}
		})
	}
}

func TestParseRecoveryReportsBothErrors(t *testing.T) {
	s, _, c := newTest(Options{})
	s.Run("var = 1;\nprint 2;\nprint ;")
	if len(c.Static) != 2 {
		t.Fatalf("got %d errors: %v", len(c.Static), c.Static)
	}
	if c.Static[0].Line != 1 || c.Static[1].Line != 3 {
		t.Errorf("got lines %d and %d", c.Static[0].Line, c.Static[1].Line)
	}
}

func TestRuntimeErrorReported(t *testing.T) {
	s, _, c := newTest(Options{})
	_, err := s.Run("var a = 1;\na();")
	if !errors.Is(err, ErrRuntime) {
		t.Fatalf("got %v", err)
	}
	if !s.HadRuntimeError.IsSet() || s.HadError.IsSet() {
		t.Errorf("wrong flags set")
	}
	if len(c.Runtime) != 1 || c.Runtime[0].Line != 2 || c.Runtime[0].Message != "Can only call functions and classes." {
		t.Errorf("got %v", c.Runtime)
	}
}

func TestStateSurvivesErrors(t *testing.T) {
	s, out, _ := newTest(Options{})
	s.Run("var a = 1;")
	s.Run("a = missing;")
	s.Run("print ;")
	s.ResetError()
	if _, err := s.Run("print a;"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "1\n" {
		t.Errorf("got %q", out.String())
	}
	if s.HadError.IsSet() {
		t.Errorf("ResetError did not clear HadError")
	}
}

func TestResultEcho(t *testing.T) {
	s, _, _ := newTest(Options{})

	res, err := s.Run("1 + 2;")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Expression || res.Value != runtime.Number(3) {
		t.Errorf("got %+v", res)
	}

	res, err = s.Run("var x = 1;")
	if err != nil {
		t.Fatal(err)
	}
	if res.Expression {
		t.Errorf("declaration marked for echo")
	}
}

func TestStackOverflowIsFatal(t *testing.T) {
	s, _, c := newTest(Options{MaxCallDepth: 32})
	_, err := s.Run("fun f() { f(); }\nf();")
	if !errors.Is(err, runtime.ErrStackOverflow) || !errors.Is(err, ErrRuntime) {
		t.Fatalf("got %v", err)
	}
	if len(c.Runtime) != 1 || c.Runtime[0].Message != "Stack overflow." {
		t.Errorf("got %v", c.Runtime)
	}
}

func TestPrintAST(t *testing.T) {
	var ast bytes.Buffer
	s, out, _ := newTest(Options{Printer: astprint.New(astprint.Postfix), ASTOut: &ast})
	if _, err := s.Run("print 1 + 2;"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(ast.String()); got != "(print (1 2 +))" {
		t.Errorf("got %q", got)
	}
	if out.String() != "3\n" {
		t.Errorf("got %q", out.String())
	}
}
