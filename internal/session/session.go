package session

import (
	"errors"
	"io"
	"os"

	"github.com/tevino/abool/v2"

	"lox/internal/ast"
	"lox/internal/astprint"
	"lox/internal/interpreter"
	"lox/internal/lexer"
	"lox/internal/parser"
	"lox/internal/resolver"
	"lox/internal/runtime"
	"lox/internal/utils"
)

var (
	// ErrStatic means a scan, parse or resolve error was reported and
	// nothing was executed.
	ErrStatic = errors.New("static error")
	// ErrRuntime means execution stopped on a reported runtime error.
	ErrRuntime = errors.New("runtime error")
)

type Options struct {
	Stdout       io.Writer
	Reporter     utils.Reporter
	MaxCallDepth int
	// Printer, when set, dumps each unit's AST to ASTOut before it runs.
	Printer *astprint.Printer
	ASTOut  io.Writer
}

// Result describes a successfully executed unit.
type Result struct {
	Value runtime.Value
	// Expression is set when the unit ended with an expression statement,
	// whose value a REPL echoes.
	Expression bool
}

// Session runs source units against one persistent interpreter.
type Session struct {
	interp   *interpreter.Interpreter
	reporter utils.Reporter
	printer  *astprint.Printer
	astOut   io.Writer

	HadError        *abool.AtomicBool
	HadRuntimeError *abool.AtomicBool
}

func New(opt Options) *Session {
	if opt.Reporter == nil {
		opt.Reporter = utils.NewConsoleReporter(os.Stderr, true)
	}
	if opt.ASTOut == nil {
		opt.ASTOut = os.Stdout
	}
	return &Session{
		interp: interpreter.New(&interpreter.Options{
			Stdout:       opt.Stdout,
			MaxCallDepth: opt.MaxCallDepth,
		}),
		reporter:        opt.Reporter,
		printer:         opt.Printer,
		astOut:          opt.ASTOut,
		HadError:        abool.New(),
		HadRuntimeError: abool.New(),
	}
}

func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// ResetError clears HadError so a REPL can accept the next line.
func (s *Session) ResetError() {
	s.HadError.UnSet()
}

// Run scans, parses, resolves and executes source. Any static error is
// reported and suppresses execution of the whole unit. A stack overflow is
// returned as runtime.ErrStackOverflow joined with ErrRuntime.
func (s *Session) Run(source string) (Result, error) {
	lx := lexer.New(source)
	tokens := lx.ScanTokens()
	p := parser.New(tokens)
	statements := p.Parse()

	diags := append(lx.Errors(), p.Errors()...)
	if len(diags) > 0 {
		return s.static(diags)
	}

	if diags := resolver.New(s.interp).Resolve(statements); len(diags) > 0 {
		return s.static(diags)
	}

	if s.printer != nil {
		if err := s.printer.Fprint(s.astOut, statements); err != nil {
			return Result{}, err
		}
	}

	value, err := s.interp.Interpret(statements)
	if err != nil {
		return Result{}, s.runtimeError(err)
	}
	return Result{Value: value, Expression: endsWithExpression(statements)}, nil
}

func (s *Session) static(diags []utils.Diagnostic) (Result, error) {
	utils.Flush(s.reporter, diags)
	s.HadError.Set()
	return Result{}, ErrStatic
}

func (s *Session) runtimeError(err error) error {
	s.HadRuntimeError.Set()

	var rte *runtime.RuntimeError
	var overflow *runtime.StackOverflowError
	switch {
	case errors.As(err, &rte):
		s.reporter.ReportRuntime(rte.Token.Line, rte.Message)
	case errors.As(err, &overflow):
		s.reporter.ReportRuntime(overflow.Line, "Stack overflow.")
		return errors.Join(ErrRuntime, err)
	default:
		s.reporter.ReportRuntime(0, err.Error())
	}
	return ErrRuntime
}

func endsWithExpression(statements []ast.Statement) bool {
	if len(statements) == 0 {
		return false
	}
	_, ok := statements[len(statements)-1].(*ast.ExpressionStatement)
	return ok
}
