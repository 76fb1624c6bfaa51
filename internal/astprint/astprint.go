package astprint

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"lox/internal/ast"
	"lox/internal/lexer"
)

type Strategy int

const (
	Prefix Strategy = iota
	Infix
	Postfix
)

var strategyNames = map[string]Strategy{
	"prefix":  Prefix,
	"infix":   Infix,
	"postfix": Postfix,
}

func (s Strategy) String() string {
	for name, v := range strategyNames {
		if v == s {
			return name
		}
	}
	return "unknown"
}

// ParseStrategy maps a strategy name to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s, ok := strategyNames[strings.ToLower(name)]
	if !ok {
		return Prefix, fmt.Errorf("unknown AST print strategy %q (want prefix, infix or postfix)", name)
	}
	return s, nil
}

// Printer renders statements as parenthesized text. Only binary and logical
// operators move with the strategy; every other node prints in prefix form.
type Printer struct {
	Strategy Strategy
}

func New(s Strategy) *Printer {
	return &Printer{Strategy: s}
}

// Fprint writes one line per top-level statement.
func (p *Printer) Fprint(w io.Writer, statements []ast.Statement) error {
	for _, stmt := range statements {
		if _, err := fmt.Fprintln(w, p.Statement(stmt)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) Statement(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return p.block("block", s.Statements)
	case *ast.ClassStatement:
		var sb strings.Builder
		sb.WriteString("(class ")
		sb.WriteString(s.Name.Lexeme)
		if s.Superclass != nil {
			sb.WriteString(" < ")
			sb.WriteString(s.Superclass.Name.Lexeme)
		}
		for _, m := range s.Methods {
			sb.WriteByte(' ')
			sb.WriteString(p.Statement(m))
		}
		sb.WriteByte(')')
		return sb.String()
	case *ast.ExpressionStatement:
		return p.parenthesize(";", s.Expression)
	case *ast.FunctionStatement:
		params := make([]string, len(s.Params))
		for i, param := range s.Params {
			params[i] = param.Lexeme
		}
		return p.block(fmt.Sprintf("fun %s(%s)", s.Name.Lexeme, strings.Join(params, " ")), s.Body)
	case *ast.IfStatement:
		if s.Else == nil {
			return fmt.Sprintf("(if %s %s)", p.Expression(s.Condition), p.Statement(s.Then))
		}
		return fmt.Sprintf("(if-else %s %s %s)", p.Expression(s.Condition), p.Statement(s.Then), p.Statement(s.Else))
	case *ast.PrintStatement:
		return p.parenthesize("print", s.Expression)
	case *ast.ReturnStatement:
		if _, empty := s.Value.(*ast.EmptyExpression); empty {
			return "(return)"
		}
		return p.parenthesize("return", s.Value)
	case *ast.VarStatement:
		if _, empty := s.Initializer.(*ast.EmptyExpression); empty {
			return fmt.Sprintf("(var %s)", s.Name.Lexeme)
		}
		return fmt.Sprintf("(var %s = %s)", s.Name.Lexeme, p.Expression(s.Initializer))
	case *ast.WhileStatement:
		return fmt.Sprintf("(while %s %s)", p.Expression(s.Condition), p.Statement(s.Body))
	}
	return fmt.Sprintf("(? %T)", stmt)
}

func (p *Printer) Expression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.AssignExpression:
		return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, p.Expression(e.Value))
	case *ast.BinaryExpression:
		return p.operator(e.Operator, e.Left, e.Right)
	case *ast.LogicalExpression:
		return p.operator(e.Operator, e.Left, e.Right)
	case *ast.UnaryExpression:
		return p.parenthesize(e.Operator.Lexeme, e.Right)
	case *ast.CallExpression:
		return p.parenthesize("call", append([]ast.Expression{e.Callee}, e.Arguments...)...)
	case *ast.GetExpression:
		return fmt.Sprintf("(. %s %s)", p.Expression(e.Object), e.Name.Lexeme)
	case *ast.SetExpression:
		return fmt.Sprintf("(= %s %s %s)", p.Expression(e.Object), e.Name.Lexeme, p.Expression(e.Value))
	case *ast.GroupingExpression:
		return p.parenthesize("group", e.Expression)
	case *ast.LiteralExpression:
		return literal(e.Value)
	case *ast.VariableExpression:
		return e.Name.Lexeme
	case *ast.ThisExpression:
		return "this"
	case *ast.SuperExpression:
		return fmt.Sprintf("(super %s)", e.Method.Lexeme)
	case *ast.EmptyExpression:
		return "nil"
	}
	return fmt.Sprintf("(? %T)", expr)
}

func (p *Printer) operator(op lexer.Token, left, right ast.Expression) string {
	switch p.Strategy {
	case Infix:
		return fmt.Sprintf("(%s %s %s)", p.Expression(left), op.Lexeme, p.Expression(right))
	case Postfix:
		return fmt.Sprintf("(%s %s %s)", p.Expression(left), p.Expression(right), op.Lexeme)
	}
	return p.parenthesize(op.Lexeme, left, right)
}

func (p *Printer) parenthesize(name string, exprs ...ast.Expression) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(p.Expression(e))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p *Printer) block(name string, stmts []ast.Statement) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, s := range stmts {
		sb.WriteByte(' ')
		sb.WriteString(p.Statement(s))
	}
	sb.WriteByte(')')
	return sb.String()
}

func literal(lit lexer.Literal) string {
	if lit.Kind == lexer.StringLiteral {
		return strconv.Quote(lit.Str)
	}
	if lit.IsZero() {
		return "nil"
	}
	return lit.String()
}
