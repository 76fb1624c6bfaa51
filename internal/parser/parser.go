package parser

import (
	"errors"
	"fmt"

	"github.com/ahrtr/gocontainer/set"

	"lox/internal/ast"
	"lox/internal/lexer"
	"lox/internal/utils"
)

const maxArgs = 255

// errSyntax unwinds a declaration back to the recovery point in declaration.
// The diagnostic itself has already been recorded by the time it is returned.
var errSyntax = errors.New("syntax error")

// statementStarts holds the kinds synchronize treats as a statement boundary.
var statementStarts = func() set.Interface {
	s := set.New()
	for _, t := range []lexer.TokenType{
		lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
		lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN,
	} {
		s.Add(t)
	}
	return s
}()

type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []utils.Diagnostic
}

func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, lexer.Token{Type: lexer.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

func (p *Parser) Errors() []utils.Diagnostic {
	return p.errors
}

// Parse parses every declaration up to EOF. Malformed declarations are
// reported and skipped; the rest of the input is still parsed.
func (p *Parser) Parse() []ast.Statement {
	statements := []ast.Statement{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func (p *Parser) declaration() ast.Statement {
	var (
		stmt ast.Statement
		err  error
	)
	switch {
	case p.match(lexer.CLASS):
		stmt, err = p.classDeclaration()
	case p.match(lexer.FUN):
		stmt, err = p.function("function")
	case p.match(lexer.VAR):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.VariableExpression
	if p.match(lexer.LESS) {
		super, err := p.consume(lexer.IDENTIFIER, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &ast.VariableExpression{Name: super}
	}

	if _, err := p.consume(lexer.LEFT_BRACE, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	methods := []*ast.FunctionStatement{}
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if _, err := p.consume(lexer.RIGHT_BRACE, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return &ast.ClassStatement{Name: name, Superclass: superclass, Methods: methods}, nil
}

func (p *Parser) function(kind string) (*ast.FunctionStatement, error) {
	name, err := p.consume(lexer.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}

	params := []lexer.Token{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(lexer.IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStatement{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression = &ast.EmptyExpression{}
	if p.match(lexer.EQUAL) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStatement{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.FOR):
		return p.forStatement()
	case p.match(lexer.IF):
		return p.ifStatement()
	case p.match(lexer.PRINT):
		return p.printStatement()
	case p.match(lexer.RETURN):
		return p.returnStatement()
	case p.match(lexer.WHILE):
		return p.whileStatement()
	case p.match(lexer.LEFT_BRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars a C-style for loop into an optional initializer
// followed by a while loop whose body ends with the increment.
func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		initializer ast.Statement
		err         error
	)
	switch {
	case p.match(lexer.SEMICOLON):
	case p.match(lexer.VAR):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(lexer.SEMICOLON) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(lexer.RIGHT_PAREN) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStatement{Statements: []ast.Statement{
			body,
			&ast.ExpressionStatement{Expression: increment},
		}}
	}
	if condition == nil {
		condition = &ast.LiteralExpression{Value: lexer.BoolLit(true)}
	}
	body = &ast.WhileStatement{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStatement{Statements: []ast.Statement{initializer, body}}
	}
	return body, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(lexer.ELSE) {
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &ast.IfStatement{Condition: condition, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Expression: value}, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var (
		value ast.Expression = &ast.EmptyExpression{}
		err   error
	)
	if !p.check(lexer.SEMICOLON) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Keyword: keyword, Value: value}, nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Condition: condition, Body: body}, nil
}

func (p *Parser) block() ([]ast.Statement, error) {
	statements := []ast.Statement{}
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(lexer.RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

// Expressions, lowest precedence first.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *ast.VariableExpression:
			return &ast.AssignExpression{Name: target.Name, Value: value}, nil
		case *ast.GetExpression:
			return &ast.SetExpression{Object: target.Object, Name: target.Name, Value: value}, nil
		}
		// Reported, but the parser is not confused: no need to synchronize.
		p.errorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	return p.logical(p.and, lexer.OR)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.logical(p.equality, lexer.AND)
}

func (p *Parser) logical(operand func() (ast.Expression, error), op lexer.TokenType) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(op) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binary(p.comparison, lexer.BANG_EQUAL, lexer.EQUAL_EQUAL)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binary(p.term, lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binary(p.factor, lexer.MINUS, lexer.PLUS)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binary(p.unary, lexer.SLASH, lexer.STAR)
}

// binary parses a left-associative chain of operand (op operand)*.
func (p *Parser) binary(operand func() (ast.Expression, error), ops ...lexer.TokenType) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(lexer.BANG, lexer.MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: operator, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(lexer.LEFT_PAREN):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(lexer.DOT):
			name, err := p.consume(lexer.IDENTIFIER, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.GetExpression{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	arguments := []ast.Expression{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(arguments) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	paren, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.CallExpression{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(lexer.FALSE):
		return &ast.LiteralExpression{Value: lexer.BoolLit(false)}, nil
	case p.match(lexer.TRUE):
		return &ast.LiteralExpression{Value: lexer.BoolLit(true)}, nil
	case p.match(lexer.NIL):
		return &ast.LiteralExpression{Value: lexer.NilLit()}, nil
	case p.match(lexer.NUMBER, lexer.STRING):
		return &ast.LiteralExpression{Value: p.previous().Literal}, nil
	case p.match(lexer.SUPER):
		keyword := p.previous()
		if _, err := p.consume(lexer.DOT, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(lexer.IDENTIFIER, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &ast.SuperExpression{Keyword: keyword, Method: method}, nil
	case p.match(lexer.THIS):
		return &ast.ThisExpression{Keyword: p.previous()}, nil
	case p.match(lexer.IDENTIFIER):
		return &ast.VariableExpression{Name: p.previous()}, nil
	case p.match(lexer.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.GroupingExpression{Expression: expr}, nil
	}
	return nil, p.fail(p.peek(), "Expect expression.")
}

// synchronize discards tokens until the start of the next statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		if statementStarts.Contains(p.peek().Type) {
			return
		}
		p.advance()
	}
}

func (p *Parser) consume(t lexer.TokenType, msg string) (lexer.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.fail(p.peek(), msg)
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) fail(tok lexer.Token, msg string) error {
	p.errorAt(tok, msg)
	return errSyntax
}

func (p *Parser) errorAt(tok lexer.Token, msg string) {
	p.errors = append(p.errors, utils.Diagnostic{Line: tok.Line, Where: tok.Where(), Message: msg})
}
