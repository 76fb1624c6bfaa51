package ast

import "lox/internal/lexer"

// Node is implemented by every statement and expression. Nodes are always
// handled through pointers, so a node's address is its identity: the
// resolver keys its distance table on it.
type Node interface {
	node()
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Statements

type BlockStatement struct {
	Statements []Statement
}

func (bs *BlockStatement) node()          {}
func (bs *BlockStatement) statementNode() {}

type ClassStatement struct {
	Name       lexer.Token
	Superclass *VariableExpression
	Methods    []*FunctionStatement
}

func (cs *ClassStatement) node()          {}
func (cs *ClassStatement) statementNode() {}

type ExpressionStatement struct {
	Expression Expression
}

func (es *ExpressionStatement) node()          {}
func (es *ExpressionStatement) statementNode() {}

type FunctionStatement struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Statement
}

func (fs *FunctionStatement) node()          {}
func (fs *FunctionStatement) statementNode() {}

type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement
}

func (is *IfStatement) node()          {}
func (is *IfStatement) statementNode() {}

type PrintStatement struct {
	Expression Expression
}

func (ps *PrintStatement) node()          {}
func (ps *PrintStatement) statementNode() {}

// ReturnStatement.Value is an *EmptyExpression for a bare `return;`.
type ReturnStatement struct {
	Keyword lexer.Token
	Value   Expression
}

func (rs *ReturnStatement) node()          {}
func (rs *ReturnStatement) statementNode() {}

// VarStatement.Initializer is an *EmptyExpression when none was written.
type VarStatement struct {
	Name        lexer.Token
	Initializer Expression
}

func (vs *VarStatement) node()          {}
func (vs *VarStatement) statementNode() {}

type WhileStatement struct {
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) node()          {}
func (ws *WhileStatement) statementNode() {}

// Expressions

type AssignExpression struct {
	Name  lexer.Token
	Value Expression
}

func (ae *AssignExpression) node()           {}
func (ae *AssignExpression) expressionNode() {}

type BinaryExpression struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (be *BinaryExpression) node()           {}
func (be *BinaryExpression) expressionNode() {}

type LogicalExpression struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (le *LogicalExpression) node()           {}
func (le *LogicalExpression) expressionNode() {}

type UnaryExpression struct {
	Operator lexer.Token
	Right    Expression
}

func (ue *UnaryExpression) node()           {}
func (ue *UnaryExpression) expressionNode() {}

type CallExpression struct {
	Callee    Expression
	Paren     lexer.Token
	Arguments []Expression
}

func (ce *CallExpression) node()           {}
func (ce *CallExpression) expressionNode() {}

type GetExpression struct {
	Object Expression
	Name   lexer.Token
}

func (ge *GetExpression) node()           {}
func (ge *GetExpression) expressionNode() {}

type SetExpression struct {
	Object Expression
	Name   lexer.Token
	Value  Expression
}

func (se *SetExpression) node()           {}
func (se *SetExpression) expressionNode() {}

type GroupingExpression struct {
	Expression Expression
}

func (ge *GroupingExpression) node()           {}
func (ge *GroupingExpression) expressionNode() {}

type LiteralExpression struct {
	Value lexer.Literal
}

func (le *LiteralExpression) node()           {}
func (le *LiteralExpression) expressionNode() {}

type VariableExpression struct {
	Name lexer.Token
}

func (ve *VariableExpression) node()           {}
func (ve *VariableExpression) expressionNode() {}

type ThisExpression struct {
	Keyword lexer.Token
}

func (te *ThisExpression) node()           {}
func (te *ThisExpression) expressionNode() {}

type SuperExpression struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (se *SuperExpression) node()           {}
func (se *SuperExpression) expressionNode() {}

// EmptyExpression marks an absent expression and evaluates to nil.
type EmptyExpression struct{}

func (ee *EmptyExpression) node()           {}
func (ee *EmptyExpression) expressionNode() {}
