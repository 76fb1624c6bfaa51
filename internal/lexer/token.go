package lexer

import (
	"fmt"
	"math"
	"strconv"
)

type TokenType int

const (
	EOF TokenType = iota

	// single-character tokens
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// one or two character tokens
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// literals
	IDENTIFIER
	STRING
	NUMBER

	// keywords
	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

var tokenNames = [...]string{
	EOF:           "EOF",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	CLASS:         "CLASS",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	FUN:           "FUN",
	FOR:           "FOR",
	IF:            "IF",
	NIL:           "NIL",
	OR:            "OR",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	VAR:           "VAR",
	WHILE:         "WHILE",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdent returns the keyword kind for ident, or IDENTIFIER.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}

type LiteralKind int

const (
	NoLiteral LiteralKind = iota
	StringLiteral
	NumberLiteral
	BoolLiteral
	NilLiteral
)

// Literal is the value carried by a literal token or literal expression.
type Literal struct {
	Kind   LiteralKind
	Str    string
	Number float64
	Bool   bool
}

func StringLit(s string) Literal  { return Literal{Kind: StringLiteral, Str: s} }
func NumberLit(n float64) Literal { return Literal{Kind: NumberLiteral, Number: n} }
func BoolLit(b bool) Literal      { return Literal{Kind: BoolLiteral, Bool: b} }
func NilLit() Literal             { return Literal{Kind: NilLiteral} }

func (l Literal) IsZero() bool { return l.Kind == NoLiteral }

func (l Literal) String() string {
	switch l.Kind {
	case StringLiteral:
		return l.Str
	case NumberLiteral:
		return FormatNumber(l.Number)
	case BoolLiteral:
		return strconv.FormatBool(l.Bool)
	case NilLiteral:
		return "nil"
	}
	return ""
}

// FormatNumber renders n in its shortest decimal form, so 3.0 prints as "3".
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal Literal
	Line    int
}

func (t Token) String() string {
	if t.Literal.IsZero() {
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, t.Literal)
}

// Where formats the location part of a diagnostic pointing at t.
func (t Token) Where() string {
	if t.Type == EOF {
		return "at end"
	}
	return fmt.Sprintf("at '%s'", t.Lexeme)
}
