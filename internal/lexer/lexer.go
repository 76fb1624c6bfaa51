package lexer

import (
	"strconv"
	"unicode/utf8"

	"lox/internal/utils"
)

// Lexer turns source text into a flat token slice. It never stops on a bad
// character; problems are recorded and scanning resumes at the next byte.
type Lexer struct {
	source  string
	tokens  []Token
	errors  []utils.Diagnostic
	start   int
	current int
	line    int
}

func New(source string) *Lexer {
	return &Lexer{source: source, line: 1}
}

func (l *Lexer) Errors() []utils.Diagnostic {
	return l.errors
}

// ScanTokens scans the whole source. The result always ends with one EOF token.
func (l *Lexer) ScanTokens() []Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line})
	return l.tokens
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.addToken(LEFT_PAREN)
	case ')':
		l.addToken(RIGHT_PAREN)
	case '{':
		l.addToken(LEFT_BRACE)
	case '}':
		l.addToken(RIGHT_BRACE)
	case ',':
		l.addToken(COMMA)
	case '.':
		l.addToken(DOT)
	case '-':
		l.addToken(MINUS)
	case '+':
		l.addToken(PLUS)
	case ';':
		l.addToken(SEMICOLON)
	case '*':
		l.addToken(STAR)
	case '!':
		l.addToken(l.either('=', BANG_EQUAL, BANG))
	case '=':
		l.addToken(l.either('=', EQUAL_EQUAL, EQUAL))
	case '<':
		l.addToken(l.either('=', LESS_EQUAL, LESS))
	case '>':
		l.addToken(l.either('=', GREATER_EQUAL, GREATER))
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else {
			l.addToken(SLASH)
		}
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	case '"':
		l.scanString()
	default:
		switch {
		case isDigit(c):
			l.scanNumber()
		case isAlpha(c):
			l.scanIdentifier()
		default:
			// skip the rest of a multi-byte character so it is reported once
			_, size := utf8.DecodeRuneInString(l.source[l.start:])
			l.current = l.start + size
			l.error("Unexpected character.")
		}
	}
}

func (l *Lexer) scanString() {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.isAtEnd() {
		l.error("Unterminated string.")
		return
	}

	// closing quote
	l.advance()
	value := l.source[l.start+1 : l.current-1]
	l.addLiteral(STRING, StringLit(value))
}

func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	value, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
	if err != nil {
		l.error("Invalid number.")
		return
	}
	l.addLiteral(NUMBER, NumberLit(value))
}

func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addToken(LookupIdent(l.source[l.start:l.current]))
}

func (l *Lexer) either(expected byte, two, one TokenType) TokenType {
	if l.match(expected) {
		return two
	}
	return one
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) addToken(t TokenType) {
	l.addLiteral(t, Literal{})
}

func (l *Lexer) addLiteral(t TokenType, lit Literal) {
	l.tokens = append(l.tokens, Token{
		Type:    t,
		Lexeme:  l.source[l.start:l.current],
		Literal: lit,
		Line:    l.line,
	})
}

func (l *Lexer) error(msg string) {
	l.errors = append(l.errors, utils.Diagnostic{Line: l.line, Message: msg})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
