package runtime

import (
	"errors"
	"fmt"

	"lox/internal/lexer"
)

// ErrStackOverflow is returned when calls nest deeper than the configured
// limit. It is fatal and deliberately not a *RuntimeError.
var ErrStackOverflow = errors.New("stack overflow")

// RuntimeError aborts the current top-level unit of execution.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Message)
}

func NewRuntimeError(tok lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// StackOverflowError records where the call depth limit was hit.
type StackOverflowError struct {
	Line int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, ErrStackOverflow)
}

func (e *StackOverflowError) Unwrap() error { return ErrStackOverflow }
