package interp

import (
	"fmt"

	"github.com/TheServer-lab/ironwood/value"
)

// SyntaxError wraps a lexer/parser fault that reaches the top level; it is
// always fatal (exit code 1), never caught by `try/catch`.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message) }

// RuntimeError is a type/bound fault raised by the evaluator itself —
// calling a non-function, dividing by zero, an unknown identifier, a bad
// member access, `item N of` out of range. When a `try` is active,
// `try/catch` binds its message to the catch variable; otherwise it is
// fatal.
type RuntimeError struct {
	Line    int
	Message string
}

func NewRuntimeError(line int, msg string) *RuntimeError { return &RuntimeError{Line: line, Message: msg} }

func (e *RuntimeError) Error() string { return e.Message }

// ThrowSignal is a user `throw EXPR`. It is deliberately a distinct Go
// type from the return/break/continue control-flow struct (see control.go)
// even though both are "unwind signals" in the language: throw is always
// interceptable by the nearest try/catch, while return/break/continue
// never are. Keeping them as structurally different Go types means every
// call site that must let try/catch intercept one but never the other can
// do so with a single errors.As check instead of also inspecting the
// control-flow struct's Kind field.
type ThrowSignal struct {
	Value value.Value
}

func (e *ThrowSignal) Error() string { return "uncaught throw" }
