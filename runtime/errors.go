package runtime

import (
	"fmt"

	"signa/ast"
)

// ErrorKind classifies why a program was rejected or stopped. Each kind
// maps to a process exit code.
type ErrorKind int

const (
	Success ErrorKind = iota
	ParseError
	StaticCheckError
	UninitializedVariable
	DivisionByZero
	FailedInputRead
)

func (k ErrorKind) ExitCode() int {
	return int(k)
}

func (k ErrorKind) String() string {
	switch k {
	case Success:
		return "success"
	case ParseError:
		return "parsing error"
	case StaticCheckError:
		return "static checking error"
	case UninitializedVariable:
		return "uninitialized variable error"
	case DivisionByZero:
		return "division by zero error"
	case FailedInputRead:
		return "failed input read"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a failure tied to a place in the source.
type Error struct {
	Kind    ErrorKind
	Span    ast.Span
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Span, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

func Errorf(kind ErrorKind, span ast.Span, format string, a ...interface{}) *Error {
	return &Error{kind, span, fmt.Sprintf(format, a...)}
}
