package diagnostics

import (
	"fmt"

	"github.com/funvibe/levelc/internal/token"
)

type ErrorCode string

const (
	// Internal
	ErrL000 ErrorCode = "L000" // internal pipeline error
	// Function blocks
	ErrL001 ErrorCode = "L001" // unterminated function block
	ErrL002 ErrorCode = "L002" // malformed function block
	// Inlining
	ErrL003 ErrorCode = "L003" // arity mismatch at call site
	ErrL004 ErrorCode = "L004" // recursive inlining
)

var errorTemplates = map[ErrorCode]string{
	ErrL000: "%s",
	ErrL001: "unterminated function block: %q has no matching 'end'",
	ErrL002: "malformed function block: %s: %q",
	ErrL003: "arity mismatch calling %s: %s: %q",
	ErrL004: "recursive inlining of %s: %q",
}

// Names are the descriptive kinds used in messages and logs.
var Names = map[ErrorCode]string{
	ErrL000: "InternalError",
	ErrL001: "UnterminatedFunctionBlock",
	ErrL002: "MalformedFunctionBlock",
	ErrL003: "ArityMismatch",
	ErrL004: "RecursiveInline",
}

// DiagnosticError is a source-level error tied to a statement position.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError formats the template for code with args.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	template, ok := errorTemplates[code]
	if !ok {
		template = "unknown error"
	}
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(template, args...),
	}
}

func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: [%s] %s", file, e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// Kind returns the descriptive name of the error code.
func (e *DiagnosticError) Kind() string {
	if name, ok := Names[e.Code]; ok {
		return name
	}
	return string(e.Code)
}
