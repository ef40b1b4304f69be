package errors

import (
	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
)

// Validation error codes (VAL500-599)
const (
	// ErrSemanticValidation indicates a well-typed directive argument that violates a rule
	ErrSemanticValidation ErrorCode = "VAL500"
)

// NewSemanticValidation creates a VAL500 error; message is the validator's own text
func NewSemanticValidation(loc ast.SourceSpan, message string) *CompilerError {
	return newError(ErrSemanticValidation, loc, message)
}
