package errors

import (
	"fmt"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
)

// Type error codes (TYP100-199)
const (
	// ErrTypeMismatch indicates a directive argument literal does not coerce to the expected type.
	ErrTypeMismatch ErrorCode = "TYP100"
	// ErrNestedList indicates a list type nested inside another list type.
	ErrNestedList ErrorCode = "TYP101"
	// ErrUnknownTypeKind indicates a type reference node the compiler cannot handle.
	ErrUnknownTypeKind ErrorCode = "TYP102"
)

// NewTypeMismatch creates a TYP100 error at the argument value location
func NewTypeMismatch(loc ast.SourceSpan, expected, actual string) *CompilerError {
	return newError(ErrTypeMismatch, loc, fmt.Sprintf("was expecting %s", expected)).
		WithExpected(expected).
		WithActual(actual)
}

// NewNestedList creates a TYP101 error at the inner list location
func NewNestedList(loc ast.SourceSpan) *CompilerError {
	return newError(ErrNestedList, loc, "list of lists are not allowed").
		WithSuggestion("Wrap the inner list in its own content type").
		WithExamples("tags: [Tag]")
}

// NewUnknownTypeKind creates a TYP102 error
func NewUnknownTypeKind(loc ast.SourceSpan, kind string) *CompilerError {
	return newError(ErrUnknownTypeKind, loc, fmt.Sprintf("unknown field type: %s", kind))
}
