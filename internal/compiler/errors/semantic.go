package errors

import (
	"fmt"
	"strings"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
)

// Semantic error codes (SEM200-299)
const (
	// ErrReservedFieldName indicates a field uses a name the backend reserves
	ErrReservedFieldName ErrorCode = "SEM200"
	// ErrIllegalTitleType indicates @config(isTitle: true) on a field that is not single-line text
	ErrIllegalTitleType ErrorCode = "SEM201"
	// ErrUndefinedType indicates an undefined type was referenced
	ErrUndefinedType ErrorCode = "SEM202"
	// ErrDuplicateType indicates a type name was declared twice
	ErrDuplicateType ErrorCode = "SEM203"
	// ErrAmbiguousContentType indicates a type implements more than one content interface
	ErrAmbiguousContentType ErrorCode = "SEM204"
	// ErrUnknownContentType indicates a field references a type that is not a content type
	ErrUnknownContentType ErrorCode = "SEM205"
)

// NewReservedFieldName creates a SEM200 error
func NewReservedFieldName(loc ast.SourceSpan, name string) *CompilerError {
	return newError(ErrReservedFieldName, loc, fmt.Sprintf("%s is a reserved field name", name)).
		WithSuggestion("Rename the field; system fields are added by the backend automatically")
}

// NewIllegalTitleType creates a SEM201 error
func NewIllegalTitleType(loc ast.SourceSpan, fieldName, typeName string) *CompilerError {
	return newError(ErrIllegalTitleType, loc, fmt.Sprintf("isTitle can only be set on single-line text fields, %s is %s", fieldName, typeName)).
		WithExpected("String, ID or SinglelineText").
		WithActual(typeName)
}

// NewUndefinedType creates a SEM202 error
func NewUndefinedType(loc ast.SourceSpan, name string, similar []string) *CompilerError {
	err := newError(ErrUndefinedType, loc, fmt.Sprintf("Unknown type %q", name))
	if len(similar) > 0 {
		err.WithSuggestion(fmt.Sprintf("Did you mean %s?", strings.Join(similar, ", ")))
	}
	return err
}

// NewDuplicateType creates a SEM203 error
func NewDuplicateType(loc ast.SourceSpan, name string, first ast.SourceSpan) *CompilerError {
	return newError(ErrDuplicateType, loc, fmt.Sprintf("There can be only one type named %q (first declared at %d:%d)", name, first.Line, first.Column))
}

// NewAmbiguousContentType creates a SEM204 error
func NewAmbiguousContentType(loc ast.SourceSpan, name string, interfaces []string) *CompilerError {
	return newError(ErrAmbiguousContentType, loc, fmt.Sprintf("%s implements more than one content type interface: %s", name, strings.Join(interfaces, ", "))).
		WithSuggestion("Implement exactly one of SimpleContentType, SingletonContentType or EmbeddableContentType")
}

// NewUnknownContentType creates a SEM205 error
func NewUnknownContentType(loc ast.SourceSpan, fieldName, typeName string) *CompilerError {
	return newError(ErrUnknownContentType, loc, fmt.Sprintf("field %s references %s, which is not a content type", fieldName, typeName)).
		WithSuggestion(fmt.Sprintf("Make %s implement a content type interface or turn it into an enum", typeName))
}
