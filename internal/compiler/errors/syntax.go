package errors

import (
	"fmt"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	"github.com/mozaik-cms/mozaik/internal/compiler/lexer"
)

// Syntax error codes (SYN001-099)
const (
	// ErrUnexpectedToken indicates an unexpected token was encountered
	ErrUnexpectedToken ErrorCode = "SYN001"
	// ErrExpectedToken indicates a specific token was expected but not found
	ErrExpectedToken ErrorCode = "SYN002"
	// ErrUnexpectedCharacter indicates a character that cannot start a token
	ErrUnexpectedCharacter ErrorCode = "SYN003"
	// ErrUnknownDefinition indicates a top-level keyword that is not a type-system definition
	ErrUnknownDefinition ErrorCode = "SYN004"
	// ErrInvalidTypeReference indicates a malformed field or argument type
	ErrInvalidTypeReference ErrorCode = "SYN005"
	// ErrInvalidDirectiveLocation indicates an unknown location in a directive definition
	ErrInvalidDirectiveLocation ErrorCode = "SYN006"
	// ErrUnterminatedString indicates a string literal was not terminated
	ErrUnterminatedString ErrorCode = "SYN007"
	// ErrInvalidNumber indicates an invalid number literal
	ErrInvalidNumber ErrorCode = "SYN008"
	// ErrInvalidEscape indicates an invalid escape sequence in string
	ErrInvalidEscape ErrorCode = "SYN009"
	// ErrUnexpectedEOF indicates unexpected end of file
	ErrUnexpectedEOF ErrorCode = "SYN010"
)

// NewUnexpectedToken creates a SYN001 error
func NewUnexpectedToken(loc ast.SourceSpan, found, context string) *CompilerError {
	message := fmt.Sprintf("Unexpected %s", found)
	if context != "" {
		message = fmt.Sprintf("Unexpected %s in %s", found, context)
	}

	return newError(ErrUnexpectedToken, loc, message)
}

// NewExpectedToken creates a SYN002 error
func NewExpectedToken(loc ast.SourceSpan, expected, found string) *CompilerError {
	return newError(ErrExpectedToken, loc, fmt.Sprintf("Expected %s, found %s", expected, found)).
		WithExpected(expected).
		WithActual(found)
}

// NewUnexpectedCharacter creates a SYN003 error
func NewUnexpectedCharacter(loc ast.SourceSpan, message string) *CompilerError {
	return newError(ErrUnexpectedCharacter, loc, message)
}

// NewUnknownDefinition creates a SYN004 error
func NewUnknownDefinition(loc ast.SourceSpan, keyword string) *CompilerError {
	return newError(ErrUnknownDefinition, loc, fmt.Sprintf("Unexpected %s, expected a type-system definition", keyword)).
		WithSuggestion("Schema files may only contain type, enum, interface, union, input, scalar and directive definitions").
		WithExamples(
			"type Article implements SimpleContentType { title: String }",
			"enum Color { RED GREEN }",
		)
}

// NewInvalidTypeReference creates a SYN005 error
func NewInvalidTypeReference(loc ast.SourceSpan, found string) *CompilerError {
	return newError(ErrInvalidTypeReference, loc, fmt.Sprintf("Expected a type, found %s", found)).
		WithExamples("String", "String!", "[Tag]", "[Tag]!")
}

// NewInvalidDirectiveLocation creates a SYN006 error
func NewInvalidDirectiveLocation(loc ast.SourceSpan, location string) *CompilerError {
	return newError(ErrInvalidDirectiveLocation, loc, fmt.Sprintf("Unknown directive location %q", location)).
		WithSuggestion("Use a type-system location such as OBJECT, FIELD_DEFINITION or ENUM_VALUE")
}

// NewUnterminatedString creates a SYN007 error
func NewUnterminatedString(loc ast.SourceSpan) *CompilerError {
	return newError(ErrUnterminatedString, loc, "Unterminated string literal").
		WithSuggestion("Add closing quote to string literal")
}

// NewInvalidNumber creates a SYN008 error
func NewInvalidNumber(loc ast.SourceSpan, message string) *CompilerError {
	return newError(ErrInvalidNumber, loc, message).
		WithSuggestion("Use integers (42), decimals (3.14), or scientific notation (1e10)")
}

// NewInvalidEscape creates a SYN009 error
func NewInvalidEscape(loc ast.SourceSpan, message string) *CompilerError {
	return newError(ErrInvalidEscape, loc, message).
		WithSuggestion("Use valid escape sequences: \\n, \\t, \\r, \\\\, \\\", \\uXXXX")
}

// NewUnexpectedEOF creates a SYN010 error
func NewUnexpectedEOF(loc ast.SourceSpan, context string) *CompilerError {
	message := "Unexpected end of file"
	if context != "" {
		message = fmt.Sprintf("Unexpected end of file while parsing %s", context)
	}

	return newError(ErrUnexpectedEOF, loc, message).
		WithSuggestion("Check for missing closing braces or incomplete definitions")
}

// FromLexError converts a lexical error into a syntax error
func FromLexError(e lexer.LexError) *CompilerError {
	loc := ast.SourceSpan{Line: e.Line, Column: e.Column}

	switch e.Kind {
	case lexer.LexUnterminatedString:
		return NewUnterminatedString(loc)
	case lexer.LexInvalidNumber:
		return NewInvalidNumber(loc, e.Message)
	case lexer.LexInvalidEscape:
		return NewInvalidEscape(loc, e.Message)
	default:
		return NewUnexpectedCharacter(loc, e.Message)
	}
}
