// Package parser implements the schema parser, transforming token streams
// into an ast.Document. It uses recursive descent with panic mode error
// recovery so every malformed definition is reported in one pass.
package parser

import (
	"fmt"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/compiler/lexer"
)

// ParseError represents an error encountered during parsing
type ParseError struct {
	Code     cerrors.ErrorCode
	Message  string
	Location ast.SourceSpan
	Token    lexer.Token
	Expected string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %d:%d: %s (near '%s')",
		e.Location.Line, e.Location.Column, e.Message, e.Token.Lexeme)
}

// NewParseError creates a new parse error
func NewParseError(code cerrors.ErrorCode, message string, token lexer.Token) ParseError {
	return ParseError{
		Code:     code,
		Message:  message,
		Location: ast.TokenLocation(token),
		Token:    token,
	}
}

// CompilerError converts the parse error into a structured compiler error
func (e ParseError) CompilerError() *cerrors.CompilerError {
	found := e.Token.Describe()

	switch e.Code {
	case cerrors.ErrUnexpectedEOF:
		return cerrors.NewUnexpectedEOF(e.Location, e.Message)
	case cerrors.ErrExpectedToken:
		return cerrors.NewExpectedToken(e.Location, e.Expected, found)
	case cerrors.ErrUnknownDefinition:
		return cerrors.NewUnknownDefinition(e.Location, found)
	case cerrors.ErrInvalidTypeReference:
		return cerrors.NewInvalidTypeReference(e.Location, found)
	case cerrors.ErrInvalidDirectiveLocation:
		return cerrors.NewInvalidDirectiveLocation(e.Location, e.Token.Lexeme)
	default:
		return cerrors.NewUnexpectedToken(e.Location, found, e.Message)
	}
}
