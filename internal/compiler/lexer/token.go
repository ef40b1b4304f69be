package lexer

import "fmt"

// TokenType represents the type of a token in the schema definition language
type TokenType int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenType = iota
	// TOKEN_ERROR is returned by the parser in place of a token it could not consume.
	TOKEN_ERROR

	// Punctuators
	TOKEN_BANG     // !
	TOKEN_DOLLAR   // $
	TOKEN_AMP      // &
	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_SPREAD   // ...
	TOKEN_COLON    // :
	TOKEN_EQUALS   // =
	TOKEN_AT       // @
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
	TOKEN_LBRACE   // {
	TOKEN_PIPE     // |
	TOKEN_RBRACE   // }

	// TOKEN_NAME is an identifier. Keywords such as type, enum and implements
	// are contextual and are lexed as names.
	TOKEN_NAME
	// TOKEN_INT_LITERAL is an integer literal; Literal holds the raw text.
	TOKEN_INT_LITERAL
	// TOKEN_FLOAT_LITERAL is a float literal; Literal holds the raw text.
	TOKEN_FLOAT_LITERAL
	// TOKEN_STRING_LITERAL is a "quoted" string; Literal holds the unescaped value.
	TOKEN_STRING_LITERAL
	// TOKEN_BLOCK_STRING is a """block""" string; Literal holds the dedented value.
	TOKEN_BLOCK_STRING
)

// TokenTypeNames maps token types to their display names
var TokenTypeNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ERROR:          "ERROR",
	TOKEN_BANG:           "!",
	TOKEN_DOLLAR:         "$",
	TOKEN_AMP:            "&",
	TOKEN_LPAREN:         "(",
	TOKEN_RPAREN:         ")",
	TOKEN_SPREAD:         "...",
	TOKEN_COLON:          ":",
	TOKEN_EQUALS:         "=",
	TOKEN_AT:             "@",
	TOKEN_LBRACKET:       "[",
	TOKEN_RBRACKET:       "]",
	TOKEN_LBRACE:         "{",
	TOKEN_PIPE:           "|",
	TOKEN_RBRACE:         "}",
	TOKEN_NAME:           "Name",
	TOKEN_INT_LITERAL:    "Int",
	TOKEN_FLOAT_LITERAL:  "Float",
	TOKEN_STRING_LITERAL: "String",
	TOKEN_BLOCK_STRING:   "BlockString",
}

// String returns the string representation of a TokenType
func (t TokenType) String() string {
	if name, ok := TokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", t)
}

// Token represents a single lexical token
type Token struct {
	Type    TokenType   // The type of the token
	Lexeme  string      // The raw text of the token
	Literal interface{} // The parsed value (for literals)
	Line    int         // Line number (1-indexed)
	Column  int         // Column number (1-indexed, in code points)
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s '%s' (%v) at %d:%d",
			t.Type.String(), t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s '%s' at %d:%d",
		t.Type.String(), t.Lexeme, t.Line, t.Column)
}

// Describe returns the token as it should appear in a syntax error message
func (t Token) Describe() string {
	switch t.Type {
	case TOKEN_EOF:
		return "<EOF>"
	case TOKEN_NAME:
		return fmt.Sprintf("Name %q", t.Lexeme)
	case TOKEN_STRING_LITERAL, TOKEN_BLOCK_STRING:
		return fmt.Sprintf("String %s", t.Lexeme)
	case TOKEN_INT_LITERAL, TOKEN_FLOAT_LITERAL:
		return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
	default:
		return fmt.Sprintf("%q", t.Lexeme)
	}
}

// LexErrorKind classifies lexical errors
type LexErrorKind int

const (
	// LexUnexpectedCharacter is a character that cannot start any token
	LexUnexpectedCharacter LexErrorKind = iota
	// LexUnterminatedString is a string or block string without closing quotes
	LexUnterminatedString
	// LexInvalidNumber is a malformed numeric literal
	LexInvalidNumber
	// LexInvalidEscape is a bad escape sequence inside a string
	LexInvalidEscape
)

// LexError represents an error encountered during lexical analysis
type LexError struct {
	Kind    LexErrorKind
	Message string // Error message
	Line    int    // Line number where error occurred
	Column  int    // Column number where error occurred
	Lexeme  string // The problematic text
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("Lexical error at %d:%d: %s (near '%s')",
		e.Line, e.Column, e.Message, e.Lexeme)
}
