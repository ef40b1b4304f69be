// Package lexer provides lexical analysis for Mozaik schema definition files.
// It tokenizes GraphQL-flavored SDL into a stream of tokens for the parser.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes SDL source code.
//
// Thread Safety: Lexer instances are NOT thread-safe. Each goroutine must
// create its own Lexer instance via New().
type Lexer struct {
	source  string     // Source code to tokenize
	start   int        // Start position of current token
	current int        // Current position in source
	line    int        // Current line number (1-indexed)
	column  int        // Current column number (1-indexed, code points)
	tokens  []Token    // Collected tokens
	errors  []LexError // Collected errors

	startLine   int // Line where the current token starts
	startColumn int // Column where the current token starts
}

// New creates a new Lexer for the given source code
func New(source string) *Lexer {
	return &Lexer{
		source:  strings.TrimPrefix(source, "\uFEFF"),
		start:   0,
		current: 0,
		line:    1,
		column:  1,
		tokens:  make([]Token, 0),
		errors:  make([]LexError, 0),
	}
}

// ScanTokens tokenizes the entire source and returns tokens and errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startLine = l.line
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, l.errors
}

// scanToken processes the next token.
//
//nolint:gocyclo,cyclop // Lexer dispatch function - complexity is inherent to the pattern
func (l *Lexer) scanToken() {
	c := l.advance()

	switch {
	case c == '!':
		l.addToken(TOKEN_BANG)
	case c == '$':
		l.addToken(TOKEN_DOLLAR)
	case c == '&':
		l.addToken(TOKEN_AMP)
	case c == '(':
		l.addToken(TOKEN_LPAREN)
	case c == ')':
		l.addToken(TOKEN_RPAREN)
	case c == ':':
		l.addToken(TOKEN_COLON)
	case c == '=':
		l.addToken(TOKEN_EQUALS)
	case c == '@':
		l.addToken(TOKEN_AT)
	case c == '[':
		l.addToken(TOKEN_LBRACKET)
	case c == ']':
		l.addToken(TOKEN_RBRACKET)
	case c == '{':
		l.addToken(TOKEN_LBRACE)
	case c == '|':
		l.addToken(TOKEN_PIPE)
	case c == '}':
		l.addToken(TOKEN_RBRACE)
	case c == '.':
		l.scanSpread()
	case c == '#':
		l.comment()
	case c == '"':
		if l.peek() == '"' && l.peekNext() == '"' {
			l.advance()
			l.advance()
			l.blockString()
		} else {
			l.string()
		}
	case c == ' ' || c == '\t' || c == ',':
		// Insignificant: whitespace and commas
	case c == '\r':
		// \r\n counts as one line terminator
		if l.peek() == '\n' {
			l.advance()
		}
		l.newline()
	case c == '\n':
		l.newline()
	case c == '-' || isDigit(c):
		l.number()
	case isNameStart(c):
		l.name()
	default:
		// Swallow the rest of a multi-byte rune so it is reported once
		for !l.isAtEnd() && l.peek()&0xC0 == 0x80 {
			l.advance()
		}
		l.addError(LexUnexpectedCharacter, fmt.Sprintf("Unexpected character: '%s'", l.source[l.start:l.current]))
	}
}

// scanSpread handles the ... punctuator
func (l *Lexer) scanSpread() {
	if l.peek() == '.' && l.peekNext() == '.' {
		l.advance()
		l.advance()
		l.addToken(TOKEN_SPREAD)
		return
	}
	l.addError(LexUnexpectedCharacter, "Unexpected character '.' (did you mean '...'?)")
}

// comment skips a # comment until end of line
func (l *Lexer) comment() {
	for !l.isAtEnd() && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
}

// string handles single-line string literals with escape sequences
//
//nolint:gocyclo // escape handling is a flat switch
func (l *Lexer) string() {
	value := strings.Builder{}

	for !l.isAtEnd() && l.peek() != '"' {
		c := l.peek()
		if c == '\n' || c == '\r' {
			l.addError(LexUnterminatedString, "Unterminated string")
			return
		}

		if c != '\\' {
			r, size := utf8.DecodeRuneInString(l.source[l.current:])
			for i := 0; i < size; i++ {
				l.advance()
			}
			value.WriteRune(r)
			continue
		}

		l.advance() // consume backslash
		if l.isAtEnd() {
			break
		}
		escaped := l.advance()
		switch escaped {
		case '"':
			value.WriteByte('"')
		case '\\':
			value.WriteByte('\\')
		case '/':
			value.WriteByte('/')
		case 'b':
			value.WriteByte('\b')
		case 'f':
			value.WriteByte('\f')
		case 'n':
			value.WriteByte('\n')
		case 'r':
			value.WriteByte('\r')
		case 't':
			value.WriteByte('\t')
		case 'u':
			r, ok := l.unicodeEscape()
			if !ok {
				return
			}
			value.WriteRune(r)
		default:
			l.addError(LexInvalidEscape, fmt.Sprintf("Invalid character escape sequence: '\\%c'", escaped))
			return
		}
	}

	if l.isAtEnd() {
		l.addError(LexUnterminatedString, "Unterminated string")
		return
	}

	// Consume closing "
	l.advance()
	l.addTokenWithLiteral(TOKEN_STRING_LITERAL, value.String())
}

// unicodeEscape reads the four hex digits after \u
func (l *Lexer) unicodeEscape() (rune, bool) {
	if l.current+4 > len(l.source) {
		l.addError(LexInvalidEscape, "Invalid Unicode escape sequence")
		return 0, false
	}
	hex := l.source[l.current : l.current+4]
	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		l.addError(LexInvalidEscape, fmt.Sprintf("Invalid Unicode escape sequence: '\\u%s'", hex))
		return 0, false
	}
	for i := 0; i < 4; i++ {
		l.advance()
	}
	return rune(code), true
}

// blockString handles """block strings"""; the opening quotes are consumed
func (l *Lexer) blockString() {
	raw := strings.Builder{}

	for !l.isAtEnd() {
		if l.peek() == '"' && l.peekNext() == '"' && l.peekNextNext() == '"' {
			l.advance()
			l.advance()
			l.advance()
			l.addTokenWithLiteral(TOKEN_BLOCK_STRING, BlockStringValue(raw.String()))
			return
		}

		// \""" is the only escape inside a block string
		if l.peek() == '\\' && strings.HasPrefix(l.source[l.current+1:], `"""`) {
			l.advance()
			l.advance()
			l.advance()
			l.advance()
			raw.WriteString(`"""`)
			continue
		}

		c := l.advance()
		switch c {
		case '\r':
			if l.peek() == '\n' {
				l.advance()
			}
			raw.WriteByte('\n')
			l.newline()
		case '\n':
			raw.WriteByte('\n')
			l.newline()
		default:
			raw.WriteByte(c)
		}
	}

	l.addError(LexUnterminatedString, "Unterminated block string")
}

// BlockStringValue applies the GraphQL block string algorithm: common
// indentation is removed from every line but the first and leading and
// trailing blank lines are dropped.
func BlockStringValue(raw string) string {
	lines := strings.Split(raw, "\n")

	common := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		indent := leadingWhitespace(line)
		if indent == len(line) {
			continue
		}
		if common == -1 || indent < common {
			common = indent
		}
	}

	if common > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= common {
				lines[i] = lines[i][common:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && strings.TrimLeft(lines[0], " \t") == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimLeft(lines[len(lines)-1], " \t") == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

func leadingWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// number handles integer and float literals, including a leading minus sign
func (l *Lexer) number() {
	// The first character (digit or '-') is already consumed
	first := l.source[l.start]
	if first == '-' {
		if !isDigit(l.peek()) {
			l.addError(LexInvalidNumber, "Invalid number, expected digit after '-'")
			return
		}
		first = l.advance()
	}

	if first == '0' && isDigit(l.peek()) {
		l.addError(LexInvalidNumber, "Invalid number, unexpected digit after 0")
		return
	}
	for isDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.advance()
		if !isDigit(l.peek()) {
			l.addError(LexInvalidNumber, "Invalid number, expected digit after '.'")
			return
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			l.addError(LexInvalidNumber, "Invalid number, expected digit after exponent")
			return
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == '.' || isNameStart(l.peek()) {
		l.advance()
		l.addError(LexInvalidNumber, fmt.Sprintf("Invalid number: %s", l.source[l.start:l.current]))
		return
	}

	lexeme := l.source[l.start:l.current]
	if isFloat {
		l.addTokenWithLiteral(TOKEN_FLOAT_LITERAL, lexeme)
	} else {
		l.addTokenWithLiteral(TOKEN_INT_LITERAL, lexeme)
	}
}

// name handles identifiers
func (l *Lexer) name() {
	for isNameContinue(l.peek()) {
		l.advance()
	}
	l.addToken(TOKEN_NAME)
}

// Helper methods

// isAtEnd checks if we've reached the end of the source
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance consumes and returns the current byte. Columns only move on the
// first byte of a UTF-8 sequence so they count code points.
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	c := l.source[l.current]
	l.current++
	if c&0xC0 != 0x80 {
		l.column++
	}
	return c
}

// newline records a consumed line terminator
func (l *Lexer) newline() {
	l.line++
	l.column = 1
}

// peek returns the current character without consuming it
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the next character without consuming
func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// peekNextNext returns the character two positions ahead
func (l *Lexer) peekNextNext() byte {
	if l.current+2 >= len(l.source) {
		return 0
	}
	return l.source[l.current+2]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

// addToken adds a token with the current lexeme
func (l *Lexer) addToken(tokenType TokenType) {
	l.addTokenWithLiteral(tokenType, nil)
}

// addTokenWithLiteral adds a token with a literal value
func (l *Lexer) addTokenWithLiteral(tokenType TokenType, literal interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  l.source[l.start:l.current],
		Literal: literal,
		Line:    l.startLine,
		Column:  l.startColumn,
	})
}

// addError records a lexical error at the start of the current token
func (l *Lexer) addError(kind LexErrorKind, message string) {
	lexeme := ""
	if l.start < len(l.source) {
		end := l.current
		if end > l.start+20 {
			end = l.start + 20
		}
		lexeme = l.source[l.start:end]
	}

	l.errors = append(l.errors, LexError{
		Kind:    kind,
		Message: message,
		Line:    l.startLine,
		Column:  l.startColumn,
		Lexeme:  lexeme,
	})
}

// IsValidName checks if a string is a valid SDL name
func IsValidName(s string) bool {
	if s == "" || !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameContinue(s[i]) {
			return false
		}
	}
	return true
}
