// Package errors defines the compiler's structured errors. Every error has a
// code, a source location and optional fix hints, and renders both for the
// terminal and as JSON.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
)

// ErrorCode identifies one kind of compiler error, e.g. "SEM200"
type ErrorCode string

// ErrorCategory groups error codes by compiler phase
type ErrorCategory string

const (
	// CategorySyntax covers lexer and parser errors (SYN001-099)
	CategorySyntax ErrorCategory = "syntax"
	// CategoryType covers type reference and literal errors (TYP100-199)
	CategoryType ErrorCategory = "type"
	// CategorySemantic covers schema rule errors (SEM200-299)
	CategorySemantic ErrorCategory = "semantic"
	// CategoryValidation covers directive argument rule errors (VAL500-599)
	CategoryValidation ErrorCategory = "validation"
)

var categoryPrefixes = map[string]ErrorCategory{
	"SYN": CategorySyntax,
	"TYP": CategoryType,
	"SEM": CategorySemantic,
	"VAL": CategoryValidation,
}

// Category returns the category the code's prefix selects
func (c ErrorCode) Category() ErrorCategory {
	if len(c) >= 3 {
		if category, ok := categoryPrefixes[string(c[:3])]; ok {
			return category
		}
	}
	return ""
}

// DocumentationURL links to the page describing the code
func (c ErrorCode) DocumentationURL() string {
	return "https://docs.mozaik.io/cli/errors/" + string(c)
}

// ErrorSeverity says whether an error stops compilation
type ErrorSeverity string

const (
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
	SeverityInfo    ErrorSeverity = "info"
)

// Snippet is the part of the source shown around an error
type Snippet struct {
	// Start is the 1-indexed line number of Lines[0]
	Start int      `json:"start"`
	Lines []string `json:"lines"`
}

// CompilerError is one compiler diagnostic
type CompilerError struct {
	Code     ErrorCode      `json:"code"`
	Category ErrorCategory  `json:"category"`
	Severity ErrorSeverity  `json:"severity"`
	Message  string         `json:"message"`
	Location ast.SourceSpan `json:"location"`
	File     string         `json:"file,omitempty"`
	Snippet  *Snippet       `json:"snippet,omitempty"`

	// Expected and Actual describe a mismatch, e.g. "Int" and "StringValue"
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`

	Suggestion    string   `json:"suggestion,omitempty"`
	Examples      []string `json:"examples,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
}

func newError(code ErrorCode, loc ast.SourceSpan, message string) *CompilerError {
	return &CompilerError{
		Code:          code,
		Category:      code.Category(),
		Severity:      SeverityError,
		Message:       message,
		Location:      loc,
		Documentation: code.DocumentationURL(),
	}
}

// Error returns the compact one-line form
func (e *CompilerError) Error() string {
	return FormatCompact(e)
}

// Format returns the multi-line terminal form
func (e *CompilerError) Format() string {
	return FormatError(e)
}

// ToJSON returns the error as indented JSON
func (e *CompilerError) ToJSON() (string, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WithFile sets the file the error was found in
func (e *CompilerError) WithFile(file string) *CompilerError {
	e.File = file
	return e
}

// WithSource attaches the error line and the lines around it, taken from
// the full source split into lines. Out-of-range locations attach nothing.
func (e *CompilerError) WithSource(lines []string) *CompilerError {
	const around = 1

	idx := e.Location.Line - 1
	if idx < 0 || idx >= len(lines) {
		return e
	}

	first := idx - around
	if first < 0 {
		first = 0
	}
	last := idx + around
	if last >= len(lines) {
		last = len(lines) - 1
	}

	snippet := make([]string, 0, last-first+1)
	for _, line := range lines[first : last+1] {
		snippet = append(snippet, strings.TrimRight(line, "\r"))
	}
	e.Snippet = &Snippet{Start: first + 1, Lines: snippet}
	return e
}

// Line returns the source line the error points at, if attached
func (e *CompilerError) Line() (string, bool) {
	if e.Snippet == nil {
		return "", false
	}
	i := e.Location.Line - e.Snippet.Start
	if i < 0 || i >= len(e.Snippet.Lines) {
		return "", false
	}
	return e.Snippet.Lines[i], true
}

func (e *CompilerError) WithExpected(expected string) *CompilerError {
	e.Expected = expected
	return e
}

func (e *CompilerError) WithActual(actual string) *CompilerError {
	e.Actual = actual
	return e
}

// WithSuggestion sets a one-sentence fix hint
func (e *CompilerError) WithSuggestion(suggestion string) *CompilerError {
	e.Suggestion = suggestion
	return e
}

// WithExamples sets snippets of valid SDL
func (e *CompilerError) WithExamples(examples ...string) *CompilerError {
	e.Examples = examples
	return e
}

// ErrorList holds every error of one compile, in source order
type ErrorList []*CompilerError

// Error returns one compact line per error
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatCompactList(el)
}

// Format returns the terminal form of every error under a summary line
func (el ErrorList) Format() string {
	return FormatErrorList(el)
}

// HasErrors reports whether any entry has error severity
func (el ErrorList) HasErrors() bool {
	for _, err := range el {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ToJSON returns all errors as an indented JSON array
func (el ErrorList) ToJSON() (string, error) {
	data, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Count returns the number of entries per severity
func (el ErrorList) Count() map[ErrorSeverity]int {
	counts := make(map[ErrorSeverity]int)
	for _, err := range el {
		counts[err.Severity]++
	}
	return counts
}

// Collect flattens err into a list: an ErrorList is returned as is, a
// wrapped *CompilerError becomes a one-element list, anything else nil.
func Collect(err error) ErrorList {
	var list ErrorList
	if stderrors.As(err, &list) {
		return list
	}
	var ce *CompilerError
	if stderrors.As(err, &ce) {
		return ErrorList{ce}
	}
	return nil
}

// HasCode reports whether err is, wraps, or contains a compiler error with the given code
func HasCode(err error, code ErrorCode) bool {
	for _, ce := range Collect(err) {
		if ce.Code == code {
			return true
		}
	}
	return false
}
