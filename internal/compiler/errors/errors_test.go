package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	"github.com/mozaik-cms/mozaik/internal/compiler/lexer"
)

func TestErrorCodeUniqueness(t *testing.T) {
	codes := make(map[ErrorCode]string)

	groups := map[string][]ErrorCode{
		"syntax": {
			ErrUnexpectedToken, ErrExpectedToken, ErrUnexpectedCharacter,
			ErrUnknownDefinition, ErrInvalidTypeReference, ErrInvalidDirectiveLocation,
			ErrUnterminatedString, ErrInvalidNumber, ErrInvalidEscape, ErrUnexpectedEOF,
		},
		"type": {ErrTypeMismatch, ErrNestedList, ErrUnknownTypeKind},
		"semantic": {
			ErrReservedFieldName, ErrIllegalTitleType, ErrUndefinedType,
			ErrDuplicateType, ErrAmbiguousContentType, ErrUnknownContentType,
		},
		"validation": {ErrSemanticValidation},
	}

	prefixes := map[string]string{
		"syntax":     "SYN",
		"type":       "TYP",
		"semantic":   "SEM",
		"validation": "VAL",
	}

	for group, list := range groups {
		for _, code := range list {
			if prev, exists := codes[code]; exists {
				t.Errorf("Duplicate error code %s (previously used for %s)", code, prev)
			}
			codes[code] = group

			if !strings.HasPrefix(string(code), prefixes[group]) {
				t.Errorf("Code %s should start with %s", code, prefixes[group])
			}
		}
	}
}

func TestTypeMismatchMessage(t *testing.T) {
	loc := ast.SourceSpan{Line: 3, Column: 39}
	err := NewTypeMismatch(loc, "Int", "StringValue")

	if err.Message != "was expecting Int" {
		t.Errorf("Expected 'was expecting Int', got %q", err.Message)
	}
	if err.Location != loc {
		t.Errorf("Expected location %v, got %v", loc, err.Location)
	}
	if err.Expected != "Int" || err.Actual != "StringValue" {
		t.Errorf("Expected/Actual not set: %q / %q", err.Expected, err.Actual)
	}
}

func TestErrorJSONSerialization(t *testing.T) {
	loc := ast.SourceSpan{Line: 10, Column: 5}
	err := NewTypeMismatch(loc, "Float", "StringValue")

	jsonStr, jsonErr := err.ToJSON()
	if jsonErr != nil {
		t.Fatalf("Failed to serialize error to JSON: %v", jsonErr)
	}

	var parsed CompilerError
	if unmarshalErr := json.Unmarshal([]byte(jsonStr), &parsed); unmarshalErr != nil {
		t.Fatalf("Failed to parse error JSON: %v", unmarshalErr)
	}

	if parsed.Code != ErrTypeMismatch {
		t.Errorf("Expected code %s, got %s", ErrTypeMismatch, parsed.Code)
	}
	if parsed.Category != CategoryType {
		t.Errorf("Expected category %s, got %s", CategoryType, parsed.Category)
	}
	if parsed.Location.Line != 10 || parsed.Location.Column != 5 {
		t.Errorf("Expected location 10:5, got %d:%d", parsed.Location.Line, parsed.Location.Column)
	}
	if !strings.Contains(jsonStr, `"line": 10`) {
		t.Errorf("JSON should use lowercase location keys: %s", jsonStr)
	}
}

func TestErrorFormatting(t *testing.T) {
	loc := ast.SourceSpan{Line: 2, Column: 3}
	err := NewReservedFieldName(loc, "slug").
		WithFile("mozaik-schema.graphql").
		WithSource([]string{
			"type Article implements SimpleContentType {",
			"  slug: String",
			"}",
		})

	formatted := err.Format()

	for _, want := range []string{
		"Semantic Error",
		"SEM200",
		"mozaik-schema.graphql",
		"[SEM200] at mozaik-schema.graphql:2:3",
		"    2 |   slug: String\n      |   ^\n",
		"slug is a reserved field name",
		"Hint: Rename the field",
		"https://docs.mozaik.io/cli/errors/SEM200",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Formatted error should contain %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := NewSemanticValidation(ast.SourceSpan{Line: 3, Column: 47}, "max should be equal or greater than min")

	expected := "<source>:3:47: error: max should be equal or greater than min [VAL500]"
	if got := err.Error(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestWithSourceOnFirstLine(t *testing.T) {
	err := NewUnexpectedEOF(ast.SourceSpan{Line: 1, Column: 5}, "").
		WithSource([]string{"type"})

	if err.Snippet == nil || err.Snippet.Start != 1 || len(err.Snippet.Lines) != 1 {
		t.Fatalf("Expected a one-line snippet starting at line 1, got %+v", err.Snippet)
	}
	if line, ok := err.Line(); !ok || line != "type" {
		t.Errorf("Expected error line 'type', got %q", line)
	}

	// Out-of-range lines attach nothing
	other := NewUnexpectedEOF(ast.SourceSpan{Line: 9, Column: 1}, "").WithSource([]string{"x"})
	if other.Snippet != nil {
		t.Error("Expected no snippet for out-of-range line")
	}
	if _, ok := other.Line(); ok {
		t.Error("Expected no error line without a snippet")
	}
}

func TestErrorListFormatting(t *testing.T) {
	errors := ErrorList{
		NewTypeMismatch(ast.SourceSpan{Line: 5, Column: 10}, "Int", "StringValue"),
		NewUndefinedType(ast.SourceSpan{Line: 12, Column: 3}, "Autor", []string{"Author"}),
	}

	formatted := errors.Format()

	if !strings.Contains(formatted, "Compilation failed with 2 error(s)\n") {
		t.Error("Formatted error list should contain error count")
	}
	if !strings.Contains(formatted, "Type Error") {
		t.Error("Formatted error list should contain first error")
	}
	if !strings.Contains(formatted, "Did you mean Author?") {
		t.Error("Formatted error list should contain the suggestion")
	}

	compact := errors.Error()
	if strings.Count(compact, "\n") != 1 {
		t.Errorf("Expected two compact lines, got %q", compact)
	}
	if !strings.HasPrefix(compact, "<source>:5:10: error: was expecting Int [TYP100]") {
		t.Errorf("Unexpected compact form %q", compact)
	}
}

func TestErrorListHasErrors(t *testing.T) {
	list := ErrorList{NewNestedList(ast.SourceSpan{Line: 1, Column: 1})}
	if !list.HasErrors() {
		t.Error("Expected HasErrors() to return true when list contains errors")
	}

	var empty ErrorList
	if empty.HasErrors() {
		t.Error("Expected HasErrors() to return false for empty list")
	}
	if empty.Error() != "no errors" {
		t.Errorf("Unexpected message for empty list: %q", empty.Error())
	}
}

func TestCollectAndHasCode(t *testing.T) {
	single := NewNestedList(ast.SourceSpan{Line: 3, Column: 18})
	wrapped := fmt.Errorf("compile: %w", single)

	if !HasCode(wrapped, ErrNestedList) {
		t.Error("Expected wrapped error to carry TYP101")
	}
	if HasCode(wrapped, ErrTypeMismatch) {
		t.Error("Did not expect TYP100")
	}

	list := ErrorList{
		NewUnexpectedToken(ast.SourceSpan{Line: 1, Column: 1}, `"}"`, ""),
		NewUnexpectedEOF(ast.SourceSpan{Line: 2, Column: 1}, "type"),
	}
	if got := Collect(fmt.Errorf("parse: %w", list)); len(got) != 2 {
		t.Errorf("Expected 2 collected errors, got %d", len(got))
	}
	if !HasCode(list, ErrUnexpectedEOF) {
		t.Error("Expected list to carry SYN010")
	}

	if Collect(fmt.Errorf("plain")) != nil {
		t.Error("Expected nil for non-compiler errors")
	}
}

func TestFromLexError(t *testing.T) {
	tests := []struct {
		kind lexer.LexErrorKind
		code ErrorCode
	}{
		{lexer.LexUnexpectedCharacter, ErrUnexpectedCharacter},
		{lexer.LexUnterminatedString, ErrUnterminatedString},
		{lexer.LexInvalidNumber, ErrInvalidNumber},
		{lexer.LexInvalidEscape, ErrInvalidEscape},
	}

	for _, tt := range tests {
		err := FromLexError(lexer.LexError{Kind: tt.kind, Message: "boom", Line: 4, Column: 2})
		if err.Code != tt.code {
			t.Errorf("Kind %d: expected %s, got %s", tt.kind, tt.code, err.Code)
		}
		if err.Location.Line != 4 || err.Location.Column != 2 {
			t.Errorf("Kind %d: location not carried over", tt.kind)
		}
		if err.Category != CategorySyntax {
			t.Errorf("Kind %d: expected syntax category", tt.kind)
		}
	}
}

func TestErrorCategories(t *testing.T) {
	loc := ast.SourceSpan{Line: 1, Column: 1}
	tests := []struct {
		name     string
		err      *CompilerError
		category ErrorCategory
	}{
		{"Syntax error", NewUnexpectedToken(loc, `"}"`, ""), CategorySyntax},
		{"Type error", NewUnknownTypeKind(loc, "VariableType"), CategoryType},
		{"Semantic error", NewIllegalTitleType(loc, "count", "Int"), CategorySemantic},
		{"Semantic error", NewAmbiguousContentType(loc, "Page", []string{"SimpleContentType", "SingletonContentType"}), CategorySemantic},
		{"Validation error", NewSemanticValidation(loc, "invalid date"), CategoryValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != tt.category {
				t.Errorf("Expected category %s, got %s", tt.category, tt.err.Category)
			}
			if tt.err.Severity != SeverityError {
				t.Errorf("Expected severity error, got %s", tt.err.Severity)
			}
		})
	}
}

func TestWithMethods(t *testing.T) {
	loc := ast.SourceSpan{Line: 5, Column: 10}
	err := NewTypeMismatch(loc, "Int", "FloatValue").
		WithFile("schema.graphql").
		WithSource([]string{"type Post implements SimpleContentType {", "", "", "", "  field: Int @validation(min: 1.5)"}).
		WithSuggestion("Use an integer literal").
		WithExamples("min: 1", "min: 2")

	if err.File != "schema.graphql" {
		t.Errorf("Expected file 'schema.graphql', got '%s'", err.File)
	}
	if line, ok := err.Line(); !ok || line != "  field: Int @validation(min: 1.5)" {
		t.Errorf("Unexpected error line %q", line)
	}
	if err.Suggestion != "Use an integer literal" {
		t.Errorf("Unexpected suggestion %q", err.Suggestion)
	}
	if len(err.Examples) != 2 {
		t.Errorf("Expected 2 examples, got %d", len(err.Examples))
	}
}
