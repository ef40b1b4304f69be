package errors

import (
	"strings"
	"testing"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
)

func TestCaretPadding(t *testing.T) {
	tests := []struct {
		line   string
		column int
		want   string
	}{
		{"  slug: String", 3, "  "},
		{"\tslug: String", 2, "\t"},
		{"type", 1, ""},
		{"ab", 10, "  "},
	}
	for _, tt := range tests {
		if got := caretPadding(tt.line, tt.column); got != tt.want {
			t.Errorf("caretPadding(%q, %d) = %q, want %q", tt.line, tt.column, got, tt.want)
		}
	}
}

func TestErrorCodeCategory(t *testing.T) {
	if got := ErrNestedList.Category(); got != CategoryType {
		t.Errorf("TYP101: got category %q", got)
	}
	if got := ErrorCode("XYZ1").Category(); got != "" {
		t.Errorf("unknown prefix: got category %q", got)
	}
}

func TestFormatError_WithoutSnippet(t *testing.T) {
	err := NewNestedList(ast.SourceSpan{Line: 4, Column: 9})

	got := err.Format()
	if !strings.HasPrefix(got, "❌ Type Error [TYP101] at <source>:4:9\n") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if strings.Contains(got, " | ") {
		t.Errorf("expected no source gutter:\n%s", got)
	}
}

func TestFormatErrorList_Warnings(t *testing.T) {
	warning := NewSemanticValidation(ast.SourceSpan{Line: 1, Column: 1}, "unused")
	warning.Severity = SeverityWarning
	list := ErrorList{NewNestedList(ast.SourceSpan{Line: 2, Column: 1}), warning}

	if got := list.Format(); !strings.HasPrefix(got, "Compilation failed with 1 error(s) and 1 warning(s)\n") {
		t.Errorf("unexpected summary:\n%s", got)
	}
	if FormatErrorList(nil) != "no errors" {
		t.Error("expected placeholder for an empty list")
	}
}
