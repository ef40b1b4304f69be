package errors

import (
	"fmt"
	"strings"
)

var categoryTitles = map[ErrorCategory]string{
	CategorySyntax:     "Syntax Error",
	CategoryType:       "Type Error",
	CategorySemantic:   "Semantic Error",
	CategoryValidation: "Validation Error",
}

var severitySymbols = map[ErrorSeverity]string{
	SeverityError:   "❌",
	SeverityWarning: "⚠️",
	SeverityInfo:    "ℹ️",
}

// FormatError renders e for the terminal:
//
//	❌ Semantic Error [SEM200] at mozaik-schema.graphql:2:3
//	  slug is a reserved field name
//
//	    1 | type Article implements SimpleContentType {
//	    2 |   slug: String
//	      |   ^
//	    3 | }
//
//	  Hint: Rename the field; system fields are added by the backend automatically
//	  See https://docs.mozaik.io/cli/errors/SEM200
func FormatError(e *CompilerError) string {
	var b strings.Builder

	title, ok := categoryTitles[e.Category]
	if !ok {
		title = "Compiler Error"
	}
	symbol, ok := severitySymbols[e.Severity]
	if !ok {
		symbol = "•"
	}
	fmt.Fprintf(&b, "%s %s [%s] at %s\n", symbol, title, e.Code, position(e))
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Snippet != nil {
		b.WriteString("\n")
		writeSnippet(&b, e)
	}

	if e.Expected != "" || e.Actual != "" {
		b.WriteString("\n")
		if e.Expected != "" {
			fmt.Fprintf(&b, "  Expected: %s\n", e.Expected)
		}
		if e.Actual != "" {
			fmt.Fprintf(&b, "  Found:    %s\n", e.Actual)
		}
	}

	if e.Suggestion != "" || len(e.Examples) > 0 || e.Documentation != "" {
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  Hint: %s\n", e.Suggestion)
	}
	if len(e.Examples) > 0 {
		b.WriteString("  Valid forms:\n")
		for _, example := range e.Examples {
			fmt.Fprintf(&b, "    %s\n", example)
		}
	}
	if e.Documentation != "" {
		fmt.Fprintf(&b, "  See %s\n", e.Documentation)
	}

	return b.String()
}

// writeSnippet prints the attached lines with a gutter and a caret under
// the error column
func writeSnippet(b *strings.Builder, e *CompilerError) {
	last := e.Snippet.Start + len(e.Snippet.Lines) - 1
	width := len(fmt.Sprint(last))
	if width < 3 {
		width = 3
	}

	for i, line := range e.Snippet.Lines {
		number := e.Snippet.Start + i
		fmt.Fprintf(b, "  %*d | %s\n", width, number, line)
		if number == e.Location.Line {
			fmt.Fprintf(b, "  %*s | %s^\n", width, "", caretPadding(line, e.Location.Column))
		}
	}
}

// caretPadding returns the whitespace that puts a caret under column, which
// counts code points from 1. Tabs are kept so the caret lines up.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	n := 1
	for _, r := range line {
		if n >= column {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
		n++
	}
	return pad.String()
}

// position formats file:line:column
func position(e *CompilerError) string {
	file := e.File
	if file == "" {
		file = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d", file, e.Location.Line, e.Location.Column)
}

// FormatErrorList renders every error under a summary line
func FormatErrorList(errs ErrorList) string {
	if len(errs) == 0 {
		return "no errors"
	}

	var b strings.Builder
	counts := errs.Count()
	fmt.Fprintf(&b, "Compilation failed with %d error(s)", counts[SeverityError])
	if n := counts[SeverityWarning]; n > 0 {
		fmt.Fprintf(&b, " and %d warning(s)", n)
	}
	b.WriteString("\n")

	for _, err := range errs {
		b.WriteString("\n")
		b.WriteString(err.Format())
	}
	return b.String()
}

// FormatCompact returns "file:line:column: severity: message [code]"
func FormatCompact(e *CompilerError) string {
	return fmt.Sprintf("%s: %s: %s [%s]", position(e), e.Severity, e.Message, e.Code)
}

// FormatCompactList returns one compact line per error
func FormatCompactList(errs ErrorList) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = FormatCompact(err)
	}
	return strings.Join(lines, "\n")
}
