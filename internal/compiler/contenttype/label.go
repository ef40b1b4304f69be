package contenttype

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	"github.com/mozaik-cms/mozaik/internal/compiler/lexer"
)

var (
	abbreviationEnd = regexp.MustCompile(`([a-zA-Z])([A-Z])([a-z])`)
	lowerUpper      = regexp.MustCompile(`([a-z])([A-Z])`)
	letterDigit     = regexp.MustCompile(`([a-zA-Z])([0-9])`)
)

// GenerateLabel turns an identifier into a human readable label.
// Abbreviations keep their case: myCMSFieldLabel becomes "My CMS field label".
func GenerateLabel(name string) string {
	label := strings.ReplaceAll(name, "_", " ")
	label = abbreviationEnd.ReplaceAllStringFunc(label, func(m string) string {
		return m[:1] + " " + strings.ToLower(m[1:2]) + m[2:]
	})
	label = lowerUpper.ReplaceAllString(label, "$1 $2")
	label = letterDigit.ReplaceAllString(label, "$1 $2")

	first, size := utf8.DecodeRuneInString(label)
	if first == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(first)) + label[size:]
}

// Description returns a doc string with its common indentation removed.
// Block strings are already dedented by the lexer.
func Description(desc *ast.StringValue) string {
	if desc == nil {
		return ""
	}
	if desc.Block {
		return desc.Value
	}
	return lexer.BlockStringValue(desc.Value)
}
