package lexer

import (
	"fmt"
	"strings"
	"testing"
)

// Generate a sample schema with n content types
func generateSchema(types int) string {
	var sb strings.Builder
	for i := 0; i < types; i++ {
		fmt.Fprintf(&sb, `"""
Content type number %d.
"""
type Type%d implements SimpleContentType @config(label: "Type %d") {
  title: String! @config(isTitle: true) @validation(minLength: 1, maxLength: 100)
  body: RichText
  rating: Int @validation(min: 0, max: 5)
  related: [Type%d]
}

`, i, i, i, (i+1)%types)
	}
	return sb.String()
}

func BenchmarkLexer_SmallSchema(b *testing.B) {
	source := generateSchema(5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		New(source).ScanTokens()
	}
}

func BenchmarkLexer_LargeSchema(b *testing.B) {
	source := generateSchema(500)
	b.SetBytes(int64(len(source)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		New(source).ScanTokens()
	}
}
