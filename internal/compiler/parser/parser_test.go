package parser

import (
	"testing"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/compiler/lexer"
)

// Helper function to create a parser from source code
func parseSource(t *testing.T, source string) (*ast.Document, []ParseError) {
	t.Helper()

	lex := lexer.New(source)
	tokens, lexErrors := lex.ScanTokens()

	if len(lexErrors) > 0 {
		t.Fatalf("Lexer errors: %v", lexErrors)
	}

	parser := New(tokens)
	return parser.Parse()
}

func mustParse(t *testing.T, source string) *ast.Document {
	t.Helper()

	doc, errors := parseSource(t, source)
	if len(errors) > 0 {
		t.Fatalf("Parse errors: %v", errors)
	}
	return doc
}

func TestParseObjectType(t *testing.T) {
	source := `type Article implements SimpleContentType & Other @config(label: "Blog post") {
  title: String!
  tags: [Tag]
  rating: Int @validation(min: 1, max: 5)
}`

	doc := mustParse(t, source)

	if len(doc.Definitions) != 1 {
		t.Fatalf("Expected 1 definition, got %d", len(doc.Definitions))
	}

	obj, ok := doc.Definitions[0].(*ast.ObjectTypeDefinition)
	if !ok {
		t.Fatalf("Expected ObjectTypeDefinition, got %T", doc.Definitions[0])
	}
	if obj.Name.Value != "Article" {
		t.Errorf("Expected name 'Article', got '%s'", obj.Name.Value)
	}
	if len(obj.Interfaces) != 2 || !obj.Implements("SimpleContentType") || !obj.Implements("Other") {
		t.Errorf("Expected two interfaces, got %v", obj.Interfaces)
	}
	if len(obj.Directives) != 1 || obj.Directives[0].Name.Value != "config" {
		t.Fatalf("Expected @config directive, got %v", obj.Directives)
	}
	if len(obj.Fields) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(obj.Fields))
	}

	if got := obj.Fields[0].Type.String(); got != "String!" {
		t.Errorf("Expected 'String!', got '%s'", got)
	}
	if got := obj.Fields[1].Type.String(); got != "[Tag]" {
		t.Errorf("Expected '[Tag]', got '%s'", got)
	}

	rating := obj.Fields[2]
	if len(rating.Directives) != 1 || len(rating.Directives[0].Arguments) != 2 {
		t.Fatalf("Expected @validation with 2 arguments")
	}
	if _, ok := rating.Directives[0].Arguments[1].Value.(*ast.IntValue); !ok {
		t.Errorf("Expected IntValue, got %T", rating.Directives[0].Arguments[1].Value)
	}
}

func TestParseArgumentValueLocations(t *testing.T) {
	source := `
        type Test implements SimpleContentType {
          field: Int @validation(min: 5, max: 4)
        }`

	doc := mustParse(t, source)
	obj := doc.Definitions[0].(*ast.ObjectTypeDefinition)
	args := obj.Fields[0].Directives[0].Arguments

	minLoc := args[0].Value.Location()
	maxLoc := args[1].Value.Location()

	if minLoc.Line != 3 || minLoc.Column != 39 {
		t.Errorf("Expected min value at 3:39, got %d:%d", minLoc.Line, minLoc.Column)
	}
	if maxLoc.Line != 3 || maxLoc.Column != 47 {
		t.Errorf("Expected max value at 3:47, got %d:%d", maxLoc.Line, maxLoc.Column)
	}
	if args[1].Loc.Column != 42 {
		t.Errorf("Expected argument name at column 42, got %d", args[1].Loc.Column)
	}
}

func TestParseNestedTypes(t *testing.T) {
	source := `type T {
  a: [String]!
  b: [String!]
  c: [[String]]
}`

	doc := mustParse(t, source)
	fields := doc.Definitions[0].(*ast.ObjectTypeDefinition).Fields

	nonNull, ok := fields[0].Type.(*ast.NonNullType)
	if !ok {
		t.Fatalf("Expected NonNullType, got %T", fields[0].Type)
	}
	if _, ok := nonNull.Type.(*ast.ListType); !ok {
		t.Errorf("Expected ListType inside NonNull, got %T", nonNull.Type)
	}

	list := fields[1].Type.(*ast.ListType)
	if _, ok := list.Type.(*ast.NonNullType); !ok {
		t.Errorf("Expected NonNullType inside list, got %T", list.Type)
	}

	outer := fields[2].Type.(*ast.ListType)
	inner, ok := outer.Type.(*ast.ListType)
	if !ok {
		t.Fatalf("Expected nested ListType, got %T", outer.Type)
	}
	if inner.Loc.Line != 4 || inner.Loc.Column != 7 {
		t.Errorf("Expected inner list at 4:7, got %d:%d", inner.Loc.Line, inner.Loc.Column)
	}
}

func TestParseEnum(t *testing.T) {
	source := `"""
Available colors
"""
enum Color @config(label: "Colour") {
  RED @config(label: "Red color")
  "the green one"
  GREEN
  BLUE
}`

	doc := mustParse(t, source)
	enum, ok := doc.Definitions[0].(*ast.EnumTypeDefinition)
	if !ok {
		t.Fatalf("Expected EnumTypeDefinition, got %T", doc.Definitions[0])
	}

	if enum.Description == nil || enum.Description.Value != "Available colors" || !enum.Description.Block {
		t.Errorf("Expected block description, got %+v", enum.Description)
	}
	if enum.Loc.Line != 1 {
		t.Errorf("Expected definition to start at the description, got line %d", enum.Loc.Line)
	}
	if len(enum.Values) != 3 {
		t.Fatalf("Expected 3 values, got %d", len(enum.Values))
	}
	if len(enum.Values[0].Directives) != 1 {
		t.Errorf("Expected directive on RED")
	}
	if enum.Values[1].Description == nil || enum.Values[1].Description.Value != "the green one" {
		t.Errorf("Expected description on GREEN")
	}
}

func TestParseEnumRejectsReservedValues(t *testing.T) {
	_, errors := parseSource(t, "enum Flag { true }")
	if len(errors) == 0 {
		t.Fatal("Expected error for enum value 'true'")
	}
}

func TestParseBaseSchemaDefinitions(t *testing.T) {
	source := `
scalar Date
interface SimpleContentType { id: ID }
union SearchResult = | Article | Page
input Filter { name: String = "x", limit: Int = 10 }
directive @validation(
  minLength: Int
  pattern: String
  errorMessage: String
) repeatable on FIELD_DEFINITION | ENUM_VALUE
directive @config(label: String, isTitle: Boolean = false) on OBJECT | FIELD_DEFINITION
`

	doc := mustParse(t, source)
	if len(doc.Definitions) != 6 {
		t.Fatalf("Expected 6 definitions, got %d", len(doc.Definitions))
	}

	if _, ok := doc.Definitions[0].(*ast.ScalarTypeDefinition); !ok {
		t.Errorf("Expected scalar, got %T", doc.Definitions[0])
	}
	if _, ok := doc.Definitions[1].(*ast.InterfaceTypeDefinition); !ok {
		t.Errorf("Expected interface, got %T", doc.Definitions[1])
	}

	union := doc.Definitions[2].(*ast.UnionTypeDefinition)
	if len(union.Types) != 2 {
		t.Errorf("Expected 2 union members, got %d", len(union.Types))
	}

	input := doc.Definitions[3].(*ast.InputObjectTypeDefinition)
	if len(input.Fields) != 2 || input.Fields[1].DefaultValue == nil {
		t.Errorf("Expected 2 input fields with default values")
	}

	validation := doc.Definitions[4].(*ast.DirectiveDefinition)
	if !validation.Repeatable {
		t.Error("Expected @validation to be repeatable")
	}
	if len(validation.Arguments) != 3 || len(validation.Locations) != 2 {
		t.Errorf("Unexpected directive definition shape: %d args, %d locations",
			len(validation.Arguments), len(validation.Locations))
	}

	config := doc.Definitions[5].(*ast.DirectiveDefinition)
	if config.Repeatable {
		t.Error("Expected @config to not be repeatable")
	}
}

func TestParseValues(t *testing.T) {
	source := `type T @meta(list: [1, 2.5, "s", true, null, RED], obj: {a: 1, b: {c: false}}) { f: String }`

	doc := mustParse(t, source)
	args := doc.Definitions[0].(*ast.ObjectTypeDefinition).Directives[0].Arguments

	list, ok := args[0].Value.(*ast.ListValue)
	if !ok {
		t.Fatalf("Expected ListValue, got %T", args[0].Value)
	}

	kinds := []string{"IntValue", "FloatValue", "StringValue", "BooleanValue", "NullValue", "EnumValue"}
	for i, kind := range kinds {
		if list.Values[i].Kind() != kind {
			t.Errorf("Item %d: expected %s, got %s", i, kind, list.Values[i].Kind())
		}
	}

	obj, ok := args[1].Value.(*ast.ObjectValue)
	if !ok {
		t.Fatalf("Expected ObjectValue, got %T", args[1].Value)
	}
	if obj.String() != "{a: 1, b: {c: false}}" {
		t.Errorf("Unexpected object rendering %s", obj.String())
	}
}

func TestParseVariableInValueIsError(t *testing.T) {
	_, errors := parseSource(t, `type T @d(a: $x) { f: String }`)
	if len(errors) == 0 {
		t.Fatal("Expected error for variable in constant value")
	}
	if errors[0].Code != cerrors.ErrUnexpectedToken {
		t.Errorf("Expected %s, got %s", cerrors.ErrUnexpectedToken, errors[0].Code)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	source := `type Broken {
  title String
  body: String
}

type Good implements SimpleContentType {
  name: String
}

type AlsoBroken { field: }

enum Color { RED }`

	doc, errors := parseSource(t, source)

	if len(errors) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(errors), errors)
	}
	if errors[0].Location.Line != 2 || errors[0].Location.Column != 9 {
		t.Errorf("Expected first error at 2:9, got %d:%d", errors[0].Location.Line, errors[0].Location.Column)
	}
	if errors[0].Code != cerrors.ErrExpectedToken {
		t.Errorf("Expected %s, got %s", cerrors.ErrExpectedToken, errors[0].Code)
	}
	if errors[1].Code != cerrors.ErrInvalidTypeReference {
		t.Errorf("Expected %s, got %s", cerrors.ErrInvalidTypeReference, errors[1].Code)
	}

	// Good and Color survive
	if len(doc.Definitions) != 2 {
		t.Fatalf("Expected 2 recovered definitions, got %d", len(doc.Definitions))
	}
	if doc.Definitions[0].DefinitionName() != "Good" || doc.Definitions[1].DefinitionName() != "Color" {
		t.Errorf("Unexpected recovered definitions: %s, %s",
			doc.Definitions[0].DefinitionName(), doc.Definitions[1].DefinitionName())
	}
}

func TestParseUnknownDefinition(t *testing.T) {
	doc, errors := parseSource(t, "schema { query: Query }\ntype A { f: String }")

	if len(errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errors))
	}
	if errors[0].Code != cerrors.ErrUnknownDefinition {
		t.Errorf("Expected %s, got %s", cerrors.ErrUnknownDefinition, errors[0].Code)
	}
	if len(doc.Definitions) != 1 {
		t.Errorf("Expected type A to be recovered")
	}
}

func TestParseUnexpectedEOF(t *testing.T) {
	_, errors := parseSource(t, "type A {\n  f: String")

	if len(errors) == 0 {
		t.Fatal("Expected an error")
	}
	if errors[0].Code != cerrors.ErrUnexpectedEOF {
		t.Errorf("Expected %s, got %s", cerrors.ErrUnexpectedEOF, errors[0].Code)
	}
}

func TestParseInvalidDirectiveLocation(t *testing.T) {
	_, errors := parseSource(t, "directive @x on NOWHERE")
	if len(errors) != 1 || errors[0].Code != cerrors.ErrInvalidDirectiveLocation {
		t.Fatalf("Expected one %s error, got %v", cerrors.ErrInvalidDirectiveLocation, errors)
	}
}

func TestParseDocument(t *testing.T) {
	doc, errs := ParseDocument(`type A { f: String }`)
	if errs != nil {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if len(doc.Definitions) != 1 {
		t.Fatalf("Expected 1 definition, got %d", len(doc.Definitions))
	}

	_, errs = ParseDocument(`type A { f: "unterminated }`)
	if len(errs) != 1 || errs[0].Code != cerrors.ErrUnterminatedString {
		t.Fatalf("Expected unterminated string error, got %v", errs)
	}

	_, errs = ParseDocument("type A {\n  f String\n}")
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if errs[0].Code != cerrors.ErrExpectedToken || errs[0].Expected != "':'" {
		t.Errorf("Unexpected error %+v", errs[0])
	}
	if errs[0].Message != `Expected ':', found Name "String"` {
		t.Errorf("Unexpected message %q", errs[0].Message)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc := mustParse(t, "  # only a comment\n")
	if len(doc.Definitions) != 0 {
		t.Errorf("Expected no definitions, got %d", len(doc.Definitions))
	}
}
