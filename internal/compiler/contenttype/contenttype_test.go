package contenttype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/compiler/extract"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
)

func compileSchema(t *testing.T, sdl string) []ir.ContentTypeInput {
	t.Helper()
	result, err := extract.Extract(sdl)
	require.NoError(t, err)
	inputs, err := CompileSchema(result)
	require.NoError(t, err)
	return inputs
}

func compileError(t *testing.T, sdl string) *cerrors.CompilerError {
	t.Helper()
	result, err := extract.Extract(sdl)
	require.NoError(t, err)
	_, err = CompileSchema(result)
	require.Error(t, err)
	list := cerrors.Collect(err)
	require.NotEmpty(t, list)
	return list[0]
}

// singleField compiles `type Object implements SimpleContentType { <decl> }`
// and returns its only field
func singleField(t *testing.T, decl string) ir.FieldInput {
	t.Helper()
	inputs := compileSchema(t, "type Object implements SimpleContentType {\n  "+decl+"\n}")
	require.Len(t, inputs, 1)
	require.Len(t, inputs[0].Fields, 1)
	return inputs[0].Fields[0]
}

func fieldError(t *testing.T, decl string) *cerrors.CompilerError {
	t.Helper()
	return compileError(t, "type Object implements SimpleContentType {\n  "+decl+"\n}")
}

func TestCompileSchema_SelfReference(t *testing.T) {
	inputs := compileSchema(t, `
type Category implements SimpleContentType {
  name: String
  subcategories: [Category]
}
`)

	require.Len(t, inputs, 1)
	assert.Equal(t, ir.ContentTypeInput{
		APIID: "Category",
		Name:  "Category",
		Fields: []ir.FieldInput{
			{APIID: "name", Label: "Name", Type: ir.TypeTextSingleline, Validations: []ir.FieldValidationInput{}},
			{APIID: "subcategories", Label: "Subcategories", Type: "Category", HasMultipleValues: true, Validations: []ir.FieldValidationInput{}},
		},
	}, inputs[0])
}

func TestCompileSchema_Categories(t *testing.T) {
	inputs := compileSchema(t, `
type Homepage implements SingletonContentType {
  title: String
}

type FeaturedImage implements EmbeddableContentType {
  url: String
}

type Post implements SimpleContentType {
  title: String
  image: FeaturedImage
}
`)

	require.Len(t, inputs, 3)
	assert.Equal(t, "Post", inputs[0].APIID)
	assert.Equal(t, ir.CategorySimple, inputs[0].Category())
	assert.Equal(t, "Homepage", inputs[1].APIID)
	assert.True(t, inputs[1].IsLandingPage)
	assert.False(t, inputs[1].IsBlockGroup)
	assert.Equal(t, "FeaturedImage", inputs[2].APIID)
	assert.Equal(t, "Featured image", inputs[2].Name)
	assert.True(t, inputs[2].IsBlockGroup)
	assert.Equal(t, "FeaturedImage", inputs[0].Fields[1].Type)
}

func TestCompileSchema_ConfigLabelAndDescription(t *testing.T) {
	inputs := compileSchema(t, `
"""
Articles shown on the blog.
  Second line keeps its indent.
"""
type BlogArticle implements SimpleContentType @config(label: "Article") {
  "The headline"
  title: String @config(label: "Headline", groupName: "Main")
}
`)

	require.Len(t, inputs, 1)
	assert.Equal(t, "Article", inputs[0].Name)
	assert.Equal(t, "Articles shown on the blog.\n  Second line keeps its indent.", inputs[0].Description)

	field := inputs[0].Fields[0]
	assert.Equal(t, "Headline", field.Label)
	assert.Equal(t, "The headline", field.Description)
	assert.Equal(t, "Main", field.GroupName)
}

func TestCompileSchema_EmptyConfigLabel(t *testing.T) {
	err := compileError(t, `type Page implements SimpleContentType @config(label: "") { title: String }`)
	assert.Equal(t, cerrors.ErrSemanticValidation, err.Code)
	assert.Equal(t, "should not be empty", err.Message)
}

func TestCompileEnum(t *testing.T) {
	inputs := compileSchema(t, `
enum ColorEnum {
  blue @config(label: "Blue")
  lightRed @config(label: "Light red")
  green
}
`)

	require.Len(t, inputs, 1)
	assert.Equal(t, ir.ContentTypeInput{
		APIID:     "ColorEnum",
		Name:      "Color enum",
		IsHashmap: true,
		Fields:    []ir.FieldInput{},
		EnumValues: []ir.EnumValue{
			{Key: "blue", Value: "Blue"},
			{Key: "lightRed", Value: "Light red"},
			{Key: "green", Value: "green"},
		},
	}, inputs[0])
	assert.False(t, inputs[0].IsEnum)
}

func TestCompileEnum_EmptyLabelFallsBackToKey(t *testing.T) {
	inputs := compileSchema(t, "enum Color { RED @config(label: \"\") GREEN @config(label: \"Green\") BLUE }")
	require.Len(t, inputs, 1)
	assert.Equal(t, []ir.EnumValue{
		{Key: "RED", Value: "RED"},
		{Key: "GREEN", Value: "Green"},
		{Key: "BLUE", Value: "BLUE"},
	}, inputs[0].EnumValues)
}

func TestCompileEnum_LabelMustBeString(t *testing.T) {
	err := compileError(t, "enum Color {\n  red @config(label: 3)\n}")
	assert.Equal(t, cerrors.ErrTypeMismatch, err.Code)
	assert.Equal(t, 2, err.Location.Line)
}

func TestCompileField_Types(t *testing.T) {
	tests := []struct {
		sdl      string
		expected string
	}{
		{"String", ir.TypeTextSingleline},
		{"ID", ir.TypeTextSingleline},
		{"SinglelineText", ir.TypeTextSingleline},
		{"MultilineText", ir.TypeTextMultiline},
		{"RichText", ir.TypeRichText},
		{"Int", ir.TypeInteger},
		{"Float", ir.TypeFloat},
		{"Boolean", ir.TypeBoolean},
		{"Date", ir.TypeDate},
		{"DateTime", ir.TypeDateTime},
		{"Audio", ir.TypeAudio},
		{"File", ir.TypeFile},
		{"Image", ir.TypeImage},
		{"Video", ir.TypeVideo},
	}

	for _, tt := range tests {
		t.Run(tt.sdl, func(t *testing.T) {
			field := singleField(t, "field: "+tt.sdl)
			assert.Equal(t, tt.expected, field.Type)
			assert.False(t, field.HasMultipleValues)
		})
	}
}

func TestCompileField_ReservedName(t *testing.T) {
	err := fieldError(t, "slug: String")
	assert.Equal(t, cerrors.ErrReservedFieldName, err.Code)
	assert.Equal(t, "slug is a reserved field name", err.Message)
	assert.Equal(t, 2, err.Location.Line)
	assert.Equal(t, 3, err.Location.Column)
}

func TestCompileField_Title(t *testing.T) {
	field := singleField(t, `title: String @config(isTitle: true)`)
	assert.True(t, field.IncludeInDisplayName)

	field = singleField(t, `title: String @config(isTitle: false)`)
	assert.False(t, field.IncludeInDisplayName)
}

func TestCompileField_IllegalTitle(t *testing.T) {
	err := fieldError(t, `count: Int @config(isTitle: true)`)
	assert.Equal(t, cerrors.ErrIllegalTitleType, err.Code)
	assert.Equal(t, 2, err.Location.Line)
	assert.Equal(t, 31, err.Location.Column)

	err = fieldError(t, `tags: [String] @config(isTitle: true)`)
	assert.Equal(t, cerrors.ErrIllegalTitleType, err.Code)
}

func TestCompileField_Deprecated(t *testing.T) {
	field := singleField(t, `legacy: String @deprecated(reason: "use title")`)
	assert.True(t, field.IsDeprecated)

	field = singleField(t, `title: String`)
	assert.False(t, field.IsDeprecated)
}

func TestCompileField_NestedList(t *testing.T) {
	err := fieldError(t, `grid: [[Int]]`)
	assert.Equal(t, cerrors.ErrNestedList, err.Code)
	assert.Equal(t, 2, err.Location.Line)
	assert.Equal(t, 10, err.Location.Column)
}

func TestCompileSchema_UnknownContentType(t *testing.T) {
	err := compileError(t, `type Helper {
  note: String
}
type Page implements SimpleContentType {
  helper: Helper
}`)
	assert.Equal(t, cerrors.ErrUnknownContentType, err.Code)
	assert.Equal(t, 5, err.Location.Line)
	assert.Equal(t, 11, err.Location.Column)
}

func TestCompileSchema_FirstErrorPerDeclaration(t *testing.T) {
	result, err := extract.Extract(`
type Helper {
  note: String
}

type Page implements SimpleContentType {
  owner: Helper
  id: String
  count: Int @validation(min: 5, max: 4)
}

type Post implements SimpleContentType {
  title: String
  count: Int @validation(min: 5, max: 4)
  status: String
}
`)
	require.NoError(t, err)

	_, err = CompileSchema(result)
	list := cerrors.Collect(err)
	require.Len(t, list, 2)

	assert.Equal(t, cerrors.ErrUnknownContentType, list[0].Code)
	assert.Equal(t, 7, list[0].Location.Line)
	assert.Equal(t, cerrors.ErrSemanticValidation, list[1].Code)
	assert.Equal(t, 14, list[1].Location.Line)
}

func TestCompileSchema_Deterministic(t *testing.T) {
	sdl := `
type Author implements SimpleContentType {
  name: String @validation(minLength: 2, maxLength: 80)
  born: Date @validation(min: "1900-01-01")
}

type Post implements SimpleContentType {
  title: String!
  writer: Author
}

enum Tone {
  calm
  loud
}
`
	first, err := json.Marshal(compileSchema(t, sdl))
	require.NoError(t, err)
	second, err := json.Marshal(compileSchema(t, sdl))
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}
