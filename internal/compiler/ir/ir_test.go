package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBackendType(t *testing.T) {
	tests := []struct {
		sdl     string
		backend string
		scalar  bool
	}{
		{"String", TypeTextSingleline, true},
		{"ID", TypeTextSingleline, true},
		{"SinglelineText", TypeTextSingleline, true},
		{"MultilineText", TypeTextMultiline, true},
		{"RichText", TypeRichText, true},
		{"Int", TypeInteger, true},
		{"Float", TypeFloat, true},
		{"Boolean", TypeBoolean, true},
		{"Date", TypeDate, true},
		{"DateTime", TypeDateTime, true},
		{"Audio", TypeAudio, true},
		{"File", TypeFile, true},
		{"Image", TypeImage, true},
		{"Video", TypeVideo, true},
		{"Author", "Author", false},
	}

	for _, tt := range tests {
		got, scalar := BackendType(tt.sdl)
		assert.Equal(t, tt.backend, got, tt.sdl)
		assert.Equal(t, tt.scalar, scalar, tt.sdl)
		assert.Equal(t, tt.scalar, IsScalarType(got), tt.sdl)
	}
}

func TestIsSinglelineText(t *testing.T) {
	assert.True(t, IsSinglelineText("String"))
	assert.True(t, IsSinglelineText("ID"))
	assert.True(t, IsSinglelineText("SinglelineText"))
	assert.False(t, IsSinglelineText("MultilineText"))
	assert.False(t, IsSinglelineText("Int"))
	assert.False(t, IsSinglelineText("Article"))
}

func TestReservedFieldNames(t *testing.T) {
	for _, name := range []string{"id", "slug", "contentType", "latestPublishDate", "lockId"} {
		assert.True(t, IsReservedFieldName(name), name)
	}
	assert.False(t, IsReservedFieldName("title"))
	assert.False(t, IsReservedFieldName("ID"))
}

func TestContentTypeReferences(t *testing.T) {
	ct := ContentTypeInput{
		APIID: "Post",
		Fields: []FieldInput{
			{APIID: "title", Type: TypeTextSingleline},
			{APIID: "author", Type: "Author"},
			{APIID: "related", Type: "Post", HasMultipleValues: true},
			{APIID: "coAuthor", Type: "Author"},
		},
	}

	assert.Equal(t, []string{"Author", "Post"}, ct.References())
	assert.Empty(t, ct.WithoutFields().Fields)
	assert.Len(t, ct.Fields, 4, "WithoutFields must not modify the receiver")
}

func TestCategory(t *testing.T) {
	assert.Equal(t, CategorySimple, ContentTypeInput{}.Category())
	assert.Equal(t, CategorySingleton, ContentTypeInput{IsLandingPage: true}.Category())
	assert.Equal(t, CategoryEmbeddable, ContentTypeInput{IsBlockGroup: true}.Category())
	assert.Equal(t, CategoryHashmap, ContentTypeInput{IsHashmap: true}.Category())
}

func TestValidationConfigOmitsAbsentKeys(t *testing.T) {
	v := FieldValidationInput{
		Type:         ValidationLengthRange,
		Config:       FieldValidationConfig{LengthMin: Ptr(5), LengthMax: Ptr(10)},
		ErrorMessage: "should be between 5 and 10 characters long",
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"LENGTH_RANGE","config":{"lengthMin":5,"lengthMax":10},"errorMessage":"should be between 5 and 10 characters long"}`,
		string(data))

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), "lengthMin: 5")
	assert.NotContains(t, string(out), "pattern")
}

func TestFieldWithoutValidations(t *testing.T) {
	f := FieldInput{APIID: "title", Validations: []FieldValidationInput{{Type: ValidationRequired}}}
	stripped := f.WithoutValidations()

	assert.Nil(t, stripped.Validations)
	assert.Len(t, f.Validations, 1)

	data, err := json.Marshal(stripped)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "validations")
}
