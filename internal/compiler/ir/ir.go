// Package ir defines the backend-agnostic intermediate representation the
// schema compiler produces: content types, their fields and per-field
// validations. The JSON shape matches the backend's mutation inputs.
package ir

// ContentTypeInput is one compiled content type
type ContentTypeInput struct {
	APIID         string       `json:"apiId" yaml:"apiId"`
	Name          string       `json:"name" yaml:"name"`
	Description   string       `json:"description,omitempty" yaml:"description,omitempty"`
	IsLandingPage bool         `json:"isLandingPage,omitempty" yaml:"isLandingPage,omitempty"`
	IsBlockGroup  bool         `json:"isBlockGroup,omitempty" yaml:"isBlockGroup,omitempty"`
	IsEnum        bool         `json:"isEnum,omitempty" yaml:"isEnum,omitempty"`
	IsHashmap     bool         `json:"isHashmap,omitempty" yaml:"isHashmap,omitempty"`
	Fields        []FieldInput `json:"fields" yaml:"fields"`
	EnumValues    []EnumValue  `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
}

// EnumValue is one key/label pair of a hashmap content type
type EnumValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// FieldInput is one compiled field
type FieldInput struct {
	APIID                string                 `json:"apiId" yaml:"apiId"`
	Label                string                 `json:"label" yaml:"label"`
	Description          string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Type                 string                 `json:"type" yaml:"type"`
	HasMultipleValues    bool                   `json:"hasMultipleValues" yaml:"hasMultipleValues"`
	GroupName            string                 `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	IncludeInDisplayName bool                   `json:"includeInDisplayName,omitempty" yaml:"includeInDisplayName,omitempty"`
	IsDeprecated         bool                   `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`
	Validations          []FieldValidationInput `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// Category names which content interface a type implements
type Category string

const (
	CategorySimple     Category = "SimpleContentType"
	CategorySingleton  Category = "SingletonContentType"
	CategoryEmbeddable Category = "EmbeddableContentType"
	CategoryHashmap    Category = "HashmapContentType"
)

// Category derives the category from the flags
func (c ContentTypeInput) Category() Category {
	switch {
	case c.IsHashmap:
		return CategoryHashmap
	case c.IsLandingPage:
		return CategorySingleton
	case c.IsBlockGroup:
		return CategoryEmbeddable
	default:
		return CategorySimple
	}
}

// WithoutFields returns a copy of the content type with no fields
func (c ContentTypeInput) WithoutFields() ContentTypeInput {
	c.Fields = []FieldInput{}
	return c
}

// References returns the apiIds of the content types this type's fields
// point at, in field order and without duplicates.
func (c ContentTypeInput) References() []string {
	seen := make(map[string]bool)
	refs := make([]string, 0)
	for _, f := range c.Fields {
		if IsScalarType(f.Type) || seen[f.Type] {
			continue
		}
		seen[f.Type] = true
		refs = append(refs, f.Type)
	}
	return refs
}

// WithoutValidations returns a copy of the field with no validations
func (f FieldInput) WithoutValidations() FieldInput {
	f.Validations = nil
	return f
}
