package ir

// Backend field types
const (
	TypeTextSingleline = "TEXT_SINGLELINE"
	TypeTextMultiline  = "TEXT_MULTILINE"
	TypeRichText       = "RICH_TEXT"
	TypeInteger        = "INTEGER"
	TypeFloat          = "FLOAT"
	TypeBoolean        = "BOOLEAN"
	TypeDate           = "DATE"
	TypeDateTime       = "DATE_TIME"
	TypeAudio          = "AUDIO"
	TypeFile           = "FILE"
	TypeImage          = "IMAGE"
	TypeVideo          = "VIDEO"
)

// scalarTypes maps SDL scalar names to backend field types
var scalarTypes = map[string]string{
	"String":         TypeTextSingleline,
	"ID":             TypeTextSingleline,
	"SinglelineText": TypeTextSingleline,
	"MultilineText":  TypeTextMultiline,
	"RichText":       TypeRichText,
	"Int":            TypeInteger,
	"Float":          TypeFloat,
	"Boolean":        TypeBoolean,
	"Date":           TypeDate,
	"DateTime":       TypeDateTime,
	"Audio":          TypeAudio,
	"File":           TypeFile,
	"Image":          TypeImage,
	"Video":          TypeVideo,
}

var backendScalars = func() map[string]bool {
	m := make(map[string]bool, len(scalarTypes))
	for _, t := range scalarTypes {
		m[t] = true
	}
	return m
}()

// BackendType returns the backend field type for an SDL type name. Names
// that are not scalars are content type references and map to themselves.
func BackendType(sdlType string) (string, bool) {
	if t, ok := scalarTypes[sdlType]; ok {
		return t, true
	}
	return sdlType, false
}

// IsScalarType reports whether a backend field type is a fixed scalar
// rather than a reference to another content type.
func IsScalarType(backendType string) bool {
	return backendScalars[backendType]
}

// IsSinglelineText reports whether an SDL type may be used as a title
func IsSinglelineText(sdlType string) bool {
	return scalarTypes[sdlType] == TypeTextSingleline
}

// reservedFieldNames are system fields every content type already has
var reservedFieldNames = map[string]bool{
	"id":                true,
	"slug":              true,
	"contentType":       true,
	"displayName":       true,
	"currentVersion":    true,
	"createdAt":         true,
	"updatedAt":         true,
	"project":           true,
	"author":            true,
	"status":            true,
	"content":           true,
	"liveVersionId":     true,
	"latestVersionId":   true,
	"lockId":            true,
	"firstPublishDate":  true,
	"latestPublishDate": true,
}

// IsReservedFieldName reports whether a field apiId collides with a system field
func IsReservedFieldName(name string) bool {
	return reservedFieldNames[name]
}
