package extract

// BaseSchema declares the scalars, directives and content interfaces every
// user schema is compiled against. It is parsed on its own so locations in
// user errors stay relative to the user's text.
const BaseSchema = `
scalar SinglelineText
scalar MultilineText
scalar RichText
scalar Date
scalar DateTime
scalar Audio
scalar File
scalar Image
scalar Video

"Int, Float or a date string, depending on the field type."
scalar ValidationBound

directive @config(
  label: String
  groupName: String
  isTitle: Boolean
) on OBJECT | FIELD_DEFINITION | ENUM | ENUM_VALUE

directive @validation(
  minLength: Int
  maxLength: Int
  pattern: String
  min: ValidationBound
  max: ValidationBound
  maxWidth: Int
  maxHeight: Int
  maxSize: Int
  fileType: String
  errorMessage: String
) repeatable on FIELD_DEFINITION

directive @deprecated(reason: String) on FIELD_DEFINITION | ENUM_VALUE

interface SimpleContentType {
  id: String
  displayName: String
  slug: String
}

interface SingletonContentType {
  id: String
}

interface EmbeddableContentType {
  id: String
}

interface HashmapContentType {
  id: String
}
`

// builtinScalars are defined by GraphQL itself
var builtinScalars = []string{"String", "ID", "Int", "Float", "Boolean"}
