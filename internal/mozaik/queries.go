package mozaik

const createContentTypeMutation = `
mutation createContentType($contentType: ContentTypeInput!) {
  createContentType(contentType: $contentType) {
    errors {
      key
      message
    }
    contentType {
      id
      apiId
    }
  }
}`

const createFieldMutation = `
mutation createFieldMutation($contentTypeId: ID!, $field: FieldInput!) {
  createField(contentTypeId: $contentTypeId, field: $field) {
    errors {
      key
      message
    }
    field {
      id
      apiId
      label
    }
  }
}`

const createFieldValidationMutation = `
mutation createFieldValidationMutation($fieldId: ID!, $fieldValidation: FieldValidationInput!) {
  createFieldValidation(fieldId: $fieldId, fieldValidation: $fieldValidation) {
    errors {
      key
      message
    }
    fieldValidation {
      id
    }
  }
}`

const attributeChangeSelection = `
  type
  severity
  name
  from
  to
  description`

const schemaChangesSelection = `
contentTypeChanges {
  type
  severity
  name
  description
  attributeChanges {` + attributeChangeSelection + `
  }
  fieldChanges {
    type
    severity
    name
    description
    validationChanges {
      type
      severity
      name
      description
      attributeChanges {` + attributeChangeSelection + `
      }
    }
    attributeChanges {` + attributeChangeSelection + `
    }
  }
  enumValueChanges {
    type
    severity
    name
    description
    attributeChanges {` + attributeChangeSelection + `
    }
  }
}`

const schemaChangesQuery = `
query schemaChanges($newSchema: String!) {
  project {
    schemaChanges(newSchema: $newSchema) {` + schemaChangesSelection + `
      errors {
        key
        message
      }
    }
  }
}`

const updateSchemaMutation = `
mutation updateSchema($newSchema: String!, $applyDangerousChanges: Boolean) {
  updateSchema(newSchema: $newSchema, applyDangerousChanges: $applyDangerousChanges) {` + schemaChangesSelection + `
    errors {
      key
      message
    }
  }
}`

const importSchemaMutation = `
mutation importSchema($schema: String!) {
  importSchema(schema: $schema) {` + schemaChangesSelection + `
    errors {
      code
      key
      message
    }
  }
}`

const projectSchemaQuery = `
query projectSchema {
  project {
    schema
  }
}`

const projectIDQuery = `
query projectId {
  project {
    id
  }
}`

const resetProjectMutation = `
mutation resetProject($projectId: ID!, $resetType: ProjectResetTypeEnum!) {
  resetProject(projectId: $projectId, resetType: $resetType) {
    project {
      id
    }
    errors {
      key
      message
    }
  }
}`

const createDocumentMutation = `
mutation createDocumentMutation($document: DocumentInput!) {
  createDocument(document: $document) {
    document {
      id
    }
    errors {
      key
      message
    }
  }
}`

const publishDocumentMutation = `
mutation publishDocumentMutation($documentId: ID!) {
  publishDocument(documentId: $documentId) {
    document {
      id
    }
    errors {
      key
      message
    }
  }
}`

const createAssetMutation = `
mutation createAssetMutation($asset: AssetInput!) {
  createAsset(asset: $asset) {
    asset {
      id
    }
    errors {
      key
      message
    }
  }
}`
