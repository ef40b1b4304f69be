// Package mozaik implements the backend operations the CLI needs on top of
// a GraphQL transport.
package mozaik

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
	"github.com/mozaik-cms/mozaik/internal/schemadiff"
	"github.com/mozaik-cms/mozaik/internal/transport"
)

// ErrNoProjectAccess is returned when the project is missing from a response,
// which the backend does when the token lacks project read permission
var ErrNoProjectAccess = errors.New("project is not accessible, please check that your access token has project read permission")

// UserError is a validation error reported in a mutation payload
type UserError struct {
	Code    string `json:"code,omitempty"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

// OperationError is returned when an operation fails on the backend
type OperationError struct {
	Operation  string
	UserErrors []UserError
	Err        error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
	messages := make([]string, 0, len(e.UserErrors))
	for _, ue := range e.UserErrors {
		if ue.Key != "" {
			messages = append(messages, ue.Key+": "+ue.Message)
		} else {
			messages = append(messages, ue.Message)
		}
	}
	return fmt.Sprintf("%s: %s", e.Operation, strings.Join(messages, "; "))
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Client runs Mozaik operations
type Client struct {
	transport transport.Transport
	logger    *zap.Logger
}

// New creates a client on top of t
func New(t transport.Transport, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{transport: t, logger: logger}
}

// execute runs op, fails on GraphQL errors and decodes the data into out
func (c *Client) execute(ctx context.Context, op transport.Operation, out interface{}) error {
	resp, err := c.transport.Execute(ctx, op)
	if err != nil {
		return &OperationError{Operation: op.OperationName, Err: err}
	}
	if err := resp.Err(); err != nil {
		return &OperationError{Operation: op.OperationName, Err: err}
	}
	if err := resp.Decode(out); err != nil {
		return &OperationError{Operation: op.OperationName, Err: err}
	}
	return nil
}

// CreateContentType creates a content type and returns its id
func (c *Client) CreateContentType(ctx context.Context, input ir.ContentTypeInput) (string, error) {
	var data struct {
		CreateContentType struct {
			Errors      []UserError `json:"errors"`
			ContentType *struct {
				ID string `json:"id"`
			} `json:"contentType"`
		} `json:"createContentType"`
	}

	op := transport.Operation{
		Query:         createContentTypeMutation,
		Variables:     map[string]interface{}{"contentType": input},
		OperationName: "createContentType",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}

	payload := data.CreateContentType
	if len(payload.Errors) > 0 || payload.ContentType == nil {
		return "", &OperationError{Operation: op.OperationName, UserErrors: payload.Errors}
	}

	c.logger.Info("content type created", zap.String("api_id", input.APIID), zap.String("id", payload.ContentType.ID))
	return payload.ContentType.ID, nil
}

// CreateField creates a field on an existing content type and returns its id
func (c *Client) CreateField(ctx context.Context, contentTypeID string, field ir.FieldInput) (string, error) {
	var data struct {
		CreateField struct {
			Errors []UserError `json:"errors"`
			Field  *struct {
				ID string `json:"id"`
			} `json:"field"`
		} `json:"createField"`
	}

	op := transport.Operation{
		Query: createFieldMutation,
		Variables: map[string]interface{}{
			"contentTypeId": contentTypeID,
			"field":         field,
		},
		OperationName: "createFieldMutation",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}

	payload := data.CreateField
	if len(payload.Errors) > 0 || payload.Field == nil {
		return "", &OperationError{Operation: op.OperationName, UserErrors: payload.Errors}
	}

	c.logger.Info("field created", zap.String("api_id", field.APIID), zap.String("id", payload.Field.ID))
	return payload.Field.ID, nil
}

// CreateFieldValidation adds a validation to an existing field and returns its id
func (c *Client) CreateFieldValidation(ctx context.Context, fieldID string, validation ir.FieldValidationInput) (string, error) {
	var data struct {
		CreateFieldValidation struct {
			Errors          []UserError `json:"errors"`
			FieldValidation *struct {
				ID string `json:"id"`
			} `json:"fieldValidation"`
		} `json:"createFieldValidation"`
	}

	op := transport.Operation{
		Query: createFieldValidationMutation,
		Variables: map[string]interface{}{
			"fieldId":         fieldID,
			"fieldValidation": validation,
		},
		OperationName: "createFieldValidationMutation",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}

	payload := data.CreateFieldValidation
	if len(payload.Errors) > 0 || payload.FieldValidation == nil {
		return "", &OperationError{Operation: op.OperationName, UserErrors: payload.Errors}
	}
	return payload.FieldValidation.ID, nil
}

// schemaChangesPayload is the shape shared by the diff, update and import results
type schemaChangesPayload struct {
	schemadiff.Result
	Errors []UserError `json:"errors"`
}

// SchemaChanges asks the backend to compare schema with the project's schema
func (c *Client) SchemaChanges(ctx context.Context, schema string) (*schemadiff.Result, error) {
	var data struct {
		Project *struct {
			SchemaChanges *schemaChangesPayload `json:"schemaChanges"`
		} `json:"project"`
	}

	op := transport.Operation{
		Query:         schemaChangesQuery,
		Variables:     map[string]interface{}{"newSchema": schema},
		OperationName: "schemaChanges",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return nil, err
	}

	if data.Project == nil || data.Project.SchemaChanges == nil {
		return nil, &OperationError{Operation: op.OperationName, Err: ErrNoProjectAccess}
	}
	payload := data.Project.SchemaChanges
	if len(payload.Errors) > 0 {
		return nil, &OperationError{Operation: op.OperationName, UserErrors: payload.Errors}
	}
	return &payload.Result, nil
}

// UpdateSchema applies schema to the project. Dangerous changes are only
// applied when applyDangerous is set.
func (c *Client) UpdateSchema(ctx context.Context, schema string, applyDangerous bool) (*schemadiff.Result, error) {
	var data struct {
		UpdateSchema *schemaChangesPayload `json:"updateSchema"`
	}

	op := transport.Operation{
		Query: updateSchemaMutation,
		Variables: map[string]interface{}{
			"newSchema":             schema,
			"applyDangerousChanges": applyDangerous,
		},
		OperationName: "updateSchema",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return nil, err
	}
	return c.changesOrError(op.OperationName, data.UpdateSchema)
}

// ImportSchema lets the backend create the whole schema server side
func (c *Client) ImportSchema(ctx context.Context, schema string) (*schemadiff.Result, error) {
	var data struct {
		ImportSchema *schemaChangesPayload `json:"importSchema"`
	}

	op := transport.Operation{
		Query:         importSchemaMutation,
		Variables:     map[string]interface{}{"schema": schema},
		OperationName: "importSchema",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return nil, err
	}
	return c.changesOrError(op.OperationName, data.ImportSchema)
}

func (c *Client) changesOrError(operation string, payload *schemaChangesPayload) (*schemadiff.Result, error) {
	if payload == nil {
		return nil, &OperationError{Operation: operation, Err: transport.ErrNoData}
	}
	if len(payload.Errors) > 0 {
		return nil, &OperationError{Operation: operation, UserErrors: payload.Errors}
	}
	c.logger.Info("schema changes applied",
		zap.String("operation", operation),
		zap.Int("content_type_changes", len(payload.ContentTypeChanges)),
	)
	return &payload.Result, nil
}

// ExportSchema downloads the project's schema
func (c *Client) ExportSchema(ctx context.Context) (string, error) {
	var data struct {
		Project *struct {
			Schema string `json:"schema"`
		} `json:"project"`
	}

	op := transport.Operation{Query: projectSchemaQuery, OperationName: "projectSchema"}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}
	if data.Project == nil {
		return "", &OperationError{Operation: op.OperationName, Err: ErrNoProjectAccess}
	}
	return data.Project.Schema, nil
}
