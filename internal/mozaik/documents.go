package mozaik

import (
	"context"

	"go.uber.org/zap"

	"github.com/mozaik-cms/mozaik/internal/transport"
)

// Document is a DocumentInput, passed to the backend as given
type Document map[string]interface{}

// Asset is an AssetInput, passed to the backend as given
type Asset map[string]interface{}

// objectPayload is the payload of mutations returning one object id
type objectPayload struct {
	Errors []UserError `json:"errors"`
	ID     string
}

func (p objectPayload) result(operation string) (string, error) {
	if len(p.Errors) > 0 || p.ID == "" {
		return "", &OperationError{Operation: operation, UserErrors: p.Errors}
	}
	return p.ID, nil
}

// CreateDocument creates a draft document and returns its id
func (c *Client) CreateDocument(ctx context.Context, document Document) (string, error) {
	var data struct {
		CreateDocument *struct {
			Errors   []UserError `json:"errors"`
			Document *struct {
				ID string `json:"id"`
			} `json:"document"`
		} `json:"createDocument"`
	}

	op := transport.Operation{
		Query:         createDocumentMutation,
		Variables:     map[string]interface{}{"document": document},
		OperationName: "createDocumentMutation",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}
	if data.CreateDocument == nil {
		return "", &OperationError{Operation: op.OperationName, Err: transport.ErrNoData}
	}

	payload := objectPayload{Errors: data.CreateDocument.Errors}
	if data.CreateDocument.Document != nil {
		payload.ID = data.CreateDocument.Document.ID
	}
	id, err := payload.result(op.OperationName)
	if err == nil {
		c.logger.Info("document created", zap.String("id", id))
	}
	return id, err
}

// PublishDocument publishes an existing document
func (c *Client) PublishDocument(ctx context.Context, documentID string) (string, error) {
	var data struct {
		PublishDocument *struct {
			Errors   []UserError `json:"errors"`
			Document *struct {
				ID string `json:"id"`
			} `json:"document"`
		} `json:"publishDocument"`
	}

	op := transport.Operation{
		Query:         publishDocumentMutation,
		Variables:     map[string]interface{}{"documentId": documentID},
		OperationName: "publishDocumentMutation",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}
	if data.PublishDocument == nil {
		return "", &OperationError{Operation: op.OperationName, Err: transport.ErrNoData}
	}

	payload := objectPayload{Errors: data.PublishDocument.Errors}
	if data.PublishDocument.Document != nil {
		payload.ID = data.PublishDocument.Document.ID
	}
	return payload.result(op.OperationName)
}

// CreateAsset registers an asset and returns its id
func (c *Client) CreateAsset(ctx context.Context, asset Asset) (string, error) {
	var data struct {
		CreateAsset *struct {
			Errors []UserError `json:"errors"`
			Asset  *struct {
				ID string `json:"id"`
			} `json:"asset"`
		} `json:"createAsset"`
	}

	op := transport.Operation{
		Query:         createAssetMutation,
		Variables:     map[string]interface{}{"asset": asset},
		OperationName: "createAssetMutation",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}
	if data.CreateAsset == nil {
		return "", &OperationError{Operation: op.OperationName, Err: transport.ErrNoData}
	}

	payload := objectPayload{Errors: data.CreateAsset.Errors}
	if data.CreateAsset.Asset != nil {
		payload.ID = data.CreateAsset.Asset.ID
	}
	id, err := payload.result(op.OperationName)
	if err == nil {
		c.logger.Info("asset created", zap.String("id", id))
	}
	return id, err
}
