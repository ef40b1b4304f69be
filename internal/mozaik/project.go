package mozaik

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mozaik-cms/mozaik/internal/transport"
)

// ResetType selects what a project reset deletes
type ResetType string

const (
	ResetContentTypes ResetType = "CONTENT_TYPES"
	ResetDocuments    ResetType = "DOCUMENTS"
	ResetAssets       ResetType = "ASSETS"
)

// ParseResetType accepts the enum value in any case, with dashes or underscores
func ParseResetType(s string) (ResetType, error) {
	t := ResetType(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	switch t {
	case ResetContentTypes, ResetDocuments, ResetAssets:
		return t, nil
	default:
		return "", fmt.Errorf("unknown reset type %q, use content-types, documents or assets", s)
	}
}

// ProjectID returns the id of the project the access token belongs to
func (c *Client) ProjectID(ctx context.Context) (string, error) {
	var data struct {
		Project *struct {
			ID string `json:"id"`
		} `json:"project"`
	}

	op := transport.Operation{Query: projectIDQuery, OperationName: "projectId"}
	if err := c.execute(ctx, op, &data); err != nil {
		return "", err
	}
	if data.Project == nil {
		return "", &OperationError{Operation: op.OperationName, Err: ErrNoProjectAccess}
	}
	return data.Project.ID, nil
}

// ResetProject deletes every content type, document or asset of a project
func (c *Client) ResetProject(ctx context.Context, projectID string, resetType ResetType) error {
	var data struct {
		ResetProject *struct {
			Errors  []UserError `json:"errors"`
			Project *struct {
				ID string `json:"id"`
			} `json:"project"`
		} `json:"resetProject"`
	}

	op := transport.Operation{
		Query: resetProjectMutation,
		Variables: map[string]interface{}{
			"projectId": projectID,
			"resetType": resetType,
		},
		OperationName: "resetProject",
	}
	if err := c.execute(ctx, op, &data); err != nil {
		return err
	}

	payload := data.ResetProject
	if payload == nil {
		return &OperationError{Operation: op.OperationName, Err: transport.ErrNoData}
	}
	if len(payload.Errors) > 0 || payload.Project == nil {
		return &OperationError{Operation: op.OperationName, UserErrors: payload.Errors}
	}

	c.logger.Warn("project reset", zap.String("project_id", projectID), zap.String("reset_type", string(resetType)))
	return nil
}
