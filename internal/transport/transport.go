// Package transport sends GraphQL operations to the Mozaik backend.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Operation is one GraphQL request
type Operation struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
}

// GraphQLError is an entry of the response's errors list
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Response is a decoded GraphQL response
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// Err returns the response errors as one error, or nil
func (r *Response) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &ResponseError{Errors: r.Errors}
}

// Decode unmarshals the data member into v
func (r *Response) Decode(v interface{}) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return ErrNoData
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// ResponseError wraps the errors list of a response
type ResponseError struct {
	Errors []GraphQLError
}

func (e *ResponseError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// Transport executes GraphQL operations
type Transport interface {
	Execute(ctx context.Context, op Operation) (*Response, error)
}

// Func adapts a function to the Transport interface
type Func func(ctx context.Context, op Operation) (*Response, error)

// Execute calls f
func (f Func) Execute(ctx context.Context, op Operation) (*Response, error) {
	return f(ctx, op)
}
