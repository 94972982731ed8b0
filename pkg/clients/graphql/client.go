package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rfdevuser/InventoryManagement/internal/config"
)

// ErrEmptyData indicates the server answered without a data object.
var ErrEmptyData = errors.New("graphql response carried no data")

// Client exposes the GraphQL operations used by the application.
type Client interface {
	Do(ctx context.Context, req Request, out any) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	endpoint   string
}

// NewClient builds a GraphQL client using the provided configuration values.
func NewClient(cfg config.GraphQLConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{
		httpClient: restyClient,
		endpoint:   cfg.Endpoint,
	}
}

// Request is a single GraphQL operation.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Error is one entry of a GraphQL errors array.
type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Errors is the errors array returned by the server.
type Errors []Error

func (e Errors) Error() string {
	messages := make([]string, 0, len(e))
	for _, item := range e {
		messages = append(messages, item.Message)
	}
	return "graphql: " + strings.Join(messages, "; ")
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors"`
}

// Do posts the operation and decodes the data object into out.
func (c *APIClient) Do(ctx context.Context, req Request, out any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("post graphql operation: %w", err)
	}

	var payload response
	decodeErr := json.Unmarshal(resp.Body(), &payload)

	if resp.StatusCode() >= http.StatusBadRequest {
		if decodeErr == nil && len(payload.Errors) > 0 {
			return fmt.Errorf("graphql http status %d: %w", resp.StatusCode(), payload.Errors)
		}
		return fmt.Errorf("graphql http status %d", resp.StatusCode())
	}

	if decodeErr != nil {
		return fmt.Errorf("decode graphql response: %w", decodeErr)
	}

	if len(payload.Errors) > 0 {
		return payload.Errors
	}

	if len(payload.Data) == 0 || string(payload.Data) == "null" {
		return ErrEmptyData
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(payload.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}
