package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfdevuser/InventoryManagement/internal/config"
	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

type capturedRequest struct {
	Request
	Authorization string
}

func newTestServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.Authorization = r.Header.Get("Authorization")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured.Request))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInsertFabricDetailsSendsCoercedVariables(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusOK, `{"data":{"insertFabricDetails":{"qrCodeUrl":"https://x/y.png"}}}`, &captured)

	client := NewClient(config.GraphQLConfig{Endpoint: srv.URL, Token: "secret"})
	result, err := client.InsertFabricDetails(context.Background(), models.FabricInput{
		FabricType:     "Cotton",
		Colour:         "Blue",
		Length:         10,
		Width:          2.5,
		Price:          1200,
		DateOfPurchase: "2024-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x/y.png", result.QRCodeURL)

	assert.Equal(t, "Bearer secret", captured.Authorization)
	assert.Equal(t, "InsertFabricDetails", captured.OperationName)
	assert.Contains(t, captured.Query, "insertFabricDetails(")
	assert.Equal(t, map[string]any{
		"fabricType":     "Cotton",
		"colour":         "Blue",
		"length":         10.0,
		"width":          2.5,
		"price":          1200.0,
		"dateOfPurchase": "2024-01-01",
	}, captured.Variables)
}

func TestInsertFabricDetailsNullPayload(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"data":{"insertFabricDetails":null}}`, nil)

	result, err := NewClient(config.GraphQLConfig{Endpoint: srv.URL}).InsertFabricDetails(context.Background(), models.FabricInput{})
	require.NoError(t, err)
	assert.Empty(t, result.QRCodeURL)
}

func TestDoReturnsGraphQLErrors(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"data":null,"errors":[{"message":"duplicate fabric"},{"message":"bad date"}]}`, nil)

	err := NewClient(config.GraphQLConfig{Endpoint: srv.URL}).Do(context.Background(), Request{Query: "{x}"}, nil)
	require.Error(t, err)

	var gqlErrs Errors
	require.True(t, errors.As(err, &gqlErrs))
	assert.Len(t, gqlErrs, 2)
	assert.Equal(t, "graphql: duplicate fabric; bad date", err.Error())
}

func TestDoHTTPFailure(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `oops`, nil)

	err := NewClient(config.GraphQLConfig{Endpoint: srv.URL}).Do(context.Background(), Request{Query: "{x}"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDoEmptyData(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"data":null}`, nil)

	err := NewClient(config.GraphQLConfig{Endpoint: srv.URL}).Do(context.Background(), Request{Query: "{x}"}, nil)
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestDoUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	err := NewClient(config.GraphQLConfig{Endpoint: endpoint}).Do(context.Background(), Request{Query: "{x}"}, nil)
	assert.Error(t, err)
}
