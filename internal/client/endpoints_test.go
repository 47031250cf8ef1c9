package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalclient "github.com/stackops-io/portainerctl/internal/client"
	internalhttp "github.com/stackops-io/portainerctl/internal/http"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

func newEndpointsClient(t *testing.T, handler http.HandlerFunc) *internalclient.EndpointsClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return internalclient.NewEndpointsClient(internalhttp.NewClient(server.URL, nil))
}

func TestEndpointsClient_List(t *testing.T) {
	t.Parallel()

	endpointsClient := newEndpointsClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "/endpoints", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]portainer.Endpoint{
			{ID: 1, Name: "local"},
			{ID: 2, Name: "production"},
		})
	})

	endpoints, err := endpointsClient.List(context.Background())
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "production", endpoints[1].Name)
}

func TestEndpointsClient_Get(t *testing.T) {
	t.Parallel()

	endpointsClient := newEndpointsClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/endpoints/2", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(portainer.Endpoint{ID: 2, Name: "production"})
	})

	endpoint, err := endpointsClient.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, endpoint.ID)
}

func TestEndpointsClient_GetByName(t *testing.T) {
	t.Parallel()

	handler := func(writer http.ResponseWriter, request *http.Request) {
		_ = json.NewEncoder(writer).Encode([]portainer.Endpoint{
			{ID: 1, Name: "local"},
			{ID: 2, Name: "production"},
		})
	}

	t.Run("resolves name to endpoint", func(t *testing.T) {
		t.Parallel()

		endpointsClient := newEndpointsClient(t, handler)

		endpoint, err := endpointsClient.GetByName(context.Background(), "production")
		require.NoError(t, err)
		assert.Equal(t, 2, endpoint.ID)
	})

	t.Run("missing endpoint is an error", func(t *testing.T) {
		t.Parallel()

		endpointsClient := newEndpointsClient(t, handler)

		_, err := endpointsClient.GetByName(context.Background(), "staging")
		require.Error(t, err)
		assert.True(t, errors.Is(err, portainer.ErrEndpointNotFound))
	})
}
