package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stackops-io/portainerctl/internal/http"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// EndpointsClient implements portainer.EndpointsClient.
type EndpointsClient struct {
	httpClient *http.Client
}

// NewEndpointsClient creates a new endpoints client.
func NewEndpointsClient(httpClient *http.Client) *EndpointsClient {
	return &EndpointsClient{httpClient: httpClient}
}

// List implements portainer.EndpointsClient.List.
func (c *EndpointsClient) List(ctx context.Context) ([]portainer.Endpoint, error) {
	resp, err := c.httpClient.Get(ctx, "/endpoints", nil)
	if err != nil {
		return nil, fmt.Errorf("listing endpoints: %w", err)
	}

	var endpoints []portainer.Endpoint

	err = json.Unmarshal(resp.Body, &endpoints)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoints list response: %w", err)
	}

	return endpoints, nil
}

// Get implements portainer.EndpointsClient.Get.
func (c *EndpointsClient) Get(ctx context.Context, endpointID int) (*portainer.Endpoint, error) {
	path := fmt.Sprintf("/endpoints/%d", endpointID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting endpoint: %w", err)
	}

	var endpoint portainer.Endpoint

	err = json.Unmarshal(resp.Body, &endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint response: %w", err)
	}

	return &endpoint, nil
}

// GetByName implements portainer.EndpointsClient.GetByName. Unlike stacks,
// a missing endpoint is an error: callers resolve a name to an id before
// running the pipeline and cannot proceed without one.
func (c *EndpointsClient) GetByName(ctx context.Context, name string) (*portainer.Endpoint, error) {
	endpoints, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range endpoints {
		if endpoints[i].Name == name {
			return &endpoints[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %q", portainer.ErrEndpointNotFound, name)
}
