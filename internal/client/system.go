package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stackops-io/portainerctl/internal/http"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// SystemClient implements portainer.SystemClient.
type SystemClient struct {
	httpClient *http.Client
}

// NewSystemClient creates a new system client.
func NewSystemClient(httpClient *http.Client) *SystemClient {
	return &SystemClient{httpClient: httpClient}
}

// Status implements portainer.SystemClient.Status.
func (c *SystemClient) Status(ctx context.Context) (*portainer.SystemStatus, error) {
	resp, err := c.httpClient.Get(ctx, "/system/status", nil)
	if err != nil {
		return nil, fmt.Errorf("getting system status: %w", err)
	}

	var status portainer.SystemStatus

	err = json.Unmarshal(resp.Body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing system status response: %w", err)
	}

	return &status, nil
}
