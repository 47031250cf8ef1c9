package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stackops-io/portainerctl/internal/http"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// DockerClient implements portainer.DockerClient. All paths go through the
// Portainer docker proxy (/endpoints/{id}/docker/...), so request and
// response bodies follow the Docker Engine API.
type DockerClient struct {
	httpClient *http.Client
}

// NewDockerClient creates a new docker proxy client.
func NewDockerClient(httpClient *http.Client) *DockerClient {
	return &DockerClient{httpClient: httpClient}
}

// ConnectNetwork implements portainer.DockerClient.ConnectNetwork.
func (c *DockerClient) ConnectNetwork(ctx context.Context, endpointID int, network, container string) error {
	path := fmt.Sprintf("/endpoints/%d/docker/networks/%s/connect", endpointID, url.PathEscape(network))

	_, err := c.httpClient.Post(ctx, path, portainer.NetworkConnectRequest{Container: container})
	if err != nil {
		return fmt.Errorf("connecting container %q to network %q: %w", container, network, err)
	}

	return nil
}

// DisconnectNetwork implements portainer.DockerClient.DisconnectNetwork.
func (c *DockerClient) DisconnectNetwork(ctx context.Context, endpointID int, network, container string, force bool) error {
	path := fmt.Sprintf("/endpoints/%d/docker/networks/%s/disconnect", endpointID, url.PathEscape(network))

	_, err := c.httpClient.Post(ctx, path, portainer.NetworkConnectRequest{Container: container, Force: force})
	if err != nil {
		return fmt.Errorf("disconnecting container %q from network %q: %w", container, network, err)
	}

	return nil
}

// PruneImages implements portainer.DockerClient.PruneImages. The dangling
// filter is set to "false" so all unused images are removed, not only
// untagged ones. A response without the expected counters yields an empty
// report, not an error.
func (c *DockerClient) PruneImages(ctx context.Context, endpointID int) (*portainer.ImagesPruneReport, error) {
	path := fmt.Sprintf("/endpoints/%d/docker/images/prune", endpointID)
	query := url.Values{"filters": []string{`{"dangling":["false"]}`}}

	resp, err := c.httpClient.PostWithQuery(ctx, path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("pruning images: %w", err)
	}

	report := &portainer.ImagesPruneReport{}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, report); err != nil {
			return nil, fmt.Errorf("parsing image prune response: %w", err)
		}
	}

	return report, nil
}

// PruneVolumes implements portainer.DockerClient.PruneVolumes.
func (c *DockerClient) PruneVolumes(ctx context.Context, endpointID int) (*portainer.VolumesPruneReport, error) {
	path := fmt.Sprintf("/endpoints/%d/docker/volumes/prune", endpointID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("pruning volumes: %w", err)
	}

	report := &portainer.VolumesPruneReport{}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, report); err != nil {
			return nil, fmt.Errorf("parsing volume prune response: %w", err)
		}
	}

	return report, nil
}
