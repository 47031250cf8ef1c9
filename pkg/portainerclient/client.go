// Package portainerclient provides the main entry point for creating
// Portainer API clients.
package portainerclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/stackops-io/portainerctl/internal/client"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// New creates a new Portainer API client from the given config. The API
// endpoint is normalized: a trailing slash is trimmed, "https://" is assumed
// when no scheme is given, and "/api" is appended when the URL does not
// already end with it.
func New(_ context.Context, config *portainer.Config) (portainer.Client, error) {
	if config == nil {
		return nil, portainer.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, portainer.ErrAPIEndpointRequired
	}

	apiEndpoint, err := normalizeEndpoint(config.APIEndpoint)
	if err != nil {
		return nil, err
	}

	config.APIEndpoint = apiEndpoint

	portainerClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return portainerClient, nil
}

// NewWithPassword creates a client that authenticates with username and
// password via /auth.
func NewWithPassword(ctx context.Context, endpoint, username, password string) (portainer.Client, error) {
	return New(ctx, &portainer.Config{
		APIEndpoint: endpoint,
		Username:    username,
		Password:    password,
	})
}

// NewWithAPIKey creates a client that authenticates with a Portainer access
// token sent as X-API-Key.
func NewWithAPIKey(ctx context.Context, endpoint, apiKey string) (portainer.Client, error) {
	return New(ctx, &portainer.Config{
		APIEndpoint: endpoint,
		APIKey:      apiKey,
	})
}

// normalizeEndpoint canonicalizes a user-supplied Portainer URL into the API
// base URL all request paths are joined onto.
func normalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid API endpoint: %w", err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", portainer.ErrNoHostInURL, endpoint)
	}

	if !strings.HasSuffix(parsed.Path, "/api") {
		endpoint += "/api"
	}

	return endpoint, nil
}
