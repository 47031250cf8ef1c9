// Package client implements the portainer.Client interface on top of the
// internal HTTP transport.
package client

import (
	"strings"

	"github.com/stackops-io/portainerctl/internal/auth"
	"github.com/stackops-io/portainerctl/internal/constants"
	"github.com/stackops-io/portainerctl/internal/http"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// Client implements the portainer.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       portainer.Logger

	stacks    portainer.StacksClient
	docker    portainer.DockerClient
	endpoints portainer.EndpointsClient
	system    portainer.SystemClient
}

// New creates a new Portainer API client.
func New(config *portainer.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, portainer.ErrAPIEndpointRequired
	}

	tokenManager := createTokenManager(config)
	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.APIEndpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
	}

	client.stacks = NewStacksClient(httpClient, config.LegacyCreate)
	client.docker = NewDockerClient(httpClient)
	client.endpoints = NewEndpointsClient(httpClient)
	client.system = NewSystemClient(httpClient)

	return client, nil
}

// createTokenManager creates the appropriate token manager from the config.
// API keys are handled by the transport directly and need no manager.
func createTokenManager(config *portainer.Config) auth.TokenManager {
	if config.APIKey != "" {
		return nil
	}

	if config.Username != "" && config.Password != "" {
		return auth.NewJWTTokenManager(&auth.JWTConfig{
			AuthURL:  strings.TrimSuffix(config.APIEndpoint, "/") + "/auth",
			Username: config.Username,
			Password: config.Password,
		})
	}

	return nil // No authentication
}

// createHTTPClientOptions builds transport options from the config.
func createHTTPClientOptions(config *portainer.Config) []http.Option {
	var httpOpts []http.Option

	if config.APIKey != "" {
		httpOpts = append(httpOpts, http.WithAPIKey(config.APIKey))
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Stacks implements portainer.Client.Stacks.
func (c *Client) Stacks() portainer.StacksClient {
	return c.stacks
}

// Docker implements portainer.Client.Docker.
func (c *Client) Docker() portainer.DockerClient {
	return c.docker
}

// Endpoints implements portainer.Client.Endpoints.
func (c *Client) Endpoints() portainer.EndpointsClient {
	return c.endpoints
}

// System implements portainer.Client.System.
func (c *Client) System() portainer.SystemClient {
	return c.system
}

// loggerAdapter adapts portainer.Logger to http.Logger.
type loggerAdapter struct {
	logger portainer.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
