package portainer

import (
	"context"
	"time"
)

// StacksClient provides access to the stack resource.
type StacksClient interface {
	List(ctx context.Context, endpointID int) ([]Stack, error)
	Get(ctx context.Context, stackID int) (*Stack, error)
	GetByName(ctx context.Context, endpointID int, name string) (*Stack, error)
	Create(ctx context.Context, endpointID int, request *StackCreateRequest) (*Stack, error)
	Update(ctx context.Context, stackID, endpointID int, request *StackUpdateRequest) (*Stack, error)
	Delete(ctx context.Context, stackID, endpointID int) error
	GetFile(ctx context.Context, stackID int) (string, error)
}

// DockerClient provides access to the Docker API proxied through an endpoint.
type DockerClient interface {
	ConnectNetwork(ctx context.Context, endpointID int, network, container string) error
	DisconnectNetwork(ctx context.Context, endpointID int, network, container string, force bool) error
	PruneImages(ctx context.Context, endpointID int) (*ImagesPruneReport, error)
	PruneVolumes(ctx context.Context, endpointID int) (*VolumesPruneReport, error)
}

// EndpointsClient provides access to the endpoint (environment) resource.
type EndpointsClient interface {
	List(ctx context.Context) ([]Endpoint, error)
	Get(ctx context.Context, endpointID int) (*Endpoint, error)
	GetByName(ctx context.Context, name string) (*Endpoint, error)
}

// SystemClient provides access to instance-level information.
type SystemClient interface {
	Status(ctx context.Context) (*SystemStatus, error)
}

// Client is the full Portainer API client surface.
type Client interface {
	Stacks() StacksClient
	Docker() DockerClient
	Endpoints() EndpointsClient
	System() SystemClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a portainer.Client.
//
// # Authentication
//
// Provide either Username/Password (the client obtains a JWT from /auth on
// first use and attaches it as a Bearer token for the process lifetime) or
// APIKey (sent as X-API-Key on every request). If both are set, the API key
// wins. Without credentials, requests are sent unauthenticated.
//
// # Retries
//
// Every request is made exactly once unless RetryMax is set; the original
// pipeline this client serves is strictly single-attempt.
type Config struct {
	// APIEndpoint: base URL of the Portainer API, e.g.
	// "https://portainer.example.com/api". portainerclient.New normalizes it
	// by trimming a trailing slash and adding "https://" if no scheme is set.
	APIEndpoint string

	// Username and Password for JWT authentication against /auth.
	Username string
	Password string

	// APIKey: a Portainer access token, sent as the X-API-Key header.
	APIKey string

	// LegacyCreate: use the pre-2.0 create request shape
	// (POST /stacks?type=2&method=string) instead of
	// POST /stacks/create/standalone/string.
	LegacyCreate bool

	// RetryMax: maximum retries for transient failures. Defaults to 0.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff when RetryMax > 0.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and Deployer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
