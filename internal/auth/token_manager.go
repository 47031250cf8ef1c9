// Package auth provides token managers for the Portainer API: JWT tokens
// obtained from the /auth endpoint and static access tokens.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/stackops-io/portainerctl/internal/constants"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// TokenManager supplies and maintains the token attached to API requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// JWTConfig configures a JWT token manager.
type JWTConfig struct {
	// AuthURL is the full URL of the authentication endpoint,
	// e.g. "https://portainer.example.com/api/auth".
	AuthURL  string
	Username string
	Password string

	// HTTPClient overrides the client used for the auth request. Mainly for
	// tests; a default client with a timeout is used when nil.
	HTTPClient *http.Client
}

// JWTTokenManager obtains a JWT from the Portainer /auth endpoint on first
// use and holds it for the process lifetime. No expiry handling: a token is
// fetched once and reused until RefreshToken or SetToken replaces it.
type JWTTokenManager struct {
	config     *JWTConfig
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// NewJWTTokenManager creates a JWT token manager.
func NewJWTTokenManager(config *JWTConfig) *JWTTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	return &JWTTokenManager{
		config:     config,
		httpClient: httpClient,
	}
}

// GetToken returns the held token, authenticating first when none is held.
func (m *JWTTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" {
		return m.token, nil
	}

	token, err := m.authenticate(ctx)
	if err != nil {
		return "", err
	}

	m.token = token

	return m.token, nil
}

// RefreshToken discards the held token and authenticates again.
func (m *JWTTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.authenticate(ctx)
	if err != nil {
		return err
	}

	m.token = token

	return nil
}

// SetToken manually sets the held token. The expiry is ignored; Portainer
// JWTs are used until they stop working.
func (m *JWTTokenManager) SetToken(token string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

func (m *JWTTokenManager) authenticate(ctx context.Context) (string, error) {
	body, err := json.Marshal(portainer.AuthRequest{
		Username: m.config.Username,
		Password: m.config.Password,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.AuthURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating auth request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading auth response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("authenticating: %w", portainer.ParseAPIError(resp.StatusCode, data))
	}

	var authResp portainer.AuthResponse

	err = json.Unmarshal(data, &authResp)
	if err != nil {
		return "", fmt.Errorf("parsing auth response: %w", err)
	}

	if authResp.JWT == "" {
		return "", portainer.ErrNotAuthenticated
	}

	return authResp.JWT, nil
}

// StaticTokenManager holds a fixed token.
type StaticTokenManager struct {
	mu    sync.Mutex
	token string
}

// NewStaticTokenManager creates a token manager around a pre-issued token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the held token.
func (m *StaticTokenManager) GetToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token, nil
}

// RefreshToken is not supported for static tokens.
func (m *StaticTokenManager) RefreshToken(_ context.Context) error {
	return portainer.ErrStaticTokenRefresh
}

// SetToken replaces the held token.
func (m *StaticTokenManager) SetToken(token string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}
