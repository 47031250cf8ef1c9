package portainer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured error body returned by the Portainer API,
// annotated with the HTTP status it arrived with.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Details    string `json:"details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" && e.Details != e.Message {
		return fmt.Sprintf("%s: %s (status: %d)", e.Message, e.Details, e.StatusCode)
	}

	if e.Message != "" {
		return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
	}

	return fmt.Sprintf("API error (status: %d)", e.StatusCode)
}

// Common static errors that can be wrapped with context.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrConfigRequired      = errors.New("config is required")
	ErrCredentialsRequired = errors.New("username and password or an API key is required")
	ErrEndpointIDRequired  = errors.New("endpoint ID is required")
	ErrStackNameRequired   = errors.New("stack name is required")
	ErrStackFileRequired   = errors.New("stack file content is required")
	ErrStackNotFound       = errors.New("stack not found")
	ErrEndpointNotFound    = errors.New("endpoint not found")
	ErrNoTokenManager      = errors.New("no token manager configured")
	ErrStaticTokenRefresh  = errors.New("static token cannot be refreshed")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidEnvVarFormat = errors.New("invalid environment variable format, expected KEY=VALUE")
	ErrUnsupportedEnvValue = errors.New("unsupported env value type")
	ErrNoHostInURL         = errors.New("no host specified in URL")
)

// IsNotFound checks whether the error is an API not-found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return errors.Is(err, ErrStackNotFound) || errors.Is(err, ErrEndpointNotFound)
}

// IsUnauthorized checks whether the error is an authentication failure.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks whether the error is an authorization failure.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}

	return false
}

// ParseAPIError parses a Portainer error body. When the body is not the
// structured shape, the raw text is preserved as the message so callers can
// still log something useful.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	if len(body) > 0 {
		err := json.Unmarshal(body, apiErr)
		if err != nil || apiErr.Message == "" {
			apiErr.Message = string(body)
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	return apiErr
}
