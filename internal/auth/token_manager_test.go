package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackops-io/portainerctl/internal/auth"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

func TestJWTTokenManager_GetToken(t *testing.T) {
	t.Parallel()
	t.Run("authenticates on first use and caches the token", func(t *testing.T) {
		t.Parallel()

		authCalls := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authCalls++

			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/api/auth", request.URL.Path)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body portainer.AuthRequest

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "admin", body.Username)
			assert.Equal(t, "secret", body.Password)

			_ = json.NewEncoder(writer).Encode(portainer.AuthResponse{JWT: "jwt-123"})
		}))
		defer server.Close()

		manager := auth.NewJWTTokenManager(&auth.JWTConfig{
			AuthURL:  server.URL + "/api/auth",
			Username: "admin",
			Password: "secret",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "jwt-123", token)

		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "jwt-123", token)
		assert.Equal(t, 1, authCalls)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(writer).Encode(portainer.APIError{Message: "Invalid credentials"})
		}))
		defer server.Close()

		manager := auth.NewJWTTokenManager(&auth.JWTConfig{
			AuthURL:  server.URL + "/api/auth",
			Username: "admin",
			Password: "wrong",
		})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)

		apiErr := &portainer.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	})

	t.Run("empty jwt in response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(portainer.AuthResponse{})
		}))
		defer server.Close()

		manager := auth.NewJWTTokenManager(&auth.JWTConfig{
			AuthURL:  server.URL + "/api/auth",
			Username: "admin",
			Password: "secret",
		})

		_, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, portainer.ErrNotAuthenticated)
	})
}

func TestJWTTokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	authCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		authCalls++

		_ = json.NewEncoder(writer).Encode(portainer.AuthResponse{JWT: "jwt-refreshed"})
	}))
	defer server.Close()

	manager := auth.NewJWTTokenManager(&auth.JWTConfig{
		AuthURL:  server.URL + "/api/auth",
		Username: "admin",
		Password: "secret",
	})

	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	err = manager.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, authCalls)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-refreshed", token)
}

func TestJWTTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTTokenManager(&auth.JWTConfig{
		AuthURL:  "https://portainer.example.com/api/auth",
		Username: "admin",
		Password: "secret",
	})
	manager.SetToken("preset-token", time.Now().Add(time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "preset-token", token)
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("static-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)

	err = manager.RefreshToken(context.Background())
	require.ErrorIs(t, err, portainer.ErrStaticTokenRefresh)

	manager.SetToken("replaced", time.Time{})

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "replaced", token)
}
