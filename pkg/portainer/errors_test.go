package portainer

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError(t *testing.T) {
	t.Run("structured body", func(t *testing.T) {
		apiErr := ParseAPIError(http.StatusConflict, []byte(`{"message":"stack exists","details":"a stack with that name is already deployed"}`))
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		assert.Equal(t, "stack exists", apiErr.Message)
		assert.Contains(t, apiErr.Error(), "already deployed")
	})

	t.Run("raw body is preserved", func(t *testing.T) {
		apiErr := ParseAPIError(http.StatusBadGateway, []byte("upstream timed out"))
		assert.Equal(t, "upstream timed out", apiErr.Message)
	})

	t.Run("empty body falls back to status text", func(t *testing.T) {
		apiErr := ParseAPIError(http.StatusNotFound, nil)
		assert.Equal(t, "Not Found", apiErr.Message)
	})
}

func TestErrorClassification(t *testing.T) {
	notFound := fmt.Errorf("getting stack: %w", ParseAPIError(http.StatusNotFound, nil))
	unauthorized := fmt.Errorf("listing stacks: %w", ParseAPIError(http.StatusUnauthorized, nil))
	forbidden := fmt.Errorf("deleting stack: %w", ParseAPIError(http.StatusForbidden, nil))

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(unauthorized))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", ErrStackNotFound)))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(notFound))

	assert.True(t, IsForbidden(forbidden))
	assert.False(t, IsForbidden(notFound))
}

func TestAPIErrorMessage(t *testing.T) {
	require.Equal(t, "API error (status: 500)", (&APIError{StatusCode: 500}).Error())
	require.Equal(t, "nope (status: 403)", (&APIError{StatusCode: 403, Message: "nope"}).Error())
	require.Equal(t, "nope (status: 403)", (&APIError{StatusCode: 403, Message: "nope", Details: "nope"}).Error())
}
