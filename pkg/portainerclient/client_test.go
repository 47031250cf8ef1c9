package portainerclient_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackops-io/portainerctl/pkg/portainer"
	"github.com/stackops-io/portainerctl/pkg/portainerclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := portainerclient.New(context.Background(), nil)
		require.ErrorIs(t, err, portainer.ErrConfigRequired)
	})

	t.Run("empty endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := portainerclient.New(context.Background(), &portainer.Config{})
		require.ErrorIs(t, err, portainer.ErrAPIEndpointRequired)
	})

	t.Run("creates client", func(t *testing.T) {
		t.Parallel()

		client, err := portainerclient.New(context.Background(), &portainer.Config{
			APIEndpoint: "https://portainer.example.com",
		})
		require.NoError(t, err)
		assert.NotNil(t, client.Stacks())
		assert.NotNil(t, client.Docker())
	})
}

func TestNew_EndpointNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		want     string
		wantErr  error
	}{
		{
			name:     "bare host gets scheme and api suffix",
			endpoint: "portainer.example.com",
			want:     "https://portainer.example.com/api",
		},
		{
			name:     "trailing slash trimmed",
			endpoint: "https://portainer.example.com/",
			want:     "https://portainer.example.com/api",
		},
		{
			name:     "existing api suffix kept",
			endpoint: "https://portainer.example.com/api",
			want:     "https://portainer.example.com/api",
		},
		{
			name:     "http scheme preserved",
			endpoint: "http://localhost:9000",
			want:     "http://localhost:9000/api",
		},
		{
			name:     "surrounding whitespace trimmed",
			endpoint: "  https://portainer.example.com  ",
			want:     "https://portainer.example.com/api",
		},
		{
			name:     "scheme without host",
			endpoint: "https:///",
			wantErr:  portainer.ErrNoHostInURL,
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := &portainer.Config{APIEndpoint: testCase.endpoint}

			_, err := portainerclient.New(context.Background(), config)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, config.APIEndpoint)
		})
	}
}

func TestNewWithPassword(t *testing.T) {
	t.Parallel()

	client, err := portainerclient.NewWithPassword(context.Background(), "portainer.example.com", "admin", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithAPIKey(t *testing.T) {
	t.Parallel()

	client, err := portainerclient.NewWithAPIKey(context.Background(), "portainer.example.com", "ptr_secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
