package commands

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackops-io/portainerctl/internal/constants"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

func TestOutputObject(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantDone bool
	}{
		{"json is handled", constants.FormatJSON, true},
		{"yaml is handled", constants.FormatYAML, true},
		{"table falls through to the caller", constants.FormatTable, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			viper.Set("output", testCase.format)
			defer viper.Set("output", constants.FormatTable)

			done, err := outputObject(map[string]string{"name": "web"})
			require.NoError(t, err)
			assert.Equal(t, testCase.wantDone, done)
		})
	}
}

func TestStackTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "swarm", stackTypeName(portainer.StackTypeSwarm))
	assert.Equal(t, "compose", stackTypeName(portainer.StackTypeCompose))
	assert.Equal(t, "kubernetes", stackTypeName(portainer.StackTypeKubernetes))
	assert.Equal(t, "42", stackTypeName(42))
}

func TestLoadEnvOverrides_PairsWinOverFile(t *testing.T) {
	t.Parallel()

	overrides, err := loadEnvOverrides("", []string{"A=1", "B=2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, overrides)

	_, err = loadEnvOverrides("", []string{"no-separator"})
	require.Error(t, err)
}
