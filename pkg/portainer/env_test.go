package portainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEnv(t *testing.T) {
	tests := []struct {
		name      string
		existing  []EnvVar
		overrides map[string]string
		expected  []EnvVar
	}{
		{
			name:      "replace in place and append",
			existing:  []EnvVar{{Name: "A", Value: "1"}},
			overrides: map[string]string{"A": "2", "B": "3"},
			expected:  []EnvVar{{Name: "A", Value: "2"}, {Name: "B", Value: "3"}},
		},
		{
			name:      "no overrides keeps existing",
			existing:  []EnvVar{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}},
			overrides: nil,
			expected:  []EnvVar{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}},
		},
		{
			name:      "nil existing appends sorted",
			existing:  nil,
			overrides: map[string]string{"B": "2", "A": "1"},
			expected:  []EnvVar{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}},
		},
		{
			name:      "order of existing entries is preserved",
			existing:  []EnvVar{{Name: "Z", Value: "z"}, {Name: "A", Value: "a"}},
			overrides: map[string]string{"A": "new"},
			expected:  []EnvVar{{Name: "Z", Value: "z"}, {Name: "A", Value: "new"}},
		},
		{
			name:      "server-side duplicates are all updated",
			existing:  []EnvVar{{Name: "A", Value: "1"}, {Name: "A", Value: "2"}},
			overrides: map[string]string{"A": "3"},
			expected:  []EnvVar{{Name: "A", Value: "3"}, {Name: "A", Value: "3"}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			merged := MergeEnv(testCase.existing, testCase.overrides)
			assert.Equal(t, testCase.expected, merged)
		})
	}
}

func TestMergeEnvDoesNotMutateInput(t *testing.T) {
	existing := []EnvVar{{Name: "A", Value: "1"}}

	_ = MergeEnv(existing, map[string]string{"A": "2"})

	assert.Equal(t, "1", existing[0].Value)
}

func TestEnvFromMap(t *testing.T) {
	env := EnvFromMap(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []EnvVar{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}}, env)

	assert.Empty(t, EnvFromMap(nil))
}

func TestParseEnvOverrides(t *testing.T) {
	t.Run("valid pairs", func(t *testing.T) {
		overrides, err := ParseEnvOverrides([]string{"A=1", "B=x=y", "C="})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "1", "B": "x=y", "C": ""}, overrides)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := ParseEnvOverrides([]string{"A"})
		require.ErrorIs(t, err, ErrInvalidEnvVarFormat)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := ParseEnvOverrides([]string{"=1"})
		require.ErrorIs(t, err, ErrInvalidEnvVarFormat)
	})
}
