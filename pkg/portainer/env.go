package portainer

import (
	"fmt"
	"sort"
	"strings"
)

// MergeEnv merges override values into an existing env list and returns a new
// slice. Entries whose name matches an override key keep their position and
// get the new value; override keys with no matching entry are appended in
// sorted key order. Existing entries are never removed or reordered, and
// duplicates in the existing list are all updated.
func MergeEnv(existing []EnvVar, overrides map[string]string) []EnvVar {
	merged := make([]EnvVar, len(existing))
	copy(merged, existing)

	seen := make(map[string]bool, len(existing))

	for i := range merged {
		if value, ok := overrides[merged[i].Name]; ok {
			merged[i].Value = value
			seen[merged[i].Name] = true
		}
	}

	remaining := make([]string, 0, len(overrides))

	for name := range overrides {
		if !seen[name] {
			remaining = append(remaining, name)
		}
	}

	sort.Strings(remaining)

	for _, name := range remaining {
		merged = append(merged, EnvVar{Name: name, Value: overrides[name]})
	}

	return merged
}

// EnvFromMap converts an override map to env entries in sorted key order.
func EnvFromMap(overrides map[string]string) []EnvVar {
	return MergeEnv(nil, overrides)
}

// ParseEnvOverrides parses KEY=VALUE pairs into an override map. The value
// may contain '=' characters; only the first one splits.
func ParseEnvOverrides(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEnvVarFormat, pair)
		}

		overrides[key] = value
	}

	return overrides, nil
}
