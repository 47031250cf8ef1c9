package portainer

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Stack represents a deployed stack as returned by the Portainer API.
type Stack struct {
	ID         int      `json:"Id"                 yaml:"id"`
	Name       string   `json:"Name"               yaml:"name"`
	Type       int      `json:"Type,omitempty"     yaml:"type,omitempty"`
	EndpointID int      `json:"EndpointId"         yaml:"endpoint_id"`
	Env        []EnvVar `json:"Env"                yaml:"env"`
	Status     int      `json:"Status,omitempty"   yaml:"status,omitempty"`
	EntryPoint string   `json:"EntryPoint,omitempty" yaml:"entry_point,omitempty"`
	CreatedBy  string   `json:"CreatedBy,omitempty"  yaml:"created_by,omitempty"`
	UpdatedBy  string   `json:"UpdatedBy,omitempty"  yaml:"updated_by,omitempty"`
}

// Stack types as used by the Portainer API.
const (
	StackTypeSwarm      = 1
	StackTypeCompose    = 2
	StackTypeKubernetes = 3
)

// EnvVar is a single environment entry attached to a stack. The server may
// return non-string values (numbers, booleans); they are coerced to their
// string form on unmarshal so the pair can be round-tripped unchanged.
type EnvVar struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// UnmarshalJSON accepts string, number and boolean values.
func (e *EnvVar) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("parsing env entry: %w", err)
	}

	e.Name = raw.Name

	if len(raw.Value) == 0 {
		e.Value = ""

		return nil
	}

	var str string
	if json.Unmarshal(raw.Value, &str) == nil {
		e.Value = str

		return nil
	}

	var num json.Number
	if json.Unmarshal(raw.Value, &num) == nil {
		e.Value = num.String()

		return nil
	}

	var b bool
	if json.Unmarshal(raw.Value, &b) == nil {
		e.Value = strconv.FormatBool(b)

		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedEnvValue, string(raw.Value))
}

// StackCreateRequest is the body for standalone stack creation from a
// compose file string.
type StackCreateRequest struct {
	Name             string   `json:"name"`
	StackFileContent string   `json:"stackFileContent"`
	Env              []EnvVar `json:"env"`
}

// StackUpdateRequest is the body for updating an existing stack. PullImage
// asks the endpoint to re-pull referenced images before redeploying.
type StackUpdateRequest struct {
	Env              []EnvVar `json:"env"`
	StackFileContent string   `json:"stackFileContent"`
	PullImage        bool     `json:"pullImage"`
	Prune            bool     `json:"prune,omitempty"`
}

// Endpoint represents a Portainer environment (endpoint).
type Endpoint struct {
	ID        int    `json:"Id"                  yaml:"id"`
	Name      string `json:"Name"                yaml:"name"`
	Type      int    `json:"Type,omitempty"      yaml:"type,omitempty"`
	URL       string `json:"URL,omitempty"       yaml:"url,omitempty"`
	GroupID   int    `json:"GroupId,omitempty"   yaml:"group_id,omitempty"`
	PublicURL string `json:"PublicURL,omitempty" yaml:"public_url,omitempty"`
	Status    int    `json:"Status,omitempty"    yaml:"status,omitempty"`
}

// SystemStatus is the response of the status probe.
type SystemStatus struct {
	Version    string `json:"Version"              yaml:"version"`
	InstanceID string `json:"InstanceID,omitempty" yaml:"instance_id,omitempty"`
}

// ImagesPruneReport is the Docker image prune response proxied through
// Portainer. Fields are zero-valued when the remote omits them.
type ImagesPruneReport struct {
	ImagesDeleted  []ImageDeleteItem `json:"ImagesDeleted"`
	SpaceReclaimed uint64            `json:"SpaceReclaimed"`
}

// ImageDeleteItem is one entry of an image prune report.
type ImageDeleteItem struct {
	Untagged string `json:"Untagged,omitempty"`
	Deleted  string `json:"Deleted,omitempty"`
}

// VolumesPruneReport is the Docker volume prune response proxied through
// Portainer.
type VolumesPruneReport struct {
	VolumesDeleted []string `json:"VolumesDeleted"`
	SpaceReclaimed uint64   `json:"SpaceReclaimed"`
}

// NetworkConnectRequest is the Docker network connect/disconnect body. The
// docker proxy passes it through verbatim, so the keys follow the Docker API.
type NetworkConnectRequest struct {
	Container string `json:"Container"`
	Force     bool   `json:"Force,omitempty"`
}

// AuthRequest is the body for the authentication endpoint.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the JWT returned on successful authentication.
type AuthResponse struct {
	JWT string `json:"jwt"`
}
