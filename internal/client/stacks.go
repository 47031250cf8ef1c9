package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/stackops-io/portainerctl/internal/http"
	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// StacksClient implements portainer.StacksClient.
type StacksClient struct {
	httpClient   *http.Client
	legacyCreate bool
}

// NewStacksClient creates a new stacks client. legacyCreate selects the
// pre-2.0 create request shape (POST /stacks?type=2&method=string).
func NewStacksClient(httpClient *http.Client, legacyCreate bool) *StacksClient {
	return &StacksClient{
		httpClient:   httpClient,
		legacyCreate: legacyCreate,
	}
}

// List implements portainer.StacksClient.List. The endpoint returns the
// complete set in one response; there is no pagination.
func (c *StacksClient) List(ctx context.Context, endpointID int) ([]portainer.Stack, error) {
	query := url.Values{"endpointId": []string{strconv.Itoa(endpointID)}}

	resp, err := c.httpClient.Get(ctx, "/stacks", query)
	if err != nil {
		return nil, fmt.Errorf("listing stacks: %w", err)
	}

	var stacks []portainer.Stack

	err = json.Unmarshal(resp.Body, &stacks)
	if err != nil {
		return nil, fmt.Errorf("parsing stacks list response: %w", err)
	}

	return stacks, nil
}

// Get implements portainer.StacksClient.Get.
func (c *StacksClient) Get(ctx context.Context, stackID int) (*portainer.Stack, error) {
	path := fmt.Sprintf("/stacks/%d", stackID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting stack: %w", err)
	}

	var stack portainer.Stack

	err = json.Unmarshal(resp.Body, &stack)
	if err != nil {
		return nil, fmt.Errorf("parsing stack response: %w", err)
	}

	return &stack, nil
}

// GetByName implements portainer.StacksClient.GetByName. Names are matched
// exactly and the first match in server order wins. A missing stack is not
// an error: the result is (nil, nil).
func (c *StacksClient) GetByName(ctx context.Context, endpointID int, name string) (*portainer.Stack, error) {
	stacks, err := c.List(ctx, endpointID)
	if err != nil {
		return nil, err
	}

	for i := range stacks {
		if stacks[i].Name == name {
			return &stacks[i], nil
		}
	}

	return nil, nil
}

// Create implements portainer.StacksClient.Create.
func (c *StacksClient) Create(ctx context.Context, endpointID int, request *portainer.StackCreateRequest) (*portainer.Stack, error) {
	path := "/stacks/create/standalone/string"
	query := url.Values{"endpointId": []string{strconv.Itoa(endpointID)}}

	if c.legacyCreate {
		path = "/stacks"
		query.Set("type", strconv.Itoa(portainer.StackTypeCompose))
		query.Set("method", "string")
	}

	resp, err := c.httpClient.PostWithQuery(ctx, path, query, request)
	if err != nil {
		return nil, fmt.Errorf("creating stack: %w", err)
	}

	var stack portainer.Stack

	err = json.Unmarshal(resp.Body, &stack)
	if err != nil {
		return nil, fmt.Errorf("parsing stack response: %w", err)
	}

	return &stack, nil
}

// Update implements portainer.StacksClient.Update.
func (c *StacksClient) Update(ctx context.Context, stackID, endpointID int, request *portainer.StackUpdateRequest) (*portainer.Stack, error) {
	path := fmt.Sprintf("/stacks/%d", stackID)
	query := url.Values{"endpointId": []string{strconv.Itoa(endpointID)}}

	resp, err := c.httpClient.PutWithQuery(ctx, path, query, request)
	if err != nil {
		return nil, fmt.Errorf("updating stack: %w", err)
	}

	var stack portainer.Stack

	err = json.Unmarshal(resp.Body, &stack)
	if err != nil {
		return nil, fmt.Errorf("parsing stack response: %w", err)
	}

	return &stack, nil
}

// Delete implements portainer.StacksClient.Delete.
func (c *StacksClient) Delete(ctx context.Context, stackID, endpointID int) error {
	path := fmt.Sprintf("/stacks/%d", stackID)
	query := url.Values{"endpointId": []string{strconv.Itoa(endpointID)}}

	_, err := c.httpClient.Delete(ctx, path, query)
	if err != nil {
		return fmt.Errorf("deleting stack: %w", err)
	}

	return nil
}

// GetFile implements portainer.StacksClient.GetFile.
func (c *StacksClient) GetFile(ctx context.Context, stackID int) (string, error) {
	path := fmt.Sprintf("/stacks/%d/file", stackID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return "", fmt.Errorf("getting stack file: %w", err)
	}

	var file struct {
		StackFileContent string `json:"StackFileContent"`
	}

	err = json.Unmarshal(resp.Body, &file)
	if err != nil {
		return "", fmt.Errorf("parsing stack file response: %w", err)
	}

	return file.StackFileContent, nil
}
