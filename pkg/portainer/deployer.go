package portainer

import (
	"context"
	"errors"
	"fmt"
)

// Default reverse-proxy wiring. Stacks deployed by the pipeline expose their
// services on a per-stack network the proxy container joins.
const (
	DefaultProxyContainer = "traefik"
	NetworkSuffix         = "_network"
)

// Deployer drives the stack lifecycle against one endpoint: find, create,
// update, delete, plus the reverse-proxy network wiring and post-delete
// pruning around them. Required steps log and propagate their failure;
// best-effort steps log and swallow theirs.
type Deployer struct {
	client         Client
	endpointID     int
	logger         Logger
	proxyContainer string
}

// DeployerOption configures a Deployer.
type DeployerOption func(*Deployer)

// WithProxyContainer overrides the reverse-proxy container attached to stack
// networks. An empty name disables the network attach/detach steps.
func WithProxyContainer(name string) DeployerOption {
	return func(d *Deployer) {
		d.proxyContainer = name
	}
}

// WithDeployLogger sets the logger used for progress messages.
func WithDeployLogger(logger Logger) DeployerOption {
	return func(d *Deployer) {
		d.logger = logger
	}
}

// NewDeployer creates a Deployer bound to one endpoint.
func NewDeployer(client Client, endpointID int, opts ...DeployerOption) *Deployer {
	deployer := &Deployer{
		client:         client,
		endpointID:     endpointID,
		proxyContainer: DefaultProxyContainer,
	}

	for _, opt := range opts {
		opt(deployer)
	}

	if deployer.logger == nil {
		deployer.logger = nopLogger{}
	}

	return deployer
}

// Find returns the first stack on the endpoint whose name matches exactly,
// or nil when no stack matches. Absence is not an error.
func (d *Deployer) Find(ctx context.Context, name string) (*Stack, error) {
	stacks, err := d.client.Stacks().List(ctx, d.endpointID)
	if err != nil {
		return nil, fmt.Errorf("listing stacks: %w", err)
	}

	for i := range stacks {
		if stacks[i].Name == name {
			return &stacks[i], nil
		}
	}

	return nil, nil
}

// Create creates a new stack from the given file content and env overrides,
// then attaches the reverse-proxy container to the stack's network. The
// attach step is best-effort and never fails the create.
func (d *Deployer) Create(ctx context.Context, name, fileContent string, overrides map[string]string) (*Stack, error) {
	d.logger.Info("Creating stack", map[string]interface{}{"name": name})

	request := &StackCreateRequest{
		Name:             name,
		StackFileContent: fileContent,
		Env:              EnvFromMap(overrides),
	}

	stack, err := d.client.Stacks().Create(ctx, d.endpointID, request)
	if err != nil {
		d.logError("Creating stack failed", err)

		return nil, fmt.Errorf("creating stack %q: %w", name, err)
	}

	d.logger.Info("Created stack", map[string]interface{}{
		"name": stack.Name,
		"id":   stack.ID,
	})

	d.bestEffort("connecting proxy to stack network", func() error {
		return d.connectProxy(ctx, name)
	})

	return stack, nil
}

// Update merges env overrides into the stack's existing environment, sends
// the new file content and asks the endpoint to re-pull images.
func (d *Deployer) Update(ctx context.Context, stack *Stack, fileContent string, overrides map[string]string) (*Stack, error) {
	d.logger.Info("Updating stack", map[string]interface{}{"name": stack.Name})

	request := &StackUpdateRequest{
		Env:              MergeEnv(stack.Env, overrides),
		StackFileContent: fileContent,
		PullImage:        true,
	}

	updated, err := d.client.Stacks().Update(ctx, stack.ID, d.endpointID, request)
	if err != nil {
		d.logError("Updating stack failed", err)

		return nil, fmt.Errorf("updating stack %q: %w", stack.Name, err)
	}

	d.logger.Info("Updated stack", map[string]interface{}{"name": updated.Name})

	return updated, nil
}

// Deploy creates the named stack, or updates it when it already exists.
func (d *Deployer) Deploy(ctx context.Context, name, fileContent string, overrides map[string]string) (*Stack, error) {
	stack, err := d.Find(ctx, name)
	if err != nil {
		return nil, err
	}

	if stack == nil {
		return d.Create(ctx, name, fileContent, overrides)
	}

	return d.Update(ctx, stack, fileContent, overrides)
}

// Delete resolves the stack by name and removes it. A missing stack is a
// silent no-op. Before the delete the reverse-proxy container is
// force-disconnected from the stack's network, and after a successful delete
// unused images and volumes on the endpoint are pruned; both side steps are
// best-effort.
func (d *Deployer) Delete(ctx context.Context, name string) error {
	stack, err := d.Find(ctx, name)
	if err != nil {
		return err
	}

	if stack == nil {
		d.logger.Info("Stack not found, nothing to delete", map[string]interface{}{"name": name})

		return nil
	}

	d.bestEffort("disconnecting proxy from stack network", func() error {
		return d.disconnectProxy(ctx, name)
	})

	d.logger.Info("Deleting stack", map[string]interface{}{
		"name": stack.Name,
		"id":   stack.ID,
	})

	err = d.client.Stacks().Delete(ctx, stack.ID, d.endpointID)
	if err != nil {
		d.logError("Deleting stack failed", err)

		return fmt.Errorf("deleting stack %q: %w", name, err)
	}

	d.logger.Info("Deleted stack", map[string]interface{}{"name": stack.Name})

	d.bestEffort("pruning unused images", func() error {
		report, pruneErr := d.client.Docker().PruneImages(ctx, d.endpointID)
		if pruneErr != nil {
			return pruneErr
		}

		d.logger.Info("Pruned unused images", map[string]interface{}{
			"removed": len(report.ImagesDeleted),
		})

		return nil
	})

	d.bestEffort("pruning unused volumes", func() error {
		report, pruneErr := d.client.Docker().PruneVolumes(ctx, d.endpointID)
		if pruneErr != nil {
			return pruneErr
		}

		d.logger.Info("Pruned unused volumes", map[string]interface{}{
			"removed": len(report.VolumesDeleted),
		})

		return nil
	})

	return nil
}

func (d *Deployer) connectProxy(ctx context.Context, stackName string) error {
	if d.proxyContainer == "" {
		return nil
	}

	network := stackName + NetworkSuffix

	err := d.client.Docker().ConnectNetwork(ctx, d.endpointID, network, d.proxyContainer)
	if err != nil {
		return err
	}

	d.logger.Info("Connected proxy to stack network", map[string]interface{}{
		"container": d.proxyContainer,
		"network":   network,
	})

	return nil
}

func (d *Deployer) disconnectProxy(ctx context.Context, stackName string) error {
	if d.proxyContainer == "" {
		return nil
	}

	network := stackName + NetworkSuffix

	err := d.client.Docker().DisconnectNetwork(ctx, d.endpointID, network, d.proxyContainer, true)
	if err != nil {
		return err
	}

	d.logger.Info("Disconnected proxy from stack network", map[string]interface{}{
		"container": d.proxyContainer,
		"network":   network,
	})

	return nil
}

// bestEffort runs a side step, logging and discarding any failure so it can
// never fail the enclosing operation.
func (d *Deployer) bestEffort(step string, fn func() error) {
	err := fn()
	if err != nil {
		d.logger.Warn("Best-effort step failed", map[string]interface{}{
			"step":  step,
			"error": errorDetail(err),
		})
	}
}

// logError logs the structured API error body when one is available, and the
// raw error otherwise.
func (d *Deployer) logError(msg string, err error) {
	d.logger.Error(msg, map[string]interface{}{"error": errorDetail(err)})
}

func errorDetail(err error) string {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}

	return err.Error()
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
