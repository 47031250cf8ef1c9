package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/stackops-io/portainerctl/pkg/portainer"
)

// NewStacksCommand creates the stacks command group
func NewStacksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stacks",
		Aliases: []string{"stack"},
		Short:   "Manage stacks",
		Long:    "List and inspect stacks on the configured endpoint",
	}

	cmd.AddCommand(newStacksListCommand())
	cmd.AddCommand(newStacksGetCommand())
	cmd.AddCommand(newStacksFileCommand())

	return cmd
}

func newStacksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stacks",
		Long:  "List all stacks visible on the configured endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			endpointID, err := resolveEndpointID(ctx, client)
			if err != nil {
				return err
			}

			stacks, err := client.Stacks().List(ctx, endpointID)
			if err != nil {
				return fmt.Errorf("failed to list stacks: %w", err)
			}

			if done, err := outputObject(stacks); done {
				return err
			}

			if len(stacks) == 0 {
				fmt.Println("No stacks found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Type", "Endpoint", "Env Vars")

			for _, stack := range stacks {
				_ = table.Append(
					strconv.Itoa(stack.ID),
					stack.Name,
					stackTypeName(stack.Type),
					strconv.Itoa(stack.EndpointID),
					strconv.Itoa(len(stack.Env)),
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newStacksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get STACK_NAME",
		Short: "Get stack details",
		Long:  "Show details of a single stack, resolved by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			endpointID, err := resolveEndpointID(ctx, client)
			if err != nil {
				return err
			}

			stack, err := client.Stacks().GetByName(ctx, endpointID, args[0])
			if err != nil {
				return fmt.Errorf("failed to find stack: %w", err)
			}

			if stack == nil {
				return fmt.Errorf("stack %q not found", args[0])
			}

			if done, err := outputObject(stack); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.Itoa(stack.ID))
			_ = table.Append("Name", stack.Name)
			_ = table.Append("Type", stackTypeName(stack.Type))
			_ = table.Append("Endpoint", strconv.Itoa(stack.EndpointID))

			for _, env := range stack.Env {
				_ = table.Append("Env: "+env.Name, env.Value)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newStacksFileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "file STACK_NAME",
		Short: "Print a stack's compose file",
		Long:  "Fetch and print the compose file content of a stack, resolved by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			endpointID, err := resolveEndpointID(ctx, client)
			if err != nil {
				return err
			}

			stack, err := client.Stacks().GetByName(ctx, endpointID, args[0])
			if err != nil {
				return fmt.Errorf("failed to find stack: %w", err)
			}

			if stack == nil {
				return fmt.Errorf("stack %q not found", args[0])
			}

			content, err := client.Stacks().GetFile(ctx, stack.ID)
			if err != nil {
				return fmt.Errorf("failed to get stack file: %w", err)
			}

			fmt.Print(content)

			return nil
		},
	}
}

func stackTypeName(stackType int) string {
	switch stackType {
	case portainer.StackTypeSwarm:
		return "swarm"
	case portainer.StackTypeCompose:
		return "compose"
	case portainer.StackTypeKubernetes:
		return "kubernetes"
	default:
		return strconv.Itoa(stackType)
	}
}
