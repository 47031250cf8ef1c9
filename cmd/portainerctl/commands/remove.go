package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the remove command
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove STACK_NAME",
		Aliases: []string{"rm", "down"},
		Short:   "Remove a stack",
		Long: `Remove a stack by name.

The reverse-proxy container is force-disconnected from the stack's network
before the delete, and unused images and volumes on the endpoint are pruned
afterwards. A stack that does not exist is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == "" {
				return ErrStackNameRequired
			}

			ctx := context.Background()

			deployer, _, err := createDeployer(ctx)
			if err != nil {
				return err
			}

			err = deployer.Delete(ctx, name)
			if err != nil {
				return err
			}

			fmt.Printf("Stack %s removed\n", name)

			return nil
		},
	}
}
