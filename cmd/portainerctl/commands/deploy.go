package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewDeployCommand creates the deploy command
func NewDeployCommand() *cobra.Command {
	var (
		composeFile string
		envPairs    []string
		envFile     string
	)

	cmd := &cobra.Command{
		Use:   "deploy STACK_NAME",
		Short: "Deploy a stack",
		Long: `Create or update a stack from a compose file.

When a stack with the given name already exists on the endpoint it is
updated in place: environment overrides are merged into the stack's current
environment and the endpoint re-pulls the referenced images. Otherwise the
stack is created and the reverse-proxy container is attached to the
<name>_network network.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == "" {
				return ErrStackNameRequired
			}

			if composeFile == "" {
				return ErrComposeFileRequired
			}

			content, err := os.ReadFile(composeFile)
			if err != nil {
				return fmt.Errorf("reading compose file %q: %w", composeFile, err)
			}

			overrides, err := loadEnvOverrides(envFile, envPairs)
			if err != nil {
				return err
			}

			ctx := context.Background()

			deployer, _, err := createDeployer(ctx)
			if err != nil {
				return err
			}

			stack, err := deployer.Deploy(ctx, name, string(content), overrides)
			if err != nil {
				return err
			}

			fmt.Printf("Stack %s deployed (id: %d)\n", stack.Name, stack.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&composeFile, "compose-file", "f", "", "path to the compose file to deploy")
	cmd.Flags().StringArrayVar(&envPairs, "env", nil, "environment override as KEY=VALUE (repeatable)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "file with environment overrides in dotenv format")

	return cmd
}
