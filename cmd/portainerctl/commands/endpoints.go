package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewEndpointsCommand creates the endpoints command group
func NewEndpointsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint"},
		Short:   "Manage endpoints",
		Long:    "List Portainer endpoints (environments)",
	}

	cmd.AddCommand(newEndpointsListCommand())

	return cmd
}

func newEndpointsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List endpoints",
		Long:  "List all endpoints visible to the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			endpoints, err := client.Endpoints().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list endpoints: %w", err)
			}

			if done, err := outputObject(endpoints); done {
				return err
			}

			if len(endpoints) == 0 {
				fmt.Println("No endpoints found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "URL", "Public URL")

			for _, endpoint := range endpoints {
				_ = table.Append(
					strconv.Itoa(endpoint.ID),
					endpoint.Name,
					endpoint.URL,
					endpoint.PublicURL,
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
