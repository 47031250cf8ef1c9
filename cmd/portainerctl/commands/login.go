package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/stackops-io/portainerctl/internal/constants"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against a Portainer instance",
		Long: `Authenticate against the configured Portainer instance and report its
version. Useful as a pipeline preflight: it fails fast when the URL or the
credentials are wrong.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetString("url") == "" {
				return ErrURLRequired
			}

			if viper.GetString("api_key") == "" {
				if username == "" {
					username = viper.GetString("username")
				}

				if username == "" {
					reader := bufio.NewReader(os.Stdin)
					fmt.Print("Username: ")
					username, _ = reader.ReadString('\n')
					username = strings.TrimSpace(username)
				}

				if password == "" {
					password = viper.GetString("password")
				}

				if password == "" {
					if !term.IsTerminal(int(syscall.Stdin)) {
						return ErrPasswordPromptNeedTTY
					}

					fmt.Print("Password: ")

					bytePassword, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read password: %w", err)
					}

					password = string(bytePassword)

					fmt.Println()
				}

				if username == "" || password == "" {
					return ErrCredentialsRequired
				}

				viper.Set("username", username)
				viper.Set("password", password)
			}

			ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
			defer cancel()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			// An authenticated call; fails when the credentials are rejected.
			status, err := client.System().Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			fmt.Printf("Authenticated against Portainer %s at %s\n", status.Version, viper.GetString("url"))

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "login-username", "", "username (overrides --username)")
	cmd.Flags().StringVar(&password, "login-password", "", "password (overrides --password)")

	return cmd
}
