package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackops-io/portainerctl/cmd/portainerctl/commands"
	"github.com/stackops-io/portainerctl/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "portainerctl",
	Short: "Portainer stack deployment CLI",
	Long: `A command-line interface for deploying and managing stacks on Portainer.

Designed for CI/CD pipelines: every flag can be supplied through a
PORTAINER_* environment variable, so a pipeline step only needs the stack
name and a compose file to deploy, update, or tear down a stack.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.portainerctl/config.yml)")
	rootCmd.PersistentFlags().StringP("url", "u", "", "Portainer base URL")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "endpoint id or name the operations are bound to")
	rootCmd.PersistentFlags().String("username", "", "username for JWT authentication")
	rootCmd.PersistentFlags().String("password", "", "password for JWT authentication")
	rootCmd.PersistentFlags().String("api-key", "", "Portainer access token (sent as X-API-Key)")
	rootCmd.PersistentFlags().String("output", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("legacy-create", false, "use the pre-2.0 stack create request shape")
	rootCmd.PersistentFlags().String("proxy-container", "traefik", "reverse-proxy container attached to stack networks (empty to disable)")

	// Bind flags to viper
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("username", rootCmd.PersistentFlags().Lookup("username"))
	_ = viper.BindPFlag("password", rootCmd.PersistentFlags().Lookup("password"))
	_ = viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("legacy_create", rootCmd.PersistentFlags().Lookup("legacy-create"))
	_ = viper.BindPFlag("proxy_container", rootCmd.PersistentFlags().Lookup("proxy-container"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewDeployCommand())
	rootCmd.AddCommand(commands.NewRemoveCommand())
	rootCmd.AddCommand(commands.NewStacksCommand())
	rootCmd.AddCommand(commands.NewEndpointsCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".portainerctl")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.portainerctl/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match (PORTAINER_URL, PORTAINER_API_KEY...)
	viper.SetEnvPrefix("PORTAINER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
