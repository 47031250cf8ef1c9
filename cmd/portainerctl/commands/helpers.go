package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/stackops-io/portainerctl/internal/constants"
	"github.com/stackops-io/portainerctl/pkg/portainer"
	"github.com/stackops-io/portainerctl/pkg/portainerclient"
)

// Common static errors used throughout the commands package.
var (
	ErrURLRequired           = errors.New("Portainer URL is required (--url or PORTAINER_URL)")
	ErrEndpointRequired      = errors.New("endpoint is required (--endpoint or PORTAINER_ENDPOINT)")
	ErrStackNameRequired     = errors.New("stack name is required")
	ErrComposeFileRequired   = errors.New("compose file is required (--compose-file)")
	ErrCredentialsRequired   = errors.New("credentials are required (--api-key or --username/--password)")
	ErrPasswordPromptNeedTTY = errors.New("password prompt requires a terminal; pass --password or PORTAINER_PASSWORD")
)

// createClient builds a portainer.Client from the global flags and
// PORTAINER_* environment variables.
func createClient(ctx context.Context) (portainer.Client, error) {
	endpoint := viper.GetString("url")
	if endpoint == "" {
		return nil, ErrURLRequired
	}

	config := &portainer.Config{
		APIEndpoint:  endpoint,
		Username:     viper.GetString("username"),
		Password:     viper.GetString("password"),
		APIKey:       viper.GetString("api_key"),
		LegacyCreate: viper.GetBool("legacy_create"),
		Logger:       newLogger(),
		Debug:        viper.GetBool("verbose"),
	}

	client, err := portainerclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// createDeployer builds a Deployer bound to the configured endpoint.
func createDeployer(ctx context.Context) (*portainer.Deployer, portainer.Client, error) {
	client, err := createClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	endpointID, err := resolveEndpointID(ctx, client)
	if err != nil {
		return nil, nil, err
	}

	deployer := portainer.NewDeployer(client, endpointID,
		portainer.WithDeployLogger(newLogger()),
		portainer.WithProxyContainer(viper.GetString("proxy_container")),
	)

	return deployer, client, nil
}

// resolveEndpointID resolves the configured endpoint, which may be a numeric
// id or an endpoint name, into its id.
func resolveEndpointID(ctx context.Context, client portainer.Client) (int, error) {
	value := viper.GetString("endpoint")
	if value == "" {
		return 0, ErrEndpointRequired
	}

	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	endpoint, err := client.Endpoints().GetByName(ctx, value)
	if err != nil {
		return 0, fmt.Errorf("resolving endpoint %q: %w", value, err)
	}

	return endpoint.ID, nil
}

// loadEnvOverrides combines --env-file contents with --env pairs, the pairs
// taking precedence.
func loadEnvOverrides(envFile string, pairs []string) (map[string]string, error) {
	overrides := make(map[string]string)

	if envFile != "" {
		fromFile, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("reading env file %q: %w", envFile, err)
		}

		for key, value := range fromFile {
			overrides[key] = value
		}
	}

	fromPairs, err := portainer.ParseEnvOverrides(pairs)
	if err != nil {
		return nil, err
	}

	for key, value := range fromPairs {
		overrides[key] = value
	}

	return overrides, nil
}

// outputObject renders v as json or yaml when the output flag asks for it.
// It returns false when the caller should render its own table instead.
func outputObject(v interface{}) (bool, error) {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return true, encoder.Encode(v)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return true, encoder.Encode(v)
	default:
		return false, nil
	}
}

// newLogger builds the progress logger the client and deployer write to.
func newLogger() portainer.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{Level: level})

	return &slogLogger{logger: slog.New(handler)}
}

// slogLogger adapts log/slog to the portainer.Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, attrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, attrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, attrs(fields)...)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, attrs(fields)...)
}

func attrs(fields map[string]interface{}) []any {
	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}

	return args
}
