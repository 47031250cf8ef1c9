// Package portainer provides types, interfaces, and helpers for working with
// the Portainer HTTP API.
//
// # Overview
//
// The portainer package defines the domain types (Stack, EnvVar, Endpoint,
// prune reports) and the interfaces for resource-oriented clients
// (StacksClient, DockerClient, EndpointsClient, SystemClient). A concrete
// implementation of these clients is provided by the portainerclient package,
// which wires configuration, transport, and authentication. Most consumers
// should import portainerclient to construct a client and then interact with
// the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/stackops-io/portainerctl/pkg/portainer"
//	  "github.com/stackops-io/portainerctl/pkg/portainerclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := portainerclient.NewWithPassword(ctx, "https://portainer.example.com/api", "admin", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  stacks, err := cli.Stacks().List(ctx, 1)
//	  if err != nil { log.Fatal(err) }
//	  _ = stacks
//	}
//
// # Stack lifecycle orchestration
//
// Deployer wraps a Client with the deployment pipeline semantics: Deploy is
// create-or-update keyed on exact stack name, Create attaches the reverse
// proxy to the stack network as a best-effort side step, and Delete
// force-disconnects the proxy and prunes unused images and volumes after a
// successful removal. Required steps propagate their error after logging it;
// best-effort steps only log.
//
// # Errors
//
// API errors are represented by APIError, parsed from the structured
// {message, details} body Portainer returns on failures. Helpers such as
// IsNotFound, IsUnauthorized, and IsForbidden make it easy to branch on
// common cases.
package portainer
