// Package portainerclient provides the primary entry point for constructing
// a Portainer API client that implements the portainer.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the portainer package. Most
// applications should import portainerclient to build a client, then use the
// returned portainer.Client to access resource-specific clients, for example
// Stacks(), Docker(), Endpoints().
//
// Quick start
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
//
//	  // Username/password: a JWT is obtained from /auth on first use.
//	  cli, err := portainerclient.NewWithPassword(ctx, "portainer.example.com", "admin", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a pre-issued access token:
//	  cli, err = portainerclient.NewWithAPIKey(ctx, "portainer.example.com", "ptr_...")
//	  if err != nil { log.Fatal(err) }
//
//	  deployer := portainer.NewDeployer(cli, 1)
//	  _, err = deployer.Deploy(ctx, "web", "version: \"3\"\n...", nil)
//	  if err != nil { log.Fatal(err) }
//	}
package portainerclient
