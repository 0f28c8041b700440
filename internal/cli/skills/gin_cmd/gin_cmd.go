package gin_cmd

import (
	"github.com/spf13/cobra"
)

// GinCmd returns the gin parent command with all subcommands.
func GinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gin",
		Short: "Scaffold Gin REST APIs with a layered domain layout",
		Long: `Generators for Go projects built on Gin and GORM.

Available subcommands:
  init        - Create a new Gin project
  domain      - Generate entity, repository, use case and handler for a domain
  infra       - Add storage, cache, queue or email infrastructure
  middleware  - Add HTTP middleware
  auth        - Add JWT authentication with local and/or Google sign in
  docs        - Generate an OpenAPI document from the handlers

Configuration:
  Layer directories, the API prefix and docs metadata can be customised in
  .skills.yaml or skills.yaml under the "generate.gin" key.

Examples:
  skills gin init blog --module-path github.com/acme/blog
  skills gin domain product --fields "name:string,price:float64,stock:int"
  skills gin infra --type cache --provider redis
  skills gin middleware --type ratelimit --type requestid
  skills gin docs --format json
`,
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(DomainCmd())
	cmd.AddCommand(InfraCmd())
	cmd.AddCommand(MiddlewareCmd())
	cmd.AddCommand(AuthCmd())
	cmd.AddCommand(DocsCmd())

	return cmd
}
