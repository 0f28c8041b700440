package monorepo_cmd

import (
	"github.com/spf13/cobra"
)

// MonorepoCmd returns the monorepo parent command with all subcommands.
func MonorepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monorepo",
		Short: "Scaffold Bun workspaces with a Hono backend and a React frontend",
		Long: `Generators for Bun workspace monorepos. Packages live in packages/*;
the backend package is the first one with a src/ directory and no
components.json, the frontend package the first one with a components.json.
Use --package to pick one explicitly.

Available subcommands:
  init           - Create a new monorepo
  package        - Add a backend, frontend or library package
  component      - Generate a React component in the frontend package
  hook           - Generate a React hook in the frontend package
  page           - Generate a page in the frontend package
  auth           - Add JWT authentication to the backend package
  avatar         - Add avatar upload to the backend or frontend package
  docs           - Generate API documentation
  add-component  - Install shadcn/ui components into the frontend package

Configuration:
  The npm scope and backend port can be customised in .skills.yaml or
  skills.yaml under the "generate.monorepo" key.

Examples:
  skills monorepo init shop
  skills monorepo component user-card --type card --dir users
  skills monorepo hook counter --type toggle
  skills monorepo auth --type local
  skills monorepo add-component --preset forms
`,
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(PackageCmd())
	cmd.AddCommand(ComponentCmd())
	cmd.AddCommand(HookCmd())
	cmd.AddCommand(PageCmd())
	cmd.AddCommand(AuthCmd())
	cmd.AddCommand(AvatarCmd())
	cmd.AddCommand(DocsCmd())
	cmd.AddCommand(AddComponentCmd())

	return cmd
}
