package react_cmd

import (
	"embed"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

//go:embed templates
var Templates embed.FS

var renderer = scaffold.NewRenderer(Templates)

// ReactCmd returns the react parent command with all subcommands.
func ReactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "react",
		Short: "Scaffold Vite + React projects with shadcn/ui",
		Long: `Generators for single page React applications built with Vite,
Tailwind CSS and shadcn/ui.

Available subcommands:
  init           - Create a new Vite + React project
  component      - Generate a React component
  hook           - Generate a custom hook
  page           - Generate a page component
  add-component  - Install shadcn/ui components

Examples:
  skills react init dashboard
  skills react component user-card --type card
  skills react hook window-size --type media-query
  skills react page settings --type form
  skills react add-component --preset essential
`,
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(ComponentCmd())
	cmd.AddCommand(HookCmd())
	cmd.AddCommand(PageCmd())
	cmd.AddCommand(AddComponentCmd())

	return cmd
}
