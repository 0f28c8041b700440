package nextjs_cmd

import (
	"embed"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

//go:embed templates
var Templates embed.FS

var renderer = scaffold.NewRenderer(Templates)

// NextjsCmd returns the nextjs parent command with all subcommands.
func NextjsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nextjs",
		Short: "Scaffold Next.js App Router projects with NextAuth",
		Long: `Generators for Next.js projects using the App Router, Tailwind CSS,
shadcn/ui and NextAuth.js with a Drizzle adapter.

Available subcommands:
  init             - Create a new Next.js project
  component        - Generate a React component
  page             - Generate an App Router page or API route
  auth             - Add NextAuth.js authentication
  auth-components  - Generate sign in, sign up and user menu components

Examples:
  skills nextjs init shop
  skills nextjs component user-card --type card
  skills nextjs page settings --route account/settings --type protected
  skills nextjs auth --provider both
  skills nextjs auth-components --all
`,
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(ComponentCmd())
	cmd.AddCommand(PageCmd())
	cmd.AddCommand(AuthCmd())
	cmd.AddCommand(AuthComponentsCmd())

	return cmd
}

type templateFile struct {
	template string
	dest     string
}

func renderFiles(files []templateFile, data any) ([]scaffold.File, error) {
	out := make([]scaffold.File, 0, len(files))
	for _, f := range files {
		file, err := renderer.File(f.template, f.dest, data)
		if err != nil {
			return nil, err
		}
		out = append(out, file)
	}
	return out, nil
}
