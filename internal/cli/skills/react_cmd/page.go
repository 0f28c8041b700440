package react_cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/frontend"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

var PageKinds = []frontend.PageKind{frontend.PageBasic, frontend.PageData, frontend.PageForm}

// PageOptions holds all the options for page generation.
type PageOptions struct {
	shared.Common
	Name       string
	Type       string
	WithLayout bool
}

// PageCmd returns the cobra command that generates a page component.
func PageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <name>",
		Short: "Generate a page component",
		Long: `Generate src/pages/<Name>Page.tsx and print the route to register.

Types:
  basic  heading and text, or a shadcn/ui card with --with-layout
  data   TanStack Query fetch with loading and error states
  form   card form posting JSON to /api/<name>

Examples:
  skills react page about --with-layout
  skills react page user-profile --type data
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var withLayout, _ = cmd.Flags().GetBool("with-layout")

			opts := PageOptions{
				Common:     shared.CommonFromCmd(cmd),
				Name:       args[0],
				Type:       kind,
				WithLayout: withLayout,
			}

			return generatePage(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("type", string(frontend.PageBasic), "Page type: "+scaffold.JoinChoices(PageKinds))
	cmd.Flags().Bool("with-layout", false, "Wrap basic pages in a card")
	scaffold.RegisterChoices(cmd, "type", PageKinds)

	return cmd
}

func generatePage(ctx context.Context, opts PageOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, PageKinds)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}

	unit, err := frontend.NewPage(opts.Name, "Page", "src/pages", "@/pages")
	if err != nil {
		return err
	}
	unit.Layout = opts.WithLayout
	return generateUnit(s, frontend.Pages, kind, unit)
}
