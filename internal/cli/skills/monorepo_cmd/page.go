package monorepo_cmd

import (
	"context"
	"path"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/frontend"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

var PageKinds = []frontend.PageKind{
	frontend.PageBasic,
	frontend.PageList,
	frontend.PageDetail,
	frontend.PageForm,
	frontend.PageDashboard,
}

// PageOptions holds all the options for page generation.
type PageOptions struct {
	shared.Common
	Name    string
	Type    string
	Package string
}

// PageCmd returns the cobra command that generates a page.
func PageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <name>",
		Short: "Generate a page in the frontend package",
		Long: `Generate src/pages/<Name>.tsx in the frontend package.

Types:
  basic      heading and content card
  list       searchable item list
  detail     single item loaded from the :id route param
  form       create form in a card
  dashboard  stat cards grid

Examples:
  skills monorepo page about
  skills monorepo page products --type list
  skills monorepo page product-detail --type detail
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var pkg, _ = cmd.Flags().GetString("package")

			opts := PageOptions{
				Common:  shared.CommonFromCmd(cmd),
				Name:    args[0],
				Type:    kind,
				Package: pkg,
			}

			return generatePage(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	addPackageFlag(cmd, "frontend")
	cmd.Flags().String("type", string(frontend.PageBasic), "Page type: "+scaffold.JoinChoices(PageKinds))
	scaffold.RegisterChoices(cmd, "type", PageKinds)

	return cmd
}

func generatePage(ctx context.Context, opts PageOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, PageKinds)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx)
	if err != nil {
		return err
	}
	pkgDir, err := locate(s, opts.Package, scaffold.FrontendPackage)
	if err != nil {
		return err
	}

	unit, err := frontend.NewPage(opts.Name, "", path.Join(pkgDir, "src/pages"), "@/pages")
	if err != nil {
		return err
	}
	unit.Layout = true
	return generateUnit(s, frontend.Pages, kind, unit, pkgDir)
}
