package react_cmd

import (
	"context"
	"path"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/frontend"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

var ComponentKinds = []frontend.ComponentKind{
	frontend.ComponentBasic,
	frontend.ComponentChildren,
	frontend.ComponentState,
	frontend.ComponentForm,
	frontend.ComponentCard,
	frontend.ComponentList,
}

// ComponentOptions holds all the options for component generation.
type ComponentOptions struct {
	shared.Common
	Name string
	Type string
	Dir  string
}

// ComponentCmd returns the cobra command that generates a React component.
func ComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component <name>",
		Short: "Generate a React component",
		Long: `Generate src/<dir>/<Name>.tsx and export it from the sibling index.ts.

Types: basic, children, state, form, card, list

Examples:
  skills react component user-card --type card
  skills react component counter --type state --dir components/widgets
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var dir, _ = cmd.Flags().GetString("dir")

			opts := ComponentOptions{
				Common: shared.CommonFromCmd(cmd),
				Name:   args[0],
				Type:   kind,
				Dir:    dir,
			}

			return generateComponent(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("type", string(frontend.ComponentBasic), "Component type: "+scaffold.JoinChoices(ComponentKinds))
	cmd.Flags().String("dir", "components", "Directory relative to src/")
	scaffold.RegisterChoices(cmd, "type", ComponentKinds)

	return cmd
}

// generateUnit writes a unit produced by catalog and reports it.
func generateUnit[K ~string](s *shared.Session, catalog *scaffold.Catalog[K, frontend.Unit], kind K, u frontend.Unit) error {
	u.Runner = s.Config.PackageRunner
	plan, err := catalog.Generate(kind, u)
	if err != nil {
		return err
	}
	if len(plan.Dependencies) > 0 {
		plan.Install = "npm install"
	}

	s.Reporter.Title("Generating %s %s: %s", kind, catalog.Category(), u.Name)
	s.Reporter.Detail("Location", u.Dir)
	s.Reporter.Blank()

	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("%s %s created successfully", scaffold.Pascal(catalog.Category()), u.Name)
	return nil
}

func generateComponent(ctx context.Context, opts ComponentOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, ComponentKinds)
	if err != nil {
		return err
	}
	dir, err := frontend.SourceDir(opts.Dir)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}

	unit, err := frontend.NewComponent(opts.Name, path.Join("src", dir), "@/"+dir)
	if err != nil {
		return err
	}
	return generateUnit(s, frontend.Components, kind, unit)
}
