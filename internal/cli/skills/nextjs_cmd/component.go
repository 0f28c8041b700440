package nextjs_cmd

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

// clientKinds use React state and need a "use client" directive.
var clientKinds = map[frontend.ComponentKind]bool{
	frontend.ComponentState: true,
	frontend.ComponentForm:  true,
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
Stateful components (state, form) are marked "use client".

Types: basic, children, state, form, card, list

Examples:
  skills nextjs component user-card --type card
  skills nextjs component contact-form --type form --dir components/forms
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
	unit.Client = clientKinds[kind]
	unit.Runner = s.Config.PackageRunner

	plan, err := frontend.Components.Generate(kind, unit)
	if err != nil {
		return err
	}
	if len(plan.Dependencies) > 0 {
		plan.Install = "npm install"
	}

	s.Reporter.Title("Generating %s component: %s", kind, unit.Name)
	s.Reporter.Detail("Location", unit.Dir)
	s.Reporter.Blank()

	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Component %s created successfully", unit.Name)
	return nil
}
