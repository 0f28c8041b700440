package monorepo_cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// AddComponentOptions holds all the options for installing shadcn/ui
// components.
type AddComponentOptions struct {
	shared.Common
	Components []string
	Preset     string
	List       bool
	Package    string
}

// AddComponentCmd returns the cobra command that installs shadcn/ui
// components into the frontend package.
func AddComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-component [components...]",
		Short: "Install shadcn/ui components into the frontend package",
		Long: `Run "shadcn add" for each component inside the frontend package.
A failing component is reported and the remaining ones are still added.

Examples:
  skills monorepo add-component button card
  skills monorepo add-component --preset forms
  skills monorepo add-component --list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var preset, _ = cmd.Flags().GetString("preset")
			var list, _ = cmd.Flags().GetBool("list")
			var pkg, _ = cmd.Flags().GetString("package")

			opts := AddComponentOptions{
				Common:     shared.CommonFromCmd(cmd),
				Components: args,
				Preset:     preset,
				List:       list,
				Package:    pkg,
			}

			return addComponents(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	addPackageFlag(cmd, "frontend")
	cmd.Flags().String("preset", "", "Component preset: "+scaffold.JoinChoices(shared.PresetNames()))
	cmd.Flags().Bool("list", false, "List the available presets")
	scaffold.RegisterChoices(cmd, "preset", shared.PresetNames())

	return cmd
}

func addComponents(ctx context.Context, opts AddComponentOptions) error {
	if opts.List {
		s, err := opts.Open(ctx)
		if err != nil {
			return err
		}
		shared.PrintPresets(s)
		return nil
	}

	components, err := shared.ResolveComponents(opts.Components, opts.Preset)
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

	if err := shared.AddComponents(s, filepath.Join(s.Root, filepath.FromSlash(pkgDir)), components); err != nil {
		return err
	}
	s.Reporter.Success("Added %d component(s)", len(components))
	return nil
}
